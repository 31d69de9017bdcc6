package replay

import (
	"context"

	"github.com/sightglass/provenance/internal/model"
	"github.com/sightglass/provenance/internal/registry"
)

// WindowManager materializes live windows from artifacts. The widget layer
// implements it; replay only ever opens windows, never closes them.
type WindowManager interface {
	Materialize(a model.Artifact) (model.Window, error)
}

// RemoteCopier stages a remote file at a local destination. A non-nil error
// means the copy did not complete; the engine reports it as a CopyError.
type RemoteCopier interface {
	Copy(ctx context.Context, host, username, remotePath, localDest string, wsl bool) error
}

// Environment bundles the collaborators a replay drives. Registries are
// explicit instances rather than ambient globals, so two environments never
// observe each other's registrations.
type Environment struct {
	Readers  *registry.Readers
	Commands *registry.Commands
	Windows  WindowManager
	Copier   RemoteCopier

	// StagingDir is the base directory for remote staging; the system
	// temp directory when empty. Each staged read gets its own
	// subdirectory, removed when the read finishes.
	StagingDir string
}
