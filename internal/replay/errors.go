package replay

import (
	"errors"
	"fmt"

	"github.com/sightglass/provenance/internal/model"
)

// ErrNotReplayable reports a replay of a Programmatic node: an artifact
// created directly in memory has no recipe to recompute from. Callers with
// an already-resolved artifact should not reach replay at all.
var ErrNotReplayable = errors.New("programmatic artifact has no recipe to replay")

// TypeMismatchError reports a collaborator that produced something other
// than an artifact.
type TypeMismatchError struct {
	Op  string // e.g. `reader "builtins.image"` or `command "crop"`
	Got any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s returned %T, want an artifact", e.Op, e.Got)
}

// InvalidContextError reports a CommandRun context entry that was not an
// artifact or window reference.
type InvalidContextError struct {
	CommandID string
	Index     int
	Param     model.Parameter
}

func (e *InvalidContextError) Error() string {
	return fmt.Sprintf("command %q: context %d (%s) is %T, want an artifact or window reference",
		e.CommandID, e.Index, e.Param.ParamName(), e.Param)
}

// CopyError reports a failed remote staging copy.
type CopyError struct {
	Host string
	Path string
	Err  error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copying %s:%s: %v", e.Host, e.Path, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }
