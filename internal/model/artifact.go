package model

import "github.com/google/uuid"

// Artifact is the concrete in-memory value a window displays: a table, an
// image, a document. The engine never looks inside the value; it only needs
// a title, the attached provenance, and the file extensions the artifact can
// be written as.
type Artifact interface {
	Title() string
	SetTitle(string)

	// Provenance returns how this artifact was produced, or nil when
	// nothing was recorded. Every producing operation is expected to
	// attach a node before handing the artifact out.
	Provenance() Node
	SetProvenance(Node)

	// Extensions lists the file extensions (with leading dot) the
	// artifact may be saved as. The first entry is the default.
	Extensions() []string
}

// Window is a live window handle over one artifact. Its save behavior is
// mutable for the life of the handle; everything else about the artifact's
// history is carried by the immutable provenance node.
type Window interface {
	Artifact() Artifact
	SaveBehavior() SaveBehavior
	SetSaveBehavior(SaveBehavior)
}

// BasicArtifact is a minimal Artifact for hosts that have no artifact type
// of their own.
type BasicArtifact struct {
	title string
	value any
	prov  Node
	exts  []string
}

// NewArtifact wraps value as a BasicArtifact with no provenance attached.
func NewArtifact(title string, value any, extensions ...string) *BasicArtifact {
	return &BasicArtifact{title: title, value: value, exts: extensions}
}

func (a *BasicArtifact) Title() string        { return a.title }
func (a *BasicArtifact) SetTitle(t string)    { a.title = t }
func (a *BasicArtifact) Provenance() Node     { return a.prov }
func (a *BasicArtifact) SetProvenance(n Node) { a.prov = n }
func (a *BasicArtifact) Extensions() []string { return a.exts }

// Value returns the wrapped in-memory value.
func (a *BasicArtifact) Value() any { return a.value }

// WindowHandle is a plain Window implementation. Hosts with a real widget
// layer wrap their own windows instead.
type WindowHandle struct {
	ID   string
	art  Artifact
	save SaveBehavior
}

// NewWindowHandle opens a handle over art. Fresh windows start with
// NoNeedToSave so closing them does not nag the user.
func NewWindowHandle(art Artifact) *WindowHandle {
	return &WindowHandle{
		ID:   uuid.NewString(),
		art:  art,
		save: &NoNeedToSave{},
	}
}

func (w *WindowHandle) Artifact() Artifact             { return w.art }
func (w *WindowHandle) SaveBehavior() SaveBehavior     { return w.save }
func (w *WindowHandle) SetSaveBehavior(b SaveBehavior) { w.save = b }
