package model

// SaveBehavior decides where and how a window's artifact is persisted. The
// variant set is closed. Unlike provenance nodes, save behavior is mutable
// state on a window handle: choosing a destination swaps NoNeedToSave or
// SaveToNewPath for a SaveToPath, and SaveToPath itself flips AskOverwrite
// and reassigns Path in place. Callers are single-threaded; no locking.
type SaveBehavior interface {
	isSaveBehavior()
}

// NoNeedToSave marks a freshly created window: closing it does not prompt
// unless the artifact was modified afterwards.
type NoNeedToSave struct {
	Modified bool
}

// CannotSave marks an artifact that can never be written back.
type CannotSave struct {
	Reason string
}

// SaveToNewPath marks a window that always prompts for a destination.
type SaveToNewPath struct{}

// SaveToPath marks a window with a known destination.
type SaveToPath struct {
	Path string
	// AskOverwrite starts true and clears on the first confirmed
	// overwrite of Path.
	AskOverwrite bool
	// WriterPlugin is the writer plugin id, empty for the default writer.
	WriterPlugin string
}

// NewSaveToPath returns a SaveToPath that still asks before overwriting.
func NewSaveToPath(path, writerPlugin string) *SaveToPath {
	return &SaveToPath{Path: path, AskOverwrite: true, WriterPlugin: writerPlugin}
}

func (*NoNeedToSave) isSaveBehavior()  {}
func (*CannotSave) isSaveBehavior()    {}
func (*SaveToNewPath) isSaveBehavior() {}
func (*SaveToPath) isSaveBehavior()    {}
