// Package model defines the provenance vocabulary shared by the engine:
// provenance nodes, command parameters, artifact and window handles, and
// per-window save behavior.
package model

// Node records how one artifact was produced. The variant set is closed:
// Programmatic, LocalRead, RemoteRead, CommandRun and UserEdit are the only
// implementations, and consumers switch exhaustively over them. A node is
// built once, when the artifact is produced, and never mutated afterwards.
//
// Leaves are Programmatic, LocalRead and RemoteRead. CommandRun and UserEdit
// nest further nodes through their parameters, so a node is the root of a
// DAG of artifacts-derived-from-artifacts.
type Node interface {
	isNode()
}

// Programmatic marks an artifact created directly in memory, with no
// recorded inputs. It carries no recipe, so it cannot be replayed.
type Programmatic struct{}

// LocalRead records an artifact produced by a reader plugin applied to one
// or more local paths.
type LocalRead struct {
	// Paths are the local files the reader was invoked on.
	Paths []string
	// Plugin is the reader plugin id; empty when the reader is unknown.
	Plugin string
}

// RemoteRead records an artifact produced by staging a remote file to a
// local temporary location and reading it there.
type RemoteRead struct {
	Host     string
	Username string
	// Path is the remote path, slash-separated.
	Path string
	// WSL routes the staging copy through a WSL mount point.
	WSL bool
	// Plugin is the reader plugin id; empty when the reader is unknown.
	Plugin string
}

// CommandRun records an artifact produced by a registered command.
type CommandRun struct {
	// CommandID is the stable string id the command is registered under.
	CommandID string
	// Contexts name the windows or artifacts the command operated on,
	// in the order they were resolved.
	Contexts []Parameter
	// Parameters are the command's remaining arguments, in call order.
	Parameters []Parameter
}

// UserEdit records a manual edit of another artifact. It wraps exactly one
// node, the provenance of the artifact that was edited.
type UserEdit struct {
	Original Node
}

func (*Programmatic) isNode() {}
func (*LocalRead) isNode()    {}
func (*RemoteRead) isNode()   {}
func (*CommandRun) isNode()   {}
func (*UserEdit) isNode()     {}
