package model

// Parameter is one named argument recorded for a CommandRun. The variant set
// is closed: UserValue, ArtifactRef, WindowRef and ArtifactListRef are the
// only implementations.
type Parameter interface {
	// ParamName returns the argument's name as the command received it.
	ParamName() string
	isParameter()
}

// UserValue is an opaque leaf value with no provenance of its own.
type UserValue struct {
	Name  string
	Value any
}

// ArtifactRef marks an argument that was itself a tracked artifact.
type ArtifactRef struct {
	Name string
	Node Node
}

// WindowRef marks an argument that was a live window. It differs from
// ArtifactRef only during replay, where it materializes a new window as a
// side effect.
type WindowRef struct {
	Name string
	Node Node
}

// ArtifactListRef marks an argument that was an ordered list of tracked
// artifacts.
type ArtifactListRef struct {
	Name  string
	Nodes []Node
}

func (p *UserValue) ParamName() string       { return p.Name }
func (p *ArtifactRef) ParamName() string     { return p.Name }
func (p *WindowRef) ParamName() string       { return p.Name }
func (p *ArtifactListRef) ParamName() string { return p.Name }

func (*UserValue) isParameter()       {}
func (*ArtifactRef) isParameter()     {}
func (*WindowRef) isParameter()       {}
func (*ArtifactListRef) isParameter() {}
