package model

// Classify tags a command argument with the correct Parameter variant. It is
// total: windows and artifacts become WindowRef/ArtifactRef (falling back to
// a Programmatic node when the value carries no provenance), homogeneous
// lists of artifacts become ArtifactListRef, and everything else is an
// opaque UserValue.
func Classify(name string, value any) Parameter {
	switch v := value.(type) {
	case Window:
		return &WindowRef{Name: name, Node: provenanceOf(v.Artifact())}
	case Artifact:
		return &ArtifactRef{Name: name, Node: provenanceOf(v)}
	case []Artifact:
		nodes := make([]Node, len(v))
		for i, a := range v {
			nodes[i] = provenanceOf(a)
		}
		return &ArtifactListRef{Name: name, Nodes: nodes}
	case []any:
		if nodes, ok := artifactNodes(v); ok {
			return &ArtifactListRef{Name: name, Nodes: nodes}
		}
	}
	return &UserValue{Name: name, Value: value}
}

// artifactNodes extracts provenance from a heterogeneous slice, reporting
// false unless every element is an artifact. Empty slices stay UserValue:
// there is nothing to track.
func artifactNodes(values []any) ([]Node, bool) {
	if len(values) == 0 {
		return nil, false
	}
	nodes := make([]Node, len(values))
	for i, v := range values {
		a, ok := v.(Artifact)
		if !ok {
			return nil, false
		}
		nodes[i] = provenanceOf(a)
	}
	return nodes, true
}

func provenanceOf(a Artifact) Node {
	if n := a.Provenance(); n != nil {
		return n
	}
	return &Programmatic{}
}
