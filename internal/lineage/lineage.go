// Package lineage renders a provenance node as a human-readable tree of
// text lines, suitable for direct display or logging.
package lineage

import (
	"fmt"
	"strings"

	"github.com/sightglass/provenance/internal/model"
)

// Tree glyphs. A branch marks a non-last child, a corner the last one;
// continuation lines under a branch are indented with the pipe, under a
// corner with blank space.
const (
	branch = "├─ "
	corner = "└─ "
	pipe   = "│  "
	blank  = "   "
)

// Render returns the lineage of n as indented lines. Output depends only on
// the node: repeated calls produce byte-identical lines.
func Render(n model.Node) []string {
	switch node := n.(type) {
	case *model.Programmatic:
		return []string{"created programmatically"}
	case *model.LocalRead:
		return []string{strings.Join(node.Paths, ", ")}
	case *model.RemoteRead:
		return []string{node.Host + ":" + node.Path}
	case *model.CommandRun:
		return renderCommand(node)
	case *model.UserEdit:
		return append([]string{"[Modified by User]"}, prefix(Render(node.Original), true)...)
	}
	return []string{fmt.Sprintf("unknown provenance (%T)", n)}
}

// String returns Render(n) joined with newlines.
func String(n model.Node) string {
	return strings.Join(Render(n), "\n")
}

// renderCommand emits the command header followed by one sub-block per
// argument. Parameters come before contexts; both keep their stored order.
func renderCommand(node *model.CommandRun) []string {
	lines := []string{"Command: " + node.CommandID}
	blocks := make([][]string, 0, len(node.Parameters)+len(node.Contexts))
	for _, p := range node.Parameters {
		blocks = append(blocks, renderParameter(p))
	}
	for _, p := range node.Contexts {
		blocks = append(blocks, renderParameter(p))
	}
	for i, block := range blocks {
		lines = append(lines, prefix(block, i == len(blocks)-1)...)
	}
	return lines
}

func renderParameter(p model.Parameter) []string {
	switch param := p.(type) {
	case *model.UserValue:
		return []string{fmt.Sprintf("%s = %v", param.Name, param.Value)}
	case *model.ArtifactRef:
		return labelled(param.Name, Render(param.Node))
	case *model.WindowRef:
		return labelled(param.Name, Render(param.Node))
	case *model.ArtifactListRef:
		lines := []string{param.Name + ":"}
		for i, n := range param.Nodes {
			lines = append(lines, prefix(Render(n), i == len(param.Nodes)-1)...)
		}
		return lines
	}
	return []string{fmt.Sprintf("%s = ?(%T)", p.ParamName(), p)}
}

// labelled joins a parameter name onto the first line of its node's block.
func labelled(name string, block []string) []string {
	out := make([]string, len(block))
	out[0] = name + ": " + block[0]
	copy(out[1:], block[1:])
	return out
}

// prefix indents a child block one level. The first line gets the branch or
// corner glyph, continuation lines the matching filler.
func prefix(block []string, last bool) []string {
	head, cont := branch, pipe
	if last {
		head, cont = corner, blank
	}
	out := make([]string, len(block))
	for i, line := range block {
		if i == 0 {
			out[i] = head + line
		} else {
			out[i] = cont + line
		}
	}
	return out
}
