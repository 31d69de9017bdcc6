// Package replay recomputes artifacts from their provenance nodes: the
// recursive evaluator behind "recompute from history" and reopening closed
// windows with no other session memory.
package replay

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sightglass/provenance/internal/model"
	"github.com/sightglass/provenance/internal/registry"
)

// Replay recomputes the artifact described by n, driving the collaborators
// in env. The recursion is synchronous and preserves stored order: within a
// CommandRun, contexts resolve strictly before parameters and each list in
// its recorded order, because later steps can depend on side effects of
// earlier ones (which window is current when the command finally runs).
//
// Nothing is memoized: a node referenced by two parameters is recomputed
// twice, side effects included. Any nested failure aborts the whole call;
// windows already materialized for earlier contexts stay open.
func Replay(ctx context.Context, n model.Node, env *Environment) (model.Artifact, error) {
	switch node := n.(type) {
	case *model.Programmatic:
		return nil, ErrNotReplayable
	case *model.LocalRead:
		art, err := readLocal(ctx, node.Paths, node.Plugin, env)
		if err != nil {
			return nil, err
		}
		stamp(art, node)
		return art, nil
	case *model.RemoteRead:
		return replayRemote(ctx, node, env)
	case *model.CommandRun:
		return replayCommand(ctx, node, env)
	case *model.UserEdit:
		// The recorded edit is not reapplied: replaying a manual edit
		// yields the unedited original.
		return Replay(ctx, node.Original, env)
	}
	return nil, fmt.Errorf("unhandled provenance variant %T", n)
}

// readLocal resolves the reader plugin and invokes it on paths. The caller
// stamps provenance; this helper only enforces that a reader exists and
// that it produced an artifact.
func readLocal(ctx context.Context, paths []string, plugin string, env *Environment) (model.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fn, err := env.Readers.Resolve(plugin)
	if err != nil {
		return nil, err
	}
	res, err := fn(paths)
	if err != nil {
		return nil, err
	}
	art, ok := res.(model.Artifact)
	if !ok {
		return nil, &TypeMismatchError{Op: fmt.Sprintf("reader %q", plugin), Got: res}
	}
	return art, nil
}

// replayRemote stages the remote file into a fresh staging directory, reads
// it there, and titles the artifact after the remote filename. The staging
// directory is removed on every exit path.
func replayRemote(ctx context.Context, node *model.RemoteRead, env *Environment) (model.Artifact, error) {
	base := env.StagingDir
	if base == "" {
		base = os.TempDir()
	}
	dir := filepath.Join(base, "staging-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating staging dir: %w", err)
	}
	defer os.RemoveAll(dir)

	name := path.Base(node.Path)
	dest := filepath.Join(dir, name)
	copyDest := dest
	if node.WSL {
		copyDest = wslMountPath(dest)
	}
	if err := env.Copier.Copy(ctx, node.Host, node.Username, node.Path, copyDest, node.WSL); err != nil {
		return nil, &CopyError{Host: node.Host, Path: node.Path, Err: err}
	}

	art, err := readLocal(ctx, []string{dest}, node.Plugin, env)
	if err != nil {
		return nil, err
	}
	stamp(art, node)
	art.SetTitle(name)
	return art, nil
}

func replayCommand(ctx context.Context, node *model.CommandRun, env *Environment) (model.Artifact, error) {
	// Contexts first, in stored order. The last one is what the command
	// observes as current.
	var lastArt model.Artifact
	var lastWin model.Window
	for i, p := range node.Contexts {
		switch ref := p.(type) {
		case *model.ArtifactRef:
			art, err := Replay(ctx, ref.Node, env)
			if err != nil {
				return nil, err
			}
			lastArt, lastWin = art, nil
		case *model.WindowRef:
			art, err := Replay(ctx, ref.Node, env)
			if err != nil {
				return nil, err
			}
			win, err := env.Windows.Materialize(art)
			if err != nil {
				return nil, err
			}
			lastArt, lastWin = art, win
		default:
			return nil, &InvalidContextError{CommandID: node.CommandID, Index: i, Param: p}
		}
	}

	params := make(map[string]any, len(node.Parameters))
	for _, p := range node.Parameters {
		v, err := resolveParameter(ctx, p, env)
		if err != nil {
			return nil, err
		}
		params[p.ParamName()] = v
	}

	fn, err := env.Commands.Resolve(node.CommandID)
	if err != nil {
		return nil, err
	}
	res, err := fn(registry.Context{Window: lastWin, Artifact: lastArt}, params)
	if err != nil {
		return nil, err
	}
	art, ok := res.(model.Artifact)
	if !ok {
		return nil, &TypeMismatchError{Op: fmt.Sprintf("command %q", node.CommandID), Got: res}
	}
	stamp(art, node)
	return art, nil
}

func resolveParameter(ctx context.Context, p model.Parameter, env *Environment) (any, error) {
	switch param := p.(type) {
	case *model.UserValue:
		return param.Value, nil
	case *model.ArtifactRef:
		return Replay(ctx, param.Node, env)
	case *model.WindowRef:
		art, err := Replay(ctx, param.Node, env)
		if err != nil {
			return nil, err
		}
		return env.Windows.Materialize(art)
	case *model.ArtifactListRef:
		arts := make([]model.Artifact, len(param.Nodes))
		for i, n := range param.Nodes {
			art, err := Replay(ctx, n, env)
			if err != nil {
				return nil, err
			}
			arts[i] = art
		}
		return arts, nil
	}
	return nil, fmt.Errorf("unhandled parameter variant %T", p)
}

// stamp attaches n to artifacts that came back without provenance of their
// own, so every replayed artifact leaves with a usable recipe.
func stamp(art model.Artifact, n model.Node) {
	if art.Provenance() == nil {
		art.SetProvenance(n)
	}
}
