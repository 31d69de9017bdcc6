// Package save resolves where a window's artifact is written, driving the
// user prompts that saving may require.
package save

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sightglass/provenance/internal/model"
)

// ErrCancelled reports that the user declined a save prompt. It is an
// outcome, not a failure: callers distinguish it with errors.Is so "user
// said no" never reads as "something broke".
var ErrCancelled = errors.New("save cancelled")

// OverwriteChoice is the user's answer to an overwrite prompt.
type OverwriteChoice int

const (
	Overwrite OverwriteChoice = iota
	ChooseAnother
	CancelSave
)

// Prompter supplies the interaction points of destination resolution. The
// widget layer implements it with real dialogs; tests script it.
type Prompter interface {
	// ChooseSavePath asks for a new destination restricted to the given
	// extensions, offering defaultName as the initial filename. ok is
	// false when the user cancels.
	ChooseSavePath(defaultName string, extensions []string) (path string, ok bool)

	// ConfirmOverwrite asks what to do about an already existing path.
	ConfirmOverwrite(path string) OverwriteChoice
}

// Resolve returns the destination path for art under behavior b.
//
// NoNeedToSave and SaveToNewPath always prompt. CannotSave fails with its
// stored reason and never prompts. SaveToPath returns its path unchanged
// when the path does not exist or overwriting was already confirmed once;
// otherwise the user chooses between overwriting (clears AskOverwrite),
// picking another path (reassigns Path in place), and cancelling.
func Resolve(b model.SaveBehavior, art model.Artifact, ui Prompter) (string, error) {
	switch sb := b.(type) {
	case *model.CannotSave:
		return "", fmt.Errorf("cannot save %q: %s", art.Title(), sb.Reason)
	case *model.NoNeedToSave, *model.SaveToNewPath:
		return promptNewPath(art, ui)
	case *model.SaveToPath:
		if !sb.AskOverwrite || !exists(sb.Path) {
			return sb.Path, nil
		}
		switch ui.ConfirmOverwrite(sb.Path) {
		case Overwrite:
			sb.AskOverwrite = false
			return sb.Path, nil
		case ChooseAnother:
			// A cancelled nested prompt is overall cancellation,
			// never a fallback to the original path.
			path, err := promptNewPath(art, ui)
			if err != nil {
				return "", err
			}
			sb.Path = path
			return path, nil
		default:
			return "", ErrCancelled
		}
	}
	return "", fmt.Errorf("unhandled save behavior %T", b)
}

// ResolveFor resolves a destination for w and applies the window-level
// transition: a window saved for the first time moves from NoNeedToSave or
// SaveToNewPath to SaveToPath at the chosen destination.
func ResolveFor(w model.Window, ui Prompter) (string, error) {
	b := w.SaveBehavior()
	path, err := Resolve(b, w.Artifact(), ui)
	if err != nil {
		return "", err
	}
	switch b.(type) {
	case *model.NoNeedToSave, *model.SaveToNewPath:
		w.SetSaveBehavior(model.NewSaveToPath(path, ""))
	}
	return path, nil
}

func promptNewPath(art model.Artifact, ui Prompter) (string, error) {
	path, ok := ui.ChooseSavePath(DefaultFileName(art), art.Extensions())
	if !ok {
		return "", ErrCancelled
	}
	return path, nil
}

// DefaultFileName is the artifact's title adjusted to its default extension.
func DefaultFileName(art model.Artifact) string {
	name := art.Title()
	exts := art.Extensions()
	if len(exts) == 0 {
		return name
	}
	if old := filepath.Ext(name); old != "" && hasExtension(old, exts) {
		return name
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + exts[0]
}

func hasExtension(ext string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(ext, a) {
			return true
		}
	}
	return false
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
