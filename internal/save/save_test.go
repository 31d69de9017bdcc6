package save

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sightglass/provenance/internal/model"
)

// scriptedPrompter answers prompts from canned responses and records what
// it was asked.
type scriptedPrompter struct {
	choosePath    string
	chooseOK      bool
	overwrite     OverwriteChoice
	chooseCalls   int
	confirmCalls  int
	lastDefault   string
	lastExtension []string
}

func (p *scriptedPrompter) ChooseSavePath(defaultName string, extensions []string) (string, bool) {
	p.chooseCalls++
	p.lastDefault = defaultName
	p.lastExtension = extensions
	return p.choosePath, p.chooseOK
}

func (p *scriptedPrompter) ConfirmOverwrite(path string) OverwriteChoice {
	p.confirmCalls++
	return p.overwrite
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolvePromptsForNewPath(t *testing.T) {
	art := model.NewArtifact("scan 12", nil, ".png", ".tif")
	ui := &scriptedPrompter{choosePath: "/tmp/scan.png", chooseOK: true}

	path, err := Resolve(&model.SaveToNewPath{}, art, ui)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if path != "/tmp/scan.png" {
		t.Errorf("path: got %q", path)
	}
	if ui.lastDefault != "scan 12.png" {
		t.Errorf("default filename: got %q, want scan 12.png", ui.lastDefault)
	}
	if len(ui.lastExtension) != 2 {
		t.Errorf("extensions: got %v", ui.lastExtension)
	}
}

func TestResolveCannotSave(t *testing.T) {
	art := model.NewArtifact("clipboard", nil)
	ui := &scriptedPrompter{}

	_, err := Resolve(&model.CannotSave{Reason: "artifact has no writer"}, art, ui)
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrCancelled) {
		t.Error("CannotSave must be a failure, not a cancellation")
	}
	if ui.chooseCalls+ui.confirmCalls != 0 {
		t.Error("CannotSave must never prompt")
	}
}

func TestResolveCancelledPrompt(t *testing.T) {
	art := model.NewArtifact("scan", nil, ".png")
	ui := &scriptedPrompter{chooseOK: false}

	_, err := Resolve(&model.NoNeedToSave{}, art, ui)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("got %v, want ErrCancelled", err)
	}
}

func TestResolveKnownPathNoFile(t *testing.T) {
	art := model.NewArtifact("scan", nil, ".png")
	ui := &scriptedPrompter{}
	dest := filepath.Join(t.TempDir(), "missing.png")
	b := model.NewSaveToPath(dest, "")

	path, err := Resolve(b, art, ui)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if path != dest {
		t.Errorf("path: got %q, want %q", path, dest)
	}
	if ui.confirmCalls != 0 {
		t.Error("no prompt expected when the path does not exist")
	}
	if !b.AskOverwrite {
		t.Error("AskOverwrite must stay set until an overwrite is confirmed")
	}
}

// A confirmed overwrite clears AskOverwrite, so the second save to the same
// existing path does not prompt.
func TestResolveOverwriteClearsFlag(t *testing.T) {
	art := model.NewArtifact("scan", nil, ".png")
	dest := filepath.Join(t.TempDir(), "scan.png")
	touch(t, dest)
	b := model.NewSaveToPath(dest, "")
	ui := &scriptedPrompter{overwrite: Overwrite}

	path, err := Resolve(b, art, ui)
	if err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	if path != dest {
		t.Errorf("path: got %q", path)
	}
	if b.AskOverwrite {
		t.Error("AskOverwrite should be cleared after a confirmed overwrite")
	}
	if ui.confirmCalls != 1 {
		t.Fatalf("confirm calls: got %d, want 1", ui.confirmCalls)
	}

	if _, err := Resolve(b, art, ui); err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if ui.confirmCalls != 1 {
		t.Errorf("second save prompted again: %d confirm calls", ui.confirmCalls)
	}
}

func TestResolveChooseAnotherPath(t *testing.T) {
	art := model.NewArtifact("scan", nil, ".png")
	dest := filepath.Join(t.TempDir(), "scan.png")
	touch(t, dest)
	b := model.NewSaveToPath(dest, "")
	ui := &scriptedPrompter{overwrite: ChooseAnother, choosePath: "/tmp/other.png", chooseOK: true}

	path, err := Resolve(b, art, ui)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if path != "/tmp/other.png" {
		t.Errorf("path: got %q", path)
	}
	if b.Path != "/tmp/other.png" {
		t.Errorf("behavior path not reassigned: %q", b.Path)
	}
}

// Cancelling the nested "choose another path" prompt propagates as overall
// cancellation, never a silent fallback to the original path.
func TestResolveChooseAnotherThenCancel(t *testing.T) {
	art := model.NewArtifact("scan", nil, ".png")
	dest := filepath.Join(t.TempDir(), "scan.png")
	touch(t, dest)
	b := model.NewSaveToPath(dest, "")
	ui := &scriptedPrompter{overwrite: ChooseAnother, chooseOK: false}

	_, err := Resolve(b, art, ui)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("got %v, want ErrCancelled", err)
	}
	if b.Path != dest {
		t.Errorf("cancelled choice must not touch the stored path, got %q", b.Path)
	}
}

func TestResolveCancelOverwrite(t *testing.T) {
	art := model.NewArtifact("scan", nil, ".png")
	dest := filepath.Join(t.TempDir(), "scan.png")
	touch(t, dest)
	b := model.NewSaveToPath(dest, "")
	ui := &scriptedPrompter{overwrite: CancelSave}

	_, err := Resolve(b, art, ui)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("got %v, want ErrCancelled", err)
	}
	if !b.AskOverwrite {
		t.Error("cancellation must not clear AskOverwrite")
	}
}

// The first chosen destination moves the window from NoNeedToSave to
// SaveToPath.
func TestResolveForTransitionsBehavior(t *testing.T) {
	art := model.NewArtifact("scan", nil, ".png")
	w := model.NewWindowHandle(art)
	ui := &scriptedPrompter{choosePath: "/tmp/scan.png", chooseOK: true}

	path, err := ResolveFor(w, ui)
	if err != nil {
		t.Fatalf("ResolveFor: %v", err)
	}
	sp, ok := w.SaveBehavior().(*model.SaveToPath)
	if !ok {
		t.Fatalf("behavior: got %T, want *SaveToPath", w.SaveBehavior())
	}
	if sp.Path != path {
		t.Errorf("behavior path: got %q, want %q", sp.Path, path)
	}
	if !sp.AskOverwrite {
		t.Error("fresh SaveToPath must start with AskOverwrite set")
	}
}

func TestResolveForCancelKeepsBehavior(t *testing.T) {
	art := model.NewArtifact("scan", nil, ".png")
	w := model.NewWindowHandle(art)
	ui := &scriptedPrompter{chooseOK: false}

	if _, err := ResolveFor(w, ui); !errors.Is(err, ErrCancelled) {
		t.Fatalf("got %v, want ErrCancelled", err)
	}
	if _, ok := w.SaveBehavior().(*model.NoNeedToSave); !ok {
		t.Errorf("cancelled save must not transition behavior, got %T", w.SaveBehavior())
	}
}

func TestDefaultFileName(t *testing.T) {
	tests := []struct {
		name  string
		title string
		exts  []string
		want  string
	}{
		{"plain title", "scan 12", []string{".png"}, "scan 12.png"},
		{"wrong extension replaced", "scan.bmp", []string{".png", ".tif"}, "scan.png"},
		{"already allowed", "scan.tif", []string{".png", ".tif"}, "scan.tif"},
		{"no extensions", "scan", nil, "scan"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			art := model.NewArtifact(tt.title, nil, tt.exts...)
			if got := DefaultFileName(art); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
