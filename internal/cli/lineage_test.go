package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCommand executes the root command with args and returns its output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeRecord(t *testing.T, rec map[string]any) string {
	t.Helper()
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "artifact.prov.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func cropRecord() map[string]any {
	return map[string]any{
		"type":       "command",
		"command_id": "crop",
		"contexts": []any{
			map[string]any{
				"type": "window",
				"name": "window",
				"value": map[string]any{
					"type":   "local_reader",
					"path":   "img.png",
					"plugin": "builtins.image",
				},
			},
		},
		"parameters": []any{
			map[string]any{"type": "user", "name": "x", "value": "1:3"},
		},
	}
}

func TestLineageCmd(t *testing.T) {
	jsonOutput = false
	defer func() { jsonOutput = false }()

	path := writeRecord(t, cropRecord())
	out, err := runCommand(t, "lineage", path)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := []string{
		"Command: crop",
		"├─ x = 1:3",
		"└─ window: img.png",
	}
	got := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("got %d lines:\n%s", len(got), out)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLineageCmdJSON(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	path := writeRecord(t, cropRecord())
	out, err := runCommand(t, "lineage", path, "--json")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var lines []string
	if err := json.Unmarshal([]byte(out), &lines); err != nil {
		t.Fatalf("output not a JSON array: %v\n%s", err, out)
	}
	if len(lines) != 3 || lines[0] != "Command: crop" {
		t.Errorf("got %v", lines)
	}
}

func TestLineageCmdUnknownVariant(t *testing.T) {
	jsonOutput = false
	defer func() { jsonOutput = false }()

	path := writeRecord(t, map[string]any{"type": "warp-drive"})
	_, err := runCommand(t, "lineage", path)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "warp-drive") {
		t.Errorf("error should name the bad variant: %v", err)
	}
}

func TestShowCmd(t *testing.T) {
	jsonOutput = false
	defer func() { jsonOutput = false }()

	path := writeRecord(t, cropRecord())
	out, err := runCommand(t, "show", path)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{"command", "crop", "img.png", "depth:", "nodes:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShowCmdJSON(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	path := writeRecord(t, cropRecord())
	out, err := runCommand(t, "show", path, "--json")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var sum recordSummary
	if err := json.Unmarshal([]byte(out), &sum); err != nil {
		t.Fatalf("output not JSON: %v\n%s", err, out)
	}
	if sum.CommandID != "crop" || sum.Depth != 2 || sum.NodeCount != 2 {
		t.Errorf("summary: %+v", sum)
	}
	if len(sum.Inputs) != 1 || sum.Inputs[0] != "img.png" {
		t.Errorf("inputs: %v", sum.Inputs)
	}
}
