package scaffold

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/treeline-labs/treeline/internal/plugin"
	"github.com/treeline-labs/treeline/internal/track"
	"github.com/treeline-labs/treeline/internal/translate"
	"github.com/treeline-labs/treeline/internal/tree"
)

func TestNewData(t *testing.T) {
	d := NewData("compute", "list")
	if d.Group != "compute" {
		t.Errorf("Group = %q, want %q", d.Group, "compute")
	}
	if d.Command != "list" {
		t.Errorf("Command = %q, want %q", d.Command, "list")
	}
	if d.CLIName == "" {
		t.Error("CLIName should not be empty")
	}
	if d.Year == 0 {
		t.Error("Year should not be zero")
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "commands")

	result, err := Generate(NewData("compute", "list"), outDir)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	expectedFiles := []string{
		"_common.yaml",
		"status.yaml",
		filepath.Join("compute", "_common.yaml"),
		filepath.Join("compute", "list.yaml"),
	}
	assertFiles(t, result, expectedFiles)

	statusContent := readGenerated(t, outDir, "status.yaml")
	assertContains(t, statusContent, "_COMMON_: defaults")
	assertContains(t, statusContent, "description: Show")

	listContent := readGenerated(t, outDir, filepath.Join("compute", "list.yaml"))
	assertContains(t, listContent, "release_tracks: [stable]")
	assertContains(t, listContent, "release_tracks: [beta, alpha]")
	assertContains(t, listContent, "!COMMON group.description")
	assertContains(t, listContent, "_COMMON_preview_args")

	commonContent := readGenerated(t, outDir, filepath.Join("compute", "_common.yaml"))
	assertContains(t, commonContent, "description: Manage compute resources.")

	// Schema validation of the generated specs produced no complaints.
	if len(result.Warnings) > 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestGeneratedTreeLoads(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "commands")
	if _, err := Generate(NewData("compute", "list"), outDir); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	b := tree.NewBuilder(plugin.NewRegistry(), translate.New("dev"), log.New(io.Discard))

	for _, tr := range track.All() {
		cmds, err := b.Build(outDir, tr)
		if err != nil {
			t.Fatalf("Build(%s): %v", tr, err)
		}
		var names []string
		for _, c := range cmds {
			names = append(names, c.Name())
		}
		if len(cmds) != 2 {
			t.Fatalf("Build(%s) mounted %v, want [compute status]", tr, names)
		}
	}
}

func TestGenerateRejectsUppercaseNames(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "commands")
	if _, err := Generate(NewData("Compute", "list"), outDir); err == nil {
		t.Fatal("expected error for uppercase group name")
	}
	if _, err := Generate(NewData("compute", "List"), outDir); err == nil {
		t.Fatal("expected error for uppercase command name")
	}
}

func TestGenerateNonEmptyDir(t *testing.T) {
	dir := t.TempDir()
	// Create an existing file in the output dir.
	os.WriteFile(filepath.Join(dir, "existing.txt"), []byte("hello"), 0644)

	_, err := Generate(NewData("compute", "list"), dir)
	if err == nil {
		t.Fatal("expected error for non-empty output directory")
	}
	if !strings.Contains(err.Error(), "not empty") {
		t.Errorf("error should mention non-empty dir, got: %v", err)
	}
}

// ─── Test Helpers ──────────────────────────────────────────────────

func readGenerated(t *testing.T, dir, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		t.Fatalf("reading %s: %v", filename, err)
	}
	return string(data)
}

func assertFiles(t *testing.T, result *Result, expected []string) {
	t.Helper()
	if len(result.Files) != len(expected) {
		t.Errorf("got %d files %v, want %d files %v", len(result.Files), result.Files, len(expected), expected)
		return
	}
	for i, f := range expected {
		if result.Files[i] != f {
			t.Errorf("file[%d] = %q, want %q", i, result.Files[i], f)
		}
	}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("content does not contain %q\n--- content ---\n%s", substr, content)
	}
}
