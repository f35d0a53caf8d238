//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

// writeFile creates a file with any missing parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// setupCommands creates a synthetic commands directory exercising shared
// common data, track variants, and a nested group. Returns its root.
func setupCommands(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "_common.yaml"), `defaults:
  hidden: false
descriptions:
  status: Show service status.
`)
	writeFile(t, filepath.Join(root, "status.yaml"), `- description: !COMMON descriptions.status
  _COMMON_: defaults
`)
	writeFile(t, filepath.Join(root, "compute", "_common.yaml"), `base:
  description: Work with compute instances.
extra_args:
  - --format=json
`)
	writeFile(t, filepath.Join(root, "compute", "instances", "list.yaml"), `- release_tracks: [stable]
  description: List instances.
- release_tracks: [beta, alpha]
  description: List instances (preview).
`)
	writeFile(t, filepath.Join(root, "compute", "describe.yaml"), `- _COMMON_: base
  exec:
    - echo
    - describe
    - _COMMON_extra_args
`)

	return root
}

func findByName(t *testing.T, cmds []*cobra.Command, name string) *cobra.Command {
	t.Helper()
	for _, c := range cmds {
		if c.Name() == name {
			return c
		}
	}
	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.Name())
	}
	t.Fatalf("command %q not found in %v", name, names)
	return nil
}
