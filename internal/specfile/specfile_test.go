package specfile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/treeline-labs/treeline/internal/element"
)

// writeDir lays out a spec directory: keys are file names, values are
// file contents.
func writeDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoadDocumentPlainRoundTrip(t *testing.T) {
	content := `
- description: lists the things
  release_tracks: [stable, beta]
  exec: [echo, hello]
- description: creates a thing
  nested:
    a: 1
    b: [x, y]
`
	dir := writeDir(t, map[string]string{"things.yaml": content})
	path := filepath.Join(dir, "things.yaml")

	got, err := NewLoader().LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}

	// Without any markers the extension loader must produce exactly what
	// a plain parse produces.
	var want any
	if err := yaml.Unmarshal([]byte(content), &want); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadDocument = %#v, want %#v", got, want)
	}
}

func TestScalarInclude(t *testing.T) {
	dir := writeDir(t, map[string]string{
		CommonFileName: "foo:\n  a: b\n",
		"cmd.yaml":     "bar: !COMMON foo.a\n",
	})

	got, err := NewLoader().LoadDocument(filepath.Join(dir, "cmd.yaml"))
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}

	want := map[string]any{"bar": "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadDocument = %#v, want %#v", got, want)
	}
}

func TestMappingMerge(t *testing.T) {
	dir := writeDir(t, map[string]string{
		CommonFileName: "foo:\n  a: b\n  c: d\n",
		"cmd.yaml":     "bar:\n  _COMMON_: foo\n  i: j\n",
	})

	got, err := NewLoader().LoadDocument(filepath.Join(dir, "cmd.yaml"))
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}

	want := map[string]any{"bar": map[string]any{"a": "b", "c": "d", "i": "j"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadDocument = %#v, want %#v", got, want)
	}
}

func TestMappingMergeMultiplePaths(t *testing.T) {
	dir := writeDir(t, map[string]string{
		CommonFileName: "foo:\n  a: b\nextra:\n  c: d\n",
		"cmd.yaml":     "bar:\n  _COMMON_: foo,extra\n  i: j\n",
	})

	got, err := NewLoader().LoadDocument(filepath.Join(dir, "cmd.yaml"))
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}

	want := map[string]any{"bar": map[string]any{"a": "b", "c": "d", "i": "j"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadDocument = %#v, want %#v", got, want)
	}
}

func TestMergedEntriesOverwriteExistingKeys(t *testing.T) {
	dir := writeDir(t, map[string]string{
		CommonFileName: "foo:\n  a: common\n",
		"cmd.yaml":     "bar:\n  a: local\n  _COMMON_: foo\n",
	})

	got, err := NewLoader().LoadDocument(filepath.Join(dir, "cmd.yaml"))
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}

	want := map[string]any{"bar": map[string]any{"a": "common"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadDocument = %#v, want %#v", got, want)
	}
}

func TestSequenceMerge(t *testing.T) {
	dir := writeDir(t, map[string]string{
		CommonFileName: "baz:\n- e: f\n- g: h\n",
		"cmd.yaml":     "bar:\n- _COMMON_baz\n- i: j\n",
	})

	got, err := NewLoader().LoadDocument(filepath.Join(dir, "cmd.yaml"))
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}

	want := map[string]any{"bar": []any{
		map[string]any{"e": "f"},
		map[string]any{"g": "h"},
		map[string]any{"i": "j"},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadDocument = %#v, want %#v", got, want)
	}
}

func TestSequenceMergePreservesOrder(t *testing.T) {
	dir := writeDir(t, map[string]string{
		CommonFileName: "mid:\n- two\n- three\n",
		"cmd.yaml":     "list:\n- one\n- _COMMON_mid\n- four\n",
	})

	got, err := NewLoader().LoadDocument(filepath.Join(dir, "cmd.yaml"))
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}

	want := map[string]any{"list": []any{"one", "two", "three", "four"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadDocument = %#v, want %#v", got, want)
	}
}

func TestMarkersResolveAtDepth(t *testing.T) {
	dir := writeDir(t, map[string]string{
		CommonFileName: "flags:\n  name: verbose\n",
		"cmd.yaml": `
- description: deep merge
  arguments:
    params:
      - flag:
          _COMMON_: flags
          extra: true
`,
	})

	entries, err := NewLoader().Load(filepath.Join(dir, "cmd.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	args := entries[0]["arguments"].(map[string]any)
	params := args["params"].([]any)
	flag := params[0].(map[string]any)["flag"].(map[string]any)
	if flag["name"] != "verbose" {
		t.Errorf("flag = %#v, want merged name=verbose", flag)
	}
	if flag["extra"] != true {
		t.Errorf("flag = %#v, want extra=true preserved", flag)
	}
}

func TestIncludeWithoutCommonFileFails(t *testing.T) {
	dir := writeDir(t, map[string]string{
		"cmd.yaml": "bar: !COMMON foo.a\n",
	})

	_, err := NewLoader().LoadDocument(filepath.Join(dir, "cmd.yaml"))
	var le *element.LayoutError
	if !errors.As(err, &le) {
		t.Fatalf("err = %v, want LayoutError", err)
	}
	if want := "cmd.yaml"; !containsAll(le.Message, want, CommonFileName) {
		t.Errorf("message %q should name the spec file and %s", le.Message, CommonFileName)
	}
}

func TestMissingAttributeFailsNamingPath(t *testing.T) {
	dir := writeDir(t, map[string]string{
		CommonFileName: "foo:\n  a: b\n",
		"cmd.yaml":     "bar: !COMMON foo.missing.deep\n",
	})

	_, err := NewLoader().LoadDocument(filepath.Join(dir, "cmd.yaml"))
	var le *element.LayoutError
	if !errors.As(err, &le) {
		t.Fatalf("err = %v, want LayoutError", err)
	}
	if !containsAll(le.Message, "[missing]", "[foo.missing.deep]", "cmd.yaml") {
		t.Errorf("message %q should name segment, full path, and file", le.Message)
	}
}

func TestEmptyResolvedValueFails(t *testing.T) {
	dir := writeDir(t, map[string]string{
		CommonFileName: "foo:\n  a: \"\"\n",
		"cmd.yaml":     "bar: !COMMON foo.a\n",
	})

	_, err := NewLoader().LoadDocument(filepath.Join(dir, "cmd.yaml"))
	var le *element.LayoutError
	if !errors.As(err, &le) {
		t.Fatalf("err = %v, want LayoutError for empty resolved value", err)
	}
}

func TestFailureReturnsNoPartialDocument(t *testing.T) {
	dir := writeDir(t, map[string]string{
		"cmd.yaml": "ok: fine\nbad:\n  _COMMON_: foo\n",
	})

	doc, err := NewLoader().LoadDocument(filepath.Join(dir, "cmd.yaml"))
	if err == nil {
		t.Fatal("expected error for merge without common file")
	}
	if doc != nil {
		t.Errorf("doc = %#v, want nil on failure", doc)
	}
}

func TestCommonDocumentCachedPerDirectory(t *testing.T) {
	dir := writeDir(t, map[string]string{
		CommonFileName: "foo:\n  a: b\n",
		"one.yaml":     "x: !COMMON foo.a\n",
		"two.yaml":     "y: !COMMON foo.a\n",
	})

	l := NewLoader()
	if _, err := l.LoadDocument(filepath.Join(dir, "one.yaml")); err != nil {
		t.Fatalf("one.yaml: %v", err)
	}

	// Remove the common file: the cached copy must keep serving siblings
	// within the same session.
	if err := os.Remove(filepath.Join(dir, CommonFileName)); err != nil {
		t.Fatal(err)
	}
	if _, err := l.LoadDocument(filepath.Join(dir, "two.yaml")); err != nil {
		t.Errorf("two.yaml should resolve from the cached common doc: %v", err)
	}
}

func TestLoadRequiresTopLevelSequence(t *testing.T) {
	dir := writeDir(t, map[string]string{
		"cmd.yaml": "description: not a sequence\n",
	})

	_, err := NewLoader().Load(filepath.Join(dir, "cmd.yaml"))
	var le *element.LayoutError
	if !errors.As(err, &le) {
		t.Fatalf("err = %v, want LayoutError for non-sequence top level", err)
	}
}

func TestEntryTracks(t *testing.T) {
	e := Entry{"release_tracks": []any{"beta", "alpha"}}
	got, err := e.Tracks()
	if err != nil {
		t.Fatalf("Tracks: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"beta", "alpha"}) {
		t.Errorf("Tracks = %v", got)
	}

	if got, err := (Entry{}).Tracks(); err != nil || len(got) != 0 {
		t.Errorf("Tracks on empty entry = %v, %v; want empty, nil", got, err)
	}

	if _, err := (Entry{"release_tracks": "stable"}).Tracks(); err == nil {
		t.Error("scalar release_tracks should be an error")
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
