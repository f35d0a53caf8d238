package element

import (
	"errors"
	"fmt"
	"testing"

	"github.com/treeline-labs/treeline/internal/track"
)

func TestPathChildDoesNotMutate(t *testing.T) {
	root := Path{"compute"}
	a := root.Child("instances")
	b := root.Child("networks")

	if a.String() != "compute.instances" {
		t.Errorf("a = %q, want compute.instances", a)
	}
	if b.String() != "compute.networks" {
		t.Errorf("b = %q, want compute.networks", b)
	}
	if root.String() != "compute" {
		t.Errorf("root mutated to %q", root)
	}
}

func TestLoadErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := error(&LoadError{Path: Path{"a", "b"}, Cause: cause})

	if !errors.Is(err, cause) {
		t.Error("LoadError should unwrap to its cause")
	}

	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatal("errors.As should match *LoadError")
	}
	if le.Path.String() != "a.b" {
		t.Errorf("Path = %q, want a.b", le.Path)
	}
	if want := "problem loading a.b: boom"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestLayoutf(t *testing.T) {
	err := Layoutf("bad name %q", "Foo")
	if err.Message != `bad name "Foo"` {
		t.Errorf("Message = %q", err.Message)
	}

	var le *LayoutError
	if !errors.As(fmt.Errorf("wrapped: %w", err), &le) {
		t.Error("errors.As should match *LayoutError through wrapping")
	}
}

func TestTrackNotImplementedError(t *testing.T) {
	err := &TrackNotImplementedError{Track: track.Beta, Source: "foo/bar.yaml"}
	want := "no implementation for release track [beta] for element: [foo/bar.yaml]"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
