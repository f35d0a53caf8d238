package element

import (
	"fmt"

	"github.com/treeline-labs/treeline/internal/track"
)

// LoadError reports that an implementation source could not be turned
// into candidates at all: a missing native module, a spec file in group
// position, a missing translator. It carries the tree path of the
// offending node and the root cause. A LoadError is fatal to its node
// but must never take down loading of unrelated nodes.
type LoadError struct {
	Path  Path
	Cause error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("problem loading %s: %v", e.Path, e.Cause)
}

// Unwrap exposes the root cause for errors.Is / errors.As chains.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// LayoutError reports that the command tree or a spec document violates
// a structural rule: illegal casing, wrong artifact kind, ambiguous
// multi-candidate lists, duplicate track claims, or a dangling common
// data reference. It always signals an authoring bug, never a transient
// condition.
type LayoutError struct {
	Message string
}

// Error implements the error interface.
func (e *LayoutError) Error() string {
	return e.Message
}

// Layoutf builds a LayoutError from a format string.
func Layoutf(format string, args ...any) *LayoutError {
	return &LayoutError{Message: fmt.Sprintf(format, args...)}
}

// TrackNotImplementedError reports that a well-formed element simply has
// no implementation for the requested release track. Callers typically
// skip the node rather than abort the tree, which is why this is a
// distinct type from LayoutError.
type TrackNotImplementedError struct {
	Track  track.Track
	Source string
}

// Error implements the error interface.
func (e *TrackNotImplementedError) Error() string {
	return fmt.Sprintf("no implementation for release track [%s] for element: [%s]", e.Track, e.Source)
}
