package element

import "strings"

// Path is the ordered list of element names leading from the tree root
// to a node. It exists for identity and error reporting only; callers
// treat it as immutable once built.
type Path []string

// Child returns a new path extended with one more segment. The receiver
// is never mutated, so paths held by earlier stack frames stay valid.
func (p Path) Child(name string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, name)
}

// String joins the segments with dots, the form used in error messages.
func (p Path) String() string {
	return strings.Join(p, ".")
}
