package plugin

import (
	"github.com/treeline-labs/treeline/internal/track"
)

// Kind tags an artifact as a leaf command or a command group.
type Kind int

const (
	KindCommand Kind = iota
	KindGroup
)

// String returns a human-readable kind name for error messages.
func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Artifact is a fully constructed command or group. The loader never
// inspects an artifact beyond its kind; everything else belongs to the
// surface that mounts it (e.g. the cobra tree builder).
type Artifact interface {
	Kind() Kind
}

// Descriptor is one top-level definition inside a native module: an
// artifact plus the release tracks it is valid for. An empty track set
// on a module's only descriptor means it follows whatever track its
// parent group was loaded under.
type Descriptor interface {
	Artifact
	ValidTracks() track.Set
}

// Module is the set of top-level definitions a native implementation
// unit exposes, in declaration order.
type Module struct {
	Descriptors []Descriptor
}

// Group is a minimal group descriptor, used for groups that exist only
// as directories on disk or that need nothing beyond a description. An
// empty track set follows the parent's requested track.
type Group struct {
	Description string
	Tracks      track.Set
}

// Kind tags the descriptor as a group.
func (g *Group) Kind() Kind { return KindGroup }

// ValidTracks returns the tracks the group is declared for.
func (g *Group) ValidTracks() track.Set { return g.Tracks }

// Describe returns the group's one-line description.
func (g *Group) Describe() string { return g.Description }
