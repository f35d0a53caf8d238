package track

import (
	"fmt"
	"sort"
	"strings"
)

// Track identifies one release channel of a command or group.
type Track string

const (
	Stable Track = "stable"
	Beta   Track = "beta"
	Alpha  Track = "alpha"
)

// All returns every known track.
func All() []Track {
	return []Track{Stable, Beta, Alpha}
}

// Parse converts a string id to a Track. Unknown ids are an error so
// that typos in spec files surface at load time rather than silently
// producing an unreachable implementation.
func Parse(s string) (Track, error) {
	switch s {
	case "stable":
		return Stable, nil
	case "beta":
		return Beta, nil
	case "alpha":
		return Alpha, nil
	default:
		return "", fmt.Errorf("unknown release track %q: valid tracks are %s", s, idList())
	}
}

func idList() string {
	ids := make([]string, 0, len(All()))
	for _, t := range All() {
		ids = append(ids, string(t))
	}
	return strings.Join(ids, ", ")
}

// Set is an unordered collection of tracks. The zero value is empty.
// An empty set on a lone implementation candidate means "valid for
// whatever track the parent requested", not "valid for none".
type Set map[Track]struct{}

// NewSet builds a Set from the given tracks.
func NewSet(tracks ...Track) Set {
	s := make(Set, len(tracks))
	for _, t := range tracks {
		s[t] = struct{}{}
	}
	return s
}

// ParseSet parses a list of track ids into a Set.
func ParseSet(ids []string) (Set, error) {
	s := make(Set, len(ids))
	for _, id := range ids {
		t, err := Parse(id)
		if err != nil {
			return nil, err
		}
		s[t] = struct{}{}
	}
	return s, nil
}

// Contains reports whether t is a member of the set.
func (s Set) Contains(t Track) bool {
	_, ok := s[t]
	return ok
}

// Empty reports whether the set has no members.
func (s Set) Empty() bool {
	return len(s) == 0
}

// Intersect returns the tracks present in both sets.
func (s Set) Intersect(other Set) Set {
	out := make(Set)
	for t := range s {
		if other.Contains(t) {
			out[t] = struct{}{}
		}
	}
	return out
}

// Union adds all members of other into a new set.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for t := range s {
		out[t] = struct{}{}
	}
	for t := range other {
		out[t] = struct{}{}
	}
	return out
}

// Tracks returns the members sorted by id for deterministic output.
func (s Set) Tracks() []Track {
	out := make([]Track, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String renders the set as a comma-separated id list in sorted order.
func (s Set) String() string {
	ids := make([]string, 0, len(s))
	for _, t := range s.Tracks() {
		ids = append(ids, string(t))
	}
	return strings.Join(ids, ", ")
}
