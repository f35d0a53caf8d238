package loader

import (
	"github.com/treeline-labs/treeline/internal/element"
	"github.com/treeline-labs/treeline/internal/plugin"
	"github.com/treeline-labs/treeline/internal/track"
)

// Candidate is one implementation variant of an element: a deferred
// producer plus the release tracks it is valid for. An empty track set
// is a wildcard, valid only while the candidate stands alone.
type Candidate struct {
	Build  func() (plugin.Artifact, error)
	Tracks track.Set
}

// resolveTrack picks the single candidate implementing the requested
// track. The producer is returned unevaluated; building the losing
// candidates would run side effects the caller never asked for.
func resolveTrack(source string, requested track.Track, candidates []Candidate) (func() (plugin.Artifact, error), error) {
	// A lone candidate with no declared tracks follows whatever track
	// its parent was loaded under.
	if len(candidates) == 1 {
		c := candidates[0]
		if c.Tracks.Empty() || c.Tracks.Contains(requested) {
			return c.Build, nil
		}
		return nil, &element.TrackNotImplementedError{Track: requested, Source: source}
	}

	// With multiple candidates every one must claim its tracks, and no
	// track may be claimed twice anywhere in the list.
	claimed := track.NewSet()
	for _, c := range candidates {
		if c.Tracks.Empty() {
			return nil, element.Layoutf(
				"multiple implementations defined for element: [%s]; each must explicitly declare valid release tracks", source)
		}
		if dups := claimed.Intersect(c.Tracks); !dups.Empty() {
			return nil, element.Layoutf(
				"multiple definitions for release tracks [%s] for element: [%s]", dups, source)
		}
		claimed = claimed.Union(c.Tracks)
	}

	var matches []Candidate
	for _, c := range candidates {
		if c.Tracks.Contains(requested) {
			matches = append(matches, c)
		}
	}
	// Disjointness guarantees at most one match.
	if len(matches) != 1 {
		return nil, &element.TrackNotImplementedError{Track: requested, Source: source}
	}
	return matches[0].Build, nil
}
