package loader

import (
	"errors"

	"github.com/treeline-labs/treeline/internal/element"
	"github.com/treeline-labs/treeline/internal/plugin"
	"github.com/treeline-labs/treeline/internal/track"
)

// LoadElement builds the single artifact implementing an element for
// the requested release track. Every source contributes implementation
// candidates — one per matching native descriptor, one per spec-file
// entry — and the resolver picks exactly one. Only the winning
// candidate's producer runs, so rejected variants never construct
// anything.
func (s *Session) LoadElement(sources []Source, path element.Path, requested track.Track, isCommand bool) (plugin.Artifact, error) {
	if len(sources) == 0 {
		return nil, &element.LoadError{Path: path, Cause: errors.New("no implementation sources")}
	}

	var candidates []Candidate
	for _, src := range sources {
		var (
			found []Candidate
			err   error
		)
		if src.IsSpec() {
			found, err = s.specCandidates(src, path, isCommand)
		} else {
			found, err = s.nativeCandidates(src, path, isCommand)
		}
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, found...)
	}

	build, err := resolveTrack(sources[0].String(), requested, candidates)
	if err != nil {
		return nil, err
	}
	return build()
}

// specCandidates parses a declarative spec file into one candidate per
// top-level entry. The producer defers translation until the candidate
// wins resolution.
func (s *Session) specCandidates(src Source, path element.Path, isCommand bool) ([]Candidate, error) {
	if !isCommand {
		return nil, &element.LoadError{
			Path:  path,
			Cause: errors.New("command groups cannot be implemented in spec files"),
		}
	}
	if s.translator == nil {
		return nil, &element.LoadError{
			Path:  path,
			Cause: errors.New("no spec translator has been registered"),
		}
	}

	entries, err := s.specs.Load(src.FilePath)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(entries))
	for _, entry := range entries {
		ids, err := entry.Tracks()
		if err != nil {
			return nil, element.Layoutf("spec file [%s]: %v", src.FilePath, err)
		}
		tracks, err := track.ParseSet(ids)
		if err != nil {
			return nil, element.Layoutf("spec file [%s]: %v", src.FilePath, err)
		}

		entry := entry
		candidates = append(candidates, Candidate{
			Build: func() (plugin.Artifact, error) {
				return s.translator.Translate(path, entry)
			},
			Tracks: tracks,
		})
	}
	return candidates, nil
}

// nativeCandidates looks up the native module for an element and turns
// its descriptors into candidates. Lookup failures are wrapped into a
// LoadError carrying the tree path, so one broken module cannot abort
// loading of unrelated elements.
func (s *Session) nativeCandidates(src Source, path element.Path, isCommand bool) ([]Candidate, error) {
	lookupPath := path
	if src.IsNative() {
		lookupPath = src.NativePath
	}

	mod, err := s.registry.Lookup(lookupPath)
	if err != nil {
		return nil, &element.LoadError{Path: path, Cause: err}
	}

	var commands, groups []plugin.Descriptor
	for _, d := range mod.Descriptors {
		switch d.Kind() {
		case plugin.KindCommand:
			commands = append(commands, d)
		case plugin.KindGroup:
			groups = append(groups, d)
		}
	}

	var matching []plugin.Descriptor
	if isCommand {
		if len(groups) > 0 {
			return nil, element.Layoutf("you cannot define groups in a command module: [%s]", src)
		}
		if len(commands) == 0 {
			return nil, element.Layoutf("no commands defined in module: [%s]", src)
		}
		matching = commands
	} else {
		if len(commands) > 0 {
			return nil, element.Layoutf("you cannot define commands in a command group module: [%s]", src)
		}
		if len(groups) == 0 {
			return nil, element.Layoutf("no command groups defined in module: [%s]", src)
		}
		matching = groups
	}

	candidates := make([]Candidate, 0, len(matching))
	for _, d := range matching {
		d := d
		candidates = append(candidates, Candidate{
			Build:  func() (plugin.Artifact, error) { return d, nil },
			Tracks: d.ValidTracks(),
		})
	}
	return candidates, nil
}
