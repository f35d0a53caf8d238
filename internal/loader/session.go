package loader

import (
	"github.com/treeline-labs/treeline/internal/element"
	"github.com/treeline-labs/treeline/internal/plugin"
	"github.com/treeline-labs/treeline/internal/specfile"
)

// Translator turns one parsed spec entry into a command artifact. It is
// the pluggable boundary between the loader and whatever executes
// declarative commands; the loader never inspects the artifact beyond
// its kind.
type Translator interface {
	Translate(path element.Path, entry specfile.Entry) (plugin.Artifact, error)
}

// Session owns the state of one loading pass: a private view of the
// native-module registry, a spec-file loader with its common-data cache,
// and the translator for declarative entries. Sessions are not safe for
// concurrent use; run concurrent loads with separate sessions.
type Session struct {
	registry   *plugin.Registry
	specs      *specfile.Loader
	translator Translator
}

// NewSession starts a loading session over the given registry. The
// translator may be nil when the tree is known to contain no spec files.
func NewSession(registry *plugin.Registry, translator Translator) *Session {
	return &Session{
		registry:   registry,
		specs:      specfile.NewLoader(),
		translator: translator,
	}
}

// Registry exposes the session's registry view, letting the owning tree
// builder add session-scoped registrations.
func (s *Session) Registry() *plugin.Registry {
	return s.registry
}
