package tree

import (
	"errors"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/treeline-labs/treeline/internal/element"
	"github.com/treeline-labs/treeline/internal/loader"
	"github.com/treeline-labs/treeline/internal/plugin"
	"github.com/treeline-labs/treeline/internal/track"
)

// Builder loads a command tree for one release track. Each Build call
// runs over a fresh session so spec-file caches and synthesized group
// registrations never leak between passes.
type Builder struct {
	registry   *plugin.Registry
	translator loader.Translator
	logger     *log.Logger
}

// NewBuilder returns a Builder over the given native-module registry.
// A nil registry uses the process-wide default; a nil logger discards
// nothing and writes to the default logger.
func NewBuilder(registry *plugin.Registry, translator loader.Translator, logger *log.Logger) *Builder {
	if registry == nil {
		registry = plugin.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{registry: registry, translator: translator, logger: logger}
}

// Build walks the command directory rooted at dir and returns the
// top-level commands that resolve for the requested track. A missing
// or unreadable root is an error; everything below it degrades per
// element.
func (b *Builder) Build(dir string, requested track.Track) ([]*cobra.Command, error) {
	session := loader.NewSession(b.registry.Clone(), b.translator)
	return b.buildChildren(session, []loader.Source{loader.FileSource(dir)}, nil, requested)
}

func (b *Builder) buildChildren(session *loader.Session, sources []loader.Source, path element.Path, requested track.Track) ([]*cobra.Command, error) {
	groups, commands, err := session.FindSubElements(sources, path)
	if err != nil {
		return nil, err
	}

	var mounted []*cobra.Command

	for _, name := range sortedNames(commands) {
		childPath := path.Child(name)
		art, err := session.LoadElement(commands[name], childPath, requested, true)
		if err != nil {
			b.skip(childPath, requested, err)
			continue
		}
		ca, ok := art.(CobraArtifact)
		if !ok {
			b.logger.Error("command artifact is not mountable", "element", childPath.String())
			continue
		}
		mounted = append(mounted, ca.Cobra())
	}

	for _, name := range sortedNames(groups) {
		childPath := path.Child(name)
		b.ensureGroupModule(session, childPath)

		art, err := session.LoadElement(groups[name], childPath, requested, false)
		if err != nil {
			b.skip(childPath, requested, err)
			continue
		}
		cmd := groupCommand(name, art)

		children, err := b.buildChildren(session, groups[name], childPath, requested)
		if err != nil {
			b.skip(childPath, requested, err)
			continue
		}
		if len(children) == 0 {
			b.logger.Debug("group has no commands for release track",
				"element", childPath.String(), "track", requested)
			continue
		}
		cmd.AddCommand(children...)
		mounted = append(mounted, cmd)
	}

	return mounted, nil
}

// ensureGroupModule registers a wildcard group descriptor for a
// directory that has no native module, so the group resolves under any
// track its parent was loaded with.
func (b *Builder) ensureGroupModule(session *loader.Session, path element.Path) {
	registry := session.Registry()
	if _, err := registry.Lookup(path); err == nil {
		return
	}
	registry.MustRegister(path, &plugin.Module{
		Descriptors: []plugin.Descriptor{&plugin.Group{}},
	})
}

// groupCommand returns the cobra command for a group artifact,
// synthesizing one when the artifact carries none of its own.
func groupCommand(name string, art plugin.Artifact) *cobra.Command {
	var cmd *cobra.Command
	if ca, ok := art.(CobraArtifact); ok {
		cmd = ca.Cobra()
	} else {
		cmd = &cobra.Command{Use: name}
	}
	if cmd.Short == "" {
		if d, ok := art.(Describer); ok {
			cmd.Short = d.Describe()
		}
	}
	return cmd
}

func (b *Builder) skip(path element.Path, requested track.Track, err error) {
	var notImpl *element.TrackNotImplementedError
	if errors.As(err, &notImpl) {
		b.logger.Debug("element not implemented for release track",
			"element", path.String(), "track", requested)
		return
	}
	b.logger.Error("skipping broken element", "element", path.String(), "err", err)
}

func sortedNames(c loader.Candidates) []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
