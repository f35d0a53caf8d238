package specfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/treeline-labs/treeline/internal/element"
)

const (
	// Ext is the reserved extension identifying declarative spec files.
	Ext = ".yaml"

	// CommonFileName is the reserved file supplying shared data for every
	// spec file in the same directory.
	CommonFileName = "_common.yaml"

	// IncludeTag marks a scalar to be replaced by a common-data value.
	IncludeTag = "!COMMON"

	// MergeKey marks a mapping or sequence position to be merged with
	// common-data content.
	MergeKey = "_COMMON_"

	// TracksField is the entry field naming the release tracks an entry
	// is valid for.
	TracksField = "release_tracks"
)

// Entry is one top-level command entry of a spec file.
type Entry map[string]any

// Loader parses spec files for one loading session. It caches each
// directory's common document so sibling spec files share a single
// parse. A Loader is not safe for concurrent use; every session owns
// its own.
type Loader struct {
	common map[string]map[string]any
}

// NewLoader returns a Loader with an empty common-document cache.
func NewLoader() *Loader {
	return &Loader{common: make(map[string]map[string]any)}
}

// Load parses the spec file at path and returns its command entries.
// The top level of a spec file must be a sequence of mappings.
func (l *Loader) Load(path string) ([]Entry, error) {
	doc, err := l.LoadDocument(path)
	if err != nil {
		return nil, err
	}

	seq, ok := doc.([]any)
	if !ok {
		return nil, element.Layoutf(
			"spec file [%s] must contain a sequence of command entries at the top level", path)
	}

	entries := make([]Entry, 0, len(seq))
	for i, item := range seq {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, element.Layoutf(
				"spec file [%s] entry %d is not a mapping", path, i)
		}
		entries = append(entries, Entry(m))
	}
	return entries, nil
}

// LoadDocument parses the document at path with the include and merge
// extensions active, returning plain nested maps, slices, and scalars.
// Any dangling common-data reference aborts the whole parse; a partial
// document is never returned.
func (l *Loader) LoadDocument(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec file %s: %w", path, err)
	}

	common, err := l.commonFor(filepath.Dir(path))
	if err != nil {
		return nil, err
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing spec file %s: %w", path, err)
	}
	if root.Kind == 0 {
		// Empty document.
		return nil, nil
	}

	r := &resolver{file: path, common: common}
	return r.resolve(&root)
}

// Tracks extracts the release_tracks field from an entry. A missing or
// empty field yields an empty, non-nil slice.
func (e Entry) Tracks() ([]string, error) {
	raw, ok := e[TracksField]
	if !ok || raw == nil {
		return []string{}, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be a sequence of track ids", TracksField)
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s entries must be strings, got %T", TracksField, item)
		}
		out = append(out, s)
	}
	return out, nil
}

// commonFor loads and caches the common document for a directory. A
// missing common file is recorded as nil; that only becomes an error if
// a spec file in the directory actually references common data.
func (l *Loader) commonFor(dir string) (map[string]any, error) {
	if doc, ok := l.common[dir]; ok {
		return doc, nil
	}

	path := filepath.Join(dir, CommonFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.common[dir] = nil
			return nil, nil
		}
		return nil, fmt.Errorf("reading common data %s: %w", path, err)
	}

	// The common document itself is parsed plain: extensions are only
	// active in the spec files that reference it.
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing common data %s: %w", path, err)
	}
	l.common[dir] = doc
	return doc, nil
}

// resolver walks a parsed node tree, replacing include and merge markers
// with common-data content at every nesting depth.
type resolver struct {
	file   string
	common map[string]any
}

func (r *resolver) resolve(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return r.resolve(n.Content[0])
	case yaml.AliasNode:
		return r.resolve(n.Alias)
	case yaml.ScalarNode:
		return r.resolveScalar(n)
	case yaml.MappingNode:
		return r.resolveMapping(n)
	case yaml.SequenceNode:
		return r.resolveSequence(n)
	default:
		return nil, element.Layoutf("spec file [%s] contains an unsupported node kind", r.file)
	}
}

func (r *resolver) resolveScalar(n *yaml.Node) (any, error) {
	if n.Tag == IncludeTag {
		return r.lookup(strings.TrimSpace(n.Value))
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, fmt.Errorf("parsing spec file %s: %w", r.file, err)
	}
	return v, nil
}

func (r *resolver) resolveMapping(n *yaml.Node) (any, error) {
	out := make(map[string]any, len(n.Content)/2)
	var mergePaths string
	var hasMerge bool

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]
		if keyNode.Kind == yaml.ScalarNode && keyNode.Value == MergeKey {
			// Pop the merge key; its value names the attribute paths to pull in.
			v, err := r.resolve(valNode)
			if err != nil {
				return nil, err
			}
			s, ok := v.(string)
			if !ok {
				return nil, element.Layoutf(
					"spec file [%s] merge key %s must hold a comma-separated attribute path list", r.file, MergeKey)
			}
			mergePaths = s
			hasMerge = true
			continue
		}

		v, err := r.resolve(valNode)
		if err != nil {
			return nil, err
		}
		out[keyNode.Value] = v
	}

	if hasMerge {
		for _, attrPath := range strings.Split(mergePaths, ",") {
			resolved, err := r.lookup(strings.TrimSpace(attrPath))
			if err != nil {
				return nil, err
			}
			m, ok := resolved.(map[string]any)
			if !ok {
				return nil, element.Layoutf(
					"spec file [%s] merge path [%s] does not resolve to a mapping", r.file, attrPath)
			}
			// Merged entries overwrite same-named keys already present.
			for k, v := range m {
				out[k] = v
			}
		}
	}

	return out, nil
}

func (r *resolver) resolveSequence(n *yaml.Node) (any, error) {
	out := make([]any, 0, len(n.Content))
	for _, e := range n.Content {
		if e.Kind == yaml.ScalarNode && e.Tag == "!!str" && strings.HasPrefix(e.Value, MergeKey) {
			for _, attrPath := range strings.Split(strings.TrimPrefix(e.Value, MergeKey), ",") {
				resolved, err := r.lookup(strings.TrimSpace(attrPath))
				if err != nil {
					return nil, err
				}
				list, ok := resolved.([]any)
				if !ok {
					return nil, element.Layoutf(
						"spec file [%s] merge path [%s] does not resolve to a sequence", r.file, attrPath)
				}
				out = append(out, list...)
			}
			continue
		}

		v, err := r.resolve(e)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// lookup resolves a dot-separated attribute path against the common
// document. Each segment is a mapping-key lookup; a missing document,
// missing segment, or empty value fails the whole parse.
func (r *resolver) lookup(attrPath string) (any, error) {
	if r.common == nil {
		return nil, element.Layoutf(
			"spec file [%s] references common command data but %s does not exist", r.file, CommonFileName)
	}

	var value any = r.common
	for _, attr := range strings.Split(attrPath, ".") {
		m, ok := value.(map[string]any)
		if !ok {
			return nil, r.missingAttr(attr, attrPath)
		}
		next, ok := m[attr]
		if !ok || isEmpty(next) {
			return nil, r.missingAttr(attr, attrPath)
		}
		value = next
	}
	return value, nil
}

func (r *resolver) missingAttr(attr, attrPath string) error {
	return element.Layoutf(
		"spec file [%s] references common command data attribute [%s] in path [%s] but it does not exist",
		r.file, attr, attrPath)
}

// isEmpty mirrors the "falsy resolved value" rule: nil, empty strings,
// empty collections, false, and zero numbers are all treated as absent.
func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case int:
		return val == 0
	case int64:
		return val == 0
	case float64:
		return val == 0
	case map[string]any:
		return len(val) == 0
	case []any:
		return len(val) == 0
	default:
		return false
	}
}
