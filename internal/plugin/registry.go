package plugin

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// KeyFor normalizes a tree path into a registry key: segments are
// slash-joined with dashes rewritten to underscores, so "compute/ssh-keys"
// and "compute/ssh_keys" can never alias two different modules.
func KeyFor(path []string) string {
	segs := make([]string, len(path))
	for i, p := range path {
		segs[i] = strings.ReplaceAll(p, "-", "_")
	}
	return strings.Join(segs, "/")
}

type entry struct {
	name   string // original last path segment, as commands spell it
	module *Module
}

// Registry maps normalized tree paths to native modules. Each loading
// session owns its registry (or a snapshot of the process default), so
// two concurrent sessions never observe each other's registrations.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]entry)}
}

// Register adds a module under the given tree path. Registering the same
// normalized path twice is an error: path uniqueness is what guarantees
// that the same command compiled in twice can never shadow itself.
func (r *Registry) Register(path []string, m *Module) error {
	if len(path) == 0 {
		return fmt.Errorf("cannot register a native module at the tree root")
	}
	key := KeyFor(path)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.modules[key]; exists {
		return fmt.Errorf("native module already registered for path %q", key)
	}
	r.modules[key] = entry{name: path[len(path)-1], module: m}
	return nil
}

// MustRegister is Register for package init blocks of compiled-in
// commands, where a duplicate registration is a programming error.
func (r *Registry) MustRegister(path []string, m *Module) {
	if err := r.Register(path, m); err != nil {
		panic(err)
	}
}

// Lookup returns the module registered under the given tree path.
func (r *Registry) Lookup(path []string) (*Module, error) {
	key := KeyFor(path)
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.modules[key]
	if !ok {
		return nil, fmt.Errorf("no native module registered for path %q", key)
	}
	return e.module, nil
}

// Children returns the element names registered exactly one segment
// below the given tree path, sorted. Names are reported as they were
// registered (dashes intact), not in normalized key form.
func (r *Registry) Children(path []string) []string {
	prefix := KeyFor(path)
	if prefix != "" {
		prefix += "/"
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for key, e := range r.modules {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := strings.TrimPrefix(key, prefix)
		if rest == "" || strings.Contains(rest, "/") {
			continue
		}
		seen[e.name] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy of the registry. Loading sessions
// clone the default registry so that per-session registrations (such as
// synthesized group modules) never leak into other sessions.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := NewRegistry()
	for key, e := range r.modules {
		out.modules[key] = e
	}
	return out
}

// defaultRegistry collects modules compiled into the binary.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry that compiled-in command
// packages register themselves into.
func Default() *Registry {
	return defaultRegistry
}
