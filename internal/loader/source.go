package loader

import (
	"strings"

	"github.com/treeline-labs/treeline/internal/element"
	"github.com/treeline-labs/treeline/internal/plugin"
	"github.com/treeline-labs/treeline/internal/specfile"
)

// Source identifies one implementation location for an element: a group
// directory, a declarative spec file, or a native module registered
// under the element's tree path.
type Source struct {
	// FilePath is the directory or spec file path. Empty for native
	// sources.
	FilePath string
	// NativePath is the tree path of a registered native module. Nil
	// for filesystem sources.
	NativePath element.Path
}

// FileSource builds a Source for a directory or spec file.
func FileSource(path string) Source {
	return Source{FilePath: path}
}

// NativeSource builds a Source for a registered native module.
func NativeSource(path element.Path) Source {
	return Source{NativePath: path}
}

// IsNative reports whether the source is a registered native module.
func (s Source) IsNative() bool {
	return s.NativePath != nil
}

// IsSpec reports whether the source is a declarative spec file.
func (s Source) IsSpec() bool {
	return !s.IsNative() && strings.HasSuffix(s.FilePath, specfile.Ext)
}

// String returns the location identifier used in error messages.
func (s Source) String() string {
	if s.IsNative() {
		return "native:" + plugin.KeyFor(s.NativePath)
	}
	return s.FilePath
}

// Candidates maps an element name to the ordered list of sources that
// claim to implement it. A command defined both natively and in a spec
// file (for different release tracks) has two sources under one name.
type Candidates map[string][]Source

func (c Candidates) add(name string, src Source) {
	c[name] = append(c[name], src)
}
