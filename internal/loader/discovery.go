package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/treeline-labs/treeline/internal/element"
	"github.com/treeline-labs/treeline/internal/specfile"
)

// FindSubElements enumerates the immediate children of a group: child
// group directories, declarative spec files (commands only), and native
// modules registered one segment below the group's tree path. Children
// are returned as two candidate sets, one for subgroups and one for
// subcommands, each mapping an element name to every source implementing
// it.
func (s *Session) FindSubElements(sources []Source, path element.Path) (groups, commands Candidates, err error) {
	if len(sources) != 1 {
		return nil, nil, &element.LoadError{
			Path:  path,
			Cause: errors.New("command groups cannot be implemented in spec files"),
		}
	}

	dir := sources[0].FilePath
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, &element.LoadError{Path: path, Cause: err}
	}

	groups = make(Candidates)
	commands = make(Candidates)

	for _, e := range entries {
		name := e.Name()
		// Reserved names: the common-data file, editor droppings, and
		// anything deliberately hidden.
		if strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") {
			continue
		}

		switch {
		case e.IsDir():
			if err := checkName(name); err != nil {
				return nil, nil, err
			}
			groups.add(name, FileSource(filepath.Join(dir, name)))
		case strings.HasSuffix(name, specfile.Ext):
			if err := checkName(name); err != nil {
				return nil, nil, err
			}
			commands.add(strings.TrimSuffix(name, specfile.Ext), FileSource(filepath.Join(dir, name)))
		}
		// Anything else in the directory is not a command source.
	}

	// Native modules one segment below this path. A module sharing a
	// name with a subdirectory implements that group and is picked up
	// when the group itself is loaded; everything else is a command.
	for _, name := range s.registry.Children(path) {
		if err := checkName(name); err != nil {
			return nil, nil, err
		}
		if _, isGroup := groups[name]; isGroup {
			continue
		}
		commands.add(name, NativeSource(path.Child(name)))
	}

	return groups, commands, nil
}

// checkName enforces the element naming rule: no uppercase characters.
func checkName(name string) error {
	if strings.ToLower(name) != name {
		return element.Layoutf("commands and groups cannot have capital letters: %s", name)
	}
	return nil
}
