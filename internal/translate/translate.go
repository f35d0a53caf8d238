package translate

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/treeline-labs/treeline/internal/element"
	"github.com/treeline-labs/treeline/internal/plugin"
	"github.com/treeline-labs/treeline/internal/specfile"
	"github.com/treeline-labs/treeline/internal/version"
)

// Command is a leaf artifact backed by a cobra command.
type Command struct {
	cmd *cobra.Command
}

// Kind tags the artifact as a leaf command.
func (c *Command) Kind() plugin.Kind { return plugin.KindCommand }

// Cobra returns the underlying cobra command for mounting.
func (c *Command) Cobra() *cobra.Command { return c.cmd }

// Translator builds cobra commands from spec file entries. The zero
// value is not usable; construct with New.
type Translator struct {
	cliVersion string
}

// New returns a Translator that gates entries declaring a
// min_cli_version against the given running CLI version.
func New(cliVersion string) *Translator {
	return &Translator{cliVersion: cliVersion}
}

// Translate builds the artifact for one resolved spec entry. The
// command name is the last segment of the tree path.
func (t *Translator) Translate(path element.Path, entry specfile.Entry) (plugin.Artifact, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("spec entries cannot be translated at the tree root")
	}
	name := path[len(path)-1]

	if min, ok := entry["min_cli_version"].(string); ok && min != "" {
		satisfied, err := version.AtLeast(t.cliVersion, min)
		if err != nil {
			return nil, fmt.Errorf("command %s: invalid min_cli_version %q: %w", path, min, err)
		}
		if !satisfied {
			return nil, fmt.Errorf("command %s requires CLI version %s or newer (running %s)", path, min, t.cliVersion)
		}
	}

	cmd := &cobra.Command{
		Use:           name,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	if desc, ok := entry["description"].(string); ok {
		cmd.Short = desc
	}
	if hidden, ok := entry["hidden"].(bool); ok {
		cmd.Hidden = hidden
	}

	argv, err := execArgv(entry)
	if err != nil {
		return nil, fmt.Errorf("command %s: %w", path, err)
	}
	if argv != nil {
		cmd.RunE = func(c *cobra.Command, args []string) error {
			return runExec(c, argv, args)
		}
	}

	return &Command{cmd: cmd}, nil
}

// execArgv extracts the exec field as a non-empty argv, or nil when
// the entry declares no executable.
func execArgv(entry specfile.Entry) ([]string, error) {
	raw, ok := entry["exec"]
	if !ok {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("exec must be a list of strings")
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("exec must not be empty")
	}
	argv := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("exec must be a list of strings, got %T", item)
		}
		argv = append(argv, s)
	}
	return argv, nil
}

func runExec(c *cobra.Command, argv, extra []string) error {
	bin, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", argv[0], err)
	}
	all := append(append([]string{}, argv[1:]...), extra...)
	cmd := exec.CommandContext(c.Context(), bin, all...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = c.OutOrStdout()
	cmd.Stderr = c.ErrOrStderr()
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", argv[0], err)
	}
	return nil
}
