package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/treeline-labs/treeline/internal/branding"
	"github.com/treeline-labs/treeline/internal/config"
	"github.com/treeline-labs/treeline/internal/plugin"
	"github.com/treeline-labs/treeline/internal/track"
	"github.com/treeline-labs/treeline/internal/translate"
	"github.com/treeline-labs/treeline/internal/tree"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	rootTrack   string
	rootVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` mounts its command tree from a directory of YAML spec files
and compiled-in command modules, resolving each element against the requested
release track (stable, beta, alpha).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if rootVerbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootTrack, "track", "", "Release track to load (stable, beta, alpha)")
	rootCmd.PersistentFlags().BoolVar(&rootVerbose, "verbose", false, "Enable debug logging")
}

// Execute runs the root command with build info injected via ldflags. The
// commands directory is mounted before dispatch so spec-defined commands
// behave exactly like compiled-in ones.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	config.Load()

	// The tree must exist before cobra parses anything, so the track
	// and verbosity flags are read from the raw arguments here.
	if hasFlag(os.Args[1:], "--verbose") {
		log.SetLevel(log.DebugLevel)
	}
	requested := requestedTrack(os.Args[1:])

	builder := tree.NewBuilder(plugin.Default(), translate.New(buildVersion), log.Default())
	cmds, err := builder.Build(config.CommandsDir(), requested)
	if err != nil {
		// A missing commands directory is normal before `treeline init`;
		// the compiled-in commands still work.
		log.Debug("commands directory not mounted", "dir", config.CommandsDir(), "err", err)
	}
	rootCmd.AddCommand(cmds...)

	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		return err
	}
	return nil
}

// requestedTrack picks the release track for this invocation: the --track
// argument when present, otherwise the configured default.
func requestedTrack(args []string) track.Track {
	if v, ok := flagValue(args, "--track"); ok {
		if tr, err := track.Parse(v); err == nil {
			return tr
		}
		log.Warn("ignoring invalid release track", "track", v)
	}
	tr, err := config.DefaultTrack()
	if err != nil {
		return track.Stable
	}
	return tr
}

func hasFlag(args []string, name string) bool {
	for _, a := range args {
		if a == name {
			return true
		}
	}
	return false
}

func flagValue(args []string, name string) (string, bool) {
	for i, a := range args {
		if a == name && i+1 < len(args) {
			return args[i+1], true
		}
		if len(a) > len(name) && a[:len(name)+1] == name+"=" {
			return a[len(name)+1:], true
		}
	}
	return "", false
}
