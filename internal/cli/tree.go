package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/treeline-labs/treeline/internal/config"
	"github.com/treeline-labs/treeline/internal/plugin"
	"github.com/treeline-labs/treeline/internal/track"
	"github.com/treeline-labs/treeline/internal/translate"
	"github.com/treeline-labs/treeline/internal/tree"
)

func init() {
	rootCmd.AddCommand(treeCmd)
}

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the resolved command tree per release track",
	Long: `Print the command tree the loader resolves for each release track.

Elements that only exist on some tracks appear under those tracks only, which
makes the command useful for checking where a new variant actually lands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := config.CommandsDir()
		for _, tr := range track.All() {
			fmt.Fprintf(cmd.OutOrStdout(), "[%s]\n", tr)

			builder := tree.NewBuilder(plugin.Default(), translate.New(buildVersion), log.Default())
			cmds, err := builder.Build(dir, tr)
			if err != nil {
				return fmt.Errorf("loading %s for track %s: %w", dir, tr, err)
			}
			printCommands(cmd.OutOrStdout(), cmds, "  ")
		}
		return nil
	},
}

func printCommands(w io.Writer, cmds []*cobra.Command, indent string) {
	sorted := append([]*cobra.Command{}, cmds...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name() < sorted[j].Name() })
	for _, c := range sorted {
		if c.Short != "" {
			fmt.Fprintf(w, "%s%s  (%s)\n", indent, c.Name(), c.Short)
		} else {
			fmt.Fprintf(w, "%s%s\n", indent, c.Name())
		}
		printCommands(w, c.Commands(), indent+"  ")
	}
}
