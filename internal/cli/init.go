package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/treeline-labs/treeline/internal/branding"
	"github.com/treeline-labs/treeline/internal/scaffold"
)

var (
	initDir     string
	initGroup   string
	initCommand string
)

func init() {
	initCmd.Flags().StringVar(&initDir, "dir", "commands", "Directory to create the command tree in")
	initCmd.Flags().StringVar(&initGroup, "group", "compute", "Name of the starter command group")
	initCmd.Flags().StringVar(&initCommand, "command", "list", "Name of the starter command inside the group")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter command directory",
	Long: `Create a starter command directory from embedded templates.

The generated tree contains a shared-data file, a top-level command, and a
group whose command ships separate release track variants, demonstrating the
!COMMON and _COMMON_ markers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := scaffold.Generate(scaffold.NewData(initGroup, initCommand), initDir)
		if err != nil {
			return fmt.Errorf("generating command directory: %w", err)
		}

		fmt.Printf("Created %s\n", result.OutputDir)
		for _, f := range result.Files {
			fmt.Printf("  %s\n", f)
		}
		for _, w := range result.Warnings {
			fmt.Printf("Warning: %s\n", w)
		}

		fmt.Printf("\nRun '%s config set commands_dir %s' to mount it.\n", branding.CLIName(), initDir)
		return nil
	},
}
