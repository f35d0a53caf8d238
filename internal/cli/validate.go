package cli

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/treeline-labs/treeline/internal/config"
	"github.com/treeline-labs/treeline/internal/specfile"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Validate spec files against the schema",
	Long: `Validate spec files against the built-in JSON Schema.

Without arguments, every spec file under the configured commands directory is
checked. Common-data markers are resolved before validation, so a file is
checked as the loader would actually see it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		files := args
		if len(files) == 0 {
			var err error
			files, err = collectSpecFiles(config.CommandsDir())
			if err != nil {
				return err
			}
		}
		if len(files) == 0 {
			fmt.Println("No spec files found.")
			return nil
		}

		specs := specfile.NewLoader()
		invalid := 0
		for _, file := range files {
			result, err := specs.ValidateFile(file)
			if err != nil {
				invalid++
				fmt.Printf("%s: %v\n", file, err)
				continue
			}
			if !result.Valid {
				invalid++
				for _, issue := range result.Issues {
					msg := issue.Message
					if issue.Path != "" {
						msg = issue.Path + ": " + msg
					}
					fmt.Printf("%s: %s\n", file, msg)
				}
				continue
			}
			fmt.Printf("%s: ok\n", file)
		}

		if invalid > 0 {
			return fmt.Errorf("%d of %d spec files failed validation", invalid, len(files))
		}
		return nil
	},
}

// collectSpecFiles walks the commands directory for spec files, skipping
// common-data files and hidden entries.
func collectSpecFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(name, specfile.Ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return files, nil
}
