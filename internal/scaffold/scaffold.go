package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/treeline-labs/treeline/internal/branding"
	"github.com/treeline-labs/treeline/internal/specfile"
)

// Data holds all template variables available to scaffold templates.
type Data struct {
	Group   string // starter group name, e.g. "compute"
	Command string // starter command name inside the group, e.g. "list"
	CLIName string // root command name, from branding
	Year    int    // current year
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// NewData creates a Data with derived fields populated.
func NewData(group, command string) *Data {
	return &Data{
		Group:   group,
		Command: command,
		CLIName: branding.CLIName(),
		Year:    time.Now().Year(),
	}
}

// layout maps each embedded template to its output path relative to the
// generated commands directory.
func layout(d *Data) []struct{ tmpl, out string } {
	return []struct{ tmpl, out string }{
		{"scaffolds/commands/_common.yaml.tmpl", specfile.CommonFileName},
		{"scaffolds/commands/status.yaml.tmpl", "status" + specfile.Ext},
		{"scaffolds/commands/group/_common.yaml.tmpl", filepath.Join(d.Group, specfile.CommonFileName)},
		{"scaffolds/commands/group/command.yaml.tmpl", filepath.Join(d.Group, d.Command+specfile.Ext)},
	}
}

// Generate creates a starter commands directory at outputDir.
func Generate(data *Data, outputDir string) (*Result, error) {
	for _, name := range []string{data.Group, data.Command} {
		if name == "" {
			return nil, fmt.Errorf("group and command names must not be empty")
		}
		if strings.ToLower(name) != name {
			return nil, fmt.Errorf("commands and groups cannot have capital letters: %s", name)
		}
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	// Check for existing files to prevent accidental overwrites.
	existingEntries, err := os.ReadDir(outputDir)
	if err == nil && len(existingEntries) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", outputDir)
	}

	result := &Result{
		OutputDir: outputDir,
	}

	for _, f := range layout(data) {
		tmplBytes, err := fs.ReadFile(scaffoldFS, f.tmpl)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", f.tmpl, err)
		}

		tmpl, err := template.New(filepath.Base(f.tmpl)).Parse(string(tmplBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", f.tmpl, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("executing template %s: %w", f.tmpl, err)
		}

		outPath := filepath.Join(outputDir, f.out)
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", filepath.Dir(outPath), err)
		}
		if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}

		result.Files = append(result.Files, f.out)
	}

	// Validate the generated spec files against the JSON Schema.
	specs := specfile.NewLoader()
	for _, rel := range result.Files {
		if strings.HasPrefix(filepath.Base(rel), "_") {
			continue
		}
		valResult, valErr := specs.ValidateFile(filepath.Join(outputDir, rel))
		if valErr != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Could not validate %s: %v", rel, valErr))
			continue
		}
		if !valResult.Valid {
			for _, issue := range valResult.Issues {
				msg := issue.Message
				if issue.Path != "" {
					msg = issue.Path + ": " + msg
				}
				result.Warnings = append(result.Warnings, rel+": "+msg)
			}
		}
	}

	return result, nil
}
