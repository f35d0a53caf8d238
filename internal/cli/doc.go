// Package cli defines the Cobra command tree for the treeline CLI. Compiled-in
// commands (version, config, init, validate, tree) each live in one file and
// register with the root command; everything else is mounted dynamically from
// the commands directory at startup. Command implementations delegate to
// internal packages for business logic and only handle flag parsing, I/O
// formatting, and user interaction.
package cli
