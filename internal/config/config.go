package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/treeline-labs/treeline/internal/branding"
	"github.com/treeline-labs/treeline/internal/track"
)

const (
	fileName = "config"
	fileType = "yaml"

	// KeyCommandsDir is the directory scanned for command definitions.
	KeyCommandsDir = "commands_dir"
	// KeyDefaultTrack is the release track used when --track is absent.
	KeyDefaultTrack = "default_track"
)

// Dir returns the path to the config directory (~/.treeline/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.treeline/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	viper.SetDefault(KeyDefaultTrack, string(track.Stable))

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// CommandsDir returns the configured commands directory, falling back
// to ./commands under the current working directory.
func CommandsDir() string {
	if dir := Get(KeyCommandsDir); dir != "" {
		return dir
	}
	return "commands"
}

// DefaultTrack returns the configured default release track.
func DefaultTrack() (track.Track, error) {
	return track.Parse(Get(KeyDefaultTrack))
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
