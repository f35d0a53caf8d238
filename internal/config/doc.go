// Package config manages user-level settings stored at ~/.treeline/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the commands directory and the default release track.
package config
