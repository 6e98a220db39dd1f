package config

import (
	"os"
	"path/filepath"
)

// Default values
const (
	// Output defaults
	DefaultOutputPath  = "cargo_meta.go"
	DefaultPackageName = "meta"

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cargometa"
	}
	return filepath.Join(home, ".cargometa")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Manifest: ManifestConfig{
			Dir: ".",
		},
		Output: OutputConfig{
			Path:    DefaultOutputPath,
			Package: DefaultPackageName,
			Force:   false,
			DryRun:  false,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
