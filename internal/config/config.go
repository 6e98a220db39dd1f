package config

// Config represents the tool configuration
type Config struct {
	Manifest ManifestConfig `mapstructure:"manifest" yaml:"manifest"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// ManifestConfig controls how the manifest file is located
type ManifestConfig struct {
	// Path is an explicit manifest file path; when set it wins over Dir
	Path string `mapstructure:"path" yaml:"path"`
	// Dir is the directory the upward search for Cargo.toml starts from
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// OutputConfig contains snapshot output settings
type OutputConfig struct {
	// Path of the generated snapshot; the extension selects the format
	Path string `mapstructure:"path" yaml:"path"`
	// Package declared in a generated Go file
	Package string `mapstructure:"package" yaml:"package"`
	// Force overwrites an existing snapshot
	Force bool `mapstructure:"force" yaml:"force"`
	// DryRun performs all checks without writing
	DryRun bool `mapstructure:"dry_run" yaml:"dry_run"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate applies defaults for unset or invalid values
func (c *Config) Validate() error {
	if c.Manifest.Dir == "" {
		c.Manifest.Dir = "."
	}
	if c.Output.Path == "" {
		c.Output.Path = DefaultOutputPath
	}
	if c.Output.Package == "" {
		c.Output.Package = DefaultPackageName
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	return nil
}
