package config

import (
	"karmaconf/internal/karma"
)

// KarmaconfConfig is the top-level configuration structure for karmaconf.
type KarmaconfConfig struct {
	Karma   karma.Defaults  `yaml:"karma"`
	Project ProjectSettings `yaml:"project,omitempty"`
	Output  OutputSettings  `yaml:"output,omitempty"`
}

// ProjectSettings locates the project files karmaconf reads.
type ProjectSettings struct {
	Manifest string `yaml:"manifest,omitempty"` // package.json style file with name and version
	EnvFile  string `yaml:"envFile,omitempty"`  // optional dotenv file
}

// OutputFormat is the rendering of the generated configuration.
type OutputFormat string

const (
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
	OutputFormatTable OutputFormat = "table"
)

// OutputSettings controls how the configuration is emitted.
type OutputSettings struct {
	Format     OutputFormat `yaml:"format,omitempty"`
	LogLevel   string       `yaml:"logLevel,omitempty"`
	ConfigFile string       `yaml:"configFile,omitempty"` // file handed to the runner by `karmaconf run`
}
