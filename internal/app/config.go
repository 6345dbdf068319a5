package app

import (
	"io"
	"os"
	"time"

	"karmaconf/internal/config"
)

// Mode selects what happens to the configuration after it is built.
type Mode int

const (
	// ModeGenerate prints the configuration and optionally writes it to a file.
	ModeGenerate Mode = iota
	// ModeRun writes the configuration file and starts the runner command.
	ModeRun
)

// Config holds the application configuration
type Config struct {
	Mode Mode

	// Debug settings
	Debug bool

	// ConfigPath replaces the user/project layers with a single directory.
	ConfigPath string

	// Environment inputs
	Platform        string
	ProjectManifest string
	EnvFile         string
	Coverage        bool
	Args            []string // passthrough arguments; the runner command in ModeRun

	// Output settings
	Output    config.OutputFormat
	WriteFile string
	Copy      bool
	Summary   bool

	Stdout io.Writer
	Stderr io.Writer
	Now    func() time.Time

	// Layered configuration, set by NewApplication
	KarmaconfConfig *config.KarmaconfConfig
}

// NewConfig creates a new application configuration
func NewConfig(mode Mode, debug bool, configPath string) *Config {
	return &Config{
		Mode:       mode,
		Debug:      debug,
		ConfigPath: configPath,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Now:        time.Now,
	}
}

// invocationArgs are the arguments the coverage stage inspects: the
// passthrough arguments plus the coverage token when --coverage was given.
func (c *Config) invocationArgs(coverageFlag string) []string {
	args := append([]string(nil), c.Args...)
	if c.Coverage && coverageFlag != "" {
		args = append(args, coverageFlag)
	}
	return args
}
