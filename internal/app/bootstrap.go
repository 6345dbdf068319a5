package app

import (
	"context"
	"errors"
	"fmt"

	"karmaconf/internal/config"
	"karmaconf/internal/environment"
	"karmaconf/internal/karma"
	"karmaconf/internal/project"
	"karmaconf/pkg/logging"
)

// Application is the main application structure that bootstraps and runs karmaconf
type Application struct {
	config   *Config
	snapshot environment.Snapshot
	pipeline *karma.Pipeline
}

// NewApplication creates and initializes a new application instance
func NewApplication(cfg *Config) (*Application, error) {
	logging.InitForCLI(logLevel(cfg.Debug, ""), cfg.Stderr)

	// Load karmaconf configuration
	var kcfg config.KarmaconfConfig
	var err error

	if cfg.ConfigPath != "" {
		kcfg, err = config.LoadConfigFromPath(cfg.ConfigPath)
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load karmaconf configuration from path: %s", cfg.ConfigPath)
			return nil, fmt.Errorf("failed to load karmaconf configuration from path %s: %w", cfg.ConfigPath, err)
		}
		logging.Debug("Bootstrap", "Loaded configuration from custom path: %s", cfg.ConfigPath)
	} else {
		kcfg, err = config.LoadConfig()
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load karmaconf configuration")
			return nil, fmt.Errorf("failed to load karmaconf configuration: %w", err)
		}
		logging.Debug("Bootstrap", "Loaded configuration using layered approach")
	}

	// Command line flags win over configuration files
	if cfg.Output != "" {
		kcfg.Output.Format = cfg.Output
	}
	if cfg.ProjectManifest != "" {
		kcfg.Project.Manifest = cfg.ProjectManifest
	}
	if err := kcfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.KarmaconfConfig = &kcfg

	logging.InitForCLI(logLevel(cfg.Debug, kcfg.Output.LogLevel), cfg.Stderr)

	envFile, required := kcfg.Project.EnvFile, false
	if cfg.EnvFile != "" {
		envFile, required = cfg.EnvFile, true
	}
	snap, err := environment.Load(cfg.invocationArgs(kcfg.Karma.Coverage.Flag), cfg.Platform, []string{envFile}, required)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	return &Application{
		config:   cfg,
		snapshot: snap,
		pipeline: &karma.Pipeline{
			Defaults: kcfg.Karma,
			Project:  project.NewFileSource(kcfg.Project.Manifest),
			Now:      cfg.Now,
		},
	}, nil
}

// Run executes the application in the appropriate mode
func (a *Application) Run(ctx context.Context) error {
	cfg, res, err := a.pipeline.Build(a.snapshot)
	if a.config.Summary {
		writeSummary(a.config.Stderr, a.snapshot, res, cfg)
	}
	if errors.Is(err, karma.ErrRunnerDisabled) {
		// Designed exit: nothing to configure on this CI job.
		return nil
	}
	if err != nil {
		return err
	}

	switch a.config.Mode {
	case ModeRun:
		return runMode(ctx, a.config, a.snapshot, cfg)
	default:
		return generateMode(ctx, a.config, cfg)
	}
}

func logLevel(debug bool, configured string) logging.LogLevel {
	if debug {
		return logging.LevelDebug
	}
	level, err := logging.ParseLevel(configured)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}
