package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"karmaconf/internal/cli"
	"karmaconf/internal/color"
	"karmaconf/internal/config"
	"karmaconf/internal/environment"
	"karmaconf/internal/karma"
	"karmaconf/internal/runner"
	"karmaconf/pkg/logging"

	"github.com/atotto/clipboard"
)

// For mocking in tests
var clipboardWriteAll = clipboard.WriteAll

// generateMode prints the configuration and writes it to a file when asked.
func generateMode(ctx context.Context, appCfg *Config, cfg *karma.Config) error {
	format := appCfg.KarmaconfConfig.Output.Format

	var dump bytes.Buffer
	if err := cli.WriteConfig(&dump, cfg, format); err != nil {
		return err
	}
	if _, err := appCfg.Stdout.Write(dump.Bytes()); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	if appCfg.Copy {
		doc, err := cli.Encode(cfg, documentFormat(format))
		if err == nil {
			err = clipboardWriteAll(string(doc))
		}
		if err != nil {
			logging.Warn("CLI", "Could not copy configuration to clipboard: %v", err)
		} else {
			logging.Info("CLI", "Configuration copied to clipboard")
		}
	}

	if appCfg.WriteFile == "" {
		return nil
	}
	registrar := &runner.FileRegistrar{Path: appCfg.WriteFile, Format: documentFormat(format)}
	return registrar.Register(ctx, cfg)
}

// runMode writes the configuration file and hands over to the runner command.
// Dotenv values the process does not set are passed on to the runner.
func runMode(ctx context.Context, appCfg *Config, snap environment.Snapshot, cfg *karma.Config) error {
	out := appCfg.KarmaconfConfig.Output
	if err := cli.WriteConfig(appCfg.Stdout, cfg, out.Format); err != nil {
		return err
	}

	path := appCfg.WriteFile
	if path == "" {
		path = out.ConfigFile
	}
	registrar := &runner.CommandRegistrar{
		File:    runner.FileRegistrar{Path: path, Format: documentFormat(out.Format)},
		Command: appCfg.Args,
		Env:     snap.DotenvEnviron(),
		Stdin:   os.Stdin,
		Stdout:  appCfg.Stdout,
		Stderr:  appCfg.Stderr,
	}
	return registrar.Register(ctx, cfg)
}

// documentFormat falls back to JSON when the display format is a table.
func documentFormat(format config.OutputFormat) config.OutputFormat {
	if format == config.OutputFormatYAML {
		return format
	}
	return config.OutputFormatJSON
}

// writeSummary prints one line per stage to w.
func writeSummary(w io.Writer, snap environment.Snapshot, res karma.Result, cfg *karma.Config) {
	color.Initialize(true)

	lines := []color.StageLine{
		{Stage: "gate", Enabled: !res.Gated, Detail: gateDetail(snap)},
	}
	if !res.Gated && cfg != nil {
		lines = append(lines,
			color.StageLine{Stage: "coverage", Enabled: res.Coverage},
			color.StageLine{Stage: "local browsers", Enabled: true, Detail: fmt.Sprintf("%s (%s)", res.Platform, snap.Platform)},
			color.StageLine{Stage: "sauce labs", Enabled: res.SauceLabs},
			color.StageLine{Stage: "browsers", Enabled: len(cfg.Browsers) > 0, Detail: strings.Join(cfg.Browsers, ", ")},
		)
	}
	fmt.Fprint(w, color.RenderSummary("karmaconf stages", lines))
}

func gateDetail(snap environment.Snapshot) string {
	if !snap.CI {
		return "not running under CI"
	}
	if snap.KarmaEnabled {
		return "CI with KARMA=true"
	}
	return "CI without KARMA=true"
}
