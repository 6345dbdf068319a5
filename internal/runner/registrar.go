package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"karmaconf/internal/cli"
	"karmaconf/internal/config"
	"karmaconf/internal/karma"
	"karmaconf/pkg/logging"
)

// ConfigEnvVar names the variable that tells the runner where the generated
// configuration lives. A one-line karma.conf.js shim reads it:
//
//	module.exports = k => k.set(require(process.env.KARMACONF_CONFIG))
const ConfigEnvVar = "KARMACONF_CONFIG"

// Registrar hands a finished configuration to the test runner. Ownership of
// the configuration passes to the registrar.
type Registrar interface {
	Register(ctx context.Context, cfg *karma.Config) error
}

// FileRegistrar writes the configuration document to Path.
type FileRegistrar struct {
	Path   string
	Format config.OutputFormat
}

// Register writes cfg atomically: a temp file in the same directory is
// renamed over Path.
func (f *FileRegistrar) Register(ctx context.Context, cfg *karma.Config) error {
	format := f.Format
	if format == "" || format == config.OutputFormatTable {
		format = config.OutputFormatJSON
	}
	data, err := cli.Encode(cfg, format)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.Path)
	tmp, err := os.CreateTemp(dir, ".karmaconf-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions on %s: %w", tmp.Name(), err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("failed to write configuration to %s: %w", f.Path, err)
	}

	logging.Info("Runner", "Wrote configuration to %s", f.Path)
	return nil
}

// ExitError carries the exit status of a runner command that failed.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("runner exited with status %d: %v", e.Code, e.Err)
}

func (e *ExitError) Unwrap() error { return e.Err }

// For mocking in tests
var execCommandContext = exec.CommandContext

// CommandRegistrar writes the configuration file and then runs the test
// runner with ConfigEnvVar pointing at it. The runner's stdio is passed through.
type CommandRegistrar struct {
	File    FileRegistrar
	Command []string
	// Env holds KEY=value pairs added to the runner's environment. Variables
	// the inherited environment already sets are not overridden.
	Env    []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Register writes the file and blocks until the runner exits.
func (c *CommandRegistrar) Register(ctx context.Context, cfg *karma.Config) error {
	if len(c.Command) == 0 {
		return errors.New("no runner command given")
	}
	if err := c.File.Register(ctx, cfg); err != nil {
		return err
	}

	configPath, err := filepath.Abs(c.File.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", c.File.Path, err)
	}

	cmd := execCommandContext(ctx, c.Command[0], c.Command[1:]...)
	env := cmd.Env
	if env == nil {
		env = os.Environ()
	}
	env = mergeEnv(env, c.Env)
	cmd.Env = append(env, ConfigEnvVar+"="+configPath)
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	logging.Info("Runner", "Starting %v", c.Command)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode(), Err: err}
		}
		return fmt.Errorf("failed to run %s: %w", c.Command[0], err)
	}
	return nil
}

// mergeEnv appends the extra pairs whose keys base does not set.
func mergeEnv(base, extra []string) []string {
	if len(extra) == 0 {
		return base
	}
	set := make(map[string]bool, len(base))
	for _, kv := range base {
		k, _, _ := strings.Cut(kv, "=")
		set[k] = true
	}
	merged := append([]string(nil), base...)
	for _, kv := range extra {
		k, _, ok := strings.Cut(kv, "=")
		if !ok || set[k] {
			continue
		}
		set[k] = true
		merged = append(merged, kv)
	}
	return merged
}
