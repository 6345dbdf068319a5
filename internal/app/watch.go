package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"karmaconf/internal/config"
	"karmaconf/pkg/logging"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce absorbs the burst of events editors produce for one save.
const watchDebounce = 100 * time.Millisecond

// Watch generates the configuration once and again whenever one of its
// inputs changes: the configuration layers, the project manifest or the env
// file. It returns when ctx is cancelled. Failed regenerations are logged and
// the previous output stays in place.
func Watch(ctx context.Context, cfg *Config) error {
	if err := generateOnce(ctx, cfg); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	inputs := watchedInputs(cfg)
	dirs := make(map[string]bool)
	for path := range inputs {
		dir := filepath.Dir(path)
		if dirs[dir] {
			continue
		}
		// Watch directories so files created after startup are seen.
		if err := watcher.Add(dir); err != nil {
			logging.Debug("Watch", "Not watching %s: %v", dir, err)
			continue
		}
		dirs[dir] = true
	}
	if len(dirs) == 0 {
		return errors.New("none of the input directories can be watched")
	}
	logging.Info("Watch", "Watching %d inputs for changes", len(inputs))

	debounce := time.NewTimer(watchDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !inputs[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				debounce.Reset(watchDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("Watch", "Watcher error: %v", err)
		case <-debounce.C:
			logging.Info("Watch", "Inputs changed, regenerating")
			if err := generateOnce(ctx, cfg); err != nil {
				logging.Error("Watch", err, "Failed to regenerate configuration")
			}
		}
	}
}

func generateOnce(ctx context.Context, cfg *Config) error {
	application, err := NewApplication(cfg)
	if err != nil {
		return err
	}
	return application.Run(ctx)
}

// watchedInputs returns the absolute paths of every file the configuration
// is built from.
func watchedInputs(cfg *Config) map[string]bool {
	paths := config.LayerPaths(cfg.ConfigPath)
	if kcfg := cfg.KarmaconfConfig; kcfg != nil {
		paths = append(paths, kcfg.Project.Manifest)
		envFile := kcfg.Project.EnvFile
		if cfg.EnvFile != "" {
			envFile = cfg.EnvFile
		}
		paths = append(paths, envFile)
	}

	inputs := make(map[string]bool, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		inputs[abs] = true
	}
	return inputs
}
