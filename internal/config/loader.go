package config

import (
	"fmt"
	"os"
	"path/filepath"

	"karmaconf/internal/karma"
	"karmaconf/pkg/logging"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/karmaconf"
	projectConfigDir = ".karmaconf"
	configFileName   = "config.yaml"
)

// LoadConfig loads the karmaconf configuration by layering default, user, and project settings.
func LoadConfig() (KarmaconfConfig, error) {
	// 1. Start with the default configuration
	config := GetDefaultConfig()

	// 2. Determine user-specific configuration path
	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional
		logging.Warn("Config", "Could not determine user config path: %v", err)
	} else {
		config, err = overlayFile(config, userConfigPath)
		if err != nil {
			return KarmaconfConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
		}
	}

	// 3. Determine project-specific configuration path
	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		logging.Warn("Config", "Could not determine project config path: %v", err)
	} else {
		config, err = overlayFile(config, projectConfigPath)
		if err != nil {
			return KarmaconfConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
		}
	}

	return config, nil
}

// LoadConfigFromPath layers a single configuration directory over the defaults,
// skipping the user and project locations.
func LoadConfigFromPath(dir string) (KarmaconfConfig, error) {
	path := filepath.Join(dir, configFileName)
	if _, err := os.Stat(path); err != nil {
		return KarmaconfConfig{}, fmt.Errorf("config file %s: %w", path, err)
	}
	config, err := overlayFile(GetDefaultConfig(), path)
	if err != nil {
		return KarmaconfConfig{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir() // Use mockable variable
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd() // Use mockable variable
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// overlayFile merges the file at path over base when it exists.
func overlayFile(base KarmaconfConfig, path string) (KarmaconfConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return base, nil
	}
	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return KarmaconfConfig{}, err
	}
	logging.Debug("Config", "Applied configuration layer %s", path)
	return mergeConfigs(base, overlay), nil
}

// loadConfigFromFile loads a KarmaconfConfig from a YAML file.
func loadConfigFromFile(filePath string) (KarmaconfConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return KarmaconfConfig{}, err
	}
	var config KarmaconfConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return KarmaconfConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config.
// Non-empty lists replace the base list, non-empty scalars override, and
// launchers are merged by name.
func mergeConfigs(base, overlay KarmaconfConfig) KarmaconfConfig {
	merged := base
	b, o := &merged.Karma, overlay.Karma

	if len(o.Frameworks) > 0 {
		b.Frameworks = o.Frameworks
	}
	if len(o.Reporters) > 0 {
		b.Reporters = o.Reporters
	}
	if len(o.Files) > 0 {
		b.Files = o.Files
	}

	if o.Coverage.Flag != "" {
		b.Coverage.Flag = o.Coverage.Flag
	}
	if o.Coverage.Reporter != "" {
		b.Coverage.Reporter = o.Coverage.Reporter
	}
	if len(o.Coverage.Formats) > 0 {
		b.Coverage.Formats = o.Coverage.Formats
	}

	if len(o.Browsers.Mac) > 0 {
		b.Browsers.Mac = o.Browsers.Mac
	}
	if len(o.Browsers.Windows) > 0 {
		b.Browsers.Windows = o.Browsers.Windows
	}
	if len(o.Browsers.Linux) > 0 {
		b.Browsers.Linux = o.Browsers.Linux
	}

	if o.SauceLabs.Reporter != "" {
		b.SauceLabs.Reporter = o.SauceLabs.Reporter
	}
	b.SauceLabs.Launchers = mergeLaunchers(b.SauceLabs.Launchers, o.SauceLabs.Launchers)

	if overlay.Project.Manifest != "" {
		merged.Project.Manifest = overlay.Project.Manifest
	}
	if overlay.Project.EnvFile != "" {
		merged.Project.EnvFile = overlay.Project.EnvFile
	}

	if overlay.Output.Format != "" {
		merged.Output.Format = overlay.Output.Format
	}
	if overlay.Output.LogLevel != "" {
		merged.Output.LogLevel = overlay.Output.LogLevel
	}
	if overlay.Output.ConfigFile != "" {
		merged.Output.ConfigFile = overlay.Output.ConfigFile
	}

	return merged
}

// mergeLaunchers replaces launchers whose name exists in base, keeping their
// position, and appends new ones in overlay order.
func mergeLaunchers(base, overlay []karma.Launcher) []karma.Launcher {
	if len(overlay) == 0 {
		return base
	}
	merged := append([]karma.Launcher(nil), base...)
	index := make(map[string]int, len(merged))
	for i, l := range merged {
		index[l.Name] = i
	}
	for _, l := range overlay {
		if i, ok := index[l.Name]; ok {
			merged[i] = l // Replace if name exists, otherwise adds
			continue
		}
		index[l.Name] = len(merged)
		merged = append(merged, l)
	}
	return merged
}

// LayerPaths lists the files that make up the layered configuration. With a
// custom directory only that directory's file counts.
func LayerPaths(dir string) []string {
	if dir != "" {
		return []string{filepath.Join(dir, configFileName)}
	}
	var paths []string
	if p, err := getUserConfigPath(); err == nil {
		paths = append(paths, p)
	}
	if p, err := getProjectConfigPath(); err == nil {
		paths = append(paths, p)
	}
	return paths
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

// Validate checks the settings the pipeline cannot work without.
func (c KarmaconfConfig) Validate() error {
	switch c.Output.Format {
	case OutputFormatJSON, OutputFormatYAML, OutputFormatTable:
	default:
		return fmt.Errorf("unsupported output format %q (supported: json, yaml, table)", c.Output.Format)
	}
	if _, err := logging.ParseLevel(c.Output.LogLevel); err != nil {
		return err
	}
	if len(c.Karma.SauceLabs.Launchers) == 0 {
		return fmt.Errorf("sauce labs launcher table is empty")
	}
	seen := make(map[string]bool)
	for _, l := range c.Karma.SauceLabs.Launchers {
		if l.Name == "" {
			return fmt.Errorf("sauce labs launcher for %q has no name", l.BrowserName)
		}
		if seen[l.Name] {
			return fmt.Errorf("duplicate sauce labs launcher %q", l.Name)
		}
		seen[l.Name] = true
	}
	return nil
}
