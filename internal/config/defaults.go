package config

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var embeddedDefaults []byte

// GetDefaultConfig returns the built-in configuration. It reproduces the
// frameworks, files, browser tables and Sauce Labs launchers the project has
// always used.
func GetDefaultConfig() KarmaconfConfig {
	cfg, err := parseConfig(embeddedDefaults)
	if err != nil {
		// The embedded file is covered by tests; failing here is a build defect.
		panic(fmt.Sprintf("invalid embedded defaults: %v", err))
	}
	return cfg
}

func parseConfig(data []byte) (KarmaconfConfig, error) {
	var cfg KarmaconfConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return KarmaconfConfig{}, err
	}
	return cfg, nil
}
