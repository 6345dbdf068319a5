package karma

import (
	"time"

	"karmaconf/internal/environment"
	"karmaconf/internal/project"
)

// Result records what each stage of a pipeline run decided.
type Result struct {
	Gated     bool
	Coverage  bool
	Platform  PlatformClass
	SauceLabs bool
}

// Pipeline composes the stages in their fixed order:
// gate, coverage, local browsers, Sauce Labs.
type Pipeline struct {
	Defaults Defaults
	Project  project.Source
	Now      func() time.Time
}

// Build runs every stage against snap and returns the finished configuration.
// When the gate closes it returns ErrRunnerDisabled and a nil Config.
func (p *Pipeline) Build(snap environment.Snapshot) (*Config, Result, error) {
	var res Result

	if err := Gate(snap); err != nil {
		res.Gated = true
		return nil, res, err
	}

	cfg := NewConfig(p.Defaults)
	res.Coverage = ConfigureCoverage(cfg, snap.Args, p.Defaults.Coverage)
	res.Platform = SelectLocalBrowsers(cfg, snap.Platform, p.Defaults.Browsers)

	src := p.Project
	if src == nil {
		src = project.NewFileSource("")
	}
	sauce, err := ConfigureSauceLabs(cfg, snap, src, p.Now, p.Defaults.SauceLabs)
	if err != nil {
		return nil, res, err
	}
	res.SauceLabs = sauce

	return cfg, res, nil
}
