// Package karma builds the run configuration for the Karma browser test runner.
//
// A Config starts from static Defaults and passes through four stages, in
// order:
//
//  1. Gate: under CI, browser testing only runs when KARMA=true. Otherwise
//     the run ends with ErrRunnerDisabled before any configuration happens.
//  2. ConfigureCoverage: with the coverage flag among the arguments, adds the
//     coverage reporter and points dist bundles at their instrumented builds.
//  3. SelectLocalBrowsers: picks the browsers for the host platform.
//  4. ConfigureSauceLabs: with SAUCE=true and credentials, replaces the local
//     browsers with the Sauce Labs launcher table and adds job metadata.
//
// Each stage logs a warning when it is skipped. Pipeline wires the stages
// together and records the outcome of each in a Result.
//
// # Usage Example
//
//	snap := environment.FromMap(vars, os.Args[1:], runtime.GOOS)
//	p := &karma.Pipeline{Defaults: defaults, Project: project.NewFileSource("")}
//	cfg, res, err := p.Build(snap)
//	if errors.Is(err, karma.ErrRunnerDisabled) {
//	    return nil
//	}
package karma
