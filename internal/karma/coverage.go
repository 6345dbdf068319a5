package karma

import (
	"regexp"

	"karmaconf/pkg/logging"
)

// distBundle matches a top-level bundle in dist/, minified or not.
// Nested paths such as dist/sub/x.js are left alone.
var distBundle = regexp.MustCompile(`^dist/([^/]*?)(\.min)?\.js$`)

// InstrumentedPattern maps a distribution bundle pattern to its coverage
// build, e.g. dist/omnipath.min.js -> dist/omnipath.coverage.js. Patterns
// that are not bundles are returned unchanged.
func InstrumentedPattern(pattern string) string {
	return distBundle.ReplaceAllString(pattern, "dist/${1}.coverage.js")
}

// ConfigureCoverage enables the coverage reporter and swaps bundles for their
// instrumented builds when the coverage flag is among args. It reports
// whether coverage was enabled.
func ConfigureCoverage(cfg *Config, args []string, settings CoverageSettings) bool {
	if !containsToken(args, settings.Flag) {
		logging.Warn("Coverage", "Code-coverage is not enabled")
		return false
	}

	cfg.addReporter(settings.Reporter)

	formats := make([]CoverageFormat, 0, len(settings.Formats))
	for _, f := range settings.Formats {
		formats = append(formats, CoverageFormat{Type: f})
	}
	cfg.CoverageReporter = &CoverageReporter{Reporters: formats}

	files := make([]File, len(cfg.Files))
	for i, f := range cfg.Files {
		if !f.Descriptor {
			rewritten := InstrumentedPattern(f.Pattern)
			if rewritten != f.Pattern {
				logging.Debug("Coverage", "Using instrumented build %s for %s", rewritten, f.Pattern)
			}
			f.Pattern = rewritten
		}
		files[i] = f
	}
	cfg.Files = files

	return true
}

func containsToken(args []string, token string) bool {
	if token == "" {
		return false
	}
	for _, a := range args {
		if a == token {
			return true
		}
	}
	return false
}
