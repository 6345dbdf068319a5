package karma

import (
	"fmt"
	"time"

	"karmaconf/internal/environment"
	"karmaconf/internal/project"
	"karmaconf/pkg/logging"
)

// jsDateLayout renders timestamps the way JavaScript's Date#toString does,
// which is what Sauce Labs build labels have always looked like.
const jsDateLayout = "Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"

// BuildLabel combines the run name, CI job number and timestamp.
func BuildLabel(testName, jobNumber string, at time.Time) string {
	return fmt.Sprintf("%s Build #%s @ %s", testName, jobNumber, at.Format(jsDateLayout))
}

// LauncherNames returns the launcher names in table order.
func LauncherNames(launchers []Launcher) []string {
	names := make([]string, 0, len(launchers))
	for _, l := range launchers {
		names = append(names, l.Name)
	}
	return names
}

// ConfigureSauceLabs redirects the run to Sauce Labs when SAUCE=true and
// both credentials are set. The local browser selection is replaced by the
// launcher table. Project metadata is only loaded when the lab is enabled.
func ConfigureSauceLabs(cfg *Config, snap environment.Snapshot, src project.Source, now func() time.Time, settings SauceLabsSettings) (bool, error) {
	if !snap.SauceCredentialsPresent() {
		logging.Warn("SauceLabs", "SauceLabs is not enabled")
		return false, nil
	}

	meta, err := src.Load()
	if err != nil {
		return false, fmt.Errorf("failed to load project metadata for Sauce Labs: %w", err)
	}
	if now == nil {
		now = time.Now
	}

	testName := meta.TestName()
	build := BuildLabel(testName, snap.JobNumber, now())

	cfg.addReporter(settings.Reporter)
	cfg.Browsers = LauncherNames(settings.Launchers)

	for _, l := range settings.Launchers {
		cfg.CustomLaunchers.Set(l)
	}

	cfg.SauceLabs = &SauceLabs{
		Build:    build,
		TestName: testName,
		Tags:     []string{meta.Name},
	}

	logging.Info("SauceLabs", "Running %d remote launchers for build %q", len(settings.Launchers), build)
	return true, nil
}
