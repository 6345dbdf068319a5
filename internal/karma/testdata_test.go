package karma

import (
	"bytes"
	"os"
	"testing"
	"time"

	"karmaconf/pkg/logging"
)

// testDefaults mirrors the embedded defaults of the config package.
func testDefaults() Defaults {
	return Defaults{
		Frameworks: []string{"mocha", "chai", "sinon", "host-environment"},
		Reporters:  []string{"verbose"},
		Files: []File{
			Pattern("dist/omnipath.min.js"),
			ServedOnly("dist/*.map"),
			Pattern("test/fixtures/**/*.js"),
			Pattern("test/specs/**/*.spec.js"),
		},
		Coverage: CoverageSettings{
			Flag:     "--coverage",
			Reporter: "coverage",
			Formats:  []string{"text-summary", "lcov"},
		},
		Browsers: BrowserTable{
			Mac:     []string{"Firefox", "Chrome", "Safari"},
			Windows: []string{"Firefox", "Chrome", "IE", "Edge"},
			Linux:   []string{"Firefox", "ChromeHeadless"},
		},
		SauceLabs: SauceLabsSettings{
			Reporter: "saucelabs",
			Launchers: []Launcher{
				{Name: "SauceLabs_Chrome_Latest", Base: "SauceLabs", Platform: "Windows 10", BrowserName: "chrome"},
				{Name: "SauceLabs_Firefox_Latest", Base: "SauceLabs", Platform: "Windows 10", BrowserName: "firefox"},
				{Name: "SauceLabs_Safari_Latest", Base: "SauceLabs", Platform: "macOS 10.12", BrowserName: "safari"},
				{Name: "SauceLabs_IE_11", Base: "SauceLabs", Platform: "Windows 7", BrowserName: "internet explorer"},
				{Name: "SauceLabs_IE_Edge", Base: "SauceLabs", Platform: "Windows 10", BrowserName: "microsoftedge"},
			},
		},
	}
}

var fixedNow = func() time.Time {
	return time.Date(2026, time.October, 16, 9, 30, 0, 0, time.UTC)
}

// captureLogs routes log output into a buffer for the duration of a test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logging.InitForCLI(logging.LevelDebug, &buf)
	t.Cleanup(func() { logging.InitForCLI(logging.LevelInfo, os.Stderr) })
	return &buf
}
