package karma

import (
	"strings"

	"karmaconf/pkg/logging"
)

// PlatformClass is the coarse host classification used to pick local browsers.
type PlatformClass string

const (
	PlatformMac     PlatformClass = "mac"
	PlatformWindows PlatformClass = "windows"
	PlatformLinux   PlatformClass = "linux"
)

// ClassifyPlatform maps a platform identifier such as runtime.GOOS ("darwin",
// "windows") or Node's process.platform ("win32") to a PlatformClass.
// Anything that is neither mac nor windows is treated as linux.
func ClassifyPlatform(platform string) PlatformClass {
	switch {
	case strings.HasPrefix(platform, "darwin"):
		return PlatformMac
	case strings.HasPrefix(platform, "win"):
		return PlatformWindows
	default:
		return PlatformLinux
	}
}

// For returns the browsers configured for class.
func (t BrowserTable) For(class PlatformClass) []string {
	switch class {
	case PlatformMac:
		return t.Mac
	case PlatformWindows:
		return t.Windows
	default:
		return t.Linux
	}
}

// SelectLocalBrowsers assigns the browsers installed on the host platform.
func SelectLocalBrowsers(cfg *Config, platform string, table BrowserTable) PlatformClass {
	class := ClassifyPlatform(platform)
	cfg.Browsers = cloneStrings(table.For(class))
	logging.Debug("Browsers", "Platform %q classified as %s: %s", platform, class, strings.Join(cfg.Browsers, ", "))
	return class
}
