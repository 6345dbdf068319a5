// Package color provides terminal styling for karmaconf's human-readable output.
//
// The generated configuration document on stdout is never styled. Styles are
// only applied to the stage summary printed on stderr, which tells a developer
// at a glance which stages ran and why the browser list looks the way it does.
//
// # Theme System
//
// Colors are organized into semantic categories:
//   - Primary: Titles
//   - Success: Enabled stages
//   - Warning: Skipped stages
//   - Muted: Stage details
//
// Each color is a lipgloss.AdaptiveColor; call Initialize to pick the light or
// dark variant. lipgloss degrades to plain text when the terminal has no color
// support or NO_COLOR is set.
//
// # Usage Example
//
//	color.Initialize(true)
//	fmt.Fprint(os.Stderr, color.RenderSummary("Stages", []color.StageLine{
//	    {Stage: "coverage", Enabled: false, Detail: "--coverage not given"},
//	    {Stage: "browsers", Enabled: true, Detail: "linux: Firefox, ChromeHeadless"},
//	}))
package color
