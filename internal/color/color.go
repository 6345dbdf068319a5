package color

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Palette with light/dark variants.
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
)

var (
	TitleStyle   = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	EnabledStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	SkippedStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	DetailStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Initialize sets the background mode the adaptive colors resolve against.
func Initialize(isDarkMode bool) {
	lipgloss.SetHasDarkBackground(isDarkMode)
}

// StageLine is one row of the stage summary.
type StageLine struct {
	Stage   string
	Enabled bool
	Detail  string
}

// RenderSummary renders stage outcomes as aligned, styled lines.
func RenderSummary(title string, lines []StageLine) string {
	width := 0
	for _, l := range lines {
		if w := runewidth.StringWidth(l.Stage); w > width {
			width = w
		}
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n")
	for _, l := range lines {
		mark, style := "✗", SkippedStyle
		if l.Enabled {
			mark, style = "✓", EnabledStyle
		}
		fmt.Fprintf(&b, "  %s %s", style.Render(mark), runewidth.FillRight(l.Stage, width))
		if l.Detail != "" {
			fmt.Fprintf(&b, "  %s", DetailStyle.Render(l.Detail))
		}
		b.WriteString("\n")
	}
	return b.String()
}
