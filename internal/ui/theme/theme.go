package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette. Dark editor tones with traffic-light accents for severity.
var (
	Primary   = lipgloss.Color("#60A5FA") // Sky
	Secondary = lipgloss.Color("#34D399") // Emerald
	Accent    = lipgloss.Color("#FBBF24") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#F97316") // Orange
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#E5E7EB") // Gray 200
	TextDim   = lipgloss.Color("#9CA3AF") // Gray 400
	BgCard    = lipgloss.Color("#1F2937") // Gray 800
	Border    = lipgloss.Color("#374151") // Gray 700
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Section = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Panes
var (
	Pane = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	FocusedPane = Pane.
			BorderForeground(Primary)

	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)

// Severity returns the style for a finding severity or difficulty
// category.
func Severity(level string) lipgloss.Style {
	switch level {
	case "critical", "Hard":
		return lipgloss.NewStyle().Foreground(Error).Bold(true)
	case "high":
		return lipgloss.NewStyle().Foreground(Error)
	case "medium", "Medium":
		return lipgloss.NewStyle().Foreground(Warning)
	case "low", "Easy":
		return lipgloss.NewStyle().Foreground(Success)
	}
	return Body
}

// SeverityIcon is the marker drawn before a finding.
func SeverityIcon(level string) string {
	switch level {
	case "critical":
		return "🔴"
	case "high":
		return "🟠"
	case "medium":
		return "🟡"
	case "low":
		return "🟢"
	}
	return "⚪"
}
