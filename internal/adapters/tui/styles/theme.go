package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Link      = lipgloss.Color("#60A5FA") // Blue

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Settings panel
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(0, 1).
		MarginBottom(1)

	Label = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true).
		Width(14)

	Value = lipgloss.NewStyle()

	// Cycle log
	Outcome = map[string]lipgloss.Style{
		"updated":   lipgloss.NewStyle().Foreground(Secondary).Bold(true),
		"unchanged": lipgloss.NewStyle().Foreground(Warning),
		"idle":      lipgloss.NewStyle().Foreground(Muted),
		"skipped":   lipgloss.NewStyle().Foreground(Muted).Italic(true),
		"error":     lipgloss.NewStyle().Foreground(Error).Bold(true),
	}

	Entry = lipgloss.NewStyle().
		Foreground(Link)

	Timestamp = lipgloss.NewStyle().
			Foreground(Muted)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	Spinner = lipgloss.NewStyle().
		Foreground(Primary)

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Notice = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// OutcomeStyle returns the style for a cycle outcome label
func OutcomeStyle(outcome string) lipgloss.Style {
	if s, ok := Outcome[outcome]; ok {
		return s
	}
	return MutedText
}
