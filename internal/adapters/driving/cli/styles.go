package cli

import "github.com/charmbracelet/lipgloss"

// Report styles, shared by the parse summary and the neighbor sample
// output.
var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")) // Purple

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#06B6D4")) // Cyan

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086")) // Medium gray

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6E3A1")) // Green
)
