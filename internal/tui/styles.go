package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	primaryColor   = lipgloss.Color("#7AA2F7") // blue
	secondaryColor = lipgloss.Color("#9ECE6A") // green
	warningColor   = lipgloss.Color("#E0AF68") // amber
	errorColor     = lipgloss.Color("#F7768E") // red
	mutedColor     = lipgloss.Color("#565F89") // gray
	textColor      = lipgloss.Color("#C0CAF5") // light text
	dimTextColor   = lipgloss.Color("#9CA3AF") // dim text

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(dimTextColor).
			Italic(true)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(secondaryColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(mutedColor).
			MarginTop(1).
			MarginBottom(1)

	dirStyle = lipgloss.NewStyle().
			Foreground(textColor)

	successStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	errorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errorColor).
			Padding(1, 2).
			MarginTop(1)

	statLabelStyle = lipgloss.NewStyle().
			Foreground(dimTextColor).
			Width(24)

	statValueStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Bold(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true).
			MarginTop(2)

	// Icon characters
	iconScan    = "🔍"
	iconFolder  = "📁"
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarn    = "⚠"
	iconArrow   = "→"
)
