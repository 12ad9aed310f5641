// Package render turns view state into terminal output and exports
// details as Markdown.
package render

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("#01B4E4") // TMDB light blue
	mutedColor  = lipgloss.Color("#808080")

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			MarginBottom(1)

	titleStyle = lipgloss.NewStyle().Bold(true)

	indexStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(4).
			Align(lipgloss.Right)

	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)

	typeStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	loadingStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Italic(true)

	detailBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Bold(true).
			Width(10)

	overviewStyle = lipgloss.NewStyle().Width(72)

	highRating   = lipgloss.NewStyle().Foreground(lipgloss.Color("#21D07A")).Bold(true)
	midRating    = lipgloss.NewStyle().Foreground(lipgloss.Color("#D2D531")).Bold(true)
	lowRating    = lipgloss.NewStyle().Foreground(lipgloss.Color("#DB2360")).Bold(true)
	noRatingText = mutedStyle
)
