// Package ui provides the interactive collaborator surface for drive group
// management: the shared style palette, the duplicate-serial confirmation
// prompt, and the status/issue report renderers consumed by the entry point.
package ui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	// Color palette - Tokyo Night inspired
	primaryColor    = lipgloss.Color("#7aa2f7") // Tokyo Night blue
	accentColor     = lipgloss.Color("#f7768e") // Tokyo Night red/pink
	warningColor    = lipgloss.Color("#e0af68") // Tokyo Night yellow
	successColor    = lipgloss.Color("#9ece6a") // Tokyo Night green
	textColor       = lipgloss.Color("#c0caf5") // Tokyo Night foreground
	dimColor        = lipgloss.Color("#565f89") // Tokyo Night comment
	backgroundColor = lipgloss.Color("#1a1b26") // Tokyo Night background

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			MarginBottom(1)

	warningStyle = lipgloss.NewStyle().
			Foreground(backgroundColor).
			Background(warningColor).
			Bold(true).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(warningColor)

	errorTextStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	successTextStyle = lipgloss.NewStyle().
				Foreground(successColor)

	menuItemStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			PaddingRight(2).
			Foreground(textColor)

	selectedMenuItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				PaddingRight(2).
				Background(primaryColor).
				Foreground(backgroundColor).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true).
			MarginTop(1)

	dimTextStyle = lipgloss.NewStyle().
			Foreground(dimColor)
)
