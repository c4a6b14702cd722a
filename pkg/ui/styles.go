package ui

import "github.com/charmbracelet/lipgloss"

// Adaptive colors for light and dark terminals.
var (
	colorText    = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	colorSubtext = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}
	colorPrimary = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	bylineStyle = lipgloss.NewStyle().
			Foreground(colorSubtext)

	compactMastheadStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorText)

	progressFillStyle = lipgloss.NewStyle().
				Foreground(colorPrimary)

	progressTrackStyle = lipgloss.NewStyle().
				Foreground(colorMuted)

	progressReadoutStyle = lipgloss.NewStyle().
				Foreground(colorSubtext)

	tocHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSubtext)

	tocEntryStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	tocActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	toastStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSuccess)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)
