package ui

import (
	"fmt"
	"time"

	"github.com/mattn/go-runewidth"
)

// truncate trims a string to max visual width (cells), adding an ellipsis if
// needed. Uses go-runewidth to handle wide characters correctly.
func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return "…"
	}
	return runewidth.Truncate(s, maxWidth-1, "") + "…"
}

// formatReadingTime renders a duration as "7 min read".
func formatReadingTime(d time.Duration) string {
	mins := int(d.Minutes())
	if mins < 1 {
		mins = 1
	}
	return fmt.Sprintf("%d min read", mins)
}
