package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	if !m.ready {
		return "Loading article…"
	}

	body := m.vp.View()
	if m.tocReserved() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderTOC(), body)
	}

	return strings.Join([]string{
		m.renderMasthead(),
		m.renderProgressBar(),
		body,
		m.renderStatus(),
	}, "\n")
}

// tocReserved reports whether the TOC column is part of the layout at this
// terminal width. The column is reserved even before the TOC reveals so the
// article doesn't reflow when it appears.
func (m *Model) tocReserved() bool {
	return m.width >= tocViewThreshold && len(m.doc.Sections) > 0
}

// contentWidth is the article column width.
func (m *Model) contentWidth() int {
	w := m.width
	if m.tocReserved() {
		w -= tocColumnWidth
	}
	if limit := m.cfg.UI.WidthCap; limit > 0 && w > limit {
		w = limit
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) mastheadHeight() int {
	if m.mastheadCompact {
		return 1
	}
	h := 2
	if m.hero.revealed {
		h += len(m.hero.art)
	}
	return h
}

// chromeHeight is everything that isn't the scrolling article: masthead,
// progress bar, status line.
func (m *Model) chromeHeight() int {
	return m.mastheadHeight() + 2
}

func (m *Model) renderMasthead() string {
	meta := m.doc.Meta
	reading := formatReadingTime(m.doc.ReadingTime())

	if m.mastheadCompact {
		line := fmt.Sprintf("%s · %.0f%% · %s", meta.Title, m.progress, reading)
		return compactMastheadStyle.Render(truncate(line, m.width))
	}

	var lines []string
	if m.hero.revealed {
		lines = append(lines, m.hero.art...)
	}
	lines = append(lines, titleStyle.Render(truncate(meta.Title, m.width)))

	var parts []string
	if meta.Byline != "" {
		parts = append(parts, meta.Byline)
	}
	if meta.Date != "" {
		parts = append(parts, meta.Date)
	}
	parts = append(parts, reading)
	lines = append(lines, bylineStyle.Render(truncate(strings.Join(parts, " · "), m.width)))

	return strings.Join(lines, "\n")
}

// renderProgressBar draws the fill plus a numeric readout; the readout is
// the machine-readable progress value, kept even when color is stripped.
func (m *Model) renderProgressBar() string {
	readout := fmt.Sprintf("%3.0f%%", m.progress)
	barWidth := m.width - len(readout) - 1
	if barWidth < 1 {
		return progressReadoutStyle.Render(readout)
	}
	filled := int(m.progress/100*float64(barWidth) + 0.5)
	if filled > barWidth {
		filled = barWidth
	}
	bar := progressFillStyle.Render(strings.Repeat("█", filled)) +
		progressTrackStyle.Render(strings.Repeat("─", barWidth-filled))
	return bar + " " + progressReadoutStyle.Render(readout)
}

func (m *Model) renderTOC() string {
	col := lipgloss.NewStyle().Width(tocColumnWidth).PaddingRight(2)
	if !m.tocVisible {
		return col.Render("")
	}

	lines := []string{tocHeaderStyle.Render("Contents"), ""}
	for i, s := range m.doc.Sections {
		label := s.Title
		if i < 9 {
			label = fmt.Sprintf("%d %s", i+1, label)
		}
		label = truncate(label, tocColumnWidth-4)
		if s.ID == m.activeID {
			lines = append(lines, tocActiveStyle.Render("▌ "+label))
		} else {
			lines = append(lines, tocEntryStyle.Render("  "+label))
		}
	}
	return col.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderStatus() string {
	if m.toast.visible {
		return toastStyle.Render(truncate(m.toast.text, m.width))
	}
	return statusStyle.Render(truncate("j/k scroll · 1-9 jump · s share · c copy · r refresh · q quit", m.width))
}
