package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// toastState is the single reusable feedback toast. Showing a new toast
// resets the text immediately and bumps the sequence number, so the hide
// scheduled for an earlier toast lands stale and cannot clip the newer one.
type toastState struct {
	text    string
	visible bool
	seq     int
}

// showToast sets the toast text, makes it visible, and schedules its hide.
func (m *Model) showToast(text string) tea.Cmd {
	m.toast.seq++
	m.toast.text = text
	m.toast.visible = true
	seq := m.toast.seq
	return tea.Tick(m.cfg.Behavior.ToastDuration(), func(time.Time) tea.Msg {
		return toastHideMsg{seq: seq}
	})
}

// hideToast hides the toast unless a newer show superseded this timer.
func (m *Model) hideToast(seq int) {
	if seq != m.toast.seq {
		return
	}
	m.toast.visible = false
}
