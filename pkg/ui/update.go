package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fennwick/longread/pkg/article"
	"github.com/fennwick/longread/pkg/debug"
	"github.com/fennwick/longread/pkg/layout"
	"github.com/fennwick/longread/pkg/share"
)

// Update is the single event loop. All derived-state computation is
// synchronous within one call, so the layout snapshot can never be rebuilt
// mid-read.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.vp.ScrollUp(3)
			return m, m.scheduleFrame()
		case tea.MouseButtonWheelDown:
			m.vp.ScrollDown(3)
			return m, m.scheduleFrame()
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case frameTickMsg:
		m.ticking = false
		m.recompute()
		return m, nil

	case resizeDebounceMsg:
		// A newer resize superseded this tick.
		if msg.seq != m.resizeSeq {
			return m, nil
		}
		m.Refresh()
		return m, nil

	case tocRevealMsg:
		// Startup reveal fires regardless of scroll position; the latch
		// never retracts.
		m.tocVisible = true
		return m, nil

	case observerTickMsg:
		if m.ready {
			entered := m.observer.step(m.vp.YOffset, m.vp.Height, m.cache.Sections())
			for _, id := range entered {
				m.setActiveSection(id)
			}
		}
		return m, observerTick()

	case navStepMsg:
		return m, m.stepNav()

	case toastHideMsg:
		m.hideToast(msg.seq)
		return m, nil

	case heroLoadedMsg:
		return m, m.handleHeroLoaded(msg)

	case heroRevealMsg:
		if m.hero.loaded {
			m.hero.revealed = true
		}
		return m, nil

	case shareDoneMsg:
		return m, m.showToast(feedbackText(msg))

	case RefreshMsg:
		m.Refresh()
		return m, nil

	case tea.ResumeMsg:
		// Terminal regained after a suspend: layout may have drifted.
		m.Refresh()
		return m, nil

	case ArticleReloadedMsg:
		m.reloadArticle(msg.Doc)
		return m, m.showToast("Article reloaded")
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		m.vp.ScrollUp(1)
		return m, m.scheduleFrame()
	case "down", "j":
		m.vp.ScrollDown(1)
		return m, m.scheduleFrame()
	case "pgup", "b":
		m.vp.ScrollUp(m.vp.Height)
		return m, m.scheduleFrame()
	case "pgdown", " ", "f":
		m.vp.ScrollDown(m.vp.Height)
		return m, m.scheduleFrame()
	case "g", "home":
		m.vp.GotoTop()
		return m, m.scheduleFrame()
	case "G", "end":
		m.vp.GotoBottom()
		return m, m.scheduleFrame()

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(msg.String()[0] - '1')
		if idx < len(m.doc.Sections) {
			return m, m.navigateTo(m.doc.Sections[idx].ID)
		}
		return m, nil

	case "s":
		return m, m.shareCmd()
	case "c":
		return m, m.copyCmd()
	case "r":
		m.Refresh()
		return m, nil
	}
	return m, nil
}

func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height

	firstLayout := !m.ready
	vpWidth := m.contentWidth()
	if firstLayout {
		m.vp = viewport.New(vpWidth, 1)
		m.ready = true
	}
	m.vp.Width = vpWidth
	m.vp.Height = max(1, msg.Height-m.chromeHeight())
	m.renderAt(vpWidth)

	if firstLayout {
		// Startup rebuild; later resizes go through the debounce.
		m.cache.Rebuild()
	}

	m.resizeSeq++
	seq := m.resizeSeq
	return m, tea.Batch(
		m.scheduleFrame(),
		tea.Tick(m.cfg.Behavior.ResizeDebounce(), func(time.Time) tea.Msg {
			return resizeDebounceMsg{seq: seq}
		}),
	)
}

// scheduleFrame arms the per-frame gate. While a tick is pending, further
// scroll events fall through without queueing another recompute.
func (m *Model) scheduleFrame() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameTickMsg{} })
}

// recompute derives all scroll-dependent state from the current offset.
func (m *Model) recompute() {
	if !m.ready || m.rendered == nil {
		return
	}
	y := m.vp.YOffset

	m.progress = m.computeProgress(y)

	compact := y > m.cfg.Behavior.MastheadThreshold
	if compact != m.mastheadCompact {
		m.mastheadCompact = compact
		// Masthead height changed; keep the viewport filling the rest.
		m.vp.Height = max(1, m.height-m.chromeHeight())
	}

	if !m.tocVisible && y > m.cfg.Behavior.TOCThreshold {
		m.tocVisible = true
	}

	if id, ok := m.cache.ActiveSection(y, m.vp.Height); ok {
		m.setActiveSection(id)
	} else {
		m.setActiveSection("")
	}

	m.lastScrollY = y
}

func (m *Model) computeProgress(y int) float64 {
	return layout.Progress(y, m.rendered.Height(), m.vp.Height)
}

// setActiveSection is the single mutation point for the active TOC entry.
// Both the scroll reactor and the visibility observer write through it, so
// when the two disagree the last caller wins explicitly.
func (m *Model) setActiveSection(id string) {
	m.activeID = id
}

// navigateTo scrolls so the target's top lands navOffset rows below the
// viewport top. Unknown targets are ignored.
func (m *Model) navigateTo(id string) tea.Cmd {
	var dest int
	found := false
	for _, s := range m.cache.Sections() {
		if s.ID == id {
			dest = s.Top - m.cfg.Behavior.NavOffset
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	if dest < 0 {
		dest = 0
	}
	if maxY := m.maxScroll(); dest > maxY {
		dest = maxY
	}

	if m.reducedMotion {
		m.vp.SetYOffset(dest)
		return m.scheduleFrame()
	}
	m.navActive = true
	m.navTarget = dest
	return navStep()
}

// stepNav moves the animated scroll toward its target with an eased step.
func (m *Model) stepNav() tea.Cmd {
	if !m.navActive {
		return nil
	}
	cur := m.vp.YOffset
	if cur == m.navTarget {
		m.navActive = false
		return m.scheduleFrame()
	}
	diff := m.navTarget - cur
	step := diff / 4
	if step == 0 {
		if diff > 0 {
			step = 1
		} else {
			step = -1
		}
	}
	m.vp.SetYOffset(cur + step)
	return tea.Batch(navStep(), m.scheduleFrame())
}

func navStep() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return navStepMsg{} })
}

func (m *Model) maxScroll() int {
	if m.rendered == nil {
		return 0
	}
	maxY := m.rendered.Height() - m.vp.Height
	if maxY < 0 {
		return 0
	}
	return maxY
}

// shareCmd builds the payload at share time and runs the attempt off the
// loop; the outcome comes back as a message.
func (m *Model) shareCmd() tea.Cmd {
	if m.shareSvc == nil {
		return nil
	}
	d := share.Data{
		Title: m.doc.Meta.Title,
		Text:  m.doc.Meta.Description,
		URL:   m.pageURL(),
	}
	svc := m.shareSvc
	return func() tea.Msg {
		return shareDoneMsg{outcome: svc.Share(context.Background(), d)}
	}
}

func (m *Model) copyCmd() tea.Cmd {
	if m.shareSvc == nil {
		return nil
	}
	url := m.pageURL()
	svc := m.shareSvc
	return func() tea.Msg {
		return shareDoneMsg{outcome: svc.Copy(context.Background(), url), copied: true}
	}
}

// feedbackText maps share/copy outcomes to their toast messages. Each path
// keeps a distinct message so users can tell a native share from a clipboard
// fallback.
func feedbackText(msg shareDoneMsg) string {
	if msg.copied {
		if msg.outcome == share.OutcomeCopied {
			return "Link copied"
		}
		return "Unable to copy link"
	}
	switch msg.outcome {
	case share.OutcomeShared:
		return "Shared article"
	case share.OutcomeCopied:
		return "Link copied to clipboard"
	default:
		return "Unable to share"
	}
}

// reloadArticle swaps the document after the source file changed.
func (m *Model) reloadArticle(doc *article.Document) {
	prev := m.hero
	m.doc = doc
	m.hero = heroState{path: doc.Meta.Hero}
	// An unchanged hero is already decoded; no load completes twice for the
	// same resource, so adopt it and reveal immediately.
	if doc.Meta.Hero != "" && doc.Meta.Hero == prev.path && prev.loaded {
		m.hero = prev
		m.hero.revealed = true
	}
	if m.ready {
		m.renderAt(m.contentWidth())
	}
	m.Refresh()
	debug.Log("article reloaded: %d sections", len(doc.Sections))
}

// renderAt lays the article out at the given width. A render failure keeps
// the previous layout rather than blanking the reader.
func (m *Model) renderAt(width int) {
	r, err := m.doc.Render(width, m.cfg.UI.Theme)
	if err != nil {
		debug.Log("render failed: %v", err)
		if m.rendered == nil {
			m.rendered = &article.Rendered{}
		}
		return
	}
	m.rendered = r
	m.vp.SetContent(r.Content())
}
