// Package ui implements the reader's page controller: one long-lived Bubble
// Tea model wired to one article. It owns the scroll-derived state (progress,
// masthead compaction, TOC visibility, active section) and the transient
// feedback toast; it does not own the article or the share collaborators.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fennwick/longread/pkg/article"
	"github.com/fennwick/longread/pkg/config"
	"github.com/fennwick/longread/pkg/layout"
	"github.com/fennwick/longread/pkg/share"
)

// Layout thresholds for the reserved TOC column.
const (
	tocColumnWidth   = 28
	tocViewThreshold = 90 // minimum terminal width for the TOC column
)

// frameInterval paces scroll-derived recomputation to roughly one display
// refresh; scroll events arriving while a frame is pending are dropped.
const frameInterval = 16 * time.Millisecond

// observerInterval paces the secondary intersection-driven section watch.
const observerInterval = 100 * time.Millisecond

// frameTickMsg releases the one-pending-recompute-per-frame gate.
type frameTickMsg struct{}

// resizeDebounceMsg triggers the layout rebuild after a resize burst has
// quiesced. Stale sequence numbers are superseded ticks and are dropped.
type resizeDebounceMsg struct{ seq int }

// tocRevealMsg force-shows the TOC shortly after startup so it is
// discoverable even on articles too short to scroll.
type tocRevealMsg struct{}

// toastHideMsg hides the feedback toast; a stale seq means a newer toast has
// since been shown and this hide is ignored.
type toastHideMsg struct{ seq int }

// observerTickMsg drives the visibility observer's intersection sweep.
type observerTickMsg struct{}

// navStepMsg advances an animated scroll toward its target.
type navStepMsg struct{}

// heroLoadedMsg carries the decoded hero art (or the swallowed error).
type heroLoadedMsg struct {
	art []string
	err error
}

// heroRevealMsg ends the staggered hero entrance.
type heroRevealMsg struct{}

// shareDoneMsg reports a finished share or copy attempt.
type shareDoneMsg struct {
	outcome share.Outcome
	copied  bool // true when this was an explicit copy, not a share fallback
}

// RefreshMsg asks the controller to rebuild its layout cache and recompute
// derived state. External callers (the file watcher, a resume hook) send it
// through the program.
type RefreshMsg struct{}

// ArticleReloadedMsg swaps in a re-parsed article after the source file
// changed on disk.
type ArticleReloadedMsg struct {
	Doc *article.Document
}

// Model is the page controller.
type Model struct {
	doc      *article.Document
	cfg      config.Config
	shareSvc *share.Service

	vp       viewport.Model
	rendered *article.Rendered
	cache    *layout.Cache
	observer *observer

	width  int
	height int
	ready  bool

	// Scroll reactor state.
	lastScrollY   int  // last processed offset, informational only
	ticking       bool // one recompute pending per frame
	reducedMotion bool // captured once at startup
	resizeSeq     int  // supersedes pending resize rebuilds

	// Derived presentation state.
	progress        float64
	mastheadCompact bool
	tocVisible      bool // one-way latch
	activeID        string

	// Animated navigation state.
	navTarget int
	navActive bool

	hero  heroState
	toast toastState
}

// NewModel wires a controller to one article. The share service and config
// are passed in by the entry point; the controller never reaches into
// ambient globals.
func NewModel(doc *article.Document, cfg config.Config, shareSvc *share.Service) *Model {
	m := &Model{
		doc:           doc,
		cfg:           cfg,
		shareSvc:      shareSvc,
		observer:      newObserver(),
		reducedMotion: cfg.ReducedMotion,
		hero:          heroState{path: doc.Meta.Hero},
	}
	m.cache = layout.NewCache(func() []layout.SectionPosition {
		if m.rendered == nil {
			return nil
		}
		return m.rendered.Extents
	})
	return m
}

// Init schedules the startup TOC reveal, the observer sweep and the hero
// image load.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.Tick(m.cfg.Behavior.TOCRevealDelay(), func(time.Time) tea.Msg { return tocRevealMsg{} }),
		observerTick(),
	}
	if m.hero.path != "" && !m.hero.loaded {
		cmds = append(cmds, loadHeroCmd(m.hero.path, heroArtWidth))
	}
	return tea.Batch(cmds...)
}

// Refresh rebuilds the layout cache and recomputes progress, TOC visibility
// and the active section. Send RefreshMsg to invoke it from outside the
// program loop.
func (m *Model) Refresh() {
	m.cache.Rebuild()
	m.recompute()
}

// ActiveSectionID returns the section currently marked active, or "".
func (m *Model) ActiveSectionID() string {
	return m.activeID
}

// Progress returns the current reading progress percentage.
func (m *Model) Progress() float64 {
	return m.progress
}

func observerTick() tea.Cmd {
	return tea.Tick(observerInterval, func(time.Time) tea.Msg { return observerTickMsg{} })
}

// pageURL is the canonical link for sharing; articles without a published
// URL fall back to their file location.
func (m *Model) pageURL() string {
	if m.doc.Meta.URL != "" {
		return m.doc.Meta.URL
	}
	return "file://" + m.doc.Path
}
