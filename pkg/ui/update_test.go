package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fennwick/longread/pkg/article"
	"github.com/fennwick/longread/pkg/config"
	"github.com/fennwick/longread/pkg/layout"
	"github.com/fennwick/longread/pkg/share"
)

// White-box testing of controller logic. The rendered layout is injected
// directly so tests exercise geometry without a terminal renderer.

const testArticle = `---
title: Test Article
description: A test.
url: https://example.com/t
---

# Alpha

Body.

# Beta

Body.

# Gamma

Body.
`

func testModel(t *testing.T, docLines int, extents []layout.SectionPosition) *Model {
	t.Helper()
	doc, err := article.Parse([]byte(testArticle))
	if err != nil {
		t.Fatal(err)
	}
	m := NewModel(doc, config.DefaultConfig(), share.NewService(nil, nil))
	m.width, m.height = 120, 30
	m.ready = true
	m.vp = viewport.New(80, 24)

	lines := make([]string, docLines)
	for i := range lines {
		lines[i] = "line"
	}
	m.rendered = &article.Rendered{Width: 80, Lines: lines, Extents: extents}
	m.vp.SetContent(strings.Join(lines, "\n"))
	m.cache.Rebuild()
	return m
}

func defaultExtents() []layout.SectionPosition {
	return []layout.SectionPosition{
		{ID: "alpha", Top: 0, Bottom: 150},
		{ID: "beta", Top: 151, Bottom: 300},
		{ID: "gamma", Top: 301, Bottom: 399},
	}
}

func TestMastheadCompaction_Boundary(t *testing.T) {
	m := testModel(t, 400, defaultExtents())

	m.vp.SetYOffset(99)
	m.recompute()
	if m.mastheadCompact {
		t.Error("99 rows: masthead should not be compact")
	}

	m.vp.SetYOffset(100)
	m.recompute()
	if m.mastheadCompact {
		t.Error("exactly 100 rows: threshold is strict, should not be compact")
	}

	m.vp.SetYOffset(101)
	m.recompute()
	if !m.mastheadCompact {
		t.Error("101 rows: masthead should be compact")
	}

	// Identical offset again: state must be stable.
	m.recompute()
	if !m.mastheadCompact {
		t.Error("repeated recompute flipped the compact state")
	}
}

func TestTOCVisibility_LatchNeverRetracts(t *testing.T) {
	m := testModel(t, 400, defaultExtents())

	m.vp.SetYOffset(150)
	m.recompute()
	if m.tocVisible {
		t.Error("TOC visible before threshold")
	}

	m.vp.SetYOffset(201)
	m.recompute()
	if !m.tocVisible {
		t.Error("TOC not revealed past threshold")
	}

	m.vp.SetYOffset(0)
	m.recompute()
	if !m.tocVisible {
		t.Error("TOC retracted after scrolling back to top")
	}
}

func TestTOCVisibility_StartupTimer(t *testing.T) {
	m := testModel(t, 400, defaultExtents())
	if m.tocVisible {
		t.Fatal("TOC visible before reveal message")
	}
	m.Update(tocRevealMsg{})
	if !m.tocVisible {
		t.Error("startup reveal did not show the TOC")
	}
}

func TestFrameGate_OnePendingRecompute(t *testing.T) {
	m := testModel(t, 400, defaultExtents())

	cmd := m.scheduleFrame()
	if cmd == nil {
		t.Fatal("first scheduleFrame returned no tick")
	}
	if !m.ticking {
		t.Fatal("gate not armed")
	}
	if extra := m.scheduleFrame(); extra != nil {
		t.Error("second scheduleFrame while pending should be dropped")
	}

	m.Update(frameTickMsg{})
	if m.ticking {
		t.Error("gate not released by the frame tick")
	}
	if again := m.scheduleFrame(); again == nil {
		t.Error("gate should re-arm after the frame ran")
	}
}

func TestResizeDebounce_StaleSequenceIgnored(t *testing.T) {
	m := testModel(t, 400, defaultExtents())
	m.resizeSeq = 5

	// Change the underlying extents; only a current-sequence tick may pick
	// them up.
	m.rendered.Extents = []layout.SectionPosition{{ID: "only", Top: 0, Bottom: 399}}

	m.Update(resizeDebounceMsg{seq: 4})
	if got := len(m.cache.Sections()); got != 3 {
		t.Fatalf("stale debounce rebuilt the cache: %d sections", got)
	}

	m.Update(resizeDebounceMsg{seq: 5})
	secs := m.cache.Sections()
	if len(secs) != 1 || secs[0].ID != "only" {
		t.Fatalf("current debounce did not rebuild: %+v", secs)
	}
}

func TestActiveSection_ReactorPath(t *testing.T) {
	m := testModel(t, 400, defaultExtents())

	m.vp.SetYOffset(0) // center 12 -> alpha
	m.recompute()
	if m.activeID != "alpha" {
		t.Errorf("active = %q, want alpha", m.activeID)
	}

	m.vp.SetYOffset(200) // center 212 -> beta
	m.recompute()
	if m.activeID != "beta" {
		t.Errorf("active = %q, want beta", m.activeID)
	}
}

func TestActiveSection_NoneVisibleClearsMark(t *testing.T) {
	m := testModel(t, 400, []layout.SectionPosition{
		{ID: "far", Top: 2000, Bottom: 2100},
	})
	m.activeID = "far"
	m.vp.SetYOffset(0)
	m.recompute()
	if m.activeID != "" {
		t.Errorf("active = %q, want cleared", m.activeID)
	}
}

func TestActiveSection_DualPathLastWriterWins(t *testing.T) {
	m := testModel(t, 600, []layout.SectionPosition{
		{ID: "a", Top: 0, Bottom: 500},
		{ID: "b", Top: 490, Bottom: 520},
	})

	// First sweep establishes the baseline intersection set.
	m.vp.SetYOffset(470)
	m.Update(observerTickMsg{})

	// "b" transitions into the inset viewport: observer path marks it.
	m.vp.SetYOffset(480)
	m.Update(observerTickMsg{})
	if m.activeID != "b" {
		t.Fatalf("observer path: active = %q, want b", m.activeID)
	}

	// The scroll reactor then reruns the ratio policy: the viewport center
	// sits in "a", which wins the center-containment rule.
	m.Update(frameTickMsg{})
	if m.activeID != "a" {
		t.Fatalf("reactor path: active = %q, want a", m.activeID)
	}
}

func TestNavigate_MissingTargetIsNoOp(t *testing.T) {
	m := testModel(t, 400, defaultExtents())
	m.vp.SetYOffset(42)

	if cmd := m.navigateTo("does-not-exist"); cmd != nil {
		t.Error("navigation to missing target should produce no command")
	}
	if m.vp.YOffset != 42 {
		t.Errorf("scroll moved to %d on missing target", m.vp.YOffset)
	}
}

func TestNavigate_ReducedMotionJumpsWithOffset(t *testing.T) {
	m := testModel(t, 400, defaultExtents())
	m.reducedMotion = true

	if cmd := m.navigateTo("gamma"); cmd == nil {
		t.Fatal("expected a frame command")
	}
	// gamma top 301, nav offset 80 -> 221.
	if m.vp.YOffset != 221 {
		t.Errorf("YOffset = %d, want 221", m.vp.YOffset)
	}

	// Targets near the top clamp at 0 instead of scrolling negative.
	if cmd := m.navigateTo("alpha"); cmd == nil {
		t.Fatal("expected a frame command")
	}
	if m.vp.YOffset != 0 {
		t.Errorf("YOffset = %d, want 0", m.vp.YOffset)
	}
}

func TestNavigate_SmoothReachesTarget(t *testing.T) {
	m := testModel(t, 400, defaultExtents())
	m.reducedMotion = false

	if cmd := m.navigateTo("gamma"); cmd == nil {
		t.Fatal("expected animation to start")
	}
	if !m.navActive {
		t.Fatal("navActive not set")
	}
	for i := 0; i < 500 && m.navActive; i++ {
		m.Update(navStepMsg{})
	}
	if m.navActive {
		t.Fatal("animation never settled")
	}
	if m.vp.YOffset != 221 {
		t.Errorf("YOffset = %d, want 221", m.vp.YOffset)
	}
}

func TestRefresh_RebuildsAndRecomputes(t *testing.T) {
	m := testModel(t, 400, defaultExtents())
	m.vp.SetYOffset(200)

	m.rendered.Extents = []layout.SectionPosition{{ID: "fresh", Top: 0, Bottom: 399}}
	m.Update(RefreshMsg{})

	secs := m.cache.Sections()
	if len(secs) != 1 || secs[0].ID != "fresh" {
		t.Fatalf("refresh did not rebuild: %+v", secs)
	}
	if m.activeID != "fresh" {
		t.Errorf("active = %q after refresh", m.activeID)
	}
	if m.progress == 0 {
		t.Error("progress not recomputed")
	}
}

func TestResume_TriggersRefresh(t *testing.T) {
	m := testModel(t, 400, defaultExtents())
	m.rendered.Extents = []layout.SectionPosition{{ID: "drifted", Top: 0, Bottom: 399}}
	m.Update(tea.ResumeMsg{})
	secs := m.cache.Sections()
	if len(secs) != 1 || secs[0].ID != "drifted" {
		t.Fatalf("resume did not refresh layout: %+v", secs)
	}
}

func TestFeedbackText_DistinctMessages(t *testing.T) {
	texts := map[string]string{
		"share-success":  feedbackText(shareDoneMsg{outcome: share.OutcomeShared}),
		"share-fallback": feedbackText(shareDoneMsg{outcome: share.OutcomeCopied}),
		"share-failure":  feedbackText(shareDoneMsg{outcome: share.OutcomeFailed}),
		"copy-success":   feedbackText(shareDoneMsg{outcome: share.OutcomeCopied, copied: true}),
		"copy-failure":   feedbackText(shareDoneMsg{outcome: share.OutcomeFailed, copied: true}),
	}
	seen := map[string]string{}
	for name, text := range texts {
		if text == "" {
			t.Errorf("%s: empty feedback", name)
		}
		if prev, dup := seen[text]; dup {
			t.Errorf("%s and %s share the message %q", name, prev, text)
		}
		seen[text] = name
	}
}

func TestProgress_ZeroWhenNothingToScroll(t *testing.T) {
	m := testModel(t, 24, nil) // document exactly one viewport tall
	m.recompute()
	if m.progress != 0 {
		t.Errorf("progress = %v, want 0", m.progress)
	}
}

func TestProgress_ClampedAtBottom(t *testing.T) {
	m := testModel(t, 400, defaultExtents())
	m.vp.GotoBottom()
	m.recompute()
	if m.progress != 100 {
		t.Errorf("progress = %v, want 100", m.progress)
	}
}
