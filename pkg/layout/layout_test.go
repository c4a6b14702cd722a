package layout

import (
	"testing"

	"pgregory.net/rapid"
)

func TestProgress_ClampsTo100PastBottom(t *testing.T) {
	for _, scrollTop := range []int{700, 1000, 5000} {
		if got := Progress(scrollTop, 1000, 300); got != 100 {
			t.Errorf("Progress(%d, 1000, 300) = %v, want 100", scrollTop, got)
		}
	}
}

func TestProgress_NothingToScrollIsZero(t *testing.T) {
	// Document no taller than the viewport: denominator would be <= 0.
	if got := Progress(0, 300, 300); got != 0 {
		t.Errorf("equal heights: got %v, want 0", got)
	}
	if got := Progress(10, 200, 300); got != 0 {
		t.Errorf("short document: got %v, want 0", got)
	}
}

func TestProgress_Midpoint(t *testing.T) {
	if got := Progress(350, 1000, 300); got != 50 {
		t.Errorf("got %v, want 50", got)
	}
}

func TestActiveSection_CenterContainment(t *testing.T) {
	sections := []SectionPosition{
		{ID: "a", Top: 0, Bottom: 100},
		{ID: "b", Top: 100, Bottom: 250},
		{ID: "c", Top: 250, Bottom: 400},
	}
	// scrollTop=0, viewport 300 => center 150, inside b.
	id, ok := ActiveSection(sections, 0, 300)
	if !ok || id != "b" {
		t.Fatalf("got (%q, %v), want (b, true)", id, ok)
	}
}

func TestActiveSection_OverlappingCenterFirstMatchWins(t *testing.T) {
	// Viewport [100,400], center 250: inside both a and b. Stored order
	// decides, so a wins even though b covers more of the viewport.
	sections := []SectionPosition{
		{ID: "a", Top: 0, Bottom: 250},
		{ID: "b", Top: 150, Bottom: 400},
	}
	id, ok := ActiveSection(sections, 100, 300)
	if !ok || id != "a" {
		t.Fatalf("got (%q, %v), want (a, true)", id, ok)
	}
}

func TestActiveSection_RatioFallback(t *testing.T) {
	// Center (150) in a gap between sections; best visible overlap wins.
	sections := []SectionPosition{
		{ID: "a", Top: 0, Bottom: 40},
		{ID: "b", Top: 260, Bottom: 500},
	}
	// Viewport [0,300]: a fully visible (ratio 1.0), b overlap 40/240.
	id, ok := ActiveSection(sections, 0, 300)
	if !ok || id != "a" {
		t.Fatalf("got (%q, %v), want (a, true)", id, ok)
	}
}

func TestActiveSection_EqualRatioKeepsIncumbent(t *testing.T) {
	// Both sections half visible with identical ratios; the earlier one in
	// stored order must survive since replacement requires strictly greater.
	sections := []SectionPosition{
		{ID: "a", Top: 80, Bottom: 100},
		{ID: "b", Top: 200, Bottom: 220},
	}
	// Viewport [90,210], center 150 in neither. a overlap 10/20, b overlap
	// 10/20 — equal, incumbent a wins.
	id, ok := ActiveSection(sections, 90, 120)
	if !ok || id != "a" {
		t.Fatalf("got (%q, %v), want (a, true)", id, ok)
	}
}

func TestActiveSection_NoVisibleSection(t *testing.T) {
	sections := []SectionPosition{
		{ID: "a", Top: 1000, Bottom: 1100},
	}
	if id, ok := ActiveSection(sections, 0, 300); ok {
		t.Fatalf("expected no active section, got %q", id)
	}
	if id, ok := ActiveSection(nil, 0, 300); ok {
		t.Fatalf("expected no active section for empty snapshot, got %q", id)
	}
}

func TestCache_RebuildFiltersAndReplaces(t *testing.T) {
	calls := 0
	src := func() []SectionPosition {
		calls++
		if calls == 1 {
			return []SectionPosition{
				{ID: "a", Top: 0, Bottom: 10},
				{ID: "", Top: 20, Bottom: 30},   // unresolvable target
				{ID: "bad", Top: 50, Bottom: 40}, // inverted
				{ID: "a", Top: 60, Bottom: 70},   // duplicate id
				{ID: "b", Top: 80, Bottom: 90},
			}
		}
		return []SectionPosition{{ID: "only", Top: 5, Bottom: 6}}
	}
	c := NewCache(src)
	c.Rebuild()
	got := c.Sections()
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("first rebuild: got %+v", got)
	}
	c.Rebuild()
	got = c.Sections()
	if len(got) != 1 || got[0].ID != "only" {
		t.Fatalf("second rebuild did not replace wholesale: %+v", got)
	}
}

func TestActiveSection_CenterWinnerIsFirstContaining(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(t, "n")
		sections := make([]SectionPosition, 0, n)
		for i := 0; i < n; i++ {
			top := rapid.IntRange(0, 900).Draw(t, "top")
			h := rapid.IntRange(0, 400).Draw(t, "h")
			sections = append(sections, SectionPosition{
				ID:     string(rune('a' + i)),
				Top:    top,
				Bottom: top + h,
			})
		}
		scrollTop := rapid.IntRange(0, 1200).Draw(t, "scrollTop")
		vh := rapid.IntRange(1, 500).Draw(t, "vh")
		center := scrollTop + vh/2

		id, ok := ActiveSection(sections, scrollTop, vh)
		for _, s := range sections {
			if s.contains(center) {
				if !ok || id != s.ID {
					t.Fatalf("center %d in %q but winner is (%q, %v)", center, s.ID, id, ok)
				}
				return
			}
		}
		// No section contains the center: a winner, if any, must have a
		// nonzero visibility ratio.
		if ok {
			found := false
			for _, s := range sections {
				if s.ID != id {
					continue
				}
				found = true
				if visibilityRatio(s, scrollTop, scrollTop+vh, vh) == 0 {
					t.Fatalf("winner %q has zero visibility", id)
				}
			}
			if !found {
				t.Fatalf("winner %q not in snapshot", id)
			}
		}
	})
}
