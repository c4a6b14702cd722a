package ui

import (
	"testing"

	"github.com/fennwick/longread/pkg/layout"
)

func TestObserver_EnterFiresOncePerTransition(t *testing.T) {
	o := newObserver()
	sections := []layout.SectionPosition{{ID: "a", Top: 30, Bottom: 60}}

	// Section fully inside the inset viewport [20,80].
	entered := o.step(0, 100, sections)
	if len(entered) != 1 || entered[0] != "a" {
		t.Fatalf("first sweep entered = %v, want [a]", entered)
	}

	// Still intersecting: no re-entry.
	if entered := o.step(0, 100, sections); len(entered) != 0 {
		t.Fatalf("second sweep entered = %v, want none", entered)
	}

	// Scroll it out, then back in: fires again.
	if entered := o.step(500, 100, sections); len(entered) != 0 {
		t.Fatalf("off-screen sweep entered = %v, want none", entered)
	}
	entered = o.step(0, 100, sections)
	if len(entered) != 1 || entered[0] != "a" {
		t.Fatalf("re-entry sweep entered = %v, want [a]", entered)
	}
}

func TestObserver_InsetShrinksViewport(t *testing.T) {
	o := newObserver()
	// Viewport [0,100); inset 20% -> effective [20,80). A section living
	// entirely inside the trimmed margin never intersects.
	sections := []layout.SectionPosition{{ID: "margin", Top: 0, Bottom: 18}}
	if entered := o.step(0, 100, sections); len(entered) != 0 {
		t.Fatalf("section in the inset margin entered: %v", entered)
	}

	// Nudge it past the inset boundary far enough to cross the threshold.
	sections[0].Bottom = 40
	entered := o.step(0, 100, sections)
	if len(entered) != 1 || entered[0] != "margin" {
		t.Fatalf("entered = %v, want [margin]", entered)
	}
}

func TestObserver_ThresholdFraction(t *testing.T) {
	o := newObserver()
	// 100 rows tall; effective viewport [20,80]. Overlap of 5 rows is under
	// the 10% threshold, 15 rows is over it.
	under := []layout.SectionPosition{{ID: "s", Top: 75, Bottom: 175}}
	if entered := o.step(0, 100, under); len(entered) != 0 {
		t.Fatalf("5%% overlap entered: %v", entered)
	}

	over := []layout.SectionPosition{{ID: "s", Top: 65, Bottom: 165}}
	entered := o.step(0, 100, over)
	if len(entered) != 1 {
		t.Fatalf("15%% overlap did not enter: %v", entered)
	}
}

func TestObserver_ZeroHeightSection(t *testing.T) {
	o := newObserver()
	sections := []layout.SectionPosition{{ID: "anchor", Top: 50, Bottom: 50}}
	entered := o.step(0, 100, sections)
	if len(entered) != 1 || entered[0] != "anchor" {
		t.Fatalf("zero-height section inside viewport: entered = %v", entered)
	}
}

func TestObserver_ForgetsSectionsGoneFromSnapshot(t *testing.T) {
	o := newObserver()
	first := []layout.SectionPosition{{ID: "old", Top: 30, Bottom: 60}}
	o.step(0, 100, first)

	// Layout rebuilt without "old"; when it returns it is a fresh entry.
	second := []layout.SectionPosition{{ID: "new", Top: 30, Bottom: 60}}
	o.step(0, 100, second)
	if o.intersecting["old"] {
		t.Error("stale section survived the snapshot change")
	}

	entered := o.step(0, 100, first)
	if len(entered) != 1 || entered[0] != "old" {
		t.Fatalf("returning section entered = %v, want [old]", entered)
	}
}
