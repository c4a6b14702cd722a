package ui

import (
	"github.com/fennwick/longread/pkg/layout"
)

// Observer tuning: the effective viewport is inset 20% from top and bottom,
// and a section counts as intersecting once a tenth of it is inside.
const (
	observerInset     = 0.20
	observerThreshold = 0.10
)

// observer is the secondary active-section path: a viewport-intersection
// watch over every tracked section. It marks a section active the moment it
// transitions into the shrunk viewport, bypassing the ratio policy of the
// scroll reactor. Both paths run; the shared mutation point makes the race
// explicit instead of accidental.
type observer struct {
	insetFrac    float64
	threshold    float64
	intersecting map[string]bool
}

func newObserver() *observer {
	return &observer{
		insetFrac:    observerInset,
		threshold:    observerThreshold,
		intersecting: make(map[string]bool),
	}
}

// step sweeps the snapshot and returns the sections that transitioned into
// intersection since the previous sweep, in scan order.
func (o *observer) step(scrollTop, viewportHeight int, sections []layout.SectionPosition) []string {
	inset := int(float64(viewportHeight) * o.insetFrac)
	top := scrollTop + inset
	bottom := scrollTop + viewportHeight - inset
	if bottom < top {
		bottom = top
	}

	var entered []string
	seen := make(map[string]bool, len(sections))
	for _, s := range sections {
		seen[s.ID] = true
		now := o.intersects(s, top, bottom)
		if now && !o.intersecting[s.ID] {
			entered = append(entered, s.ID)
		}
		o.intersecting[s.ID] = now
	}
	// Forget sections that left the snapshot (rebuild after reload).
	for id := range o.intersecting {
		if !seen[id] {
			delete(o.intersecting, id)
		}
	}
	return entered
}

func (o *observer) intersects(s layout.SectionPosition, top, bottom int) bool {
	if s.Height() <= 0 {
		return s.Top >= top && s.Top <= bottom
	}
	overlap := min(bottom, s.Bottom) - max(top, s.Top)
	if overlap <= 0 {
		return false
	}
	return float64(overlap)/float64(s.Height()) >= o.threshold
}
