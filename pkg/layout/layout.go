// Package layout tracks the vertical extents of article sections in the
// rendered document and derives scroll-dependent state from them: the
// reading-progress percentage and the section currently being read.
//
// All coordinates are rendered line numbers. Top/Bottom are document-relative;
// scroll offsets are the viewport's first visible line.
package layout

// ScrollPosition is a document-relative scroll offset. Only Y is meaningful
// for a vertically scrolled article; X is kept for the mouse-wheel plumbing.
type ScrollPosition struct {
	X int
	Y int
}

// SectionPosition is the vertical extent of one tracked section.
type SectionPosition struct {
	ID     string
	Top    int
	Bottom int
}

// Height returns the number of lines the section spans.
func (s SectionPosition) Height() int {
	return s.Bottom - s.Top
}

// contains reports whether line y falls within [Top, Bottom].
func (s SectionPosition) contains(y int) bool {
	return y >= s.Top && y <= s.Bottom
}

// Cache is a rebuilt-on-demand snapshot of section extents. The snapshot is
// replaced wholesale by Rebuild, never patched; a stale snapshot after a
// resize yields wrong progress and active-section results, which is why
// resize (and Refresh) must trigger a rebuild.
type Cache struct {
	source   func() []SectionPosition
	sections []SectionPosition
}

// NewCache creates a cache that pulls fresh extents from source on each
// Rebuild. Entries with inverted extents are dropped; duplicate IDs keep the
// first occurrence so the stored order stays the scan order.
func NewCache(source func() []SectionPosition) *Cache {
	return &Cache{source: source}
}

// Rebuild clears and repopulates the snapshot from the source.
func (c *Cache) Rebuild() {
	var fresh []SectionPosition
	if c.source != nil {
		fresh = c.source()
	}
	c.sections = c.sections[:0]
	seen := make(map[string]bool, len(fresh))
	for _, s := range fresh {
		if s.ID == "" || s.Top > s.Bottom || seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		c.sections = append(c.sections, s)
	}
}

// Sections returns the current snapshot in stored order. The returned slice
// is owned by the cache; callers must not mutate it.
func (c *Cache) Sections() []SectionPosition {
	return c.sections
}

// Progress returns the scroll progress through the document as a percentage
// in [0, 100]. When there is nothing to scroll (document no taller than the
// viewport) the result is 0.
func Progress(scrollTop, docHeight, viewportHeight int) float64 {
	denom := docHeight - viewportHeight
	if denom <= 0 {
		return 0
	}
	p := float64(scrollTop) / float64(denom) * 100
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// ActiveSection picks the section currently being read, or ok=false when no
// section qualifies.
//
// Policy: the first section in stored order whose extent contains the
// viewport center wins outright. Otherwise the section with the strictly
// greatest visibility ratio wins, where the ratio is the visible overlap
// divided by the smaller of the section height and the viewport height. Ties
// keep the earliest-scanned incumbent. A greatest ratio of zero means no
// section is active.
func (c *Cache) ActiveSection(scrollTop, viewportHeight int) (string, bool) {
	return ActiveSection(c.sections, scrollTop, viewportHeight)
}

// ActiveSection is the snapshot-free form of Cache.ActiveSection.
func ActiveSection(sections []SectionPosition, scrollTop, viewportHeight int) (string, bool) {
	center := scrollTop + viewportHeight/2
	for _, s := range sections {
		if s.contains(center) {
			return s.ID, true
		}
	}

	viewportTop := scrollTop
	viewportBottom := scrollTop + viewportHeight
	best := ""
	bestRatio := 0.0
	for _, s := range sections {
		r := visibilityRatio(s, viewportTop, viewportBottom, viewportHeight)
		if r > bestRatio {
			best = s.ID
			bestRatio = r
		}
	}
	if bestRatio == 0 {
		return "", false
	}
	return best, true
}

// visibilityRatio is the fraction of the section (or of the viewport, for
// sections taller than it) currently visible.
func visibilityRatio(s SectionPosition, viewportTop, viewportBottom, viewportHeight int) float64 {
	overlap := min(viewportBottom, s.Bottom) - max(viewportTop, s.Top)
	if overlap < 0 {
		overlap = 0
	}
	ref := min(s.Height(), viewportHeight)
	if ref <= 0 {
		return 0
	}
	return float64(overlap) / float64(ref)
}
