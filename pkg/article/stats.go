package article

import (
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"
)

// readingWPM is the assumed adult silent-reading speed.
const readingWPM = 215

// Words returns the word count of the article body.
func (d *Document) Words() int {
	return len(strings.Fields(string(d.body)))
}

// ReadingTime estimates how long the article takes to read, rounded up to a
// whole minute with a one minute floor.
func (d *Document) ReadingTime() time.Duration {
	words := d.Words()
	mins := (words + readingWPM - 1) / readingWPM
	if mins < 1 {
		mins = 1
	}
	return time.Duration(mins) * time.Minute
}

// SectionWordCounts returns per-section word counts in stored order.
func (d *Document) SectionWordCounts() []float64 {
	counts := make([]float64, len(d.Sections))
	for i, s := range d.Sections {
		counts[i] = float64(len(strings.Fields(string(s.source))))
	}
	return counts
}

// MeanSectionWords returns the mean section word count, or 0 for an article
// with no sections.
func (d *Document) MeanSectionWords() float64 {
	counts := d.SectionWordCounts()
	if len(counts) == 0 {
		return 0
	}
	return stat.Mean(counts, nil)
}
