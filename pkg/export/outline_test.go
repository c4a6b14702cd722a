package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fennwick/longread/pkg/article"
)

const sampleArticle = `---
title: Outline Test
url: https://example.com/a
---

# First

One two three four five.

# Second

Six seven.

# Third

Eight nine ten eleven twelve thirteen.
`

func mustParse(t *testing.T) *article.Document {
	t.Helper()
	doc, err := article.Parse([]byte(sampleArticle))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestBuildOutline(t *testing.T) {
	m := buildOutline(mustParse(t))
	if m.Title != "Outline Test" {
		t.Errorf("title = %q", m.Title)
	}
	if len(m.Bars) != 3 {
		t.Fatalf("bars = %d, want 3", len(m.Bars))
	}
	for i, b := range m.Bars {
		if b.Frac <= 0 || b.Frac > 1 {
			t.Errorf("bar %d frac = %v out of (0,1]", i, b.Frac)
		}
		if b.Words <= 0 {
			t.Errorf("bar %d words = %d", i, b.Words)
		}
	}
	if !strings.Contains(m.Subtitle, "3 sections") {
		t.Errorf("subtitle = %q", m.Subtitle)
	}
}

func TestRenderOutlineSVG_OneBarPerSection(t *testing.T) {
	m := buildOutline(mustParse(t))
	var buf bytes.Buffer
	if err := renderOutlineSVG(&buf, m); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	// Header roundrect plus one per bar.
	if got := strings.Count(out, "<rect"); got < 1+len(m.Bars) {
		t.Errorf("rect count = %d, want at least %d", got, 1+len(m.Bars))
	}
	for _, b := range m.Bars {
		if !strings.Contains(out, truncateTitle(b.Title, 18)) {
			t.Errorf("svg missing section title %q", b.Title)
		}
	}
}

func TestWriteOutline_FormatDispatch(t *testing.T) {
	doc := mustParse(t)
	dir := t.TempDir()

	svgPath := filepath.Join(dir, "outline.svg")
	if err := WriteOutline(doc, svgPath); err != nil {
		t.Fatalf("svg: %v", err)
	}
	if info, err := os.Stat(svgPath); err != nil || info.Size() == 0 {
		t.Errorf("svg output missing or empty: %v", err)
	}

	pngPath := filepath.Join(dir, "outline.png")
	if err := WriteOutline(doc, pngPath); err != nil {
		t.Fatalf("png: %v", err)
	}
	if info, err := os.Stat(pngPath); err != nil || info.Size() == 0 {
		t.Errorf("png output missing or empty: %v", err)
	}

	if err := WriteOutline(doc, filepath.Join(dir, "outline.pdf")); err == nil {
		t.Error("unsupported extension should error")
	}
}
