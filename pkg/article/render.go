package article

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/fennwick/longread/pkg/layout"
)

// Rendered is the article laid out at a fixed width. Extents carry each
// section's first and last rendered line in document coordinates; they are
// only valid for this width and must be recomputed after a resize.
type Rendered struct {
	Width   int
	Lines   []string
	Extents []layout.SectionPosition
}

// Content returns the rendered document as a single string for the viewport.
func (r *Rendered) Content() string {
	return strings.Join(r.Lines, "\n")
}

// Height returns the rendered document height in lines.
func (r *Rendered) Height() int {
	return len(r.Lines)
}

// Render lays the article out at the given width using the named glamour
// style ("auto" picks light/dark from the terminal). Sections are rendered
// chunk by chunk so their line extents fall out of the chunk heights.
func (d *Document) Render(width int, style string) (*Rendered, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}

	out := &Rendered{Width: width}
	appendChunk := func(src []byte) (top, bottom int, err error) {
		rendered, err := tr.Render(string(src))
		if err != nil {
			return 0, 0, err
		}
		lines := strings.Split(strings.TrimSuffix(rendered, "\n"), "\n")
		top = len(out.Lines)
		out.Lines = append(out.Lines, lines...)
		return top, len(out.Lines) - 1, nil
	}

	if len(strings.TrimSpace(string(d.preamble))) > 0 {
		if _, _, err := appendChunk(d.preamble); err != nil {
			return nil, err
		}
	}
	for _, s := range d.Sections {
		top, bottom, err := appendChunk(s.source)
		if err != nil {
			return nil, err
		}
		out.Extents = append(out.Extents, layout.SectionPosition{
			ID:     s.ID,
			Top:    top,
			Bottom: bottom,
		})
	}
	return out, nil
}
