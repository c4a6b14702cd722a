// Package article loads a markdown long-form article and splits it into the
// tracked sections that drive the reader's table of contents.
package article

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// Sections are taken from headings up to this level; deeper headings stay
// inside their parent section.
const maxSectionLevel = 2

// Meta is the article front matter.
type Meta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
	Hero        string `yaml:"hero"`
	Byline      string `yaml:"byline"`
	Date        string `yaml:"date"`
}

// Section is one tracked content region, keyed by a stable slug ID.
type Section struct {
	ID    string
	Title string
	Level int

	// source is the markdown slice for this section, heading included.
	source []byte
}

// Document is a parsed article: front matter plus ordered sections.
type Document struct {
	Meta     Meta
	Sections []Section
	Path     string

	// preamble is body content before the first tracked heading.
	preamble []byte
	body     []byte
}

// Load reads and parses the article at path. A missing hero image or absent
// front matter fields degrade the dependent features, not the load.
func Load(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read article: %w", err)
	}
	doc, err := Parse(src)
	if err != nil {
		return nil, err
	}
	doc.Path = path
	if doc.Meta.Title == "" {
		doc.Meta.Title = fallbackTitle(doc, path)
	}
	if doc.Meta.Hero != "" && !filepath.IsAbs(doc.Meta.Hero) {
		doc.Meta.Hero = filepath.Join(filepath.Dir(path), doc.Meta.Hero)
	}
	return doc, nil
}

// Parse splits front matter from the body and collects level-1/2 headings
// into ordered sections. Duplicate heading slugs get -2, -3... suffixes so
// IDs stay unique in stored order.
func Parse(src []byte) (*Document, error) {
	doc := &Document{}
	body, err := doc.splitFrontMatter(src)
	if err != nil {
		return nil, err
	}
	doc.body = body

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	type headingMark struct {
		start int
		title string
		level int
	}
	var marks []headingMark
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level > maxSectionLevel || h.Lines().Len() == 0 {
			continue
		}
		seg := h.Lines().At(0)
		start := seg.Start
		// Back up to the start of the heading's own line so the section
		// slice includes the marker.
		for start > 0 && body[start-1] != '\n' {
			start--
		}
		marks = append(marks, headingMark{
			start: start,
			title: strings.TrimSpace(string(nodeText(h, body))),
			level: h.Level,
		})
	}

	if len(marks) == 0 {
		doc.preamble = body
		return doc, nil
	}
	doc.preamble = body[:marks[0].start]

	used := make(map[string]int, len(marks))
	for i, mk := range marks {
		end := len(body)
		if i+1 < len(marks) {
			end = marks[i+1].start
		}
		id := slug.Make(mk.title)
		if id == "" {
			id = fmt.Sprintf("section-%d", i+1)
		}
		used[id]++
		if n := used[id]; n > 1 {
			id = fmt.Sprintf("%s-%d", id, n)
		}
		doc.Sections = append(doc.Sections, Section{
			ID:     id,
			Title:  mk.title,
			Level:  mk.level,
			source: body[mk.start:end],
		})
	}
	return doc, nil
}

// splitFrontMatter strips a leading yaml front matter block and unmarshals it
// into doc.Meta. Articles without front matter pass through untouched.
func (d *Document) splitFrontMatter(src []byte) ([]byte, error) {
	const fence = "---"
	trimmed := bytes.TrimLeft(src, "\ufeff")
	lines := bytes.SplitAfterN(trimmed, []byte("\n"), 2)
	if len(lines) < 2 || strings.TrimRight(string(lines[0]), "\r\n") != fence {
		return src, nil
	}
	rest := lines[1]
	idx := bytes.Index(rest, []byte("\n"+fence))
	if idx < 0 {
		return src, nil
	}
	block := rest[:idx]
	if err := yaml.Unmarshal(block, &d.Meta); err != nil {
		return nil, fmt.Errorf("front matter: %w", err)
	}
	body := rest[idx+len("\n"+fence):]
	body = bytes.TrimPrefix(body, []byte("\r"))
	body = bytes.TrimPrefix(body, []byte("\n"))
	return body, nil
}

// Lookup returns the section with the given ID.
func (d *Document) Lookup(id string) (Section, bool) {
	for _, s := range d.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

func fallbackTitle(doc *Document, path string) string {
	if len(doc.Sections) > 0 {
		return doc.Sections[0].Title
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// nodeText collects the literal text under n. ast.Node.Text is deprecated
// upstream, so walk the text segments directly.
func nodeText(n ast.Node, src []byte) []byte {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(src))
		}
		return ast.WalkContinue, nil
	})
	return buf.Bytes()
}
