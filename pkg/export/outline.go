// Package export renders shareable snapshots of an article's structure.
//
// The outline snapshot is a section map: one bar per section, scaled by word
// count, annotated with the overall reading time. SVG and PNG outputs share
// one layout pass.
package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"
	"gonum.org/v1/gonum/stat"

	"github.com/fennwick/longread/pkg/article"
)

const (
	outlineWidth  = 720
	outlineHeader = 72
	barRow        = 34
	barHeight     = 18
	barMaxWidth   = 520
	barLeft       = 170
	footerPad     = 24
)

var (
	colorBackdrop = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	colorHeaderBG = color.RGBA{0xf3, 0xf4, 0xf6, 0xff}
	colorBar      = color.RGBA{0xc7, 0xd2, 0xfe, 0xff}
	colorBarEdge  = color.RGBA{0x63, 0x66, 0xf1, 0xff}
	colorText     = color.RGBA{0x11, 0x11, 0x11, 0xff}
	colorSubtle   = color.RGBA{0x66, 0x66, 0x66, 0xff}
)

type outlineBar struct {
	Title string
	Words int
	Frac  float64 // bar width fraction of barMaxWidth
}

type outlineModel struct {
	Title    string
	Subtitle string
	Bars     []outlineBar
	Width    int
	Height   int
}

// WriteOutline renders the article outline to path; the extension picks the
// format (.svg or .png).
func WriteOutline(doc *article.Document, path string) error {
	m := buildOutline(doc)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return renderOutlineSVG(f, m)
	case ".png":
		return renderOutlinePNG(path, m)
	default:
		return fmt.Errorf("unsupported outline format %q (want .svg or .png)", filepath.Ext(path))
	}
}

// buildOutline computes bar fractions against a robust scale so one huge
// section doesn't flatten the rest.
func buildOutline(doc *article.Document) outlineModel {
	counts := doc.SectionWordCounts()
	scale := 1.0
	if len(counts) > 0 {
		sorted := append([]float64(nil), counts...)
		sort.Float64s(sorted)
		scale = stat.Quantile(0.95, stat.Empirical, sorted, nil)
		if scale <= 0 {
			scale = 1
		}
	}

	m := outlineModel{
		Title:    doc.Meta.Title,
		Subtitle: fmt.Sprintf("%d words · %s read · %d sections", doc.Words(), formatMinutes(doc), len(doc.Sections)),
		Width:    outlineWidth,
	}
	for i, s := range doc.Sections {
		frac := counts[i] / scale
		if frac > 1 {
			frac = 1
		}
		m.Bars = append(m.Bars, outlineBar{
			Title: s.Title,
			Words: int(counts[i]),
			Frac:  frac,
		})
	}
	m.Height = outlineHeader + len(m.Bars)*barRow + footerPad
	return m
}

func formatMinutes(doc *article.Document) string {
	mins := int(doc.ReadingTime().Minutes())
	return fmt.Sprintf("%d min", mins)
}

func renderOutlineSVG(w io.Writer, m outlineModel) error {
	canvas := svg.New(w)
	canvas.Start(m.Width, m.Height)
	canvas.Rect(0, 0, m.Width, m.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Roundrect(16, 12, m.Width-32, outlineHeader-24, 10, 10, fmt.Sprintf("fill:%s", css(colorHeaderBG)))
	canvas.Text(32, 38, m.Title, fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorText)))
	canvas.Text(32, 56, m.Subtitle, fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorSubtle)))

	for i, b := range m.Bars {
		y := outlineHeader + i*barRow
		canvas.Text(32, y+barHeight-4, truncateTitle(b.Title, 18),
			fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorText)))
		bw := int(b.Frac * barMaxWidth)
		if bw < 2 {
			bw = 2
		}
		canvas.Roundrect(barLeft, y, bw, barHeight, 4, 4,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", css(colorBar), css(colorBarEdge)))
		canvas.Text(barLeft+bw+8, y+barHeight-4, fmt.Sprintf("%dw", b.Words),
			fmt.Sprintf("fill:%s;font-size:11px;font-family:monospace", css(colorSubtle)))
	}
	canvas.End()
	return nil
}

func renderOutlinePNG(path string, m outlineModel) error {
	dc := gg.NewContext(m.Width, m.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()

	dc.SetColor(colorHeaderBG)
	dc.DrawRoundedRectangle(16, 12, float64(m.Width)-32, outlineHeader-24, 10)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(colorText)
	dc.DrawStringAnchored(m.Title, 32, 34, 0, 0.5)
	dc.SetColor(colorSubtle)
	dc.DrawStringAnchored(m.Subtitle, 32, 52, 0, 0.5)

	for i, b := range m.Bars {
		y := float64(outlineHeader + i*barRow)
		dc.SetColor(colorText)
		dc.DrawStringAnchored(truncateTitle(b.Title, 18), 32, y+barHeight/2, 0, 0.5)

		bw := b.Frac * barMaxWidth
		if bw < 2 {
			bw = 2
		}
		dc.SetColor(colorBar)
		dc.DrawRoundedRectangle(barLeft, y, bw, barHeight, 4)
		dc.Fill()
		dc.SetColor(colorBarEdge)
		dc.SetLineWidth(1)
		dc.DrawRoundedRectangle(barLeft, y, bw, barHeight, 4)
		dc.Stroke()

		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(fmt.Sprintf("%dw", b.Words), barLeft+bw+8, y+barHeight/2, 0, 0.5)
	}
	return dc.SavePNG(path)
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func truncateTitle(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return s[:max-1] + "…"
}
