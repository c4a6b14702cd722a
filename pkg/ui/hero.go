package ui

import (
	"fmt"
	"image"
	"os"
	"strings"
	"time"

	// Decoders for the common hero formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xdraw "golang.org/x/image/draw"

	"github.com/fennwick/longread/pkg/debug"
)

// heroArtWidth is the hero banner width in terminal cells.
const heroArtWidth = 48

// heroState tracks the hero image through decode and reveal. loaded means
// the decode finished; revealed means the art is shown (after the staggered
// entrance, or immediately under reduced motion).
type heroState struct {
	path     string
	loaded   bool
	revealed bool
	art      []string
}

// loadHeroCmd decodes and downscales the hero image off the update loop.
func loadHeroCmd(path string, width int) tea.Cmd {
	return func() tea.Msg {
		img, err := decodeImage(path)
		if err != nil {
			return heroLoadedMsg{err: err}
		}
		return heroLoadedMsg{art: renderHalfBlocks(img, width)}
	}
}

// handleHeroLoaded reveals the hero: immediately under reduced motion,
// otherwise after the stagger delay. A decode failure quietly drops the
// feature.
func (m *Model) handleHeroLoaded(msg heroLoadedMsg) tea.Cmd {
	if msg.err != nil {
		debug.Log("hero image: %v", msg.err)
		return nil
	}
	m.hero.loaded = true
	m.hero.art = msg.art
	if m.reducedMotion {
		m.hero.revealed = true
		return nil
	}
	return tea.Tick(m.cfg.Behavior.HeroStagger(), func(time.Time) tea.Msg {
		return heroRevealMsg{}
	})
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// renderHalfBlocks downscales the image to width cells and renders it with
// upper-half-block glyphs, two image rows per terminal row.
func renderHalfBlocks(img image.Image, width int) []string {
	if width < 1 {
		width = 1
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil
	}
	// A terminal cell is roughly twice as tall as wide; the half-block
	// split restores square pixels.
	height := b.Dy() * width / b.Dx()
	if height < 2 {
		height = 2
	}
	if height%2 != 0 {
		height++
	}

	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, b, xdraw.Over, nil)

	rows := make([]string, 0, height/2)
	for y := 0; y < height; y += 2 {
		var sb strings.Builder
		for x := 0; x < width; x++ {
			topHex := rgbaHex(scaled.RGBAAt(x, y))
			botHex := rgbaHex(scaled.RGBAAt(x, y+1))
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(topHex)).
				Background(lipgloss.Color(botHex)).
				Render("▀"))
		}
		rows = append(rows, sb.String())
	}
	return rows
}

func rgbaHex(c interface{ RGBA() (r, g, b, a uint32) }) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
