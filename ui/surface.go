package ui

import (
	"image/color"

	"calcpad/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	ColorBG     = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
	ColorFG     = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	ColorDim    = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
	ColorBarBG  = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
	ColorSelBG  = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	ColorSelFG  = color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}
	ColorAccent = color.RGBA{R: 0x7f, G: 0xc9, B: 0xff, A: 0xff}
	ColorError  = color.RGBA{R: 0xff, G: 0x6a, B: 0x6a, A: 0xff}
	ColorGood   = color.RGBA{R: 0x4c, G: 0xc9, B: 0x5a, A: 0xff}
	ColorWarn   = color.RGBA{R: 0xe6, G: 0xc0, B: 0x2a, A: 0xff}
)

// Surface wraps a framebuffer with a fixed font and pixel-level drawing
// helpers. All coordinates are top-left based; DrawText takes the top of the
// line, not the baseline.
type Surface struct {
	d          *fbDisplay
	font       *tinyfont.Font
	fontHeight int16
	glyphWidth int16
}

func NewSurface(fb hal.Framebuffer) *Surface {
	s := &Surface{
		d:    newFBDisplay(fb),
		font: &proggy.TinySZ8pt7b,
	}
	s.fontHeight = int16(s.font.YAdvance)
	_, outboxWidth := tinyfont.LineWidth(s.font, "0")
	s.glyphWidth = int16(outboxWidth)
	return s
}

func (s *Surface) Size() (w, h int) {
	x, y := s.d.Size()
	return int(x), int(y)
}

// LineHeight is the vertical advance of one text row in pixels.
func (s *Surface) LineHeight() int { return int(s.fontHeight) }

// GlyphWidth is the advance of the digit glyph, a usable estimate for the
// near-monospace font in use.
func (s *Surface) GlyphWidth() int { return int(s.glyphWidth) }

func (s *Surface) TextWidth(text string) int {
	w, _ := tinyfont.LineWidth(s.font, text)
	return int(w)
}

func (s *Surface) Clear(c color.RGBA) {
	w, h := s.d.Size()
	s.d.FillRectangle(0, 0, w, h, c)
}

func (s *Surface) FillRect(x, y, w, h int, c color.RGBA) {
	s.d.FillRectangle(int16(x), int16(y), int16(w), int16(h), c)
}

// DrawRect draws a 1px outline.
func (s *Surface) DrawRect(x, y, w, h int, c color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	s.d.FillRectangle(int16(x), int16(y), int16(w), 1, c)
	s.d.FillRectangle(int16(x), int16(y+h-1), int16(w), 1, c)
	s.d.FillRectangle(int16(x), int16(y), 1, int16(h), c)
	s.d.FillRectangle(int16(x+w-1), int16(y), 1, int16(h), c)
}

func (s *Surface) DrawText(x, y int, text string, c color.RGBA) {
	tinyfont.WriteLine(s.d, s.font, int16(x), int16(y)+s.fontHeight, text, c)
}

func (s *Surface) Present() error {
	return s.d.Display()
}
