package ui

import (
	"image/color"
	"strconv"

	"calcpad/hal"
)

// HeaderHeight and FooterHeight are fixed bar heights shared by all apps so
// content areas line up across screens.
const (
	HeaderHeight = 18
	FooterHeight = 16
)

// DrawHeader paints the title bar with the app name on the left and the
// battery indicator on the right.
func (s *Surface) DrawHeader(title string, bat hal.BatteryStatus) {
	w, _ := s.Size()
	s.FillRect(0, 0, w, HeaderHeight, ColorBarBG)
	s.DrawText(4, (HeaderHeight-s.LineHeight())/2, title, ColorFG)
	s.drawBattery(w-64, (HeaderHeight-batteryBodyH)/2, bat)
}

// DrawFooter paints a key legend along the bottom edge, e.g.
// DrawFooter("ESC", "Back", "ENTER", "Select").
func (s *Surface) DrawFooter(pairs ...string) {
	w, h := s.Size()
	top := h - FooterHeight
	s.FillRect(0, top, w, FooterHeight, ColorBarBG)
	x := 4
	ty := top + (FooterHeight-s.LineHeight())/2
	for i := 0; i+1 < len(pairs); i += 2 {
		key, label := pairs[i], pairs[i+1]
		kw := s.TextWidth(key)
		s.FillRect(x, top+2, kw+6, FooterHeight-4, ColorSelBG)
		s.DrawText(x+3, ty, key, ColorSelFG)
		x += kw + 10
		s.DrawText(x, ty, label, ColorDim)
		x += s.TextWidth(label) + 12
	}
}

const (
	batteryBodyW     = 24
	batteryBodyH     = 12
	batteryTerminalW = 2
	batteryTerminalH = 6
)

// drawBattery renders the battery glyph plus its caption: a color coded
// charge bar, "USB" on external power, "--" when the level is unknown.
func (s *Surface) drawBattery(x, y int, bat hal.BatteryStatus) {
	var (
		c    color.RGBA
		fill int
		text string
	)
	switch {
	case bat.USB:
		c = ColorGood
		fill = 100
		text = "USB"
	case !bat.Known:
		c = ColorFG
		fill = 0
		text = "--"
	case bat.Percent > 50:
		c = ColorGood
		fill = bat.Percent
		text = strconv.Itoa(bat.Percent) + "%"
	case bat.Percent > 20:
		c = ColorWarn
		fill = bat.Percent
		text = strconv.Itoa(bat.Percent) + "%"
	default:
		c = ColorError
		fill = bat.Percent
		text = strconv.Itoa(bat.Percent) + "%"
	}
	if fill < 0 {
		fill = 0
	}
	if fill > 100 {
		fill = 100
	}

	s.DrawRect(x, y, batteryBodyW, batteryBodyH, c)
	s.FillRect(x+batteryBodyW, y+(batteryBodyH-batteryTerminalH)/2,
		batteryTerminalW, batteryTerminalH, c)
	if fw := (batteryBodyW - 4) * fill / 100; fw > 0 {
		s.FillRect(x+2, y+2, fw, batteryBodyH-4, c)
	}
	s.DrawText(x+30, y+(batteryBodyH-s.LineHeight())/2, text, c)
}
