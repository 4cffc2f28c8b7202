package app

import (
	"fmt"
	"runtime/debug"
	"strings"

	"calcpad/ui"
)

// crash logs a fatal panic and paints a diagnostic screen: white background,
// black wrapped text. The returned error ends the session.
func (s *system) crash(r interface{}) error {
	msg := fmt.Sprintf("panic: %v", r)
	stack := debug.Stack()

	if l := s.h.Logger(); l != nil {
		l.WriteLineString("--- APPLICATION CRASH ---")
		l.WriteLineString(msg)
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			l.WriteLineString(line)
		}
	}

	s.paintCrashScreen(msg, stack)
	return fmt.Errorf("fatal: %v", r)
}

func (s *system) paintCrashScreen(msg string, stack []byte) {
	d := s.h.Display()
	if d == nil {
		return
	}
	fb := d.Framebuffer()
	if fb == nil {
		return
	}
	fb.ClearRGB(0xff, 0xff, 0xff)

	sur := ui.NewSurface(fb)
	w, h := sur.Size()
	cols := 1
	if gw := sur.GlyphWidth(); gw > 0 {
		cols = w / gw
		if cols < 1 {
			cols = 1
		}
	}
	line := sur.LineHeight()

	black := ui.ColorBG
	y := 2
	write := func(text string) {
		for len(text) > 0 && y+line <= h {
			n := len(text)
			if n > cols {
				n = cols
			}
			sur.DrawText(2, y, text[:n], black)
			text = text[n:]
			y += line
		}
	}

	write(msg)
	for _, l := range strings.Split(string(stack), "\n") {
		if l == "" || y+line > h {
			continue
		}
		write(l)
	}
	fb.Present()
}
