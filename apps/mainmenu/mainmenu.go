// Package mainmenu is the root screen: a row of launcher tiles, one per
// installed application.
package mainmenu

import (
	"calcpad/hal"
	"calcpad/input"
	"calcpad/internal/buildinfo"
	"calcpad/shell"
	"calcpad/ui"
)

// Entry is one launchable tile. New builds a fresh app instance on each
// selection so no instance can sit on the stack twice.
type Entry struct {
	Name string
	New  func() shell.App
}

type App struct {
	sur     *ui.Surface
	bat     hal.Battery
	entries []Entry

	selected int
	dirty    bool
}

func New(sur *ui.Surface, bat hal.Battery, entries []Entry) *App {
	return &App{sur: sur, bat: bat, entries: entries}
}

func (a *App) Enter() {
	// Selection survives a round trip through a child app.
	a.dirty = true
}

func (a *App) Exit() error { return nil }

func (a *App) Tick(dt uint64) shell.Transition {
	_ = dt
	if a.dirty {
		a.render()
		a.dirty = false
	}
	return shell.None()
}

func (a *App) Input(ev input.Event) shell.Transition {
	switch ev.Kind {
	case input.KindLeft, input.KindUp:
		a.move(-1)
	case input.KindRight, input.KindDown:
		a.move(1)
	case input.KindSelect, input.KindEvaluate:
		if len(a.entries) > 0 {
			if app := a.entries[a.selected].New(); app != nil {
				return shell.Push(app)
			}
		}
	}
	return shell.None()
}

// Selected reports the cursor position, mostly for tests.
func (a *App) Selected() int { return a.selected }

func (a *App) move(delta int) {
	n := len(a.entries)
	if n == 0 {
		return
	}
	a.selected = ((a.selected+delta)%n + n) % n
	a.dirty = true
}

const (
	tileW   = 80
	tileH   = 80
	tileGap = 16
)

func (a *App) render() {
	if a.sur == nil {
		return
	}
	w, h := a.sur.Size()
	a.sur.Clear(ui.ColorBG)
	a.sur.DrawHeader("CalcPad", batteryStatus(a.bat))

	n := len(a.entries)
	rowW := n*tileW + (n-1)*tileGap
	x := (w - rowW) / 2
	y := (h - tileH) / 2
	for i, e := range a.entries {
		border := ui.ColorDim
		fill := ui.ColorBG
		label := ui.ColorFG
		if i == a.selected {
			border = ui.ColorAccent
			fill = ui.ColorBarBG
		}
		a.sur.FillRect(x+1, y+1, tileW-2, tileH-2, fill)
		a.sur.DrawRect(x, y, tileW, tileH, border)
		tx := x + (tileW-a.sur.TextWidth(e.Name))/2
		ty := y + (tileH-a.sur.LineHeight())/2
		a.sur.DrawText(tx, ty, e.Name, label)
		x += tileW + tileGap
	}

	a.sur.DrawFooter("< >", "Move", "ENTER", "Launch")
	ver := buildinfo.Short()
	a.sur.DrawText(w-a.sur.TextWidth(ver)-4,
		h-ui.FooterHeight-a.sur.LineHeight()-2, ver, ui.ColorDim)

	a.sur.Present()
}

func batteryStatus(bat hal.Battery) hal.BatteryStatus {
	if bat == nil {
		return hal.BatteryStatus{}
	}
	return bat.Status()
}
