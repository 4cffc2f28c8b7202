// Package snake is a small arcade screen, mostly here to prove the shell can
// host more than the calculator.
package snake

import (
	"image/color"
	"strconv"

	"calcpad/hal"
	"calcpad/input"
	"calcpad/shell"
	"calcpad/ui"
)

type direction uint8

const (
	dirUp direction = iota
	dirRight
	dirDown
	dirLeft
)

type point struct {
	x int
	y int
}

// Step pacing in base ticks (1ms); the snake speeds up with score.
const (
	stepBaseTicks = 180
	stepMinTicks  = 60
	cellPx        = 10
)

type App struct {
	sur *ui.Surface
	bat hal.Battery

	gridW int
	gridH int

	snake   []point
	headDir direction
	nextDir direction
	food    point
	rng     uint32

	score  int
	alive  bool
	paused bool

	stepAcc uint64
	dirty   bool
}

func New(sur *ui.Surface, bat hal.Battery) *App {
	return &App{sur: sur, bat: bat}
}

func (a *App) Enter() {
	a.reset()
	a.dirty = true
}

func (a *App) Exit() error { return nil }

func (a *App) reset() {
	a.gridW, a.gridH = a.gridSize()
	start := point{x: a.gridW / 2, y: a.gridH / 2}
	a.snake = []point{
		start,
		{x: start.x - 1, y: start.y},
		{x: start.x - 2, y: start.y},
	}
	a.headDir = dirRight
	a.nextDir = dirRight
	a.score = 0
	a.alive = true
	a.paused = false
	a.stepAcc = 0
	a.rng = 0x12345678
	a.spawnFood()
}

// gridSize derives the playfield from the surface, with a fallback so the
// game logic stays testable without a framebuffer.
func (a *App) gridSize() (int, int) {
	if a.sur == nil {
		return 24, 24
	}
	w, h := a.sur.Size()
	gw := w / cellPx
	gh := (h - ui.HeaderHeight - ui.FooterHeight) / cellPx
	if gw < 8 {
		gw = 8
	}
	if gh < 8 {
		gh = 8
	}
	return gw, gh
}

func (a *App) Tick(dt uint64) shell.Transition {
	if a.alive && !a.paused {
		a.stepAcc += dt
		interval := a.stepInterval()
		for a.stepAcc >= interval {
			a.stepAcc -= interval
			a.step()
			a.dirty = true
			interval = a.stepInterval()
		}
	}
	if a.dirty {
		a.render()
		a.dirty = false
	}
	return shell.None()
}

func (a *App) Input(ev input.Event) shell.Transition {
	switch ev.Kind {
	case input.KindBack:
		return shell.Pop()
	case input.KindUp:
		a.setDir(dirUp)
	case input.KindDown:
		a.setDir(dirDown)
	case input.KindLeft:
		a.setDir(dirLeft)
	case input.KindRight:
		a.setDir(dirRight)
	case input.KindSelect:
		if !a.alive {
			a.reset()
		} else {
			a.paused = !a.paused
		}
		a.dirty = true
	}
	return shell.None()
}

func (a *App) stepInterval() uint64 {
	interval := stepBaseTicks - a.score*4
	if interval < stepMinTicks {
		interval = stepMinTicks
	}
	return uint64(interval)
}

func (a *App) setDir(d direction) {
	if !a.alive {
		return
	}
	if (a.headDir == dirUp && d == dirDown) ||
		(a.headDir == dirDown && d == dirUp) ||
		(a.headDir == dirLeft && d == dirRight) ||
		(a.headDir == dirRight && d == dirLeft) {
		return
	}
	a.nextDir = d
}

func (a *App) step() {
	if !a.alive || len(a.snake) == 0 {
		return
	}

	a.headDir = a.nextDir
	next := a.snake[0]
	switch a.headDir {
	case dirUp:
		next.y--
	case dirDown:
		next.y++
	case dirLeft:
		next.x--
	case dirRight:
		next.x++
	}

	// Wrap-around playfield.
	next.x = (next.x%a.gridW + a.gridW) % a.gridW
	next.y = (next.y%a.gridH + a.gridH) % a.gridH

	willEat := next == a.food
	check := a.snake
	if !willEat && len(check) > 1 {
		check = check[:len(check)-1]
	}
	for _, p := range check {
		if p == next {
			a.alive = false
			return
		}
	}

	a.snake = append([]point{next}, a.snake...)
	if willEat {
		a.score++
		a.spawnFood()
		return
	}
	a.snake = a.snake[:len(a.snake)-1]
}

func (a *App) spawnFood() {
	for tries := 0; tries < 1024; tries++ {
		a.rng = xorshift32(a.rng)
		x := int(a.rng % uint32(a.gridW))
		a.rng = xorshift32(a.rng)
		y := int(a.rng % uint32(a.gridH))
		p := point{x: x, y: y}
		if !a.occupied(p) {
			a.food = p
			return
		}
	}
	a.food = point{}
}

func (a *App) occupied(p point) bool {
	for _, s := range a.snake {
		if s == p {
			return true
		}
	}
	return false
}

func xorshift32(x uint32) uint32 {
	if x == 0 {
		x = 0x6d2b79f5
	}
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	return x
}

func (a *App) render() {
	if a.sur == nil {
		return
	}
	a.sur.Clear(ui.ColorBG)
	a.sur.DrawHeader("Snake  "+strconv.Itoa(a.score), batteryStatus(a.bat))

	for i, p := range a.snake {
		c := ui.ColorGood
		if i == 0 {
			c = ui.ColorAccent
		}
		a.drawCell(p, c)
	}
	a.drawCell(a.food, ui.ColorError)

	switch {
	case !a.alive:
		a.sur.DrawFooter("ESC", "Back", "ENTER", "Restart")
	case a.paused:
		a.sur.DrawFooter("ESC", "Back", "ENTER", "Resume")
	default:
		a.sur.DrawFooter("ESC", "Back", "ENTER", "Pause")
	}
	a.sur.Present()
}

func (a *App) drawCell(p point, c color.RGBA) {
	a.sur.FillRect(p.x*cellPx, ui.HeaderHeight+p.y*cellPx, cellPx, cellPx, c)
}

func batteryStatus(bat hal.Battery) hal.BatteryStatus {
	if bat == nil {
		return hal.BatteryStatus{}
	}
	return bat.Status()
}
