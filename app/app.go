// Package app wires the hardware layer to the application shell and owns the
// per-frame step.
package app

import (
	"time"

	"calcpad/apps/calculator"
	"calcpad/apps/mainmenu"
	"calcpad/apps/snake"
	"calcpad/hal"
	"calcpad/input"
	"calcpad/shell"
	"calcpad/ui"
)

// maxEventsPerStep bounds input handling per frame so a burst of queued keys
// cannot starve rendering.
const maxEventsPerStep = 8

type system struct {
	h      hal.HAL
	runner *shell.Runner
	src    *input.Source
	ticks  <-chan uint64

	lastTick uint64
	haveTick bool
}

// New builds the shell on top of h and returns the per-frame step function.
// The host runners call it once per frame; Run drives it on device.
func New(h hal.HAL) func() error {
	s := newSystem(h)
	return s.step
}

// Run drives the shell forever (device entrypoint).
func Run(h hal.HAL) {
	s := newSystem(h)
	for {
		if err := s.step(); err != nil {
			if l := h.Logger(); l != nil {
				l.WriteLineString("halted: " + err.Error())
			}
			select {}
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func newSystem(h hal.HAL) *system {
	var sur *ui.Surface
	if d := h.Display(); d != nil {
		if fb := d.Framebuffer(); fb != nil {
			sur = ui.NewSurface(fb)
		}
	}

	var bat hal.Battery
	if b := h.Battery(); b != nil {
		bat = b
	}

	entries := []mainmenu.Entry{
		{Name: "Calc", New: func() shell.App { return calculator.New(sur, bat) }},
		{Name: "Snake", New: func() shell.App { return snake.New(sur, bat) }},
	}

	s := &system{
		h:      h,
		src:    input.NewSource(h.Input()),
		runner: shell.NewRunner(mainmenu.New(sur, bat, entries), h.Logger()),
	}
	if t := h.Time(); t != nil {
		s.ticks = t.Ticks()
	}
	return s
}

// step runs one shell iteration: route pending input, then tick the active
// app with the elapsed base ticks. A panic anywhere inside is fatal to the
// session; there is no way to unwind a half-entered screen.
func (s *system) step() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = s.crash(r)
		}
	}()

	for i := 0; i < maxEventsPerStep; i++ {
		ev, ok := s.src.Poll()
		if !ok {
			break
		}
		s.runner.Dispatch(ev)
	}

	s.runner.Tick(s.drainTicks())
	return nil
}

// drainTicks consumes every pending tick and reports how many base ticks
// elapsed since the previous step.
func (s *system) drainTicks() uint64 {
	if s.ticks == nil {
		return 1
	}
	latest := s.lastTick
	got := false
	for {
		select {
		case seq := <-s.ticks:
			latest = seq
			got = true
		default:
			if !got {
				return 0
			}
			if !s.haveTick {
				s.haveTick = true
				s.lastTick = latest
				return 1
			}
			dt := latest - s.lastTick
			s.lastTick = latest
			return dt
		}
	}
}
