// Package calculator is the arithmetic screen: an editable expression
// buffer, an evaluation history pane, and inline error reporting.
package calculator

import (
	"errors"
	"strconv"

	"calcpad/expr"
	"calcpad/hal"
	"calcpad/input"
	"calcpad/shell"
	"calcpad/ui"
)

// blinkTicks is the cursor phase length in base ticks (1ms each).
const blinkTicks = 500

// maxHistory bounds the scrollback; older lines fall off the top.
const maxHistory = 32

type historyLine struct {
	Text  string
	IsErr bool
}

type App struct {
	sur *ui.Surface
	bat hal.Battery

	buffer  string
	history []historyLine
	errMsg  string

	// justEvaluated marks the buffer as holding a result: the next digit
	// starts a fresh expression, while an operator continues from it.
	justEvaluated bool

	blinkAcc uint64
	cursorOn bool
	dirty    bool
}

func New(sur *ui.Surface, bat hal.Battery) *App {
	return &App{sur: sur, bat: bat}
}

func (a *App) Enter() {
	a.cursorOn = true
	a.blinkAcc = 0
	a.dirty = true
}

func (a *App) Exit() error { return nil }

func (a *App) Tick(dt uint64) shell.Transition {
	a.blinkAcc += dt
	for a.blinkAcc >= blinkTicks {
		a.blinkAcc -= blinkTicks
		a.cursorOn = !a.cursorOn
		a.dirty = true
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
	case input.KindEvaluate, input.KindSelect:
		a.evaluate()
	case input.KindClear:
		a.buffer = ""
		a.errMsg = ""
		a.justEvaluated = false
		a.dirty = true
	case input.KindDelete:
		if a.buffer != "" {
			a.buffer = a.buffer[:len(a.buffer)-1]
		}
		a.errMsg = ""
		a.justEvaluated = false
		a.dirty = true
	default:
		if c, ok := ev.BufferChar(); ok {
			a.append(c)
		}
	}
	return shell.None()
}

// Buffer exposes the edit buffer for tests.
func (a *App) Buffer() string { return a.buffer }

// LastResult returns the most recent history line, "" if none.
func (a *App) LastResult() string {
	if len(a.history) == 0 {
		return ""
	}
	return a.history[len(a.history)-1].Text
}

func (a *App) append(c byte) {
	if a.justEvaluated {
		switch c {
		case '+', '-', '*', '/', ')':
			// keep the result as the left operand
		default:
			a.buffer = ""
		}
		a.justEvaluated = false
	}
	a.buffer += string(c)
	a.errMsg = ""
	a.dirty = true
}

// evaluate runs the buffer through the expression engine. On failure the
// buffer stays put for correction; on success the result becomes the new
// buffer so chained calculations work.
func (a *App) evaluate() {
	a.dirty = true
	if a.buffer == "" {
		return
	}
	v, err := expr.Eval(a.buffer)
	if err != nil {
		a.errMsg = errorMessage(err)
		a.pushHistory(historyLine{Text: a.buffer + " : " + a.errMsg, IsErr: true})
		return
	}
	res := strconv.FormatFloat(v, 'g', -1, 64)
	a.pushHistory(historyLine{Text: a.buffer + " = " + res})
	a.buffer = res
	a.errMsg = ""
	a.justEvaluated = true
}

func (a *App) pushHistory(l historyLine) {
	a.history = append(a.history, l)
	if len(a.history) > maxHistory {
		a.history = a.history[len(a.history)-maxHistory:]
	}
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, expr.ErrDivideByZero):
		return "divide by zero"
	case errors.Is(err, expr.ErrLex):
		return "bad input"
	case errors.Is(err, expr.ErrSyntax):
		return "syntax error"
	default:
		return err.Error()
	}
}

func (a *App) render() {
	if a.sur == nil {
		return
	}
	w, h := a.sur.Size()
	a.sur.Clear(ui.ColorBG)
	a.sur.DrawHeader("Calculator", batteryStatus(a.bat))

	bodyTop := ui.HeaderHeight
	bodyH := h - bodyTop - ui.FooterHeight
	line := a.sur.LineHeight()

	// History pane takes the upper 60%, console the rest.
	histH := bodyH * 3 / 5
	a.sur.DrawRect(3, bodyTop+3, w-6, histH-6, ui.ColorDim)
	rows := (histH - 12) / (line + 2)
	if rows < 0 {
		rows = 0
	}
	start := len(a.history) - rows
	if start < 0 {
		start = 0
	}
	y := bodyTop + 6
	for _, l := range a.history[start:] {
		c := ui.ColorDim
		if l.IsErr {
			c = ui.ColorError
		}
		a.sur.DrawText(8, y, l.Text, c)
		y += line + 2
	}

	consTop := bodyTop + histH
	a.sur.DrawRect(3, consTop+3, w-6, bodyH-histH-6, ui.ColorFG)
	ty := consTop + 8
	a.sur.DrawText(8, ty, a.buffer, ui.ColorFG)
	if a.cursorOn {
		cx := 8 + a.sur.TextWidth(a.buffer) + 1
		a.sur.FillRect(cx, ty, 2, line, ui.ColorAccent)
	}
	if a.errMsg != "" {
		a.sur.DrawText(8, ty+line+4, a.errMsg, ui.ColorError)
	}

	a.sur.DrawFooter("ESC", "Back", "=", "Eval", "DEL", "Clear")
	a.sur.Present()
}

func batteryStatus(bat hal.Battery) hal.BatteryStatus {
	if bat == nil {
		return hal.BatteryStatus{}
	}
	return bat.Status()
}
