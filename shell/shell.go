// Package shell runs a stack of screen applications over a single-threaded
// dispatch loop.
package shell

import "calcpad/input"

// App is one screen. Enter is called each time the app becomes the active
// top of the stack (first push or re-exposure after a pop above it), Exit
// each time it stops being active. Tick and Input are only delivered while
// active, and only after Enter has returned.
type App interface {
	Enter()
	Exit() error
	Tick(dt uint64) Transition
	Input(ev input.Event) Transition
}

type transitionKind uint8

const (
	transitionNone transitionKind = iota
	transitionPush
	transitionPop
	transitionReplace
)

// Transition is an app's request to change the stack. The zero value means
// "stay put".
type Transition struct {
	kind transitionKind
	app  App
}

func None() Transition { return Transition{} }

// Push stacks app on top of the caller.
func Push(app App) Transition { return Transition{kind: transitionPush, app: app} }

// Pop removes the caller from the stack. Popping the root screen is ignored.
func Pop() Transition { return Transition{kind: transitionPop} }

// Replace swaps the caller for app in one step. Like Pop, it is ignored for
// the root screen.
func Replace(app App) Transition { return Transition{kind: transitionReplace, app: app} }
