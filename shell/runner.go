package shell

import (
	"calcpad/hal"
	"calcpad/input"
)

// Runner owns the application stack. All methods must be called from one
// goroutine; the stack is never empty and its bottom element is fixed for
// the lifetime of the Runner.
type Runner struct {
	stack []App
	log   hal.Logger
}

// NewRunner builds a runner with root active. Enter is invoked before
// NewRunner returns so the first Tick or Dispatch always reaches an
// entered app.
func NewRunner(root App, log hal.Logger) *Runner {
	r := &Runner{stack: []App{root}, log: log}
	root.Enter()
	return r
}

// Top returns the active app.
func (r *Runner) Top() App { return r.stack[len(r.stack)-1] }

func (r *Runner) Depth() int { return len(r.stack) }

// Dispatch routes one input event to the active app and applies at most one
// resulting transition.
func (r *Runner) Dispatch(ev input.Event) {
	r.apply(r.Top().Input(ev))
}

// Tick advances the active app by dt base ticks and applies at most one
// resulting transition.
func (r *Runner) Tick(dt uint64) {
	r.apply(r.Top().Tick(dt))
}

func (r *Runner) apply(t Transition) {
	switch t.kind {
	case transitionNone:
	case transitionPush:
		if t.app == nil {
			return
		}
		r.exitTop()
		r.stack = append(r.stack, t.app)
		t.app.Enter()
	case transitionPop:
		if len(r.stack) == 1 {
			return
		}
		r.exitTop()
		r.stack = r.stack[:len(r.stack)-1]
		r.Top().Enter()
	case transitionReplace:
		if t.app == nil || len(r.stack) == 1 {
			return
		}
		r.exitTop()
		r.stack[len(r.stack)-1] = t.app
		t.app.Enter()
	}
}

// exitTop deactivates the current top. Exit errors are logged and dropped:
// a screen that fails to release something must not wedge navigation.
func (r *Runner) exitTop() {
	if err := r.Top().Exit(); err != nil && r.log != nil {
		r.log.WriteLineString("shell: app exit: " + err.Error())
	}
}
