package shell

import (
	"errors"
	"strings"
	"testing"

	"calcpad/input"
)

// probeApp records lifecycle calls and returns a queued transition from the
// next Input or Tick.
type probeApp struct {
	name    string
	enters  int
	exits   int
	exitErr error
	next    Transition
}

func (a *probeApp) Enter()      { a.enters++ }
func (a *probeApp) Exit() error { a.exits++; return a.exitErr }

func (a *probeApp) Tick(uint64) Transition {
	t := a.next
	a.next = None()
	return t
}

func (a *probeApp) Input(input.Event) Transition {
	t := a.next
	a.next = None()
	return t
}

type lineLogger struct {
	lines []string
}

func (l *lineLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *lineLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

func TestNewRunnerEntersRoot(t *testing.T) {
	root := &probeApp{name: "root"}
	r := NewRunner(root, nil)
	if root.enters != 1 {
		t.Fatalf("root enters = %d, want 1", root.enters)
	}
	if r.Top() != root || r.Depth() != 1 {
		t.Fatal("runner not initialized on root")
	}
}

func TestPushPopRoundTrip(t *testing.T) {
	root := &probeApp{name: "root"}
	child := &probeApp{name: "child"}
	r := NewRunner(root, nil)

	root.next = Push(child)
	r.Dispatch(input.Event{Kind: input.KindSelect})
	if r.Top() != child || r.Depth() != 2 {
		t.Fatal("push did not activate child")
	}
	if root.exits != 1 {
		t.Fatalf("root exits = %d, want 1 on deactivation", root.exits)
	}
	if child.enters != 1 {
		t.Fatalf("child enters = %d, want 1", child.enters)
	}

	child.next = Pop()
	r.Dispatch(input.Event{Kind: input.KindBack})
	if r.Top() != root || r.Depth() != 1 {
		t.Fatal("pop did not restore root")
	}
	if child.exits != 1 {
		t.Fatalf("child exits = %d, want 1", child.exits)
	}
	if root.enters != 2 {
		t.Fatalf("root enters = %d, want 2 (resumed, not rebuilt)", root.enters)
	}
}

func TestRootPopIsNoOp(t *testing.T) {
	root := &probeApp{name: "root"}
	r := NewRunner(root, nil)
	root.next = Pop()
	r.Dispatch(input.Event{Kind: input.KindBack})
	if r.Depth() != 1 || r.Top() != root {
		t.Fatal("root pop changed the stack")
	}
	if root.exits != 0 {
		t.Fatalf("root exits = %d, want 0 for a no-op pop", root.exits)
	}
}

func TestRootReplaceIsNoOp(t *testing.T) {
	root := &probeApp{name: "root"}
	other := &probeApp{name: "other"}
	r := NewRunner(root, nil)
	root.next = Replace(other)
	r.Tick(1)
	if r.Depth() != 1 || r.Top() != root {
		t.Fatal("root replace changed the stack")
	}
	if root.exits != 0 || other.enters != 0 {
		t.Fatalf("root exits = %d, other enters = %d; want 0, 0 for a no-op replace",
			root.exits, other.enters)
	}
}

func TestReplaceSwapsTop(t *testing.T) {
	root := &probeApp{name: "root"}
	a := &probeApp{name: "a"}
	b := &probeApp{name: "b"}
	r := NewRunner(root, nil)

	root.next = Push(a)
	r.Tick(1)
	a.next = Replace(b)
	r.Tick(1)

	if r.Top() != b || r.Depth() != 2 {
		t.Fatal("replace did not swap the top in place")
	}
	if a.exits != 1 || b.enters != 1 {
		t.Fatalf("a exits = %d, b enters = %d; want 1, 1", a.exits, b.enters)
	}
	if root.enters != 1 {
		t.Fatalf("root enters = %d; replace must not re-enter the app below", root.enters)
	}
}

func TestTickAppliesTransition(t *testing.T) {
	root := &probeApp{name: "root"}
	child := &probeApp{name: "child"}
	r := NewRunner(root, nil)
	root.next = Push(child)
	r.Tick(16)
	if r.Top() != child {
		t.Fatal("tick transition not applied")
	}
}

func TestPushNilIgnored(t *testing.T) {
	root := &probeApp{name: "root"}
	r := NewRunner(root, nil)
	root.next = Push(nil)
	r.Tick(1)
	if r.Depth() != 1 || root.exits != 0 {
		t.Fatal("nil push must leave the stack untouched")
	}
}

func TestExitErrorLoggedNotPropagated(t *testing.T) {
	log := &lineLogger{}
	root := &probeApp{name: "root"}
	child := &probeApp{name: "child", exitErr: errors.New("handle leak")}
	r := NewRunner(root, log)

	root.next = Push(child)
	r.Tick(1)
	child.next = Pop()
	r.Tick(1)

	if r.Top() != root {
		t.Fatal("pop blocked by exit error")
	}
	if len(log.lines) != 1 || !strings.Contains(log.lines[0], "handle leak") {
		t.Fatalf("exit error not logged: %v", log.lines)
	}
}

func TestBottomStaysRoot(t *testing.T) {
	root := &probeApp{name: "root"}
	r := NewRunner(root, nil)
	for i := 0; i < 5; i++ {
		top := r.Top().(*probeApp)
		top.next = Push(&probeApp{})
		r.Tick(1)
	}
	for i := 0; i < 10; i++ {
		top := r.Top().(*probeApp)
		top.next = Pop()
		r.Tick(1)
	}
	if r.Depth() != 1 || r.Top() != root {
		t.Fatal("stack bottom drifted from root")
	}
}
