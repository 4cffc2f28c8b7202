package mainmenu

import (
	"testing"

	"calcpad/input"
	"calcpad/shell"
)

type stubApp struct{ id int }

func (s *stubApp) Enter()                           {}
func (s *stubApp) Exit() error                      { return nil }
func (s *stubApp) Tick(uint64) shell.Transition     { return shell.None() }
func (s *stubApp) Input(input.Event) shell.Transition { return shell.None() }

func threeEntries() ([]Entry, *int) {
	built := 0
	mk := func(id int) func() shell.App {
		return func() shell.App {
			built++
			return &stubApp{id: id}
		}
	}
	return []Entry{
		{Name: "Calc", New: mk(0)},
		{Name: "Snake", New: mk(1)},
		{Name: "About", New: mk(2)},
	}, &built
}

func press(k input.Kind) input.Event { return input.Event{Kind: k} }

func TestSelectionWraps(t *testing.T) {
	entries, _ := threeEntries()
	m := New(nil, nil, entries)
	m.Enter()

	m.Input(press(input.KindLeft))
	if m.Selected() != 2 {
		t.Fatalf("left from 0: selected = %d, want 2", m.Selected())
	}
	m.Input(press(input.KindRight))
	if m.Selected() != 0 {
		t.Fatalf("right wrap: selected = %d, want 0", m.Selected())
	}
	m.Input(press(input.KindDown))
	m.Input(press(input.KindDown))
	m.Input(press(input.KindDown))
	if m.Selected() != 0 {
		t.Fatalf("three downs over three entries: selected = %d, want 0", m.Selected())
	}
	m.Input(press(input.KindUp))
	if m.Selected() != 2 {
		t.Fatalf("up from 0: selected = %d, want 2", m.Selected())
	}
}

func TestSelectPushesFreshInstance(t *testing.T) {
	entries, built := threeEntries()
	m := New(nil, nil, entries)
	m.Enter()
	m.Input(press(input.KindRight))

	tr := m.Input(press(input.KindSelect))
	if tr == shell.None() {
		t.Fatal("select produced no transition")
	}
	tr2 := m.Input(press(input.KindSelect))
	if tr2 == shell.None() {
		t.Fatal("second select produced no transition")
	}
	if *built != 2 {
		t.Fatalf("factory called %d times, want 2 (fresh instance per launch)", *built)
	}
	if tr == tr2 {
		t.Fatal("two launches returned the same app instance")
	}
}

func TestSelectionSurvivesReentry(t *testing.T) {
	entries, _ := threeEntries()
	m := New(nil, nil, entries)
	m.Enter()
	m.Input(press(input.KindRight))

	if err := m.Exit(); err != nil {
		t.Fatalf("exit: %v", err)
	}
	m.Enter()
	if m.Selected() != 1 {
		t.Fatalf("selection after re-entry = %d, want 1", m.Selected())
	}
}

func TestEmptyMenuIsInert(t *testing.T) {
	m := New(nil, nil, nil)
	m.Enter()
	m.Input(press(input.KindRight))
	if tr := m.Input(press(input.KindSelect)); tr != shell.None() {
		t.Fatal("empty menu produced a transition")
	}
	m.Tick(1)
}
