package input

import (
	"testing"

	"calcpad/hal"
)

type fakeKeyboard struct {
	ch chan hal.KeyEvent
}

func (k *fakeKeyboard) Events() <-chan hal.KeyEvent { return k.ch }

type fakeInput struct {
	kbd hal.Keyboard
}

func (in *fakeInput) Keyboard() hal.Keyboard { return in.kbd }

func newTestSource(n int) (*Source, chan hal.KeyEvent) {
	ch := make(chan hal.KeyEvent, n)
	src := NewSource(&fakeInput{kbd: &fakeKeyboard{ch: ch}})
	return src, ch
}

func TestPollEmpty(t *testing.T) {
	src, _ := newTestSource(4)
	if ev, ok := src.Poll(); ok {
		t.Fatalf("expected no event, got %+v", ev)
	}
}

func TestPollNilKeyboard(t *testing.T) {
	src := NewSource(nil)
	if _, ok := src.Poll(); ok {
		t.Fatal("nil source reported an event")
	}
}

func TestRuneMapping(t *testing.T) {
	cases := []struct {
		r    rune
		want Event
	}{
		{'0', Event{Kind: KindDigit, Digit: 0}},
		{'7', Event{Kind: KindDigit, Digit: 7}},
		{'.', Event{Kind: KindDecimal}},
		{'+', Event{Kind: KindPlus}},
		{'-', Event{Kind: KindMinus}},
		{'*', Event{Kind: KindMul}},
		{'/', Event{Kind: KindDiv}},
		{'(', Event{Kind: KindLeftParen}},
		{')', Event{Kind: KindRightParen}},
		{'=', Event{Kind: KindEvaluate}},
		{'c', Event{Kind: KindClear}},
		{'C', Event{Kind: KindClear}},
	}
	src, ch := newTestSource(len(cases))
	for _, tc := range cases {
		ch <- hal.KeyEvent{Press: true, Rune: tc.r}
	}
	for _, tc := range cases {
		ev, ok := src.Poll()
		if !ok {
			t.Fatalf("rune %q: no event", tc.r)
		}
		if ev != tc.want {
			t.Errorf("rune %q: got %+v, want %+v", tc.r, ev, tc.want)
		}
	}
}

func TestCodeMapping(t *testing.T) {
	cases := []struct {
		code hal.KeyCode
		want Kind
	}{
		{hal.KeyUp, KindUp},
		{hal.KeyDown, KindDown},
		{hal.KeyLeft, KindLeft},
		{hal.KeyRight, KindRight},
		{hal.KeyEnter, KindSelect},
		{hal.KeyEscape, KindBack},
		{hal.KeyBackspace, KindDelete},
		{hal.KeyDelete, KindClear},
	}
	src, ch := newTestSource(len(cases))
	for _, tc := range cases {
		ch <- hal.KeyEvent{Press: true, Code: tc.code}
	}
	for _, tc := range cases {
		ev, ok := src.Poll()
		if !ok {
			t.Fatalf("code %v: no event", tc.code)
		}
		if ev.Kind != tc.want {
			t.Errorf("code %v: got kind %v, want %v", tc.code, ev.Kind, tc.want)
		}
	}
}

func TestReleaseAndUnknownSkipped(t *testing.T) {
	src, ch := newTestSource(4)
	ch <- hal.KeyEvent{Press: false, Rune: '5'}
	ch <- hal.KeyEvent{Press: true, Rune: '~'}
	ch <- hal.KeyEvent{Press: true, Rune: '3'}
	ev, ok := src.Poll()
	if !ok || ev.Kind != KindDigit || ev.Digit != 3 {
		t.Fatalf("got %+v %v, want digit 3", ev, ok)
	}
	if _, ok := src.Poll(); ok {
		t.Fatal("expected queue drained")
	}
}

func TestBufferChar(t *testing.T) {
	cases := []struct {
		ev   Event
		want byte
		ok   bool
	}{
		{Event{Kind: KindDigit, Digit: 9}, '9', true},
		{Event{Kind: KindDecimal}, '.', true},
		{Event{Kind: KindPlus}, '+', true},
		{Event{Kind: KindMinus}, '-', true},
		{Event{Kind: KindMul}, '*', true},
		{Event{Kind: KindDiv}, '/', true},
		{Event{Kind: KindLeftParen}, '(', true},
		{Event{Kind: KindRightParen}, ')', true},
		{Event{Kind: KindEvaluate}, 0, false},
		{Event{Kind: KindUp}, 0, false},
		{Event{Kind: KindNone}, 0, false},
	}
	for _, tc := range cases {
		got, ok := tc.ev.BufferChar()
		if got != tc.want || ok != tc.ok {
			t.Errorf("BufferChar(%+v) = %q, %v; want %q, %v", tc.ev, got, ok, tc.want, tc.ok)
		}
	}
}
