// Package input maps raw key events from the hardware layer onto the small
// event alphabet the applications consume.
package input

import "calcpad/hal"

type Kind uint8

const (
	KindNone Kind = iota
	KindDigit
	KindDecimal
	KindPlus
	KindMinus
	KindMul
	KindDiv
	KindLeftParen
	KindRightParen
	KindEvaluate
	KindClear
	KindDelete
	KindBack
	KindUp
	KindDown
	KindLeft
	KindRight
	KindSelect
)

// Event is one logical input. Digit is set only for KindDigit.
type Event struct {
	Kind  Kind
	Digit uint8
}

// BufferChar returns the character an event appends to a text buffer and
// whether the event carries one at all.
func (e Event) BufferChar() (byte, bool) {
	switch e.Kind {
	case KindDigit:
		return '0' + e.Digit, true
	case KindDecimal:
		return '.', true
	case KindPlus:
		return '+', true
	case KindMinus:
		return '-', true
	case KindMul:
		return '*', true
	case KindDiv:
		return '/', true
	case KindLeftParen:
		return '(', true
	case KindRightParen:
		return ')', true
	default:
		return 0, false
	}
}

// Source drains a keyboard into Events. A nil keyboard yields a source whose
// Poll never reports an event, which keeps headless setups simple.
type Source struct {
	events <-chan hal.KeyEvent
}

func NewSource(in hal.Input) *Source {
	s := &Source{}
	if in != nil {
		if kbd := in.Keyboard(); kbd != nil {
			s.events = kbd.Events()
		}
	}
	return s
}

// Poll returns the next pending event without blocking. Release events and
// unmapped keys are swallowed.
func (s *Source) Poll() (Event, bool) {
	if s.events == nil {
		return Event{}, false
	}
	for {
		select {
		case ke := <-s.events:
			if !ke.Press {
				continue
			}
			ev, ok := translate(ke)
			if !ok {
				continue
			}
			return ev, true
		default:
			return Event{}, false
		}
	}
}

func translate(ke hal.KeyEvent) (Event, bool) {
	switch ke.Code {
	case hal.KeyUp:
		return Event{Kind: KindUp}, true
	case hal.KeyDown:
		return Event{Kind: KindDown}, true
	case hal.KeyLeft:
		return Event{Kind: KindLeft}, true
	case hal.KeyRight:
		return Event{Kind: KindRight}, true
	case hal.KeyEnter:
		return Event{Kind: KindSelect}, true
	case hal.KeyEscape:
		return Event{Kind: KindBack}, true
	case hal.KeyBackspace:
		return Event{Kind: KindDelete}, true
	case hal.KeyDelete:
		return Event{Kind: KindClear}, true
	}
	switch r := ke.Rune; {
	case r >= '0' && r <= '9':
		return Event{Kind: KindDigit, Digit: uint8(r - '0')}, true
	case r == '.':
		return Event{Kind: KindDecimal}, true
	case r == '+':
		return Event{Kind: KindPlus}, true
	case r == '-':
		return Event{Kind: KindMinus}, true
	case r == '*':
		return Event{Kind: KindMul}, true
	case r == '/':
		return Event{Kind: KindDiv}, true
	case r == '(':
		return Event{Kind: KindLeftParen}, true
	case r == ')':
		return Event{Kind: KindRightParen}, true
	case r == '=':
		return Event{Kind: KindEvaluate}, true
	case r == 'c' || r == 'C':
		return Event{Kind: KindClear}, true
	}
	return Event{}, false
}
