// Package expr converts calculator input text into a numeric result.
//
// Tokenize and Evaluate are pure: no state is shared between calls, and the
// same input always yields the same result or error.
package expr

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrLex reports an unrecognized character or malformed numeric literal.
	ErrLex = errors.New("lex error")
	// ErrSyntax reports unbalanced parentheses, a missing operand, or an
	// empty expression.
	ErrSyntax = errors.New("syntax error")
	// ErrDivideByZero reports a division whose right operand is exactly zero.
	ErrDivideByZero = errors.New("divide by zero")
)

type TokenKind uint8

const (
	TokenNumber TokenKind = iota
	TokenOperator
	TokenLeftParen
	TokenRightParen
)

// Token is one lexed element of an expression. Value is set for TokenNumber;
// Op holds one of '+', '-', '*', '/' for TokenOperator.
type Token struct {
	Kind  TokenKind
	Value float64
	Op    byte
}

func (t Token) String() string {
	switch t.Kind {
	case TokenNumber:
		return strconv.FormatFloat(t.Value, 'g', -1, 64)
	case TokenOperator:
		return string(t.Op)
	case TokenLeftParen:
		return "("
	case TokenRightParen:
		return ")"
	default:
		return "?"
	}
}

// Tokenize scans text left to right into tokens. Whitespace is skipped; any
// other unrecognized byte fails with ErrLex, as does a numeric literal with
// more than one decimal point.
func Tokenize(text string) ([]Token, error) {
	var out []Token
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '+' || c == '-' || c == '*' || c == '/':
			out = append(out, Token{Kind: TokenOperator, Op: c})
			i++
		case c == '(':
			out = append(out, Token{Kind: TokenLeftParen})
			i++
		case c == ')':
			out = append(out, Token{Kind: TokenRightParen})
			i++
		case c == '.' || isDigit(c):
			j, err := scanNumber(text, i)
			if err != nil {
				return nil, err
			}
			v, perr := strconv.ParseFloat(text[i:j], 64)
			if perr != nil {
				return nil, fmt.Errorf("%w: bad number %q", ErrLex, text[i:j])
			}
			out = append(out, Token{Kind: TokenNumber, Value: v})
			i = j
		default:
			return nil, fmt.Errorf("%w: unexpected character %q", ErrLex, rune(c))
		}
	}
	return out, nil
}

// scanNumber consumes the maximal run of digits and decimal points starting
// at i and validates it holds at most one point.
func scanNumber(s string, i int) (int, error) {
	j := i
	dots := 0
	for j < len(s) && (isDigit(s[j]) || s[j] == '.') {
		if s[j] == '.' {
			dots++
		}
		j++
	}
	if dots > 1 {
		return 0, fmt.Errorf("%w: malformed number %q", ErrLex, s[i:j])
	}
	return j, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
