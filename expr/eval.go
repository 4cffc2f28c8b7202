package expr

import "fmt"

// Evaluate computes the value of a token stream with the usual precedence:
// '*' and '/' bind tighter than '+' and '-', same-precedence operators
// associate left, and parentheses group. An empty stream, a trailing
// operator, or an unbalanced parenthesis fails with ErrSyntax.
func Evaluate(tokens []Token) (float64, error) {
	p := parser{tokens: tokens}
	v, err := p.parseSum()
	if err != nil {
		return 0, err
	}
	if !p.done() {
		return 0, fmt.Errorf("%w: unexpected %s", ErrSyntax, p.peek())
	}
	return v, nil
}

// Eval tokenizes and evaluates text in one step.
func Eval(text string) (float64, error) {
	tokens, err := Tokenize(text)
	if err != nil {
		return 0, err
	}
	return Evaluate(tokens)
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) done() bool { return p.pos >= len(p.tokens) }

func (p *parser) peek() Token { return p.tokens[p.pos] }

func (p *parser) next() Token {
	t := p.tokens[p.pos]
	p.pos++
	return t
}

// acceptOp consumes the next token if it is an operator from set.
func (p *parser) acceptOp(set string) (byte, bool) {
	if p.done() || p.tokens[p.pos].Kind != TokenOperator {
		return 0, false
	}
	op := p.tokens[p.pos].Op
	for i := 0; i < len(set); i++ {
		if set[i] == op {
			p.pos++
			return op, true
		}
	}
	return 0, false
}

func (p *parser) parseSum() (float64, error) {
	left, err := p.parseProduct()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.acceptOp("+-")
		if !ok {
			return left, nil
		}
		right, err := p.parseProduct()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *parser) parseProduct() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.acceptOp("*/")
		if !ok {
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			left *= right
		} else {
			if right == 0 {
				return 0, ErrDivideByZero
			}
			left /= right
		}
	}
}

func (p *parser) parseUnary() (float64, error) {
	if op, ok := p.acceptOp("+-"); ok {
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if op == '-' {
			return -v, nil
		}
		return v, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (float64, error) {
	if p.done() {
		return 0, fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	}
	t := p.next()
	switch t.Kind {
	case TokenNumber:
		return t.Value, nil
	case TokenLeftParen:
		v, err := p.parseSum()
		if err != nil {
			return 0, err
		}
		if p.done() || p.peek().Kind != TokenRightParen {
			return 0, fmt.Errorf("%w: missing ')'", ErrSyntax)
		}
		p.next()
		return v, nil
	default:
		return 0, fmt.Errorf("%w: unexpected %s", ErrSyntax, t)
	}
}
