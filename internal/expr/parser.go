package expr

import (
	"fmt"
	"math/big"
	"strings"
)

// SyntaxError reports malformed input. Pos counts runes into the
// normalised input.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Pos, e.Msg)
}

type parser struct {
	toks []token
	i    int
}

// Parse parses a single expression. An "=" is a syntax error.
func Parse(s string) (Node, error) {
	if strings.TrimSpace(s) == "" {
		return nil, &SyntaxError{Msg: "empty expression"}
	}
	toks, err := lex(s)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.sum()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %s", t)}
	}
	return n, nil
}

// ParseEquation parses "lhs = rhs" or a bare expression. When there is no
// "=", rhs is nil and hasEq is false.
func ParseEquation(s string) (lhs, rhs Node, hasEq bool, err error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil, false, &SyntaxError{Msg: "empty expression"}
	}
	toks, err := lex(s)
	if err != nil {
		return nil, nil, false, err
	}
	p := &parser{toks: toks}
	lhs, err = p.sum()
	if err != nil {
		return nil, nil, false, err
	}
	if p.peek().kind == tokEquals {
		p.next()
		hasEq = true
		rhs, err = p.sum()
		if err != nil {
			return nil, nil, false, err
		}
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, nil, false, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %s", t)}
	}
	return lhs, rhs, hasEq, nil
}

// MustParse is Parse for literals in tests and tables.
func MustParse(s string) Node {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) isOp(ops string) (byte, bool) {
	t := p.peek()
	if t.kind == tokOp && strings.IndexByte(ops, t.op) >= 0 {
		return t.op, true
	}
	return 0, false
}

// sum := product (("+" | "-") product)*
func (p *parser) sum() (Node, error) {
	left, err := p.product()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.isOp("+-")
		if !ok {
			return left, nil
		}
		p.next()
		right, err := p.product()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, L: left, R: right}
	}
}

// product := unary (("*" | "/") unary | implicit unary)*
func (p *parser) product() (Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		if op, ok := p.isOp("*/"); ok {
			p.next()
			right, err := p.unary()
			if err != nil {
				return nil, err
			}
			left = &Binary{Op: op, L: left, R: right}
			continue
		}
		switch p.peek().kind {
		case tokNumber, tokName, tokLParen, tokSqrt:
			right, err := p.power()
			if err != nil {
				return nil, err
			}
			left = &Binary{Op: '*', L: left, R: right}
		default:
			return left, nil
		}
	}
}

// unary := ("-" | "+") unary | power
func (p *parser) unary() (Node, error) {
	if op, ok := p.isOp("+-"); ok {
		p.next()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		if op == '-' {
			return &Neg{X: x}, nil
		}
		return x, nil
	}
	return p.power()
}

// power := primary ("^" unary | superscript)?
// Exponentiation is right-associative: 2^3^2 is 2^(3^2).
func (p *parser) power() (Node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if _, ok := p.isOp("^"); ok {
		p.next()
		exp, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Binary{Op: '^', L: base, R: exp}, nil
	}
	if t := p.peek(); t.kind == tokSuper {
		p.next()
		return &Binary{Op: '^', L: base, R: intNum(t.power)}, nil
	}
	return base, nil
}

func (p *parser) primary() (Node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return &Num{Value: t.num}, nil

	case tokName:
		if _, ok := Functions[t.text]; ok {
			return p.call(t)
		}
		return &Var{Name: t.text}, nil

	case tokSqrt:
		arg, err := p.primary()
		if err != nil {
			return nil, err
		}
		return &Call{Fn: "sqrt", Arg: arg}, nil

	case tokLParen:
		inner, err := p.sum()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokRParen {
			return nil, &SyntaxError{Pos: c.pos, Msg: fmt.Sprintf("expected ')' but found %s", c)}
		}
		return inner, nil

	case tokEOF:
		return nil, &SyntaxError{Pos: t.pos, Msg: "unexpected end of input"}

	default:
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %s", t)}
	}
}

// call parses a function application. "sin^2(x)" and "sin²(x)" raise
// the result, not the argument.
func (p *parser) call(name token) (Node, error) {
	var exp Node
	if _, ok := p.isOp("^"); ok {
		p.next()
		e, err := p.primary()
		if err != nil {
			return nil, err
		}
		exp = e
	} else if t := p.peek(); t.kind == tokSuper {
		p.next()
		exp = intNum(t.power)
	}

	if open := p.next(); open.kind != tokLParen {
		return nil, &SyntaxError{Pos: open.pos, Msg: fmt.Sprintf("expected '(' after %s", name.text)}
	}
	arg, err := p.sum()
	if err != nil {
		return nil, err
	}
	if c := p.next(); c.kind != tokRParen {
		return nil, &SyntaxError{Pos: c.pos, Msg: fmt.Sprintf("expected ')' but found %s", c)}
	}

	var n Node = &Call{Fn: name.text, Arg: arg}
	if exp != nil {
		n = &Binary{Op: '^', L: n, R: exp}
	}
	return n, nil
}

func intNum(n int) *Num {
	return &Num{Value: new(big.Rat).SetInt64(int64(n))}
}
