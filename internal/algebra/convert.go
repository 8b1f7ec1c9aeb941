package algebra

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/aquaa/alphamath/internal/expr"
)

// MaxExponent bounds integer powers during conversion.
const MaxExponent = 64

// MaxDegree bounds the total degree of any intermediate polynomial.
const MaxDegree = 256

// ErrNotPolynomial is returned for expressions outside polynomial
// arithmetic: function calls, symbolic or fractional exponents, and
// division by a non-constant.
var ErrNotPolynomial = errors.New("not a polynomial expression")

// ErrDivisionByZero is returned for a literal division by zero.
var ErrDivisionByZero = errors.New("division by zero")

// FromNode converts n to a polynomial over vars. Names outside vars are
// rejected.
func FromNode(n expr.Node, vars []string) (MPoly, error) {
	switch t := n.(type) {
	case *expr.Num:
		return ConstMPoly(vars, t.Value), nil

	case *expr.Var:
		p, ok := VarMPoly(vars, t.Name)
		if !ok {
			return MPoly{}, fmt.Errorf("%w: %s is not a rational coefficient", ErrNotPolynomial, t.Name)
		}
		return p, nil

	case *expr.Neg:
		x, err := FromNode(t.X, vars)
		if err != nil {
			return MPoly{}, err
		}
		return x.Neg(), nil

	case *expr.Binary:
		l, err := FromNode(t.L, vars)
		if err != nil {
			return MPoly{}, err
		}
		if t.Op == '^' {
			e, err := exponent(t.R, vars)
			if err != nil {
				return MPoly{}, err
			}
			if e < 0 {
				return MPoly{}, fmt.Errorf("%w: negative exponent", ErrNotPolynomial)
			}
			if err := checkDegree(l.TotalDegree() * e); err != nil {
				return MPoly{}, err
			}
			return l.Pow(e), nil
		}
		r, err := FromNode(t.R, vars)
		if err != nil {
			return MPoly{}, err
		}
		switch t.Op {
		case '+':
			return l.Add(r), nil
		case '-':
			return l.Sub(r), nil
		case '*':
			if err := checkDegree(l.TotalDegree() + r.TotalDegree()); err != nil {
				return MPoly{}, err
			}
			return l.Mul(r), nil
		case '/':
			c, ok := r.Constant()
			if !ok {
				return MPoly{}, fmt.Errorf("%w: division by %s", ErrNotPolynomial, r)
			}
			if c.Sign() == 0 {
				return MPoly{}, ErrDivisionByZero
			}
			return l.Scale(new(big.Rat).Inv(c)), nil
		}
		return MPoly{}, fmt.Errorf("unknown operator %q", t.Op)

	case *expr.Call:
		return MPoly{}, fmt.Errorf("%w: %s()", ErrNotPolynomial, t.Fn)
	}
	return MPoly{}, fmt.Errorf("unknown node %T", n)
}

// exponent evaluates an exponent that must be an integer constant.
func exponent(n expr.Node, vars []string) (int, error) {
	p, err := FromNode(n, vars)
	if err != nil {
		return 0, err
	}
	c, ok := p.Constant()
	if !ok || !c.IsInt() {
		return 0, fmt.Errorf("%w: exponent %s is not an integer", ErrNotPolynomial, n)
	}
	if !c.Num().IsInt64() || c.Num().Int64() > MaxExponent || c.Num().Int64() < -MaxExponent {
		return 0, fmt.Errorf("%w: exponent %s exceeds %d", ErrNotPolynomial, n, MaxExponent)
	}
	return int(c.Num().Int64()), nil
}

func checkDegree(d int) error {
	if d > MaxDegree {
		return fmt.Errorf("%w: degree %d exceeds %d", ErrNotPolynomial, d, MaxDegree)
	}
	return nil
}

// Fraction is a quotient of two polynomials over the same variables.
type Fraction struct {
	Num, Den MPoly
}

// degree is the larger total degree of the numerator and denominator.
func (f Fraction) degree() int {
	return max(f.Num.TotalDegree(), f.Den.TotalDegree())
}

// FractionFromNode converts n to N/D, allowing division by polynomials and
// negative integer exponents.
func FractionFromNode(n expr.Node, vars []string) (Fraction, error) {
	one := ConstMPoly(vars, big.NewRat(1, 1))
	switch t := n.(type) {
	case *expr.Num, *expr.Var:
		p, err := FromNode(n, vars)
		if err != nil {
			return Fraction{}, err
		}
		return Fraction{Num: p, Den: one}, nil

	case *expr.Neg:
		x, err := FractionFromNode(t.X, vars)
		if err != nil {
			return Fraction{}, err
		}
		return Fraction{Num: x.Num.Neg(), Den: x.Den}, nil

	case *expr.Binary:
		l, err := FractionFromNode(t.L, vars)
		if err != nil {
			return Fraction{}, err
		}
		if t.Op == '^' {
			e, err := exponent(t.R, vars)
			if err != nil {
				return Fraction{}, err
			}
			if err := checkDegree(l.degree() * max(e, -e)); err != nil {
				return Fraction{}, err
			}
			if e < 0 {
				if l.Num.IsZero() {
					return Fraction{}, ErrDivisionByZero
				}
				return Fraction{Num: l.Den.Pow(-e), Den: l.Num.Pow(-e)}, nil
			}
			return Fraction{Num: l.Num.Pow(e), Den: l.Den.Pow(e)}, nil
		}
		r, err := FractionFromNode(t.R, vars)
		if err != nil {
			return Fraction{}, err
		}
		if err := checkDegree(l.degree() + r.degree()); err != nil {
			return Fraction{}, err
		}
		switch t.Op {
		case '+':
			return Fraction{Num: l.Num.Mul(r.Den).Add(r.Num.Mul(l.Den)), Den: l.Den.Mul(r.Den)}, nil
		case '-':
			return Fraction{Num: l.Num.Mul(r.Den).Sub(r.Num.Mul(l.Den)), Den: l.Den.Mul(r.Den)}, nil
		case '*':
			return Fraction{Num: l.Num.Mul(r.Num), Den: l.Den.Mul(r.Den)}, nil
		case '/':
			if r.Num.IsZero() {
				return Fraction{}, ErrDivisionByZero
			}
			return Fraction{Num: l.Num.Mul(r.Den), Den: l.Den.Mul(r.Num)}, nil
		}
		return Fraction{}, fmt.Errorf("unknown operator %q", t.Op)

	case *expr.Call:
		return Fraction{}, fmt.Errorf("%w: %s()", ErrNotPolynomial, t.Fn)
	}
	return Fraction{}, fmt.Errorf("unknown node %T", n)
}
