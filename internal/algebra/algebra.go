package algebra

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/aquaa/alphamath/internal/expr"
	"github.com/aquaa/alphamath/internal/poly"
)

// Mode selects an algebra operation.
type Mode string

const (
	ModeExpand     Mode = "expand"
	ModeSimplify   Mode = "simplify"
	ModeFactor     Mode = "factor"
	ModeSubstitute Mode = "substitute"
)

// Modes lists every mode in menu order.
var Modes = []Mode{ModeExpand, ModeSimplify, ModeFactor, ModeSubstitute}

// UnknownModeError reports a mode outside Modes.
type UnknownModeError struct {
	Mode string
}

func (e *UnknownModeError) Error() string {
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}
	return fmt.Sprintf("unknown mode '%s', valid modes: %s", e.Mode, strings.Join(names, ", "))
}

// ParseMode resolves a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modes {
		if m == known {
			return m, nil
		}
	}
	return "", &UnknownModeError{Mode: s}
}

// Apply runs mode on input.
func Apply(mode Mode, input string) (string, error) {
	switch mode {
	case ModeExpand:
		return Expand(input)
	case ModeSimplify:
		return Simplify(input)
	case ModeFactor:
		return FactorString(input)
	case ModeSubstitute:
		return Substitute(input)
	}
	return "", &UnknownModeError{Mode: string(mode)}
}

func parse(input string) (expr.Node, []string, error) {
	n, err := expr.Parse(input)
	if err != nil {
		return nil, nil, err
	}
	return n, expr.Variables(n), nil
}

// Expand multiplies out every product and power.
func Expand(input string) (string, error) {
	n, vars, err := parse(input)
	if err != nil {
		return "", err
	}
	p, err := FromNode(n, vars)
	if err == nil {
		return p.String(), nil
	}
	if !errors.Is(err, ErrNotPolynomial) {
		return "", err
	}
	fr, ferr := FractionFromNode(n, vars)
	if ferr != nil {
		return "", err
	}
	num, den := fr.normalized()
	if c, ok := den.Constant(); ok {
		return num.Scale(new(big.Rat).Inv(c)).String(), nil
	}
	return wrapSum(num) + "/" + wrapSum(den), nil
}

func wrapSum(p MPoly) string {
	if p.termCount() > 1 {
		return "(" + p.String() + ")"
	}
	return p.String()
}

// normalized moves the content of the denominator into the numerator and
// cancels the common monomial.
func (fr Fraction) normalized() (num, den MPoly) {
	c := fr.Den.Content()
	if fr.Den.Leading().Sign() < 0 {
		c.Neg(c)
	}
	num = fr.Num.Scale(new(big.Rat).Inv(c))
	den = fr.Den.Scale(new(big.Rat).Inv(c))
	if num.IsZero() {
		return num, ConstMPoly(den.vars, big.NewRat(1, 1))
	}
	mn, md := num.MinDegrees(), den.MinDegrees()
	common := make([]int, len(mn))
	for i := range common {
		common[i] = min(mn[i], md[i])
	}
	return num.DivMonomial(common), den.DivMonomial(common)
}

// FactorString factors a polynomial expression.
func FactorString(input string) (string, error) {
	n, vars, err := parse(input)
	if err != nil {
		return "", err
	}
	p, err := FromNode(n, vars)
	if err != nil {
		return "", err
	}
	return FactorMPoly(p).String(), nil
}

// Simplify reduces a rational expression to lowest terms and factors the
// result. Common factors are cancelled exactly for expressions in one
// variable; with several variables only the content and common monomial
// are cancelled.
func Simplify(input string) (string, error) {
	n, vars, err := parse(input)
	if err != nil {
		return "", err
	}
	fr, err := FractionFromNode(n, vars)
	if err != nil {
		return "", err
	}
	num, den := fr.normalized()

	used := union(num.Used(), den.Used())
	if len(used) == 1 {
		v := used[0]
		nu, _ := num.Univariate(v)
		du, _ := den.Univariate(v)
		g := poly.GCD(nu, du)
		nu, _, _ = nu.DivMod(g)
		du, _, _ = du.DivMod(g)
		unit, prim := du.Primitive()
		nu = nu.Scale(new(big.Rat).Inv(unit))
		num, den = FromUnivariate(vars, nu), FromUnivariate(vars, prim)
	}

	if c, ok := den.Constant(); ok {
		return FactorMPoly(num.Scale(new(big.Rat).Inv(c))).String(), nil
	}
	// (1/2)(x + 1)/(x - 1) reads better as (x + 1)/(2(x - 1)).
	d := new(big.Rat).SetInt(num.Content().Denom())
	num, den = num.Scale(d), den.Scale(d)
	return FactorMPoly(num).numerator() + "/" + FactorMPoly(den).denominator(), nil
}

func union(a, b []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range append(append([]string(nil), a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// ErrMissingValues is returned when substitution has free variables but no
// assignments.
var ErrMissingValues = errors.New("expression has variables but no values provided for substitution (format: expr; var1=val1, var2=val2)")

// AssignmentError reports a malformed "var=value" assignment.
type AssignmentError struct {
	Assignment string
	Msg        string
}

func (e *AssignmentError) Error() string {
	return fmt.Sprintf("%s: '%s'", e.Msg, e.Assignment)
}

// Substitute evaluates "expr; x=1, y=2". When every variable is bound the
// result is a number, exact if the expression is polynomial. Otherwise the
// remaining polynomial is returned.
func Substitute(input string) (string, error) {
	exprPart, assignPart, _ := strings.Cut(input, ";")
	if strings.TrimSpace(exprPart) == "" {
		return "", &expr.SyntaxError{Msg: "expression part cannot be empty for substitution"}
	}
	n, vars, err := parse(exprPart)
	if err != nil {
		return "", err
	}

	exact := map[string]*big.Rat{}
	env := expr.Env{}
	for _, a := range strings.Split(assignPart, ",") {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		name, val, ok := strings.Cut(a, "=")
		name, val = strings.TrimSpace(name), strings.TrimSpace(val)
		switch {
		case !ok:
			return "", &AssignmentError{Assignment: a, Msg: "invalid variable assignment, expected 'var=value'"}
		case name == "":
			return "", &AssignmentError{Assignment: a, Msg: "variable name cannot be empty"}
		case val == "":
			return "", &AssignmentError{Assignment: a, Msg: "value cannot be empty"}
		}
		vn, err := expr.Parse(val)
		if err != nil {
			return "", &AssignmentError{Assignment: a, Msg: fmt.Sprintf("could not parse value: %v", err)}
		}
		f, err := expr.Eval(vn, nil)
		if err != nil {
			return "", &AssignmentError{Assignment: a, Msg: fmt.Sprintf("could not evaluate value: %v", err)}
		}
		env[name] = f
		if p, err := FromNode(vn, nil); err == nil {
			if c, ok := p.Constant(); ok {
				exact[name] = c
			}
		}
	}

	free := expr.FreeVariables(n)
	if len(env) == 0 && len(free) > 0 {
		return "", ErrMissingValues
	}

	allBound := true
	for _, v := range free {
		if _, ok := env[v]; !ok {
			allBound = false
		}
	}

	if p, err := FromNode(n, vars); err == nil && len(exact) == len(env) {
		q := p.Substitute(exact)
		if c, ok := q.Constant(); ok {
			return poly.FormatRat(c), nil
		}
		if !allBound || !hasConstants(q) {
			return q.String(), nil
		}
	}
	if !allBound {
		return "", fmt.Errorf("%w: cannot substitute partially into %s", ErrNotPolynomial, n)
	}
	v, err := expr.Eval(n, env)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(v, 'g', 15, 64), nil
}

// hasConstants reports whether q still mentions pi or e.
func hasConstants(q MPoly) bool {
	for _, v := range q.Used() {
		if _, ok := expr.Constants[v]; ok {
			return true
		}
	}
	return false
}

// ErrNotUnivariate is returned when a polynomial mentions several variables.
var ErrNotUnivariate = errors.New("expected a polynomial in one variable")

// ParseUnivariate parses "p" or "lhs = rhs" into a polynomial in its only
// variable, moving everything to the left-hand side. A constant input uses
// poly.DefaultVar.
func ParseUnivariate(input string) (poly.Poly, error) {
	lhs, rhs, hasEq, err := expr.ParseEquation(input)
	if err != nil {
		return poly.Poly{}, err
	}
	n := lhs
	if hasEq {
		n = &expr.Binary{Op: '-', L: lhs, R: rhs}
	}
	free := expr.FreeVariables(n)
	if len(free) > 1 {
		return poly.Poly{}, fmt.Errorf("%w, found %s", ErrNotUnivariate, strings.Join(free, ", "))
	}
	v := poly.DefaultVar
	if len(free) == 1 {
		v = free[0]
	}
	p, err := FromNode(n, free)
	if err != nil {
		return poly.Poly{}, err
	}
	u, _ := p.Univariate(v)
	return u, nil
}
