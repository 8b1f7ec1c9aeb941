package solver

import (
	"context"
	"strconv"
	"strings"

	"github.com/aquaa/alphamath/internal/algebra"
	"github.com/aquaa/alphamath/internal/explain"
)

// Quadratic solves a·x² + b·x + c = 0 in radical form.
type Quadratic struct {
	places int
}

// NewQuadratic returns a quadratic solver that rounds irrational roots to
// opts.QuadraticPlaces decimals.
func NewQuadratic(opts Options) *Quadratic { return &Quadratic{places: opts.QuadraticPlaces} }

func (*Quadratic) Name() string    { return "quadratic" }
func (*Quadratic) Title() string   { return "Quadratic equation" }
func (*Quadratic) Usage() string   { return "ax^2 + bx + c = 0" }
func (*Quadratic) Example() string { return "x^2 - 5x + 6 = 0" }

func (s *Quadratic) Solve(ctx context.Context, input string) *explain.Explanation {
	e := explain.New(s.Name(), input)
	if cancelled(ctx, e) {
		return e
	}
	if strings.TrimSpace(input) == "" {
		return e.Fail(explain.Inputf("No input provided. Format: %s", s.Usage()))
	}

	p, err := algebra.ParseUnivariate(input)
	if err != nil {
		return e.Fail(explain.Inputf("Invalid input. Could not parse the equation: %v", err))
	}
	switch deg := p.Degree(); {
	case deg < 2:
		return e.Fail(explain.Inputf("Not a quadratic equation. Coefficient 'a' must not be zero."))
	case deg > 2:
		return e.Fail(explain.Inputf("Not a quadratic equation: the equation is degree %d.", deg))
	}

	ip, _ := p.ClearDenominators()
	a, b, c := ip.Coeff(2).Num(), ip.Coeff(1).Num(), ip.Coeff(0).Num()
	v := p.Var

	e.Add("given", "", a.String(), b.String(), c.String(), v)
	e.Add("formula", "", v)

	q := solveQuadratic(a, b, c)
	e.Add("discriminant", q.D.String(), b.String(), a.String(), c.String())

	switch {
	case q.D.Sign() < 0:
		e.Add("sqrt-d-complex", q.SqrtD(), q.D.String())
		e.Add("roots-complex", "")
	case q.D.Sign() == 0:
		e.Add("sqrt-d", "0", q.D.String())
		e.Add("double-root", "")
	case q.Perfect():
		e.Add("sqrt-d", q.SqrtD(), q.D.String())
		e.Add("roots", "")
	default:
		e.Add("sqrt-d-simplified", q.SqrtD(), q.D.String())
		e.Add("roots", "")
	}
	for _, r := range q.Roots {
		e.Add("root", r, v)
	}

	if q.D.Sign() > 0 {
		e.Add("approx-header", "", strconv.Itoa(s.places))
		for _, z := range q.Values {
			e.Add("approx", formatDecimal(real(z), s.places), v)
		}
	}
	return e
}

func (*Quadratic) Templates() explain.Templates {
	return quadraticTemplates
}

var quadraticTemplates = explain.Templates{
	"given":             explain.Text("\nGiven quadratic equation: {0}{3}² + ({1}){3} + ({2}) = 0"),
	"formula":           explain.Text("\nUsing Sridharacharya's formula:\n{0} = (-b ± √(b² - 4ac)) / 2a"),
	"discriminant":      explain.Text("\nStep 1: Discriminant D = ({0})² - 4×({1})×({2}) = {r}"),
	"sqrt-d":            explain.Text("Step 2: √D = √{0} = {r}"),
	"sqrt-d-simplified": explain.Text("Step 2: √D = √{0} = {r} (simplified)"),
	"sqrt-d-complex":    explain.Text("Step 2: √D = √({0}) = {r} (simplified)"),
	"roots":             explain.Text("\nRoots in simplified radical form:"),
	"roots-complex":     explain.Text("\nRoots in simplified radical form (complex):"),
	"double-root":       explain.Text("\nOnly one root:"),
	"root":              explain.Text("{0} = {r}"),
	"approx-header":     explain.Text("\nApproximate decimal values (rounded to {0} decimal places):"),
	"approx":            explain.Text("{0} ≈ {r}"),
}
