package solver

import (
	"context"
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/aquaa/alphamath/internal/explain"
	"github.com/aquaa/alphamath/internal/expr"
)

// Trig evaluates a trigonometric expression and recognises exact values.
type Trig struct {
	tol    float64
	maxDen int64
}

// NewTrig returns a trig evaluator using opts.TrigTolerance to match exact
// values.
func NewTrig(opts Options) *Trig {
	return &Trig{tol: opts.TrigTolerance, maxDen: opts.MaxPiDenominator}
}

func (*Trig) Name() string    { return "trig" }
func (*Trig) Title() string   { return "Trigonometric expression" }
func (*Trig) Usage() string   { return "expression, e.g. sin(pi/6) + cos(π/3)" }
func (*Trig) Example() string { return "sin(4pi) + cos(pi/3)" }

var inverseFuncs = []string{"asin", "acos", "atan", "acsc", "asec", "acot"}

// Solve evaluates the expression, or the example when input is empty.
func (s *Trig) Solve(ctx context.Context, input string) *explain.Explanation {
	input = strings.TrimSpace(input)
	if input == "" {
		input = s.Example()
	}
	e := explain.New(s.Name(), input)
	if cancelled(ctx, e) {
		return e
	}
	e.Add("evaluating", "", input)

	n, err := expr.Parse(input)
	if err != nil {
		return e.Fail(explain.Inputf("Invalid mathematical expression"))
	}
	v, err := expr.Eval(n, nil)
	switch {
	case errors.Is(err, expr.ErrDivisionByZero):
		return e.Add("undefined", "")
	case err != nil, math.IsInf(v, 0), math.IsNaN(v):
		return e.Fail(explain.Inputf("Invalid mathematical expression"))
	}

	raw := strconv.FormatFloat(v, 'g', -1, 64)
	if expr.UsesFunc(n, inverseFuncs...) {
		return e.Add("result", s.piFraction(v), raw)
	}
	return e.Add("result", s.exactValue(v), raw)
}

func (*Trig) Templates() explain.Templates {
	return trigTemplates
}

var trigTemplates = explain.Templates{
	"evaluating": explain.Text("\n📐 Evaluating: {0}"),
	"undefined":  explain.Text("Result: undefined (division by zero)"),
	"result":     explain.Text("Result: {r}"),
}

type knownValue struct {
	value float64
	label string
}

// Multiples of π recognised exactly, as fractions of π.
var knownPiMultiples = []knownValue{
	{1.0 / 6, "π/6"}, {1.0 / 4, "π/4"}, {1.0 / 3, "π/3"}, {1.0 / 2, "π/2"},
	{2.0 / 3, "2π/3"}, {3.0 / 4, "3π/4"}, {5.0 / 6, "5π/6"}, {1, "π"},
	{7.0 / 6, "7π/6"}, {5.0 / 4, "5π/4"}, {4.0 / 3, "4π/3"}, {3.0 / 2, "3π/2"},
	{5.0 / 3, "5π/3"}, {7.0 / 4, "7π/4"}, {11.0 / 6, "11π/6"}, {2, "2π"},
}

// piFraction renders an angle as a multiple of π.
func (s *Trig) piFraction(x float64) string {
	if x == 0 {
		return "0"
	}
	coeff := x / math.Pi
	sign := ""
	if coeff < 0 {
		sign = "-"
	}
	abs := math.Abs(coeff)
	for _, k := range knownPiMultiples {
		if math.Abs(abs-k.value) < s.tol {
			return sign + k.label
		}
	}

	r := limitDenominator(new(big.Rat).SetFloat64(coeff), s.maxDen)
	num := new(big.Int).Abs(r.Num())
	if num.Sign() == 0 {
		return "0"
	}
	if r.IsInt() {
		return sign + num.String() + "π"
	}
	return sign + num.String() + "π/" + r.Denom().String()
}

// Values recognised exactly, in match order.
var knownValues = []knownValue{
	{math.Sqrt(3) / 2, "√3/2"}, {math.Sqrt(2) / 2, "√2/2"}, {1 / math.Sqrt(3), "√3/3"},
	{0.5, "1/2"}, {-math.Sqrt(3) / 2, "-√3/2"}, {-0.5, "-1/2"},
	{1, "1"}, {-1, "-1"},
}

// Square roots recognised exactly; negatives match with a leading "-".
var knownRoots = []knownValue{
	{math.Sqrt(3), "√3"}, {math.Sqrt(2), "√2"}, {math.Sqrt(5), "√5"},
	{math.Sqrt(6), "√6"}, {math.Sqrt(7), "√7"},
	{1 / math.Sqrt(2), "1/√2"}, {1 / math.Sqrt(3), "1/√3"},
}

// exactValue renders x as a known exact value or with 6 decimals.
func (s *Trig) exactValue(x float64) string {
	if math.Abs(x) < s.tol {
		return "0"
	}
	for _, k := range knownValues {
		if math.Abs(x-k.value) < s.tol {
			return k.label
		}
	}
	for _, k := range knownRoots {
		if math.Abs(x-k.value) < s.tol {
			return k.label
		}
		if math.Abs(x+k.value) < s.tol {
			return "-" + k.label
		}
	}
	return strconv.FormatFloat(x, 'f', 6, 64)
}

// limitDenominator returns the closest fraction to r whose denominator is
// at most maxDen, found from the continued fraction expansion of r.
func limitDenominator(r *big.Rat, maxDen int64) *big.Rat {
	limit := big.NewInt(maxDen)
	if r.Denom().Cmp(limit) <= 0 {
		return new(big.Rat).Set(r)
	}

	p0, q0, p1, q1 := big.NewInt(0), big.NewInt(1), big.NewInt(1), big.NewInt(0)
	n, d := new(big.Int).Set(r.Num()), new(big.Int).Set(r.Denom())
	for {
		a := new(big.Int).Div(n, d)
		q2 := new(big.Int).Add(q0, new(big.Int).Mul(a, q1))
		if q2.Cmp(limit) > 0 {
			break
		}
		p0, q0, p1, q1 = p1, q1, new(big.Int).Add(p0, new(big.Int).Mul(a, p1)), q2
		n, d = d, new(big.Int).Sub(n, new(big.Int).Mul(a, d))
	}

	k := new(big.Int).Div(new(big.Int).Sub(limit, q0), q1)
	bound1 := new(big.Rat).SetFrac(
		new(big.Int).Add(p0, new(big.Int).Mul(k, p1)),
		new(big.Int).Add(q0, new(big.Int).Mul(k, q1)),
	)
	bound2 := new(big.Rat).SetFrac(p1, q1)

	d1 := new(big.Rat).Abs(new(big.Rat).Sub(bound1, r))
	d2 := new(big.Rat).Abs(new(big.Rat).Sub(bound2, r))
	if d2.Cmp(d1) <= 0 {
		return bound2
	}
	return bound1
}
