package solver

import (
	"context"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/aquaa/alphamath/internal/algebra"
	"github.com/aquaa/alphamath/internal/explain"
	"github.com/aquaa/alphamath/internal/poly"
)

// Cubic finds the roots of a cubic polynomial: exact rational roots, an
// exact quadratic cofactor when one remains, numeric roots otherwise.
type Cubic struct {
	places int
	eps    float64
}

// NewCubic returns a cubic solver that prints approximations with
// opts.CubicPlaces decimals.
func NewCubic(opts Options) *Cubic { return &Cubic{places: opts.CubicPlaces, eps: opts.Epsilon} }

func (*Cubic) Name() string    { return "cubic" }
func (*Cubic) Title() string   { return "Cubic roots" }
func (*Cubic) Usage() string   { return "ax^3 + bx^2 + cx + d" }
func (*Cubic) Example() string { return "x^3 - 6x^2 + 11x - 6" }

// Solve finds rational roots exactly and solves what remains either by
// the quadratic formula or numerically.
func (s *Cubic) Solve(ctx context.Context, input string) *explain.Explanation {
	e := explain.New(s.Name(), input)
	if cancelled(ctx, e) {
		return e
	}
	if strings.TrimSpace(input) == "" {
		return e.Fail(explain.Inputf("No input provided. Enter a cubic polynomial like: %s", s.Example()))
	}

	p, err := algebra.ParseUnivariate(input)
	if err != nil {
		return e.Fail(explain.Inputf("Error parsing or solving the expression: %v", err))
	}
	if deg := p.Degree(); deg != 3 {
		return e.Fail(explain.Inputf("The equation is degree %d, not a cubic.", deg))
	}

	e.Add("parsed", p.Pretty())
	e.Add("roots", "")

	n := 0
	root := func(exact string, approx string) {
		n++
		e.Add("root", approx, strconv.Itoa(n), exact)
	}

	fac, err := poly.FactorContext(ctx, p)
	if err != nil {
		return e.Fail(err)
	}
	for _, rm := range fac.Roots {
		root(poly.FormatRat(rm.Root), formatDecimal(ratFloat(rm.Root), s.places))
	}

	switch rest := fac.Rest; rest.Degree() {
	case 2:
		q := solveQuadratic(rest.Coeff(2).Num(), rest.Coeff(1).Num(), rest.Coeff(0).Num())
		for i, r := range q.Roots {
			root(r, formatComplex(q.Values[i], s.places, s.eps))
		}
	case 3:
		for _, z := range cardano(rest) {
			n++
			e.Add("root-numeric", formatComplex(z, s.places, s.eps), strconv.Itoa(n))
		}
	}
	return e
}

func (*Cubic) Templates() explain.Templates {
	return cubicTemplates
}

var cubicTemplates = explain.Templates{
	"parsed":       explain.Text("📘 Parsed Expression: {r}"),
	"roots":        explain.Text("\n" + explain.GlyphSuccess + " Roots of the equation:"),
	"root":         explain.Text("Root {0}: {1} ≈ {r}"),
	"root-numeric": explain.Text("Root {0} ≈ {r}"),
}

// cardano returns the three complex roots of a cubic: real roots in
// ascending order, then a conjugate pair with the positive imaginary part
// first.
func cardano(p poly.Poly) []complex128 {
	lead := ratFloat(p.Coeff(3))
	a := ratFloat(p.Coeff(2)) / lead
	b := ratFloat(p.Coeff(1)) / lead
	c := ratFloat(p.Coeff(0)) / lead

	// x = t - a/3 gives t³ + pt + q = 0.
	shift := a / 3
	dp := b - a*a/3
	dq := 2*a*a*a/27 - a*b/3 + c
	disc := dq*dq/4 + dp*dp*dp/27

	if disc > 0 || dp == 0 {
		sq := math.Sqrt(math.Max(disc, 0))
		u := math.Cbrt(-dq/2 + sq)
		v := math.Cbrt(-dq/2 - sq)
		re := -(u+v)/2 - shift
		im := math.Sqrt(3) / 2 * math.Abs(u-v)
		return []complex128{
			complex(u+v-shift, 0),
			complex(re, im),
			complex(re, -im),
		}
	}

	r := math.Sqrt(-dp / 3)
	arg := (3 * dq) / (2 * dp) * math.Sqrt(-3/dp)
	phi := math.Acos(math.Max(-1, math.Min(1, arg)))
	roots := make([]float64, 3)
	for k := range roots {
		roots[k] = 2*r*math.Cos(phi/3-2*math.Pi*float64(k)/3) - shift
	}
	sort.Float64s(roots)
	return []complex128{complex(roots[0], 0), complex(roots[1], 0), complex(roots[2], 0)}
}

// ratFloat is a float64 view of r.
func ratFloat(r *big.Rat) float64 {
	f, _ := r.Float64()
	return f
}
