package solver

import (
	"context"
	"strconv"

	"github.com/aquaa/alphamath/internal/explain"
	"github.com/aquaa/alphamath/internal/numtheory"
)

// Congruence solves a·x ≡ b (mod m).
type Congruence struct{}

// NewCongruence returns the linear congruence solver.
func NewCongruence() *Congruence { return &Congruence{} }

func (*Congruence) Name() string    { return "congruence" }
func (*Congruence) Title() string   { return "Linear congruence" }
func (*Congruence) Usage() string   { return "a b m" }
func (*Congruence) Example() string { return "14 30 100" }

// Solve reads "a b m" and lists the solutions modulo m.
func (c *Congruence) Solve(ctx context.Context, input string) *explain.Explanation {
	e := explain.New(c.Name(), input)
	if cancelled(ctx, e) {
		return e
	}

	nums, ok := parseInts(input)
	switch {
	case len(nums) == 0 && ok:
		return e.Fail(explain.Inputf("No input provided. Format: a b m"))
	case !ok || len(nums) != 3:
		return e.Fail(explain.Inputf("Invalid input. Please enter: a b m"))
	}
	a, b, m := nums[0], nums[1], nums[2]

	sol, err := numtheory.SolveLinearCongruence(a, b, m)
	if err != nil {
		return e.Fail(explain.Inputf("Modulus 'm' cannot be zero."))
	}
	mod := sol.Modulus.String()

	e.Add("problem", "", a.String(), b.String(), mod)
	bz := sol.Bezout
	e.Add("gcd", bz.D.String(), a.String(), mod)
	e.Add("bezout", "", bz.P.String(), bz.Q.String())
	e.Add("verify", bz.Combination().String(), a.String(), bz.P.String(), mod, bz.Q.String())

	if !sol.Solvable {
		return e.Add("no-solution", "")
	}

	e.Add("x0", sol.X0.String())
	e.Add("solutions", sol.Count.String())
	for j, x := range sol.Solutions {
		e.Add("solution", x.String(), strconv.Itoa(j), mod)
	}
	if sol.Truncated() {
		e.Add("truncated", "", strconv.Itoa(len(sol.Solutions)), sol.Count.String())
	}
	return e
}

func (*Congruence) Templates() explain.Templates {
	return congruenceTemplates
}

var congruenceTemplates = explain.Templates{
	"problem":     explain.Text("Solving linear congruence: {0}x ≡ {1} (mod {2})"),
	"gcd":         explain.Text("GCD({0}, {1}) = {r}"),
	"bezout":      explain.Text("Coefficients: p = {0}, q = {1}"),
	"verify":      explain.Text("Verification: {0} * {1} + {2} * {3} = {r}"),
	"no-solution": explain.Text(explain.GlyphFailure + " No solution exists since b is not divisible by GCD(a, m)"),
	"x0":          explain.Text("x(0) = {r}"),
	"solutions":   explain.Text(explain.GlyphSuccess + " All solutions:"),
	"solution":    explain.Text("x({0}) = {r} (mod {1})"),
	"truncated":   explain.Text("... showing {0} of {1} solutions"),
}
