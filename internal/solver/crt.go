package solver

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aquaa/alphamath/internal/explain"
	"github.com/aquaa/alphamath/internal/numtheory"
)

// CRT solves a system x ≡ aᵢ (mod mᵢ) with the Chinese Remainder Theorem.
type CRT struct{}

// NewCRT returns the Chinese remainder theorem solver.
func NewCRT() *CRT { return &CRT{} }

func (*CRT) Name() string    { return "crt" }
func (*CRT) Title() string   { return "Chinese Remainder Theorem" }
func (*CRT) Usage() string   { return "a1 m1 a2 m2 ... an mn" }
func (*CRT) Example() string { return "2 3 3 5 2 7" }

// Solve reads residue/modulus pairs and combines them into one congruence.
func (c *CRT) Solve(ctx context.Context, input string) *explain.Explanation {
	e := explain.New(c.Name(), input)
	if cancelled(ctx, e) {
		return e
	}

	nums, ok := parseInts(input)
	switch {
	case len(nums) == 0 && ok:
		return e.Fail(explain.Inputf("No input provided. Format: a1 m1 a2 m2 ... an mn"))
	case !ok:
		return e.Fail(explain.Inputf("Invalid input. Expected integers: a1 m1 a2 m2 ... an mn"))
	case len(nums)%2 != 0:
		return e.Fail(explain.Inputf("Invalid input. Expected pairs of 'a m' values."))
	}

	system := make([]numtheory.Congruence, 0, len(nums)/2)
	for i := 0; i < len(nums); i += 2 {
		if nums[i+1].Sign() == 0 {
			return e.Fail(explain.Inputf("Modulus 'm' cannot be zero."))
		}
		system = append(system, numtheory.Congruence{A: nums[i], M: nums[i+1]})
	}

	e.Add("intro", "")
	for _, cg := range system {
		e.Add("system", "", cg.A.String(), cg.M.String())
	}

	sol, err := numtheory.SolveCRT(system)
	var nc *numtheory.NotCoprimeError
	switch {
	case errors.As(err, &nc):
		e.Add("not-coprime", nc.GCD.String(), strconv.Itoa(nc.I+1), strconv.Itoa(nc.J+1), nc.Mi.String(), nc.Mj.String())
		return e.Fail(explain.Inputf("Moduli are not pairwise co-prime. CRT may not be applicable"))
	case err != nil:
		return e.Fail(fmt.Errorf("solving system: %w", err))
	}

	e.Add("product", sol.Product.String())
	e.Add("inverses", "")
	for i, t := range sol.Terms {
		e.Add("inverse-problem", "", strconv.Itoa(i+1), t.Partial.String(), t.M.String())
	}
	for _, t := range sol.Terms {
		e.Add("inverse", t.Inverse.String(), t.M.String())
	}

	terms := make([]string, len(sol.Terms))
	for i := range sol.Terms {
		n := strconv.Itoa(i + 1)
		terms[i] = "a" + n + "*(M/m" + n + ")*b" + n
	}
	e.Add("sum-formula", strings.Join(terms, " + "))
	e.Add("sum", sol.Sum.String())
	e.Add("combined", "", sol.Sum.String(), sol.Product.String())
	e.Add("final", "", sol.X.String(), sol.Product.String())
	e.Add("smallest", sol.X.String())
	return e
}

func (*CRT) Templates() explain.Templates {
	return crtTemplates
}

var crtTemplates = explain.Templates{
	"intro": explain.Text("\nChinese Remainder Theorem Solver\n" +
		"for the system: x ≡ a1 (mod m1), x ≡ a2 (mod m2), ..., x ≡ an (mod mn),\n"),
	"system":          explain.Text("x ≡ {0} (mod {1})"),
	"not-coprime":     explain.Text("GCD(m{0}, m{1}) = GCD({2}, {3}) = {r}"),
	"product":         explain.Text("\nM = m1 * m2 * ... * mn = {r}"),
	"inverses":        explain.Text("\nSolving the required congruences:"),
	"inverse-problem": explain.Text("(M/m{0})*x ≡ 1 mod m{0}: {1}*x ≡ 1 mod {2}"),
	"inverse":         explain.Text("Solution: x ≡ {r} mod {0}"),
	"sum-formula":     explain.Text("\nCalculating x0:\nx0 = {r}"),
	"sum":             explain.Text("x0 = {r}"),
	"combined":        explain.Text("\nx ≡ {0} mod {1}"),
	"final":           explain.Text("\nFinal solution: x ≡ {0} mod {1}"),
	"smallest":        explain.Text("\nThe smallest positive solution is: {r}"),
}
