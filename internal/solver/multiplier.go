package solver

import (
	"context"
	"strings"

	"github.com/aquaa/alphamath/internal/explain"
	"github.com/aquaa/alphamath/internal/numtheory"
)

// Multiplier finds the smallest c with d | n·c.
type Multiplier struct{}

// NewMultiplier returns the smallest-multiplier solver.
func NewMultiplier() *Multiplier { return &Multiplier{} }

func (*Multiplier) Name() string    { return "multiplier" }
func (*Multiplier) Title() string   { return "Smallest multiplier" }
func (*Multiplier) Usage() string   { return "n d" }
func (*Multiplier) Example() string { return "12 18" }

func (m *Multiplier) Solve(ctx context.Context, input string) *explain.Explanation {
	e := explain.New(m.Name(), input)
	if cancelled(ctx, e) {
		return e
	}

	if strings.TrimSpace(input) == "" {
		return e.Fail(explain.Inputf("No input provided."))
	}
	if len(strings.Fields(input)) != 2 {
		return e.Fail(explain.Inputf("Please provide two numbers separated by space."))
	}
	nums, ok := parseInts(input)
	if !ok {
		return e.Fail(explain.Inputf("Invalid input. Please enter two integers separated by space."))
	}
	n, d := nums[0], nums[1]

	e.Add("problem", "", n.String(), d.String())
	res, err := numtheory.SmallestMultiplier(n, d)
	if err != nil {
		return e.Fail(explain.Inputf("Cannot divide by zero."))
	}

	if res.AlreadyDivisible {
		e.Add("already", "", n.String(), d.String())
		return e.Add("no-multiplier", res.Quotient.String(), n.String(), d.String())
	}

	e.Add("gcd", res.GCD.String(), n.String(), d.String())
	e.Add("multiplier", res.Multiplier.String(), n.String(), d.String())
	e.Add("product", res.Product.String(), n.String(), res.Multiplier.String())
	e.Add("quotient", res.Quotient.String(), res.Product.String(), d.String())
	return e
}

func (*Multiplier) Templates() explain.Templates {
	return multiplierTemplates
}

var multiplierTemplates = explain.Templates{
	"problem":       explain.Text("Finding smallest multiplier so that {0} × multiplier is divisible by {1}:"),
	"already":       explain.Text(explain.GlyphSuccess + " {0} is already divisible by {1}."),
	"no-multiplier": explain.Text("No multiplier needed. {0} / {1} = {r}"),
	"gcd":           explain.Text("GCD({0}, {1}) = {r}"),
	"multiplier":    explain.Text(explain.GlyphSuccess + " Multiply {0} by {r} to make it divisible by {1}"),
	"product":       explain.Text("{0} × {1} = {r}"),
	"quotient":      explain.Text("{0} / {1} = {r}"),
}
