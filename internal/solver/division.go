package solver

import (
	"context"
	"strconv"
	"strings"

	"github.com/aquaa/alphamath/internal/algebra"
	"github.com/aquaa/alphamath/internal/explain"
	"github.com/aquaa/alphamath/internal/poly"
)

// Division performs fraction-free polynomial long division.
type Division struct{}

// NewDivision returns the fraction-free long division solver.
func NewDivision() *Division { return &Division{} }

func (*Division) Name() string    { return "division" }
func (*Division) Title() string   { return "Polynomial long division" }
func (*Division) Usage() string   { return "<numerator>, <denominator>" }
func (*Division) Example() string { return "x^3 - 6x^2 + 11x - 6, x - 1" }

// Solve divides "numerator, denominator" and records every scaling step.
func (s *Division) Solve(ctx context.Context, input string) *explain.Explanation {
	e := explain.New(s.Name(), input)
	e.Add("title", "")
	if cancelled(ctx, e) {
		return e
	}

	numText, denText, ok := strings.Cut(input, ",")
	if !ok || strings.TrimSpace(numText) == "" || strings.TrimSpace(denText) == "" {
		return e.Fail(explain.Inputf("Invalid input format. Use: %s", s.Usage()))
	}

	f1, err := algebra.ParseUnivariate(numText)
	if err != nil {
		return e.Fail(explain.Inputf("Error: numerator: %v", err))
	}
	f2, err := algebra.ParseUnivariate(denText)
	if err != nil {
		return e.Fail(explain.Inputf("Error: denominator: %v", err))
	}

	switch {
	case f1.Degree() < 1 && f2.Degree() < 1:
		return e.Fail(explain.Inputf("Error: No variables found in expressions."))
	case f1.Degree() < 1:
		f1 = f1.WithVar(f2.Var)
	case f2.Degree() < 1:
		f2 = f2.WithVar(f1.Var)
	case f1.Var != f2.Var:
		return e.Fail(explain.Inputf("Error: numerator and denominator use different variables (%s, %s).", f1.Var, f2.Var))
	}

	e.Add("header", "")
	e.Add("numerator", f1.Pretty())
	e.Add("denominator", f2.Pretty())

	chain := poly.FractionFreeChain(f1, f2)
	if len(chain.Steps) == 0 {
		return e.Add("no-steps", "")
	}

	e.Add("steps", "")
	for i, st := range chain.Steps {
		e.Add("step", "", strconv.Itoa(i+1), poly.FormatRat(st.Multiplier),
			st.Scaled.Pretty(), st.Quotient.Pretty(), st.Remainder.Pretty())
	}
	last := chain.Steps[len(chain.Steps)-1]
	return e.Add("final", "", last.Scaled.Pretty(), chain.Quotient.Pretty(), chain.Remainder.Pretty())
}

func (*Division) Templates() explain.Templates {
	return divisionTemplates
}

var divisionTemplates = explain.Templates{
	"title":       explain.Text("\n=== Polynomial Long Division ==="),
	"header":      explain.Text("\nPerforming polynomial long division:"),
	"numerator":   explain.Text("Numerator: {r}"),
	"denominator": explain.Text("Denominator: {r}"),
	"no-steps":    explain.Text("\n❗ No division steps to show (possibly due to zero divisor or invalid degrees)."),
	"steps":       explain.Text("\n--- Division Steps ---"),
	"step": explain.Text("Step {0}:\n" +
		"  Multiplier used: {1}\n" +
		"  Scaled dividend: {2}\n" +
		"  Quotient at this step: {3}\n" +
		"  Remainder: {4}\n"),
	"final": explain.Text("--- Final Result ---\n" +
		"  Scaled dividend: {0}\n" +
		"  Quotient: {1}\n" +
		"  Remainder: {2}"),
}
