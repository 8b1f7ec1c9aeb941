package solver

import (
	"context"
	"math/big"
	"strings"

	"github.com/aquaa/alphamath/internal/explain"
)

// Solver turns one line of problem text into an explanation.
//
// Solve never panics on bad input and never returns a nil explanation;
// input problems are recorded with Explanation.Fail.
type Solver interface {
	// Name is the registry key, for example "congruence".
	Name() string

	// Title is the human label shown in menus.
	Title() string

	// Usage describes the accepted input.
	Usage() string

	// Example is a valid sample input.
	Example() string

	Solve(ctx context.Context, input string) *explain.Explanation

	// Templates renders the steps recorded by Solve.
	Templates() explain.Templates
}

// Render solves input with s and renders the result.
func Render(ctx context.Context, s Solver, input string) string {
	return explain.Render(s.Solve(ctx, input), s.Templates())
}

// Options tunes the numeric behaviour of the solvers.
type Options struct {
	// SturmPoints are the evaluation points used when the input gives none.
	SturmPoints []float64

	// Epsilon is the magnitude below which a Sturm evaluation counts as 0.
	Epsilon float64

	// TrigTolerance is the match tolerance for known exact values.
	TrigTolerance float64

	// MaxPiDenominator bounds the denominator of π-fractions.
	MaxPiDenominator int64

	// QuadraticPlaces is the number of decimals in quadratic approximations.
	QuadraticPlaces int

	// CubicPlaces is the number of decimals in cubic approximations.
	CubicPlaces int
}

// DefaultOptions returns the built-in defaults.
func DefaultOptions() Options {
	return Options{
		SturmPoints:      []float64{-4, -3, -2, -1, 0, 1, 2, 3, 4},
		Epsilon:          1e-9,
		TrigTolerance:    1e-6,
		MaxPiDenominator: 12,
		QuadraticPlaces:  4,
		CubicPlaces:      6,
	}
}

// All returns every solver in menu order.
func All(opts Options) []Solver {
	return []Solver{
		NewCongruence(),
		NewCRT(),
		NewCubic(opts),
		NewMultiplier(),
		NewSturm(opts),
		NewTrig(opts),
		NewAlgebra(),
		NewDivision(),
		NewQuadratic(opts),
	}
}

// parseInts splits input on whitespace into exactly-parsed integers.
func parseInts(input string) ([]*big.Int, bool) {
	fields := strings.Fields(input)
	out := make([]*big.Int, len(fields))
	for i, f := range fields {
		v, ok := new(big.Int).SetString(f, 10)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// cancelled records ctx's error, if any, as the explanation's failure.
func cancelled(ctx context.Context, e *explain.Explanation) bool {
	if err := ctx.Err(); err != nil {
		e.Fail(err)
		return true
	}
	return false
}
