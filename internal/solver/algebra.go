package solver

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/aquaa/alphamath/internal/algebra"
	"github.com/aquaa/alphamath/internal/explain"
	"github.com/aquaa/alphamath/internal/expr"
)

// Algebra expands, simplifies, factors or substitutes into an expression.
// The input is "mode: expression"; without a mode prefix it expands.
type Algebra struct{}

// NewAlgebra returns the expand/simplify/factor/substitute solver.
func NewAlgebra() *Algebra { return &Algebra{} }

func (*Algebra) Name() string    { return "algebra" }
func (*Algebra) Title() string   { return "Expand / simplify / factor / substitute" }
func (*Algebra) Usage() string   { return "expand|simplify|factor|substitute: expression" }
func (*Algebra) Example() string { return "factor: x^3 - x" }

var modeNouns = map[algebra.Mode]string{
	algebra.ModeExpand:     "expansion",
	algebra.ModeSimplify:   "simplification",
	algebra.ModeFactor:     "factorization",
	algebra.ModeSubstitute: "substitution/evaluation",
}

// Solve applies the requested mode to the expression. Parse errors and
// non-polynomial input are input failures.
func (s *Algebra) Solve(ctx context.Context, input string) *explain.Explanation {
	e := explain.New(s.Name(), input)
	if cancelled(ctx, e) {
		return e
	}

	modeText, body := splitMode(input)
	mode := algebra.ModeExpand
	if modeText != "" {
		m, err := algebra.ParseMode(modeText)
		if err != nil {
			return e.Fail(explain.Inputf("Error: Unknown mode '%s'. Valid modes: expand, simplify, factor, substitute.", modeText))
		}
		mode = m
	}
	if strings.TrimSpace(body) == "" {
		return e.Fail(explain.Inputf("Error: Expression cannot be empty."))
	}

	e.Add("mode", "", string(mode))
	e.Add("expression", "", strings.TrimSpace(body))

	out, err := algebra.Apply(mode, body)
	if err != nil {
		var se *expr.SyntaxError
		if errors.As(err, &se) {
			return e.Fail(explain.Inputf("Error parsing expression: %v", err))
		}
		return e.Fail(explain.Inputf("Error during %s: %v", modeNouns[mode], err))
	}
	return e.Add("result", out)
}

// splitMode separates a leading "word:" from the expression.
func splitMode(input string) (mode, body string) {
	head, tail, ok := strings.Cut(input, ":")
	if !ok {
		return "", input
	}
	head = strings.TrimSpace(head)
	if head == "" {
		return "", input
	}
	for _, r := range head {
		if !unicode.IsLetter(r) {
			return "", input
		}
	}
	return head, tail
}

// Templates renders mode, expression and result steps.
func (*Algebra) Templates() explain.Templates {
	return algebraTemplates
}

var algebraTemplates = explain.Templates{
	"mode":       explain.Text("Mode: {0}"),
	"expression": explain.Text("Expression: {0}"),
	"result":     explain.Text("Result: {r}"),
}
