package explain

import (
	"errors"
	"fmt"
)

// Glyphs used by rendered explanations.
const (
	GlyphFailure = "❌"
	GlyphWarning = "⚠️"
	GlyphSuccess = "✅"
)

// Step is one recorded operation of a solver.
type Step struct {
	Op       string   `json:"op"`
	Operands []string `json:"operands,omitempty"`
	Result   string   `json:"result,omitempty"`
}

// FailureKind distinguishes input errors from recovered internal errors.
type FailureKind string

const (
	FailInput    FailureKind = "input"
	FailInternal FailureKind = "internal"
)

// Failure is the terminal error of an explanation.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

// Explanation is the ordered record of how a solver reached its answer.
type Explanation struct {
	Solver  string   `json:"solver"`
	Input   string   `json:"input"`
	Steps   []Step   `json:"steps"`
	Failure *Failure `json:"failure,omitempty"`
}

// New starts an empty explanation for the named solver.
func New(solver, input string) *Explanation {
	return &Explanation{Solver: solver, Input: input, Steps: []Step{}}
}

// Add appends a step and returns the explanation for chaining.
func (e *Explanation) Add(op, result string, operands ...string) *Explanation {
	e.Steps = append(e.Steps, Step{Op: op, Operands: operands, Result: result})
	return e
}

// Fail records err as the explanation's failure. *InputError values become
// FailInput; anything else is FailInternal.
func (e *Explanation) Fail(err error) *Explanation {
	var inErr *InputError
	if errors.As(err, &inErr) {
		e.Failure = &Failure{Kind: FailInput, Message: inErr.Message}
		return e
	}
	e.Failure = &Failure{Kind: FailInternal, Message: err.Error()}
	return e
}

// OK reports whether the explanation finished without a failure.
func (e *Explanation) OK() bool {
	return e.Failure == nil
}

// Find returns the first step with the given op.
func (e *Explanation) Find(op string) (Step, bool) {
	for _, s := range e.Steps {
		if s.Op == op {
			return s, true
		}
	}
	return Step{}, false
}

// All returns every step with the given op, in order.
func (e *Explanation) All(op string) []Step {
	var out []Step
	for _, s := range e.Steps {
		if s.Op == op {
			out = append(out, s)
		}
	}
	return out
}

// InputError is a user-facing problem with the solver input.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// Inputf builds an *InputError from a format string.
func Inputf(format string, args ...any) error {
	return &InputError{Message: fmt.Sprintf(format, args...)}
}

// IsInputError reports whether err wraps an *InputError.
func IsInputError(err error) bool {
	var inErr *InputError
	return errors.As(err, &inErr)
}
