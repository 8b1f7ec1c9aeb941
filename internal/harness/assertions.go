package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aquaa/alphamath/internal/dispatch"
	"github.com/aquaa/alphamath/internal/explain"
)

// Assertion type names used in AssertionError.
const (
	AssertOK          = "ok"
	AssertFailure     = "failure"
	AssertContains    = "contains"
	AssertNotContains = "not_contains"
	AssertStep        = "step"
)

// AssertionError is returned when an expectation fails. It carries the
// rendered answer for context.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Output   string
}

func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	if e.Output != "" {
		fmt.Fprintf(&buf, "\nOutput:\n")
		for _, line := range strings.Split(strings.TrimRight(e.Output, "\n"), "\n") {
			fmt.Fprintf(&buf, "  | %s\n", line)
		}
	}
	return buf.String()
}

// EvaluateExpect checks res against e and returns one error per failed
// expectation.
func EvaluateExpect(res dispatch.Result, e Expect) []error {
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	add(assertOK(res, e))
	add(assertFailure(res, e))
	for _, s := range e.Contains {
		add(assertContains(res, s))
	}
	for _, s := range e.NotContains {
		add(assertNotContains(res, s))
	}
	for _, s := range e.Steps {
		add(assertStep(res, s))
	}
	return errs
}

func failureKind(res dispatch.Result) string {
	if res.Explanation == nil || res.Explanation.Failure == nil {
		return "none"
	}
	return string(res.Explanation.Failure.Kind)
}

// assertOK checks the explicit ok flag; without one, an internal failure is
// always an error unless Failure asks for it.
func assertOK(res dispatch.Result, e Expect) error {
	switch {
	case e.OK != nil && *e.OK != res.OK():
		return &AssertionError{
			Type:     AssertOK,
			Expected: fmt.Sprintf("ok=%t", *e.OK),
			Actual:   fmt.Sprintf("ok=%t (failure: %s)", res.OK(), failureKind(res)),
			Output:   res.Output,
		}
	case e.Failure == "" && failureKind(res) == string(explain.FailInternal):
		return &AssertionError{
			Type:     AssertOK,
			Expected: "no internal failure",
			Actual:   "internal failure",
			Output:   res.Output,
		}
	}
	return nil
}

func assertFailure(res dispatch.Result, e Expect) error {
	if e.Failure == "" || failureKind(res) == e.Failure {
		return nil
	}
	return &AssertionError{
		Type:     AssertFailure,
		Expected: "failure " + e.Failure,
		Actual:   "failure " + failureKind(res),
		Output:   res.Output,
	}
}

func assertContains(res dispatch.Result, s string) error {
	if strings.Contains(res.Output, s) {
		return nil
	}
	return &AssertionError{
		Type:     AssertContains,
		Expected: fmt.Sprintf("output containing %q", s),
		Actual:   "not found",
		Output:   res.Output,
	}
}

func assertNotContains(res dispatch.Result, s string) error {
	if !strings.Contains(res.Output, s) {
		return nil
	}
	return &AssertionError{
		Type:     AssertNotContains,
		Expected: fmt.Sprintf("output without %q", s),
		Actual:   "found",
		Output:   res.Output,
	}
}

// assertStep passes when some step with the op matches Result and Operands
// (whichever are set) and the number of such steps equals Count, if set.
func assertStep(res dispatch.Result, want StepExpect) error {
	var steps []explain.Step
	if res.Explanation != nil {
		steps = res.Explanation.All(want.Op)
	}

	if want.Count != nil && len(steps) != *want.Count {
		return &AssertionError{
			Type:     AssertStep,
			Expected: fmt.Sprintf("%d %q steps", *want.Count, want.Op),
			Actual:   fmt.Sprintf("%d", len(steps)),
			Output:   res.Output,
		}
	}
	if want.Count != nil && want.Result == nil && want.Operands == nil {
		return nil
	}

	for _, st := range steps {
		if want.Result != nil && st.Result != *want.Result {
			continue
		}
		if want.Operands != nil && !slices.Equal(st.Operands, want.Operands) {
			continue
		}
		return nil
	}

	expected := fmt.Sprintf("step %q", want.Op)
	if want.Result != nil {
		expected += fmt.Sprintf(" with result %q", *want.Result)
	}
	if want.Operands != nil {
		expected += fmt.Sprintf(" with operands %q", want.Operands)
	}
	actual := "no such step"
	if len(steps) > 0 {
		results := make([]string, len(steps))
		for i, st := range steps {
			results[i] = fmt.Sprintf("%q%q", st.Result, st.Operands)
		}
		actual = "steps " + strings.Join(results, ", ")
	}
	return &AssertionError{Type: AssertStep, Expected: expected, Actual: actual, Output: res.Output}
}
