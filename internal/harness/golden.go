package harness

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Transcript renders every problem of a result as it would appear in a
// workbook:
//
//	### crt-classic [crt]
//	> 2 3 3 5 2 7
//	<rendered answer>
//
// Problems are separated by a blank line.
func Transcript(r *Result) []byte {
	var b strings.Builder
	for i, p := range r.Problems {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "### %s [%s]\n", p.Name, p.Solver)
		fmt.Fprintf(&b, "> %s\n", p.Input)
		b.WriteString(p.Output)
		if p.Output != "" && !strings.HasSuffix(p.Output, "\n") {
			b.WriteString("\n")
		}
	}
	return []byte(b.String())
}

// RunWithGolden runs ws and compares its transcript with
// testdata/golden/{ws.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can also assert on expectations.
func RunWithGolden(t *testing.T, ws *Worksheet, opts ...Option) (*Result, error) {
	t.Helper()

	result, err := Run(context.Background(), ws, opts...)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, ws.Name, result)
	return result, nil
}

// AssertGolden compares the transcript of an existing result with a golden
// file.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, Transcript(result))
}
