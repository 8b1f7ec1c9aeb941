package harness

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquaa/alphamath/internal/dispatch"
	"github.com/aquaa/alphamath/internal/solver"
	"github.com/aquaa/alphamath/internal/store"
	"github.com/aquaa/alphamath/internal/testutil"
)

func loadTestWorksheet(t *testing.T, name string) *Worksheet {
	t.Helper()
	ws, err := LoadWorksheet("testdata/worksheets/" + name + ".yaml")
	require.NoError(t, err)
	return ws
}

func TestRun_Worksheets(t *testing.T) {
	for _, name := range []string{"number-theory", "polynomials", "symbolic"} {
		t.Run(name, func(t *testing.T) {
			ws := loadTestWorksheet(t, name)

			result, err := Run(context.Background(), ws)
			require.NoError(t, err)

			for _, p := range result.Failed() {
				t.Errorf("%s failed:\n%v", p.Name, p.Errors)
			}
			assert.True(t, result.Pass)
			assert.Len(t, result.Problems, len(ws.Problems))
		})
	}
}

func TestRun_SequenceAndIDs(t *testing.T) {
	ws := loadTestWorksheet(t, "number-theory")

	result, err := Run(context.Background(), ws)
	require.NoError(t, err)

	for i, p := range result.Problems {
		assert.Equal(t, int64(i+1), p.Seq)
	}
	assert.Equal(t, "number-theory-0001", result.Problems[0].RunID)

	// Menu keys resolve to solver names.
	assert.Equal(t, "congruence", result.Problems[1].Solver)
	assert.Equal(t, "multiplier", result.Problems[6].Solver)
}

func TestRun_RecordsIntoStore(t *testing.T) {
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	defer st.Close()

	ws := loadTestWorksheet(t, "number-theory")
	result, err := Run(context.Background(), ws,
		WithStore(st),
		WithIDGenerator(testutil.NewSequentialIDGenerator("nt")),
	)
	require.NoError(t, err)
	require.True(t, result.Pass)

	runs, err := st.List(context.Background(), store.Filter{})
	require.NoError(t, err)
	require.Len(t, runs, len(ws.Problems))
	assert.Equal(t, "nt-0001", runs[0].ID)
	assert.Equal(t, "congruence", runs[0].Solver)

	failed, err := st.List(context.Background(), store.Filter{OnlyFailed: true})
	require.NoError(t, err)
	require.Len(t, failed, 2)
	assert.Equal(t, "3 4 0", failed[0].Input)
	assert.Equal(t, "1 6 2 9", failed[1].Input)

	last, err := st.LastSeq(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(len(ws.Problems)), last)
}

func TestRun_Filter(t *testing.T) {
	ws := loadTestWorksheet(t, "number-theory")

	result, err := Run(context.Background(), ws, WithFilter(func(p Problem) bool {
		return p.Solver == "crt"
	}))
	require.NoError(t, err)

	require.Len(t, result.Problems, 2)
	assert.Equal(t, "crt-classic", result.Problems[0].Name)
	assert.Equal(t, "crt-not-coprime", result.Problems[1].Name)
	assert.Equal(t, int64(1), result.Problems[0].Seq)
}

func TestRun_FailingExpectation(t *testing.T) {
	ws := &Worksheet{
		Name:        "wrong",
		Description: "Expectations that do not hold",
		Problems: []Problem{
			{Name: "ok", Solver: "multiplier", Input: "12 18"},
			{
				Name:   "wrong-multiplier",
				Solver: "multiplier",
				Input:  "12 18",
				Expect: Expect{Steps: []StepExpect{{Op: "multiplier", Result: ptr("4")}}},
			},
		},
	}

	result, err := Run(context.Background(), ws,
		WithIDGenerator(testutil.NewFixedIDGenerator("good", "bad")))
	require.NoError(t, err)

	assert.Equal(t, "good", result.Problems[0].RunID)
	assert.Equal(t, "bad", result.Problems[1].RunID)
	assert.False(t, result.Pass)
	failed := result.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "wrong-multiplier", failed[0].Name)
	require.Len(t, failed[0].Errors, 1)
	assert.Contains(t, failed[0].Errors[0], `step "multiplier" with result "4"`)
	assert.Contains(t, failed[0].Errors[0], `Actual: steps "3"`)
}

func TestRun_UnknownSolver(t *testing.T) {
	ws := &Worksheet{
		Name:        "unknown",
		Description: "Unknown solver",
		Problems:    []Problem{{Name: "p", Solver: "calculus", Input: "x"}},
	}

	result, err := Run(context.Background(), ws)
	require.NoError(t, err)

	require.Len(t, result.Problems, 1)
	p := result.Problems[0]
	assert.False(t, p.Pass)
	assert.Equal(t, []string{`invalid choice "calculus"`}, p.Errors)
	assert.Empty(t, p.RunID)
}

func TestRun_SolverOptionsAndLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	opts := solver.DefaultOptions()
	opts.QuadraticPlaces = 2

	ws := &Worksheet{
		Name:        "options",
		Description: "Solver options reach the solvers",
		Problems: []Problem{{
			Name:   "two-places",
			Solver: "quadratic",
			Input:  "x^2 - 2 = 0",
			Expect: Expect{Contains: []string{"x ≈ 1.41\n"}},
		}},
	}

	result, err := Run(context.Background(), ws, WithSolverOptions(opts), WithLogger(logger))
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Failed())
	assert.Contains(t, buf.String(), "solver finished")
	assert.Contains(t, buf.String(), "solver=quadratic")
}

func TestRun_WithClockContinuesSequence(t *testing.T) {
	ws := &Worksheet{
		Name:        "resume",
		Description: "Sequence numbers continue from an existing history",
		Problems: []Problem{
			{Name: "a", Solver: "multiplier", Input: "12 18"},
			{Name: "b", Solver: "multiplier", Input: "18 6"},
		},
	}

	result, err := Run(context.Background(), ws, WithClock(dispatch.NewClockAt(41)))
	require.NoError(t, err)

	assert.Equal(t, int64(42), result.Problems[0].Seq)
	assert.Equal(t, int64(43), result.Problems[1].Seq)
}
