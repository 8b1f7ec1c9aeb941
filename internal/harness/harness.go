package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aquaa/alphamath/internal/dispatch"
	"github.com/aquaa/alphamath/internal/solver"
	"github.com/aquaa/alphamath/internal/store"
	"github.com/aquaa/alphamath/internal/testutil"
)

// Harness runs worksheets with a deterministic clock and run IDs.
type Harness struct {
	store  *store.Store
	ids    store.IDGenerator
	clock  dispatch.Sequencer
	opts   solver.Options
	logger *slog.Logger
	filter func(Problem) bool
}

// Option configures a Harness.
type Option func(*Harness)

// WithStore records runs in st instead of a private in-memory store. The
// caller owns st.
func WithStore(st *store.Store) Option {
	return func(h *Harness) { h.store = st }
}

// WithIDGenerator sets the run ID source. The default is sequential IDs
// prefixed with the worksheet name.
func WithIDGenerator(g store.IDGenerator) Option {
	return func(h *Harness) { h.ids = g }
}

// WithClock numbers runs from c instead of a fresh deterministic clock.
// Use it to continue the sequence of an existing history store.
func WithClock(c dispatch.Sequencer) Option {
	return func(h *Harness) { h.clock = c }
}

// WithSolverOptions sets the solver options. The default is
// solver.DefaultOptions.
func WithSolverOptions(o solver.Options) Option {
	return func(h *Harness) { h.opts = o }
}

// WithLogger sets the logger passed to the dispatcher.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// WithFilter runs only the problems for which keep returns true.
func WithFilter(keep func(Problem) bool) Option {
	return func(h *Harness) { h.filter = keep }
}

// Run solves every problem in ws and evaluates its expectations.
//
// Unless WithClock is given, every worksheet run starts its clock at 1, so
// sequence numbers do not depend on what ran before.
func Run(ctx context.Context, ws *Worksheet, opts ...Option) (*Result, error) {
	h := &Harness{
		clock:  testutil.NewDeterministicClock(),
		opts:   solver.DefaultOptions(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.ids == nil {
		h.ids = testutil.NewSequentialIDGenerator(ws.Name)
	}
	if h.store == nil {
		st, err := store.Open(":memory:")
		if err != nil {
			return nil, fmt.Errorf("failed to create in-memory store: %w", err)
		}
		defer st.Close()
		h.store = st
	}

	d := dispatch.NewDefault(h.opts, dispatch.WithClock(h.clock), dispatch.WithLogger(h.logger))

	result := NewResult(ws.Name)
	for i, p := range ws.Problems {
		if h.filter != nil && !h.filter(p) {
			continue
		}
		pr, err := h.runProblem(ctx, d, p)
		if err != nil {
			return nil, fmt.Errorf("problems[%d] %s: %w", i, p.Name, err)
		}
		result.Add(pr)
	}
	return result, nil
}

func (h *Harness) runProblem(ctx context.Context, d *dispatch.Dispatcher, p Problem) (ProblemResult, error) {
	pr := ProblemResult{Name: p.Name, Solver: p.Solver, Input: p.Input, Pass: true}

	res, err := d.Solve(ctx, p.Solver, p.Input)
	if err != nil {
		// An unknown solver is a worksheet mistake, reported per problem.
		pr.Pass = false
		pr.Errors = []string{err.Error()}
		return pr, nil
	}
	pr.Solver = res.Solver
	pr.Seq = res.Seq
	pr.Output = res.Output

	run, err := store.NewRun(h.ids.Generate(), res)
	if err != nil {
		return pr, err
	}
	if err := h.store.Record(ctx, run); err != nil {
		return pr, err
	}
	pr.RunID = run.ID

	for _, e := range EvaluateExpect(res, p.Expect) {
		pr.Pass = false
		pr.Errors = append(pr.Errors, e.Error())
	}
	return pr, nil
}
