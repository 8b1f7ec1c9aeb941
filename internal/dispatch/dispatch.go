package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aquaa/alphamath/internal/explain"
	"github.com/aquaa/alphamath/internal/solver"
)

// Result is one completed solver run.
type Result struct {
	Seq         int64
	Solver      string
	Input       string
	Output      string
	Explanation *explain.Explanation
	Duration    time.Duration
}

// OK reports whether the solver finished without a failure.
func (r Result) OK() bool {
	return r.Explanation != nil && r.Explanation.OK()
}

// Dispatcher runs solvers from a Registry.
type Dispatcher struct {
	registry *Registry
	clock    Sequencer
	logger   *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithClock sets the run sequencer.
func WithClock(c Sequencer) Option {
	return func(d *Dispatcher) { d.clock = c }
}

// New creates a dispatcher over registry.
func New(registry *Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		clock:    NewClock(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewDefault registers every solver built with opts.
func NewDefault(opts solver.Options, dopts ...Option) *Dispatcher {
	r, err := NewRegistry(solver.All(opts)...)
	if err != nil {
		// solver.All has fixed, distinct names.
		panic(err)
	}
	return New(r, dopts...)
}

// Registry returns the dispatcher's registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Solve runs the solver selected by choice. The error is non-nil only when
// choice selects nothing (ErrExit or *UnknownSolverError); solver failures
// are carried by the result.
func (d *Dispatcher) Solve(ctx context.Context, choice, input string) (Result, error) {
	s, err := d.registry.Lookup(choice)
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	res := Result{Seq: d.clock.Next(), Solver: s.Name(), Input: input}
	res.Explanation, res.Output = d.safeRun(ctx, s, input)
	res.Duration = time.Since(start)

	d.logger.Info("solver finished",
		"seq", res.Seq,
		"solver", res.Solver,
		"input", input,
		"ok", res.OK(),
		"duration", res.Duration,
	)
	return res, nil
}

// Run is Solve reduced to text. It never panics and never returns an error:
// an invalid choice becomes a warning line and the exit key a farewell.
func (d *Dispatcher) Run(ctx context.Context, choice, input string) string {
	res, err := d.Solve(ctx, choice, input)
	var unknown *UnknownSolverError
	switch {
	case errors.Is(err, ErrExit):
		return "Exiting program.\n"
	case errors.As(err, &unknown):
		return explain.GlyphWarning + " Invalid choice '" + unknown.Choice + "'. Please choose 0-9.\n"
	case err != nil:
		return explain.GlyphWarning + " Error: " + err.Error() + "\n"
	}
	return res.Output
}

// safeRun solves and renders, turning a panic in either into an internal
// failure.
func (d *Dispatcher) safeRun(ctx context.Context, s solver.Solver, input string) (e *explain.Explanation, out string) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("solver panicked", "solver", s.Name(), "input", input, "panic", r)
			e = explain.New(s.Name(), input).Fail(fmt.Errorf("%v", r))
			out = explain.Render(e, nil)
		}
	}()
	e = s.Solve(ctx, input)
	if e == nil {
		e = explain.New(s.Name(), input).Fail(errors.New("solver returned no explanation"))
	}
	return e, explain.Render(e, s.Templates())
}
