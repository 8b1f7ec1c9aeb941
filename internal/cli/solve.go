package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aquaa/alphamath/internal/dispatch"
	"github.com/aquaa/alphamath/internal/explain"
)

// SolveOptions holds flags for the solve command.
type SolveOptions struct {
	*RootOptions
	Database string
}

// SolveResult is the JSON payload of a solve.
type SolveResult struct {
	Seq        int64            `json:"seq"`
	Solver     string           `json:"solver"`
	Input      string           `json:"input"`
	OK         bool             `json:"ok"`
	Steps      []explain.Step   `json:"steps"`
	Failure    *explain.Failure `json:"failure,omitempty"`
	Output     string           `json:"output"`
	DurationMS float64          `json:"duration_ms"`
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "solve <solver> [input...]",
		Short: "Solve one problem and show the working",
		Long: `Run one solver on one input and print its step-by-step explanation.

The solver is a name (see "alphamath list") or its menu number. The input
words are joined with spaces; with no input words the input is read from
standard input.

Exit codes:
  0 - Solved
  1 - The solver rejected the input
  2 - Command error (unknown solver, bad config, database errors)

Examples:
  alphamath solve congruence 14 30 100
  alphamath solve 2 "2 3 3 5 2 7"
  alphamath solve quadratic "x^2 - 5x + 6 = 0" --format json
  echo "x^3 - x, -2, 0, 2" | alphamath solve sturm --db ./history.db`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite history database")

	return cmd
}

func runSolve(opts *SolveOptions, args []string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	f := newFormatter(cmd, opts.RootOptions)

	input := strings.Join(args[1:], " ")
	if len(args) == 1 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read input", err)
		}
		input = strings.TrimSpace(string(data))
	}

	sess, err := openSession(cmd, opts.RootOptions, opts.Database)
	if err != nil {
		return err
	}
	defer sess.close()

	res, err := sess.dispatcher.Solve(ctx, args[0], input)
	if err != nil {
		return choiceError(f, err)
	}

	runID, err := sess.record(ctx, res)
	if err != nil {
		return err
	}
	if runID != "" {
		f.VerboseLog("recorded run %s (seq %d)", runID, res.Seq)
	}

	if opts.Format == "json" {
		return outputSolveJSON(f, res, runID)
	}

	if err := f.Success(res.Output); err != nil {
		return err
	}
	if !res.OK() {
		// The failure line is already part of the output.
		return NewExitError(ExitFailure, "")
	}
	return nil
}

// choiceError reports a choice that selects no solver.
func choiceError(f *OutputFormatter, err error) error {
	msg := err.Error()
	if errors.Is(err, dispatch.ErrExit) {
		msg = `choice "0" exits the menu; name a solver to solve`
	}
	var unknown *dispatch.UnknownSolverError
	if errors.As(err, &unknown) {
		msg = fmt.Sprintf("%s; run \"alphamath list\" for the solvers", msg)
	}
	if f.Format == "json" {
		if encErr := f.Error(CodeInvalidChoice, msg, nil); encErr != nil {
			return encErr
		}
	}
	return NewExitError(ExitCommandError, msg)
}

func newSolveResult(res dispatch.Result) SolveResult {
	out := SolveResult{
		Seq:        res.Seq,
		Solver:     res.Solver,
		Input:      res.Input,
		OK:         res.OK(),
		Steps:      []explain.Step{},
		Output:     res.Output,
		DurationMS: float64(res.Duration.Microseconds()) / 1000,
	}
	if e := res.Explanation; e != nil {
		out.Steps = e.Steps
		out.Failure = e.Failure
	}
	return out
}

func outputSolveJSON(f *OutputFormatter, res dispatch.Result, runID string) error {
	resp := CLIResponse{Status: "ok", Data: newSolveResult(res), RunID: runID}
	if !res.OK() {
		resp.Status = "error"
		resp.Error = &CLIError{Code: CodeSolverFailed, Message: res.Explanation.Failure.Message}
	}
	if err := f.encode(resp); err != nil {
		return err
	}
	if !res.OK() {
		return NewExitError(ExitFailure, res.Explanation.Failure.Message)
	}
	return nil
}
