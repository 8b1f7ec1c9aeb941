package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aquaa/alphamath/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Solver   string
	Limit    int
	Failed   bool
	ID       string // show one run in full
}

// HistoryEntry is one row of the history listing.
type HistoryEntry struct {
	ID          string `json:"id"`
	Seq         int64  `json:"seq"`
	Solver      string `json:"solver"`
	Input       string `json:"input"`
	OK          bool   `json:"ok"`
	FailureKind string `json:"failure_kind,omitempty"`
	ProblemID   string `json:"problem_id"`
	AnswerHash  string `json:"answer_hash"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded solver runs",
		Long: `List the runs recorded in a history database, oldest first.

The database is --db or, without it, history.path from the settings.
With --id the full working of that run is printed again.

Examples:
  alphamath history --db ./history.db
  alphamath history --db ./history.db --solver crt --limit 5
  alphamath history --db ./history.db --failed --format json
  alphamath history --db ./history.db --id 0190f3c2-...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite history database")
	cmd.Flags().StringVar(&opts.Solver, "solver", "", "only runs of this solver")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "show the most recent N runs (0 for all)")
	cmd.Flags().BoolVar(&opts.Failed, "failed", false, "only runs that failed")
	cmd.Flags().StringVar(&opts.ID, "id", "", "show the run with this ID")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	f := newFormatter(cmd, opts.RootOptions)

	if opts.Limit < 0 {
		return NewExitError(ExitCommandError, "--limit must be >= 0")
	}

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}
	path := historyPath(opts.Database, cfg)
	if path == "" {
		return NewExitError(ExitCommandError, "no history database: pass --db or set history.path in the config")
	}

	st, _, err := openHistory(ctx, path)
	if err != nil {
		return err
	}
	defer st.Close()

	if opts.ID != "" {
		run, err := st.Get(ctx, opts.ID)
		if errors.Is(err, store.ErrNotFound) {
			if opts.Format == "json" {
				if encErr := f.Error(CodeNotFound, err.Error(), nil); encErr != nil {
					return encErr
				}
			}
			return WrapExitError(ExitCommandError, "run not found", err)
		}
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read run", err)
		}
		if opts.Format == "json" {
			return f.Success(run)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %d %s [%s]\n> %s\n", run.Seq, run.ID, run.Solver, run.Input)
		return f.Success(run.Output)
	}

	runs, err := st.List(ctx, store.Filter{
		Solver:     opts.Solver,
		OnlyFailed: opts.Failed,
		Limit:      opts.Limit,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	entries := make([]HistoryEntry, len(runs))
	for i, r := range runs {
		entries[i] = HistoryEntry{
			ID:          r.ID,
			Seq:         r.Seq,
			Solver:      r.Solver,
			Input:       r.Input,
			OK:          r.OK,
			FailureKind: string(r.FailureKind),
			ProblemID:   r.ProblemID,
			AnswerHash:  r.AnswerHash,
		}
	}

	if opts.Format == "json" {
		return f.Success(entries)
	}
	return outputHistoryText(cmd, entries)
}

func outputHistoryText(cmd *cobra.Command, entries []HistoryEntry) error {
	w := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tSTATUS\tSOLVER\tINPUT\tID")
	for _, e := range entries {
		status := "ok"
		if !e.OK {
			status = "failed (" + e.FailureKind + ")"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", e.Seq, status, e.Solver, e.Input, e.ID)
	}
	return tw.Flush()
}
