package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aquaa/alphamath/internal/dispatch"
	"github.com/aquaa/alphamath/internal/harness"
	"github.com/aquaa/alphamath/internal/store"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Update   bool   // regenerate golden transcripts
	Filter   string // worksheet filter (glob pattern)
	Database string
}

// WorksheetResult holds the result of a single worksheet.
type WorksheetResult struct {
	Name     string   `json:"name"`
	Pass     bool     `json:"pass"`
	Problems int      `json:"problems"`
	Errors   []string `json:"errors,omitempty"`
}

// CheckResult holds the overall check result.
type CheckResult struct {
	Worksheets []WorksheetResult `json:"worksheets"`
	Passed     int               `json:"passed"`
	Failed     int               `json:"failed"`
	Total      int               `json:"total"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <worksheets-dir>",
		Short: "Check worksheets of problems and expected answers",
		Long: `Solve every problem of every YAML worksheet in a directory and check
the expectations. When <worksheets-dir>/../golden/<name>.golden exists the
worksheet transcript must also match it.

Exit codes:
  0 - All worksheets passed
  1 - One or more worksheets failed
  2 - Command error (invalid paths, bad worksheets, etc.)

Examples:
  alphamath check ./worksheets
  alphamath check ./worksheets --filter "number-*"
  alphamath check ./worksheets --update
  alphamath check ./worksheets --db ./history.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden transcripts")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter worksheets by name glob")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record runs in this SQLite history database")

	return cmd
}

func runCheck(opts *CheckOptions, dir string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	f := newFormatter(cmd, opts.RootOptions)
	w := cmd.OutOrStdout()

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("worksheets directory not found: %s", dir))
	}
	if opts.Filter != "" {
		if _, err := filepath.Match(opts.Filter, ""); err != nil {
			return WrapExitError(ExitCommandError, "invalid filter pattern", err)
		}
	}

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}

	sheets, err := harness.LoadDir(dir)
	if err != nil && !errors.Is(err, harness.ErrNoWorksheets) {
		return WrapExitError(ExitCommandError, "failed to load worksheets", err)
	}

	var selected []*harness.Worksheet
	for _, ws := range sheets {
		if opts.Filter != "" {
			if ok, _ := filepath.Match(opts.Filter, ws.Name); !ok {
				continue
			}
		}
		selected = append(selected, ws)
	}

	result := CheckResult{Worksheets: make([]WorksheetResult, 0, len(selected)), Total: len(selected)}
	if len(selected) == 0 {
		if opts.Format == "json" {
			return f.Success(result)
		}
		fmt.Fprintln(w, "No worksheets found.")
		return nil
	}

	hopts := []harness.Option{
		harness.WithSolverOptions(cfg.SolverOptions()),
		harness.WithLogger(newLogger(cmd.ErrOrStderr(), opts.Verbose)),
	}
	if path := historyPath(opts.Database, cfg); path != "" {
		st, last, err := openHistory(ctx, path)
		if err != nil {
			return err
		}
		defer st.Close()
		hopts = append(hopts,
			harness.WithStore(st),
			harness.WithIDGenerator(store.UUIDv7Generator{}),
			harness.WithClock(dispatch.NewClockAt(last)),
		)
	}

	for _, ws := range selected {
		wr := checkWorksheet(ws, dir, opts, cmd, hopts)
		result.Worksheets = append(result.Worksheets, wr)
		if wr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if opts.Format == "json" {
		return outputCheckJSON(f, result)
	}
	return outputCheckText(cmd, result)
}

// checkWorksheet runs one worksheet and compares or updates its golden
// transcript.
func checkWorksheet(ws *harness.Worksheet, dir string, opts *CheckOptions, cmd *cobra.Command, hopts []harness.Option) WorksheetResult {
	w := cmd.OutOrStdout()
	text := opts.Format != "json"

	wr := WorksheetResult{Name: ws.Name, Pass: true, Problems: len(ws.Problems)}
	fail := func(msg string) {
		wr.Pass = false
		wr.Errors = append(wr.Errors, msg)
	}

	result, err := harness.Run(commandContext(cmd), ws, hopts...)
	if err != nil {
		fail(fmt.Sprintf("execution failed: %v", err))
	} else {
		for _, p := range result.Failed() {
			for _, e := range p.Errors {
				fail(fmt.Sprintf("%s: %s", p.Name, e))
			}
		}
		if err := checkGolden(ws.Name, dir, harness.Transcript(result), opts.Update); err != nil {
			fail(err.Error())
		}
	}

	if text {
		mark := "✓"
		if !wr.Pass {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %s (%d problems)\n", mark, ws.Name, wr.Problems)
		for _, e := range wr.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
	return wr
}

// goldenFilePath returns the golden transcript path for a worksheet: a
// golden directory next to the worksheets directory.
func goldenFilePath(name, dir string) string {
	return filepath.Join(filepath.Dir(filepath.Clean(dir)), "golden", name+".golden")
}

// checkGolden compares transcript with the worksheet's golden file, or
// writes it with update. A missing golden file is not an error.
func checkGolden(name, dir string, transcript []byte, update bool) error {
	path := goldenFilePath(name, dir)

	if update {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create golden directory: %w", err)
		}
		if err := os.WriteFile(path, transcript, 0644); err != nil {
			return fmt.Errorf("failed to write golden file: %w", err)
		}
		return nil
	}

	want, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read golden file: %w", err)
	}
	if !bytes.Equal(want, transcript) {
		return fmt.Errorf("transcript does not match %s (run with --update to regenerate)", path)
	}
	return nil
}

func outputCheckJSON(f *OutputFormatter, result CheckResult) error {
	if result.Failed == 0 {
		return f.Success(result)
	}
	msg := fmt.Sprintf("%d worksheet(s) failed", result.Failed)
	if err := f.Failure(CodeCheckFailed, msg, result); err != nil {
		return err
	}
	return NewExitError(ExitFailure, msg)
}

func outputCheckText(cmd *cobra.Command, result CheckResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Check Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d worksheet(s) failed", result.Failed))
	}

	fmt.Fprintln(w, "✓ All worksheets passed")
	return nil
}
