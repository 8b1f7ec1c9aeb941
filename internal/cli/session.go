package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aquaa/alphamath/internal/config"
	"github.com/aquaa/alphamath/internal/dispatch"
	"github.com/aquaa/alphamath/internal/store"
)

// session is what the solving commands share: settings, logger,
// dispatcher and the optional history store.
type session struct {
	cfg        config.Config
	logger     *slog.Logger
	dispatcher *dispatch.Dispatcher

	// store is nil when no history database is configured.
	store *store.Store
	ids   store.IDGenerator
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newFormatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func loadConfig(opts *RootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	return cfg, nil
}

// historyPath picks the --db flag over the configured history path.
func historyPath(flag string, cfg config.Config) string {
	if flag != "" {
		return flag
	}
	return cfg.History.Path
}

// openHistory opens the history database and returns the last recorded
// sequence number.
func openHistory(ctx context.Context, path string) (*store.Store, int64, error) {
	st, err := store.Open(path)
	if err != nil {
		return nil, 0, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	last, err := st.LastSeq(ctx)
	if err != nil {
		st.Close()
		return nil, 0, WrapExitError(ExitCommandError, "failed to read database", err)
	}
	return st, last, nil
}

// openSession loads the settings and builds the dispatcher. With a history
// database, its clock resumes after the last recorded run.
func openSession(cmd *cobra.Command, opts *RootOptions, db string) (*session, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:    cfg,
		logger: newLogger(cmd.ErrOrStderr(), opts.Verbose),
		ids:    store.UUIDv7Generator{},
	}

	clock := dispatch.NewClock()
	if path := historyPath(db, cfg); path != "" {
		st, last, err := openHistory(commandContext(cmd), path)
		if err != nil {
			return nil, err
		}
		s.store = st
		clock = dispatch.NewClockAt(last)
		s.logger.Debug("history database ready", "path", path, "last_seq", last)
	}

	s.dispatcher = dispatch.NewDefault(cfg.SolverOptions(),
		dispatch.WithClock(clock),
		dispatch.WithLogger(s.logger),
	)
	return s, nil
}

// record stores res when history is enabled and returns the run ID.
func (s *session) record(ctx context.Context, res dispatch.Result) (string, error) {
	if s.store == nil {
		return "", nil
	}
	run, err := store.NewRun(s.ids.Generate(), res)
	if err != nil {
		return "", WrapExitError(ExitCommandError, "failed to build run record", err)
	}
	if err := s.store.Record(ctx, run); err != nil {
		return "", WrapExitError(ExitCommandError, "failed to record run", err)
	}
	s.logger.Debug("run recorded", "id", run.ID, "seq", run.Seq, "problem_id", run.ProblemID)
	return run.ID, nil
}

func (s *session) close() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Error("error closing database", "error", err)
	}
}
