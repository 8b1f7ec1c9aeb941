package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aquaa/alphamath/internal/explain"
)

const runColumns = `id, seq, problem_id, solver, input, ok, failure_kind, steps, answer_hash, output, duration_ns`

// Filter narrows List. Zero values match everything.
type Filter struct {
	Solver     string
	ProblemID  string
	OnlyFailed bool

	// Limit keeps the most recent runs; 0 means no limit.
	Limit int
}

// Get returns the run with the given ID, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r, err
}

// List returns matching runs in sequence order. With a Limit it returns the
// last Limit runs, still in ascending order.
//
// Returns an empty slice (not nil) when nothing matches.
func (s *Store) List(ctx context.Context, f Filter) ([]Run, error) {
	var where []string
	var args []any
	if f.Solver != "" {
		where = append(where, "solver = ?")
		args = append(args, strings.ToLower(f.Solver))
	}
	if f.ProblemID != "" {
		where = append(where, "problem_id = ?")
		args = append(args, f.ProblemID)
	}
	if f.OnlyFailed {
		where = append(where, "ok = 0")
	}

	query := `SELECT ` + runColumns + ` FROM runs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	if f.Limit > 0 {
		query = `SELECT * FROM (` + query + ` ORDER BY seq DESC, id COLLATE BINARY DESC LIMIT ?)`
		args = append(args, f.Limit)
	}
	query += ` ORDER BY seq ASC, id COLLATE BINARY ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// LastSeq returns the highest recorded sequence number, or 0 for an empty
// history. A dispatcher clock resumed from it keeps sequence numbers
// unique across sessions.
func (s *Store) LastSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM runs`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("query last seq: %w", err)
	}
	return seq.Int64, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		r          Run
		ok         int
		kind       string
		steps      string
		durationNS int64
	)
	err := row.Scan(&r.ID, &r.Seq, &r.ProblemID, &r.Solver, &r.Input, &ok, &kind, &steps, &r.AnswerHash, &r.Output, &durationNS)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	r.OK = ok == 1
	r.FailureKind = explain.FailureKind(kind)
	r.Duration = time.Duration(durationNS)
	if r.Explanation, err = unmarshalExplanation(steps); err != nil {
		return Run{}, fmt.Errorf("run %s: %w", r.ID, err)
	}
	return r, nil
}
