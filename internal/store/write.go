package store

import (
	"context"
	"fmt"
)

// Record inserts a run. Uses ON CONFLICT(id) DO NOTHING, so recording the
// same run twice is a no-op.
func (s *Store) Record(ctx context.Context, r Run) error {
	steps, err := marshalExplanation(r.Explanation)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, problem_id, solver, input, ok, failure_kind, steps, answer_hash, output, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		r.ID,
		r.Seq,
		r.ProblemID,
		r.Solver,
		r.Input,
		boolToInt(r.OK),
		string(r.FailureKind),
		steps,
		r.AnswerHash,
		r.Output,
		r.Duration.Nanoseconds(),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
