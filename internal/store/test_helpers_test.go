package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aquaa/alphamath/internal/dispatch"
	"github.com/aquaa/alphamath/internal/solver"
	"github.com/aquaa/alphamath/internal/testutil"
)

// createTestStore opens a store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// runRecorder solves problems with a deterministic clock and ID sequence
// and records them.
type runRecorder struct {
	t     *testing.T
	store *Store
	d     *dispatch.Dispatcher
	ids   IDGenerator
}

func newRunRecorder(t *testing.T, s *Store) *runRecorder {
	return &runRecorder{
		t:     t,
		store: s,
		d:     dispatch.NewDefault(solver.DefaultOptions(), dispatch.WithClock(testutil.NewDeterministicClock())),
		ids:   testutil.NewSequentialIDGenerator(""),
	}
}

func (rr *runRecorder) record(choice, input string) Run {
	rr.t.Helper()
	ctx := context.Background()
	res, err := rr.d.Solve(ctx, choice, input)
	if err != nil {
		rr.t.Fatalf("Solve(%q, %q) failed: %v", choice, input, err)
	}
	run, err := NewRun(rr.ids.Generate(), res)
	if err != nil {
		rr.t.Fatalf("NewRun() failed: %v", err)
	}
	if err := rr.store.Record(ctx, run); err != nil {
		rr.t.Fatalf("Record() failed: %v", err)
	}
	return run
}
