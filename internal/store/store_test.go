package store

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquaa/alphamath/internal/explain"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer s.Close()

	var name string
	err = s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='index' AND name=?",
		"idx_runs_problem",
	).Scan(&name)
	if err != nil {
		t.Errorf("migration index not found after idempotent opens: %v", err)
	}
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)

	if err := s.verifyPragma("journal_mode", "wal"); err != nil {
		t.Error(err)
	}
	if err := s.verifyPragma("user_version", "1"); err != nil {
		t.Error(err)
	}
}

func TestRecordAndGet(t *testing.T) {
	s := createTestStore(t)
	rr := newRunRecorder(t, s)

	want := rr.record("crt", "2 3 3 5 2 7")

	got, err := s.Get(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Equal(t, "run-0001", got.ID)
	assert.Equal(t, int64(1), got.Seq)
	assert.Equal(t, "crt", got.Solver)
	assert.True(t, got.OK)
	assert.Empty(t, got.FailureKind)
	assert.Equal(t, want.Output, got.Output)
	assert.Equal(t, want.AnswerHash, got.AnswerHash)
	assert.Equal(t, want.Explanation.Steps, got.Explanation.Steps)

	smallest, ok := got.Explanation.Find("smallest")
	require.True(t, ok)
	assert.Equal(t, "23", smallest.Result)
}

func TestRecord_DuplicateIDIgnored(t *testing.T) {
	s := createTestStore(t)
	rr := newRunRecorder(t, s)
	run := rr.record("1", "14 30 100")

	require.NoError(t, s.Record(context.Background(), run))

	runs, err := s.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestGet_NotFound(t *testing.T) {
	s := createTestStore(t)
	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_Filters(t *testing.T) {
	s := createTestStore(t)
	rr := newRunRecorder(t, s)
	ctx := context.Background()

	rr.record("congruence", "14 30 100")
	rr.record("congruence", "3 4 0")
	rr.record("quadratic", "x^2 - 5x + 6 = 0")
	rr.record("congruence", " 14  30 100 ")

	all, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i, r := range all {
		assert.Equal(t, int64(i+1), r.Seq, "runs are listed in sequence order")
	}

	congruences, err := s.List(ctx, Filter{Solver: "Congruence"})
	require.NoError(t, err)
	assert.Len(t, congruences, 3)

	failed, err := s.List(ctx, Filter{OnlyFailed: true})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, explain.FailInput, failed[0].FailureKind)
	assert.Equal(t, "❌ Modulus 'm' cannot be zero.\n", failed[0].Output)

	same, err := s.List(ctx, Filter{ProblemID: all[0].ProblemID})
	require.NoError(t, err)
	require.Len(t, same, 2, "whitespace does not change the problem")
	assert.Equal(t, same[0].AnswerHash, same[1].AnswerHash)

	last, err := s.List(ctx, Filter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, int64(3), last[0].Seq)
	assert.Equal(t, int64(4), last[1].Seq)

	none, err := s.List(ctx, Filter{Solver: "trig"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestLastSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	seq, err := s.LastSeq(ctx)
	require.NoError(t, err)
	assert.Zero(t, seq)

	rr := newRunRecorder(t, s)
	rr.record("4", "12 18")
	rr.record("4", "18 6")

	seq, err = s.LastSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), seq)
}

func TestProblemID(t *testing.T) {
	a, err := ProblemID("trig", "sin(π/6)")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), a)

	// Extra spaces and solver case do not matter.
	b, err := ProblemID("TRIG", "  sin(π/6) ")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := ProblemID("trig", "sin(π/3)")
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	d, err := ProblemID("algebra", "sin(π/6)")
	require.NoError(t, err)
	assert.NotEqual(t, a, d, "the solver is part of the identity")

	assert.Equal(t, NormalizeInput("cafe\u0301"), NormalizeInput("caf\u00e9"))
}

func TestAnswerHash_IgnoresInput(t *testing.T) {
	e1 := explain.New("demo", "1").Add("x", "2")
	e2 := explain.New("demo", "one").Add("x", "2")
	e3 := explain.New("demo", "1").Add("x", "3")

	h1, err := AnswerHash(e1)
	require.NoError(t, err)
	h2, _ := AnswerHash(e2)
	h3, _ := AnswerHash(e3)

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.NotEqual(t, hashWithDomain(DomainAnswer, []byte("x")), hashWithDomain(DomainProblem, []byte("x")))
}

func TestUUIDv7Generator(t *testing.T) {
	g := UUIDv7Generator{}
	a, b := g.Generate(), g.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
	assert.Equal(t, byte('7'), a[14], "version nibble")
}
