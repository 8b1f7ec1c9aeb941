package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquaa/alphamath/internal/explain"
	"github.com/aquaa/alphamath/internal/store"
)

const multiplierOutput = "Finding smallest multiplier so that 12 × multiplier is divisible by 18:\n" +
	"GCD(12, 18) = 6\n" +
	"✅ Multiply 12 by 3 to make it divisible by 18\n" +
	"12 × 3 = 36\n" +
	"36 / 18 = 2\n"

type solveResponse struct {
	Status string      `json:"status"`
	Data   SolveResult `json:"data"`
	Error  *CLIError   `json:"error"`
	RunID  string      `json:"run_id"`
}

func TestSolve_Text(t *testing.T) {
	out, errOut, err := execute(t, "", "solve", "multiplier", "12", "18")
	require.NoError(t, err)
	assert.Equal(t, multiplierOutput, out)
	assert.Contains(t, errOut, "solver finished")
	assert.Contains(t, errOut, "solver=multiplier")
}

func TestSolve_MenuKeyAndStdin(t *testing.T) {
	out, _, err := execute(t, "12 18\n", "solve", "4")
	require.NoError(t, err)
	assert.Equal(t, multiplierOutput, out)
}

func TestSolve_InputFailure(t *testing.T) {
	out, _, err := execute(t, "", "solve", "congruence", "3 4 0")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Empty(t, err.Error())
	assert.Equal(t, "❌ Modulus 'm' cannot be zero.\n", out)
}

func TestSolve_InvalidChoice(t *testing.T) {
	tests := []struct {
		choice string
		want   string
	}{
		{"calculus", `invalid choice "calculus"`},
		{"42", `invalid choice "42"`},
		{"0", "exits the menu"},
	}
	for _, tt := range tests {
		t.Run(tt.choice, func(t *testing.T) {
			out, _, err := execute(t, "", "solve", tt.choice, "1 2")
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.want)
			assert.Empty(t, out)
		})
	}
}

func TestSolve_InvalidChoiceJSON(t *testing.T) {
	out, _, err := execute(t, "", "--format", "json", "solve", "calculus", "x")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeInvalidChoice, resp.Error.Code)
}

func TestSolve_JSON(t *testing.T) {
	out, _, err := execute(t, "", "--format", "json", "solve", "crt", "2 3 3 5 2 7")
	require.NoError(t, err)

	var resp solveResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Error)
	assert.Empty(t, resp.RunID)

	data := resp.Data
	assert.Equal(t, int64(1), data.Seq)
	assert.Equal(t, "crt", data.Solver)
	assert.True(t, data.OK)
	assert.Nil(t, data.Failure)
	assert.Contains(t, data.Output, "The smallest positive solution is: 23")
	assert.Contains(t, data.Steps, explain.Step{Op: "smallest", Result: "23"})
}

func TestSolve_JSONFailure(t *testing.T) {
	out, _, err := execute(t, "", "--format", "json", "solve", "crt", "1 6 2 9")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp solveResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeSolverFailed, resp.Error.Code)
	assert.Equal(t, "Moduli are not pairwise co-prime. CRT may not be applicable", resp.Error.Message)
	require.NotNil(t, resp.Data.Failure)
	assert.Equal(t, explain.FailInput, resp.Data.Failure.Kind)
	assert.False(t, resp.Data.OK)
}

func TestSolve_RecordsHistory(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")

	_, errOut, err := execute(t, "", "-v", "solve", "--db", db, "multiplier", "12 18")
	require.NoError(t, err)
	assert.Contains(t, errOut, "recorded run")

	out, _, err := execute(t, "", "--format", "json", "solve", "--db", db, "congruence", "3 4 0")
	require.Error(t, err)
	var resp solveResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.NotEmpty(t, resp.RunID)

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.List(context.Background(), store.Filter{})
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// The second session resumes the sequence of the first.
	assert.Equal(t, int64(1), runs[0].Seq)
	assert.Equal(t, int64(2), runs[1].Seq)
	assert.Equal(t, resp.RunID, runs[1].ID)
	assert.False(t, runs[1].OK)
	assert.Equal(t, explain.FailInput, runs[1].FailureKind)

	for _, r := range runs {
		id, err := uuid.Parse(r.ID)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), id.Version())
	}
}

func TestSolve_ConfigFile(t *testing.T) {
	path := writeConfig(t, "decimals: quadratic: 2\n")

	out, _, err := execute(t, "", "--config", path, "solve", "quadratic", "x^2 - 2 = 0")
	require.NoError(t, err)
	assert.Contains(t, out, "rounded to 2 decimal places")
	assert.Contains(t, out, "x ≈ 1.41\n")
}

func TestSolve_ConfigHistoryPath(t *testing.T) {
	db := filepath.Join(t.TempDir(), "configured.db")
	path := writeConfig(t, "history: path: \""+filepath.ToSlash(db)+"\"\n")

	_, _, err := execute(t, "", "--config", path, "solve", "multiplier", "18 6")
	require.NoError(t, err)

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	last, err := st.LastSeq(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), last)
}

func TestSolve_MissingSolver(t *testing.T) {
	_, _, err := execute(t, "", "solve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}
