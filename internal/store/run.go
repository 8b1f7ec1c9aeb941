package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/aquaa/alphamath/internal/dispatch"
	"github.com/aquaa/alphamath/internal/explain"
)

// Run is one recorded solver run.
type Run struct {
	ID          string               `json:"id"`
	Seq         int64                `json:"seq"`
	ProblemID   string               `json:"problem_id"`
	Solver      string               `json:"solver"`
	Input       string               `json:"input"`
	OK          bool                 `json:"ok"`
	FailureKind explain.FailureKind  `json:"failure_kind,omitempty"`
	Explanation *explain.Explanation `json:"explanation"`
	AnswerHash  string               `json:"answer_hash"`
	Output      string               `json:"output"`
	Duration    time.Duration        `json:"duration"`
}

// NewRun builds the record of a dispatcher result under id.
func NewRun(id string, res dispatch.Result) (Run, error) {
	if res.Explanation == nil {
		return Run{}, fmt.Errorf("run %s: result has no explanation", id)
	}
	problemID, err := ProblemID(res.Solver, res.Input)
	if err != nil {
		return Run{}, err
	}
	answer, err := AnswerHash(res.Explanation)
	if err != nil {
		return Run{}, err
	}
	r := Run{
		ID:          id,
		Seq:         res.Seq,
		ProblemID:   problemID,
		Solver:      res.Solver,
		Input:       res.Input,
		OK:          res.OK(),
		Explanation: res.Explanation,
		AnswerHash:  answer,
		Output:      res.Output,
		Duration:    res.Duration,
	}
	if f := res.Explanation.Failure; f != nil {
		r.FailureKind = f.Kind
	}
	return r, nil
}

func marshalExplanation(e *explain.Explanation) (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("marshal steps: %w", err)
	}
	return string(data), nil
}

func unmarshalExplanation(data string) (*explain.Explanation, error) {
	var e explain.Explanation
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		return nil, fmt.Errorf("unmarshal steps: %w", err)
	}
	if e.Steps == nil {
		e.Steps = []explain.Step{}
	}
	return &e, nil
}
