package harness

// ProblemResult is the outcome of one worksheet problem.
type ProblemResult struct {
	Name   string   `json:"name"`
	Solver string   `json:"solver"`
	Input  string   `json:"input"`
	Seq    int64    `json:"seq"`
	RunID  string   `json:"run_id"`
	Output string   `json:"output"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// Result is the outcome of a worksheet.
type Result struct {
	Worksheet string `json:"worksheet"`

	// Pass is true when every problem passed.
	Pass bool `json:"pass"`

	Problems []ProblemResult `json:"problems"`
}

// NewResult creates a passing, empty result.
func NewResult(worksheet string) *Result {
	return &Result{Worksheet: worksheet, Pass: true, Problems: []ProblemResult{}}
}

// Add appends a problem result; a failing problem fails the worksheet.
func (r *Result) Add(p ProblemResult) {
	r.Problems = append(r.Problems, p)
	if !p.Pass {
		r.Pass = false
	}
}

// Failed returns the problems that did not pass.
func (r *Result) Failed() []ProblemResult {
	var out []ProblemResult
	for _, p := range r.Problems {
		if !p.Pass {
			out = append(out, p)
		}
	}
	return out
}
