package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/aquaa/alphamath/internal/explain"
)

// Worksheet is a named list of problems.
type Worksheet struct {
	// Name uniquely identifies the worksheet and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the worksheet covers.
	Description string `yaml:"description"`

	Problems []Problem `yaml:"problems"`
}

// Problem is one solver input and its expectations.
type Problem struct {
	Name string `yaml:"name"`

	// Solver is a solver name or menu key.
	Solver string `yaml:"solver"`

	Input string `yaml:"input"`

	Expect Expect `yaml:"expect"`
}

// Expect describes an acceptable answer. Every field is optional; an empty
// Expect only checks that the solver did not fail internally.
type Expect struct {
	// OK requires the run to succeed (true) or fail (false).
	OK *bool `yaml:"ok,omitempty"`

	// Failure is the expected failure kind: "input" or "internal".
	Failure string `yaml:"failure,omitempty"`

	// Contains lists substrings the rendered answer must include.
	Contains []string `yaml:"contains,omitempty"`

	// NotContains lists substrings the rendered answer must not include.
	NotContains []string `yaml:"not_contains,omitempty"`

	// Steps are matched against the recorded step records.
	Steps []StepExpect `yaml:"steps,omitempty"`
}

// StepExpect matches step records by op.
type StepExpect struct {
	Op string `yaml:"op"`

	// Result, when set, must equal the result of some step with Op.
	Result *string `yaml:"result,omitempty"`

	// Operands, when set, must equal the operands of that same step.
	Operands []string `yaml:"operands,omitempty"`

	// Count, when set, is the exact number of steps with Op.
	Count *int `yaml:"count,omitempty"`
}

// LoadWorksheet reads and validates a worksheet. Unknown fields are
// rejected, so a misspelt "expect:" key is an error rather than a silently
// empty expectation.
func LoadWorksheet(path string) (*Worksheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet: %w", err)
	}
	ws, err := ParseWorksheet(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ws, nil
}

// ParseWorksheet parses worksheet YAML.
func ParseWorksheet(data []byte) (*Worksheet, error) {
	var ws Worksheet
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&ws); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateWorksheet(&ws); err != nil {
		return nil, fmt.Errorf("invalid worksheet: %w", err)
	}
	return &ws, nil
}

// ErrNoWorksheets is returned by LoadDir for a directory without worksheets.
var ErrNoWorksheets = errors.New("no worksheets found")

// LoadDir loads every *.yaml and *.yml worksheet in dir, sorted by file
// name.
func LoadDir(dir string) ([]*Worksheet, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		m, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, m...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoWorksheets, dir)
	}
	sort.Strings(paths)

	sheets := make([]*Worksheet, 0, len(paths))
	for _, p := range paths {
		ws, err := LoadWorksheet(p)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, ws)
	}
	return sheets, nil
}

func validateWorksheet(ws *Worksheet) error {
	if ws.Name == "" {
		return fmt.Errorf("name is required")
	}
	if ws.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(ws.Problems) == 0 {
		return fmt.Errorf("problems list is required and must be non-empty")
	}

	seen := make(map[string]bool)
	for i, p := range ws.Problems {
		if p.Name == "" {
			return fmt.Errorf("problems[%d]: name is required", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("problems[%d]: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = true
		if p.Solver == "" {
			return fmt.Errorf("problems[%d]: solver is required", i)
		}
		if err := validateExpect(i, p.Expect); err != nil {
			return err
		}
	}
	return nil
}

func validateExpect(i int, e Expect) error {
	switch explain.FailureKind(e.Failure) {
	case "", explain.FailInput, explain.FailInternal:
	default:
		return fmt.Errorf("problems[%d].expect: failure must be %q or %q", i, explain.FailInput, explain.FailInternal)
	}
	if e.Failure != "" && e.OK != nil && *e.OK {
		return fmt.Errorf("problems[%d].expect: ok: true contradicts failure", i)
	}
	for j, s := range e.Steps {
		if s.Op == "" {
			return fmt.Errorf("problems[%d].expect.steps[%d]: op is required", i, j)
		}
		if s.Count != nil && *s.Count < 0 {
			return fmt.Errorf("problems[%d].expect.steps[%d]: count must be >= 0", i, j)
		}
	}
	return nil
}
