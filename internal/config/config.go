// Package config loads solver settings from CUE.
//
// The schema and defaults live in the embedded defaults.cue. A user file is
// unified with the schema, so it can only narrow values the schema allows:
//
//	sturm: points: [-3, -1, 0, 1, 3]
//	decimals: quadratic: 6
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/aquaa/alphamath/internal/solver"
)

//go:embed defaults.cue
var defaultsCUE []byte

// Config is the decoded settings tree.
type Config struct {
	Sturm    Sturm    `json:"sturm"`
	Trig     Trig     `json:"trig"`
	Decimals Decimals `json:"decimals"`
	History  History  `json:"history"`
}

type Sturm struct {
	Points  []float64 `json:"points"`
	Epsilon float64   `json:"epsilon"`
}

type Trig struct {
	Tolerance        float64 `json:"tolerance"`
	MaxPiDenominator int64   `json:"max_pi_denominator"`
}

type Decimals struct {
	Quadratic int `json:"quadratic"`
	Cubic     int `json:"cubic"`
}

type History struct {
	Path string `json:"path"`
}

// Error is a configuration problem with its CUE position, when known.
type Error struct {
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// Default returns the embedded defaults.
func Default() (Config, error) {
	return Load("")
}

// Load unifies the file at path with the schema and decodes the result.
// An empty path loads the defaults alone.
func Load(path string) (Config, error) {
	var src []byte
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		src = data
	}
	return Parse(path, src)
}

// Parse is Load for in-memory CUE source; name labels error positions.
func Parse(name string, src []byte) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(defaultsCUE, cue.Filename("defaults.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}
	v := schema.LookupPath(cue.ParsePath("config"))

	if len(src) > 0 {
		user := ctx.CompileBytes(src, cue.Filename(name))
		if err := user.Err(); err != nil {
			return Config{}, formatCUEError(err)
		}
		v = v.Unify(user)
	}

	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Config{}, formatCUEError(err)
	}

	var c Config
	if err := v.Decode(&c); err != nil {
		return Config{}, formatCUEError(err)
	}
	return c, nil
}

// SolverOptions maps the settings onto solver.Options.
func (c Config) SolverOptions() solver.Options {
	return solver.Options{
		SturmPoints:      c.Sturm.Points,
		Epsilon:          c.Sturm.Epsilon,
		TrigTolerance:    c.Trig.Tolerance,
		MaxPiDenominator: c.Trig.MaxPiDenominator,
		QuadraticPlaces:  c.Decimals.Quadratic,
		CubicPlaces:      c.Decimals.Cubic,
	}
}

// formatCUEError keeps the first CUE error and its position.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	cfgErr := &Error{Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		cfgErr.Pos = positions[0]
	}
	return cfgErr
}
