package expr

import (
	"errors"
	"fmt"
	"math"
)

// ErrDivisionByZero is returned when a quotient, a reciprocal trig
// function, or 0 raised to a negative power has a zero denominator.
var ErrDivisionByZero = errors.New("division by zero")

// DomainError reports a function applied outside its real domain.
type DomainError struct {
	Fn  string
	Arg float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s(%g) is undefined over the reals", e.Fn, e.Arg)
}

// UnboundError reports a variable with no value in the environment.
type UnboundError struct {
	Name string
}

func (e *UnboundError) Error() string {
	return fmt.Sprintf("variable %q has no value", e.Name)
}

// Env binds variable names to values.
type Env map[string]float64

// Constants are the named constants every Env falls back to.
var Constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// Func evaluates a single-argument function. A NaN or infinite result is
// reported as a DomainError, except for the reciprocal functions where it
// means division by zero.
type Func func(float64) float64

// Functions is the table of callable names.
var Functions = map[string]Func{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"csc":  reciprocal(math.Sin),
	"sec":  reciprocal(math.Cos),
	"cot":  reciprocal(math.Tan),
	"asin": math.Asin,
	"acos": math.Acos,
	"atan": math.Atan,
	"acsc": func(x float64) float64 { return math.Asin(1 / x) },
	"asec": func(x float64) float64 { return math.Acos(1 / x) },
	"acot": func(x float64) float64 {
		if x == 0 {
			return math.Pi / 2
		}
		return math.Atan(1 / x)
	},
	"sqrt": math.Sqrt,
	"ln":   math.Log,
	"log":  math.Log10,
	"exp":  math.Exp,
	"abs":  math.Abs,
}

// zeroTolerance treats |x| below it as an exact zero in denominators, so
// tan(pi/2) and csc(pi) report division by zero instead of a huge number.
const zeroTolerance = 1e-12

var errDivZero = math.Inf(1)

func reciprocal(f Func) Func {
	return func(x float64) float64 {
		v := f(x)
		if math.Abs(v) < zeroTolerance {
			return errDivZero
		}
		return 1 / v
	}
}

// Eval evaluates n in env.
func Eval(n Node, env Env) (float64, error) {
	switch t := n.(type) {
	case *Num:
		f, _ := t.Value.Float64()
		return f, nil

	case *Var:
		if v, ok := env[t.Name]; ok {
			return v, nil
		}
		if v, ok := Constants[t.Name]; ok {
			return v, nil
		}
		return 0, &UnboundError{Name: t.Name}

	case *Neg:
		x, err := Eval(t.X, env)
		return -x, err

	case *Binary:
		l, err := Eval(t.L, env)
		if err != nil {
			return 0, err
		}
		r, err := Eval(t.R, env)
		if err != nil {
			return 0, err
		}
		return binary(t.Op, l, r)

	case *Call:
		fn, ok := Functions[t.Fn]
		if !ok {
			return 0, fmt.Errorf("unknown function %q", t.Fn)
		}
		x, err := Eval(t.Arg, env)
		if err != nil {
			return 0, err
		}
		if t.Fn == "tan" && math.Abs(math.Cos(x)) < zeroTolerance {
			return 0, ErrDivisionByZero
		}
		v := fn(x)
		if v == errDivZero && isReciprocal(t.Fn) {
			return 0, ErrDivisionByZero
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, &DomainError{Fn: t.Fn, Arg: x}
		}
		return v, nil
	}
	return 0, fmt.Errorf("unknown node %T", n)
}

func isReciprocal(fn string) bool {
	return fn == "csc" || fn == "sec" || fn == "cot"
}

func binary(op byte, l, r float64) (float64, error) {
	switch op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	case '/':
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l / r, nil
	case '^':
		if l == 0 && r < 0 {
			return 0, ErrDivisionByZero
		}
		v := math.Pow(l, r)
		if math.IsNaN(v) {
			return 0, &DomainError{Fn: "pow", Arg: l}
		}
		return v, nil
	}
	return 0, fmt.Errorf("unknown operator %q", op)
}
