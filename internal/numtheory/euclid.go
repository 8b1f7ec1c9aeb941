package numtheory

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrZeroModulus is returned when a modulus of zero is supplied.
var ErrZeroModulus = errors.New("modulus cannot be zero")

// ErrDivisionByZero is returned when a divisor of zero is supplied.
var ErrDivisionByZero = errors.New("cannot divide by zero")

// MaxListedSolutions bounds the explicit solution list of a congruence.
// A congruence with gcd d has d solutions; beyond this many only the count
// is reported.
const MaxListedSolutions = 1000

// EuclidStep is one division a = quotient·m + remainder of the descent.
type EuclidStep struct {
	A         *big.Int
	M         *big.Int
	Quotient  *big.Int
	Remainder *big.Int
}

// Bezout holds d = gcd(a, m) and coefficients with a·P + m·Q = D.
type Bezout struct {
	A     *big.Int
	M     *big.Int
	D     *big.Int
	P     *big.Int
	Q     *big.Int
	Trace []EuclidStep
}

// Check reports whether a·P + m·Q equals D.
func (b Bezout) Check() bool {
	return b.Combination().Cmp(b.D) == 0
}

// Combination returns a·P + m·Q.
func (b Bezout) Combination() *big.Int {
	ap := new(big.Int).Mul(b.A, b.P)
	mq := new(big.Int).Mul(b.M, b.Q)
	return ap.Add(ap, mq)
}

// ExtendedGCD computes d = gcd(a, m) ≥ 0 and Bézout coefficients p, q.
// Either argument may be zero or negative; gcd(0, 0) is 0.
func ExtendedGCD(a, m *big.Int) Bezout {
	oldR, r := new(big.Int).Set(a), new(big.Int).Set(m)
	oldS, s := big.NewInt(1), big.NewInt(0)
	oldT, t := big.NewInt(0), big.NewInt(1)

	var trace []EuclidStep
	for r.Sign() != 0 {
		q, rem := new(big.Int).DivMod(oldR, r, new(big.Int))
		trace = append(trace, EuclidStep{
			A:         new(big.Int).Set(oldR),
			M:         new(big.Int).Set(r),
			Quotient:  new(big.Int).Set(q),
			Remainder: new(big.Int).Set(rem),
		})

		oldR, r = r, rem
		oldS, s = s, new(big.Int).Sub(oldS, new(big.Int).Mul(q, s))
		oldT, t = t, new(big.Int).Sub(oldT, new(big.Int).Mul(q, t))
	}

	if oldR.Sign() < 0 {
		oldR.Neg(oldR)
		oldS.Neg(oldS)
		oldT.Neg(oldT)
	}

	return Bezout{
		A:     new(big.Int).Set(a),
		M:     new(big.Int).Set(m),
		D:     oldR,
		P:     oldS,
		Q:     oldT,
		Trace: trace,
	}
}

// GCD returns gcd(a, b) ≥ 0.
func GCD(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
}

// LCM returns lcm(|a|, |b|); lcm with zero is zero.
func LCM(a, b *big.Int) *big.Int {
	if a.Sign() == 0 || b.Sign() == 0 {
		return new(big.Int)
	}
	g := GCD(a, b)
	out := new(big.Int).Quo(new(big.Int).Abs(a), g)
	return out.Mul(out, new(big.Int).Abs(b))
}

// CongruenceSolution is the outcome of solving a·x ≡ b (mod m).
type CongruenceSolution struct {
	A       *big.Int
	B       *big.Int
	Modulus *big.Int
	Bezout  Bezout

	// Solvable is false when gcd(a, m) does not divide b.
	Solvable bool

	// X0 is the particular solution (b·p/d) mod m.
	X0 *big.Int

	// Solutions lists (x0 + m·j/d) mod m for j = 0..d-1, truncated to
	// MaxListedSolutions entries.
	Solutions []*big.Int

	// Count is the total number of solutions modulo m (equal to d).
	Count *big.Int
}

// Truncated reports whether Solutions omits some of the Count solutions.
func (s *CongruenceSolution) Truncated() bool {
	return s.Count != nil && s.Count.Cmp(big.NewInt(int64(len(s.Solutions)))) > 0
}

// SolveLinearCongruence solves a·x ≡ b (mod m).
// It returns ErrZeroModulus when m is zero. An unsolvable congruence is not
// an error; the solution reports Solvable == false.
func SolveLinearCongruence(a, b, m *big.Int) (*CongruenceSolution, error) {
	if m.Sign() == 0 {
		return nil, ErrZeroModulus
	}
	mod := new(big.Int).Abs(m)

	bez := ExtendedGCD(a, mod)
	sol := &CongruenceSolution{
		A:       new(big.Int).Set(a),
		B:       new(big.Int).Set(b),
		Modulus: mod,
		Bezout:  bez,
	}

	if new(big.Int).Mod(b, bez.D).Sign() != 0 {
		return sol, nil
	}
	sol.Solvable = true

	// d divides b, so b/d·p is the exact value of b·p/d.
	x0 := new(big.Int).Quo(b, bez.D)
	x0.Mul(x0, bez.P)
	x0.Mod(x0, mod)
	sol.X0 = x0
	sol.Count = new(big.Int).Set(bez.D)

	step := new(big.Int).Quo(mod, bez.D)
	limit := int64(MaxListedSolutions)
	if bez.D.IsInt64() && bez.D.Int64() < limit {
		limit = bez.D.Int64()
	}
	for j := int64(0); j < limit; j++ {
		xj := new(big.Int).Mul(step, big.NewInt(j))
		xj.Add(xj, x0)
		xj.Mod(xj, mod)
		sol.Solutions = append(sol.Solutions, xj)
	}

	return sol, nil
}

// Satisfies reports whether a·x ≡ b (mod m).
func Satisfies(a, b, m, x *big.Int) bool {
	if m.Sign() == 0 {
		return false
	}
	diff := new(big.Int).Mul(a, x)
	diff.Sub(diff, b)
	return diff.Mod(diff, new(big.Int).Abs(m)).Sign() == 0
}

// Inverse returns the inverse of a modulo m, or an error when none exists.
func Inverse(a, m *big.Int) (*big.Int, error) {
	sol, err := SolveLinearCongruence(a, big.NewInt(1), m)
	if err != nil {
		return nil, err
	}
	if !sol.Solvable {
		return nil, &NoInverseError{A: new(big.Int).Set(a), M: new(big.Int).Abs(m)}
	}
	return sol.X0, nil
}

// NoInverseError reports that a has no inverse modulo m.
type NoInverseError struct {
	A *big.Int
	M *big.Int
}

func (e *NoInverseError) Error() string {
	return fmt.Sprintf("no inverse of %s modulo %s", e.A, e.M)
}
