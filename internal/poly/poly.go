package poly

import (
	"errors"
	"math"
	"math/big"
)

// ErrZeroDivisor is returned when dividing by the zero polynomial.
var ErrZeroDivisor = errors.New("division by the zero polynomial")

// DefaultVar is the variable name used when none is known.
const DefaultVar = "x"

// Poly is a polynomial in one variable with rational coefficients.
//
// Coefficients are stored in ascending order of degree and trimmed so the
// last entry is nonzero. The zero polynomial has no coefficients and
// degree -1. Poly values are immutable; every operation returns a new one.
type Poly struct {
	Var    string
	coeffs []*big.Rat
}

// New builds a polynomial from ascending coefficients (constant first).
func New(v string, coeffs ...*big.Rat) Poly {
	cp := make([]*big.Rat, len(coeffs))
	for i, c := range coeffs {
		if c == nil {
			cp[i] = new(big.Rat)
			continue
		}
		cp[i] = new(big.Rat).Set(c)
	}
	return trim(Poly{Var: varOrDefault(v), coeffs: cp})
}

// FromInts builds a polynomial from ascending int64 coefficients.
func FromInts(v string, coeffs ...int64) Poly {
	rs := make([]*big.Rat, len(coeffs))
	for i, c := range coeffs {
		rs[i] = new(big.Rat).SetInt64(c)
	}
	return New(v, rs...)
}

// Zero returns the zero polynomial.
func Zero(v string) Poly {
	return Poly{Var: varOrDefault(v)}
}

// Constant returns the constant polynomial c.
func Constant(v string, c *big.Rat) Poly {
	return New(v, c)
}

// Monomial returns c·v^deg.
func Monomial(v string, c *big.Rat, deg int) Poly {
	cs := make([]*big.Rat, deg+1)
	for i := range cs {
		cs[i] = new(big.Rat)
	}
	cs[deg].Set(c)
	return trim(Poly{Var: varOrDefault(v), coeffs: cs})
}

func varOrDefault(v string) string {
	if v == "" {
		return DefaultVar
	}
	return v
}

func trim(p Poly) Poly {
	n := len(p.coeffs)
	for n > 0 && p.coeffs[n-1].Sign() == 0 {
		n--
	}
	p.coeffs = p.coeffs[:n]
	return p
}

// Degree returns the degree, or -1 for the zero polynomial.
func (p Poly) Degree() int {
	return len(p.coeffs) - 1
}

// IsZero reports whether p is the zero polynomial.
func (p Poly) IsZero() bool {
	return len(p.coeffs) == 0
}

// Coeff returns a copy of the coefficient of v^i.
func (p Poly) Coeff(i int) *big.Rat {
	if i < 0 || i >= len(p.coeffs) {
		return new(big.Rat)
	}
	return new(big.Rat).Set(p.coeffs[i])
}

// Coeffs returns copies of the ascending coefficients.
func (p Poly) Coeffs() []*big.Rat {
	out := make([]*big.Rat, len(p.coeffs))
	for i, c := range p.coeffs {
		out[i] = new(big.Rat).Set(c)
	}
	return out
}

// Leading returns the leading coefficient (zero for the zero polynomial).
func (p Poly) Leading() *big.Rat {
	return p.Coeff(p.Degree())
}

// WithVar returns p renamed to variable v.
func (p Poly) WithVar(v string) Poly {
	p.Var = varOrDefault(v)
	return p
}

// Equal reports coefficient-wise equality; variable names are ignored.
func (p Poly) Equal(q Poly) bool {
	if len(p.coeffs) != len(q.coeffs) {
		return false
	}
	for i := range p.coeffs {
		if p.coeffs[i].Cmp(q.coeffs[i]) != 0 {
			return false
		}
	}
	return true
}

// Add returns p + q.
func (p Poly) Add(q Poly) Poly {
	n := max(len(p.coeffs), len(q.coeffs))
	out := make([]*big.Rat, n)
	for i := range out {
		out[i] = new(big.Rat).Add(p.Coeff(i), q.Coeff(i))
	}
	return trim(Poly{Var: p.Var, coeffs: out})
}

// Sub returns p - q.
func (p Poly) Sub(q Poly) Poly {
	return p.Add(q.Neg())
}

// Neg returns -p.
func (p Poly) Neg() Poly {
	return p.Scale(big.NewRat(-1, 1))
}

// Scale returns c·p.
func (p Poly) Scale(c *big.Rat) Poly {
	out := make([]*big.Rat, len(p.coeffs))
	for i, a := range p.coeffs {
		out[i] = new(big.Rat).Mul(a, c)
	}
	return trim(Poly{Var: p.Var, coeffs: out})
}

// Mul returns p·q.
func (p Poly) Mul(q Poly) Poly {
	if p.IsZero() || q.IsZero() {
		return Zero(p.Var)
	}
	out := make([]*big.Rat, len(p.coeffs)+len(q.coeffs)-1)
	for i := range out {
		out[i] = new(big.Rat)
	}
	for i, a := range p.coeffs {
		for j, b := range q.coeffs {
			out[i+j].Add(out[i+j], new(big.Rat).Mul(a, b))
		}
	}
	return trim(Poly{Var: p.Var, coeffs: out})
}

// Pow returns p^n for n ≥ 0.
func (p Poly) Pow(n int) Poly {
	out := Constant(p.Var, big.NewRat(1, 1))
	for i := 0; i < n; i++ {
		out = out.Mul(p)
	}
	return out
}

// DivMod performs standard division over ℚ: p = q·d + r with deg r < deg d.
func (p Poly) DivMod(d Poly) (q, r Poly, err error) {
	if d.IsZero() {
		return Poly{}, Poly{}, ErrZeroDivisor
	}
	q = Zero(p.Var)
	r = p
	lead := d.Leading()
	for !r.IsZero() && r.Degree() >= d.Degree() {
		shift := r.Degree() - d.Degree()
		c := new(big.Rat).Quo(r.Leading(), lead)
		t := Monomial(p.Var, c, shift)
		q = q.Add(t)
		r = r.Sub(t.Mul(d))
	}
	return q, r, nil
}

// Derivative returns dp/dv.
func (p Poly) Derivative() Poly {
	if p.Degree() < 1 {
		return Zero(p.Var)
	}
	out := make([]*big.Rat, len(p.coeffs)-1)
	for i := 1; i < len(p.coeffs); i++ {
		out[i-1] = new(big.Rat).Mul(p.coeffs[i], new(big.Rat).SetInt64(int64(i)))
	}
	return trim(Poly{Var: p.Var, coeffs: out})
}

// EvalRat evaluates p at x exactly (Horner's rule).
func (p Poly) EvalRat(x *big.Rat) *big.Rat {
	acc := new(big.Rat)
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		acc.Mul(acc, x)
		acc.Add(acc, p.coeffs[i])
	}
	return acc
}

// EvalFloat evaluates p at x in float64 arithmetic.
func (p Poly) EvalFloat(x float64) float64 {
	acc := 0.0
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		c, _ := p.coeffs[i].Float64()
		acc = acc*x + c
	}
	return acc
}

// EvalComplex evaluates p at z.
func (p Poly) EvalComplex(z complex128) complex128 {
	var acc complex128
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		c, _ := p.coeffs[i].Float64()
		acc = acc*z + complex(c, 0)
	}
	return acc
}

// IsInteger reports whether every coefficient is an integer.
func (p Poly) IsInteger() bool {
	for _, c := range p.coeffs {
		if !c.IsInt() {
			return false
		}
	}
	return true
}

// DenominatorLCM returns the lcm of the coefficient denominators
// (1 for the zero polynomial).
func (p Poly) DenominatorLCM() *big.Int {
	l := big.NewInt(1)
	for _, c := range p.coeffs {
		d := c.Denom()
		g := new(big.Int).GCD(nil, nil, l, d)
		l.Mul(l, new(big.Int).Quo(d, g))
	}
	return l
}

// ClearDenominators multiplies p by the lcm of its denominators so that
// every coefficient is an integer, and returns the factor used.
func (p Poly) ClearDenominators() (Poly, *big.Int) {
	l := p.DenominatorLCM()
	return p.Scale(new(big.Rat).SetInt(l)), l
}

// Content returns the positive rational c such that p/c has coprime integer
// coefficients. The content of the zero polynomial is 1.
func (p Poly) Content() *big.Rat {
	if p.IsZero() {
		return big.NewRat(1, 1)
	}
	num := new(big.Int)
	den := big.NewInt(1)
	for _, c := range p.coeffs {
		if c.Sign() == 0 {
			continue
		}
		num.GCD(nil, nil, num, new(big.Int).Abs(c.Num()))
		g := new(big.Int).GCD(nil, nil, den, c.Denom())
		den.Mul(den, new(big.Int).Quo(c.Denom(), g))
	}
	return new(big.Rat).SetFrac(num, den)
}

// Primitive splits p into content·sign and a primitive integer polynomial
// with positive leading coefficient: p = unit·prim.
func (p Poly) Primitive() (unit *big.Rat, prim Poly) {
	if p.IsZero() {
		return big.NewRat(1, 1), p
	}
	unit = p.Content()
	if p.Leading().Sign() < 0 {
		unit.Neg(unit)
	}
	return unit, p.Scale(new(big.Rat).Inv(unit))
}

// Monic returns p divided by its leading coefficient.
func (p Poly) Monic() Poly {
	if p.IsZero() {
		return p
	}
	return p.Scale(new(big.Rat).Inv(p.Leading()))
}

// GCD returns the monic greatest common divisor of p and q.
// gcd(0, 0) is the zero polynomial.
func GCD(p, q Poly) Poly {
	a, b := p, q
	for !b.IsZero() {
		_, r, _ := a.DivMod(b)
		a, b = b, r
	}
	return a.Monic()
}

// Finite reports whether every coefficient converts to a finite float64.
func (p Poly) Finite() bool {
	for _, c := range p.coeffs {
		f, _ := c.Float64()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return false
		}
	}
	return true
}
