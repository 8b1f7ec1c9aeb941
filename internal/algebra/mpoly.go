package algebra

import (
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/aquaa/alphamath/internal/poly"
)

// MPoly is a polynomial over ℚ in a fixed, sorted list of variables.
// Terms are keyed by their exponent vector; zero coefficients are never
// stored.
type MPoly struct {
	vars  []string
	terms map[string]*term
}

type term struct {
	exps []int
	coef *big.Rat
}

func key(exps []int) string {
	var b strings.Builder
	for i, e := range exps {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(e))
	}
	return b.String()
}

// NewMPoly returns the zero polynomial over vars.
func NewMPoly(vars []string) MPoly {
	return MPoly{vars: vars, terms: map[string]*term{}}
}

// ConstMPoly returns the constant c over vars.
func ConstMPoly(vars []string, c *big.Rat) MPoly {
	p := NewMPoly(vars)
	p.addTerm(make([]int, len(vars)), c)
	return p
}

// VarMPoly returns the polynomial consisting of the single variable name.
func VarMPoly(vars []string, name string) (MPoly, bool) {
	p := NewMPoly(vars)
	for i, v := range vars {
		if v == name {
			exps := make([]int, len(vars))
			exps[i] = 1
			p.addTerm(exps, big.NewRat(1, 1))
			return p, true
		}
	}
	return p, false
}

// Vars returns the variable list p is defined over.
func (p MPoly) Vars() []string { return p.vars }

func (p MPoly) addTerm(exps []int, c *big.Rat) {
	if c.Sign() == 0 {
		return
	}
	k := key(exps)
	if t, ok := p.terms[k]; ok {
		t.coef.Add(t.coef, c)
		if t.coef.Sign() == 0 {
			delete(p.terms, k)
		}
		return
	}
	p.terms[k] = &term{exps: append([]int(nil), exps...), coef: new(big.Rat).Set(c)}
}

// IsZero reports whether p has no terms.
func (p MPoly) IsZero() bool { return len(p.terms) == 0 }

// Constant returns p's value and true when p has no variable terms.
func (p MPoly) Constant() (*big.Rat, bool) {
	switch len(p.terms) {
	case 0:
		return new(big.Rat), true
	case 1:
		for _, t := range p.terms {
			if t.total() == 0 {
				return new(big.Rat).Set(t.coef), true
			}
		}
	}
	return nil, false
}

func (t *term) total() int {
	n := 0
	for _, e := range t.exps {
		n += e
	}
	return n
}

// Add returns p + q.
func (p MPoly) Add(q MPoly) MPoly {
	out := NewMPoly(p.vars)
	for _, t := range p.terms {
		out.addTerm(t.exps, t.coef)
	}
	for _, t := range q.terms {
		out.addTerm(t.exps, t.coef)
	}
	return out
}

// Neg returns -p.
func (p MPoly) Neg() MPoly {
	return p.Scale(big.NewRat(-1, 1))
}

// Sub returns p - q.
func (p MPoly) Sub(q MPoly) MPoly { return p.Add(q.Neg()) }

// Scale returns c·p.
func (p MPoly) Scale(c *big.Rat) MPoly {
	out := NewMPoly(p.vars)
	for _, t := range p.terms {
		out.addTerm(t.exps, new(big.Rat).Mul(t.coef, c))
	}
	return out
}

// Mul returns p·q.
func (p MPoly) Mul(q MPoly) MPoly {
	out := NewMPoly(p.vars)
	exps := make([]int, len(p.vars))
	for _, a := range p.terms {
		for _, b := range q.terms {
			for i := range exps {
				exps[i] = a.exps[i] + b.exps[i]
			}
			out.addTerm(exps, new(big.Rat).Mul(a.coef, b.coef))
		}
	}
	return out
}

// Pow returns p^n for n ≥ 0.
func (p MPoly) Pow(n int) MPoly {
	out := ConstMPoly(p.vars, big.NewRat(1, 1))
	base := p
	for n > 0 {
		if n&1 == 1 {
			out = out.Mul(base)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base)
		}
	}
	return out
}

// TotalDegree returns the largest total degree of the terms of p.
func (p MPoly) TotalDegree() int {
	d := 0
	for _, t := range p.terms {
		d = max(d, t.total())
	}
	return d
}

// Degrees returns the highest exponent of each variable in p.
func (p MPoly) Degrees() []int {
	deg := make([]int, len(p.vars))
	for _, t := range p.terms {
		for i, e := range t.exps {
			if e > deg[i] {
				deg[i] = e
			}
		}
	}
	return deg
}

// Used returns the variables that actually occur in p.
func (p MPoly) Used() []string {
	var out []string
	for i, d := range p.Degrees() {
		if d > 0 {
			out = append(out, p.vars[i])
		}
	}
	return out
}

// Homogeneous reports whether every term has the same total degree.
func (p MPoly) Homogeneous() bool {
	deg := -1
	for _, t := range p.terms {
		if deg >= 0 && t.total() != deg {
			return false
		}
		deg = t.total()
	}
	return true
}

// sorted returns the terms in graded order: higher total degree first,
// ties broken by comparing exponents variable by variable.
func (p MPoly) sorted() []*term {
	out := make([]*term, 0, len(p.terms))
	for _, t := range p.terms {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.total() != b.total() {
			return a.total() > b.total()
		}
		for k := range a.exps {
			if a.exps[k] != b.exps[k] {
				return a.exps[k] > b.exps[k]
			}
		}
		return false
	})
	return out
}

// Leading returns the coefficient of the first term in graded order.
func (p MPoly) Leading() *big.Rat {
	ts := p.sorted()
	if len(ts) == 0 {
		return new(big.Rat)
	}
	return new(big.Rat).Set(ts[0].coef)
}

// Content returns the positive rational whose removal leaves coprime
// integer coefficients.
func (p MPoly) Content() *big.Rat {
	num := new(big.Int)
	den := big.NewInt(1)
	for _, t := range p.terms {
		num.GCD(nil, nil, num, new(big.Int).Abs(t.coef.Num()))
		g := new(big.Int).GCD(nil, nil, den, t.coef.Denom())
		den.Mul(den, new(big.Int).Quo(t.coef.Denom(), g))
	}
	if num.Sign() == 0 {
		return big.NewRat(1, 1)
	}
	return new(big.Rat).SetFrac(num, den)
}

// MinDegrees returns, per variable, the smallest exponent over all terms:
// the exponents of the largest monomial dividing p.
func (p MPoly) MinDegrees() []int {
	lo := make([]int, len(p.vars))
	first := true
	for _, t := range p.terms {
		for i, e := range t.exps {
			if first || e < lo[i] {
				lo[i] = e
			}
		}
		first = false
	}
	return lo
}

// DivMonomial divides every term by the monomial with exponents exps,
// which must divide p.
func (p MPoly) DivMonomial(exps []int) MPoly {
	out := NewMPoly(p.vars)
	e := make([]int, len(p.vars))
	for _, t := range p.terms {
		for i := range e {
			e[i] = t.exps[i] - exps[i]
		}
		out.addTerm(e, t.coef)
	}
	return out
}

// Substitute replaces the named variables with exact values.
func (p MPoly) Substitute(values map[string]*big.Rat) MPoly {
	out := NewMPoly(p.vars)
	for _, t := range p.terms {
		c := new(big.Rat).Set(t.coef)
		exps := append([]int(nil), t.exps...)
		for i, v := range p.vars {
			val, ok := values[v]
			if !ok || exps[i] == 0 {
				continue
			}
			c.Mul(c, ratPow(val, exps[i]))
			exps[i] = 0
		}
		out.addTerm(exps, c)
	}
	return out
}

func ratPow(r *big.Rat, n int) *big.Rat {
	num := new(big.Int).Exp(r.Num(), big.NewInt(int64(n)), nil)
	den := new(big.Int).Exp(r.Denom(), big.NewInt(int64(n)), nil)
	return new(big.Rat).SetFrac(num, den)
}

// Univariate converts p to a poly.Poly in v. Every other variable must be
// absent from p.
func (p MPoly) Univariate(v string) (poly.Poly, bool) {
	idx := -1
	for i, name := range p.vars {
		if name == v {
			idx = i
		}
	}
	var coeffs []*big.Rat
	for _, t := range p.terms {
		deg := 0
		for i, e := range t.exps {
			if i == idx {
				deg = e
			} else if e != 0 {
				return poly.Poly{}, false
			}
		}
		for len(coeffs) <= deg {
			coeffs = append(coeffs, new(big.Rat))
		}
		coeffs[deg].Add(coeffs[deg], t.coef)
	}
	return poly.New(v, coeffs...), true
}

// FromUnivariate lifts u into a polynomial over vars. u.Var must be one of
// vars unless u is constant.
func FromUnivariate(vars []string, u poly.Poly) MPoly {
	out := NewMPoly(vars)
	idx := -1
	for i, name := range vars {
		if name == u.Var {
			idx = i
		}
	}
	for d, c := range u.Coeffs() {
		exps := make([]int, len(vars))
		if d > 0 && idx >= 0 {
			exps[idx] = d
		}
		out.addTerm(exps, c)
	}
	return out
}

// String renders p in graded order with superscript exponents and
// implicit multiplication, for example "x² + 2xy + y²".
func (p MPoly) String() string {
	ts := p.sorted()
	if len(ts) == 0 {
		return "0"
	}
	var b strings.Builder
	for i, t := range ts {
		abs := new(big.Rat).Abs(t.coef)
		switch {
		case i == 0 && t.coef.Sign() < 0:
			b.WriteString("-")
		case i > 0 && t.coef.Sign() < 0:
			b.WriteString(" - ")
		case i > 0:
			b.WriteString(" + ")
		}
		b.WriteString(p.monomial(abs, t.exps))
	}
	return b.String()
}

func (p MPoly) monomial(abs *big.Rat, exps []int) string {
	vars := monomialString(p.vars, exps)
	if vars == "" {
		return poly.FormatRat(abs)
	}
	switch {
	case abs.Cmp(big.NewRat(1, 1)) == 0:
		return vars
	case abs.IsInt():
		return abs.Num().String() + vars
	default:
		return "(" + abs.String() + ")" + vars
	}
}

func monomialString(vars []string, exps []int) string {
	var b strings.Builder
	for i, e := range exps {
		if e == 0 {
			continue
		}
		b.WriteString(vars[i])
		if e > 1 {
			b.WriteString(poly.Superscript(e))
		}
	}
	return b.String()
}

// termCount is the number of stored terms.
func (p MPoly) termCount() int { return len(p.terms) }
