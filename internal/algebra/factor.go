package algebra

import (
	"math/big"
	"sort"
	"strings"

	"github.com/aquaa/alphamath/internal/poly"
)

// Factor is one factor of a factorisation, raised to Exp.
type Factor struct {
	Text  string
	Terms int
	Exp   int
}

// Factored is Coef · Monomial · Π Factors.
type Factored struct {
	Coef     *big.Rat
	Monomial string
	monoVars int
	Factors  []Factor
}

// FactorMPoly factors p over ℚ as far as this package can: numeric content
// and the common monomial always; rational linear factors with
// multiplicity when the rest is univariate, or homogeneous in two
// variables. Anything left stays as a single irreducible-looking factor.
func FactorMPoly(p MPoly) Factored {
	if p.IsZero() {
		return Factored{Coef: new(big.Rat)}
	}

	c := p.Content()
	if p.Leading().Sign() < 0 {
		c.Neg(c)
	}
	rest := p.Scale(new(big.Rat).Inv(c))
	mono := rest.MinDegrees()
	rest = rest.DivMonomial(mono)

	f := Factored{Coef: c, Monomial: monomialString(p.vars, mono)}
	for _, e := range mono {
		if e > 0 {
			f.monoVars++
		}
	}

	used := rest.Used()
	switch {
	case len(used) == 0:
	case len(used) == 1:
		u, _ := rest.Univariate(used[0])
		f.addUnivariate(poly.Factor(u), func(root *big.Rat) MPoly {
			return FromUnivariate(p.vars, poly.IntegerFactor(used[0], root))
		}, func(r poly.Poly) MPoly {
			return FromUnivariate(p.vars, r)
		})
	case len(used) == 2 && rest.Homogeneous():
		x, y := used[0], used[1]
		u, _ := rest.Substitute(map[string]*big.Rat{y: big.NewRat(1, 1)}).Univariate(x)
		yv, _ := VarMPoly(p.vars, y)
		xv, _ := VarMPoly(p.vars, x)
		f.addUnivariate(poly.Factor(u), func(root *big.Rat) MPoly {
			// b·x - a·y for the root a/b of p(x, 1).
			bx := xv.Scale(new(big.Rat).SetInt(root.Denom()))
			return bx.Sub(yv.Scale(new(big.Rat).SetInt(root.Num())))
		}, func(r poly.Poly) MPoly {
			return homogenize(r, xv, yv)
		})
	default:
		f.Factors = append(f.Factors, Factor{Text: rest.String(), Terms: rest.termCount(), Exp: 1})
	}
	return f
}

func (f *Factored) addUnivariate(fac poly.Factorization, linear func(*big.Rat) MPoly, rest func(poly.Poly) MPoly) {
	f.Coef.Mul(f.Coef, fac.Unit)
	roots := append([]poly.RootMultiplicity(nil), fac.Roots...)
	sort.Slice(roots, func(i, j int) bool { return roots[i].Root.Cmp(roots[j].Root) > 0 })
	for _, rm := range roots {
		l := linear(rm.Root)
		f.Factors = append(f.Factors, Factor{Text: l.String(), Terms: l.termCount(), Exp: rm.Multiplicity})
	}
	if fac.Rest.Degree() >= 1 {
		r := rest(fac.Rest)
		f.Factors = append(f.Factors, Factor{Text: r.String(), Terms: r.termCount(), Exp: 1})
	}
}

// homogenize turns r(x) of degree k into Σ cᵢ xⁱ y^(k-i).
func homogenize(r poly.Poly, x, y MPoly) MPoly {
	out := NewMPoly(x.vars)
	k := r.Degree()
	for i, c := range r.Coeffs() {
		if c.Sign() == 0 {
			continue
		}
		out = out.Add(x.Pow(i).Mul(y.Pow(k - i)).Scale(c))
	}
	return out
}

func (f Factored) coefPrefix() string {
	switch {
	case f.Coef.Cmp(big.NewRat(1, 1)) == 0:
		return ""
	case f.Coef.Cmp(big.NewRat(-1, 1)) == 0:
		return "-"
	case f.Coef.IsInt():
		return f.Coef.Num().String()
	default:
		return "(" + f.Coef.String() + ")"
	}
}

// String renders the factorisation, for example "2x(x - 1)²(x + 2)".
func (f Factored) String() string {
	if f.Coef.Sign() == 0 {
		return "0"
	}
	prefix := f.coefPrefix()
	if f.Monomial == "" && len(f.Factors) == 0 {
		return poly.FormatRat(f.Coef)
	}
	if f.Monomial == "" && len(f.Factors) == 1 && f.Factors[0].Exp == 1 && prefix == "" {
		return f.Factors[0].Text
	}

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(f.Monomial)
	for _, fc := range f.Factors {
		if fc.Terms > 1 {
			b.WriteString("(" + fc.Text + ")")
		} else {
			b.WriteString(fc.Text)
		}
		if fc.Exp > 1 {
			b.WriteString(poly.Superscript(fc.Exp))
		}
	}
	return b.String()
}

func (f Factored) isSum() bool {
	return f.coefPrefix() == "" && f.Monomial == "" && len(f.Factors) == 1 &&
		f.Factors[0].Exp == 1 && f.Factors[0].Terms > 1
}

func (f Factored) parts() int {
	n := f.monoVars + len(f.Factors)
	if p := f.coefPrefix(); p != "" && p != "-" {
		n++
	}
	return n
}

// numerator renders f for the left of a "/".
func (f Factored) numerator() string {
	if f.isSum() {
		return "(" + f.String() + ")"
	}
	return f.String()
}

// denominator renders f for the right of a "/".
func (f Factored) denominator() string {
	if f.isSum() || f.parts() > 1 {
		return "(" + f.String() + ")"
	}
	return f.String()
}
