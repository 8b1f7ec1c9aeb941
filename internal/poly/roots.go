package poly

import (
	"context"
	"math/big"
	"sort"
)

// maxDivisorSearch bounds the integers whose divisors the rational root
// search will enumerate.
var maxDivisorSearch = big.NewInt(1_000_000_000_000)

// maxRootCandidates bounds the number of p/q pairs the rational root search
// will evaluate.
const maxRootCandidates = 100_000

// RootMultiplicity is a rational root with its multiplicity.
type RootMultiplicity struct {
	Root         *big.Rat
	Multiplicity int
}

// Factorization is p = Unit · Π (v - rᵢ)^mᵢ · Rest, where Rest has no
// rational roots. Linear factors with rational roots r = a/b are kept in
// root form; see IntegerFactor for the integer-coefficient form b·v - a.
type Factorization struct {
	Unit  *big.Rat
	Roots []RootMultiplicity
	Rest  Poly
}

// Factor extracts every rational root of p with multiplicity.
func Factor(p Poly) Factorization {
	f, _ := FactorContext(context.Background(), p)
	return f
}

// FactorContext is Factor that stops with ctx's error when ctx is done
// during the root search.
func FactorContext(ctx context.Context, p Poly) (Factorization, error) {
	if p.IsZero() {
		return Factorization{Unit: new(big.Rat), Rest: p}, nil
	}
	unit, rest := p.Primitive()
	f := Factorization{Unit: unit}

	roots, err := RationalRootsContext(ctx, rest)
	if err != nil {
		return Factorization{}, err
	}
	for _, r := range roots {
		mult := 0
		lin := New(p.Var, new(big.Rat).Neg(r), big.NewRat(1, 1))
		for rest.Degree() >= 1 {
			q, rem, _ := rest.DivMod(lin)
			if !rem.IsZero() {
				break
			}
			rest = q
			mult++
		}
		if mult > 0 {
			f.Roots = append(f.Roots, RootMultiplicity{Root: r, Multiplicity: mult})
		}
	}

	// Dividing by v - a/b leaves fractional coefficients; move the content
	// into the unit so Rest stays primitive.
	u, prim := rest.Primitive()
	f.Unit = new(big.Rat).Mul(f.Unit, u)
	f.Rest = prim
	for _, rm := range f.Roots {
		// (v - a/b) = (b·v - a)/b; move 1/b^m into the unit.
		d := new(big.Rat).SetInt(rm.Root.Denom())
		for i := 0; i < rm.Multiplicity; i++ {
			f.Unit.Quo(f.Unit, d)
		}
	}
	return f, nil
}

// IntegerFactor returns b·v - a for the root a/b.
func IntegerFactor(v string, root *big.Rat) Poly {
	return New(v, new(big.Rat).SetInt(new(big.Int).Neg(root.Num())), new(big.Rat).SetInt(root.Denom()))
}

// RationalRoots returns the distinct rational roots of p in ascending order.
//
// Candidates come from the rational root theorem applied to the primitive
// integer form of p. Polynomials whose constant or leading coefficient is
// too large to enumerate divisors for, or whose coefficients have too many
// divisor pairs to try, report only the root 0, if present.
func RationalRoots(p Poly) []*big.Rat {
	roots, _ := RationalRootsContext(context.Background(), p)
	return roots
}

// RationalRootsContext is RationalRoots that checks ctx between candidates.
func RationalRootsContext(ctx context.Context, p Poly) ([]*big.Rat, error) {
	if p.Degree() < 1 {
		return nil, nil
	}
	_, prim := p.Primitive()

	var roots []*big.Rat
	// Strip factors of v first so the constant term is nonzero.
	shift := 0
	for shift < len(prim.coeffs) && prim.coeffs[shift].Sign() == 0 {
		shift++
	}
	if shift > 0 {
		roots = append(roots, new(big.Rat))
		prim = New(prim.Var, prim.coeffs[shift:]...)
	}
	if prim.Degree() < 1 {
		return roots, nil
	}

	a0 := new(big.Int).Abs(prim.coeffs[0].Num())
	an := new(big.Int).Abs(prim.Leading().Num())
	if a0.Cmp(maxDivisorSearch) > 0 || an.Cmp(maxDivisorSearch) > 0 {
		return roots, nil
	}
	nums, dens := divisors(a0), divisors(an)
	if len(nums)*len(dens) > maxRootCandidates {
		return roots, nil
	}

	seen := map[string]bool{}
	for _, num := range nums {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, den := range dens {
			for _, sign := range []int64{1, -1} {
				r := new(big.Rat).SetFrac(new(big.Int).Mul(num, big.NewInt(sign)), den)
				key := r.String()
				if seen[key] {
					continue
				}
				seen[key] = true
				if prim.EvalRat(r).Sign() == 0 {
					roots = append(roots, r)
				}
			}
		}
	}

	sort.Slice(roots, func(i, j int) bool { return roots[i].Cmp(roots[j]) < 0 })
	return roots, nil
}

// divisors returns the positive divisors of 0 < n <= maxDivisorSearch in
// ascending order.
func divisors(n *big.Int) []*big.Int {
	m := n.Uint64()
	var small, large []*big.Int
	for i := uint64(1); i*i <= m; i++ {
		if m%i != 0 {
			continue
		}
		small = append(small, new(big.Int).SetUint64(i))
		if q := m / i; q != i {
			large = append(large, new(big.Int).SetUint64(q))
		}
	}
	for i := len(large) - 1; i >= 0; i-- {
		small = append(small, large[i])
	}
	return small
}
