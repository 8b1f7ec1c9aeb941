package numtheory

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrNoCongruences is returned by SolveCRT for an empty system.
var ErrNoCongruences = errors.New("no congruences given")

// Congruence is the constraint x ≡ A (mod M).
type Congruence struct {
	A *big.Int
	M *big.Int
}

// NotCoprimeError reports the first pair of moduli sharing a factor.
type NotCoprimeError struct {
	I, J   int
	Mi, Mj *big.Int
	GCD    *big.Int
}

func (e *NotCoprimeError) Error() string {
	return fmt.Sprintf("moduli m%d=%s and m%d=%s share factor %s", e.I+1, e.Mi, e.J+1, e.Mj, e.GCD)
}

// CRTTerm is the per-congruence data of a CRT solution.
type CRTTerm struct {
	A       *big.Int
	M       *big.Int
	Partial *big.Int // M / mᵢ
	Inverse *big.Int // bᵢ with (M/mᵢ)·bᵢ ≡ 1 (mod mᵢ)
}

// CRTSolution is the combined congruence x ≡ X (mod Product).
type CRTSolution struct {
	Terms   []CRTTerm
	Product *big.Int
	// Sum is Σ aᵢ·(M/mᵢ)·bᵢ before reduction.
	Sum *big.Int
	X   *big.Int
}

// Residues returns X mod mᵢ for every term.
func (s *CRTSolution) Residues() []*big.Int {
	out := make([]*big.Int, len(s.Terms))
	for i, t := range s.Terms {
		out[i] = new(big.Int).Mod(s.X, t.M)
	}
	return out
}

// CheckPairwiseCoprime returns a *NotCoprimeError for the first pair of
// moduli with a common factor, in (i, j) lexical order.
func CheckPairwiseCoprime(moduli []*big.Int) error {
	one := big.NewInt(1)
	for i := 0; i < len(moduli); i++ {
		for j := i + 1; j < len(moduli); j++ {
			g := GCD(moduli[i], moduli[j])
			if g.Cmp(one) != 0 {
				return &NotCoprimeError{I: i, J: j, Mi: moduli[i], Mj: moduli[j], GCD: g}
			}
		}
	}
	return nil
}

// SolveCRT combines x ≡ aᵢ (mod mᵢ) for pairwise coprime moduli.
//
// Zero moduli yield ErrZeroModulus and non-coprime moduli a
// *NotCoprimeError; both are checked before any computation.
func SolveCRT(system []Congruence) (*CRTSolution, error) {
	if len(system) == 0 {
		return nil, ErrNoCongruences
	}

	moduli := make([]*big.Int, len(system))
	for i, c := range system {
		if c.M.Sign() == 0 {
			return nil, ErrZeroModulus
		}
		moduli[i] = new(big.Int).Abs(c.M)
	}
	if err := CheckPairwiseCoprime(moduli); err != nil {
		return nil, err
	}

	product := big.NewInt(1)
	for _, m := range moduli {
		product.Mul(product, m)
	}

	sol := &CRTSolution{
		Terms:   make([]CRTTerm, len(system)),
		Product: product,
		Sum:     new(big.Int),
	}

	for i, c := range system {
		partial := new(big.Int).Quo(product, moduli[i])
		inv, err := Inverse(partial, moduli[i])
		if err != nil {
			return nil, fmt.Errorf("congruence %d: %w", i+1, err)
		}
		sol.Terms[i] = CRTTerm{
			A:       new(big.Int).Set(c.A),
			M:       moduli[i],
			Partial: partial,
			Inverse: inv,
		}

		term := new(big.Int).Mul(c.A, partial)
		term.Mul(term, inv)
		sol.Sum.Add(sol.Sum, term)
	}

	sol.X = new(big.Int).Mod(sol.Sum, product)
	return sol, nil
}
