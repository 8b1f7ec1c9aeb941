package numtheory

import "math/big"

// MultiplierResult is the smallest c ≥ 1 such that d divides n·c.
type MultiplierResult struct {
	N, D *big.Int

	// AlreadyDivisible is true when d divides n, in which case
	// Multiplier is 1.
	AlreadyDivisible bool

	GCD        *big.Int
	Multiplier *big.Int
	Product    *big.Int // n·c
	Quotient   *big.Int // n·c / d
}

// SmallestMultiplier finds the least positive c with d | n·c, which is
// |d| / gcd(n, d).
func SmallestMultiplier(n, d *big.Int) (*MultiplierResult, error) {
	if d.Sign() == 0 {
		return nil, ErrDivisionByZero
	}

	res := &MultiplierResult{
		N:   new(big.Int).Set(n),
		D:   new(big.Int).Set(d),
		GCD: GCD(n, d),
	}

	if new(big.Int).Rem(n, d).Sign() == 0 {
		res.AlreadyDivisible = true
		res.Multiplier = big.NewInt(1)
	} else {
		res.Multiplier = new(big.Int).Quo(new(big.Int).Abs(d), res.GCD)
	}

	res.Product = new(big.Int).Mul(n, res.Multiplier)
	res.Quotient = new(big.Int).Quo(res.Product, d)
	return res, nil
}
