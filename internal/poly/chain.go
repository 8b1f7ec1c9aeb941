package poly

import "math/big"

// DivisionStep is one scaled division of a fraction-free chain.
type DivisionStep struct {
	Multiplier *big.Rat
	Scaled     Poly
	Quotient   Poly
	Remainder  Poly // denominators cleared
}

// Chain is the result of FractionFreeChain.
type Chain struct {
	Steps     []DivisionStep
	Quotient  Poly
	Remainder Poly
}

// RatLCM returns lcm(|a|, |b|) for rationals: the lcm of the numerators over
// the gcd of the denominators. Zero if either argument is zero.
func RatLCM(a, b *big.Rat) *big.Rat {
	if a.Sign() == 0 || b.Sign() == 0 {
		return new(big.Rat)
	}
	an, bn := new(big.Int).Abs(a.Num()), new(big.Int).Abs(b.Num())
	g := new(big.Int).GCD(nil, nil, an, bn)
	num := new(big.Int).Quo(an, g)
	num.Mul(num, bn)
	den := new(big.Int).GCD(nil, nil, a.Denom(), b.Denom())
	return new(big.Rat).SetFrac(num, den)
}

// Multiplier is the factor lcm(|lc1|, |lc2|) / |lc1| applied to a dividend
// with leading coefficient lc1 before dividing by one with leading
// coefficient lc2. It is always a positive integer, or zero when either
// coefficient is zero.
func Multiplier(lc1, lc2 *big.Rat) *big.Rat {
	l := RatLCM(lc1, lc2)
	if l.Sign() == 0 {
		return l
	}
	return l.Quo(l, new(big.Rat).Abs(lc1))
}

// FractionFreeDivide scales dividend by Multiplier, divides it by divisor
// over ℚ and clears the denominators of the remainder.
func FractionFreeDivide(dividend, divisor Poly) (DivisionStep, error) {
	m := Multiplier(dividend.Leading(), divisor.Leading())
	if m.Sign() == 0 {
		m = big.NewRat(1, 1)
	}
	scaled := dividend.Scale(m)
	q, r, err := scaled.DivMod(divisor)
	if err != nil {
		return DivisionStep{}, err
	}
	clean, _ := r.ClearDenominators()
	return DivisionStep{
		Multiplier: m,
		Scaled:     scaled,
		Quotient:   q,
		Remainder:  clean,
	}, nil
}

// FractionFreeChain divides f1 by f2 step by step, scaling the working
// dividend before each division and replacing it with the cleaned remainder
// until the remainder is zero or of lower degree than f2.
//
// A zero divisor, or a dividend of lower degree than the divisor, yields no
// steps; the remainder is then f1 itself.
func FractionFreeChain(f1, f2 Poly) Chain {
	chain := Chain{Quotient: Zero(f1.Var), Remainder: f1}
	if f2.IsZero() {
		return chain
	}

	current := f1
	for !current.IsZero() && current.Degree() >= f2.Degree() {
		step, err := FractionFreeDivide(current, f2)
		if err != nil {
			break
		}
		chain.Steps = append(chain.Steps, step)
		chain.Quotient = chain.Quotient.Add(step.Quotient)
		current = step.Remainder
	}
	chain.Remainder = current
	return chain
}
