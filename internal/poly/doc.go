// Package poly implements univariate polynomials over ℚ and the algorithms
// built on them: fraction-free long division, Sturm sequences with sign
// tables, and rational root extraction.
//
// # Fraction-free division
//
// Before each division the dividend is scaled by
//
//	lcm(|lc(f1)|, |lc(f2)|) / |lc(f1)|
//
// so the leading terms divide cleanly, and the remainder is multiplied by
// the lcm of its coefficient denominators. All scale factors are positive,
// which keeps the sign information Sturm's theorem relies on.
package poly
