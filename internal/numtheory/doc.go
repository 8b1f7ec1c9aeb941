// Package numtheory implements the exact integer algorithms behind the
// congruence, CRT and multiplier solvers.
//
// All arithmetic uses math/big; no floating point is introduced. Division
// follows math/big's Euclidean convention (remainders are never negative),
// and moduli are normalised to their absolute value, so every residue this
// package returns lies in [0, |m|).
//
// The extended Euclidean algorithm is iterative but produces exactly the
// coefficients of the classic recursive descent:
//
//	gcd(a, 0)          = (a, 1, 0)
//	gcd(a, m) = (d, q', p' - (a div m)·q')   where (d, p', q') = gcd(m, a mod m)
package numtheory
