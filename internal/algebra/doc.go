// Package algebra does exact symbolic work on polynomial and rational
// expressions: expand, simplify, factor and substitute.
//
// Expressions come from the expr parser and are converted to polynomials
// over ℚ in the expression's variables. Factoring extracts the numeric
// content and the common monomial, then rational linear factors with their
// multiplicities for univariate polynomials and for homogeneous ones in two
// variables. Output uses superscript exponents and implicit multiplication.
package algebra
