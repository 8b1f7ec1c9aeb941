// Package expr parses math notation into a syntax tree and evaluates it.
//
// The parser is a small recursive-descent parser; nothing is ever handed to
// a host-language evaluator. Function names resolve through an explicit
// table at parse time, so an unknown name is a parse error rather than a
// runtime lookup.
//
// # Accepted notation
//
//	3x^2 - 2x + 1        implicit multiplication, ^ or ** for powers
//	3x² + 2x - 1         Unicode superscript exponents (⁰-⁹, ⁻)
//	(x+1)(x-1)           implicit multiplication between groups
//	sin(4pi) + cos(π/3)  functions and the constants pi (π) and e
//	sin^2(x)             (sin(x))^2
//	√2, √(x+1)           square root prefix
//	x^2 - 5x + 6 = 0     equations, via ParseEquation
//
// Input is NFC-normalised first, and typographic minus signs, dashes,
// multiplication dots and division signs are mapped to their ASCII
// operators.
//
// Runs of letters are split greedily into known names (functions, "pi")
// and single-letter variables: "4pi" is 4·pi, "xy" is x·y, "sinx" is
// rejected because sin needs a parenthesised argument.
package expr
