package poly

import (
	"math/big"
	"strconv"
	"strings"
)

var superscriptDigits = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹', '-': '⁻',
}

// Superscript renders n with Unicode superscript digits.
func Superscript(n int) string {
	var b strings.Builder
	for _, r := range strconv.Itoa(n) {
		b.WriteRune(superscriptDigits[r])
	}
	return b.String()
}

// ToSuperscript rewrites every "^n" exponent in s with superscript digits.
func ToSuperscript(s string) string {
	var b strings.Builder
	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		if rs[i] != '^' || i+1 >= len(rs) {
			b.WriteRune(rs[i])
			continue
		}
		j := i + 1
		if rs[j] == '-' {
			j++
		}
		k := j
		for k < len(rs) && rs[k] >= '0' && rs[k] <= '9' {
			k++
		}
		if k == j {
			b.WriteRune(rs[i])
			continue
		}
		for _, r := range rs[i+1 : k] {
			b.WriteRune(superscriptDigits[r])
		}
		i = k - 1
	}
	return b.String()
}

// FormatRat renders r as an integer or "p/q".
func FormatRat(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	return r.String()
}

// String renders p in descending order with ASCII exponents, for example
// "x^2 - 5x + 6". Non-integer coefficients are parenthesised: "(1/2)x^2".
func (p Poly) String() string {
	return p.format(func(n int) string { return "^" + strconv.Itoa(n) })
}

// Pretty renders p with superscript exponents, for example "x² - 5x + 6".
func (p Poly) Pretty() string {
	return p.format(Superscript)
}

func (p Poly) format(exp func(int) string) string {
	if p.IsZero() {
		return "0"
	}
	var b strings.Builder
	first := true
	for i := p.Degree(); i >= 0; i-- {
		c := p.coeffs[i]
		if c.Sign() == 0 {
			continue
		}
		abs := new(big.Rat).Abs(c)
		switch {
		case first && c.Sign() < 0:
			b.WriteString("-")
		case !first && c.Sign() < 0:
			b.WriteString(" - ")
		case !first:
			b.WriteString(" + ")
		}
		first = false
		b.WriteString(term(abs, p.Var, i, exp))
	}
	return b.String()
}

func term(abs *big.Rat, v string, deg int, exp func(int) string) string {
	if deg == 0 {
		return FormatRat(abs)
	}
	var coeff string
	switch {
	case abs.Cmp(big.NewRat(1, 1)) == 0:
		coeff = ""
	case abs.IsInt():
		coeff = abs.Num().String()
	default:
		coeff = "(" + abs.String() + ")"
	}
	if deg == 1 {
		return coeff + v
	}
	return coeff + v + exp(deg)
}
