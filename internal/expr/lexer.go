package expr

import (
	"fmt"
	"math"
	"math/big"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokName
	tokOp     // + - * / ^
	tokLParen // (
	tokRParen // )
	tokEquals
	tokSqrt  // √
	tokSuper // superscript exponent
)

type token struct {
	kind  tokenKind
	text  string
	op    byte
	num   *big.Rat
	power int
	pos   int
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokSuper:
		return fmt.Sprintf("exponent %d", t.power)
	default:
		return fmt.Sprintf("%q", t.text)
	}
}

var replacements = strings.NewReplacer(
	"−", "-", "–", "-", "—", "-",
	"×", "*", "·", "*", "∙", "*", "⋅", "*",
	"÷", "/",
	"π", "pi",
	"**", "^",
)

var superscripts = map[rune]rune{
	'⁰': '0', '¹': '1', '²': '2', '³': '3', '⁴': '4',
	'⁵': '5', '⁶': '6', '⁷': '7', '⁸': '8', '⁹': '9',
}

// Normalize applies NFC normalisation and maps typographic operators to
// ASCII. It is exported for callers that echo the input back.
func Normalize(s string) string {
	return replacements.Replace(norm.NFC.String(s))
}

// names lists every multi-letter identifier; splitNames prefers the
// longest match at each position.
var names = []string{
	"sqrt", "asin", "acos", "atan", "acsc", "asec", "acot",
	"sin", "cos", "tan", "csc", "sec", "cot", "exp", "abs", "log",
	"ln", "pi",
}

func lex(input string) ([]token, error) {
	rs := []rune(Normalize(input))
	var toks []token

	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++

		case unicode.IsDigit(r) || (r == '.' && i+1 < len(rs) && unicode.IsDigit(rs[i+1])):
			start := i
			seenDot := false
			for i < len(rs) && (unicode.IsDigit(rs[i]) || (rs[i] == '.' && !seenDot)) {
				if rs[i] == '.' {
					seenDot = true
				}
				i++
			}
			text := string(rs[start:i])
			v, ok := new(big.Rat).SetString(text)
			if !ok {
				return nil, &SyntaxError{Pos: start, Msg: fmt.Sprintf("invalid number %q", text)}
			}
			toks = append(toks, token{kind: tokNumber, text: text, num: v, pos: start})

		case unicode.IsLetter(r):
			start := i
			for i < len(rs) && unicode.IsLetter(rs[i]) {
				i++
			}
			toks = append(toks, splitNames(rs[start:i], start)...)

		case r == '⁻' || superscripts[r] != 0:
			start := i
			neg := false
			if r == '⁻' {
				neg = true
				i++
			}
			n := 0
			digits := 0
			for i < len(rs) && superscripts[rs[i]] != 0 {
				d := int(superscripts[rs[i]] - '0')
				if n > (math.MaxInt32-d)/10 {
					return nil, &SyntaxError{Pos: start, Msg: "superscript exponent too large"}
				}
				n = n*10 + d
				digits++
				i++
			}
			if digits == 0 {
				return nil, &SyntaxError{Pos: start, Msg: "superscript minus without digits"}
			}
			if neg {
				n = -n
			}
			toks = append(toks, token{kind: tokSuper, text: string(rs[start:i]), power: n, pos: start})

		case strings.ContainsRune("+-*/^", r):
			toks = append(toks, token{kind: tokOp, text: string(r), op: byte(r), pos: i})
			i++

		case r == '(' || r == '[':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++

		case r == ')' || r == ']':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++

		case r == '=':
			toks = append(toks, token{kind: tokEquals, text: "=", pos: i})
			i++

		case r == '√':
			toks = append(toks, token{kind: tokSqrt, text: "√", pos: i})
			i++

		default:
			return nil, &SyntaxError{Pos: i, Msg: fmt.Sprintf("unexpected character %q", r)}
		}
	}

	toks = append(toks, token{kind: tokEOF, pos: len(rs)})
	return toks, nil
}

// splitNames breaks a run of letters into known names and single letters.
func splitNames(run []rune, offset int) []token {
	var out []token
	for i := 0; i < len(run); {
		matched := ""
		for _, n := range names {
			if hasPrefixRunes(run[i:], n) && len(n) > len(matched) {
				matched = n
			}
		}
		if matched == "" {
			matched = string(run[i])
		}
		out = append(out, token{kind: tokName, text: matched, pos: offset + i})
		i += len([]rune(matched))
	}
	return out
}

func hasPrefixRunes(rs []rune, prefix string) bool {
	pr := []rune(prefix)
	if len(pr) > len(rs) {
		return false
	}
	for i, r := range pr {
		if rs[i] != r {
			return false
		}
	}
	return true
}
