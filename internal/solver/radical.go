package solver

import (
	"math"
	"math/big"
	"math/cmplx"
	"strconv"

	"github.com/aquaa/alphamath/internal/poly"
)

// maxTrialFactor bounds the search for square factors under a radical.
const maxTrialFactor = 1_000_000

// squareFree writes n ≥ 0 as outside²·inside, pulling out every square
// factor built from primes up to maxTrialFactor.
func squareFree(n *big.Int) (outside, inside *big.Int) {
	if n.Sign() == 0 {
		return new(big.Int), big.NewInt(1)
	}
	outside = big.NewInt(1)
	inside = new(big.Int).Set(n)
	sq := new(big.Int)
	rem := new(big.Int)
	for i := int64(2); i <= maxTrialFactor; i++ {
		f := big.NewInt(i)
		sq.Mul(f, f)
		if sq.Cmp(inside) > 0 {
			break
		}
		for rem.Rem(inside, sq).Sign() == 0 {
			inside.Quo(inside, sq)
			outside.Mul(outside, f)
		}
	}
	return outside, inside
}

// quadratic is the exact solution of a·x² + b·x + c = 0 over integers.
type quadratic struct {
	A, B, C *big.Int
	D       *big.Int

	// √|D| = Outside·√Inside.
	Outside, Inside *big.Int

	// Roots are in radical form, the "+" root first; a double root is
	// listed once.
	Roots  []string
	Values []complex128
}

func solveQuadratic(a, b, c *big.Int) quadratic {
	d := new(big.Int).Mul(b, b)
	d.Sub(d, new(big.Int).Mul(big.NewInt(4), new(big.Int).Mul(a, c)))

	q := quadratic{A: a, B: b, C: c, D: d}
	q.Outside, q.Inside = squareFree(new(big.Int).Abs(d))

	af, bf, df := toFloat(a), toFloat(b), toFloat(d)
	sqrtD := cmplx.Sqrt(complex(df, 0))
	plus := (complex(-bf, 0) + sqrtD) / complex(2*af, 0)
	minus := (complex(-bf, 0) - sqrtD) / complex(2*af, 0)

	if d.Sign() == 0 {
		q.Roots = []string{formatQuadRoot(a, b, new(big.Int), big.NewInt(1), 1, false)}
		q.Values = []complex128{plus}
		return q
	}
	imaginary := d.Sign() < 0
	q.Roots = []string{
		formatQuadRoot(a, b, q.Outside, q.Inside, 1, imaginary),
		formatQuadRoot(a, b, q.Outside, q.Inside, -1, imaginary),
	}
	q.Values = []complex128{plus, minus}
	return q
}

// Perfect reports whether D is a perfect square.
func (q quadratic) Perfect() bool {
	return q.D.Sign() >= 0 && q.Inside.Cmp(big.NewInt(1)) == 0
}

// SqrtD renders √D in simplified form: "5", "2√3", "√3i", "2i".
func (q quadratic) SqrtD() string {
	if q.D.Sign() == 0 {
		return "0"
	}
	coeff := ""
	if q.Outside.Cmp(big.NewInt(1)) != 0 || q.Inside.Cmp(big.NewInt(1)) == 0 {
		coeff = q.Outside.String()
	}
	rad := ""
	if q.Inside.Cmp(big.NewInt(1)) != 0 {
		rad = "√" + q.Inside.String()
	}
	if q.D.Sign() < 0 {
		return coeff + rad + "i"
	}
	return coeff + rad
}

// formatQuadRoot renders (-b + sign·coeff·√inner) / 2a reduced by the gcd
// of its integer parts. When imaginary, the radical is √(-inner).
func formatQuadRoot(a, b, coeff, inner *big.Int, sign int, imaginary bool) string {
	p := new(big.Int).Neg(b)
	d := new(big.Int).Mul(big.NewInt(2), a)
	q := new(big.Int).Mul(coeff, big.NewInt(int64(sign)))

	if q.Sign() == 0 || (!imaginary && inner.Cmp(big.NewInt(1)) == 0) {
		return poly.FormatRat(new(big.Rat).SetFrac(new(big.Int).Add(p, q), d))
	}

	if d.Sign() < 0 {
		p.Neg(p)
		q.Neg(q)
		d.Neg(d)
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(p), new(big.Int).Abs(q))
	g.GCD(nil, nil, g, d)
	p.Quo(p, g)
	q.Quo(q, g)
	d.Quo(d, g)

	absQ := new(big.Int).Abs(q)
	prefix := ""
	if absQ.Cmp(big.NewInt(1)) != 0 {
		prefix = absQ.String()
	}
	var rad string
	switch {
	case imaginary && inner.Cmp(big.NewInt(1)) == 0:
		rad = prefix + "i"
	case imaginary:
		rad = prefix + "√" + inner.String() + "i"
	default:
		rad = prefix + "√" + inner.String()
	}

	one := big.NewInt(1)
	if p.Sign() == 0 {
		num := rad
		if q.Sign() < 0 {
			num = "-" + rad
		}
		if d.Cmp(one) == 0 {
			return num
		}
		return num + " / " + d.String()
	}

	op := " + "
	if q.Sign() < 0 {
		op = " - "
	}
	num := p.String() + op + rad
	if d.Cmp(one) == 0 {
		return num
	}
	return "(" + num + ") / " + d.String()
}

func toFloat(v *big.Int) float64 {
	f, _ := new(big.Float).SetInt(v).Float64()
	return f
}

// formatDecimal renders v with places decimals and no negative zero.
func formatDecimal(v float64, places int) string {
	s := strconv.FormatFloat(v, 'f', places, 64)
	if z := strconv.FormatFloat(0, 'f', places, 64); s == "-"+z {
		return z
	}
	return s
}

// formatComplex renders z as "a", "a + bi" or "a - bi".
func formatComplex(z complex128, places int, eps float64) string {
	re, im := real(z), imag(z)
	if math.Abs(im) < eps {
		return formatDecimal(re, places)
	}
	if im < 0 {
		return formatDecimal(re, places) + " - " + formatDecimal(-im, places) + "i"
	}
	return formatDecimal(re, places) + " + " + formatDecimal(im, places) + "i"
}
