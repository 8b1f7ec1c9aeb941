package poly

import (
	"math"
)

// SturmSequence returns f, f', and the negated fraction-free remainders
// -rem(fᵢ₋₂, fᵢ₋₁) until a remainder is zero. The zero polynomial that ends
// the chain is not part of the result.
//
// Every scaling multiplier is positive, so the sign pattern at any point is
// that of the classical Sturm sequence.
func SturmSequence(f Poly) []Poly {
	seq := []Poly{f}
	d := f.Derivative()
	if d.IsZero() {
		return seq
	}
	seq = append(seq, d)
	for {
		dividend, divisor := seq[len(seq)-2], seq[len(seq)-1]
		step, err := FractionFreeDivide(dividend, divisor)
		if err != nil {
			break
		}
		next := step.Remainder.Neg()
		if next.IsZero() {
			break
		}
		seq = append(seq, next)
	}
	return seq
}

// Sign is the sign of a polynomial value at a point.
type Sign int8

const (
	SignNeg Sign = iota - 1
	SignZero
	SignPos
	SignErr
)

func (s Sign) String() string {
	switch s {
	case SignNeg:
		return "-"
	case SignZero:
		return "0"
	case SignPos:
		return "+"
	default:
		return "ERR"
	}
}

// SignAt evaluates p at x; values within eps of zero count as zero and
// non-finite values as SignErr.
func SignAt(p Poly, x, eps float64) Sign {
	v := p.EvalFloat(x)
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return SignErr
	case math.Abs(v) < eps:
		return SignZero
	case v > 0:
		return SignPos
	default:
		return SignNeg
	}
}

// SignTable returns one row per polynomial with its sign at every point.
func SignTable(seq []Poly, points []float64, eps float64) [][]Sign {
	table := make([][]Sign, len(seq))
	for i, p := range seq {
		row := make([]Sign, len(points))
		for j, x := range points {
			row[j] = SignAt(p, x, eps)
		}
		table[i] = row
	}
	return table
}

// SignChanges counts sign changes between consecutive entries after
// dropping zeros and errors.
func SignChanges(column []Sign) int {
	var prev Sign
	seen := false
	changes := 0
	for _, s := range column {
		if s == SignZero || s == SignErr {
			continue
		}
		if seen && s != prev {
			changes++
		}
		prev, seen = s, true
	}
	return changes
}

// ChangesAt returns V(x) for every column of a sign table.
func ChangesAt(table [][]Sign, points int) []int {
	out := make([]int, points)
	for j := 0; j < points; j++ {
		col := make([]Sign, len(table))
		for i := range table {
			col[i] = table[i][j]
		}
		out[j] = SignChanges(col)
	}
	return out
}

// RootInterval is a half-open interval (From, To] holding Roots distinct
// real roots.
type RootInterval struct {
	From  float64
	To    float64
	Roots int
}

// RootIntervals compares V at consecutive points; by Sturm's theorem the
// difference is the number of distinct roots between them.
func RootIntervals(points []float64, changes []int) []RootInterval {
	var out []RootInterval
	for i := 0; i+1 < len(changes) && i+1 < len(points); i++ {
		delta := changes[i] - changes[i+1]
		if delta == 0 {
			continue
		}
		if delta < 0 {
			delta = -delta
		}
		out = append(out, RootInterval{From: points[i], To: points[i+1], Roots: delta})
	}
	return out
}
