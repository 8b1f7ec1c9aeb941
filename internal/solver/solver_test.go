package solver

import (
	"context"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquaa/alphamath/internal/explain"
)

func run(s Solver, input string) string {
	return Render(context.Background(), s, input)
}

func TestAll_MenuOrder(t *testing.T) {
	var names []string
	for _, s := range All(DefaultOptions()) {
		names = append(names, s.Name())
		assert.NotEmpty(t, s.Title())
		assert.NotEmpty(t, s.Usage())

		e := s.Solve(context.Background(), s.Example())
		assert.True(t, e.OK(), "%s example failed: %+v", s.Name(), e.Failure)
	}
	assert.Equal(t, []string{
		"congruence", "crt", "cubic", "multiplier", "sturm",
		"trig", "algebra", "division", "quadratic",
	}, names)
}

func TestCongruence(t *testing.T) {
	want := "Solving linear congruence: 14x ≡ 30 (mod 100)\n" +
		"GCD(14, 100) = 2\n" +
		"Coefficients: p = -7, q = 1\n" +
		"Verification: 14 * -7 + 100 * 1 = 2\n" +
		"x(0) = 95\n" +
		"✅ All solutions:\n" +
		"x(0) = 95 (mod 100)\n" +
		"x(1) = 45 (mod 100)\n"
	assert.Equal(t, want, run(NewCongruence(), "14 30 100"))
}

func TestCongruence_Failures(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "❌ No input provided. Format: a b m\n"},
		{"1 2", "❌ Invalid input. Please enter: a b m\n"},
		{"1 two 3", "❌ Invalid input. Please enter: a b m\n"},
		{"3 4 0", "❌ Modulus 'm' cannot be zero.\n"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, run(NewCongruence(), tt.in))
		})
	}

	out := run(NewCongruence(), "2 3 4")
	assert.Contains(t, out, "GCD(2, 4) = 2")
	assert.Contains(t, out, "❌ No solution exists since b is not divisible by GCD(a, m)")
	assert.NotContains(t, out, "All solutions")
}

func TestCongruence_StepsAreData(t *testing.T) {
	e := NewCongruence().Solve(context.Background(), "14 30 -100")
	require.True(t, e.OK())

	st, ok := e.Find("gcd")
	require.True(t, ok)
	assert.Equal(t, "2", st.Result)

	for _, s := range e.All("solution") {
		x, _ := new(big.Int).SetString(s.Result, 10)
		diff := new(big.Int).Sub(new(big.Int).Mul(big.NewInt(14), x), big.NewInt(30))
		assert.Zero(t, diff.Mod(diff, big.NewInt(100)).Sign())
	}
}

func TestCRT(t *testing.T) {
	out := run(NewCRT(), "2 3 3 5 2 7")
	for _, line := range []string{
		"Chinese Remainder Theorem Solver",
		"x ≡ 2 (mod 3)\nx ≡ 3 (mod 5)\nx ≡ 2 (mod 7)\n",
		"M = m1 * m2 * ... * mn = 105",
		"(M/m1)*x ≡ 1 mod m1: 35*x ≡ 1 mod 3",
		"Solution: x ≡ 2 mod 3\nSolution: x ≡ 1 mod 5\nSolution: x ≡ 1 mod 7\n",
		"x0 = a1*(M/m1)*b1 + a2*(M/m2)*b2 + a3*(M/m3)*b3\nx0 = 233\n",
		"x ≡ 233 mod 105",
		"Final solution: x ≡ 23 mod 105",
		"The smallest positive solution is: 23",
	} {
		assert.Contains(t, out, line)
	}
}

func TestCRT_Failures(t *testing.T) {
	out := run(NewCRT(), "1 6 2 9")
	assert.Contains(t, out, "GCD(m1, m2) = GCD(6, 9) = 3")
	assert.True(t, strings.HasSuffix(out, "❌ Moduli are not pairwise co-prime. CRT may not be applicable\n"))

	assert.Equal(t, "❌ Invalid input. Expected pairs of 'a m' values.\n", run(NewCRT(), "1 2 3"))
	assert.Equal(t, "❌ Modulus 'm' cannot be zero.\n", run(NewCRT(), "1 2 3 0"))
	assert.Equal(t, "❌ No input provided. Format: a1 m1 a2 m2 ... an mn\n", run(NewCRT(), "  "))
}

func TestMultiplier(t *testing.T) {
	want := "Finding smallest multiplier so that 12 × multiplier is divisible by 18:\n" +
		"GCD(12, 18) = 6\n" +
		"✅ Multiply 12 by 3 to make it divisible by 18\n" +
		"12 × 3 = 36\n" +
		"36 / 18 = 2\n"
	assert.Equal(t, want, run(NewMultiplier(), "12 18"))

	out := run(NewMultiplier(), "18 6")
	assert.Contains(t, out, "✅ 18 is already divisible by 6.\nNo multiplier needed. 18 / 6 = 3\n")

	assert.Contains(t, run(NewMultiplier(), "5 0"), "❌ Cannot divide by zero.")
	assert.Equal(t, "❌ Please provide two numbers separated by space.\n", run(NewMultiplier(), "5"))
	assert.Equal(t, "❌ Invalid input. Please enter two integers separated by space.\n", run(NewMultiplier(), "5 x"))
}

func TestQuadratic_RealRoots(t *testing.T) {
	want := "\nGiven quadratic equation: 1x² + (-5)x + (6) = 0\n" +
		"\nUsing Sridharacharya's formula:\nx = (-b ± √(b² - 4ac)) / 2a\n" +
		"\nStep 1: Discriminant D = (-5)² - 4×(1)×(6) = 1\n" +
		"Step 2: √D = √1 = 1\n" +
		"\nRoots in simplified radical form:\n" +
		"x = 3\n" +
		"x = 2\n" +
		"\nApproximate decimal values (rounded to 4 decimal places):\n" +
		"x ≈ 3.0000\n" +
		"x ≈ 2.0000\n"
	assert.Equal(t, want, run(NewQuadratic(DefaultOptions()), "x^2 - 5x + 6 = 0"))
}

func TestQuadratic_Cases(t *testing.T) {
	tests := []struct {
		in       string
		contains []string
	}{
		{"x^2 + 1 = 0", []string{"Step 2: √D = √(-4) = 2i (simplified)", "(complex)", "x = i\nx = -i\n"}},
		{"x^2 - 2 = 0", []string{"Step 2: √D = √8 = 2√2 (simplified)", "x = √2\nx = -√2\n", "x ≈ 1.4142\nx ≈ -1.4142\n"}},
		{"x^2 + x + 1 = 0", []string{"x = (-1 + √3i) / 2\nx = (-1 - √3i) / 2\n"}},
		{"x^2 - 2x + 1 = 0", []string{"Step 2: √D = √0 = 0", "Only one root:\nx = 1\n"}},
		{"x² - x - 1", []string{"x = (1 + √5) / 2\nx = (1 - √5) / 2\n"}},
		{"2x^2 - 3x - 2 = 0", []string{"x = 2\nx = -1/2\n"}},
		{"x^2/2 - 2 = 0", []string{"Given quadratic equation: 1x² + (0)x + (-4) = 0", "x = 2\nx = -2\n"}},
		{"3t^2 = 12t", []string{"Given quadratic equation: 3t² + (-12)t + (0) = 0", "t = 4\nt = 0\n"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			out := run(NewQuadratic(DefaultOptions()), tt.in)
			for _, c := range tt.contains {
				assert.Contains(t, out, c)
			}
		})
	}
}

func TestQuadratic_Failures(t *testing.T) {
	q := NewQuadratic(DefaultOptions())
	assert.Equal(t, "❌ Not a quadratic equation. Coefficient 'a' must not be zero.\n", run(q, "2x + 1 = 0"))
	assert.Contains(t, run(q, "x^3 = 1"), "degree 3")
	assert.Contains(t, run(q, "x^2 + y = 0"), "❌ Invalid input. Could not parse the equation:")
	assert.Contains(t, run(q, "x^2 +"), "❌ Invalid input. Could not parse the equation:")
	assert.Contains(t, run(q, "x¹⁸⁴⁴⁶⁷⁴⁴⁰⁷³⁷⁰⁹⁵⁵¹⁶¹⁸ - 4 = 0"), "superscript exponent too large")
}

func TestCubic(t *testing.T) {
	c := NewCubic(DefaultOptions())

	want := "📘 Parsed Expression: x³ - 6x² + 11x - 6\n" +
		"\n✅ Roots of the equation:\n" +
		"Root 1: 1 ≈ 1.000000\n" +
		"Root 2: 2 ≈ 2.000000\n" +
		"Root 3: 3 ≈ 3.000000\n"
	assert.Equal(t, want, run(c, "x^3 - 6x^2 + 11x - 6"))

	out := run(c, "x^3 - 1 = 0")
	assert.Contains(t, out, "Root 1: 1 ≈ 1.000000")
	assert.Contains(t, out, "Root 2: (-1 + √3i) / 2 ≈ -0.500000 + 0.866025i")
	assert.Contains(t, out, "Root 3: (-1 - √3i) / 2 ≈ -0.500000 - 0.866025i")

	out = run(c, "x^3 - 2")
	assert.Contains(t, out, "Root 1 ≈ 1.259921")
	assert.Contains(t, out, "Root 2 ≈ -0.629961 + 1.091124i")

	out = run(c, "x^3 - 3x + 1")
	assert.Contains(t, out, "Root 1 ≈ -1.879385\nRoot 2 ≈ 0.347296\nRoot 3 ≈ 1.532089\n")

	out = run(c, "x^3 - 3x + 2")
	assert.Contains(t, out, "Root 1: -2 ≈ -2.000000\nRoot 2: 1 ≈ 1.000000\n")
	assert.NotContains(t, out, "Root 3")

	assert.Equal(t, "❌ The equation is degree 2, not a cubic.\n", run(c, "x^2 + 1"))
}

func TestCubic_HighlyCompositeCoefficients(t *testing.T) {
	c := NewCubic(DefaultOptions())
	start := time.Now()
	out := run(c, "963761198400x^3 + x + 963761198400")
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Contains(t, out, "Root 1 ≈ -1.000000")
	assert.Contains(t, out, "Root 3 ≈")
	assert.NotContains(t, out, explain.GlyphFailure)
}

func TestSturm(t *testing.T) {
	out := run(NewSturm(DefaultOptions()), "x^3 - x, -2, -1, 0, 1, 2")
	for _, line := range []string{
		"=== Sturm's Theorem Evaluation ===",
		"Parsed polynomial: f(x) = x³ - x",
		"Derivative: f'(x) = 3x² - 1",
		"Using evaluation points: [-2, -1, 0, 1, 2]",
		"f0(x) = x³ - x\nf1(x) = 3x² - 1\nf2(x) = 2x\nf3(x) = 2\n",
		"f0(x) |   -   |   0   |   0   |   0   |   +   |",
		"V(x)  |   3   |   2   |   1   |   0   |   0   |",
		" - 1 real root in interval (-2, -1)",
		" - 1 real root in interval (-1, 0)",
		" - 1 real root in interval (0, 1)",
	} {
		assert.Contains(t, out, line)
	}
	assert.NotContains(t, out, "f4(x)")
}

func TestSturm_DefaultPointsAndFailures(t *testing.T) {
	s := NewSturm(DefaultOptions())

	out := run(s, "x^2 + 1")
	assert.Contains(t, out, "Using evaluation points: [-4, -3, -2, -1, 0, 1, 2, 3, 4]")
	assert.Contains(t, out, " - No real roots detected in the evaluated range.")

	out = run(s, "x^2 - 4, -3, 0, 3")
	assert.Contains(t, out, " - 1 real root in interval (-3, 0)")

	out = run(s, "x^2 - 4, 0, 3")
	assert.Contains(t, out, " - 1 real root in interval (0, 3)")

	out = run(s, "x^2 - 4, -3, 3")
	assert.Contains(t, out, " - 2 real roots in interval (-3, 3)")

	assert.Contains(t, run(s, ""), "❌ No input provided.")
	assert.Contains(t, run(s, "x^2, a"), "❌ Invalid evaluation point 'a'.")
	assert.Contains(t, run(s, "x^2 +, 1"), "❌ Failed to parse polynomial:")
}

func TestTrig(t *testing.T) {
	tr := NewTrig(DefaultOptions())
	tests := []struct {
		in   string
		want string
	}{
		{"sin(4pi) + cos(pi/3)", "Result: 1/2"},
		{"cos(pi/4)", "Result: √2/2"},
		{"sin(pi/3)", "Result: √3/2"},
		{"tan(pi/6)", "Result: √3/3"},
		{"-sqrt(3)", "Result: -√3"},
		{"sin(1)", "Result: 0.841471"},
		{"sin(pi)", "Result: 0"},
		{"asin(1/2)", "Result: π/6"},
		{"acos(-1)", "Result: π"},
		{"acos(-1/2)", "Result: 2π/3"},
		{"5acos(0)", "Result: 5π/2"},
		{"atan(-1)", "Result: -π/4"},
		{"tan(pi/2)", "Result: undefined (division by zero)"},
		{"csc(0)", "Result: undefined (division by zero)"},
		{"sin^2(x)", "❌ Invalid mathematical expression"},
		{"sin(", "❌ Invalid mathematical expression"},
		{"asin(2)", "❌ Invalid mathematical expression"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			out := run(tr, tt.in)
			assert.Contains(t, out, "📐 Evaluating: "+tt.in)
			assert.Contains(t, out, tt.want)
		})
	}

	assert.Contains(t, run(tr, ""), "📐 Evaluating: sin(4pi) + cos(pi/3)")
}

func TestLimitDenominator(t *testing.T) {
	tests := []struct {
		in     *big.Rat
		maxDen int64
		want   string
	}{
		{big.NewRat(3, 7), 12, "3/7"},
		{new(big.Rat).SetFloat64(0.3333333333), 12, "1/3"},
		{new(big.Rat).SetFloat64(3.14159265), 12, "22/7"},
		{new(big.Rat).SetFloat64(-2.5), 12, "-5/2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, limitDenominator(tt.in, tt.maxDen).RatString())
	}
}

func TestDivision(t *testing.T) {
	want := "\n=== Polynomial Long Division ===\n" +
		"\nPerforming polynomial long division:\n" +
		"Numerator: x³ - 6x² + 11x - 6\n" +
		"Denominator: x - 1\n" +
		"\n--- Division Steps ---\n" +
		"Step 1:\n" +
		"  Multiplier used: 1\n" +
		"  Scaled dividend: x³ - 6x² + 11x - 6\n" +
		"  Quotient at this step: x² - 5x + 6\n" +
		"  Remainder: 0\n\n" +
		"--- Final Result ---\n" +
		"  Scaled dividend: x³ - 6x² + 11x - 6\n" +
		"  Quotient: x² - 5x + 6\n" +
		"  Remainder: 0\n"
	assert.Equal(t, want, run(NewDivision(), "x^3 - 6x^2 + 11x - 6, x - 1"))

	out := run(NewDivision(), "3x² + 2x - 1, 2x + 1")
	assert.Contains(t, out, "  Multiplier used: 2\n  Scaled dividend: 6x² + 4x - 2\n")
	assert.Contains(t, out, "  Quotient: 3x + 1/2\n  Remainder: -5\n")
}

func TestDivision_Failures(t *testing.T) {
	d := NewDivision()
	assert.Contains(t, run(d, "x + 1"), "❌ Invalid input format. Use: <numerator>, <denominator>")
	assert.Contains(t, run(d, "x + 1, 0"), "❗ No division steps to show")
	assert.Contains(t, run(d, "x, x^2"), "❗ No division steps to show")
	assert.Contains(t, run(d, "x, y"), "different variables")
	assert.Contains(t, run(d, "1, 2"), "No variables found")
}

func TestAlgebra(t *testing.T) {
	a := NewAlgebra()
	tests := []struct {
		in   string
		want string
	}{
		{"factor: x^3 - x", "Result: x(x - 1)(x + 1)\n"},
		{"(x+1)^2", "Result: x² + 2x + 1\n"},
		{"expand: (x - y)(x + y)", "Result: x² - y²\n"},
		{"Simplify: (x^2 - 1)/(x - 1)", "Result: x + 1\n"},
		{"substitute: x^2 + y; x=2, y=3", "Result: 7\n"},
		{"integrate: x", "❌ Error: Unknown mode 'integrate'. Valid modes: expand, simplify, factor, substitute.\n"},
		{"factor: sin(x)", "❌ Error during factorization: not a polynomial expression: sin()\n"},
		{"expand: (x+", "❌ Error parsing expression:"},
		{"factor:", "❌ Error: Expression cannot be empty.\n"},
		{"expand: ((x+1)^64)^64", "❌ Error during expansion: not a polynomial expression: degree 4096 exceeds 256\n"},
		{"factor: ((x+1)^64)^64", "degree 4096 exceeds 256"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Contains(t, run(a, tt.in), tt.want)
		})
	}

	e := a.Solve(context.Background(), "factor: x^2 - 1")
	st, ok := e.Find("mode")
	require.True(t, ok)
	assert.Equal(t, []string{"factor"}, st.Operands)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, s := range All(DefaultOptions()) {
		e := s.Solve(ctx, s.Example())
		require.NotNil(t, e.Failure, s.Name())
		assert.Equal(t, explain.FailInternal, e.Failure.Kind)
	}
}
