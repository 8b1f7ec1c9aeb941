package expr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Structure(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1 + 2 * 3", "1 + (2 * 3)"},
		{"3x^2 - 2x + 1", "((3 * (x ^ 2)) - (2 * x)) + 1"},
		{"3x² + 2x - 1", "((3 * (x ^ 2)) + (2 * x)) - 1"},
		{"(x+1)(x-1)", "(x + 1) * (x - 1)"},
		{"2^3^2", "2 ^ (3 ^ 2)"},
		{"-x^2", "-(x ^ 2)"},
		{"4pi", "4 * pi"},
		{"xy", "x * y"},
		{"sin^2(x)", "sin(x) ^ 2"},
		{"sin²(x) + cos²(x)", "(sin(x) ^ 2) + (cos(x) ^ 2)"},
		{"√2", "sqrt(2)"},
		{"2√(x+1)", "2 * sqrt(x + 1)"},
		{"x ** 3", "x ^ 3"},
		{"6 ÷ 2 × 3", "(6 / 2) * 3"},
		{"x − 1", "x - 1"},
		{"[x+1]", "x + 1"},
		{"x⁻¹", "x ^ -1"},
		{"1/2x", "(1 / 2) * x"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.String())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		in  string
		msg string
	}{
		{"", "empty expression"},
		{"   ", "empty expression"},
		{"x +", "unexpected end of input"},
		{"(x + 1", "expected ')'"},
		{"sinx", "expected '(' after sin"},
		{"x = 1", "unexpected \"=\""},
		{"2 $ 3", "unexpected character"},
		{"x ⁻", "superscript minus without digits"},
		{"x¹⁸⁴⁴⁶⁷⁴⁴⁰⁷³⁷⁰⁹⁵⁵¹⁶¹⁸ - 4", "superscript exponent too large"},
		{"x⁻²¹⁴⁷⁴⁸³⁶⁴⁸", "superscript exponent too large"},
		{"x )", "unexpected \")\""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := Parse(tt.in)
			require.Error(t, err)
			var se *SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Contains(t, se.Msg, tt.msg)
		})
	}
}

func TestParseEquation(t *testing.T) {
	lhs, rhs, hasEq, err := ParseEquation("x^2 - 5x + 6 = 0")
	require.NoError(t, err)
	assert.True(t, hasEq)
	assert.Equal(t, "((x ^ 2) - (5 * x)) + 6", lhs.String())
	assert.Equal(t, "0", rhs.String())

	lhs, rhs, hasEq, err = ParseEquation("x^3 - 1")
	require.NoError(t, err)
	assert.False(t, hasEq)
	assert.Nil(t, rhs)
	assert.Equal(t, "(x ^ 3) - 1", lhs.String())

	_, _, _, err = ParseEquation("x = 1 = 2")
	assert.Error(t, err)
}

func TestEval(t *testing.T) {
	tests := []struct {
		in   string
		env  Env
		want float64
	}{
		{"sin(4pi) + cos(pi/3)", nil, 0.5},
		{"2^10", nil, 1024},
		{"sin^2(x) + cos^2(x)", Env{"x": 0.7}, 1},
		{"sqrt(16) + √9", nil, 7},
		{"ln(e)", nil, 1},
		{"log(1000)", nil, 3},
		{"abs(-3) * exp(0)", nil, 3},
		{"sec(0)", nil, 1},
		{"acot(0)", nil, math.Pi / 2},
		{"asin(1)", nil, math.Pi / 2},
		{"3x^2 - 2x + 1", Env{"x": 2}, 9},
		{"e", Env{"e": 5}, 5},
		{"0.5 + .25", nil, 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Eval(MustParse(tt.in), tt.env)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEval_Errors(t *testing.T) {
	_, err := Eval(MustParse("1/0"), nil)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = Eval(MustParse("0^-1"), nil)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = Eval(MustParse("csc(0)"), nil)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = Eval(MustParse("cot(0)"), nil)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = Eval(MustParse("tan(pi/2)"), nil)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = Eval(MustParse("asin(2)"), nil)
	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "asin", de.Fn)

	_, err = Eval(MustParse("sqrt(-1)"), nil)
	assert.ErrorAs(t, err, &de)

	_, err = Eval(MustParse("x + 1"), nil)
	var ue *UnboundError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "x", ue.Name)
}

func TestVariablesAndFunctions(t *testing.T) {
	n := MustParse("a x^2 + b x + c + pi")
	assert.Equal(t, []string{"a", "b", "c", "pi", "x"}, Variables(n))
	assert.Equal(t, []string{"a", "b", "c", "x"}, FreeVariables(n))

	assert.True(t, UsesFunc(MustParse("2 + asin(1/2)"), "asin", "acos"))
	assert.False(t, UsesFunc(MustParse("sin(1/2)"), "asin", "acos"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "2*pi - 1", Normalize("2×π − 1"))
}
