package expr

import (
	"math"
	"math/rand"
	"testing"
)

func TestFormatHandpicked(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2+3*4", "2 + 3 * 4"},
		{"(2+3)*4", "(2 + 3) * 4"},
		{"0.1 + 0.2 + 0.3", "0.1 + 0.2 + 0.3"},
		{"1 + (2 + 3)", "1 + (2 + 3)"},
		{"-1^2", "-1^2"},
		{"-1^-2", "-1^-2"},
		{"(-1)^2", "(-1)^2"},
		{"(2^3)^2", "(2^3)^2"},
		{"2^3^2", "2^3^2"},
		{"√4", "√4"},
		{"-√4", "-√4"},
		{"√(1+x)", "√(1 + x)"},
		{"√x^2", "√x^2"},
		{"2*x^0.5", "2 * x^0.5"},
		{"-(2*x)", "-(2 * x)"},
		{"1 - (2 - 3)", "1 - (2 - 3)"},
		{"x/(2*x)", "x / (2 * x)"},
	}
	for _, tt := range tests {
		node, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.input, err)
		}
		if got := Format(node); got != tt.want {
			t.Errorf("Format(Parse(%q)) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// randTree builds a well-formed tree with non-negative finite literals, the
// shapes Format promises to round-trip.
func randTree(r *rand.Rand, depth int) Node {
	if depth == 0 || r.Intn(3) == 0 {
		if r.Intn(4) == 0 {
			return &Var{}
		}
		// Mix of small integers and short decimals; fixed-notation
		// formatting keeps them lexable.
		return &Num{Value: math.Abs(math.Trunc(r.Float64()*1e4) / 16)}
	}
	switch r.Intn(7) {
	case 0:
		return &Unary{Op: OpNeg, X: randTree(r, depth-1)}
	case 1:
		return &Unary{Op: OpSqrt, X: randTree(r, depth-1)}
	case 2:
		return &Binary{Op: OpAdd, L: randTree(r, depth-1), R: randTree(r, depth-1)}
	case 3:
		return &Binary{Op: OpSub, L: randTree(r, depth-1), R: randTree(r, depth-1)}
	case 4:
		return &Binary{Op: OpMul, L: randTree(r, depth-1), R: randTree(r, depth-1)}
	case 5:
		return &Binary{Op: OpDiv, L: randTree(r, depth-1), R: randTree(r, depth-1)}
	default:
		// Exponents restricted to what the code generator accepts.
		exps := []float64{0, 0.5, 1, 2, 3, 5, 13}
		exp := Node(&Num{Value: exps[r.Intn(len(exps))]})
		if r.Intn(2) == 0 {
			exp = &Unary{Op: OpNeg, X: exp}
		}
		return &Binary{Op: OpPow, L: randTree(r, depth-1), R: exp}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		tree := randTree(r, 4)
		text := Format(tree)
		back, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse(Format(%v)) = Parse(%q) failed: %v", tree, text, err)
		}
		if !Equal(back, tree) {
			t.Fatalf("round trip of %v via %q gave %v", tree, text, back)
		}
	}
}
