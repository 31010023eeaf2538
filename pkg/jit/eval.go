package jit

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/aschmolck/trivial-jit/pkg/expr"
)

// Eval walks the tree directly, with the same arithmetic semantics as the
// generated code: plain IEEE-754 float64 operations, sign-bit flips for
// negation, SQRTSD-equivalent math.Sqrt, and the identical pow lowering.
// Division by zero and square roots of negative numbers yield infinities and
// NaNs, never errors. It is the oracle the compiled code is checked against,
// and the fallback evaluator on hosts without jit support.
func Eval(n expr.Node, x float64) (float64, error) {
	switch n := n.(type) {
	case *expr.Num:
		return n.Value, nil

	case *expr.Var:
		return x, nil

	case *expr.Unary:
		v, err := Eval(n.X, x)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case expr.OpNeg:
			return -v, nil
		case expr.OpSqrt:
			return math.Sqrt(v), nil
		}
		return 0, fmt.Errorf("unknown unary operator %v", n.Op)

	case *expr.Binary:
		if n.Op == expr.OpPow {
			return evalPow(n, x)
		}
		l, err := Eval(n.L, x)
		if err != nil {
			return 0, err
		}
		r, err := Eval(n.R, x)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case expr.OpAdd:
			return l + r, nil
		case expr.OpSub:
			return l - r, nil
		case expr.OpMul:
			return l * r, nil
		case expr.OpDiv:
			return l / r, nil
		}
		return 0, fmt.Errorf("unknown binary operator %v", n.Op)
	}
	return 0, fmt.Errorf("unknown node type %T", n)
}

// evalPow applies the lowering genPow emits: ±0.5 via square root, integral
// exponents via square-and-multiply, negative exponents via the reciprocal.
// base^0 is 1 without evaluating the base.
func evalPow(n *expr.Binary, x float64) (float64, error) {
	e, err := powExponent(n.R)
	if err != nil {
		return 0, err
	}
	if !e.sqrt && e.n == 0 {
		return 1, nil
	}
	base, err := Eval(n.L, x)
	if err != nil {
		return 0, err
	}
	var v float64
	if e.sqrt {
		v = math.Sqrt(base)
	} else {
		v = powInt(base, e.n)
	}
	if e.negative {
		v = 1 / v
	}
	return v, nil
}

// powInt raises base to the n-th power, n >= 1, by square-and-multiply in
// the exact multiplication order genPow unrolls.
func powInt(base float64, n uint64) float64 {
	v := base
	for i := bits.Len64(n) - 2; i >= 0; i-- {
		v *= v
		if n>>uint(i)&1 == 1 {
			v *= base
		}
	}
	return v
}
