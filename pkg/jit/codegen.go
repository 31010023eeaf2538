package jit

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/aschmolck/trivial-jit/pkg/amd64"
	"github.com/aschmolck/trivial-jit/pkg/expr"
)

// The argument arrives in X0 and stays there untouched until the epilogue,
// so a post-order walk can hand the node at depth d the register X(d).
// A strict binary tree never needs more live values than its depth.
const maxDepth = 15 // X1..X15

// maxIntExponent bounds the unrolled square-and-multiply chain for x^n.
const maxIntExponent = 1024

// Generate walks the AST post-order and emits x86-64 code for a function
// taking one float64 in X0 and returning one in X0, per the System V AMD64
// convention. It never fails on a well-formed tree except for register
// pressure (nesting deeper than maxDepth) and unsupported exponents; runtime
// numerics such as division by zero are left to IEEE-754 arithmetic.
//
// The returned buffer is self-contained: literals live in a pool after the
// code and are addressed RIP-relative, so it runs wherever it is copied.
func Generate(root expr.Node) ([]byte, error) {
	b := amd64.NewBuilder()
	if err := genNode(b, root, 1); err != nil {
		return nil, err
	}
	b.Movsd(amd64.X0, amd64.X1)
	b.Ret()
	return b.Finalize(), nil
}

// reg maps a tree depth to its result register.
func reg(depth int) amd64.Reg {
	return amd64.X0 + amd64.Reg(depth)
}

// genNode emits code leaving the node's value in reg(depth). Registers
// reg(1)..reg(depth-1) hold live intermediate results of ancestors and must
// not be clobbered; anything above reg(depth) is free.
func genNode(b *amd64.Builder, n expr.Node, depth int) error {
	if depth > maxDepth {
		return ErrRegisterPressure
	}
	dst := reg(depth)

	switch n := n.(type) {
	case *expr.Num:
		b.MovsdConst(dst, n.Value)
		return nil

	case *expr.Var:
		b.Movsd(dst, amd64.X0)
		return nil

	case *expr.Unary:
		if err := genNode(b, n.X, depth); err != nil {
			return err
		}
		switch n.Op {
		case expr.OpNeg:
			if depth+1 > maxDepth {
				return ErrRegisterPressure
			}
			b.MovsdConst(reg(depth+1), math.Copysign(0, -1))
			b.Xorpd(dst, reg(depth+1))
			return nil
		case expr.OpSqrt:
			b.Sqrtsd(dst, dst)
			return nil
		}
		return fmt.Errorf("unknown unary operator %v", n.Op)

	case *expr.Binary:
		if n.Op == expr.OpPow {
			return genPow(b, n, depth)
		}
		if err := genNode(b, n.L, depth); err != nil {
			return err
		}
		if err := genNode(b, n.R, depth+1); err != nil {
			return err
		}
		src := reg(depth + 1)
		switch n.Op {
		case expr.OpAdd:
			b.Addsd(dst, src)
		case expr.OpSub:
			b.Subsd(dst, src)
		case expr.OpMul:
			b.Mulsd(dst, src)
		case expr.OpDiv:
			b.Divsd(dst, src)
		default:
			return fmt.Errorf("unknown binary operator %v", n.Op)
		}
		return nil
	}
	return fmt.Errorf("unknown node type %T", n)
}

// genPow lowers base^exponent for the exponents we support: ±0.5 becomes a
// square root, an integral constant becomes an unrolled square-and-multiply
// chain, and a negative exponent takes the reciprocal of the positive power.
// Like the interpreter, base^0 is the constant 1 without evaluating the base.
func genPow(b *amd64.Builder, n *expr.Binary, depth int) error {
	e, err := powExponent(n.R)
	if err != nil {
		return err
	}
	dst := reg(depth)

	if e.sqrt {
		if err := genNode(b, n.L, depth); err != nil {
			return err
		}
		b.Sqrtsd(dst, dst)
		if e.negative {
			return genReciprocal(b, depth)
		}
		return nil
	}

	if e.n == 0 {
		b.MovsdConst(dst, 1)
		return nil
	}
	if err := genNode(b, n.L, depth); err != nil {
		return err
	}
	if e.n > 1 {
		// Square-and-multiply over the exponent's bits below the leading
		// one, most significant first, with the base parked in a scratch
		// register. powInt in eval.go performs the same multiplications in
		// the same order, so both paths round identically.
		if depth+1 > maxDepth {
			return ErrRegisterPressure
		}
		scratch := reg(depth + 1)
		b.Movsd(scratch, dst)
		for i := bits.Len64(e.n) - 2; i >= 0; i-- {
			b.Mulsd(dst, dst)
			if e.n>>uint(i)&1 == 1 {
				b.Mulsd(dst, scratch)
			}
		}
	}
	if e.negative {
		return genReciprocal(b, depth)
	}
	return nil
}

// genReciprocal replaces reg(depth) with its reciprocal.
func genReciprocal(b *amd64.Builder, depth int) error {
	if depth+1 > maxDepth {
		return ErrRegisterPressure
	}
	scratch := reg(depth + 1)
	b.MovsdConst(scratch, 1)
	b.Divsd(scratch, reg(depth))
	b.Movsd(reg(depth), scratch)
	return nil
}

// exponent is the analyzed right-hand side of ^.
type exponent struct {
	sqrt     bool   // |value| == 0.5
	n        uint64 // magnitude, when integral
	negative bool
}

// powExponent classifies an exponent subtree. Any subtree that does not read
// x is folded to a constant first, so 3^2, -(1+1) or 6/3 all qualify and
// 2^3^2 evaluates right-associatively to 512. The folded value must be ±0.5
// or integral with magnitude at most maxIntExponent; anything else (x in the
// exponent, 0.3, an overflowing chain) is ErrUnsupportedExponent.
func powExponent(n expr.Node) (exponent, error) {
	if expr.UsesVar(n) {
		return exponent{}, fmt.Errorf("%w: exponent depends on x", ErrUnsupportedExponent)
	}
	v, err := Eval(n, 0)
	if err != nil {
		return exponent{}, err
	}
	neg := math.Signbit(v)
	mag := math.Abs(v)
	if mag == 0.5 {
		return exponent{sqrt: true, negative: neg}, nil
	}
	if mag != math.Trunc(mag) || mag > maxIntExponent {
		return exponent{}, fmt.Errorf("%w: got %v", ErrUnsupportedExponent, v)
	}
	return exponent{n: uint64(mag), negative: neg}, nil
}
