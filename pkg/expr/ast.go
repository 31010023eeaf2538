package expr

import (
	"fmt"
	"math"
	"strconv"
)

// Op is an arithmetic operator tag shared by Unary and Binary nodes.
type Op int

const (
	// Unary
	OpNeg  Op = iota // -x
	OpSqrt           // √x

	// Binary
	OpAdd // +
	OpSub // -
	OpMul // *
	OpDiv // /
	OpPow // ^
)

var opSymbols = [...]string{
	OpNeg:  "-",
	OpSqrt: "√",
	OpAdd:  "+",
	OpSub:  "-",
	OpMul:  "*",
	OpDiv:  "/",
	OpPow:  "^",
}

func (op Op) String() string {
	if int(op) >= 0 && int(op) < len(opSymbols) {
		return opSymbols[op]
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// Node is implemented by every AST node. The set of implementations is
// closed: Num, Var, Unary and Binary. Consumers type-switch over them and
// treat any other type as a programming error.
//
// Nodes form a strict tree. Each node is owned by its parent and never
// mutated after Parse returns; code generation and evaluation only read it.
type Node interface {
	node()
	String() string
}

// Num is a floating-point literal.
//
//	2*x + 3.5
//	          ^^^  Num{Value: 3.5}
type Num struct {
	Value float64
}

func (*Num) node() {}
func (n *Num) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// Var is a read of the single free variable x.
type Var struct{}

func (*Var) node()            {}
func (v *Var) String() string { return "x" }

// Unary represents Op X, i.e. -X or √X.
type Unary struct {
	Op Op
	X  Node
}

func (*Unary) node()            {}
func (u *Unary) String() string { return fmt.Sprintf("(%s %s)", u.Op, u.X) }

// Binary represents L Op R.
type Binary struct {
	Op Op
	L  Node
	R  Node
}

func (*Binary) node()            {}
func (b *Binary) String() string { return fmt.Sprintf("(%s %s %s)", b.L, b.Op, b.R) }

// Equal reports whether two trees are structurally identical. Num values
// compare bit-for-bit so that -0 and 0 stay distinct.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case *Num:
		b, ok := b.(*Num)
		return ok && sameFloat(a.Value, b.Value)
	case *Var:
		_, ok := b.(*Var)
		return ok
	case *Unary:
		b, ok := b.(*Unary)
		return ok && a.Op == b.Op && Equal(a.X, b.X)
	case *Binary:
		b, ok := b.(*Binary)
		return ok && a.Op == b.Op && Equal(a.L, b.L) && Equal(a.R, b.R)
	}
	return false
}

// sameFloat compares by bit pattern: NaN == NaN, -0 != 0.
func sameFloat(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b)
}

// UsesVar reports whether the tree reads x anywhere.
func UsesVar(n Node) bool {
	switch n := n.(type) {
	case *Unary:
		return UsesVar(n.X)
	case *Binary:
		return UsesVar(n.L) || UsesVar(n.R)
	case *Var:
		return true
	}
	return false
}
