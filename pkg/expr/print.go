package expr

import "strconv"

// Operator precedence, used by Format to decide where parentheses are
// required for the output to parse back to the same tree.
func prec(n Node) int {
	switch n := n.(type) {
	case *Binary:
		switch n.Op {
		case OpAdd, OpSub:
			return 1
		case OpMul, OpDiv:
			return 2
		case OpPow:
			return 4
		}
	case *Unary:
		if n.Op == OpNeg {
			return 3
		}
		return 5 // √
	}
	return 6 // atoms
}

// Format renders a tree as infix text with the fewest parentheses that still
// round-trip: Parse(Format(n)) is structurally equal to n, for any tree
// whose literals are non-negative finite values (a negative literal would
// re-parse as unary minus applied to its absolute value).
func Format(n Node) string {
	switch n := n.(type) {
	case *Num:
		// Fixed notation: the lexer has no exponent form.
		return strconv.FormatFloat(n.Value, 'f', -1, 64)
	case *Var:
		return "x"
	case *Unary:
		operand := Format(n.X)
		if n.Op == OpSqrt {
			// √ grabs only the atom that follows it.
			if prec(n.X) < 6 {
				operand = "(" + operand + ")"
			}
			return "√" + operand
		}
		if prec(n.X) < prec(n) {
			operand = "(" + operand + ")"
		}
		return "-" + operand
	case *Binary:
		left, right := Format(n.L), Format(n.R)
		if n.Op == OpPow {
			// The base slot only admits √-or-atom; the exponent slot
			// re-enters at the unary level, so -2 needs no parentheses.
			if prec(n.L) < 5 {
				left = "(" + left + ")"
			}
			if prec(n.R) < 3 {
				right = "(" + right + ")"
			}
			return left + "^" + right
		}
		p := prec(n)
		if prec(n.L) < p {
			left = "(" + left + ")"
		}
		if prec(n.R) <= p {
			right = "(" + right + ")"
		}
		return left + " " + n.Op.String() + " " + right
	}
	return "<invalid>"
}
