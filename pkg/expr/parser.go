package expr

import (
	"fmt"
	"strconv"
)

// Parser consumes the flat token slice produced by Lex and builds an AST.
//
// Grammar (lowest to highest precedence):
//
//	expr   = term (("+" | "-") term)*
//	term   = unary (("*" | "/") unary)*
//	unary  = "-" unary | power
//	power  = base ("^" unary)?            right-associative
//	base   = "√" atom | atom
//	atom   = NUMBER | "x" | "(" expr ")"
//
// A single left-to-right pass with one token of lookahead; no backtracking.
// Unary minus binds tighter than binary +/- but looser than ^, so -x^2 is
// -(x^2) while x^-2 is x^(-2). √ applies to the tightest atom that follows
// it, calculator style: √x^2 is (√x)^2 and √4*9 is (√4)*9.
type Parser struct {
	tokens []Token
	pos    int
}

// Parse turns a one-line arithmetic expression over the free variable x into
// an AST. The whole input must reduce to a single expression; anything left
// over is a *SyntaxError.
func Parse(src string) (Node, error) {
	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}
	p := &Parser{tokens: tokens}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != EOF {
		return nil, p.errf(tok, "unexpected %s %q after expression", tok.Type, tok.Lexeme)
	}
	return root, nil
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[p.pos]
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches tt, otherwise errors.
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.advance()
	if tok.Type != tt {
		return tok, p.errf(tok, "expected %s, got %s (%q)", tt, tok.Type, tok.Lexeme)
	}
	return tok, nil
}

func (p *Parser) errf(tok Token, format string, args ...any) error {
	return &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf(format, args...)}
}

// parseExpr handles + and - (lowest precedence, left-associative).
func (p *Parser) parseExpr() (Node, error) {
	node, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		var op Op
		switch p.peek().Type {
		case PLUS:
			op = OpAdd
		case MINUS:
			op = OpSub
		default:
			return node, nil
		}
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		node = &Binary{Op: op, L: node, R: right}
	}
}

// parseTerm handles * and / (left-associative).
func (p *Parser) parseTerm() (Node, error) {
	node, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op Op
		switch p.peek().Type {
		case STAR:
			op = OpMul
		case SLASH:
			op = OpDiv
		default:
			return node, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		node = &Binary{Op: op, L: node, R: right}
	}
}

// parseUnary handles prefix minus.
func (p *Parser) parseUnary() (Node, error) {
	if p.peek().Type == MINUS {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: OpNeg, X: operand}, nil
	}
	return p.parsePower()
}

// parsePower handles ^ (right-associative: 2^3^2 is 2^(3^2)). The exponent
// re-enters at the unary level so that x^-2 parses without parentheses.
func (p *Parser) parsePower() (Node, error) {
	base, err := p.parseBase()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != CARET {
		return base, nil
	}
	p.advance()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: OpPow, L: base, R: exp}, nil
}

// parseBase handles prefix √, which grabs only the atom after it.
func (p *Parser) parseBase() (Node, error) {
	if p.peek().Type == SQRT {
		p.advance()
		operand, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: OpSqrt, X: operand}, nil
	}
	return p.parseAtom()
}

// parseAtom handles literals, the variable and parenthesized expressions.
func (p *Parser) parseAtom() (Node, error) {
	tok := p.advance()
	switch tok.Type {
	case NUMBER:
		v, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, p.errf(tok, "bad number literal %q", tok.Lexeme)
		}
		return &Num{Value: v}, nil
	case X:
		return &Var{}, nil
	case LPAREN:
		node, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return node, nil
	case EOF:
		return nil, p.errf(tok, "unexpected end of input")
	}
	return nil, p.errf(tok, "unexpected %s (%q)", tok.Type, tok.Lexeme)
}
