package expr

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// SyntaxError reports malformed input: an unexpected rune or token, an
// unmatched parenthesis, a misplaced operator, or trailing text.
type SyntaxError struct {
	Pos int    // byte offset into the input
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

// singleRunes maps each one-rune token to its TokenType.
var singleRunes = map[rune]TokenType{
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
	'^': CARET,
	'√': SQRT,
	'(': LPAREN,
	')': RPAREN,
	'x': X,
}

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src []rune
	pos int // index of the next rune to consume
	off int // byte offset of the next rune, for error positions
}

func newLexer(src string) *Lexer {
	return &Lexer{src: []rune(src)}
}

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	l.off += utf8.RuneLen(r)
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

// number scans a literal: digits with at most one decimal point. No exponent
// notation and no sign; a leading '-' is the unary-minus production.
func (l *Lexer) number() (Token, error) {
	start := l.off
	var lexeme []rune
	sawDot := false
	for {
		r := l.peek()
		switch {
		case unicode.IsDigit(r):
			lexeme = append(lexeme, l.advance())
		case r == '.':
			if sawDot {
				return Token{}, &SyntaxError{Pos: l.off, Msg: "second decimal point in number"}
			}
			sawDot = true
			lexeme = append(lexeme, l.advance())
		default:
			if sawDot && len(lexeme) == 1 {
				return Token{}, &SyntaxError{Pos: start, Msg: "decimal point with no digits"}
			}
			return Token{Type: NUMBER, Lexeme: string(lexeme), Pos: start}, nil
		}
	}
}

// Lex scans src into a flat token slice ending in an EOF token.
func Lex(src string) ([]Token, error) {
	l := newLexer(src)
	var tokens []Token

	for {
		l.skipWhitespace()
		if l.pos >= len(l.src) {
			tokens = append(tokens, Token{Type: EOF, Pos: l.off})
			return tokens, nil
		}

		start := l.off
		r := l.peek()
		switch {
		case unicode.IsDigit(r) || r == '.':
			tok, err := l.number()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		default:
			tt, ok := singleRunes[r]
			if !ok {
				return nil, &SyntaxError{Pos: start, Msg: fmt.Sprintf("unexpected character %q", r)}
			}
			l.advance()
			tokens = append(tokens, Token{Type: tt, Lexeme: string(r), Pos: start})
		}
	}
}
