package expr

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	NUMBER // number literal, e.g. 3 or 2.5
	X      // the single free variable "x"

	// Operators
	PLUS  // +
	MINUS // -
	STAR  // *
	SLASH // /
	CARET // ^
	SQRT  // √

	// Paired delimiters
	LPAREN // (
	RPAREN // )
)

// tokenNames is indexed by TokenType.
var tokenNames = [...]string{
	EOF:    "EOF",
	NUMBER: "NUMBER",
	X:      "X",
	PLUS:   "PLUS",
	MINUS:  "MINUS",
	STAR:   "STAR",
	SLASH:  "SLASH",
	CARET:  "CARET",
	SQRT:   "SQRT",
	LPAREN: "LPAREN",
	RPAREN: "RPAREN",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a single lexical unit produced by Lex.
type Token struct {
	Type   TokenType
	Lexeme string // the exact source text that was matched
	Pos    int    // byte offset of the first rune in the input
}

func (t Token) String() string {
	return fmt.Sprintf("%-7s %-8q  pos %d", t.Type, t.Lexeme, t.Pos)
}
