package token

import "fmt"

type TokenType string

// Position locates a token in its source buffer. Line and Column are
// 1-based, Offset is the byte offset of the token's first character.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token carries a kind, a payload matching that kind, and a position.
// Literal holds the text payload of identifiers, keywords and illegal
// characters; Value holds the integer payload of NUMBER. Tokens are built
// through New, WithText and WithValue so kind and payload cannot disagree.
type Token struct {
	Type    TokenType
	Literal string
	Value   int64
	Pos     Position
}

// New returns a token for a kind that carries no payload (symbols,
// operators, EOF).
func New(typ TokenType, pos Position) Token {
	return Token{Type: typ, Pos: pos}
}

// WithText returns a token carrying a text payload: an identifier or
// keyword spelling, or the single offending character of an ILLEGAL token.
func WithText(typ TokenType, text string, pos Position) Token {
	return Token{Type: typ, Literal: text, Pos: pos}
}

// WithValue returns a NUMBER token carrying its integer value.
func WithValue(value int64, pos Position) Token {
	return Token{Type: NUMBER, Value: value, Pos: pos}
}

func (t Token) String() string {
	switch t.Type {
	case IDENT, ILLEGAL:
		return fmt.Sprintf("%s(%s)", t.Type, t.Literal)
	case NUMBER:
		return fmt.Sprintf("%s(%d)", t.Type, t.Value)
	default:
		return string(t.Type)
	}
}

const (
	// Special
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers + literals
	IDENT  TokenType = "IDENT"
	NUMBER TokenType = "NUMBER"

	// Operators
	ASSIGN TokenType = "="

	// Comparison
	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="
	LT     TokenType = "<"
	GT     TokenType = ">"
	LT_EQ  TokenType = "<="
	GT_EQ  TokenType = ">="

	// Delimiters
	COLON TokenType = ":"
	COMMA TokenType = ","
	DOT   TokenType = "."

	LPAREN TokenType = "("
	RPAREN TokenType = ")"
	LBRACE TokenType = "{"
	RBRACE TokenType = "}"

	// Keywords
	ENTITY     TokenType = "ENTITY"
	RULE       TokenType = "RULE"
	FLOW       TokenType = "FLOW"
	CONSTRAINT TokenType = "CONSTRAINT"
	IF         TokenType = "IF"
	THEN       TokenType = "THEN"
	ELSE       TokenType = "ELSE"
	LOOP       TokenType = "LOOP"
	BREAK      TokenType = "BREAK"
	HALT       TokenType = "HALT"
	AND        TokenType = "AND"
	OR         TokenType = "OR"
)

var keywords = map[string]TokenType{
	"entity":     ENTITY,
	"rule":       RULE,
	"flow":       FLOW,
	"constraint": CONSTRAINT,
	"if":         IF,
	"then":       THEN,
	"else":       ELSE,
	"loop":       LOOP,
	"break":      BREAK,
	"halt":       HALT,
	"and":        AND,
	"or":         OR,
}

// LookupIdent resolves an identifier spelling against the keyword table.
// The table is built once and never mutated; all lexers share it.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
