package lexer

import (
	"testing"

	"github.com/Trispn/KERN/internal/compiler/token"
)

// TestCompleteProgram lexes a program using every definition kind in one pass.
func TestCompleteProgram(t *testing.T) {
	input := `entity Farmer {
    id
    location
    produce
}

rule PriceFloor:
    if price < 10 then price = 10, alert(price)

flow Harvest {
    collect(Farmer.produce),
    if stock >= 100 then ship() else store(),
    halt
}

constraint PositiveStock:
    stock >= 0 and stock <= 10000`

	expected := []struct {
		typ token.TokenType
		lit string
	}{
		{token.ENTITY, "entity"}, {token.IDENT, "Farmer"}, {token.LBRACE, ""},
		{token.IDENT, "id"}, {token.IDENT, "location"}, {token.IDENT, "produce"},
		{token.RBRACE, ""},

		{token.RULE, "rule"}, {token.IDENT, "PriceFloor"}, {token.COLON, ""},
		{token.IF, "if"}, {token.IDENT, "price"}, {token.LT, ""}, {token.NUMBER, ""},
		{token.THEN, "then"}, {token.IDENT, "price"}, {token.ASSIGN, ""}, {token.NUMBER, ""},
		{token.COMMA, ""}, {token.IDENT, "alert"}, {token.LPAREN, ""}, {token.IDENT, "price"},
		{token.RPAREN, ""},

		{token.FLOW, "flow"}, {token.IDENT, "Harvest"}, {token.LBRACE, ""},
		{token.IDENT, "collect"}, {token.LPAREN, ""}, {token.IDENT, "Farmer"},
		{token.DOT, ""}, {token.IDENT, "produce"}, {token.RPAREN, ""}, {token.COMMA, ""},
		{token.IF, "if"}, {token.IDENT, "stock"}, {token.GT_EQ, ""}, {token.NUMBER, ""},
		{token.THEN, "then"}, {token.IDENT, "ship"}, {token.LPAREN, ""}, {token.RPAREN, ""},
		{token.ELSE, "else"}, {token.IDENT, "store"}, {token.LPAREN, ""}, {token.RPAREN, ""},
		{token.COMMA, ""}, {token.HALT, "halt"},
		{token.RBRACE, ""},

		{token.CONSTRAINT, "constraint"}, {token.IDENT, "PositiveStock"}, {token.COLON, ""},
		{token.IDENT, "stock"}, {token.GT_EQ, ""}, {token.NUMBER, ""},
		{token.AND, "and"}, {token.IDENT, "stock"}, {token.LT_EQ, ""}, {token.NUMBER, ""},

		{token.EOF, ""},
	}

	l := New(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp.typ {
			t.Fatalf("test[%d] - wrong type. expected=%s, got=%s (literal=%q)", i, exp.typ, tok.Type, tok.Literal)
		}
		if exp.lit != "" && tok.Literal != exp.lit {
			t.Fatalf("test[%d] - wrong literal. expected=%q, got=%q", i, exp.lit, tok.Literal)
		}
	}
}
