package lexer

import (
	"testing"

	"github.com/Trispn/KERN/internal/compiler/token"
)

func TestBasicTokens(t *testing.T) {
	input := `: , . ( ) { } =`

	expected := []token.TokenType{
		token.COLON, token.COMMA, token.DOT, token.LPAREN, token.RPAREN,
		token.LBRACE, token.RBRACE, token.ASSIGN,
		token.EOF,
	}

	l := New(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp {
			t.Fatalf("test[%d] - wrong type. expected=%s, got=%s (literal=%q)", i, exp, tok.Type, tok.Literal)
		}
	}
}

func TestComparisonOperators(t *testing.T) {
	input := `== != > < >= <=`

	expected := []token.TokenType{
		token.EQ, token.NOT_EQ, token.GT, token.LT, token.GT_EQ, token.LT_EQ,
		token.EOF,
	}

	l := New(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp {
			t.Fatalf("test[%d] - wrong type. expected=%s, got=%s", i, exp, tok.Type)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := `entity rule flow constraint if then else loop break halt and or`

	expected := []token.TokenType{
		token.ENTITY, token.RULE, token.FLOW, token.CONSTRAINT, token.IF,
		token.THEN, token.ELSE, token.LOOP, token.BREAK, token.HALT,
		token.AND, token.OR,
	}

	l := New(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp {
			t.Fatalf("test[%d] - expected %s, got %s(%q)", i, exp, tok.Type, tok.Literal)
		}
		if tok.Literal == "" {
			t.Fatalf("test[%d] - keyword %s lost its spelling", i, exp)
		}
	}
}

func TestEntityDeclaration(t *testing.T) {
	input := `entity Farmer { id location produce }`

	expected := []struct {
		typ token.TokenType
		lit string
	}{
		{token.ENTITY, "entity"},
		{token.IDENT, "Farmer"},
		{token.LBRACE, ""},
		{token.IDENT, "id"},
		{token.IDENT, "location"},
		{token.IDENT, "produce"},
		{token.RBRACE, ""},
		{token.EOF, ""},
	}

	l := New(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp.typ {
			t.Fatalf("test[%d] - wrong type. expected=%s, got=%s (literal=%q)", i, exp.typ, tok.Type, tok.Literal)
		}
		if tok.Literal != exp.lit {
			t.Fatalf("test[%d] - wrong literal. expected=%q, got=%q", i, exp.lit, tok.Literal)
		}
	}
}

func TestNumbers(t *testing.T) {
	input := `0 42 1000 9223372036854775807`

	expected := []int64{0, 42, 1000, 9223372036854775807}

	l := New(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != token.NUMBER {
			t.Fatalf("test[%d] - expected NUMBER, got %s", i, tok.Type)
		}
		if tok.Value != exp {
			t.Fatalf("test[%d] - expected value %d, got %d", i, exp, tok.Value)
		}
	}

	// A digit run too large for int64 still lexes as one NUMBER, value zero
	l = New("9223372036854775808")
	tok := l.NextToken()
	if tok.Type != token.NUMBER || tok.Value != 0 {
		t.Fatalf("overflow - expected NUMBER(0), got %s(%d)", tok.Type, tok.Value)
	}
	if tok = l.NextToken(); tok.Type != token.EOF {
		t.Fatalf("overflow - expected EOF after number, got %s", tok.Type)
	}
}

func TestIllegalBang(t *testing.T) {
	input := `entity test ! invalid`

	expected := []struct {
		typ token.TokenType
		lit string
	}{
		{token.ENTITY, "entity"},
		{token.IDENT, "test"},
		{token.ILLEGAL, "!"},
		{token.IDENT, "invalid"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp.typ || tok.Literal != exp.lit {
			t.Fatalf("test[%d] - expected %s(%q), got %s(%q)", i, exp.typ, exp.lit, tok.Type, tok.Literal)
		}
	}
}

func TestIllegalQuotes(t *testing.T) {
	input := `log("hello")`

	expected := []struct {
		typ token.TokenType
		lit string
	}{
		{token.IDENT, "log"},
		{token.LPAREN, ""},
		{token.ILLEGAL, `"`},
		{token.IDENT, "hello"},
		{token.ILLEGAL, `"`},
		{token.RPAREN, ""},
		{token.EOF, ""},
	}

	l := New(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp.typ || tok.Literal != exp.lit {
			t.Fatalf("test[%d] - expected %s(%q), got %s(%q)", i, exp.typ, exp.lit, tok.Type, tok.Literal)
		}
	}

	l = New(`'x'`)
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL || tok.Literal != "'" {
		t.Fatalf("single quote - expected ILLEGAL('), got %s(%q)", tok.Type, tok.Literal)
	}
}

func TestIllegalConsumesOneChar(t *testing.T) {
	input := `#@;~`

	l := New(input)
	for i, exp := range []string{"#", "@", ";", "~"} {
		tok := l.NextToken()
		if tok.Type != token.ILLEGAL || tok.Literal != exp {
			t.Fatalf("test[%d] - expected ILLEGAL(%q), got %s(%q)", i, exp, tok.Type, tok.Literal)
		}
	}
	if tok := l.NextToken(); tok.Type != token.EOF {
		t.Fatalf("expected EOF after illegal run, got %s", tok.Type)
	}
}

func TestAssignVersusEqual(t *testing.T) {
	input := `x = 1 === 2`

	expected := []token.TokenType{
		token.IDENT, token.ASSIGN, token.NUMBER,
		token.EQ, token.ASSIGN, token.NUMBER,
		token.EOF,
	}

	l := New(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp {
			t.Fatalf("test[%d] - expected %s, got %s", i, exp, tok.Type)
		}
	}
}

func TestPositionTracking(t *testing.T) {
	input := "entity A {\n  id\n}\n"

	expected := []struct {
		typ    token.TokenType
		line   int
		column int
		offset int
	}{
		{token.ENTITY, 1, 1, 0},
		{token.IDENT, 1, 8, 7},
		{token.LBRACE, 1, 10, 9},
		{token.IDENT, 2, 3, 13},
		{token.RBRACE, 3, 1, 16},
		{token.EOF, 4, 0, 18},
	}

	l := New(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp.typ {
			t.Fatalf("test[%d] - expected %s, got %s", i, exp.typ, tok.Type)
		}
		if tok.Pos.Line != exp.line || tok.Pos.Column != exp.column || tok.Pos.Offset != exp.offset {
			t.Fatalf("test[%d] - %s at %d:%d offset %d, want %d:%d offset %d",
				i, tok.Type, tok.Pos.Line, tok.Pos.Column, tok.Pos.Offset, exp.line, exp.column, exp.offset)
		}
	}
}

func TestPositionsMonotonic(t *testing.T) {
	input := "rule r:\n  if a == 1 then halt # ! bad\nflow f { step() }"

	l := New(input)
	prev := token.Position{}
	for {
		tok := l.NextToken()
		if tok.Pos.Offset < prev.Offset || tok.Pos.Line < prev.Line {
			t.Fatalf("position went backwards: %v after %v", tok.Pos, prev)
		}
		prev = tok.Pos
		if tok.Type == token.EOF {
			break
		}
	}
}

func TestEOFExactlyOnce(t *testing.T) {
	inputs := []string{"", "   \n\t  ", "entity", "?!%", "a b c 1 2 3"}

	for _, input := range inputs {
		l := New(input)
		count := 0
		for i := 0; i < len(input)+2; i++ {
			tok := l.NextToken()
			if tok.Type == token.EOF {
				count++
				break
			}
		}
		if count != 1 {
			t.Fatalf("input %q - token stream did not end in EOF", input)
		}
	}
}

func TestDeterministic(t *testing.T) {
	input := "entity E { a b }\nrule r: if a > 1 then halt\n! $"

	first := collectTokens(New(input))
	second := collectTokens(New(input))

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("token[%d] differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func collectTokens(l *Lexer) []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}
