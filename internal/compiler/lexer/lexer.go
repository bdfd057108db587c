package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/Trispn/KERN/internal/compiler/token"
)

// Lexer is a single-pass pull scanner over one source buffer. It is not
// restartable; re-lexing the same text requires a new instance.
type Lexer struct {
	input        string
	position     int  // current offset in input (bytes)
	readPosition int  // next reading position (bytes)
	ch           rune // current character
	line         int  // current line (1-based)
	column       int  // current column (1-based)
}

func New(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
	} else {
		r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += size

		if l.ch == '\n' {
			l.line++
			l.column = 0
		} else {
			l.column++
		}
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.column,
		Offset: l.position,
	}
}

// NextToken returns the next token and consumes at least one character
// whenever input remains, so pulling tokens always terminates. Once EOF is
// reached every subsequent call returns EOF again; callers stop at the first.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	pos := l.currentPos()

	var tok token.Token

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.New(token.EQ, pos)
			l.readChar()
			return tok
		}
		tok = token.New(token.ASSIGN, pos)
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.New(token.NOT_EQ, pos)
			l.readChar()
			return tok
		}
		// bare negation is not part of the grammar
		tok = token.WithText(token.ILLEGAL, string(l.ch), pos)
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.New(token.LT_EQ, pos)
			l.readChar()
			return tok
		}
		tok = token.New(token.LT, pos)
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.New(token.GT_EQ, pos)
			l.readChar()
			return tok
		}
		tok = token.New(token.GT, pos)
	case ':':
		tok = token.New(token.COLON, pos)
	case ',':
		tok = token.New(token.COMMA, pos)
	case '.':
		tok = token.New(token.DOT, pos)
	case '(':
		tok = token.New(token.LPAREN, pos)
	case ')':
		tok = token.New(token.RPAREN, pos)
	case '{':
		tok = token.New(token.LBRACE, pos)
	case '}':
		tok = token.New(token.RBRACE, pos)
	case '\'', '"':
		// KERN has no string-literal syntax; quotes are rejected, not lexed
		tok = token.WithText(token.ILLEGAL, string(l.ch), pos)
	case 0:
		return token.New(token.EOF, pos)
	default:
		if isLetter(l.ch) {
			lit := l.readIdentifier()
			return token.WithText(token.LookupIdent(lit), lit, pos)
		}
		if isDigit(l.ch) {
			lit := l.readNumber()
			value, err := strconv.ParseInt(lit, 10, 64)
			if err != nil {
				// out-of-range literals lex as zero
				value = 0
			}
			return token.WithValue(value, pos)
		}
		tok = token.WithText(token.ILLEGAL, string(l.ch), pos)
	}

	l.readChar()
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readNumber() string {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	return unicode.IsDigit(ch)
}
