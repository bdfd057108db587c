package diag

import (
	"fmt"
	"strings"

	"github.com/Trispn/KERN/internal/compiler/token"
)

// Diagnostic records one non-fatal lex/parse problem: a human-readable
// message and the source position it was raised at. Diagnostics are values;
// once produced they are never mutated.
type Diagnostic struct {
	Message string
	Pos     token.Position
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Pos, d.Message)
}

// UnexpectedToken reports a token that failed an expectation.
func UnexpectedToken(expected, actual token.TokenType, pos token.Position) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("expected %s, got %s", expected, actual),
		Pos:     pos,
	}
}

// UnexpectedEOF reports input that ended while a token was still required.
func UnexpectedEOF(expected token.TokenType, pos token.Position) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("unexpected end of input, expected %s", expected),
		Pos:     pos,
	}
}

// Errorf reports a grammar-rule-specific problem.
func Errorf(pos token.Position, format string, args ...any) Diagnostic {
	return Diagnostic{Message: fmt.Sprintf(format, args...), Pos: pos}
}

// List is an ordered collection of diagnostics, in the order encountered.
type List []Diagnostic

func (l List) HasErrors() bool {
	return len(l) > 0
}

func (l List) String() string {
	var b strings.Builder
	for _, d := range l {
		b.WriteString(d.Error())
		b.WriteByte('\n')
	}
	return b.String()
}
