package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/Trispn/KERN/internal/compiler/source"
)

// Renderer writes diagnostics with the offending source line and a caret
// marker underneath the reported column.
type Renderer struct {
	TabWidth int
}

func NewRenderer(tabWidth int) *Renderer {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	return &Renderer{TabWidth: tabWidth}
}

// Render writes one diagnostic. The header is name:line:col: message; when
// the position maps to a line of f, the line follows with tabs expanded and
// a caret under the column.
func (r *Renderer) Render(w io.Writer, d Diagnostic, f *source.File) {
	if f != nil && f.Name != "" {
		fmt.Fprintf(w, "%s:%s: %s\n", f.Name, d.Pos, d.Message)
	} else {
		fmt.Fprintf(w, "%s: %s\n", d.Pos, d.Message)
	}

	if f == nil || d.Pos.Line < 1 || d.Pos.Line > f.NumLines() || d.Pos.Column < 1 {
		return
	}

	line := f.Line(d.Pos.Line)
	expanded, caret := r.expand(line, d.Pos.Column)
	fmt.Fprintf(w, "    %s\n", expanded)
	fmt.Fprintf(w, "    %s^\n", strings.Repeat(" ", caret-1))
}

// RenderAll writes every diagnostic in order.
func (r *Renderer) RenderAll(w io.Writer, diags List, f *source.File) {
	for _, d := range diags {
		r.Render(w, d, f)
	}
}

// expand replaces tabs with spaces and maps a 1-based rune column into the
// expanded line.
func (r *Renderer) expand(line string, column int) (string, int) {
	var b strings.Builder
	caret := 1
	col := 0
	for _, ch := range line {
		col++
		width := 1
		if ch == '\t' {
			width = r.TabWidth
			b.WriteString(strings.Repeat(" ", width))
		} else {
			b.WriteRune(ch)
		}
		if col < column {
			caret += width
		}
	}
	return b.String(), caret
}
