// Package printer renders an AST back to canonical KERN source.
package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Trispn/KERN/internal/compiler/ast"
)

const indent = "    "

// Print returns the canonical source form of program: four-space indents,
// one blank line between definitions, one action per line in flow bodies.
// For any program the parser produced, parsing the output again yields an
// equal tree and no diagnostics.
func Print(program *ast.Program) string {
	var p printer
	p.program(program)
	return p.b.String()
}

// Fprint writes the canonical form of program to w.
func Fprint(w io.Writer, program *ast.Program) error {
	_, err := io.WriteString(w, Print(program))
	return err
}

type printer struct {
	b strings.Builder
}

func (p *printer) program(prog *ast.Program) {
	for i, def := range prog.Definitions {
		if i > 0 {
			p.b.WriteString("\n")
		}
		p.definition(def)
	}
}

func (p *printer) definition(def ast.Definition) {
	switch d := def.(type) {
	case *ast.EntityDef:
		p.entity(d)
	case *ast.RuleDef:
		p.rule(d)
	case *ast.FlowDef:
		p.flow(d)
	case *ast.ConstraintDef:
		p.constraint(d)
	}
}

func (p *printer) entity(d *ast.EntityDef) {
	if len(d.Fields) == 0 {
		fmt.Fprintf(&p.b, "entity %s {}\n", d.Name)
		return
	}
	fmt.Fprintf(&p.b, "entity %s {\n", d.Name)
	for _, field := range d.Fields {
		p.b.WriteString(indent)
		p.b.WriteString(field.Name)
		p.b.WriteString("\n")
	}
	p.b.WriteString("}\n")
}

func (p *printer) rule(d *ast.RuleDef) {
	fmt.Fprintf(&p.b, "rule %s: if %s then %s\n",
		d.Name, conditionString(d.Condition), actionListString(d.Actions))
}

func (p *printer) flow(d *ast.FlowDef) {
	fmt.Fprintf(&p.b, "flow %s {\n", d.Name)
	for i, action := range d.Actions {
		p.b.WriteString(indent)
		p.b.WriteString(actionString(action))
		if i < len(d.Actions)-1 {
			p.b.WriteString(",")
		}
		p.b.WriteString("\n")
	}
	p.b.WriteString("}\n")
}

func (p *printer) constraint(d *ast.ConstraintDef) {
	fmt.Fprintf(&p.b, "constraint %s: %s\n", d.Name, conditionString(d.Condition))
}

// conditionString needs no grouping: the grammar has no parentheses, so every
// parseable tree already nests ors above ands.
func conditionString(c ast.Condition) string {
	switch c := c.(type) {
	case *ast.BinaryCondition:
		return conditionString(c.Left) + " " + string(c.Op) + " " + conditionString(c.Right)
	case *ast.Comparison:
		return termString(c.Left) + " " + string(c.Op) + " " + termString(c.Right)
	case *ast.PredicateCall:
		// zero-argument predicates print bare in condition position
		if len(c.Args) == 0 {
			return c.Name
		}
		return callString(c)
	default:
		return ""
	}
}

func actionListString(actions []ast.Action) string {
	parts := make([]string, len(actions))
	for i, action := range actions {
		parts[i] = actionString(action)
	}
	return strings.Join(parts, ", ")
}

func actionString(a ast.Action) string {
	switch a := a.(type) {
	case *ast.PredicateCall:
		// action position always carries the argument list
		return callString(a)
	case *ast.Assignment:
		return a.Variable + " = " + termString(a.Value)
	case *ast.IfAction:
		s := "if " + conditionString(a.Condition) + " then " + actionListString(a.Then)
		if a.Else != nil {
			s += " else " + actionListString(a.Else)
		}
		return s
	case *ast.LoopAction:
		return "loop { " + actionListString(a.Actions) + " }"
	case *ast.HaltAction:
		return "halt"
	default:
		return ""
	}
}

func callString(c *ast.PredicateCall) string {
	args := make([]string, len(c.Args))
	for i, arg := range c.Args {
		args[i] = termString(arg)
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

func termString(t ast.Term) string {
	switch t := t.(type) {
	case *ast.Identifier:
		return t.Name
	case *ast.NumberLiteral:
		return strconv.FormatInt(t.Value, 10)
	case *ast.QualifiedRef:
		return t.Entity + "." + t.Field
	default:
		return ""
	}
}
