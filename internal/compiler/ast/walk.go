package ast

import (
	"fmt"
	"strings"
)

// Visitor has its Visit method invoked for each node encountered by Walk.
// If the result is not nil, Walk visits each child with it, followed by a
// call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order: it starts by calling
// v.Visit(node); node must not be nil. If the returned visitor is not nil,
// Walk is invoked recursively for each non-nil child of node, followed by a
// call of w.Visit(nil).
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, d := range n.Definitions {
			Walk(v, d)
		}
	case *EntityDef:
		for _, f := range n.Fields {
			Walk(v, f)
		}
	case *RuleDef:
		Walk(v, n.Condition)
		walkActions(v, n.Actions)
	case *FlowDef:
		walkActions(v, n.Actions)
	case *ConstraintDef:
		Walk(v, n.Condition)
	case *BinaryCondition:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *Comparison:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *PredicateCall:
		for _, arg := range n.Args {
			Walk(v, arg)
		}
	case *Assignment:
		Walk(v, n.Value)
	case *IfAction:
		Walk(v, n.Condition)
		walkActions(v, n.Then)
		walkActions(v, n.Else)
	case *LoopAction:
		walkActions(v, n.Actions)
	case *FieldDef, *HaltAction, *Identifier, *NumberLiteral, *QualifiedRef:
		// leaves
	}

	v.Visit(nil)
}

func walkActions(v Visitor, actions []Action) {
	for _, a := range actions {
		Walk(v, a)
	}
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses an AST in depth-first order: it starts by calling
// f(node); node must not be nil. If f returns true, Inspect invokes f
// recursively for each of the non-nil children of node, followed by a call
// of f(nil).
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type dumper struct {
	b     strings.Builder
	depth int
}

func (d *dumper) Visit(node Node) Visitor {
	if node == nil {
		d.depth--
		return nil
	}
	d.b.WriteString(strings.Repeat("  ", d.depth))
	d.b.WriteString(describe(node))
	d.b.WriteByte('\n')
	d.depth++
	return d
}

// Dump renders the node tree as indented text, one node per line. Used by
// diagnostic tooling; the canonical source form lives in the printer package.
func Dump(node Node) string {
	d := &dumper{}
	Walk(d, node)
	return d.b.String()
}

func describe(node Node) string {
	switch n := node.(type) {
	case *Program:
		return fmt.Sprintf("Program (%d definitions)", len(n.Definitions))
	case *EntityDef:
		return "EntityDef " + n.Name
	case *FieldDef:
		return "FieldDef " + n.Name
	case *RuleDef:
		return "RuleDef " + n.Name
	case *FlowDef:
		return "FlowDef " + n.Name
	case *ConstraintDef:
		return "ConstraintDef " + n.Name
	case *BinaryCondition:
		return "BinaryCondition " + string(n.Op)
	case *Comparison:
		return "Comparison " + string(n.Op)
	case *PredicateCall:
		return fmt.Sprintf("PredicateCall %s/%d", n.Name, len(n.Args))
	case *Assignment:
		return "Assignment " + n.Variable
	case *IfAction:
		if n.Else != nil {
			return "IfAction with else"
		}
		return "IfAction"
	case *LoopAction:
		return "LoopAction"
	case *HaltAction:
		return "HaltAction"
	case *Identifier:
		return "Identifier " + n.Name
	case *NumberLiteral:
		return "NumberLiteral " + n.TokenLiteral()
	case *QualifiedRef:
		return "QualifiedRef " + n.TokenLiteral()
	default:
		return fmt.Sprintf("%T", node)
	}
}
