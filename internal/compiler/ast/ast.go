package ast

import "strconv"

// Node is the base interface for all AST nodes
type Node interface {
	TokenLiteral() string
}

// Program is the root node: the ordered top-level definitions of one source
// buffer. It is exclusively owned by the caller once parsing returns, and
// neither it nor any descendant node is mutated afterwards.
type Program struct {
	Definitions []Definition
}

func (p *Program) TokenLiteral() string { return "program" }

// Definition is the interface for top-level definitions
type Definition interface {
	Node
	definitionNode()
}

// Condition is the interface for boolean conditions in rules and constraints
type Condition interface {
	Node
	conditionNode()
}

// Action is the interface for executable steps in rules and flows
type Action interface {
	Node
	actionNode()
}

// Term is the interface for atomic operands
type Term interface {
	Node
	termNode()
}

// ============ DEFINITIONS ============

// EntityDef represents an entity definition: entity Farmer { id location }
type EntityDef struct {
	Name   string
	Fields []*FieldDef
}

func (e *EntityDef) TokenLiteral() string { return "entity" }
func (e *EntityDef) definitionNode()      {}

// FieldDef represents a single entity field
type FieldDef struct {
	Name string
}

func (f *FieldDef) TokenLiteral() string { return f.Name }

// RuleDef represents a rule: rule Price: if stock < 10 then alert(stock)
type RuleDef struct {
	Name      string
	Condition Condition
	Actions   []Action
}

func (r *RuleDef) TokenLiteral() string { return "rule" }
func (r *RuleDef) definitionNode()      {}

// FlowDef represents a flow: flow Harvest { collect(), halt }
type FlowDef struct {
	Name    string
	Actions []Action
}

func (f *FlowDef) TokenLiteral() string { return "flow" }
func (f *FlowDef) definitionNode()      {}

// ConstraintDef represents a constraint: constraint Positive: stock >= 0
type ConstraintDef struct {
	Name      string
	Condition Condition
}

func (c *ConstraintDef) TokenLiteral() string { return "constraint" }
func (c *ConstraintDef) definitionNode()      {}

// ============ CONDITIONS ============

// LogicalOp combines two conditions
type LogicalOp string

const (
	LogicalAnd LogicalOp = "and"
	LogicalOr  LogicalOp = "or"
)

// BinaryCondition combines two conditions with and/or. The parser builds
// these left-associative, with or binding looser than and.
type BinaryCondition struct {
	Op    LogicalOp
	Left  Condition
	Right Condition
}

func (b *BinaryCondition) TokenLiteral() string { return string(b.Op) }
func (b *BinaryCondition) conditionNode()       {}

// Comparator is a relational operator between two terms
type Comparator string

const (
	CompEqual        Comparator = "=="
	CompNotEqual     Comparator = "!="
	CompGreater      Comparator = ">"
	CompLess         Comparator = "<"
	CompGreaterEqual Comparator = ">="
	CompLessEqual    Comparator = "<="
)

// Comparison relates two terms: price < 10
type Comparison struct {
	Left  Term
	Op    Comparator
	Right Term
}

func (c *Comparison) TokenLiteral() string { return string(c.Op) }
func (c *Comparison) conditionNode()       {}

// ============ ACTIONS ============

// PredicateCall invokes a named predicate: alert(price, 10). In condition
// position a call, or a bare identifier standing for a zero-argument call,
// is a boolean test; PredicateCall therefore satisfies both Action and
// Condition.
type PredicateCall struct {
	Name string
	Args []Term
}

func (p *PredicateCall) TokenLiteral() string { return p.Name }
func (p *PredicateCall) actionNode()          {}
func (p *PredicateCall) conditionNode()       {}

// Assignment binds a term to a variable: price = 10
type Assignment struct {
	Variable string
	Value    Term
}

func (a *Assignment) TokenLiteral() string { return "=" }
func (a *Assignment) actionNode()          {}

// IfAction branches inside an action list: if c then a1, a2 else a3.
// Else is nil when no else branch was written.
type IfAction struct {
	Condition Condition
	Then      []Action
	Else      []Action
}

func (i *IfAction) TokenLiteral() string { return "if" }
func (i *IfAction) actionNode()          {}

// LoopAction repeats its body until the VM breaks out: loop { step() }
type LoopAction struct {
	Actions []Action
}

func (l *LoopAction) TokenLiteral() string { return "loop" }
func (l *LoopAction) actionNode()          {}

// HaltAction stops execution of the enclosing rule or flow
type HaltAction struct{}

func (h *HaltAction) TokenLiteral() string { return "halt" }
func (h *HaltAction) actionNode()          {}

// ============ TERMS ============

// Identifier names a variable or entity
type Identifier struct {
	Name string
}

func (i *Identifier) TokenLiteral() string { return i.Name }
func (i *Identifier) termNode()            {}

// NumberLiteral is an integer literal; KERN has no fractional numbers
type NumberLiteral struct {
	Value int64
}

func (n *NumberLiteral) TokenLiteral() string { return strconv.FormatInt(n.Value, 10) }
func (n *NumberLiteral) termNode()            {}

// QualifiedRef names a field through its entity: Farmer.produce
type QualifiedRef struct {
	Entity string
	Field  string
}

func (q *QualifiedRef) TokenLiteral() string { return q.Entity + "." + q.Field }
func (q *QualifiedRef) termNode()            {}
