package ast

import "encoding/json"

// JSON encoding for AST nodes. Every union-typed node serializes with a
// "kind" discriminator so consumers (and the playground) can rebuild the
// variant without reflection on Go types.

func (p *Program) MarshalJSON() ([]byte, error) {
	defs := p.Definitions
	if defs == nil {
		defs = []Definition{}
	}
	return json.Marshal(struct {
		Kind        string       `json:"kind"`
		Definitions []Definition `json:"definitions"`
	}{"Program", defs})
}

func (e *EntityDef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind   string      `json:"kind"`
		Name   string      `json:"name"`
		Fields []*FieldDef `json:"fields"`
	}{"EntityDef", e.Name, e.Fields})
}

func (f *FieldDef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
		Name string `json:"name"`
	}{"FieldDef", f.Name})
}

func (r *RuleDef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind      string    `json:"kind"`
		Name      string    `json:"name"`
		Condition Condition `json:"condition"`
		Actions   []Action  `json:"actions"`
	}{"RuleDef", r.Name, r.Condition, r.Actions})
}

func (f *FlowDef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    string   `json:"kind"`
		Name    string   `json:"name"`
		Actions []Action `json:"actions"`
	}{"FlowDef", f.Name, f.Actions})
}

func (c *ConstraintDef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind      string    `json:"kind"`
		Name      string    `json:"name"`
		Condition Condition `json:"condition"`
	}{"ConstraintDef", c.Name, c.Condition})
}

func (b *BinaryCondition) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string    `json:"kind"`
		Op    LogicalOp `json:"op"`
		Left  Condition `json:"left"`
		Right Condition `json:"right"`
	}{"BinaryCondition", b.Op, b.Left, b.Right})
}

func (c *Comparison) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string     `json:"kind"`
		Op    Comparator `json:"op"`
		Left  Term       `json:"left"`
		Right Term       `json:"right"`
	}{"Comparison", c.Op, c.Left, c.Right})
}

func (p *PredicateCall) MarshalJSON() ([]byte, error) {
	args := p.Args
	if args == nil {
		args = []Term{}
	}
	return json.Marshal(struct {
		Kind string `json:"kind"`
		Name string `json:"name"`
		Args []Term `json:"args"`
	}{"PredicateCall", p.Name, args})
}

func (a *Assignment) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind     string `json:"kind"`
		Variable string `json:"variable"`
		Value    Term   `json:"value"`
	}{"Assignment", a.Variable, a.Value})
}

func (i *IfAction) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind      string    `json:"kind"`
		Condition Condition `json:"condition"`
		Then      []Action  `json:"then"`
		Else      []Action  `json:"else,omitempty"`
	}{"IfAction", i.Condition, i.Then, i.Else})
}

func (l *LoopAction) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    string   `json:"kind"`
		Actions []Action `json:"actions"`
	}{"LoopAction", l.Actions})
}

func (h *HaltAction) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
	}{"HaltAction"})
}

func (i *Identifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
		Name string `json:"name"`
	}{"Identifier", i.Name})
}

func (n *NumberLiteral) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string `json:"kind"`
		Value int64  `json:"value"`
	}{"NumberLiteral", n.Value})
}

func (q *QualifiedRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind   string `json:"kind"`
		Entity string `json:"entity"`
		Field  string `json:"field"`
	}{"QualifiedRef", q.Entity, q.Field})
}
