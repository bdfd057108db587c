package parser

import (
	"github.com/Trispn/KERN/internal/compiler/ast"
	"github.com/Trispn/KERN/internal/compiler/diag"
	"github.com/Trispn/KERN/internal/compiler/interner"
	"github.com/Trispn/KERN/internal/compiler/lexer"
	"github.com/Trispn/KERN/internal/compiler/token"
)

// DefaultMaxDiagnostics bounds how many diagnostics one parse records before
// giving up on the rest of the input.
const DefaultMaxDiagnostics = 100

// Options configures parser behavior.
type Options struct {
	// MaxDiagnostics caps recorded diagnostics; values <= 0 select
	// DefaultMaxDiagnostics.
	MaxDiagnostics int
	// Interner, when non-nil, dedups identifier spellings entering the AST.
	// A shared Interner must come from interner.New; it is safe across
	// concurrent parsers.
	Interner *interner.Interner
}

// Parser consumes one Lexer's token stream with a single token of lookahead
// and builds a Program. It never fails outright: syntax problems become
// diagnostics and parsing resumes at the next definition keyword.
type Parser struct {
	l         *lexer.Lexer
	curToken  token.Token
	peekToken token.Token
	diags     diag.List
	opts      Options
	tooMany   bool
}

func New(l *lexer.Lexer) *Parser {
	return NewWithOptions(l, Options{})
}

func NewWithOptions(l *lexer.Lexer, opts Options) *Parser {
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = DefaultMaxDiagnostics
	}
	p := &Parser{
		l:    l,
		opts: opts,
	}
	p.nextToken()
	p.nextToken()
	return p
}

// Parse lexes and parses input in one call. The returned Program is always
// non-nil; callers must inspect the diagnostics to learn whether it is
// complete.
func Parse(input string) (*ast.Program, diag.List) {
	p := New(lexer.New(input))
	program := p.ParseProgram()
	return program, p.Diagnostics()
}

// Diagnostics returns every problem recorded so far, in source order.
func (p *Parser) Diagnostics() diag.List {
	return p.diags
}

func (p *Parser) record(d diag.Diagnostic) {
	if len(p.diags) >= p.opts.MaxDiagnostics {
		if !p.tooMany {
			p.tooMany = true
			p.diags = append(p.diags, diag.Errorf(d.Pos, "too many errors, giving up"))
		}
		return
	}
	p.diags = append(p.diags, d)
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

// expectToken consumes and returns the current token when its kind matches.
// Otherwise it records a diagnostic at the current position and reports
// failure; callers unwind to the ParseProgram loop, which resynchronizes.
// This is the only error-signaling path the grammar rules use.
func (p *Parser) expectToken(t token.TokenType) (token.Token, bool) {
	if p.curTokenIs(t) {
		tok := p.curToken
		p.nextToken()
		return tok, true
	}
	if p.curTokenIs(token.EOF) {
		p.record(diag.UnexpectedEOF(t, p.curToken.Pos))
	} else {
		p.record(diag.UnexpectedToken(t, p.curToken.Type, p.curToken.Pos))
	}
	return token.Token{}, false
}

func (p *Parser) internIdent(name string) string {
	if p.opts.Interner != nil {
		return p.opts.Interner.Intern(name)
	}
	return name
}

// synchronize skips tokens until the current one can start a new top-level
// definition. This bounds error cascades to one diagnostic per malformed
// definition instead of one per mis-parsed token.
func (p *Parser) synchronize() {
	for !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.ENTITY, token.RULE, token.FLOW, token.CONSTRAINT:
			return
		}
		p.nextToken()
	}
}

func (p *Parser) fastForward() {
	for !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
}

// ParseProgram is the entry point. It always returns a non-nil Program,
// holding every definition that parsed cleanly; malformed definitions are
// recorded as diagnostics and skipped whole.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{Definitions: []ast.Definition{}}

	for !p.curTokenIs(token.EOF) {
		if p.tooMany {
			p.fastForward()
			break
		}
		def, ok := p.parseDefinition()
		if !ok {
			p.synchronize()
			continue
		}
		program.Definitions = append(program.Definitions, def)
	}

	return program
}

func (p *Parser) parseDefinition() (ast.Definition, bool) {
	switch p.curToken.Type {
	case token.ENTITY:
		return p.parseEntityDef()
	case token.RULE:
		return p.parseRuleDef()
	case token.FLOW:
		return p.parseFlowDef()
	case token.CONSTRAINT:
		return p.parseConstraintDef()
	default:
		p.record(diag.Errorf(p.curToken.Pos,
			"expected entity, rule, flow or constraint, got %s", p.curToken.Type))
		return nil, false
	}
}

// parseName consumes the identifier naming a definition or predicate.
func (p *Parser) parseName(kind string) (string, bool) {
	if !p.curTokenIs(token.IDENT) {
		if p.curTokenIs(token.EOF) {
			p.record(diag.UnexpectedEOF(token.IDENT, p.curToken.Pos))
		} else {
			p.record(diag.Errorf(p.curToken.Pos,
				"expected identifier for %s name, got %s", kind, p.curToken.Type))
		}
		return "", false
	}
	name := p.internIdent(p.curToken.Literal)
	p.nextToken()
	return name, true
}

// parseEntityDef parses: 'entity' IDENT '{' FieldDef* '}'
func (p *Parser) parseEntityDef() (ast.Definition, bool) {
	if _, ok := p.expectToken(token.ENTITY); !ok {
		return nil, false
	}
	name, ok := p.parseName("entity")
	if !ok {
		return nil, false
	}
	if _, ok := p.expectToken(token.LBRACE); !ok {
		return nil, false
	}

	fields := []*ast.FieldDef{}
	for p.curTokenIs(token.IDENT) {
		fields = append(fields, &ast.FieldDef{Name: p.internIdent(p.curToken.Literal)})
		p.nextToken()
	}

	if _, ok := p.expectToken(token.RBRACE); !ok {
		return nil, false
	}
	return &ast.EntityDef{Name: name, Fields: fields}, true
}

// parseRuleDef parses: 'rule' IDENT ':' 'if' Condition 'then' ActionList
func (p *Parser) parseRuleDef() (ast.Definition, bool) {
	if _, ok := p.expectToken(token.RULE); !ok {
		return nil, false
	}
	name, ok := p.parseName("rule")
	if !ok {
		return nil, false
	}
	if _, ok := p.expectToken(token.COLON); !ok {
		return nil, false
	}
	if _, ok := p.expectToken(token.IF); !ok {
		return nil, false
	}
	condition, ok := p.parseCondition()
	if !ok {
		return nil, false
	}
	if _, ok := p.expectToken(token.THEN); !ok {
		return nil, false
	}
	actions, ok := p.parseActionList()
	if !ok {
		return nil, false
	}
	return &ast.RuleDef{Name: name, Condition: condition, Actions: actions}, true
}

// parseFlowDef parses: 'flow' IDENT '{' ActionList '}'
func (p *Parser) parseFlowDef() (ast.Definition, bool) {
	if _, ok := p.expectToken(token.FLOW); !ok {
		return nil, false
	}
	name, ok := p.parseName("flow")
	if !ok {
		return nil, false
	}
	if _, ok := p.expectToken(token.LBRACE); !ok {
		return nil, false
	}
	actions, ok := p.parseActionList()
	if !ok {
		return nil, false
	}
	if _, ok := p.expectToken(token.RBRACE); !ok {
		return nil, false
	}
	return &ast.FlowDef{Name: name, Actions: actions}, true
}

// parseConstraintDef parses: 'constraint' IDENT ':' Condition
func (p *Parser) parseConstraintDef() (ast.Definition, bool) {
	if _, ok := p.expectToken(token.CONSTRAINT); !ok {
		return nil, false
	}
	name, ok := p.parseName("constraint")
	if !ok {
		return nil, false
	}
	if _, ok := p.expectToken(token.COLON); !ok {
		return nil, false
	}
	condition, ok := p.parseCondition()
	if !ok {
		return nil, false
	}
	return &ast.ConstraintDef{Name: name, Condition: condition}, true
}

// parseCondition parses the or level and below. or binds loosest, then and,
// then comparisons; all left-associative, with no grouping parentheses.
func (p *Parser) parseCondition() (ast.Condition, bool) {
	left, ok := p.parseConditionAnd()
	if !ok {
		return nil, false
	}
	for p.curTokenIs(token.OR) {
		p.nextToken()
		right, ok := p.parseConditionAnd()
		if !ok {
			return nil, false
		}
		left = &ast.BinaryCondition{Op: ast.LogicalOr, Left: left, Right: right}
	}
	return left, true
}

func (p *Parser) parseConditionAnd() (ast.Condition, bool) {
	left, ok := p.parseComparison()
	if !ok {
		return nil, false
	}
	for p.curTokenIs(token.AND) {
		p.nextToken()
		right, ok := p.parseComparison()
		if !ok {
			return nil, false
		}
		left = &ast.BinaryCondition{Op: ast.LogicalAnd, Left: left, Right: right}
	}
	return left, true
}

var comparators = map[token.TokenType]ast.Comparator{
	token.EQ:     ast.CompEqual,
	token.NOT_EQ: ast.CompNotEqual,
	token.GT:     ast.CompGreater,
	token.LT:     ast.CompLess,
	token.GT_EQ:  ast.CompGreaterEqual,
	token.LT_EQ:  ast.CompLessEqual,
}

// parseComparison parses 'Term CMP Term'. Without a comparator, a predicate
// call or a lone identifier stands as a boolean test; a bare number cannot.
func (p *Parser) parseComparison() (ast.Condition, bool) {
	if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.LPAREN) {
		call, ok := p.parsePredicateCall()
		if !ok {
			return nil, false
		}
		return call, true
	}

	left, ok := p.parseTerm()
	if !ok {
		return nil, false
	}

	if op, isCmp := comparators[p.curToken.Type]; isCmp {
		p.nextToken()
		right, ok := p.parseTerm()
		if !ok {
			return nil, false
		}
		return &ast.Comparison{Left: left, Op: op, Right: right}, true
	}

	if ident, isIdent := left.(*ast.Identifier); isIdent {
		return &ast.PredicateCall{Name: ident.Name}, true
	}
	p.record(diag.Errorf(p.curToken.Pos,
		"cannot use %s as a predicate", left.TokenLiteral()))
	return nil, false
}

// parseTerm parses IDENT, IDENT '.' IDENT or NUMBER.
func (p *Parser) parseTerm() (ast.Term, bool) {
	switch p.curToken.Type {
	case token.IDENT:
		name := p.internIdent(p.curToken.Literal)
		if p.peekTokenIs(token.DOT) {
			p.nextToken() // onto '.'
			p.nextToken() // onto the field
			if !p.curTokenIs(token.IDENT) {
				if p.curTokenIs(token.EOF) {
					p.record(diag.UnexpectedEOF(token.IDENT, p.curToken.Pos))
				} else {
					p.record(diag.Errorf(p.curToken.Pos,
						"expected identifier after '.', got %s", p.curToken.Type))
				}
				return nil, false
			}
			field := p.internIdent(p.curToken.Literal)
			p.nextToken()
			return &ast.QualifiedRef{Entity: name, Field: field}, true
		}
		p.nextToken()
		return &ast.Identifier{Name: name}, true
	case token.NUMBER:
		value := p.curToken.Value
		p.nextToken()
		return &ast.NumberLiteral{Value: value}, true
	case token.EOF:
		p.record(diag.Errorf(p.curToken.Pos, "unexpected end of input, expected term"))
		return nil, false
	default:
		p.record(diag.Errorf(p.curToken.Pos, "expected term, got %s", p.curToken.Type))
		return nil, false
	}
}

// parsePredicateCall parses: IDENT '(' (Term (',' Term)*)? ')'
func (p *Parser) parsePredicateCall() (*ast.PredicateCall, bool) {
	name, ok := p.parseName("predicate")
	if !ok {
		return nil, false
	}
	if _, ok := p.expectToken(token.LPAREN); !ok {
		return nil, false
	}

	var args []ast.Term
	if !p.curTokenIs(token.RPAREN) {
		arg, ok := p.parseTerm()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		for p.curTokenIs(token.COMMA) {
			p.nextToken()
			arg, ok = p.parseTerm()
			if !ok {
				return nil, false
			}
			args = append(args, arg)
		}
	}

	if _, ok := p.expectToken(token.RPAREN); !ok {
		return nil, false
	}
	return &ast.PredicateCall{Name: name, Args: args}, true
}

// parseActionList parses: Action (',' Action)*
func (p *Parser) parseActionList() ([]ast.Action, bool) {
	action, ok := p.parseAction()
	if !ok {
		return nil, false
	}
	actions := []ast.Action{action}
	for p.curTokenIs(token.COMMA) {
		p.nextToken()
		action, ok = p.parseAction()
		if !ok {
			return nil, false
		}
		actions = append(actions, action)
	}
	return actions, true
}

func (p *Parser) parseAction() (ast.Action, bool) {
	switch p.curToken.Type {
	case token.IDENT:
		if p.peekTokenIs(token.ASSIGN) {
			return p.parseAssignment()
		}
		// predicate actions always carry an argument list
		call, ok := p.parsePredicateCall()
		if !ok {
			return nil, false
		}
		return call, true
	case token.IF:
		return p.parseIfAction()
	case token.LOOP:
		return p.parseLoopAction()
	case token.HALT:
		p.nextToken()
		return &ast.HaltAction{}, true
	case token.EOF:
		p.record(diag.Errorf(p.curToken.Pos, "unexpected end of input, expected action"))
		return nil, false
	default:
		p.record(diag.Errorf(p.curToken.Pos, "expected action, got %s", p.curToken.Type))
		return nil, false
	}
}

// parseAssignment parses: IDENT '=' Term. The caller has already seen both
// the identifier and the '=' in the lookahead.
func (p *Parser) parseAssignment() (ast.Action, bool) {
	name := p.internIdent(p.curToken.Literal)
	p.nextToken() // onto '='
	p.nextToken() // onto the value
	value, ok := p.parseTerm()
	if !ok {
		return nil, false
	}
	return &ast.Assignment{Variable: name, Value: value}, true
}

// parseIfAction parses: 'if' Condition 'then' ActionList ('else' ActionList)?
func (p *Parser) parseIfAction() (ast.Action, bool) {
	if _, ok := p.expectToken(token.IF); !ok {
		return nil, false
	}
	condition, ok := p.parseCondition()
	if !ok {
		return nil, false
	}
	if _, ok := p.expectToken(token.THEN); !ok {
		return nil, false
	}
	thenActions, ok := p.parseActionList()
	if !ok {
		return nil, false
	}

	var elseActions []ast.Action
	if p.curTokenIs(token.ELSE) {
		p.nextToken()
		elseActions, ok = p.parseActionList()
		if !ok {
			return nil, false
		}
	}
	return &ast.IfAction{Condition: condition, Then: thenActions, Else: elseActions}, true
}

// parseLoopAction parses: 'loop' '{' ActionList '}'
func (p *Parser) parseLoopAction() (ast.Action, bool) {
	if _, ok := p.expectToken(token.LOOP); !ok {
		return nil, false
	}
	if _, ok := p.expectToken(token.LBRACE); !ok {
		return nil, false
	}
	actions, ok := p.parseActionList()
	if !ok {
		return nil, false
	}
	if _, ok := p.expectToken(token.RBRACE); !ok {
		return nil, false
	}
	return &ast.LoopAction{Actions: actions}, true
}
