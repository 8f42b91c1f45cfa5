package parser

import (
	"github.com/example/esparse/arena"
	"github.com/example/esparse/ast"
	"github.com/example/esparse/source"
	"github.com/example/esparse/token"
	"github.com/example/esparse/visitor"
)

// parseBindingTarget parses one binding — a plain identifier, or an
// object/array destructuring pattern reusing the literal-expression
// builders and late reinterpretation. ok is false when the current
// token cannot start a binding at all, or when a literal was built but
// could not be reinterpreted as a pattern (both cases have already
// recorded invalid_binding_in_let_statement).
func (p *Parser) parseBindingTarget() (pat *ast.Pattern, ok bool) {
	tok := p.peek()
	switch {
	case tok.Kind == token.LBrace:
		mark := p.exprs.Mark()
		id := p.buildObjectLiteral()
		pat, ok = ast.Reinterpret(p.exprs, id)
		if !ok {
			// Reinterpretation failed: nothing retains an ID into the
			// literal just built, so it's safe to reclaim.
			p.diag(source.InvalidBindingInLetStatement, tok.Range)
			p.exprs.Reset(mark)
		}
		return pat, ok
	case tok.Kind == token.LBracket:
		mark := p.exprs.Mark()
		id := p.buildArrayLiteral()
		pat, ok = ast.Reinterpret(p.exprs, id)
		if !ok {
			p.diag(source.InvalidBindingInLetStatement, tok.Range)
			p.exprs.Reset(mark)
		}
		return pat, ok
	case isBindingName(tok.Kind):
		p.advance()
		return &ast.Pattern{Kind: ast.PatternIdentifier, Name: tok.Value, Range: tok.Range}, true
	default:
		p.diag(source.InvalidBindingInLetStatement, tok.Range)
		p.advance()
		return nil, false
	}
}

// declareBindingWithInit visits an optional top-level initializer and
// then declares every name bound by pat, in that order.
func (p *Parser) declareBindingWithInit(pat *ast.Pattern, kind visitor.Kind, init arena.ID) {
	if init != 0 {
		p.finalizeExpr(init)
	}
	p.declareBinding(pat, kind)
}

// declareBinding walks pat, emitting variable_declaration for every
// bound name. Nested per-element defaults are visited immediately
// before the binding they belong to, matching the order a plain
// initializer is visited in.
func (p *Parser) declareBinding(pat *ast.Pattern, kind visitor.Kind) {
	if pat == nil {
		return
	}
	switch pat.Kind {
	case ast.PatternIdentifier:
		p.v.VariableDeclaration(pat.Name, kind)
	case ast.PatternArray:
		for _, el := range pat.Elements {
			if el.Pattern == nil {
				continue // elision
			}
			if el.Default != 0 {
				p.finalizeExpr(el.Default)
			}
			p.declareBinding(el.Pattern, kind)
		}
		if pat.Rest != nil {
			p.declareBinding(pat.Rest, kind)
		}
	case ast.PatternObject:
		for _, prop := range pat.Props {
			if prop.Computed {
				p.finalizeExpr(prop.KeyExpr)
			}
			if prop.Default != 0 {
				p.finalizeExpr(prop.Default)
			}
			p.declareBinding(prop.Value, kind)
		}
		if pat.Rest != nil {
			p.declareBinding(pat.Rest, kind)
		}
	}
}

// finalizeAssignmentTarget visits a built (not yet visited) expression
// as an assignment target: a bare identifier emits variable_assignment,
// a member expression emits the member-target rule (object used, no
// assignment event), and a destructuring literal is reinterpreted and
// walked as an assignment pattern.
func (p *Parser) finalizeAssignmentTarget(id arena.ID) {
	e := p.expr(id)
	switch e.Kind {
	case ast.Identifier:
		p.v.VariableAssignment(e.Name)
	case ast.Member:
		p.finalizeExpr(e.A)
		if e.Computed {
			p.finalizeExpr(e.B)
		}
	case ast.Array, ast.Object:
		pat, ok := ast.Reinterpret(p.exprs, id)
		if ok {
			p.declareAssignmentPattern(pat)
		} else {
			p.diag(source.InvalidBindingInLetStatement, e.Range)
		}
	default:
		p.finalizeExpr(id)
	}
}

// declareAssignmentPattern is declareBinding's counterpart for
// destructuring assignment targets: it emits variable_assignment
// instead of variable_declaration for every bound name.
func (p *Parser) declareAssignmentPattern(pat *ast.Pattern) {
	if pat == nil {
		return
	}
	switch pat.Kind {
	case ast.PatternIdentifier:
		p.v.VariableAssignment(pat.Name)
	case ast.PatternArray:
		for _, el := range pat.Elements {
			if el.Pattern == nil {
				continue
			}
			if el.Default != 0 {
				p.finalizeExpr(el.Default)
			}
			p.declareAssignmentPattern(el.Pattern)
		}
		if pat.Rest != nil {
			p.declareAssignmentPattern(pat.Rest)
		}
	case ast.PatternObject:
		for _, prop := range pat.Props {
			if prop.Computed {
				p.finalizeExpr(prop.KeyExpr)
			}
			if prop.Default != 0 {
				p.finalizeExpr(prop.Default)
			}
			p.declareAssignmentPattern(prop.Value)
		}
		if pat.Rest != nil {
			p.declareAssignmentPattern(pat.Rest)
		}
	}
}

// parseParamList parses a parenthesized parameter list and declares
// each bound name as it is parsed, visiting any default value
// immediately before the declaration it belongs to.
func (p *Parser) parseParamList() {
	if !p.match(token.LParen) {
		return
	}
	if p.match(token.RParen) {
		return
	}
	for {
		rest := p.match(token.Ellipsis)
		pat, ok := p.parseBindingTarget()

		var def arena.ID
		if !rest && p.match(token.Assign) {
			def = p.buildAssignExpr()
		}
		if ok {
			if rest {
				p.declareBindingWithInit(pat, visitor.Parameter, 0)
			} else {
				p.declareBindingWithInit(pat, visitor.Parameter, def)
			}
		} else if def != 0 {
			p.finalizeExpr(def)
		}

		if p.match(token.Comma) {
			if p.at(token.RParen) {
				break
			}
			continue
		}
		break
	}
	p.match(token.RParen)
}
