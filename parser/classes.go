package parser

import "github.com/example/esparse/token"

// parseClassBody parses the `{ ... }` member list of a class declaration
// or expression, assuming EnterClassScope has already been emitted by the
// caller. Every non-computed member name (method or field) emits
// PropertyDeclaration; methods get their own function scope the same way
// a function expression does, since a method body's meaning never
// depends on what follows the class.
//
// get/set/async/static/* prefixes are consumed unconditionally whenever
// seen, the same one-token-lookahead tradeoff buildAsyncPrimary makes: a
// member literally named "get" or "static" with no accessor/modifier
// intent is misread. Accepted as a known limitation.
func (p *Parser) parseClassBody() {
	if !p.match(token.LBrace) {
		return
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.match(token.Semicolon) {
			continue
		}
		p.match(token.KeywordStatic)
		p.match(token.KeywordAsync)
		p.match(token.Star)
		p.match(token.KeywordGet)
		p.match(token.KeywordSet)

		computed := false
		var name string
		if p.match(token.LBracket) {
			computed = true
			keyExpr := p.buildAssignExpr()
			p.finalizeExpr(keyExpr)
			p.match(token.RBracket)
		} else {
			nameTok := p.advance()
			name = nameTok.Value
		}
		if !computed {
			p.v.PropertyDeclaration(name)
		}

		switch {
		case p.at(token.LParen):
			p.v.EnterFunctionScope()
			p.parseParamList()
			p.parseBraceDelimitedStatements()
			p.v.ExitFunctionScope()
		case p.match(token.Assign):
			val := p.buildAssignExpr()
			p.finalizeExpr(val)
			p.consumeStatementTerminator()
		default:
			p.consumeStatementTerminator()
		}
	}
	p.match(token.RBrace)
}
