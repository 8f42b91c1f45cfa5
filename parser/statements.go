package parser

import (
	"github.com/example/esparse/arena"
	"github.com/example/esparse/source"
	"github.com/example/esparse/token"
	"github.com/example/esparse/visitor"
)

func declarationKindFor(k token.Kind) visitor.Kind {
	switch k {
	case token.KeywordVar:
		return visitor.Var
	case token.KeywordConst:
		return visitor.Const
	default:
		return visitor.Let
	}
}

// parseStatementInner dispatches on the current token. parseStatement
// wraps this with the per-statement arena mark/reset.
func (p *Parser) parseStatementInner() {
	switch p.peek().Kind {
	case token.KeywordLet, token.KeywordVar, token.KeywordConst:
		kwTok := p.advance()
		p.parseVariableDeclaration(declarationKindFor(kwTok.Kind), kwTok)
	case token.KeywordFunction:
		p.parseFunctionDeclaration()
	case token.KeywordClass:
		p.parseClassDeclaration()
	case token.KeywordReturn:
		p.parseReturnStatement()
	case token.KeywordThrow:
		p.parseThrowStatement()
	case token.KeywordImport:
		p.parseImportStatement()
	case token.KeywordExport:
		p.advance()
		p.parseStatementInner()
	case token.KeywordIf:
		p.parseIfStatement()
	case token.KeywordDo:
		p.parseDoWhileStatement()
	case token.KeywordWhile:
		p.parseWhileStatement()
	case token.KeywordFor:
		p.parseForStatement()
	case token.KeywordTry:
		p.parseTryStatement()
	case token.KeywordSwitch:
		p.parseSwitchStatement()
	case token.LBrace:
		p.v.EnterBlockScope()
		p.parseBraceDelimitedStatements()
		p.v.ExitBlockScope()
	case token.Semicolon:
		p.advance() // empty statement
	default:
		p.parseExpressionStatement()
	}
}

// parseBraceDelimitedStatements consumes a `{` already confirmed present,
// parses statements until `}`, and consumes the `}`. It emits no scope
// events of its own; the caller decides which scope this block belongs
// to (plain block, function body, class body, loop body, ...).
func (p *Parser) parseBraceDelimitedStatements() {
	p.advance() // '{'
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		p.parseStatement()
	}
	p.match(token.RBrace)
}

// parseBracedOrSingleStatement implements the if/else substatement rule:
// a braced substatement gets its own block scope, a bare single
// statement does not.
func (p *Parser) parseBracedOrSingleStatement() {
	if p.at(token.LBrace) {
		p.v.EnterBlockScope()
		p.parseBraceDelimitedStatements()
		p.v.ExitBlockScope()
		return
	}
	p.parseStatement()
}

// parseLoopBody implements the loop-body rule shared by while, do-while,
// and for: the body always gets its own block scope, braced or not.
func (p *Parser) parseLoopBody() {
	p.v.EnterBlockScope()
	if p.at(token.LBrace) {
		p.parseBraceDelimitedStatements()
	} else {
		p.parseStatement()
	}
	p.v.ExitBlockScope()
}

func (p *Parser) parseExpressionStatement() {
	id := p.buildSequenceExpr()
	p.finalizeExpr(id)
	p.consumeStatementTerminator()
}

// --- variable declarations -----------------------------------------------

func (p *Parser) parseVariableDeclaration(kind visitor.Kind, kwTok token.Token) {
	attemptedAny := false
	for {
		tok := p.peek()
		if tok.Kind == token.Semicolon || tok.Kind == token.EOF || tok.Kind == token.RBrace {
			break
		}
		if attemptedAny && tok.HasLeadingNewline {
			break
		}

		pat, ok := p.parseBindingTarget()
		attemptedAny = true

		var init arena.ID
		if p.match(token.Assign) {
			init = p.buildAssignExpr()
		}
		if ok {
			p.declareBindingWithInit(pat, kind, init)
		} else if init != 0 {
			p.finalizeExpr(init)
		}

		if p.at(token.Comma) {
			commaTok := p.advance()
			if p.at(token.Semicolon) || p.at(token.EOF) || p.at(token.RBrace) || p.peek().HasLeadingNewline {
				p.diag(source.StrayCommaInLetStatement, commaTok.Range)
				break
			}
			continue
		}
		break
	}
	if !attemptedAny {
		p.diag(source.LetWithNoBindings, kwTok.Range)
	}
	p.consumeStatementTerminator()
}

// --- function & class declarations ---------------------------------------

func (p *Parser) parseFunctionDeclaration() {
	p.advance() // 'function'
	p.match(token.Star) // generator marker, accepted and ignored
	name := ""
	if isBindingName(p.peek().Kind) {
		name = p.advance().Value
	}
	if name != "" {
		p.v.VariableDeclaration(name, visitor.Function)
	}
	p.v.EnterFunctionScope()
	p.parseParamList()
	p.parseBraceDelimitedStatements()
	p.v.ExitFunctionScope()
}

func (p *Parser) parseClassDeclaration() {
	p.advance() // 'class'
	name := ""
	if isBindingName(p.peek().Kind) {
		name = p.advance().Value
	}
	var baseID arena.ID
	hasBase := false
	if p.match(token.KeywordExtends) {
		baseID = p.buildLeftHandSideExpr()
		hasBase = true
	}
	if hasBase {
		p.finalizeExpr(baseID)
	}
	if name != "" {
		p.v.VariableDeclaration(name, visitor.Class)
	}
	p.v.EnterClassScope()
	p.parseClassBody()
	p.v.ExitClassScope()
}

// --- return / throw -------------------------------------------------------

func (p *Parser) parseReturnStatement() {
	p.advance()
	if !p.atStatementEnd() {
		id := p.buildSequenceExpr()
		p.finalizeExpr(id)
	}
	p.consumeStatementTerminator()
}

func (p *Parser) parseThrowStatement() {
	p.advance()
	if !p.atStatementEnd() {
		id := p.buildSequenceExpr()
		p.finalizeExpr(id)
	}
	p.consumeStatementTerminator()
}

func (p *Parser) atStatementEnd() bool {
	tok := p.peek()
	return tok.Kind == token.Semicolon || tok.Kind == token.RBrace || tok.Kind == token.EOF || tok.HasLeadingNewline
}

// --- import ----------------------------------------------------------------

func (p *Parser) parseImportStatement() {
	p.advance() // 'import'
	if p.at(token.String) {
		p.advance()
		p.consumeStatementTerminator()
		return
	}
	if isBindingName(p.peek().Kind) {
		name := p.advance().Value
		p.v.VariableDeclaration(name, visitor.Import)
		if p.match(token.Comma) {
			p.parseImportClause()
		}
	} else {
		p.parseImportClause()
	}
	if p.match(token.KeywordFrom) && p.at(token.String) {
		p.advance()
	}
	p.consumeStatementTerminator()
}

func (p *Parser) parseImportClause() {
	switch {
	case p.match(token.Star):
		p.match(token.KeywordAs)
		if isBindingName(p.peek().Kind) {
			name := p.advance().Value
			p.v.VariableDeclaration(name, visitor.Import)
		}
	case p.match(token.LBrace):
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			if isBindingName(p.peek().Kind) {
				localName := p.advance().Value
				if p.match(token.KeywordAs) && isBindingName(p.peek().Kind) {
					localName = p.advance().Value
				}
				p.v.VariableDeclaration(localName, visitor.Import)
			} else {
				p.advance()
			}
			if !p.match(token.Comma) {
				break
			}
		}
		p.match(token.RBrace)
	}
}

// --- if / else ---------------------------------------------------------

func (p *Parser) parseIfStatement() {
	p.advance() // 'if'
	p.match(token.LParen)
	cond := p.buildSequenceExpr()
	p.finalizeExpr(cond)
	p.match(token.RParen)
	p.parseBracedOrSingleStatement()
	if p.match(token.KeywordElse) {
		p.parseBracedOrSingleStatement()
	}
}

// --- while / do-while ----------------------------------------------------

func (p *Parser) parseWhileStatement() {
	p.advance() // 'while'
	p.match(token.LParen)
	cond := p.buildSequenceExpr()
	p.finalizeExpr(cond)
	p.match(token.RParen)
	p.parseLoopBody()
}

func (p *Parser) parseDoWhileStatement() {
	p.advance() // 'do'
	p.v.EnterBlockScope()
	if p.at(token.LBrace) {
		p.parseBraceDelimitedStatements()
	} else {
		p.parseStatement()
	}
	p.v.ExitBlockScope()
	p.match(token.KeywordWhile)
	p.match(token.LParen)
	cond := p.buildSequenceExpr()
	p.finalizeExpr(cond)
	p.match(token.RParen)
	p.consumeStatementTerminator()
}

// --- for -------------------------------------------------------------------

func (p *Parser) parseForStatement() {
	p.advance() // 'for'
	p.match(token.LParen)

	switch p.peek().Kind {
	case token.KeywordLet, token.KeywordConst, token.KeywordVar:
		p.parseForWithDeclaration()
		return
	case token.Semicolon:
		p.match(token.Semicolon)
		p.parseForRest()
		return
	}

	mark := p.exprs.Mark()
	id := p.buildSequenceExpr()
	if p.at(token.KeywordIn) || p.at(token.KeywordOf) {
		p.advance()
		iterable := p.buildAssignExpr()
		p.finalizeExpr(iterable)
		p.match(token.RParen)
		p.finalizeAssignmentTarget(id)
		p.parseLoopBody()
		p.exprs.Reset(mark)
		return
	}
	p.finalizeExpr(id)
	p.exprs.Reset(mark)
	p.match(token.Semicolon)
	p.parseForRest()
}

func (p *Parser) parseForWithDeclaration() {
	kwTok := p.advance()
	kind := declarationKindFor(kwTok.Kind)
	isVar := kwTok.Kind == token.KeywordVar

	pat, ok := p.parseBindingTarget()

	if p.at(token.KeywordIn) || p.at(token.KeywordOf) {
		p.advance()
		if !isVar {
			p.v.EnterForScope()
		}
		iterable := p.buildAssignExpr()
		p.finalizeExpr(iterable)
		p.match(token.RParen)
		if ok {
			p.declareBinding(pat, kind)
		}
		p.parseLoopBody()
		if !isVar {
			p.v.ExitForScope()
		}
		return
	}

	var init arena.ID
	if p.match(token.Assign) {
		init = p.buildAssignExpr()
	}
	if ok {
		p.declareBindingWithInit(pat, kind, init)
	} else if init != 0 {
		p.finalizeExpr(init)
	}
	for p.match(token.Comma) {
		pat2, ok2 := p.parseBindingTarget()
		var init2 arena.ID
		if p.match(token.Assign) {
			init2 = p.buildAssignExpr()
		}
		if ok2 {
			p.declareBindingWithInit(pat2, kind, init2)
		} else if init2 != 0 {
			p.finalizeExpr(init2)
		}
	}
	p.match(token.Semicolon)

	if !isVar {
		p.v.EnterForScope()
	}
	p.parseForRest()
	if !isVar {
		p.v.ExitForScope()
	}
}

// parseForRest parses the optional condition and update clauses of a
// C-style for-loop plus its body, assuming the first `;` has already
// been consumed. Event order is init (already done by the caller) then
// condition, then the body's block scope, then the update clause —
// update fires after the body closes even though it's parsed before it,
// matching spec's prescribed ordering.
func (p *Parser) parseForRest() {
	if !p.at(token.Semicolon) {
		cond := p.buildSequenceExpr()
		p.finalizeExpr(cond)
	}
	p.match(token.Semicolon)

	var afterID arena.ID
	hasAfter := false
	if !p.at(token.RParen) {
		afterID = p.buildSequenceExpr()
		hasAfter = true
	}
	p.match(token.RParen)

	p.parseLoopBody()

	if hasAfter {
		p.finalizeExpr(afterID)
	}
}

// --- try / catch / finally ------------------------------------------------

func (p *Parser) parseTryStatement() {
	p.advance() // 'try'
	p.v.EnterBlockScope()
	p.parseBraceDelimitedStatements()
	p.v.ExitBlockScope()

	if p.match(token.KeywordCatch) {
		p.v.EnterBlockScope()
		if p.match(token.LParen) {
			pat, ok := p.parseBindingTarget()
			p.match(token.RParen)
			if ok {
				p.declareBinding(pat, visitor.Catch)
			}
		}
		p.parseBraceDelimitedStatements()
		p.v.ExitBlockScope()
	}

	if p.match(token.KeywordFinally) {
		p.v.EnterBlockScope()
		p.parseBraceDelimitedStatements()
		p.v.ExitBlockScope()
	}
}

// --- switch ----------------------------------------------------------------

func (p *Parser) parseSwitchStatement() {
	p.advance() // 'switch'
	p.match(token.LParen)
	disc := p.buildSequenceExpr()
	p.finalizeExpr(disc)
	p.match(token.RParen)

	p.v.EnterBlockScope()
	p.match(token.LBrace)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		switch {
		case p.match(token.KeywordCase):
			mark := p.exprs.Mark()
			id := p.buildSequenceExpr()
			p.finalizeExpr(id)
			p.exprs.Reset(mark)
			p.match(token.Colon)
		case p.match(token.KeywordDefault):
			p.match(token.Colon)
		default:
			p.parseStatement()
		}
	}
	p.match(token.RBrace)
	p.v.ExitBlockScope()
}

