package parser

import (
	"github.com/example/esparse/arena"
	"github.com/example/esparse/ast"
	"github.com/example/esparse/source"
	"github.com/example/esparse/token"
	"github.com/example/esparse/visitor"
)

// This file builds the expression grammar bottom-up by precedence level.
// Every buildXxxExpr function only builds arena nodes; it never calls into
// the visitor. finalizeExpr is the single place that walks a built tree
// and emits events, so that an expression which later turns out to be a
// destructuring target or arrow parameter list can be reinterpreted
// (ast.Reinterpret) instead of finalized. The one exception is function,
// arrow, and class literals: their meaning never depends on what follows
// them, so they visit their own parameters and body immediately as they
// are built and are represented afterward by an opaque marker node.

var assignOps = map[token.Kind]bool{
	token.Assign: true, token.PlusAssign: true, token.MinusAssign: true,
	token.StarAssign: true, token.SlashAssign: true, token.PercentAssign: true,
	token.StarStarAssign: true, token.AmpAssign: true, token.PipeAssign: true,
	token.CaretAssign: true, token.AmpAmpAssign: true, token.PipePipeAssign: true,
	token.QuestionQuestionAssign: true, token.ShlAssign: true, token.ShrAssign: true,
	token.UShrAssign: true,
}

// buildBinaryLeft folds a left-associative binary operator level: parse
// one operand with next, then keep consuming (op, operand) pairs whose
// operator is in ops.
func (p *Parser) buildBinaryLeft(next func() arena.ID, ops ...token.Kind) arena.ID {
	left := next()
	begin := p.expr(left).Range.Begin
	for {
		tok := p.peek()
		matched := false
		for _, op := range ops {
			if tok.Kind == op {
				matched = true
				break
			}
		}
		if !matched {
			return left
		}
		opTok := p.advance()
		before := p.peek()
		right := next()
		if p.stalled(before) {
			p.diag(source.MissingOperandForOperator, opTok.Range)
		}
		left = p.allocExpr(ast.Expr{
			Kind: ast.Binary, Op: tok.Kind, A: left, B: right,
			Range: source.Range{Begin: begin, End: p.expr(right).Range.End},
		})
	}
}

func (p *Parser) buildSequenceExpr() arena.ID {
	first := p.buildAssignExpr()
	if !p.at(token.Comma) {
		return first
	}
	begin := p.expr(first).Range.Begin
	elems := []arena.ID{first}
	for p.match(token.Comma) {
		elems = append(elems, p.buildAssignExpr())
	}
	end := p.expr(elems[len(elems)-1]).Range.End
	return p.allocExpr(ast.Expr{Kind: ast.Sequence, Elements: elems, Range: source.Range{Begin: begin, End: end}})
}

func (p *Parser) buildAssignExpr() arena.ID {
	left := p.buildConditionalExpr()
	tok := p.peek()
	if assignOps[tok.Kind] {
		p.advance()
		before := p.peek()
		right := p.buildAssignExpr() // right-associative
		if p.stalled(before) {
			p.diag(source.MissingOperandForOperator, tok.Range)
		}
		kind := ast.Assign
		if tok.Kind != token.Assign {
			kind = ast.CompoundAssign
		}
		return p.allocExpr(ast.Expr{
			Kind: kind, Op: tok.Kind, A: left, B: right,
			Range: source.Range{Begin: p.expr(left).Range.Begin, End: p.expr(right).Range.End},
		})
	}
	return left
}

func (p *Parser) buildConditionalExpr() arena.ID {
	test := p.buildNullishOrExpr()
	if !p.at(token.Question) {
		return test
	}
	questionTok := p.advance()

	before := p.peek()
	cons := p.buildAssignExpr()
	if p.stalled(before) {
		p.diag(source.MissingOperandForOperator, questionTok.Range)
	}

	colonTok := questionTok
	if p.at(token.Colon) {
		colonTok = p.peek()
	}
	p.match(token.Colon)

	before = p.peek()
	alt := p.buildAssignExpr() // right-associative via recursion back through buildAssignExpr
	if p.stalled(before) {
		p.diag(source.MissingOperandForOperator, colonTok.Range)
	}
	return p.allocExpr(ast.Expr{
		Kind: ast.Conditional, A: test, B: cons, C: alt,
		Range: source.Range{Begin: p.expr(test).Range.Begin, End: p.expr(alt).Range.End},
	})
}

func (p *Parser) buildNullishOrExpr() arena.ID {
	return p.buildBinaryLeft(p.buildAndExpr, token.PipePipe, token.QuestionQuestion)
}

func (p *Parser) buildAndExpr() arena.ID {
	return p.buildBinaryLeft(p.buildBitOrExpr, token.AmpAmp)
}

func (p *Parser) buildBitOrExpr() arena.ID {
	return p.buildBinaryLeft(p.buildBitXorExpr, token.Pipe)
}

func (p *Parser) buildBitXorExpr() arena.ID {
	return p.buildBinaryLeft(p.buildBitAndExpr, token.Caret)
}

func (p *Parser) buildBitAndExpr() arena.ID {
	return p.buildBinaryLeft(p.buildEqualityExpr, token.Amp)
}

func (p *Parser) buildEqualityExpr() arena.ID {
	return p.buildBinaryLeft(p.buildRelationalExpr, token.EqEq, token.EqEqEq, token.NotEq, token.NotEqEq)
}

func (p *Parser) buildRelationalExpr() arena.ID {
	return p.buildBinaryLeft(p.buildShiftExpr,
		token.Lt, token.LtEq, token.Gt, token.GtEq, token.KeywordInstanceof, token.KeywordIn)
}

func (p *Parser) buildShiftExpr() arena.ID {
	return p.buildBinaryLeft(p.buildAdditiveExpr, token.Shl, token.Shr, token.UShr)
}

func (p *Parser) buildAdditiveExpr() arena.ID {
	return p.buildBinaryLeft(p.buildMultiplicativeExpr, token.Plus, token.Minus)
}

func (p *Parser) buildMultiplicativeExpr() arena.ID {
	return p.buildBinaryLeft(p.buildExponentExpr, token.Star, token.Slash, token.Percent)
}

func (p *Parser) buildExponentExpr() arena.ID {
	left := p.buildUnaryExpr()
	if !p.at(token.StarStar) {
		return left
	}
	opTok := p.advance()
	before := p.peek()
	right := p.buildExponentExpr() // right-associative
	if p.stalled(before) {
		p.diag(source.MissingOperandForOperator, opTok.Range)
	}
	return p.allocExpr(ast.Expr{
		Kind: ast.Binary, Op: token.StarStar, A: left, B: right,
		Range: source.Range{Begin: p.expr(left).Range.Begin, End: p.expr(right).Range.End},
	})
}

func (p *Parser) buildUnaryExpr() arena.ID {
	tok := p.peek()
	switch tok.Kind {
	case token.PlusPlus, token.MinusMinus:
		p.advance()
		before := p.peek()
		operand := p.buildUnaryExpr()
		if p.stalled(before) {
			p.diag(source.MissingOperandForOperator, tok.Range)
		}
		return p.allocExpr(ast.Expr{
			Kind: ast.Update, Op: tok.Kind, A: operand, Prefix: true,
			Range: source.Range{Begin: tok.Range.Begin, End: p.expr(operand).Range.End},
		})
	case token.Not, token.Tilde, token.Plus, token.Minus,
		token.KeywordTypeof, token.KeywordVoid, token.KeywordDelete, token.KeywordAwait:
		p.advance()
		before := p.peek()
		operand := p.buildUnaryExpr()
		if p.stalled(before) {
			p.diag(source.MissingOperandForOperator, tok.Range)
		}
		return p.allocExpr(ast.Expr{
			Kind: ast.Unary, Op: tok.Kind, A: operand,
			Range: source.Range{Begin: tok.Range.Begin, End: p.expr(operand).Range.End},
		})
	default:
		return p.buildPostfixExpr()
	}
}

func (p *Parser) buildPostfixExpr() arena.ID {
	operand := p.buildLeftHandSideExpr()
	tok := p.peek()
	if (tok.Kind == token.PlusPlus || tok.Kind == token.MinusMinus) && !tok.HasLeadingNewline {
		p.advance()
		return p.allocExpr(ast.Expr{
			Kind: ast.Update, Op: tok.Kind, A: operand, Prefix: false,
			Range: source.Range{Begin: p.expr(operand).Range.Begin, End: tok.Range.End},
		})
	}
	return operand
}

// buildLeftHandSideExpr covers member/call/new and the bare-identifier
// arrow shortcut: a plain identifier immediately followed by `=>` (still
// within one token of lookahead, since we've only just consumed the
// identifier) is an arrow parameter list of one, not a reference.
func (p *Parser) buildLeftHandSideExpr() arena.ID {
	if p.at(token.KeywordNew) {
		base := p.buildNewExpr()
		return p.buildCallTail(base)
	}
	tok := p.peek()
	if tok.Kind != token.KeywordAsync && isBindingName(tok.Kind) {
		p.advance()
		if p.at(token.Arrow) && !p.peek().HasLeadingNewline {
			return p.buildArrowFromBareIdentifier(tok)
		}
		base := p.allocExpr(ast.Expr{Kind: ast.Identifier, Name: tok.Value, Range: tok.Range})
		return p.buildCallTail(base)
	}
	base := p.buildPrimaryExpr()
	return p.buildCallTail(base)
}

func (p *Parser) buildNewExpr() arena.ID {
	newTok := p.advance() // 'new'
	var callee arena.ID
	if p.at(token.KeywordNew) {
		callee = p.buildNewExpr()
	} else {
		callee = p.buildPrimaryExpr()
		callee = p.buildMemberTail(callee)
	}
	end := p.expr(callee).Range.End
	var args []arena.ID
	if p.at(token.LParen) {
		args, end = p.parseArgumentList()
	}
	return p.allocExpr(ast.Expr{Kind: ast.New, A: callee, Elements: args, Range: source.Range{Begin: newTok.Range.Begin, End: end}})
}

// buildMemberTail allows only `.`/`[...]` chaining, matching the
// MemberExpression grammar a `new` callee is restricted to before its
// argument list.
func (p *Parser) buildMemberTail(base arena.ID) arena.ID {
	for {
		switch p.peek().Kind {
		case token.Dot:
			p.advance()
			nameTok := p.advance()
			base = p.allocExpr(ast.Expr{
				Kind: ast.Member, A: base, Name: nameTok.Value,
				Range: source.Range{Begin: p.expr(base).Range.Begin, End: nameTok.Range.End},
			})
		case token.LBracket:
			p.advance()
			idx := p.buildSequenceExpr()
			endTok := p.peek()
			p.match(token.RBracket)
			base = p.allocExpr(ast.Expr{
				Kind: ast.Member, A: base, B: idx, Computed: true,
				Range: source.Range{Begin: p.expr(base).Range.Begin, End: endTok.Range.End},
			})
		default:
			return base
		}
	}
}

func (p *Parser) buildCallTail(base arena.ID) arena.ID {
	for {
		switch p.peek().Kind {
		case token.Dot, token.OptionalChain:
			p.advance()
			nameTok := p.advance()
			base = p.allocExpr(ast.Expr{
				Kind: ast.Member, A: base, Name: nameTok.Value,
				Range: source.Range{Begin: p.expr(base).Range.Begin, End: nameTok.Range.End},
			})
		case token.LBracket:
			p.advance()
			idx := p.buildSequenceExpr()
			endTok := p.peek()
			p.match(token.RBracket)
			base = p.allocExpr(ast.Expr{
				Kind: ast.Member, A: base, B: idx, Computed: true,
				Range: source.Range{Begin: p.expr(base).Range.Begin, End: endTok.Range.End},
			})
		case token.LParen:
			args, end := p.parseArgumentList()
			base = p.allocExpr(ast.Expr{Kind: ast.Call, A: base, Elements: args, Range: source.Range{Begin: p.expr(base).Range.Begin, End: end}})
		default:
			return base
		}
	}
}

func (p *Parser) parseArgumentList() (args []arena.ID, end int) {
	p.advance() // '('
	if p.at(token.RParen) {
		end = p.peek().Range.End
		p.advance()
		return nil, end
	}
	for {
		if p.match(token.Ellipsis) {
			spreadBegin := p.lastEnd
			inner := p.buildAssignExpr()
			args = append(args, p.allocExpr(ast.Expr{Kind: ast.Spread, A: inner, Range: source.Range{Begin: spreadBegin, End: p.expr(inner).Range.End}}))
		} else {
			args = append(args, p.buildAssignExpr())
		}
		if p.match(token.Comma) {
			if p.at(token.RParen) {
				break
			}
			continue
		}
		break
	}
	end = p.peek().Range.End
	p.match(token.RParen)
	return args, end
}

// --- primary expressions ---------------------------------------------------

func (p *Parser) buildPrimaryExpr() arena.ID {
	tok := p.peek()
	switch tok.Kind {
	case token.KeywordThis, token.KeywordSuper:
		p.advance()
		return p.allocExpr(ast.Expr{Kind: ast.ThisExpr, Range: tok.Range})
	case token.KeywordNull:
		p.advance()
		return p.allocExpr(ast.Expr{Kind: ast.NullLiteral, Range: tok.Range})
	case token.KeywordTrue, token.KeywordFalse:
		p.advance()
		return p.allocExpr(ast.Expr{Kind: ast.BooleanLiteral, Name: tok.Value, Range: tok.Range})
	case token.Number:
		p.advance()
		return p.allocExpr(ast.Expr{Kind: ast.NumberLiteral, Name: tok.Value, Range: tok.Range})
	case token.String:
		p.advance()
		return p.allocExpr(ast.Expr{Kind: ast.StringLiteral, Name: tok.Value, Range: tok.Range})
	case token.Slash, token.SlashAssign:
		p.lex.ReLexAsRegExp()
		re := p.advance()
		return p.allocExpr(ast.Expr{Kind: ast.RegExpLiteral, Name: re.Value, Range: re.Range})
	case token.TemplateNoSubstitution, token.TemplateHead:
		return p.buildTemplateLiteral()
	case token.LBracket:
		return p.buildArrayLiteral()
	case token.LBrace:
		return p.buildObjectLiteral()
	case token.LParen:
		return p.buildParenOrArrowGroup()
	case token.KeywordFunction:
		return p.buildFunctionExpr()
	case token.KeywordClass:
		return p.buildClassExpr()
	case token.KeywordAsync:
		return p.buildAsyncPrimary()
	case token.KeywordNew:
		return p.buildNewExpr()
	case token.KeywordYield:
		p.advance()
		return p.buildYieldOperand(tok)
	default:
		if isBindingName(tok.Kind) {
			p.advance()
			return p.allocExpr(ast.Expr{Kind: ast.Identifier, Name: tok.Value, Range: tok.Range})
		}
		// Nothing can start an expression here. Deliberately does not
		// advance and does not diagnose: the caller holding the
		// operator that demanded this operand is in a better position
		// to report missing_operand_for_operator at its own range, and
		// detects the failure by noticing this call consumed nothing.
		return p.allocExpr(ast.Expr{Kind: ast.Identifier, Range: tok.Range})
	}
}

// stalled reports whether parsing an operand made no progress at all —
// the signal buildPrimaryExpr's empty case leaves behind for the caller
// that holds the operator to diagnose against its own range.
func (p *Parser) stalled(before token.Token) bool {
	cur := p.peek()
	return cur.Kind == before.Kind && cur.Range == before.Range
}

func (p *Parser) buildYieldOperand(yieldTok token.Token) arena.ID {
	p.match(token.Star) // yield*
	if p.atStatementEnd() || p.at(token.Comma) || p.at(token.RParen) || p.at(token.RBracket) {
		return p.allocExpr(ast.Expr{Kind: ast.Unary, Op: token.KeywordYield, Range: yieldTok.Range})
	}
	operand := p.buildAssignExpr()
	return p.allocExpr(ast.Expr{
		Kind: ast.Unary, Op: token.KeywordYield, A: operand,
		Range: source.Range{Begin: yieldTok.Range.Begin, End: p.expr(operand).Range.End},
	})
}

// --- template literals -------------------------------------------------------

// buildTemplateLiteral builds (never visits) a template node. Its
// substitutions are visited later, when the template itself is
// finalized, exactly like any other compound expression's children.
func (p *Parser) buildTemplateLiteral() arena.ID {
	startTok := p.peek()
	begin := startTok.Range.Begin
	if startTok.Kind == token.TemplateNoSubstitution {
		p.advance()
		return p.allocExpr(ast.Expr{Kind: ast.Template, Pieces: []string{startTok.Value}, Range: startTok.Range})
	}

	pieces := []string{startTok.Value}
	var exprs []arena.ID
	p.advance() // consume TemplateHead

	for {
		exprs = append(exprs, p.buildSequenceExpr())
		if !p.at(token.RBrace) {
			break // malformed template; stop rather than loop forever
		}
		cont := p.lex.ReLexTemplateContinuation()
		pieces = append(pieces, cont.Value)
		p.advance() // consume the relexed middle/tail
		if cont.Kind == token.TemplateTail {
			break
		}
	}
	return p.allocExpr(ast.Expr{Kind: ast.Template, Pieces: pieces, Exprs: exprs, Range: source.Range{Begin: begin, End: p.lastEnd}})
}

// --- array / object literals ------------------------------------------------

func (p *Parser) buildArrayLiteral() arena.ID {
	beginTok := p.peek()
	p.advance() // '['
	var elems []arena.ID
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if p.at(token.Comma) {
			elems = append(elems, 0) // elision
			p.advance()
			continue
		}
		if p.match(token.Ellipsis) {
			spreadBegin := p.lastEnd
			inner := p.buildAssignExpr()
			elems = append(elems, p.allocExpr(ast.Expr{Kind: ast.Spread, A: inner, Range: source.Range{Begin: spreadBegin, End: p.expr(inner).Range.End}}))
		} else {
			elems = append(elems, p.buildAssignExpr())
		}
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	endTok := p.peek()
	p.match(token.RBracket)
	return p.allocExpr(ast.Expr{Kind: ast.Array, Elements: elems, Range: source.Range{Begin: beginTok.Range.Begin, End: endTok.Range.End}})
}

func (p *Parser) buildObjectLiteral() arena.ID {
	beginTok := p.peek()
	p.advance() // '{'
	var props []ast.Property
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.match(token.Ellipsis) {
			val := p.buildAssignExpr()
			props = append(props, ast.Property{Value: val, Spread: true})
		} else {
			propBegin := p.peek().Range.Begin
			computed := false
			var keyID arena.ID
			if p.match(token.LBracket) {
				computed = true
				keyID = p.buildAssignExpr()
				p.match(token.RBracket)
			} else {
				keyTok := p.advance()
				keyID = p.allocExpr(ast.Expr{Kind: ast.Identifier, Name: keyTok.Value, Range: keyTok.Range})
			}

			switch {
			case p.match(token.Colon):
				val := p.buildAssignExpr()
				props = append(props, ast.Property{Key: keyID, Value: val, Computed: computed})
			case p.at(token.LParen):
				p.v.PropertyDeclaration(p.expr(keyID).Name)
				p.v.EnterFunctionScope()
				p.parseParamList()
				p.parseBraceDelimitedStatements()
				p.v.ExitFunctionScope()
				marker := p.allocExpr(ast.Expr{Kind: ast.Function, Range: source.Range{Begin: propBegin, End: p.lastEnd}})
				props = append(props, ast.Property{Key: keyID, Value: marker, Computed: computed})
			case p.match(token.Assign):
				def := p.buildAssignExpr()
				assignNode := p.allocExpr(ast.Expr{
					Kind: ast.Assign, A: keyID, B: def,
					Range: source.Range{Begin: propBegin, End: p.expr(def).Range.End},
				})
				props = append(props, ast.Property{Key: keyID, Value: assignNode, Computed: computed, Shorthand: true})
			default:
				props = append(props, ast.Property{Key: keyID, Value: keyID, Computed: computed, Shorthand: true})
			}
		}
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	endTok := p.peek()
	p.match(token.RBrace)
	return p.allocExpr(ast.Expr{Kind: ast.Object, Props: props, Range: source.Range{Begin: beginTok.Range.Begin, End: endTok.Range.End}})
}

// --- parens, arrows, functions, classes -------------------------------------

func splitTopLevelDefault(exprs *ast.Exprs, id arena.ID) (target, def arena.ID) {
	e := exprs.Get(id)
	if e.Kind == ast.Assign {
		return e.A, e.B
	}
	return id, 0
}

func (p *Parser) buildArrowFromBareIdentifier(idTok token.Token) arena.ID {
	p.advance() // consume '=>'
	p.v.EnterFunctionScope()
	p.v.VariableDeclaration(idTok.Value, visitor.Parameter)
	id := p.buildArrowBody(idTok.Range.Begin)
	p.v.ExitFunctionScope()
	return id
}

// buildArrowBody parses and visits an arrow's body, assuming the
// enclosing function scope is already open; the caller closes it.
func (p *Parser) buildArrowBody(begin int) arena.ID {
	if p.at(token.LBrace) {
		p.parseBraceDelimitedStatements()
	} else {
		id := p.buildAssignExpr()
		p.finalizeExpr(id)
	}
	return p.allocExpr(ast.Expr{Kind: ast.Arrow, Range: source.Range{Begin: begin, End: p.lastEnd}})
}

// buildParenOrArrowGroup implements the classic parenthesized-expression
// vs. arrow-parameter-list disambiguation: the whole group is built as a
// plain comma-separated expression list first, and only reinterpreted as
// a parameter pattern once `=>` confirms that's what it was.
func (p *Parser) buildParenOrArrowGroup() arena.ID {
	beginTok := p.peek()
	begin := beginTok.Range.Begin
	p.advance() // '('

	if p.at(token.RParen) {
		p.advance()
		if p.match(token.Arrow) {
			p.v.EnterFunctionScope()
			id := p.buildArrowBody(begin)
			p.v.ExitFunctionScope()
			return id
		}
		p.diag(source.UnmatchedParenthesis, beginTok.Range)
		return p.allocExpr(ast.Expr{Kind: ast.Identifier, Range: beginTok.Range})
	}

	var elems []arena.ID
	var restID arena.ID
	for {
		if p.match(token.Ellipsis) {
			spreadBegin := p.lastEnd
			inner := p.buildAssignExpr()
			restID = p.allocExpr(ast.Expr{Kind: ast.Spread, A: inner, Range: source.Range{Begin: spreadBegin, End: p.expr(inner).Range.End}})
			break
		}
		elems = append(elems, p.buildAssignExpr())
		if p.match(token.Comma) {
			if p.at(token.RParen) {
				break
			}
			continue
		}
		break
	}
	closeTok := p.peek()
	if !p.match(token.RParen) {
		p.diag(source.UnmatchedParenthesis, beginTok.Range)
	}

	if p.at(token.Arrow) && !p.peek().HasLeadingNewline {
		p.advance()
		p.v.EnterFunctionScope()
		for _, elemID := range elems {
			target, def := splitTopLevelDefault(p.exprs, elemID)
			pat, ok := ast.Reinterpret(p.exprs, target)
			if ok {
				p.declareBindingWithInit(pat, visitor.Parameter, def)
			} else {
				p.diag(source.InvalidBindingInLetStatement, p.expr(elemID).Range)
			}
		}
		if restID != 0 {
			pat, ok := ast.Reinterpret(p.exprs, p.expr(restID).A)
			if ok {
				p.declareBinding(pat, visitor.Parameter)
			}
		}
		id := p.buildArrowBody(begin)
		p.v.ExitFunctionScope()
		return id
	}

	if restID != 0 {
		p.diag(source.UnmatchedParenthesis, beginTok.Range)
		p.finalizeExpr(p.expr(restID).A)
		return p.allocExpr(ast.Expr{Kind: ast.Identifier, Range: beginTok.Range})
	}
	if len(elems) == 1 {
		return elems[0] // parens are transparent around a single expression
	}
	return p.allocExpr(ast.Expr{Kind: ast.Sequence, Elements: elems, Range: source.Range{Begin: begin, End: closeTok.Range.End}})
}

func (p *Parser) buildFunctionExpr() arena.ID {
	begin := p.peek().Range.Begin
	p.advance() // 'function'
	p.match(token.Star)
	name := ""
	if isBindingName(p.peek().Kind) {
		name = p.advance().Value
	}
	if name != "" {
		p.v.EnterNamedFunctionScope(name)
	} else {
		p.v.EnterFunctionScope()
	}
	p.parseParamList()
	p.parseBraceDelimitedStatements()
	p.v.ExitFunctionScope()
	return p.allocExpr(ast.Expr{Kind: ast.Function, Range: source.Range{Begin: begin, End: p.lastEnd}})
}

// buildClassExpr treats a class literal the same way as a function
// literal: parsed and visited eagerly, represented afterward by an
// opaque marker. Unlike a named function expression, a named class
// expression's own name is not separately declared anywhere — spec's
// event set has no dedicated hook for it and the name is rarely
// referenced from inside the class body in practice.
func (p *Parser) buildClassExpr() arena.ID {
	begin := p.peek().Range.Begin
	p.advance() // 'class'
	if isBindingName(p.peek().Kind) {
		p.advance()
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
	p.v.EnterClassScope()
	p.parseClassBody()
	p.v.ExitClassScope()
	return p.allocExpr(ast.Expr{Kind: ast.Function, Range: source.Range{Begin: begin, End: p.lastEnd}})
}

// buildAsyncPrimary resolves `async` by looking one token past it, which
// is as far as the lexer's single-token lookahead reaches: `async
// function`, `async (`, and `async <identifier>` are all treated as the
// modifier form. A call to a function literally named `async` (`async(x)`)
// is misread as an attempted async arrow; this is a known, accepted
// limitation of the lookahead model.
func (p *Parser) buildAsyncPrimary() arena.ID {
	asyncTok := p.advance() // 'async'
	if p.at(token.KeywordFunction) && !p.peek().HasLeadingNewline {
		return p.buildFunctionExpr()
	}
	if p.at(token.LParen) && !p.peek().HasLeadingNewline {
		return p.buildParenOrArrowGroup()
	}
	if isBindingName(p.peek().Kind) && !p.peek().HasLeadingNewline {
		idTok := p.peek()
		p.advance()
		if p.at(token.Arrow) && !p.peek().HasLeadingNewline {
			return p.buildArrowFromBareIdentifier(idTok)
		}
		return p.allocExpr(ast.Expr{Kind: ast.Identifier, Name: idTok.Value, Range: idTok.Range})
	}
	return p.allocExpr(ast.Expr{Kind: ast.Identifier, Name: asyncTok.Value, Range: asyncTok.Range})
}

// --- finalize: visit a built, non-target expression -------------------------

// finalizeExpr visits a built expression bottom-up, emitting every event
// it denotes. It must never be called on an expression that turned out
// to be a binding/assignment target; use declareBinding,
// declareAssignmentPattern, or finalizeAssignmentTarget for those.
func (p *Parser) finalizeExpr(id arena.ID) {
	if id == 0 {
		return
	}
	e := p.expr(id)
	switch e.Kind {
	case ast.Identifier:
		if e.Name != "" {
			p.v.VariableUse(e.Name)
		}
	case ast.NumberLiteral, ast.StringLiteral, ast.RegExpLiteral, ast.BooleanLiteral, ast.NullLiteral, ast.ThisExpr:
		// no events
	case ast.Template:
		for _, sub := range e.Exprs {
			p.finalizeExpr(sub)
		}
	case ast.Array:
		for _, elemID := range e.Elements {
			p.finalizeExpr(elemID)
		}
	case ast.Object:
		for _, prop := range e.Props {
			if prop.Computed {
				p.finalizeExpr(prop.Key)
			} else if !prop.Spread {
				p.v.PropertyDeclaration(p.expr(prop.Key).Name)
			}
			p.finalizeExpr(prop.Value)
		}
	case ast.Spread:
		p.finalizeExpr(e.A)
	case ast.Unary:
		p.finalizeExpr(e.A)
	case ast.Update:
		p.finalizeUpdateTarget(e.A)
	case ast.Binary:
		p.finalizeExpr(e.A)
		p.finalizeExpr(e.B)
	case ast.Assign:
		p.finalizeAssignExpr(e)
	case ast.CompoundAssign:
		p.finalizeCompoundAssignTarget(e.A, e.B)
	case ast.Conditional:
		p.finalizeExpr(e.A)
		p.finalizeExpr(e.B)
		p.finalizeExpr(e.C)
	case ast.Sequence:
		for _, part := range e.Elements {
			p.finalizeExpr(part)
		}
	case ast.Member:
		p.finalizeExpr(e.A)
		if e.Computed {
			p.finalizeExpr(e.B)
		}
	case ast.Call:
		p.finalizeExpr(e.A)
		for _, arg := range e.Elements {
			p.finalizeExpr(arg)
		}
	case ast.New:
		p.finalizeExpr(e.A)
		for _, arg := range e.Elements {
			p.finalizeExpr(arg)
		}
	case ast.Function, ast.Arrow:
		// already visited in full when it was built
	}
}

// finalizeAssignExpr implements the one asymmetry in assignment-event
// ordering: for a plain identifier target the RHS is visited before the
// assignment event, but for a member target the object is used before
// the RHS is visited and no assignment event fires at all (the member
// set itself has no matching declaration).
func (p *Parser) finalizeAssignExpr(e ast.Expr) {
	target := p.expr(e.A)
	if target.Kind == ast.Member {
		p.finalizeExpr(target.A)
		if target.Computed {
			p.finalizeExpr(target.B)
		}
		p.finalizeExpr(e.B)
		return
	}
	p.finalizeExpr(e.B)
	p.finalizeAssignmentTarget(e.A)
}

func (p *Parser) finalizeUpdateTarget(id arena.ID) {
	e := p.expr(id)
	switch e.Kind {
	case ast.Identifier:
		p.v.VariableUse(e.Name)
		p.v.VariableAssignment(e.Name)
	case ast.Member:
		p.finalizeExpr(e.A)
		if e.Computed {
			p.finalizeExpr(e.B)
		}
	default:
		p.finalizeExpr(id)
	}
}

// finalizeCompoundAssignTarget implements `x op= y`: x is read before y
// is evaluated (it's an operand of the operation), then the result is
// written — matching left-to-right reference/value evaluation order.
func (p *Parser) finalizeCompoundAssignTarget(targetID, rhsID arena.ID) {
	e := p.expr(targetID)
	switch e.Kind {
	case ast.Identifier:
		p.v.VariableUse(e.Name)
		p.finalizeExpr(rhsID)
		p.v.VariableAssignment(e.Name)
	case ast.Member:
		p.finalizeExpr(e.A)
		if e.Computed {
			p.finalizeExpr(e.B)
		}
		p.finalizeExpr(rhsID)
	default:
		p.finalizeExpr(targetID)
		p.finalizeExpr(rhsID)
	}
}
