// Package parser implements the recursive-descent JavaScript parser:
// top-down over statements, precedence-climbing over expressions, with
// Automatic Semicolon Insertion and local error recovery. Its only
// output channels are a visitor.Visitor (semantic events) and a
// source.Sink (syntax diagnostics); no AST is retained once a statement
// has been parsed.
package parser

import (
	"github.com/example/esparse/arena"
	"github.com/example/esparse/ast"
	"github.com/example/esparse/lexer"
	"github.com/example/esparse/source"
	"github.com/example/esparse/token"
	"github.com/example/esparse/visitor"
)

// Parser holds the state for one parse of one source buffer. It is not
// safe for concurrent use.
type Parser struct {
	lex   *lexer.Lexer
	exprs *ast.Exprs
	sink  *source.Sink
	loc   *source.Locator

	lastEnd int // end offset of the most recently consumed token

	v visitor.Visitor // bound for the duration of the current ParseAndVisit* call
}

// New creates a parser over src. The diagnostic sink and source locator
// it builds internally are reachable via Errors and Locator.
func New(src []byte) *Parser {
	// Skip a leading BOM here too, so the locator indexes the same bytes
	// that the lexer's token ranges are offsets into.
	if len(src) >= 3 && src[0] == 0xEF && src[1] == 0xBB && src[2] == 0xBF {
		src = src[3:]
	}
	sink := source.NewSink()
	return &Parser{
		lex:   lexer.New(src, sink),
		exprs: ast.NewArena(),
		sink:  sink,
		loc:   source.NewLocator(src),
	}
}

// Locator returns the source locator for translating byte ranges emitted
// in diagnostics to line/column positions.
func (p *Parser) Locator() *source.Locator {
	return p.loc
}

// Errors returns every diagnostic recorded so far, ordered per
// source.Sink's ordering contract.
func (p *Parser) Errors() []source.Diagnostic {
	return p.sink.Diagnostics()
}

// ParseAndVisitModule parses statements until end-of-file and finishes
// with an EndOfModule event.
func (p *Parser) ParseAndVisitModule(v visitor.Visitor) {
	p.v = v
	for p.peek().Kind != token.EOF {
		p.parseStatement()
	}
	v.EndOfModule()
}

// ParseAndVisitStatement parses exactly one top-level statement. It is a
// no-op at end-of-file.
func (p *Parser) ParseAndVisitStatement(v visitor.Visitor) {
	p.v = v
	if p.peek().Kind == token.EOF {
		return
	}
	p.parseStatement()
}

// ParseAndVisitExpression parses exactly one expression; no statement
// terminator is required or consumed.
func (p *Parser) ParseAndVisitExpression(v visitor.Visitor) {
	p.v = v
	mark := p.exprs.Mark()
	id := p.buildSequenceExpr()
	p.finalizeExpr(id)
	p.exprs.Reset(mark)
}

// parseStatement dispatches on the current token and wraps the call in
// an arena mark/reset pair, per spec's rule that expression nodes never
// outlive the statement that built them.
func (p *Parser) parseStatement() {
	mark := p.exprs.Mark()
	p.parseStatementInner()
	p.exprs.Reset(mark)
}

func (p *Parser) diag(kind source.DiagnosticKind, r source.Range) {
	p.sink.Add(kind, r)
}

// --- token helpers -------------------------------------------------------

func (p *Parser) peek() token.Token {
	return p.lex.Peek()
}

func (p *Parser) advance() token.Token {
	t := p.lex.Peek()
	p.lex.Advance()
	p.lastEnd = t.Range.End
	return t
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) match(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// isBindingName reports whether the current token can stand in for an
// identifier in a binding/reference position: a real Identifier, or one
// of the contextual keywords spec's keyword table carves out.
func isBindingName(k token.Kind) bool {
	return k == token.Identifier || token.IsContextualBindingName(k)
}

// --- ASI -----------------------------------------------------------------

// consumeStatementTerminator implements spec's ASI rule: an explicit `;`,
// a `}` or EOF that naturally ends the statement, or a next token that
// arrived with a leading newline, all satisfy the terminator. Otherwise
// it records missing_semicolon_after_expression at a zero-width range
// immediately after the completed production and proceeds as if a
// semicolon were present.
func (p *Parser) consumeStatementTerminator() {
	switch {
	case p.at(token.Semicolon):
		p.advance()
	case p.at(token.RBrace), p.at(token.EOF):
		// implicit terminator, nothing to consume
	case p.peek().HasLeadingNewline:
		// implicit terminator
	default:
		p.diag(source.MissingSemicolonAfterExpression, source.Range{Begin: p.lastEnd, End: p.lastEnd})
	}
}

// allocExpr is a small convenience wrapper around the expression arena.
func (p *Parser) allocExpr(e ast.Expr) arena.ID {
	return p.exprs.Allocate(e)
}

func (p *Parser) expr(id arena.ID) ast.Expr {
	return p.exprs.Get(id)
}
