// Package token defines the closed set of lexical token kinds the lexer
// produces and the keyword table used to classify identifiers.
package token

import "github.com/example/esparse/source"

// Kind is the closed set of token kinds spec's data model enumerates.
type Kind int

const (
	EOF Kind = iota
	Error

	Identifier
	Number
	String

	// Template pieces. A no-substitution template is a single token; a
	// template with interpolation is split into Head, one or more
	// Middles, and a Tail, with expression tokens between them.
	TemplateNoSubstitution
	TemplateHead
	TemplateMiddle
	TemplateTail

	RegExp

	// Keywords
	KeywordLet
	KeywordVar
	KeywordConst
	KeywordFunction
	KeywordClass
	KeywordReturn
	KeywordThrow
	KeywordImport
	KeywordExport
	KeywordFrom
	KeywordAs
	KeywordIf
	KeywordElse
	KeywordDo
	KeywordWhile
	KeywordFor
	KeywordIn
	KeywordOf
	KeywordTry
	KeywordCatch
	KeywordFinally
	KeywordSwitch
	KeywordCase
	KeywordDefault
	KeywordNew
	KeywordThis
	KeywordSuper
	KeywordNull
	KeywordTrue
	KeywordFalse
	KeywordAsync
	KeywordAwait
	KeywordStatic
	KeywordBreak
	KeywordContinue
	KeywordDelete
	KeywordTypeof
	KeywordVoid
	KeywordInstanceof
	KeywordYield
	KeywordExtends
	KeywordGet
	KeywordSet

	// Punctuators. Ordered loosely by family; maximal-munch scanning in
	// the lexer means relative order here carries no meaning.
	Plus
	Minus
	Star
	Slash
	Percent
	StarStar
	Amp
	Pipe
	Caret
	AmpAmp
	PipePipe
	EqEq
	EqEqEq
	NotEq
	NotEqEq
	Lt
	LtEq
	Gt
	GtEq
	Shl
	Shr
	UShr
	Assign
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign
	StarStarAssign
	AmpAssign
	PipeAssign
	CaretAssign
	AmpAmpAssign
	PipePipeAssign
	QuestionQuestionAssign
	ShlAssign
	ShrAssign
	UShrAssign
	Dot
	Comma
	Semicolon
	Colon
	Question
	QuestionQuestion
	OptionalChain // ?.
	Arrow
	Ellipsis
	PlusPlus
	MinusMinus
	Not
	Tilde
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Backtick
)

var kindNames = map[Kind]string{
	EOF: "EOF", Error: "Error", Identifier: "Identifier", Number: "Number",
	String: "String", TemplateNoSubstitution: "TemplateNoSubstitution",
	TemplateHead: "TemplateHead", TemplateMiddle: "TemplateMiddle", TemplateTail: "TemplateTail",
	RegExp: "RegExp",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", StarStar: "**",
	Amp: "&", Pipe: "|", Caret: "^", AmpAmp: "&&", PipePipe: "||",
	EqEq: "==", EqEqEq: "===", NotEq: "!=", NotEqEq: "!==",
	Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=", Shl: "<<", Shr: ">>", UShr: ">>>",
	Assign: "=", PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", SlashAssign: "/=",
	PercentAssign: "%=", StarStarAssign: "**=", AmpAssign: "&=", PipeAssign: "|=", CaretAssign: "^=",
	AmpAmpAssign: "&&=", PipePipeAssign: "||=", QuestionQuestionAssign: "??=",
	ShlAssign: "<<=", ShrAssign: ">>=", UShrAssign: ">>>=",
	Dot: ".", Comma: ",", Semicolon: ";", Colon: ":", Question: "?",
	QuestionQuestion: "??", OptionalChain: "?.", Arrow: "=>", Ellipsis: "...",
	PlusPlus: "++", MinusMinus: "--", Not: "!", Tilde: "~",
	LParen: "(", RParen: ")", LBracket: "[", RBracket: "]", LBrace: "{", RBrace: "}", Backtick: "`",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Keyword"
}

// Token is the unit the lexer produces: a kind, a source range, an
// optional literal value (raw text for identifiers/literals), and
// whether a line terminator preceded it — the sole input to ASI.
type Token struct {
	Kind              Kind
	Range             source.Range
	Value             string
	HasLeadingNewline bool
}

var keywords = map[string]Kind{
	"let": KeywordLet, "var": KeywordVar, "const": KeywordConst,
	"function": KeywordFunction, "class": KeywordClass,
	"return": KeywordReturn, "throw": KeywordThrow,
	"import": KeywordImport, "export": KeywordExport, "from": KeywordFrom, "as": KeywordAs,
	"if": KeywordIf, "else": KeywordElse, "do": KeywordDo, "while": KeywordWhile,
	"for": KeywordFor, "in": KeywordIn, "of": KeywordOf,
	"try": KeywordTry, "catch": KeywordCatch, "finally": KeywordFinally,
	"switch": KeywordSwitch, "case": KeywordCase, "default": KeywordDefault,
	"new": KeywordNew, "this": KeywordThis, "super": KeywordSuper,
	"null": KeywordNull, "true": KeywordTrue, "false": KeywordFalse,
	"async": KeywordAsync, "await": KeywordAwait, "static": KeywordStatic,
	"break": KeywordBreak, "continue": KeywordContinue,
	"delete": KeywordDelete, "typeof": KeywordTypeof, "void": KeywordVoid,
	"instanceof": KeywordInstanceof, "yield": KeywordYield, "extends": KeywordExtends,
	"get": KeywordGet, "set": KeywordSet,
}

// LookupKeyword classifies an identifier-shaped byte string as a keyword
// kind, or Identifier if it isn't one. The keyword set is closed and
// fixed, so a map lookup (rather than a generated perfect hash) is
// adequate; spec's design note leaves the exact mechanism unspecified.
func LookupKeyword(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return Identifier
}

// IsContextualBindingName reports whether a token of this kind may stand
// in for an identifier in a binding position. "get"/"set" are contextual
// keywords used as accessor markers but remain valid identifiers/bindings
// everywhere else; async/await/static/of/as/from likewise.
func IsContextualBindingName(k Kind) bool {
	switch k {
	case KeywordAsync, KeywordAwait, KeywordStatic, KeywordOf, KeywordAs, KeywordFrom,
		KeywordGet, KeywordSet, KeywordYield:
		return true
	}
	return false
}
