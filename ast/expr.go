// Package ast defines the tagged expression nodes the parser builds while
// parsing one expression, and the operation that reinterprets an already-
// built expression as a binding pattern once `=` or `=>` reveals that's
// what it actually was. Nodes are arena-allocated and refer to each other
// by arena.ID; nothing here holds a Go pointer to another node, so an
// entire expression can be discarded by resetting the arena to a mark.
package ast

import (
	"github.com/example/esparse/arena"
	"github.com/example/esparse/source"
	"github.com/example/esparse/token"
)

// Kind tags the variant an Expr node holds.
type Kind int

const (
	Identifier Kind = iota
	NumberLiteral
	StringLiteral
	RegExpLiteral
	BooleanLiteral
	NullLiteral
	ThisExpr
	Template
	Array
	Object
	Spread
	Unary  // prefix ++/--/+/-/!/~/typeof/void/delete/await; Op holds the operator
	Update // postfix ++/-- or prefix ++/--; Prefix distinguishes the two
	Binary // any binary operator including && || ?? and comparisons; Op holds it
	Assign
	CompoundAssign // Op holds the operator, e.g. token.PlusAssign
	Conditional
	Sequence
	Member
	Call
	New
	Function
	Arrow
)

// Property is one entry of an object literal.
type Property struct {
	Key       arena.ID // Expr; for shorthand, same identifier as Value
	Value     arena.ID // Expr
	Computed  bool
	Shorthand bool
	Spread    bool // {...rest} — Value holds the spread target, Key is unused
}

// Expr is the single node type backing every expression variant. Only the
// fields relevant to Kind are populated; the rest are zero. This mirrors
// the shape of a tagged union without needing a Go type switch over
// distinct struct types for every arena slot.
//
// Function and Arrow nodes are markers only: by the time one exists, the
// parser has already parsed and visited its parameters and body (a
// function's meaning never depends on what follows it, so there is
// nothing to defer). Their Range is the only field callers should read.
type Expr struct {
	Kind  Kind
	Range source.Range

	Name string     // Identifier name; non-computed Member property name; NumberLiteral/StringLiteral/RegExpLiteral/BooleanLiteral raw text
	Op   token.Kind // operator for Unary/Update/Binary/CompoundAssign

	A arena.ID // Unary/Update operand; Binary/Assign/CompoundAssign/Member/New left or object; Conditional test
	B arena.ID // Binary right; Assign/CompoundAssign value; Member computed-property; Conditional consequent
	C arena.ID // Conditional alternate

	Computed bool // Member: obj[prop] vs obj.prop
	Prefix   bool // Update: ++x vs x--

	Elements []arena.ID // Array elements (0 entries are elisions); Sequence parts; Call/New arguments
	Props    []Property // Object

	Pieces []string   // Template literal text pieces (len(Exprs)+1)
	Exprs  []arena.ID // Template interpolated expressions
}

// Exprs is the arena expression nodes are allocated in. One Exprs value
// is created per parse and discarded (via Mark/Reset) per top-level
// statement.
type Exprs = arena.Arena[Expr]

// NewArena returns a fresh expression arena.
func NewArena() *Exprs {
	return arena.New[Expr]()
}
