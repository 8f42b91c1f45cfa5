package ast

import (
	"github.com/example/esparse/arena"
	"github.com/example/esparse/source"
)

// PatternKind tags a reinterpreted binding target.
type PatternKind int

const (
	PatternIdentifier PatternKind = iota
	PatternArray
	PatternObject
)

// Element is one slot of an array pattern. A nil Pattern denotes an
// elision (`[, a]` has a hole before `a`).
type Element struct {
	Pattern *Pattern
	Default arena.ID // Expr, 0 if none
}

// PatternProp is one entry of an object pattern.
type PatternProp struct {
	KeyName  string   // non-computed key text
	KeyExpr  arena.ID // Expr, set when Computed
	Computed bool
	Value    *Pattern
	Default  arena.ID // Expr, 0 if none
	Shorthand bool
}

// Pattern is a binding target reinterpreted from an already-built Expr:
// a bare identifier, or a nested array/object destructuring shape. It
// exists only to be walked once, immediately, to emit declaration or
// assignment events; nothing retains it afterward.
type Pattern struct {
	Kind  PatternKind
	Range source.Range

	Name string // PatternIdentifier

	Elements []Element     // PatternArray
	Rest     *Pattern      // trailing `...rest`, nil if absent

	Props []PatternProp // PatternObject
}

// Reinterpret converts an already-built expression into a binding
// pattern, as spec's late-reinterpretation design calls for: object
// literal entries become bindings, identifier references become
// assignment targets, nested literals recurse, array holes become
// elisions, and a trailing spread/rest element is pulled out of the
// element list. ok is false if id's shape cannot be a binding target at
// all (e.g. a call expression or a literal number); the caller is
// responsible for reporting a diagnostic in that case.
func Reinterpret(exprs *Exprs, id arena.ID) (pat *Pattern, ok bool) {
	if id == 0 {
		return nil, false
	}
	e := exprs.Get(id)

	switch e.Kind {
	case Identifier:
		return &Pattern{Kind: PatternIdentifier, Range: e.Range, Name: e.Name}, true

	case Array:
		p := &Pattern{Kind: PatternArray, Range: e.Range}
		for i, elemID := range e.Elements {
			if elemID == 0 {
				p.Elements = append(p.Elements, Element{})
				continue
			}
			elem := exprs.Get(elemID)
			if elem.Kind == Spread {
				if i != len(e.Elements)-1 {
					return nil, false
				}
				rest, ok := Reinterpret(exprs, elem.A)
				if !ok {
					return nil, false
				}
				p.Rest = rest
				continue
			}
			target, def, ok := splitDefault(exprs, elemID)
			if !ok {
				return nil, false
			}
			sub, ok := Reinterpret(exprs, target)
			if !ok {
				return nil, false
			}
			p.Elements = append(p.Elements, Element{Pattern: sub, Default: def})
		}
		return p, true

	case Object:
		p := &Pattern{Kind: PatternObject, Range: e.Range}
		for i, prop := range e.Props {
			if prop.Spread {
				if i != len(e.Props)-1 {
					return nil, false
				}
				rest, ok := Reinterpret(exprs, prop.Value)
				if !ok {
					return nil, false
				}
				p.Rest = rest
				continue
			}
			target, def, ok := splitDefault(exprs, prop.Value)
			if !ok {
				return nil, false
			}
			sub, ok := Reinterpret(exprs, target)
			if !ok {
				return nil, false
			}
			entry := PatternProp{
				Computed:  prop.Computed,
				KeyExpr:   prop.Key,
				Value:     sub,
				Default:   def,
				Shorthand: prop.Shorthand,
			}
			if !prop.Computed {
				entry.KeyName = exprs.Get(prop.Key).Name
			}
			p.Props = append(p.Props, entry)
		}
		return p, true

	default:
		return nil, false
	}
}

// splitDefault peels a top-level `target = default` assignment off an
// element/property value, as written by `[a = 1]` or `{a: b = 1}`. If id
// is not an Assign node, the whole thing is the target and there is no
// default.
func splitDefault(exprs *Exprs, id arena.ID) (target, def arena.ID, ok bool) {
	e := exprs.Get(id)
	if e.Kind == Assign {
		return e.A, e.B, true
	}
	return id, 0, true
}
