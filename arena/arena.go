// Package arena provides a bump-allocated, ID-addressed store for parse
// tree nodes. Nodes never hold pointers to each other; they hold IDs into
// an Arena, so an entire subtree can be discarded by resetting to a mark
// without walking it.
package arena

// ID identifies a value inside an Arena. The zero ID is never issued by
// Allocate, so it doubles as a "no node" sentinel.
type ID int

// Arena is an append-only slice of T addressed by ID, with a mark/reset
// pair that lets a caller roll back everything allocated since a point in
// time. The parser uses a single Arena of expression nodes, scoped per
// statement: Mark before parsing a statement, Reset once it has been
// parsed.
type Arena[T any] struct {
	items []T
}

// New returns an empty arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Allocate appends v and returns the ID it can be retrieved by.
func (a *Arena[T]) Allocate(v T) ID {
	a.items = append(a.items, v)
	return ID(len(a.items))
}

// Get returns the value stored at id. It panics if id is zero or was
// never allocated (including one that has since been discarded by Reset),
// since a dangling ID is always a bug in the caller, not recoverable
// input.
func (a *Arena[T]) Get(id ID) T {
	return a.items[id-1]
}

// Set overwrites the value stored at id.
func (a *Arena[T]) Set(id ID, v T) {
	a.items[id-1] = v
}

// Mark returns a checkpoint that Reset can roll back to.
func (a *Arena[T]) Mark() ID {
	return ID(len(a.items))
}

// Reset discards every value allocated since mark.
func (a *Arena[T]) Reset(mark ID) {
	a.items = a.items[:mark]
}

// Len returns the number of live allocations.
func (a *Arena[T]) Len() int {
	return len(a.items)
}
