package source

import (
	"sort"
	"unicode/utf16"
	"unicode/utf8"
)

// Locator translates byte offsets into a source buffer into one-based
// (line, column) pairs. Columns are counted in UTF-16 code units to match
// editor conventions; the rest of the module only ever deals in byte
// offsets, so this is purely a presentation-layer lookup and nothing
// upstream depends on its output.
//
// Built once per source buffer by scanning for newline positions; lookups
// are a binary search over that index, following
// kite-golib/linenumber.Map's Offset/LineCol approach.
type Locator struct {
	buf         []byte
	lineOffsets []int // byte offset of the first byte of each line
}

// NewLocator indexes buf's line starts. The buffer must outlive the
// Locator; it is never copied.
func NewLocator(buf []byte) *Locator {
	l := &Locator{
		buf:         buf,
		lineOffsets: []int{0},
	}
	for i, c := range buf {
		if c == '\n' {
			l.lineOffsets = append(l.lineOffsets, i+1)
		}
	}
	return l
}

// LineCol returns the zero-based line and byte-column for a byte offset.
func (l *Locator) LineCol(offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(l.buf) {
		offset = len(l.buf)
	}
	line = sort.Search(len(l.lineOffsets)-1, func(i int) bool {
		return offset < l.lineOffsets[i+1]
	})
	return line, offset - l.lineOffsets[line]
}

// Pos translates a byte offset into a one-based (line, column) pair, with
// the column counted in UTF-16 code units from the start of the line.
func (l *Locator) Pos(offset int) Pos {
	line, byteCol := l.LineCol(offset)
	lineStart := l.lineOffsets[line]
	return Pos{
		Line:   line + 1,
		Column: utf16Units(l.buf[lineStart:lineStart+byteCol]) + 1,
	}
}

// Span translates a Range into a pair of one-based positions.
func (l *Locator) Span(r Range) Span {
	return Span{Begin: l.Pos(r.Begin), End: l.Pos(r.End)}
}

// LineCount returns the number of lines in the indexed buffer.
func (l *Locator) LineCount() int {
	return len(l.lineOffsets)
}

func utf16Units(b []byte) int {
	n := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r > 0xFFFF {
			n += 2 // encoded as a surrogate pair in UTF-16
		} else {
			n++
		}
		b = b[size:]
	}
	return n
}

// UTF16Len counts the UTF-16 code units in s. Exposed for callers that
// need a code-unit count without going through a Locator; lspserve does
// not use it, since it translates positions through Locator.Pos.
func UTF16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}
