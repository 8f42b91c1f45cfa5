package format

import "encoding"

// Encoder is satisfied by every encoder in this package: each wraps a
// single io.Writer bound at construction time and can also produce its
// output as a standalone byte slice.
type Encoder interface {
	encoding.TextMarshaler
	Encode() error
}
