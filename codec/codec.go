// Package codec converts the extended scalar kinds between their wire form
// (strings inside JSON documents) and their internal Go form.
package codec

import "errors"

// ErrFormat is returned when a value cannot be read as the codec's kind.
var ErrFormat = errors.New("codec: invalid format")

// Codec converts one extended kind. Encode goes from internal to wire form,
// Decode the other way. Both leave nil untouched.
type Codec interface {
	Encode(v any) (any, error)
	Decode(v any) (any, error)
}
