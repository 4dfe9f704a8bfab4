package codec

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ObjectID returns the Codec for 12-byte MongoDB ObjectIDs, whose wire form is
// 24 hexadecimal characters.
func ObjectID() Codec { return objectIDCodec{} }

type objectIDCodec struct{}

// Encode renders ObjectIDs as hex. Strings are returned as they are, so
// encoding is idempotent; values of any other type are passed through for the
// validator to judge.
func (objectIDCodec) Encode(v any) (any, error) {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex(), nil
	case *primitive.ObjectID:
		if t == nil {
			return nil, nil
		}
		return t.Hex(), nil
	}
	return v, nil
}

// Decode parses hex strings into primitive.ObjectID. ObjectIDs and other
// non-string values are returned unchanged.
func (objectIDCodec) Decode(v any) (any, error) {
	switch t := v.(type) {
	case string:
		id, err := primitive.ObjectIDFromHex(t)
		if err != nil {
			return v, fmt.Errorf("%w: objectid %q: %v", ErrFormat, t, err)
		}
		return id, nil
	case *primitive.ObjectID:
		if t == nil {
			return nil, nil
		}
		return *t, nil
	}
	return v, nil
}
