package codec

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Timestamp returns the Codec for date values. The internal forms are
// time.Time, *time.Time and primitive.DateTime; the wire form is RFC 3339
// with nanoseconds, in UTC.
func Timestamp() Codec { return timestampCodec{} }

type timestampCodec struct{}

// Encode formats times. Strings must already parse as timestamps and are
// returned unchanged; any other value is a format error.
func (timestampCodec) Encode(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return FormatTimestamp(t), nil
	case *time.Time:
		if t == nil {
			return nil, nil
		}
		return FormatTimestamp(*t), nil
	case primitive.DateTime:
		return FormatTimestamp(t.Time()), nil
	case string:
		if _, err := ParseTimestamp(t); err != nil {
			return v, err
		}
		return t, nil
	}
	return v, fmt.Errorf("%w: %T is not a timestamp", ErrFormat, v)
}

// Decode parses timestamp strings into UTC time.Time values. Times are
// normalized to time.Time; other values are returned unchanged.
func (timestampCodec) Decode(v any) (any, error) {
	switch t := v.(type) {
	case string:
		ts, err := ParseTimestamp(t)
		if err != nil {
			return v, err
		}
		return ts, nil
	case *time.Time:
		if t == nil {
			return nil, nil
		}
		return *t, nil
	case primitive.DateTime:
		return t.Time().UTC(), nil
	}
	return v, nil
}

// layouts accepted by ParseTimestamp, tried in order. Fractional seconds are
// optional in all of them.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"20060102T150405.999999999Z07:00",
	"20060102T150405.999999999Z0700",
}

// ParseTimestamp reads an ISO-8601 timestamp with a Z or numeric offset.
func ParseTimestamp(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, fmt.Errorf("%w: timestamp %q: %v", ErrFormat, s, firstErr)
}

// FormatTimestamp normalizes to UTC and formats using RFC3339Nano (Go trims
// trailing zeros).
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
