package mongojsonschema

import (
	"fmt"
	"strings"

	"github.com/cainus/mongojsonschema/codec"
	"github.com/cainus/mongojsonschema/i18n"
	"github.com/cainus/mongojsonschema/internal/pathing"
)

var (
	identifiers = codec.ObjectID()
	timestamps  = codec.Timestamp()
)

// IdentifiersToStrings returns a copy of doc with every ObjectID at an
// identifier path replaced by its hex string. Strings and other values are
// left as they are, so the conversion is idempotent.
func (s *Schema) IdentifiersToStrings(doc any) (any, error) {
	return pathing.ApplyAll(doc, s.IdentifierPaths(), func(_ string, v any) any {
		out, _ := identifiers.Encode(v)
		return out
	})
}

// StringsToIdentifiers returns a copy of doc with every hex string at an
// identifier path replaced by a primitive.ObjectID. Values that are not valid
// hex strings are left for validation to reject.
func (s *Schema) StringsToIdentifiers(doc any) (any, error) {
	return pathing.ApplyAll(doc, s.IdentifierPaths(), func(_ string, v any) any {
		out, err := identifiers.Decode(v)
		if err != nil {
			return v
		}
		return out
	})
}

// TimestampsToStrings returns a copy of doc with every time value at a
// timestamp path formatted as an RFC 3339 string. Strings are kept when they
// parse. Any value that does not parse is collected into a
// *ValidationError of kind KindTimestampFormat.
func (s *Schema) TimestampsToStrings(doc any) (any, error) {
	var vs Violations
	out, err := pathing.ApplyAll(doc, s.TimestampPaths(), func(at string, v any) any {
		enc, err := timestamps.Encode(v)
		if err != nil {
			value := fmt.Sprint(v)
			vs = append(vs, Violation{
				Path:    at,
				Code:    CodeInvalidFormat,
				Message: s.message(CodeInvalidFormat, map[string]string{"value": value}),
				Detail:  fmt.Sprintf("incorrect date format - got %s at %s", value, pointerOrRoot(at)),
			})
			return v
		}
		return enc
	})
	if err != nil {
		return nil, err
	}
	if len(vs) > 0 {
		return nil, newValidationError(KindTimestampFormat, s.cfg.name, vs)
	}
	return out, nil
}

// StringsToTimestamps returns a copy of doc with every parseable string at a
// timestamp path replaced by a UTC time.Time. Other values are left as they
// are.
func (s *Schema) StringsToTimestamps(doc any) (any, error) {
	return pathing.ApplyAll(doc, s.TimestampPaths(), func(_ string, v any) any {
		out, err := timestamps.Decode(v)
		if err != nil {
			return v
		}
		return out
	})
}

func (s *Schema) message(code string, data map[string]string) string {
	if s.cfg.translator != nil {
		return s.cfg.translator.Message(code, data)
	}
	return i18n.T(code, data)
}

func lastToken(p string) string {
	tok := p[strings.LastIndexByte(p, '/')+1:]
	return strings.ReplaceAll(strings.ReplaceAll(tok, "~1", "/"), "~0", "~")
}
