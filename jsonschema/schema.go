package jsonschema

import (
	"github.com/goccy/go-json"
)

// Draft7 is the $schema URI emitted on exported root schemas.
const Draft7 = "http://json-schema.org/draft-07/schema#"

// Schema is the standard JSON Schema representation produced from a compiled
// schema tree. It covers the keywords the tree model knows about; any other
// keyword travels in Extra and is merged into the JSON output.
type Schema struct {
	// Core
	Schema  string `json:"$schema,omitempty"`
	Type    any    `json:"type,omitempty"` // string or []string
	Pattern string `json:"pattern,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties *bool              `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Extra holds pass-through keywords (description, minimum, enum...).
	// Named fields win over Extra entries with the same key.
	Extra map[string]any `json:"-"`
}

type plain Schema

// MarshalJSON emits the named fields merged with Extra.
func (s *Schema) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal((*plain)(s))
	if err != nil || len(s.Extra) == 0 {
		return b, err
	}
	var core map[string]json.RawMessage
	if err := json.Unmarshal(b, &core); err != nil {
		return nil, err
	}
	merged := make(map[string]any, len(s.Extra)+len(core))
	for k, v := range s.Extra {
		merged[k] = v
	}
	for k, v := range core {
		merged[k] = v
	}
	return json.Marshal(merged)
}
