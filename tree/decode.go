package tree

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a complete schema node from a YAML or JSON document.
// Property order is taken from the document.
func Parse(data []byte) (Node, error) {
	root, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	return nodeFrom(root, "")
}

// ParseProperties decodes the shorthand form: a mapping from property name
// to schema node, as accepted by mongojsonschema.New.
func ParseProperties(data []byte) (Properties, error) {
	root, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	return propertiesFrom(root, "")
}

// FromValue converts an already decoded value (for example the result of
// json.Unmarshal into any) into a Node. Go maps carry no order, so object
// properties come out sorted by name.
func FromValue(v any) (Node, error) {
	var y yaml.Node
	if err := y.Encode(v); err != nil {
		return nil, fmt.Errorf("tree: cannot encode schema value: %w", err)
	}
	return nodeFrom(&y, "")
}

func decodeDocument(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("tree: invalid schema document: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, compileErrorf("", "empty schema document")
	}
	return doc.Content[0], nil
}

func resolveAlias(y *yaml.Node) *yaml.Node {
	for y != nil && y.Kind == yaml.AliasNode {
		y = y.Alias
	}
	return y
}

// rawNode holds the keywords of one schema mapping before the node shape is
// chosen from its type tag.
type rawNode struct {
	tags       []string
	tagList    bool
	properties Properties
	hasProps   bool
	items      Node
	required   bool
	reqNames   []string
	additional *bool
	pattern    string
	extra      map[string]any
}

func nodeFrom(y *yaml.Node, at string) (Node, error) {
	y = resolveAlias(y)
	if y == nil || y.Kind != yaml.MappingNode {
		return nil, compileErrorf(at, "schema node must be a mapping")
	}
	raw := rawNode{}
	for i := 0; i+1 < len(y.Content); i += 2 {
		key := y.Content[i].Value
		val := resolveAlias(y.Content[i+1])
		if err := raw.set(key, val, at); err != nil {
			return nil, err
		}
	}
	if len(raw.reqNames) > 0 {
		props, err := markRequired(raw.properties, raw.reqNames, at)
		if err != nil {
			return nil, err
		}
		raw.properties = props
	}
	return raw.build(at)
}

func (r *rawNode) set(key string, val *yaml.Node, at string) error {
	switch key {
	case "type":
		switch val.Kind {
		case yaml.ScalarNode:
			r.tags = []string{val.Value}
		case yaml.SequenceNode:
			r.tagList = true
			for _, t := range val.Content {
				t = resolveAlias(t)
				if t.Kind != yaml.ScalarNode {
					return compileErrorf(at+"/type", "type list entries must be strings")
				}
				r.tags = append(r.tags, t.Value)
			}
		default:
			return compileErrorf(at+"/type", "type must be a string or a list of strings")
		}
	case "properties":
		props, err := propertiesFrom(val, at+"/properties")
		if err != nil {
			return err
		}
		r.properties, r.hasProps = props, true
	case "items":
		if val.Kind != yaml.MappingNode {
			return compileErrorf(at+"/items", "items must be a single schema node")
		}
		n, err := nodeFrom(val, at+"/items")
		if err != nil {
			return err
		}
		r.items = n
	case "required":
		switch val.Kind {
		case yaml.SequenceNode:
			if err := val.Decode(&r.reqNames); err != nil {
				return compileErrorf(at+"/required", "required list must hold property names")
			}
		default:
			if err := val.Decode(&r.required); err != nil {
				return compileErrorf(at+"/required", "required must be a boolean")
			}
		}
	case "additionalProperties":
		var b bool
		if val.Kind == yaml.ScalarNode && val.Decode(&b) == nil {
			r.additional = &b
			return nil
		}
		return r.keep(key, val, at)
	case "pattern":
		if val.Kind != yaml.ScalarNode {
			return compileErrorf(at+"/pattern", "pattern must be a string")
		}
		r.pattern = val.Value
	default:
		return r.keep(key, val, at)
	}
	return nil
}

func (r *rawNode) keep(key string, val *yaml.Node, at string) error {
	var v any
	if err := val.Decode(&v); err != nil {
		return compileErrorf(at+"/"+PointerToken(key), "cannot decode keyword: %v", err)
	}
	if r.extra == nil {
		r.extra = map[string]any{}
	}
	r.extra[key] = normalizeValue(v)
	return nil
}

func (r *rawNode) build(at string) (Node, error) {
	meta := Meta{Required: r.required, Extra: r.extra}
	if r.tagList && len(r.tags) != 1 {
		for _, t := range r.tags {
			if t == TagIdentifier || t == TagTimestamp {
				return nil, compileErrorf(at+"/type", "%q cannot be part of a type list", t)
			}
			if !isStandardTag(t) {
				return nil, compileErrorf(at+"/type", "unknown type %q", t)
			}
		}
		return &Union{
			Meta:                 meta,
			Types:                r.tags,
			Properties:           r.properties,
			Items:                r.items,
			AdditionalProperties: r.additional,
		}, nil
	}
	tag := ""
	if len(r.tags) == 1 {
		tag = r.tags[0]
	}
	if tag != TagObject && (r.hasProps || r.additional != nil) {
		return nil, compileErrorf(at, "properties declared on a %q node", tag)
	}
	if tag != TagArray && r.items != nil {
		return nil, compileErrorf(at, "items declared on a %q node", tag)
	}
	if r.pattern != "" && tag != TagString && tag != "" {
		return nil, compileErrorf(at, "pattern declared on a %q node", tag)
	}
	switch tag {
	case TagObject:
		return &Object{Meta: meta, Properties: r.properties, AdditionalProperties: r.additional}, nil
	case TagArray:
		return &Array{Meta: meta, Items: r.items}, nil
	case TagIdentifier:
		return &ObjectID{Meta: meta}, nil
	case TagTimestamp:
		return &Date{Meta: meta}, nil
	case "", TagString, TagNumber, TagInteger, TagBoolean, TagNull:
		return &Primitive{Meta: meta, Name: tag, Pattern: r.pattern}, nil
	}
	return nil, compileErrorf(at+"/type", "unknown type %q", tag)
}

func propertiesFrom(y *yaml.Node, at string) (Properties, error) {
	y = resolveAlias(y)
	if y == nil || y.Kind != yaml.MappingNode {
		return nil, compileErrorf(at, "properties must be a mapping")
	}
	props := make(Properties, 0, len(y.Content)/2)
	seen := make(map[string]struct{}, len(y.Content)/2)
	for i := 0; i+1 < len(y.Content); i += 2 {
		name := y.Content[i].Value
		if _, dup := seen[name]; dup {
			return nil, compileErrorf(at, "duplicate property %q", name)
		}
		seen[name] = struct{}{}
		n, err := nodeFrom(y.Content[i+1], at+"/"+PointerToken(name))
		if err != nil {
			return nil, err
		}
		props = append(props, Property{Name: name, Node: n})
	}
	return props, nil
}

// markRequired applies a draft-4 style required list to the declared properties.
func markRequired(props Properties, names []string, at string) (Properties, error) {
	out := append(Properties(nil), props...)
	for _, name := range names {
		found := false
		for i := range out {
			if out[i].Name == name {
				out[i].Node = withRequired(out[i].Node, true)
				found = true
				break
			}
		}
		if !found {
			return nil, compileErrorf(at+"/required", "required property %q is not declared", name)
		}
	}
	return out, nil
}

// withRequired returns a shallow copy of n with its Required marker set to req.
func withRequired(n Node, req bool) Node {
	switch t := n.(type) {
	case *Object:
		c := *t
		c.Required = req
		return &c
	case *Array:
		c := *t
		c.Required = req
		return &c
	case *ObjectID:
		c := *t
		c.Required = req
		return &c
	case *Date:
		c := *t
		c.Required = req
		return &c
	case *Primitive:
		c := *t
		c.Required = req
		return &c
	case *Union:
		c := *t
		c.Required = req
		return &c
	}
	return n
}

func isStandardTag(t string) bool {
	switch t {
	case TagObject, TagArray, TagString, TagNumber, TagInteger, TagBoolean, TagNull:
		return true
	}
	return false
}

// PointerToken encodes a property name as a JSON Pointer token (RFC 6901).
func PointerToken(name string) string {
	return strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
}

// normalizeValue converts YAML-decoded values (which may contain map[any]any)
// into JSON-like values recursively.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = normalizeValue(vv)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = normalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
