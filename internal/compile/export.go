package compile

import (
	js "github.com/cainus/mongojsonschema/jsonschema"
	"github.com/cainus/mongojsonschema/tree"
)

// JSONSchema projects a tree into the draft-7 export struct. Per-node
// required markers become the parent object's required list, in declared
// order. Extended nodes keep their own tag, so only standardized trees yield
// documents a generic validator accepts.
func JSONSchema(root tree.Node) *js.Schema {
	s := export(root)
	if s == nil {
		s = &js.Schema{}
	}
	s.Schema = js.Draft7
	return s
}

func export(n tree.Node) *js.Schema {
	if n == nil {
		return nil
	}
	s := &js.Schema{Extra: copyExtra(n.NodeMeta().Extra)}
	switch t := n.(type) {
	case *tree.Object:
		s.Type = tree.TagObject
		s.Properties, s.Required = exportProps(t.Properties)
		s.AdditionalProperties = t.AdditionalProperties
	case *tree.Array:
		s.Type = tree.TagArray
		s.Items = export(t.Items)
	case *tree.ObjectID:
		s.Type = tree.TagIdentifier
	case *tree.Date:
		s.Type = tree.TagTimestamp
	case *tree.Primitive:
		if t.Name != "" {
			s.Type = t.Name
		}
		s.Pattern = t.Pattern
	case *tree.Union:
		s.Type = append([]string(nil), t.Types...)
		s.Properties, s.Required = exportProps(t.Properties)
		s.AdditionalProperties = t.AdditionalProperties
		s.Items = export(t.Items)
	}
	return s
}

func exportProps(props tree.Properties) (map[string]*js.Schema, []string) {
	if props == nil {
		return nil, nil
	}
	out := make(map[string]*js.Schema, len(props))
	var required []string
	for _, p := range props {
		out[p.Name] = export(p.Node)
		if p.Node != nil && p.Node.NodeMeta().Required {
			required = append(required, p.Name)
		}
	}
	return out, required
}

func copyExtra(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
