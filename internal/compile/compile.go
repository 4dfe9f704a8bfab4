// Package compile rewrites schema trees that use the extended scalar kinds
// into standard JSON Schema trees, derives the partial (no required
// markers) variant, and projects trees into the jsonschema export struct.
package compile

import (
	"fmt"

	"github.com/cainus/mongojsonschema/tree"
)

// ObjectIDPattern matches exactly 24 hexadecimal characters.
const ObjectIDPattern = `^[a-fA-F0-9]{24}$`

// TimestampPattern matches ISO-8601 style timestamps: year, month, day, hour,
// minute and second with optional separators, optional fractional seconds,
// and a Z or signed hh:mm offset.
const TimestampPattern = `(\d\d\d\d)(-)?(\d\d)(-)?(\d\d)(T)?(\d\d)(:)?(\d\d)(:)?(\d\d)(\.\d+)?(Z|([+-])(\d\d)(:)?(\d\d))`

// Standard returns a copy of root where every objectid node and every date
// node becomes a pattern-constrained string. Everything else, including
// required markers and additionalProperties, is carried over unchanged.
func Standard(root tree.Node) (tree.Node, error) {
	m := mapper{leaf: func(n tree.Node) tree.Node {
		switch t := n.(type) {
		case *tree.ObjectID:
			return &tree.Primitive{Meta: t.Meta, Name: tree.TagString, Pattern: ObjectIDPattern}
		case *tree.Date:
			return &tree.Primitive{Meta: t.Meta, Name: tree.TagString, Pattern: TimestampPattern}
		}
		return n
	}}
	return m.rewrite(root, "")
}

// Partial returns a copy of an already standardized tree with the required
// marker cleared on every node.
func Partial(standard tree.Node) (tree.Node, error) {
	m := mapper{meta: func(mt tree.Meta) tree.Meta {
		mt.Required = false
		return mt
	}}
	return m.rewrite(standard, "")
}

// mapper rebuilds a tree. leaf maps scalar nodes; meta adjusts the shared
// fields of every node. Either may be nil.
type mapper struct {
	leaf func(tree.Node) tree.Node
	meta func(tree.Meta) tree.Meta
}

func (m mapper) metaOf(mt tree.Meta) tree.Meta {
	if m.meta == nil {
		return mt
	}
	return m.meta(mt)
}

func (m mapper) rewrite(n tree.Node, at string) (tree.Node, error) {
	switch t := n.(type) {
	case nil:
		return nil, &tree.CompileError{At: at, Reason: "missing schema node"}
	case *tree.Object:
		props, err := m.props(t.Properties, at)
		if err != nil {
			return nil, err
		}
		return &tree.Object{Meta: m.metaOf(t.Meta), Properties: props, AdditionalProperties: t.AdditionalProperties}, nil
	case *tree.Array:
		items, err := m.items(t.Items, at)
		if err != nil {
			return nil, err
		}
		return &tree.Array{Meta: m.metaOf(t.Meta), Items: items}, nil
	case *tree.Union:
		for _, tag := range t.Types {
			if tag == tree.TagIdentifier || tag == tree.TagTimestamp {
				return nil, &tree.CompileError{At: at + "/type", Reason: fmt.Sprintf("%q cannot be part of a type list", tag)}
			}
		}
		props, err := m.props(t.Properties, at)
		if err != nil {
			return nil, err
		}
		items, err := m.items(t.Items, at)
		if err != nil {
			return nil, err
		}
		c := *t
		c.Meta = m.metaOf(t.Meta)
		c.Types = append([]string(nil), t.Types...)
		c.Properties = props
		c.Items = items
		return &c, nil
	case *tree.ObjectID, *tree.Date, *tree.Primitive:
		out := n
		if m.leaf != nil {
			out = m.leaf(n)
		}
		return m.scalarMeta(out), nil
	}
	return nil, &tree.CompileError{At: at, Reason: fmt.Sprintf("unsupported node %T", n)}
}

// scalarMeta returns a copy of a scalar node with the meta function applied.
func (m mapper) scalarMeta(n tree.Node) tree.Node {
	switch t := n.(type) {
	case *tree.ObjectID:
		c := *t
		c.Meta = m.metaOf(t.Meta)
		return &c
	case *tree.Date:
		c := *t
		c.Meta = m.metaOf(t.Meta)
		return &c
	case *tree.Primitive:
		c := *t
		c.Meta = m.metaOf(t.Meta)
		return &c
	}
	return n
}

func (m mapper) props(props tree.Properties, at string) (tree.Properties, error) {
	if props == nil {
		return nil, nil
	}
	out := make(tree.Properties, len(props))
	for i, p := range props {
		n, err := m.rewrite(p.Node, at+"/properties/"+tree.PointerToken(p.Name))
		if err != nil {
			return nil, err
		}
		out[i] = tree.Property{Name: p.Name, Node: n}
	}
	return out, nil
}

func (m mapper) items(items tree.Node, at string) (tree.Node, error) {
	if items == nil {
		return nil, nil
	}
	return m.rewrite(items, at+"/items")
}
