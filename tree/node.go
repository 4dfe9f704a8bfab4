// Package tree defines the schema node model: a closed set of node shapes
// that mirror JSON Schema plus the two extended scalar kinds (objectid and
// date). Trees are built once and treated as immutable; transformations
// always produce new trees.
package tree

// Kind identifies a node shape.
type Kind int

const (
	KindObject Kind = iota
	KindArray
	KindIdentifier
	KindTimestamp
	KindPrimitive
	KindUnion
)

// Type tags as they appear in schema documents.
const (
	TagObject     = "object"
	TagArray      = "array"
	TagIdentifier = "objectid"
	TagTimestamp  = "date"
	TagString     = "string"
	TagNumber     = "number"
	TagInteger    = "integer"
	TagBoolean    = "boolean"
	TagNull       = "null"
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return TagObject
	case KindArray:
		return TagArray
	case KindIdentifier:
		return TagIdentifier
	case KindTimestamp:
		return TagTimestamp
	case KindPrimitive:
		return "primitive"
	case KindUnion:
		return "union"
	}
	return "unknown"
}

// ExtendedKind selects one of the non-JSON scalar kinds.
type ExtendedKind int

const (
	Identifier ExtendedKind = iota
	Timestamp
)

func (k ExtendedKind) String() string {
	if k == Timestamp {
		return TagTimestamp
	}
	return TagIdentifier
}

// Kind returns the node kind carrying this extended tag.
func (k ExtendedKind) Kind() Kind {
	if k == Timestamp {
		return KindTimestamp
	}
	return KindIdentifier
}

// Node is a schema tree node. The set of implementations is closed.
type Node interface {
	Kind() Kind
	// NodeMeta returns the fields shared by every node shape.
	NodeMeta() Meta
	isNode()
}

// Meta carries the fields every node may declare.
type Meta struct {
	// Required marks the enclosing object's property as mandatory.
	Required bool
	// Extra holds any other JSON Schema keyword (description, minimum, enum...).
	// It is passed through compilation untouched.
	Extra map[string]any
}

// Property is one named entry of an object's properties.
type Property struct {
	Name string
	Node Node
}

// Properties is an ordered property list. Declared order is significant:
// path resolution reports paths in this order.
type Properties []Property

// Get returns the node declared for name.
func (ps Properties) Get(name string) (Node, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p.Node, true
		}
	}
	return nil, false
}

// Names returns the property names in declared order.
func (ps Properties) Names() []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

// With returns a copy of ps where name maps to n. An existing entry keeps its
// position; a new one is appended.
func (ps Properties) With(name string, n Node) Properties {
	out := make(Properties, 0, len(ps)+1)
	replaced := false
	for _, p := range ps {
		if p.Name == name {
			p.Node = n
			replaced = true
		}
		out = append(out, p)
	}
	if !replaced {
		out = append(out, Property{Name: name, Node: n})
	}
	return out
}

// Object describes a JSON object. Nil Properties means the object's
// properties are unconstrained.
type Object struct {
	Meta
	Properties Properties
	// AdditionalProperties is nil when the schema does not say.
	AdditionalProperties *bool
}

// Array describes a JSON array. Nil Items means elements are unconstrained.
type Array struct {
	Meta
	Items Node
}

// ObjectID is the identifier scalar: 24 hexadecimal characters on the wire.
type ObjectID struct {
	Meta
}

// Date is the timestamp scalar: an ISO-8601 timestamp on the wire.
type Date struct {
	Meta
}

// Primitive is a standard JSON Schema scalar type. An empty Name leaves the
// type unconstrained.
type Primitive struct {
	Meta
	Name    string
	Pattern string
}

// Union is a multi-type node such as {"type": ["array", "string"]}. Only
// standard tags are allowed in Types.
type Union struct {
	Meta
	Types                []string
	Properties           Properties
	Items                Node
	AdditionalProperties *bool
}

func (n *Object) Kind() Kind    { return KindObject }
func (n *Array) Kind() Kind     { return KindArray }
func (n *ObjectID) Kind() Kind  { return KindIdentifier }
func (n *Date) Kind() Kind      { return KindTimestamp }
func (n *Primitive) Kind() Kind { return KindPrimitive }
func (n *Union) Kind() Kind     { return KindUnion }

func (n *Object) NodeMeta() Meta    { return n.Meta }
func (n *Array) NodeMeta() Meta     { return n.Meta }
func (n *ObjectID) NodeMeta() Meta  { return n.Meta }
func (n *Date) NodeMeta() Meta      { return n.Meta }
func (n *Primitive) NodeMeta() Meta { return n.Meta }
func (n *Union) NodeMeta() Meta     { return n.Meta }

func (*Object) isNode()    {}
func (*Array) isNode()     {}
func (*ObjectID) isNode()  {}
func (*Date) isNode()      {}
func (*Primitive) isNode() {}
func (*Union) isNode()     {}

// Bool returns a pointer to b, for AdditionalProperties literals.
func Bool(b bool) *bool { return &b }
