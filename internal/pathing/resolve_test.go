package pathing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cainus/mongojsonschema/tree"
)

func obj(props ...tree.Property) *tree.Object {
	return &tree.Object{Properties: tree.Properties(props)}
}

func prop(name string, n tree.Node) tree.Property { return tree.Property{Name: name, Node: n} }

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		root tree.Node
		kind tree.ExtendedKind
		want []tree.Path
	}{
		{
			name: "objects of ids",
			root: obj(prop("kid", &tree.ObjectID{}), prop("kid2", &tree.ObjectID{})),
			kind: tree.Identifier,
			want: []tree.Path{tree.P("kid"), tree.P("kid2")},
		},
		{
			name: "array of ids",
			root: obj(prop("arr", &tree.Array{Items: &tree.ObjectID{}})),
			kind: tree.Identifier,
			want: []tree.Path{tree.P("arr", "*")},
		},
		{
			name: "array of arrays of ids",
			root: obj(prop("arr", &tree.Array{Items: &tree.Array{Items: &tree.ObjectID{}}})),
			kind: tree.Identifier,
			want: []tree.Path{tree.P("arr", "*", "*")},
		},
		{
			name: "nested arrays without ids",
			root: obj(prop("arr", &tree.Array{Items: &tree.Array{Items: &tree.Primitive{Name: "number"}}})),
			kind: tree.Identifier,
			want: nil,
		},
		{
			name: "ids double nested in objects",
			root: obj(prop("sub2", obj(prop("sub3", &tree.ObjectID{})))),
			kind: tree.Identifier,
			want: []tree.Path{tree.P("sub2", "sub3")},
		},
		{
			name: "ids inside arrays of objects",
			root: obj(prop("participants", &tree.Array{Items: obj(
				prop("subarr", &tree.Array{Items: &tree.ObjectID{}}),
			)})),
			kind: tree.Identifier,
			want: []tree.Path{tree.P("participants", "*", "subarr", "*")},
		},
		{
			name: "unspecified items and properties",
			root: obj(prop("object", &tree.Object{}), prop("array", &tree.Array{})),
			kind: tree.Identifier,
			want: nil,
		},
		{
			name: "dates ignore identifiers",
			root: obj(
				prop("id", &tree.ObjectID{}),
				prop("dates", obj(prop("date1", &tree.Date{}), prop("date2", &tree.Date{}))),
			),
			kind: tree.Timestamp,
			want: []tree.Path{tree.P("dates", "date1"), tree.P("dates", "date2")},
		},
		{
			name: "array of arrays of dates",
			root: obj(prop("arr", &tree.Array{Items: &tree.Array{Items: &tree.Date{}}})),
			kind: tree.Timestamp,
			want: []tree.Path{tree.P("arr", "*", "*")},
		},
		{
			name: "root of the sought kind",
			root: &tree.Date{},
			kind: tree.Timestamp,
			want: []tree.Path{{}},
		},
		{
			name: "root array",
			root: &tree.Array{Items: &tree.ObjectID{}},
			kind: tree.Identifier,
			want: []tree.Path{tree.P("*")},
		},
		{
			name: "root array without items",
			root: &tree.Array{},
			kind: tree.Identifier,
			want: nil,
		},
		{
			name: "unions are opaque",
			root: obj(prop("canBe", &tree.Union{Types: []string{"array", "string"}, Items: &tree.Primitive{Name: "string"}})),
			kind: tree.Identifier,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.root, tt.kind))
		})
	}
}

func TestResolve_PathsAreIndependent(t *testing.T) {
	root := obj(prop("a", obj(
		prop("x", &tree.ObjectID{}),
		prop("y", &tree.ObjectID{}),
		prop("z", &tree.ObjectID{}),
	)))
	paths := Resolve(root, tree.Identifier)
	assert.Equal(t, []tree.Path{tree.P("a", "x"), tree.P("a", "y"), tree.P("a", "z")}, paths)

	paths[0][1] = tree.Field("changed")
	assert.Equal(t, tree.P("a", "y"), paths[1])
}
