package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProperties_KeepsOrder(t *testing.T) {
	props, err := ParseProperties([]byte(`
zeta: {type: string}
alpha: {type: objectid, required: true}
mid:
  type: array
  items: {type: date}
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, props.Names())

	alpha, _ := props.Get("alpha")
	assert.IsType(t, &ObjectID{}, alpha)
	assert.True(t, alpha.NodeMeta().Required)

	mid, _ := props.Get("mid")
	require.IsType(t, &Array{}, mid)
	assert.IsType(t, &Date{}, mid.(*Array).Items)
}

func TestParse_JSON(t *testing.T) {
	n, err := Parse([]byte(`{
		"type": "object",
		"properties": {
			"b": {"type": "number", "minimum": 1, "description": "count"},
			"a": {"type": "string", "pattern": "^x"}
		},
		"required": ["a"],
		"additionalProperties": false
	}`))
	require.NoError(t, err)
	obj := n.(*Object)
	assert.Equal(t, []string{"b", "a"}, obj.Properties.Names())
	assert.False(t, *obj.AdditionalProperties)

	b, _ := obj.Properties.Get("b")
	assert.Equal(t, map[string]any{"minimum": 1, "description": "count"}, b.NodeMeta().Extra)
	assert.False(t, b.NodeMeta().Required)

	a, _ := obj.Properties.Get("a")
	assert.True(t, a.NodeMeta().Required)
	assert.Equal(t, "^x", a.(*Primitive).Pattern)
}

func TestParse_Union(t *testing.T) {
	n, err := Parse([]byte(`{type: [array, string], items: {type: string}}`))
	require.NoError(t, err)
	u := n.(*Union)
	assert.Equal(t, []string{"array", "string"}, u.Types)
	assert.IsType(t, &Primitive{}, u.Items)

	n, err = Parse([]byte(`{type: [string]}`))
	require.NoError(t, err)
	assert.Equal(t, TagString, n.(*Primitive).Name)
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		at   string
	}{
		{"unknown type", `{type: widget}`, "/type"},
		{"extended tag in union", `{type: [objectid, string]}`, "/type"},
		{"properties on string", `{type: string, properties: {a: {type: string}}}`, ""},
		{"items on object", `{type: object, items: {type: string}}`, ""},
		{"pattern on number", `{type: number, pattern: "x"}`, ""},
		{"undeclared required", `{type: object, properties: {a: {type: string}}, required: [b]}`, "/required"},
		{"non-mapping node", `{type: object, properties: {a: 3}}`, "/properties/a"},
		{"empty document", ``, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			var ce *CompileError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tc.at, ce.At)
		})
	}
}

func TestParse_DuplicateProperty(t *testing.T) {
	_, err := Parse([]byte("type: object\nproperties:\n  a: {type: string}\n  a: {type: number}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"a"`)
}

func TestFromValue(t *testing.T) {
	n, err := FromValue(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"when": map[string]any{"type": "date"},
			"id":   map[string]any{"type": "objectid"},
		},
	})
	require.NoError(t, err)
	obj := n.(*Object)
	assert.Equal(t, []string{"id", "when"}, obj.Properties.Names())
}

func TestCompileError_Message(t *testing.T) {
	assert.Equal(t, "mongojsonschema: invalid schema at /: missing schema node", (&CompileError{Reason: "missing schema node"}).Error())
	assert.Equal(t, "mongojsonschema: invalid schema at /items: bad", (&CompileError{At: "/items", Reason: "bad"}).Error())
}

func TestPointerToken(t *testing.T) {
	assert.Equal(t, "a~1b~0c", PointerToken("a/b~c"))
}
