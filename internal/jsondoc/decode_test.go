package jsondoc

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	v, err := Decode([]byte(`{"a": [1, 2.5, {"b": null}], "c": true, "d": "x"}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a": []any{json.Number("1"), json.Number("2.5"), map[string]any{"b": nil}},
		"c": true,
		"d": "x",
	}, v)

	v, err = DecodeReader(strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.Equal(t, []any{}, v)
}

func TestDecode_DuplicateKey(t *testing.T) {
	_, err := Decode([]byte(`{"a": {"x/y": 1, "x/y": 2}}`))
	var de *DuplicateKeyError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "/a/x~1y", de.Pointer)
	assert.Equal(t, "x/y", de.Key)

	_, err = Decode([]byte(`[{"k": 1}, {"k": 1, "k": 2}]`))
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "/1/k", de.Pointer)

	// the same key in sibling objects is fine
	_, err = Decode([]byte(`[{"k": 1}, {"k": 2}]`))
	require.NoError(t, err)
}

func TestDecode_Syntax(t *testing.T) {
	for _, doc := range []string{``, `{"a": }`, `{"a": 1`, `{"a": 1} {}`} {
		_, err := Decode([]byte(doc))
		assert.ErrorIs(t, err, ErrSyntax, doc)
	}
}
