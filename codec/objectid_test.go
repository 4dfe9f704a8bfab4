package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cainus/mongojsonschema/codec"
)

const hexID = "52f044dee2896a8264d7ec2f"

func TestObjectID_RoundTrip(t *testing.T) {
	c := codec.ObjectID()
	id, err := primitive.ObjectIDFromHex(hexID)
	require.NoError(t, err)

	wire, err := c.Encode(id)
	require.NoError(t, err)
	assert.Equal(t, hexID, wire)

	back, err := c.Decode(wire)
	require.NoError(t, err)
	assert.Equal(t, id, back)
}

func TestObjectID_Idempotent(t *testing.T) {
	c := codec.ObjectID()
	id, _ := primitive.ObjectIDFromHex(hexID)

	wire, err := c.Encode(hexID)
	require.NoError(t, err)
	assert.Equal(t, hexID, wire)

	same, err := c.Decode(id)
	require.NoError(t, err)
	assert.Equal(t, id, same)

	wire, err = c.Encode(&id)
	require.NoError(t, err)
	assert.Equal(t, hexID, wire)
}

func TestObjectID_PassThrough(t *testing.T) {
	c := codec.ObjectID()
	for _, v := range []any{nil, 42, true, map[string]any{}} {
		out, err := c.Encode(v)
		require.NoError(t, err)
		assert.Equal(t, v, out)
	}
	out, err := c.Decode(nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestObjectID_DecodeInvalid(t *testing.T) {
	out, err := codec.ObjectID().Decode("52f044dee2896a8264d7ec2")
	require.ErrorIs(t, err, codec.ErrFormat)
	assert.Equal(t, "52f044dee2896a8264d7ec2", out)
}
