package mongojsonschema_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	mjs "github.com/cainus/mongojsonschema"
)

func oid(t *testing.T, h string) primitive.ObjectID {
	t.Helper()
	id, err := primitive.ObjectIDFromHex(h)
	require.NoError(t, err)
	return id
}

func TestIdentifiersToStrings(t *testing.T) {
	s := mustNew(t, fixtureYAML)
	id := oid(t, hexID)
	in := map[string]any{
		"_id":          id,
		"nested":       map[string]any{"sub": &id},
		"count":        42,
		"participants": []any{id, id},
	}
	got, err := s.IdentifiersToStrings(in)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"_id":          hexID,
		"nested":       map[string]any{"sub": hexID},
		"count":        42,
		"participants": []any{hexID, hexID},
	}, got)

	// input is not modified
	assert.Equal(t, id, in["_id"])
	assert.Equal(t, id, in["participants"].([]any)[0])
}

func TestIdentifiersToStrings_Idempotent(t *testing.T) {
	s := mustNew(t, fixtureYAML)
	in := map[string]any{
		"_id":          hexID,
		"nested":       map[string]any{"sub": hexID},
		"participants": []any{hexID},
	}
	got, err := s.IdentifiersToStrings(in)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestStringsToIdentifiers(t *testing.T) {
	s := mustNew(t, fixtureYAML)
	id := oid(t, hexID)
	got, err := s.StringsToIdentifiers(map[string]any{
		"_id":          hexID,
		"nested":       map[string]any{"sub": id},
		"count":        42,
		"participants": []string{hexID, hexID},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"_id":          id,
		"nested":       map[string]any{"sub": id},
		"count":        42,
		"participants": []any{id, id},
	}, got)
}

func TestStringsToIdentifiers_Permissive(t *testing.T) {
	s := mustNew(t, fixtureYAML)
	in := map[string]any{"_id": "not-hex", "nested": nil, "participants": []any{nil, hexID}}
	got, err := s.StringsToIdentifiers(in)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"_id":          "not-hex",
		"nested":       nil,
		"participants": []any{nil, oid(t, hexID)},
	}, got)
}

func TestIdentifiers_RoundTrip(t *testing.T) {
	s := mustNew(t, fixtureYAML)
	id, other := oid(t, hexID), primitive.NewObjectID()
	d := map[string]any{
		"_id":          id,
		"nested":       map[string]any{"sub": other},
		"count":        42,
		"participants": []any{other, id},
	}
	wire, err := s.IdentifiersToStrings(d)
	require.NoError(t, err)
	back, err := s.StringsToIdentifiers(wire)
	require.NoError(t, err)
	assert.Equal(t, d, back)
}

func TestIdentifiers_Wildcard2D(t *testing.T) {
	s := mustNew(t, "{arr: {type: array, items: {type: array, items: {type: objectid}}}}")
	a, b, c := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	got, err := s.IdentifiersToStrings(map[string]any{
		"arr": []any{[]any{a, b}, []any{}, []any{c}},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"arr": []any{[]any{a.Hex(), b.Hex()}, []any{}, []any{c.Hex()}},
	}, got)
}

func TestIdentifiers_NilDocument(t *testing.T) {
	s := mustNew(t, fixtureYAML)
	_, err := s.IdentifiersToStrings(nil)
	assert.ErrorIs(t, err, mjs.ErrArgument)
	_, err = s.StringsToIdentifiers(nil)
	assert.ErrorIs(t, err, mjs.ErrArgument)
}

func TestTimestampsToStrings(t *testing.T) {
	s := mustNew(t, "{at: {type: date}, log: {type: array, items: {type: date}}}")
	ts := time.Date(2014, 1, 23, 20, 49, 45, 40_000_000, time.UTC)
	got, err := s.TimestampsToStrings(map[string]any{
		"at":  ts,
		"log": []any{primitive.NewDateTimeFromTime(ts), "2014-01-23T21:49:45+01:00", nil},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"at":  "2014-01-23T20:49:45.04Z",
		"log": []any{"2014-01-23T20:49:45.04Z", "2014-01-23T21:49:45+01:00", nil},
	}, got)
}

func TestTimestampsToStrings_Errors(t *testing.T) {
	s := mustNew(t, "{at: {type: date}, log: {type: array, items: {type: date}}}", mjs.WithName("events"))
	_, err := s.TimestampsToStrings(map[string]any{
		"at":  "not-a-date",
		"log": []any{"2014-01-23T20:49:45Z", 17},
	})
	ve := requireValidationError(t, err, mjs.KindTimestampFormat)
	assert.Equal(t, "events", ve.Schema)
	require.Len(t, ve.Violations, 2)
	assert.Equal(t, "incorrect date format - got not-a-date at /at", ve.Violations[0].Detail)
	assert.Equal(t, "/log/1", ve.Violations[1].Path)
	assert.Equal(t, "incorrect date format - got 17 at /log/1", ve.Violations[1].Detail)
}

func TestStringsToTimestamps(t *testing.T) {
	s := mustNew(t, "{at: {type: date}, other: {type: string}}")
	got, err := s.StringsToTimestamps(map[string]any{
		"at":    "2014-01-23T21:49:45+01:00",
		"other": "2014-01-23T21:49:45+01:00",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"at":    time.Date(2014, 1, 23, 20, 49, 45, 0, time.UTC),
		"other": "2014-01-23T21:49:45+01:00",
	}, got)

	got, err = s.StringsToTimestamps(map[string]any{"at": "yesterday"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"at": "yesterday"}, got)
}
