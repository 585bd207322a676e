package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseResourceID(t *testing.T) {
	t.Run("legacy string", func(t *testing.T) {
		id, err := ParseResourceID("study-2023-a")
		require.NoError(t, err)
		assert.False(t, id.IsObjectIDCandidate())
		assert.Equal(t, []interface{}{"study-2023-a"}, id.Candidates())
	})

	t.Run("object id candidate", func(t *testing.T) {
		oid := primitive.NewObjectID()
		id, err := ParseResourceID(oid.Hex())
		require.NoError(t, err)
		assert.True(t, id.IsObjectIDCandidate())
		assert.Equal(t, []interface{}{oid.Hex(), oid}, id.Candidates())
	})

	t.Run("upper-case hex also matches canonical text", func(t *testing.T) {
		oid := primitive.NewObjectID()
		id, err := ParseResourceID(strings.ToUpper(oid.Hex()))
		require.NoError(t, err)
		assert.Equal(t, oid.Hex(), id.Canonical())
		assert.Contains(t, id.Candidates(), oid.Hex())
		assert.Contains(t, id.Candidates(), oid)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, raw := range []string{"", "   ", "$where", "bad\x00id", strings.Repeat("a", maxIDLength+1)} {
			_, err := ParseResourceID(raw)
			assert.ErrorIs(t, err, ErrMalformedIdentifier, "%q", raw)
		}
	})
}

func TestParseNativeResourceID(t *testing.T) {
	_, err := ParseNativeResourceID("study-2023-a")
	assert.ErrorIs(t, err, ErrMalformedIdentifier)

	oid := primitive.NewObjectID()
	id, err := ParseNativeResourceID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid.Hex(), id.String())
}

func TestResourceIDEquivalent(t *testing.T) {
	oid := primitive.NewObjectID()
	native := NewObjectResourceID(oid)
	textual := NewStringResourceID(oid.Hex())
	upper := NewStringResourceID(strings.ToUpper(oid.Hex()))

	assert.True(t, native.Equivalent(textual))
	assert.True(t, textual.Equivalent(native))
	assert.True(t, upper.Equivalent(native))
	assert.False(t, native.Equivalent(NewObjectResourceID(primitive.NewObjectID())))
	assert.True(t, NewStringResourceID("legacy").Equivalent(NewStringResourceID("legacy")))
	assert.False(t, ResourceID{}.Equivalent(ResourceID{}))
}

func TestResourceIDIdenticalRespectsStoredForm(t *testing.T) {
	oid := primitive.NewObjectID()
	native := NewObjectResourceID(oid)
	textual := NewStringResourceID(oid.Hex())

	assert.True(t, native.Identical(NewObjectResourceID(oid)))
	assert.True(t, textual.Identical(NewStringResourceID(oid.Hex())))
	assert.False(t, native.Identical(textual))
	assert.False(t, textual.Identical(native))
	assert.False(t, ResourceID{}.Identical(ResourceID{}))
}

func TestResourceIDDecodesEitherStoredForm(t *testing.T) {
	oid := primitive.NewObjectID()

	for name, stored := range map[string]interface{}{"native": oid, "string": oid.Hex()} {
		t.Run(name, func(t *testing.T) {
			raw, err := bson.Marshal(bson.D{{Key: "_id", Value: stored}, {Key: "title", Value: "Sleep"}})
			require.NoError(t, err)

			var s Study
			require.NoError(t, bson.Unmarshal(raw, &s))
			assert.Equal(t, oid.Hex(), s.ID.String())
			assert.True(t, s.ID.Equivalent(NewObjectResourceID(oid)))

			// Re-encoding keeps the stored representation.
			again, err := bson.Marshal(s)
			require.NoError(t, err)
			assert.Equal(t, bson.Raw(raw).Lookup("_id").Type, bson.Raw(again).Lookup("_id").Type)
		})
	}
}

func TestResourceIDJSON(t *testing.T) {
	oid := primitive.NewObjectID()
	out, err := json.Marshal(Study{ID: NewObjectResourceID(oid)})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"id":"`+oid.Hex()+`"`)
}
