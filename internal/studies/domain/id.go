package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxIDLength = 128

// ResourceID is a study key that may be stored either as a plain string or as
// a native ObjectID. Two IDs denote the same record when their text matches or
// when both are ObjectID candidates with the same value.
type ResourceID struct {
	text   string
	oid    primitive.ObjectID
	hasOID bool
	native bool
}

// NewObjectResourceID wraps an ObjectID held in its native form.
func NewObjectResourceID(oid primitive.ObjectID) ResourceID {
	return ResourceID{text: oid.Hex(), oid: oid, hasOID: true, native: true}
}

// NewStringResourceID wraps an identifier held in its string form.
func NewStringResourceID(text string) ResourceID {
	id := ResourceID{text: text}
	if oid, err := primitive.ObjectIDFromHex(text); err == nil {
		id.oid, id.hasOID = oid, true
	}
	return id
}

// ParseResourceID accepts any non-empty identifier text without control
// characters or operator prefixes.
func ParseResourceID(raw string) (ResourceID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxIDLength || strings.HasPrefix(raw, "$") {
		return ResourceID{}, ErrMalformedIdentifier
	}
	for _, r := range raw {
		if unicode.IsControl(r) {
			return ResourceID{}, ErrMalformedIdentifier
		}
	}

	id := NewStringResourceID(raw)
	id.native = id.hasOID
	return id, nil
}

// ParseNativeResourceID accepts only text that is a valid ObjectID.
func ParseNativeResourceID(raw string) (ResourceID, error) {
	id, err := ParseResourceID(raw)
	if err != nil {
		return ResourceID{}, err
	}
	if !id.hasOID {
		return ResourceID{}, ErrMalformedIdentifier
	}
	return id, nil
}

func (id ResourceID) String() string { return id.text }

func (id ResourceID) IsZero() bool { return id.text == "" }

// IsObjectIDCandidate reports whether the text is a syntactically valid ObjectID.
func (id ResourceID) IsObjectIDCandidate() bool { return id.hasOID }

// Canonical is the lower-case hex form for ObjectID candidates and the text otherwise.
func (id ResourceID) Canonical() string {
	if id.hasOID {
		return id.oid.Hex()
	}
	return id.text
}

func (id ResourceID) Equivalent(other ResourceID) bool {
	if id.IsZero() || other.IsZero() {
		return false
	}
	if id.text == other.text {
		return true
	}
	return id.hasOID && other.hasOID && id.oid == other.oid
}

// Identical reports whether both IDs denote the same stored key, including
// its representation. A native ObjectID and its hex string are not identical.
func (id ResourceID) Identical(other ResourceID) bool {
	if id.IsZero() || other.IsZero() {
		return false
	}
	if id.storedNative() || other.storedNative() {
		return id.storedNative() && other.storedNative() && id.oid == other.oid
	}
	return id.text == other.text
}

func (id ResourceID) storedNative() bool { return id.native && id.hasOID }

// Candidates lists every stored representation this ID may appear under.
func (id ResourceID) Candidates() []interface{} {
	if !id.hasOID {
		return []interface{}{id.text}
	}
	out := []interface{}{id.text, id.oid}
	if canonical := id.oid.Hex(); canonical != id.text {
		out = append(out, canonical)
	}
	return out
}

func (id ResourceID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if id.storedNative() {
		return bson.MarshalValue(id.oid)
	}
	return bson.MarshalValue(id.text)
}

func (id *ResourceID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeObjectID:
		*id = NewObjectResourceID(rv.ObjectID())
	case bson.TypeString:
		*id = NewStringResourceID(rv.StringValue())
	default:
		return fmt.Errorf("unsupported study id type %s", t)
	}
	return nil
}

func (id ResourceID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.text)
}

func (id *ResourceID) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	parsed, err := ParseResourceID(text)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
