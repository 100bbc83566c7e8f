package urid

import (
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/oklog/ulid/v2"
)

// ULIDLength is the length of a ULID's canonical text form.
const ULIDLength = ulid.EncodedSize

// ULID is an immutable 128-bit time-ordered unique value: a millisecond
// timestamp in the high bits and cryptographically random low bits. Its
// canonical text form is 26 Crockford base-32 characters that sort the same
// as the raw bytes, so string order equals creation order.
//
// ULID wraps github.com/oklog/ulid/v2 and exposes only construction,
// parsing, rendering, and comparison; the bit layout stays the primitive's
// concern. The zero value is valid but carries no timestamp or randomness.
type ULID struct {
	value ulid.ULID
}

// Compile-time check: ULID describes itself to the schema registry.
var _ huma.SchemaProvider = ULID{}

// MakeULID returns a fresh ULID for the current time. The underlying
// entropy source is monotonic within the process and safe for concurrent
// use, so two calls in the same millisecond still produce ordered,
// distinct values.
func MakeULID() ULID {
	return ULID{value: ulid.Make()}
}

// ParseULID decodes the 26-character canonical text form. It accepts either
// letter case but fails on any other length (ulid.ErrDataSize), characters
// outside the alphabet (ulid.ErrInvalidCharacters), or values beyond the
// 128-bit maximum (ulid.ErrOverflow).
func ParseULID(s string) (ULID, error) {
	value, err := ulid.ParseStrict(strings.ToUpper(s))
	if err != nil {
		return ULID{}, err
	}
	return ULID{value: value}, nil
}

// String returns the 26-character canonical (uppercase) text form.
func (u ULID) String() string {
	return u.value.String()
}

// Compare returns -1, 0, or 1 ordering u against other. The result matches
// lexicographic comparison of the String forms.
func (u ULID) Compare(other ULID) int {
	return u.value.Compare(other.value)
}

// Timestamp returns the millisecond timestamp captured at construction.
func (u ULID) Timestamp() time.Time {
	return ulid.Time(u.value.Time())
}

// Schema describes the ULID text form for generated API documentation.
func (u ULID) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:   huma.TypeString,
		Format: "ulid",
	}
}
