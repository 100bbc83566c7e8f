// Package urid provides typed, prefixed, lexicographically sortable resource
// identifiers: a 4-character uppercase resource type tag followed by a
// 26-character ULID, rendered as a fixed 30-character string such as
// "USER01ARZ3NDEKTSV4RRFFQ69G5FAV".
//
// A ResourceID is an immutable value. It carries its own text, JSON, SQL
// column, and schema-description codecs so one canonical in-memory form backs
// every external representation.
package urid

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"fmt"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

const (
	// ResourceLength is the length of the resource type tag.
	ResourceLength = 4

	// EncodedLength is the length of a ResourceID's canonical text form.
	EncodedLength = ResourceLength + ULIDLength
)

// ResourceID identifies a single resource instance: a resource type tag plus
// an exclusively-owned ULID. Values are comparable with == and usable as map
// keys; equality is structural over (resource, ulid).
type ResourceID struct {
	resource string
	ulid     ULID
}

// Compile-time checks: ResourceID conforms to each codec independently.
var (
	_ fmt.Stringer             = ResourceID{}
	_ encoding.TextMarshaler   = ResourceID{}
	_ encoding.TextUnmarshaler = (*ResourceID)(nil)
	_ driver.Valuer            = ResourceID{}
	_ sql.Scanner              = (*ResourceID)(nil)
	_ huma.SchemaProvider      = ResourceID{}
)

// New mints an identifier for the given resource type. The tag is uppercased
// and must be exactly ResourceLength characters, otherwise an
// InvalidResourceTypeError is returned. Each call consumes fresh entropy and
// the current clock via MakeULID.
func New(resource string) (ResourceID, error) {
	resource = strings.ToUpper(resource)

	if err := validateResource(resource); err != nil {
		return ResourceID{}, err
	}

	return ResourceID{resource: resource, ulid: MakeULID()}, nil
}

// Parse reconstructs an identifier from its 30-character text form. It is
// the inverse of String for any identifier produced by New or a prior Parse.
// Failures are an InvalidLengthError (wrong total length), an
// InvalidResourceTypeError (tag segment), or a ULIDDecodeError (suffix
// segment).
func Parse(s string) (ResourceID, error) {
	if len(s) != EncodedLength {
		return ResourceID{}, &InvalidLengthError{Value: s}
	}

	// The split always yields exactly ResourceLength characters; the check
	// mirrors New so both entry points enforce the same invariant.
	resource := s[:ResourceLength]
	if err := validateResource(resource); err != nil {
		return ResourceID{}, err
	}

	u, err := ParseULID(s[ResourceLength:])
	if err != nil {
		return ResourceID{}, &ULIDDecodeError{Err: err}
	}

	return ResourceID{resource: strings.ToUpper(resource), ulid: u}, nil
}

func validateResource(resource string) error {
	if len(resource) != ResourceLength {
		return &InvalidResourceTypeError{Value: resource}
	}
	return nil
}

// String returns the 30-character canonical text form: the uppercase
// resource tag followed by the ULID text.
func (id ResourceID) String() string {
	return id.resource + id.ulid.String()
}

// Resource returns the uppercase resource type tag.
func (id ResourceID) Resource() string {
	return id.resource
}

// ULID returns the unique suffix value.
func (id ResourceID) ULID() ULID {
	return id.ulid
}

// Compare returns -1, 0, or 1 ordering id against other: resource tag first,
// then ULID. The result matches lexicographic comparison of the String forms.
func (id ResourceID) Compare(other ResourceID) int {
	if c := strings.Compare(id.resource, other.resource); c != 0 {
		return c
	}
	return id.ulid.Compare(other.ulid)
}

// MarshalText renders the identifier as its bare 30-character form. This is
// the representation used in JSON payloads; there is no wrapper object.
func (id ResourceID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText parses a bare 30-character form, running the full Parse
// validation path.
func (id *ResourceID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Value implements driver.Valuer. The identifier is stored as its
// 30-character text in a VARCHAR column and is never NULL.
func (id ResourceID) Value() (driver.Value, error) {
	return id.String(), nil
}

// Scan implements sql.Scanner. It accepts the column's text value (string or
// []byte) and runs the full Parse validation path, so malformed stored data
// surfaces as a decode error at read time. Any other source type, including
// NULL, is rejected.
func (id *ResourceID) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("scanning ResourceID: unsupported source type %T (expected VARCHAR text)", src)
	}

	parsed, err := Parse(s)
	if err != nil {
		return fmt.Errorf("scanning ResourceID: %w", err)
	}
	*id = parsed
	return nil
}

// Schema describes the identifier format for generated API documentation.
// Purely advisory: it has no effect on parsing or encoding.
func (id ResourceID) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:        huma.TypeString,
		Format:      "ResourceID",
		Title:       "ResourceID",
		Description: "A unique resource identifier",
	}
}
