package urid

import "fmt"

// InvalidResourceTypeError is returned when a resource type tag is not
// exactly ResourceLength characters long.
type InvalidResourceTypeError struct {
	Value string
}

func (e *InvalidResourceTypeError) Error() string {
	return fmt.Sprintf("invalid resource type: %s", e.Value)
}

// InvalidLengthError is returned when text passed to Parse is not exactly
// EncodedLength characters long.
type InvalidLengthError struct {
	Value string
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("invalid ID length: %s (expected %d)", e.Value, EncodedLength)
}

// ULIDDecodeError is returned when the suffix segment of an identifier
// cannot be decoded. It wraps the underlying ULID decode error.
type ULIDDecodeError struct {
	Err error
}

func (e *ULIDDecodeError) Error() string {
	return fmt.Sprintf("unable to decode internal ULID: %v", e.Err)
}

func (e *ULIDDecodeError) Unwrap() error {
	return e.Err
}
