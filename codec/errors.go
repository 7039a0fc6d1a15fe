package codec

import (
	"errors"
	"fmt"
)

var ErrNilRecord = errors.New("nil record")

var ErrNilBuffer = errors.New("nil buffer")

// ErrShortBuffer is returned by Encode when the destination cannot hold the
// encoded message.
var ErrShortBuffer = errors.New("buffer too small")

// ErrBadLength is returned by Decode when the supplied length is not a legal
// encoding length for the message shape.
var ErrBadLength = errors.New("illegal buffer length")

// ErrTooLong is returned when an array length exceeds the field's bounded
// capacity, on either side of the wire.
var ErrTooLong = errors.New("length exceeds bounded capacity")

// TypeError indicates a record value whose Go type does not match the field's
// schema type.
type TypeError struct {
	Field string
	Want  string
	Got   any
}

func (e TypeError) Error() string {
	return fmt.Sprintf("field %s: expected %s value, got %T", e.Field, e.Want, e.Got)
}
