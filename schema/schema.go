package schema

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

/*
Package schema holds the compile-time model for seridl protocols: the closed
set of primitive field types, per-field byte order, bounded-array capacities,
and message definitions. Everything here is pure data - the codec package
interprets it and the compiler package validates it.
*/

////////////////////////////////////////////////////////////////////////////////

const (
	// MaxArrayLength is the largest permitted bounded-array capacity.
	MaxArrayLength = 1024

	// MaxPacketID is the largest permitted packet identifier.
	MaxPacketID = 255
)

// PrimitiveType enumerates the scalar wire types.
type PrimitiveType int

const (
	INT8 PrimitiveType = iota + 1
	INT16
	INT32
	INT64
	UINT8
	UINT16
	UINT32
	UINT64
	FLOAT32
	FLOAT64
	BOOL
	CHAR
)

// ByteLen returns the encoded width of the primitive in bytes.
func (p PrimitiveType) ByteLen() int {
	switch p {
	case INT8, UINT8, BOOL, CHAR:
		return 1
	case INT16, UINT16:
		return 2
	case INT32, UINT32, FLOAT32:
		return 4
	case INT64, UINT64, FLOAT64:
		return 8
	default:
		panic("unknown primitive type: " + strconv.Itoa(int(p)))
	}
}

// Numeric reports whether the primitive is an integer or float type. Bounded
// scalar arrays may only hold numeric elements; char arrays are their own
// field kind.
func (p PrimitiveType) Numeric() bool {
	switch p {
	case BOOL, CHAR:
		return false
	default:
		return true
	}
}

func (p PrimitiveType) String() string {
	switch p {
	case INT8:
		return "int8"
	case INT16:
		return "int16"
	case INT32:
		return "int32"
	case INT64:
		return "int64"
	case UINT8:
		return "uint8"
	case UINT16:
		return "uint16"
	case UINT32:
		return "uint32"
	case UINT64:
		return "uint64"
	case FLOAT32:
		return "float32"
	case FLOAT64:
		return "float64"
	case BOOL:
		return "bool"
	case CHAR:
		return "char"
	default:
		return "unknown"
	}
}

// nolint:gochecknoglobals
var primitiveNames = map[string]PrimitiveType{
	"int8":    INT8,
	"i8":      INT8,
	"int16":   INT16,
	"i16":     INT16,
	"int32":   INT32,
	"i32":     INT32,
	"int64":   INT64,
	"i64":     INT64,
	"uint8":   UINT8,
	"u8":      UINT8,
	"uint16":  UINT16,
	"u16":     UINT16,
	"uint32":  UINT32,
	"u32":     UINT32,
	"uint64":  UINT64,
	"u64":     UINT64,
	"float32": FLOAT32,
	"f32":     FLOAT32,
	"float64": FLOAT64,
	"f64":     FLOAT64,
	"double":  FLOAT64,
	"bool":    BOOL,
	"char":    CHAR,
}

// ParsePrimitive resolves a primitive type name, accepting the short aliases
// used by schema authors (u8, i16, f64, double, ...).
func ParsePrimitive(name string) (PrimitiveType, bool) {
	p, ok := primitiveNames[name]
	return p, ok
}

// ByteOrder is the wire byte order of a multi-byte field, fixed per field at
// schema-authoring time. The zero value is little-endian, the authoring
// default.
type ByteOrder int

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

// Binary returns the matching encoding/binary order.
func (o ByteOrder) Binary() binary.ByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (o ByteOrder) String() string {
	if o == BigEndian {
		return "big"
	}
	return "little"
}

// ParseByteOrder resolves a byte order name ("little"/"le" or "big"/"be").
func ParseByteOrder(name string) (ByteOrder, error) {
	switch name {
	case "little", "le":
		return LittleEndian, nil
	case "big", "be":
		return BigEndian, nil
	default:
		return 0, fmt.Errorf("unsupported byte order %q", name)
	}
}

// Direction declares which participant role originates a message. Pub
// messages are encoded by the originator and decoded by receivers; Sub
// messages are the inverse.
type Direction int

const (
	Pub Direction = iota + 1
	Sub
)

func (d Direction) String() string {
	if d == Sub {
		return "sub"
	}
	return "pub"
}

// ParseDirection resolves a direction name.
func ParseDirection(name string) (Direction, error) {
	switch name {
	case "pub":
		return Pub, nil
	case "sub":
		return Sub, nil
	default:
		return 0, fmt.Errorf("unsupported direction %q", name)
	}
}

// Type describes the wire type of a single field.
type Type struct {
	Primitive PrimitiveType
	Order     ByteOrder

	// If it's a bounded array, MaxLength is the fixed capacity and Primitive
	// is the element type.
	Array     bool
	MaxLength int

	// If it's a struct reference, Ref names the referenced message and
	// Message is filled in by the compiler during resolution.
	Struct  bool
	Ref     string
	Message *Message
}

// IsPrimitive reports whether the type is a plain scalar.
func (t Type) IsPrimitive() bool {
	return !t.Array && !t.Struct
}

func (t Type) String() string {
	switch {
	case t.Struct:
		return "struct " + t.Ref
	case t.Array:
		return fmt.Sprintf("%s[%d]", t.Primitive, t.MaxLength)
	default:
		return t.Primitive.String()
	}
}

// Field is a named field within a message. Field order is encoding order and
// is never rearranged.
type Field struct {
	Name string
	Type Type
}

// Message is one message definition. PacketID is the out-of-band dispatch tag
// for the message - it is never part of the payload bytes.
type Message struct {
	Name        string
	PacketID    int
	Direction   Direction
	Description string
	Fields      []Field
}

// Schema is the complete, compile-time-fixed set of message definitions for
// one protocol, in declaration order.
type Schema struct {
	Version    string
	MaxAddress int
	Messages   []Message
}
