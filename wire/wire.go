package wire

/*
Byte-level pack/unpack for the primitive wire types. Writes produce exactly
the primitive's width at the start of dst; reads are their exact inverse.
Floats travel as the IEEE-754 bit pattern through the equal-width unsigned
codec, so a float field's byte order governs the order of its bit pattern
bytes - no rounding and no NaN normalization happens on either side.

These functions do not check lengths - callers bound their buffers before
dispatching here, or a panic may result.
*/

import (
	"encoding/binary"
	"math"
)

// PutU8 writes a uint8 to dst and returns the written length.
func PutU8(dst []byte, v uint8) int {
	dst[0] = v
	return 1
}

// U8 reads a uint8 from src and stores it in x, returning the read length.
func U8(src []byte, x *uint8) int {
	*x = src[0]
	return 1
}

// PutU16 writes a uint16 to dst in the given order and returns the written length.
func PutU16(dst []byte, order binary.ByteOrder, v uint16) int {
	order.PutUint16(dst, v)
	return 2
}

// U16 reads a uint16 from src and stores it in x, returning the read length.
func U16(src []byte, order binary.ByteOrder, x *uint16) int {
	*x = order.Uint16(src)
	return 2
}

// PutU32 writes a uint32 to dst in the given order and returns the written length.
func PutU32(dst []byte, order binary.ByteOrder, v uint32) int {
	order.PutUint32(dst, v)
	return 4
}

// U32 reads a uint32 from src and stores it in x, returning the read length.
func U32(src []byte, order binary.ByteOrder, x *uint32) int {
	*x = order.Uint32(src)
	return 4
}

// PutU64 writes a uint64 to dst in the given order and returns the written length.
func PutU64(dst []byte, order binary.ByteOrder, v uint64) int {
	order.PutUint64(dst, v)
	return 8
}

// U64 reads a uint64 from src and stores it in x, returning the read length.
func U64(src []byte, order binary.ByteOrder, x *uint64) int {
	*x = order.Uint64(src)
	return 8
}

// PutF32 writes the bit pattern of a float32 to dst and returns the written length.
func PutF32(dst []byte, order binary.ByteOrder, v float32) int {
	return PutU32(dst, order, math.Float32bits(v))
}

// F32 reads a float32 bit pattern from src and stores it in x, returning the
// read length.
func F32(src []byte, order binary.ByteOrder, x *float32) int {
	*x = math.Float32frombits(order.Uint32(src))
	return 4
}

// PutF64 writes the bit pattern of a float64 to dst and returns the written length.
func PutF64(dst []byte, order binary.ByteOrder, v float64) int {
	return PutU64(dst, order, math.Float64bits(v))
}

// F64 reads a float64 bit pattern from src and stores it in x, returning the
// read length.
func F64(src []byte, order binary.ByteOrder, x *float64) int {
	*x = math.Float64frombits(order.Uint64(src))
	return 8
}

// PutBool writes a canonical boolean byte (0x00 or 0x01) and returns the
// written length.
func PutBool(dst []byte, v bool) int {
	if v {
		dst[0] = 1
	} else {
		dst[0] = 0
	}
	return 1
}

// Bool reads a boolean from src and stores it in x, returning the read
// length. Any nonzero byte decodes as true.
func Bool(src []byte, x *bool) int {
	*x = src[0] != 0
	return 1
}
