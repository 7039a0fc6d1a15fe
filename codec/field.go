package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/h6xserial/seridl/schema"
	"github.com/h6xserial/seridl/wire"
)

/*
Field codecs. Each field of a message compiles to one fieldCodec: scalars
dispatch straight to the wire package, bounded arrays iterate their element
codec with no length prefix in the byte stream, and struct fields recurse
into the referenced message's field list over a contiguous sub-slice.

A fixedSize of zero marks a variable-length field. The compiler guarantees at
most one such field per message and that it sits in trailing position, so a
variable codec's decode always receives exactly the remaining bytes.
*/

////////////////////////////////////////////////////////////////////////////////

type fieldCodec interface {
	name() string

	// fixedSize returns the field's encoded size if it has exactly one, else
	// zero.
	fixedSize() int
	maxSize() int

	// zero returns the field's zero value for a fresh record.
	zero() any

	encodedSize(v any) (int, error)
	encode(dst []byte, v any) (int, error)
	decode(src []byte) (any, int, error)
}

func newFieldCodec(f schema.Field) (fieldCodec, error) {
	switch {
	case f.Type.Struct:
		if f.Type.Message == nil {
			return nil, fmt.Errorf("field %s: unresolved struct reference %q", f.Name, f.Type.Ref)
		}
		if !f.Type.Message.Fixed() {
			return nil, fmt.Errorf("field %s: referenced message %q does not have a fixed size",
				f.Name, f.Type.Message.Name)
		}
		fields := make([]fieldCodec, 0, len(f.Type.Message.Fields))
		size := 0
		for _, sub := range f.Type.Message.Fields {
			fc, err := newFieldCodec(sub)
			if err != nil {
				return nil, err
			}
			fields = append(fields, fc)
			size += fc.fixedSize()
		}
		return &structCodec{fieldName: f.Name, size: size, fields: fields}, nil
	case f.Type.Array:
		if !f.Type.Primitive.Numeric() && f.Type.Primitive != schema.CHAR {
			return nil, fmt.Errorf("field %s: %s is not a legal array element type", f.Name, f.Type.Primitive)
		}
		if f.Type.MaxLength < 1 || f.Type.MaxLength > schema.MaxArrayLength {
			return nil, fmt.Errorf("field %s: max length %d out of range [1, %d]",
				f.Name, f.Type.MaxLength, schema.MaxArrayLength)
		}
		return &arrayCodec{
			fieldName: f.Name,
			elem:      f.Type.Primitive,
			order:     f.Type.Order.Binary(),
			capacity:  f.Type.MaxLength,
		}, nil
	default:
		return &scalarCodec{fieldName: f.Name, prim: f.Type.Primitive, order: f.Type.Order.Binary()}, nil
	}
}

////////////////////////////////////////////////////////////////////////////////

type scalarCodec struct {
	fieldName string
	prim      schema.PrimitiveType
	order     binary.ByteOrder
}

func (c *scalarCodec) name() string   { return c.fieldName }
func (c *scalarCodec) fixedSize() int { return c.prim.ByteLen() }
func (c *scalarCodec) maxSize() int   { return c.prim.ByteLen() }

func (c *scalarCodec) zero() any {
	switch c.prim {
	case schema.INT8:
		return int8(0)
	case schema.INT16:
		return int16(0)
	case schema.INT32:
		return int32(0)
	case schema.INT64:
		return int64(0)
	case schema.UINT8:
		return uint8(0)
	case schema.UINT16:
		return uint16(0)
	case schema.UINT32:
		return uint32(0)
	case schema.UINT64:
		return uint64(0)
	case schema.FLOAT32:
		return float32(0)
	case schema.FLOAT64:
		return float64(0)
	case schema.BOOL:
		return false
	case schema.CHAR:
		return byte(0)
	default:
		panic("unknown primitive type: " + c.prim.String())
	}
}

func (c *scalarCodec) encodedSize(v any) (int, error) {
	if _, err := c.encode(nil, v); err != nil {
		return 0, err
	}
	return c.prim.ByteLen(), nil
}

// encode writes the scalar to dst. A nil dst performs type validation only.
func (c *scalarCodec) encode(dst []byte, v any) (int, error) {
	sized := dst != nil
	switch c.prim {
	case schema.INT8:
		x, ok := v.(int8)
		if !ok {
			return 0, TypeError{c.fieldName, c.prim.String(), v}
		}
		if sized {
			wire.PutU8(dst, uint8(x))
		}
	case schema.INT16:
		x, ok := v.(int16)
		if !ok {
			return 0, TypeError{c.fieldName, c.prim.String(), v}
		}
		if sized {
			wire.PutU16(dst, c.order, uint16(x))
		}
	case schema.INT32:
		x, ok := v.(int32)
		if !ok {
			return 0, TypeError{c.fieldName, c.prim.String(), v}
		}
		if sized {
			wire.PutU32(dst, c.order, uint32(x))
		}
	case schema.INT64:
		x, ok := v.(int64)
		if !ok {
			return 0, TypeError{c.fieldName, c.prim.String(), v}
		}
		if sized {
			wire.PutU64(dst, c.order, uint64(x))
		}
	case schema.UINT8:
		x, ok := v.(uint8)
		if !ok {
			return 0, TypeError{c.fieldName, c.prim.String(), v}
		}
		if sized {
			wire.PutU8(dst, x)
		}
	case schema.UINT16:
		x, ok := v.(uint16)
		if !ok {
			return 0, TypeError{c.fieldName, c.prim.String(), v}
		}
		if sized {
			wire.PutU16(dst, c.order, x)
		}
	case schema.UINT32:
		x, ok := v.(uint32)
		if !ok {
			return 0, TypeError{c.fieldName, c.prim.String(), v}
		}
		if sized {
			wire.PutU32(dst, c.order, x)
		}
	case schema.UINT64:
		x, ok := v.(uint64)
		if !ok {
			return 0, TypeError{c.fieldName, c.prim.String(), v}
		}
		if sized {
			wire.PutU64(dst, c.order, x)
		}
	case schema.FLOAT32:
		x, ok := v.(float32)
		if !ok {
			return 0, TypeError{c.fieldName, c.prim.String(), v}
		}
		if sized {
			wire.PutF32(dst, c.order, x)
		}
	case schema.FLOAT64:
		x, ok := v.(float64)
		if !ok {
			return 0, TypeError{c.fieldName, c.prim.String(), v}
		}
		if sized {
			wire.PutF64(dst, c.order, x)
		}
	case schema.BOOL:
		x, ok := v.(bool)
		if !ok {
			return 0, TypeError{c.fieldName, c.prim.String(), v}
		}
		if sized {
			wire.PutBool(dst, x)
		}
	case schema.CHAR:
		x, ok := v.(byte)
		if !ok {
			return 0, TypeError{c.fieldName, c.prim.String(), v}
		}
		if sized {
			wire.PutU8(dst, x)
		}
	default:
		panic("unknown primitive type: " + c.prim.String())
	}
	return c.prim.ByteLen(), nil
}

func (c *scalarCodec) decode(src []byte) (any, int, error) {
	size := c.prim.ByteLen()
	if len(src) < size {
		return nil, 0, ErrBadLength
	}
	switch c.prim {
	case schema.INT8:
		return int8(src[0]), 1, nil
	case schema.INT16:
		var x uint16
		wire.U16(src, c.order, &x)
		return int16(x), 2, nil
	case schema.INT32:
		var x uint32
		wire.U32(src, c.order, &x)
		return int32(x), 4, nil
	case schema.INT64:
		var x uint64
		wire.U64(src, c.order, &x)
		return int64(x), 8, nil
	case schema.UINT8:
		var x uint8
		wire.U8(src, &x)
		return x, 1, nil
	case schema.UINT16:
		var x uint16
		wire.U16(src, c.order, &x)
		return x, 2, nil
	case schema.UINT32:
		var x uint32
		wire.U32(src, c.order, &x)
		return x, 4, nil
	case schema.UINT64:
		var x uint64
		wire.U64(src, c.order, &x)
		return x, 8, nil
	case schema.FLOAT32:
		var x float32
		wire.F32(src, c.order, &x)
		return x, 4, nil
	case schema.FLOAT64:
		var x float64
		wire.F64(src, c.order, &x)
		return x, 8, nil
	case schema.BOOL:
		var x bool
		wire.Bool(src, &x)
		return x, 1, nil
	case schema.CHAR:
		return src[0], 1, nil
	default:
		panic("unknown primitive type: " + c.prim.String())
	}
}

////////////////////////////////////////////////////////////////////////////////

type arrayCodec struct {
	fieldName string
	elem      schema.PrimitiveType
	order     binary.ByteOrder
	capacity  int
}

func (c *arrayCodec) name() string   { return c.fieldName }
func (c *arrayCodec) fixedSize() int { return 0 }
func (c *arrayCodec) maxSize() int   { return c.capacity * c.elem.ByteLen() }

func (c *arrayCodec) zero() any {
	switch c.elem {
	case schema.CHAR, schema.UINT8:
		return []byte{}
	case schema.INT8:
		return []int8{}
	case schema.INT16:
		return []int16{}
	case schema.UINT16:
		return []uint16{}
	case schema.INT32:
		return []int32{}
	case schema.UINT32:
		return []uint32{}
	case schema.INT64:
		return []int64{}
	case schema.UINT64:
		return []uint64{}
	case schema.FLOAT32:
		return []float32{}
	case schema.FLOAT64:
		return []float64{}
	default:
		panic("unknown array element type: " + c.elem.String())
	}
}

// length returns the element count of v after checking its Go type against
// the element type.
func (c *arrayCodec) length(v any) (int, error) {
	var n int
	switch c.elem {
	case schema.CHAR, schema.UINT8:
		x, ok := v.([]byte)
		if !ok {
			return 0, TypeError{c.fieldName, "[]" + c.elem.String(), v}
		}
		n = len(x)
	case schema.INT8:
		x, ok := v.([]int8)
		if !ok {
			return 0, TypeError{c.fieldName, "[]" + c.elem.String(), v}
		}
		n = len(x)
	case schema.INT16:
		x, ok := v.([]int16)
		if !ok {
			return 0, TypeError{c.fieldName, "[]" + c.elem.String(), v}
		}
		n = len(x)
	case schema.UINT16:
		x, ok := v.([]uint16)
		if !ok {
			return 0, TypeError{c.fieldName, "[]" + c.elem.String(), v}
		}
		n = len(x)
	case schema.INT32:
		x, ok := v.([]int32)
		if !ok {
			return 0, TypeError{c.fieldName, "[]" + c.elem.String(), v}
		}
		n = len(x)
	case schema.UINT32:
		x, ok := v.([]uint32)
		if !ok {
			return 0, TypeError{c.fieldName, "[]" + c.elem.String(), v}
		}
		n = len(x)
	case schema.INT64:
		x, ok := v.([]int64)
		if !ok {
			return 0, TypeError{c.fieldName, "[]" + c.elem.String(), v}
		}
		n = len(x)
	case schema.UINT64:
		x, ok := v.([]uint64)
		if !ok {
			return 0, TypeError{c.fieldName, "[]" + c.elem.String(), v}
		}
		n = len(x)
	case schema.FLOAT32:
		x, ok := v.([]float32)
		if !ok {
			return 0, TypeError{c.fieldName, "[]" + c.elem.String(), v}
		}
		n = len(x)
	case schema.FLOAT64:
		x, ok := v.([]float64)
		if !ok {
			return 0, TypeError{c.fieldName, "[]" + c.elem.String(), v}
		}
		n = len(x)
	default:
		panic("unknown array element type: " + c.elem.String())
	}
	if n > c.capacity {
		return 0, fmt.Errorf("field %s: %d elements: %w", c.fieldName, n, ErrTooLong)
	}
	return n, nil
}

func (c *arrayCodec) encodedSize(v any) (int, error) {
	n, err := c.length(v)
	if err != nil {
		return 0, err
	}
	return n * c.elem.ByteLen(), nil
}

func (c *arrayCodec) encode(dst []byte, v any) (int, error) {
	if _, err := c.length(v); err != nil {
		return 0, err
	}
	offset := 0
	switch x := v.(type) {
	case []byte:
		offset = copy(dst, x)
	case []int8:
		for _, e := range x {
			offset += wire.PutU8(dst[offset:], uint8(e))
		}
	case []int16:
		for _, e := range x {
			offset += wire.PutU16(dst[offset:], c.order, uint16(e))
		}
	case []uint16:
		for _, e := range x {
			offset += wire.PutU16(dst[offset:], c.order, e)
		}
	case []int32:
		for _, e := range x {
			offset += wire.PutU32(dst[offset:], c.order, uint32(e))
		}
	case []uint32:
		for _, e := range x {
			offset += wire.PutU32(dst[offset:], c.order, e)
		}
	case []int64:
		for _, e := range x {
			offset += wire.PutU64(dst[offset:], c.order, uint64(e))
		}
	case []uint64:
		for _, e := range x {
			offset += wire.PutU64(dst[offset:], c.order, e)
		}
	case []float32:
		for _, e := range x {
			offset += wire.PutF32(dst[offset:], c.order, e)
		}
	case []float64:
		for _, e := range x {
			offset += wire.PutF64(dst[offset:], c.order, e)
		}
	}
	return offset, nil
}

// decode consumes all of src: trailing variable-length fields own the
// remainder of the message buffer.
func (c *arrayCodec) decode(src []byte) (any, int, error) {
	elemSize := c.elem.ByteLen()
	if len(src)%elemSize != 0 {
		return nil, 0, fmt.Errorf("field %s: %d bytes is not a multiple of element width %d: %w",
			c.fieldName, len(src), elemSize, ErrBadLength)
	}
	count := len(src) / elemSize
	if count > c.capacity {
		return nil, 0, fmt.Errorf("field %s: %d elements: %w", c.fieldName, count, ErrTooLong)
	}
	switch c.elem {
	case schema.CHAR, schema.UINT8:
		out := make([]byte, count)
		copy(out, src)
		return out, count, nil
	case schema.INT8:
		out := make([]int8, count)
		for i := range out {
			out[i] = int8(src[i])
		}
		return out, count, nil
	case schema.INT16:
		out := make([]int16, count)
		for i := range out {
			var x uint16
			wire.U16(src[i*2:], c.order, &x)
			out[i] = int16(x)
		}
		return out, count * 2, nil
	case schema.UINT16:
		out := make([]uint16, count)
		for i := range out {
			wire.U16(src[i*2:], c.order, &out[i])
		}
		return out, count * 2, nil
	case schema.INT32:
		out := make([]int32, count)
		for i := range out {
			var x uint32
			wire.U32(src[i*4:], c.order, &x)
			out[i] = int32(x)
		}
		return out, count * 4, nil
	case schema.UINT32:
		out := make([]uint32, count)
		for i := range out {
			wire.U32(src[i*4:], c.order, &out[i])
		}
		return out, count * 4, nil
	case schema.INT64:
		out := make([]int64, count)
		for i := range out {
			var x uint64
			wire.U64(src[i*8:], c.order, &x)
			out[i] = int64(x)
		}
		return out, count * 8, nil
	case schema.UINT64:
		out := make([]uint64, count)
		for i := range out {
			wire.U64(src[i*8:], c.order, &out[i])
		}
		return out, count * 8, nil
	case schema.FLOAT32:
		out := make([]float32, count)
		for i := range out {
			wire.F32(src[i*4:], c.order, &out[i])
		}
		return out, count * 4, nil
	case schema.FLOAT64:
		out := make([]float64, count)
		for i := range out {
			wire.F64(src[i*8:], c.order, &out[i])
		}
		return out, count * 8, nil
	default:
		panic("unknown array element type: " + c.elem.String())
	}
}

////////////////////////////////////////////////////////////////////////////////

type structCodec struct {
	fieldName string
	size      int
	fields    []fieldCodec
}

func (c *structCodec) name() string   { return c.fieldName }
func (c *structCodec) fixedSize() int { return c.size }
func (c *structCodec) maxSize() int   { return c.size }

func (c *structCodec) zero() any {
	values := make([]any, len(c.fields))
	for i, fc := range c.fields {
		values[i] = fc.zero()
	}
	return &Record{Values: values}
}

func (c *structCodec) encodedSize(v any) (int, error) {
	if _, err := c.record(v); err != nil {
		return 0, err
	}
	return c.size, nil
}

func (c *structCodec) record(v any) (*Record, error) {
	rec, ok := v.(*Record)
	if !ok || rec == nil {
		return nil, TypeError{c.fieldName, "*codec.Record", v}
	}
	if len(rec.Values) != len(c.fields) {
		return nil, fmt.Errorf("field %s: record has %d values, message has %d fields",
			c.fieldName, len(rec.Values), len(c.fields))
	}
	return rec, nil
}

func (c *structCodec) encode(dst []byte, v any) (int, error) {
	rec, err := c.record(v)
	if err != nil {
		return 0, err
	}
	offset := 0
	for i, fc := range c.fields {
		n, err := fc.encode(dst[offset:], rec.Values[i])
		if err != nil {
			return 0, err
		}
		offset += n
	}
	return offset, nil
}

func (c *structCodec) decode(src []byte) (any, int, error) {
	if len(src) < c.size {
		return nil, 0, ErrBadLength
	}
	values := make([]any, len(c.fields))
	offset := 0
	for i, fc := range c.fields {
		v, n, err := fc.decode(src[offset : offset+fc.fixedSize()])
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode field %s: %w", fc.name(), err)
		}
		values[i] = v
		offset += n
	}
	return &Record{Values: values}, offset, nil
}
