package codec_test

import (
	"errors"
	"testing"

	"github.com/h6xserial/seridl/codec"
	"github.com/h6xserial/seridl/schema"
	"github.com/h6xserial/seridl/util/testutils"
	"github.com/stretchr/testify/require"
)

func scalar(name string, prim schema.PrimitiveType) schema.Field {
	return schema.Field{Name: name, Type: schema.Type{Primitive: prim}}
}

func scalarBE(name string, prim schema.PrimitiveType) schema.Field {
	return schema.Field{Name: name, Type: schema.Type{Primitive: prim, Order: schema.BigEndian}}
}

func array(name string, prim schema.PrimitiveType, maxLength int) schema.Field {
	return schema.Field{Name: name, Type: schema.Type{Primitive: prim, Array: true, MaxLength: maxLength}}
}

func mustCodec(t *testing.T, msg *schema.Message) *codec.MessageCodec {
	t.Helper()
	c, err := codec.NewMessageCodec(msg)
	require.NoError(t, err)
	return c
}

func TestEncodeSingleScalar(t *testing.T) {
	c := mustCodec(t, &schema.Message{
		Name:     "ping",
		Fields:   []schema.Field{scalar("value", schema.UINT8)},
		PacketID: 0,
	})
	require.Equal(t, 1, c.MaxSize())
	require.Equal(t, 1, c.MinSize())

	rec := c.NewRecord()
	rec.Values[0] = uint8(0x2A)
	buf := make([]byte, c.MaxSize())
	n, err := c.Encode(rec, buf)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, []byte{0x2A}, buf[:n])

	out := c.NewRecord()
	require.NoError(t, c.Decode(out, buf[:n]))
	require.Equal(t, uint8(0x2A), out.Value(0))
}

func TestEncodeBigEndianFloat(t *testing.T) {
	c := mustCodec(t, &schema.Message{
		Name:   "temperature",
		Fields: []schema.Field{scalarBE("celsius", schema.FLOAT32)},
	})
	rec := c.NewRecord()
	rec.Values[0] = float32(23.5)
	buf := make([]byte, c.MaxSize())
	n, err := c.Encode(rec, buf)
	require.NoError(t, err)
	require.Equal(t, testutils.F32bBE(23.5), buf[:n])
}

func TestCharArrayRoundTrip(t *testing.T) {
	c := mustCodec(t, &schema.Message{
		Name:   "firmware_version",
		Fields: []schema.Field{array("value", schema.CHAR, 32)},
	})
	require.Equal(t, 0, c.MinSize())
	require.Equal(t, 32, c.MaxSize())

	rec := c.NewRecord()
	rec.Values[0] = []byte("v1.2.3-beta")
	buf := make([]byte, c.MaxSize())
	n, err := c.Encode(rec, buf)
	require.NoError(t, err)
	require.Equal(t, 11, n)
	require.Equal(t, []byte("v1.2.3-beta"), buf[:n])

	out := c.NewRecord()
	require.NoError(t, c.Decode(out, buf[:n]))
	require.Equal(t, []byte("v1.2.3-beta"), out.Value(0))
}

func TestMixedFieldsRoundTrip(t *testing.T) {
	c := mustCodec(t, &schema.Message{
		Name: "kitchen_sink",
		Fields: []schema.Field{
			scalar("a", schema.INT8),
			scalarBE("b", schema.UINT16),
			scalar("c", schema.INT32),
			scalarBE("d", schema.UINT64),
			scalar("e", schema.FLOAT64),
			scalar("f", schema.BOOL),
			scalar("g", schema.CHAR),
		},
	})
	rec := c.NewRecord()
	rec.Values[0] = int8(-5)
	rec.Values[1] = uint16(0xBEEF)
	rec.Values[2] = int32(-100000)
	rec.Values[3] = uint64(1 << 40)
	rec.Values[4] = float64(-0.25)
	rec.Values[5] = true
	rec.Values[6] = byte('x')

	buf := make([]byte, c.MaxSize())
	n, err := c.Encode(rec, buf)
	require.NoError(t, err)
	require.Equal(t, c.MaxSize(), n)

	expected := testutils.Flatten(
		[]byte{0xFB},
		testutils.U16bBE(0xBEEF),
		testutils.U32b(uint32(4294867296)),
		testutils.U64bBE(1<<40),
		testutils.F64b(-0.25),
		[]byte{0x01},
		[]byte{'x'},
	)
	require.Equal(t, expected, buf[:n])

	out := c.NewRecord()
	require.NoError(t, c.Decode(out, buf[:n]))
	require.Equal(t, rec.Values, out.Values)
}

func TestTrailingArrayLengths(t *testing.T) {
	c := mustCodec(t, &schema.Message{
		Name: "samples",
		Fields: []schema.Field{
			scalar("channel", schema.UINT16),
			array("data", schema.FLOAT32, 4),
		},
	})
	require.Equal(t, 2, c.MinSize())
	require.Equal(t, 18, c.MaxSize())

	t.Run("empty array", func(t *testing.T) {
		rec := c.NewRecord()
		rec.Values[0] = uint16(7)
		rec.Values[1] = []float32{}
		buf := make([]byte, c.MaxSize())
		n, err := c.Encode(rec, buf)
		require.NoError(t, err)
		require.Equal(t, 2, n)

		out := c.NewRecord()
		require.NoError(t, c.Decode(out, buf[:n]))
		require.Equal(t, uint16(7), out.Value(0))
		require.Empty(t, out.Value(1))
	})

	t.Run("full array", func(t *testing.T) {
		rec := c.NewRecord()
		rec.Values[0] = uint16(7)
		rec.Values[1] = []float32{1, 2, 3, 4}
		buf := make([]byte, c.MaxSize())
		n, err := c.Encode(rec, buf)
		require.NoError(t, err)
		require.Equal(t, 18, n)

		out := c.NewRecord()
		require.NoError(t, c.Decode(out, buf[:n]))
		require.Equal(t, []float32{1, 2, 3, 4}, out.Value(1))
	})

	t.Run("length determines count", func(t *testing.T) {
		out := c.NewRecord()
		require.NoError(t, c.Decode(out, make([]byte, 2+8)))
		require.Len(t, out.Value(1), 2)
	})

	t.Run("ragged length rejected", func(t *testing.T) {
		out := c.NewRecord()
		err := c.Decode(out, make([]byte, 2+5))
		require.ErrorIs(t, err, codec.ErrBadLength)
	})

	t.Run("oversized rejected", func(t *testing.T) {
		out := c.NewRecord()
		err := c.Decode(out, make([]byte, 2+20))
		require.ErrorIs(t, err, codec.ErrBadLength)
	})

	t.Run("too short rejected", func(t *testing.T) {
		out := c.NewRecord()
		err := c.Decode(out, make([]byte, 1))
		require.ErrorIs(t, err, codec.ErrBadLength)
	})
}

func TestEncodeRejectsOversizedArray(t *testing.T) {
	c := mustCodec(t, &schema.Message{
		Name:   "samples",
		Fields: []schema.Field{array("data", schema.UINT16, 2)},
	})
	rec := c.NewRecord()
	rec.Values[0] = []uint16{1, 2, 3}
	buf := make([]byte, 16)
	_, err := c.Encode(rec, buf)
	require.ErrorIs(t, err, codec.ErrTooLong)
	_, err = c.EncodedSize(rec)
	require.ErrorIs(t, err, codec.ErrTooLong)
}

func TestFixedMessageLengthIsExact(t *testing.T) {
	c := mustCodec(t, &schema.Message{
		Name:   "status",
		Fields: []schema.Field{scalar("flags", schema.UINT16)},
	})
	out := c.NewRecord()
	require.ErrorIs(t, c.Decode(out, make([]byte, 1)), codec.ErrBadLength)
	require.ErrorIs(t, c.Decode(out, make([]byte, 3)), codec.ErrBadLength)
	require.NoError(t, c.Decode(out, make([]byte, 2)))
}

func TestNilArguments(t *testing.T) {
	c := mustCodec(t, &schema.Message{
		Name:   "ping",
		Fields: []schema.Field{scalar("value", schema.UINT8)},
	})
	buf := make([]byte, 1)
	_, err := c.Encode(nil, buf)
	require.ErrorIs(t, err, codec.ErrNilRecord)
	_, err = c.Encode(c.NewRecord(), nil)
	require.ErrorIs(t, err, codec.ErrNilBuffer)
	require.ErrorIs(t, c.Decode(nil, buf), codec.ErrNilRecord)
	require.ErrorIs(t, c.Decode(c.NewRecord(), nil), codec.ErrNilBuffer)
}

func TestShortBuffer(t *testing.T) {
	c := mustCodec(t, &schema.Message{
		Name:   "reading",
		Fields: []schema.Field{scalar("value", schema.FLOAT64)},
	})
	rec := c.NewRecord()
	rec.Values[0] = float64(1.5)
	_, err := c.Encode(rec, make([]byte, 4))
	require.ErrorIs(t, err, codec.ErrShortBuffer)
}

func TestTypeMismatch(t *testing.T) {
	c := mustCodec(t, &schema.Message{
		Name:   "ping",
		Fields: []schema.Field{scalar("value", schema.UINT8)},
	})
	rec := c.NewRecord()
	rec.Values[0] = "forty two"
	buf := make([]byte, 1)
	_, err := c.Encode(rec, buf)
	typeErr := codec.TypeError{}
	require.ErrorAs(t, err, &typeErr)
	require.Equal(t, "value", typeErr.Field)
}

func TestBoolPermissiveDecode(t *testing.T) {
	c := mustCodec(t, &schema.Message{
		Name:   "armed",
		Fields: []schema.Field{scalar("value", schema.BOOL)},
	})
	out := c.NewRecord()
	require.NoError(t, c.Decode(out, []byte{0xFF}))
	require.Equal(t, true, out.Value(0))
	require.NoError(t, c.Decode(out, []byte{0x00}))
	require.Equal(t, false, out.Value(0))
}

func TestNestedStructRoundTrip(t *testing.T) {
	inner := schema.Message{
		Name: "reading",
		Fields: []schema.Field{
			scalar("id", schema.UINT8),
			scalarBE("value", schema.UINT16),
		},
	}
	c := mustCodec(t, &schema.Message{
		Name: "report",
		Fields: []schema.Field{
			{Name: "sensor", Type: schema.Type{Struct: true, Ref: "reading", Message: &inner}},
			scalar("crc_ok", schema.BOOL),
		},
	})
	require.Equal(t, 4, c.MaxSize())
	require.True(t, c.MinSize() == c.MaxSize())

	rec := c.NewRecord()
	sensor, ok := rec.Value(0).(*codec.Record)
	require.True(t, ok)
	sensor.Values[0] = uint8(3)
	sensor.Values[1] = uint16(0x1234)
	rec.Values[1] = true

	buf := make([]byte, c.MaxSize())
	n, err := c.Encode(rec, buf)
	require.NoError(t, err)
	require.Equal(t, []byte{0x03, 0x12, 0x34, 0x01}, buf[:n])

	out := c.NewRecord()
	require.NoError(t, c.Decode(out, buf[:n]))
	require.Equal(t, rec.Values, out.Values)
}

func TestEncodedSizeDependsOnLengthsOnly(t *testing.T) {
	c := mustCodec(t, &schema.Message{
		Name: "samples",
		Fields: []schema.Field{
			scalar("channel", schema.UINT16),
			array("data", schema.INT32, 8),
		},
	})
	a := c.NewRecord()
	a.Values[0] = uint16(1)
	a.Values[1] = []int32{1, 2, 3}
	b := c.NewRecord()
	b.Values[0] = uint16(9999)
	b.Values[1] = []int32{-7, 1 << 30, 0}

	sizeA, err := c.EncodedSize(a)
	require.NoError(t, err)
	sizeB, err := c.EncodedSize(b)
	require.NoError(t, err)
	require.Equal(t, sizeA, sizeB)
	require.Equal(t, 14, sizeA)
}

func TestCodecConstruction(t *testing.T) {
	cases := []struct {
		assertion string
		msg       schema.Message
	}{
		{"no fields", schema.Message{Name: "empty"}},
		{"multiple variable fields", schema.Message{
			Name: "bad",
			Fields: []schema.Field{
				array("a", schema.UINT8, 4),
				array("b", schema.UINT8, 4),
			},
		}},
		{"variable field not trailing", schema.Message{
			Name: "bad",
			Fields: []schema.Field{
				array("a", schema.UINT8, 4),
				scalar("b", schema.UINT8),
			},
		}},
		{"unresolved struct reference", schema.Message{
			Name: "bad",
			Fields: []schema.Field{
				{Name: "inner", Type: schema.Type{Struct: true, Ref: "missing"}},
			},
		}},
		{"bool array", schema.Message{
			Name:   "bad",
			Fields: []schema.Field{array("a", schema.BOOL, 4)},
		}},
		{"zero max length", schema.Message{
			Name:   "bad",
			Fields: []schema.Field{array("a", schema.UINT8, 0)},
		}},
		{"excessive max length", schema.Message{
			Name:   "bad",
			Fields: []schema.Field{array("a", schema.UINT8, schema.MaxArrayLength + 1)},
		}},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			_, err := codec.NewMessageCodec(&c.msg)
			require.Error(t, err)
		})
	}

	_, err := codec.NewMessageCodec(nil)
	require.Error(t, err)
	require.False(t, errors.Is(err, codec.ErrNilRecord))
}
