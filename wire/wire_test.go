package wire_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/h6xserial/seridl/wire"
	"github.com/stretchr/testify/require"
)

func TestByteOrderExactness(t *testing.T) {
	buf := make([]byte, 4)
	n := wire.PutU32(buf, binary.LittleEndian, 0x01020304)
	require.Equal(t, 4, n)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf)

	n = wire.PutU32(buf, binary.BigEndian, 0x01020304)
	require.Equal(t, 4, n)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, buf)
}

func TestUnsignedRoundTrips(t *testing.T) {
	orders := []struct {
		name  string
		order binary.ByteOrder
	}{
		{"little", binary.LittleEndian},
		{"big", binary.BigEndian},
	}
	for _, c := range orders {
		order := c.order
		t.Run(c.name, func(t *testing.T) {
			buf := make([]byte, 8)

			var u16 uint16
			require.Equal(t, 2, wire.PutU16(buf, order, 0xBEEF))
			require.Equal(t, 2, wire.U16(buf, order, &u16))
			require.Equal(t, uint16(0xBEEF), u16)

			var u32 uint32
			require.Equal(t, 4, wire.PutU32(buf, order, 0xDEADBEEF))
			require.Equal(t, 4, wire.U32(buf, order, &u32))
			require.Equal(t, uint32(0xDEADBEEF), u32)

			var u64 uint64
			require.Equal(t, 8, wire.PutU64(buf, order, 0xDEADBEEFCAFEF00D))
			require.Equal(t, 8, wire.U64(buf, order, &u64))
			require.Equal(t, uint64(0xDEADBEEFCAFEF00D), u64)
		})
	}

	buf := make([]byte, 1)
	var u8 uint8
	require.Equal(t, 1, wire.PutU8(buf, 0x2A))
	require.Equal(t, 1, wire.U8(buf, &u8))
	require.Equal(t, uint8(0x2A), u8)
}

func TestFloatBitPatternsSurviveRoundTrip(t *testing.T) {
	cases := []struct {
		assertion string
		bits      uint64
	}{
		{"quiet nan with payload", 0x7ff8000000000001},
		{"signaling nan", 0x7ff0000000000002},
		{"negative zero", 0x8000000000000000},
		{"positive infinity", 0x7ff0000000000000},
		{"smallest subnormal", 0x0000000000000001},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			buf := make([]byte, 8)
			v := math.Float64frombits(c.bits)
			wire.PutF64(buf, binary.BigEndian, v)

			var out float64
			wire.F64(buf, binary.BigEndian, &out)
			require.Equal(t, c.bits, math.Float64bits(out))
		})
	}

	buf := make([]byte, 4)
	v := math.Float32frombits(0x80000000)
	wire.PutF32(buf, binary.LittleEndian, v)
	var out float32
	wire.F32(buf, binary.LittleEndian, &out)
	require.Equal(t, uint32(0x80000000), math.Float32bits(out))
}

func TestFloatByteOrder(t *testing.T) {
	buf := make([]byte, 4)
	wire.PutF32(buf, binary.BigEndian, 23.5)
	require.Equal(t, []byte{0x41, 0xbc, 0x00, 0x00}, buf)
}

func TestBool(t *testing.T) {
	buf := make([]byte, 1)
	wire.PutBool(buf, true)
	require.Equal(t, []byte{0x01}, buf)
	wire.PutBool(buf, false)
	require.Equal(t, []byte{0x00}, buf)

	var v bool
	wire.Bool([]byte{0xFF}, &v)
	require.True(t, v)
	wire.Bool([]byte{0x00}, &v)
	require.False(t, v)
}
