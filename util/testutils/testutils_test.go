package testutils_test

import (
	"testing"

	"github.com/h6xserial/seridl/util/testutils"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	cases := []struct {
		assertion string
		in        [][]byte
		expected  []byte
	}{
		{
			"empty",
			[][]byte{},
			nil,
		},
		{
			"single",
			[][]byte{{1}},
			[]byte{1},
		},
		{
			"multiple",
			[][]byte{{1, 2}, {3}, {4, 5}},
			[]byte{1, 2, 3, 4, 5},
		},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			require.Equal(t, c.expected, testutils.Flatten(c.in...))
		})
	}
}

func TestByteBuilders(t *testing.T) {
	require.Equal(t, []byte{0x2A}, testutils.U8b(0x2A))
	require.Equal(t, []byte{0xEF, 0xBE}, testutils.U16b(0xBEEF))
	require.Equal(t, []byte{0xBE, 0xEF}, testutils.U16bBE(0xBEEF))
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, testutils.U32b(0x01020304))
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, testutils.U32bBE(0x01020304))
	require.Equal(t, []byte{8, 7, 6, 5, 4, 3, 2, 1}, testutils.U64b(0x0102030405060708))
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, testutils.U64bBE(0x0102030405060708))
	require.Equal(t, []byte{0x00, 0x00, 0xbc, 0x41}, testutils.F32b(23.5))
	require.Equal(t, []byte{0x41, 0xbc, 0x00, 0x00}, testutils.F32bBE(23.5))
	require.Equal(t, testutils.U64b(0x4037800000000000), testutils.F64b(23.5))
	require.Equal(t, testutils.U64bBE(0x4037800000000000), testutils.F64bBE(23.5))
}
