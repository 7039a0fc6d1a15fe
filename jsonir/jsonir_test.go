package jsonir_test

import (
	"testing"

	"github.com/h6xserial/seridl/compiler"
	"github.com/h6xserial/seridl/jsonir"
	"github.com/h6xserial/seridl/schema"
	"github.com/stretchr/testify/require"
)

func TestLoadDocument(t *testing.T) {
	input := []byte(`{
		"version": "2.1.0",
		"max_address": 16,
		"ping": {
			"packet_id": 0,
			"msg_type": "u8",
			"msg_desc": "Ping command"
		},
		"set_rate": {
			"packet_id": 1,
			"request_type": "sub",
			"msg_type": "uint16",
			"endianess": "big"
		},
		"temperatures": {
			"packet_id": 20,
			"msg_type": "double",
			"array": true,
			"max_length": 8
		},
		"sensor_data": {
			"packet_id": 30,
			"msg_type": "struct",
			"fields": {
				"zeta": {"type": "float32", "endianness": "big"},
				"alpha": {"type": "bool"},
				"pose": {
					"type": "struct",
					"fields": {
						"x": {"type": "i16"},
						"y": {"type": "i16"}
					}
				}
			}
		}
	}`)
	s, err := jsonir.Load(input)
	require.NoError(t, err)
	require.Equal(t, "2.1.0", s.Version)
	require.Equal(t, 16, s.MaxAddress)
	require.Len(t, s.Messages, 4)

	ping := s.Messages[0]
	require.Equal(t, "ping", ping.Name)
	require.Equal(t, 0, ping.PacketID)
	require.Equal(t, schema.Pub, ping.Direction)
	require.Equal(t, "Ping command", ping.Description)
	require.Equal(t, []schema.Field{
		{Name: "value", Type: schema.Type{Primitive: schema.UINT8}},
	}, ping.Fields)

	setRate := s.Messages[1]
	require.Equal(t, schema.Sub, setRate.Direction)
	require.Equal(t, schema.BigEndian, setRate.Fields[0].Type.Order)

	temps := s.Messages[2]
	require.Equal(t, []schema.Field{
		{Name: "data", Type: schema.Type{
			Primitive: schema.FLOAT64, Array: true, MaxLength: 8,
		}},
	}, temps.Fields)

	sensor := s.Messages[3]
	require.Len(t, sensor.Fields, 3)
	// field order follows document order, not lexical order
	require.Equal(t, "zeta", sensor.Fields[0].Name)
	require.Equal(t, "alpha", sensor.Fields[1].Name)
	require.Equal(t, "pose", sensor.Fields[2].Name)
	require.Equal(t, schema.BigEndian, sensor.Fields[0].Type.Order)

	pose := sensor.Fields[2].Type
	require.True(t, pose.Struct)
	require.NotNil(t, pose.Message)
	require.Equal(t, []schema.Field{
		{Name: "x", Type: schema.Type{Primitive: schema.INT16}},
		{Name: "y", Type: schema.Type{Primitive: schema.INT16}},
	}, pose.Message.Fields)
}

func TestLoadedDocumentCompiles(t *testing.T) {
	input := []byte(`{
		"sensor_data": {
			"packet_id": 30,
			"msg_type": "struct",
			"fields": {
				"temperature": {"type": "float32", "endianess": "big"},
				"pose": {
					"type": "struct",
					"fields": {"x": {"type": "i16"}, "y": {"type": "i16"}}
				}
			}
		}
	}`)
	s, err := jsonir.Load(input)
	require.NoError(t, err)
	p, err := compiler.Compile(s)
	require.NoError(t, err)

	c, ok := p.Codec("sensor_data")
	require.True(t, ok)
	require.Equal(t, 8, c.MaxSize())
	require.Equal(t, 8, c.MinSize())
}

func TestNamesAreNormalized(t *testing.T) {
	input := []byte(`{
		"LED Control": {
			"packet_id": 5,
			"msg_type": "struct",
			"fields": {"On Off": {"type": "bool"}}
		}
	}`)
	s, err := jsonir.Load(input)
	require.NoError(t, err)
	require.Equal(t, "led_control", s.Messages[0].Name)
	require.Equal(t, "on_off", s.Messages[0].Fields[0].Name)
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		assertion string
		input     string
	}{
		{"top level not an object", `[1, 2, 3]`},
		{"message not an object", `{"ping": 5}`},
		{"missing packet id", `{"ping": {"msg_type": "uint8"}}`},
		{"missing msg type", `{"ping": {"packet_id": 0}}`},
		{"unsupported type", `{"ping": {"packet_id": 0, "msg_type": "string"}}`},
		{"array without max length", `{"xs": {"packet_id": 0, "msg_type": "uint8", "array": true}}`},
		{"struct without fields", `{"s": {"packet_id": 0, "msg_type": "struct"}}`},
		{"bad direction", `{"ping": {"packet_id": 0, "msg_type": "uint8", "direction": "both"}}`},
		{"fractional packet id", `{"ping": {"packet_id": 1.5, "msg_type": "uint8"}}`},
		{"truncated document", `{"ping": {"packet_id": 0`},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			_, err := jsonir.Load([]byte(c.input))
			require.Error(t, err)
		})
	}
}
