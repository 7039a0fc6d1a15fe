package util_test

import (
	"testing"

	"github.com/h6xserial/seridl/util"
	"github.com/stretchr/testify/require"
)

func TestSnakeCase(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"firmware_version", "firmware_version"},
		{"HelloWorld", "helloworld"},
		{"LED Control", "led_control"},
		{"CO2Level", "co2level"},
		{"get temperatures!", "get_temperatures"},
		{"123test", "_123test"},
		{"", "msg"},
		{"___", "msg"},
	}
	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			require.Equal(t, c.want, util.SnakeCase(c.input))
		})
	}
}

func TestMacroCase(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"firmware_version", "FIRMWARE_VERSION"},
		{"HelloWorld", "HELLOWORLD"},
		{"LED Control", "LED_CONTROL"},
		{"CO2Level", "CO2LEVEL"},
		{"123test", "_123TEST"},
		{"", "MSG"},
	}
	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			require.Equal(t, c.want, util.MacroCase(c.input))
		})
	}
}
