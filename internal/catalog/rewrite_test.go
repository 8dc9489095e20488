package catalog

import (
	"reflect"
	"testing"
)

func TestAlternateBoardIDs(t *testing.T) {
	cases := []struct {
		name    string
		boardID string
		port    string
		want    []string
	}{
		{"pico shorthand", "PICO", "rp2", []string{"RPI_PICO"}},
		{"rpi prefix stripped", "RPI_PICO2", "rp2", []string{"PICO2"}},
		{"generic rewritten per port", "GENERIC", "stm32", []string{"STM32_GENERIC"}},
		{"esp32 prefix stripped", "ESP32_GENERIC", "esp32", []string{"GENERIC"}},
		{"esp8266 prefix stripped", "ESP8266_GENERIC", "esp8266", []string{"GENERIC"}},
		{"no rewrite for unknown id", "UNKNOWN_BOARD", "rp2", nil},
		{"generic without port yields no rewrite", "GENERIC", "", nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := alternateBoardIDs(c.boardID, c.port)
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("alternateBoardIDs(%q, %q) = %v, want %v", c.boardID, c.port, got, c.want)
			}
		})
	}
}
