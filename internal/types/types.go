// Package types holds the domain value objects shared across mpflash's
// internal packages: Device, Board, Firmware, and the resolved
// WorklistItem that ties a device to a firmware artifact.
package types

// Device describes one enumerated or introspected serial port.
type Device struct {
	Serial      string // port path, e.g. /dev/ttyACM0 or COM4
	Family      string // "unknown" | "micropython"
	Port        string // stm32, rp2, esp32, samd, ...
	BoardID     string
	Variant     string
	CPU         string
	Arch        string
	MPY         string
	Board       string
	Build       string
	Version     string
	Ver         string // "v{version}-{build}", the on-device identity's combined form
	Description string

	IsUSB       bool
	VID         string
	PID         string
	Product     string
	Bluetooth   bool
}

// Board is one row of the board registry: a known MicroPython board
// definition at a specific firmware version.
type Board struct {
	BoardID     string
	Version     string
	BoardName   string
	MCU         string
	Variant     string
	Port        string
	Path        string
	Description string
	Family      string
	Custom      bool
}

// Firmware is one catalog entry: a concrete firmware artifact for a
// board at a version.
type Firmware struct {
	ID           string
	BoardID      string
	Version      string
	Port         string
	FirmwareFile string
	Source       string
	Build        int
	Custom       bool
	Description  string
}

// WorklistItem pairs a device with the firmware chosen for it, plus
// the transport hint that will program it.
type WorklistItem struct {
	Device        Device
	Firmware      *Firmware
	TransportHint string // probe, dfu, uf2, esptool, serial, auto
	Erase         bool
}
