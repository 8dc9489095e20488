// Command mpflash discovers MicroPython-capable boards, resolves
// matching firmware from a local catalog, and flashes it over
// USB-serial bootloaders, DFU, UF2 mass storage, or SWD/JTAG debug
// probes.
package main

import (
	"os"

	"github.com/mpflash/mpflash/cmd/mpflash/commands"
)

func main() {
	os.Exit(commands.Execute())
}
