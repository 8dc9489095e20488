// Package esptool wraps the external esptool collaborator binary that
// actually speaks Espressif's serial bootloader protocol; mpflash only
// builds the command line and streams its output.
package esptool

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/mpflash/mpflash/internal/errs"
	"github.com/mpflash/mpflash/internal/logx"
	"github.com/mpflash/mpflash/internal/types"
)

var validFlashModes = map[string]bool{
	"keep": true, "qio": true, "qout": true, "dio": true, "dout": true,
}

// Driver shells out to esptool (or esptool.py) to flash Espressif
// chips.
type Driver struct {
	Binary    string // "esptool" or "esptool.py"; defaults to "esptool.py"
	FlashMode string
	BaudRate  int
}

func New() *Driver {
	return &Driver{Binary: "esptool.py", FlashMode: "keep", BaudRate: 460800}
}

func (d *Driver) Name() string { return "esptool" }

func (d *Driver) Flash(ctx context.Context, item types.WorklistItem) error {
	if item.Firmware == nil {
		return errs.New(errs.KindFirmwareMissing, "no firmware selected for esptool flash")
	}
	mode := d.FlashMode
	if mode == "" {
		mode = "keep"
	}
	if !validFlashModes[mode] {
		return errs.New(errs.KindTransportFailed, "invalid flash_mode", mode)
	}

	binary := d.Binary
	if binary == "" {
		binary = "esptool.py"
	}
	if _, err := exec.LookPath(binary); err != nil {
		return errs.New(errs.KindExternalToolMissing, "esptool not found on PATH", binary)
	}

	args := []string{
		"--port", item.Device.Serial,
		"--baud", fmt.Sprintf("%d", d.BaudRate),
		"write_flash",
		"--flash_mode", mode,
		"0x0", item.Firmware.FirmwareFile,
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return errs.New(errs.KindTransportFailed, "attach esptool stdout", err.Error())
	}
	cmd.Stderr = cmd.Stdout

	log := logx.Default().ForDevice(item.Device.Serial, item.Device.BoardID)

	if err := cmd.Start(); err != nil {
		return errs.New(errs.KindExternalToolMissing, "start esptool", err.Error())
	}

	logx.StreamOutput(out, log)

	if err := cmd.Wait(); err != nil {
		return errs.New(errs.KindTransportFailed, "esptool exited with error", err.Error())
	}
	return nil
}
