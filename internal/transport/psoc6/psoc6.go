// Package psoc6 wraps the external openocd collaborator binary for
// Cypress/Infineon PSoC6 boards, the same way esptool wraps esptool.py:
// mpflash builds the command line, openocd speaks the wire protocol.
package psoc6

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/mpflash/mpflash/internal/errs"
	"github.com/mpflash/mpflash/internal/logx"
	"github.com/mpflash/mpflash/internal/types"
)

// Driver shells out to openocd to flash PSoC6 chips over SWD.
type Driver struct {
	Binary       string
	InterfaceCfg string
	TargetCfg    string
}

func New() *Driver {
	return &Driver{Binary: "openocd", InterfaceCfg: "interface/kitprog3.cfg", TargetCfg: "target/psoc6.cfg"}
}

func (d *Driver) Name() string { return "psoc6" }

func (d *Driver) Flash(ctx context.Context, item types.WorklistItem) error {
	if item.Firmware == nil {
		return errs.New(errs.KindFirmwareMissing, "no firmware selected for psoc6 flash")
	}

	binary := d.Binary
	if binary == "" {
		binary = "openocd"
	}
	if _, err := exec.LookPath(binary); err != nil {
		return errs.New(errs.KindExternalToolMissing, "openocd not found on PATH", binary)
	}

	cmd := exec.CommandContext(ctx, binary,
		"-f", d.InterfaceCfg,
		"-f", d.TargetCfg,
		"-c", fmt.Sprintf("program %s verify reset exit", item.Firmware.FirmwareFile),
	)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return errs.New(errs.KindTransportFailed, "attach openocd stdout", err.Error())
	}
	cmd.Stderr = cmd.Stdout

	log := logx.Default().ForDevice(item.Device.Serial, item.Device.BoardID)
	if err := cmd.Start(); err != nil {
		return errs.New(errs.KindExternalToolMissing, "start openocd", err.Error())
	}

	logx.StreamOutput(out, log)

	if err := cmd.Wait(); err != nil {
		return errs.New(errs.KindTransportFailed, "openocd exited with error", err.Error())
	}
	return nil
}
