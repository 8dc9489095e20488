// Package dfu programs boards over the USB DFU protocol.
package dfu

import (
	"context"
	"os"
	"time"

	"github.com/google/gousb"

	"github.com/mpflash/mpflash/internal/errs"
	"github.com/mpflash/mpflash/internal/types"
)

const (
	reqDnload    = 0x01
	reqGetStatus = 0x03

	blockSize = 2048
)

// Driver flashes firmware to the first DFU-class device found.
type Driver struct {
	PollInterval time.Duration
}

func New() *Driver {
	return &Driver{PollInterval: 100 * time.Millisecond}
}

// dfuInterfaceClass/Subclass identify a DFU interface per the USB DFU
// 1.1 specification: class 0xFE (application specific), subclass 0x01.
const (
	dfuInterfaceClass    = 0xfe
	dfuInterfaceSubclass = 0x01
)

// isDFUDevice matches any USB device exposing a DFU-class interface,
// used to find the target without needing to know its VID/PID ahead
// of time.
func isDFUDevice(desc *gousb.DeviceDesc) bool {
	for _, cfg := range desc.Configs {
		for _, intf := range cfg.Interfaces {
			for _, alt := range intf.AltSettings {
				if byte(alt.Class) == dfuInterfaceClass && byte(alt.SubClass) == dfuInterfaceSubclass {
					return true
				}
			}
		}
	}
	return false
}

func (d *Driver) Name() string { return "dfu" }

func (d *Driver) Flash(ctx context.Context, item types.WorklistItem) error {
	if item.Firmware == nil {
		return errs.New(errs.KindFirmwareMissing, "no firmware selected for dfu flash")
	}

	if err := validateHex(item.Firmware.FirmwareFile); err != nil {
		return err
	}

	data, err := os.ReadFile(item.Firmware.FirmwareFile)
	if err != nil {
		return errs.New(errs.KindTransportFailed, "read dfu artifact", err.Error())
	}

	ctxUSB := gousb.NewContext()
	defer ctxUSB.Close()

	devs, err := ctxUSB.OpenDevices(isDFUDevice)
	if err != nil {
		return errs.New(errs.KindTransportFailed, "enumerate usb devices", err.Error())
	}
	if len(devs) == 0 {
		return errs.New(errs.KindTransportFailed, "open dfu device", "no DFU-class device found")
	}
	dev := devs[0]
	for _, extra := range devs[1:] {
		extra.Close()
	}
	defer dev.Close()

	cfg, err := dev.Config(1)
	if err != nil {
		return errs.New(errs.KindTransportFailed, "claim dfu configuration", err.Error())
	}
	defer cfg.Close()

	intf, err := cfg.Interface(0, 0)
	if err != nil {
		return errs.New(errs.KindTransportFailed, "claim dfu interface", err.Error())
	}
	defer intf.Close()

	block := 0
	for offset := 0; offset < len(data); offset += blockSize {
		end := offset + blockSize
		if end > len(data) {
			end = len(data)
		}
		if _, err := dev.Control(0x21, reqDnload, uint16(block), 0, data[offset:end]); err != nil {
			return errs.New(errs.KindTransportFailed, "dfu download block", err.Error())
		}
		if err := d.pollStatus(ctx, dev); err != nil {
			return err
		}
		block++
	}

	// zero-length block signals end of transfer
	if _, err := dev.Control(0x21, reqDnload, uint16(block), 0, nil); err != nil {
		return errs.New(errs.KindTransportFailed, "dfu end transfer", err.Error())
	}
	return d.pollStatus(ctx, dev)
}

func (d *Driver) pollStatus(ctx context.Context, dev *gousb.Device) error {
	status := make([]byte, 6)
	for {
		if _, err := dev.Control(0xa1, reqGetStatus, 0, 0, status); err != nil {
			return errs.New(errs.KindTransportFailed, "dfu get status", err.Error())
		}
		// status[4] is the device's bState; DFU download continues
		// until the device reports dfuDNLOAD-IDLE (0x05) or dfuIDLE (0x02).
		switch status[4] {
		case 0x02, 0x05:
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d.PollInterval):
		}
	}
}
