// Package bootloader drives a device from its running firmware into
// its bootloader, the step every transport except esptool and the
// debug probe depends on before it can program anything.
package bootloader

import (
	"context"
	"time"

	"go.bug.st/serial"

	"github.com/mpflash/mpflash/internal/errs"
	"github.com/mpflash/mpflash/internal/types"
)

// State is where a device sits in the entry sequence.
type State int

const (
	Running State = iota
	Entering
	InBootloader
	Failed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Entering:
		return "entering"
	case InBootloader:
		return "in_bootloader"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Method selects how Driver.Enter asks the device to reset into its
// bootloader.
type Method string

const (
	MethodAuto   Method = "auto"
	MethodMPY    Method = "mpy"
	MethodTouch  Method = "touch"
	MethodManual Method = "manual"
	MethodNone   Method = "none"
)

// Driver drives one device's bootloader-entry state machine.
type Driver struct {
	TouchBaud   int
	SettleDelay time.Duration
	state       State
}

func New() *Driver {
	return &Driver{TouchBaud: 1200, SettleDelay: 500 * time.Millisecond, state: Running}
}

func (d *Driver) State() State { return d.state }

// Enter drives dev into its bootloader using method. For auto, mpy and
// touch it returns true once the entry action succeeded and SettleDelay
// has passed; it does not poll for the bootloader itself, so the
// transport is what observes the result (a UF2 volume appearing, a DFU
// device enumerating). none returns true at once, the device being
// assumed already in its bootloader; manual returns false with no
// error, leaving confirmation to the transport.
func (d *Driver) Enter(ctx context.Context, dev types.Device, method Method) (bool, error) {
	d.state = Entering

	switch method {
	case MethodAuto:
		if err := d.touch(dev.Serial); err != nil {
			d.state = Failed
			return false, errs.New(errs.KindBootloaderFailed, "auto bootloader entry failed", err.Error())
		}
	case MethodMPY:
		if err := d.mpyReset(ctx, dev.Serial); err != nil {
			d.state = Failed
			return false, errs.New(errs.KindBootloaderFailed, "mpy bootloader entry failed", err.Error())
		}
	case MethodTouch:
		if err := d.touch(dev.Serial); err != nil {
			d.state = Failed
			return false, errs.New(errs.KindBootloaderFailed, "touch-1200 bootloader entry failed", err.Error())
		}
	case MethodManual:
		// The operator puts the device into its bootloader by hand
		// (holding BOOTSEL, etc); mpflash just waits for the transport
		// to observe the result.
		return false, nil
	case MethodNone:
		// Device is assumed to already be in its bootloader.
		d.state = InBootloader
		return true, nil
	default:
		d.state = Failed
		return false, errs.New(errs.KindBootloaderFailed, "unknown bootloader entry method", string(method))
	}

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-time.After(d.SettleDelay):
	}
	d.state = InBootloader
	return true, nil
}

// touch opens and immediately closes the port at 1200 baud, the
// classic Arduino-style "touch 1200bps" reset signal.
func (d *Driver) touch(portName string) error {
	mode := &serial.Mode{BaudRate: d.TouchBaud}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return err
	}
	return port.Close()
}

// mpyReset sends the MicroPython soft-reboot-to-bootloader sequence
// over raw REPL: Ctrl-C twice to interrupt, then machine.bootloader().
func (d *Driver) mpyReset(ctx context.Context, portName string) error {
	mode := &serial.Mode{BaudRate: 115200}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return err
	}
	defer port.Close()

	_, err = port.Write([]byte("\x03\x03\x01import machine; machine.bootloader()\x04"))
	return err
}
