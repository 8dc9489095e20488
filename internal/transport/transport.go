// Package transport defines the Transport contract every programming
// method implements, and Select, the single place that resolves a
// worklist item's transport hint into a concrete driver.
package transport

import (
	"context"
	"fmt"

	"github.com/mpflash/mpflash/internal/errs"
	"github.com/mpflash/mpflash/internal/transport/uf2"
	"github.com/mpflash/mpflash/internal/types"
)

// Transport programs one firmware artifact onto one device.
type Transport interface {
	Name() string
	Flash(ctx context.Context, item types.WorklistItem) error
}

// Factories is the set of constructors Select dispatches to, one per
// known hint. Kept as a field rather than a package-level map so
// callers can substitute fakes in tests without a global.
type Factories struct {
	UF2     func() Transport
	DFU     func() Transport
	ESPTool func() Transport
	Probe   func() Transport
}

// Select resolves a transport hint to a concrete Transport for the
// given device and the extension of the firmware artifact chosen for
// it. "probe" is never chosen automatically: a caller must ask for it
// by name, because attaching a debug probe to the wrong target can be
// destructive in a way the other transports are not.
func Select(hint string, dev types.Device, ext string, f Factories) (Transport, error) {
	switch hint {
	case "", "auto":
		return selectAuto(dev, ext, f)
	case "uf2":
		if !uf2.CapablePorts[dev.Port] || ext != ".uf2" {
			return nil, errs.New(errs.KindUnsuitableTransport, "uf2 not suitable for this device", fmt.Sprintf("port=%s ext=%s", dev.Port, ext))
		}
		return newOrFail(f.UF2, "uf2")
	case "dfu":
		if dev.Port != "stm32" {
			return nil, errs.New(errs.KindUnsuitableTransport, "dfu not suitable for this port", dev.Port)
		}
		return newOrFail(f.DFU, "dfu")
	case "esptool", "serial":
		if dev.Port != "esp32" && dev.Port != "esp8266" {
			return nil, errs.New(errs.KindUnsuitableTransport, "esptool not suitable for this port", dev.Port)
		}
		return newOrFail(f.ESPTool, "esptool")
	case "probe", "pyocd":
		return newOrFail(f.Probe, "probe")
	}
	return nil, errs.New(errs.KindUnsuitableTransport, "no transport available for hint", hint)
}

// selectAuto implements the default "--method auto" resolution: try
// each platform-specific transport the device's port and artifact
// extension are known to support, in priority order. Debug-probe
// programming is never auto-selected; it requires --method probe.
func selectAuto(dev types.Device, ext string, f Factories) (Transport, error) {
	switch {
	case uf2.CapablePorts[dev.Port] && ext == ".uf2":
		return newOrFail(f.UF2, "uf2")
	case dev.Port == "stm32":
		return newOrFail(f.DFU, "dfu")
	case dev.Port == "esp32" || dev.Port == "esp8266":
		return newOrFail(f.ESPTool, "esptool")
	}
	return nil, errs.New(errs.KindUnsuitableTransport, "no automatic transport for device", fmt.Sprintf("port=%s ext=%s", dev.Port, ext))
}

func newOrFail(factory func() Transport, name string) (Transport, error) {
	if factory == nil {
		return nil, errs.New(errs.KindUnsuitableTransport, "no transport available for hint", name)
	}
	return factory(), nil
}
