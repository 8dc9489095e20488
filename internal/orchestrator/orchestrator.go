// Package orchestrator drives the worklist through bootloader entry
// and transport flashing, one device at a time, strictly sequentially.
package orchestrator

import (
	"context"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"github.com/mpflash/mpflash/internal/bootloader"
	"github.com/mpflash/mpflash/internal/errs"
	"github.com/mpflash/mpflash/internal/logx"
	"github.com/mpflash/mpflash/internal/transport"
	"github.com/mpflash/mpflash/internal/types"
)

// Result records the outcome of flashing one worklist item.
type Result struct {
	Item types.WorklistItem
	Err  error
}

// Orchestrator runs a worklist to completion.
type Orchestrator struct {
	Bootloader *bootloader.Driver
	Factories  transport.Factories
	Method     bootloader.Method
}

func New(factories transport.Factories, method bootloader.Method) *Orchestrator {
	return &Orchestrator{
		Bootloader: bootloader.New(),
		Factories:  factories,
		Method:     method,
	}
}

// Run flashes every item in the worklist in order. Per-item failures
// are collected and do not stop the run; a whole-invocation error
// (ambiguous probe, missing catalog, missing external tool) returns
// immediately, aborting whatever remains.
func (o *Orchestrator) Run(ctx context.Context, items []types.WorklistItem) ([]Result, error) {
	results := make([]Result, 0, len(items))
	var errSum *multierror.Error

	for _, item := range items {
		log := logx.Default().ForDevice(item.Device.Serial, item.Device.BoardID)

		if err := o.flashOne(ctx, item); err != nil {
			if !errs.PerItem(kindOf(err)) {
				return results, err
			}
			log.Errorf("flash failed: %v", err)
			errSum = multierror.Append(errSum, err)
			results = append(results, Result{Item: item, Err: err})
			continue
		}

		log.Infof("flash succeeded")
		results = append(results, Result{Item: item})
	}

	if errSum != nil {
		return results, errSum.ErrorOrNil()
	}
	return results, nil
}

func (o *Orchestrator) flashOne(ctx context.Context, item types.WorklistItem) error {
	if item.Firmware == nil {
		return errs.New(errs.KindFirmwareMissing, "no firmware resolved for this device")
	}

	ext := filepath.Ext(item.Firmware.FirmwareFile)
	t, err := transport.Select(item.TransportHint, item.Device, ext, o.Factories)
	if err != nil {
		return err
	}

	// esptool and debug-probe transports drive their own reset/attach
	// sequence; every other transport needs the bootloader entered
	// first.
	if t.Name() != "esptool" && t.Name() != "probe" {
		if _, err := o.Bootloader.Enter(ctx, item.Device, o.Method); err != nil {
			return err
		}
	}

	return t.Flash(ctx, item)
}

func kindOf(err error) errs.Kind {
	if e, ok := err.(*errs.Error); ok {
		return e.Kind
	}
	return errs.KindTransportFailed
}
