package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mpflash/mpflash/internal/bootloader"
	"github.com/mpflash/mpflash/internal/errs"
	"github.com/mpflash/mpflash/internal/transport"
	"github.com/mpflash/mpflash/internal/types"
)

type fakeTransport struct {
	name string
	err  error
	got  []types.WorklistItem
}

func (f *fakeTransport) Name() string { return f.name }
func (f *fakeTransport) Flash(ctx context.Context, item types.WorklistItem) error {
	f.got = append(f.got, item)
	return f.err
}

func TestRunContinuesPastPerItemFailure(t *testing.T) {
	failing := &fakeTransport{name: "uf2", err: errs.New(errs.KindTransportFailed, "boom")}
	orch := New(transport.Factories{
		UF2: func() transport.Transport { return failing },
	}, bootloader.MethodNone)

	items := []types.WorklistItem{
		{Device: types.Device{Serial: "/dev/ttyACM0", Port: "rp2"}, Firmware: &types.Firmware{FirmwareFile: "a.uf2"}, TransportHint: "uf2"},
		{Device: types.Device{Serial: "/dev/ttyACM1", Port: "rp2"}, Firmware: &types.Firmware{FirmwareFile: "b.uf2"}, TransportHint: "uf2"},
	}

	results, err := orch.Run(context.Background(), items)
	require.Error(t, err)
	require.Len(t, results, 2)
	require.Len(t, failing.got, 2, "both items should have been attempted despite the first failing")
}

func TestRunAbortsOnWholeInvocationError(t *testing.T) {
	toolMissing := &fakeTransport{name: "esptool", err: errs.New(errs.KindExternalToolMissing, "esptool not found")}
	orch := New(transport.Factories{
		ESPTool: func() transport.Transport { return toolMissing },
	}, bootloader.MethodNone)

	items := []types.WorklistItem{
		{Device: types.Device{Serial: "/dev/ttyACM0", Port: "esp32"}, Firmware: &types.Firmware{FirmwareFile: "a.bin"}, TransportHint: "esptool"},
		{Device: types.Device{Serial: "/dev/ttyACM1", Port: "esp32"}, Firmware: &types.Firmware{FirmwareFile: "b.bin"}, TransportHint: "esptool"},
	}

	results, err := orch.Run(context.Background(), items)
	require.Error(t, err)
	require.Len(t, results, 0, "whole-invocation error should abort before any result is recorded")
	require.Len(t, toolMissing.got, 1, "the second item should never have been attempted")
}

func TestRunSucceeds(t *testing.T) {
	ok := &fakeTransport{name: "uf2"}
	orch := New(transport.Factories{
		UF2: func() transport.Transport { return ok },
	}, bootloader.MethodNone)

	items := []types.WorklistItem{
		{Device: types.Device{Serial: "/dev/ttyACM0", Port: "rp2"}, Firmware: &types.Firmware{FirmwareFile: "a.uf2"}, TransportHint: "uf2"},
	}

	results, err := orch.Run(context.Background(), items)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
}
