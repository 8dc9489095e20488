package worklist

import (
	"testing"

	"github.com/mpflash/mpflash/internal/types"
)

func TestSelectFirmwarePrefersHintExtension(t *testing.T) {
	candidates := []types.Firmware{
		{FirmwareFile: "board-v1.bin"},
		{FirmwareFile: "board-v1.uf2"},
		{FirmwareFile: "board-v1.hex"},
	}

	got := SelectFirmware(candidates, "uf2")
	if got == nil || got.FirmwareFile != "board-v1.uf2" {
		t.Fatalf("SelectFirmware(uf2) = %v, want board-v1.uf2", got)
	}

	got = SelectFirmware(candidates, "esptool")
	if got == nil || got.FirmwareFile != "board-v1.bin" {
		t.Fatalf("SelectFirmware(esptool) = %v, want board-v1.bin", got)
	}
}

func TestSelectFirmwareFallsBackToLastCandidate(t *testing.T) {
	candidates := []types.Firmware{
		{FirmwareFile: "board-v1.elf"},
	}
	got := SelectFirmware(candidates, "uf2")
	if got == nil || got.FirmwareFile != "board-v1.elf" {
		t.Fatalf("SelectFirmware fallback = %v, want board-v1.elf", got)
	}
}

func TestSelectFirmwareEmptyCandidates(t *testing.T) {
	if got := SelectFirmware(nil, "uf2"); got != nil {
		t.Fatalf("SelectFirmware(nil) = %v, want nil", got)
	}
}

func TestSelectFirmwareUnknownHintUsesAutoPreference(t *testing.T) {
	candidates := []types.Firmware{
		{FirmwareFile: "board-v1.uf2"},
		{FirmwareFile: "board-v1.bin"},
	}
	got := SelectFirmware(candidates, "nonsense-hint")
	if got == nil || got.FirmwareFile != "board-v1.bin" {
		t.Fatalf("SelectFirmware(unknown hint) = %v, want board-v1.bin (auto preference: .bin precedes .uf2)", got)
	}
}
