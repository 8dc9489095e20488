// Package worklist builds the ordered list of (device, firmware)
// pairs the flash orchestrator will work through.
package worklist

import (
	"github.com/mpflash/mpflash/internal/board"
	"github.com/mpflash/mpflash/internal/catalog"
	"github.com/mpflash/mpflash/internal/logx"
	"github.com/mpflash/mpflash/internal/types"
)

// extensionPreference maps a transport hint to the firmware file
// extensions worth trying, in preference order. The same artifact
// directory can hold a .uf2, a .hex, and a .bin for one board; which
// one is "right" depends entirely on how the device will be
// programmed.
var extensionPreference = map[string][]string{
	"probe":   {".hex", ".bin", ".elf"},
	"dfu":     {".dfu"},
	"uf2":     {".uf2"},
	"esptool": {".bin"},
	"serial":  {".dfu", ".hex", ".bin", ".uf2"},
	"auto":    {".dfu", ".hex", ".bin", ".uf2", ".elf"},
}

// SelectFirmware picks the best firmware candidate for the given
// transport hint: the first extension in that hint's preference list
// that any candidate matches, falling back to the last candidate if
// none match a preferred extension. The "pyocd" hint names the probe
// transport (as in transport.Select) and uses the probe preferences.
func SelectFirmware(candidates []types.Firmware, hint string) *types.Firmware {
	if len(candidates) == 0 {
		return nil
	}
	if hint == "pyocd" {
		hint = "probe"
	}
	prefs, ok := extensionPreference[hint]
	if !ok {
		prefs = extensionPreference["auto"]
	}
	for _, ext := range prefs {
		for i := range candidates {
			if hasExt(candidates[i].FirmwareFile, ext) {
				return &candidates[i]
			}
		}
	}
	last := candidates[len(candidates)-1]
	return &last
}

func hasExt(name, ext string) bool {
	if len(name) < len(ext) {
		return false
	}
	return name[len(name)-len(ext):] == ext
}

// Options controls how BuildAuto assembles its worklist.
type Options struct {
	TransportHint string
	Version       string
	Erase         bool
}

// BuildAuto takes devices the caller has already enumerated (and
// introspected where possible), skips any whose family is neither
// micropython nor unknown (with a warning, not a failure), resolves each
// device's board id from its reported description when the device
// itself doesn't report one directly, resolves firmware candidates
// from the catalog, and selects one per the transport hint.
func BuildAuto(store *catalog.Store, registry *board.Registry, devices []types.Device, opts Options) []types.WorklistItem {
	var items []types.WorklistItem
	for _, dev := range devices {
		if dev.Family != "micropython" && dev.Family != "unknown" {
			logx.Default().Warnf("skipping %s: not a recognized micropython device", dev.Serial)
			continue
		}
		if dev.BoardID == "" && dev.Description != "" {
			if b, err := registry.ResolveByDescription(dev.Description, dev.Description, dev.Version); err == nil {
				dev.BoardID = b.BoardID
				if dev.Port == "" {
					dev.Port = b.Port
				}
			} else {
				logx.Default().ForDevice(dev.Serial, "").Warnf("could not resolve board from description %q: %v", dev.Description, err)
			}
		}
		version := opts.Version
		if version == "" {
			version = dev.Version
		}
		candidates, err := store.Find(dev.BoardID, version, dev.Port)
		if err != nil {
			logx.Default().ForDevice(dev.Serial, dev.BoardID).Warnf("no firmware candidates: %v", err)
			continue
		}
		fw := SelectFirmware(candidates, opts.TransportHint)
		items = append(items, types.WorklistItem{
			Device:        dev,
			Firmware:      fw,
			TransportHint: opts.TransportHint,
			Erase:         opts.Erase,
		})
	}
	return items
}

// BuildManual builds a worklist for an explicitly named board id,
// bypassing introspection entirely: used when the caller already knows
// which firmware they want and which ports to target.
func BuildManual(store *catalog.Store, registry *board.Registry, ports []string, boardID, version string, opts Options) ([]types.WorklistItem, error) {
	b, err := registry.FindByIdentifier(boardID, version)
	if err != nil {
		return nil, err
	}
	candidates, err := store.Find(b.BoardID, b.Version, b.Port)
	if err != nil {
		return nil, err
	}
	fw := SelectFirmware(candidates, opts.TransportHint)

	items := make([]types.WorklistItem, 0, len(ports))
	for _, p := range ports {
		items = append(items, types.WorklistItem{
			Device: types.Device{
				Serial:  p,
				Family:  "micropython",
				Port:    b.Port,
				BoardID: b.BoardID,
				Version: b.Version,
			},
			Firmware:      fw,
			TransportHint: opts.TransportHint,
			Erase:         opts.Erase,
		})
	}
	return items, nil
}
