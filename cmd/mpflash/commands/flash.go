package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpflash/mpflash/internal/board"
	"github.com/mpflash/mpflash/internal/bootloader"
	"github.com/mpflash/mpflash/internal/catalog"
	"github.com/mpflash/mpflash/internal/enumerator"
	"github.com/mpflash/mpflash/internal/introspect"
	"github.com/mpflash/mpflash/internal/orchestrator"
	"github.com/mpflash/mpflash/internal/probetarget"
	"github.com/mpflash/mpflash/internal/transport"
	"github.com/mpflash/mpflash/internal/transport/dfu"
	"github.com/mpflash/mpflash/internal/transport/esptool"
	"github.com/mpflash/mpflash/internal/transport/probe"
	"github.com/mpflash/mpflash/internal/transport/uf2"
	"github.com/mpflash/mpflash/internal/types"
	"github.com/mpflash/mpflash/internal/ui/picker"
	"github.com/mpflash/mpflash/internal/worklist"
)

func newFlashCmd() *cobra.Command {
	var (
		serials   []string
		boardID   string
		version   string
		method    string
		erase     bool
		build     bool
		bluetooth bool
	)

	cmd := &cobra.Command{
		Use:   "flash",
		Short: "Flash firmware onto connected boards",
		RunE: func(cmd *cobra.Command, args []string) error {
			if build {
				fmt.Println("--build is delegated to an external collaborator; proceeding with catalog firmware only")
			}

			if version != "" {
				normalized, err := catalog.NormalizeVersion(version)
				if err != nil {
					return err
				}
				version = normalized
			}

			store, err := openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			resolvedSerials, err := resolveSerials(serials, bluetooth)
			if err != nil {
				return err
			}

			opts := worklist.Options{TransportHint: method, Version: version, Erase: erase}

			items, err := buildWorklist(cmd.Context(), store, resolvedSerials, boardID, version, bluetooth, opts)
			if err != nil {
				return err
			}

			probeCache := probetarget.NewCache()
			orch := orchestrator.New(transport.Factories{
				UF2:     func() transport.Transport { return uf2.New(cfg.FirmwareRoot) },
				DFU:     func() transport.Transport { return dfu.New() },
				ESPTool: func() transport.Transport { return esptool.New() },
				Probe: func() transport.Transport {
					return &probe.Driver{Backend: probe.NewPyOCDAPI(), Cache: probeCache}
				},
			}, bootloader.MethodAuto)

			results, err := orch.Run(cmd.Context(), items)
			if err != nil {
				return err
			}
			for _, r := range results {
				entry := log.ForDevice(r.Item.Device.Serial, r.Item.Device.BoardID)
				if r.Err != nil {
					entry.Errorf("flash failed: %v", r.Err)
				} else {
					entry.Infof("flash succeeded")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&serials, "serial", nil, `serial ports to target, or "?" to pick interactively`)
	cmd.Flags().StringVar(&boardID, "board", "", "board id to flash (bypasses introspection)")
	cmd.Flags().StringVar(&version, "version", "", "firmware version to flash (defaults to device's reported version)")
	cmd.Flags().StringVar(&method, "method", "auto", "transport hint: auto, uf2, dfu, esptool, serial, probe")
	cmd.Flags().BoolVar(&erase, "erase", false, "pre-erase erase-capable boards before flashing")
	cmd.Flags().BoolVar(&build, "build", false, "build firmware before flashing (delegated)")
	cmd.Flags().BoolVar(&bluetooth, "bluetooth", false, "include ports classified as Bluetooth")

	return cmd
}

// buildWorklist picks the manual path when boardID is given, bypassing
// introspection entirely, and the auto path (enumerate, introspect,
// match firmware) otherwise. serials is the list resolved by
// resolveSerials; on the auto path an empty list means the user passed
// no --serial flag at all, which is taken as "every port" rather than
// "no ports". The manual path builds one item per listed port, so an
// empty list there yields an empty worklist.
func buildWorklist(ctx context.Context, store *catalog.Store, serials []string, boardID, version string, includeBluetooth bool, opts worklist.Options) ([]types.WorklistItem, error) {
	if boardID != "" {
		registry := board.New(store)
		return worklist.BuildManual(store, registry, serials, boardID, version, opts)
	}

	include := serials
	if len(include) == 0 {
		include = []string{"*"}
	}
	devices, err := enumerator.List(include, cfg.Ignore, includeBluetooth)
	if err != nil {
		return nil, err
	}

	for i := range devices {
		if !devices[i].IsUSB {
			continue
		}
		d, ierr := introspect.Device(ctx, devices[i].Serial)
		if ierr != nil {
			log.ForDevice(devices[i].Serial, "").Warnf("skipping: %v", ierr)
			continue
		}
		devices[i] = d
	}

	registry := board.New(store)
	return worklist.BuildAuto(store, registry, devices, opts), nil
}

func resolveSerials(serials []string, includeBluetooth bool) ([]string, error) {
	out := make([]string, 0, len(serials))
	for _, s := range serials {
		if s == "?" {
			devices, err := enumerator.List([]string{"*"}, cfg.Ignore, includeBluetooth)
			if err != nil {
				return nil, err
			}
			choices := make([]picker.Options, 0, len(devices))
			for _, d := range devices {
				choices = append(choices, picker.Options{Label: d.Serial, Value: d.Serial})
			}
			chosen, err := picker.Pick("Select a serial port", choices)
			if err != nil {
				return nil, err
			}
			if chosen != "" {
				out = append(out, chosen)
			}
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
