package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpflash/mpflash/internal/enumerator"
	"github.com/mpflash/mpflash/internal/introspect"
)

func newListCmd() *cobra.Command {
	var ignoreBluetooth bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List connected boards and their identities",
		RunE: func(cmd *cobra.Command, args []string) error {
			devices, err := enumerator.List([]string{"*"}, cfg.Ignore, !ignoreBluetooth)
			if err != nil {
				return err
			}

			for _, dev := range devices {
				entry := log.ForDevice(dev.Serial, dev.BoardID)
				if !dev.IsUSB {
					entry.Infof("%-20s non-usb", dev.Serial)
					continue
				}
				d, err := introspect.Device(cmd.Context(), dev.Serial)
				if err != nil {
					entry.Warnf("%-20s could not introspect: %v", dev.Serial, err)
					continue
				}
				fmt.Printf("%-20s %-10s %-20s %s\n", dev.Serial, d.Port, d.BoardID, d.Version)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&ignoreBluetooth, "no-bluetooth", false, "skip ports classified as Bluetooth")
	return cmd
}
