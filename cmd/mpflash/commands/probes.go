package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpflash/mpflash/internal/transport/probe"
)

func newListProbesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-probes",
		Short: "List attached SWD/JTAG debug probes",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend := probe.NewPyOCDAPI()
			ids, err := backend.Discover(cmd.Context())
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				fmt.Println("no debug probes found")
				return nil
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
}

func newPyOCDInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pyocd-info",
		Short: "Show pyocd's view of attached probes",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend := probe.NewPyOCDAPI()
			ids, err := backend.Discover(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%d probe(s) visible to pyocd\n", len(ids))
			for _, id := range ids {
				fmt.Println(" -", id)
			}
			return nil
		},
	}
}

func newPyOCDTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pyocd-targets",
		Short: "List pyocd's known debug targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend := probe.NewPyOCDAPI()
			targets, err := backend.Targets(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range targets {
				fmt.Printf("%-24s %-12s %s\n", t.Name, t.Vendor, t.Part)
			}
			return nil
		},
	}
}
