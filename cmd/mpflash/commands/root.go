// Package commands builds mpflash's cobra command tree.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpflash/mpflash/internal/catalog"
	"github.com/mpflash/mpflash/internal/config"
	"github.com/mpflash/mpflash/internal/errs"
	"github.com/mpflash/mpflash/internal/logx"
)

var (
	flagVerbose bool
	flagQuiet   bool
	flagIgnore  []string

	cfg *config.Config
	log *logx.Logger
)

// Execute builds the root command and runs it, mapping any returned
// error to a process exit code via errs.ExitCode.
func Execute() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return errs.ExitCode(err)
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mpflash",
		Short:         "Discover, resolve, and flash MicroPython firmware",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load()
			if err != nil {
				return err
			}
			if len(flagIgnore) > 0 {
				c.Ignore = append(c.Ignore, flagIgnore...)
			}
			c.Verbose = flagVerbose
			c.Quiet = flagQuiet
			cfg = c

			level := "info"
			if flagVerbose {
				level = "debug"
			}
			if flagQuiet {
				level = "error"
			}
			log = logx.New(logx.Config{Level: level, Color: true})
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "only log errors")
	root.PersistentFlags().StringSliceVar(&flagIgnore, "ignore", nil, "serial ports to ignore (repeatable)")

	root.AddCommand(newListCmd())
	root.AddCommand(newDownloadCmd())
	root.AddCommand(newFlashCmd())
	root.AddCommand(newListProbesCmd())
	root.AddCommand(newPyOCDInfoCmd())
	root.AddCommand(newPyOCDTargetsCmd())

	return root
}

// openCatalog opens the catalog store at cfg's path for the lifetime
// of a single subcommand invocation.
func openCatalog() (*catalog.Store, error) {
	return catalog.Open(cfg.CatalogPath)
}
