package commands

import (
	"fmt"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mpflash/mpflash/internal/catalog"
	"github.com/mpflash/mpflash/internal/types"
)

// newDownloadCmd is mostly a stub: fetching firmware from upstream
// release feeds is delegated to an external collaborator. What mpflash
// does here is index whatever that collaborator already dropped into
// the firmware root into the catalog, so "download" leaves the
// catalog consistent with the filesystem even though it never fetches
// anything itself.
func newDownloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "download",
		Short: "Index firmware already present in the firmware root (fetching itself is delegated)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("fetching firmware is delegated to an external collaborator; indexing what's on disk")

			store, err := openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			files, err := catalog.ScanFirmwareRoot(cfg.FirmwareRoot)
			if err != nil {
				return err
			}

			indexed := 0
			for _, rel := range files {
				board, fw, ok := parseFirmwarePath(rel)
				if !ok {
					log.Warnf("skipping %s: does not match <port>/<board_id>-<version>.<ext>", rel)
					continue
				}
				fw.FirmwareFile = path.Join(cfg.FirmwareRoot, rel)
				if _, err := store.UpsertFirmware(fw, board); err != nil {
					return err
				}
				indexed++
			}
			fmt.Printf("indexed %d firmware file(s)\n", indexed)
			return nil
		},
	}
}

// parseFirmwarePath decodes the "<port>/<board_id>-<version>.<ext>"
// layout the firmware root follows into a Board/Firmware pair.
func parseFirmwarePath(rel string) (types.Board, types.Firmware, bool) {
	dir, file := path.Split(rel)
	port := strings.TrimSuffix(dir, "/")
	if port == "" {
		return types.Board{}, types.Firmware{}, false
	}

	ext := path.Ext(file)
	stem := strings.TrimSuffix(file, ext)
	idx := strings.LastIndex(stem, "-")
	if idx <= 0 {
		return types.Board{}, types.Firmware{}, false
	}
	boardID, version := stem[:idx], stem[idx+1:]
	if boardID == "" || version == "" {
		return types.Board{}, types.Firmware{}, false
	}

	board := types.Board{BoardID: boardID, Version: version, Port: port, Family: "micropython"}
	fw := types.Firmware{BoardID: boardID, Version: version, Port: port, Source: "local"}
	return board, fw, true
}
