package catalog

import (
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"

	"github.com/mpflash/mpflash/internal/errs"
)

// ScanFirmwareRoot walks a firmware root directory looking for
// artifacts laid out as <port>/<board_id>-<version>.<ext>, the same
// directory convention the catalog's upstream collaborator uses when
// it populates the firmware tree. It returns the relative paths found,
// for a caller to Upsert against parsed board/version metadata.
func ScanFirmwareRoot(root string) ([]string, error) {
	var files []string
	err := godirwalk.Walk(root, &godirwalk.Options{
		Unsorted: false,
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				return nil
			}
			if !isFirmwareExt(path) {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
			return nil
		},
		ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
			return godirwalk.SkipNode
		},
	})
	if err != nil {
		return nil, errs.New(errs.KindCatalogUnavailable, "scan firmware root", err.Error())
	}
	return files, nil
}

var firmwareExts = []string{".uf2", ".hex", ".bin", ".dfu", ".elf"}

func isFirmwareExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range firmwareExts {
		if ext == e {
			return true
		}
	}
	return false
}
