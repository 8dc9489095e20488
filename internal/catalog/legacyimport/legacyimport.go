// Package legacyimport reads the historical line-delimited board dumps
// the catalog predates, upserts them into the current schema, then
// archives the source file. It is a one-shot maintenance path, not
// wired to any CLI subcommand: the catalog's external interface is
// read-only lookups, and this importer exists to migrate data once.
package legacyimport

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/otiai10/copy"

	"github.com/mpflash/mpflash/internal/catalog"
	"github.com/mpflash/mpflash/internal/errs"
	"github.com/mpflash/mpflash/internal/types"
)

type legacyBoardRecord struct {
	BoardID     string `json:"board_id"`
	Version     string `json:"version"`
	BoardName   string `json:"board_name"`
	MCU         string `json:"mcu"`
	Variant     string `json:"variant"`
	Port        string `json:"port"`
	Path        string `json:"path"`
	Description string `json:"description"`
	Family      string `json:"family"`
}

// ImportLegacyJSONL scans path line by line, each line an independent
// JSON board record, upserts every record into store, then copies
// path into an archive/ directory beside it (<dir of path>/archive/).
func ImportLegacyJSONL(store *catalog.Store, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errs.New(errs.KindCatalogUnavailable, "open legacy dump", err.Error())
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec legacyBoardRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return errs.New(errs.KindCatalogUnavailable, "decode legacy dump", err.Error())
		}
		if rec.Family == "" {
			rec.Family = "micropython"
		}
		board := types.Board{
			BoardID:     rec.BoardID,
			Version:     rec.Version,
			BoardName:   rec.BoardName,
			MCU:         rec.MCU,
			Variant:     rec.Variant,
			Port:        rec.Port,
			Path:        rec.Path,
			Description: rec.Description,
			Family:      rec.Family,
		}
		if err := store.UpsertBoard(board); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errs.New(errs.KindCatalogUnavailable, "scan legacy dump", err.Error())
	}

	return archive(path)
}

func archive(path string) error {
	dir := filepath.Join(filepath.Dir(path), "archive")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.New(errs.KindCatalogUnavailable, "create archive directory", err.Error())
	}
	dest := filepath.Join(dir, time.Now().UTC().Format("20060102-150405")+"-"+filepath.Base(path))
	if err := copy.Copy(path, dest); err != nil {
		return errs.New(errs.KindCatalogUnavailable, "archive legacy dump", err.Error())
	}
	return nil
}
