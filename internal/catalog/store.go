// Package catalog is the embedded firmware catalog: a single-file
// sqlite database holding known boards and the firmware artifacts
// resolved against them.
package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mpflash/mpflash/internal/errs"
	"github.com/mpflash/mpflash/internal/types"
)

// Store wraps one *sql.DB opened for the lifetime of a single CLI
// invocation: one reader-writer connection per logical operation, not
// a long-lived pool.
type Store struct {
	db *sql.DB
}

// Open creates the catalog directory if needed and opens (creating if
// absent) the sqlite database at path, applying the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errs.New(errs.KindCatalogUnavailable, "create catalog directory", err.Error())
		}
	}
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, errs.New(errs.KindCatalogUnavailable, "open catalog", err.Error())
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, errs.New(errs.KindCatalogUnavailable, "apply catalog schema", err.Error())
	}
	if _, err := db.Exec(`INSERT INTO metadata(name, value) VALUES('schema_version', ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value`, schemaVersion); err != nil {
		db.Close()
		return nil, errs.New(errs.KindCatalogUnavailable, "record schema version", err.Error())
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// UpsertBoard inserts or updates one board row.
func (s *Store) UpsertBoard(b types.Board) error {
	_, err := s.db.Exec(`
		INSERT INTO boards(board_id, version, board_name, mcu, variant, port, path, description, family, custom)
		VALUES(?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(board_id, version) DO UPDATE SET
			board_name = excluded.board_name,
			mcu = excluded.mcu,
			variant = excluded.variant,
			port = excluded.port,
			path = excluded.path,
			description = excluded.description,
			family = excluded.family,
			custom = excluded.custom`,
		b.BoardID, b.Version, b.BoardName, b.MCU, b.Variant, b.Port, b.Path, b.Description, b.Family, b.Custom)
	if err != nil {
		return errs.New(errs.KindCatalogUnavailable, "upsert board", err.Error())
	}
	return nil
}

// UpsertFirmware inserts or updates one firmware row, assigning a new
// uuid on first insert and ensuring the parent board row exists.
func (s *Store) UpsertFirmware(f types.Firmware, parent types.Board) (types.Firmware, error) {
	if _, err := s.FindBoard(parent.BoardID, parent.Version); err != nil {
		if err := s.UpsertBoard(parent); err != nil {
			return f, err
		}
	}
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`
		INSERT INTO firmwares(id, board_id, version, port, description, firmware_file, source, build, custom)
		VALUES(?,?,?,?,?,?,?,?,?)
		ON CONFLICT(firmware_file) DO UPDATE SET
			board_id = excluded.board_id,
			version = excluded.version,
			port = excluded.port,
			description = excluded.description,
			source = excluded.source,
			build = excluded.build,
			custom = excluded.custom`,
		f.ID, f.BoardID, f.Version, f.Port, f.Description, f.FirmwareFile, f.Source, f.Build, f.Custom)
	if err != nil {
		return f, errs.New(errs.KindCatalogUnavailable, "upsert firmware", err.Error())
	}
	return f, nil
}

// FindBoard looks up one exact (board_id, version) row.
func (s *Store) FindBoard(boardID, version string) (types.Board, error) {
	var b types.Board
	var custom int
	row := s.db.QueryRow(`SELECT board_id, version, board_name, mcu, variant, port, path, description, family, custom
		FROM boards WHERE board_id = ? AND version = ?`, boardID, version)
	if err := row.Scan(&b.BoardID, &b.Version, &b.BoardName, &b.MCU, &b.Variant, &b.Port, &b.Path, &b.Description, &b.Family, &custom); err != nil {
		return b, err
	}
	b.Custom = custom != 0
	return b, nil
}

// Find resolves the firmware candidates for boardID/version/port,
// matching spec's preview/exact-match/rewrite-retry lookup. A version
// containing "preview" restricts the search to preview artifacts and
// returns only the single highest build. Otherwise an exact
// (board_id, version) match is tried first; failing that, each
// alternate board id from the rewrite table is tried in turn, each at
// the requested version and then at any version; last, boardID itself
// is tried at any version.
func (s *Store) Find(boardID, version, port string) ([]types.Firmware, error) {
	if strings.Contains(version, "preview") {
		return s.findPreview(boardID, port)
	}

	if fw, err := s.queryFirmwares(boardID, version); err == nil && len(fw) > 0 {
		return fw, nil
	}
	for _, alt := range alternateBoardIDs(boardID, port) {
		if fw, err := s.queryFirmwares(alt, version); err == nil && len(fw) > 0 {
			return fw, nil
		}
		if fw, err := s.queryFirmwaresAnyVersion(alt); err == nil && len(fw) > 0 {
			return fw, nil
		}
	}
	if fw, err := s.queryFirmwaresAnyVersion(boardID); err == nil && len(fw) > 0 {
		return fw, nil
	}
	return nil, errs.New(errs.KindFirmwareMissing, fmt.Sprintf("no firmware found for board %q", boardID))
}

// findPreview restricts the catalog to artifacts whose path names them
// as a preview build and returns only the single highest build,
// trying boardID and then its rewrite-table alternates.
func (s *Store) findPreview(boardID, port string) ([]types.Firmware, error) {
	ids := append([]string{boardID}, alternateBoardIDs(boardID, port)...)
	for _, id := range ids {
		fw, err := s.queryPreviewFirmware(id)
		if err == nil && len(fw) > 0 {
			return fw[:1], nil
		}
	}
	return nil, errs.New(errs.KindFirmwareMissing, fmt.Sprintf("no preview firmware found for board %q", boardID))
}

func (s *Store) queryPreviewFirmware(boardID string) ([]types.Firmware, error) {
	rows, err := s.db.Query(`SELECT id, board_id, version, port, description, firmware_file, source, build, custom
		FROM firmwares WHERE board_id = ? AND firmware_file LIKE '%preview%' ORDER BY build DESC`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFirmwares(rows)
}

func (s *Store) queryFirmwares(boardID, version string) ([]types.Firmware, error) {
	rows, err := s.db.Query(`SELECT id, board_id, version, port, description, firmware_file, source, build, custom
		FROM firmwares WHERE board_id = ? AND version = ? ORDER BY build DESC`, boardID, version)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFirmwares(rows)
}

func (s *Store) queryFirmwaresAnyVersion(boardID string) ([]types.Firmware, error) {
	rows, err := s.db.Query(`SELECT id, board_id, version, port, description, firmware_file, source, build, custom
		FROM firmwares WHERE board_id = ? ORDER BY version DESC, build DESC`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFirmwares(rows)
}

func scanFirmwares(rows *sql.Rows) ([]types.Firmware, error) {
	var out []types.Firmware
	for rows.Next() {
		var f types.Firmware
		var custom int
		if err := rows.Scan(&f.ID, &f.BoardID, &f.Version, &f.Port, &f.Description, &f.FirmwareFile, &f.Source, &f.Build, &custom); err != nil {
			return nil, err
		}
		f.Custom = custom != 0
		out = append(out, f)
	}
	return out, rows.Err()
}

// DB exposes the underlying connection for packages (board registry)
// that need queries beyond this file's scope.
func (s *Store) DB() *sql.DB { return s.db }
