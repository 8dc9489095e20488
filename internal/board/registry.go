// Package board resolves board identifiers and descriptions against
// the catalog's board table.
package board

import (
	"strings"

	"github.com/mpflash/mpflash/internal/catalog"
	"github.com/mpflash/mpflash/internal/errs"
	"github.com/mpflash/mpflash/internal/types"
)

// Registry resolves board identities against a catalog store.
type Registry struct {
	store *catalog.Store
}

func New(store *catalog.Store) *Registry {
	return &Registry{store: store}
}

// ResolveByDescription builds the candidate description set a board's
// free-text description is matched against: the description itself,
// its short form, and both again with a leading "Generic " stripped.
// Each candidate is tried at the given version first; only once every
// candidate has missed at that version does it fall back to the
// highest version of the first matching board id.
func (r *Registry) ResolveByDescription(description, shortDescription, version string) (types.Board, error) {
	candidates := candidateDescriptions(description, shortDescription)
	db := r.store.DB()

	if version != "" {
		for _, c := range candidates {
			if c == "" {
				continue
			}
			row := db.QueryRow(`SELECT board_id, version, board_name, mcu, variant, port, path, description, family, custom
				FROM boards WHERE description = ? AND version = ? ORDER BY board_id ASC LIMIT 1`, c, version)
			if b, ok := scanBoard(row); ok {
				return b, nil
			}
		}
	}

	for _, c := range candidates {
		if c == "" {
			continue
		}
		row := db.QueryRow(`SELECT board_id, version, board_name, mcu, variant, port, path, description, family, custom
			FROM boards WHERE description = ? ORDER BY board_id ASC, version DESC LIMIT 1`, c)
		if b, ok := scanBoard(row); ok {
			return b, nil
		}
	}

	return types.Board{}, errs.New(errs.KindBoardUnknown, "no board matches description", description)
}

// candidateDescriptions is the four-way set: description, short
// description, and both with the "Generic " prefix stripped when
// present (the 8-character prefix "Generic " used by upstream board
// definitions).
func candidateDescriptions(description, shortDescription string) []string {
	out := []string{description, shortDescription}
	const prefix = "Generic "
	if strings.HasPrefix(description, prefix) {
		out = append(out, description[len(prefix):])
	}
	if strings.HasPrefix(shortDescription, prefix) {
		out = append(out, shortDescription[len(prefix):])
	}
	return out
}

// FindByIdentifier looks up a board at an exact version, or the
// highest known version when version is empty or "%".
func (r *Registry) FindByIdentifier(boardID, version string) (types.Board, error) {
	db := r.store.DB()
	if version != "" && version != "%" {
		row := db.QueryRow(`SELECT board_id, version, board_name, mcu, variant, port, path, description, family, custom
			FROM boards WHERE board_id = ? AND version = ?`, boardID, version)
		if b, ok := scanBoard(row); ok {
			return b, nil
		}
	}
	row := db.QueryRow(`SELECT board_id, version, board_name, mcu, variant, port, path, description, family, custom
		FROM boards WHERE board_id = ? ORDER BY version DESC LIMIT 1`, boardID)
	if b, ok := scanBoard(row); ok {
		return b, nil
	}
	return types.Board{}, errs.New(errs.KindBoardUnknown, "unknown board id", boardID)
}

// KnownPorts returns every distinct port name the registry has boards
// for.
func (r *Registry) KnownPorts() ([]string, error) {
	rows, err := r.store.DB().Query(`SELECT DISTINCT port FROM boards WHERE port != '' ORDER BY port ASC`)
	if err != nil {
		return nil, errs.New(errs.KindCatalogUnavailable, "list known ports", err.Error())
	}
	defer rows.Close()
	var ports []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		ports = append(ports, p)
	}
	return ports, rows.Err()
}

// KnownBoardsForPort returns every board id known for a given port.
func (r *Registry) KnownBoardsForPort(port string) ([]string, error) {
	rows, err := r.store.DB().Query(`SELECT DISTINCT board_id FROM boards WHERE port = ? ORDER BY board_id ASC`, port)
	if err != nil {
		return nil, errs.New(errs.KindCatalogUnavailable, "list boards for port", err.Error())
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBoard(row rowScanner) (types.Board, bool) {
	var b types.Board
	var custom int
	if err := row.Scan(&b.BoardID, &b.Version, &b.BoardName, &b.MCU, &b.Variant, &b.Port, &b.Path, &b.Description, &b.Family, &custom); err != nil {
		return types.Board{}, false
	}
	b.Custom = custom != 0
	return b, true
}
