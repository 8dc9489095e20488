package catalog

const schemaSQL = `
CREATE TABLE IF NOT EXISTS metadata (
	name  TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS boards (
	board_id    TEXT NOT NULL,
	version     TEXT NOT NULL,
	board_name  TEXT NOT NULL DEFAULT '',
	mcu         TEXT NOT NULL DEFAULT '',
	variant     TEXT NOT NULL DEFAULT '',
	port        TEXT NOT NULL DEFAULT '',
	path        TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	family      TEXT NOT NULL DEFAULT 'micropython',
	custom      INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (board_id, version)
);

CREATE TABLE IF NOT EXISTS firmwares (
	id            TEXT PRIMARY KEY,
	board_id      TEXT NOT NULL,
	version       TEXT NOT NULL,
	port          TEXT NOT NULL DEFAULT '',
	description   TEXT NOT NULL DEFAULT '',
	firmware_file TEXT NOT NULL UNIQUE,
	source        TEXT NOT NULL DEFAULT '',
	build         INTEGER NOT NULL DEFAULT 0,
	custom        INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY (board_id, version) REFERENCES boards(board_id, version)
);

CREATE INDEX IF NOT EXISTS idx_firmwares_board_version ON firmwares(board_id, version);
`

const schemaVersion = "2" // "newest schema" per the catalog Open Question decision
