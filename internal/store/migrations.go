package store

import "database/sql"

// migrations is the ordered list of all schema migrations.
// Append new migrations to the end with incrementing Version numbers.
var migrations = []Migration{
	{
		Version:     1,
		Description: "initial schema",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS chapters (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT UNIQUE NOT NULL,
    location TEXT DEFAULT '',
    meeting_day TEXT DEFAULT '',
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS members (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    chapter_id INTEGER NOT NULL REFERENCES chapters(id),
    first_name TEXT NOT NULL,
    last_name TEXT DEFAULT '',
    normalized_name TEXT NOT NULL,
    is_active INTEGER DEFAULT 1,
    UNIQUE (chapter_id, normalized_name)
);

CREATE TABLE IF NOT EXISTS interactions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    chapter_id INTEGER NOT NULL REFERENCES chapters(id),
    period TEXT NOT NULL,
    kind TEXT NOT NULL,
    giver_norm TEXT DEFAULT '',
    receiver_norm TEXT NOT NULL,
    amount TEXT DEFAULT '0',
    currency TEXT DEFAULT '',
    within_chapter INTEGER DEFAULT 1,
    detail TEXT DEFAULT '',
    fingerprint TEXT UNIQUE NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshots (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    chapter_id INTEGER NOT NULL REFERENCES chapters(id),
    period TEXT NOT NULL,
    kind TEXT NOT NULL,
    member_names TEXT NOT NULL,
    cells TEXT NOT NULL,
    created_at TEXT NOT NULL,
    UNIQUE (chapter_id, period, kind)
);

CREATE INDEX IF NOT EXISTS idx_members_chapter ON members(chapter_id);
CREATE INDEX IF NOT EXISTS idx_interactions_chapter_period ON interactions(chapter_id, period);
CREATE INDEX IF NOT EXISTS idx_snapshots_chapter_period ON snapshots(chapter_id, period);
`)
			return err
		},
	},
}

// latestVersion returns the highest migration version number.
func latestVersion() int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].Version
}
