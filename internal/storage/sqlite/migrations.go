package sqlite

import "database/sql"

// schema sets up the snapshot table. It runs on startup to ensure tables exist.
// Each ledger has at most one row per slot; the snapshot column holds the
// JSON-encoded models.Snapshot.
const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
    ledger_id TEXT NOT NULL,
    slot TEXT NOT NULL,
    snapshot TEXT NOT NULL,
    updated_at INTEGER NOT NULL,
    PRIMARY KEY (ledger_id, slot)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_slot ON snapshots(slot);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
