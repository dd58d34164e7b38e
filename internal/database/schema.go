package database

import (
	"context"
	"database/sql"
	"fmt"
)

// One row per stored session key. A session is gone once it has no rows.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS session_entries (
    sid TEXT NOT NULL,
    key TEXT NOT NULL,
    value TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (sid, key)
);

CREATE INDEX IF NOT EXISTS idx_session_entries_updated_at ON session_entries(updated_at);
`

func InitSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schemaSQL)
	if err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}
