package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"qrmenu/internal/model"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, sid string) (Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM session_entries WHERE sid = $1`, sid)
	if err != nil {
		return Entry{}, fmt.Errorf("query session: %w", err)
	}
	defer rows.Close()

	fields := make(map[string]string, len(entryKeys))
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return Entry{}, fmt.Errorf("scan session entry: %w", err)
		}
		fields[k] = v
	}
	if err = rows.Err(); err != nil {
		return Entry{}, fmt.Errorf("rows iteration failed: %w", err)
	}

	return fromFields(fields), nil
}

func (s *PostgresStore) Set(ctx context.Context, sid, credential string, profile model.Profile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM session_entries WHERE sid = $1`, sid); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	now := time.Now()
	for k, v := range toFields(credential, profile) {
		if v == "" {
			continue
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO session_entries (sid, key, value, updated_at) VALUES ($1, $2, $3, $4)`,
			sid, k, v, now,
		)
		if err != nil {
			return fmt.Errorf("insert session entry: %w", err)
		}
	}

	return tx.Commit()
}

func (s *PostgresStore) Clear(ctx context.Context, sid string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session_entries WHERE sid = $1`, sid); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Sweep deletes sessions last written before now-olderThan. Their cookie has
// expired, so nothing can reach them any more.
func (s *PostgresStore) Sweep(ctx context.Context, olderThan time.Duration) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM session_entries
		WHERE sid IN (
			SELECT sid FROM session_entries
			GROUP BY sid
			HAVING MAX(updated_at) < $1
		)`, time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("sweep sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
