package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// schemaVersion is the latest migration this binary knows about
const schemaVersion = 2

type migration struct {
	version     int
	description string
	stmts       []string
}

var migrations = []migration{
	{
		version:     1,
		description: "users and history",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS users (
				username TEXT PRIMARY KEY,
				password_hash BLOB NOT NULL,
				created_at TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS history (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id TEXT NOT NULL,
				mood TEXT NOT NULL,
				occasion TEXT NOT NULL,
				notes TEXT NOT NULL,
				recommended TEXT NOT NULL,
				created_at TEXT NOT NULL
			)`,
		},
	},
	{
		version:     2,
		description: "history lookup by user",
		stmts: []string{
			`CREATE INDEX IF NOT EXISTS idx_history_user ON history(user_id, id)`,
		},
	},
}

// migrate applies every migration newer than the database's user_version
func (s *Store) migrate(ctx context.Context) error {
	var current int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > schemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", current, schemaVersion)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		err := s.withTx(ctx, func(tx *sql.Tx) error {
			for _, stmt := range m.stmts {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			_, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.version))
			return err
		})
		if err != nil {
			return fmt.Errorf("migration %d failed: %w", m.version, err)
		}
		s.logger.Info("applied migration", zap.Int("version", m.version), zap.String("description", m.description))
	}
	return nil
}

// SchemaVersion returns the database's current user_version
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v)
	return v, err
}
