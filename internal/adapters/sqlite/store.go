// Package sqlite stores users and quiz history in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"scentquiz/internal/application"
	"scentquiz/internal/domain"
	"scentquiz/internal/ports"

	_ "modernc.org/sqlite"
)

// Store implements ports.UserStore and ports.HistoryStore using SQLite
type Store struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
	now    func() time.Time
}

// Ensure Store implements the store ports
var (
	_ ports.UserStore    = (*Store)(nil)
	_ ports.HistoryStore = (*Store)(nil)
)

// Open opens (creating if needed) the database at path and applies pending migrations
func Open(ctx context.Context, path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Expand ~ in path
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps writers serialised
	db.SetMaxOpenConns(1)

	_, err = db.ExecContext(ctx, `
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;
		PRAGMA foreign_keys = ON;
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	s := &Store{db: db, path: path, logger: logger, now: time.Now}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file
func (s *Store) Path() string {
	return s.path
}

// CreateUser inserts a new user; ErrUserExists if the username is taken
func (s *Store) CreateUser(ctx context.Context, username string, hash []byte) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(username) DO NOTHING
	`, username, hash, formatTime(s.now()))
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", username, application.ErrUserExists)
	}
	return nil
}

// PasswordHash returns the stored bcrypt hash for username
func (s *Store) PasswordHash(ctx context.Context, username string) ([]byte, error) {
	var hash []byte
	err := s.db.QueryRowContext(ctx, `SELECT password_hash FROM users WHERE username = ?`, username).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", username, application.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return hash, nil
}

// AppendHistory records one quiz run
func (s *Store) AppendHistory(ctx context.Context, userID string, query domain.PreferenceQuery, recommended []domain.ItemRef) error {
	notes, err := json.Marshal(query.Notes)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	if recommended == nil {
		recommended = []domain.ItemRef{}
	}
	recs, err := json.Marshal(recommended)
	if err != nil {
		return fmt.Errorf("encode recommendations: %w", err)
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO history (user_id, mood, occasion, notes, recommended, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, userID, string(query.Mood), string(query.Occasion), string(notes), string(recs), formatTime(s.now()))
		return err
	})
}

// GetHistory returns the user's runs, newest first
func (s *Store) GetHistory(ctx context.Context, userID string) ([]domain.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, mood, occasion, notes, recommended, created_at
		FROM history WHERE user_id = ?
		ORDER BY id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var (
			e                      domain.HistoryEntry
			mood, occasion         string
			notes, recs, createdAt string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &mood, &occasion, &notes, &recs, &createdAt); err != nil {
			return nil, err
		}
		var ns []domain.Note
		if err := json.Unmarshal([]byte(notes), &ns); err != nil {
			return nil, fmt.Errorf("decode notes of entry %d: %w", e.ID, err)
		}
		if err := json.Unmarshal([]byte(recs), &e.Recommended); err != nil {
			return nil, fmt.Errorf("decode recommendations of entry %d: %w", e.ID, err)
		}
		e.Query = domain.NewPreferenceQuery(domain.Mood(mood), domain.Occasion(occasion), ns...)
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("decode time of entry %d: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
