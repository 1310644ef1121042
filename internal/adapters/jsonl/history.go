// Package jsonl keeps quiz history in a flat file with one JSON object per line.
package jsonl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"scentquiz/internal/domain"
)

const maxLine = 1 << 20

// HistoryStore implements ports.HistoryStore on a JSON-lines file
type HistoryStore struct {
	path   string
	logger *zap.Logger
	now    func() time.Time

	mu     sync.Mutex
	nextID int64
}

// NewHistoryStore creates the file's directory and continues numbering after its last entry
func NewHistoryStore(path string, logger *zap.Logger) (*HistoryStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	s := &HistoryStore{path: path, logger: logger, now: time.Now}

	entries, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		s.nextID = max(s.nextID, e.ID)
	}
	return s, nil
}

// AppendHistory writes one line to the end of the file
func (s *HistoryStore) AppendHistory(ctx context.Context, userID string, query domain.PreferenceQuery, recommended []domain.ItemRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if recommended == nil {
		recommended = []domain.ItemRef{}
	}
	entry := domain.HistoryEntry{
		ID:          s.nextID + 1,
		UserID:      userID,
		Query:       query,
		Recommended: recommended,
		CreatedAt:   s.now().UTC(),
	}
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode history entry: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	torn, err := endsMidLine(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("check history file: %w", err)
	}
	if torn {
		s.logger.Warn("history file ends mid-line, starting a new one", zap.String("file", s.path))
		line = append([]byte{'\n'}, line...)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		f.Close()
		return fmt.Errorf("write history entry: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close history file: %w", err)
	}
	s.nextID = entry.ID
	return nil
}

// GetHistory scans the file and returns the user's entries, newest first
func (s *HistoryStore) GetHistory(ctx context.Context, userID string) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	entries, err := s.readAll()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	var out []domain.HistoryEntry
	for _, e := range entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	slices.Reverse(out)
	return out, nil
}

// endsMidLine reports whether the file is non-empty and its last byte is not a newline
func endsMidLine(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return false, nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false, err
	}
	return last[0] != '\n', nil
}

func (s *HistoryStore) readAll() ([]domain.HistoryEntry, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	var entries []domain.HistoryEntry
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLine)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var e domain.HistoryEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			// a torn final write must not hide the rest of the history
			s.logger.Warn("skipping corrupt history line", zap.String("file", s.path), zap.Int("line", lineNo), zap.Error(err))
			continue
		}
		e.Query = domain.NewPreferenceQuery(e.Query.Mood, e.Query.Occasion, e.Query.Notes...)
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}
	return entries, nil
}
