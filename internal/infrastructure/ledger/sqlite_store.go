// Package ledger persists a record of every learn invocation in a SQLite
// database. The ledger is best-effort bookkeeping: when the database cannot
// be opened the store degrades to a no-op so the pipeline keeps working.
package ledger

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tastemaker/taste/internal/domain"
	"github.com/tastemaker/taste/internal/pkg/filesystem"
	"github.com/tastemaker/taste/internal/ports"
)

const defaultRecentLimit = 20

// SQLiteStore records learn outcomes in ~/.taste/history/learn.db.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore creates (or opens) the ledger database at path. An empty
// path selects the default location under the user's home directory.
func NewSQLiteStore(path string) *SQLiteStore {
	if path == "" {
		path = filepath.Join(filesystem.UserHomeDir(), ".taste", "history", "learn.db")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &SQLiteStore{}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{}
	}
	store := &SQLiteStore{db: db}
	if err := store.init(); err != nil {
		return &SQLiteStore{}
	}
	return store
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS learns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT,
		commit_url TEXT,
		outcome TEXT,
		rule_id TEXT,
		rule_path TEXT
	);`)
	return err
}

// Record implements ports.LearnLedger.
func (s *SQLiteStore) Record(rec domain.LearnRecord) error {
	if s.db == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO learns (timestamp, commit_url, outcome, rule_id, rule_path)
		VALUES (?, ?, ?, ?, ?)`,
		rec.Timestamp.Format(time.RFC3339),
		rec.CommitURL,
		rec.Outcome,
		rec.RuleID,
		rec.RulePath,
	)
	return err
}

// Recent implements ports.LearnLedger, newest first.
func (s *SQLiteStore) Recent(limit int) ([]domain.LearnRecord, error) {
	if s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT timestamp, commit_url, outcome, rule_id, rule_path
		FROM learns ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.LearnRecord
	for rows.Next() {
		var rec domain.LearnRecord
		var ts string
		if err := rows.Scan(&ts, &rec.CommitURL, &rec.Outcome, &rec.RuleID, &rec.RulePath); err != nil {
			return nil, err
		}
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Timestamp = parsed
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

var _ ports.LearnLedger = (*SQLiteStore)(nil)
