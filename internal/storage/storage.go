package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

var (
	// ErrLocked means another process already holds the database.
	ErrLocked = errors.New("database is in use by another process")
	// ErrTaskNotFound is returned when no attributes row matches a description.
	ErrTaskNotFound = errors.New("task not found")
)

// Store owns the single database connection for the life of the process.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	log  *slog.Logger
}

// Open creates the database file if needed, takes the process lock and makes
// sure the schema exists. A nil logger discards output.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var lock *flock.Flock
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, err
		}
		lock = flock.New(dbPath + ".lock")
		locked, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("lock %s: %w", dbPath, err)
		}
		if !locked {
			return nil, fmt.Errorf("%s: %w", dbPath, ErrLocked)
		}
	}

	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		unlock(lock)
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, lock: lock, log: logger}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		unlock(lock)
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	logger.Debug("database opened", "path", dbPath)
	return s, nil
}

// Close releases the connection and the process lock.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	unlock(s.lock)
	return err
}

func unlock(l *flock.Flock) {
	if l != nil {
		_ = l.Unlock()
	}
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS upcoming (description TEXT, date TEXT, category TEXT);
CREATE TABLE IF NOT EXISTS history (description TEXT, date TEXT, category TEXT);
CREATE TABLE IF NOT EXISTS attributes (description TEXT, category TEXT, freq INTEGER, freq_type TEXT, track_history INTEGER);
CREATE TABLE IF NOT EXISTS notes (description TEXT, note TEXT);
CREATE INDEX IF NOT EXISTS idx_upcoming_description ON upcoming(description);
CREATE INDEX IF NOT EXISTS idx_history_description ON history(description);
CREATE INDEX IF NOT EXISTS idx_attributes_description ON attributes(description);`
	if _, err := s.db.Exec(ddl); err != nil {
		return err
	}
	return s.ensureAttributeColumns()
}

// ensureAttributeColumns upgrades databases created before history tracking
// was optional; those tasks were always tracked.
func (s *Store) ensureAttributeColumns() error {
	required := map[string]string{
		"track_history": "ALTER TABLE attributes ADD COLUMN track_history INTEGER NOT NULL DEFAULT 1;",
	}
	existing := map[string]struct{}{}
	rows, err := s.db.Query(`PRAGMA table_info(attributes);`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return err
		}
		existing[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()
	for col, alter := range required {
		if _, ok := existing[col]; ok {
			continue
		}
		if _, err := s.db.Exec(alter); err != nil {
			return err
		}
	}
	return nil
}

func sqliteDSN(path string) string {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
