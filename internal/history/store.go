// Package history keeps a per-work-dir ledger of attempted patch
// applications in SQLite, so earlier runs can be inspected after the fact.
package history

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"pypatch/internal/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS applications (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id        TEXT NOT NULL,
	applied_at    TEXT NOT NULL,
	project       TEXT NOT NULL,
	bug           TEXT NOT NULL,
	file          TEXT NOT NULL,
	change_kind   TEXT NOT NULL,
	target        TEXT NOT NULL,
	outcome       TEXT NOT NULL,
	before_digest TEXT NOT NULL DEFAULT '',
	after_digest  TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_applications_run ON applications(run_id);
`

// Entry is one row of the ledger: a single attempted change and its outcome.
type Entry struct {
	RunID        string
	AppliedAt    time.Time
	Project      string
	Bug          string
	File         string
	ChangeKind   string
	Target       string
	Outcome      string
	BeforeDigest string
	AfterDigest  string
}

// Store wraps the ledger database.
type Store struct {
	conn   *sql.DB
	logger *logging.Logger
}

// Open opens or creates the ledger at <workDir>/.pypatch/history.db.
func Open(workDir string, logger *logging.Logger) (*Store, error) {
	dir := filepath.Join(workDir, ".pypatch")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating .pypatch directory: %w", err)
	}

	conn, err := sql.Open("sqlite", filepath.Join(dir, "history.db"))
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("setting pragma: %w", err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}

	return &Store{conn: conn, logger: logger}, nil
}

// Record appends one entry to the ledger. An empty AppliedAt is stamped with
// the current time.
func (s *Store) Record(e Entry) error {
	if e.AppliedAt.IsZero() {
		e.AppliedAt = time.Now().UTC()
	}

	_, err := s.conn.Exec(`
		INSERT INTO applications
			(run_id, applied_at, project, bug, file, change_kind, target, outcome, before_digest, after_digest)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.AppliedAt.Format(time.RFC3339), e.Project, e.Bug,
		e.File, e.ChangeKind, e.Target, e.Outcome, e.BeforeDigest, e.AfterDigest)
	if err != nil {
		return fmt.Errorf("recording history entry: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first. limit <= 0 means all.
func (s *Store) List(limit int) ([]Entry, error) {
	query := `
		SELECT run_id, applied_at, project, bug, file, change_kind, target, outcome, before_digest, after_digest
		FROM applications ORDER BY id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var appliedAt string
		if err := rows.Scan(&e.RunID, &appliedAt, &e.Project, &e.Bug, &e.File,
			&e.ChangeKind, &e.Target, &e.Outcome, &e.BeforeDigest, &e.AfterDigest); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, appliedAt); err == nil {
			e.AppliedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Digest returns a hex BLAKE2b-256 digest of content, used to fingerprint
// file state before and after an applied change.
func Digest(content string) string {
	sum := blake2b.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
