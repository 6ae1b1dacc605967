// Package history provides the persistence layer for submitted inputs.
//
// It implements the Store interface using SQLite. Only the raw text of each
// successfully decoded input is kept, keyed by a digest of the decoded
// bytes, so pasting the same object twice refreshes one entry.
package history

import (
	"crypto/sha256"
	"database/sql"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Mr-Dark-debug/derlens/pkg/timeutil"
)

//go:embed schema.sql
var schemaFS embed.FS

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("history: entry not found")

// Store defines the interface for history persistence.
type Store interface {
	// Record inserts e, or refreshes the entry with the same digest.
	Record(e *Entry) (int64, error)
	// Recent returns up to limit entries, newest first.
	Recent(limit int) ([]*Entry, error)
	// Get returns one entry by id.
	Get(id int64) (*Entry, error)
	// Count returns the number of stored entries.
	Count() (int, error)
	// Prune deletes all but the newest keep entries.
	Prune(keep int) error
	// Clear deletes every entry.
	Clear() error
	// Close shuts down the database connection.
	Close() error
}

// Entry is one submitted input.
type Entry struct {
	ID        int64  `json:"id"`
	CreatedAt int64  `json:"created_at"` // Unix nanoseconds
	Source    string `json:"source"`
	Text      string `json:"text"`
	ByteLen   int    `json:"byte_len"`
	Objects   int    `json:"objects"`
	Digest    string `json:"digest"`
}

// NewEntry builds an entry for text that decoded to data with the given
// number of top-level objects.
func NewEntry(source, text string, data []byte, objects int) *Entry {
	sum := sha256.Sum256(data)
	return &Entry{
		CreatedAt: timeutil.NowNano(),
		Source:    source,
		Text:      text,
		ByteLen:   len(data),
		Objects:   objects,
		Digest:    hex.EncodeToString(sum[:]),
	}
}

// ============================================================
// DBService Implementation
// ============================================================

// DBService implements the Store interface using SQLite.
type DBService struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string

	stmtRecord *sql.Stmt
	stmtRecent *sql.Stmt
}

// NewDBService opens the database at path, initializes the schema and
// prepares statements. Use ":memory:" in tests.
func NewDBService(path string) (*DBService, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database at %s: %w", path, err)
	}

	// A single connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	svc := &DBService{
		db:   db,
		path: path,
	}

	if err := svc.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	if err := svc.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing statements: %w", err)
	}

	return svc, nil
}

func (s *DBService) initSchema() error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("reading embedded schema: %w", err)
	}

	if _, err := s.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}

	return nil
}

func (s *DBService) prepareStatements() error {
	var err error

	s.stmtRecord, err = s.db.Prepare(`
		INSERT INTO history (created_at, source, text, byte_len, objects, digest)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(digest) DO UPDATE SET
			created_at = excluded.created_at,
			source = excluded.source,
			text = excluded.text
		RETURNING id
	`)
	if err != nil {
		return fmt.Errorf("preparing Record: %w", err)
	}

	s.stmtRecent, err = s.db.Prepare(`
		SELECT id, created_at, source, text, byte_len, objects, digest
		FROM history
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`)
	if err != nil {
		return fmt.Errorf("preparing Recent: %w", err)
	}

	return nil
}

// Record inserts e and sets e.ID. If an entry with the same digest exists,
// its timestamp, source and text are refreshed and its id is reused.
func (s *DBService) Record(e *Entry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.CreatedAt == 0 {
		e.CreatedAt = timeutil.NowNano()
	}

	err := s.stmtRecord.QueryRow(
		e.CreatedAt, e.Source, e.Text, e.ByteLen, e.Objects, e.Digest,
	).Scan(&e.ID)
	if err != nil {
		return 0, fmt.Errorf("recording history entry %s: %w", e.Digest, err)
	}
	return e.ID, nil
}

// Recent returns up to limit entries, newest first. A limit of zero or
// less means 100.
func (s *DBService) Recent(limit int) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}

	rows, err := s.stmtRecent.Query(limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Get returns the entry with the given id, or ErrNotFound.
func (s *DBService) Get(id int64) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e := &Entry{}
	err := s.db.QueryRow(`
		SELECT id, created_at, source, text, byte_len, objects, digest
		FROM history WHERE id = ?
	`, id).Scan(&e.ID, &e.CreatedAt, &e.Source, &e.Text, &e.ByteLen, &e.Objects, &e.Digest)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("getting history entry %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting history entry %d: %w", id, err)
	}
	return e, nil
}

// Count returns the number of stored entries.
func (s *DBService) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM history`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting history: %w", err)
	}
	return n, nil
}

// Prune keeps the newest keep entries and deletes the rest.
func (s *DBService) Prune(keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep < 0 {
		keep = 0
	}
	_, err := s.db.Exec(`
		DELETE FROM history WHERE id NOT IN (
			SELECT id FROM history ORDER BY created_at DESC, id DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning history to %d entries: %w", keep, err)
	}
	return nil
}

// Clear deletes every entry.
func (s *DBService) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM history`); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// Close closes the prepared statements and the connection pool.
func (s *DBService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stmt := range []*sql.Stmt{s.stmtRecord, s.stmtRecent} {
		if stmt != nil {
			stmt.Close()
		}
	}

	return s.db.Close()
}

// ============================================================
// Scan Helpers
// ============================================================

func scanEntries(rows *sql.Rows) ([]*Entry, error) {
	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(
			&e.ID, &e.CreatedAt, &e.Source, &e.Text,
			&e.ByteLen, &e.Objects, &e.Digest,
		); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
