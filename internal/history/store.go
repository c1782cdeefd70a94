// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps recent scrape and search results in a local SQLite
// database. The scraping core never reads it; commands save a record after
// each run and the history subcommands list, show, prune and export them.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/email-scout/pkg/types"
)

// Kind identifies what a record holds.
type Kind string

const (
	KindSingle Kind = "single"
	KindBatch  Kind = "batch"
	KindSearch Kind = "search"
)

// Kinds lists every record kind.
var Kinds = []Kind{KindSingle, KindBatch, KindSearch}

// ParseKind validates s. The empty string is accepted and means all kinds.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case "", KindSingle, KindBatch, KindSearch:
		return k, nil
	default:
		return "", fmt.Errorf("unknown record kind %q (want single, batch or search)", s)
	}
}

// Default retention per kind.
const (
	DefaultKeepSingle = 10
	DefaultKeepBatch  = 5
	DefaultKeepSearch = 5
)

var (
	ErrNotFound  = errors.New("history record not found")
	ErrAmbiguous = errors.New("history id prefix matches more than one record")
)

// Record is one saved result. Payload is the JSON of the SingleResult,
// BatchReport or SearchReport it was built from.
type Record struct {
	ID        string          `json:"id" yaml:"id"`
	Kind      Kind            `json:"kind" yaml:"kind"`
	CreatedAt time.Time       `json:"created_at" yaml:"created_at"`
	Label     string          `json:"label" yaml:"label"`
	Count     int             `json:"count" yaml:"count"`
	Payload   json.RawMessage `json:"payload" yaml:"-"`
}

// Store manages the history database.
type Store struct {
	db   *sql.DB
	keep map[Kind]int

	// now is swapped in tests.
	now func() time.Time
}

// Open opens or creates the history database at cfg.Path and creates the
// schema if it does not exist.
func Open(cfg types.HistoryConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("history database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db: db,
		keep: map[Kind]int{
			KindSingle: orDefault(cfg.KeepSingle, DefaultKeepSingle),
			KindBatch:  orDefault(cfg.KeepBatch, DefaultKeepBatch),
			KindSearch: orDefault(cfg.KeepSearch, DefaultKeepSearch),
		},
		now: time.Now,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			kind TEXT NOT NULL,
			created_at TEXT NOT NULL,
			label TEXT,
			count INTEGER,
			payload TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_kind ON records(kind)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save stores r, assigning an ID and creation time when they are unset,
// and prunes the oldest records of the same kind beyond the retention cap.
func (s *Store) Save(ctx context.Context, r Record) (Record, error) {
	if _, err := ParseKind(string(r.Kind)); err != nil || r.Kind == "" {
		return r, fmt.Errorf("saving record: invalid kind %q", r.Kind)
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}
	r.CreatedAt = r.CreatedAt.UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return r, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO records (id, kind, created_at, label, count, payload) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, string(r.Kind), r.CreatedAt.Format(time.RFC3339Nano), r.Label, r.Count, string(r.Payload),
	)
	if err != nil {
		return r, fmt.Errorf("inserting record: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM records WHERE kind = ? AND rowid NOT IN (
			SELECT rowid FROM records WHERE kind = ? ORDER BY rowid DESC LIMIT ?
		)`,
		string(r.Kind), string(r.Kind), s.keep[r.Kind],
	)
	if err != nil {
		return r, fmt.Errorf("pruning %s records: %w", r.Kind, err)
	}

	return r, tx.Commit()
}

// List returns records newest first. An empty kind lists every kind.
func (s *Store) List(ctx context.Context, kind Kind) ([]Record, error) {
	q := `SELECT id, kind, created_at, label, count, payload FROM records`
	var args []any
	if kind != "" {
		q += ` WHERE kind = ?`
		args = append(args, string(kind))
	}
	q += ` ORDER BY rowid DESC`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Get returns the record whose ID is id or starts with id.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	if id == "" {
		return Record{}, ErrNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, created_at, label, count, payload FROM records
		 WHERE id = ? OR substr(id, 1, ?) = ? ORDER BY id = ? DESC LIMIT 2`,
		id, len(id), id, id)
	if err != nil {
		return Record{}, fmt.Errorf("querying record: %w", err)
	}
	defer rows.Close()

	var found []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return Record{}, err
		}
		found = append(found, r)
	}
	if err := rows.Err(); err != nil {
		return Record{}, err
	}

	switch {
	case len(found) == 0:
		return Record{}, ErrNotFound
	case found[0].ID == id || len(found) == 1:
		return found[0], nil
	default:
		return Record{}, ErrAmbiguous
	}
}

// Remove deletes the record identified as in Get.
func (s *Store) Remove(ctx context.Context, id string) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, r.ID); err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	return nil
}

// Clear deletes every record of kind, or all records when kind is empty,
// and returns how many were removed.
func (s *Store) Clear(ctx context.Context, kind Kind) (int64, error) {
	q := `DELETE FROM records`
	var args []any
	if kind != "" {
		q += ` WHERE kind = ?`
		args = append(args, string(kind))
	}
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("clearing records: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		r             Record
		kind, created string
		label         sql.NullString
		count         sql.NullInt64
		payload       string
	)
	if err := sc.Scan(&r.ID, &kind, &created, &label, &count, &payload); err != nil {
		return r, fmt.Errorf("scanning record: %w", err)
	}
	r.Kind = Kind(kind)
	r.Label = label.String
	r.Count = int(count.Int64)
	r.Payload = json.RawMessage(payload)
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return r, fmt.Errorf("record %s: bad created_at %q: %w", r.ID, created, err)
	}
	r.CreatedAt = t
	return r, nil
}
