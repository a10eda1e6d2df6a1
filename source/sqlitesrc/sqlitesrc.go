// SPDX-License-Identifier: MIT

// Package sqlitesrc loads temporal events from a SQLite database.
//
// The default layout is a single table:
//
//	CREATE TABLE events (src TEXT NOT NULL, dst TEXT NOT NULL, ts INTEGER NOT NULL)
//
// Any query returning (from TEXT, to TEXT, time INTEGER) rows can be used
// instead through WithQuery.
package sqlitesrc

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/katalvlaran/tempocycle/source"
)

// DefaultQuery selects every row of the default events table.
const DefaultQuery = `SELECT src, dst, ts FROM events ORDER BY src, dst, ts`

const schemaSQL = `
CREATE TABLE IF NOT EXISTS events (
	src TEXT    NOT NULL,
	dst TEXT    NOT NULL,
	ts  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS events_src_dst ON events (src, dst);
`

// Option configures a Source.
type Option func(*Source)

// WithQuery replaces DefaultQuery. args are bound to its placeholders.
func WithQuery(query string, args ...any) Option {
	return func(s *Source) {
		s.query = query
		s.args = args
	}
}

// Source reads records from a SQLite database.
type Source struct {
	db    *sql.DB
	owned bool
	query string
	args  []any
}

// New wraps an already open database. Close leaves db open.
func New(db *sql.DB, opts ...Option) *Source {
	s := &Source{db: db, query: DefaultQuery}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Open opens (or creates) the database file at path.
func Open(path string, opts ...Option) (*Source, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlitesrc: open %q: %w", path, err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlitesrc: connect %q: %w", path, err)
	}
	// SQLite allows one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	s := New(db, opts...)
	s.owned = true

	return s, nil
}

// DB returns the underlying handle.
func (s *Source) DB() *sql.DB { return s.db }

// Close closes the database if Open created it.
func (s *Source) Close() error {
	if !s.owned || s.db == nil {
		return nil
	}

	return s.db.Close()
}

// CreateSchema creates the default events table. It is idempotent.
func (s *Source) CreateSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("sqlitesrc: create schema: %w", err)
	}

	return nil
}

// Insert appends recs to the default events table in one transaction.
func (s *Source) Insert(ctx context.Context, recs []source.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlitesrc: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO events (src, dst, ts) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sqlitesrc: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range recs {
		if _, err = stmt.ExecContext(ctx, r.From, r.To, r.Time); err != nil {
			return fmt.Errorf("sqlitesrc: insert record %d: %w", i, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("sqlitesrc: commit: %w", err)
	}

	return nil
}

// Records runs the configured query.
func (s *Source) Records(ctx context.Context) ([]source.Record, error) {
	rows, err := s.db.QueryContext(ctx, s.query, s.args...)
	if err != nil {
		return nil, fmt.Errorf("sqlitesrc: query: %w", err)
	}
	defer rows.Close()

	var out []source.Record
	for rows.Next() {
		var r source.Record
		if err = rows.Scan(&r.From, &r.To, &r.Time); err != nil {
			return nil, fmt.Errorf("%w: sqlitesrc: scan: %w", source.ErrMalformed, err)
		}
		out = append(out, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlitesrc: rows: %w", err)
	}

	return out, nil
}
