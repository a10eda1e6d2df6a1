// SPDX-License-Identifier: MIT

// Package pgsrc loads temporal events from PostgreSQL through pgx.
//
// The configured query must return (from TEXT, to TEXT, time BIGINT) rows.
// Timestamps stored as timestamptz can be converted in SQL, for example
// EXTRACT(EPOCH FROM at)::bigint.
package pgsrc

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/katalvlaran/tempocycle/source"
)

// DefaultQuery selects every row of an events(src, dst, ts) table.
const DefaultQuery = `SELECT src, dst, ts FROM events ORDER BY src, dst, ts`

// Querier is the subset of *pgxpool.Pool (and *pgx.Conn) used by Source.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Option configures a Source.
type Option func(*Source)

// WithQuery replaces DefaultQuery. args are bound to $1, $2, ...
func WithQuery(query string, args ...any) Option {
	return func(s *Source) {
		s.query = query
		s.args = args
	}
}

// Source reads records through a Querier.
type Source struct {
	db    Querier
	pool  *pgxpool.Pool // set by Connect, closed by Close
	query string
	args  []any
}

// New wraps an existing pool or connection.
func New(db Querier, opts ...Option) *Source {
	s := &Source{db: db, query: DefaultQuery}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Connect opens a pool for url (a postgres:// URL or DSN).
func Connect(ctx context.Context, url string, opts ...Option) (*Source, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("pgsrc: connect: %w", err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pgsrc: ping: %w", err)
	}

	s := New(pool, opts...)
	s.pool = pool

	return s, nil
}

// Close releases the pool opened by Connect.
func (s *Source) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Records runs the configured query.
func (s *Source) Records(ctx context.Context) ([]source.Record, error) {
	rows, err := s.db.Query(ctx, s.query, s.args...)
	if err != nil {
		return nil, fmt.Errorf("pgsrc: query: %w", err)
	}
	defer rows.Close()

	var out []source.Record
	for rows.Next() {
		var r source.Record
		if err = rows.Scan(&r.From, &r.To, &r.Time); err != nil {
			return nil, fmt.Errorf("%w: pgsrc: scan: %w", source.ErrMalformed, err)
		}
		out = append(out, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgsrc: rows: %w", err)
	}

	return out, nil
}
