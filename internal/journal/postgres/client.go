// Package postgres is the server-backed journal, for deployments that share
// one journal between several page instances.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HendryAvila/resonanz/internal/journal"
)

var _ journal.Journal = (*Client)(nil)

// Client is the PostgreSQL journal.
type Client struct {
	pool *pgxpool.Pool
}

// New connects to dsn and ensures the schema exists.
func New(ctx context.Context, dsn string) (*Client, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	c := &Client{pool: pool}
	if err := c.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return c, nil
}

// Close releases the pool.
func (c *Client) Close() error {
	c.pool.Close()
	return nil
}

// EnsureSchema creates the journal table and its search index. It is
// idempotent.
func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
CREATE TABLE IF NOT EXISTS thoughts (
    id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    thought_id      TEXT NOT NULL UNIQUE,
    content         TEXT NOT NULL,
    resonance_level DOUBLE PRECISION NOT NULL DEFAULT 0,
    gesamtresonanz  INTEGER NOT NULL DEFAULT 0,
    semantic_fields TEXT[] NOT NULL DEFAULT '{}',
    active_system   TEXT NOT NULL DEFAULT '',
    security        TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL,
    search_vector   TSVECTOR GENERATED ALWAYS AS (to_tsvector('german', content)) STORED
);

CREATE INDEX IF NOT EXISTS idx_thoughts_search ON thoughts USING GIN (search_vector);
CREATE INDEX IF NOT EXISTS idx_thoughts_created ON thoughts (created_at DESC);
`
	if _, err := c.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring journal schema: %w", err)
	}
	return nil
}

// Record appends e.
func (c *Client) Record(ctx context.Context, e journal.Entry) error {
	fields := e.SemanticFields
	if fields == nil {
		fields = []string{}
	}
	_, err := c.pool.Exec(ctx, `
INSERT INTO thoughts (thought_id, content, resonance_level, gesamtresonanz,
                      semantic_fields, active_system, security, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ThoughtID, e.Content, e.ResonanceLevel, e.Gesamtresonanz,
		fields, e.ActiveSystem, e.Security, e.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("thought %s already recorded", e.ThoughtID)
		}
		return fmt.Errorf("inserting thought: %w", err)
	}
	return nil
}

const entryColumns = `id, thought_id, content, resonance_level, gesamtresonanz,
    semantic_fields, active_system, security, created_at`

// Recent returns the newest entries first.
func (c *Client) Recent(ctx context.Context, limit int) ([]journal.Entry, error) {
	rows, err := c.pool.Query(ctx,
		"SELECT "+entryColumns+" FROM thoughts ORDER BY created_at DESC, id DESC LIMIT $1",
		journal.ClampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("listing thoughts: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

// Search ranks entries against a web-style German full-text query. An
// empty query falls back to Recent.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]journal.Entry, error) {
	if isBlank(query) {
		return c.Recent(ctx, limit)
	}
	rows, err := c.pool.Query(ctx, `
SELECT `+entryColumns+`
FROM thoughts
WHERE search_vector @@ websearch_to_tsquery('german', $1)
   OR $1 = ANY (semantic_fields)
ORDER BY ts_rank(search_vector, websearch_to_tsquery('german', $1)) DESC, created_at DESC
LIMIT $2`,
		query, journal.ClampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("searching thoughts: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

type scanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func collect(rows scanner) ([]journal.Entry, error) {
	entries := []journal.Entry{}
	for rows.Next() {
		var e journal.Entry
		if err := rows.Scan(&e.ID, &e.ThoughtID, &e.Content, &e.ResonanceLevel, &e.Gesamtresonanz,
			&e.SemanticFields, &e.ActiveSystem, &e.Security, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning thought: %w", err)
		}
		if e.SemanticFields == nil {
			e.SemanticFields = []string{}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating thoughts: %w", err)
	}
	return entries, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
