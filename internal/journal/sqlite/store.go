// Package sqlite is the embedded journal backend, using SQLite with an FTS5
// index over submitted content.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/HendryAvila/resonanz/internal/journal"
)

// openDB is swapped out in tests to exercise open failures.
var openDB = sql.Open

var _ journal.Journal = (*Store)(nil)

// Store is the SQLite journal.
type Store struct {
	db *sql.DB
}

// New opens the journal at dsn (sqlite://path), creating the parent
// directory and schema as needed.
func New(ctx context.Context, dsn string) (*Store, error) {
	path, err := parseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("journal: parsing sqlite DSN: %w", err)
	}
	if path != ":memory:" {
		dir := filepath.Dir(strings.SplitN(path, "?", 2)[0])
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("journal: create data dir: %w", err)
		}
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("journal: open database: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would get its own empty database.
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("journal: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// --- Migrations ---

func (s *Store) migrate(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS thoughts (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			thought_id      TEXT    NOT NULL UNIQUE,
			content         TEXT    NOT NULL,
			resonance_level REAL    NOT NULL DEFAULT 0,
			gesamtresonanz  INTEGER NOT NULL DEFAULT 0,
			semantic_fields TEXT    NOT NULL DEFAULT '[]',
			active_system   TEXT    NOT NULL DEFAULT '',
			security        TEXT    NOT NULL DEFAULT '',
			created_at      TEXT    NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_thoughts_created ON thoughts(created_at DESC);

		CREATE VIRTUAL TABLE IF NOT EXISTS thoughts_fts USING fts5(
			content,
			semantic_fields,
			content='thoughts',
			content_rowid='id'
		);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return err
	}

	// FTS triggers (idempotent)
	var name string
	err := s.db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='trigger' AND name='thoughts_fts_insert'",
	).Scan(&name)
	if err == sql.ErrNoRows {
		triggers := `
			CREATE TRIGGER thoughts_fts_insert AFTER INSERT ON thoughts BEGIN
				INSERT INTO thoughts_fts(rowid, content, semantic_fields)
				VALUES (new.id, new.content, new.semantic_fields);
			END;

			CREATE TRIGGER thoughts_fts_delete AFTER DELETE ON thoughts BEGIN
				INSERT INTO thoughts_fts(thoughts_fts, rowid, content, semantic_fields)
				VALUES ('delete', old.id, old.content, old.semantic_fields);
			END;
		`
		if _, err := s.db.ExecContext(ctx, triggers); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	return nil
}

// --- Writes ---

// Record appends e. Recording the same thought twice is an error.
func (s *Store) Record(ctx context.Context, e journal.Entry) error {
	fields, err := json.Marshal(e.SemanticFields)
	if err != nil {
		return fmt.Errorf("journal: encode semantic fields: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO thoughts (thought_id, content, resonance_level, gesamtresonanz,
		                      semantic_fields, active_system, security, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ThoughtID, e.Content, e.ResonanceLevel, e.Gesamtresonanz,
		string(fields), e.ActiveSystem, e.Security, formatTime(e.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("journal: thought %s already recorded", e.ThoughtID)
		}
		return fmt.Errorf("journal: insert thought: %w", err)
	}
	return nil
}

// --- Reads ---

const entryColumns = `t.id, t.thought_id, t.content, t.resonance_level, t.gesamtresonanz,
	t.semantic_fields, t.active_system, t.security, t.created_at`

// Recent returns the newest entries first.
func (s *Store) Recent(ctx context.Context, limit int) ([]journal.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM thoughts t ORDER BY t.created_at DESC, t.id DESC LIMIT ?",
		journal.ClampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("journal: recent: %w", err)
	}
	return scanEntries(rows)
}

// Search runs a full-text query over content and semantic fields. An empty
// query falls back to Recent.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]journal.Entry, error) {
	ftsQuery := sanitizeFTS(query)
	if ftsQuery == "" {
		return s.Recent(ctx, limit)
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+entryColumns+`
		FROM thoughts_fts fts
		JOIN thoughts t ON t.id = fts.rowid
		WHERE thoughts_fts MATCH ?
		ORDER BY fts.rank
		LIMIT ?`,
		ftsQuery, journal.ClampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("journal: search: %w", err)
	}
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]journal.Entry, error) {
	defer func() { _ = rows.Close() }()

	entries := []journal.Entry{}
	for rows.Next() {
		var (
			e       journal.Entry
			fields  string
			created string
		)
		if err := rows.Scan(&e.ID, &e.ThoughtID, &e.Content, &e.ResonanceLevel, &e.Gesamtresonanz,
			&fields, &e.ActiveSystem, &e.Security, &created); err != nil {
			return nil, fmt.Errorf("journal: scan entry: %w", err)
		}
		if err := json.Unmarshal([]byte(fields), &e.SemanticFields); err != nil {
			return nil, fmt.Errorf("journal: decode semantic fields: %w", err)
		}
		t, err := time.Parse(timeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("journal: parse created_at: %w", err)
		}
		e.CreatedAt = t
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// --- Helpers ---

// timeLayout has fixed-width fractions so stored values sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// sanitizeFTS wraps each word in quotes for safe FTS5 queries.
// "was ist bewusstsein" -> `"was" "ist" "bewusstsein"`
func sanitizeFTS(query string) string {
	var words []string
	for _, w := range strings.Fields(query) {
		w = strings.ReplaceAll(w, `"`, "")
		if w != "" {
			words = append(words, `"`+w+`"`)
		}
	}
	return strings.Join(words, " ")
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
