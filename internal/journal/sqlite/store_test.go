package sqlite_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/HendryAvila/resonanz/internal/journal"
	"github.com/HendryAvila/resonanz/internal/journal/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	dsn := "sqlite://" + filepath.Join(t.TempDir(), "journal", "resonanz.db")
	s, err := sqlite.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func entry(id, content string, at time.Time) journal.Entry {
	return journal.Entry{
		ThoughtID:      id,
		Content:        content,
		ResonanceLevel: 6.3,
		Gesamtresonanz: 63,
		SemanticFields: []string{"Bewusstsein", "Resonanz"},
		ActiveSystem:   "Lokales Modul (Janus)",
		Security:       "safe",
		CreatedAt:      at,
	}
}

var base = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func TestRecord_AndRecent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Record(ctx, entry("a", "Erster Gedanke", base)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Record(ctx, entry("b", "Zweiter Gedanke", base.Add(500*time.Millisecond))); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ThoughtID != "b" {
		t.Errorf("newest first: got %q", got[0].ThoughtID)
	}
	if !got[1].CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", got[1].CreatedAt, base)
	}
	if strings.Join(got[0].SemanticFields, ",") != "Bewusstsein,Resonanz" {
		t.Errorf("SemanticFields = %v", got[0].SemanticFields)
	}
	if got[0].Gesamtresonanz != 63 || got[0].Security != "safe" {
		t.Errorf("entry = %+v", got[0])
	}
}

func TestRecord_Duplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Record(ctx, entry("a", "x", base)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Record(ctx, entry("a", "x", base)); err == nil {
		t.Error("expected error recording the same thought twice")
	}
}

func TestRecent_Limit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for i, id := range []string{"a", "b", "c"} {
		_ = s.Record(ctx, entry(id, "Gedanke", base.Add(time.Duration(i)*time.Second)))
	}

	got, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 || got[0].ThoughtID != "c" {
		t.Errorf("got %+v", got)
	}
}

func TestSearch_MatchesContent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_ = s.Record(ctx, entry("a", "Maschinen sollen mich verstehen", base))
	_ = s.Record(ctx, entry("b", "Wie entsteht Bewusstsein", base.Add(time.Second)))

	got, err := s.Search(ctx, "maschinen", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].ThoughtID != "a" {
		t.Errorf("got %+v", got)
	}
}

func TestSearch_EmptyQueryFallsBackToRecent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_ = s.Record(ctx, entry("a", "eins", base))

	got, err := s.Search(ctx, `  "" `, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}
}

func TestSearch_NoMatches(t *testing.T) {
	s := newTestStore(t)
	got, err := s.Search(context.Background(), "nichts", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %#v, want empty non-nil slice", got)
	}
}

func TestNew_Memory(t *testing.T) {
	s, err := sqlite.New(context.Background(), "sqlite://:memory:")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()
	if err := s.Record(context.Background(), entry("m", "im Speicher", base)); err != nil {
		t.Fatalf("Record: %v", err)
	}
}

func TestNew_BadScheme(t *testing.T) {
	if _, err := sqlite.New(context.Background(), "postgres://x"); err == nil {
		t.Error("expected error for non-sqlite DSN")
	}
}
