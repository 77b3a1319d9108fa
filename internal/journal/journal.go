// Package journal records submitted thoughts for later review.
//
// The journal is an audit log only. Entries are written once per
// submission and are never read back into a running page.
package journal

import (
	"context"
	"time"

	"github.com/HendryAvila/resonanz/internal/thought"
)

// Entry is one journaled submission.
type Entry struct {
	ID             int64     `json:"id"`
	ThoughtID      string    `json:"thought_id"`
	Content        string    `json:"content"`
	ResonanceLevel float64   `json:"resonance_level"`
	Gesamtresonanz int       `json:"gesamtresonanz"`
	SemanticFields []string  `json:"semantic_fields"`
	ActiveSystem   string    `json:"active_system"`
	Security       string    `json:"security"`
	CreatedAt      time.Time `json:"created_at"`
}

// Journal is implemented by the sqlite and postgres backends.
type Journal interface {
	Record(ctx context.Context, e Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Search(ctx context.Context, query string, limit int) ([]Entry, error)
	Close() error
}

// DefaultLimit caps list results when the caller passes no limit.
const DefaultLimit = 20

// MaxLimit is the largest accepted limit.
const MaxLimit = 200

// ClampLimit applies DefaultLimit and MaxLimit.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NewEntry builds the journal entry for a published thought and its analysis.
func NewEntry(t *thought.Thought, a *thought.GedankenAnalyse) Entry {
	e := Entry{
		ThoughtID:      t.ID,
		Content:        t.Content,
		SemanticFields: append([]string{}, t.SemanticFields...),
		CreatedAt:      t.Timestamp,
	}
	if t.ResonanceLevel != nil {
		e.ResonanceLevel = *t.ResonanceLevel
	}
	if a != nil {
		e.Gesamtresonanz = a.Resonanzfilter.Gesamtresonanz
		e.ActiveSystem = a.MetaInterface.Active
		e.Security = string(a.MetaInterface.Security)
	}
	return e
}
