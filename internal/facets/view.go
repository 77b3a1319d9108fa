package facets

import (
	"github.com/HendryAvila/resonanz/internal/panel"
	"github.com/HendryAvila/resonanz/internal/simulator"
	"github.com/HendryAvila/resonanz/internal/thought"
)

// View is a serializable picture of one panel, served over MCP and
// rendered by the terminal page.
type View struct {
	Facet     Name   `json:"facet"`
	State     string `json:"state"`
	ThoughtID string `json:"thoughtId,omitempty"`
	Seq       uint64 `json:"seq"`
	Records   any    `json:"records"`

	// Facet-specific summaries, set once the panel is populated.
	Gesamtresonanz *int            `json:"gesamtresonanz,omitempty"`
	Durchschnitt   *thought.Scores `json:"durchschnitt,omitempty"`
}

// View returns the current picture of the named facet.
func (s *Set) View(name Name) (View, error) {
	switch name {
	case CoreLexikon:
		return viewOf(name, s.Lexikon.Snapshot()), nil
	case ZielgruppenMatrix:
		v := viewOf(name, s.Zielgruppen.Snapshot())
		if v.State == panel.Populated.String() {
			avg := simulator.Zielgruppen().Durchschnitt
			v.Durchschnitt = &avg
		}
		return v, nil
	case ResonanzFilter:
		snap := s.Resonanz.Snapshot()
		v := viewOf(name, snap)
		if snap.State == panel.Populated {
			g := simulator.Gesamtresonanz(snap.Records)
			v.Gesamtresonanz = &g
		}
		return v, nil
	case SyntaxTransformer:
		return viewOf(name, s.Syntax.Snapshot()), nil
	case MetaInterface:
		return viewOf(name, s.Meta.Snapshot()), nil
	default:
		_, err := ParseName(string(name))
		return View{}, err
	}
}

// Views returns every facet in display order.
func (s *Set) Views() []View {
	views := make([]View, 0, len(Names))
	for _, n := range Names {
		v, _ := s.View(n)
		views = append(views, v)
	}
	return views
}

func viewOf[T any](name Name, snap panel.Snapshot[T]) View {
	v := View{
		Facet: name,
		State: snap.State.String(),
		Seq:   snap.Seq,
	}
	if snap.Thought != nil {
		v.ThoughtID = snap.Thought.ID
	}
	records := snap.Records
	if records == nil {
		records = []T{}
	}
	v.Records = records
	return v
}
