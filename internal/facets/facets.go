// Package facets wires the five analysis panels to their simulator loaders.
package facets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/HendryAvila/resonanz/internal/panel"
	"github.com/HendryAvila/resonanz/internal/simulator"
	"github.com/HendryAvila/resonanz/internal/thought"
)

// --- Facet names ---

// Name identifies one of the five facets.
type Name string

const (
	CoreLexikon       Name = "corelexikon"
	ZielgruppenMatrix Name = "zielgruppen"
	ResonanzFilter    Name = "resonanzfilter"
	SyntaxTransformer Name = "syntaxtransformer"
	MetaInterface     Name = "metainterface"
)

// Names lists the facets in display order.
var Names = []Name{CoreLexikon, ZielgruppenMatrix, ResonanzFilter, SyntaxTransformer, MetaInterface}

var (
	ErrUnknownFacet  = errors.New("unknown facet")
	ErrUnknownSyntax = errors.New("unknown target syntax")
)

// ParseName returns the facet called s.
func ParseName(s string) (Name, error) {
	for _, n := range Names {
		if string(n) == s {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be one of: corelexikon, zielgruppen, resonanzfilter, syntaxtransformer, metainterface", ErrUnknownFacet, s)
}

// --- Delays ---

// Delays are the artificial load times of each facet.
type Delays struct {
	Lexikon          time.Duration
	Zielgruppen      time.Duration
	Resonanz         time.Duration
	Syntax           time.Duration
	SyntaxRegenerate time.Duration
	Meta             time.Duration
	MetaSecurity     time.Duration
}

// DefaultDelays returns the production load times.
func DefaultDelays() Delays {
	return Delays{
		Lexikon:          1500 * time.Millisecond,
		Zielgruppen:      1700 * time.Millisecond,
		Resonanz:         2000 * time.Millisecond,
		Syntax:           2500 * time.Millisecond,
		SyntaxRegenerate: 1500 * time.Millisecond,
		Meta:             1800 * time.Millisecond,
		MetaSecurity:     1000 * time.Millisecond,
	}
}

// --- Set ---

// Set holds one panel per facet.
type Set struct {
	Lexikon     *panel.Panel[thought.LexikonItem]
	Zielgruppen *panel.Panel[thought.ZielgruppeEntity]
	Resonanz    *panel.Panel[thought.ResonancePattern]
	Syntax      *panel.Panel[thought.TransformedSyntax]
	Meta        *panel.Panel[thought.MetaRouting]

	delays Delays
}

// NewSet creates the five panels. onChange, if set, is told which facet
// changed state; it runs under that panel's lock and must not block.
func NewSet(delays Delays, rnd simulator.Rand, logger *zap.Logger, onChange func(Name, panel.State)) *Set {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Set{
		Lexikon: panel.New(panel.Options[thought.LexikonItem]{
			Name:     string(CoreLexikon),
			Delay:    delays.Lexikon,
			Logger:   logger,
			OnChange: relay[thought.LexikonItem](CoreLexikon, onChange),
			Load: func(_ context.Context, t *thought.Thought) ([]thought.LexikonItem, error) {
				return simulator.Lexikon(t.Content, rnd), nil
			},
		}),
		Zielgruppen: panel.New(panel.Options[thought.ZielgruppeEntity]{
			Name:     string(ZielgruppenMatrix),
			Delay:    delays.Zielgruppen,
			Logger:   logger,
			OnChange: relay[thought.ZielgruppeEntity](ZielgruppenMatrix, onChange),
			Load: func(context.Context, *thought.Thought) ([]thought.ZielgruppeEntity, error) {
				return simulator.Zielgruppen().Entities, nil
			},
		}),
		Resonanz: panel.New(panel.Options[thought.ResonancePattern]{
			Name:     string(ResonanzFilter),
			Delay:    delays.Resonanz,
			Logger:   logger,
			OnChange: relay[thought.ResonancePattern](ResonanzFilter, onChange),
			Load: func(context.Context, *thought.Thought) ([]thought.ResonancePattern, error) {
				return simulator.Resonanz(rnd), nil
			},
		}),
		Syntax: panel.New(panel.Options[thought.TransformedSyntax]{
			Name:     string(SyntaxTransformer),
			Delay:    delays.Syntax,
			Logger:   logger,
			OnChange: relay[thought.TransformedSyntax](SyntaxTransformer, onChange),
			Load: func(_ context.Context, t *thought.Thought) ([]thought.TransformedSyntax, error) {
				return simulator.Syntax(t.Content), nil
			},
		}),
		Meta: panel.New(panel.Options[thought.MetaRouting]{
			Name:     string(MetaInterface),
			Delay:    delays.Meta,
			Logger:   logger,
			OnChange: relay[thought.MetaRouting](MetaInterface, onChange),
			Load: func(ctx context.Context, _ *thought.Thought) ([]thought.MetaRouting, error) {
				systems := simulator.Systems()
				// The security check runs after routing.
				if err := simulator.Sleep(ctx, delays.MetaSecurity); err != nil {
					return nil, err
				}
				return []thought.MetaRouting{{
					Systems:  systems,
					Active:   simulator.ActiveSystem(systems),
					Security: simulator.Security(rnd),
				}}, nil
			},
		}),
		delays: delays,
	}
}

func relay[T any](name Name, onChange func(Name, panel.State)) func(panel.Snapshot[T]) {
	if onChange == nil {
		return nil
	}
	return func(s panel.Snapshot[T]) { onChange(name, s.State) }
}

// SetThought points every panel at t.
func (s *Set) SetThought(t *thought.Thought) {
	s.Lexikon.SetThought(t)
	s.Zielgruppen.SetThought(t)
	s.Resonanz.SetThought(t)
	s.Syntax.SetThought(t)
	s.Meta.SetThought(t)
}

// Await blocks until no panel is Loading.
func (s *Set) Await(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Lexikon.Await(ctx) })
	g.Go(func() error { return s.Zielgruppen.Await(ctx) })
	g.Go(func() error { return s.Resonanz.Await(ctx) })
	g.Go(func() error { return s.Syntax.Await(ctx) })
	g.Go(func() error { return s.Meta.Await(ctx) })
	return g.Wait()
}

// Close stops every panel.
func (s *Set) Close() {
	s.Lexikon.Close()
	s.Zielgruppen.Close()
	s.Resonanz.Close()
	s.Syntax.Close()
	s.Meta.Close()
}

// RegenerateSyntax reworks the record for one target format. It returns
// ErrUnknownSyntax for an unrecognized format and panel.ErrNotPopulated
// while the syntax panel has nothing to regenerate.
func (s *Set) RegenerateSyntax(zielsyntax string) error {
	known := false
	for _, f := range simulator.SyntaxFormats {
		if f == zielsyntax {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w %q", ErrUnknownSyntax, zielsyntax)
	}
	return s.Syntax.Revise(s.delays.SyntaxRegenerate, func(records []thought.TransformedSyntax) []thought.TransformedSyntax {
		for i, ts := range records {
			if ts.Zielsyntax == zielsyntax {
				records[i] = simulator.Regenerate(ts)
			}
		}
		return records
	})
}

// States returns the current state of every facet.
func (s *Set) States() map[Name]panel.State {
	return map[Name]panel.State{
		CoreLexikon:       s.Lexikon.Snapshot().State,
		ZielgruppenMatrix: s.Zielgruppen.Snapshot().State,
		ResonanzFilter:    s.Resonanz.Snapshot().State,
		SyntaxTransformer: s.Syntax.Snapshot().State,
		MetaInterface:     s.Meta.Snapshot().State,
	}
}
