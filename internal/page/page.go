// Package page assembles the thought input, the chat side panel and the
// composer that drives the five facet panels.
package page

import (
	"time"

	"go.uber.org/zap"

	"github.com/HendryAvila/resonanz/internal/facets"
	"github.com/HendryAvila/resonanz/internal/journal"
	"github.com/HendryAvila/resonanz/internal/simulator"
)

// Config holds everything needed to build a Page.
type Config struct {
	Simulator   simulator.Config
	Panels      facets.Delays
	RevealDelay time.Duration
	ChatDelay   time.Duration
	Seed        uint64          // 0 seeds from the clock
	Journal     journal.Journal // optional
	OnEvent     func(Event)
}

// DefaultConfig returns production timings with no journal.
func DefaultConfig() Config {
	return Config{
		Simulator:   simulator.DefaultConfig(),
		Panels:      facets.DefaultDelays(),
		RevealDelay: DefaultRevealDelay,
		ChatDelay:   DefaultChatDelay,
	}
}

// Page is one running instance of the resonance page.
type Page struct {
	Input    *Input
	Chat     *Chat
	Composer *Composer
}

// New wires a Page. Every component draws from one seeded random source.
func New(cfg Config, logger *zap.Logger) *Page {
	if logger == nil {
		logger = zap.NewNop()
	}
	rnd := simulator.NewRand(cfg.Seed)
	sim := simulator.New(cfg.Simulator, rnd, logger.Named("simulator"))
	composer := NewComposer(ComposerOptions{
		Delays:      cfg.Panels,
		RevealDelay: cfg.RevealDelay,
		Rand:        rnd,
		Logger:      logger.Named("panels"),
		OnEvent:     cfg.OnEvent,
	})
	return &Page{
		Input:    NewInput(sim, composer, cfg.Journal, logger.Named("input")),
		Chat:     NewChat(cfg.ChatDelay, rnd, logger.Named("chat")),
		Composer: composer,
	}
}

// Close stops all background work. The journal is owned by the caller.
func (p *Page) Close() {
	p.Composer.Close()
}
