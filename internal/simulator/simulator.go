// Package simulator produces the simulated analysis behind every facet.
//
// Nothing here inspects meaning. The generators return fixed sample records,
// a few fields drawn from a random source, and the aggregate Analyze call
// waits for a configurable delay before answering, standing in for a model
// that does not exist.
package simulator

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/HendryAvila/resonanz/internal/thought"
)

// DefaultAnalyzeDelay is how long Analyze pretends to think.
const DefaultAnalyzeDelay = 2 * time.Second

// Config holds simulator settings.
type Config struct {
	AnalyzeDelay time.Duration
}

// DefaultConfig returns the production simulator settings.
func DefaultConfig() Config {
	return Config{AnalyzeDelay: DefaultAnalyzeDelay}
}

// Simulator builds GedankenAnalyse values from free text.
type Simulator struct {
	cfg    Config
	rnd    Rand
	logger *zap.Logger
}

// New creates a Simulator. A nil rnd gets a clock-seeded source; a nil
// logger discards output.
func New(cfg Config, rnd Rand, logger *zap.Logger) *Simulator {
	if rnd == nil {
		rnd = NewRand(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{cfg: cfg, rnd: rnd, logger: logger}
}

// Rand exposes the simulator's random source so facet loaders draw from the
// same seeded stream.
func (s *Simulator) Rand() Rand { return s.rnd }

// Analyze waits for the configured delay and returns a full analysis of text.
// Any text is accepted, including the empty string. The only error is the
// context's, when it ends before the delay has elapsed.
func (s *Simulator) Analyze(ctx context.Context, text string) (*thought.GedankenAnalyse, error) {
	if err := Sleep(ctx, s.cfg.AnalyzeDelay); err != nil {
		return nil, err
	}

	a := &thought.GedankenAnalyse{
		CoreLexikon:       Lexikon(text, s.rnd),
		Zielgruppen:       Zielgruppen(),
		Resonanzfilter:    Resonanzfilter(s.rnd),
		SyntaxTransformer: Syntax(text),
		MetaInterface:     Routing(s.rnd),
	}
	s.logger.Debug("analysis simulated",
		zap.Int("lexikon", len(a.CoreLexikon)),
		zap.Int("gesamtresonanz", a.Resonanzfilter.Gesamtresonanz),
		zap.String("security", string(a.MetaInterface.Security)),
	)
	return a, nil
}

// Sleep blocks for d or until ctx is done. A non-positive d returns at once
// unless ctx is already cancelled.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
