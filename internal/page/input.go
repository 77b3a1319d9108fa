package page

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/HendryAvila/resonanz/internal/journal"
	"github.com/HendryAvila/resonanz/internal/simulator"
	"github.com/HendryAvila/resonanz/internal/thought"
)

// BlankNotice is the validation message shown for a blank submission.
const BlankNotice = "Gedanke fehlt: Bitte gib einen Gedanken ein."

var (
	// ErrBlankThought rejects empty or whitespace-only input.
	ErrBlankThought = errors.New("blank thought")

	// ErrSubmitting rejects a submission while another one is in flight.
	ErrSubmitting = errors.New("a thought is already being analyzed")

	// ErrDiscarded reports a submission dropped because Reset ran while
	// it was being analyzed.
	ErrDiscarded = errors.New("submission discarded by reset")
)

// journalTimeout bounds a single journal write.
const journalTimeout = 5 * time.Second

// Publisher receives every new current thought. A nil thought means reset.
type Publisher interface {
	Publish(t *thought.Thought)
}

// Input turns raw text into published thoughts.
type Input struct {
	sim     *simulator.Simulator
	pub     Publisher
	journal journal.Journal // optional
	logger  *zap.Logger

	mu         sync.Mutex
	text       string
	submitting bool
	last       *thought.GedankenAnalyse
	gen        uint64 // bumped by Reset

	// pubMu orders publishing so a reset can never be followed by the
	// thought it superseded.
	pubMu sync.Mutex
}

// NewInput creates an Input. j may be nil.
func NewInput(sim *simulator.Simulator, pub Publisher, j journal.Journal, logger *zap.Logger) *Input {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Input{sim: sim, pub: pub, journal: j, logger: logger}
}

// Submit validates text, runs the simulated analysis and publishes the
// resulting thought. Blank text fails with ErrBlankThought and changes
// nothing. A second call while the first is running fails with
// ErrSubmitting.
func (in *Input) Submit(ctx context.Context, text string) (*thought.Thought, error) {
	if err := thought.ValidateContent(text); err != nil {
		if errors.Is(err, thought.ErrBlankContent) {
			return nil, ErrBlankThought
		}
		return nil, err
	}

	in.mu.Lock()
	if in.submitting {
		in.mu.Unlock()
		return nil, ErrSubmitting
	}
	in.submitting = true
	in.text = text
	gen := in.gen
	in.mu.Unlock()

	defer func() {
		in.mu.Lock()
		in.submitting = false
		in.mu.Unlock()
	}()

	analysis, err := in.sim.Analyze(ctx, text)
	if err != nil {
		return nil, err
	}
	t := thought.New(text, analysis)

	in.pubMu.Lock()
	in.mu.Lock()
	if in.gen != gen {
		in.mu.Unlock()
		in.pubMu.Unlock()
		in.logger.Debug("submission discarded after reset", zap.String("id", t.ID))
		return nil, ErrDiscarded
	}
	in.last = analysis
	in.mu.Unlock()
	in.pub.Publish(t)
	in.pubMu.Unlock()

	in.record(t, analysis)
	in.logger.Info("thought published",
		zap.String("id", t.ID),
		zap.Int("semantic_fields", len(t.SemanticFields)),
		zap.Float64("resonance_level", *t.ResonanceLevel),
	)
	return t, nil
}

// record journals t when a journal is configured. Failures are logged and
// never fail the submission.
func (in *Input) record(t *thought.Thought, a *thought.GedankenAnalyse) {
	if in.journal == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()
	if err := in.journal.Record(ctx, journal.NewEntry(t, a)); err != nil {
		in.logger.Warn("journal write failed", zap.String("id", t.ID), zap.Error(err))
	}
}

// Reset clears the input text and publishes no thought. A submission
// still being analyzed is discarded and fails with ErrDiscarded.
func (in *Input) Reset() {
	in.pubMu.Lock()
	defer in.pubMu.Unlock()

	in.mu.Lock()
	in.gen++
	in.text = ""
	in.last = nil
	in.mu.Unlock()
	in.pub.Publish(nil)
}

// Text returns the last submitted text.
func (in *Input) Text() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.text
}

// Submitting reports whether an analysis is in flight.
func (in *Input) Submitting() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.submitting
}

// LastAnalysis returns the analysis behind the current thought, or nil.
func (in *Input) LastAnalysis() *thought.GedankenAnalyse {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.last
}
