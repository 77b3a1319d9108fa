// Package panel implements the state machine shared by every facet panel.
//
// A panel is Empty until it receives a Thought, Loading while its loader
// runs, and Populated once the loader's records arrive. Each request is
// tagged with a sequence number; a result is only applied when its number
// is still the latest one issued, so a slow load for an old Thought can
// never overwrite the records of a newer one.
package panel

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/HendryAvila/resonanz/internal/thought"
)

// --- State enum ---

// State is the lifecycle position of a panel.
type State int

const (
	Empty State = iota
	Loading
	Populated
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Loading:
		return "loading"
	case Populated:
		return "populated"
	default:
		return "unknown"
	}
}

// ErrNotPopulated is returned by Revise when the panel has no records yet.
var ErrNotPopulated = errors.New("panel is not populated")

// Loader produces a panel's records for a thought.
type Loader[T any] func(ctx context.Context, t *thought.Thought) ([]T, error)

// Snapshot is a consistent copy of a panel's state.
type Snapshot[T any] struct {
	Name    string
	State   State
	Thought *thought.Thought
	Records []T
	Seq     uint64
}

// Options configure a panel.
type Options[T any] struct {
	Name   string
	Delay  time.Duration
	Load   Loader[T]
	Logger *zap.Logger

	// OnChange is called after every state transition while the panel's
	// lock is held, so calls arrive in order. It must not block or call
	// back into the panel.
	OnChange func(Snapshot[T])
}

// Panel is one facet display. The zero value is not usable; call New.
type Panel[T any] struct {
	name     string
	delay    time.Duration
	load     Loader[T]
	logger   *zap.Logger
	onChange func(Snapshot[T])

	mu      sync.Mutex
	state   State
	thought *thought.Thought
	records []T
	seq     uint64
	cancel  context.CancelFunc
	settled chan struct{} // closed whenever state != Loading
	closed  bool

	wg sync.WaitGroup
}

// New creates an Empty panel.
func New[T any](opts Options[T]) *Panel[T] {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	settled := make(chan struct{})
	close(settled)
	return &Panel[T]{
		name:     opts.Name,
		delay:    opts.Delay,
		load:     opts.Load,
		logger:   logger.With(zap.String("panel", opts.Name)),
		onChange: opts.OnChange,
		settled:  settled,
	}
}

// Name returns the panel's facet name.
func (p *Panel[T]) Name() string { return p.name }

// SetThought points the panel at t. A nil thought empties the panel; any
// other value discards the current records and starts a new load.
func (p *Panel[T]) SetThought(t *thought.Thought) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.cancelPending()
	p.seq++
	p.thought = t
	p.records = nil

	if t == nil {
		p.logger.Debug("panel cleared", zap.Uint64("seq", p.seq))
		p.settle(Empty)
		p.mu.Unlock()
		return
	}

	p.startLocked(func(ctx context.Context) ([]T, error) {
		if err := sleep(ctx, p.delay); err != nil {
			return nil, err
		}
		return p.load(ctx, t)
	})
	p.notifyLocked()
	p.mu.Unlock()
}

// Revise reworks the current records: the panel goes back to Loading and,
// after delay, fn's result replaces the records. It fails with
// ErrNotPopulated unless the panel is Populated.
func (p *Panel[T]) Revise(delay time.Duration, fn func([]T) []T) error {
	p.mu.Lock()
	if p.closed || p.state != Populated {
		p.mu.Unlock()
		return ErrNotPopulated
	}
	p.seq++
	base := append([]T(nil), p.records...)
	p.startLocked(func(ctx context.Context) ([]T, error) {
		if err := sleep(ctx, delay); err != nil {
			return nil, err
		}
		return fn(base), nil
	})
	p.notifyLocked()
	p.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the panel's current state.
func (p *Panel[T]) Snapshot() Snapshot[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Await blocks until the panel is not Loading or ctx ends.
func (p *Panel[T]) Await(ctx context.Context) error {
	p.mu.Lock()
	ch := p.settled
	p.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels pending work and waits for it to exit. The panel ignores
// further updates.
func (p *Panel[T]) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		p.cancelPending()
		if p.state == Loading {
			close(p.settled)
		}
	}
	p.mu.Unlock()
	p.wg.Wait()
}

// --- internals ---

// startLocked enters Loading and runs work for the current sequence number.
// p.mu must be held.
func (p *Panel[T]) startLocked(work func(ctx context.Context) ([]T, error)) {
	if p.state != Loading {
		p.settled = make(chan struct{})
	}
	p.state = Loading

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	seq := p.seq
	p.logger.Debug("panel loading", zap.Uint64("seq", seq))

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer cancel()
		records, err := work(ctx)
		p.finish(seq, records, err)
	}()
}

func (p *Panel[T]) finish(seq uint64, records []T, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || seq != p.seq {
		p.logger.Debug("stale result discarded", zap.Uint64("seq", seq))
		return
	}
	if err != nil {
		p.logger.Warn("panel load failed", zap.Uint64("seq", seq), zap.Error(err))
		p.records = nil
		p.settle(Empty)
		return
	}
	p.records = records
	p.logger.Debug("panel populated", zap.Uint64("seq", seq), zap.Int("records", len(records)))
	p.settle(Populated)
}

// settle moves to s and notifies, then wakes Await callers if the panel
// was Loading. p.mu must be held.
func (p *Panel[T]) settle(s State) {
	wasLoading := p.state == Loading
	p.state = s
	p.notifyLocked()
	if wasLoading {
		close(p.settled)
	}
}

func (p *Panel[T]) cancelPending() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Panel[T]) snapshotLocked() Snapshot[T] {
	var records []T
	if p.records != nil {
		records = append([]T(nil), p.records...)
	}
	return Snapshot[T]{
		Name:    p.name,
		State:   p.state,
		Thought: p.thought,
		Records: records,
		Seq:     p.seq,
	}
}

func (p *Panel[T]) notifyLocked() {
	if p.onChange != nil {
		p.onChange(p.snapshotLocked())
	}
}

func sleep(ctx context.Context, d time.Duration) error {
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
