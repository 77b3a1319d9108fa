package page

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/HendryAvila/resonanz/internal/docs"
	"github.com/HendryAvila/resonanz/internal/facets"
	"github.com/HendryAvila/resonanz/internal/panel"
	"github.com/HendryAvila/resonanz/internal/simulator"
	"github.com/HendryAvila/resonanz/internal/thought"
)

// --- Tabs ---

// Tab selects what the page shows.
type Tab string

const (
	TabVisualisierung Tab = "visualisierung"
	TabModule         Tab = "module"
)

// ErrUnknownTab is returned by SetTab for an unrecognized tab.
var ErrUnknownTab = errors.New("unknown tab")

// DefaultRevealDelay is how long the page shows only the first panel.
const DefaultRevealDelay = time.Second

// --- Events ---

// EventKind tells listeners what changed.
type EventKind int

const (
	EventThought EventKind = iota // current thought replaced
	EventPanel                    // a panel changed state
	EventReveal                   // all panels became visible
	EventTab                      // active tab changed
)

// Event is delivered to ComposerOptions.OnEvent. It must be handled
// without blocking.
type Event struct {
	Kind  EventKind
	Facet facets.Name
	State panel.State
}

// ComposerOptions configure a Composer.
type ComposerOptions struct {
	Delays      facets.Delays
	RevealDelay time.Duration
	Rand        simulator.Rand
	Logger      *zap.Logger
	OnEvent     func(Event)
}

// --- Composer ---

// Composer owns the page's current thought and hands it, read-only, to
// the five facet panels.
type Composer struct {
	panels      *facets.Set
	revealDelay time.Duration
	logger      *zap.Logger
	onEvent     func(Event)

	pubMu    sync.Mutex // orders Publish calls end to end
	mu       sync.Mutex
	current  *thought.Thought
	tab      Tab
	revealed bool
	started  bool

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewComposer creates a Composer with empty panels on the visualisation tab.
func NewComposer(opts ComposerOptions) *Composer {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Composer{
		revealDelay: opts.RevealDelay,
		logger:      logger,
		onEvent:     opts.OnEvent,
		tab:         TabVisualisierung,
		stop:        make(chan struct{}),
	}
	c.panels = facets.NewSet(opts.Delays, opts.Rand, logger, func(n facets.Name, s panel.State) {
		c.emit(Event{Kind: EventPanel, Facet: n, State: s})
	})
	return c
}

// Start begins the staggered reveal: only the lexicon panel is visible
// until the reveal delay has passed. Calling Start again has no effect.
func (c *Composer) Start() {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if c.revealDelay > 0 {
			timer := time.NewTimer(c.revealDelay)
			defer timer.Stop()
			select {
			case <-c.stop:
				return
			case <-timer.C:
			}
		}
		c.mu.Lock()
		c.revealed = true
		c.mu.Unlock()
		c.emit(Event{Kind: EventReveal})
	}()
}

// Publish makes t the current thought and fans it out to every panel.
// A nil t resets the page.
func (c *Composer) Publish(t *thought.Thought) {
	c.pubMu.Lock()
	defer c.pubMu.Unlock()

	c.mu.Lock()
	c.current = t
	c.mu.Unlock()

	if t == nil {
		c.logger.Debug("thought cleared")
	} else {
		c.logger.Debug("thought published", zap.String("id", t.ID))
	}
	c.emit(Event{Kind: EventThought})
	c.panels.SetThought(t)
}

// Current returns the current thought, or nil.
func (c *Composer) Current() *thought.Thought {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Tab returns the active tab.
func (c *Composer) Tab() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tab
}

// SetTab switches tabs by name.
func (c *Composer) SetTab(name string) error {
	tab := Tab(name)
	if tab != TabVisualisierung && tab != TabModule {
		return fmt.Errorf("%w %q: must be one of: visualisierung, module", ErrUnknownTab, name)
	}
	c.mu.Lock()
	c.tab = tab
	c.mu.Unlock()
	c.emit(Event{Kind: EventTab})
	return nil
}

// Visible reports whether a facet's panel is shown yet. Visibility never
// affects the panel's data.
func (c *Composer) Visible(name facets.Name) bool {
	if name == facets.CoreLexikon {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.revealed
}

// Panels exposes the facet panels for rendering.
func (c *Composer) Panels() *facets.Set { return c.panels }

// AwaitPanels blocks until no panel is loading.
func (c *Composer) AwaitPanels(ctx context.Context) error {
	return c.panels.Await(ctx)
}

// RegenerateSyntax reworks the syntax record for one target format.
func (c *Composer) RegenerateSyntax(zielsyntax string) error {
	return c.panels.RegenerateSyntax(zielsyntax)
}

// Modules returns the documentation shown on the module tab.
func (c *Composer) Modules() (string, error) {
	return docs.Markdown()
}

// Close stops the reveal timer and every panel.
func (c *Composer) Close() {
	c.mu.Lock()
	select {
	case <-c.stop:
	default:
		close(c.stop)
	}
	c.mu.Unlock()
	c.wg.Wait()
	c.panels.Close()
}

func (c *Composer) emit(e Event) {
	if c.onEvent != nil {
		c.onEvent(e)
	}
}
