package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/HendryAvila/resonanz/internal/page"
)

// eventMsg carries a page event into the update loop.
type eventMsg page.Event

// Bridge moves page events into the bubbletea program. Send never blocks:
// page callbacks run under panel locks, and every event only triggers a
// redraw from fresh snapshots, so dropping one when the buffer is full
// loses nothing.
type Bridge struct {
	ch   chan page.Event
	done chan struct{}
	once sync.Once
}

// NewBridge creates a Bridge buffering up to size events.
func NewBridge(size int) *Bridge {
	if size < 1 {
		size = 1
	}
	return &Bridge{
		ch:   make(chan page.Event, size),
		done: make(chan struct{}),
	}
}

// Send queues e, dropping it when the buffer is full.
func (b *Bridge) Send(e page.Event) {
	select {
	case b.ch <- e:
	default:
	}
}

// Next returns a command that waits for the next event. After Close it
// yields nil.
func (b *Bridge) Next() tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-b.ch:
			return eventMsg(e)
		case <-b.done:
			return nil
		}
	}
}

// Close releases any pending Next.
func (b *Bridge) Close() {
	b.once.Do(func() { close(b.done) })
}
