// Package jobs provides the channel conduit between background work and the
// UI loop. Each category holds at most one outstanding job; duplicates are
// rejected at spawn time, never queued.
package jobs

import (
	"errors"
	"sync"

	"github.com/ratcrate/ratcrate-tui/internal/logging/events"
)

// Category identifies a class of background work.
type Category int

const (
	FetchPrimary Category = iota
	FetchSecondary
	Install
)

func (c Category) String() string {
	switch c {
	case FetchPrimary:
		return "fetch-primary"
	case FetchSecondary:
		return "fetch-secondary"
	case Install:
		return "install"
	default:
		return "unknown"
	}
}

// Msg is a message emitted by a job. Terminal messages release the
// category slot so a new job of that category may be spawned.
type Msg interface {
	Terminal() bool
}

// Failure is a terminal job error. The bus synthesizes one when a job's
// channel closes before any terminal message was observed.
type Failure struct {
	Reason string
}

func (Failure) Terminal() bool { return true }

// Task is the body of a background job. It reports through emit and must
// finish with a terminal message.
type Task func(emit func(Msg))

// ErrBusy is returned by Spawn while a job of the category is outstanding.
var ErrBusy = errors.New("a job of this category is already running")

const slotBuffer = 16

// Bus tracks one optional receiver per category.
type Bus struct {
	mu    sync.Mutex
	slots map[Category]<-chan Msg
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{slots: make(map[Category]<-chan Msg)}
}

// Spawn starts task on a new goroutine and stores the receiving end of its
// channel. The check and the slot store happen under one lock so two
// concurrent spawns of the same category cannot both succeed.
func (b *Bus) Spawn(cat Category, task Task) error {
	b.mu.Lock()
	if _, occupied := b.slots[cat]; occupied {
		b.mu.Unlock()
		events.Job.Rejected(cat.String())
		return ErrBusy
	}
	ch := make(chan Msg, slotBuffer)
	b.slots[cat] = ch
	b.mu.Unlock()
	events.Job.Spawn(cat.String())
	go func() {
		defer close(ch)
		task(func(m Msg) { ch <- m })
	}()
	return nil
}

// Drain returns at most one pending message for the category without
// blocking. Observing a terminal message clears the slot; a channel that
// closed before delivering one yields a synthesized Failure.
func (b *Bus) Drain(cat Category) (Msg, bool) {
	b.mu.Lock()
	ch, ok := b.slots[cat]
	b.mu.Unlock()
	if !ok {
		return nil, false
	}
	select {
	case msg, open := <-ch:
		if !open {
			b.clear(cat)
			events.Job.Disconnected(cat.String())
			return Failure{Reason: "job ended unexpectedly"}, true
		}
		if msg.Terminal() {
			b.clear(cat)
			events.Job.Finished(cat.String())
		}
		return msg, true
	default:
		return nil, false
	}
}

// Busy reports whether a job of the category is outstanding.
func (b *Bus) Busy(cat Category) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, occupied := b.slots[cat]
	return occupied
}

func (b *Bus) clear(cat Category) {
	b.mu.Lock()
	delete(b.slots, cat)
	b.mu.Unlock()
}
