// Package events carries domain notifications (signups, logins, note
// changes) from the services to observers such as the audit log. Emission
// never blocks the request that produced the event.
package events

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

// Kind names a domain event.
type Kind string

const (
	KindSignup     Kind = "signup"
	KindLogin      Kind = "login"
	KindCreateNote Kind = "createNote"
	KindUpdateNote Kind = "updateNote"
	KindDeleteNote Kind = "deleteNote"
)

// Event is a single notification. SubjectID is the user id for account
// events and the note id for note events; UserID is always the acting user.
type Event struct {
	Kind      Kind
	SubjectID string
	UserID    string
	At        time.Time
}

// Publisher is what the services depend on.
type Publisher interface {
	Publish(e Event)
}

// Listener observes events. A returned error is logged and otherwise
// ignored.
type Listener interface {
	Handle(ctx context.Context, e Event) error
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ctx context.Context, e Event) error

func (f ListenerFunc) Handle(ctx context.Context, e Event) error { return f(ctx, e) }

// DefaultBufferSize is used when NewBus is given a non-positive size.
const DefaultBufferSize = 64

// Bus is a buffered, asynchronous Publisher. Listeners subscribe at startup,
// Run drains the buffer on its own goroutine.
type Bus struct {
	ch     chan Event
	logger logging.Logger

	mu        sync.RWMutex
	listeners []Listener

	dropped atomic.Int64
	now     func() time.Time
}

func NewBus(size int, logger logging.Logger) *Bus {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &Bus{
		ch:     make(chan Event, size),
		logger: logger.With("module", "events"),
		now:    time.Now,
	}
}

// Subscribe registers l for every subsequent event.
func (b *Bus) Subscribe(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, l)
}

// Publish enqueues e without blocking. When the buffer is full the event is
// dropped and counted.
func (b *Bus) Publish(e Event) {
	if e.At.IsZero() {
		e.At = b.now()
	}
	select {
	case b.ch <- e:
	default:
		b.dropped.Add(1)
		b.logger.Warn(context.Background(), "event dropped, buffer full",
			"kind", string(e.Kind), "subject_id", e.SubjectID)
	}
}

// Dropped returns how many events Publish discarded.
func (b *Bus) Dropped() int64 {
	return b.dropped.Load()
}

// Run dispatches events until ctx is done, then delivers whatever is still
// buffered and returns.
func (b *Bus) Run(ctx context.Context) {
	for {
		select {
		case e := <-b.ch:
			b.dispatch(ctx, e)
		case <-ctx.Done():
			b.drain(context.WithoutCancel(ctx))
			return
		}
	}
}

func (b *Bus) drain(ctx context.Context) {
	for {
		select {
		case e := <-b.ch:
			b.dispatch(ctx, e)
		default:
			return
		}
	}
}

func (b *Bus) dispatch(ctx context.Context, e Event) {
	b.mu.RLock()
	listeners := b.listeners
	b.mu.RUnlock()

	for _, l := range listeners {
		if err := b.safeHandle(ctx, l, e); err != nil {
			b.logger.Error(ctx, "event listener failed",
				"kind", string(e.Kind), "subject_id", e.SubjectID, "error", err)
		}
	}
}

func (b *Bus) safeHandle(ctx context.Context, l Listener, e Event) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("listener panic: %v", p)
		}
	}()
	return l.Handle(ctx, e)
}
