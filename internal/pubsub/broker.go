// Package pubsub fans typed events out to subscribers and bridges them into
// bubbletea commands.
package pubsub

import (
	"context"
	"sync"
	"time"
)

const defaultBufferSize = 16

// Event wraps a published payload with the time it was published.
type Event[T any] struct {
	Payload T
	Time    time.Time
}

// Broker delivers every published payload to all current subscribers.
// Slow subscribers miss events instead of blocking Publish.
type Broker[T any] struct {
	mu     sync.RWMutex
	subs   map[chan Event[T]]struct{}
	buffer int
	closed bool
}

// NewBroker creates a broker whose subscriber channels hold size events.
func NewBroker[T any](size int) *Broker[T] {
	if size <= 0 {
		size = defaultBufferSize
	}
	return &Broker[T]{
		subs:   make(map[chan Event[T]]struct{}),
		buffer: size,
	}
}

// Subscribe returns a channel of events that is closed when ctx is done or
// the broker is closed.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event[T], b.buffer)
	if b.closed {
		close(ch)
		return ch
	}
	b.subs[ch] = struct{}{}

	go func() {
		<-ctx.Done()
		b.unsubscribe(ch)
	}()
	return ch
}

func (b *Broker[T]) unsubscribe(ch chan Event[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[ch]; !ok {
		return
	}
	delete(b.subs, ch)
	close(ch)
}

// Publish sends payload to every subscriber without blocking.
func (b *Broker[T]) Publish(payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}

	ev := Event[T]{Payload: payload, Time: time.Now()}
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Close closes all subscriber channels. Later Publish calls are dropped.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}

// Subscribers returns the number of live subscriptions.
func (b *Broker[T]) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
