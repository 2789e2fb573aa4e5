package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenCmd waits for the next event on ch and returns it as a tea.Msg.
// It returns nil once ctx is done or ch is closed.
func ListenCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			return ev
		}
	}
}

// Listener keeps one subscription open for the lifetime of a model. Call
// Listen again after each received event to keep receiving.
type Listener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// NewListener subscribes to broker until ctx is done.
func NewListener[T any](ctx context.Context, broker *Broker[T]) *Listener[T] {
	return &Listener[T]{ctx: ctx, ch: broker.Subscribe(ctx)}
}

// Listen returns a command that yields the next event.
func (l *Listener[T]) Listen() tea.Cmd {
	return ListenCmd(l.ctx, l.ch)
}
