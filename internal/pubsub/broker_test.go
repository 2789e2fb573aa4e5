package pubsub

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan Event[T]) Event[T] {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event[T]{}
}

func TestBroker_PublishReachesAllSubscribers(t *testing.T) {
	b := NewBroker[string](0)
	defer b.Close()

	a := b.Subscribe(t.Context())
	c := b.Subscribe(t.Context())
	require.Equal(t, 2, b.Subscribers())

	b.Publish("changes.json")

	require.Equal(t, "changes.json", receive(t, a).Payload)
	ev := receive(t, c)
	require.Equal(t, "changes.json", ev.Payload)
	require.False(t, ev.Time.IsZero())
}

func TestBroker_CancelUnsubscribes(t *testing.T) {
	b := NewBroker[int](1)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := b.Subscribe(ctx)
	cancel()

	require.Eventually(t, func() bool { return b.Subscribers() == 0 }, time.Second, 5*time.Millisecond)
	_, ok := <-ch
	require.False(t, ok)
}

func TestBroker_FullSubscriberDoesNotBlock(t *testing.T) {
	b := NewBroker[int](1)
	defer b.Close()

	ch := b.Subscribe(t.Context())
	done := make(chan struct{})
	go func() {
		for i := range 100 {
			b.Publish(i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}
	require.Equal(t, 0, receive(t, ch).Payload)
}

func TestBroker_Close(t *testing.T) {
	b := NewBroker[int](0)
	ch := b.Subscribe(t.Context())

	b.Close()
	b.Close()
	b.Publish(1)

	_, ok := <-ch
	require.False(t, ok)

	late := b.Subscribe(t.Context())
	_, ok = <-late
	require.False(t, ok, "subscribing after Close yields a closed channel")
}

func TestBroker_ConcurrentUse(t *testing.T) {
	b := NewBroker[int](0)
	defer b.Close()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithCancel(context.Background())
			b.Subscribe(ctx)
			b.Publish(1)
			cancel()
		}()
	}
	wg.Wait()
}
