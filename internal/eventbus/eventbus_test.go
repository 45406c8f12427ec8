package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	b := New(zaptest.NewLogger(t))
	defer b.Close()

	got := make(chan DomainEvent, 1)
	b.Subscribe(EventLibraryChanged, func(e DomainEvent) { got <- e })

	b.Publish(LibraryChangedEvent{TMDBID: 42, Result: "added"})

	select {
	case e := <-got:
		ev, ok := e.(LibraryChangedEvent)
		require.True(t, ok)
		require.Equal(t, 42, ev.TMDBID)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New(zaptest.NewLogger(t))
	defer b.Close()

	first := make(chan struct{}, 4)
	second := make(chan struct{}, 4)
	unsub := b.Subscribe(EventError, func(DomainEvent) { first <- struct{}{} })
	b.Subscribe(EventError, func(DomainEvent) { second <- struct{}{} })

	unsub()
	b.Publish(ErrorEvent{Message: "boom"})

	select {
	case <-second:
	case <-time.After(time.Second):
		t.Fatal("remaining subscriber not called")
	}
	select {
	case <-first:
		t.Fatal("unsubscribed handler was called")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHandlerPanicIsRecovered(t *testing.T) {
	b := New(zaptest.NewLogger(t))
	defer b.Close()

	done := make(chan struct{}, 1)
	b.Subscribe(EventError, func(DomainEvent) { panic("handler bug") })
	b.Subscribe(EventError, func(DomainEvent) { done <- struct{}{} })

	b.Publish(ErrorEvent{Message: "x"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("bus stopped after handler panic")
	}
}
