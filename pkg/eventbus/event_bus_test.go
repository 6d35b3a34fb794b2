package eventbus

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type createdEvent struct {
	ID uint
}

func TestPublishDispatchesBySignature(t *testing.T) {
	bus := NewEventPublisher(logrus.New())

	var got []uint
	bus.Subscribe(func(ev createdEvent) {
		got = append(got, ev.ID)
	})
	bus.Subscribe(func(ev string) {
		t.Fatal("string handler must not fire for createdEvent")
	})

	bus.Publish(createdEvent{ID: 7})
	require.Equal(t, []uint{7}, got)
}

func TestPublishRecoversFromPanickingHandler(t *testing.T) {
	bus := NewEventPublisher(logrus.New())

	fired := false
	bus.Subscribe(func(ev createdEvent) { panic("boom") })
	bus.Subscribe(func(ev createdEvent) { fired = true })

	require.NotPanics(t, func() {
		bus.Publish(createdEvent{ID: 1})
	})
	require.True(t, fired, "healthy handler should still run")
}

func TestUnsubscribeRemovesHandler(t *testing.T) {
	bus := NewEventPublisher(logrus.New())

	handler := func(ev createdEvent) {}
	bus.Subscribe(handler)
	require.Equal(t, 1, bus.SubscribersCount())

	bus.Unsubscribe(handler)
	require.Equal(t, 0, bus.SubscribersCount())
}

func TestMatchSignature(t *testing.T) {
	require.True(t, MatchSignature(func(ev createdEvent) {}, []interface{}{createdEvent{}}))
	require.False(t, MatchSignature(func(ev createdEvent) {}, []interface{}{"nope"}))
	require.False(t, MatchSignature("not a func", []interface{}{createdEvent{}}))
	require.False(t, MatchSignature(func(a, b createdEvent) {}, []interface{}{createdEvent{}}))
}
