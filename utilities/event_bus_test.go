package utilities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventBusDeliversToAllSubscribers(t *testing.T) {
	bus := NewEventBus()
	received := make(chan interface{}, 2)

	bus.Subscribe("doc", func(data interface{}) { received <- data })
	bus.Subscribe("doc", func(data interface{}) { received <- data })

	bus.Publish("doc", uint(42))

	for i := 0; i < 2; i++ {
		select {
		case data := <-received:
			assert.Equal(t, uint(42), data)
		case <-time.After(time.Second):
			t.Fatal("handler was not invoked")
		}
	}
}

func TestEventBusIgnoresUnknownEvent(t *testing.T) {
	bus := NewEventBus()
	received := make(chan interface{}, 1)
	bus.Subscribe("known", func(data interface{}) { received <- data })

	bus.Publish("unknown", "payload")

	select {
	case <-received:
		t.Fatal("handler should not fire for a different event")
	case <-time.After(50 * time.Millisecond):
	}
}
