package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type pinged struct{ N int }

type ponged struct{ S string }

func TestBusDeliversNextFrame(t *testing.T) {
	b := NewBus()
	var got []int
	Subscribe(b, func(e pinged) { got = append(got, e.N) })

	Emit(b, pinged{N: 1})
	Emit(b, pinged{N: 2})
	assert.Equal(t, 2, b.Pending())
	assert.Equal(t, 0, b.DispatchAll(), "nothing delivered before swap")
	assert.Empty(t, got)

	b.SwapBuffers()
	assert.Equal(t, 0, b.Pending())
	assert.Equal(t, 2, b.DispatchAll())
	assert.Equal(t, []int{1, 2}, got)

	// Delivered events are not redelivered.
	b.SwapBuffers()
	assert.Equal(t, 0, b.DispatchAll())
	assert.Equal(t, []int{1, 2}, got)
}

func TestBusEmitDuringDispatchWaitsAFrame(t *testing.T) {
	b := NewBus()
	var pongs []string
	Subscribe(b, func(e pinged) { Emit(b, ponged{S: "reply"}) })
	Subscribe(b, func(e ponged) { pongs = append(pongs, e.S) })

	Emit(b, pinged{})
	b.SwapBuffers()
	b.DispatchAll()
	assert.Empty(t, pongs)
	assert.Equal(t, 1, b.Pending())

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []string{"reply"}, pongs)
}

func TestBusTypesAreIsolated(t *testing.T) {
	b := NewBus()
	var pings, pongs int
	Subscribe(b, func(pinged) { pings++ })
	Subscribe(b, func(ponged) { pongs++ })

	Emit(b, ponged{})
	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, 0, pings)
	assert.Equal(t, 1, pongs)
}

func TestBusHandlersRunInSubscriptionOrder(t *testing.T) {
	b := NewBus()
	var order []string
	Subscribe(b, func(int) { order = append(order, "first") })
	Subscribe(b, func(int) { order = append(order, "second") })

	Emit(b, 7)
	Emit(b, "unheard")
	b.SwapBuffers()
	assert.Equal(t, 2, b.DispatchAll(), "unsubscribed events are still consumed")
	assert.Equal(t, []string{"first", "second"}, order)
}
