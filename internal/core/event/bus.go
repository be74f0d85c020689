package event

import (
	"reflect"
)

// Bus carries domain events between systems with a one-frame delay.
// Emit writes to the pending buffer; a consumer calls SwapBuffers and then
// DispatchAll once per frame to deliver everything emitted since the last
// swap. Systems emit here instead of mutating the world while they walk a
// family snapshot.
type Bus struct {
	ready    map[reflect.Type][]any
	pending  map[reflect.Type][]any
	handlers map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{
		ready:    make(map[reflect.Type][]any),
		pending:  make(map[reflect.Type][]any),
		handlers: make(map[reflect.Type][]any),
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Emit queues ev for the next dispatch.
func Emit[T any](b *Bus, ev T) {
	t := typeOf[T]()
	b.pending[t] = append(b.pending[t], ev)
}

// Subscribe adds fn to the handlers for events of type T. Handlers run in
// subscription order.
func Subscribe[T any](b *Bus, fn func(T)) {
	t := typeOf[T]()
	b.handlers[t] = append(b.handlers[t], fn)
}

// SwapBuffers makes the pending events ready for dispatch. Events emitted
// afterwards, including from handlers, wait for the next swap.
func (b *Bus) SwapBuffers() {
	b.ready, b.pending = b.pending, b.ready
	for t := range b.pending {
		b.pending[t] = b.pending[t][:0]
	}
}

// DispatchAll hands every ready event to its handlers and returns how many
// events were consumed. An event type nobody subscribed to is discarded.
func (b *Bus) DispatchAll() int {
	n := 0
	for t, events := range b.ready {
		handlers := b.handlers[t]
		for _, ev := range events {
			for _, h := range handlers {
				deliver(h, ev)
			}
			n++
		}
		b.ready[t] = events[:0]
	}
	return n
}

// Pending returns the number of events waiting for the next swap.
func (b *Bus) Pending() int {
	n := 0
	for _, events := range b.pending {
		n += len(events)
	}
	return n
}

// deliver calls a func(T) stored as any with an event of type T.
func deliver(fn, ev any) {
	reflect.ValueOf(fn).Call([]reflect.Value{reflect.ValueOf(ev)})
}
