package event

// ListenerID identifies one registration on a Signal. Ids are never reused
// within a Signal.
type ListenerID uint64

type listener[T any] struct {
	id ListenerID
	fn func(T)
}

// Signal is a synchronous one-to-many dispatcher. Listeners run in
// registration order on the emitting goroutine.
//
// The listener slice is copy-on-write: Emit walks the slice that was current
// when it started, so listeners added or removed during an emission only
// take effect on the next Emit.
type Signal[T any] struct {
	listeners []listener[T]
	nextID    ListenerID
}

func NewSignal[T any]() *Signal[T] {
	return &Signal[T]{}
}

// Add registers fn and returns a handle for Remove. The same fn may be
// added more than once; each registration is invoked separately.
func (s *Signal[T]) Add(fn func(T)) ListenerID {
	s.nextID++
	next := make([]listener[T], len(s.listeners), len(s.listeners)+1)
	copy(next, s.listeners)
	s.listeners = append(next, listener[T]{id: s.nextID, fn: fn})
	return s.nextID
}

// Remove unregisters the listener with the given handle. It reports whether
// the handle was registered.
func (s *Signal[T]) Remove(id ListenerID) bool {
	for i, l := range s.listeners {
		if l.id != id {
			continue
		}
		next := make([]listener[T], 0, len(s.listeners)-1)
		next = append(next, s.listeners[:i]...)
		s.listeners = append(next, s.listeners[i+1:]...)
		return true
	}
	return false
}

// Emit calls every registered listener once with v.
func (s *Signal[T]) Emit(v T) {
	for _, l := range s.listeners {
		l.fn(v)
	}
}

// Len returns the number of registered listeners.
func (s *Signal[T]) Len() int {
	return len(s.listeners)
}
