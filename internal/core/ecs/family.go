package ecs

import (
	"strings"

	"github.com/cesgo/ces/internal/core/event"
)

// EventSource is the signal type families fire with the entity that joined
// or left.
type EventSource = event.Signal[*Entity]

// allKey is the cache key of the match-all family. No name list joins to it.
const allKey = "*"

// familyKey builds the cache key for a required-name list. The names are
// joined in the order given: ("a","b") and ("b","a") are different families.
func familyKey(names []string) string {
	if len(names) == 0 {
		return allKey
	}
	return "$" + strings.Join(names, ",")
}

// Family is a live query: the set of world entities holding every required
// component. The World keeps it current as components change.
type Family struct {
	names    []string
	key      string
	entities *EntityList

	added   *EventSource
	removed *EventSource
}

func newFamily(names []string) *Family {
	own := make([]string, len(names))
	copy(own, names)
	return &Family{
		names:    own,
		key:      familyKey(own),
		entities: NewEntityList(),
		added:    event.NewSignal[*Entity](),
		removed:  event.NewSignal[*Entity](),
	}
}

// Names returns the required component names in the order the family was
// requested with.
func (f *Family) Names() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

func (f *Family) Key() string { return f.key }

// Entities returns a snapshot of the current members in join order.
func (f *Family) Entities() []*Entity { return f.entities.ToSlice() }

func (f *Family) Len() int { return f.entities.Len() }

func (f *Family) Has(e *Entity) bool { return f.entities.Has(e) }

// EntityAdded fires after an entity joins the family.
func (f *Family) EntityAdded() *EventSource { return f.added }

// EntityRemoved fires after an entity leaves the family.
func (f *Family) EntityRemoved() *EventSource { return f.removed }

func (f *Family) matches(e *Entity) bool {
	for _, name := range f.names {
		if !e.HasComponent(name) {
			return false
		}
	}
	return true
}

func (f *Family) requires(name string) bool {
	for _, n := range f.names {
		if n == name {
			return true
		}
	}
	return false
}

func (f *Family) addEntityIfMatch(e *Entity) {
	if e.removed || f.entities.Has(e) || !f.matches(e) {
		return
	}
	f.entities.Add(e)
	f.added.Emit(e)
}

func (f *Family) removeEntity(e *Entity) {
	if f.entities.Remove(e) {
		f.removed.Emit(e)
	}
}

// onComponentAdded re-runs the full match; any added name can complete it.
func (f *Family) onComponentAdded(e *Entity, _ string) {
	f.addEntityIfMatch(e)
}

// onComponentRemoved evicts e only when name is one of the required names.
// Evicted entities come back only through onComponentAdded.
func (f *Family) onComponentRemoved(e *Entity, name string) {
	if !f.entities.Has(e) || !f.requires(name) {
		return
	}
	f.removeEntity(e)
}
