package ecs

import (
	"fmt"

	"github.com/cesgo/ces/internal/core/event"
)

// EntityID identifies an entity for the lifetime of the allocator that
// issued it. Zero is never issued.
type EntityID uint64

func (id EntityID) IsZero() bool { return id == 0 }

// IDAllocator hands out monotonically increasing entity ids. Ids are never
// recycled, so a stale reference can never alias a newer entity.
type IDAllocator struct {
	next EntityID
}

func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

func (a *IDAllocator) Next() EntityID {
	a.next++
	return a.next
}

// Last returns the most recently issued id, or zero.
func (a *IDAllocator) Last() EntityID {
	return a.next
}

// ComponentChange is the payload of an entity's component signals.
type ComponentChange struct {
	Entity *Entity
	Name   string
}

// Entity is an identity holding a table of named components. Entities are
// created independently of any World and joined to one with World.AddEntity.
type Entity struct {
	id         EntityID
	removed    bool
	components map[string]slot
	names      []string // first-insertion order of keys in components

	added   *event.Signal[ComponentChange]
	dropped *event.Signal[ComponentChange]

	world     *World
	listeners [2]event.ListenerID // world routing subscriptions
}

// NewEntity creates an entity with the next id from ids.
func NewEntity(ids *IDAllocator) *Entity {
	return &Entity{
		id:         ids.Next(),
		components: make(map[string]slot, 4),
		added:      event.NewSignal[ComponentChange](),
		dropped:    event.NewSignal[ComponentChange](),
	}
}

func (e *Entity) ID() EntityID { return e.id }

// Removed reports whether the entity has been removed from its World.
func (e *Entity) Removed() bool { return e.removed }

// HasComponent reports whether a component named name is currently held.
func (e *Entity) HasComponent(name string) bool {
	return e.components[name].present
}

// GetComponent returns the component stored under name.
func (e *Entity) GetComponent(name string) (Component, bool) {
	s := e.components[name]
	if !s.present {
		return nil, false
	}
	return s.value, true
}

// AddComponent stores c under its name, replacing any previous value, then
// emits ComponentAdded. Listeners observe the updated table.
func (e *Entity) AddComponent(c Component) {
	name := c.ComponentName()
	if _, seen := e.components[name]; !seen {
		e.names = append(e.names, name)
	}
	e.components[name] = slot{value: c, present: true}
	e.added.Emit(ComponentChange{Entity: e, Name: name})
}

// RemoveComponent tombstones name then emits ComponentRemoved. Removing a
// component that is not held still emits.
func (e *Entity) RemoveComponent(name string) {
	if _, seen := e.components[name]; seen {
		e.components[name] = slot{}
	}
	e.dropped.Emit(ComponentChange{Entity: e, Name: name})
}

// ComponentNames returns the names of held components in the order they
// were first added.
func (e *Entity) ComponentNames() []string {
	out := make([]string, 0, len(e.names))
	for _, name := range e.names {
		if e.components[name].present {
			out = append(out, name)
		}
	}
	return out
}

func (e *Entity) ComponentAdded() *event.Signal[ComponentChange]   { return e.added }
func (e *Entity) ComponentRemoved() *event.Signal[ComponentChange] { return e.dropped }

func (e *Entity) String() string {
	return fmt.Sprintf("entity#%d", e.id)
}
