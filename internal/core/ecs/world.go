package ecs

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// World is the top-level ECS container. It owns the global entity list, the
// family cache with its component-name index, and the ordered system list.
//
// A World is single-goroutine: every call, including the signals it fires,
// runs to completion on the caller's goroutine.
type World struct {
	id  uuid.UUID
	log *zap.Logger
	ids *IDAllocator

	entities *EntityList
	families map[string]*Family
	index    *familyIndex
	all      *Family // family with no required names, if requested

	systems      []System
	destroyQueue []*Entity
}

// Stats is a point-in-time summary of a World.
type Stats struct {
	Entities     int
	Families     int
	Systems      int
	IndexedNames int
}

func NewWorld(opts ...Option) *World {
	w := &World{
		id:           uuid.New(),
		log:          zap.NewNop(),
		ids:          NewIDAllocator(),
		entities:     NewEntityList(),
		families:     make(map[string]*Family, 16),
		index:        newFamilyIndex(),
		systems:      make([]System, 0, 16),
		destroyQueue: make([]*Entity, 0, 64),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.With(zap.Stringer("world", w.id))
	return w
}

func (w *World) ID() uuid.UUID { return w.id }

// NewEntity creates an entity with an id from this world's allocator. The
// entity is not added to the world.
func (w *World) NewEntity() *Entity {
	return NewEntity(w.ids)
}

// AddEntity joins e to the world: e is appended to the global list, the
// world starts routing its component changes, and cached families indexed
// under any held component are offered e. Routing starts before the
// back-fill so components added by family listeners reach their families.
func (w *World) AddEntity(e *Entity) error {
	switch {
	case e == nil:
		return ErrNilEntity
	case e.removed:
		return ErrEntityRemoved
	case e.world == w:
		return ErrEntityExists
	case e.world != nil:
		return ErrForeignEntity
	case w.entities.Has(e):
		return ErrDuplicateID
	}
	e.world = w
	w.entities.Add(e)
	e.listeners[0] = e.added.Add(w.onComponentAdded)
	e.listeners[1] = e.dropped.Add(w.onComponentRemoved)

	for _, name := range e.ComponentNames() {
		for _, f := range w.index.lookup(name) {
			f.addEntityIfMatch(e)
		}
	}
	if w.all != nil {
		w.all.addEntityIfMatch(e)
	}

	w.log.Debug("entity added", zap.Uint64("entity", uint64(e.id)), zap.Strings("components", e.ComponentNames()))
	return nil
}

// RemoveEntity evicts e from every family that lists it and from the global
// list, marks it removed and stops routing its component changes. It
// reports false if e is not a live member of this world.
func (w *World) RemoveEntity(e *Entity) bool {
	if e == nil || e.world != w || e.removed {
		return false
	}
	for _, name := range e.ComponentNames() {
		for _, f := range w.index.lookup(name) {
			f.removeEntity(e)
		}
	}
	if w.all != nil {
		w.all.removeEntity(e)
	}
	w.entities.Remove(e)
	e.removed = true

	e.added.Remove(e.listeners[0])
	e.dropped.Remove(e.listeners[1])

	w.log.Debug("entity removed", zap.Uint64("entity", uint64(e.id)))
	return true
}

// QueueRemoval schedules e for removal at the next FlushRemovals. Systems
// use it to remove entities while iterating a family snapshot.
func (w *World) QueueRemoval(e *Entity) {
	w.destroyQueue = append(w.destroyQueue, e)
}

// FlushRemovals removes all queued entities and returns how many were live
// members. Removals queued by listeners during the flush are processed in
// the same call.
func (w *World) FlushRemovals() int {
	n := 0
	for len(w.destroyQueue) > 0 {
		batch := w.destroyQueue
		w.destroyQueue = make([]*Entity, 0, cap(batch))
		for _, e := range batch {
			if w.RemoveEntity(e) {
				n++
			}
		}
	}
	return n
}

// Entities returns a snapshot of every entity in the world in join order.
func (w *World) Entities() []*Entity {
	return w.entities.ToSlice()
}

// Entity looks up a live member of the world by id.
func (w *World) Entity(id EntityID) (*Entity, bool) {
	return w.entities.Get(id)
}

func (w *World) Len() int {
	return w.entities.Len()
}

// Family returns the family for names, creating and back-filling it on
// first use. Name order is part of the family identity.
func (w *World) Family(names ...string) *Family {
	key := familyKey(names)
	if f, ok := w.families[key]; ok {
		return f
	}
	f := newFamily(names)
	w.families[key] = f
	if len(names) == 0 {
		w.all = f
	} else {
		w.index.register(f)
	}
	w.entities.Each(func(e *Entity) bool {
		f.addEntityIfMatch(e)
		return true
	})
	w.log.Debug("family created", zap.String("family", key), zap.Int("matched", f.Len()))
	return f
}

// GetEntities returns a snapshot of the entities holding every named
// component. With no names it returns every entity.
func (w *World) GetEntities(names ...string) []*Entity {
	return w.Family(names...).Entities()
}

// EntityAdded returns the signal fired when an entity starts matching names.
func (w *World) EntityAdded(names ...string) *EventSource {
	return w.Family(names...).EntityAdded()
}

// EntityRemoved returns the signal fired when an entity stops matching names.
func (w *World) EntityRemoved(names ...string) *EventSource {
	return w.Family(names...).EntityRemoved()
}

func (w *World) onComponentAdded(c ComponentChange) {
	for _, f := range w.index.lookup(c.Name) {
		f.onComponentAdded(c.Entity, c.Name)
	}
}

func (w *World) onComponentRemoved(c ComponentChange) {
	for _, f := range w.index.lookup(c.Name) {
		f.onComponentRemoved(c.Entity, c.Name)
	}
}

// AddSystem appends s to the update order and binds it to the world.
func (w *World) AddSystem(s System) {
	n := len(w.systems)
	w.systems = append(w.systems[:n:n], s)
	s.AddToWorld(w)
	w.log.Debug("system added", zap.Int("systems", len(w.systems)))
}

// RemoveSystem unregisters the first registration of s and unbinds it. It
// reports whether s was registered. Systems are compared with ==, so their
// dynamic types must be comparable (pointer receivers in practice).
func (w *World) RemoveSystem(s System) bool {
	for i, sys := range w.systems {
		if sys != s {
			continue
		}
		next := make([]System, 0, len(w.systems)-1)
		next = append(next, w.systems[:i]...)
		w.systems = append(next, w.systems[i+1:]...)
		s.RemovedFromWorld(w)
		w.log.Debug("system removed", zap.Int("systems", len(w.systems)))
		return true
	}
	return false
}

// Systems returns the registered systems in update order.
func (w *World) Systems() []System {
	out := make([]System, len(w.systems))
	copy(out, w.systems)
	return out
}

// Update runs every system once, in registration order. Systems added or
// removed during Update take effect on the next frame.
func (w *World) Update(dt time.Duration) {
	for _, s := range w.systems {
		s.Update(dt)
	}
}

func (w *World) Stats() Stats {
	return Stats{
		Entities:     w.entities.Len(),
		Families:     len(w.families),
		Systems:      len(w.systems),
		IndexedNames: w.index.names(),
	}
}
