package system

import (
	"testing"
	"time"

	"github.com/cesgo/ces/internal/core/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSystem struct {
	*Base
	joined, left []ecs.EntityID
	frames       []int
}

func newCountingSystem() *countingSystem {
	s := &countingSystem{Base: NewBase()}
	s.On([]string{"Position", "Velocity"}, func(e *ecs.Entity) {
		s.joined = append(s.joined, e.ID())
	})
	s.OnRemove([]string{"Position", "Velocity"}, func(e *ecs.Entity) {
		s.left = append(s.left, e.ID())
	})
	s.OnUpdate([]string{"Position"}, func(_ time.Duration, es []*ecs.Entity) {
		s.frames = append(s.frames, len(es))
	})
	return s
}

var _ ecs.System = (*countingSystem)(nil)

func TestBaseBindsHooksOnJoin(t *testing.T) {
	w := ecs.NewWorld()
	s := newCountingSystem()
	w.AddSystem(s)
	require.Same(t, w, s.World())

	e := w.NewEntity()
	e.AddComponent(ecs.Tag("Position"))
	require.NoError(t, w.AddEntity(e))
	e.AddComponent(ecs.Tag("Velocity"))

	w.Update(time.Millisecond)
	e.RemoveComponent("Velocity")
	w.RemoveEntity(e)
	w.Update(time.Millisecond)

	assert.Equal(t, []ecs.EntityID{e.ID()}, s.joined)
	assert.Equal(t, []ecs.EntityID{e.ID()}, s.left)
	assert.Equal(t, []int{1, 0}, s.frames)
}

func TestBaseHooksDeclaredAfterJoin(t *testing.T) {
	w := ecs.NewWorld()
	s := NewBase()
	w.AddSystem(s)

	var tagged int
	s.On([]string{"Tagged"}, func(*ecs.Entity) { tagged++ })

	e := w.NewEntity()
	require.NoError(t, w.AddEntity(e))
	e.AddComponent(ecs.Tag("Tagged"))
	assert.Equal(t, 1, tagged)
}

func TestBaseUnbindsOnRemoval(t *testing.T) {
	w := ecs.NewWorld()
	s := newCountingSystem()
	w.AddSystem(s)
	require.True(t, w.RemoveSystem(s))
	assert.Nil(t, s.World())
	assert.Equal(t, 0, w.EntityAdded("Position", "Velocity").Len())
	assert.Equal(t, 0, w.EntityRemoved("Position", "Velocity").Len())

	e := w.NewEntity()
	e.AddComponent(ecs.Tag("Position"))
	e.AddComponent(ecs.Tag("Velocity"))
	require.NoError(t, w.AddEntity(e))
	s.Update(time.Millisecond)

	assert.Empty(t, s.joined)
	assert.Empty(t, s.frames)

	// Rejoining rebinds the same hooks.
	w.AddSystem(s)
	e.RemoveComponent("Velocity")
	assert.Equal(t, []ecs.EntityID{e.ID()}, s.left)
}

func TestBaseOnUpdateOrder(t *testing.T) {
	w := ecs.NewWorld()
	s := NewBase()
	var order []string
	s.OnUpdate([]string{"A"}, func(time.Duration, []*ecs.Entity) { order = append(order, "first") })
	s.OnUpdate(nil, func(_ time.Duration, es []*ecs.Entity) { order = append(order, "all") })
	w.AddSystem(s)

	w.Update(time.Second)
	assert.Equal(t, []string{"first", "all"}, order)
}
