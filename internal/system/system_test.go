package system

import (
	"testing"
	"time"

	"github.com/cesgo/ces/internal/component"
	"github.com/cesgo/ces/internal/core/ecs"
	"github.com/cesgo/ces/internal/core/event"
	coresys "github.com/cesgo/ces/internal/core/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func add(t *testing.T, w *ecs.World, cs ...ecs.Component) *ecs.Entity {
	t.Helper()
	e := w.NewEntity()
	for _, c := range cs {
		e.AddComponent(c)
	}
	require.NoError(t, w.AddEntity(e))
	return e
}

func TestMovementIntegratesVelocity(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewMovementSystem())

	pos := &component.Position{X: 1}
	add(t, w, pos, &component.Velocity{DX: 2, DY: -4})
	still := &component.Position{X: 5}
	add(t, w, still)

	w.Update(500 * time.Millisecond)
	assert.InDelta(t, 2.0, pos.X, 1e-9)
	assert.InDelta(t, -2.0, pos.Y, 1e-9)
	assert.Equal(t, 5.0, still.X)
}

func TestLifetimeExpiryRemovesEntity(t *testing.T) {
	w := ecs.NewWorld()
	bus := event.NewBus()
	r := coresys.NewRunner(w, 100*time.Millisecond, zaptest.NewLogger(t))
	r.Register(NewLifetimeSystem(bus))
	r.Register(NewCleanupSystem(bus, zaptest.NewLogger(t)))

	short := add(t, w, &component.Lifetime{Remaining: 150 * time.Millisecond})
	long := add(t, w, &component.Lifetime{Remaining: time.Second})

	r.Tick(100 * time.Millisecond)
	assert.False(t, short.Removed())

	r.Tick(100 * time.Millisecond)
	assert.True(t, short.Removed())
	assert.False(t, long.Removed())
	assert.Equal(t, []*ecs.Entity{long}, w.Entities())
}

func TestRegenAndDeath(t *testing.T) {
	w := ecs.NewWorld()
	bus := event.NewBus()
	r := coresys.NewRunner(w, time.Second, nil)
	r.Register(NewRegenSystem(bus))
	r.Register(NewCleanupSystem(bus, zaptest.NewLogger(t)))

	hurt := &component.Health{HP: 5, Max: 10, Regen: 3}
	a := add(t, w, hurt)
	b := add(t, w, &component.Health{HP: 0, Max: 10, Regen: 3})

	r.Tick(time.Second)
	assert.Equal(t, 8.0, hurt.HP)
	assert.True(t, b.Removed())
	assert.True(t, b.HasComponent(TagDead.ComponentName()))

	r.Tick(time.Second)
	assert.Equal(t, 10.0, hurt.HP, "capped at max")
	assert.False(t, a.Removed())
}

func TestWatchSystemCounts(t *testing.T) {
	w := ecs.NewWorld()
	watch := NewWatchSystem(zaptest.NewLogger(t), []string{component.NamePosition, component.NameVelocity})
	w.AddSystem(watch)

	e := add(t, w, &component.Position{}, &component.Velocity{})
	add(t, w, &component.Position{}, &component.Velocity{})
	assert.Equal(t, 2, watch.Count(component.NamePosition, component.NameVelocity))

	e.RemoveComponent(component.NameVelocity)
	assert.Equal(t, 1, watch.Count(component.NamePosition, component.NameVelocity))
}
