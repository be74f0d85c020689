package system

import (
	"testing"
	"time"

	"github.com/cesgo/ces/internal/component"
	"github.com/cesgo/ces/internal/core/ecs"
	"github.com/stretchr/testify/assert"
)

func TestGridTracksPositionedEntities(t *testing.T) {
	w := ecs.NewWorld()
	g := NewGridSystem(10)
	w.AddSystem(g)

	a := add(t, w, &component.Position{X: 1, Y: 1})
	b := add(t, w, &component.Position{X: 12, Y: 3})
	far := add(t, w, &component.Position{X: 100, Y: 100})
	add(t, w, ecs.Tag("Unplaced"))

	assert.Equal(t, 3, g.Tracked())
	assert.Equal(t, 3, g.Cells())
	assert.ElementsMatch(t, []ecs.EntityID{a.ID(), b.ID()}, g.Nearby(0, 0))
	assert.Equal(t, []ecs.EntityID{far.ID()}, g.Nearby(105, 95))
}

func TestGridNegativeCoordinates(t *testing.T) {
	w := ecs.NewWorld()
	g := NewGridSystem(10)
	w.AddSystem(g)

	e := add(t, w, &component.Position{X: -0.5, Y: -0.5})
	assert.Contains(t, g.Nearby(-15, -15), e.ID())
	assert.NotContains(t, g.Nearby(15, 15), e.ID())
}

func TestGridFollowsMovementAndRemoval(t *testing.T) {
	w := ecs.NewWorld()
	g := NewGridSystem(10)
	w.AddSystem(NewMovementSystem())
	w.AddSystem(g)

	e := add(t, w, &component.Position{}, &component.Velocity{DX: 50})
	w.Update(time.Second)
	assert.NotContains(t, g.Nearby(0, 0), e.ID())
	assert.Contains(t, g.Nearby(50, 0), e.ID())
	assert.Equal(t, 1, g.Cells())

	e.RemoveComponent(component.NamePosition)
	assert.Equal(t, 0, g.Tracked())
	assert.Equal(t, 0, g.Cells())

	e.AddComponent(&component.Position{X: 5})
	assert.Contains(t, g.Nearby(0, 0), e.ID())
	w.RemoveEntity(e)
	assert.Empty(t, g.Nearby(0, 0))
}
