package system

import (
	"time"

	"github.com/cesgo/ces/internal/component"
	"github.com/cesgo/ces/internal/core/ecs"
	"github.com/cesgo/ces/internal/core/event"
	coresys "github.com/cesgo/ces/internal/core/system"
)

// LifetimeSystem counts down Lifetime components. An expired entity loses
// its Lifetime and an EntityExpired event is queued on the bus.
type LifetimeSystem struct {
	*coresys.Base
	bus *event.Bus
}

func NewLifetimeSystem(bus *event.Bus) *LifetimeSystem {
	s := &LifetimeSystem{Base: coresys.NewBase(), bus: bus}
	s.OnUpdate([]string{component.NameLifetime}, s.countdown)
	return s
}

func (s *LifetimeSystem) countdown(dt time.Duration, es []*ecs.Entity) {
	for _, e := range es {
		c, _ := e.GetComponent(component.NameLifetime)
		lt, ok := c.(*component.Lifetime)
		if !ok {
			continue
		}
		lt.Remaining -= dt
		if lt.Remaining > 0 {
			continue
		}
		// Dropping the component takes e out of the family, so the event is
		// emitted once.
		e.RemoveComponent(component.NameLifetime)
		event.Emit(s.bus, EntityExpired{EntityID: e.ID()})
	}
}
