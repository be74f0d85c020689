package system

import (
	"time"

	"github.com/cesgo/ces/internal/component"
	"github.com/cesgo/ces/internal/core/ecs"
	"github.com/cesgo/ces/internal/core/event"
	coresys "github.com/cesgo/ces/internal/core/system"
)

// TagDead marks an entity whose HP reached zero. Dead entities do not
// regenerate.
const TagDead = ecs.Tag("Dead")

// RegenSystem restores Health.Regen HP per second up to Max. An entity at or
// below zero HP is tagged Dead and a HealthDepleted event is queued instead.
type RegenSystem struct {
	*coresys.Base
	bus *event.Bus
}

func NewRegenSystem(bus *event.Bus) *RegenSystem {
	s := &RegenSystem{Base: coresys.NewBase(), bus: bus}
	s.OnUpdate([]string{component.NameHealth}, s.regen)
	return s
}

func (s *RegenSystem) regen(dt time.Duration, es []*ecs.Entity) {
	for _, e := range es {
		if e.HasComponent(TagDead.ComponentName()) {
			continue
		}
		c, _ := e.GetComponent(component.NameHealth)
		h, ok := c.(*component.Health)
		if !ok {
			continue
		}
		if h.HP <= 0 {
			e.AddComponent(TagDead)
			event.Emit(s.bus, HealthDepleted{EntityID: e.ID()})
			continue
		}
		if h.HP >= h.Max {
			continue
		}
		h.HP += h.Regen * dt.Seconds()
		if h.HP > h.Max {
			h.HP = h.Max
		}
	}
}
