package system

import (
	"time"

	"github.com/cesgo/ces/internal/core/ecs"
	"github.com/cesgo/ces/internal/core/event"
	coresys "github.com/cesgo/ces/internal/core/system"
	"go.uber.org/zap"
)

// CleanupSystem delivers the frame's bus events and queues expired or dead
// entities for removal. Register it last; the Runner flushes the removal
// queue after all systems have run.
type CleanupSystem struct {
	*coresys.Base
	bus *event.Bus
	log *zap.Logger
}

func NewCleanupSystem(bus *event.Bus, log *zap.Logger) *CleanupSystem {
	s := &CleanupSystem{Base: coresys.NewBase(), bus: bus, log: log}
	event.Subscribe(bus, func(ev EntityExpired) { s.discard(ev.EntityID, "expired") })
	event.Subscribe(bus, func(ev HealthDepleted) { s.discard(ev.EntityID, "died") })
	return s
}

func (s *CleanupSystem) Update(dt time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
	s.Base.Update(dt)
}

func (s *CleanupSystem) discard(id ecs.EntityID, reason string) {
	w := s.World()
	if w == nil {
		return
	}
	e, ok := w.Entity(id)
	if !ok {
		return
	}
	w.QueueRemoval(e)
	s.log.Debug("entity discarded", zap.Uint64("entity", uint64(id)), zap.String("reason", reason))
}
