package system

import (
	"time"

	"github.com/cesgo/ces/internal/component"
	"github.com/cesgo/ces/internal/core/ecs"
	coresys "github.com/cesgo/ces/internal/core/system"
)

// MovementSystem integrates Velocity into Position every frame.
type MovementSystem struct {
	*coresys.Base
}

func NewMovementSystem() *MovementSystem {
	s := &MovementSystem{Base: coresys.NewBase()}
	s.OnUpdate([]string{component.NamePosition, component.NameVelocity}, s.move)
	return s
}

func (s *MovementSystem) move(dt time.Duration, es []*ecs.Entity) {
	sec := dt.Seconds()
	for _, e := range es {
		pc, _ := e.GetComponent(component.NamePosition)
		vc, _ := e.GetComponent(component.NameVelocity)
		pos, ok1 := pc.(*component.Position)
		vel, ok2 := vc.(*component.Velocity)
		if !ok1 || !ok2 {
			continue // tag or record under a typed name
		}
		pos.X += vel.DX * sec
		pos.Y += vel.DY * sec
	}
}
