package system

import (
	"math"
	"time"

	"github.com/cesgo/ces/internal/component"
	"github.com/cesgo/ces/internal/core/ecs"
	coresys "github.com/cesgo/ces/internal/core/system"
)

type cellKey struct {
	cx, cy int64
}

// GridSystem buckets positioned entities into square cells so neighbours
// can be found without scanning the whole world.
// Accessed only from the loop goroutine, no locks.
type GridSystem struct {
	*coresys.Base
	cellSize float64
	cells    map[cellKey]map[ecs.EntityID]struct{}
	where    map[ecs.EntityID]cellKey
}

func NewGridSystem(cellSize float64) *GridSystem {
	if cellSize <= 0 {
		cellSize = 1
	}
	s := &GridSystem{
		Base:     coresys.NewBase(),
		cellSize: cellSize,
		cells:    make(map[cellKey]map[ecs.EntityID]struct{}),
		where:    make(map[ecs.EntityID]cellKey),
	}
	s.On([]string{component.NamePosition}, s.place)
	s.OnRemove([]string{component.NamePosition}, s.evict)
	s.OnUpdate([]string{component.NamePosition}, s.track)
	return s
}

func (s *GridSystem) key(x, y float64) cellKey {
	return cellKey{cx: int64(math.Floor(x / s.cellSize)), cy: int64(math.Floor(y / s.cellSize))}
}

func (s *GridSystem) place(e *ecs.Entity) {
	if p, ok := position(e); ok {
		s.insert(e.ID(), s.key(p.X, p.Y))
	}
}

func position(e *ecs.Entity) (*component.Position, bool) {
	c, _ := e.GetComponent(component.NamePosition)
	p, ok := c.(*component.Position)
	return p, ok
}

func (s *GridSystem) evict(e *ecs.Entity) {
	k, ok := s.where[e.ID()]
	if !ok {
		return
	}
	s.drop(e.ID(), k)
}

// track re-buckets entities whose position crossed a cell edge.
func (s *GridSystem) track(_ time.Duration, es []*ecs.Entity) {
	for _, e := range es {
		p, ok := position(e)
		if !ok {
			continue
		}
		k := s.key(p.X, p.Y)
		old, ok := s.where[e.ID()]
		if ok && old == k {
			continue
		}
		if ok {
			s.drop(e.ID(), old)
		}
		s.insert(e.ID(), k)
	}
}

func (s *GridSystem) insert(id ecs.EntityID, k cellKey) {
	cell := s.cells[k]
	if cell == nil {
		cell = make(map[ecs.EntityID]struct{})
		s.cells[k] = cell
	}
	cell[id] = struct{}{}
	s.where[id] = k
}

func (s *GridSystem) drop(id ecs.EntityID, k cellKey) {
	delete(s.where, id)
	cell := s.cells[k]
	if cell == nil {
		return
	}
	delete(cell, id)
	if len(cell) == 0 {
		delete(s.cells, k)
	}
}

// Nearby returns the ids in the 3x3 block of cells around (x, y). Callers
// do their own fine-grained distance filtering. Order is unspecified.
func (s *GridSystem) Nearby(x, y float64) []ecs.EntityID {
	center := s.key(x, y)
	var out []ecs.EntityID
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for id := range s.cells[cellKey{cx: center.cx + dx, cy: center.cy + dy}] {
				out = append(out, id)
			}
		}
	}
	return out
}

// Cells returns the number of occupied cells.
func (s *GridSystem) Cells() int { return len(s.cells) }

func (s *GridSystem) Tracked() int { return len(s.where) }
