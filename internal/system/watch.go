package system

import (
	"strings"

	"github.com/cesgo/ces/internal/core/ecs"
	coresys "github.com/cesgo/ces/internal/core/system"
	"go.uber.org/zap"
)

// WatchSystem logs entities entering and leaving the watched families and
// keeps a running count per family.
type WatchSystem struct {
	*coresys.Base
	log    *zap.Logger
	counts map[string]int
}

func NewWatchSystem(log *zap.Logger, families ...[]string) *WatchSystem {
	s := &WatchSystem{Base: coresys.NewBase(), log: log, counts: make(map[string]int)}
	for _, names := range families {
		key := strings.Join(names, "+")
		s.On(names, func(e *ecs.Entity) {
			s.counts[key]++
			s.log.Debug("entity joined", zap.String("family", key), zap.Uint64("entity", uint64(e.ID())))
		})
		s.OnRemove(names, func(e *ecs.Entity) {
			s.counts[key]--
			s.log.Debug("entity left", zap.String("family", key), zap.Uint64("entity", uint64(e.ID())))
		})
	}
	return s
}

// Count returns the net joins observed for the family named by names.
func (s *WatchSystem) Count(names ...string) int {
	return s.counts[strings.Join(names, "+")]
}
