package system

import (
	"context"
	"time"

	"github.com/cesgo/ces/internal/core/ecs"
	"go.uber.org/zap"
)

// Runner drives a World at a fixed tick. Each frame runs every system once
// and then flushes the world's deferred removals.
type Runner struct {
	world     *ecs.World
	tick      time.Duration
	maxFrames int
	frames    int
	log       *zap.Logger
}

// DefaultTick is used when NewRunner is given a non-positive tick.
const DefaultTick = 50 * time.Millisecond

func NewRunner(world *ecs.World, tick time.Duration, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	if tick <= 0 {
		log.Warn("invalid tick, using default", zap.Duration("tick", tick), zap.Duration("default", DefaultTick))
		tick = DefaultTick
	}
	return &Runner{world: world, tick: tick, log: log}
}

// SetMaxFrames stops Run after n frames. Zero means no limit.
func (r *Runner) SetMaxFrames(n int) {
	r.maxFrames = n
}

// Register adds s to the world's update order.
func (r *Runner) Register(s ecs.System) {
	r.world.AddSystem(s)
}

// TickRate returns the interval Run ticks at.
func (r *Runner) TickRate() time.Duration { return r.tick }

// Frames returns the number of frames run so far.
func (r *Runner) Frames() int { return r.frames }

// Tick runs a single frame with the given delta.
func (r *Runner) Tick(dt time.Duration) {
	r.world.Update(dt)
	if n := r.world.FlushRemovals(); n > 0 {
		r.log.Debug("flushed removals", zap.Int("count", n), zap.Int("frame", r.frames))
	}
	r.frames++
}

// Run ticks until ctx is done or the frame limit is reached.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	r.log.Info("loop started", zap.Duration("tick", r.tick), zap.Int("max_frames", r.maxFrames))
	for {
		if r.maxFrames > 0 && r.frames >= r.maxFrames {
			r.log.Info("frame limit reached", zap.Int("frames", r.frames))
			return nil
		}
		select {
		case <-ctx.Done():
			r.log.Info("loop stopped", zap.Int("frames", r.frames))
			return nil
		case <-ticker.C:
			r.Tick(r.tick)
		}
	}
}
