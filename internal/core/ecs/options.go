package ecs

import "go.uber.org/zap"

type Option func(*World)

// WithLogger sets the logger used for world lifecycle messages.
func WithLogger(log *zap.Logger) Option {
	return func(w *World) {
		if log != nil {
			w.log = log
		}
	}
}

// WithIDAllocator makes the world draw entity ids from ids, e.g. to share a
// sequence between a world and entities built before it.
func WithIDAllocator(ids *IDAllocator) Option {
	return func(w *World) {
		if ids != nil {
			w.ids = ids
		}
	}
}
