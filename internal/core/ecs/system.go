package ecs

import "time"

// System is per-frame behaviour bound to a World. The World calls
// AddToWorld/RemovedFromWorld when the system is registered or removed and
// Update once per frame, in registration order.
//
// The hook methods declare what the system reacts to:
//   - On: fn runs when an entity starts matching names.
//   - OnRemove: fn runs when an entity stops matching names.
//   - OnUpdate: fn runs every Update with the current matches of names.
//
// internal/core/system.Base provides a ready implementation to embed.
type System interface {
	AddToWorld(w *World)
	RemovedFromWorld(w *World)
	Update(dt time.Duration)

	On(names []string, fn func(*Entity))
	OnRemove(names []string, fn func(*Entity))
	OnUpdate(names []string, fn func(dt time.Duration, entities []*Entity))
}
