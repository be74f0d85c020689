package system

import (
	"time"

	"github.com/cesgo/ces/internal/core/ecs"
	"github.com/cesgo/ces/internal/core/event"
)

type hookKind int

const (
	hookAdded hookKind = iota
	hookRemoved
)

type binding struct {
	kind  hookKind
	names []string
	fn    func(*ecs.Entity)

	src *ecs.EventSource
	id  event.ListenerID
}

type updateHook struct {
	names []string
	fn    func(time.Duration, []*ecs.Entity)
}

// Base implements ecs.System by wiring the On/OnRemove/OnUpdate hooks to
// world families. Concrete systems embed *Base and declare their hooks in
// their constructor; hooks declared before the system joins a world are
// bound by AddToWorld.
//
// On and OnRemove only report transitions that happen while the system is
// in a world. Entities that already matched when it joined are visible to
// OnUpdate but do not trigger On.
type Base struct {
	world    *ecs.World
	bindings []*binding
	updates  []updateHook
}

func NewBase() *Base {
	return &Base{}
}

// World returns the world the system is bound to, or nil.
func (b *Base) World() *ecs.World { return b.world }

func (b *Base) AddToWorld(w *ecs.World) {
	b.world = w
	for _, bd := range b.bindings {
		b.bind(bd)
	}
}

// RemovedFromWorld unsubscribes every hook from the world's families.
func (b *Base) RemovedFromWorld(_ *ecs.World) {
	for _, bd := range b.bindings {
		if bd.src != nil {
			bd.src.Remove(bd.id)
			bd.src = nil
		}
	}
	b.world = nil
}

func (b *Base) On(names []string, fn func(*ecs.Entity)) {
	b.addBinding(hookAdded, names, fn)
}

func (b *Base) OnRemove(names []string, fn func(*ecs.Entity)) {
	b.addBinding(hookRemoved, names, fn)
}

func (b *Base) OnUpdate(names []string, fn func(dt time.Duration, entities []*ecs.Entity)) {
	b.updates = append(b.updates, updateHook{names: copyNames(names), fn: fn})
}

// Update runs the OnUpdate hooks in declaration order, each with a fresh
// snapshot of its family. It does nothing outside a world.
func (b *Base) Update(dt time.Duration) {
	if b.world == nil {
		return
	}
	for _, h := range b.updates {
		h.fn(dt, b.world.GetEntities(h.names...))
	}
}

func (b *Base) addBinding(kind hookKind, names []string, fn func(*ecs.Entity)) {
	bd := &binding{kind: kind, names: copyNames(names), fn: fn}
	b.bindings = append(b.bindings, bd)
	if b.world != nil {
		b.bind(bd)
	}
}

func (b *Base) bind(bd *binding) {
	if bd.kind == hookAdded {
		bd.src = b.world.EntityAdded(bd.names...)
	} else {
		bd.src = b.world.EntityRemoved(bd.names...)
	}
	bd.id = bd.src.Add(bd.fn)
}

func copyNames(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}
