package ecs

// Component is a named value attached to an entity. Beyond its name the
// payload is opaque to the runtime.
type Component interface {
	ComponentName() string
}

// Tag is a payload-less component; its value is its name.
type Tag string

func (t Tag) ComponentName() string { return string(t) }

// Record is a component carrying loosely typed fields, used for data that
// has no dedicated Go type (YAML prefabs, Lua scripts).
type Record struct {
	Name   string
	Fields map[string]any
}

func NewRecord(name string, fields map[string]any) *Record {
	if fields == nil {
		fields = make(map[string]any)
	}
	return &Record{Name: name, Fields: fields}
}

func (r *Record) ComponentName() string { return r.Name }

// slot is one entry of an entity's component table. A removed component
// leaves a slot with present=false; such a slot never counts as held.
type slot struct {
	value   Component
	present bool
}
