package component

import (
	"fmt"

	"github.com/cesgo/ces/internal/core/ecs"
	"gopkg.in/yaml.v3"
)

// Fielder is a component whose numeric fields can be read and written by
// name. Lua scripts access components through it.
type Fielder interface {
	ecs.Component
	Fields() map[string]float64
	SetField(name string, v float64) bool
}

var factories = map[string]func() ecs.Component{
	NamePosition: func() ecs.Component { return &Position{} },
	NameVelocity: func() ecs.Component { return &Velocity{} },
	NameHealth:   func() ecs.Component { return &Health{} },
	NameLifetime: func() ecs.Component { return &Lifetime{} },
}

// Known reports whether name has a dedicated Go type.
func Known(name string) bool {
	_, ok := factories[name]
	return ok
}

// New returns a zero value of the component type registered under name, or
// an empty Record for unknown names.
func New(name string) ecs.Component {
	if f, ok := factories[name]; ok {
		return f()
	}
	return ecs.NewRecord(name, nil)
}

// Decode builds the component called name from a YAML node. Unknown names
// decode into a Record holding the node's mapping. A nil node yields the
// zero value, so a bare name in a prefab acts as a tag.
func Decode(name string, node *yaml.Node) (ecs.Component, error) {
	c := New(name)
	if node == nil || node.Kind == 0 {
		return c, nil
	}
	if r, ok := c.(*ecs.Record); ok {
		if err := node.Decode(&r.Fields); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		if r.Fields == nil {
			r.Fields = make(map[string]any)
		}
		return r, nil
	}
	if err := node.Decode(c); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return c, nil
}
