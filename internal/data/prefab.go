package data

import (
	"fmt"
	"os"

	"github.com/cesgo/ces/internal/component"
	"github.com/cesgo/ces/internal/core/ecs"
	"gopkg.in/yaml.v3"
)

// Prefab is a named entity template: an ordered list of components, each
// decoded fresh for every entity built from it.
type Prefab struct {
	Name       string
	components []prefabComponent
}

type prefabComponent struct {
	name string
	node *yaml.Node
}

type prefabEntry struct {
	Name       string    `yaml:"name"`
	Components yaml.Node `yaml:"components"`
}

type prefabListFile struct {
	Prefabs []prefabEntry `yaml:"prefabs"`
}

// ComponentNames returns the prefab's component names in file order.
func (p *Prefab) ComponentNames() []string {
	out := make([]string, len(p.components))
	for i, c := range p.components {
		out[i] = c.name
	}
	return out
}

// Build creates an entity carrying fresh copies of the prefab's components.
// The entity is not added to w.
func (p *Prefab) Build(w *ecs.World) (*ecs.Entity, error) {
	e := w.NewEntity()
	for _, pc := range p.components {
		c, err := component.Decode(pc.name, pc.node)
		if err != nil {
			return nil, fmt.Errorf("prefab %s: %w", p.Name, err)
		}
		e.AddComponent(c)
	}
	return e, nil
}

// PrefabTable holds all prefabs indexed by name.
type PrefabTable struct {
	prefabs map[string]*Prefab
}

// LoadPrefabTable loads prefabs from a YAML file. Every component is decoded
// once at load so malformed data fails early.
func LoadPrefabTable(path string) (*PrefabTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prefabs: %w", err)
	}
	return parsePrefabs(raw)
}

func parsePrefabs(raw []byte) (*PrefabTable, error) {
	var f prefabListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse prefabs: %w", err)
	}
	t := &PrefabTable{prefabs: make(map[string]*Prefab, len(f.Prefabs))}
	for i := range f.Prefabs {
		entry := &f.Prefabs[i]
		if entry.Name == "" {
			return nil, fmt.Errorf("parse prefabs: entry %d has no name", i)
		}
		if _, dup := t.prefabs[entry.Name]; dup {
			return nil, fmt.Errorf("parse prefabs: duplicate prefab %q", entry.Name)
		}
		p := &Prefab{Name: entry.Name}
		comps := &entry.Components
		if comps.Kind != 0 && comps.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("parse prefabs: %s: components must be a mapping", entry.Name)
		}
		for j := 0; j+1 < len(comps.Content); j += 2 {
			name := comps.Content[j].Value
			node := comps.Content[j+1]
			if _, err := component.Decode(name, node); err != nil {
				return nil, fmt.Errorf("parse prefabs: %s: %w", entry.Name, err)
			}
			p.components = append(p.components, prefabComponent{name: name, node: node})
		}
		t.prefabs[p.Name] = p
	}
	return t, nil
}

// Get returns a prefab by name, or nil if not found.
func (t *PrefabTable) Get(name string) *Prefab {
	return t.prefabs[name]
}

// Count returns the number of loaded prefabs.
func (t *PrefabTable) Count() int {
	return len(t.prefabs)
}
