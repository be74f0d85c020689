package data

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/cesgo/ces/internal/component"
	"github.com/cesgo/ces/internal/core/ecs"
	"gopkg.in/yaml.v3"
)

// SpawnEntry defines which prefab to spawn, how many, and where.
type SpawnEntry struct {
	Prefab  string  `yaml:"prefab"`
	Count   int     `yaml:"count"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	RandomX float64 `yaml:"randomx"`
	RandomY float64 `yaml:"randomy"`
}

type spawnListFile struct {
	Spawns []SpawnEntry `yaml:"spawns"`
}

// LoadSpawnList loads spawn entries from a YAML file.
func LoadSpawnList(path string) ([]SpawnEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn_list: %w", err)
	}
	var f spawnListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse spawn_list: %w", err)
	}
	return f.Spawns, nil
}

// Spawn builds and adds the entities described by list. Entities whose
// prefab has a Position are placed at (X, Y) plus a uniform offset within
// ±RandomX/±RandomY. It returns the number of entities added.
func Spawn(w *ecs.World, prefabs *PrefabTable, list []SpawnEntry, rng *rand.Rand) (int, error) {
	n := 0
	for _, entry := range list {
		p := prefabs.Get(entry.Prefab)
		if p == nil {
			return n, fmt.Errorf("spawn: unknown prefab %q", entry.Prefab)
		}
		for i := 0; i < entry.Count; i++ {
			e, err := p.Build(w)
			if err != nil {
				return n, fmt.Errorf("spawn: %w", err)
			}
			if c, ok := e.GetComponent(component.NamePosition); ok {
				if pos, ok := c.(*component.Position); ok {
					pos.X = entry.X + jitter(rng, entry.RandomX)
					pos.Y = entry.Y + jitter(rng, entry.RandomY)
				}
			}
			if err := w.AddEntity(e); err != nil {
				return n, fmt.Errorf("spawn %s: %w", entry.Prefab, err)
			}
			n++
		}
	}
	return n, nil
}

func jitter(rng *rand.Rand, spread float64) float64 {
	if spread <= 0 || rng == nil {
		return 0
	}
	return (rng.Float64()*2 - 1) * spread
}
