package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Demo      DemoConfig      `toml:"demo"`
	Loop      LoopConfig      `toml:"loop"`
	Data      DataConfig      `toml:"data"`
	Scripting ScriptingConfig `toml:"scripting"`
	Logging   LoggingConfig   `toml:"logging"`
}

type DemoConfig struct {
	Name string `toml:"name"`
}

type LoopConfig struct {
	TickRate  time.Duration `toml:"tick_rate"`
	MaxFrames int           `toml:"max_frames"` // 0 = run until interrupted
}

type DataConfig struct {
	PrefabFile string `toml:"prefab_file"`
	SpawnFile  string `toml:"spawn_file"`
}

type ScriptingConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Loop.TickRate <= 0 {
		return nil, fmt.Errorf("config %s: loop.tick_rate must be positive", path)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Demo: DemoConfig{
			Name: "cesdemo",
		},
		Loop: LoopConfig{
			TickRate:  50 * time.Millisecond,
			MaxFrames: 0,
		},
		Data: DataConfig{
			PrefabFile: "data/yaml/prefabs.yaml",
			SpawnFile:  "data/yaml/spawn_list.yaml",
		},
		Scripting: ScriptingConfig{
			Enabled: true,
			Dir:     "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
