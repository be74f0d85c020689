package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cesgo/ces/internal/component"
	"github.com/cesgo/ces/internal/config"
	"github.com/cesgo/ces/internal/core/ecs"
	"github.com/cesgo/ces/internal/core/event"
	coresys "github.com/cesgo/ces/internal/core/system"
	"github.com/cesgo/ces/internal/data"
	"github.com/cesgo/ces/internal/scripting"
	"github.com/cesgo/ces/internal/system"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Printf("\033[36;1m  │\033[0m %-41s \033[36;1m│\033[0m\n", name+" · ces runtime")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main loop ──────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/demo.toml"
	if p := os.Getenv("CESDEMO_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Demo.Name)

	// 3. World and data
	world := ecs.NewWorld(ecs.WithLogger(log))
	bus := event.NewBus()

	printSection("data")
	prefabs, err := data.LoadPrefabTable(cfg.Data.PrefabFile)
	if err != nil {
		return fmt.Errorf("load prefabs: %w", err)
	}
	printStat("prefabs", prefabs.Count())

	spawnList, err := data.LoadSpawnList(cfg.Data.SpawnFile)
	if err != nil {
		return fmt.Errorf("load spawn list: %w", err)
	}

	// 4. Systems, registration order is update order
	runner := coresys.NewRunner(world, cfg.Loop.TickRate, log)
	runner.SetMaxFrames(cfg.Loop.MaxFrames)

	watch := system.NewWatchSystem(log,
		[]string{component.NamePosition, component.NameVelocity},
		[]string{component.NameHealth},
	)
	runner.Register(watch)
	runner.Register(system.NewMovementSystem())
	grid := system.NewGridSystem(10)
	runner.Register(grid)
	runner.Register(system.NewRegenSystem(bus))
	runner.Register(system.NewLifetimeSystem(bus))

	if cfg.Scripting.Enabled {
		lua, err := scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer lua.Close()
		for _, s := range lua.Systems() {
			runner.Register(s)
		}
		printStat("lua systems", len(lua.Systems()))
	}
	runner.Register(system.NewCleanupSystem(bus, log))
	printStat("systems", world.Stats().Systems)

	// 5. Spawn after systems so their hooks see every entity arrive
	spawned, err := data.Spawn(world, prefabs, spawnList, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		return fmt.Errorf("spawn: %w", err)
	}
	printStat("entities", spawned)
	fmt.Println()

	// 6. Run until interrupted or the frame limit is hit
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printSection("loop")
	printReady(fmt.Sprintf("tick %s", cfg.Loop.TickRate))
	fmt.Println()

	if err := runner.Run(ctx); err != nil {
		return err
	}

	st := world.Stats()
	log.Info("world stopped",
		zap.Int("frames", runner.Frames()),
		zap.Int("entities", st.Entities),
		zap.Int("families", st.Families),
		zap.Int("moving", watch.Count(component.NamePosition, component.NameVelocity)),
		zap.Int("occupied_cells", grid.Cells()),
	)
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
