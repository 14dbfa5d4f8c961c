package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/l1jgo/horde/internal/config"
	"github.com/l1jgo/horde/internal/data"
	"github.com/l1jgo/horde/internal/persist"
	"github.com/l1jgo/horde/internal/scripting"
	"github.com/l1jgo/horde/internal/sim"
	"github.com/l1jgo/horde/internal/system"
	"github.com/l1jgo/horde/internal/world"
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

func printBanner(seed uint32) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              hordesim  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      pooled horde simulation engine       \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mseed:\033[0m %d\n\n", seed)
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

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Simulation host ───────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/horde.toml"
	if p := os.Getenv("HORDE_CONFIG"); p != "" {
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

	printBanner(cfg.Simulation.Seed)

	// 3. Load presets
	printSection("presets")
	presets, err := data.LoadPresets(cfg.Data.Dir)
	if err != nil {
		return fmt.Errorf("load presets: %w", err)
	}
	printStat("enemy prefabs", presets.Enemies.Count())
	printStat("projectile prefabs", presets.Projectiles.Count())
	printStat("spawners", len(presets.Spawners.Spawners))
	printStat("shooters", len(presets.Spawners.Shooters))

	var walls world.SweepQuery
	if cfg.Data.Walls != "" {
		wallMap, err := data.LoadWallMap(cfg.Data.Walls)
		if err != nil {
			return fmt.Errorf("load walls: %w", err)
		}
		walls = wallMap
		printStat("wall tiles", wallMap.SolidCount())
	}
	fmt.Println()

	// 4. Optional damage scripts
	var damage system.DamageModifier
	if cfg.Scripting.Enabled {
		printSection("scripting")
		luaEngine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return fmt.Errorf("lua engine: %w", err)
		}
		defer luaEngine.Close()
		damage = luaEngine
		printOK("Lua damage hooks loaded")
		fmt.Println()
	}

	// 5. Optional run history
	var runs *persist.RunRepo
	if cfg.Database.Enabled {
		printSection("database")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		repo, version, err := persist.Open(ctx, cfg.Database, log)
		cancel()
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer repo.Close()
		runs = repo
		printOK(fmt.Sprintf("PostgreSQL ready (schema version %d)", version))
		fmt.Println()
	}

	// 6. Build the engine
	engine, err := sim.New(sim.Options{
		Config:  cfg,
		Presets: presets,
		Walls:   walls,
		Damage:  damage,
		Log:     log,
	})
	if err != nil {
		return fmt.Errorf("sim: %w", err)
	}
	var autoFire *sim.AutoFire
	if cfg.Simulation.AutoFire {
		autoFire = sim.NewAutoFire(engine, cfg.Simulation.FireInterval)
	}

	// 7. Frame loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Simulation.TickRate)
	defer ticker.Stop()

	printSection("running")
	if cfg.Simulation.Frames > 0 {
		printReady(fmt.Sprintf("%d frames (tick: %s)", cfg.Simulation.Frames, cfg.Simulation.TickRate))
	} else {
		printReady(fmt.Sprintf("until interrupted (tick: %s)", cfg.Simulation.TickRate))
	}
	fmt.Println()

	startedAt := time.Now()
	const reportInterval = 300 // frames

loop:
	for {
		select {
		case <-ticker.C:
			if autoFire != nil {
				autoFire.Tick(cfg.Simulation.TickRate)
			}
			engine.Step(cfg.Simulation.TickRate)

			stats := engine.Stats()
			if stats.Frame%reportInterval == 0 {
				logStats(log, stats)
			}
			if cfg.Simulation.Frames > 0 && stats.Frame >= uint64(cfg.Simulation.Frames) {
				break loop
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			break loop
		}
	}

	stats := engine.Stats()
	logStats(log, stats)

	if runs != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		id, err := runs.Record(ctx, summarize(engine, cfg.Simulation.Seed, startedAt))
		if err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		log.Info("run recorded", zap.String("run_id", id.String()))
	}
	log.Info("simulation stopped")
	return nil
}

func logStats(log *zap.Logger, s sim.Stats) {
	log.Info("frame stats",
		zap.Uint64("frame", s.Frame),
		zap.Float64("elapsed", s.Elapsed),
		zap.Int("enemies", s.ActiveEnemies),
		zap.Int("projectiles", s.ActiveProjectiles),
		zap.Int("effects", s.Effects),
		zap.Uint64("kills", s.Kills),
		zap.Uint64("spawned", s.Spawned),
		zap.Uint64("fired", s.Fired),
		zap.Float64("player_health", s.PlayerHealth),
	)
}

func summarize(e *sim.Engine, seed uint32, startedAt time.Time) persist.RunSummary {
	stats := e.Stats()
	out := persist.RunSummary{
		Seed:      seed,
		Frames:    stats.Frame,
		Elapsed:   stats.Elapsed,
		Kills:     stats.Kills,
		Spawned:   stats.Spawned,
		Fired:     stats.Fired,
		StartedAt: startedAt,
		EndedAt:   time.Now(),
	}
	for _, sp := range e.State.Spawners {
		row := persist.SpawnerSummary{ID: sp.ID, Alive: sp.State.AliveCount}
		if sp.Pool != nil {
			row.PoolTotal = sp.Pool.Total()
		}
		out.Spawners = append(out.Spawners, row)
	}
	return out
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
