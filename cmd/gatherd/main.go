package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/gatherd/internal/config"
	"github.com/udisondev/gatherd/internal/data"
	"github.com/udisondev/gatherd/internal/db"
	"github.com/udisondev/gatherd/internal/gather"
	"github.com/udisondev/gatherd/internal/placement"
	"github.com/udisondev/gatherd/internal/reward"
	"github.com/udisondev/gatherd/internal/spawn"
	"github.com/udisondev/gatherd/internal/terrain"
	"github.com/udisondev/gatherd/internal/world"
	"github.com/udisondev/gatherd/internal/zone"
)

const ConfigPath = "config/gatherd.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil && err != context.Canceled {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := ConfigPath
	if p := os.Getenv("GATHERD_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadGatherServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("gatherd starting", "log_level", cfg.LogLevel)

	// Database + migrations
	dsn := cfg.Database.DSN()
	if err := db.RunMigrations(ctx, dsn); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	database, err := db.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	// Object template catalog
	catalog, err := data.LoadCatalog(cfg.TemplatesPath)
	if err != nil {
		return fmt.Errorf("loading object templates: %w", err)
	}
	slog.Info("template catalog ready", "templates", catalog.Count())

	// Terrain heightmaps are optional; without them terrain-projected zones
	// keep retrying and never spawn.
	terrainEngine := terrain.NewEngine()
	if cfg.TerrainDir != "" {
		if err := terrainEngine.LoadHeightmaps(cfg.TerrainDir); err != nil {
			return fmt.Errorf("loading heightmaps: %w", err)
		}
	}

	// Zones
	zoneRepo := db.NewZoneRepository(database.Pool())
	zones, err := zoneRepo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("loading zones: %w", err)
	}

	registry := zone.NewRegistry()
	for _, zc := range zones {
		if err := registry.AddZone(zc); err != nil {
			return fmt.Errorf("registering zone: %w", err)
		}
	}

	// Core wiring
	worldInstance := world.New(terrainEngine)
	placer := placement.NewEngine(worldInstance, cfg.PlacementMaxAttempts)

	rewardLedger := reward.NewLedger(db.NewRewardRepository(database.Pool()), cfg.RewardWriteTimeout)
	defer rewardLedger.Flush()

	interactions := newInteractionAdapter()
	avatars := newAvatarAdapter()

	collector := gather.NewCollector(
		registry,
		worldInstance,
		avatars,
		rewardLedger,
		interactions,
		cfg.InteractionRadius,
	)
	interactions.bind(collector)

	scheduler := spawn.NewScheduler(registry, placer, catalog, worldInstance, interactions)

	slog.Info("gatherd started", "zones", len(zones))
	return scheduler.Run(ctx)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
