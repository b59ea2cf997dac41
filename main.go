package main

import (
	"flag"
	"log/slog"
	"math"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/raincity/config"
	"github.com/pthm-cable/raincity/game"
	"github.com/pthm-cable/raincity/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = use config, then time-based)")
	intensity := flag.Float64("intensity", math.NaN(), "Initial rainfall in mm/hour (default = use config)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	audio := flag.Bool("audio", true, "Play rain ambience")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if !math.IsNaN(*intensity) {
		cfg.Simulation.InitialIntensity = *intensity
	}
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}
	if err := cfg.Refresh(); err != nil {
		slog.Error("invalid config override", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Simulation.Seed
	}

	opts := game.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
	}

	if *headless {
		runHeadless(cfg, opts, *maxTicks)
		return
	}

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Rain City")
	defer rl.CloseWindow()
	rl.SetWindowState(rl.FlagWindowResizable)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	sim, err := game.NewSimulation(cfg, opts)
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}

	app := viewer.New(cfg, sim, viewer.Options{Audio: *audio})
	defer app.Unload()

	slog.Info("starting viewer", "seed", sim.Seed(), "session", sim.Session())

	for !rl.WindowShouldClose() {
		app.Update()
		app.Draw()

		if *maxTicks > 0 && app.Tick() >= *maxTicks {
			break
		}
	}
}

// runHeadless steps the simulation at the configured fixed delta with no
// window. Without -max-ticks it runs until killed.
func runHeadless(cfg *config.Config, opts game.Options, maxTicks int64) {
	sim, err := game.NewSimulation(cfg, opts)
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := sim.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}()

	slog.Info("starting headless simulation",
		"seed", sim.Seed(),
		"intensity", sim.Intensity(),
		"dt", cfg.Simulation.DT,
		"max_ticks", maxTicks,
	)

	for {
		sim.Update(cfg.Simulation.DT)

		if maxTicks > 0 && sim.Tick() >= maxTicks {
			sim.LogState()
			slog.Info("max ticks reached", "tick", sim.Tick())
			return
		}
	}
}
