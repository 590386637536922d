package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/internal/config"
	"github.com/plus3/blockfall/internal/logs"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (optional)")
	duration := flag.Duration("duration", 10*time.Second, "The total wall time the soak should run for.")
	maxUpdates := flag.Int64("updates", 0, "Stop after this many updates (0 means no limit).")
	tick := flag.Duration("tick", 16*time.Millisecond, "Simulated time per update.")
	inputRate := flag.Float64("input-rate", 0.3, "Chance of a random command per update.")
	seed := flag.Uint64("seed", 0, "Seed for commands and pieces (0 picks one).")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, _ := logs.New("blockfall-soak", cfg.Log, os.Stderr)
	defer func() { _ = logger.Sync() }()

	if *seed == 0 {
		*seed = rand.Uint64()
	}
	cfg.Game.Seed = *seed

	session, err := game.NewSession(cfg.Game, game.WithLogger(logger.Named("session")))
	if err != nil {
		logger.Fatal("invalid game config", zap.Error(err))
	}

	opts := Options{
		Tick:       *tick,
		InputRate:  *inputRate,
		MaxUpdates: *maxUpdates,
		Seed:       *seed,
	}

	report := &Report{
		Duration:       *duration,
		Options:        opts,
		Game:           cfg.Game,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("running soak",
		zap.Duration("duration", *duration),
		zap.Uint64("seed", *seed),
		zap.Duration("tick", *tick))

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	Soak(ctx, session, opts, report)
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("soak finished",
		zap.Int64("updates", report.TotalUpdates),
		zap.Int("games", report.Games),
		zap.Int("lines", report.Lines))

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("failed to generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}
