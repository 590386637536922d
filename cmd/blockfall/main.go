package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/blockfall/internal/config"
	"github.com/plus3/blockfall/internal/logs"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (optional)")
	debug := flag.Bool("debug", false, "show the ImGui debug overlay (F1 toggles)")
	sound := flag.Bool("sound", false, "play sound effects")
	flag.Parse()

	loader := config.NewLoader(*configPath)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg.Frontend.Debug = cfg.Frontend.Debug || *debug
	cfg.Frontend.Sound = cfg.Frontend.Sound || *sound

	logger, level := logs.New("blockfall", cfg.Log, os.Stderr)
	defer func() { _ = logger.Sync() }()

	loader.Watch(logger, func(c config.Config) {
		level.SetLevel(logs.ParseLevel(c.Log.Level))
	})

	g, err := NewGame(cfg, logger)
	if err != nil {
		logger.Error("failed to create game", zap.Error(err))
		os.Exit(1)
	}
	defer g.Close()

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game loop stopped", zap.Error(err))
		os.Exit(1)
	}
}
