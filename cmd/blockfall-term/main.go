package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/internal/config"
	"github.com/plus3/blockfall/internal/logs"
	"github.com/plus3/blockfall/sound"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (optional)")
	withSound := flag.Bool("sound", false, "play sound effects")
	flag.Parse()

	loader := config.NewLoader(*configPath)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// The screen owns the terminal, so logs only go to the file sink.
	logger, level := logs.New("blockfall-term", cfg.Log, nil)
	defer func() { _ = logger.Sync() }()
	loader.Watch(logger, func(c config.Config) {
		level.SetLevel(logs.ParseLevel(c.Log.Level))
	})

	if err := run(cfg, *withSound || cfg.Frontend.Sound, logger); err != nil {
		logger.Error("terminal frontend failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config, withSound bool, logger *zap.Logger) error {
	session, err := game.NewSession(cfg.Game, game.WithLogger(logger.Named("session")))
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	term := newTerminal(screen, session)
	session.Subscribe(term.handle)

	if withSound {
		player := sound.NewPlayer(logger.Named("sound"))
		defer player.Close()
		session.Subscribe(player.Handle)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	commands := make(chan game.Command, 16)
	commands <- game.Start
	go term.poll(ctx, cancel, commands)

	logger.Info("terminal frontend ready")
	session.Run(ctx, time.Second/time.Duration(cfg.Frontend.TickRate), commands)
	return nil
}
