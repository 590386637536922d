package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/internal/config"
	"github.com/plus3/blockfall/sound"
)

const (
	margin       = 20
	sidebarWidth = 180
	debugWidth   = 760
)

// Game implements ebiten.Game. Its own scheduler reads input, advances the
// session and queues the debug windows, in that order.
type Game struct {
	session   *game.Session
	view      *game.View
	scheduler *engine.Scheduler
	logger    *zap.Logger

	cellSize int
	imgui    *debugui_ebiten.ImguiBackend
	overlay  *debugui.Overlay
	player   *sound.Player
}

// NewGame creates the window, the session and everything listening to it,
// then starts the first game.
func NewGame(cfg config.Config, logger *zap.Logger) (*Game, error) {
	session, err := game.NewSession(cfg.Game, game.WithLogger(logger.Named("session")))
	if err != nil {
		return nil, err
	}

	g := &Game{
		session:   session,
		view:      &game.View{},
		scheduler: engine.NewScheduler(),
		logger:    logger,
		cellSize:  cfg.Frontend.CellSize,
	}
	session.Subscribe(g.view.Handle)

	width, height := g.boardSize()
	width += sidebarWidth

	if cfg.Frontend.Debug {
		g.imgui = debugui_ebiten.NewImguiBackend("blockfall (debug)", width+debugWidth, max(height, 480))
		g.overlay = debugui.NewOverlay(
			debugui.NewInspector("Session", func() any { return session.Snapshot() }),
			debugui.NewPerformanceStats(120,
				debugui.StatsSource{Name: "frontend", Stats: g.scheduler.GetStats},
				debugui.StatsSource{Name: "session", Stats: session.SchedulerStats},
			),
		)
	} else {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle("blockfall")
	}

	if cfg.Frontend.Sound {
		g.player = sound.NewPlayer(logger.Named("sound"))
		session.Subscribe(g.player.Handle)
	}

	g.scheduler.Register(&inputSystem{
		session: session,
		overlay: g.overlay,
		left:    newKeyRepeat(),
		right:   newKeyRepeat(),
		down:    newKeyRepeat(),
	})
	g.scheduler.Register(&sessionTickSystem{session: session})
	if g.overlay != nil {
		g.scheduler.Register(g.overlay)
	}

	session.OnStart()
	logger.Info("window frontend ready",
		zap.Bool("debug", g.imgui != nil),
		zap.Bool("sound", g.player != nil && g.player.Enabled()))
	return g, nil
}

func (g *Game) boardSize() (int, int) {
	cfg := g.session.Config()
	return cfg.Width*g.cellSize + 2*margin, cfg.Height*g.cellSize + 2*margin
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.overlay != nil && inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.overlay.Toggle()
	}

	dt := time.Second / time.Duration(ebiten.TPS())
	if g.imgui != nil {
		g.imgui.Frame(func() { g.scheduler.Once(dt) })
		return nil
	}
	g.scheduler.Once(dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawBoard(screen, g.view, g.cellSize)
	drawSidebar(screen, g.view, g.session, g.cellSize)

	if g.imgui != nil {
		g.imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Close releases the audio device.
func (g *Game) Close() {
	if g.player != nil {
		g.player.Close()
	}
}
