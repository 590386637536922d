// Package game runs one falling-block game: it owns the grid, the active
// piece, the score and the drop timer, and tells subscribers what changed.
//
// A Session is driven from a single goroutine. Frontends call OnTick once
// per frame, OnInput for each key press and OnStart to begin or restart,
// and render from the events they subscribed to.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/tetris"
)

// State is the phase of a session.
type State int

const (
	NotStarted State = iota
	Running
	Over
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Over:
		return "game over"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

const initialLevel = 1

// Session is the single owner of all game state. It is not safe for
// concurrent use.
type Session struct {
	cfg        Config
	logger     *zap.Logger
	randomizer tetris.Randomizer

	grid  *tetris.Grid
	piece *tetris.Piece
	state State
	score int
	level int
	lines int

	dropCounter time.Duration
	pending     tetris.PendingClear
	pendingLeft time.Duration

	scheduler   *engine.Scheduler
	outbox      *engine.Commands
	bus         *bus
	stateQueued bool
}

// Option customises a Session.
type Option func(*Session)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithRandomizer replaces the piece picker chosen by Config.Randomizer.
func WithRandomizer(r tetris.Randomizer) Option {
	return func(s *Session) {
		s.randomizer = r
	}
}

// NewSession creates a session in the NotStarted state.
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	s := &Session{
		cfg:       cfg,
		logger:    zap.NewNop(),
		grid:      tetris.NewGrid(cfg.Width, cfg.Height),
		level:     initialLevel,
		scheduler: engine.NewScheduler(),
		outbox:    engine.NewCommands(),
		bus:       newBus(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.randomizer == nil {
		s.randomizer = cfg.newRandomizer()
	}

	s.scheduler.Register(&clearSystem{session: s})
	s.scheduler.Register(&gravitySystem{session: s})

	return s, nil
}

// Subscribe registers fn for every event raised from now on and returns a
// function that removes it. Events raised while handling one call are
// delivered after that call has finished with the state. Handlers may read
// the session but must not drive it.
func (s *Session) Subscribe(fn func(Event)) (unsubscribe func()) {
	return s.bus.subscribe(fn)
}

// OnStart clears the board, resets score and level and spawns the first
// piece. It can be called at any time to restart.
func (s *Session) OnStart() {
	out := s.outbox
	defer out.Flush()

	s.reset()
	s.state = Running
	s.logger.Info("game started",
		zap.Int("width", s.cfg.Width),
		zap.Int("height", s.cfg.Height),
		zap.Duration("drop_interval", s.dropInterval()))

	s.publish(out, ScoreChanged{Score: s.score})
	s.publish(out, LevelChanged{Level: s.level})

	s.spawn()
	if tetris.Collides(s.grid, s.piece) {
		s.gameOver(out)
	}
	s.publishState(out)
}

// OnTick advances the drop timer by elapsed and drops the active piece when
// the current interval has passed. It does nothing unless the game is
// running.
func (s *Session) OnTick(elapsed time.Duration) {
	if s.state != Running {
		return
	}
	s.scheduler.Once(max(elapsed, 0))
}

// OnInput applies a player command and reports whether it changed anything.
// Moves and rotations that would collide are ignored. Commands are ignored
// unless the game is running.
func (s *Session) OnInput(cmd Command) bool {
	if s.state != Running {
		return false
	}

	out := s.outbox
	defer out.Flush()

	s.settle(out)

	var changed bool
	switch cmd {
	case MoveLeft:
		changed = tetris.Move(s.piece, s.grid, -1)
	case MoveRight:
		changed = tetris.Move(s.piece, s.grid, 1)
	case SoftDrop:
		s.drop(out)
		return true
	case RotateClockwise:
		changed = tetris.RotatePlayer(s.piece, s.grid, 1)
	case RotateCounterClockwise:
		changed = tetris.RotatePlayer(s.piece, s.grid, -1)
	default:
		return false
	}

	if changed {
		s.publishState(out)
	}
	return changed
}

// Apply routes Start to OnStart and every other command to OnInput.
func (s *Session) Apply(cmd Command) bool {
	if cmd == Start {
		s.OnStart()
		return true
	}
	return s.OnInput(cmd)
}

// State returns the current phase.
func (s *Session) State() State {
	return s.state
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Level returns the current level.
func (s *Session) Level() int {
	return s.level
}

// Lines returns the number of rows cleared this game.
func (s *Session) Lines() int {
	return s.lines
}

// Config returns the rules the session was created with.
func (s *Session) Config() Config {
	return s.cfg
}

// SchedulerStats returns timing statistics of the per-frame systems.
func (s *Session) SchedulerStats() *engine.SchedulerStats {
	return s.scheduler.GetStats()
}

// Snapshot is a copy of the observable session state.
type Snapshot struct {
	Grid        *tetris.Grid
	Piece       *tetris.Piece
	State       State
	Score       int
	Level       int
	Lines       int
	PendingRows []int
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Grid:        s.grid.Clone(),
		Piece:       s.piece.Clone(),
		State:       s.state,
		Score:       s.score,
		Level:       s.level,
		Lines:       s.lines,
		PendingRows: s.pending.Rows(),
	}
}

func (s *Session) dropInterval() time.Duration {
	return s.cfg.DropInterval - time.Duration(s.level)*s.cfg.SpeedStep
}

// drop moves the piece down a row. A piece that cannot move lands: it is
// merged, full rows are cleared, and the next piece spawns. The game ends
// only if that piece collides once the cleared rows are gone.
func (s *Session) drop(out *engine.Commands) {
	s.settle(out)
	s.dropCounter = 0
	defer s.publishState(out)

	if tetris.Drop(s.piece, s.grid) {
		return
	}

	tetris.Merge(s.grid, s.piece)
	s.sweep(out)
	s.spawn()
	if !tetris.Collides(s.grid, s.piece) {
		return
	}
	// Marked rows still hold their place in the grid.
	s.settle(out)
	if tetris.Collides(s.grid, s.piece) {
		s.gameOver(out)
	}
}

func (s *Session) spawn() {
	s.piece = tetris.Spawn(s.randomizer.Next(), s.grid.Width())
}

func (s *Session) sweep(out *engine.Commands) {
	if s.cfg.ClearDelay > 0 {
		pending := tetris.MarkFull(s.grid)
		if !pending.Empty() {
			s.pending = pending
			s.pendingLeft = s.cfg.ClearDelay
			s.logger.Debug("rows marked", zap.Ints("rows", pending.Rows()))
		}
		return
	}

	cleared, delta := tetris.Sweep(s.grid, s.cfg.UnitScore)
	s.award(out, cleared, delta)
}

// settle finishes a delayed clear right away. Nothing may move while marked
// rows are still in the grid.
func (s *Session) settle(out *engine.Commands) {
	if s.pending.Empty() {
		return
	}

	cleared, delta := s.pending.Finalize(s.grid, s.cfg.UnitScore)
	s.pending = tetris.PendingClear{}
	s.pendingLeft = 0
	s.award(out, cleared, delta)
	s.publishState(out)
}

func (s *Session) award(out *engine.Commands, cleared, delta int) {
	if cleared == 0 {
		return
	}

	s.score += delta
	s.lines += cleared
	s.logger.Debug("rows cleared",
		zap.Int("rows", cleared),
		zap.Int("points", delta),
		zap.Int("score", s.score))

	s.publish(out, LinesCleared{Count: cleared, Points: delta})
	s.publish(out, ScoreChanged{Score: s.score})
}

// gameOver resets the board and leaves no active piece until OnStart.
func (s *Session) gameOver(out *engine.Commands) {
	final := s.score
	s.logger.Info("game over",
		zap.Int("score", final),
		zap.Int("lines", s.lines),
		zap.Int("level", s.level))

	s.publish(out, GameOver{FinalScore: final})

	s.reset()
	s.piece = nil
	s.state = Over

	s.publish(out, ScoreChanged{Score: s.score})
	s.publish(out, LevelChanged{Level: s.level})
}

// reset drops any delayed clear before wiping the grid so it can never be
// applied to the fresh board.
func (s *Session) reset() {
	s.pending = tetris.PendingClear{}
	s.pendingLeft = 0
	s.grid.Clear()
	s.score = 0
	s.level = initialLevel
	s.lines = 0
	s.dropCounter = 0
}

func (s *Session) publish(out *engine.Commands, ev Event) {
	out.Defer(func() {
		s.bus.publish(ev)
	})
}

// publishState queues at most one StateChanged per flush, built when the
// flush reaches it.
func (s *Session) publishState(out *engine.Commands) {
	if s.stateQueued {
		return
	}
	s.stateQueued = true

	out.Defer(func() {
		s.stateQueued = false
		s.bus.publish(StateChanged{
			Grid:  s.grid.Clone(),
			Piece: s.piece.Clone(),
		})
	})
}
