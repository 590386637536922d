package main

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/plus3/blockfall/game"
)

// Options controls how a soak drives the session.
type Options struct {
	Tick       time.Duration
	InputRate  float64
	MaxUpdates int64
	Seed       uint64
}

var playerCommands = []game.Command{
	game.MoveLeft,
	game.MoveRight,
	game.SoftDrop,
	game.RotateClockwise,
	game.RotateCounterClockwise,
}

// Soak plays random commands against session until ctx ends or
// opts.MaxUpdates is reached, restarting after every game over, and
// records the outcome in report.
func Soak(ctx context.Context, session *game.Session, opts Options, report *Report) {
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed>>1|1))

	unsubscribe := session.Subscribe(func(ev game.Event) {
		switch ev := ev.(type) {
		case game.LinesCleared:
			report.Lines += ev.Count
			report.Clears[min(ev.Count, len(report.Clears)-1)]++
		case game.ScoreChanged:
			report.BestScore = max(report.BestScore, ev.Score)
		case game.GameOver:
			report.Games++
		}
	})
	defer unsubscribe()

	session.OnStart()

	startTime := time.Now()
	var totalUpdates int64

Loop:
	for opts.MaxUpdates == 0 || totalUpdates < opts.MaxUpdates {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		updateStart := time.Now()
		if session.State() != game.Running {
			session.OnStart()
		}
		if rng.Float64() < opts.InputRate {
			session.Apply(playerCommands[rng.IntN(len(playerCommands))])
			report.Commands++
		}
		session.OnTick(opts.Tick)
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		totalUpdates++
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.SimulatedTime = time.Duration(totalUpdates) * opts.Tick
	report.UpdateTime.Finalize()
	report.Systems = session.SchedulerStats().Systems
}
