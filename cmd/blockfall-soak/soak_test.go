package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/game"
)

func runSoak(t *testing.T, cfg game.Config, opts Options) *Report {
	t.Helper()
	session, err := game.NewSession(cfg)
	require.NoError(t, err)

	report := &Report{Options: opts, Game: cfg}
	Soak(context.Background(), session, opts, report)
	return report
}

func TestSoakPlaysManyGames(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.Seed = 42
	opts := Options{Tick: 100 * time.Millisecond, InputRate: 0.5, MaxUpdates: 20000, Seed: 42}

	report := runSoak(t, cfg, opts)

	assert.Equal(t, int64(20000), report.TotalUpdates)
	assert.Len(t, report.UpdateTime.Samples, 20000)
	assert.Equal(t, 2000*time.Second, report.SimulatedTime)
	assert.Positive(t, report.Games, "random play should top out")
	assert.Positive(t, report.Commands)

	cleared := 0
	for rows, n := range report.Clears {
		cleared += rows * n
	}
	assert.Equal(t, report.Lines, cleared)

	require.Len(t, report.Systems, 2)
	assert.Equal(t, "clearSystem", report.Systems[0].Name)
	assert.Equal(t, "gravitySystem", report.Systems[1].Name)
	assert.LessOrEqual(t, report.UpdateTime.Min, report.UpdateTime.Avg)
	assert.LessOrEqual(t, report.UpdateTime.Avg, report.UpdateTime.Max)
}

func TestSoakIsDeterministicForSeed(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.Seed = 7
	cfg.ClearDelay = 50 * time.Millisecond
	opts := Options{Tick: 50 * time.Millisecond, InputRate: 0.4, MaxUpdates: 5000, Seed: 7}

	a := runSoak(t, cfg, opts)
	b := runSoak(t, cfg, opts)

	assert.Equal(t, a.Games, b.Games)
	assert.Equal(t, a.Lines, b.Lines)
	assert.Equal(t, a.BestScore, b.BestScore)
	assert.Equal(t, a.Commands, b.Commands)
}

func TestSoakStopsOnContext(t *testing.T) {
	session, err := game.NewSession(game.DefaultConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := &Report{}
	Soak(ctx, session, Options{Tick: time.Millisecond}, report)
	assert.Zero(t, report.TotalUpdates)
	assert.Equal(t, game.Running, session.State())
}

func TestReportGenerate(t *testing.T) {
	report := &Report{
		Duration:     time.Second,
		Options:      Options{Seed: 9, Tick: 16 * time.Millisecond, InputRate: 0.25},
		Game:         game.DefaultConfig(),
		TotalUpdates: 3,
		Games:        1,
		Lines:        5,
		Clears:       [5]int{0, 1, 2, 0, 0},
		UpdateTime:   Stats{Samples: []time.Duration{time.Millisecond, 3 * time.Millisecond}},
	}
	report.UpdateTime.Finalize()

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "# Blockfall Soak Report")
	assert.Contains(t, out, "**Seed:** 9")
	assert.Contains(t, out, "**Input Rate:** 0.25")
	assert.Contains(t, out, "**Grid:** 10x20")
	assert.Contains(t, out, "**Clears by Size:** 1:1 2:2 3:0 4:0")
	assert.Contains(t, out, "**Avg:** 2ms")
	assert.NotContains(t, out, "| System |")
	assert.NotContains(t, out, "GC Pause")
}
