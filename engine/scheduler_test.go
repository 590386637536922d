package engine_test

import (
	"testing"
	"time"

	"github.com/plus3/blockfall/engine"
	"github.com/stretchr/testify/assert"
)

type CounterSystem struct {
	ExecuteCount int
	Elapsed      time.Duration
}

func (s *CounterSystem) Execute(frame *engine.Frame) {
	s.ExecuteCount++
	s.Elapsed += frame.DeltaTime
}

type orderSystem struct {
	name string
	log  *[]string
}

func (s *orderSystem) Execute(frame *engine.Frame) {
	*s.log = append(*s.log, s.name)
	frame.Commands.Defer(func() {
		*s.log = append(*s.log, "deferred "+s.name)
	})
}

func TestScheduler(t *testing.T) {
	t.Run("system execution and delta time", func(t *testing.T) {
		scheduler := engine.NewScheduler()
		counter := &CounterSystem{}
		scheduler.Register(counter)

		scheduler.Once(16 * time.Millisecond)
		scheduler.Once(4 * time.Millisecond)

		if counter.ExecuteCount != 2 {
			t.Errorf("expected CounterSystem to execute twice, got %d", counter.ExecuteCount)
		}
		if counter.Elapsed != 20*time.Millisecond {
			t.Errorf("expected 20ms elapsed, got %s", counter.Elapsed)
		}
	})

	t.Run("registration order and deferred flush", func(t *testing.T) {
		var log []string
		scheduler := engine.NewScheduler()
		scheduler.Register(&orderSystem{name: "first", log: &log})
		scheduler.Register(&orderSystem{name: "second", log: &log})

		scheduler.Once(time.Millisecond)

		assert.Equal(t, []string{"first", "second", "deferred first", "deferred second"}, log)
	})

	t.Run("stats", func(t *testing.T) {
		scheduler := engine.NewScheduler()
		scheduler.Register(&CounterSystem{})
		scheduler.RegisterFunc("sleepy", func(*engine.Frame) {
			time.Sleep(time.Millisecond)
		})

		empty := scheduler.GetStats()
		assert.Equal(t, 2, empty.SystemCount)
		assert.Zero(t, empty.Systems[0].MinDuration)

		for range 3 {
			scheduler.Once(time.Millisecond)
		}

		stats := scheduler.GetStats()
		assert.Equal(t, int64(3), stats.FrameCount)
		assert.Equal(t, int64(6), stats.TotalExecutions)
		assert.Equal(t, "CounterSystem", stats.Systems[0].Name)
		assert.Equal(t, "sleepy", stats.Systems[1].Name)

		sleepy := stats.Systems[1]
		assert.Equal(t, int64(3), sleepy.ExecutionCount)
		assert.GreaterOrEqual(t, sleepy.MinDuration, time.Millisecond)
		assert.LessOrEqual(t, sleepy.MinDuration, sleepy.AvgDuration)
		assert.LessOrEqual(t, sleepy.AvgDuration, sleepy.MaxDuration)
		assert.Equal(t, sleepy.TotalDuration, sleepy.AvgDuration*3+sleepy.TotalDuration%3)
	})
}
