package game

import (
	"context"
	"time"
)

// Run ticks the session every interval and applies commands as they arrive,
// all on the calling goroutine, until ctx is done. A closed commands channel
// only stops input; ticking continues.
func (s *Session) Run(ctx context.Context, interval time.Duration, commands <-chan Command) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.OnTick(now.Sub(lastTime))
			lastTime = now
		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			s.Apply(cmd)
		}
	}
}
