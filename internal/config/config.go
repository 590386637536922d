// Package config loads blockfall settings from an optional YAML file and
// BLOCKFALL_* environment variables.
package config

import (
	"errors"
	"fmt"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/internal/logs"
)

// EnvPrefix is prepended to every environment override, with dots in the
// key replaced by underscores: BLOCKFALL_GAME_CLEAR_DELAY=150ms.
const EnvPrefix = "BLOCKFALL"

// Config is the complete set of settings.
type Config struct {
	Game     game.Config    `mapstructure:"game"`
	Log      logs.Config    `mapstructure:"log"`
	Frontend FrontendConfig `mapstructure:"frontend"`
}

// FrontendConfig is shared by the window and terminal frontends.
type FrontendConfig struct {
	CellSize int  `mapstructure:"cell_size"` // pixels
	TickRate int  `mapstructure:"tick_rate"` // ticks per second
	Sound    bool `mapstructure:"sound"`
	Debug    bool `mapstructure:"debug"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Game: game.DefaultConfig(),
		Log: logs.Config{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
		},
		Frontend: FrontendConfig{
			CellSize: 24,
			TickRate: 60,
		},
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	var errs []error
	if err := c.Game.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Frontend.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("cell size %d must be positive", c.Frontend.CellSize))
	}
	if c.Frontend.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick rate %d must be positive", c.Frontend.TickRate))
	}
	return errors.Join(errs...)
}
