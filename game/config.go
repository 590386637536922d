package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/plus3/blockfall/tetris"
)

// Randomizer names accepted by Config.Randomizer.
const (
	RandomizerUniform = "uniform"
	RandomizerBag     = "bag"
)

// Config holds the rules of a session. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`

	// DropInterval is the base time between automatic drops. Each level
	// shortens it by SpeedStep.
	DropInterval time.Duration `mapstructure:"drop_interval"`
	SpeedStep    time.Duration `mapstructure:"speed_step"`

	// UnitScore is what a single cleared row earns.
	UnitScore int `mapstructure:"unit_score"`

	// ClearDelay keeps cleared rows blank on screen for a moment before
	// they are removed. Zero removes them immediately.
	ClearDelay time.Duration `mapstructure:"clear_delay"`

	Randomizer string `mapstructure:"randomizer"`
	// Seed feeds the randomizer. Zero picks a random seed.
	Seed uint64 `mapstructure:"seed"`
}

// DefaultConfig returns the classic rules: a 10x20 grid, one second drops
// sped up by 50ms per level, 10 points per row.
func DefaultConfig() Config {
	return Config{
		Width:        10,
		Height:       20,
		DropInterval: time.Second,
		SpeedStep:    50 * time.Millisecond,
		UnitScore:    10,
		Randomizer:   RandomizerUniform,
	}
}

// Validate reports the first problem with the configuration.
func (c Config) Validate() error {
	var errs []error
	if c.Width < 4 || c.Height < 4 {
		errs = append(errs, fmt.Errorf("grid %dx%d is smaller than the largest piece", c.Width, c.Height))
	}
	if c.DropInterval <= 0 {
		errs = append(errs, fmt.Errorf("drop interval %s must be positive", c.DropInterval))
	}
	if c.SpeedStep < 0 {
		errs = append(errs, fmt.Errorf("speed step %s must not be negative", c.SpeedStep))
	}
	if c.DropInterval > 0 && c.DropInterval <= time.Duration(initialLevel)*c.SpeedStep {
		errs = append(errs, fmt.Errorf("drop interval %s must be longer than speed step %s", c.DropInterval, c.SpeedStep))
	}
	if c.UnitScore < 0 {
		errs = append(errs, fmt.Errorf("unit score %d must not be negative", c.UnitScore))
	}
	if c.ClearDelay < 0 {
		errs = append(errs, fmt.Errorf("clear delay %s must not be negative", c.ClearDelay))
	}
	if c.Randomizer != RandomizerUniform && c.Randomizer != RandomizerBag {
		errs = append(errs, fmt.Errorf("unknown randomizer %q", c.Randomizer))
	}
	return errors.Join(errs...)
}

func (c Config) newRandomizer() tetris.Randomizer {
	seed := c.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	if c.Randomizer == RandomizerBag {
		return tetris.NewBagRandomizer(seed)
	}
	return tetris.NewUniformRandomizer(seed)
}
