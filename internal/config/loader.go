package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Loader reads Config through one viper instance so the same file can be
// watched after the first load.
type Loader struct {
	v    *viper.Viper
	path string
}

// NewLoader prepares a loader for path. An empty path means defaults and
// environment only.
func NewLoader(path string) *Loader {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	}
	return &Loader{v: v, path: path}
}

// Load reads a config file at path, applies environment overrides and
// validates the result.
func Load(path string) (Config, error) {
	return NewLoader(path).Load()
}

// Load reads the file, if any, and decodes the merged settings.
func (l *Loader) Load() (Config, error) {
	if l.path != "" {
		if err := l.v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", l.path, err)
		}
	}
	return l.decode()
}

// Watch calls apply with the new settings every time the file changes.
// apply runs on the watcher's goroutine. Invalid edits are logged and
// skipped. Watch does nothing without a file.
func (l *Loader) Watch(logger *zap.Logger, apply func(Config)) {
	if l.path == "" {
		return
	}

	l.v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := l.decode()
		if err != nil {
			logger.Warn("ignoring config change", zap.String("file", e.Name), zap.Error(err))
			return
		}
		logger.Info("config reloaded", zap.String("file", e.Name), zap.Stringer("op", e.Op))
		apply(cfg)
	})
	l.v.WatchConfig()
}

func (l *Loader) decode() (Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := l.v.Unmarshal(&cfg, hook); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that
// the file does not mention.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("game.width", d.Game.Width)
	v.SetDefault("game.height", d.Game.Height)
	v.SetDefault("game.drop_interval", d.Game.DropInterval)
	v.SetDefault("game.speed_step", d.Game.SpeedStep)
	v.SetDefault("game.unit_score", d.Game.UnitScore)
	v.SetDefault("game.clear_delay", d.Game.ClearDelay)
	v.SetDefault("game.randomizer", d.Game.Randomizer)
	v.SetDefault("game.seed", d.Game.Seed)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size", d.Log.MaxSize)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age", d.Log.MaxAge)
	v.SetDefault("log.compress", d.Log.Compress)
	v.SetDefault("log.dev", d.Log.Dev)

	v.SetDefault("frontend.cell_size", d.Frontend.CellSize)
	v.SetDefault("frontend.tick_rate", d.Frontend.TickRate)
	v.SetDefault("frontend.sound", d.Frontend.Sound)
	v.SetDefault("frontend.debug", d.Frontend.Debug)
}
