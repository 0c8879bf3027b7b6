package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	custom_err "github.com/Viet-ph/kevent/internal/error"
)

const EnvPrefix = "KQWATCH"

var (
	DefaultTimeoutMs = 1000
	DefaultMaxEvents = 64
	DefaultLogLevel  = "info"
)

// Config describes one kqwatch run: what to register and how to wait.
type Config struct {
	// TimeoutMs bounds each wait; -1 blocks until an event arrives.
	TimeoutMs int      `mapstructure:"timeout_ms"`
	MaxEvents int      `mapstructure:"max_events"`
	LogLevel  string   `mapstructure:"log_level"`
	Files     []string `mapstructure:"files"`
	Pids      []int    `mapstructure:"pids"`
	Signals   []string `mapstructure:"signals"`
	// Timers holds periods in milliseconds.
	Timers []int `mapstructure:"timers"`
	Stdin  bool  `mapstructure:"stdin"`
	// Count stops the run after that many events; 0 means no limit.
	Count int `mapstructure:"count"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("timeout_ms", DefaultTimeoutMs)
	v.SetDefault("max_events", DefaultMaxEvents)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("files", []string{})
	v.SetDefault("pids", []int{})
	v.SetDefault("signals", []string{})
	v.SetDefault("timers", []int{})
	v.SetDefault("stdin", false)
	v.SetDefault("count", 0)
}

// Load reads defaults, the optional config file and KQWATCH_* environment
// variables into a validated Config. Flags bound to v before the call take
// precedence over all of them.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) Validate() error {
	if cfg.TimeoutMs < -1 {
		return fmt.Errorf("%w: timeout_ms must be -1 or greater, got %d", custom_err.ErrorInvalidWatch, cfg.TimeoutMs)
	}
	if cfg.MaxEvents <= 0 {
		return fmt.Errorf("%w: max_events must be positive, got %d", custom_err.ErrorInvalidWatch, cfg.MaxEvents)
	}
	if cfg.Count < 0 {
		return fmt.Errorf("%w: count must not be negative, got %d", custom_err.ErrorInvalidWatch, cfg.Count)
	}
	for _, pid := range cfg.Pids {
		if pid <= 0 {
			return fmt.Errorf("%w: pid %d", custom_err.ErrorInvalidWatch, pid)
		}
	}
	for _, period := range cfg.Timers {
		if period <= 0 {
			return fmt.Errorf("%w: timer period %dms", custom_err.ErrorInvalidWatch, period)
		}
	}
	for _, file := range cfg.Files {
		if file == "" {
			return fmt.Errorf("%w: empty file path", custom_err.ErrorInvalidWatch)
		}
	}
	if !cfg.HasWatches() {
		return custom_err.ErrorNoWatches
	}
	return nil
}

func (cfg *Config) HasWatches() bool {
	return len(cfg.Files) > 0 || len(cfg.Pids) > 0 || len(cfg.Signals) > 0 ||
		len(cfg.Timers) > 0 || cfg.Stdin
}

// Timeout is the wait bound as a duration; negative means block.
func (cfg *Config) Timeout() time.Duration {
	if cfg.TimeoutMs < 0 {
		return -1
	}
	return time.Duration(cfg.TimeoutMs) * time.Millisecond
}

