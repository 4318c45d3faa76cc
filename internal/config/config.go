package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/prepengine/internal/difficulty"
	"github.com/abhisek/prepengine/internal/exam"
	"github.com/abhisek/prepengine/internal/mastery"
	"github.com/abhisek/prepengine/internal/store"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PREPENGINE_LOG_LEVEL.
const EnvPrefix = "PREPENGINE"

// Config holds all configuration for prepengine.
type Config struct {
	DB         string                `mapstructure:"db"`
	Log        LogConfig             `mapstructure:"log"`
	Mastery    mastery.Params        `mapstructure:"mastery"`
	Difficulty difficulty.Thresholds `mapstructure:"difficulty"`
	Exam       exam.Blueprint        `mapstructure:"exam"`
	Scoring    ScoringConfig         `mapstructure:"scoring"`
	Practice   PracticeConfig        `mapstructure:"practice"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ScoringConfig holds the exam scale.
type ScoringConfig struct {
	Floor          int    `mapstructure:"floor"`
	Span           int    `mapstructure:"span"`
	RevisingPrefix string `mapstructure:"revising_prefix"`
}

// Scale returns the scoring scale.
func (s ScoringConfig) Scale() exam.Scale {
	return exam.Scale{Floor: s.Floor, Span: s.Span}
}

// PracticeConfig holds practice session settings.
type PracticeConfig struct {
	RecentWindow int `mapstructure:"recent_window"`
}

// Load reads configuration into v from defaults, an optional YAML file,
// PREPENGINE_* environment variables and any flags already bound to v,
// in increasing priority. An explicit file must exist; the default
// search locations may be empty.
func Load(v *viper.Viper, file string) (*Config, error) {
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("prepengine")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values the engine cannot repair on its own.
func (c *Config) Validate() error {
	if !c.Difficulty.Valid() {
		return fmt.Errorf("difficulty thresholds: need 0 < low (%v) < high (%v) <= 100",
			c.Difficulty.Low, c.Difficulty.High)
	}
	if c.Scoring.Span <= 0 {
		return fmt.Errorf("scoring.span must be positive, got %d", c.Scoring.Span)
	}
	if c.Exam.ELACount < 0 || c.Exam.MathCount < 0 {
		return fmt.Errorf("exam counts must not be negative")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// DBPath returns the configured database path, falling back to the
// per-user data directory.
func (c *Config) DBPath() (string, error) {
	if c.DB != "" {
		return c.DB, store.EnsureDir(c.DB)
	}
	return store.DefaultDBPath()
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("db", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	mp := mastery.DefaultParams()
	v.SetDefault("mastery.alpha", mp.Alpha)
	v.SetDefault("mastery.learning_rate", mp.LearningRate)
	v.SetDefault("mastery.trend_margin", mp.TrendMargin)
	v.SetDefault("mastery.min_trend_samples", mp.MinTrendSamples)

	v.SetDefault("difficulty.low", difficulty.DefaultLowThreshold)
	v.SetDefault("difficulty.high", difficulty.DefaultHighThreshold)

	v.SetDefault("exam.ela_count", exam.DefaultELACount)
	v.SetDefault("exam.math_count", exam.DefaultMathCount)

	v.SetDefault("scoring.floor", exam.DefaultScaleFloor)
	v.SetDefault("scoring.span", exam.DefaultScaleSpan)
	v.SetDefault("scoring.revising_prefix", exam.DefaultRevisingPrefix)

	v.SetDefault("practice.recent_window", store.DefaultRecentLimit)
}

// configDir returns $XDG_CONFIG_HOME/prepengine or ~/.config/prepengine.
func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "prepengine"), nil
}
