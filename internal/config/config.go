// Package config loads tool configuration from an optional YAML file with
// environment-variable overrides, and wires up logging.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jsnanigans/linemap/pkg/linemap"
)

// Config holds all tool-level settings. Matcher knobs mirror
// linemap.Config; everything else belongs to the surrounding plumbing, not
// the core.
type Config struct {
	LogFile  string  `yaml:"log_file"`
	LogLevel string  `yaml:"log_level"`
	Matcher  Matcher `yaml:"matcher"`
}

// Matcher is the yaml shape of the scoring configuration.
type Matcher struct {
	ContentWeight            float64 `yaml:"content_weight"`
	ContextWeight            float64 `yaml:"context_weight"`
	PositionalBonus          float64 `yaml:"positional_bonus"`
	PositionalBonusThreshold float64 `yaml:"positional_bonus_threshold"`
	AcceptanceThreshold      float64 `yaml:"acceptance_threshold"`
	ContextWindowSize        int     `yaml:"context_window_size"`
	MaxExactAssignmentSize   int     `yaml:"max_exact_assignment_size"`
}

// Default returns the stock configuration.
func Default() Config {
	m := linemap.DefaultConfig()
	return Config{
		LogLevel: "INFO",
		Matcher: Matcher{
			ContentWeight:            m.ContentWeight,
			ContextWeight:            m.ContextWeight,
			PositionalBonus:          m.PositionalBonus,
			PositionalBonusThreshold: m.PositionalBonusThreshold,
			AcceptanceThreshold:      m.AcceptanceThreshold,
			ContextWindowSize:        m.ContextWindowSize,
			MaxExactAssignmentSize:   m.MaxExactAssignmentSize,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file when path is
// non-empty, then environment overrides (LINEMAP_LOG_FILE,
// LINEMAP_LOG_LEVEL).
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if v := os.Getenv("LINEMAP_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("LINEMAP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return cfg, nil
}

// MatcherConfig converts the yaml shape back into the core configuration.
func (c Config) MatcherConfig() linemap.Config {
	return linemap.Config{
		ContentWeight:            c.Matcher.ContentWeight,
		ContextWeight:            c.Matcher.ContextWeight,
		PositionalBonus:          c.Matcher.PositionalBonus,
		PositionalBonusThreshold: c.Matcher.PositionalBonusThreshold,
		AcceptanceThreshold:      c.Matcher.AcceptanceThreshold,
		ContextWindowSize:        c.Matcher.ContextWindowSize,
		MaxExactAssignmentSize:   c.Matcher.MaxExactAssignmentSize,
	}
}

// ParseLogLevel maps a level name to slog, defaulting to Info.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
