package config

import (
	"time"

	"github.com/rileyhilliard/rtop/internal/history"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the rtop config file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Interval is the sampling interval once both collectors are ready.
	// Must be within [100ms, 10s]; it is rounded to a multiple of 100ms.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// Warmup is the interval used for the very first sampling pass.
	Warmup time.Duration `yaml:"warmup" mapstructure:"warmup"`

	// HistoryWindow is the initial number of samples shown in graphs.
	HistoryWindow int `yaml:"history_window" mapstructure:"history_window"`

	// Sort is the initial process sort column name, e.g. "cpu" or "thread".
	Sort           string `yaml:"sort" mapstructure:"sort"`
	SortDescending bool   `yaml:"sort_descending" mapstructure:"sort_descending"`

	Thresholds ThresholdConfig `yaml:"thresholds" mapstructure:"thresholds"`
	Log        LogConfig       `yaml:"log" mapstructure:"log"`
}

// ThresholdConfig holds the percent levels where gauges turn warning or critical.
type ThresholdConfig struct {
	Warning  int `yaml:"warning" mapstructure:"warning"`
	Critical int `yaml:"critical" mapstructure:"critical"`
}

// LogConfig controls the debug log. The dashboard owns the terminal, so
// logs only ever go to a file.
type LogConfig struct {
	// File is the log path. Empty disables logging.
	File string `yaml:"file" mapstructure:"file"`

	// Level is one of "debug", "info", "warn" or "error".
	Level string `yaml:"level" mapstructure:"level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:        CurrentConfigVersion,
		Interval:       time.Second,
		Warmup:         100 * time.Millisecond,
		HistoryWindow:  100,
		Sort:           "thread",
		SortDescending: true,
		Thresholds: ThresholdConfig{
			Warning:  70,
			Critical: 90,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// SortColumn parses Sort into a process table column.
func (c *Config) SortColumn() (history.SortColumn, error) {
	return history.ParseSortColumn(c.Sort)
}

// RoundedInterval returns Interval rounded to the nearest 100ms.
func (c *Config) RoundedInterval() time.Duration {
	return c.Interval.Round(100 * time.Millisecond)
}

// fileConfig mirrors Config with durations as strings so the written YAML
// reads "1s" rather than nanoseconds.
type fileConfig struct {
	Version        int             `yaml:"version"`
	Interval       string          `yaml:"interval"`
	Warmup         string          `yaml:"warmup"`
	HistoryWindow  int             `yaml:"history_window"`
	Sort           string          `yaml:"sort"`
	SortDescending bool            `yaml:"sort_descending"`
	Thresholds     ThresholdConfig `yaml:"thresholds"`
	Log            LogConfig       `yaml:"log"`
}

func (c *Config) toFile() fileConfig {
	return fileConfig{
		Version:        c.Version,
		Interval:       c.Interval.String(),
		Warmup:         c.Warmup.String(),
		HistoryWindow:  c.HistoryWindow,
		Sort:           c.Sort,
		SortDescending: c.SortDescending,
		Thresholds:     c.Thresholds,
		Log:            c.Log,
	}
}
