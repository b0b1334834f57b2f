package config

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/history"
	"github.com/rileyhilliard/rtop/internal/monitor"
)

// validLogLevels lists the accepted log.level values.
var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but rtop only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade rtop, or lower the version in your config file.")
	}

	checks := []struct {
		section string
		check   func(*Config) error
	}{
		{"interval", validateInterval},
		{"warmup", validateWarmup},
		{"history_window", validateWindow},
		{"sort", validateSort},
		{"thresholds", validateThresholds},
		{"log", validateLog},
	}
	for _, c := range checks {
		if err := c.check(cfg); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
				fmt.Sprintf("Check the '%s' setting in your config file.", c.section))
		}
	}
	return nil
}

func validateInterval(cfg *Config) error {
	d := cfg.RoundedInterval()
	if d < monitor.MinInterval || d > monitor.MaxInterval {
		return fmt.Errorf("interval %s is outside %s-%s", cfg.Interval, monitor.MinInterval, monitor.MaxInterval)
	}
	return nil
}

func validateWarmup(cfg *Config) error {
	if cfg.Warmup <= 0 {
		return fmt.Errorf("warmup must be positive, got %s", cfg.Warmup)
	}
	if cfg.Warmup > monitor.MaxInterval {
		return fmt.Errorf("warmup %s is longer than %s", cfg.Warmup, monitor.MaxInterval)
	}
	return nil
}

func validateWindow(cfg *Config) error {
	if cfg.HistoryWindow < monitor.MinWindow || cfg.HistoryWindow > monitor.MaxWindow {
		return fmt.Errorf("history_window %d is outside %d-%d", cfg.HistoryWindow, monitor.MinWindow, monitor.MaxWindow)
	}
	return nil
}

func validateSort(cfg *Config) error {
	if _, err := cfg.SortColumn(); err != nil {
		return fmt.Errorf("%w (valid: %s)", err, strings.ToLower(strings.Join(history.SortColumnNames(), ", ")))
	}
	return nil
}

func validateThresholds(cfg *Config) error {
	t := cfg.Thresholds
	if t.Warning < 0 || t.Warning > 100 {
		return fmt.Errorf("warning threshold must be 0-100, got %d", t.Warning)
	}
	if t.Critical < 0 || t.Critical > 100 {
		return fmt.Errorf("critical threshold must be 0-100, got %d", t.Critical)
	}
	if t.Warning >= t.Critical {
		return fmt.Errorf("warning threshold (%d) must be less than critical (%d)", t.Warning, t.Critical)
	}
	return nil
}

func validateLog(cfg *Config) error {
	level := strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	for _, valid := range validLogLevels {
		if level == valid {
			return nil
		}
	}
	return fmt.Errorf("log level %q is not one of %s", cfg.Log.Level, strings.Join(validLogLevels, ", "))
}
