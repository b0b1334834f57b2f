package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/rtop/internal/config"
	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/logger"
	"github.com/rileyhilliard/rtop/internal/monitor"
	"github.com/rileyhilliard/rtop/internal/platform"
	"golang.org/x/term"
)

// dashboardFlags are the root command flags that shape the dashboard.
type dashboardFlags struct {
	ConfigPath string
	Interval   string
	Debug      bool
}

// dashboardSettings is the resolved dashboard setup.
type dashboardSettings struct {
	Options  monitor.Options
	LogFile  string
	LogLevel string
}

// resolveDashboard merges config and flags and validates the result.
func resolveDashboard(flags dashboardFlags) (dashboardSettings, error) {
	cfg, _, err := config.LoadOrDefault(flags.ConfigPath)
	if err != nil {
		return dashboardSettings{}, err
	}

	if flags.Interval != "" {
		d, err := time.ParseDuration(flags.Interval)
		if err != nil {
			return dashboardSettings{}, errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("'%s' doesn't look like a valid interval", flags.Interval),
				"Try something like 500ms, 1s, or 2s.")
		}
		cfg.Interval = d
	}
	if flags.Debug {
		cfg.Log.Level = "debug"
		if cfg.Log.File == "" {
			cfg.Log.File = defaultDebugLog()
		}
	}

	if err := config.Validate(cfg); err != nil {
		return dashboardSettings{}, err
	}

	sortCol, err := cfg.SortColumn()
	if err != nil {
		return dashboardSettings{}, errors.WrapWithCode(err, errors.ErrConfig, "Invalid sort column", "")
	}

	return dashboardSettings{
		Options: monitor.Options{
			Interval:       cfg.RoundedInterval(),
			Warmup:         cfg.Warmup,
			Window:         cfg.HistoryWindow,
			Sort:           sortCol,
			SortDescending: cfg.SortDescending,
			Thresholds: monitor.Thresholds{
				Warning:  cfg.Thresholds.Warning,
				Critical: cfg.Thresholds.Critical,
			},
		},
		LogFile:  cfg.Log.File,
		LogLevel: cfg.Log.Level,
	}, nil
}

// defaultDebugLog is used by --debug when no log file is configured.
func defaultDebugLog() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "rtop", "debug.log")
}

// dashboardCommand starts the TUI dashboard.
func dashboardCommand(ctx context.Context, flags dashboardFlags) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrTerminal,
			"rtop needs an interactive terminal",
			"Run it directly in a terminal rather than piping its output.")
	}

	settings, err := resolveDashboard(flags)
	if err != nil {
		return err
	}

	log := logger.Noop()
	if settings.LogFile != "" {
		l, closeLog, err := logger.NewZapLogger(settings.LogFile, settings.LogLevel)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Couldn't open the log file",
				"Check the 'log.file' setting points at a writable path.")
		}
		defer closeLog()
		log = l
	}
	logger.SetDefault(log)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	opts := settings.Options
	opts.Logger = log
	opts.Sampler = platform.NewHost(logger.Named(log, "platform"))
	opts.Signaler = platform.NewSignaler()

	log.Info("starting dashboard, interval %s", opts.Interval)
	model, err := monitor.Start(ctx, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return errors.WrapWithCode(err, errors.ErrTerminal,
			"The dashboard stopped unexpectedly",
			"Run with --debug and check the log file for details.")
	}
	return nil
}
