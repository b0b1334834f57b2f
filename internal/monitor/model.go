package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/rtop/internal/collector"
	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/history"
	"github.com/rileyhilliard/rtop/internal/logger"
	"github.com/rileyhilliard/rtop/internal/platform"
)

// frameInterval is how often the model drains collector output and redraws.
const frameInterval = 100 * time.Millisecond

// DefaultWarmup is the interval used until both collectors have reported once.
const DefaultWarmup = 100 * time.Millisecond

// Minimum terminal size the dashboard renders in.
const (
	MinWidth  = 60
	MinHeight = 20
)

// Options configures the dashboard.
type Options struct {
	Sampler  platform.Sampler
	Signaler platform.Signaler
	Logger   logger.Logger

	Interval       time.Duration
	Warmup         time.Duration
	Window         int
	Sort           history.SortColumn
	SortDescending bool
	Thresholds     Thresholds
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	ctrl  *Controller
	store *history.Store
	log   logger.Logger

	systemCh  <-chan platform.SystemSnapshot
	processCh <-chan platform.ProcessSnapshot
	systemBox *collector.Mailbox
	procBox   *collector.Mailbox
	cancel    context.CancelFunc

	systemDead  bool
	processDead bool

	thresholds Thresholds
	width      int
	height     int
	quitting   bool

	help help.Model

	// Pinned process detail, scrollable with pgup/pgdown.
	detailViewport viewport.Model
	viewportReady  bool
}

// frameMsg drives draining and redraws.
type frameMsg time.Time

// Start spawns both collectors at the warm-up interval, blocks until each
// has delivered its first snapshot, reconciles them, and then switches the
// collectors to the configured interval. The returned model owns the
// collectors: quitting it stops them.
func Start(ctx context.Context, opts Options) (Model, error) {
	if opts.Sampler == nil {
		return Model{}, errors.New(errors.ErrPlatform, "No metrics sampler configured", "")
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	if opts.Warmup <= 0 {
		opts.Warmup = DefaultWarmup
	}
	if opts.Thresholds == (Thresholds{}) {
		opts.Thresholds = DefaultThresholds()
	}

	ctx, cancel := context.WithCancel(ctx)
	systemBox := collector.NewMailbox()
	procBox := collector.NewMailbox()

	systemCh := collector.Spawn(ctx, collector.Config[platform.SystemSnapshot]{
		Name:      "system",
		Interval:  opts.Warmup,
		Intervals: systemBox.C(),
		Sample:    opts.Sampler.SampleSystem,
		Logger:    opts.Logger,
	})
	processCh := collector.Spawn(ctx, collector.Config[platform.ProcessSnapshot]{
		Name:      "process",
		Interval:  opts.Warmup,
		Intervals: procBox.C(),
		Sample:    opts.Sampler.SampleProcesses,
		Logger:    opts.Logger,
	})

	sys, procs, err := WaitReady(ctx, systemCh, processCh)
	if err != nil {
		cancel()
		systemBox.Close()
		procBox.Close()
		return Model{}, errors.WrapWithCode(err, errors.ErrPlatform,
			"Couldn't read initial system metrics",
			"Run with --debug and check the log file for sampler errors")
	}

	store := history.NewStore()
	ctrl := NewController(ControllerOptions{
		Store:          store,
		Signaler:       opts.Signaler,
		Logger:         opts.Logger,
		Interval:       opts.Interval,
		Window:         opts.Window,
		Sort:           opts.Sort,
		SortDescending: opts.SortDescending,
		OnInterval: func(d time.Duration) {
			systemBox.Send(d)
			procBox.Send(d)
		},
	})

	store.ReconcileSystem(sys)
	store.ReconcileProcesses(procs, ctrl.Pin())

	systemBox.Send(ctrl.Interval())
	procBox.Send(ctrl.Interval())
	opts.Logger.Info("collectors ready, interval %s", ctrl.Interval())

	m := newModel(ctrl, store, opts.Logger, opts.Thresholds)
	m.systemCh = systemCh
	m.processCh = processCh
	m.systemBox = systemBox
	m.procBox = procBox
	m.cancel = cancel
	return m, nil
}

func newModel(ctrl *Controller, store *history.Store, log logger.Logger, t Thresholds) Model {
	if log == nil {
		log = logger.Default()
	}
	h := help.New()
	h.ShortSeparator = " | "
	return Model{
		ctrl:       ctrl,
		store:      store,
		log:        log,
		thresholds: t,
		help:       h,
	}
}

// WaitReady blocks until both channels have produced their first value, in
// either order. A channel closing first, or ctx ending, is an error.
func WaitReady[S, P any](ctx context.Context, systemCh <-chan S, processCh <-chan P) (S, P, error) {
	var (
		sys   S
		procs P
	)
	sysIn, procIn := systemCh, processCh
	for sysIn != nil || procIn != nil {
		select {
		case <-ctx.Done():
			return sys, procs, ctx.Err()
		case v, ok := <-sysIn:
			if !ok {
				return sys, procs, errors.New(errors.ErrPlatform, "System collector stopped before its first sample", "")
			}
			sys = v
			sysIn = nil
		case v, ok := <-procIn:
			if !ok {
				return sys, procs, errors.New(errors.ErrPlatform, "Process collector stopped before its first sample", "")
			}
			procs = v
			procIn = nil
		}
	}
	return sys, procs, nil
}

// Controller exposes the interaction state.
func (m Model) Controller() *Controller {
	return m.ctrl
}

// Store exposes the metric history.
func (m Model) Store() *history.Store {
	return m.store
}

// CollectorsDead reports which collectors have stopped.
func (m Model) CollectorsDead() (system, process bool) {
	return m.systemDead, m.processDead
}

// Init starts the frame ticker.
func (m Model) Init() tea.Cmd {
	return frameCmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.routeToViewport(msg) {
			var cmd tea.Cmd
			m.detailViewport, cmd = m.detailViewport.Update(msg)
			return m, cmd
		}
		if m.ctrl.HandleKey(msg) {
			m.shutdown()
			return m, tea.Quit
		}
		m.ctrl.Clamp()
		m.resizeDetail()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeDetail()

	case frameMsg:
		if m.drain() {
			m.ctrl.Clamp()
			m.refreshDetail()
		}
		return m, frameCmd()
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// drain takes at most one snapshot from each collector without blocking.
// It reports whether the store changed.
func (m *Model) drain() bool {
	changed := false

	if m.systemCh != nil {
		select {
		case snap, ok := <-m.systemCh:
			if !ok {
				m.systemCh = nil
				m.systemDead = true
				m.log.Error("system collector stopped")
				break
			}
			m.store.ReconcileSystem(snap)
			changed = true
		default:
		}
	}

	if m.processCh != nil {
		select {
		case snap, ok := <-m.processCh:
			if !ok {
				m.processCh = nil
				m.processDead = true
				m.log.Error("process collector stopped")
				break
			}
			m.store.ReconcileProcesses(snap, m.ctrl.Pin())
			changed = true
		default:
		}
	}

	return changed
}

// shutdown stops both collectors.
func (m *Model) shutdown() {
	m.quitting = true
	if m.cancel != nil {
		m.cancel()
	}
	if m.systemBox != nil {
		m.systemBox.Close()
	}
	if m.procBox != nil {
		m.procBox.Close()
	}
}

// routeToViewport reports whether msg scrolls the pinned process detail.
func (m Model) routeToViewport(msg tea.KeyMsg) bool {
	if !m.viewportReady || m.ctrl.Mode() != ModeView || !m.ctrl.Pin().Active {
		return false
	}
	switch msg.String() {
	case "pgup", "pgdown":
		return m.ctrl.Focus() == ContainerProcess
	}
	return false
}
