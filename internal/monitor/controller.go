package monitor

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/rtop/internal/history"
	"github.com/rileyhilliard/rtop/internal/logger"
	"github.com/rileyhilliard/rtop/internal/platform"
)

// Mode is the input mode of the controller.
type Mode int

const (
	ModeView Mode = iota
	ModeTyping
	ModePopup
)

// String returns the mode name shown in the footer.
func (m Mode) String() string {
	switch m {
	case ModeView:
		return "view"
	case ModeTyping:
		return "filter"
	case ModePopup:
		return "signal"
	default:
		return "unknown"
	}
}

// Container is a dashboard panel that can hold focus.
type Container int

const (
	ContainerNone Container = iota
	ContainerCPU
	ContainerMemory
	ContainerDisk
	ContainerNetwork
	ContainerProcess

	containerCount
)

// String returns the panel title.
func (c Container) String() string {
	switch c {
	case ContainerCPU:
		return "CPU"
	case ContainerMemory:
		return "Memory"
	case ContainerDisk:
		return "Disk"
	case ContainerNetwork:
		return "Network"
	case ContainerProcess:
		return "Process"
	default:
		return "None"
	}
}

// Graph window and sample interval bounds.
const (
	MinWindow  = 100
	MaxWindow  = history.DefaultCapacity
	WindowStep = 10

	MinInterval  = 100 * time.Millisecond
	MaxInterval  = 10 * time.Second
	IntervalStep = 100 * time.Millisecond
)

// noRow marks an empty process row selection.
const noRow = -1

// ControllerOptions configures a Controller.
type ControllerOptions struct {
	Store          *history.Store
	Signaler       platform.Signaler
	Logger         logger.Logger
	Interval       time.Duration
	Window         int
	Sort           history.SortColumn
	SortDescending bool
	// OnInterval receives every interval change made with +/-.
	OnInterval func(time.Duration)
}

// Controller is the interaction state machine. It owns selection, focus,
// sort, filter, graph windows, the sample interval and the pending signal
// request. It is driven from the bubbletea event loop only.
type Controller struct {
	mode       Mode
	focus      Container
	fullScreen bool
	showHelp   bool

	cpuIndex     int
	diskIndex    int
	networkIndex int
	processRow   int

	sortColumn     history.SortColumn
	sortDescending bool
	filter         Filter
	pin            history.Pin

	windows  [containerCount]int
	interval time.Duration
	request  *SignalRequest

	store      *history.Store
	signaler   platform.Signaler
	log        logger.Logger
	onInterval func(time.Duration)
}

// NewController creates a controller in View mode with nothing focused.
func NewController(opts ControllerOptions) *Controller {
	if opts.Store == nil {
		opts.Store = history.NewStore()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	if opts.OnInterval == nil {
		opts.OnInterval = func(time.Duration) {}
	}

	c := &Controller{
		processRow:     noRow,
		sortColumn:     opts.Sort,
		sortDescending: opts.SortDescending,
		interval:       clampInterval(opts.Interval),
		store:          opts.Store,
		signaler:       opts.Signaler,
		log:            opts.Logger,
		onInterval:     opts.OnInterval,
	}
	window := clampWindow(opts.Window)
	for i := range c.windows {
		c.windows[i] = window
	}
	return c
}

func clampWindow(w int) int {
	return min(max(w, MinWindow), MaxWindow)
}

func clampInterval(d time.Duration) time.Duration {
	d = d.Round(IntervalStep)
	return min(max(d, MinInterval), MaxInterval)
}

// Accessors used by the renderer.

func (c *Controller) Mode() Mode                     { return c.mode }
func (c *Controller) Focus() Container               { return c.focus }
func (c *Controller) FullScreen() bool               { return c.fullScreen }
func (c *Controller) ShowHelp() bool                 { return c.showHelp }
func (c *Controller) CPUIndex() int                  { return c.cpuIndex }
func (c *Controller) DiskIndex() int                 { return c.diskIndex }
func (c *Controller) NetworkIndex() int              { return c.networkIndex }
func (c *Controller) SortColumn() history.SortColumn { return c.sortColumn }
func (c *Controller) SortDescending() bool           { return c.sortDescending }
func (c *Controller) Filter() *Filter                { return &c.filter }
func (c *Controller) Pin() *history.Pin              { return &c.pin }
func (c *Controller) Interval() time.Duration        { return c.interval }
func (c *Controller) Request() *SignalRequest        { return c.request }

// ProcessRow returns the selected row index, or false when no row is selected.
func (c *Controller) ProcessRow() (int, bool) {
	return c.processRow, c.processRow != noRow
}

// Window returns the graph window of a panel.
func (c *Controller) Window(panel Container) int {
	if panel <= ContainerNone || panel >= containerCount {
		return MinWindow
	}
	return c.windows[panel]
}

// Rows returns the process rows for the current sort and filter.
func (c *Controller) Rows() []*history.Process {
	return c.store.ProcessRows(c.sortColumn, c.sortDescending, c.filter.String())
}

// Clamp pulls stale selections back into range after a reconcile.
func (c *Controller) Clamp() {
	c.cpuIndex = clampIndex(c.cpuIndex, len(c.store.CPUs()))
	c.diskIndex = clampIndex(c.diskIndex, c.store.DiskCount())
	c.networkIndex = clampIndex(c.networkIndex, c.store.NetworkCount())

	if c.processRow != noRow {
		rows := len(c.Rows())
		if rows == 0 {
			c.processRow = noRow
		} else if c.processRow >= rows {
			c.processRow = rows - 1
		}
	}

	if c.request != nil {
		if _, ok := c.store.Process(c.request.PID); !ok {
			c.log.Info("PID %d exited, closing %s popup", c.request.PID, c.request.Kind)
			c.closeRequest()
		}
	}
}

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// HandleKey applies one key press. It returns true when the dashboard should quit.
func (c *Controller) HandleKey(msg tea.KeyMsg) bool {
	if msg.String() == "ctrl+c" {
		return true
	}

	switch c.mode {
	case ModeTyping:
		c.handleTypingKey(msg)
		return false
	case ModePopup:
		c.handlePopupKey(msg)
		return false
	default:
		return c.handleViewKey(msg)
	}
}

func (c *Controller) handleViewKey(msg tea.KeyMsg) bool {
	if c.showHelp && (key.Matches(msg, keys.Help) || key.Matches(msg, keys.Back)) {
		c.showHelp = false
		return false
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return true

	case key.Matches(msg, keys.Back):
		return c.back()

	case key.Matches(msg, keys.Help):
		c.showHelp = !c.showHelp

	case key.Matches(msg, keys.Faster):
		c.setInterval(c.interval - IntervalStep)

	case key.Matches(msg, keys.Slower):
		c.setInterval(c.interval + IntervalStep)

	case key.Matches(msg, keys.Up):
		c.moveUp()

	case key.Matches(msg, keys.Down):
		c.moveDown()

	case key.Matches(msg, keys.Left):
		c.cycle(-1)

	case key.Matches(msg, keys.Right):
		c.cycle(1)

	case key.Matches(msg, keys.ShrinkWindow):
		c.adjustWindow(-WindowStep)

	case key.Matches(msg, keys.GrowWindow):
		c.adjustWindow(WindowStep)

	case key.Matches(msg, keys.FocusCPU):
		c.toggleFocus(ContainerCPU)

	case key.Matches(msg, keys.FocusMemory):
		c.toggleFocus(ContainerMemory)

	case key.Matches(msg, keys.FocusDisk):
		c.toggleFocus(ContainerDisk)

	case key.Matches(msg, keys.FocusNetwork):
		c.toggleFocus(ContainerNetwork)

	case key.Matches(msg, keys.FocusProcess):
		c.toggleFocus(ContainerProcess)

	case key.Matches(msg, keys.Tab):
		if c.focus != ContainerNone {
			c.fullScreen = !c.fullScreen
		}

	case key.Matches(msg, keys.Reverse):
		if c.focus == ContainerProcess {
			c.sortDescending = !c.sortDescending
		}

	case key.Matches(msg, keys.Filter):
		c.mode = ModeTyping
		c.filter.End()

	case key.Matches(msg, keys.Backspace):
		c.filter.Clear()
		c.processRow = noRow

	case key.Matches(msg, keys.Enter):
		c.togglePin()

	case key.Matches(msg, keys.Kill):
		c.openRequest(RequestKill)

	case key.Matches(msg, keys.Terminate):
		c.openRequest(RequestTerminate)

	case key.Matches(msg, keys.SignalMenu):
		c.openRequest(RequestMenu)
	}
	return false
}

// back unwinds one level: full screen, then focus, then the dashboard itself.
func (c *Controller) back() bool {
	switch {
	case c.focus == ContainerNone:
		return true
	case c.fullScreen:
		c.fullScreen = false
	default:
		c.focus = ContainerNone
	}
	return false
}

func (c *Controller) setInterval(d time.Duration) {
	d = min(max(d, MinInterval), MaxInterval)
	if d == c.interval {
		return
	}
	c.interval = d
	c.onInterval(d)
}

func (c *Controller) moveUp() {
	switch c.focus {
	case ContainerCPU:
		n := len(c.store.CPUs())
		if n == 0 {
			return
		}
		c.cpuIndex = (c.cpuIndex - 1 + n) % n
	case ContainerProcess:
		switch {
		case c.processRow == noRow:
		case c.processRow > 0:
			c.processRow--
		default:
			c.processRow = noRow
		}
	}
}

func (c *Controller) moveDown() {
	switch c.focus {
	case ContainerCPU:
		n := len(c.store.CPUs())
		if n == 0 {
			return
		}
		c.cpuIndex = (c.cpuIndex + 1) % n
	case ContainerProcess:
		if c.processRow == noRow {
			c.processRow = 0
			return
		}
		if c.processRow < len(c.Rows())-1 {
			c.processRow++
		}
	}
}

func (c *Controller) cycle(step int) {
	switch c.focus {
	case ContainerDisk:
		c.diskIndex = wrap(c.diskIndex+step, c.store.DiskCount())
	case ContainerNetwork:
		c.networkIndex = wrap(c.networkIndex+step, c.store.NetworkCount())
	case ContainerProcess:
		if step < 0 {
			c.sortColumn = c.sortColumn.Prev()
		} else {
			c.sortColumn = c.sortColumn.Next()
		}
	}
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

func (c *Controller) adjustWindow(delta int) {
	if c.focus != ContainerNone {
		c.windows[c.focus] = clampWindow(c.windows[c.focus] + delta)
		return
	}
	for panel := ContainerCPU; panel < containerCount; panel++ {
		c.windows[panel] = clampWindow(c.windows[panel] + delta)
	}
}

func (c *Controller) toggleFocus(panel Container) {
	if c.focus == panel {
		c.focus = ContainerNone
		c.fullScreen = false
		return
	}
	c.focus = panel
}

func (c *Controller) togglePin() {
	if c.focus != ContainerProcess {
		return
	}
	if c.processRow == noRow {
		c.pin.Clear()
		return
	}
	rows := c.Rows()
	if c.processRow < len(rows) {
		c.pin.Set(rows[c.processRow].PID)
	}
	c.processRow = noRow
}

// openRequest opens a signal popup for the pinned process. It is only
// accepted with the process panel focused, a pin active and no row selected.
func (c *Controller) openRequest(kind RequestKind) {
	if c.focus != ContainerProcess || !c.pin.Active || c.processRow != noRow {
		return
	}
	p, ok := c.store.Process(c.pin.PID)
	if !ok {
		return
	}
	c.request = newSignalRequest(processRef{pid: p.PID, name: p.Name}, kind)
	c.mode = ModePopup
}

func (c *Controller) handleTypingKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		for _, r := range msg.Runes {
			c.filter.Insert(r)
		}
		if msg.Type == tea.KeySpace && len(msg.Runes) == 0 {
			c.filter.Insert(' ')
		}
		c.processRow = noRow
	case tea.KeyBackspace:
		if c.filter.Backspace() {
			c.processRow = noRow
		}
	case tea.KeyLeft:
		c.filter.Left()
	case tea.KeyRight:
		c.filter.Right()
	case tea.KeyHome:
		c.filter.Home()
	case tea.KeyEnd:
		c.filter.End()
	case tea.KeyDown:
		c.mode = ModeView
		c.focus = ContainerProcess
		c.processRow = 0
	case tea.KeyEnter, tea.KeyEsc:
		c.mode = ModeView
	}
}

func (c *Controller) handlePopupKey(msg tea.KeyMsg) {
	req := c.request
	if req == nil {
		c.mode = ModeView
		return
	}

	switch s := msg.String(); s {
	case "esc", "n", "N":
		c.closeRequest()
	case "y", "Y":
		if req.Signal.Resolved() {
			c.dispatch(req)
		}
		c.closeRequest()
	case "left":
		req.SelectYes()
	case "right":
		req.SelectNo()
	case "enter":
		if req.Confirmed() {
			c.dispatch(req)
		}
		c.closeRequest()
	case "backspace":
		if req.Kind == RequestMenu {
			req.PopDigit()
		}
	default:
		if req.Kind == RequestMenu && len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
			req.PushDigit(int(s[0] - '0'))
		}
	}
}

func (c *Controller) closeRequest() {
	c.request = nil
	c.mode = ModeView
}

// dispatch delivers the request's signal. Failures are logged and the
// controller state is left as is.
func (c *Controller) dispatch(req *SignalRequest) {
	if c.signaler == nil {
		c.log.Warn("no signaler configured, dropping %s for PID %d", req.Signal, req.PID)
		return
	}
	if err := c.signaler.Signal(req.PID, req.Signal); err != nil {
		c.log.Error("%v", err)
		return
	}
	c.log.Info("sent %s to PID %d (%s)", req.Signal, req.PID, req.Name)
}
