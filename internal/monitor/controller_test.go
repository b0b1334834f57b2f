package monitor

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/rtop/internal/history"
	"github.com/rileyhilliard/rtop/internal/logger"
	"github.com/rileyhilliard/rtop/internal/platform"
	platformtest "github.com/rileyhilliard/rtop/internal/platform/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// press builds the KeyMsg bubbletea delivers for a key name.
func press(k string) tea.KeyMsg {
	switch k {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// pressAll feeds keys in order and reports whether any of them quit.
func pressAll(c *Controller, ks ...string) bool {
	quit := false
	for _, k := range ks {
		if c.HandleKey(press(k)) {
			quit = true
		}
	}
	return quit
}

func typeText(c *Controller, s string) {
	for _, r := range s {
		c.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func testSystem() platform.SystemSnapshot {
	return platform.SystemSnapshot{
		Taken: time.Now(),
		CPUs: []platform.CPUSample{
			{ID: platform.AggregateCPUID, Usage: 20},
			{ID: "CPU0", Usage: 10},
			{ID: "CPU1", Usage: 30},
		},
		Memory: platform.MemorySample{Total: 1000, Used: 400},
		Disks: []platform.DiskSample{
			{MountPoint: "/", Name: "sda1", Total: 100, Used: 50},
			{MountPoint: "/home", Name: "sda2", Total: 100, Used: 10},
		},
		Networks: []platform.NetworkSample{
			{Name: "eth0", IPv4: "10.0.0.2"},
			{Name: "lo", IPv4: "127.0.0.1"},
			{Name: "wlan0"},
		},
	}
}

func testProcesses() platform.ProcessSnapshot {
	return platform.ProcessSnapshot{
		Taken: time.Now(),
		Processes: []platform.ProcessSample{
			{PID: 1, Name: "init", User: "root", Threads: 1, CPU: 0.1, Memory: 100},
			{PID: 200, Name: "sshd", User: "root", Threads: 3, CPU: 1, Memory: 200},
			{PID: 300, Name: "top", User: "alice", Threads: 8, CPU: 5, Memory: 300},
		},
	}
}

type controllerFixture struct {
	ctrl      *Controller
	store     *history.Store
	signaler  *platformtest.FakeSignaler
	log       *logger.BufferLogger
	intervals []time.Duration
}

func newFixture(t *testing.T) *controllerFixture {
	t.Helper()
	f := &controllerFixture{
		store:    history.NewStore(),
		signaler: platformtest.NewFakeSignaler(),
		log:      logger.NewBufferLogger(),
	}
	f.ctrl = NewController(ControllerOptions{
		Store:          f.store,
		Signaler:       f.signaler,
		Logger:         f.log,
		Interval:       time.Second,
		Window:         100,
		Sort:           history.SortThread,
		SortDescending: true,
		OnInterval:     func(d time.Duration) { f.intervals = append(f.intervals, d) },
	})
	f.store.ReconcileSystem(testSystem())
	f.store.ReconcileProcesses(testProcesses(), f.ctrl.Pin())
	return f
}

// pin pins the top row (PID 300 under the default thread sort).
func (f *controllerFixture) pin(t *testing.T) {
	t.Helper()
	pressAll(f.ctrl, "p", "down", "enter")
	require.True(t, f.ctrl.Pin().Active)
	require.Equal(t, int32(300), f.ctrl.Pin().PID)
}

func TestNewController_Defaults(t *testing.T) {
	c := NewController(ControllerOptions{Interval: 1234 * time.Millisecond, Window: 50})

	assert.Equal(t, ModeView, c.Mode())
	assert.Equal(t, ContainerNone, c.Focus())
	assert.Equal(t, 1200*time.Millisecond, c.Interval())
	assert.Equal(t, MinWindow, c.Window(ContainerCPU))
	_, ok := c.ProcessRow()
	assert.False(t, ok)
	assert.Nil(t, c.Request())
}

func TestController_EscUnwinds(t *testing.T) {
	f := newFixture(t)

	pressAll(f.ctrl, "c", "tab")
	require.Equal(t, ContainerCPU, f.ctrl.Focus())
	require.True(t, f.ctrl.FullScreen())

	assert.False(t, pressAll(f.ctrl, "esc"))
	assert.False(t, f.ctrl.FullScreen())
	assert.Equal(t, ContainerCPU, f.ctrl.Focus())

	assert.False(t, pressAll(f.ctrl, "esc"))
	assert.Equal(t, ContainerNone, f.ctrl.Focus())

	assert.True(t, pressAll(f.ctrl, "esc"))
}

func TestController_QuitKeys(t *testing.T) {
	f := newFixture(t)
	assert.True(t, pressAll(f.ctrl, "q"))
	assert.True(t, pressAll(f.ctrl, "ctrl+c"))

	pressAll(f.ctrl, "f")
	assert.False(t, pressAll(f.ctrl, "q"), "q is text while typing")
	assert.True(t, pressAll(f.ctrl, "ctrl+c"))
}

func TestController_FocusToggle(t *testing.T) {
	tests := []struct {
		key  string
		want Container
	}{
		{"c", ContainerCPU},
		{"C", ContainerCPU},
		{"m", ContainerMemory},
		{"M", ContainerMemory},
		{"d", ContainerDisk},
		{"n", ContainerNetwork},
		{"p", ContainerProcess},
		{"P", ContainerProcess},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			f := newFixture(t)
			pressAll(f.ctrl, tt.key)
			assert.Equal(t, tt.want, f.ctrl.Focus())

			pressAll(f.ctrl, "tab", tt.key)
			assert.Equal(t, ContainerNone, f.ctrl.Focus())
			assert.False(t, f.ctrl.FullScreen())
		})
	}
}

func TestController_FocusSwitchKeepsFullScreen(t *testing.T) {
	f := newFixture(t)
	pressAll(f.ctrl, "c", "tab", "m")
	assert.Equal(t, ContainerMemory, f.ctrl.Focus())
	assert.True(t, f.ctrl.FullScreen())
}

func TestController_TabNeedsFocus(t *testing.T) {
	f := newFixture(t)
	pressAll(f.ctrl, "tab")
	assert.False(t, f.ctrl.FullScreen())

	pressAll(f.ctrl, "d", "tab")
	assert.True(t, f.ctrl.FullScreen())
	pressAll(f.ctrl, "tab")
	assert.False(t, f.ctrl.FullScreen())
}

func TestController_IntervalBounds(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 200; i++ {
		pressAll(f.ctrl, "+")
	}
	assert.Equal(t, MaxInterval, f.ctrl.Interval())
	require.NotEmpty(t, f.intervals)
	assert.Equal(t, MaxInterval, f.intervals[len(f.intervals)-1])
	assert.Len(t, f.intervals, 90, "one push per effective step from 1s to 10s")

	for i := 0; i < 200; i++ {
		pressAll(f.ctrl, "-")
	}
	assert.Equal(t, MinInterval, f.ctrl.Interval())
	assert.Equal(t, MinInterval, f.intervals[len(f.intervals)-1])

	for _, d := range f.intervals {
		assert.GreaterOrEqual(t, d, MinInterval)
		assert.LessOrEqual(t, d, MaxInterval)
		assert.Zero(t, d%IntervalStep)
	}
}

func TestController_WindowAdjust(t *testing.T) {
	f := newFixture(t)

	pressAll(f.ctrl, "]", "]")
	for panel := ContainerCPU; panel < containerCount; panel++ {
		assert.Equal(t, 120, f.ctrl.Window(panel), panel.String())
	}

	pressAll(f.ctrl, "c", "[")
	assert.Equal(t, 110, f.ctrl.Window(ContainerCPU))
	assert.Equal(t, 120, f.ctrl.Window(ContainerMemory))

	for i := 0; i < 100; i++ {
		pressAll(f.ctrl, "]")
	}
	assert.Equal(t, MaxWindow, f.ctrl.Window(ContainerCPU))

	for i := 0; i < 100; i++ {
		pressAll(f.ctrl, "[")
	}
	assert.Equal(t, MinWindow, f.ctrl.Window(ContainerCPU))
}

func TestController_CPUSelectionWraps(t *testing.T) {
	f := newFixture(t)
	pressAll(f.ctrl, "c")

	pressAll(f.ctrl, "up")
	assert.Equal(t, 2, f.ctrl.CPUIndex())

	pressAll(f.ctrl, "down")
	assert.Equal(t, 0, f.ctrl.CPUIndex())

	pressAll(f.ctrl, "down", "down")
	assert.Equal(t, 2, f.ctrl.CPUIndex())
}

func TestController_ProcessRowSelection(t *testing.T) {
	f := newFixture(t)
	pressAll(f.ctrl, "p")

	pressAll(f.ctrl, "up")
	_, ok := f.ctrl.ProcessRow()
	assert.False(t, ok, "up with no selection stays unselected")

	pressAll(f.ctrl, "down")
	row, ok := f.ctrl.ProcessRow()
	require.True(t, ok)
	assert.Equal(t, 0, row)

	pressAll(f.ctrl, "down", "down", "down", "down")
	row, _ = f.ctrl.ProcessRow()
	assert.Equal(t, 2, row, "stops at the last row")

	pressAll(f.ctrl, "up", "up")
	row, _ = f.ctrl.ProcessRow()
	assert.Equal(t, 0, row)

	pressAll(f.ctrl, "up")
	_, ok = f.ctrl.ProcessRow()
	assert.False(t, ok, "up at row 0 clears the selection")
}

func TestController_LeftRightCycles(t *testing.T) {
	f := newFixture(t)

	pressAll(f.ctrl, "d", "left")
	assert.Equal(t, 1, f.ctrl.DiskIndex())
	pressAll(f.ctrl, "right")
	assert.Equal(t, 0, f.ctrl.DiskIndex())

	pressAll(f.ctrl, "n", "right", "right", "right")
	assert.Equal(t, 0, f.ctrl.NetworkIndex())
	pressAll(f.ctrl, "left")
	assert.Equal(t, 2, f.ctrl.NetworkIndex())

	pressAll(f.ctrl, "p")
	assert.Equal(t, history.SortThread, f.ctrl.SortColumn())
	pressAll(f.ctrl, "left")
	assert.Equal(t, history.SortUser, f.ctrl.SortColumn())
	pressAll(f.ctrl, "right", "right")
	assert.Equal(t, history.SortMemory, f.ctrl.SortColumn())
}

func TestController_ReverseOnlyWithProcessFocus(t *testing.T) {
	f := newFixture(t)

	pressAll(f.ctrl, "r")
	assert.True(t, f.ctrl.SortDescending())

	pressAll(f.ctrl, "p", "r")
	assert.False(t, f.ctrl.SortDescending())
	pressAll(f.ctrl, "R")
	assert.True(t, f.ctrl.SortDescending())
}

func TestController_FilterTyping(t *testing.T) {
	f := newFixture(t)

	pressAll(f.ctrl, "f")
	require.Equal(t, ModeTyping, f.ctrl.Mode())

	typeText(f.ctrl, "top")
	pressAll(f.ctrl, "backspace")
	assert.Equal(t, "to", f.ctrl.Filter().String())
	assert.Equal(t, 2, f.ctrl.Filter().Cursor())

	pressAll(f.ctrl, "left", "left", "backspace")
	assert.Equal(t, "to", f.ctrl.Filter().String(), "backspace at cursor 0 is a no-op")

	typeText(f.ctrl, "s")
	pressAll(f.ctrl, "right", " ")
	assert.Equal(t, "st o", f.ctrl.Filter().String())

	pressAll(f.ctrl, "enter")
	assert.Equal(t, ModeView, f.ctrl.Mode())
	assert.Equal(t, ContainerNone, f.ctrl.Focus())
}

func TestController_FilterNarrowsRows(t *testing.T) {
	f := newFixture(t)

	pressAll(f.ctrl, "f")
	typeText(f.ctrl, "ROOT")
	pressAll(f.ctrl, "esc")

	rows := f.ctrl.Rows()
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, "root", r.User)
	}

	pressAll(f.ctrl, "backspace")
	assert.True(t, f.ctrl.Filter().Empty())
	assert.Len(t, f.ctrl.Rows(), 3)
}

func TestController_TypingDownEntersList(t *testing.T) {
	f := newFixture(t)

	pressAll(f.ctrl, "f")
	typeText(f.ctrl, "s")
	pressAll(f.ctrl, "down")

	assert.Equal(t, ModeView, f.ctrl.Mode())
	assert.Equal(t, ContainerProcess, f.ctrl.Focus())
	row, ok := f.ctrl.ProcessRow()
	require.True(t, ok)
	assert.Equal(t, 0, row)
}

func TestController_TypingClearsRowSelection(t *testing.T) {
	f := newFixture(t)

	pressAll(f.ctrl, "p", "down", "down", "f")
	typeText(f.ctrl, "x")
	_, ok := f.ctrl.ProcessRow()
	assert.False(t, ok)
}

func TestController_EnterPinsAndUnpins(t *testing.T) {
	f := newFixture(t)

	pressAll(f.ctrl, "p", "down", "down", "enter")
	assert.True(t, f.ctrl.Pin().Active)
	assert.Equal(t, int32(200), f.ctrl.Pin().PID, "second row by thread count")
	_, ok := f.ctrl.ProcessRow()
	assert.False(t, ok, "pinning clears the row selection")

	pressAll(f.ctrl, "enter")
	assert.False(t, f.ctrl.Pin().Active)
}

func TestController_EnterIgnoredOutsideProcess(t *testing.T) {
	f := newFixture(t)
	pressAll(f.ctrl, "c", "enter")
	assert.False(t, f.ctrl.Pin().Active)
}

func TestController_SignalGating(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *controllerFixture)
	}{
		{"nothing focused", func(f *controllerFixture) {}},
		{"process focused without pin", func(f *controllerFixture) { pressAll(f.ctrl, "p") }},
		{"pinned but row selected", func(f *controllerFixture) {
			pressAll(f.ctrl, "p", "down", "enter", "down")
		}},
		{"pinned but other panel focused", func(f *controllerFixture) {
			pressAll(f.ctrl, "p", "down", "enter", "c")
		}},
	}

	for _, tt := range tests {
		for _, k := range []string{"k", "K", "t", "T", "s", "S"} {
			t.Run(tt.name+"/"+k, func(t *testing.T) {
				f := newFixture(t)
				tt.setup(f)
				pressAll(f.ctrl, k)
				assert.Equal(t, ModeView, f.ctrl.Mode())
				assert.Nil(t, f.ctrl.Request())
			})
		}
	}
}

func TestController_KillConfirmWithY(t *testing.T) {
	f := newFixture(t)
	f.pin(t)

	pressAll(f.ctrl, "k")
	require.Equal(t, ModePopup, f.ctrl.Mode())
	req := f.ctrl.Request()
	require.NotNil(t, req)
	assert.Equal(t, RequestKill, req.Kind)
	assert.Equal(t, platform.SignalKill, req.Signal)
	assert.Equal(t, 9, req.ID)
	assert.Equal(t, "top", req.Name)
	assert.True(t, req.Yes)
	assert.False(t, req.No)

	pressAll(f.ctrl, "y")
	assert.Equal(t, ModeView, f.ctrl.Mode())
	assert.Nil(t, f.ctrl.Request())
	assert.Equal(t, []platformtest.SignalCall{{PID: 300, Signal: platform.SignalKill}}, f.signaler.Sent())
	assert.True(t, f.log.Contains("sent SIGKILL to PID 300"))
}

func TestController_TerminateEnterDispatches(t *testing.T) {
	f := newFixture(t)
	f.pin(t)

	pressAll(f.ctrl, "T", "enter")
	assert.Equal(t, []platformtest.SignalCall{{PID: 300, Signal: platform.SignalTerm}}, f.signaler.Sent())
	assert.Equal(t, ModeView, f.ctrl.Mode())
}

func TestController_PopupDecline(t *testing.T) {
	for _, seq := range [][]string{{"n"}, {"N"}, {"esc"}, {"right", "enter"}} {
		f := newFixture(t)
		f.pin(t)

		pressAll(f.ctrl, "k")
		pressAll(f.ctrl, seq...)
		assert.Equal(t, ModeView, f.ctrl.Mode(), seq)
		assert.Nil(t, f.ctrl.Request(), seq)
		assert.Empty(t, f.signaler.Sent(), seq)
	}
}

func TestController_PopupLeftRightExclusive(t *testing.T) {
	f := newFixture(t)
	f.pin(t)

	pressAll(f.ctrl, "t", "right")
	req := f.ctrl.Request()
	assert.False(t, req.Yes)
	assert.True(t, req.No)

	pressAll(f.ctrl, "left")
	assert.True(t, req.Yes)
	assert.False(t, req.No)
}

func TestController_SignalMenu(t *testing.T) {
	f := newFixture(t)
	f.pin(t)

	pressAll(f.ctrl, "s")
	req := f.ctrl.Request()
	require.NotNil(t, req)
	assert.Equal(t, RequestMenu, req.Kind)
	assert.False(t, req.Signal.Resolved())

	pressAll(f.ctrl, "y")
	assert.Empty(t, f.signaler.Sent(), "unresolved signal is never dispatched")
	assert.Equal(t, ModeView, f.ctrl.Mode())

	pressAll(f.ctrl, "s", "1", "5")
	req = f.ctrl.Request()
	assert.Equal(t, 15, req.ID)
	assert.Equal(t, platform.SignalTerm, req.Signal)

	pressAll(f.ctrl, "enter")
	assert.Equal(t, []platformtest.SignalCall{{PID: 300, Signal: platform.SignalTerm}}, f.signaler.Sent())
}

func TestController_SignalMenuEnterUnresolvedCloses(t *testing.T) {
	f := newFixture(t)
	f.pin(t)

	pressAll(f.ctrl, "s", "1", "6")
	require.Equal(t, 16, f.ctrl.Request().ID)
	pressAll(f.ctrl, "enter")

	assert.Empty(t, f.signaler.Sent())
	assert.Equal(t, ModeView, f.ctrl.Mode())
}

func TestController_DigitsIgnoredInFixedPopups(t *testing.T) {
	f := newFixture(t)
	f.pin(t)

	pressAll(f.ctrl, "k", "1", "backspace")
	req := f.ctrl.Request()
	assert.Equal(t, 9, req.ID)
	assert.Equal(t, platform.SignalKill, req.Signal)
}

func TestController_DispatchFailureIsLoggedOnly(t *testing.T) {
	f := newFixture(t)
	f.signaler.SetFail(nil)
	f.pin(t)

	pressAll(f.ctrl, "k", "y")

	assert.Len(t, f.signaler.Sent(), 1)
	assert.True(t, f.log.HasLevel("error"))
	assert.Equal(t, ModeView, f.ctrl.Mode())
	assert.True(t, f.ctrl.Pin().Active)
	assert.Equal(t, ContainerProcess, f.ctrl.Focus())
}

func TestController_NilSignalerWarns(t *testing.T) {
	log := logger.NewBufferLogger()
	store := history.NewStore()
	c := NewController(ControllerOptions{Store: store, Logger: log, Sort: history.SortThread, SortDescending: true})
	store.ReconcileProcesses(testProcesses(), c.Pin())

	pressAll(c, "p", "down", "enter", "k", "y")
	assert.True(t, log.HasLevel("warn"))
}

func TestController_HelpToggle(t *testing.T) {
	f := newFixture(t)

	pressAll(f.ctrl, "?")
	assert.True(t, f.ctrl.ShowHelp())

	assert.False(t, pressAll(f.ctrl, "esc"), "esc closes help before quitting")
	assert.False(t, f.ctrl.ShowHelp())

	pressAll(f.ctrl, "?", "?")
	assert.False(t, f.ctrl.ShowHelp())
}

func TestController_ClampAfterReconcile(t *testing.T) {
	f := newFixture(t)
	pressAll(f.ctrl, "p", "down", "down", "down")
	row, _ := f.ctrl.ProcessRow()
	require.Equal(t, 2, row)

	pressAll(f.ctrl, "d", "left")
	require.Equal(t, 1, f.ctrl.DiskIndex())

	sys := testSystem()
	sys.Disks = sys.Disks[:1]
	f.store.ReconcileSystem(sys)
	procs := testProcesses()
	procs.Processes = procs.Processes[:1]
	f.store.ReconcileProcesses(procs, f.ctrl.Pin())

	f.ctrl.Clamp()
	row, ok := f.ctrl.ProcessRow()
	assert.True(t, ok)
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, f.ctrl.DiskIndex())
}

func TestController_PinClearedWhenProcessExits(t *testing.T) {
	f := newFixture(t)
	f.pin(t)

	procs := testProcesses()
	procs.Processes = procs.Processes[:2]
	f.store.ReconcileProcesses(procs, f.ctrl.Pin())

	assert.False(t, f.ctrl.Pin().Active)
	pressAll(f.ctrl, "k")
	assert.Nil(t, f.ctrl.Request())
}

func TestController_PopupClosesWhenTargetExits(t *testing.T) {
	for _, k := range []string{"k", "t", "s"} {
		t.Run(k, func(t *testing.T) {
			f := newFixture(t)
			f.pin(t)
			pressAll(f.ctrl, k)
			require.Equal(t, ModePopup, f.ctrl.Mode())

			procs := testProcesses()
			procs.Processes = procs.Processes[:2]
			f.store.ReconcileProcesses(procs, f.ctrl.Pin())
			f.ctrl.Clamp()

			assert.Equal(t, ModeView, f.ctrl.Mode())
			assert.Nil(t, f.ctrl.Request())
			assert.True(t, f.log.Contains("PID 300 exited"))

			pressAll(f.ctrl, "y", "enter")
			assert.Empty(t, f.signaler.Sent(), "a reused PID is never signalled")
		})
	}
}

func TestController_PopupSurvivesWhileTargetRuns(t *testing.T) {
	f := newFixture(t)
	f.pin(t)
	pressAll(f.ctrl, "k")

	f.store.ReconcileProcesses(testProcesses(), f.ctrl.Pin())
	f.ctrl.Clamp()

	require.Equal(t, ModePopup, f.ctrl.Mode())
	pressAll(f.ctrl, "y")
	assert.Equal(t, []platformtest.SignalCall{{PID: 300, Signal: platform.SignalKill}}, f.signaler.Sent())
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "view", ModeView.String())
	assert.Equal(t, "filter", ModeTyping.String())
	assert.Equal(t, "signal", ModePopup.String())
	assert.Equal(t, "unknown", Mode(9).String())
}

func TestContainer_String(t *testing.T) {
	assert.Equal(t, "CPU", ContainerCPU.String())
	assert.Equal(t, "Process", ContainerProcess.String())
	assert.Equal(t, "None", ContainerNone.String())
}
