package monitor

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the View-mode bindings. Typing and popup keys are matched
// directly since they are modal.
type keyMap struct {
	Quit          key.Binding
	Back          key.Binding
	Help          key.Binding
	Up            key.Binding
	Down          key.Binding
	Left          key.Binding
	Right         key.Binding
	Enter         key.Binding
	Tab           key.Binding
	Backspace     key.Binding
	FocusCPU      key.Binding
	FocusMemory   key.Binding
	FocusDisk     key.Binding
	FocusNetwork  key.Binding
	FocusProcess  key.Binding
	Filter        key.Binding
	Reverse       key.Binding
	Kill          key.Binding
	Terminate     key.Binding
	SignalMenu    key.Binding
	Faster        key.Binding
	Slower        key.Binding
	ShrinkWindow  key.Binding
	GrowWindow    key.Binding
	AnyFocusPanel key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back / quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "prev disk/net/sort"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "next disk/net/sort"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "pin / unpin process"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "full screen"),
	),
	Backspace: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("⌫", "clear filter"),
	),
	FocusCPU: key.NewBinding(
		key.WithKeys("c", "C"),
		key.WithHelp("c", "cpu"),
	),
	FocusMemory: key.NewBinding(
		key.WithKeys("m", "M"),
		key.WithHelp("m", "memory"),
	),
	FocusDisk: key.NewBinding(
		key.WithKeys("d", "D"),
		key.WithHelp("d", "disk"),
	),
	FocusNetwork: key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("n", "network"),
	),
	FocusProcess: key.NewBinding(
		key.WithKeys("p", "P"),
		key.WithHelp("p", "process"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f", "F"),
		key.WithHelp("f", "filter"),
	),
	Reverse: key.NewBinding(
		key.WithKeys("r", "R"),
		key.WithHelp("r", "reverse sort"),
	),
	Kill: key.NewBinding(
		key.WithKeys("k", "K"),
		key.WithHelp("k", "kill"),
	),
	Terminate: key.NewBinding(
		key.WithKeys("t", "T"),
		key.WithHelp("t", "terminate"),
	),
	SignalMenu: key.NewBinding(
		key.WithKeys("s", "S"),
		key.WithHelp("s", "signal"),
	),
	Faster: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "faster"),
	),
	Slower: key.NewBinding(
		key.WithKeys("+"),
		key.WithHelp("+", "slower"),
	),
	ShrinkWindow: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "shorter graph"),
	),
	GrowWindow: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "longer graph"),
	),
	AnyFocusPanel: key.NewBinding(
		key.WithKeys("c", "m", "d", "n", "p"),
		key.WithHelp("c/m/d/n/p", "focus panel"),
	),
}

// ShortHelp is shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AnyFocusPanel, k.Filter, k.Enter, k.Faster, k.Slower, k.Help, k.Quit}
}

// FullHelp is shown in the help overlay, one column per group.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FocusCPU, k.FocusMemory, k.FocusDisk, k.FocusNetwork, k.FocusProcess, k.Tab, k.Back},
		{k.Up, k.Down, k.Left, k.Right, k.ShrinkWindow, k.GrowWindow, k.Faster, k.Slower},
		{k.Filter, k.Backspace, k.Reverse, k.Enter, k.Kill, k.Terminate, k.SignalMenu, k.Help, k.Quit},
	}
}
