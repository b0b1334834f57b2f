// Package monitor implements the rtop dashboard: the interaction controller
// and the Bubble Tea model that renders live host metrics.
//
// # Architecture
//
// The package uses the Bubble Tea framework, which follows The Elm Architecture
// (Model-Update-View pattern):
//
//   - Model: owns the history store, the controller and the collector channels
//   - Update: applies key presses to the controller and drains snapshots
//   - View: renders the panels from the store and controller state
//
// Update and View run on one goroutine, so the store is never shared with the
// collectors. They only hand over immutable snapshots on channels.
//
// # Message Flow
//
//  1. Start spawns the system and process collectors at the warm-up interval
//  2. WaitReady blocks until both have delivered a first snapshot
//  3. the configured interval is posted to both collector mailboxes
//  4. every frameMsg (100ms) drains at most one snapshot per collector
//  5. a closed collector channel is flagged in the header
//
// # Controller
//
// Controller is a three-mode state machine:
//
//	View    panel focus, selection, sort, graph windows, sample interval
//	Typing  edits the process filter at a cursor
//	Popup   confirms a signal for the pinned process
//
// Signals are only offered for a pinned process while the process panel is
// focused and no row is selected. Delivery failures are logged and never
// change controller state.
//
// # Keyboard Shortcuts
//
//	c m d n p   focus CPU, memory, disk, network, process (again to unfocus)
//	tab         full screen for the focused panel
//	esc         leave full screen, then unfocus, then quit
//	↑/↓         select core or process row
//	←/→         cycle disk, interface or sort column
//	[ ]         shorten / lengthen graph window
//	- +         sample faster / slower
//	f           filter processes
//	r           reverse sort
//	enter       pin / unpin the selected process
//	k t s       kill, terminate, or pick a signal for the pinned process
//	?           toggle help
//	q, Ctrl+C   quit
package monitor
