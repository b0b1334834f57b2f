package platform

import (
	stderrors "errors"
	"fmt"

	"github.com/rileyhilliard/rtop/internal/errors"
)

// Signal is the closed set of signals rtop can deliver. The zero value is
// SignalUnresolved, which never reaches dispatch.
type Signal uint8

const (
	SignalUnresolved Signal = iota
	SignalHangup
	SignalInterrupt
	SignalQuit
	SignalIllegal
	SignalTrap
	SignalAbort
	SignalBus
	SignalFloatingPoint
	SignalKill
	SignalUser1
	SignalSegv
	SignalUser2
	SignalPipe
	SignalAlarm
	SignalTerm
	SignalChild
	SignalContinue
	SignalStop
	SignalTSTP
	SignalTTIN
	SignalTTOU
	SignalUrgent
	SignalXCPU
	SignalXFSZ
	SignalVirtualAlarm
	SignalProfiling
	SignalWinch
	SignalIO

	signalCount
)

// MinSignalID and MaxSignalID bound the ids accepted at the signal prompt.
const (
	MinSignalID = 1
	MaxSignalID = 30
)

type signalInfo struct {
	id   int
	name string
}

var signalTable = [signalCount]signalInfo{
	SignalUnresolved:    {0, ""},
	SignalHangup:        {1, "SIGHUP"},
	SignalInterrupt:     {2, "SIGINT"},
	SignalQuit:          {3, "SIGQUIT"},
	SignalIllegal:       {4, "SIGILL"},
	SignalTrap:          {5, "SIGTRAP"},
	SignalAbort:         {6, "SIGABRT"},
	SignalBus:           {7, "SIGBUS"},
	SignalFloatingPoint: {8, "SIGFPE"},
	SignalKill:          {9, "SIGKILL"},
	SignalUser1:         {10, "SIGUSR1"},
	SignalSegv:          {11, "SIGSEGV"},
	SignalUser2:         {12, "SIGUSR2"},
	SignalPipe:          {13, "SIGPIPE"},
	SignalAlarm:         {14, "SIGALRM"},
	SignalTerm:          {15, "SIGTERM"},
	SignalChild:         {17, "SIGCHLD"},
	SignalContinue:      {18, "SIGCONT"},
	SignalStop:          {19, "SIGSTOP"},
	SignalTSTP:          {20, "SIGTSTP"},
	SignalTTIN:          {21, "SIGTTIN"},
	SignalTTOU:          {22, "SIGTTOU"},
	SignalUrgent:        {23, "SIGURG"},
	SignalXCPU:          {24, "SIGXCPU"},
	SignalXFSZ:          {25, "SIGXFSZ"},
	SignalVirtualAlarm:  {26, "SIGVTALRM"},
	SignalProfiling:     {27, "SIGPROF"},
	SignalWinch:         {28, "SIGWINCH"},
	SignalIO:            {29, "SIGIO"},
}

// byID is the inverse of signalTable. Ids with no portable signal (16, 30)
// stay SignalUnresolved.
var byID = func() [MaxSignalID + 1]Signal {
	var out [MaxSignalID + 1]Signal
	for sig := SignalHangup; sig < signalCount; sig++ {
		out[signalTable[sig].id] = sig
	}
	return out
}()

// SignalFromID resolves a numeric id (Linux numbering) to a Signal. It is
// total: any id without a signal yields SignalUnresolved.
func SignalFromID(id int) Signal {
	if id < MinSignalID || id > MaxSignalID {
		return SignalUnresolved
	}
	return byID[id]
}

// ID returns the Linux signal number, or 0 when unresolved.
func (s Signal) ID() int {
	if s >= signalCount {
		return 0
	}
	return signalTable[s].id
}

// Resolved reports whether s names a deliverable signal.
func (s Signal) Resolved() bool {
	return s > SignalUnresolved && s < signalCount
}

// String returns the conventional name, e.g. "SIGTERM".
func (s Signal) String() string {
	if !s.Resolved() {
		return "unresolved"
	}
	return signalTable[s].name
}

var errUnresolved = stderrors.New("signal is unresolved")

// OSSignaler delivers signals with the host's native process-control call.
type OSSignaler struct{}

// NewSignaler returns the Signaler for the running OS.
func NewSignaler() *OSSignaler {
	return &OSSignaler{}
}

// Signal sends sig to pid.
func (OSSignaler) Signal(pid int32, sig Signal) error {
	return sendSignal(pid, sig)
}

func signalError(pid int32, sig Signal, err error) error {
	return errors.WrapWithCode(err, errors.ErrSignal,
		fmt.Sprintf("Couldn't send %s to PID %d", sig, pid),
		"The process may have exited, or you may lack permission to signal it")
}
