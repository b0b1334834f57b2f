//go:build unix

package platform

import (
	"golang.org/x/sys/unix"
)

var nativeSignals = [signalCount]unix.Signal{
	SignalHangup:        unix.SIGHUP,
	SignalInterrupt:     unix.SIGINT,
	SignalQuit:          unix.SIGQUIT,
	SignalIllegal:       unix.SIGILL,
	SignalTrap:          unix.SIGTRAP,
	SignalAbort:         unix.SIGABRT,
	SignalBus:           unix.SIGBUS,
	SignalFloatingPoint: unix.SIGFPE,
	SignalKill:          unix.SIGKILL,
	SignalUser1:         unix.SIGUSR1,
	SignalSegv:          unix.SIGSEGV,
	SignalUser2:         unix.SIGUSR2,
	SignalPipe:          unix.SIGPIPE,
	SignalAlarm:         unix.SIGALRM,
	SignalTerm:          unix.SIGTERM,
	SignalChild:         unix.SIGCHLD,
	SignalContinue:      unix.SIGCONT,
	SignalStop:          unix.SIGSTOP,
	SignalTSTP:          unix.SIGTSTP,
	SignalTTIN:          unix.SIGTTIN,
	SignalTTOU:          unix.SIGTTOU,
	SignalUrgent:        unix.SIGURG,
	SignalXCPU:          unix.SIGXCPU,
	SignalXFSZ:          unix.SIGXFSZ,
	SignalVirtualAlarm:  unix.SIGVTALRM,
	SignalProfiling:     unix.SIGPROF,
	SignalWinch:         unix.SIGWINCH,
	SignalIO:            unix.SIGIO,
}

// sendSignal delivers sig with kill(2). The native number can differ from
// Signal.ID on non-Linux systems.
func sendSignal(pid int32, sig Signal) error {
	if !sig.Resolved() {
		return signalError(pid, sig, errUnresolved)
	}
	if err := unix.Kill(int(pid), nativeSignals[sig]); err != nil {
		return signalError(pid, sig, err)
	}
	return nil
}
