//go:build windows

package platform

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/process"
)

// sendSignal supports only kill and terminate; Windows has no general
// signal delivery to other processes.
func sendSignal(pid int32, sig Signal) error {
	if !sig.Resolved() {
		return signalError(pid, sig, errUnresolved)
	}

	ctx := context.Background()
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return signalError(pid, sig, err)
	}

	switch sig {
	case SignalKill:
		err = p.KillWithContext(ctx)
	case SignalTerm, SignalInterrupt:
		err = p.TerminateWithContext(ctx)
	default:
		err = fmt.Errorf("%s is not supported on windows", sig)
	}
	if err != nil {
		return signalError(pid, sig, err)
	}
	return nil
}
