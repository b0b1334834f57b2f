//go:build !unix && !windows

package platform

import "fmt"

func sendSignal(pid int32, sig Signal) error {
	return signalError(pid, sig, fmt.Errorf("signal delivery is not supported on this platform"))
}
