//go:build darwin

package platform

import (
	"context"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// cachedBytes uses inactive pages; macOS has no separate page-cache counter.
func cachedBytes(vm *mem.VirtualMemoryStat) uint64 {
	return vm.Inactive
}

// threadCount falls back to 1 when the thread list can't be read, which is
// the case for other users' processes without elevated privileges.
func threadCount(ctx context.Context, p *process.Process) int32 {
	n, err := p.NumThreadsWithContext(ctx)
	if err != nil || n == 0 {
		return 1
	}
	return n
}

func diskKind(string) string {
	return "Unknown"
}
