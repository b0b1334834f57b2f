//go:build !linux && !darwin

package platform

import (
	"context"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

func cachedBytes(vm *mem.VirtualMemoryStat) uint64 {
	return vm.Cached
}

func threadCount(ctx context.Context, p *process.Process) int32 {
	n, err := p.NumThreadsWithContext(ctx)
	if err != nil {
		return 0
	}
	return n
}

func diskKind(string) string {
	return "Unknown"
}
