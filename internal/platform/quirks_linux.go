//go:build linux

package platform

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// cachedBytes matches the buff/cache column of free(1).
func cachedBytes(vm *mem.VirtualMemoryStat) uint64 {
	return vm.Cached + vm.Buffers
}

func threadCount(ctx context.Context, p *process.Process) int32 {
	n, err := p.NumThreadsWithContext(ctx)
	if err != nil {
		return 0
	}
	return n
}

// diskKind reads the rotational flag from sysfs. Partitions are resolved to
// their parent block device.
func diskKind(device string) string {
	path, err := filepath.EvalSymlinks(filepath.Join("/sys/class/block", device))
	if err != nil {
		return "Unknown"
	}
	for _, dir := range []string{path, filepath.Dir(path)} {
		data, err := os.ReadFile(filepath.Join(dir, "queue", "rotational"))
		if err != nil {
			continue
		}
		switch strings.TrimSpace(string(data)) {
		case "0":
			return "SSD"
		case "1":
			return "HDD"
		}
	}
	return "Unknown"
}
