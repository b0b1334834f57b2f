package platform

import (
	"context"
	"fmt"
	"net/netip"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/logger"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	psnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

// pseudoFSTypes are virtual, system and network filesystems that don't
// represent local storage.
var pseudoFSTypes = map[string]bool{
	"devfs":         true,
	"autofs":        true,
	"nullfs":        true,
	"tmpfs":         true,
	"sysfs":         true,
	"proc":          true,
	"procfs":        true,
	"devtmpfs":      true,
	"cgroup":        true,
	"cgroup2":       true,
	"overlay":       true,
	"squashfs":      true,
	"fuse.snapfuse": true,
	"nsfs":          true,
	"pstore":        true,
	"debugfs":       true,
	"tracefs":       true,
	"securityfs":    true,
	"configfs":      true,
	"fusectl":       true,
	"mqueue":        true,
	"hugetlbfs":     true,
	"binfmt_misc":   true,
	"efivarfs":      true,
	"bpf":           true,
	"ramfs":         true,
	"nfs":           true,
	"nfs4":          true,
	"cifs":          true,
	"smbfs":         true,
	"fuse.sshfs":    true,
	"9p":            true,
}

// systemMountPrefixes are OS-internal volumes hidden from the disk panel.
var systemMountPrefixes = []string{
	"/System/Volumes/",
	"/private/var/vm",
}

func isSystemMount(mount string) bool {
	for _, prefix := range systemMountPrefixes {
		if strings.HasPrefix(mount, prefix) {
			return true
		}
	}
	return false
}

// normalizedStatuses maps raw gopsutil status strings to a consistent set of
// display values across platforms.
var normalizedStatuses = map[string]string{
	"running":               "running",
	"sleeping":              "sleeping",
	"idle":                  "idle",
	"stopped":               "stopped",
	"zombie":                "zombie",
	"wait":                  "sleeping",
	"lock":                  "sleeping",
	"sleep":                 "sleeping",
	"disk-sleep":            "sleeping",
	"tracing-stop":          "stopped",
	"dead":                  "zombie",
	"wake-kill":             "sleeping",
	"waking":                "running",
	"parked":                "idle",
	"idle-interrupt":        "idle",
	"suspended":             "stopped",
	"uninterruptible-sleep": "sleeping",
}

// normalizeStatus maps a raw status to a display value. An empty status
// (common on Windows) is inferred from CPU activity.
func normalizeStatus(raw string, cpuPct float64) string {
	if raw != "" {
		key := strings.ToLower(strings.TrimSpace(raw))
		if mapped, ok := normalizedStatuses[key]; ok {
			return mapped
		}
		return key
	}
	if cpuPct > 0 {
		return "running"
	}
	return "idle"
}

// trackedProcess keeps the gopsutil handle alive between samples so CPU
// percent and I/O rates are computed against the previous sample.
type trackedProcess struct {
	proc       *process.Process
	createTime int64
	lastRead   uint64
	lastWrite  uint64
}

// Host samples the local machine through gopsutil. SampleSystem and
// SampleProcesses may run concurrently from different goroutines.
type Host struct {
	log logger.Logger
	now func() time.Time

	sysMu  sync.Mutex
	brand  string
	primed bool
	diskIO map[string]disk.IOCountersStat
	netIO  map[string]psnet.IOCountersStat
	ioAt   time.Time

	procMu sync.Mutex
	procs  map[int32]*trackedProcess
}

// NewHost creates a sampler for the local machine.
func NewHost(log logger.Logger) *Host {
	if log == nil {
		log = logger.Noop()
	}
	return &Host{
		log:    log,
		now:    time.Now,
		diskIO: make(map[string]disk.IOCountersStat),
		netIO:  make(map[string]psnet.IOCountersStat),
		procs:  make(map[int32]*trackedProcess),
	}
}

// SampleSystem draws one host-wide snapshot. Any failure rejects the whole
// snapshot.
func (h *Host) SampleSystem(ctx context.Context) (SystemSnapshot, error) {
	h.sysMu.Lock()
	defer h.sysMu.Unlock()

	if !h.primed {
		if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
			h.brand = strings.TrimSpace(infos[0].ModelName)
		}
		h.primed = true
	}

	cpus, err := h.sampleCPUs(ctx)
	if err != nil {
		return SystemSnapshot{}, errors.Wrap(err, "Couldn't read CPU usage")
	}
	memory, err := sampleMemory(ctx)
	if err != nil {
		return SystemSnapshot{}, errors.Wrap(err, "Couldn't read memory usage")
	}
	taken := h.now()
	disks, err := h.sampleDisks(ctx)
	if err != nil {
		return SystemSnapshot{}, errors.Wrap(err, "Couldn't read disk usage")
	}
	networks, err := h.sampleNetworks(ctx)
	if err != nil {
		return SystemSnapshot{}, errors.Wrap(err, "Couldn't read network counters")
	}

	period := ioPeriod(h.ioAt, taken)
	h.ioAt = taken

	return SystemSnapshot{
		Taken:    taken,
		Period:   period,
		CPUs:     cpus,
		Memory:   memory,
		Disks:    disks,
		Networks: networks,
	}, nil
}

// ioPeriod is the time between two counter reads. Zero when there is no
// previous read or the clock went backwards.
func ioPeriod(prev, now time.Time) time.Duration {
	if prev.IsZero() || !now.After(prev) {
		return 0
	}
	return now.Sub(prev)
}

// sampleCPUs returns the aggregate entry first, then one entry per core.
// An interval of 0 measures against the previous call.
func (h *Host) sampleCPUs(ctx context.Context) ([]CPUSample, error) {
	overall, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return nil, err
	}
	cores, err := cpu.PercentWithContext(ctx, 0, true)
	if err != nil {
		return nil, err
	}

	out := make([]CPUSample, 0, len(cores)+1)
	avg := CPUSample{ID: AggregateCPUID, Brand: h.brand}
	if len(overall) > 0 {
		avg.Usage = overall[0]
	}
	out = append(out, avg)
	for i, usage := range cores {
		out = append(out, CPUSample{ID: fmt.Sprintf("CPU%d", i), Brand: h.brand, Usage: usage})
	}
	return out, nil
}

func sampleMemory(ctx context.Context) (MemorySample, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemorySample{}, err
	}
	var swapUsed float64
	if sw, err := mem.SwapMemoryWithContext(ctx); err == nil {
		swapUsed = float64(sw.Used)
	}

	return MemorySample{
		Total:     float64(vm.Total),
		Used:      float64(vm.Used),
		Available: float64(vm.Available),
		Free:      float64(vm.Free),
		Cached:    float64(cachedBytes(vm)),
		Swap:      swapUsed,
	}, nil
}

func (h *Host) sampleDisks(ctx context.Context) ([]DiskSample, error) {
	partitions, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, err
	}

	// I/O counters are best effort: some platforms key them differently from
	// partition devices, in which case rates stay at zero.
	counters, ioErr := disk.IOCountersWithContext(ctx)
	if ioErr != nil {
		h.log.Debug("disk io counters unavailable: %v", ioErr)
	}

	seen := make(map[string]bool)
	var out []DiskSample
	for _, p := range partitions {
		if pseudoFSTypes[p.Fstype] || isSystemMount(p.Mountpoint) {
			continue
		}
		if seen[p.Mountpoint] {
			continue
		}
		usage, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil || usage.Total == 0 {
			continue
		}
		seen[p.Mountpoint] = true

		device := filepath.Base(p.Device)
		sample := DiskSample{
			MountPoint: p.Mountpoint,
			Name:       device,
			FileSystem: p.Fstype,
			Kind:       diskKind(device),
			Total:      float64(usage.Total),
			Available:  float64(usage.Free),
			Used:       float64(usage.Used),
		}
		if cur, ok := counters[device]; ok {
			if prev, ok := h.diskIO[device]; ok {
				sample.BytesWritten = float64(counterDelta(cur.WriteBytes, prev.WriteBytes))
				sample.BytesRead = float64(counterDelta(cur.ReadBytes, prev.ReadBytes))
			}
		}
		out = append(out, sample)
	}

	if ioErr == nil {
		h.diskIO = counters
	}
	return out, nil
}

func (h *Host) sampleNetworks(ctx context.Context) ([]NetworkSample, error) {
	counters, err := psnet.IOCountersWithContext(ctx, true)
	if err != nil {
		return nil, err
	}

	addrs := make(map[string]string)
	if ifaces, err := psnet.InterfacesWithContext(ctx); err == nil {
		for _, iface := range ifaces {
			list := make([]string, 0, len(iface.Addrs))
			for _, a := range iface.Addrs {
				list = append(list, a.Addr)
			}
			addrs[iface.Name] = firstIPv4(list)
		}
	} else {
		h.log.Debug("network interface list unavailable: %v", err)
	}

	next := make(map[string]psnet.IOCountersStat, len(counters))
	out := make([]NetworkSample, 0, len(counters))
	for _, c := range counters {
		sample := NetworkSample{
			Name:             c.Name,
			IPv4:             addrs[c.Name],
			TotalReceived:    float64(c.BytesRecv),
			TotalTransmitted: float64(c.BytesSent),
		}
		if prev, ok := h.netIO[c.Name]; ok {
			sample.Received = float64(counterDelta(c.BytesRecv, prev.BytesRecv))
			sample.Transmitted = float64(counterDelta(c.BytesSent, prev.BytesSent))
		}
		next[c.Name] = c
		out = append(out, sample)
	}
	h.netIO = next
	return out, nil
}

// firstIPv4 returns the first IPv4 address from a list of CIDR or bare
// addresses, or "" when there is none.
func firstIPv4(addrs []string) string {
	for _, a := range addrs {
		if p, err := netip.ParsePrefix(a); err == nil {
			if p.Addr().Is4() {
				return p.Addr().String()
			}
			continue
		}
		if ip, err := netip.ParseAddr(a); err == nil && ip.Is4() {
			return ip.String()
		}
	}
	return ""
}

// SampleProcesses draws one snapshot of the process table. Processes that
// exit mid-sample are skipped; failing to list processes at all rejects the
// snapshot.
func (h *Host) SampleProcesses(ctx context.Context) (ProcessSnapshot, error) {
	h.procMu.Lock()
	defer h.procMu.Unlock()

	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		return ProcessSnapshot{}, errors.Wrap(err, "Couldn't list processes")
	}

	now := h.now()
	alive := make(map[int32]bool, len(pids))
	out := make([]ProcessSample, 0, len(pids))
	for _, pid := range pids {
		tp, err := h.track(ctx, pid)
		if err != nil {
			continue
		}
		sample, ok := h.sampleProcess(ctx, tp, now)
		if !ok {
			continue
		}
		alive[pid] = true
		out = append(out, sample)
	}

	for pid := range h.procs {
		if !alive[pid] {
			delete(h.procs, pid)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return ProcessSnapshot{Taken: now, Processes: out}, nil
}

// track returns the cached handle for pid, replacing it when the pid has been
// reused by a new process.
func (h *Host) track(ctx context.Context, pid int32) (*trackedProcess, error) {
	tp, ok := h.procs[pid]
	if ok {
		created, err := tp.proc.CreateTimeWithContext(ctx)
		if err == nil && created == tp.createTime {
			return tp, nil
		}
	}

	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return nil, err
	}
	created, _ := p.CreateTimeWithContext(ctx)
	tp = &trackedProcess{proc: p, createTime: created}
	h.procs[pid] = tp
	return tp, nil
}

func (h *Host) sampleProcess(ctx context.Context, tp *trackedProcess, now time.Time) (ProcessSample, bool) {
	p := tp.proc
	name, err := p.NameWithContext(ctx)
	if err != nil {
		return ProcessSample{}, false
	}

	exe, _ := p.ExeWithContext(ctx)
	cmdline, _ := p.CmdlineWithContext(ctx)
	user, _ := p.UsernameWithContext(ctx)
	ppid, _ := p.PpidWithContext(ctx)
	cpuPct, _ := p.PercentWithContext(ctx, 0)

	var rss float64
	if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
		rss = float64(mi.RSS)
	}

	var rawStatus string
	if status, err := p.StatusWithContext(ctx); err == nil && len(status) > 0 {
		rawStatus = status[0]
	}

	var elapsed uint64
	if tp.createTime > 0 {
		if secs := now.Unix() - tp.createTime/1000; secs > 0 {
			elapsed = uint64(secs)
		}
	}

	sample := ProcessSample{
		PID:     p.Pid,
		Name:    name,
		Exe:     exe,
		Command: cmdline,
		User:    user,
		Parent:  ppid,
		CPU:     cpuPct,
		Memory:  rss,
		Threads: threadCount(ctx, p),
		Status:  normalizeStatus(rawStatus, cpuPct),
		Elapsed: elapsed,
	}

	if io, err := p.IOCountersWithContext(ctx); err == nil && io != nil {
		sample.TotalReadBytes = io.ReadBytes
		sample.TotalWrittenBytes = io.WriteBytes
		if tp.lastRead > 0 || tp.lastWrite > 0 {
			sample.ReadBytes = counterDelta(io.ReadBytes, tp.lastRead)
			sample.WrittenBytes = counterDelta(io.WriteBytes, tp.lastWrite)
		}
		tp.lastRead = io.ReadBytes
		tp.lastWrite = io.WriteBytes
	}

	return sample, true
}

var (
	_ Sampler  = (*Host)(nil)
	_ Signaler = OSSignaler{}
)
