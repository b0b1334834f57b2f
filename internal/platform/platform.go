// Package platform is the boundary between rtop and the operating system.
//
// Everything OS-specific (metric sampling, cached-memory accounting, thread
// counts, signal delivery) lives behind the Sampler and Signaler interfaces.
// The rest of rtop only sees the immutable snapshot types declared here.
package platform

import (
	"context"
	"time"
)

// AggregateCPUID is the id of the synthetic all-cores entry. It is always the
// first element of SystemSnapshot.CPUs.
const AggregateCPUID = "CPU-AVG"

// Sampler draws one snapshot of each kind from the host.
type Sampler interface {
	SampleSystem(ctx context.Context) (SystemSnapshot, error)
	SampleProcesses(ctx context.Context) (ProcessSnapshot, error)
}

// Signaler delivers a signal to a process.
type Signaler interface {
	Signal(pid int32, sig Signal) error
}

// CPUSample is one logical CPU (or the aggregate) at sample time.
type CPUSample struct {
	ID    string
	Brand string
	Usage float64 // percent, 0-100
}

// MemorySample is host memory in bytes.
type MemorySample struct {
	Total     float64
	Used      float64
	Available float64
	Free      float64
	Cached    float64
	Swap      float64
}

// DiskSample is one mounted filesystem. BytesWritten and BytesRead are the
// amounts transferred since the previous sample.
type DiskSample struct {
	MountPoint   string
	Name         string
	FileSystem   string
	Kind         string
	Total        float64
	Available    float64
	Used         float64
	BytesWritten float64
	BytesRead    float64
}

// NetworkSample is one network interface. Received and Transmitted are bytes
// since the previous sample; the Total fields are cumulative counters.
type NetworkSample struct {
	Name             string
	IPv4             string // empty when the interface has no IPv4 address
	Received         float64
	Transmitted      float64
	TotalReceived    float64
	TotalTransmitted float64
}

// SystemSnapshot is a single host-wide sample.
type SystemSnapshot struct {
	Taken time.Time
	// Period is the time the disk and network deltas were measured over.
	// Zero on the first snapshot.
	Period   time.Duration
	CPUs     []CPUSample
	Memory   MemorySample
	Disks    []DiskSample
	Networks []NetworkSample
}

// ProcessSample is one row of the process table.
type ProcessSample struct {
	PID     int32
	Name    string
	Exe     string
	Command string
	User    string
	Parent  int32

	CPU     float64 // percent of one core
	Memory  float64 // resident bytes
	Threads int32
	Status  string
	Elapsed uint64 // seconds since start

	ReadBytes         uint64
	TotalReadBytes    uint64
	WrittenBytes      uint64
	TotalWrittenBytes uint64
}

// ProcessSnapshot is a single sample of the process table.
type ProcessSnapshot struct {
	Taken     time.Time
	Processes []ProcessSample
}

// counterDelta returns cur-prev for monotonic counters, treating a reset as zero.
func counterDelta(cur, prev uint64) uint64 {
	if cur < prev {
		return 0
	}
	return cur - prev
}
