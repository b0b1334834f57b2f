package history

import (
	"sort"
	"time"

	"github.com/rileyhilliard/rtop/internal/platform"
)

// Store holds every tracked entity.
type Store struct {
	capacity int

	cpus      []*CPU
	memory    *Memory
	disks     map[string]*Disk
	networks  map[string]*Network
	processes map[int32]*Process

	systemAt     time.Time
	systemPeriod time.Duration
	processAt    time.Time
}

// NewStore creates an empty store whose series hold DefaultCapacity samples.
func NewStore() *Store {
	return NewStoreWithCapacity(DefaultCapacity)
}

// NewStoreWithCapacity creates an empty store with a custom series capacity.
func NewStoreWithCapacity(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &Store{
		capacity:  capacity,
		disks:     make(map[string]*Disk),
		networks:  make(map[string]*Network),
		processes: make(map[int32]*Process),
	}
	s.memory = &Memory{
		Used:      NewSeries(capacity),
		Available: NewSeries(capacity),
		Free:      NewSeries(capacity),
		Cached:    NewSeries(capacity),
		Swap:      NewSeries(capacity),
	}
	return s
}

// ReconcileSystem merges a host-wide snapshot.
//
// CPUs are matched by id and updated in place. The first snapshot creates
// the list; later snapshots never add or remove cores. Disks and networks
// go through find-or-create-or-update and are pruned when absent.
func (s *Store) ReconcileSystem(snap platform.SystemSnapshot) {
	s.reconcileCPUs(snap.CPUs)
	s.reconcileMemory(snap.Memory)
	s.reconcileDisks(snap.Disks)
	s.reconcileNetworks(snap.Networks)
	s.systemAt = snap.Taken
	s.systemPeriod = snap.Period
}

func (s *Store) reconcileCPUs(samples []platform.CPUSample) {
	if len(s.cpus) == 0 {
		for _, c := range samples {
			cpu := &CPU{ID: c.ID, Brand: c.Brand, Usage: c.Usage, History: NewSeries(s.capacity)}
			cpu.History.Push(c.Usage)
			s.cpus = append(s.cpus, cpu)
		}
		return
	}

	byID := make(map[string]platform.CPUSample, len(samples))
	for _, c := range samples {
		byID[c.ID] = c
	}
	for _, cpu := range s.cpus {
		c, ok := byID[cpu.ID]
		if !ok {
			continue
		}
		cpu.Usage = c.Usage
		cpu.History.Push(c.Usage)
	}
}

func (s *Store) reconcileMemory(m platform.MemorySample) {
	s.memory.Total = m.Total
	s.memory.Used.Push(m.Used)
	s.memory.Available.Push(m.Available)
	s.memory.Free.Push(m.Free)
	s.memory.Cached.Push(m.Cached)
	s.memory.Swap.Push(m.Swap)
}

func (s *Store) reconcileDisks(samples []platform.DiskSample) {
	for _, d := range s.disks {
		d.updated = false
	}

	for _, sample := range samples {
		d, ok := s.disks[sample.MountPoint]
		if !ok {
			d = &Disk{
				MountPoint: sample.MountPoint,
				Written:    NewSeries(s.capacity),
				Read:       NewSeries(s.capacity),
			}
			s.disks[sample.MountPoint] = d
		}
		d.Name = sample.Name
		d.FileSystem = sample.FileSystem
		d.Kind = sample.Kind
		d.Total = sample.Total
		d.Available = sample.Available
		d.Used = sample.Used
		d.Written.Push(sample.BytesWritten)
		d.Read.Push(sample.BytesRead)
		d.updated = true
	}

	for key, d := range s.disks {
		if !d.updated {
			delete(s.disks, key)
		}
	}
}

func (s *Store) reconcileNetworks(samples []platform.NetworkSample) {
	for _, n := range s.networks {
		n.updated = false
	}

	for _, sample := range samples {
		n, ok := s.networks[sample.Name]
		if !ok {
			n = &Network{
				Name:        sample.Name,
				Received:    NewSeries(s.capacity),
				Transmitted: NewSeries(s.capacity),
			}
			s.networks[sample.Name] = n
		}
		n.IPv4 = sample.IPv4
		n.TotalReceived = sample.TotalReceived
		n.TotalTransmitted = sample.TotalTransmitted
		n.Received.Push(sample.Received)
		n.Transmitted.Push(sample.Transmitted)
		n.updated = true
	}

	for key, n := range s.networks {
		if !n.updated {
			delete(s.networks, key)
		}
	}
}

// ReconcileProcesses merges a process-table snapshot. Processes missing
// from the snapshot are deleted, and pin is cleared when its PID is gone.
// pin may be nil.
func (s *Store) ReconcileProcesses(snap platform.ProcessSnapshot, pin *Pin) {
	seen := make(map[int32]bool, len(snap.Processes))

	for _, sample := range snap.Processes {
		p, ok := s.processes[sample.PID]
		if !ok {
			p = &Process{
				PID:    sample.PID,
				CPU:    NewSeries(s.capacity),
				Memory: NewSeries(s.capacity),
			}
			s.processes[sample.PID] = p
		}
		p.Name = sample.Name
		p.Exe = sample.Exe
		p.Command = sample.Command
		p.User = sample.User
		p.Parent = sample.Parent
		p.Threads = sample.Threads
		p.Status = sample.Status
		p.Elapsed = sample.Elapsed
		p.ReadBytes = sample.ReadBytes
		p.TotalReadBytes = sample.TotalReadBytes
		p.WrittenBytes = sample.WrittenBytes
		p.TotalWrittenBytes = sample.TotalWrittenBytes
		p.CPU.Push(sample.CPU)
		p.Memory.Push(sample.Memory)
		seen[sample.PID] = true
	}

	for pid := range s.processes {
		if !seen[pid] {
			delete(s.processes, pid)
		}
	}

	if pin != nil && pin.Active && !seen[pin.PID] {
		pin.Clear()
	}
	s.processAt = snap.Taken
}

// CPUs returns the cores in snapshot order; the aggregate entry is first.
func (s *Store) CPUs() []*CPU {
	return s.cpus
}

// Memory returns the memory history.
func (s *Store) Memory() *Memory {
	return s.memory
}

// Disks returns disks ordered by mount point.
func (s *Store) Disks() []*Disk {
	out := make([]*Disk, 0, len(s.disks))
	for _, d := range s.disks {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MountPoint < out[j].MountPoint })
	return out
}

// Disk looks up a disk by mount point.
func (s *Store) Disk(mount string) (*Disk, bool) {
	d, ok := s.disks[mount]
	return d, ok
}

// Networks returns interfaces ordered by name.
func (s *Store) Networks() []*Network {
	out := make([]*Network, 0, len(s.networks))
	for _, n := range s.networks {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Network looks up an interface by name.
func (s *Store) Network(name string) (*Network, bool) {
	n, ok := s.networks[name]
	return n, ok
}

// Process looks up a process by PID.
func (s *Store) Process(pid int32) (*Process, bool) {
	p, ok := s.processes[pid]
	return p, ok
}

// ProcessCount returns the number of tracked processes.
func (s *Store) ProcessCount() int {
	return len(s.processes)
}

// DiskCount returns the number of tracked disks.
func (s *Store) DiskCount() int {
	return len(s.disks)
}

// NetworkCount returns the number of tracked interfaces.
func (s *Store) NetworkCount() int {
	return len(s.networks)
}

// LastSystemUpdate is the timestamp of the newest system snapshot.
func (s *Store) LastSystemUpdate() time.Time {
	return s.systemAt
}

// SystemPeriod is the measurement period of the newest disk and network
// deltas, or zero when unknown.
func (s *Store) SystemPeriod() time.Duration {
	return s.systemPeriod
}

// LastProcessUpdate is the timestamp of the newest process snapshot.
func (s *Store) LastProcessUpdate() time.Time {
	return s.processAt
}
