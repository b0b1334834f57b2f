package history

// CPU is one logical core or the aggregate entry.
type CPU struct {
	ID      string
	Brand   string
	Usage   float64
	History *Series
}

// Memory holds host memory history. Values are bytes.
type Memory struct {
	Total     float64
	Used      *Series
	Available *Series
	Free      *Series
	Cached    *Series
	Swap      *Series
}

// Disk is a mounted filesystem keyed by mount point.
type Disk struct {
	MountPoint string
	Name       string
	FileSystem string
	Kind       string
	Total      float64
	Available  float64
	Used       float64
	Written    *Series
	Read       *Series

	updated bool
}

// Network is an interface keyed by name.
type Network struct {
	Name             string
	IPv4             string
	Received         *Series
	Transmitted      *Series
	TotalReceived    float64
	TotalTransmitted float64

	updated bool
}

// Process is a process keyed by PID.
type Process struct {
	PID     int32
	Name    string
	Exe     string
	Command string
	User    string
	Parent  int32

	CPU    *Series
	Memory *Series

	Threads int32
	Status  string
	Elapsed uint64

	ReadBytes         uint64
	TotalReadBytes    uint64
	WrittenBytes      uint64
	TotalWrittenBytes uint64
}

// CurrentCPU returns the latest CPU percent.
func (p *Process) CurrentCPU() float64 {
	v, _ := p.CPU.Latest()
	return v
}

// CurrentMemory returns the latest resident bytes.
func (p *Process) CurrentMemory() float64 {
	v, _ := p.Memory.Latest()
	return v
}

// Pin identifies the process shown in the detail view.
type Pin struct {
	PID    int32
	Active bool
}

// Set pins pid.
func (p *Pin) Set(pid int32) {
	p.PID = pid
	p.Active = true
}

// Clear unpins.
func (p *Pin) Clear() {
	p.PID = 0
	p.Active = false
}
