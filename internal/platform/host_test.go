package platform

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/rtop/internal/logger"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw  string
		cpu  float64
		want string
	}{
		{"running", 0, "running"},
		{"R", 0, "r"},
		{"disk-sleep", 0, "sleeping"},
		{"  Zombie ", 0, "zombie"},
		{"parked", 0, "idle"},
		{"", 3.2, "running"},
		{"", 0, "idle"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeStatus(tt.raw, tt.cpu), "raw=%q", tt.raw)
	}
}

func TestFirstIPv4(t *testing.T) {
	tests := []struct {
		name  string
		addrs []string
		want  string
	}{
		{"cidr", []string{"192.168.1.10/24"}, "192.168.1.10"},
		{"skips ipv6", []string{"fe80::1/64", "10.0.0.2/8"}, "10.0.0.2"},
		{"bare address", []string{"127.0.0.1"}, "127.0.0.1"},
		{"only ipv6", []string{"::1/128"}, ""},
		{"garbage", []string{"not-an-ip"}, ""},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, firstIPv4(tt.addrs))
		})
	}
}

func TestCounterDelta(t *testing.T) {
	assert.Equal(t, uint64(50), counterDelta(150, 100))
	assert.Equal(t, uint64(0), counterDelta(100, 100))
	assert.Equal(t, uint64(0), counterDelta(10, 100), "counter reset reads as zero")
}

func TestIOPeriod(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Zero(t, ioPeriod(time.Time{}, base), "first read has no period")
	assert.Equal(t, 100*time.Millisecond, ioPeriod(base, base.Add(100*time.Millisecond)))
	assert.Zero(t, ioPeriod(base, base.Add(-time.Second)), "clock went backwards")
}

func TestIsSystemMount(t *testing.T) {
	assert.True(t, isSystemMount("/System/Volumes/Data"))
	assert.True(t, isSystemMount("/private/var/vm"))
	assert.False(t, isSystemMount("/"))
	assert.False(t, isSystemMount("/home"))
}

func TestHost_SampleSystem_Live(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skip("live sampling only exercised on linux and darwin")
	}

	h := NewHost(logger.Noop())
	snap, err := h.SampleSystem(context.Background())
	if err != nil {
		t.Skipf("host metrics unavailable in this environment: %v", err)
	}

	require.NotEmpty(t, snap.CPUs)
	assert.Equal(t, AggregateCPUID, snap.CPUs[0].ID, "aggregate CPU entry comes first")
	for _, c := range snap.CPUs[1:] {
		assert.NotEqual(t, AggregateCPUID, c.ID)
	}
	assert.Greater(t, snap.Memory.Total, 0.0)
	assert.False(t, snap.Taken.IsZero())
	assert.Zero(t, snap.Period, "no previous counters on the first sample")

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return start }
	if _, err := h.SampleSystem(context.Background()); err != nil {
		t.Skipf("host metrics unavailable in this environment: %v", err)
	}
	h.now = func() time.Time { return start.Add(250 * time.Millisecond) }
	snap, err = h.SampleSystem(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, snap.Period)
}

func TestHost_SampleProcesses_Live(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skip("live sampling only exercised on linux and darwin")
	}

	h := NewHost(nil)
	snap, err := h.SampleProcesses(context.Background())
	if err != nil {
		t.Skipf("process table unavailable in this environment: %v", err)
	}

	require.NotEmpty(t, snap.Processes)
	for i := 1; i < len(snap.Processes); i++ {
		assert.Less(t, snap.Processes[i-1].PID, snap.Processes[i].PID, "processes are ordered by pid")
	}

	// A second pass reuses cached handles and drops nothing that is still alive.
	again, err := h.SampleProcesses(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, again.Processes)
	assert.LessOrEqual(t, len(h.procs), len(again.Processes))
}
