// Package testing provides test doubles for the platform package.
package testing

import (
	"context"
	"sync"
	"time"

	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/platform"
)

// FakeSampler returns scripted snapshots. Each call pops the next queued
// snapshot; once the queue is empty the last one is repeated.
type FakeSampler struct {
	mu sync.Mutex

	// Configuration
	SystemErr      error
	ProcessErr     error
	SimulatedDelay time.Duration

	// Call tracking
	SystemCalls  int
	ProcessCalls int

	systems    []platform.SystemSnapshot
	processes  []platform.ProcessSnapshot
	lastSystem platform.SystemSnapshot
	lastProc   platform.ProcessSnapshot
}

// NewFakeSampler creates a sampler that returns empty snapshots by default.
func NewFakeSampler() *FakeSampler {
	return &FakeSampler{}
}

// QueueSystem appends system snapshots to be returned in order.
func (f *FakeSampler) QueueSystem(snaps ...platform.SystemSnapshot) *FakeSampler {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.systems = append(f.systems, snaps...)
	return f
}

// QueueProcesses appends process snapshots to be returned in order.
func (f *FakeSampler) QueueProcesses(snaps ...platform.ProcessSnapshot) *FakeSampler {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processes = append(f.processes, snaps...)
	return f
}

// SetSystemError makes SampleSystem fail with err until cleared with nil.
func (f *FakeSampler) SetSystemError(err error) *FakeSampler {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SystemErr = err
	return f
}

// SetDelay makes every sample call block for d (or until ctx is done).
func (f *FakeSampler) SetDelay(d time.Duration) *FakeSampler {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SimulatedDelay = d
	return f
}

func (f *FakeSampler) wait(ctx context.Context) error {
	f.mu.Lock()
	d := f.SimulatedDelay
	f.mu.Unlock()
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SampleSystem implements platform.Sampler.
func (f *FakeSampler) SampleSystem(ctx context.Context) (platform.SystemSnapshot, error) {
	if err := f.wait(ctx); err != nil {
		return platform.SystemSnapshot{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SystemCalls++
	if f.SystemErr != nil {
		return platform.SystemSnapshot{}, f.SystemErr
	}
	if len(f.systems) > 0 {
		f.lastSystem = f.systems[0]
		f.systems = f.systems[1:]
	}
	snap := f.lastSystem
	snap.Taken = time.Now()
	return snap, nil
}

// SampleProcesses implements platform.Sampler.
func (f *FakeSampler) SampleProcesses(ctx context.Context) (platform.ProcessSnapshot, error) {
	if err := f.wait(ctx); err != nil {
		return platform.ProcessSnapshot{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ProcessCalls++
	if f.ProcessErr != nil {
		return platform.ProcessSnapshot{}, f.ProcessErr
	}
	if len(f.processes) > 0 {
		f.lastProc = f.processes[0]
		f.processes = f.processes[1:]
	}
	snap := f.lastProc
	snap.Taken = time.Now()
	return snap, nil
}

// Calls returns the number of system and process sample calls so far.
func (f *FakeSampler) Calls() (system, processes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.SystemCalls, f.ProcessCalls
}

// SignalCall records a call to Signal.
type SignalCall struct {
	PID    int32
	Signal platform.Signal
}

// FakeSignaler records signals instead of delivering them.
type FakeSignaler struct {
	mu sync.Mutex

	ShouldFail bool
	FailError  error

	Calls []SignalCall
}

// NewFakeSignaler creates a signaler that succeeds by default.
func NewFakeSignaler() *FakeSignaler {
	return &FakeSignaler{}
}

// SetFail configures the signaler to fail every delivery.
func (s *FakeSignaler) SetFail(err error) *FakeSignaler {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ShouldFail = true
	s.FailError = err
	return s
}

// Signal implements platform.Signaler.
func (s *FakeSignaler) Signal(pid int32, sig platform.Signal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, SignalCall{PID: pid, Signal: sig})
	if s.ShouldFail {
		if s.FailError != nil {
			return s.FailError
		}
		return errors.New(errors.ErrSignal, "Signal delivery failed", "Configured to fail in test")
	}
	return nil
}

// Sent returns a copy of the recorded calls.
func (s *FakeSignaler) Sent() []SignalCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SignalCall, len(s.Calls))
	copy(out, s.Calls)
	return out
}

var (
	_ platform.Sampler  = (*FakeSampler)(nil)
	_ platform.Signaler = (*FakeSignaler)(nil)
)
