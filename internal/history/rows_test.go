package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/rtop/internal/platform"
)

func seededStore() *Store {
	s := NewStore()
	s.ReconcileProcesses(platform.ProcessSnapshot{Processes: []platform.ProcessSample{
		{PID: 1, Name: "init", Command: "/sbin/init", User: "root", CPU: 0.1, Memory: 10, Threads: 1},
		{PID: 42, Name: "top", Command: "top -d 1", User: "alice", CPU: 5, Memory: 300, Threads: 1},
		{PID: 300, Name: "postgres", Command: "postgres -D /data", User: "postgres", CPU: 20, Memory: 900, Threads: 8},
		{PID: 7, Name: "Xorg", Command: "/usr/bin/Xorg", User: "root", CPU: 3, Memory: 500, Threads: 4},
	}}, nil)
	return s
}

func pids(rows []*Process) []int32 {
	out := make([]int32, len(rows))
	for i, r := range rows {
		out[i] = r.PID
	}
	return out
}

func TestProcessRows_Sorting(t *testing.T) {
	s := seededStore()

	tests := []struct {
		name string
		col  SortColumn
		desc bool
		want []int32
	}{
		{"threads desc, ties by pid", SortThread, true, []int32{300, 7, 1, 42}},
		{"memory desc", SortMemory, true, []int32{300, 7, 42, 1}},
		{"cpu asc", SortCPU, false, []int32{1, 7, 42, 300}},
		{"pid asc", SortPID, false, []int32{1, 7, 42, 300}},
		{"name asc case-insensitive", SortName, false, []int32{1, 300, 42, 7}},
		{"user asc", SortUser, false, []int32{42, 300, 1, 7}},
		{"command desc", SortCommand, true, []int32{42, 300, 7, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pids(s.ProcessRows(tt.col, tt.desc, "")))
		})
	}
}

func TestProcessRows_Filter(t *testing.T) {
	s := seededStore()

	assert.Equal(t, []int32{42}, pids(s.ProcessRows(SortPID, false, "TOP")))
	assert.Equal(t, []int32{1, 7}, pids(s.ProcessRows(SortPID, false, "root")))
	assert.Equal(t, []int32{300}, pids(s.ProcessRows(SortPID, false, "/data")))
	assert.Equal(t, []int32{300}, pids(s.ProcessRows(SortPID, false, "300")))
	assert.Empty(t, s.ProcessRows(SortPID, false, "nothing-matches"))
	assert.Len(t, s.ProcessRows(SortPID, false, "  "), 4, "blank filter matches everything")
}

func TestSortColumn(t *testing.T) {
	assert.Equal(t, SortMemory, SortThread.Next())
	assert.Equal(t, SortThread, SortUser.Next(), "wraps forward")
	assert.Equal(t, SortUser, SortThread.Prev(), "wraps backward")
	assert.Equal(t, "CPU", SortCPU.String())
	assert.Equal(t, "Unknown", SortColumn(99).String())
	assert.Len(t, SortColumnNames(), SortColumnCount)

	c, err := ParseSortColumn("memory")
	require.NoError(t, err)
	assert.Equal(t, SortMemory, c)

	_, err = ParseSortColumn("disk")
	assert.Error(t, err)
}
