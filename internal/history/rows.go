package history

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// SortColumn is a process table sort key.
type SortColumn int

const (
	SortThread SortColumn = iota
	SortMemory
	SortCPU
	SortPID
	SortName
	SortCommand
	SortUser

	// SortColumnCount is the number of sort columns.
	SortColumnCount = 7
)

var sortColumnNames = [SortColumnCount]string{
	SortThread:  "Thread",
	SortMemory:  "Memory",
	SortCPU:     "CPU",
	SortPID:     "PID",
	SortName:    "Name",
	SortCommand: "Command",
	SortUser:    "User",
}

func (c SortColumn) String() string {
	if c < 0 || c >= SortColumnCount {
		return "Unknown"
	}
	return sortColumnNames[c]
}

// Next returns the following column, wrapping after the last.
func (c SortColumn) Next() SortColumn {
	return (c + 1) % SortColumnCount
}

// Prev returns the preceding column, wrapping before the first.
func (c SortColumn) Prev() SortColumn {
	return (c + SortColumnCount - 1) % SortColumnCount
}

// ParseSortColumn accepts a column name, case-insensitively.
func ParseSortColumn(s string) (SortColumn, error) {
	for i, name := range sortColumnNames {
		if strings.EqualFold(s, name) {
			return SortColumn(i), nil
		}
	}
	return SortThread, fmt.Errorf("unknown sort column %q", s)
}

// SortColumnNames lists the column names in cycle order.
func SortColumnNames() []string {
	return sortColumnNames[:]
}

// ProcessRows projects the process map into table rows: filtered by a
// case-insensitive substring of name, command, user or PID, then sorted.
// Equal keys are ordered by ascending PID so the order is stable between
// frames.
func (s *Store) ProcessRows(col SortColumn, descending bool, filter string) []*Process {
	needle := strings.ToLower(strings.TrimSpace(filter))

	rows := make([]*Process, 0, len(s.processes))
	for _, p := range s.processes {
		if needle != "" && !matches(p, needle) {
			continue
		}
		rows = append(rows, p)
	}

	slices.SortFunc(rows, func(a, b *Process) int {
		c := compareBy(col, a, b)
		if descending {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.PID, b.PID)
	})
	return rows
}

func matches(p *Process, needle string) bool {
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Command), needle) ||
		strings.Contains(strings.ToLower(p.User), needle) ||
		strings.Contains(strconv.Itoa(int(p.PID)), needle)
}

func compareBy(col SortColumn, a, b *Process) int {
	switch col {
	case SortMemory:
		return cmp.Compare(a.CurrentMemory(), b.CurrentMemory())
	case SortCPU:
		return cmp.Compare(a.CurrentCPU(), b.CurrentCPU())
	case SortPID:
		return cmp.Compare(a.PID, b.PID)
	case SortName:
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case SortCommand:
		return cmp.Compare(strings.ToLower(a.Command), strings.ToLower(b.Command))
	case SortUser:
		return cmp.Compare(strings.ToLower(a.User), strings.ToLower(b.User))
	default:
		return cmp.Compare(a.Threads, b.Threads)
	}
}
