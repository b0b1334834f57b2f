package monitor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/rtop/internal/history"
)

// processColumn is one column of the process table.
type processColumn struct {
	sort  history.SortColumn
	title string
	width int // 0 takes the remaining space
	right bool
	value func(p *history.Process) string
}

var processColumns = []processColumn{
	{history.SortPID, "PID", 8, true, func(p *history.Process) string { return strconv.Itoa(int(p.PID)) }},
	{history.SortName, "Name", 18, false, func(p *history.Process) string { return p.Name }},
	{history.SortUser, "User", 10, false, func(p *history.Process) string { return p.User }},
	{history.SortThread, "Thr", 5, true, func(p *history.Process) string { return strconv.Itoa(int(p.Threads)) }},
	{history.SortCPU, "CPU%", 7, true, func(p *history.Process) string { return fmt.Sprintf("%.1f", p.CurrentCPU()) }},
	{history.SortMemory, "Mem", 10, true, func(p *history.Process) string { return formatBytes(p.CurrentMemory()) }},
	{history.SortCommand, "Command", 0, false, func(p *history.Process) string {
		if p.Command != "" {
			return p.Command
		}
		return p.Exe
	}},
}

// renderProcesses renders the filter line, the sortable table and, when a
// process is pinned, its detail view beside the table.
func (m Model) renderProcesses(width, height int) string {
	focused := m.ctrl.Focus() == ContainerProcess
	tableWidth, detailWidth := m.processLayout(width)

	rows := m.ctrl.Rows()
	value := fmt.Sprintf("%d/%d | sort %s %s", len(rows), m.store.ProcessCount(), m.ctrl.SortColumn(), sortArrow(m.ctrl.SortDescending()))

	inner := tableWidth - 4
	lines := []string{m.renderFilterLine(inner), m.renderTableHeader(inner)}
	lines = append(lines, m.renderTableRows(rows, inner, height-4)...)
	table := renderPanel("Processes", value, lines, tableWidth, height, focused)

	if detailWidth == 0 {
		return table
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, table, m.renderDetailPanel(detailWidth, height))
}

func sortArrow(descending bool) string {
	if descending {
		return "▼"
	}
	return "▲"
}

func (m Model) renderFilterLine(width int) string {
	f := m.ctrl.Filter()
	label := LabelStyle.Render("filter: ")

	if m.ctrl.Mode() == ModeTyping {
		before, after := f.Split()
		cursor := lipgloss.NewStyle().Foreground(ColorAccent).Render("▏")
		return label + ValueStyle.Render(before) + cursor + ValueStyle.Render(after)
	}
	if f.Empty() {
		return label + MutedStyle.Render("press f to filter")
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(label + ValueStyle.Render(f.String()))
}

// columnWidths resolves the flexible Command column against width.
func columnWidths(width int) []int {
	widths := make([]int, len(processColumns))
	fixed := 0
	for i, c := range processColumns {
		widths[i] = c.width
		fixed += c.width + 1
	}
	for i, c := range processColumns {
		if c.width == 0 {
			widths[i] = max(width-fixed, 8)
		}
	}
	return widths
}

func (m Model) renderTableHeader(width int) string {
	widths := columnWidths(width)
	cells := make([]string, len(processColumns))
	for i, c := range processColumns {
		title := c.title
		style := TableHeaderStyle
		if c.sort == m.ctrl.SortColumn() {
			title += sortArrow(m.ctrl.SortDescending())
			style = TableSortedStyle
		}
		cells[i] = style.Render(fitCell(title, widths[i], c.right))
	}
	return strings.Join(cells, " ")
}

// renderTableRows renders at most limit rows, scrolled so the selected row
// stays visible.
func (m Model) renderTableRows(rows []*history.Process, width, limit int) []string {
	if limit <= 0 {
		return nil
	}
	if len(rows) == 0 {
		return []string{MutedStyle.Render("no matching processes")}
	}

	selected, hasRow := m.ctrl.ProcessRow()
	start := 0
	if hasRow && selected >= limit {
		start = selected - limit + 1
	}
	end := min(start+limit, len(rows))

	widths := columnWidths(width)
	pin := m.ctrl.Pin()
	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		p := rows[i]
		cells := make([]string, len(processColumns))
		for j, c := range processColumns {
			cells[j] = fitCell(c.value(p), widths[j], c.right)
		}
		line := strings.Join(cells, " ")

		switch {
		case hasRow && i == selected:
			line = RowSelectedStyle.Render(line)
		case pin.Active && pin.PID == p.PID:
			line = RowPinnedStyle.Render(line)
		default:
			line = ValueStyle.Render(line)
		}
		out = append(out, line)
	}
	return out
}

// fitCell truncates or pads s to exactly width runes.
func fitCell(s string, width int, right bool) string {
	r := []rune(s)
	if len(r) > width {
		if width <= 1 {
			return string(r[:width])
		}
		return string(r[:width-1]) + "…"
	}
	pad := strings.Repeat(" ", width-len(r))
	if right {
		return pad + s
	}
	return s + pad
}

func (m Model) renderDetailPanel(width, height int) string {
	focused := m.ctrl.Focus() == ContainerProcess
	pin := m.ctrl.Pin()
	title := fmt.Sprintf("PID %d", pin.PID)

	var lines []string
	if m.viewportReady {
		lines = strings.Split(m.detailViewport.View(), "\n")
	} else if p, ok := m.store.Process(pin.PID); ok {
		lines = strings.Split(m.processDetail(p, width-4), "\n")
	}
	return renderPanel(title, "k kill | t term | s signal", lines, width, height, focused)
}

// processDetail renders the pinned process' fields and usage history.
func (m Model) processDetail(p *history.Process, width int) string {
	window := m.ctrl.Window(ContainerProcess)
	sparkWidth := max(width-14, 4)
	cpu := p.CurrentCPU()

	field := func(label, value string) string {
		return LabelStyle.Render(fmt.Sprintf("%-10s", label)) + ValueStyle.Render(value)
	}

	lines := []string{
		field("Name", p.Name),
		field("Status", p.Status),
		field("User", p.User),
		field("Parent", strconv.Itoa(int(p.Parent))),
		field("Threads", strconv.Itoa(int(p.Threads))),
		field("Elapsed", formatElapsed(p.Elapsed)),
		field("CPU", lipgloss.NewStyle().Foreground(m.thresholds.Color(cpu)).Render(fmt.Sprintf("%.1f%%", cpu))),
		"          " + RenderColoredMiniSparkline(p.CPU.Last(window), sparkWidth, ColorGraph),
		field("Memory", formatBytes(p.CurrentMemory())),
		"          " + RenderColoredMiniSparkline(p.Memory.Last(window), sparkWidth, ColorAccentDim),
		field("Disk R", fmt.Sprintf("%s (total %s)", formatBytes(float64(p.ReadBytes)), formatBytes(float64(p.TotalReadBytes)))),
		field("Disk W", fmt.Sprintf("%s (total %s)", formatBytes(float64(p.WrittenBytes)), formatBytes(float64(p.TotalWrittenBytes)))),
		field("Exe", p.Exe),
		"",
		LabelStyle.Render("Command"),
		lipgloss.NewStyle().Width(max(width, 1)).Render(p.Command),
	}
	return strings.Join(lines, "\n")
}
