package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/rtop/internal/history"
)

// renderCPU shows the selected core's graph and, when there is room, the list
// of all cores with their current usage.
func (m Model) renderCPU(width, height int) string {
	focused := m.ctrl.Focus() == ContainerCPU
	cpus := m.store.CPUs()
	if len(cpus) == 0 {
		return renderPanel("CPU", "", []string{MutedStyle.Render("waiting for samples")}, width, height, focused)
	}

	idx := clampIndex(m.ctrl.CPUIndex(), len(cpus))
	selected := cpus[idx]
	window := m.ctrl.Window(ContainerCPU)
	inner := width - 4

	listWidth := 0
	if inner >= 60 {
		listWidth = 22
	}
	graphWidth := inner - listWidth
	graphHeight := max(height-3, 1)

	caption := fmt.Sprintf("%s  %s", selected.ID, MutedStyle.Render(selected.Brand))
	graph := strings.Split(RenderBrailleSparkline(selected.History.Last(window), graphWidth, graphHeight, ColorGraph, m.thresholds), "\n")

	lines := append([]string{caption}, graph...)
	if listWidth > 0 {
		list := cpuList(cpus, idx, graphHeight+1, m.thresholds)
		for i := range lines {
			row := ""
			if i < len(list) {
				row = list[i]
			}
			lines[i] = padRight(lines[i], graphWidth) + row
		}
	}

	value := fmt.Sprintf("%.1f%% | %d/%d | %d", selected.Usage, idx+1, len(cpus), window)
	return renderPanel("CPU", value, lines, width, height, focused)
}

// cpuList renders up to rows entries around the selected core.
func cpuList(cpus []*history.CPU, selected, rows int, t Thresholds) []string {
	start := 0
	if selected >= rows {
		start = selected - rows + 1
	}
	end := min(start+rows, len(cpus))

	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		c := cpus[i]
		marker := "  "
		if i == selected {
			marker = lipgloss.NewStyle().Foreground(ColorAccent).Render("▸ ")
		}
		usage := lipgloss.NewStyle().Foreground(t.Color(c.Usage)).Render(fmt.Sprintf("%5.1f%%", c.Usage))
		out = append(out, fmt.Sprintf("%s%-10s%s", marker, c.ID, usage))
	}
	return out
}

// renderMemory shows each memory series as a bar plus a graph of used memory.
func (m Model) renderMemory(width, height int) string {
	focused := m.ctrl.Focus() == ContainerMemory
	mem := m.store.Memory()
	window := m.ctrl.Window(ContainerMemory)
	inner := width - 4

	rows := []struct {
		label  string
		series *history.Series
	}{
		{"Used", mem.Used},
		{"Available", mem.Available},
		{"Free", mem.Free},
		{"Cached", mem.Cached},
		{"Swap", mem.Swap},
	}

	barWidth := max(inner-32, 4)
	lines := make([]string, 0, height)
	for _, r := range rows {
		v, _ := r.series.Latest()
		pct := percent(v, mem.Total)
		lines = append(lines, fmt.Sprintf("%s %10s %5.1f%% %s",
			LabelStyle.Render(fmt.Sprintf("%-9s", r.label)),
			formatBytes(v),
			pct,
			ThinProgressBarWithThresholds(barWidth, pct, m.thresholds.Warning, m.thresholds.Critical),
		))
	}

	if graphHeight := height - 2 - len(lines); graphHeight > 0 {
		used := percentOf(mem.Used.Last(window), mem.Total)
		lines = append(lines, strings.Split(RenderBrailleSparkline(used, inner, graphHeight, ColorGraph, m.thresholds), "\n")...)
	}

	value := fmt.Sprintf("%s | %d", formatBytes(mem.Total), window)
	return renderPanel("Memory", value, lines, width, height, focused)
}

// ratePeriod is the period disk and network deltas were measured over. The
// sample interval stands in until a measured period is known.
func (m Model) ratePeriod() time.Duration {
	if p := m.store.SystemPeriod(); p > 0 {
		return p
	}
	return m.ctrl.Interval()
}

// renderDisk shows the selected disk; left/right cycle through disks.
func (m Model) renderDisk(width, height int) string {
	focused := m.ctrl.Focus() == ContainerDisk
	disks := m.store.Disks()
	if len(disks) == 0 {
		return renderPanel("Disk", "", []string{MutedStyle.Render("no disks")}, width, height, focused)
	}

	idx := clampIndex(m.ctrl.DiskIndex(), len(disks))
	d := disks[idx]
	window := m.ctrl.Window(ContainerDisk)
	inner := width - 4
	period := m.ratePeriod()

	used := percent(d.Used, d.Total)
	written, _ := d.Written.Latest()
	read, _ := d.Read.Latest()

	sparkWidth := max(inner-24, 4)
	lines := []string{
		fmt.Sprintf("%s %s", ValueStyle.Render(d.MountPoint), MutedStyle.Render(fmt.Sprintf("%s %s %s", d.Name, d.FileSystem, d.Kind))),
		fmt.Sprintf("%s / %s  %s",
			formatBytes(d.Used), formatBytes(d.Total),
			ThinProgressBarWithThresholds(max(inner-30, 4), used, m.thresholds.Warning, m.thresholds.Critical)),
		fmt.Sprintf("%s %s", LabelStyle.Render(fmt.Sprintf("W %-10s", FormatRate(perSecond(written, period)))+"  "),
			RenderColoredMiniSparkline(d.Written.Last(window), sparkWidth, ColorAccentDim)),
		fmt.Sprintf("%s %s", LabelStyle.Render(fmt.Sprintf("R %-10s", FormatRate(perSecond(read, period)))+"  "),
			RenderColoredMiniSparkline(d.Read.Last(window), sparkWidth, ColorGraph)),
		MutedStyle.Render(fmt.Sprintf("available %s", formatBytes(d.Available))),
	}

	value := fmt.Sprintf("%d/%d | %d", idx+1, len(disks), window)
	return renderPanel("Disk", value, lines, width, height, focused)
}

// renderNetwork shows the selected interface; left/right cycle through them.
func (m Model) renderNetwork(width, height int) string {
	focused := m.ctrl.Focus() == ContainerNetwork
	nets := m.store.Networks()
	if len(nets) == 0 {
		return renderPanel("Network", "", []string{MutedStyle.Render("no interfaces")}, width, height, focused)
	}

	idx := clampIndex(m.ctrl.NetworkIndex(), len(nets))
	n := nets[idx]
	window := m.ctrl.Window(ContainerNetwork)
	inner := width - 4
	period := m.ratePeriod()

	ip := n.IPv4
	if ip == "" {
		ip = "no IPv4"
	}
	rx, _ := n.Received.Latest()
	tx, _ := n.Transmitted.Latest()

	sparkWidth := max(inner-24, 4)
	lines := []string{
		fmt.Sprintf("%s %s", ValueStyle.Render(n.Name), MutedStyle.Render(ip)),
		fmt.Sprintf("%s %s", LabelStyle.Render(fmt.Sprintf("↓ %-10s", FormatRate(perSecond(rx, period)))+"  "),
			RenderColoredMiniSparkline(n.Received.Last(window), sparkWidth, ColorGraph)),
		fmt.Sprintf("%s %s", LabelStyle.Render(fmt.Sprintf("↑ %-10s", FormatRate(perSecond(tx, period)))+"  "),
			RenderColoredMiniSparkline(n.Transmitted.Last(window), sparkWidth, ColorAccentDim)),
		MutedStyle.Render(fmt.Sprintf("total ↓ %s  ↑ %s", formatBytes(n.TotalReceived), formatBytes(n.TotalTransmitted))),
	}

	value := fmt.Sprintf("%d/%d | %d", idx+1, len(nets), window)
	return renderPanel("Network", value, lines, width, height, focused)
}

// padRight pads s with spaces to width display cells.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
