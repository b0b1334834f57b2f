package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/rtop/internal/util"
)

// Rows taken by the header and footer.
const (
	headerHeight = 1
	footerHeight = 1
)

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	if m.width == 0 || m.height == 0 {
		return LabelStyle.Render("starting rtop...")
	}
	if m.width < MinWidth || m.height < MinHeight {
		return m.renderTooSmall()
	}

	body := m.renderBody(m.width, m.height-headerHeight-footerHeight)
	screen := lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())

	switch {
	case m.ctrl.Mode() == ModePopup && m.ctrl.Request() != nil:
		return m.renderPopup()
	case m.ctrl.ShowHelp():
		return m.renderHelpOverlay()
	}
	return screen
}

func (m Model) renderTooSmall() string {
	msg := lipgloss.JoinVertical(lipgloss.Center,
		ValueStyle.Render("Terminal too small"),
		LabelStyle.Render(fmt.Sprintf("%dx%d, need at least %dx%d", m.width, m.height, MinWidth, MinHeight)),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}

// renderHeader renders the title bar with the interval, the process count
// and any stopped collectors.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("rtop")

	n := m.store.ProcessCount()
	parts := []string{
		fmt.Sprintf("interval %s", formatInterval(m.ctrl.Interval())),
		fmt.Sprintf("%d %s", n, util.Pluralize(n, "process", "processes")),
		"updated " + since(m.store.LastSystemUpdate()),
	}
	stats := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(" | " + strings.Join(parts, " | "))

	var dead []string
	if m.systemDead {
		dead = append(dead, "system")
	}
	if m.processDead {
		dead = append(dead, "process")
	}
	warning := ""
	if len(dead) > 0 {
		warning = DeadStyle.Render(" | " + strings.Join(dead, ", ") + " collector stopped")
	}

	return HeaderStyle.Width(m.width).MaxWidth(m.width).Render(title + stats + warning)
}

func since(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	secs := int(time.Since(t).Seconds())
	if secs <= 0 {
		return "just now"
	}
	return fmt.Sprintf("%ds ago", secs)
}

// renderFooter shows the short key help for the current mode.
func (m Model) renderFooter() string {
	var hint string
	switch m.ctrl.Mode() {
	case ModeTyping:
		hint = "type to filter | ←→ move cursor | ↓ to list | enter/esc done"
	case ModePopup:
		hint = "y confirm | n cancel | ←→ select | enter apply | esc close"
	default:
		hint = m.help.ShortHelpView(keys.ShortHelp())
		if f := m.ctrl.Focus(); f != ContainerNone {
			hint = fmt.Sprintf("[%s] ", f) + hint
		}
	}
	return FooterStyle.MaxWidth(m.width).Render(hint)
}

// renderBody lays out the panels. A full-screen panel takes the whole body.
func (m Model) renderBody(width, height int) string {
	if m.ctrl.FullScreen() && m.ctrl.Focus() != ContainerNone {
		return m.renderContainer(m.ctrl.Focus(), width, height)
	}

	topHeight := max(height*3/10, 6)
	midHeight := max(height/4, 6)
	procHeight := height - topHeight - midHeight

	leftWidth := width / 2
	rightWidth := width - leftWidth

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderContainer(ContainerCPU, leftWidth, topHeight),
		m.renderContainer(ContainerMemory, rightWidth, topHeight),
	)
	mid := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderContainer(ContainerDisk, leftWidth, midHeight),
		m.renderContainer(ContainerNetwork, rightWidth, midHeight),
	)
	return lipgloss.JoinVertical(lipgloss.Left, top, mid, m.renderContainer(ContainerProcess, width, procHeight))
}

func (m Model) renderContainer(c Container, width, height int) string {
	switch c {
	case ContainerCPU:
		return m.renderCPU(width, height)
	case ContainerMemory:
		return m.renderMemory(width, height)
	case ContainerDisk:
		return m.renderDisk(width, height)
	case ContainerNetwork:
		return m.renderNetwork(width, height)
	case ContainerProcess:
		return m.renderProcesses(width, height)
	}
	return ""
}

// processLayout returns the table and detail widths for the process panel.
func (m Model) processLayout(width int) (table, detail int) {
	if !m.ctrl.Pin().Active {
		return width, 0
	}
	detail = max(width*2/5, 30)
	return width - detail, detail
}

// resizeDetail sizes the detail viewport to fit the process panel.
func (m *Model) resizeDetail() {
	_, detailWidth := m.processLayout(m.width)
	if detailWidth == 0 {
		detailWidth = m.width * 2 / 5
	}
	height := m.height - headerHeight - footerHeight
	if !m.ctrl.FullScreen() {
		height -= max(height*3/10, 6) + max(height/4, 6)
	}
	vpWidth := max(detailWidth-4, 1)
	vpHeight := max(height-2, 1)

	if !m.viewportReady {
		m.detailViewport = viewport.New(vpWidth, vpHeight)
		m.viewportReady = true
	} else {
		m.detailViewport.Width = vpWidth
		m.detailViewport.Height = vpHeight
	}
	m.refreshDetail()
}

// refreshDetail rebuilds the pinned process detail content.
func (m *Model) refreshDetail() {
	if !m.viewportReady {
		return
	}
	pin := m.ctrl.Pin()
	if !pin.Active {
		m.detailViewport.SetContent("")
		return
	}
	p, ok := m.store.Process(pin.PID)
	if !ok {
		m.detailViewport.SetContent("")
		return
	}
	m.detailViewport.SetContent(m.processDetail(p, m.detailViewport.Width))
}
