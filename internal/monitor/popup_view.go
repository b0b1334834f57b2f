package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/rtop/internal/platform"
)

var (
	popupBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorCritical).
			Background(ColorSurfaceBg).
			Padding(1, 2)

	popupTitleStyle = lipgloss.NewStyle().
			Foreground(ColorCritical).
			Bold(true).
			MarginBottom(1)

	buttonStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary).
			Padding(0, 2)

	buttonActiveStyle = buttonStyle.
				Foreground(ColorTextPrimary).
				Background(ColorAccent).
				Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

// renderPopup renders the signal confirmation box centered on screen.
func (m Model) renderPopup() string {
	req := m.ctrl.Request()

	var lines []string
	lines = append(lines, popupTitleStyle.Render(fmt.Sprintf("%s %s (PID %d)?", req.Kind, req.Name, req.PID)))

	if req.Kind == RequestMenu {
		id := "_"
		if req.ID > 0 {
			id = fmt.Sprintf("%d", req.ID)
		}
		name := MutedStyle.Render("no signal")
		if req.Signal.Resolved() {
			name = ValueStyle.Render(req.Signal.String())
		} else if req.ID > 0 {
			name = noticeStyle.Render("no signal with this id")
		}
		lines = append(lines,
			LabelStyle.Render(fmt.Sprintf("signal id (%d-%d): ", platform.MinSignalID, platform.MaxSignalID))+ValueStyle.Render(id)+"  "+name)
		if req.Notice != "" {
			lines = append(lines, noticeStyle.Render(req.Notice))
		}
		lines = append(lines, "", signalTableHint())
	} else {
		lines = append(lines, LabelStyle.Render("signal: ")+ValueStyle.Render(req.Signal.String()))
	}

	yes, no := buttonStyle, buttonStyle
	if req.Yes {
		yes = buttonActiveStyle
	}
	if req.No {
		no = buttonActiveStyle
	}
	lines = append(lines, "", yes.Render("Yes")+"  "+no.Render("No"))
	lines = append(lines, "", MutedStyle.Render("y/n | ←/→ then enter | esc cancel"))

	box := popupBoxStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(ColorDarkBg),
	)
}

// signalTableHint lists the common signals in three columns.
func signalTableHint() string {
	var cols [3][]string
	i := 0
	for id := platform.MinSignalID; id <= platform.MaxSignalID; id++ {
		sig := platform.SignalFromID(id)
		if !sig.Resolved() {
			continue
		}
		cols[i%3] = append(cols[i%3], fmt.Sprintf("%2d %-10s", id, sig))
		i++
	}
	rendered := make([]string, len(cols))
	for j, c := range cols {
		rendered[j] = MutedStyle.Render(strings.Join(c, "\n"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
