package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Dashboard color palette
const (
	ColorDarkBg    = lipgloss.Color("#0A0A0F")
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	// Semantic colors for metrics
	ColorHealthy  = lipgloss.Color("#39FF14")
	ColorWarning  = lipgloss.Color("#FFAA00")
	ColorCritical = lipgloss.Color("#FF0055")

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	// Accent is used for focus, AccentDim for secondary highlights.
	ColorAccent    = lipgloss.Color("#FF2E97")
	ColorAccentDim = lipgloss.Color("#BF40FF")

	ColorGraph = lipgloss.Color("#00FFFF")
)

// Default severity thresholds, in percent.
const (
	WarningThreshold  = 70
	CriticalThreshold = 90
)

// Thresholds are the percent levels at which metrics turn warning or critical.
type Thresholds struct {
	Warning  int
	Critical int
}

// DefaultThresholds returns the 70/90 thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{Warning: WarningThreshold, Critical: CriticalThreshold}
}

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	DeadStyle = lipgloss.NewStyle().
			Foreground(ColorCritical).
			Bold(true)

	// Process table
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorTextSecondary).
				Bold(true)

	TableSortedStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	RowSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorTextPrimary).
				Background(ColorAccentDim)

	RowPinnedStyle = lipgloss.NewStyle().
			Foreground(ColorGraph)
)

// MetricColor returns the color for a percentage under the default thresholds.
func MetricColor(percent float64) lipgloss.Color {
	return MetricColorWithThresholds(percent, WarningThreshold, CriticalThreshold)
}

// MetricColorWithThresholds returns the appropriate color for a percentage-based metric
// using the provided warning and critical threshold values.
func MetricColorWithThresholds(percent float64, warning, critical int) lipgloss.Color {
	switch {
	case percent >= float64(critical):
		return ColorCritical
	case percent >= float64(warning):
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// Color returns the color for percent under t.
func (t Thresholds) Color(percent float64) lipgloss.Color {
	return MetricColorWithThresholds(percent, t.Warning, t.Critical)
}

// ThinProgressBarWithThresholds renders a thin progress bar with custom thresholds.
// Uses ━ for filled segments and ─ for empty segments.
func ThinProgressBarWithThresholds(width int, percent float64, warning, critical int) string {
	if width < 1 {
		width = 1
	}

	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
	return lipgloss.NewStyle().Foreground(MetricColorWithThresholds(percent, warning, critical)).Render(bar)
}

// SectionHeader renders a panel's top border with the title on the left and
// value on the right. A focused panel gets an accent border.
// Format: ╭─ Title ────────────────────────────────────── Value ╮
func SectionHeader(title, value string, width int, focused bool) string {
	if width < 10 {
		width = 10
	}

	// Left: "╭─ " + title + " ", right: " " + value + " ╮"
	leftWidth := 3 + lipgloss.Width(title) + 1
	rightWidth := 1 + lipgloss.Width(value) + 2

	fillWidth := width - leftWidth - rightWidth
	if fillWidth < 1 {
		fillWidth = 1
	}
	middle := strings.Repeat("─", fillWidth)

	border := borderStyle(focused)
	titleStyle := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(ColorGraph).Bold(true)

	return border.Render("╭─ ") +
		titleStyle.Render(title) +
		border.Render(" "+middle+" ") +
		valueStyle.Render(value) +
		border.Render(" ╮")
}

// SectionFooter renders the bottom border of a panel.
func SectionFooter(width int, focused bool) string {
	if width < 2 {
		width = 2
	}
	return borderStyle(focused).Render("╰" + strings.Repeat("─", width-2) + "╯")
}

// SectionContentLine renders a content line with left and right borders,
// padded or truncated to width.
// Format: │ content                                              │
func SectionContentLine(content string, width int, focused bool) string {
	if width < 4 {
		width = 4
	}

	border := borderStyle(focused)
	innerWidth := width - 4

	if lipgloss.Width(content) > innerWidth {
		content = lipgloss.NewStyle().MaxWidth(innerWidth).Render(content)
	}
	padding := innerWidth - lipgloss.Width(content)
	if padding < 0 {
		padding = 0
	}

	return border.Render("│") + " " + content + strings.Repeat(" ", padding) + " " + border.Render("│")
}

func borderStyle(focused bool) lipgloss.Style {
	if focused {
		return lipgloss.NewStyle().Foreground(ColorAccent)
	}
	return lipgloss.NewStyle().Foreground(ColorBorder)
}

// renderPanel frames lines into a box exactly width x height cells. Extra
// lines are dropped and missing lines are blank.
func renderPanel(title, value string, lines []string, width, height int, focused bool) string {
	if height < 2 {
		height = 2
	}
	out := make([]string, 0, height)
	out = append(out, SectionHeader(title, value, width, focused))
	for i := 0; i < height-2; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		out = append(out, SectionContentLine(line, width, focused))
	}
	out = append(out, SectionFooter(width, focused))
	return strings.Join(out, "\n")
}
