package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderInfo contains information to display in the header.
type HeaderInfo struct {
	Version string // Version string (e.g., "v0.4.0")
	Tagline string // Optional tagline
}

// HeaderWidth is the default width of the header divider
const HeaderWidth = 50

// RenderHeader renders the branded title line, tagline and divider.
func RenderHeader(info HeaderInfo) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(ColorNeonPink).
		Bold(true)

	versionStyle := lipgloss.NewStyle().
		Foreground(ColorNeonCyan)

	taglineStyle := lipgloss.NewStyle().
		Foreground(ColorSecondary)

	var output strings.Builder

	output.WriteString(titleStyle.Render("rtop"))
	if info.Version != "" {
		output.WriteString(" ")
		output.WriteString(versionStyle.Render(info.Version))
	}
	output.WriteString("\n")

	if info.Tagline != "" {
		output.WriteString(taglineStyle.Render(info.Tagline))
		output.WriteString("\n")
	}

	output.WriteString(renderDivider(HeaderWidth))
	output.WriteString("\n")

	return output.String()
}

// renderDivider draws a ━ rule that steps through GradientColors.
func renderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	segment := (width + len(GradientColors) - 1) / len(GradientColors)
	var b strings.Builder
	for i, color := range GradientColors {
		n := min(segment, width-i*segment)
		if n <= 0 {
			break
		}
		b.WriteString(lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("━", n)))
	}
	return b.String()
}

// PrintHeader prints the styled header to stdout.
func PrintHeader(info HeaderInfo) {
	fmt.Print(RenderHeader(info))
}
