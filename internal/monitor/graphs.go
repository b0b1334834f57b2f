package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Graphs draw history series into terminal cells.
//
// The braille graph packs a 2x4 dot matrix into each cell, so a panel of w
// cells shows 2w samples at 4h levels. Dots are numbered
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// and dot n sets bit n-1 above U+2800.

const brailleBase = '⠀'

// dotBits indexes the braille bit by [level within cell][column within cell],
// level 0 being the bottom row.
var dotBits = [4][2]uint8{
	{6, 7},
	{2, 5},
	{1, 4},
	{0, 3},
}

// sparklineBlocks are the eight block heights of a single-row sparkline.
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// graphScale maps sample values onto a graph's vertical axis.
type graphScale struct {
	min, max float64
	// percent is set when every value is within 0-100. The axis is then
	// pinned to 0-100 and columns take threshold colors.
	percent bool
}

// scaleFor picks the axis for a series. An empty series gets a percent axis.
func scaleFor(data []float64) graphScale {
	if len(data) == 0 {
		return graphScale{min: 0, max: 100, percent: true}
	}

	s := graphScale{min: data[0], max: data[0]}
	for _, v := range data[1:] {
		s.min = min(s.min, v)
		s.max = max(s.max, v)
	}
	if s.min >= 0 && s.max <= 100 {
		return graphScale{min: 0, max: 100, percent: true}
	}
	return s
}

// fraction is v's position on the axis in [0, 1]. A flat axis puts every
// value halfway up.
func (s graphScale) fraction(v float64) float64 {
	if s.max <= s.min {
		return 0.5
	}
	f := (v - s.min) / (s.max - s.min)
	return min(max(f, 0), 1)
}

// levels converts v to a whole number of steps out of n.
func (s graphScale) levels(v float64, n int) int {
	return clampInt(int(s.fraction(v)*float64(n)), n)
}

func clampInt(val, maxVal int) int {
	return min(max(val, 0), maxVal)
}

// brailleCanvas is a grid of braille cells addressed by dot column.
type brailleCanvas struct {
	cells  [][]rune // [row][cell], row 0 at the top
	height int
}

func newBrailleCanvas(width, height int) *brailleCanvas {
	cells := make([][]rune, height)
	for r := range cells {
		cells[r] = []rune(strings.Repeat(string(brailleBase), width))
	}
	return &brailleCanvas{cells: cells, height: height}
}

// bar lights the lowest n dots of dot column x.
func (c *brailleCanvas) bar(x, n int) {
	cell, sub := x/2, x%2
	for dot := 0; dot < n; dot++ {
		row := c.height - 1 - dot/4
		c.cells[row][cell] |= rune(1) << dotBits[dot%4][sub]
	}
}

// paint renders each row, coloring cells by column. Neighbouring cells of
// the same color share one style run.
func (c *brailleCanvas) paint(colorOf func(cell int) lipgloss.Color) string {
	lines := make([]string, len(c.cells))
	for r, row := range c.cells {
		var b strings.Builder
		start := 0
		for i := 1; i <= len(row); i++ {
			if i < len(row) && colorOf(i) == colorOf(start) {
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(colorOf(start)).Render(string(row[start:i])))
			start = i
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

// RenderBrailleSparkline draws data as a width x height braille graph with
// the newest sample at the right edge. Percent series color each cell by
// its highest sample under t; other series use baseColor.
func RenderBrailleSparkline(data []float64, width, height int, baseColor lipgloss.Color, t Thresholds) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	scale := scaleFor(data)
	columns := width * 2
	if len(data) > columns {
		data = downsamplePeaks(data, columns)
	}

	canvas := newBrailleCanvas(width, height)
	peaks := make([]float64, width)
	offset := columns - len(data)
	for i, v := range data {
		x := offset + i
		canvas.bar(x, scale.levels(v, height*4))
		peaks[x/2] = max(peaks[x/2], v)
	}

	return canvas.paint(func(cell int) lipgloss.Color {
		if scale.percent {
			return t.Color(peaks[cell])
		}
		return baseColor
	})
}

// RenderMiniSparkline draws data stretched or squeezed to width block characters.
func RenderMiniSparkline(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	scale := scaleFor(data)
	top := len(sparklineBlocks) - 1
	var b strings.Builder
	for _, v := range resampleData(data, width) {
		b.WriteRune(sparklineBlocks[scale.levels(v, top)])
	}
	return b.String()
}

// RenderColoredMiniSparkline is RenderMiniSparkline in a single color.
func RenderColoredMiniSparkline(data []float64, width int, color lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(color).Render(RenderMiniSparkline(data, width))
}

// resampleData fits data to n points: peaks are kept when shrinking and
// gaps are interpolated when growing.
func resampleData(data []float64, n int) []float64 {
	switch {
	case len(data) == 0 || n <= 0:
		return nil
	case len(data) == n:
		return data
	case len(data) > n:
		return downsamplePeaks(data, n)
	default:
		return interpolate(data, n)
	}
}

// downsamplePeaks splits data into n buckets and keeps each bucket's maximum,
// so short spikes survive.
func downsamplePeaks(data []float64, n int) []float64 {
	out := make([]float64, n)
	step := float64(len(data)) / float64(n)
	for i := range out {
		lo := int(float64(i) * step)
		hi := min(int(float64(i+1)*step), len(data))
		lo = min(lo, hi-1)

		peak := data[lo]
		for _, v := range data[lo+1 : hi] {
			peak = max(peak, v)
		}
		out[i] = peak
	}
	return out
}

// interpolate stretches data to n points along straight lines between samples.
func interpolate(data []float64, n int) []float64 {
	out := make([]float64, n)
	if len(data) == 1 {
		for i := range out {
			out[i] = data[0]
		}
		return out
	}

	step := float64(len(data)-1) / float64(n-1)
	last := len(data) - 1
	for i := range out {
		pos := float64(i) * step
		j := int(pos)
		if j >= last {
			out[i] = data[last]
			continue
		}
		frac := pos - float64(j)
		out[i] = data[j] + (data[j+1]-data[j])*frac
	}
	return out
}

// percentOf expresses byte values as a share of total.
func percentOf(values []float64, total float64) []float64 {
	out := make([]float64, len(values))
	if total <= 0 {
		return out
	}
	for i, v := range values {
		out[i] = v / total * 100
	}
	return out
}
