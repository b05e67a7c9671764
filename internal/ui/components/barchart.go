package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathmate/internal/analytics"
	"github.com/abhisek/mathmate/internal/ui/theme"
)

// BarChart renders a horizontal bar chart from labeled points. Bars scale
// to the widest value so a quiet week still draws something readable.
type BarChart struct {
	Points     []analytics.Point
	Width      int
	LabelWidth int
}

// NewBarChart creates a chart sized to fit within width columns.
func NewBarChart(points []analytics.Point, width int) BarChart {
	labelWidth := 0
	for _, p := range points {
		if len(p.Label) > labelWidth {
			labelWidth = len(p.Label)
		}
	}
	return BarChart{
		Points:     points,
		Width:      width,
		LabelWidth: labelWidth,
	}
}

// View renders one line per point: label, bar, value.
func (c BarChart) View() string {
	maxVal := 0
	for _, p := range c.Points {
		if p.Value > maxVal {
			maxVal = p.Value
		}
	}

	valueWidth := len(fmt.Sprintf("%d", maxVal))
	barWidth := c.Width - c.LabelWidth - valueWidth - 4
	if barWidth < 4 {
		barWidth = 4
	}

	var b strings.Builder
	for i, p := range c.Points {
		filled := 0
		if maxVal > 0 {
			filled = p.Value * barWidth / maxVal
		}
		if p.Value > 0 && filled == 0 {
			filled = 1
		}

		barStyle := theme.ChartBar
		if i%2 == 1 {
			barStyle = theme.ChartBarAlt
		}

		b.WriteString(theme.ChartLabel.Render(fmt.Sprintf("%-*s", c.LabelWidth, p.Label)))
		b.WriteString("  ")
		b.WriteString(barStyle.Render(strings.Repeat("█", filled)))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled)))
		b.WriteString(theme.ChartLabel.Render(fmt.Sprintf(" %*d", valueWidth, p.Value)))
		if i < len(c.Points)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
