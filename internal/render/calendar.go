// Package render draws the calendar and trend chart for a terminal.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"SeasonalityExplorer/internal/encoder"
	"SeasonalityExplorer/internal/model"
)

// Canvas is the background translucent layer colours are blended onto.
const Canvas = "#1F2937"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	weekdayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	legendStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF")).
			Italic(true)

	outsideStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4B5563")).
			Faint(true)
)

var weekdays = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// TerminalColor flattens an encoder colour onto Canvas.
func TerminalColor(c encoder.Color) lipgloss.TerminalColor {
	if c.IsTransparent() {
		return lipgloss.NoColor{}
	}
	if c.Alpha >= 1 {
		return lipgloss.Color(c.Hex)
	}
	fg, err := colorful.Hex(c.Hex)
	if err != nil {
		return lipgloss.NoColor{}
	}
	bg, _ := colorful.Hex(Canvas)
	return lipgloss.Color(bg.BlendRgb(fg, c.Alpha).Hex())
}

func cellStyle(cell model.CalendarCell, layer model.DataLayer, theme model.ColorTheme) lipgloss.Style {
	if !cell.IsCurrentMonth {
		return outsideStyle
	}
	st := lipgloss.NewStyle().
		Background(TerminalColor(encoder.CellBackground(cell, layer, theme))).
		Foreground(TerminalColor(encoder.CellForeground(cell)))
	if cell.IsToday {
		st = st.Bold(true)
	}
	if cell.IsInRange {
		st = st.Underline(true)
	}
	if cell.IsSelected {
		st = st.Reverse(true)
	}
	return st
}

func cellText(cell model.CalendarCell, layer model.DataLayer) string {
	mark := " "
	switch {
	case cell.IsSelected:
		mark = "*"
	case cell.Record != nil && layer == model.LayerPerformance:
		switch encoder.TrendOf(cell.Record.Performance) {
		case encoder.TrendUp:
			mark = "↑"
		case encoder.TrendDown:
			mark = "↓"
		}
	}
	return fmt.Sprintf("%3d%s", cell.Date.Day(), mark)
}

// Calendar renders a month grid built by calendar.BuildGrid.
func Calendar(month time.Time, cells []model.CalendarCell, layer model.DataLayer, theme model.ColorTheme) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(month.Format("January 2006")))
	b.WriteString("\n")

	for _, w := range weekdays {
		b.WriteString(weekdayStyle.Render(fmt.Sprintf("%3s ", w)))
	}
	b.WriteString("\n")

	for i, cell := range cells {
		b.WriteString(cellStyle(cell, layer, theme).Render(cellText(cell, layer)))
		if i%7 == 6 {
			b.WriteString("\n")
		}
	}
	b.WriteString(legendStyle.Render(Legend(layer, theme)))
	return b.String()
}

// Legend describes what the cell colours mean for layer.
func Legend(layer model.DataLayer, theme model.ColorTheme) string {
	switch layer {
	case model.LayerLiquidity:
		return "liquidity: opacity scales to 2,000M"
	case model.LayerPerformance:
		return "performance: green up, red down, grey flat"
	default:
		return fmt.Sprintf("volatility (%s): <30 low, <70 medium, else high", theme)
	}
}
