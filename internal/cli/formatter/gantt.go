package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/danivilar/atelier/internal/timeline"
)

const GanttLabelWidth = 22

// GanttRow is one horizontal track on the chart.
type GanttRow struct {
	Label string
	Start *time.Time
	End   *time.Time
	Done  bool
}

// RenderGantt draws a text gantt chart for the given layout config and
// rows. The engine works in pixels; the renderer downscales those to
// character cells so the track fits in width columns. Each row shows a
// fixed-width label followed by its bar, with a vertical marker on
// today's column.
func RenderGantt(cfg timeline.Config, rows []GanttRow, width int) string {
	trackWidth := width - GanttLabelWidth
	if trackWidth < 20 {
		trackWidth = 20
	}
	// Integer pixels-per-cell ratio; rounding up keeps the track inside
	// the requested width.
	scale := (cfg.TotalWidth + trackWidth - 1) / trackWidth
	if scale < 1 {
		scale = 1
	}
	cell := func(px int) int {
		c := px / scale
		if c < 0 {
			c = 0
		}
		if c > trackWidth-1 {
			c = trackWidth - 1
		}
		return c
	}

	todayCol := -1
	now := time.Now()
	if !now.Before(cfg.Start) && !now.After(cfg.End.AddDate(0, 0, 1)) {
		todayCol = cell(cfg.DateToX(now))
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", GanttLabelWidth))
	b.WriteString(renderRuler(cfg.TopHeaders(), cell, trackWidth, StyleHeader))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", GanttLabelWidth))
	b.WriteString(renderRuler(cfg.TimeColumns(), cell, trackWidth, StyleDim))
	b.WriteString("\n")

	for _, row := range rows {
		b.WriteString(pad(Truncate(row.Label, GanttLabelWidth-2), GanttLabelWidth))

		track := make([]rune, trackWidth)
		for i := range track {
			track[i] = ' '
		}
		if bar := cfg.BarProps(row.Start, row.End); bar != nil {
			from := cell(bar.Left)
			to := cell(bar.Left + bar.Width - 1)
			if to < from {
				to = from
			}
			for i := from; i <= to; i++ {
				track[i] = '█'
			}
		}
		if todayCol >= 0 && track[todayCol] == ' ' {
			track[todayCol] = '│'
		}

		style := StyleBlue
		if row.Done {
			style = StyleGreen
		}
		b.WriteString(renderTrack(track, todayCol, style))
		b.WriteString("\n")
	}
	return b.String()
}

// renderRuler lays bucket labels at their scaled positions on one line.
func renderRuler(buckets []timeline.Bucket, cell func(int) int, trackWidth int, style lipgloss.Style) string {
	line := make([]rune, trackWidth)
	for i := range line {
		line[i] = ' '
	}
	for _, bk := range buckets {
		col := cell(bk.Left)
		for i, r := range []rune(bk.Label) {
			at := col + i
			if at >= trackWidth {
				break
			}
			// Keep a gap between adjacent labels when columns are dense.
			if i == 0 && col > 0 && line[col-1] != ' ' {
				break
			}
			line[at] = r
		}
	}
	return style.Render(string(line))
}

// renderTrack styles the bar cells and the today marker separately.
func renderTrack(track []rune, todayCol int, barStyle lipgloss.Style) string {
	var b strings.Builder
	for i, r := range track {
		switch {
		case i == todayCol && r == '│':
			b.WriteString(StyleRed.Render("│"))
		case r == '█':
			b.WriteString(barStyle.Render("█"))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
