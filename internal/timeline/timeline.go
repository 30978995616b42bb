package timeline

import (
	"fmt"
	"time"
)

// Zoom is a named pixel-density preset controlling how many pixels
// represent one calendar day.
type Zoom string

const (
	ZoomWeek    Zoom = "week"
	ZoomMonth   Zoom = "month"
	ZoomQuarter Zoom = "quarter"
)

// DayWidth returns the fixed pixel width of one calendar day at this zoom.
// Unknown zoom values fall back to the month density.
func (z Zoom) DayWidth() int {
	switch z {
	case ZoomWeek:
		return 40
	case ZoomQuarter:
		return 5
	default:
		return 14
	}
}

const (
	padBeforeDays = 7
	padAfterDays  = 14
	minSpanDays   = 30
	minBarWidth   = 8
)

// Config captures a chart's visible date range, zoom and derived pixel
// scale. It is a value object: build one per render with NewConfig and
// never mutate it. Start and End are date-only (midnight UTC) and
// inclusive, Start <= End, TotalDays >= minSpanDays and
// TotalWidth == TotalDays * DayWidth always hold.
type Config struct {
	Start      time.Time
	End        time.Time
	Zoom       Zoom
	DayWidth   int
	TotalDays  int
	TotalWidth int
}

// Bar is the {left, width} pixel rectangle used to draw a date span.
type Bar struct {
	Left  int
	Width int
}

// Bucket is a labeled pixel range for one ruler cell.
type Bucket struct {
	Left  int
	Width int
	Label string
}

// NewConfig derives the pixel scale for a date range. Either date may be
// nil: a missing endpoint falls back to the other one, and when both are
// missing the window starts at today. The effective window is padded
// 7 days before and 14 days after, then extended to at least 30 days so
// short projects still get a usable ruler. NewConfig never fails.
func NewConfig(start, end *time.Time, zoom Zoom) Config {
	var s, e time.Time
	switch {
	case start == nil && end == nil:
		s = dateOnly(time.Now())
		e = s.AddDate(0, 0, minSpanDays)
	case start == nil:
		e = dateOnly(*end)
		s = e
	case end == nil:
		s = dateOnly(*start)
		e = s
	default:
		s = dateOnly(*start)
		e = dateOnly(*end)
	}
	if e.Before(s) {
		s, e = e, s
	}

	s = s.AddDate(0, 0, -padBeforeDays)
	e = e.AddDate(0, 0, padAfterDays)

	totalDays := daysBetween(s, e) + 1
	if totalDays < minSpanDays {
		e = s.AddDate(0, 0, minSpanDays-1)
		totalDays = minSpanDays
	}

	dayWidth := zoom.DayWidth()
	return Config{
		Start:      s,
		End:        e,
		Zoom:       zoom,
		DayWidth:   dayWidth,
		TotalDays:  totalDays,
		TotalWidth: totalDays * dayWidth,
	}
}

// DateToX returns the pixel distance from the config start to the given
// date. Dates before the start yield a negative offset. Only the
// calendar day matters; time-of-day is discarded.
func (c Config) DateToX(t time.Time) int {
	return daysBetween(c.Start, dateOnly(t)) * c.DayWidth
}

// BarProps computes the bar rectangle for a task's date span. With no
// dates there is nothing to render and the result is nil. A lone end
// date renders as a fixed-width deadline marker; a lone start date
// renders as an open-ended bar reaching the chart's end. Rendered width
// never drops below 8px, so same-day and inverted spans stay visible.
func (c Config) BarProps(start, end *time.Time) *Bar {
	switch {
	case start == nil && end == nil:
		return nil
	case start == nil:
		return &Bar{Left: c.DateToX(*end), Width: minBarWidth}
	case end == nil:
		left := c.DateToX(*start)
		return &Bar{Left: left, Width: max(c.DateToX(c.End)-left, minBarWidth)}
	}

	left := c.DateToX(*start)
	width := c.DateToX(*end) - left
	return &Bar{Left: left, Width: max(width, minBarWidth)}
}

// TopHeaders returns one bucket per calendar month intersecting the
// config range, in chronological order. Partial months at either edge
// are clipped to the range, so the buckets are contiguous and cover
// TotalWidth exactly.
func (c Config) TopHeaders() []Bucket {
	var buckets []Bucket
	cursor := time.Date(c.Start.Year(), c.Start.Month(), 1, 0, 0, 0, 0, time.UTC)

	for !cursor.After(c.End) {
		nextMonth := cursor.AddDate(0, 1, 0)
		segStart := maxDate(cursor, c.Start)
		segEnd := minDate(nextMonth.AddDate(0, 0, -1), c.End)

		buckets = append(buckets, Bucket{
			Left:  c.DateToX(segStart),
			Width: (daysBetween(segStart, segEnd) + 1) * c.DayWidth,
			Label: MonthLabel(cursor.Month()),
		})
		cursor = nextMonth
	}
	return buckets
}

// TimeColumns returns the fine ruler row. Granularity follows the zoom:
// one column per day at week zoom, one per Monday-start week at month
// zoom (edge weeks clipped to the range), one per calendar month at
// quarter zoom. Buckets are contiguous and non-overlapping.
func (c Config) TimeColumns() []Bucket {
	switch c.Zoom {
	case ZoomWeek:
		return c.dayColumns()
	case ZoomQuarter:
		return c.monthColumns()
	default:
		return c.weekColumns()
	}
}

func (c Config) dayColumns() []Bucket {
	buckets := make([]Bucket, 0, c.TotalDays)
	for i := 0; i < c.TotalDays; i++ {
		day := c.Start.AddDate(0, 0, i)
		buckets = append(buckets, Bucket{
			Left:  i * c.DayWidth,
			Width: c.DayWidth,
			Label: fmt.Sprintf("%d", day.Day()),
		})
	}
	return buckets
}

func (c Config) weekColumns() []Bucket {
	var buckets []Bucket
	cursor := c.Start
	for !cursor.After(c.End) {
		segEnd := minDate(endOfWeek(cursor), c.End)
		_, week := cursor.ISOWeek()
		buckets = append(buckets, Bucket{
			Left:  c.DateToX(cursor),
			Width: (daysBetween(cursor, segEnd) + 1) * c.DayWidth,
			Label: fmt.Sprintf("S%d", week),
		})
		cursor = segEnd.AddDate(0, 0, 1)
	}
	return buckets
}

func (c Config) monthColumns() []Bucket {
	headers := c.TopHeaders()
	columns := make([]Bucket, len(headers))
	copy(columns, headers)
	return columns
}

// IsToday reports whether t falls on today's calendar day in the local
// timezone, ignoring time-of-day.
func IsToday(t time.Time) bool {
	now := time.Now()
	y1, m1, d1 := t.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// monthLabels holds abbreviated month names in the product locale.
var monthLabels = [12]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

// MonthLabel returns the localized abbreviated name for a month.
func MonthLabel(m time.Month) string {
	if m < time.January || m > time.December {
		return "?"
	}
	return monthLabels[m-1]
}

// dateOnly truncates t to midnight UTC so day arithmetic is unaffected
// by time-of-day, timezone or DST.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole-day difference b - a. Both arguments
// must already be date-only UTC values.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}

// endOfWeek returns the Sunday ending the Monday-start week containing t.
func endOfWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		return t // already Sunday
	}
	return t.AddDate(0, 0, 7-wd)
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
