package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestZoomDayWidth(t *testing.T) {
	tests := []struct {
		zoom  Zoom
		width int
	}{
		{ZoomWeek, 40},
		{ZoomMonth, 14},
		{ZoomQuarter, 5},
		{Zoom("bogus"), 14}, // unknown zoom degrades to month density
	}
	for _, tt := range tests {
		t.Run(string(tt.zoom), func(t *testing.T) {
			cfg := NewConfig(datePtr(2026, 1, 1), datePtr(2026, 3, 31), tt.zoom)
			assert.Equal(t, tt.width, cfg.DayWidth)
		})
	}
}

func TestNewConfig_WidthInvariant(t *testing.T) {
	ranges := []struct {
		start, end *time.Time
	}{
		{datePtr(2026, 1, 1), datePtr(2026, 3, 31)},
		{datePtr(2026, 1, 1), datePtr(2026, 1, 5)},
		{nil, nil},
		{datePtr(2026, 6, 1), nil},
		{nil, datePtr(2026, 6, 1)},
		{datePtr(2026, 2, 10), datePtr(2026, 2, 1)}, // inverted
	}
	for _, zoom := range []Zoom{ZoomWeek, ZoomMonth, ZoomQuarter} {
		for _, r := range ranges {
			cfg := NewConfig(r.start, r.end, zoom)
			assert.Equal(t, cfg.TotalDays*cfg.DayWidth, cfg.TotalWidth)
			assert.GreaterOrEqual(t, cfg.TotalDays, 30)
			assert.False(t, cfg.End.Before(cfg.Start))
		}
	}
}

func TestNewConfig_MinimumSpan(t *testing.T) {
	cfg := NewConfig(datePtr(2026, 1, 1), datePtr(2026, 1, 5), ZoomMonth)
	assert.GreaterOrEqual(t, cfg.TotalDays, 30)
}

func TestNewConfig_NullFallback(t *testing.T) {
	cfg := NewConfig(nil, nil, ZoomMonth)
	assert.GreaterOrEqual(t, cfg.TotalDays, 30)
	assert.Equal(t, 14, cfg.DayWidth)
}

func TestNewConfig_Padding(t *testing.T) {
	cfg := NewConfig(datePtr(2026, 3, 10), datePtr(2026, 5, 20), ZoomMonth)
	assert.Equal(t, date(2026, 3, 3), cfg.Start, "7 days padding before")
	assert.Equal(t, date(2026, 6, 3), cfg.End, "14 days padding after")
}

func TestDateToX_ZeroPoint(t *testing.T) {
	for _, zoom := range []Zoom{ZoomWeek, ZoomMonth, ZoomQuarter} {
		cfg := NewConfig(datePtr(2026, 1, 1), datePtr(2026, 3, 31), zoom)
		assert.Equal(t, 0, cfg.DateToX(cfg.Start))
	}
}

func TestDateToX_LinearScaling(t *testing.T) {
	cfg := NewConfig(datePtr(2026, 1, 1), datePtr(2026, 3, 31), ZoomWeek)
	require.Equal(t, 40, cfg.DayWidth)

	tenDaysIn := cfg.Start.AddDate(0, 0, 10)
	assert.Equal(t, 400, cfg.DateToX(tenDaysIn))
}

func TestDateToX_NegativeBeforeStart(t *testing.T) {
	cfg := NewConfig(datePtr(2026, 1, 1), datePtr(2026, 3, 31), ZoomMonth)
	before := cfg.Start.AddDate(0, 0, -5)
	assert.Equal(t, -5*cfg.DayWidth, cfg.DateToX(before))
}

func TestDateToX_IgnoresTimeOfDay(t *testing.T) {
	cfg := NewConfig(datePtr(2026, 1, 1), datePtr(2026, 3, 31), ZoomMonth)
	day := cfg.Start.AddDate(0, 0, 3)
	lateEvening := time.Date(day.Year(), day.Month(), day.Day(), 23, 45, 0, 0, time.Local)
	assert.Equal(t, cfg.DateToX(day), cfg.DateToX(lateEvening))
}

func TestBarProps_BothNil(t *testing.T) {
	cfg := NewConfig(datePtr(2026, 1, 1), datePtr(2026, 3, 31), ZoomMonth)
	assert.Nil(t, cfg.BarProps(nil, nil))
}

func TestBarProps_EndOnlyMarker(t *testing.T) {
	cfg := NewConfig(datePtr(2026, 1, 1), datePtr(2026, 3, 31), ZoomMonth)
	bar := cfg.BarProps(nil, datePtr(2026, 2, 1))
	require.NotNil(t, bar)
	assert.Equal(t, 8, bar.Width)
	assert.Equal(t, cfg.DateToX(date(2026, 2, 1)), bar.Left)
}

func TestBarProps_StartOnlyOpenEnded(t *testing.T) {
	cfg := NewConfig(datePtr(2026, 1, 1), datePtr(2026, 3, 31), ZoomMonth)
	bar := cfg.BarProps(datePtr(2026, 2, 1), nil)
	require.NotNil(t, bar)
	assert.GreaterOrEqual(t, bar.Width, 8)
	assert.Equal(t, cfg.DateToX(date(2026, 2, 1)), bar.Left)
}

func TestBarProps_MinimumWidth(t *testing.T) {
	// 1-day span at a narrow day width must still render 8px wide.
	cfg := Config{
		Start: date(2026, 1, 1), End: date(2026, 3, 31),
		Zoom: ZoomQuarter, DayWidth: 2, TotalDays: 90, TotalWidth: 180,
	}
	bar := cfg.BarProps(datePtr(2026, 2, 1), datePtr(2026, 2, 2))
	require.NotNil(t, bar)
	assert.GreaterOrEqual(t, bar.Width, 8)
}

func TestBarProps_InvertedSpanFloored(t *testing.T) {
	cfg := NewConfig(datePtr(2026, 1, 1), datePtr(2026, 3, 31), ZoomMonth)
	bar := cfg.BarProps(datePtr(2026, 2, 10), datePtr(2026, 2, 1))
	require.NotNil(t, bar)
	assert.Equal(t, 8, bar.Width)
}

func TestBarProps_NormalSpan(t *testing.T) {
	cfg := NewConfig(datePtr(2026, 1, 1), datePtr(2026, 3, 31), ZoomMonth)
	require.Equal(t, 14, cfg.DayWidth)

	start := datePtr(2026, 2, 1)
	end := datePtr(2026, 2, 11) // 10 days later
	bar := cfg.BarProps(start, end)
	require.NotNil(t, bar)
	assert.Equal(t, 140, bar.Width)
	assert.Equal(t, cfg.DateToX(*start), bar.Left)
}

func TestTopHeaders_QuarterCoverage(t *testing.T) {
	// Exact range, no padding: construct the config directly.
	cfg := Config{
		Start: date(2026, 1, 1), End: date(2026, 3, 31),
		Zoom: ZoomMonth, DayWidth: 14, TotalDays: 90, TotalWidth: 90 * 14,
	}
	headers := cfg.TopHeaders()
	require.Len(t, headers, 3)
	assert.Equal(t, "ene", headers[0].Label)
	assert.Equal(t, "feb", headers[1].Label)
	assert.Equal(t, "mar", headers[2].Label)

	// Contiguous, non-overlapping, covering the full width.
	covered := 0
	for i, h := range headers {
		assert.GreaterOrEqual(t, h.Width, 0)
		assert.Equal(t, covered, h.Left, "header %d must start where the previous ended", i)
		covered += h.Width
	}
	assert.Equal(t, cfg.TotalWidth, covered)
}

func TestTopHeaders_ClipsPartialMonths(t *testing.T) {
	cfg := Config{
		Start: date(2026, 1, 20), End: date(2026, 2, 10),
		Zoom: ZoomMonth, DayWidth: 14, TotalDays: 22, TotalWidth: 22 * 14,
	}
	headers := cfg.TopHeaders()
	require.Len(t, headers, 2)
	assert.Equal(t, 12*14, headers[0].Width, "jan 20-31 is 12 days")
	assert.Equal(t, 10*14, headers[1].Width, "feb 1-10 is 10 days")
}

func TestTimeColumns_WeekZoomOnePerDay(t *testing.T) {
	cfg := Config{
		Start: date(2026, 1, 1), End: date(2026, 1, 7),
		Zoom: ZoomWeek, DayWidth: 40, TotalDays: 7, TotalWidth: 280,
	}
	cols := cfg.TimeColumns()
	require.Len(t, cols, 7)
	assert.Equal(t, 0, cols[0].Left)
	assert.Equal(t, cfg.DayWidth, cols[0].Width)
	assert.Equal(t, "1", cols[0].Label)
}

func TestTimeColumns_MonthZoomWeekBuckets(t *testing.T) {
	// Full January 2026 (Jan 1 is a Thursday): Thu-Sun head bucket,
	// three full Monday weeks, then a clipped tail.
	cfg := Config{
		Start: date(2026, 1, 1), End: date(2026, 1, 31),
		Zoom: ZoomMonth, DayWidth: 14, TotalDays: 31, TotalWidth: 31 * 14,
	}
	cols := cfg.TimeColumns()
	assert.GreaterOrEqual(t, len(cols), 4)
	assert.LessOrEqual(t, len(cols), 6)

	covered := 0
	for _, col := range cols {
		assert.Equal(t, covered, col.Left)
		covered += col.Width
	}
	assert.Equal(t, cfg.TotalWidth, covered)
}

func TestTimeColumns_QuarterZoomMonthBuckets(t *testing.T) {
	cfg := Config{
		Start: date(2026, 1, 1), End: date(2026, 3, 31),
		Zoom: ZoomQuarter, DayWidth: 5, TotalDays: 90, TotalWidth: 450,
	}
	cols := cfg.TimeColumns()
	require.Len(t, cols, 3)
}

func TestIsToday(t *testing.T) {
	now := time.Now()
	assert.True(t, IsToday(now))
	assert.False(t, IsToday(now.AddDate(0, 0, -1)))
	assert.False(t, IsToday(date(2020, 6, 15)))
}
