package formatter

import (
	"fmt"
	"time"
)

// Money formats an amount with its currency, e.g. "1.250,00 EUR" style
// output is deliberately avoided: invoices here use plain decimal points.
func Money(amount float64, currency string) string {
	if currency == "" {
		currency = "EUR"
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}

// Duration formats minutes as "3h 20min", dropping zero components.
func Duration(minutes int) string {
	if minutes <= 0 {
		return "0min"
	}
	h := minutes / 60
	m := minutes % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%dmin", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dmin", h, m)
	}
}

// Date formats a date as yyyy-mm-dd, or a dash when nil.
func Date(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format("2006-01-02")
}

// RelativeDate renders a date relative to now: "today", "in 3d", "5d ago".
func RelativeDate(t *time.Time, now time.Time) string {
	if t == nil {
		return "—"
	}
	day := func(x time.Time) time.Time {
		return time.Date(x.Year(), x.Month(), x.Day(), 0, 0, 0, 0, time.UTC)
	}
	days := int(day(*t).Sub(day(now)).Hours() / 24)
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 0:
		return fmt.Sprintf("in %dd", days)
	default:
		return fmt.Sprintf("%dd ago", -days)
	}
}

// Percent renders a progress percentage as a compact bar plus number.
func Percent(pct int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct / 10
	bar := ""
	for i := 0; i < 10; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return fmt.Sprintf("%s %d%%", bar, pct)
}

// Truncate shortens a string to max runes, appending an ellipsis.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}
