package domain

import "time"

type Income struct {
	ID          string
	ClientID    string // optional
	Date        time.Time
	Amount      float64
	Description string
	Type        IncomeType
	Category    string
	CreatedAt   time.Time
}

type Expense struct {
	ID          string
	Date        time.Time
	Amount      float64
	Description string
	Category    string
	IsRecurring bool
	CreatedAt   time.Time
}

// Forecast is one projected month of the financial outlook. Month is
// normalized to the first day of the month.
type Forecast struct {
	ID                string
	Month             time.Time
	ProjectedIncome   float64
	ProjectedExpenses float64
	ProjectedTaxes    float64
	ProjectedProfit   float64
	Confidence        float64
	GeneratedAt       time.Time
}

type BillingEvent struct {
	ID         string
	ClientID   string
	Type       BillingEventType
	Amount     *float64
	Note       string
	OccurredAt time.Time
	CreatedAt  time.Time
}

// MonthKey returns the YYYY-MM bucket a date falls in, used for grouping
// finance rows into monthly summaries.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthlySummary aggregates income and expenses for one month.
type MonthlySummary struct {
	Month    string // YYYY-MM
	Income   float64
	Expenses float64
}

// Net returns income minus expenses for the month.
func (m MonthlySummary) Net() float64 {
	return m.Income - m.Expenses
}
