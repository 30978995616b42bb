package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danivilar/atelier/internal/testutil"
)

func TestForecastService_Generate_BaselineWinsOverThinHistory(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	// One active client at 2000/month; almost no income history, so the
	// recurring baseline should carry the projection.
	client := testutil.NewTestClient("Retainer", testutil.WithMonthlyFee(2000))
	require.NoError(t, r.clients.Create(ctx, client))

	lastMonth := time.Now().UTC().AddDate(0, -1, 0)
	require.NoError(t, r.income.Create(ctx, testutil.NewTestIncome(300, lastMonth)))

	svc := NewForecastService(r.forecasts, r.income, r.expenses, r.clients)
	forecasts, err := svc.Generate(ctx, 3)
	require.NoError(t, err)
	require.Len(t, forecasts, 3)

	for _, f := range forecasts {
		assert.Equal(t, 2000.0, f.ProjectedIncome)
	}
}

// monthsBack returns the first day of the month n months before now,
// so fixtures land squarely inside the lookback window regardless of
// today's day of month.
func monthsBack(n int) time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -n, 0)
}

func TestForecastService_Generate_RecurringExpenseBaselineWins(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	// A 600/month subscription logged in a single lookback month: the
	// six-month average dilutes it to 100, but the recurring baseline
	// keeps the full monthly cost in the projection.
	lastMonth := monthsBack(1)
	require.NoError(t, r.expenses.Create(ctx,
		testutil.NewTestExpense(600, lastMonth, testutil.WithRecurring())))

	svc := NewForecastService(r.forecasts, r.income, r.expenses, r.clients)
	forecasts, err := svc.Generate(ctx, 1)
	require.NoError(t, err)
	require.Len(t, forecasts, 1)

	assert.InDelta(t, 600.0, forecasts[0].ProjectedExpenses, 0.001)
}

func TestForecastService_Generate_AverageExpensesWinOverBaseline(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	// One-off spending above the recurring baseline keeps the average as
	// the projection.
	require.NoError(t, r.expenses.Create(ctx,
		testutil.NewTestExpense(50, monthsBack(1), testutil.WithRecurring())))
	for i := 1; i <= 6; i++ {
		require.NoError(t, r.expenses.Create(ctx, testutil.NewTestExpense(900, monthsBack(i))))
	}

	svc := NewForecastService(r.forecasts, r.income, r.expenses, r.clients)
	forecasts, err := svc.Generate(ctx, 1)
	require.NoError(t, err)
	require.Len(t, forecasts, 1)

	// (50 + 6*900) / 6 months of history vs a 50 baseline.
	assert.Greater(t, forecasts[0].ProjectedExpenses, 50.0)
	assert.InDelta(t, (50.0+6*900.0)/6.0, forecasts[0].ProjectedExpenses, 0.001)
}

func TestForecastService_Generate_TaxAndConfidenceModel(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	client := testutil.NewTestClient("Retainer", testutil.WithMonthlyFee(1000))
	require.NoError(t, r.clients.Create(ctx, client))

	svc := NewForecastService(r.forecasts, r.income, r.expenses, r.clients)
	forecasts, err := svc.Generate(ctx, 8)
	require.NoError(t, err)
	require.Len(t, forecasts, 8)

	// taxes = income * 21% VAT * 25% retention
	assert.InDelta(t, 1000*0.21*0.25, forecasts[0].ProjectedTaxes, 0.001)

	// confidence decays 0.10 per month from 0.85, floored at 0.30.
	assert.InDelta(t, 0.85, forecasts[0].Confidence, 0.001)
	assert.InDelta(t, 0.75, forecasts[1].Confidence, 0.001)
	assert.InDelta(t, 0.30, forecasts[7].Confidence, 0.001)
}

func TestForecastService_Generate_UpsertsByMonth(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	client := testutil.NewTestClient("Retainer", testutil.WithMonthlyFee(1500))
	require.NoError(t, r.clients.Create(ctx, client))

	svc := NewForecastService(r.forecasts, r.income, r.expenses, r.clients)
	_, err := svc.Generate(ctx, 3)
	require.NoError(t, err)
	_, err = svc.Generate(ctx, 3)
	require.NoError(t, err)

	stored, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 3, "regenerating must replace, not duplicate")
}
