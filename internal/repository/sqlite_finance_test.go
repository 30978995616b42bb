package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"

	"github.com/danivilar/atelier/internal/domain"
	"github.com/danivilar/atelier/internal/testutil"
)

func TestIncomeRepo_MonthlyTotals(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteIncomeRepo(db)
	ctx := context.Background()

	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, testutil.NewTestIncome(1000, jan)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestIncome(500, jan.AddDate(0, 0, 5))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestIncome(800, feb)))

	totals, err := repo.MonthlyTotals(ctx,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1500.0, totals["2026-01"])
	assert.Equal(t, 800.0, totals["2026-02"])
}

func TestExpenseRepo_ListByDateRange(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteExpenseRepo(db)
	ctx := context.Background()

	inRange := testutil.NewTestExpense(120, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	outOfRange := testutil.NewTestExpense(80, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, inRange))
	require.NoError(t, repo.Create(ctx, outOfRange))

	expenses, err := repo.ListByDateRange(ctx,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, 120.0, expenses[0].Amount)
}

func TestForecastRepo_UpsertReplacesMonth(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteForecastRepo(db)
	ctx := context.Background()

	month := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	first := &domain.Forecast{
		ID:              uuid.New().String(),
		Month:           month,
		ProjectedIncome: 5000,
		Confidence:      0.85,
		GeneratedAt:     time.Now().UTC(),
	}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &domain.Forecast{
		ID:              uuid.New().String(),
		Month:           month,
		ProjectedIncome: 6200,
		Confidence:      0.75,
		GeneratedAt:     time.Now().UTC(),
	}
	require.NoError(t, repo.Upsert(ctx, second))

	forecasts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, forecasts, 1)
	assert.Equal(t, 6200.0, forecasts[0].ProjectedIncome)
}

func TestForecastRepo_DeleteFrom(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteForecastRepo(db)
	ctx := context.Background()

	for m := 1; m <= 4; m++ {
		f := &domain.Forecast{
			ID:          uuid.New().String(),
			Month:       time.Date(2026, time.Month(m), 1, 0, 0, 0, 0, time.UTC),
			GeneratedAt: time.Now().UTC(),
		}
		require.NoError(t, repo.Upsert(ctx, f))
	}

	require.NoError(t, repo.DeleteFrom(ctx, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))

	forecasts, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, forecasts, 2)
}

func TestTimeEntryRepo_SumMinutesByClient(t *testing.T) {
	db := testutil.NewTestDB(t)
	clientRepo := NewSQLiteClientRepo(db)
	taskRepo := NewSQLiteTaskRepo(db)
	entryRepo := NewSQLiteTimeEntryRepo(db)
	ctx := context.Background()

	client := testutil.NewTestClient("Tracked")
	require.NoError(t, clientRepo.Create(ctx, client))
	other := testutil.NewTestClient("Other")
	require.NoError(t, clientRepo.Create(ctx, other))

	task := testutil.NewTestTask(client.ID, "Billable work")
	require.NoError(t, taskRepo.Create(ctx, task))
	otherTask := testutil.NewTestTask(other.ID, "Unrelated")
	require.NoError(t, taskRepo.Create(ctx, otherTask))

	day := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, entryRepo.Create(ctx, testutil.NewTestTimeEntry(task.ID, 90, day)))
	require.NoError(t, entryRepo.Create(ctx, testutil.NewTestTimeEntry(task.ID, 30, day.AddDate(0, 0, 1))))
	require.NoError(t, entryRepo.Create(ctx, testutil.NewTestTimeEntry(otherTask.ID, 60, day)))

	total, err := entryRepo.SumMinutesByClient(ctx, client.ID,
		day.AddDate(0, 0, -7), day.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Equal(t, 120, total)
}
