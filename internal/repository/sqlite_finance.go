package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/danivilar/atelier/internal/db"
	"github.com/danivilar/atelier/internal/domain"
)

// monthLayout keys forecast and summary rows by calendar month.
const monthLayout = "2006-01"

// SQLiteIncomeRepo implements IncomeRepo using a SQLite database.
type SQLiteIncomeRepo struct {
	db db.DBTX
}

// NewSQLiteIncomeRepo creates a new SQLiteIncomeRepo.
func NewSQLiteIncomeRepo(conn db.DBTX) *SQLiteIncomeRepo {
	return &SQLiteIncomeRepo{db: conn}
}

func (r *SQLiteIncomeRepo) Create(ctx context.Context, i *domain.Income) error {
	query := `INSERT INTO income (id, client_id, date, amount, description, type, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		i.ID,
		i.ClientID,
		i.Date.Format(dateLayout),
		i.Amount,
		i.Description,
		string(i.Type),
		i.Category,
		i.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting income: %w", err)
	}
	return nil
}

func (r *SQLiteIncomeRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Income, error) {
	query := `SELECT id, client_id, date, amount, description, type, category, created_at
		FROM income WHERE date >= ? AND date <= ? ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing income: %w", err)
	}
	defer rows.Close()

	var items []*domain.Income
	for rows.Next() {
		var i domain.Income
		var dateStr, typeStr, createdAtStr string
		if err := rows.Scan(&i.ID, &i.ClientID, &dateStr, &i.Amount, &i.Description, &typeStr, &i.Category, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning income: %w", err)
		}
		i.Type = domain.IncomeType(typeStr)
		if i.Date, err = time.Parse(dateLayout, dateStr); err != nil {
			return nil, fmt.Errorf("parsing date: %w", err)
		}
		if i.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		items = append(items, &i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating income: %w", err)
	}
	return items, nil
}

func (r *SQLiteIncomeRepo) MonthlyTotals(ctx context.Context, from, to time.Time) (map[string]float64, error) {
	query := `SELECT substr(date, 1, 7) AS month, SUM(amount)
		FROM income WHERE date >= ? AND date <= ? GROUP BY month`
	return monthlyTotals(ctx, r.db, query, from, to)
}

func (r *SQLiteIncomeRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM income WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting income: %w", err)
	}
	return nil
}

// SQLiteExpenseRepo implements ExpenseRepo using a SQLite database.
type SQLiteExpenseRepo struct {
	db db.DBTX
}

// NewSQLiteExpenseRepo creates a new SQLiteExpenseRepo.
func NewSQLiteExpenseRepo(conn db.DBTX) *SQLiteExpenseRepo {
	return &SQLiteExpenseRepo{db: conn}
}

func (r *SQLiteExpenseRepo) Create(ctx context.Context, e *domain.Expense) error {
	query := `INSERT INTO expenses (id, date, amount, description, category, is_recurring, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Date.Format(dateLayout),
		e.Amount,
		e.Description,
		e.Category,
		boolToInt(e.IsRecurring),
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting expense: %w", err)
	}
	return nil
}

func (r *SQLiteExpenseRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Expense, error) {
	query := `SELECT id, date, amount, description, category, is_recurring, created_at
		FROM expenses WHERE date >= ? AND date <= ? ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var items []*domain.Expense
	for rows.Next() {
		var e domain.Expense
		var dateStr, createdAtStr string
		var recurring int
		if err := rows.Scan(&e.ID, &dateStr, &e.Amount, &e.Description, &e.Category, &recurring, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}
		e.IsRecurring = intToBool(recurring)
		if e.Date, err = time.Parse(dateLayout, dateStr); err != nil {
			return nil, fmt.Errorf("parsing date: %w", err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		items = append(items, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expenses: %w", err)
	}
	return items, nil
}

func (r *SQLiteExpenseRepo) MonthlyTotals(ctx context.Context, from, to time.Time) (map[string]float64, error) {
	query := `SELECT substr(date, 1, 7) AS month, SUM(amount)
		FROM expenses WHERE date >= ? AND date <= ? GROUP BY month`
	return monthlyTotals(ctx, r.db, query, from, to)
}

// RecurringMonthlyTotals groups recurring expenses by calendar month
// across all history, for baseline projections.
func (r *SQLiteExpenseRepo) RecurringMonthlyTotals(ctx context.Context) (map[string]float64, error) {
	query := `SELECT substr(date, 1, 7) AS month, SUM(amount)
		FROM expenses WHERE is_recurring = 1 GROUP BY month`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying recurring expenses: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var month string
		var total float64
		if err := rows.Scan(&month, &total); err != nil {
			return nil, fmt.Errorf("scanning recurring expense total: %w", err)
		}
		totals[month] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recurring expenses: %w", err)
	}
	return totals, nil
}

func (r *SQLiteExpenseRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}
	return nil
}

func monthlyTotals(ctx context.Context, conn db.DBTX, query string, from, to time.Time) (map[string]float64, error) {
	rows, err := conn.QueryContext(ctx, query, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("querying monthly totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var month string
		var total float64
		if err := rows.Scan(&month, &total); err != nil {
			return nil, fmt.Errorf("scanning monthly total: %w", err)
		}
		totals[month] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating monthly totals: %w", err)
	}
	return totals, nil
}

// SQLiteForecastRepo implements ForecastRepo using a SQLite database.
type SQLiteForecastRepo struct {
	db db.DBTX
}

// NewSQLiteForecastRepo creates a new SQLiteForecastRepo.
func NewSQLiteForecastRepo(conn db.DBTX) *SQLiteForecastRepo {
	return &SQLiteForecastRepo{db: conn}
}

func (r *SQLiteForecastRepo) Upsert(ctx context.Context, f *domain.Forecast) error {
	query := `INSERT INTO forecasts (id, month, projected_income, projected_expenses,
		projected_taxes, projected_profit, confidence, generated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(month) DO UPDATE SET
			projected_income = excluded.projected_income,
			projected_expenses = excluded.projected_expenses,
			projected_taxes = excluded.projected_taxes,
			projected_profit = excluded.projected_profit,
			confidence = excluded.confidence,
			generated_at = excluded.generated_at`
	_, err := r.db.ExecContext(ctx, query,
		f.ID,
		f.Month.Format(monthLayout),
		f.ProjectedIncome,
		f.ProjectedExpenses,
		f.ProjectedTaxes,
		f.ProjectedProfit,
		f.Confidence,
		f.GeneratedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting forecast: %w", err)
	}
	return nil
}

func (r *SQLiteForecastRepo) List(ctx context.Context) ([]*domain.Forecast, error) {
	query := `SELECT id, month, projected_income, projected_expenses,
		projected_taxes, projected_profit, confidence, generated_at
		FROM forecasts ORDER BY month`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing forecasts: %w", err)
	}
	defer rows.Close()

	var forecasts []*domain.Forecast
	for rows.Next() {
		var f domain.Forecast
		var monthStr, generatedAtStr string
		if err := rows.Scan(&f.ID, &monthStr, &f.ProjectedIncome, &f.ProjectedExpenses,
			&f.ProjectedTaxes, &f.ProjectedProfit, &f.Confidence, &generatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning forecast: %w", err)
		}
		if f.Month, err = time.Parse(monthLayout, monthStr); err != nil {
			return nil, fmt.Errorf("parsing month: %w", err)
		}
		if f.GeneratedAt, err = time.Parse(time.RFC3339, generatedAtStr); err != nil {
			return nil, fmt.Errorf("parsing generated_at: %w", err)
		}
		forecasts = append(forecasts, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating forecasts: %w", err)
	}
	return forecasts, nil
}

func (r *SQLiteForecastRepo) DeleteFrom(ctx context.Context, month time.Time) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM forecasts WHERE month >= ?`, month.Format(monthLayout))
	if err != nil {
		return fmt.Errorf("deleting forecasts: %w", err)
	}
	return nil
}
