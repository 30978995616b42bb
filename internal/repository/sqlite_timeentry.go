package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danivilar/atelier/internal/db"
	"github.com/danivilar/atelier/internal/domain"
)

const timeEntryColumns = `id, task_id, date, minutes, note, billable, created_at`

// SQLiteTimeEntryRepo implements TimeEntryRepo using a SQLite database.
type SQLiteTimeEntryRepo struct {
	db db.DBTX
}

// NewSQLiteTimeEntryRepo creates a new SQLiteTimeEntryRepo.
func NewSQLiteTimeEntryRepo(conn db.DBTX) *SQLiteTimeEntryRepo {
	return &SQLiteTimeEntryRepo{db: conn}
}

func (r *SQLiteTimeEntryRepo) Create(ctx context.Context, e *domain.TimeEntry) error {
	query := `INSERT INTO time_entries (` + timeEntryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.TaskID,
		e.Date.Format(dateLayout),
		e.Minutes,
		e.Note,
		boolToInt(e.Billable),
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting time entry: %w", err)
	}
	return nil
}

func (r *SQLiteTimeEntryRepo) GetByID(ctx context.Context, id string) (*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE id = ?`
	var e domain.TimeEntry
	var dateStr, createdAtStr string
	var billable int
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.TaskID, &dateStr, &e.Minutes, &e.Note, &billable, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("time entry not found")
		}
		return nil, fmt.Errorf("scanning time entry: %w", err)
	}
	if e.Date, err = time.Parse(dateLayout, dateStr); err != nil {
		return nil, fmt.Errorf("parsing date: %w", err)
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	e.Billable = intToBool(billable)
	return &e, nil
}

func (r *SQLiteTimeEntryRepo) ListByTask(ctx context.Context, taskID string) ([]*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE task_id = ? ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing time entries by task: %w", err)
	}
	defer rows.Close()
	return collectTimeEntries(rows)
}

func (r *SQLiteTimeEntryRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries
		WHERE date >= ? AND date <= ? ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing time entries by date: %w", err)
	}
	defer rows.Close()
	return collectTimeEntries(rows)
}

func (r *SQLiteTimeEntryRepo) SumMinutesByClient(ctx context.Context, clientID string, from, to time.Time) (int, error) {
	query := `SELECT COALESCE(SUM(e.minutes), 0) FROM time_entries e
		JOIN tasks t ON t.id = e.task_id
		WHERE t.client_id = ? AND e.date >= ? AND e.date <= ?`
	var total int
	err := r.db.QueryRowContext(ctx, query, clientID, from.Format(dateLayout), to.Format(dateLayout)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing minutes by client: %w", err)
	}
	return total, nil
}

func (r *SQLiteTimeEntryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting time entry: %w", err)
	}
	return nil
}

func collectTimeEntries(rows *sql.Rows) ([]*domain.TimeEntry, error) {
	var entries []*domain.TimeEntry
	for rows.Next() {
		var e domain.TimeEntry
		var dateStr, createdAtStr string
		var billable int
		if err := rows.Scan(&e.ID, &e.TaskID, &dateStr, &e.Minutes, &e.Note, &billable, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning time entry: %w", err)
		}
		var err error
		if e.Date, err = time.Parse(dateLayout, dateStr); err != nil {
			return nil, fmt.Errorf("parsing date: %w", err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		e.Billable = intToBool(billable)
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating time entries: %w", err)
	}
	return entries, nil
}
