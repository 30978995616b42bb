package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danivilar/atelier/internal/db"
	"github.com/danivilar/atelier/internal/domain"
)

const taskColumns = `id, client_id, project_id, title, description, status, priority,
		due_date, estimate_min, logged_min, completed_at, created_at, updated_at`

// priorityRank orders tasks urgent-first in list queries.
const priorityRank = `CASE priority
		WHEN 'urgent' THEN 0 WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ClientID,
		emptyToNull(t.ProjectID),
		t.Title,
		t.Description,
		string(t.Status),
		string(t.Priority),
		nullableTimeToString(t.DueDate, dateLayout),
		t.EstimateMin,
		t.LoggedMin,
		nullableTimeToString(t.CompletedAt, time.RFC3339),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	t, err := scanTaskFields(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task not found")
	}
	return t, err
}

func (r *SQLiteTaskRepo) List(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY ` + priorityRank + `, created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *SQLiteTaskRepo) ListByClient(ctx context.Context, clientID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE client_id = ?
		ORDER BY ` + priorityRank + `, created_at`
	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by client: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = ?
		ORDER BY ` + priorityRank + `, created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by project: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *SQLiteTaskRepo) ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE status = ?
		ORDER BY ` + priorityRank + `, created_at`
	rows, err := r.db.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("listing tasks by status: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *SQLiteTaskRepo) CountCompletedSince(ctx context.Context, clientID string, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM tasks
		WHERE client_id = ? AND status = 'completed' AND completed_at >= ?`
	var n int
	err := r.db.QueryRowContext(ctx, query, clientID, since.UTC().Format(time.RFC3339)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting completed tasks: %w", err)
	}
	return n, nil
}

func (r *SQLiteTaskRepo) CountOverdue(ctx context.Context, clientID string, now time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM tasks
		WHERE client_id = ? AND status != 'completed' AND due_date IS NOT NULL AND due_date < ?`
	var n int
	err := r.db.QueryRowContext(ctx, query, clientID, now.UTC().Format(dateLayout)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting overdue tasks: %w", err)
	}
	return n, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET project_id = ?, title = ?, description = ?, status = ?,
		priority = ?, due_date = ?, estimate_min = ?, logged_min = ?, completed_at = ?,
		updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		emptyToNull(t.ProjectID),
		t.Title,
		t.Description,
		string(t.Status),
		string(t.Priority),
		nullableTimeToString(t.DueDate, dateLayout),
		t.EstimateMin,
		t.LoggedMin,
		nullableTimeToString(t.CompletedAt, time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

func collectTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTaskFields(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func scanTaskFields(scan func(...any) error) (*domain.Task, error) {
	var t domain.Task
	var statusStr, priorityStr, createdAtStr, updatedAtStr string
	var projectID, dueDate, completedAt sql.NullString

	err := scan(
		&t.ID, &t.ClientID, &projectID, &t.Title, &t.Description,
		&statusStr, &priorityStr,
		&dueDate, &t.EstimateMin, &t.LoggedMin, &completedAt,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.ProjectID = projectID.String
	t.Status = domain.TaskStatus(statusStr)
	t.Priority = domain.TaskPriority(priorityStr)
	t.DueDate = parseNullableTime(dueDate, dateLayout)
	t.CompletedAt = parseNullableTime(completedAt, time.RFC3339)

	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &t, nil
}
