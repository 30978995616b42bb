package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danivilar/atelier/internal/db"
	"github.com/danivilar/atelier/internal/domain"
)

const projectColumns = `id, client_id, name, description, type, status,
		start_date, target_end_date, actual_end_date, progress_pct, budget_hours,
		is_recurring, created_at, updated_at`

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.ClientID,
		p.Name,
		p.Description,
		p.Type,
		string(p.Status),
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.TargetEndDate, dateLayout),
		nullableTimeToString(p.ActualEndDate, dateLayout),
		p.ProgressPct,
		nullableFloatToValue(p.BudgetHours),
		boolToInt(p.IsRecurring),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	p, err := scanProjectFields(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project not found")
	}
	return p, err
}

func (r *SQLiteProjectRepo) List(ctx context.Context, openOnly bool) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at`
	if openOnly {
		query = `SELECT ` + projectColumns + ` FROM projects
			WHERE status IN ('planning','active') ORDER BY created_at`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()
	return collectProjects(rows)
}

func (r *SQLiteProjectRepo) ListByClient(ctx context.Context, clientID string) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE client_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("listing projects by client: %w", err)
	}
	defer rows.Close()
	return collectProjects(rows)
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name = ?, description = ?, type = ?, status = ?,
		start_date = ?, target_end_date = ?, actual_end_date = ?, progress_pct = ?,
		budget_hours = ?, is_recurring = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Description,
		p.Type,
		string(p.Status),
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.TargetEndDate, dateLayout),
		nullableTimeToString(p.ActualEndDate, dateLayout),
		p.ProgressPct,
		nullableFloatToValue(p.BudgetHours),
		boolToInt(p.IsRecurring),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func collectProjects(rows *sql.Rows) ([]*domain.Project, error) {
	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProjectFields(rows.Scan)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func scanProjectFields(scan func(...any) error) (*domain.Project, error) {
	var p domain.Project
	var statusStr, createdAtStr, updatedAtStr string
	var startDate, targetEnd, actualEnd sql.NullString
	var budgetHours sql.NullFloat64
	var recurring int

	err := scan(
		&p.ID, &p.ClientID, &p.Name, &p.Description, &p.Type, &statusStr,
		&startDate, &targetEnd, &actualEnd, &p.ProgressPct, &budgetHours,
		&recurring, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.Status = domain.ProjectStatus(statusStr)
	p.StartDate = parseNullableTime(startDate, dateLayout)
	p.TargetEndDate = parseNullableTime(targetEnd, dateLayout)
	p.ActualEndDate = parseNullableTime(actualEnd, dateLayout)
	p.BudgetHours = nullableFloat(budgetHours)
	p.IsRecurring = intToBool(recurring)

	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}
