package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danivilar/atelier/internal/db"
	"github.com/danivilar/atelier/internal/domain"
)

const leadColumns = `id, name, company, email, status, source, estimated_value,
		next_follow_up, notes, converted_client_id, created_at, updated_at`

// SQLiteLeadRepo implements LeadRepo using a SQLite database.
type SQLiteLeadRepo struct {
	db db.DBTX
}

// NewSQLiteLeadRepo creates a new SQLiteLeadRepo.
func NewSQLiteLeadRepo(conn db.DBTX) *SQLiteLeadRepo {
	return &SQLiteLeadRepo{db: conn}
}

func (r *SQLiteLeadRepo) Create(ctx context.Context, l *domain.Lead) error {
	query := `INSERT INTO leads (` + leadColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		l.ID,
		l.Name,
		l.Company,
		l.Email,
		string(l.Status),
		string(l.Source),
		nullableFloatToValue(l.EstimatedValue),
		nullableTimeToString(l.NextFollowUp, dateLayout),
		l.Notes,
		l.ConvertedClientID,
		l.CreatedAt.Format(time.RFC3339),
		l.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting lead: %w", err)
	}
	return nil
}

func (r *SQLiteLeadRepo) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	l, err := scanLeadFields(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lead not found")
	}
	return l, err
}

func (r *SQLiteLeadRepo) List(ctx context.Context, includeClosed bool) ([]*domain.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY created_at`
	if !includeClosed {
		query = `SELECT ` + leadColumns + ` FROM leads
			WHERE status NOT IN ('won','lost') ORDER BY created_at`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing leads: %w", err)
	}
	defer rows.Close()
	return collectLeads(rows)
}

func (r *SQLiteLeadRepo) ListFollowUpsDue(ctx context.Context, by time.Time) ([]*domain.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads
		WHERE status NOT IN ('won','lost') AND next_follow_up IS NOT NULL AND next_follow_up <= ?
		ORDER BY next_follow_up`
	rows, err := r.db.QueryContext(ctx, query, by.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing lead follow-ups: %w", err)
	}
	defer rows.Close()
	return collectLeads(rows)
}

func (r *SQLiteLeadRepo) Update(ctx context.Context, l *domain.Lead) error {
	query := `UPDATE leads SET name = ?, company = ?, email = ?, status = ?, source = ?,
		estimated_value = ?, next_follow_up = ?, notes = ?, converted_client_id = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		l.Name,
		l.Company,
		l.Email,
		string(l.Status),
		string(l.Source),
		nullableFloatToValue(l.EstimatedValue),
		nullableTimeToString(l.NextFollowUp, dateLayout),
		l.Notes,
		l.ConvertedClientID,
		l.UpdatedAt.Format(time.RFC3339),
		l.ID,
	)
	if err != nil {
		return fmt.Errorf("updating lead: %w", err)
	}
	return nil
}

func (r *SQLiteLeadRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM leads WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting lead: %w", err)
	}
	return nil
}

func collectLeads(rows *sql.Rows) ([]*domain.Lead, error) {
	var leads []*domain.Lead
	for rows.Next() {
		l, err := scanLeadFields(rows.Scan)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating leads: %w", err)
	}
	return leads, nil
}

func scanLeadFields(scan func(...any) error) (*domain.Lead, error) {
	var l domain.Lead
	var statusStr, sourceStr, createdAtStr, updatedAtStr string
	var value sql.NullFloat64
	var followUp sql.NullString

	err := scan(
		&l.ID, &l.Name, &l.Company, &l.Email, &statusStr, &sourceStr,
		&value, &followUp, &l.Notes, &l.ConvertedClientID,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning lead: %w", err)
	}

	l.Status = domain.LeadStatus(statusStr)
	l.Source = domain.LeadSource(sourceStr)
	l.EstimatedValue = nullableFloat(value)
	l.NextFollowUp = parseNullableTime(followUp, dateLayout)

	if l.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if l.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &l, nil
}

// SQLiteLeadActivityRepo implements LeadActivityRepo using a SQLite database.
type SQLiteLeadActivityRepo struct {
	db db.DBTX
}

// NewSQLiteLeadActivityRepo creates a new SQLiteLeadActivityRepo.
func NewSQLiteLeadActivityRepo(conn db.DBTX) *SQLiteLeadActivityRepo {
	return &SQLiteLeadActivityRepo{db: conn}
}

func (r *SQLiteLeadActivityRepo) Create(ctx context.Context, a *domain.LeadActivity) error {
	query := `INSERT INTO lead_activities (id, lead_id, type, body, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.LeadID,
		string(a.Type),
		a.Body,
		a.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting lead activity: %w", err)
	}
	return nil
}

func (r *SQLiteLeadActivityRepo) ListByLead(ctx context.Context, leadID string) ([]*domain.LeadActivity, error) {
	query := `SELECT id, lead_id, type, body, created_at
		FROM lead_activities WHERE lead_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("listing lead activities: %w", err)
	}
	defer rows.Close()

	var activities []*domain.LeadActivity
	for rows.Next() {
		var a domain.LeadActivity
		var typeStr, createdAtStr string
		if err := rows.Scan(&a.ID, &a.LeadID, &typeStr, &a.Body, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning lead activity: %w", err)
		}
		a.Type = domain.LeadActivityType(typeStr)
		if a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		activities = append(activities, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lead activities: %w", err)
	}
	return activities, nil
}
