package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danivilar/atelier/internal/db"
	"github.com/danivilar/atelier/internal/domain"
)

const proposalColumns = `id, lead_id, client_id, title, company_name, service_type,
		status, amount, valid_until, sent_at, created_at, updated_at`

// SQLiteProposalRepo implements ProposalRepo using a SQLite database.
type SQLiteProposalRepo struct {
	db db.DBTX
}

// NewSQLiteProposalRepo creates a new SQLiteProposalRepo.
func NewSQLiteProposalRepo(conn db.DBTX) *SQLiteProposalRepo {
	return &SQLiteProposalRepo{db: conn}
}

func (r *SQLiteProposalRepo) Create(ctx context.Context, p *domain.Proposal) error {
	query := `INSERT INTO proposals (` + proposalColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.LeadID,
		p.ClientID,
		p.Title,
		p.CompanyName,
		string(p.ServiceType),
		string(p.Status),
		nullableFloatToValue(p.Amount),
		nullableTimeToString(p.ValidUntil, dateLayout),
		nullableTimeToString(p.SentAt, time.RFC3339),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting proposal: %w", err)
	}
	return nil
}

func (r *SQLiteProposalRepo) GetByID(ctx context.Context, id string) (*domain.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	p, err := scanProposalFields(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("proposal not found")
	}
	return p, err
}

func (r *SQLiteProposalRepo) List(ctx context.Context) ([]*domain.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing proposals: %w", err)
	}
	defer rows.Close()
	return collectProposals(rows)
}

func (r *SQLiteProposalRepo) ListOutstanding(ctx context.Context) ([]*domain.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals
		WHERE status = 'sent' ORDER BY valid_until`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing outstanding proposals: %w", err)
	}
	defer rows.Close()
	return collectProposals(rows)
}

func (r *SQLiteProposalRepo) Update(ctx context.Context, p *domain.Proposal) error {
	query := `UPDATE proposals SET lead_id = ?, client_id = ?, title = ?, company_name = ?,
		service_type = ?, status = ?, amount = ?, valid_until = ?, sent_at = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.LeadID,
		p.ClientID,
		p.Title,
		p.CompanyName,
		string(p.ServiceType),
		string(p.Status),
		nullableFloatToValue(p.Amount),
		nullableTimeToString(p.ValidUntil, dateLayout),
		nullableTimeToString(p.SentAt, time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating proposal: %w", err)
	}
	return nil
}

func collectProposals(rows *sql.Rows) ([]*domain.Proposal, error) {
	var proposals []*domain.Proposal
	for rows.Next() {
		p, err := scanProposalFields(rows.Scan)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating proposals: %w", err)
	}
	return proposals, nil
}

func scanProposalFields(scan func(...any) error) (*domain.Proposal, error) {
	var p domain.Proposal
	var serviceStr, statusStr, createdAtStr, updatedAtStr string
	var amount sql.NullFloat64
	var validUntil, sentAt sql.NullString

	err := scan(
		&p.ID, &p.LeadID, &p.ClientID, &p.Title, &p.CompanyName, &serviceStr,
		&statusStr, &amount, &validUntil, &sentAt,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning proposal: %w", err)
	}

	p.ServiceType = domain.ServiceType(serviceStr)
	p.Status = domain.ProposalStatus(statusStr)
	p.Amount = nullableFloat(amount)
	p.ValidUntil = parseNullableTime(validUntil, dateLayout)
	p.SentAt = parseNullableTime(sentAt, time.RFC3339)

	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}
