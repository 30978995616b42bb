package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danivilar/atelier/internal/db"
	"github.com/danivilar/atelier/internal/domain"
)

// clientColumns is the canonical SELECT column list for clients.
const clientColumns = `id, name, company, email, phone, contract_type, status, currency,
		monthly_fee, monthly_budget, notes, billing_cycle, billing_day,
		next_invoice_date, last_invoiced_at, holded_contact_id, created_at, updated_at`

// SQLiteClientRepo implements ClientRepo using a SQLite database.
type SQLiteClientRepo struct {
	db db.DBTX
}

// NewSQLiteClientRepo creates a new SQLiteClientRepo. It accepts either a
// shared connection or an open transaction.
func NewSQLiteClientRepo(conn db.DBTX) *SQLiteClientRepo {
	return &SQLiteClientRepo{db: conn}
}

func (r *SQLiteClientRepo) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO clients (` + clientColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Company,
		c.Email,
		c.Phone,
		string(c.ContractType),
		string(c.Status),
		c.Currency,
		nullableFloatToValue(c.MonthlyFee),
		nullableFloatToValue(c.MonthlyBudget),
		c.Notes,
		string(c.BillingCycle),
		c.BillingDay,
		nullableTimeToString(c.NextInvoiceDate, dateLayout),
		nullableTimeToString(c.LastInvoicedAt, time.RFC3339),
		c.HoldedContactID,
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting client: %w", err)
	}
	return nil
}

func (r *SQLiteClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanClient(row)
}

func (r *SQLiteClientRepo) GetByName(ctx context.Context, name string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE LOWER(name) = LOWER(?)`
	row := r.db.QueryRowContext(ctx, query, name)
	return r.scanClient(row)
}

func (r *SQLiteClientRepo) List(ctx context.Context, includeFinished bool) ([]*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY name`
	if !includeFinished {
		query = `SELECT ` + clientColumns + ` FROM clients WHERE status != 'finished' ORDER BY name`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()
	return r.collectClients(rows)
}

func (r *SQLiteClientRepo) ListDueForInvoicing(ctx context.Context, by time.Time) ([]*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients
		WHERE status = 'active' AND next_invoice_date IS NOT NULL AND next_invoice_date <= ?
		ORDER BY next_invoice_date`
	rows, err := r.db.QueryContext(ctx, query, by.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing clients due for invoicing: %w", err)
	}
	defer rows.Close()
	return r.collectClients(rows)
}

func (r *SQLiteClientRepo) Update(ctx context.Context, c *domain.Client) error {
	query := `UPDATE clients SET name = ?, company = ?, email = ?, phone = ?, contract_type = ?,
		status = ?, currency = ?, monthly_fee = ?, monthly_budget = ?, notes = ?,
		billing_cycle = ?, billing_day = ?, next_invoice_date = ?, last_invoiced_at = ?,
		holded_contact_id = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		c.Name,
		c.Company,
		c.Email,
		c.Phone,
		string(c.ContractType),
		string(c.Status),
		c.Currency,
		nullableFloatToValue(c.MonthlyFee),
		nullableFloatToValue(c.MonthlyBudget),
		c.Notes,
		string(c.BillingCycle),
		c.BillingDay,
		nullableTimeToString(c.NextInvoiceDate, dateLayout),
		nullableTimeToString(c.LastInvoicedAt, time.RFC3339),
		c.HoldedContactID,
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}
	return nil
}

func (r *SQLiteClientRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}
	return nil
}

func (r *SQLiteClientRepo) collectClients(rows *sql.Rows) ([]*domain.Client, error) {
	var clients []*domain.Client
	for rows.Next() {
		c, err := r.scanClientFromRows(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clients: %w", err)
	}
	return clients, nil
}

func (r *SQLiteClientRepo) scanClient(row *sql.Row) (*domain.Client, error) {
	c, err := scanClientFields(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("client not found")
	}
	return c, err
}

func (r *SQLiteClientRepo) scanClientFromRows(rows *sql.Rows) (*domain.Client, error) {
	return scanClientFields(rows.Scan)
}

func scanClientFields(scan func(...any) error) (*domain.Client, error) {
	var c domain.Client
	var contractStr, statusStr, cycleStr, createdAtStr, updatedAtStr string
	var fee, budget sql.NullFloat64
	var nextInvoice, lastInvoiced sql.NullString

	err := scan(
		&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone,
		&contractStr, &statusStr, &c.Currency,
		&fee, &budget, &c.Notes,
		&cycleStr, &c.BillingDay,
		&nextInvoice, &lastInvoiced,
		&c.HoldedContactID,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning client: %w", err)
	}

	c.ContractType = domain.ContractType(contractStr)
	c.Status = domain.ClientStatus(statusStr)
	c.BillingCycle = domain.BillingCycle(cycleStr)
	c.MonthlyFee = nullableFloat(fee)
	c.MonthlyBudget = nullableFloat(budget)
	c.NextInvoiceDate = parseNullableTime(nextInvoice, dateLayout)
	c.LastInvoicedAt = parseNullableTime(lastInvoiced, time.RFC3339)

	if c.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if c.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &c, nil
}
