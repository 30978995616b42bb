package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danivilar/atelier/internal/db"
	"github.com/danivilar/atelier/internal/domain"
)

// SQLiteBillingEventRepo implements BillingEventRepo using a SQLite database.
type SQLiteBillingEventRepo struct {
	db db.DBTX
}

// NewSQLiteBillingEventRepo creates a new SQLiteBillingEventRepo.
func NewSQLiteBillingEventRepo(conn db.DBTX) *SQLiteBillingEventRepo {
	return &SQLiteBillingEventRepo{db: conn}
}

func (r *SQLiteBillingEventRepo) Create(ctx context.Context, e *domain.BillingEvent) error {
	query := `INSERT INTO billing_events (id, client_id, type, amount, note, occurred_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.ClientID,
		string(e.Type),
		nullableFloatToValue(e.Amount),
		e.Note,
		e.OccurredAt.Format(time.RFC3339),
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting billing event: %w", err)
	}
	return nil
}

func (r *SQLiteBillingEventRepo) ListByClient(ctx context.Context, clientID string) ([]*domain.BillingEvent, error) {
	query := `SELECT id, client_id, type, amount, note, occurred_at, created_at
		FROM billing_events WHERE client_id = ? ORDER BY occurred_at DESC`
	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("listing billing events: %w", err)
	}
	defer rows.Close()

	var events []*domain.BillingEvent
	for rows.Next() {
		var e domain.BillingEvent
		var typeStr, occurredAtStr, createdAtStr string
		var amount sql.NullFloat64
		if err := rows.Scan(&e.ID, &e.ClientID, &typeStr, &amount, &e.Note, &occurredAtStr, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning billing event: %w", err)
		}
		e.Type = domain.BillingEventType(typeStr)
		e.Amount = nullableFloat(amount)
		if e.OccurredAt, err = time.Parse(time.RFC3339, occurredAtStr); err != nil {
			return nil, fmt.Errorf("parsing occurred_at: %w", err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating billing events: %w", err)
	}
	return events, nil
}
