package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danivilar/atelier/internal/db"
	"github.com/danivilar/atelier/internal/domain"
)

const communicationColumns = `id, client_id, channel, summary, occurred_at,
		requires_follow_up, follow_up_date, created_at`

// SQLiteCommunicationRepo implements CommunicationRepo using a SQLite database.
type SQLiteCommunicationRepo struct {
	db db.DBTX
}

// NewSQLiteCommunicationRepo creates a new SQLiteCommunicationRepo.
func NewSQLiteCommunicationRepo(conn db.DBTX) *SQLiteCommunicationRepo {
	return &SQLiteCommunicationRepo{db: conn}
}

func (r *SQLiteCommunicationRepo) Create(ctx context.Context, c *domain.Communication) error {
	query := `INSERT INTO communications (` + communicationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.ClientID,
		string(c.Channel),
		c.Summary,
		c.OccurredAt.Format(time.RFC3339),
		boolToInt(c.RequiresFollowUp),
		nullableTimeToString(c.FollowUpDate, dateLayout),
		c.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting communication: %w", err)
	}
	return nil
}

func (r *SQLiteCommunicationRepo) ListByClient(ctx context.Context, clientID string) ([]*domain.Communication, error) {
	query := `SELECT ` + communicationColumns + ` FROM communications
		WHERE client_id = ? ORDER BY occurred_at DESC`
	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("listing communications: %w", err)
	}
	defer rows.Close()

	var comms []*domain.Communication
	for rows.Next() {
		c, err := scanCommunicationFields(rows.Scan)
		if err != nil {
			return nil, err
		}
		comms = append(comms, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating communications: %w", err)
	}
	return comms, nil
}

func (r *SQLiteCommunicationRepo) LastByClient(ctx context.Context, clientID string) (*domain.Communication, error) {
	query := `SELECT ` + communicationColumns + ` FROM communications
		WHERE client_id = ? ORDER BY occurred_at DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, clientID)
	c, err := scanCommunicationFields(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func (r *SQLiteCommunicationRepo) CountFollowUpsOverdue(ctx context.Context, clientID string, now time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM communications
		WHERE client_id = ? AND requires_follow_up = 1
		AND follow_up_date IS NOT NULL AND follow_up_date < ?`
	var n int
	err := r.db.QueryRowContext(ctx, query, clientID, now.UTC().Format(dateLayout)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting overdue follow-ups: %w", err)
	}
	return n, nil
}

func (r *SQLiteCommunicationRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM communications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting communication: %w", err)
	}
	return nil
}

func scanCommunicationFields(scan func(...any) error) (*domain.Communication, error) {
	var c domain.Communication
	var channelStr, occurredAtStr, createdAtStr string
	var requiresFollowUp int
	var followUpDate sql.NullString

	err := scan(
		&c.ID, &c.ClientID, &channelStr, &c.Summary, &occurredAtStr,
		&requiresFollowUp, &followUpDate, &createdAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning communication: %w", err)
	}

	c.Channel = domain.CommunicationChannel(channelStr)
	c.RequiresFollowUp = intToBool(requiresFollowUp)
	c.FollowUpDate = parseNullableTime(followUpDate, dateLayout)

	if c.OccurredAt, err = time.Parse(time.RFC3339, occurredAtStr); err != nil {
		return nil, fmt.Errorf("parsing occurred_at: %w", err)
	}
	if c.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &c, nil
}
