package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danivilar/atelier/internal/db"
	"github.com/danivilar/atelier/internal/domain"
)

const digestColumns = `id, client_id, period_start, period_end, status, body, sent_at, created_at, updated_at`

// SQLiteDigestRepo implements DigestRepo using a SQLite database.
type SQLiteDigestRepo struct {
	db db.DBTX
}

// NewSQLiteDigestRepo creates a new SQLiteDigestRepo.
func NewSQLiteDigestRepo(conn db.DBTX) *SQLiteDigestRepo {
	return &SQLiteDigestRepo{db: conn}
}

func (r *SQLiteDigestRepo) Create(ctx context.Context, d *domain.Digest) error {
	query := `INSERT INTO digests (` + digestColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.ClientID,
		d.PeriodStart.Format(dateLayout),
		d.PeriodEnd.Format(dateLayout),
		string(d.Status),
		d.Body,
		nullableTimeToString(d.SentAt, time.RFC3339),
		d.CreatedAt.Format(time.RFC3339),
		d.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting digest: %w", err)
	}
	return nil
}

func (r *SQLiteDigestRepo) GetByID(ctx context.Context, id string) (*domain.Digest, error) {
	query := `SELECT ` + digestColumns + ` FROM digests WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	d, err := scanDigestFields(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("digest not found")
	}
	return d, err
}

func (r *SQLiteDigestRepo) ListByClient(ctx context.Context, clientID string) ([]*domain.Digest, error) {
	query := `SELECT ` + digestColumns + ` FROM digests
		WHERE client_id = ? ORDER BY period_start DESC`
	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("listing digests: %w", err)
	}
	defer rows.Close()

	var digests []*domain.Digest
	for rows.Next() {
		d, err := scanDigestFields(rows.Scan)
		if err != nil {
			return nil, err
		}
		digests = append(digests, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating digests: %w", err)
	}
	return digests, nil
}

func (r *SQLiteDigestRepo) CountSentSince(ctx context.Context, clientID string, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM digests
		WHERE client_id = ? AND status = 'sent' AND sent_at >= ?`
	var n int
	err := r.db.QueryRowContext(ctx, query, clientID, since.UTC().Format(time.RFC3339)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting sent digests: %w", err)
	}
	return n, nil
}

func (r *SQLiteDigestRepo) Update(ctx context.Context, d *domain.Digest) error {
	query := `UPDATE digests SET period_start = ?, period_end = ?, status = ?, body = ?,
		sent_at = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		d.PeriodStart.Format(dateLayout),
		d.PeriodEnd.Format(dateLayout),
		string(d.Status),
		d.Body,
		nullableTimeToString(d.SentAt, time.RFC3339),
		d.UpdatedAt.Format(time.RFC3339),
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating digest: %w", err)
	}
	return nil
}

func scanDigestFields(scan func(...any) error) (*domain.Digest, error) {
	var d domain.Digest
	var startStr, endStr, statusStr, createdAtStr, updatedAtStr string
	var sentAt sql.NullString

	err := scan(
		&d.ID, &d.ClientID, &startStr, &endStr, &statusStr, &d.Body,
		&sentAt, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning digest: %w", err)
	}

	d.Status = domain.DigestStatus(statusStr)
	d.SentAt = parseNullableTime(sentAt, time.RFC3339)

	if d.PeriodStart, err = time.Parse(dateLayout, startStr); err != nil {
		return nil, fmt.Errorf("parsing period_start: %w", err)
	}
	if d.PeriodEnd, err = time.Parse(dateLayout, endStr); err != nil {
		return nil, fmt.Errorf("parsing period_end: %w", err)
	}
	if d.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if d.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &d, nil
}
