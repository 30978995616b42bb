package domain

import "time"

// Digest is a weekly client-facing summary of work done.
type Digest struct {
	ID          string
	ClientID    string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Status      DigestStatus
	Body        string
	SentAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Covers reports whether the digest period contains the given date.
func (d *Digest) Covers(t time.Time) bool {
	return !t.Before(d.PeriodStart) && !t.After(d.PeriodEnd)
}
