package domain

import "time"

type Proposal struct {
	ID          string
	LeadID      string // optional
	ClientID    string // optional
	Title       string
	CompanyName string
	ServiceType ServiceType
	Status      ProposalStatus
	Amount      *float64
	ValidUntil  *time.Time
	SentAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Expired reports whether an outstanding proposal passed its validity
// date without a decision.
func (p *Proposal) Expired(now time.Time) bool {
	if p.ValidUntil == nil {
		return false
	}
	if p.Status != ProposalSent {
		return false
	}
	return p.ValidUntil.Before(now)
}
