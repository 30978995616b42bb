package domain

import "time"

type Project struct {
	ID            string
	ClientID      string
	Name          string
	Description   string
	Type          string // seo_audit, content_strategy, linkbuilding, technical_seo, custom
	Status        ProjectStatus
	StartDate     *time.Time
	TargetEndDate *time.Time
	ActualEndDate *time.Time
	ProgressPct   int
	BudgetHours   *float64
	IsRecurring   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Overdue reports whether the project missed its target end date and is
// still open.
func (p *Project) Overdue(now time.Time) bool {
	if p.TargetEndDate == nil {
		return false
	}
	if p.Status == ProjectCompleted || p.Status == ProjectCancelled {
		return false
	}
	return p.TargetEndDate.Before(now)
}

// Open reports whether the project still accepts work.
func (p *Project) Open() bool {
	return p.Status == ProjectPlanning || p.Status == ProjectActive
}
