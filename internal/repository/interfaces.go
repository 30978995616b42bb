package repository

import (
	"context"
	"time"

	"github.com/danivilar/atelier/internal/domain"
)

type ClientRepo interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	GetByName(ctx context.Context, name string) (*domain.Client, error)
	List(ctx context.Context, includeFinished bool) ([]*domain.Client, error)
	ListDueForInvoicing(ctx context.Context, by time.Time) ([]*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id string) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, openOnly bool) ([]*domain.Project, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)
	CountCompletedSince(ctx context.Context, clientID string, since time.Time) (int, error)
	CountOverdue(ctx context.Context, clientID string, now time.Time) (int, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type TimeEntryRepo interface {
	Create(ctx context.Context, e *domain.TimeEntry) error
	GetByID(ctx context.Context, id string) (*domain.TimeEntry, error)
	ListByTask(ctx context.Context, taskID string) ([]*domain.TimeEntry, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.TimeEntry, error)
	SumMinutesByClient(ctx context.Context, clientID string, from, to time.Time) (int, error)
	Delete(ctx context.Context, id string) error
}

type LeadRepo interface {
	Create(ctx context.Context, l *domain.Lead) error
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	List(ctx context.Context, includeClosed bool) ([]*domain.Lead, error)
	ListFollowUpsDue(ctx context.Context, by time.Time) ([]*domain.Lead, error)
	Update(ctx context.Context, l *domain.Lead) error
	Delete(ctx context.Context, id string) error
}

type LeadActivityRepo interface {
	Create(ctx context.Context, a *domain.LeadActivity) error
	ListByLead(ctx context.Context, leadID string) ([]*domain.LeadActivity, error)
}

type CommunicationRepo interface {
	Create(ctx context.Context, c *domain.Communication) error
	ListByClient(ctx context.Context, clientID string) ([]*domain.Communication, error)
	LastByClient(ctx context.Context, clientID string) (*domain.Communication, error)
	CountFollowUpsOverdue(ctx context.Context, clientID string, now time.Time) (int, error)
	Delete(ctx context.Context, id string) error
}

type BillingEventRepo interface {
	Create(ctx context.Context, e *domain.BillingEvent) error
	ListByClient(ctx context.Context, clientID string) ([]*domain.BillingEvent, error)
}

type IncomeRepo interface {
	Create(ctx context.Context, i *domain.Income) error
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Income, error)
	MonthlyTotals(ctx context.Context, from, to time.Time) (map[string]float64, error)
	Delete(ctx context.Context, id string) error
}

type ExpenseRepo interface {
	Create(ctx context.Context, e *domain.Expense) error
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Expense, error)
	MonthlyTotals(ctx context.Context, from, to time.Time) (map[string]float64, error)
	RecurringMonthlyTotals(ctx context.Context) (map[string]float64, error)
	Delete(ctx context.Context, id string) error
}

type ForecastRepo interface {
	Upsert(ctx context.Context, f *domain.Forecast) error
	List(ctx context.Context) ([]*domain.Forecast, error)
	DeleteFrom(ctx context.Context, month time.Time) error
}

type DigestRepo interface {
	Create(ctx context.Context, d *domain.Digest) error
	GetByID(ctx context.Context, id string) (*domain.Digest, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Digest, error)
	CountSentSince(ctx context.Context, clientID string, since time.Time) (int, error)
	Update(ctx context.Context, d *domain.Digest) error
}

type ProposalRepo interface {
	Create(ctx context.Context, p *domain.Proposal) error
	GetByID(ctx context.Context, id string) (*domain.Proposal, error)
	List(ctx context.Context) ([]*domain.Proposal, error)
	ListOutstanding(ctx context.Context) ([]*domain.Proposal, error)
	Update(ctx context.Context, p *domain.Proposal) error
}
