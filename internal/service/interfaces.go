package service

import (
	"context"
	"time"

	"github.com/danivilar/atelier/internal/domain"
	"github.com/danivilar/atelier/internal/health"
	"github.com/danivilar/atelier/internal/importer"
	"github.com/danivilar/atelier/internal/insights"
	"github.com/danivilar/atelier/internal/kanban"
)

type ClientService interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	Resolve(ctx context.Context, ref string) (*domain.Client, error)
	List(ctx context.Context, includeFinished bool) ([]*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id string) error

	// LogContact records a touchpoint with the client; it feeds the
	// communication and follow-up health factors.
	LogContact(ctx context.Context, comm *domain.Communication) error
	ListContacts(ctx context.Context, clientID string) ([]*domain.Communication, error)
}

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, openOnly bool) ([]*domain.Project, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Complete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// Board groups tasks by status in canonical column order.
type Board struct {
	Columns map[domain.TaskStatus][]*domain.Task
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Task, error)
	Board(ctx context.Context, clientID string) (*Board, error)
	ApplyMove(ctx context.Context, mv kanban.Move) error
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type TimeEntryService interface {
	Log(ctx context.Context, e *domain.TimeEntry) error
	ListByTask(ctx context.Context, taskID string) ([]*domain.TimeEntry, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.TimeEntry, error)
	Delete(ctx context.Context, id string) error
}

type LeadService interface {
	Create(ctx context.Context, l *domain.Lead) error
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	List(ctx context.Context, includeClosed bool) ([]*domain.Lead, error)
	ListFollowUpsDue(ctx context.Context, by time.Time) ([]*domain.Lead, error)
	ChangeStatus(ctx context.Context, id string, to domain.LeadStatus) error
	AddActivity(ctx context.Context, a *domain.LeadActivity) error
	ListActivities(ctx context.Context, leadID string) ([]*domain.LeadActivity, error)
	Convert(ctx context.Context, leadID string) (*domain.Client, error)
	Update(ctx context.Context, l *domain.Lead) error
}

type BillingService interface {
	RecordInvoiceSent(ctx context.Context, clientID string, amount float64, note string) error
	RecordPayment(ctx context.Context, clientID string, amount float64, note string) error
	History(ctx context.Context, clientID string) ([]*domain.BillingEvent, error)
	DueForInvoicing(ctx context.Context, by time.Time) ([]*domain.Client, error)
}

type FinanceService interface {
	AddIncome(ctx context.Context, i *domain.Income) error
	AddExpense(ctx context.Context, e *domain.Expense) error
	MonthlySummaries(ctx context.Context, from, to time.Time) ([]domain.MonthlySummary, error)
	ImportBank(ctx context.Context, result *importer.Result) (added int, err error)
}

type ForecastService interface {
	Generate(ctx context.Context, months int) ([]*domain.Forecast, error)
	List(ctx context.Context) ([]*domain.Forecast, error)
}

type HealthService interface {
	ScoreClient(ctx context.Context, clientID string) (*health.Score, error)
	ScoreAll(ctx context.Context) ([]*health.Score, error)
}

type DigestService interface {
	GenerateDraft(ctx context.Context, clientID string, weekOf time.Time) (*domain.Digest, error)
	MarkReviewed(ctx context.Context, id string) error
	MarkSent(ctx context.Context, id string) error
	ListByClient(ctx context.Context, clientID string) ([]*domain.Digest, error)
}

type ProposalService interface {
	Create(ctx context.Context, p *domain.Proposal) error
	Send(ctx context.Context, id string) error
	Accept(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
	ExpireOutstanding(ctx context.Context, now time.Time) (int, error)
	List(ctx context.Context) ([]*domain.Proposal, error)
}

// SyncService pushes local billing data to the external invoicing
// system. It is only wired when a Holded API key is configured.
type SyncService interface {
	// SyncContacts mirrors active clients as Holded contacts and
	// returns how many were synced.
	SyncContacts(ctx context.Context) (int, error)

	// PushInvoiceDraft opens a draft invoice for the client in Holded
	// and returns the draft's ID. The client is contact-synced first
	// when it has no Holded linkage yet.
	PushInvoiceDraft(ctx context.Context, clientID string, amount float64, concept string) (string, error)
}

// InsightService runs the rules-based alert engine over current data.
type InsightService interface {
	// Generate evaluates every rule and returns findings ordered by
	// priority, highest first.
	Generate(ctx context.Context, now time.Time) ([]insights.Insight, error)
}

// DashboardSummary is the aggregated snapshot the dashboard view renders.
type DashboardSummary struct {
	ActiveClients     int
	OpenProjects      int
	PendingTasks      int
	InProgressTasks   int
	OverdueTasks      int
	OpenLeads         int
	FollowUpsDue      int
	MonthIncome       float64
	MonthExpenses     float64
	ClientsDueInvoice int
	AtRiskClients     []*health.Score
}

type DashboardService interface {
	Summary(ctx context.Context, now time.Time) (*DashboardSummary, error)
}
