package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/danivilar/atelier/internal/db"
	"github.com/danivilar/atelier/internal/domain"
)

// NewTestDB opens a migrated in-memory SQLite database and registers
// its teardown with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(":memory:")
	require.NoError(t, err, "opening test database")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW wraps the test database in the production UnitOfWork.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// Client options
type ClientOption func(*domain.Client)

func WithClientStatus(s domain.ClientStatus) ClientOption {
	return func(c *domain.Client) {
		c.Status = s
	}
}

func WithMonthlyFee(fee float64) ClientOption {
	return func(c *domain.Client) {
		c.MonthlyFee = &fee
	}
}

func WithBillingCycle(cycle domain.BillingCycle, day int) ClientOption {
	return func(c *domain.Client) {
		c.BillingCycle = cycle
		c.BillingDay = day
	}
}

func WithNextInvoiceDate(d time.Time) ClientOption {
	return func(c *domain.Client) {
		c.NextInvoiceDate = &d
	}
}

func NewTestClient(name string, opts ...ClientOption) *domain.Client {
	now := time.Now().UTC()
	c := &domain.Client{
		ID:           uuid.New().String(),
		Name:         name,
		ContractType: domain.ContractMonthly,
		Status:       domain.ClientActive,
		Currency:     "EUR",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithProjectDates(start, target time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = &start
		p.TargetEndDate = &target
	}
}

func NewTestProject(clientID, name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		Name:      name,
		Status:    domain.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithPriority(p domain.TaskPriority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = &d
	}
}

func WithProject(projectID string) TaskOption {
	return func(t *domain.Task) {
		t.ProjectID = projectID
	}
}

func NewTestTask(clientID, title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		Title:     title,
		Status:    domain.TaskPending,
		Priority:  domain.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Lead options
type LeadOption func(*domain.Lead)

func WithLeadStatus(s domain.LeadStatus) LeadOption {
	return func(l *domain.Lead) {
		l.Status = s
	}
}

func WithEstimatedValue(v float64) LeadOption {
	return func(l *domain.Lead) {
		l.EstimatedValue = &v
	}
}

func NewTestLead(name string, opts ...LeadOption) *domain.Lead {
	now := time.Now().UTC()
	l := &domain.Lead{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    domain.LeadNew,
		Source:    domain.SourceOther,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func NewTestTimeEntry(taskID string, minutes int, date time.Time) *domain.TimeEntry {
	return &domain.TimeEntry{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		Date:      date,
		Minutes:   minutes,
		Billable:  true,
		CreatedAt: time.Now().UTC(),
	}
}

func NewTestIncome(amount float64, date time.Time) *domain.Income {
	return &domain.Income{
		ID:        uuid.New().String(),
		Date:      date,
		Amount:    amount,
		Type:      domain.IncomeOneTime,
		CreatedAt: time.Now().UTC(),
	}
}

type ExpenseOption func(*domain.Expense)

func WithRecurring() ExpenseOption {
	return func(e *domain.Expense) {
		e.IsRecurring = true
	}
}

func NewTestExpense(amount float64, date time.Time, opts ...ExpenseOption) *domain.Expense {
	e := &domain.Expense{
		ID:        uuid.New().String(),
		Date:      date,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
