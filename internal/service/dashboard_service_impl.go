package service

import (
	"context"
	"time"

	"github.com/danivilar/atelier/internal/domain"
	"github.com/danivilar/atelier/internal/repository"
)

type dashboardService struct {
	clients  repository.ClientRepo
	projects repository.ProjectRepo
	tasks    repository.TaskRepo
	leads    repository.LeadRepo
	income   repository.IncomeRepo
	expenses repository.ExpenseRepo
	health   HealthService
}

func NewDashboardService(clients repository.ClientRepo, projects repository.ProjectRepo,
	tasks repository.TaskRepo, leads repository.LeadRepo,
	income repository.IncomeRepo, expenses repository.ExpenseRepo,
	health HealthService) DashboardService {
	return &dashboardService{
		clients: clients, projects: projects, tasks: tasks, leads: leads,
		income: income, expenses: expenses, health: health,
	}
}

func (s *dashboardService) Summary(ctx context.Context, now time.Time) (*DashboardSummary, error) {
	summary := &DashboardSummary{}

	clients, err := s.clients.List(ctx, false)
	if err != nil {
		return nil, err
	}
	for _, c := range clients {
		if c.Status == domain.ClientActive {
			summary.ActiveClients++
		}
	}

	projects, err := s.projects.List(ctx, true)
	if err != nil {
		return nil, err
	}
	summary.OpenProjects = len(projects)

	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		switch t.Status {
		case domain.TaskPending:
			summary.PendingTasks++
		case domain.TaskInProgress:
			summary.InProgressTasks++
		}
		if t.Overdue(now) {
			summary.OverdueTasks++
		}
	}

	leads, err := s.leads.List(ctx, false)
	if err != nil {
		return nil, err
	}
	summary.OpenLeads = len(leads)

	followUps, err := s.leads.ListFollowUpsDue(ctx, now)
	if err != nil {
		return nil, err
	}
	summary.FollowUpsDue = len(followUps)

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	incomeTotals, err := s.income.MonthlyTotals(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	expenseTotals, err := s.expenses.MonthlyTotals(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	key := domain.MonthKey(now)
	summary.MonthIncome = incomeTotals[key]
	summary.MonthExpenses = expenseTotals[key]

	due, err := s.clients.ListDueForInvoicing(ctx, now)
	if err != nil {
		return nil, err
	}
	summary.ClientsDueInvoice = len(due)

	scores, err := s.health.ScoreAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, sc := range scores {
		if sc.Risk == domain.RiskAtRisk {
			summary.AtRiskClients = append(summary.AtRiskClients, sc)
		}
	}
	return summary, nil
}
