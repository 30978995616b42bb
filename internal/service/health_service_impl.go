package service

import (
	"context"
	"sort"
	"time"

	"github.com/danivilar/atelier/internal/domain"
	"github.com/danivilar/atelier/internal/health"
	"github.com/danivilar/atelier/internal/repository"
)

type healthService struct {
	clients    repository.ClientRepo
	tasks      repository.TaskRepo
	comms      repository.CommunicationRepo
	digests    repository.DigestRepo
	entries    repository.TimeEntryRepo
	hourlyCost float64 // 0 falls back to health.DefaultHourlyCost
}

func NewHealthService(clients repository.ClientRepo, tasks repository.TaskRepo,
	comms repository.CommunicationRepo, digests repository.DigestRepo,
	entries repository.TimeEntryRepo, hourlyCost float64) HealthService {
	return &healthService{
		clients: clients, tasks: tasks, comms: comms,
		digests: digests, entries: entries, hourlyCost: hourlyCost,
	}
}

func (s *healthService) ScoreClient(ctx context.Context, clientID string) (*health.Score, error) {
	c, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return s.score(ctx, c, time.Now().UTC())
}

// ScoreAll scores every non-finished client, worst first.
func (s *healthService) ScoreAll(ctx context.Context) ([]*health.Score, error) {
	clients, err := s.clients.List(ctx, false)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	scores := make([]*health.Score, 0, len(clients))
	for _, c := range clients {
		score, err := s.score(ctx, c, now)
		if err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].Total < scores[j].Total })
	return scores, nil
}

func (s *healthService) score(ctx context.Context, c *domain.Client, now time.Time) (*health.Score, error) {
	snap := health.Snapshot{
		ClientID:      c.ID,
		ClientName:    c.Name,
		Now:           now,
		MonthlyBudget: c.MonthlyBudget,
		HourlyCost:    s.hourlyCost,
	}

	last, err := s.comms.LastByClient(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if last != nil {
		snap.LastContact = &last.OccurredAt
	}

	tasks, err := s.tasks.ListByClient(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	snap.TotalTasks = len(tasks)
	for _, t := range tasks {
		if t.Status == domain.TaskCompleted {
			snap.CompletedTasks++
		}
		if t.Overdue(now) {
			snap.OverdueTasks++
		}
	}

	if snap.DigestsLastFourWeeks, err = s.digests.CountSentSince(ctx, c.ID, now.AddDate(0, 0, -28)); err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if snap.TrackedMinThisMonth, err = s.entries.SumMinutesByClient(ctx, c.ID, monthStart, now); err != nil {
		return nil, err
	}

	if snap.OverdueFollowUps, err = s.comms.CountFollowUpsOverdue(ctx, c.ID, now); err != nil {
		return nil, err
	}

	score := health.Compute(snap)
	return &score, nil
}
