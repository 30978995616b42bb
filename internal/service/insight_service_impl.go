package service

import (
	"context"
	"time"

	"github.com/danivilar/atelier/internal/domain"
	"github.com/danivilar/atelier/internal/insights"
	"github.com/danivilar/atelier/internal/repository"
)

type insightService struct {
	clients    repository.ClientRepo
	tasks      repository.TaskRepo
	comms      repository.CommunicationRepo
	thresholds insights.Thresholds
}

func NewInsightService(clients repository.ClientRepo, tasks repository.TaskRepo,
	comms repository.CommunicationRepo, thresholds insights.Thresholds) InsightService {
	return &insightService{clients: clients, tasks: tasks, comms: comms, thresholds: thresholds}
}

// Generate assembles the snapshot from storage and hands it to the
// rules engine.
func (s *insightService) Generate(ctx context.Context, now time.Time) ([]insights.Insight, error) {
	all, err := s.clients.List(ctx, false)
	if err != nil {
		return nil, err
	}
	active := make([]*domain.Client, 0, len(all))
	for _, c := range all {
		if c.Status == domain.ClientActive {
			active = append(active, c)
		}
	}

	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}

	var comms []*domain.Communication
	for _, c := range active {
		list, err := s.comms.ListByClient(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		comms = append(comms, list...)
	}

	return insights.Generate(insights.Snapshot{
		Now:            now,
		Clients:        active,
		Tasks:          tasks,
		Communications: comms,
	}, s.thresholds), nil
}
