package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danivilar/atelier/internal/domain"
	"github.com/danivilar/atelier/internal/repository"
)

type digestService struct {
	digests repository.DigestRepo
	clients repository.ClientRepo
	tasks   repository.TaskRepo
	entries repository.TimeEntryRepo
}

func NewDigestService(digests repository.DigestRepo, clients repository.ClientRepo,
	tasks repository.TaskRepo, entries repository.TimeEntryRepo) DigestService {
	return &digestService{digests: digests, clients: clients, tasks: tasks, entries: entries}
}

// GenerateDraft builds a draft digest for the week containing weekOf.
// Weeks start Monday. The body summarizes completed tasks and tracked
// time; the user edits before sending.
func (s *digestService) GenerateDraft(ctx context.Context, clientID string, weekOf time.Time) (*domain.Digest, error) {
	c, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	start := startOfWeek(weekOf)
	end := start.AddDate(0, 0, 6)

	tasks, err := s.tasks.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	var completed []*domain.Task
	for _, t := range tasks {
		if t.CompletedAt == nil {
			continue
		}
		d := t.CompletedAt.UTC()
		if !d.Before(start) && d.Before(end.AddDate(0, 0, 1)) {
			completed = append(completed, t)
		}
	}

	minutes, err := s.entries.SumMinutesByClient(ctx, clientID, start, end)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Resumen semanal para %s (%s a %s)\n\n",
		c.Name, start.Format("02/01/2006"), end.Format("02/01/2006"))
	if len(completed) == 0 {
		b.WriteString("Sin tareas completadas esta semana.\n")
	} else {
		fmt.Fprintf(&b, "Tareas completadas (%d):\n", len(completed))
		for _, t := range completed {
			fmt.Fprintf(&b, "  - %s\n", t.Title)
		}
	}
	fmt.Fprintf(&b, "\nTiempo dedicado: %.1f horas\n", float64(minutes)/60)

	now := time.Now().UTC()
	d := &domain.Digest{
		ID:          uuid.New().String(),
		ClientID:    clientID,
		PeriodStart: start,
		PeriodEnd:   end,
		Status:      domain.DigestDraft,
		Body:        b.String(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.digests.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *digestService) MarkReviewed(ctx context.Context, id string) error {
	d, err := s.digests.GetByID(ctx, id)
	if err != nil {
		return err
	}
	d.Status = domain.DigestReviewed
	d.UpdatedAt = time.Now().UTC()
	return s.digests.Update(ctx, d)
}

func (s *digestService) MarkSent(ctx context.Context, id string) error {
	d, err := s.digests.GetByID(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	d.Status = domain.DigestSent
	d.SentAt = &now
	d.UpdatedAt = now
	return s.digests.Update(ctx, d)
}

func (s *digestService) ListByClient(ctx context.Context, clientID string) ([]*domain.Digest, error) {
	return s.digests.ListByClient(ctx, clientID)
}

// startOfWeek returns the Monday of t's week, at midnight UTC.
func startOfWeek(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
