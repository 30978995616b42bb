package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danivilar/atelier/internal/db"
	"github.com/danivilar/atelier/internal/domain"
	"github.com/danivilar/atelier/internal/repository"
)

type leadService struct {
	leads      repository.LeadRepo
	activities repository.LeadActivityRepo
	uow        db.UnitOfWork
}

func NewLeadService(leads repository.LeadRepo, activities repository.LeadActivityRepo, uow db.UnitOfWork) LeadService {
	return &leadService{leads: leads, activities: activities, uow: uow}
}

func (s *leadService) Create(ctx context.Context, l *domain.Lead) error {
	if l.Name == "" {
		return fmt.Errorf("lead name is required")
	}
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now
	if l.Status == "" {
		l.Status = domain.LeadNew
	}
	if l.Source == "" {
		l.Source = domain.SourceOther
	}
	return s.leads.Create(ctx, l)
}

func (s *leadService) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	return s.leads.GetByID(ctx, id)
}

func (s *leadService) List(ctx context.Context, includeClosed bool) ([]*domain.Lead, error) {
	return s.leads.List(ctx, includeClosed)
}

func (s *leadService) ListFollowUpsDue(ctx context.Context, by time.Time) ([]*domain.Lead, error) {
	return s.leads.ListFollowUpsDue(ctx, by)
}

// ChangeStatus moves a lead through the pipeline and records the change
// as an activity in the same transaction.
func (s *leadService) ChangeStatus(ctx context.Context, id string, to domain.LeadStatus) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLeads := repository.NewSQLiteLeadRepo(tx)
		txActivities := repository.NewSQLiteLeadActivityRepo(tx)

		l, err := txLeads.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if l.Status == to {
			return nil
		}
		from := l.Status
		now := time.Now().UTC()
		l.Status = to
		l.UpdatedAt = now
		if err := txLeads.Update(ctx, l); err != nil {
			return err
		}
		return txActivities.Create(ctx, &domain.LeadActivity{
			ID:        uuid.New().String(),
			LeadID:    l.ID,
			Type:      domain.ActivityStatusChange,
			Body:      fmt.Sprintf("%s -> %s", from, to),
			CreatedAt: now,
		})
	})
}

func (s *leadService) AddActivity(ctx context.Context, a *domain.LeadActivity) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	return s.activities.Create(ctx, a)
}

func (s *leadService) ListActivities(ctx context.Context, leadID string) ([]*domain.LeadActivity, error) {
	return s.activities.ListByLead(ctx, leadID)
}

// Convert marks a lead won and creates a client from it, linking the two.
// Everything happens in one transaction.
func (s *leadService) Convert(ctx context.Context, leadID string) (*domain.Client, error) {
	var client *domain.Client
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLeads := repository.NewSQLiteLeadRepo(tx)
		txActivities := repository.NewSQLiteLeadActivityRepo(tx)
		txClients := repository.NewSQLiteClientRepo(tx)

		l, err := txLeads.GetByID(ctx, leadID)
		if err != nil {
			return err
		}
		if l.ConvertedClientID != "" {
			return fmt.Errorf("lead already converted")
		}

		now := time.Now().UTC()
		client = &domain.Client{
			ID:           uuid.New().String(),
			Name:         l.Name,
			Company:      l.Company,
			Email:        l.Email,
			ContractType: domain.ContractMonthly,
			Status:       domain.ClientActive,
			Currency:     "EUR",
			Notes:        l.Notes,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := txClients.Create(ctx, client); err != nil {
			return err
		}

		from := l.Status
		l.Status = domain.LeadWon
		l.ConvertedClientID = client.ID
		l.UpdatedAt = now
		if err := txLeads.Update(ctx, l); err != nil {
			return err
		}
		return txActivities.Create(ctx, &domain.LeadActivity{
			ID:        uuid.New().String(),
			LeadID:    l.ID,
			Type:      domain.ActivityStatusChange,
			Body:      fmt.Sprintf("%s -> %s (converted)", from, domain.LeadWon),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (s *leadService) Update(ctx context.Context, l *domain.Lead) error {
	l.UpdatedAt = time.Now().UTC()
	return s.leads.Update(ctx, l)
}
