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

type clientService struct {
	clients repository.ClientRepo
	comms   repository.CommunicationRepo
}

func NewClientService(clients repository.ClientRepo, comms repository.CommunicationRepo) ClientService {
	return &clientService{clients: clients, comms: comms}
}

func (s *clientService) Create(ctx context.Context, c *domain.Client) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = domain.ClientActive
	}
	if c.Currency == "" {
		c.Currency = "EUR"
	}
	if c.BillingCycle.Recurs() && c.NextInvoiceDate == nil && c.BillingDay > 0 {
		next := nextBillingDate(now, c.BillingDay)
		c.NextInvoiceDate = &next
	}
	return s.clients.Create(ctx, c)
}

func (s *clientService) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	return s.clients.GetByID(ctx, id)
}

// Resolve accepts a client ID, a unique ID prefix or a client name.
func (s *clientService) Resolve(ctx context.Context, ref string) (*domain.Client, error) {
	if c, err := s.clients.GetByID(ctx, ref); err == nil {
		return c, nil
	}
	if c, err := s.clients.GetByName(ctx, ref); err == nil {
		return c, nil
	}

	clients, err := s.clients.List(ctx, true)
	if err != nil {
		return nil, err
	}
	var matches []*domain.Client
	for _, c := range clients {
		if strings.HasPrefix(c.ID, ref) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("client not found: %q", ref)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("client %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func (s *clientService) List(ctx context.Context, includeFinished bool) ([]*domain.Client, error) {
	return s.clients.List(ctx, includeFinished)
}

func (s *clientService) Update(ctx context.Context, c *domain.Client) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()
	return s.clients.Update(ctx, c)
}

func (s *clientService) Delete(ctx context.Context, id string) error {
	return s.clients.Delete(ctx, id)
}

func (s *clientService) LogContact(ctx context.Context, comm *domain.Communication) error {
	if _, err := s.clients.GetByID(ctx, comm.ClientID); err != nil {
		return err
	}
	if comm.Summary == "" {
		return fmt.Errorf("contact summary is required")
	}
	if comm.ID == "" {
		comm.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if comm.OccurredAt.IsZero() {
		comm.OccurredAt = now
	}
	if comm.Channel == "" {
		comm.Channel = domain.ChannelOther
	}
	comm.CreatedAt = now
	return s.comms.Create(ctx, comm)
}

func (s *clientService) ListContacts(ctx context.Context, clientID string) ([]*domain.Communication, error) {
	return s.comms.ListByClient(ctx, clientID)
}

// nextBillingDate returns the first occurrence of the billing day on or
// after now.
func nextBillingDate(now time.Time, day int) time.Time {
	candidate := time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, time.UTC)
	if candidate.Before(now.Truncate(24 * time.Hour)) {
		candidate = candidate.AddDate(0, 1, 0)
	}
	return candidate
}
