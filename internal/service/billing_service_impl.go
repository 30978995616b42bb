package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/danivilar/atelier/internal/db"
	"github.com/danivilar/atelier/internal/domain"
	"github.com/danivilar/atelier/internal/repository"
)

type billingService struct {
	clients repository.ClientRepo
	events  repository.BillingEventRepo
	uow     db.UnitOfWork
}

func NewBillingService(clients repository.ClientRepo, events repository.BillingEventRepo, uow db.UnitOfWork) BillingService {
	return &billingService{clients: clients, events: events, uow: uow}
}

// RecordInvoiceSent logs the event and rolls the client's billing
// schedule forward one cycle, atomically.
func (s *billingService) RecordInvoiceSent(ctx context.Context, clientID string, amount float64, note string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txClients := repository.NewSQLiteClientRepo(tx)
		txEvents := repository.NewSQLiteBillingEventRepo(tx)

		c, err := txClients.GetByID(ctx, clientID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		c.LastInvoicedAt = &now
		if c.BillingCycle.Recurs() && c.NextInvoiceDate != nil {
			next := c.BillingCycle.Advance(*c.NextInvoiceDate)
			c.NextInvoiceDate = &next
		} else if !c.BillingCycle.Recurs() {
			c.NextInvoiceDate = nil
		}
		c.UpdatedAt = now
		if err := txClients.Update(ctx, c); err != nil {
			return err
		}

		return txEvents.Create(ctx, &domain.BillingEvent{
			ID:         uuid.New().String(),
			ClientID:   clientID,
			Type:       domain.EventInvoiceSent,
			Amount:     &amount,
			Note:       note,
			OccurredAt: now,
			CreatedAt:  now,
		})
	})
}

func (s *billingService) RecordPayment(ctx context.Context, clientID string, amount float64, note string) error {
	now := time.Now().UTC()
	return s.events.Create(ctx, &domain.BillingEvent{
		ID:         uuid.New().String(),
		ClientID:   clientID,
		Type:       domain.EventPaymentReceived,
		Amount:     &amount,
		Note:       note,
		OccurredAt: now,
		CreatedAt:  now,
	})
}

func (s *billingService) History(ctx context.Context, clientID string) ([]*domain.BillingEvent, error) {
	return s.events.ListByClient(ctx, clientID)
}

func (s *billingService) DueForInvoicing(ctx context.Context, by time.Time) ([]*domain.Client, error) {
	return s.clients.ListDueForInvoicing(ctx, by)
}
