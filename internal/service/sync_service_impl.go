package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/danivilar/atelier/internal/domain"
	"github.com/danivilar/atelier/internal/holded"
	"github.com/danivilar/atelier/internal/repository"
)

type syncService struct {
	clients repository.ClientRepo
	holded  holded.Client
	log     *logrus.Logger
}

func NewSyncService(clients repository.ClientRepo, hc holded.Client, log *logrus.Logger) SyncService {
	return &syncService{clients: clients, holded: hc, log: log}
}

func (s *syncService) SyncContacts(ctx context.Context) (int, error) {
	clients, err := s.clients.List(ctx, false)
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, c := range clients {
		if c.Status != domain.ClientActive {
			continue
		}
		contactID, err := s.holded.SyncContact(ctx, c)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"client": c.Name,
				"error":  err.Error(),
			}).Warn("contact sync failed")
			return synced, fmt.Errorf("syncing contact for %s: %w", c.Name, err)
		}
		if contactID != "" && contactID != c.HoldedContactID {
			c.HoldedContactID = contactID
			c.UpdatedAt = time.Now().UTC()
			if err := s.clients.Update(ctx, c); err != nil {
				return synced, err
			}
		}
		synced++
	}

	s.log.WithField("synced", synced).Info("contact sync complete")
	return synced, nil
}

func (s *syncService) PushInvoiceDraft(ctx context.Context, clientID string, amount float64, concept string) (string, error) {
	c, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return "", err
	}

	if c.HoldedContactID == "" {
		contactID, err := s.holded.SyncContact(ctx, c)
		if err != nil {
			return "", fmt.Errorf("syncing contact before invoicing: %w", err)
		}
		c.HoldedContactID = contactID
		c.UpdatedAt = time.Now().UTC()
		if err := s.clients.Update(ctx, c); err != nil {
			return "", err
		}
	}

	draftID, err := s.holded.CreateInvoiceDraft(ctx, holded.InvoiceDraft{
		ContactID: c.HoldedContactID,
		Date:      time.Now().UTC().Format("2006-01-02"),
		Concept:   concept,
		Amount:    amount,
	})
	if err != nil {
		return "", fmt.Errorf("creating invoice draft for %s: %w", c.Name, err)
	}

	s.log.WithFields(logrus.Fields{
		"client": c.Name,
		"draft":  draftID,
		"amount": amount,
	}).Info("invoice draft pushed")
	return draftID, nil
}
