package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danivilar/atelier/internal/domain"
	"github.com/danivilar/atelier/internal/repository"
)

type proposalService struct {
	proposals repository.ProposalRepo
}

func NewProposalService(proposals repository.ProposalRepo) ProposalService {
	return &proposalService{proposals: proposals}
}

func (s *proposalService) Create(ctx context.Context, p *domain.Proposal) error {
	if p.Title == "" {
		return fmt.Errorf("proposal title is required")
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = domain.ProposalDraft
	}
	if p.ServiceType == "" {
		p.ServiceType = domain.ServiceCustom
	}
	return s.proposals.Create(ctx, p)
}

func (s *proposalService) Send(ctx context.Context, id string) error {
	p, err := s.proposals.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.Status != domain.ProposalDraft {
		return fmt.Errorf("only draft proposals can be sent (status %s)", p.Status)
	}
	now := time.Now().UTC()
	p.Status = domain.ProposalSent
	p.SentAt = &now
	p.UpdatedAt = now
	return s.proposals.Update(ctx, p)
}

func (s *proposalService) Accept(ctx context.Context, id string) error {
	return s.decide(ctx, id, domain.ProposalAccepted)
}

func (s *proposalService) Reject(ctx context.Context, id string) error {
	return s.decide(ctx, id, domain.ProposalRejected)
}

func (s *proposalService) decide(ctx context.Context, id string, to domain.ProposalStatus) error {
	p, err := s.proposals.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.Status != domain.ProposalSent {
		return fmt.Errorf("only sent proposals can be decided (status %s)", p.Status)
	}
	p.Status = to
	p.UpdatedAt = time.Now().UTC()
	return s.proposals.Update(ctx, p)
}

// ExpireOutstanding sweeps sent proposals past their validity date.
func (s *proposalService) ExpireOutstanding(ctx context.Context, now time.Time) (int, error) {
	outstanding, err := s.proposals.ListOutstanding(ctx)
	if err != nil {
		return 0, err
	}
	expired := 0
	for _, p := range outstanding {
		if !p.Expired(now) {
			continue
		}
		p.Status = domain.ProposalExpired
		p.UpdatedAt = now
		if err := s.proposals.Update(ctx, p); err != nil {
			return expired, err
		}
		expired++
	}
	return expired, nil
}

func (s *proposalService) List(ctx context.Context) ([]*domain.Proposal, error) {
	return s.proposals.List(ctx)
}
