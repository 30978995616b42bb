package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danivilar/atelier/internal/domain"
	"github.com/danivilar/atelier/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	clients  repository.ClientRepo
}

func NewProjectService(projects repository.ProjectRepo, clients repository.ClientRepo) ProjectService {
	return &projectService{projects: projects, clients: clients}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if _, err := s.clients.GetByID(ctx, p.ClientID); err != nil {
		return fmt.Errorf("resolving project client: %w", err)
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = domain.ProjectPlanning
	}
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context, openOnly bool) ([]*domain.Project, error) {
	return s.projects.List(ctx, openOnly)
}

func (s *projectService) ListByClient(ctx context.Context, clientID string) ([]*domain.Project, error) {
	return s.projects.ListByClient(ctx, clientID)
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) error {
	p.UpdatedAt = time.Now().UTC()
	return s.projects.Update(ctx, p)
}

func (s *projectService) Complete(ctx context.Context, id string) error {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	p.Status = domain.ProjectCompleted
	p.ActualEndDate = &now
	p.ProgressPct = 100
	p.UpdatedAt = now
	return s.projects.Update(ctx, p)
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	return s.projects.Delete(ctx, id)
}
