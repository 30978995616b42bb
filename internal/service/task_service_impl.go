package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danivilar/atelier/internal/db"
	"github.com/danivilar/atelier/internal/domain"
	"github.com/danivilar/atelier/internal/kanban"
	"github.com/danivilar/atelier/internal/repository"
)

type taskService struct {
	tasks   repository.TaskRepo
	clients repository.ClientRepo
	uow     db.UnitOfWork
}

func NewTaskService(tasks repository.TaskRepo, clients repository.ClientRepo, uow db.UnitOfWork) TaskService {
	return &taskService{tasks: tasks, clients: clients, uow: uow}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if t.Title == "" {
		return fmt.Errorf("task title is required")
	}
	if _, err := s.clients.GetByID(ctx, t.ClientID); err != nil {
		return fmt.Errorf("resolving task client: %w", err)
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = domain.TaskPending
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) List(ctx context.Context) ([]*domain.Task, error) {
	return s.tasks.List(ctx)
}

func (s *taskService) ListByClient(ctx context.Context, clientID string) ([]*domain.Task, error) {
	return s.tasks.ListByClient(ctx, clientID)
}

// Board returns tasks grouped into kanban columns. An empty clientID
// builds a board across all clients.
func (s *taskService) Board(ctx context.Context, clientID string) (*Board, error) {
	var tasks []*domain.Task
	var err error
	if clientID == "" {
		tasks, err = s.tasks.List(ctx)
	} else {
		tasks, err = s.tasks.ListByClient(ctx, clientID)
	}
	if err != nil {
		return nil, err
	}

	board := &Board{Columns: make(map[domain.TaskStatus][]*domain.Task, len(domain.BoardColumns))}
	for _, col := range domain.BoardColumns {
		board.Columns[col] = nil
	}
	for _, t := range tasks {
		board.Columns[t.Status] = append(board.Columns[t.Status], t)
	}
	return board, nil
}

// ApplyMove applies one drop command from the board. Cross-column moves
// run the domain status transition; same-column moves are a no-op here
// since column ordering is presentation state.
func (s *taskService) ApplyMove(ctx context.Context, mv kanban.Move) error {
	if mv.From == mv.To {
		return nil
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		t, err := txTasks.GetByID(ctx, mv.TaskID)
		if err != nil {
			return err
		}
		if err := t.Transition(mv.To, time.Now().UTC()); err != nil {
			return err
		}
		return txTasks.Update(ctx, t)
	})
}

func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	t.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, t)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}
