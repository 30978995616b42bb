package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/danivilar/atelier/internal/db"
	"github.com/danivilar/atelier/internal/domain"
	"github.com/danivilar/atelier/internal/repository"
)

type timeEntryService struct {
	entries repository.TimeEntryRepo
	uow     db.UnitOfWork
}

func NewTimeEntryService(entries repository.TimeEntryRepo, uow db.UnitOfWork) TimeEntryService {
	return &timeEntryService{entries: entries, uow: uow}
}

// Log stores a time entry and rolls the minutes into the task's running
// total in the same transaction.
func (s *timeEntryService) Log(ctx context.Context, e *domain.TimeEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	if e.Date.IsZero() {
		e.Date = now
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txEntries := repository.NewSQLiteTimeEntryRepo(tx)

		task, err := txTasks.GetByID(ctx, e.TaskID)
		if err != nil {
			return err
		}
		if err := task.ApplyTimeEntry(e.Minutes, now); err != nil {
			return err
		}
		if err := txTasks.Update(ctx, task); err != nil {
			return err
		}
		return txEntries.Create(ctx, e)
	})
}

func (s *timeEntryService) ListByTask(ctx context.Context, taskID string) ([]*domain.TimeEntry, error) {
	return s.entries.ListByTask(ctx, taskID)
}

func (s *timeEntryService) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.TimeEntry, error) {
	return s.entries.ListByDateRange(ctx, from, to)
}

// Delete removes a time entry and subtracts its minutes from the task.
func (s *timeEntryService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txEntries := repository.NewSQLiteTimeEntryRepo(tx)

		e, err := txEntries.GetByID(ctx, id)
		if err != nil {
			return err
		}
		task, err := txTasks.GetByID(ctx, e.TaskID)
		if err != nil {
			return err
		}
		task.LoggedMin -= e.Minutes
		if task.LoggedMin < 0 {
			task.LoggedMin = 0
		}
		task.UpdatedAt = time.Now().UTC()
		if err := txTasks.Update(ctx, task); err != nil {
			return err
		}
		return txEntries.Delete(ctx, id)
	})
}
