package domain

import (
	"fmt"
	"time"
)

type Task struct {
	ID          string
	ClientID    string
	ProjectID   string // optional, empty for client-level tasks
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
	EstimateMin int
	LoggedMin   int
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// taskTransitions is the set of allowed status moves. A task can be
// reopened from completed back to in_progress, matching board behavior.
var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskPending:    {TaskInProgress, TaskCompleted},
	TaskInProgress: {TaskPending, TaskCompleted},
	TaskCompleted:  {TaskInProgress},
}

// CanTransition reports whether moving the task to target is allowed.
func (t *Task) CanTransition(target TaskStatus) bool {
	for _, s := range taskTransitions[t.Status] {
		if s == target {
			return true
		}
	}
	return false
}

// Transition moves the task to target, stamping CompletedAt when the
// task reaches completed and clearing it when it is reopened.
func (t *Task) Transition(target TaskStatus, now time.Time) error {
	if target == t.Status {
		return nil
	}
	if !t.CanTransition(target) {
		return fmt.Errorf("cannot move task from %s to %s", t.Status, target)
	}
	t.Status = target
	switch target {
	case TaskCompleted:
		done := now
		t.CompletedAt = &done
	default:
		t.CompletedAt = nil
	}
	t.UpdatedAt = now
	return nil
}

// Overdue reports whether the task is past due and not completed.
func (t *Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.Status != TaskCompleted && t.DueDate.Before(now)
}

// ApplyTimeEntry adds tracked minutes to the task's running total.
func (t *Task) ApplyTimeEntry(minutes int, now time.Time) error {
	if minutes <= 0 {
		return fmt.Errorf("minutes must be positive, got %d", minutes)
	}
	t.LoggedMin += minutes
	t.UpdatedAt = now
	return nil
}
