package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskTransition_Allowed(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	task := &Task{Status: TaskPending}
	require.NoError(t, task.Transition(TaskInProgress, now))
	assert.Equal(t, TaskInProgress, task.Status)

	require.NoError(t, task.Transition(TaskCompleted, now))
	assert.Equal(t, TaskCompleted, task.Status)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, now, *task.CompletedAt)
}

func TestTaskTransition_ReopenClearsCompletedAt(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	task := &Task{Status: TaskPending}
	require.NoError(t, task.Transition(TaskCompleted, now))
	require.NotNil(t, task.CompletedAt)

	require.NoError(t, task.Transition(TaskInProgress, now))
	assert.Nil(t, task.CompletedAt)
}

func TestTaskTransition_Rejected(t *testing.T) {
	task := &Task{Status: TaskCompleted}
	err := task.Transition(TaskPending, time.Now())
	assert.Error(t, err, "completed tasks reopen to in_progress, not pending")
}

func TestTaskTransition_SameStatusIsNoop(t *testing.T) {
	task := &Task{Status: TaskPending}
	assert.NoError(t, task.Transition(TaskPending, time.Now()))
}

func TestTaskOverdue(t *testing.T) {
	now := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, -1)

	task := &Task{Status: TaskInProgress, DueDate: &due}
	assert.True(t, task.Overdue(now))

	task.Status = TaskCompleted
	assert.False(t, task.Overdue(now), "completed tasks are never overdue")

	task = &Task{Status: TaskPending}
	assert.False(t, task.Overdue(now), "no due date means never overdue")
}

func TestApplyTimeEntry(t *testing.T) {
	now := time.Now()
	task := &Task{LoggedMin: 30}
	require.NoError(t, task.ApplyTimeEntry(45, now))
	assert.Equal(t, 75, task.LoggedMin)

	assert.Error(t, task.ApplyTimeEntry(0, now))
	assert.Error(t, task.ApplyTimeEntry(-10, now))
}

func TestBillingCycleAdvance(t *testing.T) {
	from := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		cycle BillingCycle
		want  time.Time
	}{
		{CycleMonthly, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)},
		{CycleBimonthly, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{CycleQuarterly, time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)},
		{CycleAnnual, time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC)},
		{CycleOneTime, from},
	}
	for _, tt := range tests {
		t.Run(string(tt.cycle), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cycle.Advance(from))
		})
	}
}

func TestStatusLabelFallback(t *testing.T) {
	assert.Equal(t, "In Progress", TaskInProgress.Label())
	assert.Equal(t, "Unknown", TaskStatus("surprise_from_server").Label())
	assert.Equal(t, "Unknown", TaskPriority("p0").Label())
	assert.Equal(t, "Unknown", LeadStatus("limbo").Label())
}

func TestLeadStageIndex(t *testing.T) {
	l := &Lead{Status: LeadDiscovery}
	assert.Equal(t, 2, l.StageIndex())

	l.Status = LeadStatus("unmapped")
	assert.Equal(t, -1, l.StageIndex())
}

func TestProposalExpired(t *testing.T) {
	now := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -3)

	p := &Proposal{Status: ProposalSent, ValidUntil: &past}
	assert.True(t, p.Expired(now))

	p.Status = ProposalAccepted
	assert.False(t, p.Expired(now), "decided proposals do not expire")
}
