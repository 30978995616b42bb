package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danivilar/atelier/internal/domain"
	"github.com/danivilar/atelier/internal/kanban"
	"github.com/danivilar/atelier/internal/testutil"
)

func TestTaskService_Board_GroupsByStatus(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	client := testutil.NewTestClient("Boarded")
	require.NoError(t, r.clients.Create(ctx, client))

	svc := NewTaskService(r.tasks, r.clients, r.uow)
	require.NoError(t, svc.Create(ctx, testutil.NewTestTask(client.ID, "One")))
	require.NoError(t, svc.Create(ctx, testutil.NewTestTask(client.ID, "Two",
		testutil.WithTaskStatus(domain.TaskInProgress))))
	require.NoError(t, svc.Create(ctx, testutil.NewTestTask(client.ID, "Three",
		testutil.WithTaskStatus(domain.TaskCompleted))))

	board, err := svc.Board(ctx, client.ID)
	require.NoError(t, err)
	assert.Len(t, board.Columns[domain.TaskPending], 1)
	assert.Len(t, board.Columns[domain.TaskInProgress], 1)
	assert.Len(t, board.Columns[domain.TaskCompleted], 1)
}

func TestTaskService_ApplyMove_TransitionsStatus(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	client := testutil.NewTestClient("Boarded")
	require.NoError(t, r.clients.Create(ctx, client))
	task := testutil.NewTestTask(client.ID, "Movable")
	require.NoError(t, r.tasks.Create(ctx, task))

	svc := NewTaskService(r.tasks, r.clients, r.uow)

	machine := kanban.NewMachine()
	require.NoError(t, machine.Pickup(task.ID, domain.TaskPending))
	mv, err := machine.Drop(domain.TaskCompleted, 0)
	require.NoError(t, err)

	require.NoError(t, svc.ApplyMove(ctx, mv))

	fetched, err := r.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCompleted, fetched.Status)
	assert.NotNil(t, fetched.CompletedAt)
}

func TestTaskService_ApplyMove_SameColumnIsNoOp(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	client := testutil.NewTestClient("Boarded")
	require.NoError(t, r.clients.Create(ctx, client))
	task := testutil.NewTestTask(client.ID, "Stationary")
	require.NoError(t, r.tasks.Create(ctx, task))

	svc := NewTaskService(r.tasks, r.clients, r.uow)
	mv := kanban.Move{TaskID: task.ID, From: domain.TaskPending, To: domain.TaskPending, Position: 2}
	require.NoError(t, svc.ApplyMove(ctx, mv))

	fetched, err := r.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskPending, fetched.Status)
}

func TestTaskService_ApplyMove_RejectsIllegalTransition(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	client := testutil.NewTestClient("Boarded")
	require.NoError(t, r.clients.Create(ctx, client))
	task := testutil.NewTestTask(client.ID, "Done",
		testutil.WithTaskStatus(domain.TaskCompleted))
	require.NoError(t, r.tasks.Create(ctx, task))

	svc := NewTaskService(r.tasks, r.clients, r.uow)
	mv := kanban.Move{TaskID: task.ID, From: domain.TaskCompleted, To: domain.TaskPending}
	err := svc.ApplyMove(ctx, mv)
	assert.Error(t, err)
}

func TestTaskService_Create_RequiresClient(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	svc := NewTaskService(r.tasks, r.clients, r.uow)
	err := svc.Create(ctx, testutil.NewTestTask("missing-client", "Orphan"))
	assert.Error(t, err)
}
