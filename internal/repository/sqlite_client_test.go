package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danivilar/atelier/internal/domain"
	"github.com/danivilar/atelier/internal/testutil"
)

func TestClientRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(db)
	ctx := context.Background()

	client := testutil.NewTestClient("Acme Corp", testutil.WithMonthlyFee(1200))
	require.NoError(t, repo.Create(ctx, client))

	fetched, err := repo.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, client.ID, fetched.ID)
	assert.Equal(t, "Acme Corp", fetched.Name)
	assert.Equal(t, domain.ClientActive, fetched.Status)
	assert.Equal(t, "EUR", fetched.Currency)
	require.NotNil(t, fetched.MonthlyFee)
	assert.Equal(t, 1200.0, *fetched.MonthlyFee)
	assert.Nil(t, fetched.MonthlyBudget)
}

func TestClientRepo_GetByName_CaseInsensitive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(db)
	ctx := context.Background()

	client := testutil.NewTestClient("Bravo Studio")
	require.NoError(t, repo.Create(ctx, client))

	fetched, err := repo.GetByName(ctx, "bravo studio")
	require.NoError(t, err)
	assert.Equal(t, client.ID, fetched.ID)
}

func TestClientRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "nonexistent")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestClientRepo_List_ExcludesFinished(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(db)
	ctx := context.Background()

	active := testutil.NewTestClient("Active")
	paused := testutil.NewTestClient("Paused", testutil.WithClientStatus(domain.ClientPaused))
	finished := testutil.NewTestClient("Finished", testutil.WithClientStatus(domain.ClientFinished))
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, paused))
	require.NoError(t, repo.Create(ctx, finished))

	clients, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, clients, 2)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestClientRepo_ListDueForInvoicing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(db)
	ctx := context.Background()

	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	due := testutil.NewTestClient("Due",
		testutil.WithBillingCycle(domain.CycleMonthly, 10),
		testutil.WithNextInvoiceDate(now.AddDate(0, 0, -5)))
	notYet := testutil.NewTestClient("NotYet",
		testutil.WithBillingCycle(domain.CycleMonthly, 25),
		testutil.WithNextInvoiceDate(now.AddDate(0, 0, 10)))
	noSchedule := testutil.NewTestClient("NoSchedule")
	require.NoError(t, repo.Create(ctx, due))
	require.NoError(t, repo.Create(ctx, notYet))
	require.NoError(t, repo.Create(ctx, noSchedule))

	clients, err := repo.ListDueForInvoicing(ctx, now)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, due.ID, clients[0].ID)
}

func TestClientRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(db)
	ctx := context.Background()

	client := testutil.NewTestClient("Before")
	require.NoError(t, repo.Create(ctx, client))

	client.Name = "After"
	client.Status = domain.ClientPaused
	fee := 900.0
	client.MonthlyFee = &fee
	require.NoError(t, repo.Update(ctx, client))

	fetched, err := repo.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", fetched.Name)
	assert.Equal(t, domain.ClientPaused, fetched.Status)
	require.NotNil(t, fetched.MonthlyFee)
	assert.Equal(t, 900.0, *fetched.MonthlyFee)
}

func TestClientRepo_Delete_CascadesToTasks(t *testing.T) {
	db := testutil.NewTestDB(t)
	clientRepo := NewSQLiteClientRepo(db)
	taskRepo := NewSQLiteTaskRepo(db)
	ctx := context.Background()

	client := testutil.NewTestClient("Doomed")
	require.NoError(t, clientRepo.Create(ctx, client))
	task := testutil.NewTestTask(client.ID, "Orphan candidate")
	require.NoError(t, taskRepo.Create(ctx, task))

	require.NoError(t, clientRepo.Delete(ctx, client.ID))

	_, err := taskRepo.GetByID(ctx, task.ID)
	assert.Error(t, err)
}
