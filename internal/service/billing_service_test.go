package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danivilar/atelier/internal/domain"
	"github.com/danivilar/atelier/internal/testutil"
)

func TestBillingService_RecordInvoiceSent_AdvancesSchedule(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	next := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	client := testutil.NewTestClient("Recurring",
		testutil.WithBillingCycle(domain.CycleMonthly, 10),
		testutil.WithNextInvoiceDate(next))
	require.NoError(t, r.clients.Create(ctx, client))

	svc := NewBillingService(r.clients, r.events, r.uow)
	require.NoError(t, svc.RecordInvoiceSent(ctx, client.ID, 1200, "March retainer"))

	fetched, err := r.clients.GetByID(ctx, client.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.NextInvoiceDate)
	assert.Equal(t, "2026-04-10", fetched.NextInvoiceDate.Format("2006-01-02"))
	assert.NotNil(t, fetched.LastInvoicedAt)

	events, err := svc.History(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventInvoiceSent, events[0].Type)
	require.NotNil(t, events[0].Amount)
	assert.Equal(t, 1200.0, *events[0].Amount)
}

func TestBillingService_RecordInvoiceSent_OneTimeClearsSchedule(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	next := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	client := testutil.NewTestClient("OneOff",
		testutil.WithBillingCycle(domain.CycleOneTime, 10),
		testutil.WithNextInvoiceDate(next))
	require.NoError(t, r.clients.Create(ctx, client))

	svc := NewBillingService(r.clients, r.events, r.uow)
	require.NoError(t, svc.RecordInvoiceSent(ctx, client.ID, 3000, "Project fee"))

	fetched, err := r.clients.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.NextInvoiceDate, "one-time billing should not reschedule")
}

func TestBillingService_RecordPayment(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	client := testutil.NewTestClient("Payer")
	require.NoError(t, r.clients.Create(ctx, client))

	svc := NewBillingService(r.clients, r.events, r.uow)
	require.NoError(t, svc.RecordPayment(ctx, client.ID, 500, "partial"))

	events, err := svc.History(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventPaymentReceived, events[0].Type)
}
