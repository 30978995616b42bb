package service

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danivilar/atelier/internal/domain"
	"github.com/danivilar/atelier/internal/holded"
	"github.com/danivilar/atelier/internal/testutil"
)

// fakeHolded records calls instead of talking to the API.
type fakeHolded struct {
	contacts int
	invoices []holded.InvoiceDraft
	failSync bool
	nextID   int
}

func (f *fakeHolded) SyncContact(ctx context.Context, c *domain.Client) (string, error) {
	if f.failSync {
		return "", fmt.Errorf("api down")
	}
	f.contacts++
	if c.HoldedContactID != "" {
		return c.HoldedContactID, nil
	}
	f.nextID++
	return fmt.Sprintf("hc-%d", f.nextID), nil
}

func (f *fakeHolded) CreateInvoiceDraft(ctx context.Context, draft holded.InvoiceDraft) (string, error) {
	f.invoices = append(f.invoices, draft)
	return fmt.Sprintf("inv-%d", len(f.invoices)), nil
}

func (f *fakeHolded) Available(ctx context.Context) bool { return true }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestSyncService_SyncContactsStoresIDs(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	a := testutil.NewTestClient("Acme")
	b := testutil.NewTestClient("Beta")
	paused := testutil.NewTestClient("Idle SL", testutil.WithClientStatus(domain.ClientPaused))
	require.NoError(t, r.clients.Create(ctx, a))
	require.NoError(t, r.clients.Create(ctx, b))
	require.NoError(t, r.clients.Create(ctx, paused))

	fake := &fakeHolded{}
	svc := NewSyncService(r.clients, fake, quietLogger())

	synced, err := svc.SyncContacts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, synced, "paused clients are not synced")

	stored, err := r.clients.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.HoldedContactID)
}

func TestSyncService_SyncContactsPropagatesFailure(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	require.NoError(t, r.clients.Create(ctx, testutil.NewTestClient("Acme")))

	svc := NewSyncService(r.clients, &fakeHolded{failSync: true}, quietLogger())

	_, err := svc.SyncContacts(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Acme")
}

func TestSyncService_PushInvoiceDraftSyncsContactFirst(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	c := testutil.NewTestClient("Acme")
	require.NoError(t, r.clients.Create(ctx, c))

	fake := &fakeHolded{}
	svc := NewSyncService(r.clients, fake, quietLogger())

	draftID, err := svc.PushInvoiceDraft(ctx, c.ID, 1500, "Monthly retainer")
	require.NoError(t, err)
	assert.Equal(t, "inv-1", draftID)

	require.Len(t, fake.invoices, 1)
	assert.Equal(t, "hc-1", fake.invoices[0].ContactID)
	assert.Equal(t, 1500.0, fake.invoices[0].Amount)

	stored, err := r.clients.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "hc-1", stored.HoldedContactID)
}
