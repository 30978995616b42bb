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

func TestDigestService_GenerateDraft_WeekBoundsAndBody(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	client := testutil.NewTestClient("Weekly")
	require.NoError(t, r.clients.Create(ctx, client))

	// Wednesday 2026-02-11; the Monday of that week is 2026-02-09.
	midWeek := time.Date(2026, 2, 11, 15, 0, 0, 0, time.UTC)

	done := testutil.NewTestTask(client.ID, "Keyword research",
		testutil.WithTaskStatus(domain.TaskCompleted))
	completedAt := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	done.CompletedAt = &completedAt
	require.NoError(t, r.tasks.Create(ctx, done))

	outside := testutil.NewTestTask(client.ID, "Old work",
		testutil.WithTaskStatus(domain.TaskCompleted))
	oldDone := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	outside.CompletedAt = &oldDone
	require.NoError(t, r.tasks.Create(ctx, outside))

	svc := NewDigestService(r.digests, r.clients, r.tasks, r.entries)
	digest, err := svc.GenerateDraft(ctx, client.ID, midWeek)
	require.NoError(t, err)

	assert.Equal(t, "2026-02-09", digest.PeriodStart.Format("2006-01-02"))
	assert.Equal(t, "2026-02-15", digest.PeriodEnd.Format("2006-01-02"))
	assert.Equal(t, domain.DigestDraft, digest.Status)
	assert.Contains(t, digest.Body, "Keyword research")
	assert.NotContains(t, digest.Body, "Old work")
}

func TestDigestService_MarkSent_StampsTimestamp(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	client := testutil.NewTestClient("Weekly")
	require.NoError(t, r.clients.Create(ctx, client))

	svc := NewDigestService(r.digests, r.clients, r.tasks, r.entries)
	digest, err := svc.GenerateDraft(ctx, client.ID, time.Now().UTC())
	require.NoError(t, err)

	require.NoError(t, svc.MarkSent(ctx, digest.ID))

	fetched, err := r.digests.GetByID(ctx, digest.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DigestSent, fetched.Status)
	assert.NotNil(t, fetched.SentAt)
}
