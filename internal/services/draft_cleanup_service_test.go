package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavowmarques/work-logix-v2/internal/models"
	"github.com/gustavowmarques/work-logix-v2/internal/repositories"
)

func TestSweepOnce(t *testing.T) {
	ctx := context.Background()
	drafts := repositories.NewMemoryUnitDraftRepo()

	expired := &models.UnitDraft{
		ID:        uuid.New(),
		ClientID:  uuid.New(),
		CreatedBy: uuid.New(),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	live := &models.UnitDraft{
		ID:        uuid.New(),
		ClientID:  uuid.New(),
		CreatedBy: uuid.New(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, drafts.Create(ctx, expired))
	require.NoError(t, drafts.Create(ctx, live))

	svc := NewDraftCleanupService(drafts)
	svc.SweepOnce(ctx)

	gone, err := drafts.GetByID(ctx, expired.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := drafts.GetByID(ctx, live.ID)
	require.NoError(t, err)
	assert.NotNil(t, kept)
}
