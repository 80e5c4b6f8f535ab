package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavowmarques/work-logix-v2/internal/models"
	"github.com/gustavowmarques/work-logix-v2/internal/utils"
)

func TestAcceptAtomic_Guards(t *testing.T) {
	repo := NewMemoryWorkOrderRepo()
	wo := seedOrder(t, repo)
	ctx := context.Background()
	companyID := *wo.PreferredContractorID

	t.Run("stale version", func(t *testing.T) {
		_, err := repo.AcceptAtomic(ctx, wo.ID, companyID, wo.RowVersion+5)
		assert.ErrorIs(t, err, utils.ErrRowVersionConflict)
	})

	t.Run("accept bumps version and stamps acceptance", func(t *testing.T) {
		got, err := repo.AcceptAtomic(ctx, wo.ID, companyID, wo.RowVersion)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusAccepted, got.Status)
		assert.Equal(t, wo.RowVersion+1, got.RowVersion)
		assert.NotNil(t, got.AcceptedAt)
	})

	t.Run("accept from COMPLETED is refused", func(t *testing.T) {
		done, err := repo.CompleteAtomic(ctx, wo.ID, companyID, wo.RowVersion+1, "notes", "key")
		require.NoError(t, err)
		_, err = repo.AcceptAtomic(ctx, wo.ID, companyID, done.RowVersion)
		assert.ErrorIs(t, err, utils.ErrWrongStatus)
	})
}

func TestRejectAtomic_FlagsAccumulate(t *testing.T) {
	repo := NewMemoryWorkOrderRepo()
	wo := seedOrder(t, repo)
	ctx := context.Background()
	second := uuid.New()

	got, err := repo.RejectAtomic(ctx, wo.ID, wo.RowVersion, models.OrderStatusAssigned, &second, true, false)
	require.NoError(t, err)
	assert.True(t, got.RejectedByPreferred)
	assert.Equal(t, second, *got.AssignedContractorID)

	got, err = repo.RejectAtomic(ctx, wo.ID, got.RowVersion, models.OrderStatusReturned, nil, false, true)
	require.NoError(t, err)
	assert.True(t, got.RejectedByPreferred, "earlier flag survives later rejects")
	assert.True(t, got.RejectedBySecond)
	assert.Nil(t, got.AssignedContractorID)
	assert.Nil(t, got.AcceptedAt)
}

func TestCompleteAtomic_AssigneeGuard(t *testing.T) {
	repo := NewMemoryWorkOrderRepo()
	wo := seedOrder(t, repo)
	ctx := context.Background()
	companyID := *wo.PreferredContractorID

	accepted, err := repo.AcceptAtomic(ctx, wo.ID, companyID, wo.RowVersion)
	require.NoError(t, err)

	_, err = repo.CompleteAtomic(ctx, wo.ID, uuid.New(), accepted.RowVersion, "notes", "key")
	assert.ErrorIs(t, err, utils.ErrNotAssignedContractor)

	got, err := repo.CompleteAtomic(ctx, wo.ID, companyID, accepted.RowVersion, "notes", "uploads/key.jpg")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, got.Status)
	require.NotNil(t, got.AttachmentKey)
	assert.Equal(t, "uploads/key.jpg", *got.AttachmentKey)
}

func TestMemoryRepo_ClonesOnReturn(t *testing.T) {
	repo := NewMemoryWorkOrderRepo()
	wo := seedOrder(t, repo)
	ctx := context.Background()

	got, err := repo.GetByID(ctx, wo.ID)
	require.NoError(t, err)
	got.Title = "mutated copy"

	fresh, err := repo.GetByID(ctx, wo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Leaking pipe", fresh.Title)
}
