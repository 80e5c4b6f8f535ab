package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavowmarques/work-logix-v2/internal/models"
)

func seedOrder(t *testing.T, repo *MemoryWorkOrderRepo) *models.WorkOrder {
	t.Helper()
	preferred := uuid.New()
	wo := &models.WorkOrder{
		ID:                    uuid.New(),
		Title:                 "Leaking pipe",
		Description:           "Under the sink",
		Priority:              models.PriorityMedium,
		Status:                models.OrderStatusNew,
		CreatedBy:             uuid.New(),
		PreferredContractorID: &preferred,
		AssignedContractorID:  &preferred,
	}
	require.NoError(t, repo.Create(context.Background(), wo))
	return wo
}

func getOrderByID(repo *MemoryWorkOrderRepo) GetByIDFunc[*models.WorkOrder] {
	return func(ctx context.Context, id string) (*models.WorkOrder, error) {
		uid, err := uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		return repo.GetByID(ctx, uid)
	}
}

func TestWithRetry_AppliesMutation(t *testing.T) {
	repo := NewMemoryWorkOrderRepo()
	wo := seedOrder(t, repo)

	err := WithRetry(
		context.Background(),
		3,
		wo.ID.String(),
		getOrderByID(repo),
		repo.UpdateIfVersion,
		func(cur *models.WorkOrder) error {
			cur.Title = "Burst pipe"
			return nil
		},
	)
	require.NoError(t, err)

	got, err := repo.GetByID(context.Background(), wo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Burst pipe", got.Title)
	assert.Equal(t, int64(2), got.RowVersion)
}

func TestWithRetry_RecoversFromContention(t *testing.T) {
	repo := NewMemoryWorkOrderRepo()
	wo := seedOrder(t, repo)
	ctx := context.Background()

	// the first write attempt loses to a competing writer, the retry wins
	interfered := false
	update := func(ctx context.Context, cur *models.WorkOrder, expectedVersion int64) (pgconn.CommandTag, error) {
		if !interfered {
			interfered = true
			latest, err := repo.GetByID(ctx, wo.ID)
			require.NoError(t, err)
			latest.Description = "competing edit"
			tag, err := repo.UpdateIfVersion(ctx, latest, latest.RowVersion)
			require.NoError(t, err)
			require.EqualValues(t, 1, tag.RowsAffected())
		}
		return repo.UpdateIfVersion(ctx, cur, expectedVersion)
	}

	err := WithRetry(
		ctx,
		3,
		wo.ID.String(),
		getOrderByID(repo),
		update,
		func(cur *models.WorkOrder) error {
			cur.Title = "Burst pipe"
			return nil
		},
	)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, wo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Burst pipe", got.Title)
	assert.Equal(t, "competing edit", got.Description)
	assert.Equal(t, int64(3), got.RowVersion)
}

func TestWithRetry_GivesUpUnderConstantContention(t *testing.T) {
	repo := NewMemoryWorkOrderRepo()
	wo := seedOrder(t, repo)

	alwaysStale := func(ctx context.Context, cur *models.WorkOrder, expectedVersion int64) (pgconn.CommandTag, error) {
		return pgconn.CommandTag("UPDATE 0"), nil
	}

	err := WithRetry(
		context.Background(),
		2,
		wo.ID.String(),
		getOrderByID(repo),
		alwaysStale,
		func(cur *models.WorkOrder) error { return nil },
	)
	assert.Error(t, err)
}
