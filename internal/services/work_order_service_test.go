package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavowmarques/work-logix-v2/internal/dtos"
	"github.com/gustavowmarques/work-logix-v2/internal/models"
	"github.com/gustavowmarques/work-logix-v2/internal/repositories"
	"github.com/gustavowmarques/work-logix-v2/internal/utils"
)

type workOrderFixture struct {
	svc    *WorkOrderService
	orders *repositories.MemoryWorkOrderRepo

	pm      Actor
	admin   Actor
	outside Actor

	preferredCo *models.Company
	secondCo    *models.Company
	outsideCo   *models.Company

	preferred Actor
	second    Actor

	client *models.Client
	unit   *models.Unit
}

func newWorkOrderFixture(t *testing.T) *workOrderFixture {
	t.Helper()
	ctx := context.Background()

	orders := repositories.NewMemoryWorkOrderRepo()
	companies := repositories.NewMemoryCompanyRepo()
	clients := repositories.NewMemoryClientRepo()
	units := repositories.NewMemoryUnitRepo()

	f := &workOrderFixture{
		svc:    NewWorkOrderService(orders, companies, clients, units),
		orders: orders,
	}

	newContractor := func(name string) *models.Company {
		co := &models.Company{ID: uuid.New(), Name: name, IsContractor: true}
		require.NoError(t, companies.Create(ctx, co))
		return co
	}
	f.preferredCo = newContractor("Liffey Pipeworks")
	f.secondCo = newContractor("Voltline Electrical")
	f.outsideCo = newContractor("Unrelated Trades")

	agency := &models.Company{ID: uuid.New(), Name: "Harbourview PM", IsPropertyManager: true}
	require.NoError(t, companies.Create(ctx, agency))

	f.client = &models.Client{ID: uuid.New(), Name: "Marina Quarter", CompanyID: agency.ID}
	require.NoError(t, clients.Create(ctx, f.client))

	f.unit = &models.Unit{ID: uuid.New(), ClientID: f.client.ID, Name: "Apartment 1", UnitType: models.UnitTypeApartment}
	require.NoError(t, units.Create(ctx, f.unit))

	f.pm = Actor{UserID: uuid.New(), Role: models.RolePropertyManager, CompanyID: &agency.ID}
	f.admin = Actor{UserID: uuid.New(), Role: models.RoleAdmin}
	f.preferred = Actor{UserID: uuid.New(), Role: models.RoleContractor, CompanyID: &f.preferredCo.ID}
	f.second = Actor{UserID: uuid.New(), Role: models.RoleContractor, CompanyID: &f.secondCo.ID}
	f.outside = Actor{UserID: uuid.New(), Role: models.RoleContractor, CompanyID: &f.outsideCo.ID}

	return f
}

func (f *workOrderFixture) createOrder(t *testing.T, withSecond bool) *models.WorkOrder {
	t.Helper()
	req := dtos.CreateWorkOrderRequest{
		Title:                 "Leaking pipe",
		Description:           "Water under the kitchen sink",
		ClientID:              &f.client.ID,
		UnitID:                &f.unit.ID,
		PreferredContractorID: f.preferredCo.ID,
	}
	if withSecond {
		req.SecondContractorID = &f.secondCo.ID
	}
	wo, err := f.svc.CreateWorkOrder(context.Background(), f.pm, req)
	require.NoError(t, err)
	return wo
}

func TestCreateWorkOrder_InitialRouting(t *testing.T) {
	f := newWorkOrderFixture(t)

	wo := f.createOrder(t, true)

	assert.Equal(t, models.OrderStatusNew, wo.Status)
	assert.Equal(t, models.PriorityMedium, wo.Priority)
	require.NotNil(t, wo.AssignedContractorID)
	assert.Equal(t, f.preferredCo.ID, *wo.AssignedContractorID)
	assert.Equal(t, f.pm.UserID, wo.CreatedBy)
	assert.Equal(t, int64(1), wo.RowVersion)
}

func TestCreateWorkOrder_Validation(t *testing.T) {
	f := newWorkOrderFixture(t)
	ctx := context.Background()

	t.Run("contractor cannot create", func(t *testing.T) {
		_, err := f.svc.CreateWorkOrder(ctx, f.preferred, dtos.CreateWorkOrderRequest{
			Title:                 "x",
			Description:           "y",
			PreferredContractorID: f.preferredCo.ID,
		})
		assert.ErrorIs(t, err, utils.ErrNotAllowed)
	})

	t.Run("duplicate contractor pair", func(t *testing.T) {
		_, err := f.svc.CreateWorkOrder(ctx, f.pm, dtos.CreateWorkOrderRequest{
			Title:                 "x",
			Description:           "y",
			PreferredContractorID: f.preferredCo.ID,
			SecondContractorID:    &f.preferredCo.ID,
		})
		assert.ErrorIs(t, err, utils.ErrDuplicateContractorPair)
	})

	t.Run("unit outside client", func(t *testing.T) {
		otherClient := uuid.New()
		_, err := f.svc.CreateWorkOrder(ctx, f.pm, dtos.CreateWorkOrderRequest{
			Title:                 "x",
			Description:           "y",
			ClientID:              &otherClient,
			UnitID:                &f.unit.ID,
			PreferredContractorID: f.preferredCo.ID,
		})
		assert.Error(t, err)
	})

	t.Run("unit and common area are exclusive", func(t *testing.T) {
		_, err := f.svc.CreateWorkOrder(ctx, f.pm, dtos.CreateWorkOrderRequest{
			Title:                 "x",
			Description:           "y",
			ClientID:              &f.client.ID,
			UnitID:                &f.unit.ID,
			CommonArea:            true,
			PreferredContractorID: f.preferredCo.ID,
		})
		assert.ErrorIs(t, err, utils.ErrInvalidPayload)
	})

	t.Run("preferred must be a contractor company", func(t *testing.T) {
		_, err := f.svc.CreateWorkOrder(ctx, f.pm, dtos.CreateWorkOrderRequest{
			Title:                 "x",
			Description:           "y",
			PreferredContractorID: *f.pm.CompanyID,
		})
		assert.ErrorIs(t, err, utils.ErrInvalidPayload)
	})
}

func TestAccept_FromNew(t *testing.T) {
	f := newWorkOrderFixture(t)
	ctx := context.Background()

	t.Run("preferred candidate accepts", func(t *testing.T) {
		wo := f.createOrder(t, true)
		got, err := f.svc.Accept(ctx, f.preferred, wo.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusAccepted, got.Status)
		assert.Equal(t, f.preferredCo.ID, *got.AssignedContractorID)
		assert.NotNil(t, got.AcceptedAt)
		assert.Equal(t, int64(2), got.RowVersion)
	})

	t.Run("second candidate may accept straight from NEW", func(t *testing.T) {
		wo := f.createOrder(t, true)
		got, err := f.svc.Accept(ctx, f.second, wo.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusAccepted, got.Status)
		assert.Equal(t, f.secondCo.ID, *got.AssignedContractorID)
	})

	t.Run("outsider is not a candidate", func(t *testing.T) {
		wo := f.createOrder(t, true)
		_, err := f.svc.Accept(ctx, f.outside, wo.ID)
		assert.ErrorIs(t, err, utils.ErrNotCandidate)
	})

	t.Run("property manager cannot accept", func(t *testing.T) {
		wo := f.createOrder(t, true)
		_, err := f.svc.Accept(ctx, f.pm, wo.ID)
		assert.ErrorIs(t, err, utils.ErrNotAllowed)
	})
}

func TestAccept_Idempotency(t *testing.T) {
	f := newWorkOrderFixture(t)
	ctx := context.Background()
	wo := f.createOrder(t, true)

	first, err := f.svc.Accept(ctx, f.preferred, wo.ID)
	require.NoError(t, err)

	again, err := f.svc.Accept(ctx, f.preferred, wo.ID)
	require.NoError(t, err)
	assert.Equal(t, first.RowVersion, again.RowVersion)
	assert.Equal(t, models.OrderStatusAccepted, again.Status)

	// a different candidate cannot take over an accepted order
	_, err = f.svc.Accept(ctx, f.second, wo.ID)
	assert.ErrorIs(t, err, utils.ErrWrongStatus)
}

func TestReject_CascadeToSecond(t *testing.T) {
	f := newWorkOrderFixture(t)
	ctx := context.Background()
	wo := f.createOrder(t, true)

	got, err := f.svc.Reject(ctx, f.preferred, wo.ID)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusAssigned, got.Status)
	require.NotNil(t, got.AssignedContractorID)
	assert.Equal(t, f.secondCo.ID, *got.AssignedContractorID)
	assert.True(t, got.RejectedByPreferred)
	assert.False(t, got.RejectedBySecond)
}

func TestReject_ReturnsWhenNoFallback(t *testing.T) {
	f := newWorkOrderFixture(t)
	ctx := context.Background()

	t.Run("preferred rejects with no second declared", func(t *testing.T) {
		wo := f.createOrder(t, false)
		got, err := f.svc.Reject(ctx, f.preferred, wo.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusReturned, got.Status)
		assert.Nil(t, got.AssignedContractorID)
		assert.True(t, got.RejectedByPreferred)
	})

	t.Run("second rejects from NEW", func(t *testing.T) {
		wo := f.createOrder(t, true)
		got, err := f.svc.Reject(ctx, f.second, wo.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusReturned, got.Status)
		assert.Nil(t, got.AssignedContractorID)
		assert.True(t, got.RejectedBySecond)
		assert.False(t, got.RejectedByPreferred)
	})

	t.Run("second rejects after cascade", func(t *testing.T) {
		wo := f.createOrder(t, true)
		_, err := f.svc.Reject(ctx, f.preferred, wo.ID)
		require.NoError(t, err)

		got, err := f.svc.Reject(ctx, f.second, wo.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusReturned, got.Status)
		assert.Nil(t, got.AssignedContractorID)
		assert.True(t, got.RejectedByPreferred)
		assert.True(t, got.RejectedBySecond)
	})
}

func TestReject_CandidateNeverReadmitted(t *testing.T) {
	f := newWorkOrderFixture(t)
	ctx := context.Background()
	wo := f.createOrder(t, true)

	_, err := f.svc.Reject(ctx, f.preferred, wo.ID)
	require.NoError(t, err)

	_, err = f.svc.Accept(ctx, f.preferred, wo.ID)
	assert.ErrorIs(t, err, utils.ErrCandidateRejected)

	_, err = f.svc.Reject(ctx, f.preferred, wo.ID)
	assert.ErrorIs(t, err, utils.ErrCandidateRejected)
}

func TestComplete(t *testing.T) {
	f := newWorkOrderFixture(t)
	ctx := context.Background()

	acceptedOrder := func(t *testing.T) *models.WorkOrder {
		wo := f.createOrder(t, true)
		got, err := f.svc.Accept(ctx, f.preferred, wo.ID)
		require.NoError(t, err)
		return got
	}

	t.Run("happy path", func(t *testing.T) {
		wo := acceptedOrder(t)
		got, err := f.svc.Complete(ctx, f.preferred, dtos.CompleteWorkOrderRequest{
			WorkOrderID:     wo.ID,
			CompletionNotes: "Replaced the trap seal",
			AttachmentKey:   "uploads/proof-123.jpg",
		})
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusCompleted, got.Status)
		assert.NotNil(t, got.CompletedAt)
		require.NotNil(t, got.CompletionNotes)
		assert.Equal(t, "Replaced the trap seal", *got.CompletionNotes)
	})

	t.Run("notes and attachment are both required", func(t *testing.T) {
		wo := acceptedOrder(t)
		_, err := f.svc.Complete(ctx, f.preferred, dtos.CompleteWorkOrderRequest{
			WorkOrderID:     wo.ID,
			CompletionNotes: "  ",
			AttachmentKey:   "uploads/proof.jpg",
		})
		assert.ErrorIs(t, err, utils.ErrMissingCompletionProof)

		_, err = f.svc.Complete(ctx, f.preferred, dtos.CompleteWorkOrderRequest{
			WorkOrderID:     wo.ID,
			CompletionNotes: "done",
			AttachmentKey:   "",
		})
		assert.ErrorIs(t, err, utils.ErrMissingCompletionProof)
	})

	t.Run("only the assignee completes", func(t *testing.T) {
		wo := acceptedOrder(t)
		_, err := f.svc.Complete(ctx, f.second, dtos.CompleteWorkOrderRequest{
			WorkOrderID:     wo.ID,
			CompletionNotes: "done",
			AttachmentKey:   "uploads/x.jpg",
		})
		assert.ErrorIs(t, err, utils.ErrNotAssignedContractor)
	})

	t.Run("cannot complete from NEW", func(t *testing.T) {
		wo := f.createOrder(t, true)
		_, err := f.svc.Complete(ctx, f.preferred, dtos.CompleteWorkOrderRequest{
			WorkOrderID:     wo.ID,
			CompletionNotes: "done",
			AttachmentKey:   "uploads/x.jpg",
		})
		assert.ErrorIs(t, err, utils.ErrWrongStatus)
	})
}

func TestLifecycle_FullRoutingChain(t *testing.T) {
	f := newWorkOrderFixture(t)
	ctx := context.Background()
	wo := f.createOrder(t, true)

	// preferred declines, the offer passes to the second contractor
	got, err := f.svc.Reject(ctx, f.preferred, wo.ID)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusAssigned, got.Status)

	// second accepts the cascaded offer
	got, err = f.svc.Accept(ctx, f.second, got.ID)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusAccepted, got.Status)
	require.Equal(t, f.secondCo.ID, *got.AssignedContractorID)

	// preferred cannot act on the cascaded offer anymore
	_, err = f.svc.Accept(ctx, f.preferred, got.ID)
	assert.ErrorIs(t, err, utils.ErrCandidateRejected)

	// second completes with proof
	got, err = f.svc.Complete(ctx, f.second, dtos.CompleteWorkOrderRequest{
		WorkOrderID:     got.ID,
		CompletionNotes: "Rewired the distribution board",
		AttachmentKey:   "uploads/board.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, got.Status)

	// completed orders are terminal
	_, err = f.svc.Reject(ctx, f.second, got.ID)
	assert.ErrorIs(t, err, utils.ErrWrongStatus)
}

func TestAccept_StaleVersionConflict(t *testing.T) {
	f := newWorkOrderFixture(t)
	ctx := context.Background()
	wo := f.createOrder(t, true)

	// another writer bumps the row between read and write
	_, err := f.orders.AcceptAtomic(ctx, wo.ID, f.secondCo.ID, wo.RowVersion)
	require.NoError(t, err)

	_, err = f.orders.AcceptAtomic(ctx, wo.ID, f.preferredCo.ID, wo.RowVersion)
	assert.ErrorIs(t, err, utils.ErrRowVersionConflict)
}

func TestUpdateWorkOrder(t *testing.T) {
	f := newWorkOrderFixture(t)
	ctx := context.Background()
	wo := f.createOrder(t, true)

	t.Run("admin only", func(t *testing.T) {
		_, err := f.svc.UpdateWorkOrder(ctx, f.pm, wo.ID, dtos.UpdateWorkOrderRequest{})
		assert.ErrorIs(t, err, utils.ErrNotAllowed)
	})

	t.Run("applies edits and bumps version", func(t *testing.T) {
		title := "Burst pipe"
		prio := models.PriorityHigh
		got, err := f.svc.UpdateWorkOrder(ctx, f.admin, wo.ID, dtos.UpdateWorkOrderRequest{
			Title:    &title,
			Priority: &prio,
		})
		require.NoError(t, err)
		assert.Equal(t, "Burst pipe", got.Title)
		assert.Equal(t, models.PriorityHigh, got.Priority)
		assert.Equal(t, wo.RowVersion+1, got.RowVersion)
		assert.Equal(t, wo.CreatedBy, got.CreatedBy)
	})

	t.Run("rejects duplicate pair", func(t *testing.T) {
		_, err := f.svc.UpdateWorkOrder(ctx, f.admin, wo.ID, dtos.UpdateWorkOrderRequest{
			SecondContractorID: &f.preferredCo.ID,
		})
		assert.ErrorIs(t, err, utils.ErrDuplicateContractorPair)
	})
}

func TestListForActor_Scoping(t *testing.T) {
	f := newWorkOrderFixture(t)
	ctx := context.Background()

	mine := f.createOrder(t, true)

	otherPM := Actor{UserID: uuid.New(), Role: models.RolePropertyManager, CompanyID: f.pm.CompanyID}
	foreign, err := f.svc.CreateWorkOrder(ctx, otherPM, dtos.CreateWorkOrderRequest{
		Title:                 "Broken fuse",
		Description:           "No power on floor 2",
		PreferredContractorID: f.outsideCo.ID,
	})
	require.NoError(t, err)

	t.Run("pm sees own orders only", func(t *testing.T) {
		orders, err := f.svc.ListForActor(ctx, f.pm, dtos.ListWorkOrdersQuery{})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, mine.ID, orders[0].ID)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		orders, err := f.svc.ListForActor(ctx, f.admin, dtos.ListWorkOrdersQuery{})
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("contractor sees orders touching their company", func(t *testing.T) {
		orders, err := f.svc.ListForActor(ctx, f.outside, dtos.ListWorkOrdersQuery{})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, foreign.ID, orders[0].ID)
	})
}

func TestContractorInbox(t *testing.T) {
	f := newWorkOrderFixture(t)
	ctx := context.Background()

	open := f.createOrder(t, true)
	rejected := f.createOrder(t, true)
	_, err := f.svc.Reject(ctx, f.preferred, rejected.ID)
	require.NoError(t, err)

	t.Run("rejected orders leave the inbox", func(t *testing.T) {
		inbox, err := f.svc.ContractorInbox(ctx, f.preferred)
		require.NoError(t, err)
		require.Len(t, inbox, 1)
		assert.Equal(t, open.ID, inbox[0].ID)
	})

	t.Run("cascaded order shows for the second contractor", func(t *testing.T) {
		inbox, err := f.svc.ContractorInbox(ctx, f.second)
		require.NoError(t, err)
		ids := make(map[uuid.UUID]bool, len(inbox))
		for _, wo := range inbox {
			ids[wo.ID] = true
		}
		assert.True(t, ids[open.ID])
		assert.True(t, ids[rejected.ID])
	})

	t.Run("non-contractors have no inbox", func(t *testing.T) {
		_, err := f.svc.ContractorInbox(ctx, f.pm)
		assert.ErrorIs(t, err, utils.ErrNotAllowed)
	})
}

func TestGetWorkOrder_Visibility(t *testing.T) {
	f := newWorkOrderFixture(t)
	ctx := context.Background()
	wo := f.createOrder(t, true)

	_, err := f.svc.GetWorkOrder(ctx, f.preferred, wo.ID)
	assert.NoError(t, err)

	_, err = f.svc.GetWorkOrder(ctx, f.outside, wo.ID)
	assert.ErrorIs(t, err, utils.ErrNotAllowed)

	_, err = f.svc.GetWorkOrder(ctx, f.admin, uuid.New())
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestListCandidateContractors(t *testing.T) {
	f := newWorkOrderFixture(t)
	ctx := context.Background()

	companies, err := f.svc.ListCandidateContractors(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, companies, 3)
	for _, co := range companies {
		assert.True(t, co.IsContractor)
	}
}
