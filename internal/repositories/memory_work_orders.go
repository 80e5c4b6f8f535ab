package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/gustavowmarques/work-logix-v2/internal/models"
	"github.com/gustavowmarques/work-logix-v2/internal/utils"
)

// MemoryWorkOrderRepo is an in-memory WorkOrderRepository for tests and
// DB-disabled runs. It preserves the row-version semantics of the
// Postgres implementation: every mutation checks the expected version and
// bumps it, so optimistic-concurrency behavior is observable without a
// database.
type MemoryWorkOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*models.WorkOrder
}

func NewMemoryWorkOrderRepo() *MemoryWorkOrderRepo {
	return &MemoryWorkOrderRepo{orders: map[uuid.UUID]*models.WorkOrder{}}
}

func cloneOrder(wo *models.WorkOrder) *models.WorkOrder {
	cp := *wo
	return &cp
}

func (r *MemoryWorkOrderRepo) Create(_ context.Context, wo *models.WorkOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[wo.ID]; exists {
		return fmt.Errorf("duplicate work order id %s", wo.ID)
	}
	now := time.Now().UTC()
	cp := cloneOrder(wo)
	cp.CreatedAt = now
	cp.UpdatedAt = now
	cp.RowVersion = 1
	r.orders[wo.ID] = cp

	wo.CreatedAt = cp.CreatedAt
	wo.UpdatedAt = cp.UpdatedAt
	wo.RowVersion = cp.RowVersion
	return nil
}

func (r *MemoryWorkOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*models.WorkOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wo, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(wo), nil
}

func (r *MemoryWorkOrderRepo) List(_ context.Context, filter WorkOrderFilter) ([]*models.WorkOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.WorkOrder
	for _, wo := range r.orders {
		if filter.CreatedBy != nil && wo.CreatedBy != *filter.CreatedBy {
			continue
		}
		if filter.CompanyID != nil && !wo.IsCandidate(*filter.CompanyID) && !wo.IsAssigned(*filter.CompanyID) {
			continue
		}
		if len(filter.Statuses) > 0 {
			match := false
			for _, st := range filter.Statuses {
				if wo.Status == st {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		if filter.Priority != nil && wo.Priority != *filter.Priority {
			continue
		}
		if filter.ClientID != nil && (wo.ClientID == nil || *wo.ClientID != *filter.ClientID) {
			continue
		}
		out = append(out, cloneOrder(wo))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryWorkOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return utils.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *MemoryWorkOrderRepo) AcceptAtomic(
	_ context.Context,
	orderID, companyID uuid.UUID,
	expectedVersion int64,
) (*models.WorkOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wo, ok := r.orders[orderID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	if wo.RowVersion != expectedVersion {
		return cloneOrder(wo), utils.ErrRowVersionConflict
	}
	if wo.Status != models.OrderStatusNew && wo.Status != models.OrderStatusAssigned {
		return cloneOrder(wo), fmt.Errorf("accept from %s: %w", wo.Status, utils.ErrWrongStatus)
	}

	now := time.Now().UTC()
	wo.Status = models.OrderStatusAccepted
	cid := companyID
	wo.AssignedContractorID = &cid
	wo.AcceptedAt = &now
	wo.RowVersion++
	wo.UpdatedAt = now
	return cloneOrder(wo), nil
}

func (r *MemoryWorkOrderRepo) RejectAtomic(
	_ context.Context,
	orderID uuid.UUID,
	expectedVersion int64,
	newStatus models.OrderStatusType,
	newAssigned *uuid.UUID,
	rejectedByPreferred, rejectedBySecond bool,
) (*models.WorkOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wo, ok := r.orders[orderID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	if wo.RowVersion != expectedVersion {
		return cloneOrder(wo), utils.ErrRowVersionConflict
	}
	switch wo.Status {
	case models.OrderStatusNew, models.OrderStatusAssigned, models.OrderStatusAccepted:
	default:
		return cloneOrder(wo), fmt.Errorf("reject from %s: %w", wo.Status, utils.ErrWrongStatus)
	}

	wo.Status = newStatus
	if newAssigned != nil {
		cid := *newAssigned
		wo.AssignedContractorID = &cid
	} else {
		wo.AssignedContractorID = nil
	}
	wo.RejectedByPreferred = wo.RejectedByPreferred || rejectedByPreferred
	wo.RejectedBySecond = wo.RejectedBySecond || rejectedBySecond
	wo.AcceptedAt = nil
	wo.RowVersion++
	wo.UpdatedAt = time.Now().UTC()
	return cloneOrder(wo), nil
}

func (r *MemoryWorkOrderRepo) CompleteAtomic(
	_ context.Context,
	orderID, companyID uuid.UUID,
	expectedVersion int64,
	notes, attachmentKey string,
) (*models.WorkOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wo, ok := r.orders[orderID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	if wo.RowVersion != expectedVersion {
		return cloneOrder(wo), utils.ErrRowVersionConflict
	}
	if wo.Status != models.OrderStatusAccepted {
		return cloneOrder(wo), fmt.Errorf("complete from %s: %w", wo.Status, utils.ErrWrongStatus)
	}
	if wo.AssignedContractorID == nil || *wo.AssignedContractorID != companyID {
		return cloneOrder(wo), utils.ErrNotAssignedContractor
	}

	now := time.Now().UTC()
	wo.Status = models.OrderStatusCompleted
	wo.CompletedAt = &now
	wo.CompletionNotes = &notes
	wo.AttachmentKey = &attachmentKey
	wo.RowVersion++
	wo.UpdatedAt = now
	return cloneOrder(wo), nil
}

func (r *MemoryWorkOrderRepo) UpdateIfVersion(
	_ context.Context,
	wo *models.WorkOrder,
	expectedVersion int64,
) (pgconn.CommandTag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.orders[wo.ID]
	if !ok || current.RowVersion != expectedVersion {
		return pgconn.CommandTag("UPDATE 0"), nil
	}

	cp := cloneOrder(wo)
	cp.CreatedBy = current.CreatedBy // immutable
	cp.CreatedAt = current.CreatedAt
	cp.RowVersion = current.RowVersion + 1
	cp.UpdatedAt = time.Now().UTC()
	r.orders[wo.ID] = cp
	return pgconn.CommandTag("UPDATE 1"), nil
}
