package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/gustavowmarques/work-logix-v2/internal/constants"
	"github.com/gustavowmarques/work-logix-v2/internal/dtos"
	"github.com/gustavowmarques/work-logix-v2/internal/models"
	"github.com/gustavowmarques/work-logix-v2/internal/repositories"
	"github.com/gustavowmarques/work-logix-v2/internal/utils"
)

// WorkOrderService owns the routing and lifecycle state machine. All
// status transitions pass through here; the repository re-validates the
// row version and status guard inside a transaction, so two competing
// transitions against the same order cannot both succeed.
type WorkOrderService struct {
	orderRepo   repositories.WorkOrderRepository
	companyRepo repositories.CompanyRepository
	clientRepo  repositories.ClientRepository
	unitRepo    repositories.UnitRepository
}

func NewWorkOrderService(
	orderRepo repositories.WorkOrderRepository,
	companyRepo repositories.CompanyRepository,
	clientRepo repositories.ClientRepository,
	unitRepo repositories.UnitRepository,
) *WorkOrderService {
	return &WorkOrderService{
		orderRepo:   orderRepo,
		companyRepo: companyRepo,
		clientRepo:  clientRepo,
		unitRepo:    unitRepo,
	}
}

// CreateWorkOrder opens a new order in NEW with the assignment
// initialized to the preferred contractor.
func (s *WorkOrderService) CreateWorkOrder(
	ctx context.Context,
	actor Actor,
	req dtos.CreateWorkOrderRequest,
) (*models.WorkOrder, error) {
	if !CanCreateWorkOrder(actor) {
		return nil, utils.ErrNotAllowed
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return nil, utils.ErrInvalidPayload
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return nil, utils.ErrInvalidPayload
	}

	if req.SecondContractorID != nil && *req.SecondContractorID == req.PreferredContractorID {
		return nil, utils.ErrDuplicateContractorPair
	}

	if err := s.checkContractor(ctx, req.PreferredContractorID); err != nil {
		return nil, err
	}
	if req.SecondContractorID != nil {
		if err := s.checkContractor(ctx, *req.SecondContractorID); err != nil {
			return nil, err
		}
	}

	if req.UnitID != nil && req.CommonArea {
		// A unit-scoped order cannot also cover the whole site.
		return nil, utils.ErrInvalidPayload
	}
	if req.ClientID != nil {
		client, err := s.clientRepo.GetByID(ctx, *req.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, utils.ErrNotFound
		}
	}
	if req.UnitID != nil {
		if req.ClientID == nil {
			return nil, utils.ErrInvalidPayload
		}
		unit, err := s.unitRepo.GetByID(ctx, *req.UnitID)
		if err != nil {
			return nil, err
		}
		if unit == nil {
			return nil, utils.ErrNotFound
		}
		if unit.ClientID != *req.ClientID {
			return nil, utils.ErrUnitOutsideClient
		}
	}

	preferred := req.PreferredContractorID
	wo := &models.WorkOrder{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Priority:    priority,
		Status:      models.OrderStatusNew,

		ClientID:       req.ClientID,
		UnitID:         req.UnitID,
		CommonArea:     req.CommonArea,
		BusinessTypeID: req.BusinessTypeID,

		CreatedBy: actor.UserID,

		PreferredContractorID: &preferred,
		SecondContractorID:    req.SecondContractorID,
		// Routing starts with the first candidate.
		AssignedContractorID: &preferred,

		DueDate: req.DueDate,
	}

	if err := s.orderRepo.Create(ctx, wo); err != nil {
		return nil, err
	}
	return wo, nil
}

func (s *WorkOrderService) checkContractor(ctx context.Context, companyID uuid.UUID) error {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return utils.ErrNotFound
	}
	if !company.IsContractor {
		return utils.ErrInvalidPayload
	}
	return nil
}

// Accept binds the order to the acting contractor's company.
//
// From NEW either declared candidate may accept; from ASSIGNED only the
// company currently holding the offer; a repeat accept by the company
// that already holds an ACCEPTED order is a no-op. A candidate that has
// rejected is never re-admitted.
func (s *WorkOrderService) Accept(
	ctx context.Context,
	actor Actor,
	orderID uuid.UUID,
) (*models.WorkOrder, error) {
	wo, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if wo == nil {
		return nil, utils.ErrNotFound
	}

	if actor.Role != models.RoleContractor || actor.CompanyID == nil {
		return nil, utils.ErrNotAllowed
	}
	companyID := *actor.CompanyID

	if wo.Status == models.OrderStatusAccepted {
		if wo.IsAssigned(companyID) {
			return wo, nil // idempotent
		}
		return nil, utils.ErrWrongStatus
	}

	if wo.HasRejected(companyID) {
		return nil, utils.ErrCandidateRejected
	}

	switch wo.Status {
	case models.OrderStatusNew:
		if !IsCandidate(actor, wo) {
			return nil, utils.ErrNotCandidate
		}
	case models.OrderStatusAssigned:
		if !IsAssignee(actor, wo) {
			return nil, utils.ErrNotAssignedContractor
		}
	default:
		return nil, utils.ErrWrongStatus
	}

	updated, err := s.orderRepo.AcceptAtomic(ctx, wo.ID, companyID, wo.RowVersion)
	if err != nil {
		return nil, s.translateConflict(ctx, wo.ID, err)
	}
	if updated == nil {
		return nil, utils.ErrNoRowsUpdated
	}
	return updated, nil
}

// Reject applies the cascade: a preferred-slot reject with a second
// contractor declared passes the offer on (ASSIGNED); every other reject
// returns the order to its creator (RETURNED, assignment cleared).
func (s *WorkOrderService) Reject(
	ctx context.Context,
	actor Actor,
	orderID uuid.UUID,
) (*models.WorkOrder, error) {
	wo, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if wo == nil {
		return nil, utils.ErrNotFound
	}

	if actor.Role != models.RoleContractor || actor.CompanyID == nil {
		return nil, utils.ErrNotAllowed
	}
	companyID := *actor.CompanyID

	if wo.HasRejected(companyID) {
		return nil, utils.ErrCandidateRejected
	}

	switch wo.Status {
	case models.OrderStatusNew:
		if !IsCandidate(actor, wo) {
			return nil, utils.ErrNotCandidate
		}
	case models.OrderStatusAssigned, models.OrderStatusAccepted:
		if !IsAssignee(actor, wo) {
			return nil, utils.ErrNotAssignedContractor
		}
	default:
		return nil, utils.ErrWrongStatus
	}

	fromPreferred := wo.PreferredContractorID != nil && *wo.PreferredContractorID == companyID

	var (
		newStatus   models.OrderStatusType
		newAssigned *uuid.UUID
	)
	if fromPreferred && wo.SecondContractorID != nil {
		second := *wo.SecondContractorID
		newStatus = models.OrderStatusAssigned
		newAssigned = &second
	} else {
		newStatus = models.OrderStatusReturned
		newAssigned = nil
	}

	updated, err := s.orderRepo.RejectAtomic(
		ctx,
		wo.ID,
		wo.RowVersion,
		newStatus,
		newAssigned,
		fromPreferred,
		!fromPreferred,
	)
	if err != nil {
		return nil, s.translateConflict(ctx, wo.ID, err)
	}
	if updated == nil {
		return nil, utils.ErrNoRowsUpdated
	}
	return updated, nil
}

// Complete closes out an ACCEPTED order. Both completion notes and an
// attachment reference are required; missing either is a validation
// failure, never a silent skip.
func (s *WorkOrderService) Complete(
	ctx context.Context,
	actor Actor,
	req dtos.CompleteWorkOrderRequest,
) (*models.WorkOrder, error) {
	notes := strings.TrimSpace(req.CompletionNotes)
	attachment := strings.TrimSpace(req.AttachmentKey)
	if notes == "" || attachment == "" {
		return nil, utils.ErrMissingCompletionProof
	}

	wo, err := s.orderRepo.GetByID(ctx, req.WorkOrderID)
	if err != nil {
		return nil, err
	}
	if wo == nil {
		return nil, utils.ErrNotFound
	}

	if actor.Role != models.RoleContractor || actor.CompanyID == nil {
		return nil, utils.ErrNotAllowed
	}

	if wo.Status != models.OrderStatusAccepted {
		return nil, utils.ErrWrongStatus
	}
	if !IsAssignee(actor, wo) {
		return nil, utils.ErrNotAssignedContractor
	}

	updated, err := s.orderRepo.CompleteAtomic(ctx, wo.ID, *actor.CompanyID, wo.RowVersion, notes, attachment)
	if err != nil {
		return nil, s.translateConflict(ctx, wo.ID, err)
	}
	if updated == nil {
		return nil, utils.ErrNoRowsUpdated
	}
	return updated, nil
}

// GetWorkOrder fetches one order, honoring CanView.
func (s *WorkOrderService) GetWorkOrder(
	ctx context.Context,
	actor Actor,
	orderID uuid.UUID,
) (*models.WorkOrder, error) {
	wo, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if wo == nil {
		return nil, utils.ErrNotFound
	}
	if !CanView(actor, wo) {
		return nil, utils.ErrNotAllowed
	}
	return wo, nil
}

// ListForActor shapes the query by role: admins see everything,
// contractors see orders touching their company, everyone else sees
// what they created. The query shape is what enforces CanView here.
func (s *WorkOrderService) ListForActor(
	ctx context.Context,
	actor Actor,
	q dtos.ListWorkOrdersQuery,
) ([]*models.WorkOrder, error) {
	filter := repositories.WorkOrderFilter{
		Statuses: q.Statuses,
		Priority: q.Priority,
		ClientID: q.ClientID,
	}

	switch {
	case CanManage(actor):
		// no ownership restriction
	case actor.Role == models.RoleContractor:
		if actor.CompanyID == nil {
			return nil, utils.ErrNotAllowed
		}
		filter.CompanyID = actor.CompanyID
	default:
		createdBy := actor.UserID
		filter.CreatedBy = &createdBy
	}

	return s.orderRepo.List(ctx, filter)
}

// ContractorInbox lists the orders awaiting action from the actor's
// company: open offers it has not rejected, plus its accepted orders.
func (s *WorkOrderService) ContractorInbox(
	ctx context.Context,
	actor Actor,
) ([]*models.WorkOrder, error) {
	if actor.Role != models.RoleContractor || actor.CompanyID == nil {
		return nil, utils.ErrNotAllowed
	}
	companyID := *actor.CompanyID

	orders, err := s.orderRepo.List(ctx, repositories.WorkOrderFilter{
		CompanyID: actor.CompanyID,
		Statuses: []models.OrderStatusType{
			models.OrderStatusNew,
			models.OrderStatusAssigned,
			models.OrderStatusAccepted,
		},
	})
	if err != nil {
		return nil, err
	}

	var out []*models.WorkOrder
	for _, wo := range orders {
		if wo.HasRejected(companyID) {
			continue
		}
		switch wo.Status {
		case models.OrderStatusNew:
			out = append(out, wo)
		case models.OrderStatusAssigned, models.OrderStatusAccepted:
			if wo.IsAssigned(companyID) {
				out = append(out, wo)
			}
		}
	}
	return out, nil
}

// ListCandidateContractors returns the contractor companies eligible
// for an order's candidate slots, optionally narrowed by trade.
func (s *WorkOrderService) ListCandidateContractors(
	ctx context.Context,
	businessTypeID *uuid.UUID,
) ([]*models.Company, error) {
	isContractor := true
	return s.companyRepo.Find(ctx, repositories.CompanyFilter{
		IsContractor:   &isContractor,
		BusinessTypeID: businessTypeID,
	})
}

// UpdateWorkOrder applies an administrative edit through the optimistic
// retry loop. The creator and lifecycle fields are not editable here.
func (s *WorkOrderService) UpdateWorkOrder(
	ctx context.Context,
	actor Actor,
	orderID uuid.UUID,
	req dtos.UpdateWorkOrderRequest,
) (*models.WorkOrder, error) {
	if !CanManage(actor) {
		return nil, utils.ErrNotAllowed
	}

	getByID := func(ctx context.Context, id string) (*models.WorkOrder, error) {
		uid, err := uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		return s.orderRepo.GetByID(ctx, uid)
	}

	err := repositories.WithRetry(
		ctx,
		constants.MaxUpdateRetries,
		orderID.String(),
		getByID,
		s.orderRepo.UpdateIfVersion,
		func(wo *models.WorkOrder) error {
			if req.Title != nil {
				if strings.TrimSpace(*req.Title) == "" {
					return utils.ErrInvalidPayload
				}
				wo.Title = strings.TrimSpace(*req.Title)
			}
			if req.Description != nil {
				wo.Description = *req.Description
			}
			if req.Priority != nil {
				if !req.Priority.Valid() {
					return utils.ErrInvalidPayload
				}
				wo.Priority = *req.Priority
			}
			if req.DueDate != nil {
				wo.DueDate = req.DueDate
			}
			if req.PreferredContractorID != nil {
				wo.PreferredContractorID = req.PreferredContractorID
			}
			if req.SecondContractorID != nil {
				wo.SecondContractorID = req.SecondContractorID
			}
			if wo.PreferredContractorID != nil && wo.SecondContractorID != nil &&
				*wo.PreferredContractorID == *wo.SecondContractorID {
				return utils.ErrDuplicateContractorPair
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, orderID)
}

// DeleteWorkOrder is the administrative CRUD delete; the lifecycle
// itself never removes records.
func (s *WorkOrderService) DeleteWorkOrder(ctx context.Context, actor Actor, orderID uuid.UUID) error {
	if !CanManage(actor) {
		return utils.ErrNotAllowed
	}
	return s.orderRepo.Delete(ctx, orderID)
}

// translateConflict attaches the latest row to a lost version race so
// the caller can re-read and decide whether to retry.
func (s *WorkOrderService) translateConflict(ctx context.Context, orderID uuid.UUID, err error) error {
	if errors.Is(err, utils.ErrRowVersionConflict) {
		latest, _ := s.orderRepo.GetByID(ctx, orderID)
		if latest != nil {
			return utils.NewRowVersionConflictError(latest)
		}
	}
	return err
}
