package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/gustavowmarques/work-logix-v2/internal/dtos"
	"github.com/gustavowmarques/work-logix-v2/internal/models"
	"github.com/gustavowmarques/work-logix-v2/internal/services"
	"github.com/gustavowmarques/work-logix-v2/internal/utils"
)

type WorkOrdersController struct {
	workOrderService *services.WorkOrderService
	actorResolver    *services.ActorResolver
	validate         *validator.Validate
}

func NewWorkOrdersController(
	workOrderService *services.WorkOrderService,
	actorResolver *services.ActorResolver,
) *WorkOrdersController {
	return &WorkOrdersController{
		workOrderService: workOrderService,
		actorResolver:    actorResolver,
		validate:         validator.New(),
	}
}

// POST /api/v1/work-orders
func (c *WorkOrdersController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "CreateWorkOrderHandler")

	actor, err := resolveActor(r, c.actorResolver)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.CreateWorkOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	wo, err := c.workOrderService.CreateWorkOrder(r.Context(), actor, req)
	if err != nil {
		logger.WithError(err).Error("Create work order failed")
		respondDomainError(w, err)
		return
	}
	logger.WithField("workOrderID", wo.ID).Info("Work order created")
	utils.RespondWithJSON(w, http.StatusCreated, wo)
}

// GET /api/v1/work-orders
func (c *WorkOrdersController) ListHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, c.actorResolver)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	q, err := parseListQuery(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid query parameters", nil, err)
		return
	}

	orders, err := c.workOrderService.ListForActor(r.Context(), actor, q)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ListWorkOrdersResponse{
		WorkOrders: orders,
		Total:      len(orders),
	})
}

// GET /api/v1/work-orders/inbox
func (c *WorkOrdersController) InboxHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, c.actorResolver)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	orders, err := c.workOrderService.ContractorInbox(r.Context(), actor)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ListWorkOrdersResponse{
		WorkOrders: orders,
		Total:      len(orders),
	})
}

// GET /api/v1/work-orders/{id}
func (c *WorkOrdersController) GetHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, c.actorResolver)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	wo, err := c.workOrderService.GetWorkOrder(r.Context(), actor, id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, wo)
}

// POST /api/v1/work-orders/{id}/accept
func (c *WorkOrdersController) AcceptHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "AcceptWorkOrderHandler")

	actor, err := resolveActor(r, c.actorResolver)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	wo, err := c.workOrderService.Accept(r.Context(), actor, id)
	if err != nil {
		logger.WithError(err).WithField("workOrderID", id).Error("Accept failed")
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, wo)
}

// POST /api/v1/work-orders/{id}/reject
func (c *WorkOrdersController) RejectHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "RejectWorkOrderHandler")

	actor, err := resolveActor(r, c.actorResolver)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	wo, err := c.workOrderService.Reject(r.Context(), actor, id)
	if err != nil {
		logger.WithError(err).WithField("workOrderID", id).Error("Reject failed")
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, wo)
}

// POST /api/v1/work-orders/{id}/complete
func (c *WorkOrdersController) CompleteHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "CompleteWorkOrderHandler")

	actor, err := resolveActor(r, c.actorResolver)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.CompleteWorkOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	req.WorkOrderID = id
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	wo, err := c.workOrderService.Complete(r.Context(), actor, req)
	if err != nil {
		logger.WithError(err).Error("Complete work order failed")
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, wo)
}

// PATCH /api/v1/work-orders/{id}
func (c *WorkOrdersController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, c.actorResolver)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.UpdateWorkOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	wo, err := c.workOrderService.UpdateWorkOrder(r.Context(), actor, id, req)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, wo)
}

// DELETE /api/v1/work-orders/{id}
func (c *WorkOrdersController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, c.actorResolver)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	if err := c.workOrderService.DeleteWorkOrder(r.Context(), actor, id); err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GET /api/v1/contractors
func (c *WorkOrdersController) ListContractorsHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := resolveActor(r, c.actorResolver); err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var businessTypeID *uuid.UUID
	if raw := r.URL.Query().Get("business_type_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid business_type_id", nil, err)
			return
		}
		businessTypeID = &id
	}

	companies, err := c.workOrderService.ListCandidateContractors(r.Context(), businessTypeID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, companies)
}

func parseListQuery(r *http.Request) (dtos.ListWorkOrdersQuery, error) {
	var q dtos.ListWorkOrdersQuery

	if raw := r.URL.Query().Get("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			q.Statuses = append(q.Statuses, models.OrderStatusType(strings.ToUpper(strings.TrimSpace(s))))
		}
	}
	if raw := r.URL.Query().Get("priority"); raw != "" {
		p := models.PriorityType(strings.ToUpper(raw))
		if !p.Valid() {
			return q, utils.ErrInvalidPayload
		}
		q.Priority = &p
	}
	if raw := r.URL.Query().Get("client_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return q, err
		}
		q.ClientID = &id
	}
	return q, nil
}
