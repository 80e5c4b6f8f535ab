package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/gustavowmarques/work-logix-v2/internal/dtos"
	"github.com/gustavowmarques/work-logix-v2/internal/services"
	"github.com/gustavowmarques/work-logix-v2/internal/utils"
)

type ClientsController struct {
	clientService       *services.ClientService
	provisioningService *services.UnitProvisioningService
	actorResolver       *services.ActorResolver
	validate            *validator.Validate
}

func NewClientsController(
	clientService *services.ClientService,
	provisioningService *services.UnitProvisioningService,
	actorResolver *services.ActorResolver,
) *ClientsController {
	return &ClientsController{
		clientService:       clientService,
		provisioningService: provisioningService,
		actorResolver:       actorResolver,
		validate:            validator.New(),
	}
}

// POST /api/v1/clients
func (c *ClientsController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "CreateClientHandler")

	actor, err := resolveActor(r, c.actorResolver)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	resp, err := c.provisioningService.CreateClientWithDraft(r.Context(), actor, req)
	if err != nil {
		logger.WithError(err).Error("Create client failed")
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// GET /api/v1/clients
func (c *ClientsController) ListHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, c.actorResolver)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	clients, err := c.clientService.ListClients(r.Context(), actor)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, clients)
}

// GET /api/v1/clients/{id}
func (c *ClientsController) GetHandler(w http.ResponseWriter, r *http.Request) {
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

	client, err := c.clientService.GetClient(r.Context(), actor, id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, client)
}

// PATCH /api/v1/clients/{id}
func (c *ClientsController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
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

	var req dtos.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	client, err := c.clientService.UpdateClient(r.Context(), actor, id, req)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, client)
}

// DELETE /api/v1/clients/{id}
func (c *ClientsController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
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

	if err := c.clientService.DeleteClient(r.Context(), actor, id); err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GET /api/v1/clients/{id}/units
func (c *ClientsController) ListUnitsHandler(w http.ResponseWriter, r *http.Request) {
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

	units, err := c.clientService.ListUnits(r.Context(), actor, id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, units)
}

// DELETE /api/v1/clients/{id}/units/{unitID}
func (c *ClientsController) DeleteUnitHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, c.actorResolver)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	clientID, err := pathUUID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	unitID, err := pathUUID(r, "unitID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	if err := c.clientService.DeleteUnit(r.Context(), actor, clientID, unitID); err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GET /api/v1/unit-drafts/{id}/review
func (c *ClientsController) ReviewUnitsHandler(w http.ResponseWriter, r *http.Request) {
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

	resp, err := c.provisioningService.ReviewUnits(r.Context(), actor, id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// POST /api/v1/unit-drafts/{id}/confirm
func (c *ClientsController) ConfirmUnitsHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "ConfirmUnitsHandler")

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

	var req dtos.ConfirmUnitsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	resp, err := c.provisioningService.ConfirmUnits(r.Context(), actor, id, req)
	if err != nil {
		logger.WithError(err).Error("Confirm units failed")
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}
