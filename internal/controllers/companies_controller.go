package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/gustavowmarques/work-logix-v2/internal/dtos"
	"github.com/gustavowmarques/work-logix-v2/internal/repositories"
	"github.com/gustavowmarques/work-logix-v2/internal/services"
	"github.com/gustavowmarques/work-logix-v2/internal/utils"
)

type CompaniesController struct {
	companyService *services.CompanyService
	actorResolver  *services.ActorResolver
	validate       *validator.Validate
}

func NewCompaniesController(
	companyService *services.CompanyService,
	actorResolver *services.ActorResolver,
) *CompaniesController {
	return &CompaniesController{
		companyService: companyService,
		actorResolver:  actorResolver,
		validate:       validator.New(),
	}
}

// POST /api/v1/companies
func (c *CompaniesController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "CreateCompanyHandler")

	actor, err := resolveActor(r, c.actorResolver)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	company, err := c.companyService.CreateCompany(r.Context(), actor, req)
	if err != nil {
		logger.WithError(err).Error("Create company failed")
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, company)
}

// GET /api/v1/companies
func (c *CompaniesController) ListHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := resolveActor(r, c.actorResolver); err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var filter repositories.CompanyFilter
	q := r.URL.Query()
	parseFlag := func(name string) *bool {
		switch q.Get(name) {
		case "true":
			v := true
			return &v
		case "false":
			v := false
			return &v
		}
		return nil
	}
	filter.IsContractor = parseFlag("is_contractor")
	filter.IsPropertyManager = parseFlag("is_property_manager")
	filter.IsClient = parseFlag("is_client")

	companies, err := c.companyService.ListCompanies(r.Context(), filter)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, companies)
}

// GET /api/v1/companies/{id}
func (c *CompaniesController) GetHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := resolveActor(r, c.actorResolver); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	company, err := c.companyService.GetCompany(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, company)
}

// PATCH /api/v1/companies/{id}
func (c *CompaniesController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
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

	var req dtos.UpdateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	company, err := c.companyService.UpdateCompany(r.Context(), actor, id, req)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, company)
}

// DELETE /api/v1/companies/{id}
func (c *CompaniesController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
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

	if err := c.companyService.DeleteCompany(r.Context(), actor, id); err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GET /api/v1/business-types
func (c *CompaniesController) ListBusinessTypesHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := resolveActor(r, c.actorResolver); err != nil {
		utils.HandleAppError(w, err)
		return
	}

	types, err := c.companyService.ListBusinessTypes(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, types)
}
