package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/gustavowmarques/work-logix-v2/internal/models"
)

// CreateClientRequest is step one of client onboarding: the site record
// plus the bulk-unit counts that seed the provisioning draft.
type CreateClientRequest struct {
	Name      string    `json:"name" validate:"required,min=1,max=255"`
	Address   string    `json:"address" validate:"required,min=1"`
	CompanyID uuid.UUID `json:"company_id" validate:"required"`
	Notes     *string   `json:"notes,omitempty"`

	DefaultEircode string `json:"default_eircode,omitempty" validate:"omitempty,max=10"`

	NumApartments int `json:"num_apartments" validate:"min=0"`
	NumDuplexes   int `json:"num_duplexes" validate:"min=0"`
	NumHouses     int `json:"num_houses" validate:"min=0"`
	NumCommercial int `json:"num_commercial_units" validate:"min=0"`
}

type CreateClientResponse struct {
	Client  *models.Client `json:"client"`
	DraftID *uuid.UUID     `json:"draft_id,omitempty"`
}

type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Address *string `json:"address,omitempty" validate:"omitempty,min=1"`
	Notes   *string `json:"notes,omitempty"`
}

// UnitPreview is one generated row of the review step. Edits to the
// preview are sent back verbatim on confirm.
type UnitPreview struct {
	Name     string          `json:"name" validate:"required,min=1,max=255"`
	UnitType models.UnitType `json:"unit_type" validate:"required,oneof=APARTMENT DUPLEX HOUSE COMMERCIAL"`

	Eircode *string `json:"eircode,omitempty"`
	Street  *string `json:"street,omitempty"`
	City    *string `json:"city,omitempty"`
	County  *string `json:"county,omitempty"`
}

type ReviewUnitsResponse struct {
	DraftID   uuid.UUID     `json:"draft_id"`
	ClientID  uuid.UUID     `json:"client_id"`
	Units     []UnitPreview `json:"units"`
	ExpiresAt time.Time     `json:"expires_at"`
}

type ConfirmUnitsRequest struct {
	Units []UnitPreview `json:"units" validate:"required,min=1,dive"`
}

type ConfirmUnitsResponse struct {
	ClientID uuid.UUID      `json:"client_id"`
	Units    []*models.Unit `json:"units"`
	Total    int            `json:"total"`
}
