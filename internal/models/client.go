package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is a managed site/building owned by exactly one property-manager
// company.
type Client struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CompanyID uuid.UUID `json:"company_id"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
