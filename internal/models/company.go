package models

import (
	"time"

	"github.com/google/uuid"
)

// Company represents a contractor firm, a property-manager agency, or a
// managed-client organization. Role flags distinguish them instead of
// separate tables; a single company may hold more than one flag.
type Company struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address,omitempty"`
	Email   string    `json:"email,omitempty"`
	Phone   string    `json:"phone,omitempty"`
	Website string    `json:"website,omitempty"`

	IsContractor      bool `json:"is_contractor"`
	IsClient          bool `json:"is_client"`
	IsPropertyManager bool `json:"is_property_manager"`

	// Trade category used to match contractors to work orders.
	BusinessTypeID *uuid.UUID `json:"business_type_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
