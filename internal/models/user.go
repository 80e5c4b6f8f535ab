package models

import (
	"time"

	"github.com/google/uuid"
)

type RoleType string

const (
	RoleAdmin           RoleType = "ADMIN"
	RolePropertyManager RoleType = "PROPERTY_MANAGER"
	RoleContractor      RoleType = "CONTRACTOR"
	RoleAssistant       RoleType = "ASSISTANT"
)

func (r RoleType) Valid() bool {
	switch r {
	case RoleAdmin, RolePropertyManager, RoleContractor, RoleAssistant:
		return true
	}
	return false
}

// User is an actor. A contractor-role user acts on behalf of their
// affiliated company; authorization and assignment are company-level.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         RoleType   `json:"role"`
	CompanyID    *uuid.UUID `json:"company_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
