package dtos

import "github.com/google/uuid"

type CreateCompanyRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=255"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Website string `json:"website,omitempty" validate:"omitempty,url"`

	IsContractor      bool `json:"is_contractor"`
	IsClient          bool `json:"is_client"`
	IsPropertyManager bool `json:"is_property_manager"`

	BusinessTypeID *uuid.UUID `json:"business_type_id,omitempty"`
}

type UpdateCompanyRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Address *string `json:"address,omitempty"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Website *string `json:"website,omitempty" validate:"omitempty,url"`

	BusinessTypeID *uuid.UUID `json:"business_type_id,omitempty"`
}
