package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/gustavowmarques/work-logix-v2/internal/models"
)

type CreateWorkOrderRequest struct {
	Title       string              `json:"title" validate:"required,min=1,max=255"`
	Description string              `json:"description" validate:"required,min=1"`
	Priority    models.PriorityType `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`

	ClientID       *uuid.UUID `json:"client_id,omitempty"`
	UnitID         *uuid.UUID `json:"unit_id,omitempty"`
	CommonArea     bool       `json:"common_area"`
	BusinessTypeID *uuid.UUID `json:"business_type_id,omitempty"`

	PreferredContractorID uuid.UUID  `json:"preferred_contractor_id" validate:"required"`
	SecondContractorID    *uuid.UUID `json:"second_contractor_id,omitempty"`

	DueDate *time.Time `json:"due_date,omitempty"`
}

// UpdateWorkOrderRequest is the administrative edit payload. Nil fields
// are left unchanged; created_by can never be edited.
type UpdateWorkOrderRequest struct {
	Title       *string              `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string              `json:"description,omitempty" validate:"omitempty,min=1"`
	Priority    *models.PriorityType `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	DueDate     *time.Time           `json:"due_date,omitempty"`

	PreferredContractorID *uuid.UUID `json:"preferred_contractor_id,omitempty"`
	SecondContractorID    *uuid.UUID `json:"second_contractor_id,omitempty"`
}

type CompleteWorkOrderRequest struct {
	WorkOrderID     uuid.UUID `json:"work_order_id" validate:"required"`
	CompletionNotes string    `json:"completion_notes" validate:"required,min=1"`
	AttachmentKey   string    `json:"attachment_key" validate:"required,min=1"`
}

type WorkOrderActionRequest struct {
	WorkOrderID uuid.UUID `json:"work_order_id" validate:"required"`
}

// ListWorkOrdersQuery mirrors the supported query-string filters.
type ListWorkOrdersQuery struct {
	Statuses []models.OrderStatusType
	Priority *models.PriorityType
	ClientID *uuid.UUID
}

type ListWorkOrdersResponse struct {
	WorkOrders []*models.WorkOrder `json:"work_orders"`
	Total      int                 `json:"total"`
}
