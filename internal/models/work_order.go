package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatusType string

const (
	OrderStatusNew       OrderStatusType = "NEW"
	OrderStatusAssigned  OrderStatusType = "ASSIGNED"
	OrderStatusAccepted  OrderStatusType = "ACCEPTED"
	OrderStatusCompleted OrderStatusType = "COMPLETED"
	OrderStatusReturned  OrderStatusType = "RETURNED"
)

type PriorityType string

const (
	PriorityLow      PriorityType = "LOW"
	PriorityMedium   PriorityType = "MEDIUM"
	PriorityHigh     PriorityType = "HIGH"
	PriorityCritical PriorityType = "CRITICAL"
)

// priorityRank orders priorities for sorting. Higher is more urgent.
var priorityRank = map[PriorityType]int{
	PriorityLow:      0,
	PriorityMedium:   1,
	PriorityHigh:     2,
	PriorityCritical: 3,
}

func (p PriorityType) Rank() int { return priorityRank[p] }

func (p PriorityType) Valid() bool {
	_, ok := priorityRank[p]
	return ok
}

// WorkOrder is a maintenance request routed between the two declared
// candidate contractor companies until one accepts and completes it.
type WorkOrder struct {
	Versioned

	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    PriorityType    `json:"priority"`
	Status      OrderStatusType `json:"status"`

	ClientID       *uuid.UUID `json:"client_id,omitempty"`
	UnitID         *uuid.UUID `json:"unit_id,omitempty"`
	CommonArea     bool       `json:"common_area"`
	BusinessTypeID *uuid.UUID `json:"business_type_id,omitempty"`

	CreatedBy uuid.UUID `json:"created_by"`

	PreferredContractorID *uuid.UUID `json:"preferred_contractor_id,omitempty"`
	SecondContractorID    *uuid.UUID `json:"second_contractor_id,omitempty"`
	AssignedContractorID  *uuid.UUID `json:"assigned_contractor_id,omitempty"`

	RejectedByPreferred bool `json:"rejected_by_preferred"`
	RejectedBySecond    bool `json:"rejected_by_second"`

	AcceptedAt      *time.Time `json:"accepted_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CompletionNotes *string    `json:"completion_notes,omitempty"`
	AttachmentKey   *string    `json:"attachment_key,omitempty"`

	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (wo *WorkOrder) GetID() string {
	return wo.ID.String()
}

// IsCandidate reports whether the company occupies one of the two
// declared contractor slots on this order.
func (wo *WorkOrder) IsCandidate(companyID uuid.UUID) bool {
	if wo.PreferredContractorID != nil && *wo.PreferredContractorID == companyID {
		return true
	}
	if wo.SecondContractorID != nil && *wo.SecondContractorID == companyID {
		return true
	}
	return false
}

// IsAssigned reports whether the company currently holds responsibility
// for action on this order.
func (wo *WorkOrder) IsAssigned(companyID uuid.UUID) bool {
	return wo.AssignedContractorID != nil && *wo.AssignedContractorID == companyID
}

// HasRejected reports whether the company already rejected this order in
// whichever slot it occupies. A rejected candidate is never re-admitted.
func (wo *WorkOrder) HasRejected(companyID uuid.UUID) bool {
	if wo.RejectedByPreferred && wo.PreferredContractorID != nil && *wo.PreferredContractorID == companyID {
		return true
	}
	if wo.RejectedBySecond && wo.SecondContractorID != nil && *wo.SecondContractorID == companyID {
		return true
	}
	return false
}
