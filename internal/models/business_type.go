package models

import "github.com/google/uuid"

// BusinessType is a trade category (plumbing, electrical, ...) used to
// filter candidate contractors for a work order.
type BusinessType struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
