package models

import (
	"time"

	"github.com/google/uuid"
)

type UnitType string

const (
	UnitTypeApartment  UnitType = "APARTMENT"
	UnitTypeDuplex     UnitType = "DUPLEX"
	UnitTypeHouse      UnitType = "HOUSE"
	UnitTypeCommercial UnitType = "COMMERCIAL"
)

// Unit represents an individually addressable space inside a client site.
// Work orders that target the whole site carry no unit and set the
// common-area flag instead.
type Unit struct {
	ID       uuid.UUID `json:"id"`
	ClientID uuid.UUID `json:"client_id"`
	Name     string    `json:"name"`
	UnitType UnitType  `json:"unit_type"`

	Eircode *string `json:"eircode,omitempty"`
	Street  *string `json:"street,omitempty"`
	City    *string `json:"city,omitempty"`
	County  *string `json:"county,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
