package models

import (
	"time"

	"github.com/google/uuid"
)

// UnitDraft holds the pending bulk-unit counts captured when a client is
// created. It replaces ambient session state: the draft is an explicit
// record with an expiry, cleared on confirmation or swept once expired.
type UnitDraft struct {
	ID       uuid.UUID `json:"id"`
	ClientID uuid.UUID `json:"client_id"`

	DefaultEircode string `json:"default_eircode,omitempty"`

	NumApartments  int `json:"num_apartments"`
	NumDuplexes    int `json:"num_duplexes"`
	NumHouses      int `json:"num_houses"`
	NumCommercial  int `json:"num_commercial_units"`

	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (d *UnitDraft) TotalUnits() int {
	return d.NumApartments + d.NumDuplexes + d.NumHouses + d.NumCommercial
}

func (d *UnitDraft) Expired(now time.Time) bool {
	return now.After(d.ExpiresAt)
}
