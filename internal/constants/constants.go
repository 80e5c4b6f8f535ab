package constants

import "time"

const (
	// How long a unit draft survives before the sweeper may remove it.
	UnitDraftTTL = 30 * time.Minute

	// Cron spec for the unit-draft expiry sweep.
	DraftSweepSchedule = "@every 10m"

	// Attempts for the optimistic read-mutate-write loop on
	// administrative edits.
	MaxUpdateRetries = 3

	// Upper bound on units generated from a single draft.
	MaxUnitsPerDraft = 500
)
