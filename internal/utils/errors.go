package utils

import (
	"errors"
	"net/http"

	"github.com/gustavowmarques/work-logix-v2/internal/models"
)

/*
Sentinel errors for work-order domain logic.
The controller can do: if errors.Is(err, ErrXYZ) { ... }
*/
var (
	// Permission failures
	ErrNotAllowed            = errors.New("not_allowed")
	ErrNotCandidate          = errors.New("not_candidate")
	ErrNotAssignedContractor = errors.New("not_assigned_contractor")
	ErrCandidateRejected     = errors.New("candidate_already_rejected")

	// Invalid-state failures
	ErrWrongStatus = errors.New("wrong_status")

	// Validation failures
	ErrInvalidPayload          = errors.New("invalid_payload")
	ErrMissingCompletionProof  = errors.New("missing_completion_proof")
	ErrUnitOutsideClient       = errors.New("unit_outside_client")
	ErrDuplicateContractorPair = errors.New("duplicate_contractor_pair")
	ErrDraftExpired            = errors.New("draft_expired")

	// Store failures
	ErrNotFound           = errors.New("not_found")
	ErrRowVersionConflict = errors.New("row_version_conflict")
	ErrNoRowsUpdated      = errors.New("no_rows_updated")
)

/*
RowVersionConflictError is returned when an optimistic write loses the
race. It carries the latest WorkOrder so the controller can hand the
current state back to the client.
*/
type RowVersionConflictError struct {
	Current *models.WorkOrder
}

func (e *RowVersionConflictError) Error() string {
	return "row_version_conflict"
}

func (e *RowVersionConflictError) Unwrap() error {
	return ErrRowVersionConflict
}

func NewRowVersionConflictError(current *models.WorkOrder) error {
	return &RowVersionConflictError{Current: current}
}

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
