package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/gustavowmarques/work-logix-v2/internal/dtos"
	"github.com/gustavowmarques/work-logix-v2/internal/middleware"
	"github.com/gustavowmarques/work-logix-v2/internal/services"
	"github.com/gustavowmarques/work-logix-v2/internal/utils"
)

// formatValidationErrors converts validator errors into a user-friendly format.
func formatValidationErrors(errs validator.ValidationErrors) []dtos.ValidationErrorDetail {
	var details []dtos.ValidationErrorDetail
	for _, err := range errs {
		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("Field '%s' is required", err.Field())
		case "min":
			message = fmt.Sprintf("Field '%s' must be at least %s in length", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("Field '%s' must not exceed %s in length", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("Field '%s' must be one of [%s]", err.Field(), err.Param())
		default:
			message = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", err.Field(), err.Tag())
		}
		details = append(details, dtos.ValidationErrorDetail{
			Field:   err.Field(),
			Message: message,
			Code:    "validation_" + err.Tag(),
		})
	}
	return details
}

func respondValidationError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed",
			formatValidationErrors(validationErrs),
		)
		return
	}
	utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
}

// resolveActor pulls the authenticated subject out of the request
// context and loads the acting user.
func resolveActor(r *http.Request, resolver *services.ActorResolver) (services.Actor, error) {
	ctxUserID := r.Context().Value(middleware.ContextKeyUserID)
	if ctxUserID == nil {
		return services.Actor{}, &utils.AppError{
			StatusCode: http.StatusUnauthorized,
			Code:       utils.ErrCodeUnauthorized,
			Message:    "Missing userID in context",
		}
	}
	actor, err := resolver.Resolve(r.Context(), ctxUserID.(string))
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return services.Actor{}, &utils.AppError{
				StatusCode: http.StatusUnauthorized,
				Code:       utils.ErrCodeUnauthorized,
				Message:    "Unknown user",
				Err:        err,
			}
		}
		return services.Actor{}, err
	}
	return actor, nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidPayload,
			Message:    fmt.Sprintf("Invalid %s in path", name),
			Err:        err,
		}
	}
	return id, nil
}

// respondDomainError maps domain sentinels to HTTP responses. A lost
// version race returns 409 with the latest record in the details so
// the client can re-submit against current state.
func respondDomainError(w http.ResponseWriter, err error) {
	var conflict *utils.RowVersionConflictError
	if errors.As(err, &conflict) {
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeRowVersionConflict,
			"Record was modified concurrently", conflict.Current,
		)
		return
	}

	switch {
	case errors.Is(err, utils.ErrNotFound):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Not found", nil)
	case errors.Is(err, utils.ErrNotAllowed),
		errors.Is(err, utils.ErrNotCandidate),
		errors.Is(err, utils.ErrNotAssignedContractor),
		errors.Is(err, utils.ErrCandidateRejected):
		utils.RespondErrorWithCode(w, http.StatusForbidden, utils.ErrCodeForbidden, err.Error(), nil)
	case errors.Is(err, utils.ErrWrongStatus):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeWrongStatus, err.Error(), nil)
	case errors.Is(err, utils.ErrInvalidPayload),
		errors.Is(err, utils.ErrMissingCompletionProof),
		errors.Is(err, utils.ErrUnitOutsideClient),
		errors.Is(err, utils.ErrDuplicateContractorPair),
		errors.Is(err, utils.ErrDraftExpired):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil)
	case errors.Is(err, utils.ErrRowVersionConflict):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeRowVersionConflict, err.Error(), nil)
	default:
		utils.HandleAppError(w, err)
	}
}
