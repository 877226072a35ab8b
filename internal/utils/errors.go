package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons. Controllers dispatch on these
// with errors.Is.
var (
	ErrPropertyNotFound    = errors.New("property_not_found")
	ErrApplicationNotFound = errors.New("application_not_found")
	ErrTenantNotFound      = errors.New("tenant_not_found")
	ErrManagerNotFound     = errors.New("manager_not_found")
	ErrLeaseNotFound       = errors.New("lease_not_found")

	ErrAlreadyFavorited = errors.New("already_favorited")
	ErrAlreadyDecided   = errors.New("application_already_decided")
	ErrAlreadyExists    = errors.New("already_exists")

	ErrInvalidStatus      = errors.New("invalid_status")
	ErrMissingPriceFields = errors.New("property_missing_price_fields")

	// External collaborators (geocoding, object storage, mail/SMS).
	ErrExternalServiceFailure = errors.New("external_service_failure")
)

// AppError lets a service hand the controller a ready-to-serve
// status/code/message triple for cases the sentinel set doesn't cover.
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

func (e *AppError) Unwrap() error { return e.Err }

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
