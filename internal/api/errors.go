package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/IsakPar/hanzi-vocab-val/internal/domain"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotLoaded):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrInvalidExport),
		errors.Is(err, domain.ErrUnknownExerciseType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for an
// internal error.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"
	case errors.Is(err, domain.ErrNotLoaded):
		return "Curriculum not loaded. POST /sync to initialize."
	case errors.Is(err, domain.ErrInvalidExport):
		return "Curriculum export is malformed"
	case errors.Is(err, domain.ErrUnknownExerciseType):
		return "Unknown exercise type"
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a validator error into a short
// user-facing message naming the offending field, without echoing
// request contents back.
func SanitizeValidationError(err error) string {
	msg := err.Error()
	if !strings.Contains(msg, "Field validation") {
		return "Validation error"
	}
	// "Key: 'Req.Text' Error:Field validation for 'Text' failed on the 'required' tag"
	parts := strings.Split(msg, "Error:")
	if len(parts) < 2 {
		return "Validation error"
	}
	fieldParts := strings.Split(parts[1], "'")
	if len(fieldParts) < 3 {
		return "Validation error"
	}
	field := fieldParts[1]
	if len(fieldParts) >= 5 {
		return fmt.Sprintf("Invalid %s: %s", field, validationTagMessage(fieldParts[3]))
	}
	return fmt.Sprintf("Invalid %s", field)
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too small"
	case "max":
		return "too large"
	case "oneof":
		return "invalid value"
	case "gt", "gte":
		return "value too small"
	default:
		return "validation failed"
	}
}
