// Package api implements the HTTP handlers for the StudyFlash API.
package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/studyflash/studyflash-api/internal/api/shared"
	"github.com/studyflash/studyflash-api/internal/domain"
	"github.com/studyflash/studyflash-api/internal/generation"
	"github.com/studyflash/studyflash-api/internal/quiz"
	"github.com/studyflash/studyflash-api/internal/service"
	"github.com/studyflash/studyflash-api/internal/service/auth"
	"github.com/studyflash/studyflash-api/internal/store"
)

// MapErrorToStatusCode maps domain, store, and service errors to HTTP status codes.
// Unknown errors map to 500.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Quota errors
	case errors.Is(err, service.ErrDailyLimitReached):
		return http.StatusTooManyRequests
	case errors.Is(err, service.ErrSubjectLimitReached):
		return http.StatusForbidden

	// Not-found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Upstream generation errors
	case errors.Is(err, generation.ErrContentBlocked):
		return http.StatusUnprocessableEntity
	case errors.Is(err, generation.ErrTransientFailure),
		errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrInvalidResponse):
		return http.StatusBadGateway

	// Validation errors
	case errors.Is(err, service.ErrEmptyPrompt),
		errors.Is(err, quiz.ErrInvalidMode),
		errors.Is(err, quiz.ErrNoQuestions),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for the given error.
// Internal details (SQL errors, upstream responses) never reach the client.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, auth.ErrExpiredRefreshToken):
		return "Refresh token has expired"
	case errors.Is(err, auth.ErrInvalidRefreshToken):
		return "Invalid refresh token"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid or expired token"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, domain.ErrUnauthorized):
		return "Authentication required"

	case errors.Is(err, service.ErrDailyLimitReached):
		return "Daily limit reached"
	case errors.Is(err, service.ErrSubjectLimitReached):
		return "Subject limit reached"

	case errors.Is(err, store.ErrProfileNotFound):
		return "User profile not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrSubjectNotFound):
		return "Subject not found"
	case errors.Is(err, store.ErrCardSetNotFound):
		return "Flashcard set not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email address is already registered"
	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.Is(err, generation.ErrContentBlocked):
		return "The provided notes could not be processed"
	case errors.Is(err, generation.ErrTransientFailure),
		errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrInvalidResponse):
		return "Flashcard generation is temporarily unavailable"

	case errors.Is(err, service.ErrEmptyPrompt):
		return "Prompt is required"
	case errors.Is(err, quiz.ErrInvalidMode):
		return "Invalid quiz mode"
	case errors.Is(err, quiz.ErrNoQuestions):
		return "This flashcard set cannot produce quiz questions"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return SanitizeValidationError(err)
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid identifier format"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps the error to a status code and safe message and writes
// the response, logging the underlying error. The defaultMessage is used when
// the error maps to a 500.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMessage string) {
	status := MapErrorToStatusCode(err)

	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMessage != "" {
		message = defaultMessage
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError converts a validation error into a client-safe
// message. Field names are preserved, internal details are not.
func SanitizeValidationError(err error) string {
	var fieldErr *domain.ValidationError
	if errors.As(err, &fieldErr) {
		return "Invalid " + fieldErr.Field + ": " + fieldErr.Message
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		return "Invalid field: " + validationErrs[0].Field()
	}

	return "Invalid request"
}
