package service

import "errors"

// Common service-level errors
var (
	// ErrEmptyPrompt is returned when a generation is requested with no notes text.
	ErrEmptyPrompt = errors.New("prompt is required")

	// ErrDailyLimitReached is returned when a freemium user has exhausted
	// their daily generation quota.
	ErrDailyLimitReached = errors.New("daily generation limit reached")

	// ErrSubjectLimitReached is returned when creating a subject would
	// exceed the per-user subject cap.
	ErrSubjectLimitReached = errors.New("subject limit reached")

	// ErrInvalidCredentials is returned when authentication fails.
	// It deliberately does not distinguish unknown emails from wrong
	// passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
