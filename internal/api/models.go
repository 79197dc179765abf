package api

import (
	"github.com/google/uuid"
	"github.com/studyflash/studyflash-api/internal/domain"
	"github.com/studyflash/studyflash-api/internal/quiz"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// GenerateRequest defines the payload for the flashcard generation endpoint.
// Subject is an optional label stamped on the generated cards and used as
// the set title.
type GenerateRequest struct {
	Prompt  string `json:"prompt"  validate:"required"`
	Subject string `json:"subject" validate:"omitempty,max=100"`
}

// GenerateResponse defines the successful response for the generation
// endpoint. Field names follow the shape the web client consumes.
type GenerateResponse struct {
	// Flashcards is the generated card list
	Flashcards []domain.Card `json:"flashcards"`

	// RemainingCount is the number of generations left in today's window
	RemainingCount int `json:"remainingCount"`

	// PlanType is the caller's subscription tier
	PlanType string `json:"planType"`

	// SavedFlashcard is the persisted card set record
	SavedFlashcard *domain.CardSet `json:"savedFlashcard"`
}

// QuotaExceededResponse is the 429 body for an exhausted daily generation
// quota. The message tells freemium users how to lift the limit.
type QuotaExceededResponse struct {
	Error          string `json:"error"`
	Message        string `json:"message"`
	RemainingCount int    `json:"remainingCount"`
}

// CardSetListResponse defines the response for the card set listing endpoint.
type CardSetListResponse struct {
	FlashcardSets []*domain.CardSet `json:"flashcard_sets"`
}

// SubjectRequest defines the payload for creating or updating a subject.
type SubjectRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Color       string `json:"color"       validate:"omitempty,hexcolor"`
}

// SubjectListResponse defines the response for the subject listing endpoint.
type SubjectListResponse struct {
	Subjects []*domain.Subject `json:"subjects"`
}

// PlanResponse defines the response for the plan summary endpoint.
type PlanResponse struct {
	PlanType     string `json:"plan_type"`
	UsedToday    int    `json:"used_today"`
	DailyLimit   int    `json:"daily_limit"`
	Remaining    int    `json:"remaining"`
	SubjectLimit int    `json:"subject_limit"`
}

// QuizResponse defines the response for the quiz endpoint.
type QuizResponse struct {
	SetID     uuid.UUID       `json:"set_id"`
	Mode      quiz.Mode       `json:"mode"`
	Questions []quiz.Question `json:"questions"`
}
