package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// PlanType identifies the subscription tier of a profile.
type PlanType string

// Supported plan tiers.
const (
	PlanFreemium PlanType = "freemium"
	PlanPremium  PlanType = "premium"
)

// Common validation errors for Profile
var (
	ErrEmptyProfileID     = errors.New("profile ID cannot be empty")
	ErrEmptyProfileUserID = errors.New("profile user ID cannot be empty")
	ErrInvalidPlanType    = errors.New("invalid plan type")
)

// Profile holds per-user plan information. Each user has exactly one
// profile, created at registration with the freemium tier.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	PlanType  PlanType  `json:"plan_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProfile creates a freemium Profile for the given user.
func NewProfile(userID uuid.UUID) (*Profile, error) {
	now := time.Now().UTC()
	profile := &Profile{
		ID:        uuid.New(),
		UserID:    userID,
		PlanType:  PlanFreemium,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Validate checks if the Profile has valid data.
func (p *Profile) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProfileID
	}

	if p.UserID == uuid.Nil {
		return ErrEmptyProfileUserID
	}

	if !p.PlanType.Valid() {
		return ErrInvalidPlanType
	}

	return nil
}

// Upgrade moves the profile to the premium tier and refreshes UpdatedAt.
func (p *Profile) Upgrade() {
	p.PlanType = PlanPremium
	p.UpdatedAt = time.Now().UTC()
}

// IsFreemium reports whether the profile is on the free tier.
func (p *Profile) IsFreemium() bool {
	return p.PlanType == PlanFreemium
}

// Valid reports whether the plan type is one of the supported tiers.
func (t PlanType) Valid() bool {
	switch t {
	case PlanFreemium, PlanPremium:
		return true
	default:
		return false
	}
}
