package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// CardSetStatus represents the lifecycle state of a card set.
// A set is created pending before the external generation call, completed
// once the generated cards are persisted, and failed if the call fails.
type CardSetStatus string

// Possible card set status values
const (
	CardSetStatusPending   CardSetStatus = "pending"
	CardSetStatusCompleted CardSetStatus = "completed"
	CardSetStatusFailed    CardSetStatus = "failed"
)

// Common validation errors for CardSet
var (
	ErrEmptyCardSetID     = errors.New("card set ID cannot be empty")
	ErrEmptyCardSetUserID = errors.New("card set user ID cannot be empty")
	ErrEmptyCardSetTitle  = errors.New("card set title cannot be empty")
	ErrInvalidSetStatus   = errors.New("invalid card set status")
	ErrNoCards            = errors.New("completed card set must contain at least one card")
	ErrInvalidCard        = errors.New("card must have both a front and a back")
)

// DefaultSetTitle is used when a generation request carries no subject label.
const DefaultSetTitle = "AI Generated Flashcards"

// DefaultSubjectLabel is stamped on generated cards when the request names
// no subject.
const DefaultSubjectLabel = "General"

// Card is a single question/answer pair inside a card set.
type Card struct {
	Front   string `json:"front"`
	Back    string `json:"back"`
	Subject string `json:"subject,omitempty"`
}

// Validate checks if the Card has both sides.
func (c Card) Validate() error {
	if c.Front == "" || c.Back == "" {
		return ErrInvalidCard
	}
	return nil
}

// CardSet is one persisted generation result: an ordered list of cards
// stored as a single record. Cards are serialized to a JSONB content column.
type CardSet struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"user_id"`
	Title     string        `json:"title"`
	Status    CardSetStatus `json:"status"`
	Cards     []Card        `json:"cards"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewPendingCardSet creates a CardSet in the pending state, reserving a
// generation slot before the external call is made. An empty title defaults
// to DefaultSetTitle.
func NewPendingCardSet(userID uuid.UUID, title string) (*CardSet, error) {
	if title == "" {
		title = DefaultSetTitle
	}

	now := time.Now().UTC()
	set := &CardSet{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Status:    CardSetStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}

	return set, nil
}

// Validate checks if the CardSet has valid data.
func (s *CardSet) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptyCardSetID
	}

	if s.UserID == uuid.Nil {
		return ErrEmptyCardSetUserID
	}

	if s.Title == "" {
		return ErrEmptyCardSetTitle
	}

	switch s.Status {
	case CardSetStatusPending, CardSetStatusFailed:
	case CardSetStatusCompleted:
		if len(s.Cards) == 0 {
			return ErrNoCards
		}
		for _, card := range s.Cards {
			if err := card.Validate(); err != nil {
				return err
			}
		}
	default:
		return ErrInvalidSetStatus
	}

	return nil
}

// Complete attaches the generated cards and moves the set to completed.
func (s *CardSet) Complete(cards []Card) error {
	orig := *s

	s.Cards = cards
	s.Status = CardSetStatusCompleted

	if err := s.Validate(); err != nil {
		*s = orig
		return err
	}

	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Fail marks the set as failed, releasing its quota slot.
func (s *CardSet) Fail() {
	s.Status = CardSetStatusFailed
	s.Cards = nil
	s.UpdatedAt = time.Now().UTC()
}

// ContentJSON serializes the card list for the JSONB content column.
func (s *CardSet) ContentJSON() (json.RawMessage, error) {
	if s.Cards == nil {
		return json.RawMessage("[]"), nil
	}
	return json.Marshal(s.Cards)
}

// SetContentJSON deserializes the JSONB content column into the card list.
func (s *CardSet) SetContentJSON(content json.RawMessage) error {
	if len(content) == 0 {
		s.Cards = nil
		return nil
	}
	return json.Unmarshal(content, &s.Cards)
}
