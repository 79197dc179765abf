package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Subject
var (
	ErrEmptySubjectID     = errors.New("subject ID cannot be empty")
	ErrEmptySubjectUserID = errors.New("subject user ID cannot be empty")
	ErrEmptySubjectName   = errors.New("subject name cannot be empty")
	ErrSubjectNameTooLong = errors.New("subject name must be at most 100 characters")
	ErrInvalidColor       = errors.New("subject color must be a hex color like #8B5CF6")
)

// DefaultSubjectColor is applied when a subject is created without a color.
const DefaultSubjectColor = "#8B5CF6"

// Subject is a user-defined label used to group flashcard sets.
type Subject struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewSubject creates a new Subject owned by the given user.
// An empty color defaults to DefaultSubjectColor.
func NewSubject(userID uuid.UUID, name, description, color string) (*Subject, error) {
	if color == "" {
		color = DefaultSubjectColor
	}

	now := time.Now().UTC()
	subject := &Subject{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Description: description,
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := subject.Validate(); err != nil {
		return nil, err
	}

	return subject, nil
}

// Validate checks if the Subject has valid data.
func (s *Subject) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySubjectID
	}

	if s.UserID == uuid.Nil {
		return ErrEmptySubjectUserID
	}

	if s.Name == "" {
		return ErrEmptySubjectName
	}

	if len(s.Name) > 100 {
		return ErrSubjectNameTooLong
	}

	if !validHexColor(s.Color) {
		return ErrInvalidColor
	}

	return nil
}

// Rename updates the mutable fields and refreshes UpdatedAt.
func (s *Subject) Rename(name, description, color string) error {
	orig := *s

	s.Name = name
	s.Description = description
	if color != "" {
		s.Color = color
	}

	if err := s.Validate(); err != nil {
		*s = orig
		return err
	}

	s.UpdatedAt = time.Now().UTC()
	return nil
}

// validHexColor accepts #RGB and #RRGGBB hex color notations.
func validHexColor(color string) bool {
	if len(color) != 4 && len(color) != 7 {
		return false
	}
	if color[0] != '#' {
		return false
	}
	for _, c := range color[1:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
