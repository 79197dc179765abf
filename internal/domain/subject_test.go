package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewSubject(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	subject, err := NewSubject(userID, "Biology", "Cell structure and function", "#10B981")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if subject.Name != "Biology" {
		t.Errorf("Expected name Biology, got %s", subject.Name)
	}
	if subject.Color != "#10B981" {
		t.Errorf("Expected color #10B981, got %s", subject.Color)
	}

	// Empty color falls back to the default
	subject, err = NewSubject(userID, "Math", "", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if subject.Color != DefaultSubjectColor {
		t.Errorf("Expected default color %s, got %s", DefaultSubjectColor, subject.Color)
	}

	// Invalid inputs
	if _, err := NewSubject(uuid.Nil, "Math", "", ""); err != ErrEmptySubjectUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptySubjectUserID, err)
	}
	if _, err := NewSubject(userID, "", "", ""); err != ErrEmptySubjectName {
		t.Errorf("Expected error %v, got %v", ErrEmptySubjectName, err)
	}
	if _, err := NewSubject(userID, strings.Repeat("x", 101), "", ""); err != ErrSubjectNameTooLong {
		t.Errorf("Expected error %v, got %v", ErrSubjectNameTooLong, err)
	}
	if _, err := NewSubject(userID, "Math", "", "purple"); err != ErrInvalidColor {
		t.Errorf("Expected error %v, got %v", ErrInvalidColor, err)
	}
}

func TestSubjectRename(t *testing.T) {
	t.Parallel()
	subject, _ := NewSubject(uuid.New(), "Biology", "", "")

	if err := subject.Rename("Advanced Biology", "Genetics", "#F59E0B"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if subject.Name != "Advanced Biology" || subject.Description != "Genetics" {
		t.Errorf("Unexpected subject after rename: %+v", subject)
	}

	// Invalid rename leaves the subject untouched
	if err := subject.Rename("", "", ""); err != ErrEmptySubjectName {
		t.Errorf("Expected error %v, got %v", ErrEmptySubjectName, err)
	}
	if subject.Name != "Advanced Biology" {
		t.Errorf("Expected name to be preserved, got %s", subject.Name)
	}
}

func TestValidHexColor(t *testing.T) {
	t.Parallel()
	valid := []string{"#8B5CF6", "#fff", "#000000"}
	for _, c := range valid {
		if !validHexColor(c) {
			t.Errorf("Expected %s to be valid", c)
		}
	}

	invalid := []string{"", "8B5CF6", "#8B5CG6", "#12345", "#"}
	for _, c := range invalid {
		if validHexColor(c) {
			t.Errorf("Expected %s to be invalid", c)
		}
	}
}
