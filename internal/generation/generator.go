package generation

import "context"

// Generator defines the interface for producing a study answer from raw
// notes. This interface serves as a boundary between the application core
// and external AI/LLM services, following the hexagonal architecture pattern.
type Generator interface {
	// Generate produces a concise summary of the key concepts in the
	// provided notes. The returned text becomes the back of the lead
	// flashcard; the remaining cards are derived locally by BuildCards.
	//
	// Returns an error wrapping one of the package sentinels
	// (ErrContentBlocked, ErrTransientFailure, ErrGenerationFailed,
	// ErrInvalidResponse) when the upstream call fails.
	Generate(ctx context.Context, notes string) (string, error)
}
