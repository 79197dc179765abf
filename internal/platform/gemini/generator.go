package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"text/template"
	"time"

	"github.com/studyflash/studyflash-api/internal/config"
	"github.com/studyflash/studyflash-api/internal/generation"
	"google.golang.org/genai"
)

// ErrEmptyNotes is returned when a generation is requested for empty notes.
var ErrEmptyNotes = errors.New("notes text cannot be empty")

// defaultPromptTemplate asks the model for a compact key-concepts summary.
// The response text becomes the back of the lead flashcard, so it must be
// plain prose rather than structured output.
const defaultPromptTemplate = `You are a study assistant. Read the following notes and answer the question "What are the key concepts I should remember?" in two or three plain sentences. Do not use markdown, bullet points, or headings.

Notes:
{{.Notes}}`

// promptData is the input to the prompt template.
type promptData struct {
	Notes string
}

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API to summarize the key concepts in a user's notes.
type GeminiGenerator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// promptTemplate is the parsed template for creating prompts
	promptTemplate *template.Template

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string
}

// NewGeminiGenerator creates a new instance of GeminiGenerator with the provided dependencies.
func NewGeminiGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	promptTemplate, err := template.New("keyconcepts").Parse(defaultPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			generation.ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &GeminiGenerator{
		logger:         logger,
		config:         cfg,
		promptTemplate: promptTemplate,
		client:         client,
		model:          cfg.ModelName,
	}, nil
}

// Generate produces a key-concepts summary of the notes via the Gemini API.
// Each attempt is bounded by the configured request timeout, and transient
// failures are retried with exponential backoff.
func (g *GeminiGenerator) Generate(ctx context.Context, notes string) (string, error) {
	prompt, err := g.createPrompt(ctx, notes)
	if err != nil {
		return "", err
	}
	return g.callWithRetry(ctx, prompt)
}

// createPrompt renders the prompt template with the given notes.
func (g *GeminiGenerator) createPrompt(ctx context.Context, notes string) (string, error) {
	if strings.TrimSpace(notes) == "" {
		return "", ErrEmptyNotes
	}

	var buf bytes.Buffer
	if err := g.promptTemplate.Execute(&buf, promptData{Notes: notes}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	g.logger.DebugContext(ctx, "Prompt generated",
		"notes_length", len(notes),
		"prompt_length", buf.Len())

	return buf.String(), nil
}

// callWithRetry calls the Gemini API with exponential backoff retry logic.
//
// Transient failures (network errors, upstream unavailability) are retried
// up to config.MaxRetries additional times with jittered exponential
// backoff. Permanent failures (content blocked by safety filters, empty
// responses) are returned immediately.
func (g *GeminiGenerator) callWithRetry(ctx context.Context, prompt string) (string, error) {
	maxRetries := g.config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	baseDelaySeconds := g.config.RetryBaseDelaySeconds
	if baseDelaySeconds < 1 {
		baseDelaySeconds = 1
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		attemptNum := attempt + 1
		g.logger.InfoContext(ctx, "Making Gemini API call",
			"attempt", attemptNum,
			"max_attempts", maxRetries+1)

		answer, err := g.callOnce(ctx, prompt)
		if err == nil {
			g.logger.InfoContext(ctx, "Gemini API call successful", "attempt", attemptNum)
			return answer, nil
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attemptNum,
			"error", err)

		if errors.Is(err, generation.ErrContentBlocked) || errors.Is(err, generation.ErrInvalidResponse) {
			return "", err
		}

		if attempt >= maxRetries {
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				generation.ErrTransientFailure, maxRetries)
		}

		// delay = baseDelay * (2^attempt) * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		g.logger.InfoContext(ctx, "Retrying after delay",
			"attempt", attemptNum,
			"delay", delay.String())

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// callOnce makes a single bounded call to the Gemini API and classifies
// the outcome.
func (g *GeminiGenerator) callOnce(ctx context.Context, prompt string) (string, error) {
	callCtx := ctx
	if g.config.RequestTimeoutSeconds > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, time.Duration(g.config.RequestTimeoutSeconds)*time.Second)
		defer cancel()
	}

	resp, err := g.client.Models.GenerateContent(callCtx, g.model, genai.Text(prompt), nil)
	if err != nil {
		// Network and upstream errors are assumed transient
		return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: finish reason safety", generation.ErrContentBlocked)
	}

	answer := strings.TrimSpace(resp.Text())
	if answer == "" {
		return "", fmt.Errorf("%w: empty response text", generation.ErrInvalidResponse)
	}

	return answer, nil
}
