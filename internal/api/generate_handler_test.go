package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyflash/studyflash-api/internal/api/shared"
	"github.com/studyflash/studyflash-api/internal/domain"
	"github.com/studyflash/studyflash-api/internal/generation"
	"github.com/studyflash/studyflash-api/internal/service"
	"github.com/studyflash/studyflash-api/internal/store"
)

// authedRequest builds a request whose context carries an authenticated
// user ID, as the auth middleware would set it.
func authedRequest(method, target string, body io.Reader, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, body)
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

func generateBody(t *testing.T, prompt, subject string) io.Reader {
	t.Helper()
	body, err := json.Marshal(GenerateRequest{Prompt: prompt, Subject: subject})
	require.NoError(t, err)
	return strings.NewReader(string(body))
}

func TestGenerateSuccess(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	set := &domain.CardSet{
		ID:     uuid.New(),
		UserID: userID,
		Title:  "Biology",
		Status: domain.CardSetStatusCompleted,
		Cards: []domain.Card{
			{Front: "What are the key concepts from this text?", Back: "Cells are the unit of life", Subject: "Biology"},
		},
	}

	svc := &mockGenerationService{
		generateCardsFn: func(ctx context.Context, gotUserID uuid.UUID, notes, subject string) (*service.GenerationResult, error) {
			assert.Equal(t, userID, gotUserID)
			assert.Equal(t, "Cells are the unit of life.", notes)
			assert.Equal(t, "Biology", subject)
			return &service.GenerationResult{
				Set:       set,
				Cards:     set.Cards,
				PlanType:  domain.PlanFreemium,
				Remaining: 3,
			}, nil
		},
	}
	handler := NewGenerateHandler(svc, 5, nil)

	req := authedRequest(http.MethodPost, "/api/generate",
		generateBody(t, "Cells are the unit of life.", "Biology"), userID)
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp GenerateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Flashcards, 1)
	assert.Equal(t, 3, resp.RemainingCount)
	assert.Equal(t, "freemium", resp.PlanType)
	require.NotNil(t, resp.SavedFlashcard)
	assert.Equal(t, set.ID, resp.SavedFlashcard.ID)
}

func TestGenerateRequiresAuthentication(t *testing.T) {
	t.Parallel()

	handler := NewGenerateHandler(&mockGenerationService{}, 5, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/generate",
		generateBody(t, "Some notes", ""))
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Authentication required", resp["error"])
}

func TestGenerateMissingPrompt(t *testing.T) {
	t.Parallel()

	called := false
	svc := &mockGenerationService{
		generateCardsFn: func(ctx context.Context, userID uuid.UUID, notes, subject string) (*service.GenerationResult, error) {
			called = true
			return nil, nil
		},
	}
	handler := NewGenerateHandler(svc, 5, nil)

	req := authedRequest(http.MethodPost, "/api/generate",
		generateBody(t, "", ""), uuid.New())
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Prompt is required", resp["error"])
}

func TestGenerateBlankPrompt(t *testing.T) {
	t.Parallel()

	svc := &mockGenerationService{
		generateCardsFn: func(ctx context.Context, userID uuid.UUID, notes, subject string) (*service.GenerationResult, error) {
			return nil, service.ErrEmptyPrompt
		},
	}
	handler := NewGenerateHandler(svc, 5, nil)

	req := authedRequest(http.MethodPost, "/api/generate",
		generateBody(t, "   ", ""), uuid.New())
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Prompt is required", resp["error"])
}

func TestGenerateDailyLimit(t *testing.T) {
	t.Parallel()

	svc := &mockGenerationService{
		generateCardsFn: func(ctx context.Context, userID uuid.UUID, notes, subject string) (*service.GenerationResult, error) {
			return nil, service.ErrDailyLimitReached
		},
	}
	handler := NewGenerateHandler(svc, 5, nil)

	req := authedRequest(http.MethodPost, "/api/generate",
		generateBody(t, "Some notes", ""), uuid.New())
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	body := rec.Body.Bytes()

	var resp QuotaExceededResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "Daily limit reached", resp.Error)
	assert.Equal(t, 0, resp.RemainingCount)
	assert.Equal(t,
		"You've reached your daily limit of 5 flashcards. Upgrade to Premium for unlimited generation!",
		resp.Message)

	// The raw body must carry all three keys, not the generic error shape
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &raw))
	for _, key := range []string{"error", "message", "remainingCount"} {
		assert.Contains(t, raw, key)
	}
}

func TestGenerateProfileNotFound(t *testing.T) {
	t.Parallel()

	svc := &mockGenerationService{
		generateCardsFn: func(ctx context.Context, userID uuid.UUID, notes, subject string) (*service.GenerationResult, error) {
			return nil, store.ErrProfileNotFound
		},
	}
	handler := NewGenerateHandler(svc, 5, nil)

	req := authedRequest(http.MethodPost, "/api/generate",
		generateBody(t, "Some notes", ""), uuid.New())
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "User profile not found", resp["error"])
}

func TestGenerateUpstreamFailure(t *testing.T) {
	t.Parallel()

	svc := &mockGenerationService{
		generateCardsFn: func(ctx context.Context, userID uuid.UUID, notes, subject string) (*service.GenerationResult, error) {
			return nil, generation.ErrTransientFailure
		},
	}
	handler := NewGenerateHandler(svc, 5, nil)

	req := authedRequest(http.MethodPost, "/api/generate",
		generateBody(t, "Some notes", ""), uuid.New())
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Flashcard generation is temporarily unavailable", resp["error"])
}
