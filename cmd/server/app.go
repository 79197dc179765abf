package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/studyflash/studyflash-api/internal/config"
	"github.com/studyflash/studyflash-api/internal/generation"
	"github.com/studyflash/studyflash-api/internal/platform/gemini"
	"github.com/studyflash/studyflash-api/internal/platform/postgres"
	"github.com/studyflash/studyflash-api/internal/service"
	"github.com/studyflash/studyflash-api/internal/service/auth"
	"github.com/studyflash/studyflash-api/internal/store"
)

// application holds the shared application dependencies so wiring and
// cleanup live in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore    store.UserStore
	profileStore store.ProfileStore
	subjectStore store.SubjectStore
	cardSetStore store.CardSetStore
	txRunner     store.TransactionRunner

	// Services
	jwtService        auth.JWTService
	passwordVerifier  auth.PasswordVerifier
	generator         generation.Generator
	userService       *service.UserService
	generationService *service.GenerationService
	cardSetService    *service.CardSetService
	subjectService    *service.SubjectService
	planService       *service.PlanService
}

// newApplication creates an application instance with all dependencies
// initialized. Configuration, logger, and database connection must already
// be established.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost, logger)
	app.profileStore = postgres.NewPostgresProfileStore(db, logger)
	app.subjectStore = postgres.NewPostgresSubjectStore(db, logger)
	app.cardSetStore = postgres.NewPostgresCardSetStore(db, logger)
	app.txRunner = store.NewTransactionRunner(db)

	app.generator, err = gemini.NewGeminiGenerator(
		ctx,
		logger.With("component", "llm_generator"),
		cfg.LLM,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	logger.Info("LLM generator initialized", "model", cfg.LLM.ModelName)

	app.userService = service.NewUserService(
		app.txRunner,
		app.userStore,
		app.profileStore,
		app.passwordVerifier,
		logger,
	)

	app.generationService = service.NewGenerationService(
		app.txRunner,
		app.profileStore,
		app.cardSetStore,
		app.generator,
		cfg.Quota.FreeDailyLimit,
		time.Duration(cfg.Quota.StalePendingMinutes)*time.Minute,
		logger,
	)

	app.cardSetService = service.NewCardSetService(app.cardSetStore, logger)

	app.subjectService = service.NewSubjectService(
		app.txRunner,
		app.subjectStore,
		app.profileStore,
		cfg.Quota.MaxSubjects,
		logger,
	)

	app.planService = service.NewPlanService(
		app.profileStore,
		app.cardSetStore,
		cfg.Quota.FreeDailyLimit,
		logger,
	)

	logger.Info("application initialized")
	return app, nil
}

// Run reconciles abandoned pending sets from a previous crash, then starts
// the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	swept, err := app.generationService.SweepStalePending(ctx)
	if err != nil {
		// Sweep failure is not fatal; abandoned rows are retried on the
		// next startup and excluded from quota once marked failed.
		app.logger.Error("failed to sweep stale pending card sets", "error", err)
	} else if swept > 0 {
		app.logger.Info("swept stale pending card sets", "count", swept)
	}

	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
