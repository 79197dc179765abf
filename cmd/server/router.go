package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/studyflash/studyflash-api/internal/api"
	apiMiddleware "github.com/studyflash/studyflash-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.config.Auth, app.logger)
	generateHandler := api.NewGenerateHandler(app.generationService, app.config.Quota.FreeDailyLimit, app.logger)
	cardSetHandler := api.NewCardSetHandler(app.cardSetService, app.logger)
	subjectHandler := api.NewSubjectHandler(app.subjectService, app.logger)
	planHandler := api.NewPlanHandler(app.planService, app.config.Quota.MaxSubjects, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/generate", generateHandler.Generate)

			r.Get("/flashcards", cardSetHandler.List)
			r.Get("/flashcards/{id}", cardSetHandler.Get)
			r.Delete("/flashcards/{id}", cardSetHandler.Delete)
			r.Get("/flashcards/{id}/quiz", cardSetHandler.Quiz)

			r.Post("/subjects", subjectHandler.Create)
			r.Get("/subjects", subjectHandler.List)
			r.Put("/subjects/{id}", subjectHandler.Update)
			r.Delete("/subjects/{id}", subjectHandler.Delete)

			r.Get("/plan", planHandler.Get)
			r.Post("/plan/upgrade", planHandler.Upgrade)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
