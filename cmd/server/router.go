package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/IsakPar/hanzi-vocab-val/internal/api"
	apiMiddleware "github.com/IsakPar/hanzi-vocab-val/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	validationHandler := api.NewValidationHandler(app.validationService, app.logger)
	recommendHandler := api.NewRecommendHandler(app.recommendService, app.store, app.logger)
	adminHandler := api.NewAdminHandler(
		app.store,
		app.syncer,
		app.applyExport,
		app.config.Server.Environment,
		app.logger,
	)
	apiKeyAuth := apiMiddleware.NewAPIKeyAuth(app.config.Sync.APIKeyHash, app.config.Server.Environment)

	// Public endpoints
	r.Get("/health", adminHandler.Health)
	r.Get("/version", adminHandler.Version)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/vocabulary", recommendHandler.GetVocabulary)

	// Validation and recommendation endpoints
	r.Post("/validate", validationHandler.ValidateText)
	r.Post("/validate-lesson", validationHandler.ValidateLesson)
	r.Post("/validate/reading", validationHandler.ValidateReading)
	r.Post("/validate/structure", validationHandler.ValidateStructure)
	r.Post("/recommend", recommendHandler.Recommend)

	// Administrative endpoints
	r.Group(func(r chi.Router) {
		r.Use(apiKeyAuth.Middleware)
		r.Post("/sync", adminHandler.Sync)
	})

	return r
}
