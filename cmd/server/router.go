package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/scry-match/internal/api"
	apiMiddleware "github.com/phrazzld/scry-match/internal/api/middleware"
	"github.com/phrazzld/scry-match/internal/api/shared"
	"github.com/rs/cors"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// RequestID must run before the trace middleware, which reuses it.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(apiMiddleware.RequestLogger(app.logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: app.config.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", shared.TraceIDHeader},
		ExposedHeaders: []string{"Location", shared.TraceIDHeader},
		MaxAge:         app.config.CORS.MaxAge,
	}).Handler)
	r.Use(middleware.Recoverer)

	sessionHandler := api.NewSessionHandler(app.gameService, app.logger)
	worldHandler := api.NewWorldHandler(app.gameService, app.logger)
	api.RegisterRoutes(r, sessionHandler, worldHandler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
