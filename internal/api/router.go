package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Wearable endpoints
		r.Route("/wearables", func(r chi.Router) {
			r.Get("/", s.handleListWearables)
			r.Get("/stats", s.handleWearableStats)

			r.Route("/{name}", func(r chi.Router) {
				r.Get("/", s.handleGetWearable)
				r.Get("/sensors", s.handleListSensors)
				r.Get("/sensors/{sensorName}", s.handleGetSensor)
				r.Get("/actuators", s.handleListActuators)
				r.Post("/actuators/{actuatorName}/command", s.handleActuatorCommand)
			})
		})

		// Calibration endpoints
		r.Route("/calibration", func(r chi.Router) {
			r.Get("/", s.handleCalibrationStatus)
			r.Post("/start", s.handleCalibrationStart)
			r.Post("/abort", s.handleCalibrationAbort)
			r.Put("/quality", s.handleCalibrationQuality)
			r.Get("/history", s.handleCalibrationHistory)
		})

		// Body dimension endpoints
		r.Route("/body-dimensions", func(r chi.Router) {
			r.Get("/", s.handleGetBodyDimensions)
			r.Put("/", s.handleSetBodyDimensions)
		})

		// WebSocket streaming
		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
