package web

import (
	"github.com/rohanthewiz/rweb"

	"thelab/handlers"
	"thelab/web/api"
)

// setupRoutes configures all application routes
func setupRoutes(s *rweb.Server) {
	// Page routes - HTML responses
	s.Get("/", handlers.ShowSignUp)
	s.Get("/sign-up", handlers.ShowSignUp)
	s.Post("/sign-up", handlers.PostSignUp) // Full-form post without JavaScript

	// Health check endpoint
	s.Get("/health", handlers.HealthCheck)

	// API v1 routes - JSON responses for the page script
	s.Get("/api/v1/sign-up/state", api.GetState)           // Current form state
	s.Post("/api/v1/sign-up/field", api.UpdateField)       // Edit or blur one field
	s.Post("/api/v1/sign-up/submit", api.SubmitForm)       // Submit with the local strategy
	s.Post("/api/v1/sign-up/google", api.GoogleCredential) // Identity widget callback
}
