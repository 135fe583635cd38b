package web

import (
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"

	"thelab/config"
	"thelab/signup"
	"thelab/web/session"
)

// NewServer creates and configures the RWeb server
func NewServer(cfg *config.Config, engine *signup.Engine) *rweb.Server {
	s := rweb.NewServer(rweb.ServerOptions{
		Address: cfg.Address,
		Verbose: cfg.LogLevel == "debug",
	})

	store := session.NewStore(engine, session.DefaultTTL)

	// Apply middleware
	s.Use(rweb.RequestInfo)        // Logs request info
	s.Use(CorsMiddleware)          // Custom CORS middleware
	s.Use(SessionMiddleware(store)) // One sign-up form per visitor
	if cfg.RateLimit > 0 {
		s.Use(RateLimitMiddleware(cfg.RateLimit)) // Per-visitor throttling, keyed on the session
	}
	s.Use(SecurityHeadersMiddleware) // Security headers
	s.Use(LoggingMiddleware)         // Request logging
	s.Use(NotFoundMiddleware)        // 404 page for unmatched paths

	// Setup routes
	setupRoutes(s)

	// Serve static files using embedded FS
	SetupStaticFiles(s)

	return s
}

// Run starts the server
func Run(s *rweb.Server, cfg *config.Config) error {
	logger.Info("THE LAB sign-up server starting on", "address", cfg.Address)
	return s.Run()
}
