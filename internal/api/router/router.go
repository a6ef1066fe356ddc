package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sluzebnosc-pro/lead-platform/internal/http/handlers"
	httpmiddleware "github.com/sluzebnosc-pro/lead-platform/internal/http/middleware"
	"github.com/sluzebnosc-pro/lead-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	LeadHandler        *handlers.LeadHandler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// TurnstileSiteKey is the public widget key served to the form page.
	TurnstileSiteKey string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.LeadHandler != nil {
		r.Post("/api/lead", cfg.LeadHandler.Submit)
		r.Options("/api/lead", cfg.LeadHandler.Preflight)
	}

	// Public bootstrap values for the form page: the captcha widget needs
	// the site key before it can issue a challenge.
	r.Get("/api/config", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"turnstileSiteKey": cfg.TurnstileSiteKey,
		})
	})

	return r
}
