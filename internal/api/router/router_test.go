package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sluzebnosc-pro/lead-platform/internal/captcha"
	"github.com/sluzebnosc-pro/lead-platform/internal/http/handlers"
	"github.com/sluzebnosc-pro/lead-platform/internal/leads"
	"github.com/sluzebnosc-pro/lead-platform/internal/ratelimit"
	"github.com/sluzebnosc-pro/lead-platform/pkg/logging"
)

type noopNotifier struct{}

func (noopNotifier) NotifyNewLeadAsync(lead *leads.Lead) {}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.Default()
	limiter := ratelimit.New(ratelimit.NewMemoryStore(), 5, 15*time.Minute)
	leadHandler := handlers.NewLeadHandler(
		limiter,
		&captcha.StaticVerifier{},
		leads.NewInMemoryRepository(),
		noopNotifier{},
		nil,
		logger,
	)

	cfg := &Config{
		Logger:             logger,
		LeadHandler:        leadHandler,
		MetricsHandler:     promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{}),
		CORSAllowedOrigins: []string{"https://sluzebnoscpro.pl"},
		TurnstileSiteKey:   "0xAAAA-test-site-key",
	}

	return New(cfg)
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("expected status ok, got %q", body["status"])
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestRouterLeadSubmission(t *testing.T) {
	router := newTestRouter(t)

	payload := map[string]any{
		"firstName":        "Anna",
		"lastName":         "Nowak",
		"phone":            "601234567",
		"email":            "anna.nowak@example.pl",
		"postalCode":       "30-001",
		"city":             "Kraków",
		"infrastructure":   []string{"gaz"},
		"gazParams":        "Wysokie ciśnienie",
		"status":           "existing",
		"hasKW":            "yes",
		"marketingConsent": true,
		"captchaToken":     "tok",
	}
	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(payload); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/lead", &body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://sluzebnoscpro.pl")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	var resp struct {
		Success bool   `json:"success"`
		LeadID  string `json:"leadId"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !resp.Success || resp.LeadID == "" {
		t.Fatalf("expected accepted lead with id, got %+v", resp)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://sluzebnoscpro.pl" {
		t.Fatalf("expected CORS origin header, got %q", got)
	}
	if rr.Header().Get("X-RateLimit-Remaining") == "" {
		t.Fatal("expected rate limit headers on response")
	}
}

func TestRouterLeadPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/lead", nil)
	req.Header.Set("Origin", "https://sluzebnoscpro.pl")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got != "POST, OPTIONS" {
		t.Fatalf("expected allow-methods header, got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Max-Age"); got != "86400" {
		t.Fatalf("expected max-age header, got %q", got)
	}
}

func TestRouterConfigServesSiteKey(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["turnstileSiteKey"] != "0xAAAA-test-site-key" {
		t.Fatalf("expected site key in bootstrap config, got %q", body["turnstileSiteKey"])
	}
}

func TestRouterLeadMethodNotAllowed(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/lead", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status %d, got %d", http.StatusMethodNotAllowed, rr.Code)
	}
}
