package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sluzebnosc-pro/lead-platform/internal/captcha"
	"github.com/sluzebnosc-pro/lead-platform/internal/contact"
	"github.com/sluzebnosc-pro/lead-platform/internal/leads"
	"github.com/sluzebnosc-pro/lead-platform/internal/observability/metrics"
	"github.com/sluzebnosc-pro/lead-platform/internal/ratelimit"
	"github.com/sluzebnosc-pro/lead-platform/internal/sanitize"
	"github.com/sluzebnosc-pro/lead-platform/pkg/logging"
)

// Localized messages per error class. The submitter always learns whether
// to wait, re-solve the challenge, fix a field, or retry later; never a raw
// internal error.
const (
	msgThrottled     = "Za dużo prób. Spróbuj ponownie za 15 minut."
	msgBadPayload    = "Nieprawidłowe dane żądania"
	msgCaptchaFailed = "Weryfikacja CAPTCHA nie powiodła się. Odśwież stronę i spróbuj ponownie."
	msgInvalidForm   = "Dane formularza są nieprawidłowe"
	msgServerError   = "Wystąpił błąd serwera. Spróbuj ponownie później."
	msgSuccess       = "Formularz został wysłany pomyślnie"
)

// LeadNotifier dispatches the new-lead notification off the request path.
type LeadNotifier interface {
	NotifyNewLeadAsync(lead *leads.Lead)
}

// LeadHandler is the server-side authority for contact-form submissions.
// Every client-side check is re-applied here.
type LeadHandler struct {
	limiter  *ratelimit.Limiter
	verifier captcha.Verifier
	repo     leads.Repository
	notifier LeadNotifier
	metrics  *metrics.LeadMetrics
	logger   *logging.Logger
}

// NewLeadHandler creates the submission handler.
func NewLeadHandler(
	limiter *ratelimit.Limiter,
	verifier captcha.Verifier,
	repo leads.Repository,
	notifier LeadNotifier,
	m *metrics.LeadMetrics,
	logger *logging.Logger,
) *LeadHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadHandler{
		limiter:  limiter,
		verifier: verifier,
		repo:     repo,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

type leadResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	LeadID  string              `json:"leadId,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Submit handles POST /api/lead. Pipeline stages run in strict order; each
// short-circuits with its own response.
func (h *LeadHandler) Submit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		h.metrics.ObservePipelineLatency(time.Since(start).Seconds())
		if rec := recover(); rec != nil {
			h.logger.Error("panic in lead pipeline", "panic", rec)
			h.metrics.ObserveSubmission(metrics.OutcomeInternal)
			writeJSON(w, http.StatusInternalServerError, leadResponse{Success: false, Message: msgServerError})
		}
	}()

	ctx := r.Context()
	ip := clientIP(r)

	// 1. Rate limit by client IP.
	limit, err := h.limiter.Allow(ctx, ip)
	if err != nil {
		// A broken limiter store must not take the endpoint down;
		// submissions proceed unthrottled until it recovers.
		h.logger.Error("rate limit store failure, allowing request", "error", err, "ip", ip)
		limit = ratelimit.Result{Allowed: true}
	}
	if !limit.Allowed {
		h.logger.Warn("lead submission throttled", "ip", ip)
		h.metrics.ObserveSubmission(metrics.OutcomeThrottled)
		setRateLimitHeaders(w, limit)
		writeJSON(w, http.StatusTooManyRequests, leadResponse{Success: false, Message: msgThrottled})
		return
	}

	// 2. Parse body.
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		h.metrics.ObserveSubmission(metrics.OutcomeBadPayload)
		writeJSON(w, http.StatusBadRequest, leadResponse{Success: false, Message: msgBadPayload})
		return
	}

	// 3. CAPTCHA token presence.
	token, ok := raw["captchaToken"].(string)
	if !ok || token == "" {
		h.metrics.ObserveSubmission(metrics.OutcomeCaptcha)
		writeJSON(w, http.StatusBadRequest, leadResponse{Success: false, Message: msgCaptchaFailed})
		return
	}

	// 4. CAPTCHA verification. Fails closed on any provider trouble.
	if err := h.verifier.Verify(ctx, token); err != nil {
		h.logger.Warn("captcha verification failed", "ip", ip, "error", err)
		h.metrics.ObserveSubmission(metrics.OutcomeCaptcha)
		writeJSON(w, http.StatusBadRequest, leadResponse{Success: false, Message: msgCaptchaFailed})
		return
	}

	// 5. Sanitize before validation, so a crafted payload cannot be valid
	// and still carry markup.
	sanitized := sanitize.Map(raw)

	// 6. Schema validation, all violations reported together.
	sub, decodeErrs := contact.Decode(sanitized)
	if decodeErrs != nil {
		h.metrics.ObserveSubmission(metrics.OutcomeInvalid)
		writeJSON(w, http.StatusBadRequest, leadResponse{Success: false, Message: msgInvalidForm, Errors: decodeErrs})
		return
	}
	if errs := contact.Validate(sub); errs != nil {
		h.metrics.ObserveSubmission(metrics.OutcomeInvalid)
		writeJSON(w, http.StatusBadRequest, leadResponse{Success: false, Message: msgInvalidForm, Errors: errs})
		return
	}

	// 7. Normalize.
	draft := leads.FromSubmission(sub)

	// 8. Persist. Awaited: the client only hears success once the lead is
	// recorded.
	stored, err := h.repo.Create(ctx, draft)
	if err != nil {
		h.logger.Error("lead persistence failed", "error", err, "ip", ip)
		h.metrics.ObserveSubmission(metrics.OutcomeStorage)
		writeJSON(w, http.StatusInternalServerError, leadResponse{Success: false, Message: msgServerError})
		return
	}

	// 9. Notify. Fire-and-forget; never delays or fails the response.
	if h.notifier != nil {
		h.notifier.NotifyNewLeadAsync(stored)
	}

	// 10. Success.
	h.logger.Info("lead accepted", "lead_id", stored.ID, "email", stored.Email, "infrastructure", stored.Infrastructure)
	h.metrics.ObserveSubmission(metrics.OutcomeAccepted)
	setRateLimitHeaders(w, limit)
	writeJSON(w, http.StatusOK, leadResponse{Success: true, Message: msgSuccess, LeadID: stored.ID})
}

// Preflight handles OPTIONS /api/lead.
func (h *LeadHandler) Preflight(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Max-Age", "86400")
	w.WriteHeader(http.StatusOK)
}

// clientIP takes the first address from X-Forwarded-For, falling back to a
// sentinel when the header is absent.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.SplitN(xff, ",", 2)[0]); ip != "" {
			return ip
		}
	}
	return "unknown"
}

func setRateLimitHeaders(w http.ResponseWriter, res ratelimit.Result) {
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.UnixMilli(), 10))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
