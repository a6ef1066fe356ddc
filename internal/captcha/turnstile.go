// Package captcha verifies Cloudflare Turnstile challenge tokens.
package captcha

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sluzebnosc-pro/lead-platform/pkg/logging"
)

const defaultVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// ErrVerificationFailed is returned when the provider rejects the token or
// the verification call cannot be completed. Callers treat both the same:
// the user solves a new challenge.
var ErrVerificationFailed = errors.New("captcha: verification failed")

// Verifier checks a challenge token. Implementations must fail closed:
// configuration or transport problems count as rejection.
type Verifier interface {
	Verify(ctx context.Context, token string) error
}

// verifyRequest is the siteverify payload.
type verifyRequest struct {
	Secret   string `json:"secret"`
	Response string `json:"response"`
}

// verifyResponse is the siteverify result.
type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// TurnstileVerifier calls the Cloudflare siteverify endpoint.
type TurnstileVerifier struct {
	secretKey  string
	verifyURL  string
	httpClient *http.Client
	logger     *logging.Logger
}

// Option configures a TurnstileVerifier.
type Option func(*TurnstileVerifier)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(v *TurnstileVerifier) { v.httpClient = client }
}

// WithVerifyURL overrides the siteverify endpoint. Used by tests.
func WithVerifyURL(url string) Option {
	return func(v *TurnstileVerifier) { v.verifyURL = url }
}

// NewTurnstileVerifier creates a verifier with the server-side secret key.
// An empty secret is allowed at construction but causes every Verify call
// to fail.
func NewTurnstileVerifier(secretKey string, logger *logging.Logger, opts ...Option) *TurnstileVerifier {
	if logger == nil {
		logger = logging.Default()
	}
	v := &TurnstileVerifier{
		secretKey: secretKey,
		verifyURL: defaultVerifyURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify checks token against the provider. Missing secret configuration is
// a hard failure: verification never fails open.
func (v *TurnstileVerifier) Verify(ctx context.Context, token string) error {
	if v.secretKey == "" {
		v.logger.Error("turnstile secret key not configured")
		return ErrVerificationFailed
	}
	if token == "" {
		return ErrVerificationFailed
	}

	payload, err := json.Marshal(verifyRequest{Secret: v.secretKey, Response: token})
	if err != nil {
		return fmt.Errorf("captcha: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("captcha: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		v.logger.Error("turnstile verification call failed", "error", err)
		return ErrVerificationFailed
	}
	defer resp.Body.Close()

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		v.logger.Error("turnstile response decode failed", "error", err)
		return ErrVerificationFailed
	}

	if !result.Success {
		v.logger.Warn("turnstile rejected token", "error_codes", result.ErrorCodes)
		return ErrVerificationFailed
	}
	return nil
}

// StaticVerifier accepts or rejects every token. Test and dev helper.
type StaticVerifier struct {
	Err error
}

// Verify returns the configured error.
func (s *StaticVerifier) Verify(ctx context.Context, token string) error {
	return s.Err
}
