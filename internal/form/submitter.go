package form

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sluzebnosc-pro/lead-platform/internal/contact"
	"github.com/sluzebnosc-pro/lead-platform/pkg/logging"
)

// Result is the decoded submission endpoint response.
type Result struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	LeadID  string              `json:"leadId,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Submitter delivers a completed form to the submission endpoint.
type Submitter interface {
	Submit(ctx context.Context, s contact.Submission) (*Result, error)
}

// HTTPSubmitter posts form payloads to the lead endpoint over HTTP.
type HTTPSubmitter struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// SubmitterOption is a functional option for configuring the HTTPSubmitter.
type SubmitterOption func(*HTTPSubmitter)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) SubmitterOption {
	return func(s *HTTPSubmitter) {
		s.httpClient = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) SubmitterOption {
	return func(s *HTTPSubmitter) {
		s.logger = logger
	}
}

// NewHTTPSubmitter creates a submitter for the given base URL, e.g.
// "https://sluzebnoscpro.pl".
func NewHTTPSubmitter(baseURL string, opts ...SubmitterOption) *HTTPSubmitter {
	s := &HTTPSubmitter{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logging.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Submit posts the payload and decodes the response. A non-2xx status is not
// an error here: the caller reads Result.Success and Result.Message. Errors
// are reserved for transport and decode failures.
func (s *HTTPSubmitter) Submit(ctx context.Context, payload contact.Submission) (*Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("form: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/lead", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("form: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("form: submit request failed: %w", err)
	}
	defer resp.Body.Close()

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("form: decode response: %w", err)
	}

	s.logger.Debug("form submitted", "status", resp.StatusCode, "success", result.Success)
	return &result, nil
}
