package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/sdg-idea-lab/internal/types"
)

// DefaultAPITimeout bounds each call from the frontend to the API server.
const DefaultAPITimeout = 30 * time.Second

// APIError is returned when the API server answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
	Field      string
	Hint       string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// RequestError represents a failure to reach the API server or read its reply.
type RequestError struct {
	URL     string
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("request to %s failed: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("request to %s failed: %s", e.URL, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// APIBackend talks to the API server over HTTP.
type APIBackend struct {
	baseURL string
	client  *http.Client
}

// NewAPIBackend creates an APIBackend for baseURL. A non-positive timeout
// uses DefaultAPITimeout.
func NewAPIBackend(baseURL string, timeout time.Duration) (*APIBackend, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultAPITimeout
	}
	return &APIBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// GenerateIdeas implements Backend via POST /generate_ideas.
func (b *APIBackend) GenerateIdeas(ctx context.Context, sdgs []string) (*types.GenerateIdeasResponse, error) {
	var resp types.GenerateIdeasResponse
	if err := b.post(ctx, "/generate_ideas", types.GenerateIdeasRequest{SDGsSelected: sdgs}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Evaluate implements Backend via POST /evaluate_ps.
func (b *APIBackend) Evaluate(ctx context.Context, idea, problemStatement string) (*types.EvaluateResponse, error) {
	var resp types.EvaluateResponse
	req := types.EvaluateRequest{Idea: idea, ProblemStatement: problemStatement}
	if err := b.post(ctx, "/evaluate_ps", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status implements Backend via GET /health.
func (b *APIBackend) Status(ctx context.Context) (string, bool) {
	endpoint := b.baseURL + "/health"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "unreachable", false
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Sprintf("API unreachable at %s", b.baseURL), false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("API unhealthy (%d)", resp.StatusCode), false
	}
	return fmt.Sprintf("API online at %s", b.baseURL), true
}

func (b *APIBackend) post(ctx context.Context, path string, body, out any) error {
	endpoint := b.baseURL + path

	payload, err := json.Marshal(body)
	if err != nil {
		return &RequestError{URL: endpoint, Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return &RequestError{URL: endpoint, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return &RequestError{URL: endpoint, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{URL: endpoint, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errBody types.ErrorResponse
		if json.Unmarshal(data, &errBody) == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
			apiErr.Field = errBody.Field
			apiErr.Hint = errBody.Hint
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &RequestError{URL: endpoint, Message: "failed to decode response", Cause: err}
	}
	return nil
}
