package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// ErrorKind names the broad reason a model call failed.
type ErrorKind string

const (
	// KindInvalidAPIKey means the key was missing or rejected.
	KindInvalidAPIKey ErrorKind = "invalid_api_key"
	// KindQuotaExceeded means the project ran out of quota or hit a usage limit.
	KindQuotaExceeded ErrorKind = "quota_exceeded"
	// KindEmptyResponse means the call succeeded but carried no usable text.
	KindEmptyResponse ErrorKind = "empty_response"
	// KindTimeout means the call outlived its deadline.
	KindTimeout ErrorKind = "timeout"
	// KindUnavailable covers every other transport or model failure.
	KindUnavailable ErrorKind = "unavailable"
)

// Error is returned by clients for any failed model call.
type Error struct {
	Kind  ErrorKind
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("model call failed (%s): %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("model call failed (%s)", e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Hint returns a short user-facing explanation for the error kind.
func (e *Error) Hint() string {
	switch e.Kind {
	case KindInvalidAPIKey:
		return "Invalid API key. Please check your GEMINI_API_KEY."
	case KindQuotaExceeded:
		return "API quota exceeded. Please check your API usage limits."
	case KindEmptyResponse:
		return "Empty response from the model."
	case KindTimeout:
		return "The model did not answer in time."
	default:
		return "The model service is unavailable."
	}
}

// Classify wraps err in an *Error, picking the kind from the API status code
// when there is one and from the message text otherwise.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var llmErr *Error
	if errors.As(err, &llmErr) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Cause: err}
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &Error{Kind: KindInvalidAPIKey, Cause: err}
		case http.StatusTooManyRequests:
			return &Error{Kind: KindQuotaExceeded, Cause: err}
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api_key_invalid"), strings.Contains(msg, "invalid api key"), strings.Contains(msg, "api key not valid"):
		return &Error{Kind: KindInvalidAPIKey, Cause: err}
	case strings.Contains(msg, "quota"), strings.Contains(msg, "resource_exhausted"), strings.Contains(msg, "rate limit"):
		return &Error{Kind: KindQuotaExceeded, Cause: err}
	}
	return &Error{Kind: KindUnavailable, Cause: err}
}
