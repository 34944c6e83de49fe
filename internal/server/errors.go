// Package server provides the HTTP API for idea generation and problem-statement evaluation.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/sdg-idea-lab/internal/llm"
	"github.com/jonathan/sdg-idea-lab/internal/sdg"
	"github.com/jonathan/sdg-idea-lab/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrBodyTooLarge indicates the request body exceeded the size limit
type ErrBodyTooLarge struct {
	Limit int64
}

func (e *ErrBodyTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// asValidation converts the validation errors of the domain packages into
// *ErrValidation. Other errors are returned unchanged.
func asValidation(err error) error {
	var vErr *types.ValidationError
	if errors.As(err, &vErr) {
		return &ErrValidation{Field: vErr.Field, Message: vErr.Message}
	}
	var sErr *sdg.SelectionError
	if errors.As(err, &sErr) {
		msg := sErr.Message
		if sErr.Identifier != "" {
			msg = fmt.Sprintf("%q: %s", sErr.Identifier, sErr.Message)
		}
		return &ErrValidation{Field: "sdgs_selected", Message: msg}
	}
	return err
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		tooLargeErr   *ErrBodyTooLarge
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// hint returns the user-facing hint for model failures, or "".
func hint(err error) string {
	var llmErr *llm.Error
	if errors.As(err, &llmErr) {
		return llmErr.Hint()
	}
	return ""
}
