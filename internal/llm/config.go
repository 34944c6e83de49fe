// Package llm wraps the generative model behind a narrow text-completion interface.
package llm

import "time"

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-1.5-flash"

// Config holds the model settings shared by every call a client makes.
type Config struct {
	// Model is the Gemini model name.
	Model string
	// Temperature applies to JSON-mode calls only; plain text calls keep the model default.
	Temperature float32
	// Timeout bounds a single model call. Zero means the caller's context decides.
	Timeout time.Duration
}

// DefaultConfig returns the stock model settings.
func DefaultConfig() *Config {
	return &Config{
		Model:       DefaultModel,
		Temperature: 0.1,
		Timeout:     60 * time.Second,
	}
}

// WithModel returns a copy of c using model, or c unchanged when model is empty.
func (c *Config) WithModel(model string) *Config {
	if model == "" {
		return c
	}
	next := *c
	next.Model = model
	return &next
}
