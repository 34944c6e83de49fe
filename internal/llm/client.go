package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// Client is the only way the rest of the system talks to the generative model.
type Client interface {
	// GenerateContent sends prompt and returns the model's text reply.
	GenerateContent(ctx context.Context, prompt string) (string, error)
	// GenerateJSON sends prompt in JSON response mode and returns the reply
	// with any markdown fences removed.
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	// Close releases any resources held by the client
	Close() error
}

// CompleteFunc adapts a plain completion function into a Client.
// Tests use it to substitute a deterministic stub for the model.
type CompleteFunc func(ctx context.Context, prompt string) (string, error)

// GenerateContent calls f.
func (f CompleteFunc) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// GenerateJSON calls f and strips markdown fences from the reply.
func (f CompleteFunc) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	text, err := f(ctx, prompt)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// Close is a no-op.
func (f CompleteFunc) Close() error { return nil }

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
	log    logrus.FieldLogger
}

// NewGeminiClient creates a new Gemini client. A nil config uses DefaultConfig
// and a nil logger uses the logrus standard logger.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string, log logrus.FieldLogger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, &Error{Kind: KindInvalidAPIKey, Cause: fmt.Errorf("API key is required")}
	}
	if config == nil {
		config = DefaultConfig()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
		log:    log.WithField("component", "llm"),
	}, nil
}

// GenerateContent generates free text with the model's default sampling settings.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.config.Model)
	return c.generate(ctx, model, prompt)
}

// GenerateJSON asks for an application/json reply at the configured temperature.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.config.Model)
	model.SetTemperature(c.config.Temperature)
	model.ResponseMIMEType = "application/json"

	text, err := c.generate(ctx, model, prompt)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// Model returns the configured model name.
func (c *GeminiClient) Model() string {
	return c.config.Model
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func (c *GeminiClient) generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	entry := c.log.WithFields(logrus.Fields{
		"model":         c.config.Model,
		"prompt_length": len(prompt),
		"duration":      time.Since(start).String(),
	})
	if err != nil {
		entry.WithError(err).Warn("model call failed")
		return "", Classify(err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		entry.WithError(err).Warn("model returned no text")
		return "", err
	}
	entry.Debug("model call completed")
	return text, nil
}

// extractTextFromResponse joins the text parts of the first candidate.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		reason := "no candidates in response"
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			reason = fmt.Sprintf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", &Error{Kind: KindEmptyResponse, Cause: fmt.Errorf("%s", reason)}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &Error{Kind: KindEmptyResponse, Cause: fmt.Errorf("no content in response")}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	text := strings.TrimSpace(strings.Join(parts, ""))
	if text == "" {
		return "", &Error{Kind: KindEmptyResponse, Cause: fmt.Errorf("no text parts in response")}
	}
	return text, nil
}
