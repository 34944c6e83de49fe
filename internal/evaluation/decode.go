package evaluation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/sdg-idea-lab/internal/llm"
	"github.com/jonathan/sdg-idea-lab/internal/schemas"
	"github.com/jonathan/sdg-idea-lab/internal/types"
)

// ErrNoClassification is returned when a reply holds no JSON object at all.
var ErrNoClassification = errors.New("no JSON classification in reply")

// DecodeClassification extracts the two-axis classification from a reply.
// Candidates are tried in order: the reply without code fences, its outermost
// {...} span, and the reply wrapped in braces. The first candidate that is
// valid JSON and satisfies the classification schema wins.
func DecodeClassification(text string) (*types.Classification, error) {
	cleaned := llm.CleanJSONBlock(text)
	if cleaned == "" {
		return nil, ErrNoClassification
	}

	candidates := []string{cleaned}
	if obj, ok := llm.ExtractJSONObject(cleaned); ok && obj != cleaned {
		candidates = append(candidates, obj)
	}
	if !strings.HasPrefix(cleaned, "{") {
		candidates = append(candidates, "{"+cleaned+"}")
	}

	lastErr := ErrNoClassification
	for _, candidate := range candidates {
		if !json.Valid([]byte(candidate)) {
			continue
		}
		if err := schemas.ValidateClassification(candidate); err != nil {
			lastErr = err
			continue
		}

		var c types.Classification
		if err := json.Unmarshal([]byte(candidate), &c); err != nil {
			lastErr = fmt.Errorf("failed to decode classification: %w", err)
			continue
		}
		c.XAxis = strings.TrimSpace(c.XAxis)
		c.YAxis = strings.TrimSpace(c.YAxis)
		return &c, nil
	}
	return nil, lastErr
}
