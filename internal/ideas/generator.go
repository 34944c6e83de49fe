// Package ideas generates SDG project ideas with the language model.
package ideas

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/sdg-idea-lab/internal/llm"
	"github.com/jonathan/sdg-idea-lab/internal/prompts"
	"github.com/jonathan/sdg-idea-lab/internal/rubric"
	"github.com/jonathan/sdg-idea-lab/internal/sdg"
	"github.com/jonathan/sdg-idea-lab/internal/types"
	"github.com/sirupsen/logrus"
)

// DefaultCount is how many ideas the model is asked for.
const DefaultCount = 5

// Generator turns an SDG selection into project ideas.
type Generator struct {
	client llm.Client
	log    logrus.FieldLogger
	count  int
}

// NewGenerator creates a Generator. A nil logger uses the logrus standard logger.
func NewGenerator(client llm.Client, log logrus.FieldLogger) *Generator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Generator{
		client: client,
		log:    log.WithField("component", "ideas"),
		count:  DefaultCount,
	}
}

// Generate validates the selection, asks the model for ideas and returns both
// the raw reply and the parsed list. Validation errors are *types.ValidationError
// or *sdg.SelectionError; model failures are *llm.Error.
func (g *Generator) Generate(ctx context.Context, identifiers []string) (*types.GenerateIdeasResponse, error) {
	req := types.GenerateIdeasRequest{SDGsSelected: identifiers}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	goals, err := sdg.Resolve(identifiers)
	if err != nil {
		return nil, err
	}
	names := sdg.Names(goals)

	prompt, err := BuildPrompt(names, g.count)
	if err != nil {
		return nil, err
	}

	g.log.WithField("sdgs", names).Info("generating project ideas")
	text, err := g.client.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ideas: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("failed to generate ideas: %w", &llm.Error{Kind: llm.KindEmptyResponse})
	}

	ideas := ParseIdeas(text)
	g.log.WithField("ideas", len(ideas)).Debug("parsed project ideas")

	return &types.GenerateIdeasResponse{
		SDGsSelected:         names,
		ProjectIdeas:         text,
		Ideas:                ideas,
		ProblemStatementTips: rubric.Tips(),
	}, nil
}

// BuildPrompt fills the idea prompt template with goal names.
func BuildPrompt(goalNames []string, count int) (string, error) {
	template, err := prompts.Get("ideas.json", "generate-project-ideas")
	if err != nil {
		return "", fmt.Errorf("failed to load ideas prompt: %w", err)
	}
	return prompts.Format(template, map[string]string{
		"Count": strconv.Itoa(count),
		"Goals": strings.Join(goalNames, ", "),
	}), nil
}
