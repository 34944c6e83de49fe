// Package web serves the interactive form-based frontend.
package web

import (
	"context"

	"github.com/jonathan/sdg-idea-lab/internal/types"
)

// Backend performs the two operations the frontend offers.
type Backend interface {
	GenerateIdeas(ctx context.Context, sdgs []string) (*types.GenerateIdeasResponse, error)
	Evaluate(ctx context.Context, idea, problemStatement string) (*types.EvaluateResponse, error)
	// Status reports a short human-readable backend state and whether it is healthy.
	Status(ctx context.Context) (string, bool)
}

// IdeaGenerator is the in-process idea generator used by DirectBackend.
type IdeaGenerator interface {
	Generate(ctx context.Context, sdgs []string) (*types.GenerateIdeasResponse, error)
}

// StatementEvaluator is the in-process evaluator used by DirectBackend.
type StatementEvaluator interface {
	Evaluate(ctx context.Context, idea, problemStatement string) (*types.EvaluateResponse, error)
}

// DirectBackend calls the generator and evaluator in the same process.
type DirectBackend struct {
	ideas     IdeaGenerator
	evaluator StatementEvaluator
}

// NewDirectBackend creates a DirectBackend.
func NewDirectBackend(ideas IdeaGenerator, evaluator StatementEvaluator) *DirectBackend {
	return &DirectBackend{ideas: ideas, evaluator: evaluator}
}

// GenerateIdeas implements Backend.
func (b *DirectBackend) GenerateIdeas(ctx context.Context, sdgs []string) (*types.GenerateIdeasResponse, error) {
	return b.ideas.Generate(ctx, sdgs)
}

// Evaluate implements Backend.
func (b *DirectBackend) Evaluate(ctx context.Context, idea, problemStatement string) (*types.EvaluateResponse, error) {
	return b.evaluator.Evaluate(ctx, idea, problemStatement)
}

// Status implements Backend.
func (b *DirectBackend) Status(context.Context) (string, bool) {
	return "in-process", true
}
