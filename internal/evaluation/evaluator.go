// Package evaluation scores student problem statements against the rubric.
package evaluation

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/sdg-idea-lab/internal/llm"
	"github.com/jonathan/sdg-idea-lab/internal/prompts"
	"github.com/jonathan/sdg-idea-lab/internal/rubric"
	"github.com/jonathan/sdg-idea-lab/internal/types"
	"github.com/sirupsen/logrus"
)

// Evaluator asks the model to classify a problem statement and reshapes the
// reply into per-criterion judgments.
type Evaluator struct {
	client llm.Client
	log    logrus.FieldLogger
}

// NewEvaluator creates an Evaluator. A nil logger uses the logrus standard logger.
func NewEvaluator(client llm.Client, log logrus.FieldLogger) *Evaluator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Evaluator{
		client: client,
		log:    log.WithField("component", "evaluation"),
	}
}

// Evaluate validates the inputs, calls the model once in JSON mode and
// interprets the reply. An unparseable reply is not an error: the response
// then has Success false and carries the raw text.
func (e *Evaluator) Evaluate(ctx context.Context, idea, problemStatement string) (*types.EvaluateResponse, error) {
	req := types.EvaluateRequest{Idea: idea, ProblemStatement: problemStatement}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt, err := BuildPrompt(idea, problemStatement)
	if err != nil {
		return nil, err
	}

	e.log.WithField("statement_length", len(problemStatement)).Info("evaluating problem statement")
	text, err := e.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate problem statement: %w", err)
	}

	resp := Interpret(idea, problemStatement, text)
	if !resp.Success {
		e.log.WithField("error", resp.Error).Warn("evaluation reply could not be fully parsed")
	}
	return resp, nil
}

// BuildPrompt fills the assessment prompt with the rubric, the idea and the statement.
func BuildPrompt(idea, problemStatement string) (string, error) {
	template, err := prompts.Get("evaluation.json", "assess-problem-statement")
	if err != nil {
		return "", fmt.Errorf("failed to load evaluation prompt: %w", err)
	}
	return prompts.Format(template, map[string]string{
		"ContentCriteria":  rubric.PromptList(rubric.AxisContent),
		"QualityCriteria":  rubric.PromptList(rubric.AxisQuality),
		"Idea":             strings.TrimSpace(idea),
		"ProblemStatement": strings.TrimSpace(problemStatement),
	}), nil
}

// Interpret turns a model reply into a response. It tries the JSON
// classification first and falls back to "Criterion: judgment" lines.
func Interpret(idea, problemStatement, text string) *types.EvaluateResponse {
	resp := &types.EvaluateResponse{
		Idea:             idea,
		ProblemStatement: problemStatement,
		Evaluation:       text,
	}

	classification, err := DecodeClassification(text)
	if err == nil {
		resp.Success = true
		resp.Data = classification
		resp.Criteria = rubric.Complete(rubric.FromClassification(classification.XAxis, classification.YAxis))
		return resp
	}

	judgments, found := rubric.ParseText(text)
	resp.Criteria = rubric.Complete(judgments)
	total := len(rubric.Names())
	switch {
	case found == total:
		resp.Success = true
	case found > 0:
		resp.Error = fmt.Sprintf("evaluation named only %d of %d criteria", found, total)
		resp.RawResponse = text
	default:
		resp.Error = fmt.Sprintf("could not parse evaluation response: %v", err)
		resp.RawResponse = text
	}
	return resp
}
