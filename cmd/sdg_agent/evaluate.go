package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/sdg-idea-lab/internal/evaluation"
	"github.com/jonathan/sdg-idea-lab/internal/observability"
	"github.com/jonathan/sdg-idea-lab/internal/rubric"
	"github.com/jonathan/sdg-idea-lab/internal/types"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// defaultConcurrency is the number of statements evaluated at once in batch mode.
const defaultConcurrency = 4

var (
	evaluateIdea        string
	evaluateStatement   string
	evaluateJSON        bool
	evaluateBatch       string
	evaluateOut         string
	evaluateConcurrency int
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate problem statements against the rubric",
	Long: `Evaluate a single problem statement with --idea and --statement, or many at once
with --batch. A batch file holds one {"idea": ..., "problem_statement": ...} object
per line; results are written as JSON lines in the same order.`,
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVar(&evaluateIdea, "idea", "", "Project idea the statement belongs to")
	evaluateCmd.Flags().StringVar(&evaluateStatement, "statement", "", "Problem statement to evaluate")
	evaluateCmd.Flags().BoolVar(&evaluateJSON, "json", false, "Print the API response JSON instead of a summary")
	evaluateCmd.Flags().StringVar(&evaluateBatch, "batch", "", "JSON lines file of statements to evaluate")
	evaluateCmd.Flags().StringVarP(&evaluateOut, "out", "o", "", "Output file for batch results (default stdout)")
	evaluateCmd.Flags().IntVar(&evaluateConcurrency, "concurrency", defaultConcurrency, "Evaluations to run at once in batch mode")
	evaluateCmd.MarkFlagsRequiredTogether("idea", "statement")
	evaluateCmd.MarkFlagsMutuallyExclusive("batch", "idea")
	evaluateCmd.MarkFlagsOneRequired("batch", "idea")
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	cfg, log, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close() //nolint:errcheck

	model, err := newModel(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer model.Close() //nolint:errcheck

	evaluator := evaluation.NewEvaluator(model, log)
	printer := observability.NewPrinter(os.Stdout)

	if evaluateBatch == "" {
		resp, err := evaluator.Evaluate(cmd.Context(), evaluateIdea, evaluateStatement)
		if err != nil {
			return err
		}
		if evaluateJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		}
		printer.PrintEvaluation(resp)
		return nil
	}

	in, err := os.Open(evaluateBatch)
	if err != nil {
		return fmt.Errorf("failed to open batch file: %w", err)
	}
	defer in.Close() //nolint:errcheck

	items, err := readBatch(in)
	if err != nil {
		return err
	}

	results, err := evaluateAll(cmd.Context(), evaluator, items, evaluateConcurrency, log)
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if evaluateOut != "" {
		f, err := os.Create(evaluateOut)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close() //nolint:errcheck
		out = f
	}
	if err := writeBatch(out, results); err != nil {
		return err
	}
	if evaluateOut != "" {
		printer.PrintBatchSummary(results, evaluateOut)
	}
	return nil
}

// batchItem is one input line. Err is set when the line could not be decoded.
type batchItem struct {
	Line int
	types.EvaluateRequest
	Err error
}

type statementEvaluator interface {
	Evaluate(ctx context.Context, idea, problemStatement string) (*types.EvaluateResponse, error)
}

// readBatch decodes one request per non-blank line. A malformed line is kept
// as an item carrying its decode error so the output stays aligned.
func readBatch(r io.Reader) ([]batchItem, error) {
	var items []batchItem
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		item := batchItem{Line: line}
		if err := json.Unmarshal([]byte(text), &item.EvaluateRequest); err != nil {
			item.Err = fmt.Errorf("line %d: invalid JSON: %w", line, err)
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return items, nil
}

// evaluateAll runs the evaluations with at most concurrency in flight and
// returns results in input order. Invalid items yield an unsuccessful result;
// a model failure cancels the rest and is returned.
func evaluateAll(ctx context.Context, e statementEvaluator, items []batchItem, concurrency int, log logrus.FieldLogger) ([]*types.EvaluateResponse, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make([]*types.EvaluateResponse, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, item := range items {
		g.Go(func() error {
			if item.Err != nil {
				results[i] = failedResult(item.EvaluateRequest, item.Err)
				return nil
			}
			resp, err := e.Evaluate(ctx, item.Idea, item.ProblemStatement)
			var verr *types.ValidationError
			switch {
			case errors.As(err, &verr):
				results[i] = failedResult(item.EvaluateRequest, fmt.Errorf("line %d: %w", item.Line, err))
				return nil
			case err != nil:
				return fmt.Errorf("line %d: %w", item.Line, err)
			}
			results[i] = resp
			log.WithFields(logrus.Fields{"line": item.Line, "success": resp.Success}).Debug("statement evaluated")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func failedResult(req types.EvaluateRequest, err error) *types.EvaluateResponse {
	return &types.EvaluateResponse{
		Idea:             req.Idea,
		ProblemStatement: req.ProblemStatement,
		Criteria:         rubric.Complete(nil),
		Error:            err.Error(),
	}
}

// writeBatch writes one JSON object per line.
func writeBatch(w io.Writer, results []*types.EvaluateResponse) error {
	enc := json.NewEncoder(w)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}
	return nil
}
