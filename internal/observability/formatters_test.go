package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/sdg-idea-lab/internal/rubric"
	"github.com/jonathan/sdg-idea-lab/internal/sdg"
	"github.com/jonathan/sdg-idea-lab/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintIdeas(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintIdeas(&types.GenerateIdeasResponse{
		SDGsSelected: []string{"Climate Action", "Life on Land"},
		Ideas:        []string{"Tree Census", "Rain Garden"},
	})
	output := buf.String()

	assert.Contains(t, output, "PROJECT IDEAS")
	assert.Contains(t, output, "Climate Action, Life on Land")
	assert.Contains(t, output, "1. Tree Census")
	assert.Contains(t, output, "2. Rain Garden")
}

func TestPrintIdeas_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintIdeas(nil)

	assert.Empty(t, buf.String())
}

func TestPrintEvaluation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintEvaluation(&types.EvaluateResponse{
		Success:  true,
		Idea:     "Rain Garden",
		Data:     &types.Classification{XAxis: "Has Very Good Grammar", YAxis: "Contains Data Only"},
		Criteria: rubric.Complete(map[string]string{rubric.ContainsData: rubric.Met, rubric.Grammar: rubric.PartiallyMet}),
	})
	output := buf.String()

	assert.Contains(t, output, "PROBLEM STATEMENT EVALUATION")
	assert.Contains(t, output, "evaluation completed")
	assert.Contains(t, output, "Contains Data Only")
	for _, name := range rubric.Names() {
		assert.Contains(t, output, name)
	}
	assert.Contains(t, output, "✓ Contains Data")
	assert.Contains(t, output, "~ Grammar")
	assert.Contains(t, output, "? References Included")
}

func TestPrintEvaluation_Failure(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintEvaluation(&types.EvaluateResponse{
		Idea:        "Rain Garden",
		Criteria:    rubric.Complete(nil),
		Error:       "could not parse evaluation response",
		RawResponse: "garbled",
	})
	output := buf.String()

	assert.Contains(t, output, "needs improvement")
	assert.Contains(t, output, "could not parse evaluation response")
	assert.Contains(t, output, "garbled")
}

func TestPrintGoals(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintGoals(sdg.All())
	output := buf.String()

	assert.Contains(t, output, "SDG1   No Poverty")
	assert.Contains(t, output, "SDG17  Partnerships for the Goals")
}

func TestPrintCriteria(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCriteria()
	output := buf.String()

	assert.Contains(t, output, "Content criteria:")
	assert.Contains(t, output, "Quality criteria:")
	assert.Contains(t, output, "• Relevant to the Idea")
}

func TestPrintBatchSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBatchSummary([]*types.EvaluateResponse{{Success: true}, {Success: false}, {Success: true}}, "out.jsonl")
	output := buf.String()

	assert.Contains(t, output, "Statements:  3")
	assert.Contains(t, output, "Completed:   2")
	assert.Contains(t, output, "Needs work:  1")
	assert.Contains(t, output, "out.jsonl")
}

func TestPrintBox_WrapsLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("word ", 40))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), "line %q", line)
	}
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"short"}, wrap("short", 10))
	assert.Equal(t, []string{"one two", "three"}, wrap("one two three", 8))
	assert.Equal(t, []string{"abcde", "fgh"}, wrap("abcdefgh", 5))
}
