// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/sdg-idea-lab/internal/rubric"
	"github.com/jonathan/sdg-idea-lab/internal/sdg"
	"github.com/jonathan/sdg-idea-lab/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// innerWidth is the printable width inside a box
	innerWidth = boxWidth - 4
)

// Printer handles formatted output for the terminal commands
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content. Long lines are
// wrapped at word boundaries.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, wrapped := range wrap(line, innerWidth) {
			fmt.Fprintf(p.out, "│ %s │\n", pad(wrapped))
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintIdeas outputs the generated ideas as a numbered list.
func (p *Printer) PrintIdeas(resp *types.GenerateIdeasResponse) {
	if resp == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("SDGs: %s\n\n", strings.Join(resp.SDGsSelected, ", ")))
	if len(resp.Ideas) == 0 {
		sb.WriteString(resp.ProjectIdeas)
	}
	for i, idea := range resp.Ideas {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, idea))
	}

	p.printBox("PROJECT IDEAS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEvaluation outputs the verdict and one line per criterion.
func (p *Printer) PrintEvaluation(resp *types.EvaluateResponse) {
	if resp == nil {
		return
	}

	var sb strings.Builder
	if resp.Success {
		sb.WriteString("Status: evaluation completed\n")
	} else {
		sb.WriteString("Status: needs improvement\n")
	}
	sb.WriteString(fmt.Sprintf("Idea: %s\n", resp.Idea))
	if resp.Data != nil {
		sb.WriteString(fmt.Sprintf("Quality: %s\n", resp.Data.XAxis))
		sb.WriteString(fmt.Sprintf("Content: %s\n", resp.Data.YAxis))
	}
	sb.WriteString("\n")

	for _, name := range rubric.Names() {
		judgment, ok := resp.Criteria[name]
		if !ok {
			judgment = rubric.Unknown
		}
		sb.WriteString(fmt.Sprintf("%s %-46s %s\n", marker(judgment), name, judgment))
	}

	if resp.Error != "" {
		sb.WriteString(fmt.Sprintf("\nError: %s\n", resp.Error))
	}
	if resp.RawResponse != "" {
		sb.WriteString(fmt.Sprintf("\nRaw response:\n%s\n", resp.RawResponse))
	}

	p.printBox("PROBLEM STATEMENT EVALUATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGoals outputs the 17 goals.
func (p *Printer) PrintGoals(goals []sdg.Goal) {
	var sb strings.Builder
	for _, g := range goals {
		sb.WriteString(fmt.Sprintf("%-6s %s\n", g.ID, g.Name))
	}
	p.printBox("SUSTAINABLE DEVELOPMENT GOALS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCriteria outputs the rubric grouped by axis.
func (p *Printer) PrintCriteria() {
	var sb strings.Builder
	for _, axis := range []rubric.Axis{rubric.AxisContent, rubric.AxisQuality} {
		sb.WriteString(fmt.Sprintf("%s criteria:\n", strings.ToUpper(string(axis[:1]))+string(axis[1:])))
		for _, c := range rubric.ByAxis(axis) {
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", c.Name, c.Description))
		}
		sb.WriteString("\n")
	}
	p.printBox("PROBLEM STATEMENT CRITERIA", strings.TrimSuffix(sb.String(), "\n\n"))
}

// PrintBatchSummary outputs the totals of a batch evaluation.
func (p *Printer) PrintBatchSummary(results []*types.EvaluateResponse, outPath string) {
	succeeded := 0
	for _, r := range results {
		if r != nil && r.Success {
			succeeded++
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Statements:  %d\n", len(results)))
	sb.WriteString(fmt.Sprintf("Completed:   %d\n", succeeded))
	sb.WriteString(fmt.Sprintf("Needs work:  %d\n", len(results)-succeeded))
	if outPath != "" {
		sb.WriteString(fmt.Sprintf("Output:      %s", outPath))
	}
	p.printBox("BATCH EVALUATION", strings.TrimSuffix(sb.String(), "\n"))
}

func marker(judgment string) string {
	switch judgment {
	case rubric.Met:
		return "✓"
	case rubric.PartiallyMet:
		return "~"
	case rubric.NotMet:
		return "✗"
	default:
		return "?"
	}
}

// pad right-pads s with spaces to innerWidth runes.
func pad(s string) string {
	if n := utf8.RuneCountInString(s); n < innerWidth {
		return s + strings.Repeat(" ", innerWidth-n)
	}
	return s
}

// wrap splits line into pieces of at most width runes, breaking at spaces
// where possible.
func wrap(line string, width int) []string {
	if utf8.RuneCountInString(line) <= width {
		return []string{line}
	}

	var out []string
	var current []rune
	for _, word := range strings.Fields(line) {
		w := []rune(word)
		for len(w) > width {
			if len(current) > 0 {
				out = append(out, string(current))
				current = nil
			}
			out = append(out, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(current) == 0:
			current = w
		case len(current)+1+len(w) <= width:
			current = append(append(current, ' '), w...)
		default:
			out = append(out, string(current))
			current = w
		}
	}
	if len(current) > 0 {
		out = append(out, string(current))
	}
	return out
}
