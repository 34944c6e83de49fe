// Package rubric holds the fixed problem-statement rubric and turns model
// verdicts into per-criterion judgments.
package rubric

import (
	"fmt"
	"strings"
)

// Axis is the half of the rubric a criterion belongs to.
type Axis string

const (
	// AxisContent is the Y axis: what the statement contains.
	AxisContent Axis = "content"
	// AxisQuality is the X axis: how well the statement is written.
	AxisQuality Axis = "quality"
)

// Judgment values reported for each criterion.
const (
	Met          = "met"
	PartiallyMet = "partially met"
	NotMet       = "not met"
	Unknown      = "unknown"
)

// Criterion is one rubric dimension.
type Criterion struct {
	Name        string
	Axis        Axis
	Description string
	// keywords locate the criterion inside a category phrase, lowercased
	keywords []string
}

// Criterion names, in rubric order.
const (
	ContainsData         = "Contains Data"
	ReferencesIncluded   = "References Included"
	LocationClear        = "Location/Area Clear"
	TargetAudience       = "Target Audience Clearly Stated"
	ImpactDescribed      = "Impact Described"
	Grammar              = "Grammar"
	Understanding        = "Demonstrates Understanding"
	Precise              = "Precise and To the Point"
	RelevantToIdea       = "Relevant to the Idea"
	WellStructured       = "Info Is Well-Structured and Easy to Understand"
	notRelevantToTheIdea = "not relevant content to the idea"
)

var criteria = []Criterion{
	{
		Name:        ContainsData,
		Axis:        AxisContent,
		Description: "The problem statement includes relevant quantitative or qualitative data supporting the existence of the problem.",
		keywords:    []string{"data"},
	},
	{
		Name:        ReferencesIncluded,
		Axis:        AxisContent,
		Description: "The statement cites credible sources or references that validate the problem.",
		keywords:    []string{"reference"},
	},
	{
		Name:        LocationClear,
		Axis:        AxisContent,
		Description: "Clearly specifies the geographical location or specific area where the problem exists.",
		keywords:    []string{"location", "area clear"},
	},
	{
		Name:        TargetAudience,
		Axis:        AxisContent,
		Description: "Defines the specific group or demographic affected by the problem.",
		keywords:    []string{"target audience"},
	},
	{
		Name:        ImpactDescribed,
		Axis:        AxisContent,
		Description: "Explains the consequences or negative impact if the problem remains unaddressed.",
		keywords:    []string{"impact"},
	},
	{
		Name:        Grammar,
		Axis:        AxisQuality,
		Description: "The response uses correct grammar, spelling, and punctuation throughout.",
		keywords:    []string{"grammar"},
	},
	{
		Name:        Understanding,
		Axis:        AxisQuality,
		Description: "The answer reflects a clear comprehension of the question or topic, showing insight and awareness.",
		keywords:    []string{"understanding"},
	},
	{
		Name:        Precise,
		Axis:        AxisQuality,
		Description: "The information is concise, avoiding unnecessary details and focusing on the core message.",
		keywords:    []string{"precise", "to the point"},
	},
	{
		Name:        RelevantToIdea,
		Axis:        AxisQuality,
		Description: "The content directly relates to and supports the main idea or purpose being assessed.",
		keywords:    []string{"relevant"},
	},
	{
		Name:        WellStructured,
		Axis:        AxisQuality,
		Description: "The response is logically organized, making it straightforward and accessible for the reader to follow.",
		keywords:    []string{"structured", "easy to understand"},
	},
}

// Criteria returns the 10 rubric criteria in order. The slice is a fresh copy.
func Criteria() []Criterion {
	out := make([]Criterion, len(criteria))
	copy(out, criteria)
	return out
}

// Names returns the criterion names in rubric order.
func Names() []string {
	names := make([]string, len(criteria))
	for i, c := range criteria {
		names[i] = c.Name
	}
	return names
}

// ByAxis returns the criteria on one axis.
func ByAxis(axis Axis) []Criterion {
	var out []Criterion
	for _, c := range criteria {
		if c.Axis == axis {
			out = append(out, c)
		}
	}
	return out
}

// Tips renders the rubric as the markdown guidance shown to students.
func Tips() string {
	var b strings.Builder
	b.WriteString("EFFECTIVE PROBLEM STATEMENT ASSESSMENT CRITERIA\n")
	for i, c := range criteria {
		fmt.Fprintf(&b, "\n%d. **%s**: %s\n", i+1, c.Name, c.Description)
	}
	return b.String()
}

// PromptList renders the criteria of one axis as a bulleted list for prompts.
func PromptList(axis Axis) string {
	var lines []string
	for _, c := range ByAxis(axis) {
		lines = append(lines, fmt.Sprintf("- %s: %s", c.Name, c.Description))
	}
	return strings.Join(lines, "\n")
}

// Complete returns a copy of judgments that names every criterion, filling
// missing ones with Unknown.
func Complete(judgments map[string]string) map[string]string {
	out := make(map[string]string, len(criteria))
	for _, c := range criteria {
		if j, ok := judgments[c.Name]; ok && j != "" {
			out[c.Name] = j
			continue
		}
		out[c.Name] = Unknown
	}
	return out
}
