package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"slices"

	"github.com/jonathan/sdg-idea-lab/internal/rubric"
)

//go:embed templates/*.html
var templateFiles embed.FS

// TemplateError represents an error parsing or executing a page template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

var funcs = template.FuncMap{
	"inc":           func(i int) int { return i + 1 },
	"has":           func(list []string, v string) bool { return slices.Contains(list, v) },
	"judgmentClass": judgmentClass,
}

// parseTemplates parses the embedded page templates.
func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("pages").Funcs(funcs).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse templates", Cause: err}
	}
	return tmpl, nil
}

// renderPage executes the index template into a buffer so a failed render
// never leaves a half-written page.
func renderPage(tmpl *template.Template, data *pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		return nil, &TemplateError{Message: "failed to execute template", Cause: err}
	}
	return buf.Bytes(), nil
}

// judgmentClass maps a criterion judgment to a CSS class.
func judgmentClass(judgment string) string {
	switch judgment {
	case rubric.Met:
		return "met"
	case rubric.PartiallyMet:
		return "partial"
	case rubric.NotMet:
		return "not-met"
	default:
		return "unknown"
	}
}
