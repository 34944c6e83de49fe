package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/sdg-idea-lab/internal/llm"
	"github.com/jonathan/sdg-idea-lab/internal/rubric"
	"github.com/jonathan/sdg-idea-lab/internal/sdg"
	"github.com/jonathan/sdg-idea-lab/internal/server/middleware"
	"github.com/jonathan/sdg-idea-lab/internal/types"
	"github.com/sirupsen/logrus"
)

const (
	statusTimeout = 2 * time.Second
	maxFormBytes  = 1 << 20
)

// Frontend renders the single-page form flow. Every step posts the state it
// needs (selected goals, generated ideas) back in hidden fields, so the
// server keeps nothing between requests.
type Frontend struct {
	backend Backend
	tmpl    *template.Template
	log     logrus.FieldLogger
}

// NewFrontend creates a Frontend. A nil logger uses the logrus standard logger.
func NewFrontend(backend Backend, log logrus.FieldLogger) (*Frontend, error) {
	if backend == nil {
		return nil, fmt.Errorf("frontend requires a backend")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Frontend{backend: backend, tmpl: tmpl, log: log.WithField("component", "web")}, nil
}

// Handler returns the routed handler wrapped in the middleware chain.
func (f *Frontend) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", f.handleIndex)
	mux.HandleFunc("POST /ideas", f.handleIdeas)
	mux.HandleFunc("POST /evaluate", f.handleEvaluate)
	mux.HandleFunc("GET /health", f.handleHealth)

	return middleware.Chain(mux,
		middleware.RequestID(),
		middleware.Logging(f.log),
		middleware.Recover(f.log),
		middleware.BodyLimit(maxFormBytes),
	)
}

type goalOption struct {
	ID   string
	Name string
}

type resultRow struct {
	Name     string
	Judgment string
}

// pageData is everything the index template shows.
type pageData struct {
	Goals            []goalOption
	SelectedIDs      []string
	SelectedNames    []string
	Ideas            []string
	SelectedIdea     string
	ProblemStatement string
	Criteria         []rubric.Criterion
	Result           *types.EvaluateResponse
	ResultRows       []resultRow
	Error            string
	BackendStatus    string
	BackendOK        bool
}

func (f *Frontend) newPage(ctx context.Context) *pageData {
	goals := sdg.All()
	options := make([]goalOption, len(goals))
	for i, g := range goals {
		options[i] = goalOption{ID: g.ID, Name: g.Name}
	}

	statusCtx, cancel := context.WithTimeout(ctx, statusTimeout)
	defer cancel()
	status, ok := f.backend.Status(statusCtx)

	return &pageData{
		Goals:         options,
		Criteria:      rubric.Criteria(),
		BackendStatus: status,
		BackendOK:     ok,
	}
}

func (f *Frontend) handleIndex(w http.ResponseWriter, r *http.Request) {
	f.render(w, r, http.StatusOK, f.newPage(r.Context()))
}

func (f *Frontend) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (f *Frontend) handleIdeas(w http.ResponseWriter, r *http.Request) {
	page := f.newPage(r.Context())
	if err := r.ParseForm(); err != nil {
		page.Error = "Could not read the submitted form."
		f.render(w, r, http.StatusBadRequest, page)
		return
	}

	page.SelectedIDs = r.PostForm["sdg"]
	switch {
	case len(page.SelectedIDs) == 0:
		page.Error = "Please select at least one SDG."
		f.render(w, r, http.StatusBadRequest, page)
		return
	case len(page.SelectedIDs) > sdg.MaxSelection:
		page.Error = fmt.Sprintf("Please select no more than %d SDGs.", sdg.MaxSelection)
		f.render(w, r, http.StatusBadRequest, page)
		return
	}

	resp, err := f.backend.GenerateIdeas(r.Context(), page.SelectedIDs)
	if err != nil {
		f.renderBackendError(w, r, page, "Failed to generate ideas", err)
		return
	}

	page.SelectedNames = resp.SDGsSelected
	page.Ideas = resp.Ideas
	if len(page.Ideas) == 0 {
		page.Error = "The model returned no ideas. Please try again."
	} else {
		page.SelectedIdea = page.Ideas[0]
	}
	f.render(w, r, http.StatusOK, page)
}

func (f *Frontend) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	page := f.newPage(r.Context())
	if err := r.ParseForm(); err != nil {
		page.Error = "Could not read the submitted form."
		f.render(w, r, http.StatusBadRequest, page)
		return
	}

	page.SelectedIDs = r.PostForm["sdg"]
	page.SelectedNames = goalNames(page.SelectedIDs)
	page.Ideas = r.PostForm["ideas"]
	page.SelectedIdea = r.PostForm.Get("idea")
	page.ProblemStatement = r.PostForm.Get("problem_statement")

	switch {
	case strings.TrimSpace(page.SelectedIdea) == "":
		page.Error = "Please choose a project idea."
		f.render(w, r, http.StatusBadRequest, page)
		return
	case strings.TrimSpace(page.ProblemStatement) == "":
		page.Error = "Please write a problem statement before evaluating."
		f.render(w, r, http.StatusBadRequest, page)
		return
	}

	resp, err := f.backend.Evaluate(r.Context(), page.SelectedIdea, page.ProblemStatement)
	if err != nil {
		f.renderBackendError(w, r, page, "Failed to evaluate problem statement", err)
		return
	}

	page.Result = resp
	for _, name := range rubric.Names() {
		judgment, ok := resp.Criteria[name]
		if !ok {
			judgment = rubric.Unknown
		}
		page.ResultRows = append(page.ResultRows, resultRow{Name: name, Judgment: judgment})
	}
	f.render(w, r, http.StatusOK, page)
}

func (f *Frontend) renderBackendError(w http.ResponseWriter, r *http.Request, page *pageData, prefix string, err error) {
	middleware.Logger(r.Context(), f.log).WithError(err).Warn(prefix)

	status := http.StatusBadGateway
	message := err.Error()

	var apiErr *APIError
	var llmErr *llm.Error
	var vErr *types.ValidationError
	var sErr *sdg.SelectionError
	switch {
	case errors.As(err, &apiErr):
		message = apiErr.Message
		if apiErr.Hint != "" {
			message += " " + apiErr.Hint
		}
		if apiErr.StatusCode == http.StatusBadRequest {
			status = http.StatusBadRequest
		}
	case errors.As(err, &llmErr):
		message = llmErr.Hint()
	case errors.As(err, &vErr):
		message = vErr.Field + " " + vErr.Message
		status = http.StatusBadRequest
	case errors.As(err, &sErr):
		message = sErr.Error()
		status = http.StatusBadRequest
	}

	page.Error = fmt.Sprintf("%s: %s", prefix, message)
	f.render(w, r, status, page)
}

func (f *Frontend) render(w http.ResponseWriter, r *http.Request, status int, page *pageData) {
	body, err := renderPage(f.tmpl, page)
	if err != nil {
		middleware.Logger(r.Context(), f.log).WithError(err).Error("failed to render page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// goalNames resolves posted goal IDs for display, skipping unknown ones.
func goalNames(ids []string) []string {
	var names []string
	for _, id := range ids {
		if g, ok := sdg.Lookup(id); ok {
			names = append(names, g.Name)
		}
	}
	return names
}
