package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/sdg-idea-lab/internal/llm"
	"github.com/jonathan/sdg-idea-lab/internal/rubric"
	"github.com/jonathan/sdg-idea-lab/internal/types"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend implements Backend for testing
type fakeBackend struct {
	GenerateIdeasFunc func(ctx context.Context, sdgs []string) (*types.GenerateIdeasResponse, error)
	EvaluateFunc      func(ctx context.Context, idea, problemStatement string) (*types.EvaluateResponse, error)
	generateCalls     int
	evaluateCalls     int
}

func (f *fakeBackend) GenerateIdeas(ctx context.Context, sdgs []string) (*types.GenerateIdeasResponse, error) {
	f.generateCalls++
	if f.GenerateIdeasFunc != nil {
		return f.GenerateIdeasFunc(ctx, sdgs)
	}
	return &types.GenerateIdeasResponse{
		SDGsSelected: []string{"Climate Action"},
		Ideas:        []string{"Tree Census", "Rain Garden"},
	}, nil
}

func (f *fakeBackend) Evaluate(ctx context.Context, idea, problemStatement string) (*types.EvaluateResponse, error) {
	f.evaluateCalls++
	if f.EvaluateFunc != nil {
		return f.EvaluateFunc(ctx, idea, problemStatement)
	}
	return &types.EvaluateResponse{
		Success:          true,
		Idea:             idea,
		ProblemStatement: problemStatement,
		Data:             &types.Classification{XAxis: "Has Very Good Grammar", YAxis: "Contains Data Only"},
		Criteria:         rubric.Complete(rubric.FromClassification("Has Very Good Grammar", "Contains Data Only")),
	}, nil
}

func (f *fakeBackend) Status(context.Context) (string, bool) {
	return "fake backend", true
}

func newTestFrontend(t *testing.T, backend Backend) http.Handler {
	t.Helper()
	logger, _ := test.NewNullLogger()
	f, err := NewFrontend(backend, logger)
	require.NoError(t, err)
	return f.Handler()
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) (*httptest.ResponseRecorder, *goquery.Document) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	require.NoError(t, err)
	return w, doc
}

func TestIndex(t *testing.T) {
	h := newTestFrontend(t, &fakeBackend{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)

	assert.Equal(t, 17, doc.Find(`input[type=checkbox][name=sdg]`).Length())
	assert.Equal(t, "fake backend", strings.TrimSpace(doc.Find("#backend-status").Text()))
	assert.Zero(t, doc.Find("#evaluate-form").Length())
	assert.Zero(t, doc.Find("#error").Length())
}

func TestHealth(t *testing.T) {
	h := newTestFrontend(t, &fakeBackend{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestIdeas_Success(t *testing.T) {
	backend := &fakeBackend{}
	h := newTestFrontend(t, backend)

	w, doc := postForm(t, h, "/ideas", url.Values{"sdg": {"SDG13"}})
	require.Equal(t, http.StatusOK, w.Code)

	radios := doc.Find(`#evaluate-form input[type=radio][name=idea]`)
	require.Equal(t, 2, radios.Length())
	first, _ := radios.First().Attr("value")
	assert.Equal(t, "Tree Census", first)
	_, checked := radios.First().Attr("checked")
	assert.True(t, checked)

	hiddenSDG, _ := doc.Find(`#evaluate-form input[type=hidden][name=sdg]`).Attr("value")
	assert.Equal(t, "SDG13", hiddenSDG)
	assert.Equal(t, 2, doc.Find(`#evaluate-form input[type=hidden][name=ideas]`).Length())
	assert.Equal(t, "Climate Action", doc.Find("#selected-sdgs").Text())
	assert.Equal(t, 10, doc.Find("#tips li").Length())

	_, kept := doc.Find(`#sdg-form input[value=SDG13]`).Attr("checked")
	assert.True(t, kept)
	assert.Equal(t, 1, backend.generateCalls)
}

func TestIdeas_SelectionChecks(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		wantMsg string
	}{
		{name: "none selected", form: url.Values{}, wantMsg: "at least one SDG"},
		{name: "three selected", form: url.Values{"sdg": {"SDG1", "SDG2", "SDG3"}}, wantMsg: "no more than 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{}
			h := newTestFrontend(t, backend)

			w, doc := postForm(t, h, "/ideas", tt.form)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, doc.Find("#error").Text(), tt.wantMsg)
			assert.Zero(t, backend.generateCalls)
		})
	}
}

func TestIdeas_BackendError(t *testing.T) {
	backend := &fakeBackend{
		GenerateIdeasFunc: func(context.Context, []string) (*types.GenerateIdeasResponse, error) {
			return nil, &llm.Error{Kind: llm.KindQuotaExceeded}
		},
	}
	h := newTestFrontend(t, backend)

	w, doc := postForm(t, h, "/ideas", url.Values{"sdg": {"SDG1"}})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, doc.Find("#error").Text(), "Failed to generate ideas")
	assert.Contains(t, doc.Find("#error").Text(), "quota")
}

func TestEvaluate_Success(t *testing.T) {
	backend := &fakeBackend{}
	h := newTestFrontend(t, backend)

	form := url.Values{
		"sdg":               {"SDG13"},
		"ideas":             {"Tree Census", "Rain Garden"},
		"idea":              {"Rain Garden"},
		"problem_statement": {"Flooding hits 300 homes in our town each spring."},
	}
	w, doc := postForm(t, h, "/evaluate", form)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, doc.Find("#result-status").Text(), "Completed")
	assert.Equal(t, "Contains Data Only", doc.Find("#y-axis").Text())

	rows := doc.Find("#criteria tr")
	assert.Equal(t, 11, rows.Length(), "header plus one row per criterion")
	assert.Equal(t, 1, doc.Find("#criteria td.met").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Prev().Text() == rubric.ContainsData
	}).Length())

	checked := doc.Find(`#evaluate-form input[type=radio][checked]`)
	v, _ := checked.Attr("value")
	assert.Equal(t, "Rain Garden", v)
	assert.Contains(t, doc.Find("textarea[name=problem_statement]").Text(), "Flooding hits 300 homes")
	assert.Equal(t, 1, backend.evaluateCalls)
}

func TestEvaluate_NeedsImprovement(t *testing.T) {
	backend := &fakeBackend{
		EvaluateFunc: func(_ context.Context, idea, ps string) (*types.EvaluateResponse, error) {
			return &types.EvaluateResponse{
				Idea:             idea,
				ProblemStatement: ps,
				Criteria:         rubric.Complete(nil),
				Error:            "could not parse evaluation response",
				RawResponse:      "<b>odd</b> reply",
			}, nil
		},
	}
	h := newTestFrontend(t, backend)

	form := url.Values{"ideas": {"A"}, "idea": {"A"}, "problem_statement": {"Some text"}}
	_, doc := postForm(t, h, "/evaluate", form)

	assert.Contains(t, doc.Find("#result-status").Text(), "Needs Improvement")
	assert.Equal(t, "<b>odd</b> reply", doc.Find("#raw-response").Text(), "raw text is escaped, not rendered")
	assert.Equal(t, 10, doc.Find("#criteria td.unknown").Length())
}

func TestEvaluate_InputChecks(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		wantMsg string
	}{
		{
			name:    "no idea chosen",
			form:    url.Values{"ideas": {"A"}, "problem_statement": {"text"}},
			wantMsg: "choose a project idea",
		},
		{
			name:    "blank statement",
			form:    url.Values{"ideas": {"A"}, "idea": {"A"}, "problem_statement": {"   "}},
			wantMsg: "write a problem statement",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{}
			h := newTestFrontend(t, backend)

			w, doc := postForm(t, h, "/evaluate", tt.form)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, doc.Find("#error").Text(), tt.wantMsg)
			assert.Zero(t, backend.evaluateCalls)
			assert.Equal(t, 1, doc.Find(`#evaluate-form input[type=hidden][name=ideas]`).Length(), "state survives the error")
		})
	}
}

func TestEvaluate_APIValidationError(t *testing.T) {
	backend := &fakeBackend{
		EvaluateFunc: func(context.Context, string, string) (*types.EvaluateResponse, error) {
			return nil, &APIError{StatusCode: http.StatusBadRequest, Message: "must not be empty", Field: "idea"}
		},
	}
	h := newTestFrontend(t, backend)

	w, doc := postForm(t, h, "/evaluate", url.Values{"idea": {"A"}, "problem_statement": {"x"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, doc.Find("#error").Text(), "must not be empty")
}

func TestNewFrontend_RequiresBackend(t *testing.T) {
	_, err := NewFrontend(nil, nil)
	assert.Error(t, err)
}

func TestDirectBackend(t *testing.T) {
	gen := &fakeBackend{}
	b := NewDirectBackend(generatorFunc(gen.GenerateIdeas), evaluatorFunc(gen.Evaluate))

	resp, err := b.GenerateIdeas(context.Background(), []string{"SDG1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Ideas)

	status, ok := b.Status(context.Background())
	assert.Equal(t, "in-process", status)
	assert.True(t, ok)

	failing := NewDirectBackend(nil, evaluatorFunc(func(context.Context, string, string) (*types.EvaluateResponse, error) {
		return nil, errors.New("boom")
	}))
	_, err = failing.Evaluate(context.Background(), "a", "b")
	assert.EqualError(t, err, "boom")
}

type generatorFunc func(ctx context.Context, sdgs []string) (*types.GenerateIdeasResponse, error)

func (f generatorFunc) Generate(ctx context.Context, sdgs []string) (*types.GenerateIdeasResponse, error) {
	return f(ctx, sdgs)
}

type evaluatorFunc func(ctx context.Context, idea, ps string) (*types.EvaluateResponse, error)

func (f evaluatorFunc) Evaluate(ctx context.Context, idea, ps string) (*types.EvaluateResponse, error) {
	return f(ctx, idea, ps)
}
