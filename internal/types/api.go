// Package types provides the request and response shapes shared by the API
// server, the web frontend and the CLI.
//
//nolint:revive // types is a standard Go package name pattern
package types

// GenerateIdeasRequest is the body of POST /generate_ideas.
type GenerateIdeasRequest struct {
	SDGsSelected []string `json:"sdgs_selected" validate:"required,min=1,max=2,unique,dive,sdg"`
}

// GenerateIdeasResponse carries the raw model text and the ideas parsed from it.
type GenerateIdeasResponse struct {
	SDGsSelected         []string `json:"sdgs_selected"`
	ProjectIdeas         string   `json:"project_ideas"`
	Ideas                []string `json:"ideas"`
	ProblemStatementTips string   `json:"problem_statement_tips"`
}

// EvaluateRequest is the body of POST /evaluate_ps and one line of a batch file.
type EvaluateRequest struct {
	Idea             string `json:"idea" validate:"notblank"`
	ProblemStatement string `json:"problem_statement" validate:"notblank"`
}

// Classification is the two-axis rubric verdict the model returns.
type Classification struct {
	XAxis string `json:"X_Axis_Rubric_Category"`
	YAxis string `json:"Y_Axis_Rubric_Category"`
}

// EvaluateResponse is the body returned by POST /evaluate_ps. Idea and
// "Problem Statement" keep their capitalized keys for existing clients.
type EvaluateResponse struct {
	Success          bool              `json:"success"`
	Idea             string            `json:"Idea"`
	ProblemStatement string            `json:"Problem Statement"`
	Data             *Classification   `json:"data,omitempty"`
	Criteria         map[string]string `json:"criteria"`
	Evaluation       string            `json:"evaluation"`
	Error            string            `json:"error,omitempty"`
	RawResponse      string            `json:"raw_response,omitempty"`
}

// CriterionInfo describes one rubric criterion for GET /criteria.
type CriterionInfo struct {
	Name        string `json:"name"`
	Axis        string `json:"axis"`
	Description string `json:"description"`
}

// CriteriaResponse is the body of GET /criteria.
type CriteriaResponse struct {
	Criteria []CriterionInfo `json:"criteria"`
	Tips     string          `json:"tips"`
}

// ErrorResponse is the JSON body of every non-2xx API reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Hint  string `json:"hint,omitempty"`
}
