package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jonathan/sdg-idea-lab/internal/rubric"
	"github.com/jonathan/sdg-idea-lab/internal/sdg"
	"github.com/jonathan/sdg-idea-lab/internal/types"
)

// RootResponse is the service banner served at GET /
type RootResponse struct {
	Message   string   `json:"message"`
	Endpoints []string `json:"endpoints"`
}

// handleRoot describes the service
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, RootResponse{
		Message: "SDG Idea Lab API",
		Endpoints: []string{
			"POST /generate_ideas",
			"POST /evaluate_ps",
			"GET /sdgs",
			"GET /criteria",
			"GET /health",
		},
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListSDGs lists the 17 goals
func (s *Server) handleListSDGs(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string][]sdg.Goal{"sdgs": sdg.All()})
}

// handleCriteria returns the rubric and the tips text
func (s *Server) handleCriteria(w http.ResponseWriter, _ *http.Request) {
	criteria := rubric.Criteria()
	resp := types.CriteriaResponse{
		Criteria: make([]types.CriterionInfo, len(criteria)),
		Tips:     rubric.Tips(),
	}
	for i, c := range criteria {
		resp.Criteria[i] = types.CriterionInfo{Name: c.Name, Axis: string(c.Axis), Description: c.Description}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleGenerateIdeas generates project ideas for the selected SDGs
func (s *Server) handleGenerateIdeas(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateIdeasRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err, "invalid request body")
		return
	}

	resp, err := s.ideas.Generate(r.Context(), req.SDGsSelected)
	if err != nil {
		s.writeError(w, r, err, "failed to generate project ideas")
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleEvaluate scores a problem statement against the rubric. A reply the
// model formatted badly is still a 200 with success=false.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req types.EvaluateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err, "invalid request body")
		return
	}

	resp, err := s.evaluator.Evaluate(r.Context(), req.Idea, req.ProblemStatement)
	if err != nil {
		s.writeError(w, r, err, "failed to evaluate problem statement")
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// decodeJSON reads a single JSON object from the request body.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return &ErrValidation{Field: "body", Message: "request body is required"}
	}

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &maxErr):
			return &ErrBodyTooLarge{Limit: maxErr.Limit}
		case errors.Is(err, io.EOF):
			return &ErrValidation{Field: "body", Message: "request body is required"}
		case errors.As(err, &typeErr):
			return &ErrValidation{Field: typeErr.Field, Message: fmt.Sprintf("must be %s", typeErr.Type)}
		default:
			return &ErrValidation{Field: "body", Message: fmt.Sprintf("invalid JSON: %v", err)}
		}
	}
	return nil
}
