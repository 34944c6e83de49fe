package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/jonathan/sdg-idea-lab/internal/server/middleware"
	"github.com/jonathan/sdg-idea-lab/internal/types"
	"github.com/sirupsen/logrus"
)

// MaxBodyBytes caps the size of request bodies.
const MaxBodyBytes int64 = 1 << 20

// IdeaGenerator produces project ideas for an SDG selection.
type IdeaGenerator interface {
	Generate(ctx context.Context, sdgs []string) (*types.GenerateIdeasResponse, error)
}

// StatementEvaluator scores a problem statement against the rubric.
type StatementEvaluator interface {
	Evaluate(ctx context.Context, idea, problemStatement string) (*types.EvaluateResponse, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	ideas           IdeaGenerator
	evaluator       StatementEvaluator
	log             logrus.FieldLogger
	shutdownTimeout time.Duration
}

// Config holds server configuration
type Config struct {
	Port      int
	Ideas     IdeaGenerator
	Evaluator StatementEvaluator
	Logger    logrus.FieldLogger
	// ShutdownTimeout bounds graceful shutdown; zero means 30s
	ShutdownTimeout time.Duration
	// AITimeout is the model call limit; the write timeout leaves room beyond it
	AITimeout time.Duration
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Ideas == nil || cfg.Evaluator == nil {
		return nil, fmt.Errorf("server requires an idea generator and an evaluator")
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.AITimeout <= 0 {
		cfg.AITimeout = 60 * time.Second
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}

	s := &Server{
		ideas:           cfg.Ideas,
		evaluator:       cfg.Evaluator,
		log:             cfg.Logger.WithField("component", "server"),
		shutdownTimeout: cfg.ShutdownTimeout,
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.AITimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /sdgs", s.handleListSDGs)
	mux.HandleFunc("GET /criteria", s.handleCriteria)
	mux.HandleFunc("POST /generate_ideas", s.handleGenerateIdeas)
	mux.HandleFunc("POST /evaluate_ps", s.handleEvaluate)

	return middleware.Chain(mux,
		middleware.RequestID(),
		middleware.Logging(s.log),
		middleware.Recover(s.log),
		middleware.CORS(),
		middleware.BodyLimit(MaxBodyBytes),
	)
}

// Start listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", ln.Addr().String()).Info("server starting")
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.WithError(err).Error("error encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, types.ErrorResponse{Error: message})
}

// writeError maps err to a status code and a JSON body. message is used for
// server-side failures so internal details stay out of replies.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, message string) {
	err = asValidation(err)
	status := HTTPStatus(err)

	var validationErr *ErrValidation
	switch {
	case errors.As(err, &validationErr):
		s.jsonResponse(w, status, types.ErrorResponse{
			Error: validationErr.Message,
			Field: validationErr.Field,
		})
	case status == http.StatusInternalServerError:
		middleware.Logger(r.Context(), s.log).WithError(err).Error(message)
		s.jsonResponse(w, status, types.ErrorResponse{Error: message, Hint: hint(err)})
	default:
		s.errorResponse(w, status, err.Error())
	}
}
