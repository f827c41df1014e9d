package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/markcheck"
	"github.com/aretw0/markcheck/pkg/domain"
	"github.com/aretw0/markcheck/pkg/ports"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// DefaultMaxBodyBytes bounds the size of a request body.
const DefaultMaxBodyBytes = 1 << 20

// RequestIDHeader carries the id of a request in both directions.
const RequestIDHeader = "X-Request-ID"

// EvaluateRequest is the body of POST /evaluate.
type EvaluateRequest struct {
	Script       string `json:"script"`
	StudentCode  string `json:"student_code"`
	SolutionCode string `json:"solution_code"`
}

// SubmissionRequest is the body of POST /exercises/{id}/evaluate.
type SubmissionRequest struct {
	StudentCode string `json:"student_code"`
}

// ExerciseList is the body of GET /exercises.
type ExerciseList struct {
	Exercises []string `json:"exercises"`
}

// ErrExerciseUnavailable is the error text sent to submitters when a stored
// exercise cannot be graded because of a defect in its solution or checks.
var ErrExerciseUnavailable = errors.New("this exercise cannot be graded right now, please report it to your instructor")

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// Server serves evaluations over HTTP. It holds no per-request state.
type Server struct {
	Evaluator ports.Evaluator
	Exercises ports.ExerciseLoader
	Metrics   http.Handler
	Logger    *slog.Logger

	maxBodyBytes int64
	doc          *openapi3.T
}

// Option configures a Server.
type Option func(*Server)

// WithExercises enables the exercise catalog endpoints.
func WithExercises(l ports.ExerciseLoader) Option {
	return func(s *Server) {
		s.Exercises = l
	}
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = l
	}
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		s.maxBodyBytes = n
	}
}

// NewHandler creates a new HTTP handler for the evaluator.
func NewHandler(eval ports.Evaluator, opts ...Option) (http.Handler, error) {
	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	router, err := newRouter(doc)
	if err != nil {
		return nil, err
	}

	s := &Server{
		Evaluator:    eval,
		Logger:       slog.Default(),
		maxBodyBytes: DefaultMaxBodyBytes,
		doc:          doc,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.limitBody)
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawOpenAPI)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(validateRequests(router, s.writeError))
		r.Post("/evaluate", s.Evaluate)
		r.Get("/exercises", s.ListExercises)
		r.Post("/exercises/{id}/evaluate", s.EvaluateExercise)
	})
	return r, nil
}

type requestIDKey struct{}

// requestID tags every request with an id, reusing the caller's when given.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// RequestIDFrom returns the id assigned to the request of ctx.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (s *Server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > s.maxBodyBytes {
			s.writeError(w, r, http.StatusRequestEntityTooLarge, &http.MaxBytesError{Limit: s.maxBodyBytes})
			return
		}
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>markcheck API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// Evaluate handles the POST /evaluate request.
func (s *Server) Evaluate(w http.ResponseWriter, r *http.Request) {
	var body EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	res, err := s.Evaluator.Evaluate(r.Context(), body.Script, body.StudentCode, body.SolutionCode)
	if err != nil {
		s.writeError(w, r, statusOf(err), err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, res)
}

// ListExercises handles the GET /exercises request.
func (s *Server) ListExercises(w http.ResponseWriter, r *http.Request) {
	resp := ExerciseList{Exercises: []string{}}
	if s.Exercises != nil {
		ids, err := s.Exercises.ListExercises(r.Context())
		if err != nil {
			s.writeError(w, r, http.StatusInternalServerError, err)
			return
		}
		if ids != nil {
			resp.Exercises = ids
		}
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

// EvaluateExercise handles the POST /exercises/{id}/evaluate request.
func (s *Server) EvaluateExercise(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.Exercises == nil {
		s.writeError(w, r, http.StatusNotFound, domain.ErrExerciseNotFound)
		return
	}

	var body SubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	ex, err := s.Exercises.GetExercise(r.Context(), id)
	if err != nil {
		s.writeError(w, r, statusOf(err), err)
		return
	}

	res, err := s.Evaluator.EvaluateExercise(r.Context(), ex, body.StudentCode)
	if err != nil {
		// Authoring detail is logged, never sent to the submitter.
		if domain.Classify(err) == domain.OutcomeAuthoringError {
			s.writeErrorMessage(w, r, http.StatusUnprocessableEntity, err, ErrExerciseUnavailable.Error())
			return
		}
		s.writeError(w, r, statusOf(err), err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, res)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.doc != nil && s.doc.Info != nil {
		apiVersion = s.doc.Info.Version
	}

	s.writeJSON(w, r, http.StatusOK, map[string]string{
		"app":         "markcheck-http",
		"version":     strings.TrimSpace(markcheck.Version),
		"api_version": apiVersion,
	})
}

// statusOf maps an evaluation error to a response status. Everything the
// engine returns besides cancellation is an authoring error.
func statusOf(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, domain.ErrExerciseNotFound):
		return http.StatusNotFound
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusUnprocessableEntity
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err, "request_id", RequestIDFrom(r.Context()))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.writeErrorMessage(w, r, status, err, err.Error())
}

// writeErrorMessage logs err and answers with public as the error text.
func (s *Server) writeErrorMessage(w http.ResponseWriter, r *http.Request, status int, err error, public string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		status = http.StatusRequestEntityTooLarge
	}

	id := RequestIDFrom(r.Context())
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	s.Logger.Log(r.Context(), level, "request failed",
		"method", r.Method, "path", r.URL.Path, "status", status, "error", err, "request_id", id)

	s.writeJSON(w, r, status, ErrorResponse{Error: public, RequestID: id})
}
