package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/markcheck"
	"github.com/aretw0/markcheck/pkg/feedback"
	"github.com/aretw0/markcheck/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
)

// EvaluateArgs are the arguments of the evaluate_submission tool.
type EvaluateArgs struct {
	Script       string `json:"script"`
	StudentCode  string `json:"student_code"`
	SolutionCode string `json:"solution_code"`
}

// ExerciseArgs are the arguments of the evaluate_exercise tool.
type ExerciseArgs struct {
	ExerciseID  string `json:"exercise_id"`
	StudentCode string `json:"student_code"`
}

// ExerciseList is the result of the list_exercises tool.
type ExerciseList struct {
	Exercises []string `json:"exercises" jsonschema_description:"Ids of the stored exercises, sorted"`
}

// Server wraps the evaluator and exposes it as an MCP Server.
type Server struct {
	engine    *markcheck.Engine
	exercises ports.ExerciseLoader
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. exercises may be nil, in which
// case the catalog is empty.
func NewServer(engine *markcheck.Engine, exercises ports.ExerciseLoader) *Server {
	s := &Server{
		engine:    engine,
		exercises: exercises,
		mcpServer: server.NewMCPServer("markcheck-mcp", strings.TrimSpace(markcheck.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP protocol over SSE on port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: evaluate_submission
	evaluateTool := mcp.NewTool("evaluate_submission",
		mcp.WithDescription("Grade an HTML submission against a reference document with a check script."),
		mcp.WithString("script", mcp.Required(), mcp.Description("Check script (YAML or JSON list of chains)")),
		mcp.WithString("student_code", mcp.Required(), mcp.Description("Submitted HTML")),
		mcp.WithString("solution_code", mcp.Required(), mcp.Description("Reference HTML")),
		mcp.WithOutputSchema[feedback.Result](),
	)
	s.mcpServer.AddTool(evaluateTool, mcp.NewStructuredToolHandler(s.handleEvaluate))

	// TOOL: evaluate_exercise
	exerciseTool := mcp.NewTool("evaluate_exercise",
		mcp.WithDescription("Grade an HTML submission against a stored exercise."),
		mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise id, see list_exercises")),
		mcp.WithString("student_code", mcp.Required(), mcp.Description("Submitted HTML")),
		mcp.WithOutputSchema[feedback.Result](),
	)
	s.mcpServer.AddTool(exerciseTool, mcp.NewStructuredToolHandler(s.handleEvaluateExercise))

	// TOOL: list_exercises
	listTool := mcp.NewTool("list_exercises",
		mcp.WithDescription("List the ids of the stored exercises."),
		mcp.WithOutputSchema[ExerciseList](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleListExercises))
}

func (s *Server) handleEvaluate(ctx context.Context, _ mcp.CallToolRequest, args EvaluateArgs) (feedback.Result, error) {
	res, err := s.engine.Evaluate(ctx, args.Script, args.StudentCode, args.SolutionCode)
	if err != nil {
		slog.Warn("MCP Evaluate: authoring error", "error", err)
		return feedback.Result{}, fmt.Errorf("evaluate failed: %w", err)
	}
	return res, nil
}

func (s *Server) handleEvaluateExercise(ctx context.Context, _ mcp.CallToolRequest, args ExerciseArgs) (feedback.Result, error) {
	if s.exercises == nil {
		return feedback.Result{}, fmt.Errorf("no exercise catalog configured")
	}
	ex, err := s.exercises.GetExercise(ctx, args.ExerciseID)
	if err != nil {
		return feedback.Result{}, err
	}
	res, err := s.engine.EvaluateExercise(ctx, ex, args.StudentCode)
	if err != nil {
		slog.Warn("MCP EvaluateExercise: authoring error", "error", err, "exercise", ex.ID)
		return feedback.Result{}, fmt.Errorf("evaluate failed: %w", err)
	}
	return res, nil
}

func (s *Server) handleListExercises(ctx context.Context, _ mcp.CallToolRequest, _ map[string]any) (ExerciseList, error) {
	list := ExerciseList{Exercises: []string{}}
	if s.exercises == nil {
		return list, nil
	}
	ids, err := s.exercises.ListExercises(ctx)
	if err != nil {
		return ExerciseList{}, fmt.Errorf("list failed: %w", err)
	}
	if ids != nil {
		list.Exercises = ids
	}
	return list, nil
}

const checksURI = "markcheck://checks"

func (s *Server) registerResources() {
	// EXPOSE: markcheck://checks
	s.mcpServer.AddResource(mcp.NewResource(checksURI, "Available Checks",
		mcp.WithResourceDescription("Names of the checks a script may use"),
		mcp.WithMIMEType("application/json"),
	), s.readChecks)
}

func (s *Server) readChecks(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(s.engine.Registry().Names())
	if err != nil {
		return nil, fmt.Errorf("failed to encode checks: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      checksURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
