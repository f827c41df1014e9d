package markcheck

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/markcheck/pkg/domain"
	"github.com/aretw0/markcheck/pkg/exercise"
	"github.com/aretw0/markcheck/pkg/feedback"
	"github.com/aretw0/markcheck/pkg/ports"
	"github.com/aretw0/markcheck/pkg/registry"
	"github.com/aretw0/markcheck/pkg/script"
)

// Version is the release of the engine.
const Version = "0.3.0"

// Engine is the high-level entry point for the markcheck library.
// It is safe for concurrent use: evaluations share no mutable state.
type Engine struct {
	reporter feedback.Reporter
	registry *registry.Registry
	cache    ports.ResultCache
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

var _ ports.Evaluator = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = domain.MergeHooks(e.hooks, hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithReporter sets how payloads are built (format, success message).
func WithReporter(r feedback.Reporter) Option {
	return func(e *Engine) {
		e.reporter = r
	}
}

// WithRegistry replaces the checks available to scripts.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithCache enables result caching.
func WithCache(c ports.ResultCache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

// New initializes a new Engine. By default it uses every check of the
// library, the escaping reporter and no cache.
func New(opts ...Option) *Engine {
	eng := &Engine{
		reporter: feedback.NewReporter(),
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.registry == nil {
		eng.registry = script.DefaultRegistry()
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return eng
}

// Reporter returns the reporter used to build payloads.
func (e *Engine) Reporter() feedback.Reporter { return e.reporter }

// Registry returns the checks available to scripts.
func (e *Engine) Registry() *registry.Registry { return e.registry }

// Evaluate parses src as a check script and grades studentCode against
// solutionCode.
func (e *Engine) Evaluate(ctx context.Context, src, studentCode, solutionCode string) (feedback.Result, error) {
	s, err := script.Parse([]byte(src))
	if err != nil {
		e.logger.Warn("invalid script", "error", err)
		return feedback.Result{}, fmt.Errorf("invalid script: %w", err)
	}
	return e.EvaluateScript(ctx, s, studentCode, solutionCode)
}

// EvaluateExercise grades studentCode against a stored exercise.
func (e *Engine) EvaluateExercise(ctx context.Context, ex *exercise.Exercise, studentCode string) (feedback.Result, error) {
	res, err := e.EvaluateScript(ctx, &ex.Script, studentCode, ex.Solution)
	if err != nil {
		return res, fmt.Errorf("exercise %s: %w", ex.ID, err)
	}
	return res, nil
}

// EvaluateScript grades studentCode against solutionCode with a parsed script.
//
// A failing submission is reported in the Result. The returned error is
// reserved for authoring errors (unknown checks, bad arguments, a reference
// document lacking what a check requires) and infrastructure failures.
func (e *Engine) EvaluateScript(ctx context.Context, s *script.Script, studentCode, solutionCode string) (feedback.Result, error) {
	start := time.Now()
	e.emitStart(ctx)

	key, err := e.cacheKey(s, studentCode, solutionCode)
	if err != nil {
		return feedback.Result{}, err
	}
	logger := e.logger.With("key", key[:12])

	if e.cache != nil {
		res, err := e.cache.Get(ctx, key)
		switch {
		case err == nil:
			logger.Debug("cache hit", "correct", res.Correct)
			e.emitEnd(ctx, start, outcomeOf(res), res.Correct, true)
			return res, nil
		case !errors.Is(err, domain.ErrCacheMiss):
			logger.Warn("cache lookup failed", "error", err)
		}
	}

	root, err := domain.NewState(studentCode, solutionCode)
	if err != nil {
		e.emitEnd(ctx, start, domain.OutcomeAuthoringError, false, false)
		return feedback.Result{}, err
	}

	runErr := s.Run(ctx, root, e.registry, e.stepHooks(logger))

	var res feedback.Result
	switch outcome := domain.Classify(runErr); outcome {
	case domain.OutcomeContinue:
		res = e.reporter.Success()
	case domain.OutcomeFailure:
		var f *domain.Failure
		errors.As(runErr, &f)
		res = e.reporter.Failed(f.Message())
	case domain.OutcomeCanceled:
		logger.Info("evaluation canceled", "error", runErr)
		e.emitEnd(ctx, start, outcome, false, false)
		return feedback.Result{}, runErr
	default:
		logger.Warn("evaluation aborted", "error", runErr)
		e.emitEnd(ctx, start, outcome, false, false)
		return feedback.Result{}, runErr
	}

	logger.Info("evaluation finished", "correct", res.Correct, "duration", time.Since(start))
	e.emitEnd(ctx, start, outcomeOf(res), res.Correct, false)

	if e.cache != nil {
		if err := e.cache.Set(ctx, key, res); err != nil {
			logger.Warn("cache store failed", "error", err)
		}
	}
	return res, nil
}

// cacheKey digests everything a result depends on: the script content, both
// documents and the reporter settings.
func (e *Engine) cacheKey(s *script.Script, studentCode, solutionCode string) (string, error) {
	fp, err := s.Fingerprint()
	if err != nil {
		return "", err
	}
	h := sha256.New()
	for _, part := range []string{fp, studentCode, solutionCode, string(e.reporter.Format), e.reporter.SuccessMessage} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (e *Engine) stepHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.MergeHooks(domain.LifecycleHooks{
		OnStep: func(_ context.Context, ev *domain.StepEvent) {
			logger.Debug("check", "chain", ev.Chain, "step", ev.Step, "check", ev.Check, "depth", ev.Depth, "outcome", ev.Outcome.String())
		},
	}, e.hooks)
}

func (e *Engine) emitStart(ctx context.Context) {
	if e.hooks.OnEvaluationStart == nil {
		return
	}
	e.hooks.OnEvaluationStart(ctx, &domain.EvaluationEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventEvaluationStart},
	})
}

func (e *Engine) emitEnd(ctx context.Context, start time.Time, outcome domain.Outcome, correct, cached bool) {
	if e.hooks.OnEvaluationEnd == nil {
		return
	}
	e.hooks.OnEvaluationEnd(ctx, &domain.EvaluationEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventEvaluationEnd},
		Outcome:   outcome,
		Correct:   correct,
		Cached:    cached,
		Duration:  time.Since(start),
	})
}

func outcomeOf(res feedback.Result) domain.Outcome {
	if res.Correct {
		return domain.OutcomeContinue
	}
	return domain.OutcomeFailure
}
