package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ats/internal/heuristic"
	"github.com/jonathan/resume-ats/internal/logger"
	"github.com/jonathan/resume-ats/internal/metrics"
	"github.com/jonathan/resume-ats/internal/observability"
	"github.com/jonathan/resume-ats/internal/types"
)

// DefaultTimeout bounds a generative call when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Fallback reasons, used as log fields and metric labels.
const (
	ReasonTimeout      = "timeout"
	ReasonServiceError = "service_error"
	ReasonParseError   = "parse_error"
	ReasonPanic        = "panic"
	ReasonUnknown      = "unknown"
	ReasonDisabled     = "disabled"
)

// Generative is the contract of the generative analysis path.
type Generative interface {
	Analyze(ctx context.Context, resumeText, jobDescription string) (types.AnalysisResult, error)
}

// OrchestratorConfig configures an Orchestrator. Only Heuristic is required;
// a nil Generative means every analysis uses the heuristic scorer.
type OrchestratorConfig struct {
	Generative Generative
	Heuristic  *heuristic.Analyzer
	Timeout    time.Duration
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
}

// Orchestrator runs the generative path and falls back to the heuristic scorer on any failure.
// It holds no per-call state and is safe for concurrent use.
type Orchestrator struct {
	generative Generative
	heuristic  *heuristic.Analyzer
	timeout    time.Duration
	log        *zap.Logger
	metrics    *metrics.Metrics
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	h := cfg.Heuristic
	if h == nil {
		h = heuristic.NewDefault()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Orchestrator{
		generative: cfg.Generative,
		heuristic:  h,
		timeout:    timeout,
		log:        logger.OrNop(cfg.Logger),
		metrics:    cfg.Metrics,
	}
}

// Analyze scores resumeText, optionally against jobDescription.
// The only error it returns is *InputError for empty or whitespace-only resume text.
// Callers cannot tell which path produced the result.
func (o *Orchestrator) Analyze(ctx context.Context, resumeText, jobDescription string) (types.AnalysisResult, error) {
	if strings.TrimSpace(resumeText) == "" {
		return types.AnalysisResult{}, &InputError{Message: MissingResumeMessage}
	}

	ctx, span := observability.Tracer().Start(ctx, "analysis.Analyze")
	defer span.End()
	start := time.Now()

	out := o.run(ctx, resumeText, jobDescription)

	span.SetAttributes(attribute.String("ats.source", out.source()))
	if h, ok := out.(heuristicOutcome); ok {
		span.SetAttributes(attribute.String("ats.fallback_reason", h.reason))
	}
	o.metrics.ObserveAnalysis(out.source(), time.Since(start))

	return out.normalize(), nil
}

func (o *Orchestrator) run(ctx context.Context, resumeText, jobDescription string) outcome {
	if o.generative == nil {
		return o.fallback(resumeText, jobDescription, ReasonDisabled)
	}

	result, err := o.callGenerative(ctx, resumeText, jobDescription)
	if err != nil {
		reason := classify(err)
		o.log.Warn("generative analysis failed, using heuristic scorer",
			zap.String("reason", reason),
			zap.Error(err))
		o.metrics.IncFallback(reason)
		return o.fallback(resumeText, jobDescription, reason)
	}
	return generativeOutcome{result: result}
}

type generativeReply struct {
	result types.AnalysisResult
	err    error
}

// callGenerative bounds the generative call by the timeout even when the client ignores ctx,
// and converts a panic into a ParseError.
func (o *Orchestrator) callGenerative(ctx context.Context, resumeText, jobDescription string) (types.AnalysisResult, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	ctx, span := observability.Tracer().Start(ctx, "analysis.generative")
	defer span.End()

	replies := make(chan generativeReply, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				replies <- generativeReply{err: &ParseError{Message: "panic while analyzing", Cause: &panicError{value: r}}}
			}
		}()
		res, err := o.generative.Analyze(ctx, resumeText, jobDescription)
		replies <- generativeReply{result: res, err: err}
	}()

	var reply generativeReply
	select {
	case reply = <-replies:
	case <-ctx.Done():
		msg := "request cancelled"
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			msg = "request timed out"
		}
		reply.err = &ServiceError{Message: msg, Cause: ctx.Err()}
	}

	if reply.err != nil {
		span.RecordError(reply.err)
		span.SetStatus(codes.Error, classify(reply.err))
	}
	return reply.result, reply.err
}

func (o *Orchestrator) fallback(resumeText, jobDescription, reason string) outcome {
	return heuristicOutcome{
		result: o.heuristic.Analyze(resumeText, jobDescription),
		reason: reason,
	}
}

type panicError struct {
	value any
}

func (e *panicError) Error() string {
	return fmt.Sprintf("%v", e.value)
}

func classify(err error) string {
	var (
		se *ServiceError
		pe *ParseError
		pp *panicError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.As(err, &pp):
		return ReasonPanic
	case errors.As(err, &pe):
		return ReasonParseError
	case errors.As(err, &se):
		return ReasonServiceError
	default:
		return ReasonUnknown
	}
}
