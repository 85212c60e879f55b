// Package engine is the caller-facing entry point: it analyzes resumes and manages
// each user's analysis history and statistics.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ats/internal/analysis"
	"github.com/jonathan/resume-ats/internal/history"
	"github.com/jonathan/resume-ats/internal/logger"
	"github.com/jonathan/resume-ats/internal/metrics"
	"github.com/jonathan/resume-ats/internal/observability"
	"github.com/jonathan/resume-ats/internal/stats"
	"github.com/jonathan/resume-ats/internal/types"
)

// Analyzer produces an AnalysisResult. *analysis.Orchestrator is the production implementation.
type Analyzer interface {
	Analyze(ctx context.Context, resumeText, jobDescription string) (types.AnalysisResult, error)
}

// JobFetcher resolves a job posting URL to its description text.
type JobFetcher interface {
	FetchJob(ctx context.Context, url string) (string, error)
}

// JobFetcherFunc adapts a function to JobFetcher.
type JobFetcherFunc func(ctx context.Context, url string) (string, error)

// FetchJob calls f.
func (f JobFetcherFunc) FetchJob(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// Config holds the engine's collaborators. Analyzer and Store are required.
type Config struct {
	Analyzer Analyzer
	Store    history.Store
	// Fetcher is optional; without it requests carrying only a job URL are rejected.
	Fetcher JobFetcher
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// Engine coordinates analysis and history. It holds no per-user state and is
// safe for concurrent use.
type Engine struct {
	analyzer Analyzer
	store    history.Store
	fetcher  JobFetcher
	log      *zap.Logger
	metrics  *metrics.Metrics
}

// New creates an Engine.
func New(cfg Config) (*Engine, error) {
	if cfg.Analyzer == nil {
		return nil, errors.New("engine: analyzer is required")
	}
	if cfg.Store == nil {
		return nil, errors.New("engine: history store is required")
	}
	return &Engine{
		analyzer: cfg.Analyzer,
		store:    cfg.Store,
		fetcher:  cfg.Fetcher,
		log:      logger.OrNop(cfg.Logger),
		metrics:  cfg.Metrics,
	}, nil
}

// Analyze scores the resume. The text reaches the heuristic scorer unmodified.
// It fails only with *analysis.InputError.
func (e *Engine) Analyze(ctx context.Context, resumeText, jobDescription string) (types.AnalysisResult, error) {
	return e.analyzer.Analyze(ctx, resumeText, jobDescription)
}

// SaveAnalysis appends result to userID's history and returns the stored record.
func (e *Engine) SaveAnalysis(ctx context.Context, userID uuid.UUID, jobTitle, company string, result types.AnalysisResult) (types.AnalysisRecord, error) {
	if userID == uuid.Nil {
		return types.AnalysisRecord{}, &analysis.InputError{Message: "Missing user id"}
	}
	if !result.InRange() {
		return types.AnalysisRecord{}, &analysis.InputError{Message: "Scores must be between 0 and 100"}
	}
	if !result.KeywordsDisjoint() {
		return types.AnalysisRecord{}, &analysis.InputError{Message: "A keyword cannot be both matched and missing"}
	}

	ctx, span := observability.Tracer().Start(ctx, "history.Append")
	defer span.End()

	record, err := e.store.Append(ctx, types.AnalysisRecord{
		UserID:         userID,
		JobTitle:       types.StringPtr(strings.TrimSpace(jobTitle)),
		Company:        types.StringPtr(strings.TrimSpace(company)),
		AnalysisResult: result.Clone(),
	})
	if err != nil {
		e.storeFailed(span, "append", userID, err)
		return types.AnalysisRecord{}, err
	}
	span.SetAttributes(attribute.String("ats.record_id", record.ID.String()))
	return record, nil
}

// GetHistory returns userID's records, newest first.
func (e *Engine) GetHistory(ctx context.Context, userID uuid.UUID) ([]types.AnalysisRecord, error) {
	ctx, span := observability.Tracer().Start(ctx, "history.ListByUser")
	defer span.End()

	records, err := e.store.ListByUser(ctx, userID)
	if err != nil {
		e.storeFailed(span, "list", userID, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("ats.records", len(records)))
	if records == nil {
		records = []types.AnalysisRecord{}
	}
	return records, nil
}

// GetStats recomputes userID's statistics from their full history.
// It returns nil stats when the user has no records.
func (e *Engine) GetStats(ctx context.Context, userID uuid.UUID) (*types.AnalysisStats, error) {
	records, err := e.GetHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	return stats.Compute(records), nil
}

// GetTrend returns userID's scores in chronological order.
func (e *Engine) GetTrend(ctx context.Context, userID uuid.UUID) ([]types.TrendPoint, error) {
	records, err := e.GetHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	return stats.Trend(records), nil
}

// DeleteAnalysis removes one of userID's records. It returns *history.NotFoundError
// when the record does not exist or belongs to someone else.
func (e *Engine) DeleteAnalysis(ctx context.Context, userID, recordID uuid.UUID) error {
	ctx, span := observability.Tracer().Start(ctx, "history.Delete")
	defer span.End()

	err := e.store.Delete(ctx, userID, recordID)
	if err == nil {
		return nil
	}
	var notFound *history.NotFoundError
	if errors.As(err, &notFound) {
		span.SetAttributes(attribute.Bool("ats.not_found", true))
		return err
	}
	e.storeFailed(span, "delete", userID, err)
	return err
}

// AnalyzeAndSave analyzes req and, when userID is set, records the result.
// A failed save is logged and reported through Saved; the result is still returned.
func (e *Engine) AnalyzeAndSave(ctx context.Context, userID uuid.UUID, req types.AnalyzeRequest) (types.AnalyzeResponse, error) {
	if strings.TrimSpace(req.ResumeText) == "" {
		return types.AnalyzeResponse{}, &analysis.InputError{Message: analysis.MissingResumeMessage}
	}

	jobDescription, err := e.jobDescription(ctx, req)
	if err != nil {
		return types.AnalyzeResponse{}, err
	}

	result, err := e.Analyze(ctx, req.ResumeText, jobDescription)
	if err != nil {
		return types.AnalyzeResponse{}, err
	}

	resp := types.AnalyzeResponse{
		Result: result,
		Tier:   types.TierFor(result.OverallScore),
	}
	if userID == uuid.Nil {
		return resp, nil
	}

	record, err := e.SaveAnalysis(ctx, userID, req.JobTitle, req.Company, result)
	if err != nil {
		// already logged by SaveAnalysis
		return resp, nil
	}
	resp.Saved = true
	resp.RecordID = &record.ID
	return resp, nil
}

func (e *Engine) jobDescription(ctx context.Context, req types.AnalyzeRequest) (string, error) {
	if strings.TrimSpace(req.JobDescription) != "" || req.JobURL == "" {
		return req.JobDescription, nil
	}
	if e.fetcher == nil {
		return "", &analysis.InputError{Message: "Fetching job descriptions by URL is not enabled"}
	}

	text, err := e.fetcher.FetchJob(ctx, req.JobURL)
	if err != nil {
		e.log.Warn("job description fetch failed", zap.String("url", req.JobURL), zap.Error(err))
		return "", &analysis.InputError{Message: fmt.Sprintf("Could not fetch job description from %s", req.JobURL)}
	}
	return text, nil
}

func (e *Engine) storeFailed(span trace.Span, op string, userID uuid.UUID, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, op+" failed")
	e.metrics.IncStoreError(op)
	e.log.Error("history store operation failed",
		zap.String("operation", op),
		zap.String("user_id", userID.String()),
		zap.Error(err))
}
