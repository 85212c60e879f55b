package analysis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-ats/internal/ingestion"
	"github.com/jonathan/resume-ats/internal/llm"
	"github.com/jonathan/resume-ats/internal/logger"
	"github.com/jonathan/resume-ats/internal/metrics"
	"github.com/jonathan/resume-ats/internal/prompts"
	"github.com/jonathan/resume-ats/internal/types"
)

// ResultCache stores validated generative results. Implementations must be safe for concurrent use.
type ResultCache interface {
	Get(ctx context.Context, key string) (*types.AnalysisResult, error)
	Set(ctx context.Context, key string, result types.AnalysisResult) error
}

// analysisSchema is the output contract shown to the model.
var analysisSchema = llm.OutputSchema{
	Name: "AnalysisResult",
	Fields: []llm.OutputField{
		{Name: "overallScore", Type: "number", Description: "0-100", Required: true},
		{Name: "skillsScore", Type: "number", Description: "0-100", Required: true},
		{Name: "experienceScore", Type: "number", Description: "0-100", Required: true},
		{Name: "formatScore", Type: "number", Description: "0-100", Required: true},
		{Name: "keywordsScore", Type: "number", Description: "0-100", Required: true},
		{Name: "suggestions", Type: `["string"]`, Description: "most important first", Required: true},
		{Name: "strongPoints", Type: `["string"]`, Required: true},
		{Name: "missingKeywords", Type: `["string"]`, Required: true},
		{Name: "matchedKeywords", Type: `["string"]`, Required: true},
		{Name: "recommendations", Type: `["string"]`, Required: true},
	},
}

// GenerativeConfig configures a GenerativeAnalyzer.
type GenerativeConfig struct {
	Client  llm.Client
	Tier    llm.ModelTier
	Cache   ResultCache
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// GenerativeAnalyzer requests an assessment from an LLM and validates the reply.
// The model's reply is treated as untrusted text.
type GenerativeAnalyzer struct {
	client  llm.Client
	tier    llm.ModelTier
	cache   ResultCache
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewGenerativeAnalyzer creates a GenerativeAnalyzer. cfg.Client is required.
func NewGenerativeAnalyzer(cfg GenerativeConfig) (*GenerativeAnalyzer, error) {
	if cfg.Client == nil {
		return nil, errors.New("llm client is required")
	}
	tier := cfg.Tier
	if tier == "" {
		tier = llm.TierStandard
	}
	return &GenerativeAnalyzer{
		client:  cfg.Client,
		tier:    tier,
		cache:   cfg.Cache,
		log:     logger.OrNop(cfg.Logger),
		metrics: cfg.Metrics,
	}, nil
}

// Analyze returns a validated result, a *ServiceError when the call fails, or a *ParseError
// when the reply is unusable. Both texts are normalized before prompting and cache keying.
func (g *GenerativeAnalyzer) Analyze(ctx context.Context, resumeText, jobDescription string) (types.AnalysisResult, error) {
	resumeText, jobDescription = ingestion.CleanText(resumeText), ingestion.CleanText(jobDescription)
	key := CacheKey(g.client.GetModel(g.tier), resumeText, jobDescription)
	if cached, ok := g.lookup(ctx, key); ok {
		return cached, nil
	}

	raw, err := g.client.GenerateJSON(ctx, BuildPrompt(resumeText, jobDescription), g.tier)
	if err != nil {
		msg := "request failed"
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "request timed out"
		}
		return types.AnalysisResult{}, &ServiceError{Message: msg, Cause: err}
	}

	result, err := ParseResponse(raw)
	if err != nil {
		g.log.Debug("unusable generative response",
			zap.String("response", logger.TruncateForLog(raw, 300)),
			zap.Error(err))
		return types.AnalysisResult{}, err
	}

	g.store(ctx, key, result)
	return result, nil
}

func (g *GenerativeAnalyzer) lookup(ctx context.Context, key string) (types.AnalysisResult, bool) {
	if g.cache == nil {
		return types.AnalysisResult{}, false
	}
	cached, err := g.cache.Get(ctx, key)
	if err != nil {
		g.log.Warn("result cache lookup failed", zap.Error(err))
	}
	hit := err == nil && cached != nil && cached.InRange()
	g.metrics.IncCache(hit)
	if !hit {
		return types.AnalysisResult{}, false
	}
	return cached.Clone(), true
}

func (g *GenerativeAnalyzer) store(ctx context.Context, key string, result types.AnalysisResult) {
	if g.cache == nil {
		return
	}
	if err := g.cache.Set(ctx, key, result); err != nil {
		g.log.Warn("result cache write failed", zap.Error(err))
	}
}

// BuildPrompt renders the analysis prompt for a resume and optional job description.
func BuildPrompt(resumeText, jobDescription string) string {
	clause := prompts.MustGet("analysis.json", "no-job-clause")
	if strings.TrimSpace(jobDescription) != "" {
		clause = prompts.MustGet("analysis.json", "job-clause")
	}
	preamble := prompts.Format(prompts.MustGet("analysis.json", "ats-analysis"), map[string]string{
		"JobClause": clause,
	})
	return llm.BuildJSONPrompt(preamble, analysisSchema,
		llm.PromptInput{Label: "Resume", Text: resumeText},
		llm.PromptInput{Label: "Job description", Text: jobDescription},
	)
}

// CacheKey identifies a generative result by model and inputs.
func CacheKey(model, resumeText, jobDescription string) string {
	h := sha256.New()
	for _, part := range []string{model, resumeText, jobDescription} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return "ats:analysis:" + hex.EncodeToString(h.Sum(nil))
}
