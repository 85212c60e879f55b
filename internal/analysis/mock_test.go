package analysis

import (
	"context"
	"sync"

	"github.com/jonathan/resume-ats/internal/llm"
	"github.com/jonathan/resume-ats/internal/types"
)

// MockLLMClient is a mock implementation of llm.Client for testing
type MockLLMClient struct {
	GenerateContentFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GenerateJSONFunc    func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GetModelFunc        func(tier llm.ModelTier) string
	CloseFunc           func() error

	mu    sync.Mutex
	calls int
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "", nil
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return validResponse, nil
}

func (m *MockLLMClient) GetModel(tier llm.ModelTier) string {
	if m.GetModelFunc != nil {
		return m.GetModelFunc(tier)
	}
	return "mock-model"
}

func (m *MockLLMClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

func (m *MockLLMClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]types.AnalysisResult
	getErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]types.AnalysisResult{}}
}

func (c *memoryCache) Get(_ context.Context, key string) (*types.AnalysisResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	r, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (c *memoryCache) Set(_ context.Context, key string, result types.AnalysisResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = result
	return nil
}

type generativeFunc func(ctx context.Context, resumeText, jobDescription string) (types.AnalysisResult, error)

func (f generativeFunc) Analyze(ctx context.Context, resumeText, jobDescription string) (types.AnalysisResult, error) {
	return f(ctx, resumeText, jobDescription)
}

const validResponse = `{
  "overallScore": 82,
  "skillsScore": 78,
  "experienceScore": 88,
  "formatScore": 90,
  "keywordsScore": 70,
  "suggestions": ["Quantify the migration project", "Add a skills section"],
  "strongPoints": ["Strong Go background"],
  "missingKeywords": ["Kubernetes", "Terraform"],
  "matchedKeywords": ["Go", "PostgreSQL"],
  "recommendations": ["Mention on-call experience"]
}`
