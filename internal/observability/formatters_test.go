package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-ats/internal/types"
)

func sampleResult() *types.AnalysisResult {
	return &types.AnalysisResult{
		OverallScore:    71,
		SkillsScore:     60,
		ExperienceScore: 85,
		FormatScore:     80,
		KeywordsScore:   60,
		Suggestions:     []string{"s1", "s2", "s3", "s4", "s5", "s6", "s7"},
		StrongPoints:    []string{"Clear structure"},
		MissingKeywords: []string{"skills", "education"},
		MatchedKeywords: []string{"react", "sql"},
	}
}

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintAnalysis(sampleResult())
	output := buf.String()

	assert.Contains(t, output, "ATS COMPATIBILITY")
	assert.Contains(t, output, "Good")
	assert.Contains(t, output, "react, sql")
	assert.Contains(t, output, "skills, education")
	assert.Contains(t, output, "Clear structure")
	assert.Contains(t, output, "... and 2 more")
	assert.NotContains(t, output, "Recommendations")
}

func TestPrintAnalysis_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintAnalysis(nil)
	assert.Empty(t, buf.String())
}

func TestPrintAnalysis_LinesHaveEqualWidth(t *testing.T) {
	var buf bytes.Buffer
	res := sampleResult()
	res.Suggestions = []string{strings.Repeat("very long suggestion ", 10)}
	NewPrinter(&buf).PrintAnalysis(res)

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintStats(&types.AnalysisStats{TotalAnalyses: 2, AverageScore: 73, HighestScore: 85, Improvement: 25})
	output := buf.String()
	assert.Contains(t, output, "Analyses:     2")
	assert.Contains(t, output, "73 (Good)")
	assert.Contains(t, output, "+25")

	buf.Reset()
	p.PrintStats(nil)
	assert.Contains(t, buf.String(), "No analyses yet")
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	title, company := "Backend Engineer", "Acme"
	id := uuid.New()

	NewPrinter(&buf).PrintHistory([]types.AnalysisRecord{{
		ID:             id,
		JobTitle:       &title,
		Company:        &company,
		AnalyzedAt:     time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
		AnalysisResult: types.AnalysisResult{OverallScore: 88},
	}})
	output := buf.String()

	assert.Contains(t, output, "ANALYSIS HISTORY (1)")
	assert.Contains(t, output, "2024-05-01 10:30")
	assert.Contains(t, output, "Excellent")
	assert.Contains(t, output, "Backend Engineer @ Acme")
	assert.Contains(t, output, id.String())
}

func TestPrintTrend(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintTrend([]types.TrendPoint{
		{AnalyzedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), OverallScore: 50},
		{AnalyzedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), OverallScore: 100},
	})
	output := buf.String()

	assert.Contains(t, output, "SCORE TREND")
	assert.Contains(t, output, strings.Repeat("█", 10)+strings.Repeat("░", 10))
	assert.Contains(t, output, strings.Repeat("█", 20)+" 100")
}

func TestBar_Clamps(t *testing.T) {
	assert.Equal(t, strings.Repeat("░", barWidth), bar(-5))
	assert.Equal(t, strings.Repeat("█", barWidth), bar(150))
}
