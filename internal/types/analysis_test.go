//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		score int
		want  Tier
	}{
		{100, TierExcellent},
		{80, TierExcellent},
		{79, TierGood},
		{60, TierGood},
		{59, TierNeedsWork},
		{0, TierNeedsWork},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.score), "score %d", tt.score)
	}
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, ClampScore(-12))
	assert.Equal(t, 100, ClampScore(140))
	assert.Equal(t, 55, ClampScore(55))
}

func TestAnalysisResult_CloneDoesNotAlias(t *testing.T) {
	orig := AnalysisResult{
		OverallScore: 70,
		Suggestions:  []string{"a"},
	}
	cp := orig.Clone()
	cp.Suggestions[0] = "changed"

	assert.Equal(t, "a", orig.Suggestions[0])
	assert.NotNil(t, cp.MatchedKeywords, "nil lists become empty lists")
}

func TestAnalysisRecord_JSONIsFlattened(t *testing.T) {
	title := "Backend Engineer"
	rec := AnalysisRecord{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		JobTitle:   &title,
		AnalyzedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		AnalysisResult: AnalysisResult{
			OverallScore: 71,
			SkillsScore:  60,
		},
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, float64(71), raw["overallScore"])
	assert.Equal(t, "Backend Engineer", raw["jobTitle"])
	_, hasCompany := raw["company"]
	assert.False(t, hasCompany)
}

func TestAnalyzeRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     AnalyzeRequest
		wantErr bool
	}{
		{"valid", AnalyzeRequest{ResumeText: "Go developer"}, false},
		{"with job url", AnalyzeRequest{ResumeText: "x", JobURL: "https://example.com/job/1"}, false},
		{"missing resume", AnalyzeRequest{JobDescription: "jd"}, true},
		{"bad url", AnalyzeRequest{ResumeText: "x", JobURL: "not a url"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAnalysisRequest_Validate(t *testing.T) {
	ok := SaveAnalysisRequest{Result: &AnalysisResult{OverallScore: 90, SkillsScore: 80}}
	assert.NoError(t, ok.Validate())

	missing := SaveAnalysisRequest{JobTitle: "x"}
	assert.Error(t, missing.Validate())

	outOfRange := SaveAnalysisRequest{Result: &AnalysisResult{OverallScore: 101}}
	assert.Error(t, outOfRange.Validate())

	overlap := SaveAnalysisRequest{Result: &AnalysisResult{
		OverallScore:    70,
		MatchedKeywords: []string{"React", "sql"},
		MissingKeywords: []string{"docker", "react"},
	}}
	assert.Error(t, overlap.Validate())
}

func TestAnalysisResult_KeywordsDisjoint(t *testing.T) {
	assert.True(t, AnalysisResult{}.KeywordsDisjoint())
	assert.True(t, AnalysisResult{MatchedKeywords: []string{"go"}, MissingKeywords: []string{"rust"}}.KeywordsDisjoint())
	assert.False(t, AnalysisResult{MatchedKeywords: []string{"Go"}, MissingKeywords: []string{" go"}}.KeywordsDisjoint())
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))
	require.NotNil(t, StringPtr("Acme"))
	assert.Equal(t, "Acme", *StringPtr("Acme"))
}
