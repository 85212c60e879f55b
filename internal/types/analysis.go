// Package types provides the data model shared by the analyzers, stores and API layers of the ATS scorer.
package types

import (
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MinScore and MaxScore bound every score in an AnalysisResult.
const (
	MinScore = 0
	MaxScore = 100
)

// AnalysisResult is the complete output of one resume assessment.
type AnalysisResult struct {
	OverallScore    int      `json:"overallScore"`
	SkillsScore     int      `json:"skillsScore"`
	ExperienceScore int      `json:"experienceScore"`
	FormatScore     int      `json:"formatScore"`
	KeywordsScore   int      `json:"keywordsScore"`
	Suggestions     []string `json:"suggestions"`
	StrongPoints    []string `json:"strongPoints"`
	MissingKeywords []string `json:"missingKeywords"`
	MatchedKeywords []string `json:"matchedKeywords"`
	Recommendations []string `json:"recommendations"`
}

// AnalysisRecord is a persisted AnalysisResult owned by a single user.
// Records are immutable once written.
type AnalysisRecord struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	JobTitle   *string   `json:"jobTitle,omitempty"`
	Company    *string   `json:"company,omitempty"`
	AnalyzedAt time.Time `json:"analyzedAt"`
	AnalysisResult
}

// Result returns a copy of the analysis fields of the record.
func (r *AnalysisRecord) Result() AnalysisResult {
	return r.AnalysisResult.Clone()
}

// AnalysisStats summarizes a user's analysis history. It is always derived, never stored.
type AnalysisStats struct {
	TotalAnalyses int `json:"totalAnalyses"`
	AverageScore  int `json:"averageScore"`
	HighestScore  int `json:"highestScore"`
	Improvement   int `json:"improvement"`
}

// TrendPoint is a single entry in a chronological score series.
type TrendPoint struct {
	AnalyzedAt   time.Time `json:"analyzedAt"`
	OverallScore int       `json:"overallScore"`
	Tier         Tier      `json:"tier"`
}

// Clone returns a deep copy so callers cannot alias list fields.
func (r AnalysisResult) Clone() AnalysisResult {
	out := r
	out.Suggestions = cloneStrings(r.Suggestions)
	out.StrongPoints = cloneStrings(r.StrongPoints)
	out.MissingKeywords = cloneStrings(r.MissingKeywords)
	out.MatchedKeywords = cloneStrings(r.MatchedKeywords)
	out.Recommendations = cloneStrings(r.Recommendations)
	return out
}

// InRange reports whether every score of the result lies within [MinScore, MaxScore].
func (r AnalysisResult) InRange() bool {
	for _, s := range []int{r.OverallScore, r.SkillsScore, r.ExperienceScore, r.FormatScore, r.KeywordsScore} {
		if s < MinScore || s > MaxScore {
			return false
		}
	}
	return true
}

// KeywordsDisjoint reports whether no keyword appears in both MatchedKeywords and
// MissingKeywords, ignoring case.
func (r AnalysisResult) KeywordsDisjoint() bool {
	matched := make(map[string]struct{}, len(r.MatchedKeywords))
	for _, k := range r.MatchedKeywords {
		matched[strings.ToLower(strings.TrimSpace(k))] = struct{}{}
	}
	for _, k := range r.MissingKeywords {
		if _, ok := matched[strings.ToLower(strings.TrimSpace(k))]; ok {
			return false
		}
	}
	return true
}

// ClampScore forces a score into [MinScore, MaxScore].
func ClampScore(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// RoundHalfUp rounds x to the nearest integer, with .5 going up.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// AnalyzeRequest is the body of an analysis request.
type AnalyzeRequest struct {
	ResumeText     string `json:"resumeText" validate:"required"`
	JobDescription string `json:"jobDescription,omitempty"`
	JobURL         string `json:"jobUrl,omitempty" validate:"omitempty,url"`
	JobTitle       string `json:"jobTitle,omitempty" validate:"max=200"`
	Company        string `json:"company,omitempty" validate:"max=200"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	return validator.New().Struct(r)
}

// SaveAnalysisRequest stores an already computed result for the caller.
type SaveAnalysisRequest struct {
	JobTitle string          `json:"jobTitle,omitempty" validate:"max=200"`
	Company  string          `json:"company,omitempty" validate:"max=200"`
	Result   *AnalysisResult `json:"result" validate:"required"`
}

// Validate validates the SaveAnalysisRequest, checks score bounds and rejects
// keywords listed as both matched and missing.
func (r *SaveAnalysisRequest) Validate() error {
	validate := validator.New()
	validate.RegisterStructValidation(func(sl validator.StructLevel) {
		res := sl.Current().Interface().(AnalysisResult)
		if !res.InRange() {
			sl.ReportError(res.OverallScore, "result", "Result", "scorerange", "")
		}
		if !res.KeywordsDisjoint() {
			sl.ReportError(res.MatchedKeywords, "matchedKeywords", "MatchedKeywords", "disjoint", "")
		}
	}, AnalysisResult{})
	return validate.Struct(r)
}

// AnalyzeResponse is returned by the analyze endpoint and the CLI in JSON mode.
type AnalyzeResponse struct {
	Result   AnalysisResult `json:"result"`
	Tier     Tier           `json:"tier"`
	Saved    bool           `json:"saved"`
	RecordID *uuid.UUID     `json:"recordId,omitempty"`
}

// StatsResponse wraps AnalysisStats; Stats is null when the user has no history.
type StatsResponse struct {
	Stats *AnalysisStats `json:"stats"`
	Tier  *Tier          `json:"tier,omitempty"`
}

// StringPtr returns nil for an empty string and a pointer to s otherwise.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
