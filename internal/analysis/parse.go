package analysis

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/jonathan/resume-ats/internal/llm"
	"github.com/jonathan/resume-ats/internal/schemas"
	"github.com/jonathan/resume-ats/internal/types"
	schemafiles "github.com/jonathan/resume-ats/schemas"
)

// ParseResponse validates raw generative output and converts it to an AnalysisResult.
//
// Only overallScore (number) and suggestions (array) are required. Every other field is
// optional: component scores that are absent or not numeric take the overall
// score, list entries that are not non-empty strings are dropped, and keywords are
// de-duplicated with matched keywords removed from the missing list.
func ParseResponse(raw string) (types.AnalysisResult, error) {
	text := llm.CleanJSONBlock(raw)
	if text == "" {
		return types.AnalysisResult{}, &ParseError{Message: "empty response"}
	}

	if err := schemas.Validate(schemafiles.AnalysisResponse, text); err != nil {
		return types.AnalysisResult{}, &ParseError{Message: "response does not match the expected structure", Cause: err}
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return types.AnalysisResult{}, &ParseError{Message: "invalid JSON", Cause: err}
	}

	overall, ok := doc["overallScore"].(float64)
	if !ok || math.IsNaN(overall) || math.IsInf(overall, 0) {
		return types.AnalysisResult{}, &ParseError{Message: "overallScore is not a number"}
	}
	overallScore := score(overall)

	matched := dedupe(stringList(doc["matchedKeywords"]), nil)
	missing := dedupe(stringList(doc["missingKeywords"]), matched)

	return types.AnalysisResult{
		OverallScore:    overallScore,
		SkillsScore:     componentScore(doc["skillsScore"], overallScore),
		ExperienceScore: componentScore(doc["experienceScore"], overallScore),
		FormatScore:     componentScore(doc["formatScore"], overallScore),
		KeywordsScore:   componentScore(doc["keywordsScore"], overallScore),
		Suggestions:     stringList(doc["suggestions"]),
		StrongPoints:    stringList(doc["strongPoints"]),
		MissingKeywords: missing,
		MatchedKeywords: matched,
		Recommendations: stringList(doc["recommendations"]),
	}, nil
}

// score bounds v before rounding so huge values cannot overflow the int conversion.
func score(v float64) int {
	return types.RoundHalfUp(math.Max(types.MinScore, math.Min(types.MaxScore, v)))
}

func componentScore(v any, fallback int) int {
	f := coerceFloat(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return score(f)
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// dedupe drops case-insensitive duplicates and anything already in exclude, keeping first occurrences.
func dedupe(in, exclude []string) []string {
	seen := make(map[string]bool, len(in)+len(exclude))
	for _, s := range exclude {
		seen[strings.ToLower(s)] = true
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
