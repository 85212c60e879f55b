package heuristic

import (
	"strings"

	"github.com/jonathan/resume-ats/internal/types"
)

// Analyzer scores resume text by substring matching against a fixed vocabulary.
// It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	table Table
}

// New creates an Analyzer over table.
func New(table Table) *Analyzer {
	return &Analyzer{table: table}
}

// NewDefault creates an Analyzer over DefaultTable.
func NewDefault() *Analyzer {
	return New(DefaultTable())
}

// Analyze scores resumeText. The job description is accepted for signature
// parity with the generative path; matching only considers the resume.
func (a *Analyzer) Analyze(resumeText, _ string) types.AnalysisResult {
	t := a.table
	text := strings.ToLower(resumeText)

	var matched, missing []string
	for _, term := range t.vocabulary {
		if strings.Contains(text, term) {
			matched = append(matched, term)
		} else {
			missing = append(missing, term)
		}
	}

	skills := types.RoundHalfUp(100 * float64(len(matched)) / float64(len(t.vocabulary)))
	if skills > t.skillsCap {
		skills = t.skillsCap
	}

	experience := t.experienceLow
	for _, marker := range t.experienceMarkers {
		if strings.Contains(text, marker) {
			experience = t.experienceHigh
			break
		}
	}

	format := t.formatScore
	keywords := skills
	overall := types.RoundHalfUp(float64(skills+experience+format+keywords) / 4)

	return types.AnalysisResult{
		OverallScore:    overall,
		SkillsScore:     skills,
		ExperienceScore: experience,
		FormatScore:     format,
		KeywordsScore:   keywords,
		Suggestions:     t.Suggestions(),
		StrongPoints:    t.StrongPoints(),
		MissingKeywords: firstN(missing, t.maxMissingKeywords),
		MatchedKeywords: firstN(matched, t.maxMatchedKeywords),
		Recommendations: t.Recommendations(),
	}
}

func firstN(in []string, n int) []string {
	if len(in) > n {
		in = in[:n]
	}
	return copyStrings(in)
}
