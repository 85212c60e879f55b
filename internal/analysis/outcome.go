package analysis

import (
	"github.com/jonathan/resume-ats/internal/metrics"
	"github.com/jonathan/resume-ats/internal/types"
)

// outcome is the internal result of one analysis path. Only the two types below implement it.
type outcome interface {
	normalize() types.AnalysisResult
	source() string
}

type generativeOutcome struct {
	result types.AnalysisResult
}

func (o generativeOutcome) normalize() types.AnalysisResult {
	r := o.result.Clone()
	r.OverallScore = types.ClampScore(r.OverallScore)
	r.SkillsScore = types.ClampScore(r.SkillsScore)
	r.ExperienceScore = types.ClampScore(r.ExperienceScore)
	r.FormatScore = types.ClampScore(r.FormatScore)
	r.KeywordsScore = types.ClampScore(r.KeywordsScore)
	return r
}

func (generativeOutcome) source() string { return metrics.SourceGenerative }

type heuristicOutcome struct {
	result types.AnalysisResult
	reason string
}

func (o heuristicOutcome) normalize() types.AnalysisResult {
	return o.result.Clone()
}

func (heuristicOutcome) source() string { return metrics.SourceHeuristic }
