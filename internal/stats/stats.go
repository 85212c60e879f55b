// Package stats derives aggregate figures from a user's analysis history.
// Nothing here is cached; every call recomputes from the records it is given.
package stats

import (
	"sort"

	"github.com/jonathan/resume-ats/internal/types"
)

// Compute summarizes records. It returns nil when records is empty.
// Improvement is the latest overall score minus the earliest, ordered by AnalyzedAt.
func Compute(records []types.AnalysisRecord) *types.AnalysisStats {
	if len(records) == 0 {
		return nil
	}

	sum, highest := 0, records[0].OverallScore
	for _, r := range records {
		sum += r.OverallScore
		if r.OverallScore > highest {
			highest = r.OverallScore
		}
	}

	ordered := chronological(records)
	improvement := ordered[len(ordered)-1].OverallScore - ordered[0].OverallScore

	return &types.AnalysisStats{
		TotalAnalyses: len(records),
		AverageScore:  types.RoundHalfUp(float64(sum) / float64(len(records))),
		HighestScore:  highest,
		Improvement:   improvement,
	}
}

// Trend returns the overall score series in chronological order.
func Trend(records []types.AnalysisRecord) []types.TrendPoint {
	ordered := chronological(records)
	points := make([]types.TrendPoint, 0, len(ordered))
	for _, r := range ordered {
		points = append(points, types.TrendPoint{
			AnalyzedAt:   r.AnalyzedAt,
			OverallScore: r.OverallScore,
			Tier:         types.TierFor(r.OverallScore),
		})
	}
	return points
}

// chronological returns a sorted copy; records with equal timestamps keep their input order.
func chronological(records []types.AnalysisRecord) []types.AnalysisRecord {
	out := make([]types.AnalysisRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AnalyzedAt.Before(out[j].AnalyzedAt)
	})
	return out
}
