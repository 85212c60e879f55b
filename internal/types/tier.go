package types

// Tier is the qualitative label attached to a score.
type Tier string

const (
	TierExcellent Tier = "Excellent"
	TierGood      Tier = "Good"
	TierNeedsWork Tier = "Needs Work"
)

// Tier thresholds, inclusive lower bounds.
const (
	ExcellentThreshold = 80
	GoodThreshold      = 60
)

// TierFor classifies a score. Every display of a tier goes through here.
func TierFor(score int) Tier {
	switch {
	case score >= ExcellentThreshold:
		return TierExcellent
	case score >= GoodThreshold:
		return TierGood
	default:
		return TierNeedsWork
	}
}

func (t Tier) String() string {
	return string(t)
}
