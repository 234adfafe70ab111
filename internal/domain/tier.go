package domain

// TierName identifies a comprehension bucket for content recommendations.
type TierName string

const (
	TierComfort   TierName = "comfort"
	TierChallenge TierName = "challenge"
	TierStretch   TierName = "stretch"
)

// ExclusionThreshold is the comprehension ratio below which content is not
// recommended at all. Excluded items are counted, never silently dropped.
const ExclusionThreshold = 0.75

// TierSpec describes one comprehension bucket. Ranges are half-open
// [Min, Max) except the topmost tier, which includes Max so a perfect 1.0
// lands in Comfort rather than falling between buckets.
type TierSpec struct {
	Name         TierName
	Min          float64
	Max          float64
	TopInclusive bool
	Label        string
	Description  string
	Emoji        string
}

// Tiers lists the three fixed buckets in descending comprehension order.
// Together they cover [0.75, 1.0] contiguously.
var Tiers = []TierSpec{
	{
		Name:         TierComfort,
		Min:          0.95,
		Max:          1.00,
		TopInclusive: true,
		Label:        "Comfort Zone",
		Description:  "You know 95%+ of words - perfect for building confidence",
		Emoji:        "🟢",
	},
	{
		Name:        TierChallenge,
		Min:         0.85,
		Max:         0.95,
		Label:       "Sweet Spot",
		Description: "Optimal learning zone - challenging but achievable",
		Emoji:       "🟡",
	},
	{
		Name:        TierStretch,
		Min:         0.75,
		Max:         0.85,
		Label:       "Stretch Goal",
		Description: "Ambitious read - use dictionary support",
		Emoji:       "🔴",
	},
}

// Contains reports whether the given comprehension ratio falls in this
// tier's range.
func (t TierSpec) Contains(ratio float64) bool {
	if ratio < t.Min {
		return false
	}
	if t.TopInclusive {
		return ratio <= t.Max
	}
	return ratio < t.Max
}
