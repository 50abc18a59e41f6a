package wellbeing

// Scores are bounded to [ScoreMin, ScoreMax] and start from ScoreBaseline
// before any rule applies.
const (
	ScoreMin      = 1
	ScoreMax      = 15
	ScoreBaseline = 8
)

// scoreInput is the full evaluation context a rule predicate sees.
type scoreInput struct {
	features    FeatureSet
	instruments Instruments
}

// scoreRule is one entry of the ordered rule table: when the predicate
// holds, the signed delta applies and the label is appended to the trace.
// Labels are stable identifiers persisted with every score; they must not
// change without a data migration.
type scoreRule struct {
	label     string
	delta     int
	triggered func(in scoreInput) bool
}

// scoreRules is evaluated strictly in declaration order. Rules 1-5 read
// the feature set; the remaining rules read one instrument each and
// never fire when that instrument is absent.
var scoreRules = []scoreRule{
	{
		label: "workload_max_7d>=4:-2",
		delta: -2,
		triggered: func(in scoreInput) bool {
			return atLeast(in.features.WorkloadMax7d, 4)
		},
	},
	{
		label: "strain_max_7d>=4:-2",
		delta: -2,
		triggered: func(in scoreInput) bool {
			return atLeast(in.features.StrainMax7d, 4)
		},
	},
	{
		label: "disconnect_min_30d<=2:-1",
		delta: -1,
		triggered: func(in scoreInput) bool {
			return atMost(in.features.DisconnectMin30d, 2)
		},
	},
	{
		label: "mood_mean_7d>=4:+2",
		delta: 2,
		triggered: func(in scoreInput) bool {
			return atLeast(in.features.MoodMean7d, 4)
		},
	},
	{
		label: "climate_mean_30d>=4:+1",
		delta: 1,
		triggered: func(in scoreInput) bool {
			return atLeast(in.features.ClimateMean30d, 4)
		},
	},
	{
		label: "WHO5<=8:-2",
		delta: -2,
		triggered: func(in scoreInput) bool {
			return in.instruments.WHO5 != nil && in.instruments.WHO5.Total() <= 8
		},
	},
	{
		// Mutually exclusive with WHO5<=8 by construction.
		label: "WHO5>=20:+1",
		delta: 1,
		triggered: func(in scoreInput) bool {
			return in.instruments.WHO5 != nil && in.instruments.WHO5.Total() >= 20
		},
	},
	{
		label: "Karasek(high_demand & low_control):-1",
		delta: -1,
		triggered: func(in scoreInput) bool {
			k := in.instruments.Karasek
			return k != nil && k.Demand >= 4 && k.Control <= 2
		},
	},
	{
		// A non-positive reward counts as an imbalanced ratio.
		label: "ERI>1:-1",
		delta: -1,
		triggered: func(in scoreInput) bool {
			e := in.instruments.ERI
			if e == nil {
				return false
			}
			if e.Reward <= 0 {
				return true
			}
			return float64(e.Effort)/float64(e.Reward) > 1.0
		},
	},
	{
		label: "UWES(vigor>=5):+1",
		delta: 1,
		triggered: func(in scoreInput) bool {
			return in.instruments.UWES != nil && in.instruments.UWES.Vigor >= 5
		},
	},
}

// ComputeScore evaluates the ordered rule table over the feature set and
// instrument snapshots and returns the clamped score together with the
// labels of every rule that fired, in evaluation order.
//
// The function is pure: no I/O, no hidden state. The caller is
// responsible for rejecting the "no feature set" case before calling.
func ComputeScore(features FeatureSet, instruments Instruments) (int, []string) {
	in := scoreInput{features: features, instruments: instruments}

	score := ScoreBaseline
	trace := []string{}
	for _, rule := range scoreRules {
		if rule.triggered(in) {
			score += rule.delta
			trace = append(trace, rule.label)
		}
	}

	return clampScore(score), trace
}

func clampScore(v int) int {
	if v < ScoreMin {
		return ScoreMin
	}
	if v > ScoreMax {
		return ScoreMax
	}
	return v
}
