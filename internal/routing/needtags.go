package routing

import "zena/internal/wellbeing"

// Need tags derived from recent check-in signals.
const (
	TagCharge      = "charge"
	TagDeconnexion = "deconnexion"
	TagErgonomie   = "ergonomie"
	TagSommeil     = "sommeil"
)

// needRule maps one feature threshold to the tags it implies.
type needRule struct {
	triggered func(f wellbeing.FeatureSet) bool
	tags      []string
}

var needRules = []needRule{
	{
		triggered: func(f wellbeing.FeatureSet) bool {
			return f.WorkloadMax7d != nil && *f.WorkloadMax7d >= 4
		},
		tags: []string{TagCharge, TagDeconnexion},
	},
	{
		triggered: func(f wellbeing.FeatureSet) bool {
			return f.StrainMax7d != nil && *f.StrainMax7d >= 4
		},
		tags: []string{TagErgonomie},
	},
	{
		triggered: func(f wellbeing.FeatureSet) bool {
			return f.DisconnectMin30d != nil && *f.DisconnectMin30d <= 2
		},
		tags: []string{TagDeconnexion, TagSommeil},
	},
}

// DeriveNeedTags computes the behavioral need tags for a feature set,
// deduplicated while preserving first-occurrence order.
func DeriveNeedTags(features wellbeing.FeatureSet) []string {
	seen := map[string]bool{}
	tags := []string{}
	for _, rule := range needRules {
		if !rule.triggered(features) {
			continue
		}
		for _, tag := range rule.tags {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}
