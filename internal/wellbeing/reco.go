package wellbeing

// Recommendation kinds.
const (
	KindRituel  = "rituel"
	KindContenu = "contenu"
	KindBox     = "box"
)

// Recommendation pairs a human-facing payload with a machine-facing
// reason echoing the triggering feature value.
type Recommendation struct {
	Kind    string         `json:"kind"`
	Payload map[string]any `json:"payload"`
	Reason  map[string]any `json:"reason"`
}

// recoTrigger fires zero or more fixed templates when its predicate
// holds. Triggers are evaluated in declaration order and output order
// follows trigger order, so repeated calls with identical input yield
// identical ordered output.
type recoTrigger struct {
	triggered func(f FeatureSet) bool
	build     func(f FeatureSet) []Recommendation
}

var recoTriggers = []recoTrigger{
	{
		// High workload: microbreak ritual, disconnect resource, mobility box.
		triggered: func(f FeatureSet) bool { return atLeast(f.WorkloadMax7d, 4) },
		build: func(f FeatureSet) []Recommendation {
			return []Recommendation{
				{
					Kind: KindRituel,
					Payload: map[string]any{
						"title": "Bloc focus 25'",
						"steps": []string{"Couper notifs 25'", "Pause 5'", "Hydratation"},
					},
					Reason: map[string]any{"workload_max_7d": *f.WorkloadMax7d},
				},
				{
					Kind: KindContenu,
					Payload: map[string]any{
						"title": "Droit à la déconnexion",
						"url":   "/ressources/deconnexion",
					},
					Reason: map[string]any{"policy": "deconnexion"},
				},
				{
					Kind: KindBox,
					Payload: map[string]any{
						"sku":      "BOX-SALARIE-MOB",
						"items":    []string{"gourde", "lingettes", "snack", "creme_mains"},
						"cost_eur": 9.8,
						"tags":     []string{"microbreak", "mobilité", "anti-stress"},
					},
					Reason: map[string]any{"tag": "mobilité|anti-stress"},
				},
			}
		},
	},
	{
		// High physical strain: field stretching ritual.
		triggered: func(f FeatureSet) bool { return atLeast(f.StrainMax7d, 4) },
		build: func(f FeatureSet) []Recommendation {
			return []Recommendation{
				{
					Kind: KindRituel,
					Payload: map[string]any{
						"title": "3 étirements terrain",
						"steps": []string{"Cervicales", "Épaules", "Poignets"},
					},
					Reason: map[string]any{"strain_max_7d": *f.StrainMax7d},
				},
			}
		},
	},
	{
		// Poor disconnection: evening wind-down ritual.
		triggered: func(f FeatureSet) bool { return atMost(f.DisconnectMin30d, 2) },
		build: func(f FeatureSet) []Recommendation {
			return []Recommendation{
				{
					Kind: KindRituel,
					Payload: map[string]any{
						"title": "Routine soir 10'",
						"steps": []string{"Écran OFF 30'", "Carnet 3 lignes", "Hydratation"},
					},
					Reason: map[string]any{"disconnect_min_30d": *f.DisconnectMin30d},
				},
			}
		},
	},
}

// GenerateRecommendations evaluates every trigger in fixed order and
// concatenates the templates of those that fire. Multiple triggers may
// co-fire; the result may be empty.
func GenerateRecommendations(features FeatureSet) []Recommendation {
	recos := []Recommendation{}
	for _, trigger := range recoTriggers {
		if trigger.triggered(features) {
			recos = append(recos, trigger.build(features)...)
		}
	}
	return recos
}
