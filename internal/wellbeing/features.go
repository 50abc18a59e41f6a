// Package wellbeing implements the deterministic decision engine: the
// rule-based score, the risk classification, the recommendation triggers
// and the trend delta computed from periodic self-report signals.
package wellbeing

// FeatureSet aggregates check-in signals over the 7-day and 30-day
// windows. Every field is optional: a nil pointer means "no data", which
// silently disables the rules reading that field. Absence is never
// encoded as a numeric default.
type FeatureSet struct {
	WorkloadMax7d    *float64 `json:"workload_max_7d"`
	StrainMax7d      *float64 `json:"strain_max_7d"`
	EnergyMin7d      *float64 `json:"energy_min_7d"`
	MoodMean7d       *float64 `json:"mood_mean_7d"`
	ClimateMean30d   *float64 `json:"climate_mean_30d"`
	DisconnectMin30d *float64 `json:"disconnect_min_30d"`
}

// WHO5 is the five-item wellbeing index, each item scored 0-5.
type WHO5 struct {
	W1 int `json:"w1"`
	W2 int `json:"w2"`
	W3 int `json:"w3"`
	W4 int `json:"w4"`
	W5 int `json:"w5"`
}

// Total sums the five sub-scores (0-25).
func (w WHO5) Total() int {
	return w.W1 + w.W2 + w.W3 + w.W4 + w.W5
}

// Karasek is the job-strain triad.
type Karasek struct {
	Demand  int `json:"demand"`
	Control int `json:"control"`
	Support int `json:"support"`
}

// ERI is the effort-reward triad.
type ERI struct {
	Effort     int `json:"effort"`
	Reward     int `json:"reward"`
	Overcommit int `json:"overcommit"`
}

// UWES is the work-engagement triad, used only as a protective signal.
type UWES struct {
	Vigor      int `json:"vigor"`
	Dedication int `json:"dedication"`
	Absorption int `json:"absorption"`
}

// Instruments bundles the most recent snapshot of each self-report
// instrument. Each is independently optional; a nil snapshot disables
// only the rules that depend on it.
type Instruments struct {
	WHO5    *WHO5
	Karasek *Karasek
	ERI     *ERI
	UWES    *UWES
}

// Float is a convenience for building optional feature values in tests
// and fixtures.
func Float(v float64) *float64 { return &v }

// atLeast reports whether the optional value is present and >= threshold.
func atLeast(v *float64, threshold float64) bool {
	return v != nil && *v >= threshold
}

// atMost reports whether the optional value is present and <= threshold.
func atMost(v *float64, threshold float64) bool {
	return v != nil && *v <= threshold
}
