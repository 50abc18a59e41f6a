package wellbeing

// RiskLevel is the escalation tier attached to an alert.
type RiskLevel string

const (
	RiskPrioritaire  RiskLevel = "prioritaire"
	RiskAttention    RiskLevel = "attention"
	RiskSignalFaible RiskLevel = "signal-faible"
)

// Axis names the primary wellbeing dimension an alert targets.
const (
	AxisWorkload = "workload"
	AxisStrain   = "strain"
	AxisEnergy   = "energy"
	AxisGeneral  = "general"
)

// ClassifyRisk maps a score and its feature set to an escalation tier.
// The second return is false when no alert is warranted. Evaluation is a
// strict priority ladder; the "attention" tier additionally requires a
// degraded check-in signal on top of the score band.
func ClassifyRisk(score int, features FeatureSet) (RiskLevel, bool) {
	switch {
	case score <= 4:
		return RiskPrioritaire, true
	case score <= 5 && hasDegradedSignal(features):
		return RiskAttention, true
	case score <= 6:
		return RiskSignalFaible, true
	default:
		return "", false
	}
}

func hasDegradedSignal(f FeatureSet) bool {
	return atLeast(f.WorkloadMax7d, 4) ||
		atLeast(f.StrainMax7d, 4) ||
		atMost(f.DisconnectMin30d, 2)
}

// PrimaryAxis selects the alert axis from the feature set. This is a
// priority list, not a union: only the first matching axis applies.
func PrimaryAxis(f FeatureSet) string {
	switch {
	case atLeast(f.WorkloadMax7d, 4):
		return AxisWorkload
	case atLeast(f.StrainMax7d, 4):
		return AxisStrain
	case atMost(f.EnergyMin7d, 2):
		return AxisEnergy
	default:
		return AxisGeneral
	}
}
