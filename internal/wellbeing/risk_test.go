package wellbeing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRisk(t *testing.T) {
	degraded := FeatureSet{WorkloadMax7d: Float(4)}
	calm := FeatureSet{WorkloadMax7d: Float(1), StrainMax7d: Float(1), DisconnectMin30d: Float(5)}

	tests := []struct {
		name      string
		score     int
		features  FeatureSet
		wantLevel RiskLevel
		wantAlert bool
	}{
		{name: "score 3 is prioritaire regardless of features", score: 3, features: calm, wantLevel: RiskPrioritaire, wantAlert: true},
		{name: "score 4 is prioritaire", score: 4, features: degraded, wantLevel: RiskPrioritaire, wantAlert: true},
		{name: "score 5 with degraded signal is attention", score: 5, features: degraded, wantLevel: RiskAttention, wantAlert: true},
		{name: "score 5 without degraded signal falls to signal-faible", score: 5, features: calm, wantLevel: RiskSignalFaible, wantAlert: true},
		{name: "score 6 is signal-faible even with degraded signal", score: 6, features: degraded, wantLevel: RiskSignalFaible, wantAlert: true},
		{name: "score 7 never alerts", score: 7, features: degraded, wantAlert: false},
		{name: "attention via low disconnect", score: 5, features: FeatureSet{DisconnectMin30d: Float(2)}, wantLevel: RiskAttention, wantAlert: true},
		{name: "absent features cannot trigger attention", score: 5, features: FeatureSet{}, wantLevel: RiskSignalFaible, wantAlert: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, alert := ClassifyRisk(tt.score, tt.features)
			assert.Equal(t, tt.wantAlert, alert)
			if tt.wantAlert {
				assert.Equal(t, tt.wantLevel, level)
			}
		})
	}
}

func TestPrimaryAxis(t *testing.T) {
	tests := []struct {
		name     string
		features FeatureSet
		want     string
	}{
		{
			name:     "workload wins over strain",
			features: FeatureSet{WorkloadMax7d: Float(4), StrainMax7d: Float(4)},
			want:     AxisWorkload,
		},
		{
			name:     "strain when workload below threshold",
			features: FeatureSet{WorkloadMax7d: Float(3), StrainMax7d: Float(4)},
			want:     AxisStrain,
		},
		{
			name:     "energy when only energy is low",
			features: FeatureSet{EnergyMin7d: Float(2)},
			want:     AxisEnergy,
		},
		{
			name:     "general fallback",
			features: FeatureSet{},
			want:     AxisGeneral,
		},
		{
			name:     "absent energy does not select energy axis",
			features: FeatureSet{WorkloadMax7d: Float(1), StrainMax7d: Float(1)},
			want:     AxisGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrimaryAxis(tt.features))
		})
	}
}
