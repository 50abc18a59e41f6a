package wellbeing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeScore_NeutralFeatures(t *testing.T) {
	features := FeatureSet{
		WorkloadMax7d:    Float(0),
		StrainMax7d:      Float(0),
		DisconnectMin30d: Float(5),
		MoodMean7d:       Float(0),
		ClimateMean30d:   Float(0),
	}

	score, trace := ComputeScore(features, Instruments{})
	assert.Equal(t, ScoreBaseline, score)
	assert.Empty(t, trace)
}

func TestComputeScore_WorkloadThresholdIsExact(t *testing.T) {
	below := FeatureSet{WorkloadMax7d: Float(3)}
	at := FeatureSet{WorkloadMax7d: Float(4)}

	scoreBelow, _ := ComputeScore(below, Instruments{})
	scoreAt, traceAt := ComputeScore(at, Instruments{})

	assert.Equal(t, 2, scoreBelow-scoreAt, "crossing the workload threshold must cost exactly 2")
	assert.Equal(t, []string{"workload_max_7d>=4:-2"}, traceAt)
}

func TestComputeScore_AbsentFieldsDisableRules(t *testing.T) {
	// A fully absent feature set fires nothing: absence is not the same
	// as a low (or high) value.
	score, trace := ComputeScore(FeatureSet{}, Instruments{})
	assert.Equal(t, ScoreBaseline, score)
	assert.Empty(t, trace)

	// disconnect absent: no penalty even though 0 <= 2 would fire.
	score, trace = ComputeScore(FeatureSet{DisconnectMin30d: nil}, Instruments{})
	assert.Equal(t, ScoreBaseline, score)
	assert.Empty(t, trace)
}

func TestComputeScore_RuleTable(t *testing.T) {
	tests := []struct {
		name        string
		features    FeatureSet
		instruments Instruments
		wantScore   int
		wantTrace   []string
	}{
		{
			name:      "strain penalty",
			features:  FeatureSet{StrainMax7d: Float(4)},
			wantScore: 6,
			wantTrace: []string{"strain_max_7d>=4:-2"},
		},
		{
			name:      "low disconnect penalty",
			features:  FeatureSet{DisconnectMin30d: Float(2)},
			wantScore: 7,
			wantTrace: []string{"disconnect_min_30d<=2:-1"},
		},
		{
			name:      "good mood bonus",
			features:  FeatureSet{MoodMean7d: Float(4.2)},
			wantScore: 10,
			wantTrace: []string{"mood_mean_7d>=4:+2"},
		},
		{
			name:      "good climate bonus",
			features:  FeatureSet{ClimateMean30d: Float(4)},
			wantScore: 9,
			wantTrace: []string{"climate_mean_30d>=4:+1"},
		},
		{
			name:        "low WHO5 penalty",
			instruments: Instruments{WHO5: &WHO5{W1: 1, W2: 2, W3: 1, W4: 2, W5: 2}},
			wantScore:   6,
			wantTrace:   []string{"WHO5<=8:-2"},
		},
		{
			name:        "high WHO5 bonus",
			instruments: Instruments{WHO5: &WHO5{W1: 4, W2: 4, W3: 4, W4: 4, W5: 4}},
			wantScore:   9,
			wantTrace:   []string{"WHO5>=20:+1"},
		},
		{
			name:        "WHO5 mid-range fires nothing",
			instruments: Instruments{WHO5: &WHO5{W1: 3, W2: 3, W3: 3, W4: 3, W5: 3}},
			wantScore:   8,
			wantTrace:   []string{},
		},
		{
			name:        "karasek high demand low control",
			instruments: Instruments{Karasek: &Karasek{Demand: 4, Control: 2, Support: 3}},
			wantScore:   7,
			wantTrace:   []string{"Karasek(high_demand & low_control):-1"},
		},
		{
			name:        "karasek high demand with autonomy is fine",
			instruments: Instruments{Karasek: &Karasek{Demand: 5, Control: 4, Support: 3}},
			wantScore:   8,
			wantTrace:   []string{},
		},
		{
			name:        "effort-reward imbalance",
			instruments: Instruments{ERI: &ERI{Effort: 4, Reward: 2}},
			wantScore:   7,
			wantTrace:   []string{"ERI>1:-1"},
		},
		{
			name:        "zero reward counts as imbalance",
			instruments: Instruments{ERI: &ERI{Effort: 1, Reward: 0}},
			wantScore:   7,
			wantTrace:   []string{"ERI>1:-1"},
		},
		{
			name:        "balanced effort-reward",
			instruments: Instruments{ERI: &ERI{Effort: 3, Reward: 3}},
			wantScore:   8,
			wantTrace:   []string{},
		},
		{
			name:        "vigor protection",
			instruments: Instruments{UWES: &UWES{Vigor: 5, Dedication: 2, Absorption: 2}},
			wantScore:   9,
			wantTrace:   []string{"UWES(vigor>=5):+1"},
		},
		{
			name: "end-to-end example",
			features: FeatureSet{
				WorkloadMax7d:    Float(4),
				StrainMax7d:      Float(1),
				DisconnectMin30d: Float(5),
				MoodMean7d:       Float(2),
				ClimateMean30d:   Float(2),
			},
			wantScore: 6,
			wantTrace: []string{"workload_max_7d>=4:-2"},
		},
		{
			name: "penalties stack in rule order",
			features: FeatureSet{
				WorkloadMax7d:    Float(5),
				StrainMax7d:      Float(4),
				DisconnectMin30d: Float(1),
			},
			instruments: Instruments{
				WHO5:    &WHO5{W1: 1, W2: 1, W3: 1, W4: 1, W5: 1},
				Karasek: &Karasek{Demand: 5, Control: 1},
			},
			wantScore: 1, // raw 0, clamped to the floor
			wantTrace: []string{
				"workload_max_7d>=4:-2",
				"strain_max_7d>=4:-2",
				"disconnect_min_30d<=2:-1",
				"WHO5<=8:-2",
				"Karasek(high_demand & low_control):-1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, trace := ComputeScore(tt.features, tt.instruments)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.wantTrace, trace)
		})
	}
}

func TestComputeScore_AlwaysBounded(t *testing.T) {
	// Worst case: every penalty fires.
	worst := FeatureSet{
		WorkloadMax7d:    Float(5),
		StrainMax7d:      Float(5),
		DisconnectMin30d: Float(1),
	}
	worstInstruments := Instruments{
		WHO5:    &WHO5{},
		Karasek: &Karasek{Demand: 5, Control: 1},
		ERI:     &ERI{Effort: 5, Reward: 1},
	}
	score, _ := ComputeScore(worst, worstInstruments)
	require.GreaterOrEqual(t, score, ScoreMin)

	// Best case: every bonus fires.
	best := FeatureSet{
		MoodMean7d:     Float(5),
		ClimateMean30d: Float(5),
	}
	bestInstruments := Instruments{
		WHO5: &WHO5{W1: 5, W2: 5, W3: 5, W4: 5, W5: 5},
		UWES: &UWES{Vigor: 6},
	}
	score, _ = ComputeScore(best, bestInstruments)
	require.LessOrEqual(t, score, ScoreMax)
}

func TestComputeScore_Deterministic(t *testing.T) {
	features := FeatureSet{
		WorkloadMax7d:    Float(4),
		DisconnectMin30d: Float(2),
		MoodMean7d:       Float(4),
	}
	instruments := Instruments{UWES: &UWES{Vigor: 5}}

	firstScore, firstTrace := ComputeScore(features, instruments)
	for i := 0; i < 10; i++ {
		score, trace := ComputeScore(features, instruments)
		require.Equal(t, firstScore, score)
		require.Equal(t, firstTrace, trace)
	}
}
