package wellbeing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRecommendations_WorkloadTrigger(t *testing.T) {
	recos := GenerateRecommendations(FeatureSet{WorkloadMax7d: Float(4)})

	require.Len(t, recos, 3)
	assert.Equal(t, KindRituel, recos[0].Kind)
	assert.Equal(t, KindContenu, recos[1].Kind)
	assert.Equal(t, KindBox, recos[2].Kind)
	assert.Equal(t, 4.0, recos[0].Reason["workload_max_7d"])
}

func TestGenerateRecommendations_TriggerOrder(t *testing.T) {
	// All three triggers co-fire: workload templates first, then strain,
	// then disconnect.
	features := FeatureSet{
		WorkloadMax7d:    Float(5),
		StrainMax7d:      Float(4),
		DisconnectMin30d: Float(1),
	}
	recos := GenerateRecommendations(features)

	require.Len(t, recos, 5)
	assert.Equal(t, "Bloc focus 25'", recos[0].Payload["title"])
	assert.Equal(t, "3 étirements terrain", recos[3].Payload["title"])
	assert.Equal(t, "Routine soir 10'", recos[4].Payload["title"])
}

func TestGenerateRecommendations_Deterministic(t *testing.T) {
	features := FeatureSet{StrainMax7d: Float(4), DisconnectMin30d: Float(2)}

	first := GenerateRecommendations(features)
	second := GenerateRecommendations(features)
	assert.Equal(t, first, second)
}

func TestGenerateRecommendations_NoSignalsNoRecos(t *testing.T) {
	assert.Empty(t, GenerateRecommendations(FeatureSet{}))
	assert.Empty(t, GenerateRecommendations(FeatureSet{WorkloadMax7d: Float(3)}))
}
