package topics

import (
	"testing"

	"github.com/abhisek/dsamentor/internal/features"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_NoTopics(t *testing.T) {
	r := Classify("x = 1", features.Vector{})
	assert.Empty(t, r.Tags)
	assert.Nil(t, r.Primary)
	assert.Zero(t, r.AverageConfidence)
	assert.Equal(t, TierIntermediate, r.ComplexityLevel)
}

func TestClassify_PrimaryFollowsTableOrder(t *testing.T) {
	// Both graph and search match; graph is listed first even though
	// sorting has the same confidence.
	r := Classify("def BINARY_SEARCH(graph): pass", features.Vector{})
	require.Equal(t, 2, r.Count)
	assert.Equal(t, "Graph Algorithms", r.Primary.Name)
	assert.Equal(t, TierAdvanced, r.ComplexityLevel)
	assert.InDelta(t, 0.95, r.AverageConfidence, 1e-9)
}

func TestClassify_ArraysTier(t *testing.T) {
	basic := Classify("xs[0]", features.Vector{Loops: 1})
	require.Len(t, basic.Tags, 1)
	assert.Equal(t, TierBasic, basic.Tags[0].Tier)
	assert.Equal(t, TierBasic, basic.ComplexityLevel)

	adv := Classify("xs[0]", features.Vector{Loops: 2})
	assert.Equal(t, TierAdvanced, adv.Tags[0].Tier)
}

func TestClassify_HighestTierWins(t *testing.T) {
	r := Classify("arr = sorted(arr)", features.Vector{})
	require.Equal(t, 2, r.Count)
	assert.Equal(t, "Arrays & Lists", r.Primary.Name)
	assert.Equal(t, TierIntermediate, r.ComplexityLevel)
	assert.InDelta(t, (0.90+0.95)/2, r.AverageConfidence, 1e-9)
}
