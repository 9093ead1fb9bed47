package difficulty

import (
	"testing"

	"github.com/abhisek/dsamentor/internal/features"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttribute_RankingAndTiers(t *testing.T) {
	v := features.Vector{
		LineCount:      10, // 50
		Loops:          1,  // 25
		Conditionals:   1,  // 15
		Recursion:      0,
		DataStructures: 0,
		Functions:      1, // 10
		NestingDepth:   2, // 60
	}
	a := Attribute(v)
	require.Len(t, a.Factors, 5)

	assert.Equal(t, "Nesting Depth", a.Factors[0].Name)
	assert.Equal(t, 60, a.Factors[0].Contribution)
	assert.Equal(t, ImpactHigh, a.Factors[0].Impact)

	assert.Equal(t, "Line Count", a.Factors[1].Name)
	assert.Equal(t, "Loops", a.Factors[2].Name)
	assert.Equal(t, ImpactHigh, a.Factors[2].Impact)
	assert.Equal(t, ImpactMedium, a.Factors[3].Impact)
	assert.Equal(t, ImpactLow, a.Factors[4].Impact, "10 is not above the medium threshold")

	assert.Equal(t, 160, a.TotalComplexityScore)
	assert.Equal(t, []string{"Nesting Depth", "Line Count", "Loops"}, a.DominantFactors)
}

func TestAttribute_ExcludesZeroAndTruncates(t *testing.T) {
	v := features.Vector{LineCount: 1, Loops: 1, Conditionals: 1, Functions: 1, Recursion: 1, DataStructures: 1, NestingDepth: 1}
	a := Attribute(v)
	assert.Len(t, a.Factors, MaxFactors)
	// Line count has the smallest weight and falls off the list but still
	// counts toward the total.
	for _, f := range a.Factors {
		assert.NotEqual(t, "line_count", f.Feature)
	}
	assert.Equal(t, 5+25+15+10+35+20+30, a.TotalComplexityScore)

	empty := Attribute(features.Vector{})
	assert.Empty(t, empty.Factors)
	assert.Zero(t, empty.TotalComplexityScore)
	assert.Empty(t, empty.DominantFactors)
}

func TestAttribute_StableTieBreak(t *testing.T) {
	// Loops (0.25*4=100) and DataStructures (0.20*5=100) tie; loops comes
	// first in table order.
	a := Attribute(features.Vector{Loops: 4, DataStructures: 5})
	require.Len(t, a.Factors, 2)
	assert.Equal(t, "loops", a.Factors[0].Feature)
	assert.Equal(t, "data_structures", a.Factors[1].Feature)
}

func TestAttribute_Explanations(t *testing.T) {
	a := Attribute(features.Vector{Loops: 3, LineCount: 2})
	byKey := map[string]Factor{}
	for _, f := range a.Factors {
		byKey[f.Feature] = f
	}
	assert.Equal(t, "3 loop(s) detected. Each loop adds computational complexity.", byKey["loops"].Explanation)
	assert.Equal(t, "Feature contributes 10% to overall difficulty.", byKey["line_count"].Explanation)
}
