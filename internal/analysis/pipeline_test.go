package analysis

import (
	"strings"
	"testing"

	"github.com/abhisek/dsamentor/internal/difficulty"
	"github.com/abhisek/dsamentor/internal/lang"
	"github.com/abhisek/dsamentor/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_Blank(t *testing.T) {
	p := NewPipeline(nil)
	for _, text := range []string{"", "   ", "\n\t\n"} {
		snap, err := p.Analyze(Input{Text: text, Language: lang.Python, Profile: profile.Default()})
		require.NoError(t, err)
		assert.True(t, snap.Empty(), "text %q", text)
		assert.Empty(t, snap.ID)
	}
}

func TestPipeline_Demo(t *testing.T) {
	p := NewPipeline(nil)
	snap, err := p.Analyze(Input{Text: lang.Starter(lang.Python), Language: lang.Python, Profile: profile.Default()})
	require.NoError(t, err)
	require.False(t, snap.Empty())

	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, lang.Python, snap.Language)
	require.NotNil(t, snap.Features)
	assert.Equal(t, 5, snap.Features.Loops)
	assert.Equal(t, 3, snap.Features.NestingDepth)

	require.NotNil(t, snap.Difficulty)
	assert.GreaterOrEqual(t, snap.Difficulty.Percentage, 0)
	assert.LessOrEqual(t, snap.Difficulty.Percentage, 100)
	require.NotNil(t, snap.Attribution)
	assert.LessOrEqual(t, len(snap.Attribution.Factors), difficulty.MaxFactors)

	require.NotNil(t, snap.Mistakes)
	assert.NotEmpty(t, snap.Mistakes.Findings)
	assert.NotEmpty(t, snap.Mistakes.Critical())

	assert.NotNil(t, snap.Topics)
	assert.NotNil(t, snap.Timeline)
	assert.NotNil(t, snap.Recommendations)
	require.NotNil(t, snap.Optimizations)
	assert.Positive(t, snap.Optimizations.TotalHints)
}

func TestPipeline_UniqueIDs(t *testing.T) {
	p := NewPipeline(nil)
	in := Input{Text: "x = 1\n", Language: lang.Python, Profile: profile.Default()}
	a, err := p.Analyze(in)
	require.NoError(t, err)
	b, err := p.Analyze(in)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.Mistakes, b.Mistakes)
}

func TestPipeline_TimelineUsesProfile(t *testing.T) {
	p := NewPipeline(nil)
	text := strings.Repeat("x = 1\n", 100)
	expert := profile.Profile{SkillLevel: 1, ProgrammingExperience: 1, DSAKnowledge: 1}

	snap, err := p.Analyze(Input{Text: text, Language: lang.Python, Profile: expert})
	require.NoError(t, err)
	assert.Equal(t, 1.3, snap.Timeline.EstimatedHours)
}

func TestSnapshotEmpty(t *testing.T) {
	var nilSnap *Snapshot
	assert.True(t, nilSnap.Empty())
	assert.True(t, EmptySnapshot().Empty())
	assert.False(t, (&Snapshot{Difficulty: &difficulty.Result{}}).Empty())
}
