// Package analysis runs the heuristic stages over a buffer and owns the
// debounced re-analysis loop.
package analysis

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/dsamentor/internal/difficulty"
	"github.com/abhisek/dsamentor/internal/features"
	"github.com/abhisek/dsamentor/internal/lang"
	"github.com/abhisek/dsamentor/internal/mistakes"
	"github.com/abhisek/dsamentor/internal/optimize"
	"github.com/abhisek/dsamentor/internal/profile"
	"github.com/abhisek/dsamentor/internal/recommend"
	"github.com/abhisek/dsamentor/internal/timeline"
	"github.com/abhisek/dsamentor/internal/topics"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc/panics"
)

// Input is the (text, language, profile) triple a run analyzes.
type Input struct {
	Text     string
	Language lang.Language
	Profile  profile.Profile
}

// Blank reports whether the input has nothing to analyze.
func (in Input) Blank() bool { return strings.TrimSpace(in.Text) == "" }

// Analyzer produces a snapshot for an input.
type Analyzer interface {
	Analyze(in Input) (*Snapshot, error)
}

// Pipeline runs every stage in dependency order on the calling goroutine.
type Pipeline struct {
	detector *mistakes.Detector
	now      func() time.Time
}

// NewPipeline returns a pipeline. A nil logger uses slog.Default().
func NewPipeline(logger *slog.Logger) *Pipeline {
	return &Pipeline{
		detector: mistakes.NewDetector(logger),
		now:      time.Now,
	}
}

// Analyze runs the stages. Blank input yields the empty snapshot without
// running anything. A panic in any stage is returned as an error naming
// the stage.
func (p *Pipeline) Analyze(in Input) (*Snapshot, error) {
	if in.Blank() {
		return EmptySnapshot(), nil
	}
	snap := &Snapshot{
		ID:        uuid.NewString(),
		Language:  in.Language,
		CreatedAt: p.now(),
	}

	var v features.Vector
	stages := []struct {
		name string
		run  func()
	}{
		{"features", func() { v = features.Extract(in.Text, in.Language); snap.Features = &v }},
		{"difficulty", func() { snap.Difficulty = difficulty.Score(v) }},
		{"attribution", func() { snap.Attribution = difficulty.Attribute(v) }},
		{"mistakes", func() { snap.Mistakes = p.detector.Detect(in.Text, v, in.Language) }},
		{"topics", func() { snap.Topics = topics.Classify(in.Text, v) }},
		{"timeline", func() { snap.Timeline = timeline.Predict(v, in.Profile) }},
		{"recommendations", func() {
			snap.Recommendations = recommend.Generate(in.Profile, snap.Mistakes.Findings, snap.Topics, snap.Difficulty)
		}},
		{"optimizations", func() { snap.Optimizations = optimize.Generate(in.Text, v, in.Language) }},
	}

	for _, st := range stages {
		var pc panics.Catcher
		pc.Try(st.run)
		if rec := pc.Recovered(); rec != nil {
			return nil, fmt.Errorf("%s stage: %w", st.name, rec.AsError())
		}
	}
	return snap, nil
}
