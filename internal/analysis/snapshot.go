package analysis

import (
	"time"

	"github.com/abhisek/dsamentor/internal/difficulty"
	"github.com/abhisek/dsamentor/internal/features"
	"github.com/abhisek/dsamentor/internal/lang"
	"github.com/abhisek/dsamentor/internal/mistakes"
	"github.com/abhisek/dsamentor/internal/optimize"
	"github.com/abhisek/dsamentor/internal/recommend"
	"github.com/abhisek/dsamentor/internal/timeline"
	"github.com/abhisek/dsamentor/internal/topics"
)

// Snapshot is one complete analysis. It is published atomically and never
// mutated afterwards. Every result is nil in the empty snapshot.
type Snapshot struct {
	ID        string        `json:"id,omitempty" yaml:"id,omitempty"`
	Language  lang.Language `json:"language,omitempty" yaml:"language,omitempty"`
	CreatedAt time.Time     `json:"created_at" yaml:"created_at"`

	Features        *features.Vector        `json:"features" yaml:"features"`
	Difficulty      *difficulty.Result      `json:"difficulty" yaml:"difficulty"`
	Attribution     *difficulty.Attribution `json:"feature_attribution" yaml:"feature_attribution"`
	Timeline        *timeline.Result        `json:"timeline" yaml:"timeline"`
	Mistakes        *mistakes.Report        `json:"mistakes" yaml:"mistakes"`
	Topics          *topics.Result          `json:"topics" yaml:"topics"`
	Recommendations *recommend.Result       `json:"recommendations" yaml:"recommendations"`
	Optimizations   *optimize.Result        `json:"optimizations" yaml:"optimizations"`
}

// EmptySnapshot is published for blank buffers and before the first run.
func EmptySnapshot() *Snapshot {
	return &Snapshot{CreatedAt: time.Now()}
}

// Empty reports whether the snapshot carries no results.
func (s *Snapshot) Empty() bool {
	return s == nil || (s.Features == nil &&
		s.Difficulty == nil &&
		s.Attribution == nil &&
		s.Timeline == nil &&
		s.Mistakes == nil &&
		s.Topics == nil &&
		s.Recommendations == nil &&
		s.Optimizations == nil)
}
