package scoring

import (
	"context"
	"errors"

	"github.com/abhisek/dsamentor/internal/features"
	"github.com/abhisek/dsamentor/internal/scoremodel"
	"github.com/sourcegraph/conc"
)

// DefaultTestCases is sent in the difficulty vector when the problem has
// no test-case count of its own.
const DefaultTestCases = 4

// Request carries what the three vectors are built from.
type Request struct {
	SnapshotID string
	Features   features.Vector
	Difficulty float64
	TextLength int
	SkillLevel float64
}

// DifficultyInput builds the difficulty vector.
func (r Request) DifficultyInput() scoremodel.DifficultyInput {
	return scoremodel.DifficultyInput{
		Loops:        r.Features.Loops,
		Conditionals: r.Features.Conditionals,
		NestingDepth: r.Features.NestingDepth,
		Functions:    r.Features.Functions,
		LineCount:    r.Features.LineCount,
		Complexity:   r.Features.EstimatedDifficulty,
		TextLength:   r.TextLength,
		TestCases:    DefaultTestCases,
	}
}

// TimelineInput builds the timeline vector.
func (r Request) TimelineInput() scoremodel.TimelineInput {
	return scoremodel.TimelineInput{
		StudentSkill:      r.SkillLevel,
		ProblemDifficulty: r.Difficulty,
		ProblemComplexity: r.Features.EstimatedDifficulty,
		ProblemLength:     r.TextLength,
	}
}

// MistakeInput builds the mistake vector.
func (r Request) MistakeInput() scoremodel.MistakeInput {
	return scoremodel.MistakeInput{
		Loops:             r.Features.Loops,
		Conditionals:      r.Features.Conditionals,
		NestingDepth:      r.Features.NestingDepth,
		LineCount:         r.Features.LineCount,
		Complexity:        r.Features.EstimatedDifficulty,
		HasRecursion:      r.Features.Recursion > 0,
		Functions:         r.Features.Functions,
		ProblemDifficulty: r.Difficulty,
	}
}

// Predictions holds whatever the endpoint returned. A nil field pairs with
// a non-nil error for the same function.
type Predictions struct {
	SnapshotID string                           `json:"snapshot_id" yaml:"snapshot_id"`
	Difficulty *scoremodel.DifficultyPrediction `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Timeline   *scoremodel.TimelinePrediction   `json:"timeline,omitempty" yaml:"timeline,omitempty"`
	Mistake    *scoremodel.MistakePrediction    `json:"mistake,omitempty" yaml:"mistake,omitempty"`

	DifficultyErr error `json:"-" yaml:"-"`
	TimelineErr   error `json:"-" yaml:"-"`
	MistakeErr    error `json:"-" yaml:"-"`
}

// Err joins the per-function errors.
func (p *Predictions) Err() error {
	return errors.Join(p.DifficultyErr, p.TimelineErr, p.MistakeErr)
}

// Augmenter produces remote predictions for a published analysis.
type Augmenter interface {
	Augment(ctx context.Context, req Request) (*Predictions, error)
}

// Augment runs the three predict calls concurrently. The returned error is
// non-nil only when every call failed.
func (c *Client) Augment(ctx context.Context, req Request) (*Predictions, error) {
	out := &Predictions{SnapshotID: req.SnapshotID}

	var wg conc.WaitGroup
	wg.Go(func() { out.Difficulty, out.DifficultyErr = c.Difficulty(ctx, req.DifficultyInput()) })
	wg.Go(func() { out.Timeline, out.TimelineErr = c.Timeline(ctx, req.TimelineInput()) })
	wg.Go(func() { out.Mistake, out.MistakeErr = c.Mistake(ctx, req.MistakeInput()) })
	wg.Wait()

	if out.DifficultyErr != nil && out.TimelineErr != nil && out.MistakeErr != nil {
		return out, out.Err()
	}
	return out, nil
}
