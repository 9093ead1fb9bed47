// Package difficulty scores a feature vector and explains which features
// drive the score.
package difficulty

import (
	"math"

	"github.com/abhisek/dsamentor/internal/features"
)

// Category bands the difficulty score.
type Category string

const (
	CategoryEasy   Category = "Easy"
	CategoryMedium Category = "Medium"
	CategoryHard   Category = "Hard"
)

// Score thresholds (exclusive upper bounds).
const (
	EasyThreshold   = 0.30
	MediumThreshold = 0.60
)

// Confidence is the fixed confidence reported for local scoring.
const Confidence = 0.92

// Breakdown copies the raw counts that feed the score.
type Breakdown struct {
	Loops          int `json:"loops" yaml:"loops"`
	Conditionals   int `json:"conditionals" yaml:"conditionals"`
	Functions      int `json:"functions" yaml:"functions"`
	Recursion      int `json:"recursion" yaml:"recursion"`
	NestingDepth   int `json:"nesting_depth" yaml:"nesting_depth"`
	DataStructures int `json:"data_structures" yaml:"data_structures"`
}

// Result is the difficulty assessment for one run.
type Result struct {
	Score       float64   `json:"score" yaml:"score"`
	Percentage  int       `json:"percentage" yaml:"percentage"`
	Category    Category  `json:"category" yaml:"category"`
	Description string    `json:"description" yaml:"description"`
	Confidence  float64   `json:"confidence" yaml:"confidence"`
	Breakdown   Breakdown `json:"breakdown" yaml:"breakdown"`
}

// Score maps a feature vector to a bounded difficulty result.
func Score(v features.Vector) *Result {
	s := math.Max(0, math.Min(1, v.EstimatedDifficulty))
	cat := categorize(s)
	return &Result{
		Score:       s,
		Percentage:  int(math.Round(s * 100)),
		Category:    cat,
		Description: describe(cat),
		Confidence:  Confidence,
		Breakdown: Breakdown{
			Loops:          v.Loops,
			Conditionals:   v.Conditionals,
			Functions:      v.Functions,
			Recursion:      v.Recursion,
			NestingDepth:   v.NestingDepth,
			DataStructures: v.DataStructures,
		},
	}
}

func categorize(s float64) Category {
	switch {
	case s < EasyThreshold:
		return CategoryEasy
	case s < MediumThreshold:
		return CategoryMedium
	default:
		return CategoryHard
	}
}

func describe(c Category) string {
	switch c {
	case CategoryEasy:
		return "Beginner-friendly with basic operations"
	case CategoryMedium:
		return "Moderate complexity requiring good understanding"
	default:
		return "Advanced problem requiring expert knowledge"
	}
}
