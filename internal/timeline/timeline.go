// Package timeline estimates how long a learner needs for a snippet.
package timeline

import (
	"math"

	"github.com/abhisek/dsamentor/internal/features"
	"github.com/abhisek/dsamentor/internal/profile"
)

// Pace tiers.
const (
	PaceQuick    = "Quick"
	PaceModerate = "Moderate"
	PaceExtended = "Extended"
)

// HoursPerDay converts hours to study days.
const HoursPerDay = 4

// Breakdown shows where the estimate comes from.
type Breakdown struct {
	ReadingTime     int     `json:"reading_time" yaml:"reading_time"`
	ComplexityTime  int     `json:"complexity_time" yaml:"complexity_time"`
	SkillAdjustment float64 `json:"skill_adjustment" yaml:"skill_adjustment"`
}

// Result is the timeline estimate.
type Result struct {
	EstimatedHours  float64   `json:"estimated_hours" yaml:"estimated_hours"`
	EstimatedDays   int       `json:"estimated_days" yaml:"estimated_days"`
	Pace            string    `json:"pace" yaml:"pace"`
	Recommendations []string  `json:"recommendations" yaml:"recommendations"`
	Breakdown       Breakdown `json:"breakdown" yaml:"breakdown"`
}

// Predict combines the feature vector with the learner's skill. Profile
// scalars are expected in [0, 1]; values outside scale the estimate
// proportionally and are not rejected here.
func Predict(v features.Vector, p profile.Profile) *Result {
	skill := p.SkillFactor()
	base := float64(v.LineCount) * 0.5
	complexity := float64(v.Loops)*8 + float64(v.Conditionals)*4 + float64(v.Recursion)*20
	adjustment := 2.5 - skill
	minutes := (base + complexity) * adjustment
	hours := math.Round(minutes/60*10) / 10

	return &Result{
		EstimatedHours:  hours,
		EstimatedDays:   int(math.Ceil(hours / HoursPerDay)),
		Pace:            pace(hours),
		Recommendations: recommendations(hours),
		Breakdown: Breakdown{
			ReadingTime:     int(math.Round(base)),
			ComplexityTime:  int(math.Round(complexity)),
			SkillAdjustment: math.Round(adjustment*100) / 100,
		},
	}
}

func pace(hours float64) string {
	switch {
	case hours < 2:
		return PaceQuick
	case hours < 6:
		return PaceModerate
	default:
		return PaceExtended
	}
}

func recommendations(hours float64) []string {
	switch {
	case hours > 10:
		return []string{"Break into smaller parts", "Study fundamentals first"}
	case hours > 5:
		return []string{"Practice similar problems", "Focus on understanding"}
	default:
		return []string{"Good match for your level", "Try optimization challenges"}
	}
}
