package difficulty

import (
	"fmt"
	"math"
	"sort"

	"github.com/abhisek/dsamentor/internal/features"
)

// Impact tiers a contribution. Thresholds are applied to the unrounded
// contribution.
type Impact string

const (
	ImpactHigh   Impact = "High"
	ImpactMedium Impact = "Medium"
	ImpactLow    Impact = "Low"
)

// MaxFactors caps the ranked factor list.
const MaxFactors = 6

// Factor is one feature's weighted share of the difficulty.
type Factor struct {
	Feature      string  `json:"feature" yaml:"feature"`
	Name         string  `json:"name" yaml:"name"`
	Value        int     `json:"value" yaml:"value"`
	Weight       float64 `json:"weight" yaml:"weight"`
	Contribution int     `json:"contribution_percentage" yaml:"contribution_percentage"`
	Impact       Impact  `json:"impact" yaml:"impact"`
	Explanation  string  `json:"explanation" yaml:"explanation"`
}

// Attribution is the ranked explanation of a feature vector.
type Attribution struct {
	Factors              []Factor `json:"factors" yaml:"factors"`
	TotalComplexityScore int      `json:"total_complexity_score" yaml:"total_complexity_score"`
	DominantFactors      []string `json:"dominant_factors" yaml:"dominant_factors"`
}

type weighted struct {
	key     string
	name    string
	weight  float64
	value   func(features.Vector) int
	explain func(int) string
}

// weights is the fixed attribution table, in tie-break order.
var weights = []weighted{
	{"line_count", "Line Count", 0.05, func(v features.Vector) int { return v.LineCount }, nil},
	{"loops", "Loops", 0.25, func(v features.Vector) int { return v.Loops }, func(n int) string {
		return fmt.Sprintf("%d loop(s) detected. Each loop adds computational complexity.", n)
	}},
	{"conditionals", "Conditionals", 0.15, func(v features.Vector) int { return v.Conditionals }, func(n int) string {
		return fmt.Sprintf("%d conditional statement(s). Complex decision trees affect readability.", n)
	}},
	{"functions", "Functions", 0.10, func(v features.Vector) int { return v.Functions }, func(n int) string {
		return fmt.Sprintf("%d function(s) defined. Function complexity affects maintainability.", n)
	}},
	{"recursion", "Recursion", 0.35, func(v features.Vector) int { return v.Recursion }, func(n int) string {
		return fmt.Sprintf("%d recursive call(s). Recursion can lead to exponential complexity.", n)
	}},
	{"data_structures", "Data Structures", 0.20, func(v features.Vector) int { return v.DataStructures }, func(n int) string {
		return fmt.Sprintf("%d data structure(s) used. Advanced structures require deeper understanding.", n)
	}},
	{"nesting_depth", "Nesting Depth", 0.30, func(v features.Vector) int { return v.NestingDepth }, func(n int) string {
		return fmt.Sprintf("Maximum nesting depth of %d. Deep nesting increases cognitive load.", n)
	}},
}

// Attribute re-expresses the vector as ranked weighted contributions.
// Zero-valued features are omitted. The total and the dominant factors are
// computed over every contribution, including those truncated from the
// ranked list.
func Attribute(v features.Vector) *Attribution {
	var factors []Factor
	total := 0
	for _, w := range weights {
		val := w.value(v)
		if val == 0 {
			continue
		}
		raw := float64(val) * w.weight * 100
		pct := int(math.Round(raw))
		total += pct

		explanation := fmt.Sprintf("Feature contributes %d%% to overall difficulty.", pct)
		if w.explain != nil {
			explanation = w.explain(val)
		}
		factors = append(factors, Factor{
			Feature:      w.key,
			Name:         w.name,
			Value:        val,
			Weight:       w.weight,
			Contribution: pct,
			Impact:       impactOf(raw),
			Explanation:  explanation,
		})
	}

	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Contribution > factors[j].Contribution
	})

	dominant := []string{}
	for _, f := range factors {
		if f.Impact == ImpactHigh {
			dominant = append(dominant, f.Name)
		}
	}
	if len(factors) > MaxFactors {
		factors = factors[:MaxFactors]
	}
	return &Attribution{
		Factors:              factors,
		TotalComplexityScore: total,
		DominantFactors:      dominant,
	}
}

func impactOf(contribution float64) Impact {
	switch {
	case contribution > 20:
		return ImpactHigh
	case contribution > 10:
		return ImpactMedium
	default:
		return ImpactLow
	}
}
