// Package scoremodel implements the rule-based predictors served by the
// remote scoring endpoint: problem difficulty, learning timeline and
// likely mistake class.
package scoremodel

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

// Function indexes on the predict endpoint.
const (
	FnDifficulty = 0
	FnTimeline   = 1
	FnMistake    = 2
)

// Vector lengths for each function.
const (
	DifficultyArity = 8
	TimelineArity   = 4
	MistakeArity    = 8
)

// Hours of study assumed per day by the timeline predictor.
const StudyHoursPerDay = 8

// Model holds the predictors. The zero value is deterministic: the
// timeline variance and the random syntax-error branch only apply when a
// random source is supplied.
type Model struct {
	rng *rand.Rand
}

// Option configures a Model.
type Option func(*Model)

// WithRand enables the randomised parts of the predictors.
func WithRand(r *rand.Rand) Option {
	return func(m *Model) { m.rng = r }
}

// New creates a Model.
func New(opts ...Option) *Model {
	m := &Model{}
	for _, o := range opts {
		o(m)
	}
	return m
}

// DifficultyInput is the eight-value difficulty vector.
type DifficultyInput struct {
	Loops        int     `json:"loops"`
	Conditionals int     `json:"conditionals"`
	NestingDepth int     `json:"nesting_depth"`
	Functions    int     `json:"functions"`
	LineCount    int     `json:"line_count"`
	Complexity   float64 `json:"complexity"`
	TextLength   int     `json:"text_length"`
	TestCases    int     `json:"test_cases"`
}

// Vector returns the input in wire order.
func (in DifficultyInput) Vector() []any {
	return []any{in.Loops, in.Conditionals, in.NestingDepth, in.Functions,
		in.LineCount, in.Complexity, in.TextLength, in.TestCases}
}

// DifficultyPrediction is the difficulty response body.
type DifficultyPrediction struct {
	Score            float64           `json:"difficulty_score" yaml:"difficulty_score"`
	Category         string            `json:"category" yaml:"category"`
	Recommendation   string            `json:"recommendation" yaml:"recommendation"`
	Confidence       string            `json:"confidence" yaml:"confidence"`
	FeatureBreakdown map[string]string `json:"feature_breakdown" yaml:"feature_breakdown"`
}

// Difficulty scores a problem from its code features, in [0.1, 0.9].
func (m *Model) Difficulty(in DifficultyInput) *DifficultyPrediction {
	loops := clampInt(in.Loops, 0, 10)
	conditionals := clampInt(in.Conditionals, 0, 15)
	depth := clampInt(in.NestingDepth, 0, 10)
	functions := clampInt(in.Functions, 0, 5)
	lines := clampInt(in.LineCount, 1, 200)
	complexity := clamp(in.Complexity, 0, 1)
	length := clampInt(in.TextLength, 50, 5000)
	tests := clampInt(in.TestCases, 1, 20)

	score := 0.3
	score += float64(loops) * 0.05
	score += float64(conditionals) * 0.04
	score += float64(depth) * 0.06
	score += float64(functions-1) * 0.03
	score += complexity * 0.3
	score += float64(lines) / 100 * 0.1
	score += float64(length) / 2000 * 0.05
	score += float64(tests) / 10 * 0.02
	score = clamp(score, 0.1, 0.9)

	var category string
	switch {
	case score < 0.4:
		category = "🟢 Easy"
	case score < 0.7:
		category = "🟡 Medium"
	default:
		category = "🔴 Hard"
	}
	level := strings.ToLower(strings.Fields(category)[1])

	return &DifficultyPrediction{
		Score:          round(score, 3),
		Category:       category,
		Recommendation: fmt.Sprintf("Estimated %.0f%% difficulty - %s level problem", score*100, level),
		Confidence:     "85%",
		FeatureBreakdown: map[string]string{
			"loops_impact":        fmt.Sprintf("%.3f", float64(in.Loops)*0.05),
			"conditionals_impact": fmt.Sprintf("%.3f", float64(in.Conditionals)*0.04),
			"complexity_impact":   fmt.Sprintf("%.3f", in.Complexity*0.3),
			"length_impact":       fmt.Sprintf("%.3f", float64(in.TextLength)/2000*0.05),
		},
	}
}

// TimelineInput is the four-value timeline vector.
type TimelineInput struct {
	StudentSkill      float64 `json:"student_skill"`
	ProblemDifficulty float64 `json:"problem_difficulty"`
	ProblemComplexity float64 `json:"problem_complexity"`
	ProblemLength     int     `json:"problem_length"`
}

// Vector returns the input in wire order.
func (in TimelineInput) Vector() []any {
	return []any{in.StudentSkill, in.ProblemDifficulty, in.ProblemComplexity, in.ProblemLength}
}

// TimelinePrediction is the timeline response body.
type TimelinePrediction struct {
	EstimatedHours float64           `json:"estimated_hours" yaml:"estimated_hours"`
	EstimatedDays  float64           `json:"estimated_days" yaml:"estimated_days"`
	Pace           string            `json:"learning_pace" yaml:"learning_pace"`
	Recommendation string            `json:"recommendation" yaml:"recommendation"`
	Factors        map[string]string `json:"factors" yaml:"factors"`
}

// Timeline estimates hours to master a problem, in [0.1, 50].
func (m *Model) Timeline(in TimelineInput) *TimelinePrediction {
	skill := clamp(in.StudentSkill, 0.1, 1)
	diff := clamp(in.ProblemDifficulty, 0.1, 1)
	complexity := clamp(in.ProblemComplexity, 0.1, 1)
	length := clampInt(in.ProblemLength, 100, 5000)

	gap := max(0, diff-skill)
	complexityFactor := 1 + complexity*0.5
	lengthFactor := 1 + float64(length)/2000*0.3
	hours := (0.5 + gap*8) * complexityFactor * lengthFactor
	if m.rng != nil {
		hours *= 0.8 + m.rng.Float64()*0.4
	}
	hours = clamp(hours, 0.1, 50)
	days := hours / StudyHoursPerDay

	var pace string
	switch {
	case hours < 2:
		pace = "🚀 Quick"
	case hours < 8:
		pace = "⚡ Moderate"
	default:
		pace = "🐌 Extended"
	}

	return &TimelinePrediction{
		EstimatedHours: round(hours, 1),
		EstimatedDays:  round(days, 1),
		Pace:           pace,
		Recommendation: fmt.Sprintf("Plan %.1f hours (%.1f days) to master this concept", round(hours, 1), round(days, 1)),
		Factors: map[string]string{
			"skill_gap_impact":      fmt.Sprintf("%.1f hours", gap*8),
			"complexity_multiplier": fmt.Sprintf("%.2fx", complexityFactor),
			"length_adjustment":     fmt.Sprintf("%.2fx", lengthFactor),
		},
	}
}

// MistakeInput is the eight-value mistake vector.
type MistakeInput struct {
	Loops             int     `json:"loops"`
	Conditionals      int     `json:"conditionals"`
	NestingDepth      int     `json:"nesting_depth"`
	LineCount         int     `json:"line_count"`
	Complexity        float64 `json:"complexity"`
	HasRecursion      bool    `json:"has_recursion"`
	Functions         int     `json:"functions"`
	ProblemDifficulty float64 `json:"problem_difficulty"`
}

// Vector returns the input in wire order. The recursion flag goes out as
// 0 or 1.
func (in MistakeInput) Vector() []any {
	recursion := 0
	if in.HasRecursion {
		recursion = 1
	}
	return []any{in.Loops, in.Conditionals, in.NestingDepth, in.LineCount,
		in.Complexity, recursion, in.Functions, in.ProblemDifficulty}
}

// Mistake classes.
const (
	MistakeSyntax       = "syntax_error"
	MistakeLogic        = "logic_error"
	MistakeOptimization = "optimization_needed"
	MistakeEdgeCase     = "edge_case_missed"
	MistakeComplexity   = "complexity_issue"
	MistakeNone         = "no_error"
)

// MistakeClasses lists every class in table order.
var MistakeClasses = []string{
	MistakeSyntax, MistakeLogic, MistakeOptimization,
	MistakeEdgeCase, MistakeComplexity, MistakeNone,
}

var mistakeInfo = map[string][2]string{
	MistakeSyntax:       {"🔧", "Check for missing colons, brackets, or indentation issues"},
	MistakeLogic:        {"🧠", "Review your algorithm logic and test with edge cases"},
	MistakeOptimization: {"⚡", "Consider more efficient algorithms or data structures"},
	MistakeEdgeCase:     {"🎯", "Add checks for empty inputs, single elements, or boundary conditions"},
	MistakeComplexity:   {"📊", "Simplify nested structures and reduce algorithmic complexity"},
	MistakeNone:         {"✅", "Code looks good! Consider minor style improvements"},
}

// MistakeAnalysis grades three concerns High/Medium/Low.
type MistakeAnalysis struct {
	Complexity string `json:"complexity_concern" yaml:"complexity_concern"`
	Structure  string `json:"structure_concern" yaml:"structure_concern"`
	Length     string `json:"length_concern" yaml:"length_concern"`
}

// MistakePrediction is the mistake response body.
type MistakePrediction struct {
	Class         string             `json:"class" yaml:"class"`
	Label         string             `json:"predicted_mistake" yaml:"predicted_mistake"`
	Confidence    string             `json:"confidence" yaml:"confidence"`
	Suggestion    string             `json:"suggestion" yaml:"suggestion"`
	RiskLevel     string             `json:"risk_level" yaml:"risk_level"`
	Analysis      MistakeAnalysis    `json:"detailed_analysis" yaml:"detailed_analysis"`
	Probabilities map[string]float64 `json:"all_probabilities,omitempty" yaml:"all_probabilities,omitempty"`
}

// Mistake predicts the most likely mistake class.
func (m *Model) Mistake(in MistakeInput) *MistakePrediction {
	var class string
	var conf float64
	switch {
	case in.Complexity > 0.8:
		class, conf = MistakeOptimization, 0.85
	case in.NestingDepth > 6:
		class, conf = MistakeComplexity, 0.80
	case in.Conditionals < 1 && in.ProblemDifficulty > 0.6:
		class, conf = MistakeEdgeCase, 0.75
	case in.LineCount < 10 && in.ProblemDifficulty > 0.4:
		class, conf = MistakeLogic, 0.70
	case m.rng != nil && m.rng.Float64() < 0.1:
		class, conf = MistakeSyntax, 0.65
	default:
		class, conf = MistakeNone, 0.90
	}

	probs := make(map[string]float64, len(MistakeClasses))
	total := 0.0
	for _, c := range MistakeClasses {
		p := 0.1
		if c == class {
			p = conf
		}
		probs[c] = p
		total += p
	}
	for c := range probs {
		probs[c] /= total
	}

	info := mistakeInfo[class]
	return &MistakePrediction{
		Class:      class,
		Label:      info[0] + " " + titleCase(class),
		Confidence: fmt.Sprintf("%.1f%%", conf*100),
		Suggestion: info[1],
		RiskLevel:  grade(conf, 0.8, 0.6),
		Analysis: MistakeAnalysis{
			Complexity: grade(in.Complexity, 0.7, 0.4),
			Structure:  grade(float64(in.NestingDepth), 5, 3),
			Length:     grade(float64(in.LineCount), 100, 50),
		},
		Probabilities: probs,
	}
}

// grade returns High above hi, Medium above mid, else Low.
func grade(v, hi, mid float64) string {
	switch {
	case v > hi:
		return "High"
	case v > mid:
		return "Medium"
	}
	return "Low"
}

func titleCase(class string) string {
	words := strings.Split(class, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func clamp(v, lo, hi float64) float64 { return max(lo, min(hi, v)) }

func clampInt(v, lo, hi int) int { return max(lo, min(hi, v)) }

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
