// Package optimize suggests complexity reductions for a snippet.
package optimize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/dsamentor/internal/features"
	"github.com/abhisek/dsamentor/internal/lang"
)

// MaxImprovement caps the summed difficulty reduction.
const MaxImprovement = 80

// Hint is one optimization suggestion.
type Hint struct {
	Category            string `json:"category" yaml:"category"`
	Type                string `json:"type" yaml:"type"`
	Issue               string `json:"issue" yaml:"issue"`
	Suggestion          string `json:"suggestion" yaml:"suggestion"`
	Example             string `json:"example" yaml:"example"`
	Impact              string `json:"impact" yaml:"impact"`
	DifficultyReduction string `json:"difficulty_reduction" yaml:"difficulty_reduction"`
}

// Result aggregates the hints.
type Result struct {
	Hints                []Hint   `json:"optimization_hints" yaml:"optimization_hints"`
	TotalHints           int      `json:"total_hints" yaml:"total_hints"`
	PotentialImprovement int      `json:"potential_improvement" yaml:"potential_improvement"`
	PriorityHints        []Hint   `json:"priority_hints" yaml:"priority_hints"`
	Categories           []string `json:"categories" yaml:"categories"`
}

const pythonNestedLoopExample = `# Instead of nested loops:
for i in range(n):
    for j in range(n):
        # operation

# Use hash map:
hash_map = {}
for i in range(n):
    # O(n) operation`

const javaNestedLoopExample = `// Instead of nested loops:
for(int i=0; i<n; i++) {
    for(int j=0; j<n; j++) {
        // operation
    }
}

// Use HashMap:
HashMap<Integer, Integer> map = new HashMap<>();`

const cppNestedLoopExample = `// Instead of nested loops:
for (int i = 0; i < n; i++) {
    for (int j = 0; j < n; j++) {
        // operation
    }
}

// Use unordered_map:
std::unordered_map<int, int> seen;`

// Generate inspects the vector for hotspots. Only loop count triggers a
// hint today; text is accepted so future checks can look at the source.
func Generate(_ string, v features.Vector, l lang.Language) *Result {
	hints := []Hint{}
	if v.Loops > 2 {
		hints = append(hints, Hint{
			Category:            "Performance",
			Type:                "Time Complexity",
			Issue:               fmt.Sprintf("%d nested loops detected (O(n²+) complexity)", v.Loops),
			Suggestion:          "Consider using hash maps or dynamic programming",
			Example:             nestedLoopExample(l),
			Impact:              "High",
			DifficultyReduction: "25%",
		})
	}
	return summarize(hints)
}

func nestedLoopExample(l lang.Language) string {
	switch l {
	case lang.Python:
		return pythonNestedLoopExample
	case lang.Cpp:
		return cppNestedLoopExample
	default:
		return javaNestedLoopExample
	}
}

func summarize(hints []Hint) *Result {
	r := &Result{
		Hints:         hints,
		TotalHints:    len(hints),
		PriorityHints: []Hint{},
		Categories:    []string{},
	}
	seen := map[string]bool{}
	total := 0
	for _, h := range hints {
		n, _ := strconv.Atoi(strings.TrimSuffix(h.DifficultyReduction, "%"))
		total += n
		if h.Impact == "High" {
			r.PriorityHints = append(r.PriorityHints, h)
		}
		if !seen[h.Category] {
			seen[h.Category] = true
			r.Categories = append(r.Categories, h.Category)
		}
	}
	r.PotentialImprovement = min(MaxImprovement, total)
	return r
}
