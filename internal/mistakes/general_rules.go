package mistakes

import (
	"fmt"
	"regexp"
)

// InfiniteLoopRule flags loops whose head can never become false unless the
// buffer contains both a break and a return.
type InfiniteLoopRule struct{}

var (
	unconditionalLoops = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*while\s+\(?\s*(?:True|1)\s*\)?\s*:`),
		regexp.MustCompile(`\bwhile\s*\(\s*(?:true|1)\s*\)`),
		regexp.MustCompile(`\bfor\s*\(\s*;\s*;\s*\)`),
	}
	// Go regexps have no backreferences; the two operands are compared in code.
	selfComparisonLoop = regexp.MustCompile(`\bwhile\s*\(?\s*([A-Za-z_]\w*)\s*==\s*([A-Za-z_]\w*)\s*\)?\s*[:{]?`)
	loopBreak          = regexp.MustCompile(`\bbreak\b`)
	loopReturn         = regexp.MustCompile(`\breturn\b`)
)

func (r *InfiniteLoopRule) Name() string { return "infinite-loop" }

func (r *InfiniteLoopRule) Check(src *Source) []Finding {
	if loopBreak.MatchString(src.Masked) && loopReturn.MatchString(src.Masked) {
		return nil
	}
	var offsets []int
	for _, re := range unconditionalLoops {
		for _, m := range re.FindAllStringIndex(src.Masked, -1) {
			offsets = append(offsets, m[0])
		}
	}
	for _, m := range selfComparisonLoop.FindAllStringSubmatchIndex(src.Masked, -1) {
		if src.Masked[m[2]:m[3]] == src.Masked[m[4]:m[5]] {
			offsets = append(offsets, m[0])
		}
	}

	var out []Finding
	seen := map[int]bool{}
	for _, off := range offsets {
		line := src.LineAt(off)
		if seen[line] {
			continue
		}
		seen[line] = true
		out = append(out, Finding{
			Kind:         KindLogicError,
			Severity:     SeverityHigh,
			Message:      "Potential infinite loop detected",
			Suggestion:   "Add break condition or modify loop variable",
			Location:     AtLine(line),
			LearningNote: "Loops should have a way to terminate to avoid infinite execution.",
			Category:     CategoryLogic,
		})
	}
	return out
}

// ExcessNestingRule warns once when the loop count implies quadratic or
// worse running time.
type ExcessNestingRule struct{}

// ExcessLoopThreshold is the loop count above which the rule fires.
const ExcessLoopThreshold = 2

func (r *ExcessNestingRule) Name() string { return "excess-nesting" }

func (r *ExcessNestingRule) Check(src *Source) []Finding {
	loops := src.Features.Loops
	if loops <= ExcessLoopThreshold {
		return nil
	}
	return []Finding{{
		Kind:         KindPerformanceWarning,
		Severity:     SeverityMedium,
		Message:      fmt.Sprintf("%d nested loops create O(n²+) time complexity", loops),
		Suggestion:   "Consider using hash maps or optimizing algorithm",
		Location:     MultipleLocations,
		LearningNote: "Nested loops exponentially increase execution time.",
		Category:     CategoryPerformance,
	}}
}
