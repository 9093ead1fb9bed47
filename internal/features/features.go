// Package features turns raw source text into the numeric feature vector
// consumed by every downstream analysis stage.
package features

import (
	"math"
	"regexp"
	"strings"

	"github.com/abhisek/dsamentor/internal/lang"
)

// IndentUnit is the number of columns that make one nesting level.
const IndentUnit = 4

// Vector is the per-run feature record. It is a value type and callers
// never mutate it after Extract returns.
type Vector struct {
	LineCount           int     `json:"line_count" yaml:"line_count"`
	Loops               int     `json:"loops" yaml:"loops"`
	Conditionals        int     `json:"conditionals" yaml:"conditionals"`
	Functions           int     `json:"functions" yaml:"functions"`
	Recursion           int     `json:"recursion" yaml:"recursion"`
	DataStructures      int     `json:"data_structures" yaml:"data_structures"`
	NestingDepth        int     `json:"nesting_depth" yaml:"nesting_depth"`
	EstimatedDifficulty float64 `json:"estimated_difficulty" yaml:"estimated_difficulty"`
}

// profile holds the counting patterns for one language.
type profile struct {
	loops          *regexp.Regexp
	conditionals   *regexp.Regexp
	functions      *regexp.Regexp
	dataStructures *regexp.Regexp
}

// recursionPattern approximates a recursive call: a return statement whose
// expression contains a call. Go's '.' does not cross newlines, so this
// matches at most once per line.
var recursionPattern = regexp.MustCompile(`return.*\w+\(`)

var profiles = map[lang.Language]profile{
	lang.Python: {
		loops:          regexp.MustCompile(`\b(for|while)\b`),
		conditionals:   regexp.MustCompile(`\b(if|elif|else)\b`),
		functions:      regexp.MustCompile(`\bdef\s+\w+`),
		dataStructures: regexp.MustCompile(`\b(list|dict|set|tuple|deque|heap)\b`),
	},
	lang.Java: {
		loops:          regexp.MustCompile(`\b(for|while)\b`),
		conditionals:   regexp.MustCompile(`\b(if|else)\b`),
		functions:      regexp.MustCompile(`\b(public|private|protected)?\s*(static)?\s*\w+\s+\w+\s*\(`),
		dataStructures: regexp.MustCompile(`\b(ArrayList|HashMap|HashSet|LinkedList|Stack|Queue)\b`),
	},
	lang.Cpp: {
		loops:          regexp.MustCompile(`\b(for|while)\b`),
		conditionals:   regexp.MustCompile(`\b(if|else)\b`),
		functions:      regexp.MustCompile(`(?m)^\s*[\w:<>,\*&]+\s+[\*&]?\w+\s*\([^;\n]*$`),
		dataStructures: regexp.MustCompile(`\b(vector|map|unordered_map|set|unordered_set|stack|queue|deque|priority_queue)\b`),
	},
}

// Extract computes the feature vector for text in the given language.
// Unknown languages get zero keyword counts; line count and nesting depth
// are language independent.
func Extract(text string, l lang.Language) Vector {
	v := Vector{
		LineCount:    LineCount(text),
		NestingDepth: NestingDepth(text, IndentUnit),
	}
	if p, ok := profiles[l]; ok {
		v.Loops = count(p.loops, text)
		v.Conditionals = count(p.conditionals, text)
		v.Functions = count(p.functions, text)
		v.Recursion = count(recursionPattern, text)
		v.DataStructures = count(p.dataStructures, text)
	}
	v.EstimatedDifficulty = EstimateDifficulty(v)
	return v
}

// EstimateDifficulty is the fixed linear combination of the structural
// counts, clamped to [0, 1].
func EstimateDifficulty(v Vector) float64 {
	d := float64(v.Loops)*0.15 +
		float64(v.Conditionals)*0.12 +
		float64(v.Recursion)*0.25 +
		float64(v.NestingDepth)*0.20
	return math.Max(0, math.Min(1, d))
}

// LineCount returns the number of lines containing non-whitespace.
func LineCount(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

// NestingDepth returns the maximum of floor(indent/unit) over non-blank
// lines. A tab advances the indent by one full unit.
func NestingDepth(text string, unit int) int {
	if unit <= 0 {
		unit = IndentUnit
	}
	maxDepth := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if d := IndentWidth(line) / unit; d > maxDepth {
			maxDepth = d
		}
	}
	return maxDepth
}

// IndentWidth measures leading whitespace in columns, counting a tab as
// IndentUnit columns.
func IndentWidth(line string) int {
	w := 0
	for _, r := range line {
		switch r {
		case ' ':
			w++
		case '\t':
			w += IndentUnit
		default:
			return w
		}
	}
	return w
}

func count(re *regexp.Regexp, text string) int {
	return len(re.FindAllStringIndex(text, -1))
}
