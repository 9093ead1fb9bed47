// Package topics tags a snippet with the DSA topic areas it touches.
package topics

import (
	"strings"

	"github.com/abhisek/dsamentor/internal/features"
)

// Tier is a topic's inferred difficulty. Tiers are ordered.
type Tier string

const (
	TierBasic        Tier = "Basic"
	TierIntermediate Tier = "Intermediate"
	TierAdvanced     Tier = "Advanced"
	TierExpert       Tier = "Expert"
)

func (t Tier) rank() int {
	switch t {
	case TierBasic:
		return 1
	case TierIntermediate:
		return 2
	case TierAdvanced:
		return 3
	case TierExpert:
		return 4
	}
	return 0
}

// Tag is one classified topic.
type Tag struct {
	Name       string   `json:"topic" yaml:"topic"`
	Confidence float64  `json:"confidence" yaml:"confidence"`
	Concepts   []string `json:"concepts" yaml:"concepts"`
	Tier       Tier     `json:"difficulty" yaml:"difficulty"`
}

// Result is the classifier output.
type Result struct {
	Tags              []Tag   `json:"identified_topics" yaml:"identified_topics"`
	Primary           *Tag    `json:"primary_topic" yaml:"primary_topic"`
	Count             int     `json:"topic_count" yaml:"topic_count"`
	AverageConfidence float64 `json:"average_confidence" yaml:"average_confidence"`
	ComplexityLevel   Tier    `json:"complexity_level" yaml:"complexity_level"`
}

type matcher struct {
	name       string
	keywords   []string
	confidence float64
	concepts   []string
	tier       func(features.Vector) Tier
}

func fixed(t Tier) func(features.Vector) Tier {
	return func(features.Vector) Tier { return t }
}

// matchers run in table order; the first match is the primary topic.
var matchers = []matcher{
	{
		name:       "Arrays & Lists",
		keywords:   []string{"array", "list", "[", "arr"},
		confidence: 0.90,
		concepts:   []string{"Indexing", "Iteration", "Manipulation", "Searching"},
		tier: func(v features.Vector) Tier {
			if v.Loops > 1 {
				return TierAdvanced
			}
			return TierBasic
		},
	},
	{
		name:       "Graph Algorithms",
		keywords:   []string{"graph", "node", "edge", "visited", "traversal"},
		confidence: 0.95,
		concepts:   []string{"DFS", "BFS", "Traversal", "Connectivity"},
		tier:       fixed(TierAdvanced),
	},
	{
		name:       "Sorting & Searching",
		keywords:   []string{"search", "binary", "sort"},
		confidence: 0.95,
		concepts:   []string{"Binary Search", "Sorting Algorithms", "Time Complexity"},
		tier:       fixed(TierIntermediate),
	},
}

// Classify runs each keyword check independently over the case-folded text.
func Classify(text string, v features.Vector) *Result {
	folded := strings.ToLower(text)
	r := &Result{Tags: []Tag{}}

	var sum float64
	for _, m := range matchers {
		if !containsAny(folded, m.keywords) {
			continue
		}
		tag := Tag{
			Name:       m.name,
			Confidence: m.confidence,
			Concepts:   append([]string(nil), m.concepts...),
			Tier:       m.tier(v),
		}
		r.Tags = append(r.Tags, tag)
		sum += tag.Confidence
		if r.ComplexityLevel.rank() < tag.Tier.rank() {
			r.ComplexityLevel = tag.Tier
		}
	}

	r.Count = len(r.Tags)
	if r.Count > 0 {
		r.Primary = &r.Tags[0]
		r.AverageConfidence = sum / float64(r.Count)
	} else {
		r.ComplexityLevel = TierIntermediate
	}
	return r
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
