// Package recommend suggests practice problems and a learning path.
package recommend

import (
	"github.com/abhisek/dsamentor/internal/difficulty"
	"github.com/abhisek/dsamentor/internal/mistakes"
	"github.com/abhisek/dsamentor/internal/profile"
	"github.com/abhisek/dsamentor/internal/topics"
)

// FoundationThreshold is the skill level below which foundation problems
// are recommended.
const FoundationThreshold = 0.4

// Priority of a recommendation group.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Problem is a suggested practice problem.
type Problem struct {
	Name          string `json:"name" yaml:"name"`
	Difficulty    string `json:"difficulty" yaml:"difficulty"`
	Topic         string `json:"topic" yaml:"topic"`
	EstimatedMins int    `json:"estimated_minutes" yaml:"estimated_minutes"`
}

// Group is a recommendation category with its problems.
type Group struct {
	Category string    `json:"category" yaml:"category"`
	Problems []Problem `json:"problems" yaml:"problems"`
	Reason   string    `json:"reason" yaml:"reason"`
	Priority Priority  `json:"priority" yaml:"priority"`
}

// Result is the engine output.
type Result struct {
	Groups                []Group  `json:"recommendations" yaml:"recommendations"`
	TotalProblems         int      `json:"total_problems" yaml:"total_problems"`
	EstimatedTotalMinutes int      `json:"estimated_total_time" yaml:"estimated_total_time"`
	LearningPath          []string `json:"learning_path" yaml:"learning_path"`
}

var foundation = Group{
	Category: "Foundation Building",
	Problems: []Problem{
		{Name: "Two Sum", Difficulty: "Easy", Topic: "Arrays", EstimatedMins: 15},
		{Name: "Valid Parentheses", Difficulty: "Easy", Topic: "Stack", EstimatedMins: 20},
	},
	Reason:   "Build fundamental problem-solving skills",
	Priority: PriorityHigh,
}

var enhancement = Group{
	Category: "Skill Enhancement",
	Problems: []Problem{
		{Name: "Binary Tree Level Order", Difficulty: "Medium", Topic: "Trees", EstimatedMins: 35},
	},
	Reason:   "Advance to intermediate problems",
	Priority: PriorityMedium,
}

// Generate selects problems for the learner. Selection branches on skill
// level only; findings, topics and difficulty are accepted so callers pass
// the full analysis, but they do not change the selection yet.
func Generate(p profile.Profile, _ []mistakes.Finding, _ *topics.Result, _ *difficulty.Result) *Result {
	var groups []Group
	var path []string
	if p.SkillLevel < FoundationThreshold {
		groups = []Group{clone(foundation)}
		path = []string{"Master Arrays & Basic Algorithms", "Learn Fundamental Data Structures"}
	} else {
		groups = []Group{clone(enhancement)}
		path = []string{"Advanced Data Structures", "Algorithm Optimization"}
	}

	r := &Result{Groups: groups, LearningPath: path}
	for _, g := range groups {
		r.TotalProblems += len(g.Problems)
		for _, pr := range g.Problems {
			r.EstimatedTotalMinutes += pr.EstimatedMins
		}
	}
	return r
}

func clone(g Group) Group {
	g.Problems = append([]Problem(nil), g.Problems...)
	return g
}
