// Package profile holds the learner profile read by the timeline and
// recommendation stages.
package profile

import (
	"fmt"
	"sort"
)

// LearningStyle is how the learner prefers material presented.
type LearningStyle string

const (
	StyleVisual      LearningStyle = "visual"
	StyleAuditory    LearningStyle = "auditory"
	StyleKinesthetic LearningStyle = "kinesthetic"
	StyleReading     LearningStyle = "reading"
)

// ParseLearningStyle validates a style name.
func ParseLearningStyle(s string) (LearningStyle, error) {
	switch LearningStyle(s) {
	case StyleVisual, StyleAuditory, StyleKinesthetic, StyleReading:
		return LearningStyle(s), nil
	}
	return "", fmt.Errorf("unknown learning style %q", s)
}

// Adjustable scalar keys.
const (
	KeySkillLevel            = "skill_level"
	KeyProgrammingExperience = "programming_experience"
	KeyDSAKnowledge          = "dsa_knowledge"
)

// Profile is the single-owner learner state. Analysis stages receive a copy
// and never mutate it.
type Profile struct {
	SkillLevel            float64         `json:"skill_level" yaml:"skill_level" mapstructure:"skill_level"`
	ProgrammingExperience float64         `json:"programming_experience" yaml:"programming_experience" mapstructure:"programming_experience"`
	DSAKnowledge          float64         `json:"dsa_knowledge" yaml:"dsa_knowledge" mapstructure:"dsa_knowledge"`
	LearningStyle         LearningStyle   `json:"learning_style" yaml:"learning_style" mapstructure:"learning_style"`
	PreferredTopics       map[string]bool `json:"preferred_topics" yaml:"preferred_topics" mapstructure:"-"`
	MistakeHistory        []string        `json:"mistake_history" yaml:"mistake_history" mapstructure:"-"`
	SolvedProblems        map[string]bool `json:"solved_problems" yaml:"solved_problems" mapstructure:"-"`
}

// Default returns the profile a new session starts with.
func Default() Profile {
	return Profile{
		SkillLevel:            0.6,
		ProgrammingExperience: 0.7,
		DSAKnowledge:          0.5,
		LearningStyle:         StyleVisual,
		PreferredTopics:       setOf("arrays", "sorting"),
		SolvedProblems:        setOf("two_sum", "valid_parentheses"),
	}
}

// SkillFactor is the mean of the three scalars.
func (p Profile) SkillFactor() float64 {
	return (p.SkillLevel + p.ProgrammingExperience + p.DSAKnowledge) / 3
}

// Adjust stores percentage/100 into the scalar named by key.
func (p *Profile) Adjust(key string, percentage float64) error {
	if !(percentage >= 0 && percentage <= 100) {
		return fmt.Errorf("percentage %v out of range [0, 100]", percentage)
	}
	v := percentage / 100
	switch key {
	case KeySkillLevel:
		p.SkillLevel = v
	case KeyProgrammingExperience:
		p.ProgrammingExperience = v
	case KeyDSAKnowledge:
		p.DSAKnowledge = v
	default:
		return fmt.Errorf("unknown profile key %q", key)
	}
	return nil
}

// SetLearningStyle validates and stores a style.
func (p *Profile) SetLearningStyle(s string) error {
	style, err := ParseLearningStyle(s)
	if err != nil {
		return err
	}
	p.LearningStyle = style
	return nil
}

// SetPreferredTopics replaces the preferred topic set.
func (p *Profile) SetPreferredTopics(topics ...string) {
	p.PreferredTopics = setOf(topics...)
}

// AddSolved marks a problem as solved.
func (p *Profile) AddSolved(problem string) {
	if p.SolvedProblems == nil {
		p.SolvedProblems = map[string]bool{}
	}
	p.SolvedProblems[problem] = true
}

// RecordMistakes appends mistake kinds to the history.
func (p *Profile) RecordMistakes(kinds ...string) {
	p.MistakeHistory = append(p.MistakeHistory, kinds...)
}

// Clone returns a deep copy.
func (p Profile) Clone() Profile {
	c := p
	c.PreferredTopics = copySet(p.PreferredTopics)
	c.SolvedProblems = copySet(p.SolvedProblems)
	c.MistakeHistory = append([]string(nil), p.MistakeHistory...)
	return c
}

// Sorted returns the members of a set in lexical order.
func Sorted(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func setOf(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}

func copySet(m map[string]bool) map[string]bool {
	if m == nil {
		return nil
	}
	c := make(map[string]bool, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
