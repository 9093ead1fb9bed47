package tui

import (
	"fmt"
	"math"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dsamentor/internal/profile"
	"github.com/abhisek/dsamentor/internal/ui/components"
	"github.com/abhisek/dsamentor/internal/ui/layout"
	"github.com/abhisek/dsamentor/internal/ui/theme"
)

const profileStep = 5

var profileFields = []struct {
	key   string
	label string
}{
	{profile.KeySkillLevel, "Skill level"},
	{profile.KeyProgrammingExperience, "Programming experience"},
	{profile.KeyDSAKnowledge, "DSA knowledge"},
}

var learningStyles = []profile.LearningStyle{
	profile.StyleVisual,
	profile.StyleAuditory,
	profile.StyleKinesthetic,
	profile.StyleReading,
}

// profileScreen edits the learner profile. Changes apply when it closes.
type profileScreen struct {
	profile  profile.Profile
	selected int
}

var _ screen = (*profileScreen)(nil)

func newProfileScreen(p profile.Profile) *profileScreen {
	return &profileScreen{profile: p.Clone()}
}

func (s *profileScreen) Init() tea.Cmd { return nil }

func (s *profileScreen) Title() string { return "Learner Profile" }

func (s *profileScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "←→", Description: "Adjust"},
		{Key: "Esc", Description: "Apply"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// percent reads a scalar as a whole percentage.
func (s *profileScreen) percent(key string) float64 {
	var v float64
	switch key {
	case profile.KeySkillLevel:
		v = s.profile.SkillLevel
	case profile.KeyProgrammingExperience:
		v = s.profile.ProgrammingExperience
	case profile.KeyDSAKnowledge:
		v = s.profile.DSAKnowledge
	}
	return math.Round(v * 100)
}

func (s *profileScreen) nudge(delta float64) {
	if s.selected == len(profileFields) {
		s.cycleStyle(delta > 0)
		return
	}
	key := profileFields[s.selected].key
	next := min(max(s.percent(key)+delta, 0), 100)
	_ = s.profile.Adjust(key, next)
}

func (s *profileScreen) cycleStyle(forward bool) {
	cur := 0
	for i, st := range learningStyles {
		if st == s.profile.LearningStyle {
			cur = i
		}
	}
	if forward {
		cur = (cur + 1) % len(learningStyles)
	} else {
		cur = (cur + len(learningStyles) - 1) % len(learningStyles)
	}
	s.profile.LearningStyle = learningStyles[cur]
}

func (s *profileScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch key.String() {
	case "up", "k":
		s.selected = max(s.selected-1, 0)
	case "down", "j":
		s.selected = min(s.selected+1, len(profileFields))
	case "left", "h":
		s.nudge(-profileStep)
	case "right", "l":
		s.nudge(profileStep)
	case "esc", "enter":
		p := s.profile.Clone()
		return s, tea.Sequence(popScreen, func() tea.Msg { return profileChangedMsg{Profile: p} })
	}
	return s, nil
}

func (s *profileScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("How experienced are you?") + "\n")
	b.WriteString(theme.Hint.Render("Timeline and practice suggestions follow these values.") + "\n\n")

	meterWidth := min(width-4, 70)
	for i, f := range profileFields {
		m := components.NewMeter(f.label, s.percent(f.key)/100, meterWidth)
		m.Selected = i == s.selected
		b.WriteString(m.View() + "\n\n")
	}

	style := fmt.Sprintf("Learning style  ◂ %s ▸", s.profile.LearningStyle)
	if s.selected == len(profileFields) {
		b.WriteString(theme.Selected.Render("▸ "+style) + "\n")
	} else {
		b.WriteString(theme.Body.Render("  "+style) + "\n")
	}

	return theme.Pane.Width(min(width, meterWidth+4)).Render(b.String())
}
