package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dsamentor/internal/ui/layout"
)

// screen is one full-window view. The app keeps them on a stack.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screen, tea.Cmd)
	View(width, height int) string
	Title() string
	KeyHints() []layout.KeyHint
}

// pushScreenMsg asks the app to open a screen on top of the current one.
type pushScreenMsg struct {
	Screen screen
}

// popScreenMsg asks the app to close the current screen.
type popScreenMsg struct{}

func pushScreen(s screen) tea.Cmd {
	return func() tea.Msg { return pushScreenMsg{Screen: s} }
}

func popScreen() tea.Msg { return popScreenMsg{} }

// stack is the screen stack. The root screen is never popped.
type stack struct {
	screens []screen
}

func newStack(root screen) *stack {
	return &stack{screens: []screen{root}}
}

func (s *stack) push(next screen) tea.Cmd {
	s.screens = append(s.screens, next)
	return next.Init()
}

func (s *stack) pop() {
	if len(s.screens) > 1 {
		s.screens = s.screens[:len(s.screens)-1]
	}
}

func (s *stack) active() screen { return s.screens[len(s.screens)-1] }

func (s *stack) depth() int { return len(s.screens) }

func (s *stack) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case pushScreenMsg:
		return s.push(msg.Screen)
	case popScreenMsg:
		s.pop()
		return nil
	}
	updated, cmd := s.active().Update(msg)
	s.screens[len(s.screens)-1] = updated
	return cmd
}
