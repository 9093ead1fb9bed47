// Package tui is the interactive editor: a code buffer beside a live
// analysis panel, with simulated runs, mentor reviews and a profile
// editor.
package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dsamentor/internal/execsim"
	"github.com/abhisek/dsamentor/internal/lang"
	"github.com/abhisek/dsamentor/internal/profile"
	"github.com/abhisek/dsamentor/internal/review"
	"github.com/abhisek/dsamentor/internal/ui/layout"
)

// Deps wires the editor to the rest of the program.
type Deps struct {
	Engine  Engine
	Bridge  *Bridge
	Runner  *execsim.Runner
	Review  *review.Service
	Profile profile.Profile

	// Language and Initial seed the buffer. An empty Initial loads the
	// language's starter solution.
	Language lang.Language
	Initial  string
}

// App is the root Bubble Tea model.
type App struct {
	screens *stack
	bridge  *Bridge
	width   int
	height  int
}

// NewApp creates the model with the workspace as its root screen.
func NewApp(d Deps) *App {
	if d.Bridge == nil {
		d.Bridge = NewBridge()
	}
	return &App{
		screens: newStack(newWorkspace(d)),
		bridge:  d.Bridge,
	}
}

func (m *App) Init() tea.Cmd {
	return tea.Batch(m.screens.active().Init(), m.bridge.Listen())
}

func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case snapshotMsg, remoteMsg, reviewMsg, execChunkMsg, execDoneMsg:
		// Bridge events belong to the workspace even while another
		// screen is on top.
		root := m.screens.screens[0]
		updated, cmd := root.Update(msg)
		m.screens.screens[0] = updated
		return m, tea.Batch(cmd, m.bridge.Listen())
	}

	return m, m.screens.update(msg)
}

func (m *App) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.screens.active()
	header := layout.RenderHeader(active.Title(), m.status(), m.width)
	footer := layout.RenderFooter(active.KeyHints(), m.width)
	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := active.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m *App) status() string {
	ws, ok := m.screens.screens[0].(*workspace)
	if !ok {
		return ""
	}
	if ws.running {
		return "running"
	}
	if ws.snapshot.Empty() {
		return "waiting for code"
	}
	n := 0
	if ws.snapshot.Mistakes != nil {
		n = len(ws.snapshot.Mistakes.Findings)
	}
	return fmt.Sprintf("%d issues", n)
}

// Run starts the program and blocks until the user quits.
func Run(d Deps) error {
	app := NewApp(d)
	defer app.bridge.Close()
	if _, err := tea.NewProgram(app).Run(); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}
