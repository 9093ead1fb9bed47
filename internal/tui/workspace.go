package tui

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dsamentor/internal/analysis"
	"github.com/abhisek/dsamentor/internal/execsim"
	"github.com/abhisek/dsamentor/internal/lang"
	"github.com/abhisek/dsamentor/internal/profile"
	"github.com/abhisek/dsamentor/internal/review"
	"github.com/abhisek/dsamentor/internal/scoring"
	"github.com/abhisek/dsamentor/internal/ui/layout"
	"github.com/abhisek/dsamentor/internal/ui/theme"
)

// Engine receives editor contents and profile changes. The analysis
// orchestrator satisfies it.
type Engine interface {
	Submit(text string, l lang.Language)
	SetProfile(p profile.Profile)
}

type focus int

const (
	focusEditor focus = iota
	focusPanel
)

const scrollStep = 5

// workspace is the root screen: code editor on the left, live analysis on
// the right.
type workspace struct {
	engine   Engine
	bridge   *Bridge
	runner   *execsim.Runner
	reviewer *review.Service

	editor   textarea.Model
	language lang.Language
	profile  profile.Profile
	lastSent string

	snapshot *analysis.Snapshot
	remote   *scoring.Predictions
	review   *review.Review
	output   string
	running  bool
	runSeq   int
	status   string

	focus  focus
	scroll int
}

var _ screen = (*workspace)(nil)

func newWorkspace(d Deps) *workspace {
	ed := textarea.New()
	ed.ShowLineNumbers = true
	ed.CharLimit = 0
	ed.MaxHeight = 0
	ed.Placeholder = "Enter your code here..."

	l := d.Language
	if l == lang.Unknown || l == "" {
		l = lang.Python
	}
	text := d.Initial
	if text == "" {
		text = lang.Starter(l)
	}
	ed.SetValue(text)

	return &workspace{
		engine:   d.Engine,
		bridge:   d.Bridge,
		runner:   d.Runner,
		reviewer: d.Review,
		editor:   ed,
		language: l,
		profile:  d.Profile.Clone(),
		snapshot: analysis.EmptySnapshot(),
	}
}

func (w *workspace) Init() tea.Cmd {
	w.submit()
	return w.editor.Focus()
}

func (w *workspace) Title() string {
	return w.language.DisplayName()
}

func (w *workspace) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Ctrl+E", Description: "Run"},
		{Key: "Ctrl+X", Description: "Stop"},
		{Key: "Ctrl+L", Description: "Language"},
		{Key: "Ctrl+R", Description: "Reset"},
		{Key: "Ctrl+G", Description: "Review"},
		{Key: "Ctrl+P", Description: "Profile"},
		{Key: "Tab", Description: "Focus"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// submit hands the buffer to the engine when it differs from what was
// last sent.
func (w *workspace) submit() {
	text := w.editor.Value()
	if text == w.lastSent {
		return
	}
	w.lastSent = text
	if w.engine != nil {
		w.engine.Submit(text, w.language)
	}
}

func (w *workspace) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		w.snapshot = msg.Snapshot
		if msg.Snapshot.Empty() || (w.review != nil && w.review.SnapshotID != msg.Snapshot.ID) {
			w.review = nil
		}
		w.remote = nil
		return w, nil

	case remoteMsg:
		if w.snapshot != nil && msg.SnapshotID == w.snapshot.ID {
			w.remote = msg.Predictions
		}
		return w, nil

	case reviewMsg:
		if msg.Err != nil {
			w.status = "Mentor review failed"
			return w, nil
		}
		w.review = msg.Review
		w.status = ""
		return w, nil

	case execChunkMsg:
		if msg.Seq == w.runSeq {
			w.output += msg.Text
		}
		return w, nil

	case execDoneMsg:
		if msg.Seq == w.runSeq {
			w.running = false
			if msg.Result != nil {
				w.output = msg.Result.Output
			}
		}
		return w, nil

	case profileChangedMsg:
		w.profile = msg.Profile.Clone()
		if w.engine != nil {
			w.engine.SetProfile(w.profile)
		}
		return w, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+e":
			return w, w.run()
		case "ctrl+x":
			if w.runner != nil {
				w.runner.Stop()
			}
			return w, nil
		case "ctrl+l":
			w.language = w.language.Next()
			w.editor.SetValue(lang.Starter(w.language))
			w.output = ""
			w.submit()
			return w, nil
		case "ctrl+r":
			w.editor.SetValue(lang.Reset(w.language))
			w.output = ""
			w.submit()
			return w, nil
		case "ctrl+g":
			w.requestReview()
			return w, nil
		case "ctrl+p":
			return w, pushScreen(newProfileScreen(w.profile))
		case "tab":
			if w.focus == focusEditor {
				w.focus = focusPanel
				w.editor.Blur()
				return w, nil
			}
			w.focus = focusEditor
			return w, w.editor.Focus()
		}

		if w.focus == focusPanel {
			switch msg.String() {
			case "up", "k":
				w.scroll = max(w.scroll-1, 0)
			case "down", "j":
				w.scroll++
			case "pgup":
				w.scroll = max(w.scroll-scrollStep, 0)
			case "pgdown":
				w.scroll += scrollStep
			case "home":
				w.scroll = 0
			}
			return w, nil
		}
	}

	var cmd tea.Cmd
	w.editor, cmd = w.editor.Update(msg)
	w.submit()
	return w, cmd
}

// run starts a simulated execution of the buffer. Output streams through
// the bridge so chunks and the final result arrive in order.
func (w *workspace) run() tea.Cmd {
	if w.runner == nil || w.bridge == nil {
		return nil
	}
	w.runSeq++
	w.running = true
	w.output = ""
	w.scroll = 0

	seq := w.runSeq
	req := execsim.Request{Code: w.editor.Value(), Language: w.language, Snapshot: w.snapshot}
	runner, bridge := w.runner, w.bridge
	return func() tea.Msg {
		res := runner.Run(context.Background(), req, bridge.exec(seq))
		bridge.post(execDoneMsg{Seq: seq, Result: res})
		return nil
	}
}

func (w *workspace) requestReview() {
	if w.reviewer == nil || !w.reviewer.Enabled() {
		w.status = "Mentor review needs an LLM provider"
		return
	}
	req := review.FromSnapshot(w.editor.Value(), w.snapshot)
	if req == nil {
		w.status = "Nothing to review yet"
		return
	}
	if !w.reviewer.Request(context.Background(), req, w.bridge.review) {
		w.status = "Mentor review busy, try again"
		return
	}
	w.status = "Asking the mentor..."
}

func (w *workspace) View(width, height int) string {
	editorWidth, panelWidth := layout.SplitWidths(width)
	editorHeight, panelHeight := height, height
	if layout.IsCompactWidth(width) {
		editorHeight = height / 2
		panelHeight = height - editorHeight
	}

	edStyle, panelStyle := theme.FocusedPane, theme.Pane
	if w.focus == focusPanel {
		edStyle, panelStyle = theme.Pane, theme.FocusedPane
	}

	// Borders take two rows and two columns; padding two more columns.
	w.editor.SetWidth(max(editorWidth-4, 10))
	w.editor.SetHeight(max(editorHeight-2, 1))
	left := edStyle.Width(editorWidth).Height(editorHeight).Render(w.editor.View())

	innerWidth := max(panelWidth-4, 10)
	innerHeight := max(panelHeight-2, 1)
	body := renderPanel(panelContent{
		Snapshot: w.snapshot,
		Remote:   w.remote,
		Review:   w.review,
		Output:   w.output,
		Running:  w.running,
	}, innerWidth)
	if w.status != "" {
		body = theme.Hint.Render(w.status) + "\n\n" + body
	}
	maxScroll := max(strings.Count(body, "\n")+1-innerHeight, 0)
	w.scroll = min(w.scroll, maxScroll)
	right := panelStyle.Width(panelWidth).Height(panelHeight).Render(layout.Clip(body, w.scroll, innerHeight))

	if layout.IsCompactWidth(width) {
		return lipgloss.JoinVertical(lipgloss.Left, left, right)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}
