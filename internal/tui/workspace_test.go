package tui

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dsamentor/internal/analysis"
	"github.com/abhisek/dsamentor/internal/execsim"
	"github.com/abhisek/dsamentor/internal/lang"
	"github.com/abhisek/dsamentor/internal/llm"
	"github.com/abhisek/dsamentor/internal/logging"
	"github.com/abhisek/dsamentor/internal/profile"
	"github.com/abhisek/dsamentor/internal/review"
	"github.com/abhisek/dsamentor/internal/scoremodel"
	"github.com/abhisek/dsamentor/internal/scoring"
)

type submission struct {
	text string
	lang lang.Language
}

type fakeEngine struct {
	submits  []submission
	profiles []profile.Profile
}

func (f *fakeEngine) Submit(text string, l lang.Language) {
	f.submits = append(f.submits, submission{text, l})
}

func (f *fakeEngine) SetProfile(p profile.Profile) { f.profiles = append(f.profiles, p) }

func (f *fakeEngine) last() submission {
	if len(f.submits) == 0 {
		return submission{}
	}
	return f.submits[len(f.submits)-1]
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newTestWorkspace(t *testing.T, d Deps) (*workspace, *fakeEngine) {
	t.Helper()
	eng := &fakeEngine{}
	d.Engine = eng
	if d.Bridge == nil {
		d.Bridge = NewBridge()
	}
	t.Cleanup(d.Bridge.Close)
	w := newWorkspace(d)
	w.Init()
	return w, eng
}

func analyze(t *testing.T, code string, l lang.Language) *analysis.Snapshot {
	t.Helper()
	snap, err := analysis.NewPipeline(logging.Discard()).Analyze(analysis.Input{Text: code, Language: l, Profile: profile.Default()})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return snap
}

// next reads one bridge event or fails after a second.
func next(t *testing.T, b *Bridge) tea.Msg {
	t.Helper()
	select {
	case m := <-b.ch:
		return m
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for bridge event")
		return nil
	}
}

func TestWorkspace_InitSubmitsStarter(t *testing.T) {
	w, eng := newTestWorkspace(t, Deps{})

	if len(eng.submits) != 1 {
		t.Fatalf("got %d submits, want 1", len(eng.submits))
	}
	got := eng.last()
	if got.lang != lang.Python {
		t.Errorf("got language %q, want python", got.lang)
	}
	if !strings.Contains(got.text, "fibonacci_with_errors") {
		t.Errorf("starter buffer not submitted: %q", got.text)
	}
	if w.Title() != "Python" {
		t.Errorf("got title %q", w.Title())
	}
}

func TestWorkspace_InitialBuffer(t *testing.T) {
	_, eng := newTestWorkspace(t, Deps{Language: lang.Java, Initial: "class A {}"})
	if got := eng.last(); got.text != "class A {}" || got.lang != lang.Java {
		t.Errorf("got %+v", got)
	}
}

func TestWorkspace_TypingSubmitsChanges(t *testing.T) {
	w, eng := newTestWorkspace(t, Deps{Initial: "x = 1"})

	w.Update(keyPress('2'))
	if len(eng.submits) != 2 {
		t.Fatalf("got %d submits, want 2", len(eng.submits))
	}
	if !strings.Contains(eng.last().text, "2") {
		t.Errorf("edit not submitted: %q", eng.last().text)
	}

	// Cursor movement leaves the text alone.
	w.Update(specialKey(tea.KeyLeft))
	if len(eng.submits) != 2 {
		t.Errorf("got %d submits after cursor move, want 2", len(eng.submits))
	}
}

func TestWorkspace_LanguageCycle(t *testing.T) {
	w, eng := newTestWorkspace(t, Deps{})

	w.Update(ctrl('l'))
	if w.language != lang.Java {
		t.Fatalf("got %q, want java", w.language)
	}
	if got := eng.last(); got.lang != lang.Java || !strings.Contains(got.text, "public static void main") {
		t.Errorf("java starter not loaded: %+v", got)
	}

	w.Update(ctrl('l'))
	w.Update(ctrl('l'))
	if w.language != lang.Python {
		t.Errorf("got %q after full cycle, want python", w.language)
	}
}

func TestWorkspace_Reset(t *testing.T) {
	w, eng := newTestWorkspace(t, Deps{Initial: "print(1)"})
	w.Update(ctrl('r'))
	if got := eng.last().text; got != w.editor.Value() || strings.Contains(got, "print(1)") {
		t.Errorf("got %q after reset", got)
	}
}

func TestWorkspace_SnapshotAndRemote(t *testing.T) {
	w, _ := newTestWorkspace(t, Deps{})
	snap := analyze(t, lang.Starter(lang.Python), lang.Python)

	w.Update(snapshotMsg{Snapshot: snap})
	if w.snapshot != snap {
		t.Fatal("snapshot not stored")
	}

	preds := &scoring.Predictions{SnapshotID: snap.ID, Difficulty: &scoremodel.DifficultyPrediction{Category: "Medium"}}
	w.Update(remoteMsg{SnapshotID: "stale", Predictions: &scoring.Predictions{}})
	if w.remote != nil {
		t.Error("stale remote update applied")
	}
	w.Update(remoteMsg{SnapshotID: snap.ID, Predictions: preds})
	if w.remote != preds {
		t.Error("remote update for current snapshot dropped")
	}

	view := w.View(140, 40)
	if !strings.Contains(view, "Difficulty") {
		t.Errorf("panel missing difficulty:\n%s", view)
	}
}

func TestWorkspace_DropsStaleRunOutput(t *testing.T) {
	w, _ := newTestWorkspace(t, Deps{})
	w.runSeq = 2
	w.running = true

	w.Update(execChunkMsg{Seq: 1, Text: "old"})
	w.Update(execChunkMsg{Seq: 2, Text: "new"})
	if w.output != "new" {
		t.Errorf("got output %q, want new", w.output)
	}
	w.Update(execDoneMsg{Seq: 1})
	if !w.running {
		t.Error("stale done ended the current run")
	}
}

func TestWorkspace_Run(t *testing.T) {
	runner := execsim.NewRunner(execsim.WithDelays(execsim.Delays{}))
	w, _ := newTestWorkspace(t, Deps{Runner: runner, Language: lang.Java, Initial: "public class A { public static void main(String[] a) {} }"})

	_, cmd := w.Update(ctrl('e'))
	if cmd == nil || !w.running {
		t.Fatal("run not started")
	}
	go cmd()

	for {
		msg := next(t, w.bridge)
		w.Update(msg)
		if _, ok := msg.(execDoneMsg); ok {
			break
		}
	}
	if w.running {
		t.Error("still running after done")
	}
	if !strings.Contains(w.output, "Compilation successful") {
		t.Errorf("got output %q", w.output)
	}
}

func TestWorkspace_ReviewDisabled(t *testing.T) {
	w, _ := newTestWorkspace(t, Deps{Review: review.NewService(nil, nil)})
	w.Update(ctrl('g'))
	if w.status != "Mentor review needs an LLM provider" {
		t.Errorf("got status %q", w.status)
	}
}

func TestWorkspace_ReviewNothingYet(t *testing.T) {
	svc := review.NewService(llm.NewMockProvider(), nil)
	t.Cleanup(svc.Close)
	w, _ := newTestWorkspace(t, Deps{Review: svc})
	w.Update(ctrl('g'))
	if w.status != "Nothing to review yet" {
		t.Errorf("got status %q", w.status)
	}
}

func TestWorkspace_Review(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{
		"summary":      "Looks close.",
		"explanations": []any{},
		"next_step":    "Add a base case test.",
	}))
	svc := review.NewService(mock, nil)
	t.Cleanup(svc.Close)

	w, _ := newTestWorkspace(t, Deps{Review: svc})
	snap := analyze(t, w.editor.Value(), lang.Python)
	w.Update(snapshotMsg{Snapshot: snap})

	w.Update(ctrl('g'))
	if w.status != "Asking the mentor..." {
		t.Fatalf("got status %q", w.status)
	}

	msg := next(t, w.bridge)
	w.Update(msg)
	if w.review == nil || w.review.NextStep != "Add a base case test." {
		t.Fatalf("got review %+v", w.review)
	}
	if w.review.SnapshotID != snap.ID {
		t.Errorf("got snapshot %q, want %q", w.review.SnapshotID, snap.ID)
	}

	// A newer analysis retires the review.
	w.Update(snapshotMsg{Snapshot: analyze(t, "x = 1", lang.Python)})
	if w.review != nil {
		t.Error("review kept for a different snapshot")
	}
}

func TestWorkspace_FocusAndScroll(t *testing.T) {
	w, eng := newTestWorkspace(t, Deps{})
	w.Update(specialKey(tea.KeyTab))
	if w.focus != focusPanel {
		t.Fatal("tab did not move focus to the panel")
	}

	before := len(eng.submits)
	w.Update(keyPress('j'))
	w.Update(keyPress('j'))
	if w.scroll != 2 {
		t.Errorf("got scroll %d, want 2", w.scroll)
	}
	if len(eng.submits) != before {
		t.Error("panel keys reached the editor")
	}
	w.Update(specialKey(tea.KeyHome))
	if w.scroll != 0 {
		t.Errorf("got scroll %d after home, want 0", w.scroll)
	}

	w.Update(specialKey(tea.KeyTab))
	if w.focus != focusEditor {
		t.Error("tab did not return focus to the editor")
	}
}

func TestWorkspace_ProfileChanged(t *testing.T) {
	w, eng := newTestWorkspace(t, Deps{Profile: profile.Default()})
	p := profile.Default()
	p.SkillLevel = 0.2

	w.Update(profileChangedMsg{Profile: p})
	if len(eng.profiles) != 1 || eng.profiles[0].SkillLevel != 0.2 {
		t.Errorf("got profiles %+v", eng.profiles)
	}
	if w.profile.SkillLevel != 0.2 {
		t.Errorf("got %v, want 0.2", w.profile.SkillLevel)
	}
}

func TestWorkspace_CompactView(t *testing.T) {
	w, _ := newTestWorkspace(t, Deps{})
	if view := w.View(90, 30); view == "" {
		t.Fatal("empty compact view")
	}
}

func TestBridge_CloseReleasesListen(t *testing.T) {
	b := NewBridge()
	b.Close()
	b.Close()
	if msg := b.Listen()(); msg != nil {
		t.Errorf("got %v, want nil after close", msg)
	}
	// Posting after close must not block.
	done := make(chan struct{})
	go func() {
		for range 64 {
			b.Publish(analysis.EmptySnapshot())
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("post blocked after close")
	}
}
