package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dsamentor/internal/analysis"
	"github.com/abhisek/dsamentor/internal/execsim"
	"github.com/abhisek/dsamentor/internal/profile"
	"github.com/abhisek/dsamentor/internal/review"
)

// snapshotMsg carries a freshly published analysis.
type snapshotMsg struct {
	Snapshot *analysis.Snapshot
}

// remoteMsg carries remote predictions for a snapshot.
type remoteMsg analysis.RemoteUpdate

// reviewMsg carries a finished mentor review.
type reviewMsg struct {
	Review *review.Review
	Err    error
}

// execChunkMsg is a piece of simulated execution output. Seq identifies
// the run so output from a superseded run can be dropped.
type execChunkMsg struct {
	Seq  int
	Text string
}

// execDoneMsg ends a simulated run.
type execDoneMsg struct {
	Seq    int
	Result *execsim.Result
}

// profileChangedMsg is sent by the profile screen when the learner
// leaves it.
type profileChangedMsg struct {
	Profile profile.Profile
}

// Bridge moves events from background goroutines into the program. The
// orchestrator, review service and runner post to it; the app re-arms
// Listen after every message.
type Bridge struct {
	ch   chan tea.Msg
	done chan struct{}
}

// NewBridge creates a bridge.
func NewBridge() *Bridge {
	return &Bridge{ch: make(chan tea.Msg, 32), done: make(chan struct{})}
}

// Publish is an analysis.Options.OnPublish callback.
func (b *Bridge) Publish(s *analysis.Snapshot) { b.post(snapshotMsg{Snapshot: s}) }

// Remote is an analysis.Options.OnRemote callback.
func (b *Bridge) Remote(u analysis.RemoteUpdate) { b.post(remoteMsg(u)) }

func (b *Bridge) review(r *review.Review, err error) { b.post(reviewMsg{Review: r, Err: err}) }

func (b *Bridge) exec(seq int) func(string) {
	return func(chunk string) { b.post(execChunkMsg{Seq: seq, Text: chunk}) }
}

func (b *Bridge) post(m tea.Msg) {
	select {
	case b.ch <- m:
	case <-b.done:
	}
}

// Listen waits for the next event.
func (b *Bridge) Listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case m := <-b.ch:
			return m
		case <-b.done:
			return nil
		}
	}
}

// Close releases any goroutine blocked in post or Listen.
func (b *Bridge) Close() {
	select {
	case <-b.done:
	default:
		close(b.done)
	}
}
