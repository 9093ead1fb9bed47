package analysis

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/dsamentor/internal/lang"
	"github.com/abhisek/dsamentor/internal/profile"
	"github.com/abhisek/dsamentor/internal/scoring"
	"github.com/sourcegraph/conc/panics"
)

// DefaultDebounce is the quiet period after the last edit before a run.
const DefaultDebounce = 300 * time.Millisecond

// State is the orchestrator lifecycle.
type State int

const (
	StateIdle State = iota
	StateScheduled
	StateRunning
	StatePublished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScheduled:
		return "scheduled"
	case StateRunning:
		return "running"
	case StatePublished:
		return "published"
	}
	return "unknown"
}

// RemoteUpdate is delivered when remote predictions for a snapshot arrive.
type RemoteUpdate struct {
	SnapshotID  string
	Predictions *scoring.Predictions
	Err         error
}

// Options configures an Orchestrator.
type Options struct {
	Debounce  time.Duration
	Logger    *slog.Logger
	OnPublish func(*Snapshot)
	Profile   *profile.Profile

	// Augmenter, when set, receives every published non-empty snapshot.
	Augmenter scoring.Augmenter
	OnRemote  func(RemoteUpdate)
}

type event struct {
	text    *string
	lang    lang.Language
	profile *profile.Profile
}

type remoteJob struct {
	req scoring.Request
}

// Orchestrator re-analyzes the buffer after edits settle. Only the latest
// input is ever analyzed and runs never overlap.
type Orchestrator struct {
	analyzer Analyzer
	opts     Options
	logger   *slog.Logger

	events chan event
	remote chan remoteJob

	mu     sync.RWMutex
	state  State
	latest *Snapshot

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// New starts an orchestrator around analyzer.
func New(analyzer Analyzer, opts Options) *Orchestrator {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	o := &Orchestrator{
		analyzer: analyzer,
		opts:     opts,
		logger:   opts.Logger,
		events:   make(chan event, 64),
		latest:   EmptySnapshot(),
		ctx:      ctx,
		cancel:   cancel,
	}

	p := profile.Default()
	if opts.Profile != nil {
		p = opts.Profile.Clone()
	}

	o.wg.Add(1)
	go o.loop(p)
	if opts.Augmenter != nil {
		o.remote = make(chan remoteJob, 1)
		o.wg.Add(1)
		go o.remoteLoop()
	}
	return o
}

// Submit reports a buffer change.
func (o *Orchestrator) Submit(text string, l lang.Language) {
	o.send(event{text: &text, lang: l})
}

// SetProfile replaces the learner profile and schedules a re-run of the
// current buffer.
func (o *Orchestrator) SetProfile(p profile.Profile) {
	c := p.Clone()
	o.send(event{profile: &c})
}

func (o *Orchestrator) send(ev event) {
	select {
	case o.events <- ev:
	case <-o.ctx.Done():
	}
}

// Latest returns the most recently published snapshot.
func (o *Orchestrator) Latest() *Snapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.latest
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

// Close stops the loop, dropping any pending run, and waits for the
// workers to exit.
func (o *Orchestrator) Close() {
	o.once.Do(func() {
		o.cancel()
		o.wg.Wait()
	})
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

func (o *Orchestrator) loop(p profile.Profile) {
	defer o.wg.Done()

	in := Input{Profile: p}
	timer := time.NewTimer(o.opts.Debounce)
	timer.Stop()

	for {
		select {
		case <-o.ctx.Done():
			timer.Stop()
			return

		case ev := <-o.events:
			if ev.text != nil {
				in.Text = *ev.text
				in.Language = ev.lang
			}
			if ev.profile != nil {
				in.Profile = *ev.profile
			}
			if in.Blank() {
				timer.Stop()
				o.publish(EmptySnapshot())
				o.setState(StateIdle)
				continue
			}
			timer.Reset(o.opts.Debounce)
			o.setState(StateScheduled)

		case <-timer.C:
			o.run(in)
		}
	}
}

func (o *Orchestrator) run(in Input) {
	o.setState(StateRunning)
	defer o.setState(StateIdle)

	var snap *Snapshot
	var err error
	var pc panics.Catcher
	pc.Try(func() { snap, err = o.analyzer.Analyze(in) })
	if rec := pc.Recovered(); rec != nil {
		err = rec.AsError()
	}
	if err != nil {
		o.logger.Error("analysis failed, keeping previous snapshot",
			"language", in.Language, "error", err)
		return
	}
	if snap == nil {
		snap = EmptySnapshot()
	}

	o.publish(snap)
	o.setState(StatePublished)
	o.logger.Debug("snapshot published", "snapshot_id", snap.ID, "language", snap.Language,
		"findings", findingCount(snap))

	if o.remote != nil && !snap.Empty() {
		o.dispatchRemote(RemoteRequest(snap, in))
	}
}

func (o *Orchestrator) publish(snap *Snapshot) {
	o.mu.Lock()
	o.latest = snap
	o.mu.Unlock()
	if o.opts.OnPublish != nil {
		o.opts.OnPublish(snap)
	}
}

func (o *Orchestrator) dispatchRemote(req scoring.Request) {
	select {
	case o.remote <- remoteJob{req: req}:
	default:
		o.logger.Debug("remote scoring busy, skipping snapshot", "snapshot_id", req.SnapshotID)
	}
}

func (o *Orchestrator) remoteLoop() {
	defer o.wg.Done()
	for {
		select {
		case <-o.ctx.Done():
			return
		case job := <-o.remote:
			preds, err := o.opts.Augmenter.Augment(o.ctx, job.req)
			if err != nil {
				o.logger.Warn("remote scoring failed", "snapshot_id", job.req.SnapshotID, "error", err)
			}
			if o.ctx.Err() != nil {
				return
			}
			if o.opts.OnRemote != nil {
				o.opts.OnRemote(RemoteUpdate{SnapshotID: job.req.SnapshotID, Predictions: preds, Err: err})
			}
		}
	}
}

// RemoteRequest builds the scoring request for a published snapshot.
func RemoteRequest(snap *Snapshot, in Input) scoring.Request {
	req := scoring.Request{
		SnapshotID: snap.ID,
		TextLength: len(in.Text),
		SkillLevel: in.Profile.SkillLevel,
	}
	if snap.Features != nil {
		req.Features = *snap.Features
	}
	if snap.Difficulty != nil {
		req.Difficulty = snap.Difficulty.Score
	}
	return req
}

func findingCount(s *Snapshot) int {
	if s.Mistakes == nil {
		return 0
	}
	return s.Mistakes.TotalCount
}
