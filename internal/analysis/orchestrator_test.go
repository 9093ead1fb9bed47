package analysis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/dsamentor/internal/difficulty"
	"github.com/abhisek/dsamentor/internal/features"
	"github.com/abhisek/dsamentor/internal/lang"
	"github.com/abhisek/dsamentor/internal/profile"
	"github.com/abhisek/dsamentor/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 30 * time.Millisecond

type fakeAnalyzer struct {
	mu    sync.Mutex
	calls []Input
	fail  error
	panic bool
}

func (f *fakeAnalyzer) Analyze(in Input) (*Snapshot, error) {
	f.mu.Lock()
	f.calls = append(f.calls, in)
	n := len(f.calls)
	fail, shouldPanic := f.fail, f.panic
	f.mu.Unlock()

	if shouldPanic {
		panic("stage exploded")
	}
	if fail != nil {
		return nil, fail
	}
	return &Snapshot{
		ID:         fmt.Sprintf("run-%d", n),
		Language:   in.Language,
		Features:   &features.Vector{LineCount: 1},
		Difficulty: &difficulty.Result{Score: 0.5},
	}, nil
}

func (f *fakeAnalyzer) Calls() []Input {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Input(nil), f.calls...)
}

func (f *fakeAnalyzer) set(fail error, shouldPanic bool) {
	f.mu.Lock()
	f.fail, f.panic = fail, shouldPanic
	f.mu.Unlock()
}

func newTestOrchestrator(t *testing.T, a Analyzer, opts Options) (*Orchestrator, chan *Snapshot) {
	t.Helper()
	published := make(chan *Snapshot, 16)
	opts.Debounce = testDebounce
	opts.OnPublish = func(s *Snapshot) { published <- s }
	o := New(a, opts)
	t.Cleanup(o.Close)
	return o, published
}

func waitPublish(t *testing.T, ch chan *Snapshot) *Snapshot {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for publish")
		return nil
	}
}

func assertNoPublish(t *testing.T, ch chan *Snapshot) {
	t.Helper()
	select {
	case s := <-ch:
		t.Fatalf("unexpected publish of %q", s.ID)
	case <-time.After(4 * testDebounce):
	}
}

func TestOrchestrator_CoalescesBurst(t *testing.T) {
	a := &fakeAnalyzer{}
	o, published := newTestOrchestrator(t, a, Options{})

	for i := range 5 {
		o.Submit(fmt.Sprintf("x = %d", i), lang.Python)
	}
	snap := waitPublish(t, published)
	assertNoPublish(t, published)

	calls := a.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "x = 4", calls[0].Text)
	assert.Equal(t, "run-1", snap.ID)
	assert.Equal(t, snap, o.Latest())
	assert.Equal(t, StateIdle, o.State())
}

func TestOrchestrator_BlankPublishesEmpty(t *testing.T) {
	a := &fakeAnalyzer{}
	o, published := newTestOrchestrator(t, a, Options{})

	o.Submit("   \n", lang.Python)
	snap := waitPublish(t, published)
	assert.True(t, snap.Empty())
	assertNoPublish(t, published)
	assert.Empty(t, a.Calls())
}

func TestOrchestrator_BlankCancelsPending(t *testing.T) {
	a := &fakeAnalyzer{}
	o, published := newTestOrchestrator(t, a, Options{})

	o.Submit("x = 1", lang.Python)
	o.Submit("", lang.Python)
	assert.True(t, waitPublish(t, published).Empty())
	assertNoPublish(t, published)
	assert.Empty(t, a.Calls())
}

func TestOrchestrator_FaultKeepsPrevious(t *testing.T) {
	tests := []struct {
		name  string
		fail  error
		panic bool
	}{
		{"error", errors.New("boom"), false},
		{"panic", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &fakeAnalyzer{}
			o, published := newTestOrchestrator(t, a, Options{})

			o.Submit("x = 1", lang.Python)
			first := waitPublish(t, published)

			a.set(tt.fail, tt.panic)
			o.Submit("x = 2", lang.Python)
			assertNoPublish(t, published)

			assert.Len(t, a.Calls(), 2)
			assert.Same(t, first, o.Latest())
			assert.Equal(t, StateIdle, o.State())

			a.set(nil, false)
			o.Submit("x = 3", lang.Python)
			assert.Equal(t, "run-3", waitPublish(t, published).ID)
		})
	}
}

func TestOrchestrator_SetProfileReruns(t *testing.T) {
	a := &fakeAnalyzer{}
	o, published := newTestOrchestrator(t, a, Options{})

	o.Submit("x = 1", lang.Java)
	waitPublish(t, published)

	p := profile.Default()
	require.NoError(t, p.Adjust(profile.KeySkillLevel, 35))
	o.SetProfile(p)
	waitPublish(t, published)

	calls := a.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, 0.35, calls[1].Profile.SkillLevel)
	assert.Equal(t, "x = 1", calls[1].Text)
	assert.Equal(t, lang.Java, calls[1].Language)
}

func TestOrchestrator_SetProfileOnBlankBuffer(t *testing.T) {
	a := &fakeAnalyzer{}
	o, published := newTestOrchestrator(t, a, Options{})

	o.SetProfile(profile.Default())
	assert.True(t, waitPublish(t, published).Empty())
	assert.Empty(t, a.Calls())
}

func TestOrchestrator_InitialProfile(t *testing.T) {
	a := &fakeAnalyzer{}
	p := profile.Profile{SkillLevel: 0.9}
	o, published := newTestOrchestrator(t, a, Options{Profile: &p})

	o.Submit("x = 1", lang.Python)
	waitPublish(t, published)
	assert.Equal(t, 0.9, a.Calls()[0].Profile.SkillLevel)
}

func TestOrchestrator_LatestBeforeFirstRun(t *testing.T) {
	o := New(&fakeAnalyzer{}, Options{})
	defer o.Close()
	assert.True(t, o.Latest().Empty())
	assert.Equal(t, StateIdle, o.State())
}

func TestOrchestrator_CloseIdempotent(t *testing.T) {
	o := New(&fakeAnalyzer{}, Options{})
	o.Close()
	o.Close()
	// Submitting after close must not block.
	o.Submit("x = 1", lang.Python)
}

type fakeAugmenter struct {
	reqs chan scoring.Request
	err  error
}

func (f *fakeAugmenter) Augment(_ context.Context, req scoring.Request) (*scoring.Predictions, error) {
	f.reqs <- req
	return &scoring.Predictions{SnapshotID: req.SnapshotID}, f.err
}

func TestOrchestrator_RemoteAugmentation(t *testing.T) {
	aug := &fakeAugmenter{reqs: make(chan scoring.Request, 4), err: &scoring.ErrNoResponse{}}
	updates := make(chan RemoteUpdate, 4)
	o, published := newTestOrchestrator(t, &fakeAnalyzer{}, Options{
		Augmenter: aug,
		OnRemote:  func(u RemoteUpdate) { updates <- u },
	})

	o.Submit("x = 1", lang.Python)
	snap := waitPublish(t, published)

	select {
	case req := <-aug.reqs:
		assert.Equal(t, snap.ID, req.SnapshotID)
		assert.Equal(t, 0.5, req.Difficulty)
		assert.Equal(t, len("x = 1"), req.TextLength)
		assert.Equal(t, profile.Default().SkillLevel, req.SkillLevel)
	case <-time.After(2 * time.Second):
		t.Fatal("augmenter not called")
	}

	select {
	case u := <-updates:
		assert.Equal(t, snap.ID, u.SnapshotID)
		var target *scoring.ErrNoResponse
		assert.ErrorAs(t, u.Err, &target)
	case <-time.After(2 * time.Second):
		t.Fatal("remote update not delivered")
	}
}

func TestOrchestrator_EmptySnapshotSkipsRemote(t *testing.T) {
	aug := &fakeAugmenter{reqs: make(chan scoring.Request, 4)}
	o, published := newTestOrchestrator(t, &fakeAnalyzer{}, Options{Augmenter: aug})

	o.Submit("", lang.Python)
	waitPublish(t, published)
	select {
	case <-aug.reqs:
		t.Fatal("augmenter called for empty snapshot")
	case <-time.After(4 * testDebounce):
	}
}

func TestOrchestrator_WithPipeline(t *testing.T) {
	o, published := newTestOrchestrator(t, NewPipeline(nil), Options{})

	o.Submit(lang.Starter(lang.Cpp), lang.Cpp)
	snap := waitPublish(t, published)
	require.False(t, snap.Empty())
	assert.Equal(t, lang.Cpp, snap.Language)
	assert.NotNil(t, snap.Mistakes)
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateIdle:      "idle",
		StateScheduled: "scheduled",
		StateRunning:   "running",
		StatePublished: "published",
		State(42):      "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
