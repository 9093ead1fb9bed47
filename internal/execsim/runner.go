// Package execsim simulates running a solution. Nothing is compiled or
// executed: the runner replays a scripted transcript derived from the
// code and its latest analysis, one step at a time, and can be stopped
// between steps.
package execsim

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/dsamentor/internal/analysis"
	"github.com/abhisek/dsamentor/internal/lang"
	"github.com/google/uuid"
)

// StopMarker is appended to the output of a run that was stopped.
const StopMarker = "\n\n⏹️ Execution stopped by user"

// Delays are the pauses between scripted steps.
type Delays struct {
	Analyze time.Duration `json:"analyze" yaml:"analyze"`
	Compile time.Duration `json:"compile" yaml:"compile"`
	Execute time.Duration `json:"execute" yaml:"execute"`
}

// DefaultDelays mirror how long a real run feels.
func DefaultDelays() Delays {
	return Delays{
		Analyze: 1500 * time.Millisecond,
		Compile: 2000 * time.Millisecond,
		Execute: 1000 * time.Millisecond,
	}
}

// Request is one run.
type Request struct {
	Code     string
	Language lang.Language

	// Snapshot is the analysis of Code. A nil snapshot is treated as
	// having no findings.
	Snapshot *analysis.Snapshot
}

// Result is the transcript of a finished run.
type Result struct {
	RunID   string        `json:"run_id" yaml:"run_id"`
	Output  string        `json:"output" yaml:"output"`
	Stopped bool          `json:"stopped" yaml:"stopped"`
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
}

// Runner plays one run at a time.
type Runner struct {
	delays Delays
	logger *slog.Logger

	mu     sync.Mutex
	active *activeRun
}

type activeRun struct {
	cancel context.CancelFunc
}

// Option configures a Runner.
type Option func(*Runner)

// WithDelays overrides DefaultDelays.
func WithDelays(d Delays) Option {
	return func(r *Runner) { r.delays = d }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// NewRunner creates a runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{delays: DefaultDelays(), logger: slog.Default()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run plays the transcript for req, calling emit with each chunk of
// output as it is produced. It returns when the transcript ends or when
// the run is stopped through Stop or ctx. A stopped run keeps the output
// produced so far and ends with StopMarker. Starting a run stops the
// previous one.
func (r *Runner) Run(ctx context.Context, req Request, emit func(string)) *Result {
	ctx, cancel := context.WithCancel(ctx)
	run := &activeRun{cancel: cancel}
	r.mu.Lock()
	if r.active != nil {
		r.active.cancel()
	}
	r.active = run
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		if r.active == run {
			r.active = nil
		}
		r.mu.Unlock()
		cancel()
	}()

	start := time.Now()
	t := &transcript{ctx: ctx, emit: emit}
	res := &Result{RunID: uuid.NewString()}
	log := r.logger.With("run_id", res.RunID, "language", req.Language)
	log.Debug("simulated run started")

	t.write("🚀 Executing code...\n")
	switch req.Language {
	case lang.Python:
		r.python(t, req)
	case lang.Java:
		r.java(t, req)
	default:
		t.write(fmt.Sprintf("❌ Language not supported yet: %s\n", req.Language.DisplayName()))
	}

	if t.stopped() {
		t.out.WriteString(StopMarker)
		if emit != nil {
			emit(StopMarker)
		}
		res.Stopped = true
	}
	res.Output = t.out.String()
	res.Elapsed = time.Since(start)
	log.Debug("simulated run finished", "stopped", res.Stopped, "elapsed", res.Elapsed)
	return res
}

// Stop ends the current run at the next step boundary. It is a no-op when
// nothing is running.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active != nil {
		r.active.cancel()
	}
}

// Running reports whether a run is in progress.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active != nil
}

func (r *Runner) python(t *transcript, req Request) {
	t.write("📊 Analyzing Python code...\n")

	snap := req.Snapshot
	if snap != nil && snap.Mistakes != nil {
		if critical := snap.Mistakes.Critical(); len(critical) > 0 {
			t.write("\n❌ Syntax Errors Found:\n")
			for i, f := range critical {
				t.write(fmt.Sprintf("%d. Line %s: %s\n", i+1, f.Location, f.Message))
			}
			return
		}
	}

	if !t.wait(r.delays.Analyze) {
		return
	}
	for _, s := range pythonScripts {
		if strings.Contains(req.Code, s.trigger) {
			t.write(s.output)
		}
	}

	var issues, topicCount, quality int
	if snap != nil && snap.Mistakes != nil {
		issues = snap.Mistakes.TotalCount
		quality = snap.Mistakes.CodeQualityScore
	}
	if snap != nil && snap.Topics != nil {
		topicCount = snap.Topics.Count
	}
	t.write("\n📈 Analysis Summary:\n")
	t.write(fmt.Sprintf("• %d issues detected\n", issues))
	t.write(fmt.Sprintf("• %d topics identified\n", topicCount))
	t.write(fmt.Sprintf("• Code quality: %d%%\n", quality))
}

func (r *Runner) java(t *transcript, req Request) {
	t.write("☕ Compiling Java code...\n")
	if !t.wait(r.delays.Compile) {
		return
	}
	if !strings.Contains(req.Code, "public static void main") {
		t.write("❌ Error: No main method found\n")
		return
	}
	t.write("✅ Compilation successful\n")
	t.write("🚀 Executing...\n")
	if !t.wait(r.delays.Execute) {
		return
	}
	t.write("✅ Program executed successfully\n")
}

// pythonScripts are the canned results for calls in the demo templates.
var pythonScripts = []struct {
	trigger string
	output  string
}{
	{"fibonacci_with_errors(5)", "✅ fibonacci_with_errors(5) = 5\n"},
	{"binary_search_with_bugs", "❌ SyntaxError: invalid syntax (line 26)\n   if arr[mid] = target:\n                ^\n"},
	{"divide_with_risk(10, 0)", "❌ ZeroDivisionError: division by zero\n"},
	{"process_empty_list([])", "❌ IndexError: list index out of range\n"},
}

// transcript accumulates output and swallows writes once the run is
// stopped.
type transcript struct {
	ctx  context.Context
	emit func(string)
	out  strings.Builder
}

func (t *transcript) stopped() bool { return t.ctx.Err() != nil }

func (t *transcript) write(s string) {
	if t.stopped() {
		return
	}
	t.out.WriteString(s)
	if t.emit != nil {
		t.emit(s)
	}
}

// wait pauses for d and reports whether the run should continue.
func (t *transcript) wait(d time.Duration) bool {
	if d <= 0 {
		return !t.stopped()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-t.ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
