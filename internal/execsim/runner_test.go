package execsim

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/dsamentor/internal/analysis"
	"github.com/abhisek/dsamentor/internal/lang"
	"github.com/abhisek/dsamentor/internal/mistakes"
	"github.com/abhisek/dsamentor/internal/topics"
)

func instant() Option { return WithDelays(Delays{}) }

func TestRun_PythonScripted(t *testing.T) {
	snap := &analysis.Snapshot{
		Mistakes: mistakes.Aggregate([]mistakes.Finding{{Severity: mistakes.SeverityHigh, Message: "Possible division by zero"}}),
		Topics:   &topics.Result{Count: 2},
	}
	code := "print(fibonacci_with_errors(5))\nprint(divide_with_risk(10, 0))\n"

	res := NewRunner(instant()).Run(context.Background(), Request{Code: code, Language: lang.Python, Snapshot: snap}, nil)

	for _, want := range []string{
		"🚀 Executing code...",
		"📊 Analyzing Python code...",
		"✅ fibonacci_with_errors(5) = 5",
		"❌ ZeroDivisionError: division by zero",
		"• 1 issues detected",
		"• 2 topics identified",
		"• Code quality: 92%",
	} {
		if !strings.Contains(res.Output, want) {
			t.Errorf("output missing %q:\n%s", want, res.Output)
		}
	}
	if strings.Contains(res.Output, "IndexError") {
		t.Error("untriggered script appeared in output")
	}
	if res.Stopped {
		t.Error("run reported stopped")
	}
	if res.RunID == "" {
		t.Error("missing run id")
	}
}

func TestRun_PythonCriticalFindings(t *testing.T) {
	snap := &analysis.Snapshot{
		Mistakes: mistakes.Aggregate([]mistakes.Finding{
			{Severity: mistakes.SeverityCritical, Message: "Assignment used in condition", Location: mistakes.AtLine(26)},
			{Severity: mistakes.SeverityLow, Message: "minor"},
			{Severity: mistakes.SeverityCritical, Message: "Unbalanced brackets", Location: mistakes.MultipleLocations},
		}),
	}
	res := NewRunner(instant()).Run(context.Background(), Request{Code: "x", Language: lang.Python, Snapshot: snap}, nil)

	if !strings.Contains(res.Output, "❌ Syntax Errors Found:") {
		t.Fatalf("expected syntax error listing:\n%s", res.Output)
	}
	if !strings.Contains(res.Output, "1. Line 26: Assignment used in condition") {
		t.Errorf("missing first error:\n%s", res.Output)
	}
	if !strings.Contains(res.Output, "2. Line Multiple locations: Unbalanced brackets") {
		t.Errorf("missing second error:\n%s", res.Output)
	}
	if strings.Contains(res.Output, "minor") || strings.Contains(res.Output, "Analysis Summary") {
		t.Errorf("run continued past critical findings:\n%s", res.Output)
	}
}

func TestRun_PythonNilSnapshot(t *testing.T) {
	res := NewRunner(instant()).Run(context.Background(), Request{Code: "print(1)", Language: lang.Python}, nil)
	if !strings.Contains(res.Output, "• 0 issues detected") {
		t.Errorf("got:\n%s", res.Output)
	}
}

func TestRun_Java(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"with main", "public class A { public static void main(String[] a) {} }", "✅ Program executed successfully"},
		{"without main", "public class A {}", "❌ Error: No main method found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewRunner(instant()).Run(context.Background(), Request{Code: tt.code, Language: lang.Java}, nil)
			if !strings.Contains(res.Output, "☕ Compiling Java code...") {
				t.Errorf("missing compile step:\n%s", res.Output)
			}
			if !strings.Contains(res.Output, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, res.Output)
			}
		})
	}
}

func TestRun_Unsupported(t *testing.T) {
	res := NewRunner(instant()).Run(context.Background(), Request{Code: "int main() {}", Language: lang.Cpp}, nil)
	if !strings.Contains(res.Output, "❌ Language not supported yet: C++") {
		t.Errorf("got:\n%s", res.Output)
	}
}

func TestRun_EmitMatchesOutput(t *testing.T) {
	var chunks []string
	res := NewRunner(instant()).Run(context.Background(), Request{Code: "public static void main", Language: lang.Java}, func(s string) {
		chunks = append(chunks, s)
	})
	if got := strings.Join(chunks, ""); got != res.Output {
		t.Errorf("emitted %q, want %q", got, res.Output)
	}
}

func TestRun_StopKeepsPartialOutput(t *testing.T) {
	r := NewRunner(WithDelays(Delays{Analyze: time.Hour}))
	started := make(chan struct{})
	done := make(chan *Result, 1)

	go func() {
		done <- r.Run(context.Background(), Request{Code: "x", Language: lang.Python}, func(s string) {
			if strings.Contains(s, "Analyzing") {
				close(started)
			}
		})
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("run never started")
	}
	if !r.Running() {
		t.Error("expected a run in progress")
	}
	r.Stop()

	var res *Result
	select {
	case res = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop")
	}
	if !res.Stopped {
		t.Error("result not marked stopped")
	}
	if !strings.HasSuffix(res.Output, StopMarker) {
		t.Errorf("output does not end with stop marker:\n%s", res.Output)
	}
	if !strings.Contains(res.Output, "📊 Analyzing Python code...") {
		t.Error("partial output lost")
	}
	if strings.Contains(res.Output, "Analysis Summary") {
		t.Error("steps ran after stop")
	}
	if r.Running() {
		t.Error("runner still reports running")
	}
}

func TestRun_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := NewRunner(WithDelays(Delays{Compile: time.Hour})).Run(ctx, Request{Code: "x", Language: lang.Java}, nil)
	if !res.Stopped || !strings.HasSuffix(res.Output, StopMarker) {
		t.Errorf("got %+v", res)
	}
}

func TestStop_Idle(t *testing.T) {
	r := NewRunner()
	r.Stop()
	if r.Running() {
		t.Error("idle runner reports running")
	}
}
