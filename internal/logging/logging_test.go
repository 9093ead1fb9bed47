package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidLevel(t *testing.T) {
	if !ValidLevel("info") || ValidLevel("loud") {
		t.Error("ValidLevel mismatch")
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "INFO", "json").Info("analysis published", "snapshot_id", "abc", "findings", 3)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if rec["snapshot_id"] != "abc" || rec["msg"] != "analysis published" {
		t.Errorf("got %v", rec)
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "WARN", "text")
	l.Info("hidden")
	l.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("got %q", buf.String())
	}
}

func TestSetup_File(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "logs", "dsamentor.log")
	logger, closeFn, err := Setup(Options{Level: "DEBUG", File: path})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	logger.Debug("written to file")
	slog.Info("via default")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "written to file") || !strings.Contains(string(data), "via default") {
		t.Errorf("got %q", data)
	}
}

func TestSetup_Writer(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	_, closeFn, err := Setup(Options{Writer: &buf, File: "/should/not/be/opened"})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer closeFn()
	slog.Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("got %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing")
}
