package lang

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Language
	}{
		{"python", Python},
		{" Py ", Python},
		{"JAVA", Java},
		{"c++", Cpp},
		{"cpp", Cpp},
		{"rust", Unknown},
		{"", Unknown},
	}
	for _, tt := range tests {
		if got := Parse(tt.in); got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseSupported_Unknown(t *testing.T) {
	if _, err := ParseSupported("cobol"); err == nil {
		t.Error("expected error for unsupported language")
	}
}

func TestFromFilename(t *testing.T) {
	if got := FromFilename("solution.py"); got != Python {
		t.Errorf("got %q, want python", got)
	}
	if got := FromFilename("Main.java"); got != Java {
		t.Errorf("got %q, want java", got)
	}
	if got := FromFilename("a.cc"); got != Cpp {
		t.Errorf("got %q, want cpp", got)
	}
	if got := FromFilename("README"); got != Unknown {
		t.Errorf("got %q, want unknown", got)
	}
}

func TestNext_Cycles(t *testing.T) {
	l := Python
	seen := map[Language]bool{}
	for range Supported {
		seen[l] = true
		l = l.Next()
	}
	if l != Python {
		t.Errorf("cycle ended at %q, want python", l)
	}
	if len(seen) != len(Supported) {
		t.Errorf("visited %d languages, want %d", len(seen), len(Supported))
	}
	if Unknown.Next() != Python {
		t.Error("unknown should advance to python")
	}
}

func TestStarter_PerLanguage(t *testing.T) {
	if !strings.Contains(Starter(Python), "def binary_search_with_bugs") {
		t.Error("python starter missing demo function")
	}
	if !strings.Contains(Starter(Java), "public class DSAExample") {
		t.Error("java starter missing class")
	}
	if !strings.Contains(Starter(Cpp), "#include <iostream>") {
		t.Error("cpp starter missing include")
	}
	if Starter(Unknown) != Starter(Python) {
		t.Error("unknown should fall back to python starter")
	}
}

func TestReset_PerLanguage(t *testing.T) {
	for _, l := range Supported {
		if !strings.Contains(Reset(l), "Enter your") {
			t.Errorf("reset template for %s missing prompt", l)
		}
	}
}
