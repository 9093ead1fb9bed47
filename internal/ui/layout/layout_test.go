package layout

import "testing"

func TestSplitWidths(t *testing.T) {
	tests := []struct {
		width, editor, panel int
	}{
		{80, 80, 80},
		{109, 109, 109},
		{120, 66, 54},
		{200, 110, 90},
	}
	for _, tt := range tests {
		e, p := SplitWidths(tt.width)
		if e != tt.editor || p != tt.panel {
			t.Errorf("SplitWidths(%d) = %d, %d; want %d, %d", tt.width, e, p, tt.editor, tt.panel)
		}
	}
}

func TestClip(t *testing.T) {
	s := "a\nb\nc\nd"
	if got := Clip(s, 1, 2); got != "b\nc" {
		t.Errorf("got %q, want %q", got, "b\nc")
	}
	if got := Clip(s, 3, 5); got != "d" {
		t.Errorf("got %q, want %q", got, "d")
	}
	if got := Clip(s, 10, 2); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(79, 40) || !IsTooSmall(100, 19) {
		t.Error("expected too small")
	}
	if IsTooSmall(80, 20) {
		t.Error("80x20 should fit")
	}
}
