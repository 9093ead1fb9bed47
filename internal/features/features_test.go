package features

import (
	"strings"
	"testing"

	"github.com/abhisek/dsamentor/internal/lang"
	"github.com/stretchr/testify/assert"
)

func TestNestingDepth_TwelveSpacesIsThree(t *testing.T) {
	text := "def f():\n    if x:\n        for i in y:\n            pass\n"
	if got := NestingDepth(text, 4); got != 3 {
		t.Errorf("got depth %d, want 3", got)
	}
}

func TestNestingDepth_IgnoresBlankLines(t *testing.T) {
	text := "x = 1\n                    \ny = 2\n"
	if got := NestingDepth(text, 4); got != 0 {
		t.Errorf("got depth %d, want 0 (whitespace-only line must not count)", got)
	}
}

func TestNestingDepth_Tabs(t *testing.T) {
	if got := NestingDepth("\t\tx = 1", 4); got != 2 {
		t.Errorf("got depth %d, want 2", got)
	}
}

func TestLineCount_SkipsBlank(t *testing.T) {
	assert.Equal(t, 2, LineCount("a\n\n   \nb\n"))
	assert.Equal(t, 0, LineCount(""))
}

func TestExtract_Python(t *testing.T) {
	text := strings.Join([]string{
		"def fib(n):",
		"    if n <= 1:",
		"        return n",
		"    else:",
		"        return fib(n - 1) + fib(n - 2)",
		"",
		"for i in range(3):",
		"    seen = set()",
		"    while seen:",
		"        pass",
	}, "\n")

	v := Extract(text, lang.Python)
	assert.Equal(t, 9, v.LineCount)
	assert.Equal(t, 2, v.Loops)
	assert.Equal(t, 2, v.Conditionals)
	assert.Equal(t, 1, v.Functions)
	assert.Equal(t, 1, v.Recursion)
	assert.Equal(t, 1, v.DataStructures)
	assert.Equal(t, 2, v.NestingDepth)
	assert.InDelta(t, 2*0.15+2*0.12+0.25+2*0.20, v.EstimatedDifficulty, 1e-9)
}

func TestExtract_Java(t *testing.T) {
	text := `public class A {
    public static int sum(int[] xs) {
        int s = 0;
        for (int x : xs) {
            if (x > 0) {
                s += x;
            }
        }
        return s;
    }
}`
	v := Extract(text, lang.Java)
	assert.Equal(t, 1, v.Loops)
	assert.Equal(t, 1, v.Conditionals)
	assert.GreaterOrEqual(t, v.Functions, 1)
	assert.Equal(t, 0, v.Recursion)
	assert.Equal(t, 4, v.NestingDepth)
}

func TestExtract_CppCountsFunctions(t *testing.T) {
	v := Extract(lang.Starter(lang.Cpp), lang.Cpp)
	assert.Equal(t, 2, v.Functions)
	assert.Equal(t, 3, v.Loops)
}

func TestExtract_UnknownLanguage(t *testing.T) {
	text := "for x in y:\n    if x:\n        return f(x)\n"
	v := Extract(text, lang.Unknown)
	assert.Zero(t, v.Loops)
	assert.Zero(t, v.Conditionals)
	assert.Zero(t, v.Functions)
	assert.Zero(t, v.Recursion)
	assert.Zero(t, v.DataStructures)
	assert.Equal(t, 2, v.NestingDepth)
	assert.Equal(t, 3, v.LineCount)
}

func TestEstimateDifficulty_Clamped(t *testing.T) {
	tests := []struct {
		name string
		v    Vector
	}{
		{"zero", Vector{}},
		{"saturated", Vector{Loops: 40, Conditionals: 40, Recursion: 10, NestingDepth: 9}},
		{"negative counts", Vector{Loops: -5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := EstimateDifficulty(tt.v)
			assert.GreaterOrEqual(t, d, 0.0)
			assert.LessOrEqual(t, d, 1.0)
		})
	}
}

func TestExtract_Deterministic(t *testing.T) {
	text := lang.Starter(lang.Python)
	assert.Equal(t, Extract(text, lang.Python), Extract(text, lang.Python))
}
