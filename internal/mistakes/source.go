package mistakes

import (
	"sort"
	"strings"

	"github.com/abhisek/dsamentor/internal/features"
	"github.com/abhisek/dsamentor/internal/lang"
)

// Source is the shared, read-only view every rule scans.
//
// Masked has the same length and line layout as Text, but with comment
// bodies and string literal contents replaced by spaces. Rules that match
// code patterns scan Masked so keywords in prose never fire, while offsets
// and line numbers stay valid against Text.
type Source struct {
	Text     string
	Masked   string
	Language lang.Language
	Features features.Vector

	lines       []string
	maskedLines []string
	lineStarts  []int
	// inLiteral[i] is true when line i starts inside a multi-line string.
	inLiteral []bool
}

// NewSource prepares text for scanning.
func NewSource(text string, l lang.Language, v features.Vector) *Source {
	masked, inLiteral := mask(text, l)
	s := &Source{
		Text:        text,
		Masked:      masked,
		Language:    l,
		Features:    v,
		lines:       strings.Split(text, "\n"),
		maskedLines: strings.Split(masked, "\n"),
		inLiteral:   inLiteral,
	}
	s.lineStarts = append(s.lineStarts, 0)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
	return s
}

// Lines returns the raw lines of the buffer.
func (s *Source) Lines() []string { return s.lines }

// MaskedLines returns the masked lines, index-aligned with Lines.
func (s *Source) MaskedLines() []string { return s.maskedLines }

// StartsInLiteral reports whether line i (0-based) begins inside a string
// literal that opened on an earlier line.
func (s *Source) StartsInLiteral(i int) bool {
	return i >= 0 && i < len(s.inLiteral) && s.inLiteral[i]
}

// LineAt converts a byte offset into a 1-based line number.
func (s *Source) LineAt(offset int) int {
	return sort.Search(len(s.lineStarts), func(i int) bool { return s.lineStarts[i] > offset })
}

// mask blanks comments and string contents. Newlines are preserved so the
// line layout is unchanged.
func mask(text string, l lang.Language) (string, []bool) {
	b := []byte(text)
	n := len(b)
	inLiteral := []bool{false}

	blank := func(i int) {
		if b[i] != '\n' {
			b[i] = ' '
		}
	}
	markLines := func(from, to int, open bool) {
		for j := from; j < to && j < n; j++ {
			if b[j] == '\n' {
				inLiteral = append(inLiteral, open)
			}
		}
	}

	hashComments := l == lang.Python || l == lang.Unknown
	slashComments := l != lang.Python

	for i := 0; i < n; {
		c := b[i]
		switch {
		case hashComments && c == '#':
			for i < n && b[i] != '\n' {
				blank(i)
				i++
			}
		case slashComments && c == '/' && i+1 < n && b[i+1] == '/':
			for i < n && b[i] != '\n' {
				blank(i)
				i++
			}
		case slashComments && c == '/' && i+1 < n && b[i+1] == '*':
			start := i
			i += 2
			for i < n && !(b[i] == '*' && i+1 < n && b[i+1] == '/') {
				i++
			}
			end := min(i+2, n)
			for j := start; j < end; j++ {
				if b[j] == '\n' {
					inLiteral = append(inLiteral, true)
				}
				blank(j)
			}
			i = end
		case c == '"' || c == '\'':
			if l == lang.Python && i+2 < n && b[i+1] == c && b[i+2] == c {
				// Triple-quoted string: keep delimiters, blank the body.
				body := i + 3
				j := body
				for j+2 < n && !(b[j] == c && b[j+1] == c && b[j+2] == c) {
					j++
				}
				if j+2 >= n {
					j = n
				}
				markLines(body, j, true)
				for k := body; k < j; k++ {
					blank(k)
				}
				i = min(j+3, n)
				continue
			}
			j := i + 1
			for j < n && b[j] != c && b[j] != '\n' {
				if b[j] == '\\' && j+1 < n && b[j+1] != '\n' {
					blank(j)
					j++
				}
				blank(j)
				j++
			}
			i = j
			if i < n && b[i] == c {
				i++
			}
		case c == '\n':
			inLiteral = append(inLiteral, false)
			i++
		default:
			i++
		}
	}
	return string(b), inLiteral
}
