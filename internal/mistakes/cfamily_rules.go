package mistakes

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abhisek/dsamentor/internal/lang"
)

// CAssignmentInConditionRule flags `if (x = y)` in brace languages. Only the
// parenthesized head is inspected.
type CAssignmentInConditionRule struct{}

var cConditionHead = regexp.MustCompile(`\b(?:if|while)\s*\(`)

func (r *CAssignmentInConditionRule) Name() string { return "assignment-in-condition" }

func (r *CAssignmentInConditionRule) Check(src *Source) []Finding {
	var out []Finding
	raw := src.Lines()
	for i, line := range src.MaskedLines() {
		for _, head := range cConditionHead.FindAllStringIndex(line, -1) {
			end := closingParen(line, head[1]-1)
			idx := bareAssignment(line, head[1], end)
			if idx < 0 {
				continue
			}
			code := codeOf(raw[i], line)
			fix := code
			if idx < len(code) {
				fix = code[:idx] + "==" + code[idx+1:]
			}
			out = append(out, Finding{
				Kind:         KindSyntaxError,
				Severity:     SeverityCritical,
				Message:      "Assignment (=) used instead of comparison (==)",
				Suggestion:   fmt.Sprintf("Use == for comparison in %s", src.Language.DisplayName()),
				Location:     AtLine(i + 1),
				LearningNote: "In a condition = assigns and the result is tested, which is almost never what you meant.",
				FixExample:   strings.TrimSpace(fix),
				Category:     CategorySyntax,
				AutoFixable:  true,
			})
			break
		}
	}
	return out
}

// closingParen returns the index of the ')' matching the '(' at open, or
// len(s) when the head does not close on this line.
func closingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(s)
}

// MissingSemicolonRule flags variable declarations that do not end in a
// semicolon. Declarations continued on the next line are not flagged.
type MissingSemicolonRule struct {
	Language lang.Language
}

var (
	javaDeclaration = regexp.MustCompile(`^\s*(?:(?:public|private|protected|static|final)\s+)*(?:int|long|short|byte|String|boolean|double|float|char)\s+[A-Za-z_]\w*`)
	cppDeclaration  = regexp.MustCompile(`^\s*(?:(?:static|const|constexpr|unsigned)\s+)*(?:int|long|short|bool|double|float|char|auto|std::string|string)\s+[A-Za-z_]\w*`)
)

// continuationEnd lists characters after which a statement legitimately
// carries on to the next line.
const continuationEnd = ";{},(=+-*/&|?:<>"

func (r *MissingSemicolonRule) Name() string { return "missing-semicolon" }

func (r *MissingSemicolonRule) Check(src *Source) []Finding {
	decl := javaDeclaration
	if r.Language == lang.Cpp {
		decl = cppDeclaration
	}
	var out []Finding
	for i, line := range src.MaskedLines() {
		loc := decl.FindStringIndex(line)
		if loc == nil {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if strings.IndexByte(continuationEnd, trimmed[len(trimmed)-1]) >= 0 {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(line[loc[1]:]), "(") {
			continue // method or function signature
		}
		out = append(out, Finding{
			Kind:       KindSyntaxError,
			Severity:   SeverityCritical,
			Message:    "Missing semicolon at end of statement",
			Suggestion: "Add semicolon (;) at the end of the statement",
			Location:   AtLine(i + 1),
			FixExample: strings.TrimSpace(codeOf(src.Lines()[i], line)) + ";",
			Category:   CategorySyntax,
		})
	}
	return out
}
