package mistakes

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/abhisek/dsamentor/internal/features"
)

// operatorPrefix holds characters that turn a following '=' into part of a
// comparison, augmented assignment or walrus operator.
const operatorPrefix = "!<>=+-*/%&|^:"

// bareAssignment returns the index of the first '=' in s[from:to] that is a
// plain assignment, or -1. An '=' inside call parentheses is a keyword
// argument and is skipped.
func bareAssignment(s string, from, to int) int {
	var calls []bool
	for i := from; i < to && i < len(s); i++ {
		switch c := s[i]; c {
		case '(':
			isCall := i > 0 && (isWordByte(s[i-1]) || s[i-1] == ']' || s[i-1] == ')')
			calls = append(calls, isCall)
		case ')':
			if len(calls) > 0 {
				calls = calls[:len(calls)-1]
			}
		case '=':
			if len(calls) > 0 && calls[len(calls)-1] {
				continue
			}
			if i > 0 && strings.IndexByte(operatorPrefix, s[i-1]) >= 0 {
				continue
			}
			if i+1 < len(s) && s[i+1] == '=' {
				continue
			}
			return i
		}
	}
	return -1
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// codeOf returns the raw line with any trailing comment removed, using the
// masked line to find where code ends.
func codeOf(raw, masked string) string {
	end := len(strings.TrimRight(masked, " \t\r"))
	if end > len(raw) {
		end = len(raw)
	}
	return raw[:end]
}

// AssignmentInConditionRule flags `if x = y:` style conditions.
type AssignmentInConditionRule struct{}

var pyConditionHead = regexp.MustCompile(`^\s*(?:if|elif|while)\b`)

func (r *AssignmentInConditionRule) Name() string { return "assignment-in-condition" }

func (r *AssignmentInConditionRule) Check(src *Source) []Finding {
	var out []Finding
	raw := src.Lines()
	for i, line := range src.MaskedLines() {
		head := pyConditionHead.FindStringIndex(line)
		if head == nil {
			continue
		}
		idx := bareAssignment(line, head[1], len(line))
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
			Message:      "Assignment (=) used instead of comparison (==) in condition",
			Suggestion:   "Use == for comparison, = for assignment",
			Location:     AtLine(i + 1),
			LearningNote: "This is the most common Python mistake. = assigns values, == compares them.",
			FixExample:   strings.TrimSpace(fix),
			Category:     CategorySyntax,
			AutoFixable:  true,
		})
	}
	return out
}

// IndentationRule checks each logical line against the indent implied by
// the line before it. After a block opener the next line must be exactly
// one step deeper; otherwise a line may stay level or dedent to a multiple
// of the step.
type IndentationRule struct{}

func (r *IndentationRule) Name() string { return "indentation" }

func (r *IndentationRule) Check(src *Source) []Finding {
	const step = features.IndentUnit

	var out []Finding
	raw := src.Lines()
	first := true
	prevIndent := 0
	prevOpens, prevContinues := false, false

	for i, masked := range src.MaskedLines() {
		trimmed := strings.TrimSpace(masked)
		if trimmed == "" || src.StartsInLiteral(i) {
			continue
		}
		actual := features.IndentWidth(raw[i])
		continuation := prevContinues

		expected := actual
		switch {
		case continuation:
		case first:
			expected = 0
		case prevOpens:
			expected = prevIndent + step
		case actual > prevIndent:
			expected = prevIndent
		case actual%step != 0:
			expected = actual / step * step
		}

		if expected != actual {
			out = append(out, Finding{
				Kind:         KindIndentationError,
				Severity:     SeverityCritical,
				Message:      fmt.Sprintf("Incorrect indentation. Expected %d, got %d", expected, actual),
				Suggestion:   fmt.Sprintf("Fix indentation to %d spaces", expected),
				Location:     AtLine(i + 1),
				LearningNote: "Python uses indentation to define code blocks. All statements at the same level must have the same indentation.",
				FixExample:   strings.Repeat(" ", expected) + strings.TrimSpace(raw[i]),
				Category:     CategorySyntax,
			})
		}

		if !continuation {
			prevIndent = actual
		}
		first = false
		last := trimmed[len(trimmed)-1]
		prevOpens = last == ':'
		prevContinues = strings.IndexByte("([{,\\", last) >= 0
	}
	return out
}

// BracketBalanceRule pairs (), [] and {} across the whole buffer.
type BracketBalanceRule struct{}

func (r *BracketBalanceRule) Name() string { return "bracket-balance" }

var (
	closerFor = map[byte]byte{'(': ')', '[': ']', '{': '}'}
	openerFor = map[byte]byte{')': '(', ']': '[', '}': '{'}
)

func (r *BracketBalanceRule) Check(src *Source) []Finding {
	type open struct {
		ch     byte
		offset int
	}
	var out []Finding
	var stack []open
	text := src.Masked

	for i := 0; i < len(text); i++ {
		c := text[i]
		if _, ok := closerFor[c]; ok {
			stack = append(stack, open{ch: c, offset: i})
			continue
		}
		want, ok := openerFor[c]
		if !ok {
			continue
		}
		var top *open
		if len(stack) > 0 {
			top = &stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		}
		if top == nil || top.ch != want {
			out = append(out, Finding{
				Kind:         KindSyntaxError,
				Severity:     SeverityCritical,
				Message:      "Mismatched or missing " + pluralBracketName(c),
				Suggestion:   "Check for matching opening/closing brackets",
				Location:     AtLine(src.LineAt(i)),
				LearningNote: "Every opening bracket must have a matching closing bracket.",
				Category:     CategorySyntax,
			})
		}
	}

	for _, o := range stack {
		out = append(out, Finding{
			Kind:       KindSyntaxError,
			Severity:   SeverityCritical,
			Message:    "Unclosed " + bracketName(o.ch),
			Suggestion: fmt.Sprintf("Add closing %c", closerFor[o.ch]),
			Location:   AtLine(src.LineAt(o.offset)),
			Category:   CategorySyntax,
		})
	}
	return out
}

func bracketName(c byte) string {
	switch c {
	case '(':
		return "parenthesis"
	case '[':
		return "bracket"
	default:
		return "brace"
	}
}

func pluralBracketName(c byte) string {
	switch c {
	case ')':
		return "parentheses"
	case ']':
		return "brackets"
	default:
		return "braces"
	}
}

// DivisionRule flags denominators that may be zero. A literal zero is
// critical; any identifier is high, whether or not it is checked against
// zero. Non-zero literals and calls are skipped.
type DivisionRule struct{}

var divisionOperand = regexp.MustCompile(`//?\s*(\d+(?:\.\d*)?|[A-Za-z_]\w*)(\s*\()?`)

// riskyDenominators are names that conventionally hold counts or
// user-supplied divisors.
var riskyDenominators = map[string]bool{
	"b": true, "n": true, "d": true, "x": true, "y": true,
	"count": true, "total": true, "size": true, "length": true,
	"divisor": true, "denominator": true, "den": true, "denom": true,
}

func (r *DivisionRule) Name() string { return "unsafe-division" }

func (r *DivisionRule) Check(src *Source) []Finding {
	var out []Finding
	for _, m := range divisionOperand.FindAllStringSubmatchIndex(src.Masked, -1) {
		if m[4] >= 0 {
			continue // call
		}
		operand := src.Masked[m[2]:m[3]]
		severity := SeverityHigh
		var message string
		switch {
		case operand[0] >= '0' && operand[0] <= '9':
			if f, err := strconv.ParseFloat(strings.TrimSuffix(operand, "."), 64); err != nil || f != 0 {
				continue
			}
			severity = SeverityCritical
			message = "Direct division by zero"
		case riskyDenominators[operand]:
			message = "Division by variable that might be zero"
		default:
			message = "Potential division by zero - add validation"
		}
		out = append(out, Finding{
			Kind:         KindRuntimeError,
			Severity:     severity,
			Message:      message,
			Suggestion:   "Add zero check before division: if denominator != 0:",
			Location:     AtLine(src.LineAt(m[0])),
			LearningNote: "Division by zero causes ZeroDivisionError. Always validate denominators.",
			FixExample:   fmt.Sprintf("if %s != 0:\n    result = a / %s\nelse:\n    result = float('inf')", operand, operand),
			Category:     CategoryLogic,
		})
	}
	return out
}

// IndexingRule flags subscripts with a constant or identifier index when the
// buffer shows no length guard. The guard test is textual: any `len(` call
// counts unless an empty list literal also appears.
type IndexingRule struct{}

var indexAccess = regexp.MustCompile(`([A-Za-z_]\w*|\)|\])\[\s*(-?\d+|[A-Za-z_]\w*)\s*\]`)

func (r *IndexingRule) Name() string { return "unchecked-indexing" }

func (r *IndexingRule) Check(src *Source) []Finding {
	if !strings.Contains(src.Masked, "[]") && strings.Contains(src.Masked, "len(") {
		return nil
	}
	var out []Finding
	for _, m := range indexAccess.FindAllStringSubmatchIndex(src.Masked, -1) {
		recv := src.Masked[m[2]:m[3]]
		if !isWordByte(recv[0]) {
			recv = "arr"
		}
		index := src.Masked[m[4]:m[5]]
		out = append(out, Finding{
			Kind:         KindIndexError,
			Severity:     SeverityHigh,
			Message:      "Array access without bounds checking",
			Suggestion:   "Check array length before accessing: if len(arr) > index:",
			Location:     AtLine(src.LineAt(m[0])),
			LearningNote: "Accessing array elements without checking bounds causes IndexError.",
			FixExample:   indexGuardExample(recv, index),
			Category:     CategorySafety,
		})
	}
	return out
}

func indexGuardExample(recv, index string) string {
	switch {
	case index == "-1":
		return fmt.Sprintf("if %s:\n    element = %s[-1]", recv, recv)
	case index[0] >= '0' && index[0] <= '9' || index[0] == '-':
		return fmt.Sprintf("if len(%s) > %s:\n    element = %s[%s]", recv, strings.TrimPrefix(index, "-"), recv, index)
	default:
		return fmt.Sprintf("if 0 <= %s < len(%s):\n    element = %s[%s]", index, recv, recv, index)
	}
}

// ReservedWordRule flags assignments whose target is a Python keyword.
type ReservedWordRule struct{}

var assignmentTarget = regexp.MustCompile(`^\s*([A-Za-z_]\w*)\s*=[^=]`)

var pythonKeywords = map[string]bool{}

func init() {
	for _, kw := range strings.Fields(`False None True and as assert async await break class
		continue def del elif else except finally for from global if import in is
		lambda nonlocal not or pass raise return try while with yield`) {
		pythonKeywords[kw] = true
	}
}

func (r *ReservedWordRule) Name() string { return "reserved-word" }

func (r *ReservedWordRule) Check(src *Source) []Finding {
	var out []Finding
	for i, line := range src.MaskedLines() {
		m := assignmentTarget.FindStringSubmatch(line + " ")
		if m == nil || !pythonKeywords[m[1]] {
			continue
		}
		name := m[1]
		out = append(out, Finding{
			Kind:         KindNameError,
			Severity:     SeverityHigh,
			Message:      fmt.Sprintf("'%s' is a reserved keyword and cannot be used as variable name", name),
			Suggestion:   fmt.Sprintf("Use a different variable name like '%s_value' or 'my_%s'", name, name),
			Location:     AtLine(i + 1),
			LearningNote: "Reserved keywords have special meaning in Python and cannot be used as variable names.",
			Category:     CategoryNaming,
		})
	}
	return out
}

// RiskyImportRule warns about third-party modules that are often missing
// from a fresh interpreter.
type RiskyImportRule struct{}

var importStatement = regexp.MustCompile(`(?m)^\s*(?:import|from)\s+([A-Za-z_]\w*)`)

// pipPackages maps an import name to the package that provides it.
var pipPackages = map[string]string{
	"numpy":      "numpy",
	"pandas":     "pandas",
	"matplotlib": "matplotlib",
	"requests":   "requests",
	"scipy":      "scipy",
	"sklearn":    "scikit-learn",
	"torch":      "torch",
	"tensorflow": "tensorflow",
}

func (r *RiskyImportRule) Name() string { return "risky-import" }

func (r *RiskyImportRule) Check(src *Source) []Finding {
	var out []Finding
	for _, m := range importStatement.FindAllStringSubmatchIndex(src.Masked, -1) {
		module := src.Masked[m[2]:m[3]]
		pkg, ok := pipPackages[module]
		if !ok {
			continue
		}
		out = append(out, Finding{
			Kind:         KindImportWarning,
			Severity:     SeverityLow,
			Message:      fmt.Sprintf("Module '%s' might not be installed", module),
			Suggestion:   fmt.Sprintf("Install with: pip install %s", pkg),
			Location:     AtLine(src.LineAt(m[2])),
			LearningNote: "External libraries need to be installed before importing.",
			Category:     CategoryDependencies,
		})
	}
	return out
}
