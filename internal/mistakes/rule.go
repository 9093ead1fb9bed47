package mistakes

import (
	"log/slog"

	"github.com/abhisek/dsamentor/internal/features"
	"github.com/abhisek/dsamentor/internal/lang"
	"github.com/sourcegraph/conc/panics"
)

// Rule is one independent check in the battery. A rule that matches
// nothing returns nil; rules never see each other's output.
type Rule interface {
	Name() string
	Check(src *Source) []Finding
}

// RulesFor returns the battery for a language: its language-specific rules
// followed by the language-agnostic ones. Unknown languages only get the
// language-agnostic rules.
func RulesFor(l lang.Language) []Rule {
	var rules []Rule
	switch l {
	case lang.Python:
		rules = PythonRules()
	case lang.Java, lang.Cpp:
		rules = CFamilyRules(l)
	}
	return append(rules, GeneralRules()...)
}

// PythonRules returns the full Python battery in report order.
func PythonRules() []Rule {
	return []Rule{
		&AssignmentInConditionRule{},
		&IndentationRule{},
		&BracketBalanceRule{},
		&DivisionRule{},
		&IndexingRule{},
		&ReservedWordRule{},
		&RiskyImportRule{},
	}
}

// CFamilyRules returns the reduced battery for brace languages.
func CFamilyRules(l lang.Language) []Rule {
	return []Rule{
		&CAssignmentInConditionRule{},
		&MissingSemicolonRule{Language: l},
	}
}

// GeneralRules run for every language.
func GeneralRules() []Rule {
	return []Rule{
		&InfiniteLoopRule{},
		&ExcessNestingRule{},
	}
}

// Detector runs a rule battery and aggregates the result.
type Detector struct {
	logger *slog.Logger
}

// NewDetector returns a detector. A nil logger uses slog.Default().
func NewDetector(logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{logger: logger}
}

// Detect scans text with the language's battery. It never fails: a rule
// that panics is logged and contributes nothing.
func (d *Detector) Detect(text string, v features.Vector, l lang.Language) *Report {
	return d.Run(NewSource(text, l, v), RulesFor(l))
}

// Run evaluates rules against src in order.
func (d *Detector) Run(src *Source, rules []Rule) *Report {
	var findings []Finding
	for _, r := range rules {
		var out []Finding
		var pc panics.Catcher
		pc.Try(func() { out = r.Check(src) })
		if rec := pc.Recovered(); rec != nil {
			d.logger.Warn("mistake rule panicked", "rule", r.Name(), "error", rec.AsError())
			continue
		}
		for i := range out {
			if out[i].Rule == "" {
				out[i].Rule = r.Name()
			}
		}
		findings = append(findings, out...)
	}
	return Aggregate(findings)
}

// Detect runs the default detector.
func Detect(text string, v features.Vector, l lang.Language) *Report {
	return NewDetector(nil).Detect(text, v, l)
}
