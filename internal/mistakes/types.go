package mistakes

import "fmt"

// Kind tags what sort of problem a finding describes.
type Kind string

const (
	KindSyntaxError        Kind = "Syntax Error"
	KindIndentationError   Kind = "Indentation Error"
	KindRuntimeError       Kind = "Runtime Error"
	KindIndexError         Kind = "Index Error"
	KindNameError          Kind = "Name Error"
	KindImportWarning      Kind = "Import Warning"
	KindLogicError         Kind = "Logic Error"
	KindPerformanceWarning Kind = "Performance Warning"
)

// Severity ranks a finding.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Weight is the severity's contribution to the risk score.
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 5
	case SeverityHigh:
		return 4
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// Valid reports whether s is one of the four known severities.
func (s Severity) Valid() bool { return s.Weight() > 0 }

// Display groupings.
const (
	CategorySyntax       = "Syntax"
	CategoryLogic        = "Logic"
	CategorySafety       = "Safety"
	CategoryNaming       = "Naming"
	CategoryDependencies = "Dependencies"
	CategoryPerformance  = "Performance"
)

// Location points at a 1-based line, or at several places at once.
type Location struct {
	Line     int  `json:"line,omitempty" yaml:"line,omitempty"`
	Multiple bool `json:"multiple,omitempty" yaml:"multiple,omitempty"`
}

// AtLine returns a single-line location.
func AtLine(n int) Location { return Location{Line: n} }

// MultipleLocations marks a finding that is not tied to one line.
var MultipleLocations = Location{Multiple: true}

func (l Location) String() string {
	switch {
	case l.Multiple:
		return "Multiple locations"
	case l.Line > 0:
		return fmt.Sprintf("%d", l.Line)
	default:
		return "Unknown"
	}
}

// Finding is one detected issue. Findings are produced fresh on every run
// and carry no identity across runs.
type Finding struct {
	Rule         string   `json:"rule" yaml:"rule"`
	Kind         Kind     `json:"type" yaml:"type"`
	Severity     Severity `json:"severity" yaml:"severity"`
	Message      string   `json:"message" yaml:"message"`
	Suggestion   string   `json:"suggestion" yaml:"suggestion"`
	Location     Location `json:"location" yaml:"location"`
	LearningNote string   `json:"learning_context,omitempty" yaml:"learning_context,omitempty"`
	FixExample   string   `json:"fix_example,omitempty" yaml:"fix_example,omitempty"`
	Category     string   `json:"category" yaml:"category"`
	AutoFixable  bool     `json:"auto_fix,omitempty" yaml:"auto_fix,omitempty"`
}
