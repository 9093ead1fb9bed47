package lang

import (
	"fmt"
	"strings"
)

// Language tags a source buffer. The set is closed; anything else parses to
// Unknown and only receives language-agnostic analysis.
type Language string

const (
	Python  Language = "python"
	Java    Language = "java"
	Cpp     Language = "cpp"
	Unknown Language = "unknown"
)

// Supported lists the languages with dedicated rule sets, in display order.
var Supported = []Language{Python, Java, Cpp}

// Parse maps a user-supplied tag (case-insensitive, common aliases accepted)
// to a Language. Unrecognized tags return Unknown.
func Parse(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "python", "py", "python3":
		return Python
	case "java":
		return Java
	case "cpp", "c++", "cxx", "cc":
		return Cpp
	default:
		return Unknown
	}
}

// ParseSupported is like Parse but returns an error for unrecognized tags.
func ParseSupported(s string) (Language, error) {
	l := Parse(s)
	if l == Unknown {
		return Unknown, fmt.Errorf("unsupported language %q", s)
	}
	return l, nil
}

// FromFilename infers the language from a file extension.
func FromFilename(name string) Language {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return Unknown
	}
	switch strings.ToLower(name[i+1:]) {
	case "py":
		return Python
	case "java":
		return Java
	case "cpp", "cc", "cxx", "hpp", "h":
		return Cpp
	}
	return Unknown
}

// Next cycles through Supported. Unknown advances to the first entry.
func (l Language) Next() Language {
	for i, s := range Supported {
		if s == l {
			return Supported[(i+1)%len(Supported)]
		}
	}
	return Supported[0]
}

// IndentSignificant reports whether block structure is carried by indentation.
func (l Language) IndentSignificant() bool { return l == Python }

func (l Language) String() string { return string(l) }

// DisplayName returns a human-readable label.
func (l Language) DisplayName() string {
	switch l {
	case Python:
		return "Python"
	case Java:
		return "Java"
	case Cpp:
		return "C++"
	}
	return "Unknown"
}
