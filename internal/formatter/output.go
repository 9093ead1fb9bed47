// Package formatter renders an analysis report for the terminal or for
// machines.
package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/dsamentor/internal/analysis"
	"github.com/abhisek/dsamentor/internal/mistakes"
	"github.com/abhisek/dsamentor/internal/review"
	"github.com/abhisek/dsamentor/internal/scoring"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ParseFormat validates an -o value.
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(s) {
	case "", FormatHuman:
		return FormatHuman, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (want human, json or yaml)", s)
}

// Report is everything one analyze invocation produced. Remote and Review
// are optional.
type Report struct {
	File     string               `json:"file,omitempty" yaml:"file,omitempty"`
	Analysis *analysis.Snapshot   `json:"analysis" yaml:"analysis"`
	Remote   *scoring.Predictions `json:"remote,omitempty" yaml:"remote,omitempty"`
	Review   *review.Review       `json:"review,omitempty" yaml:"review,omitempty"`
	Notes    []string             `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Write renders r to w in format.
func Write(w io.Writer, r *Report, format string) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, r)
	case FormatYAML:
		return writeYAML(w, r)
	case FormatHuman:
		fallthrough
	default:
		writeHuman(w, r)
	}
	return nil
}

func writeJSON(w io.Writer, r *Report) error {
	output, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func writeYAML(w io.Writer, r *Report) error {
	output, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(output))
	return err
}

func writeHuman(w io.Writer, r *Report) {
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)
	white := color.New(color.FgWhite, color.Bold)

	snap := r.Analysis
	fmt.Fprintln(w)
	if snap.Empty() {
		white.Fprintln(w, "📝 Nothing to analyze yet.")
		fmt.Fprintln(w, "   Paste or type a solution to see its analysis.")
		footer(w)
		return
	}

	title := "🧠 ANALYSIS"
	if r.File != "" {
		title += ": " + r.File
	}
	white.Fprintf(w, "%s (%s)\n\n", title, snap.Language.DisplayName())

	if d := snap.Difficulty; d != nil {
		difficultyColor(string(d.Category)).Fprintf(w, "📊 DIFFICULTY: %s (%d%%)\n", strings.ToUpper(string(d.Category)), d.Percentage)
		fmt.Fprintf(w, "   %s\n\n", d.Description)
	}

	if f := snap.Features; f != nil {
		cyan.Fprintln(w, "🔍 FEATURES:")
		fmt.Fprintf(w, "   lines %d · loops %d · conditionals %d · functions %d\n", f.LineCount, f.Loops, f.Conditionals, f.Functions)
		fmt.Fprintf(w, "   recursion %d · data structures %d · nesting depth %d\n\n", f.Recursion, f.DataStructures, f.NestingDepth)
	}

	if a := snap.Attribution; a != nil && len(a.Factors) > 0 {
		cyan.Fprintln(w, "⚖️  WHAT MAKES IT HARD:")
		for i, f := range a.Factors {
			fmt.Fprintf(w, "   %d. %s %s  %s\n", i+1, impactIcon(string(f.Impact)), f.Name, color.HiBlackString("%d%%", f.Contribution))
			fmt.Fprintf(w, "      %s\n", f.Explanation)
		}
		fmt.Fprintln(w)
	}

	if m := snap.Mistakes; m != nil {
		if len(m.Findings) == 0 {
			green.Fprintln(w, "✅ NO ISSUES FOUND")
			fmt.Fprintln(w)
		} else {
			yellow.Fprintf(w, "⚠️  ISSUES FOUND: %d (%s, quality %d%%)\n", m.TotalCount, m.OverallRisk, m.CodeQualityScore)
			for i, f := range m.Findings {
				writeFinding(w, i+1, f)
			}
		}
	}

	if t := snap.Topics; t != nil && t.Count > 0 {
		cyan.Fprintln(w, "🏷️  TOPICS:")
		for _, tag := range t.Tags {
			fmt.Fprintf(w, "   • %s (%s, %.0f%%)\n", tag.Name, tag.Tier, tag.Confidence*100)
		}
		fmt.Fprintln(w)
	}

	if tl := snap.Timeline; tl != nil {
		cyan.Fprintln(w, "⏱️  TIMELINE:")
		fmt.Fprintf(w, "   %.1f hours (~%d days) · %s\n", tl.EstimatedHours, tl.EstimatedDays, tl.Pace)
		for _, rec := range tl.Recommendations {
			fmt.Fprintf(w, "   • %s\n", rec)
		}
		fmt.Fprintln(w)
	}

	if o := snap.Optimizations; o != nil && o.TotalHints > 0 {
		green.Fprintln(w, "🚀 OPTIMIZATION HINTS:")
		for i, h := range o.Hints {
			fmt.Fprintf(w, "   %d. %s %s\n", i+1, priorityIcon(h.Impact), h.Issue)
			fmt.Fprintf(w, "      %s\n", h.Suggestion)
			if h.Example != "" {
				fmt.Fprintf(w, "      Example: %s\n", color.CyanString("%s", h.Example))
			}
		}
		fmt.Fprintln(w)
	}

	if rec := snap.Recommendations; rec != nil && len(rec.Groups) > 0 {
		cyan.Fprintln(w, "📚 PRACTICE NEXT:")
		for _, g := range rec.Groups {
			fmt.Fprintf(w, "   %s %s: %s\n", priorityIcon(string(g.Priority)), g.Category, color.HiBlackString("%s", g.Reason))
			for _, p := range g.Problems {
				fmt.Fprintf(w, "      - %s (%s, ~%d min)\n", p.Name, p.Difficulty, p.EstimatedMins)
			}
		}
		fmt.Fprintln(w)
	}

	if p := r.Remote; p != nil {
		writeRemote(w, p)
	}

	if rv := r.Review; rv != nil {
		white.Fprintln(w, "🧑‍🏫 MENTOR REVIEW:")
		fmt.Fprintln(w, wrapText(rv.Summary, 80, "   "))
		for _, e := range rv.Explanations {
			fmt.Fprintf(w, "   • %s (line %d): %s\n", e.Rule, e.Line, e.Explanation)
		}
		if rv.NextStep != "" {
			fmt.Fprintf(w, "   Next: %s\n", color.GreenString("%s", rv.NextStep))
		}
		fmt.Fprintln(w)
	}

	for _, n := range r.Notes {
		red.Fprintf(w, "❗ %s\n", n)
	}
	footer(w)
}

func writeFinding(w io.Writer, n int, f mistakes.Finding) {
	fmt.Fprintf(w, "   %d. %s %s %s\n", n, severityIcon(string(f.Severity)), severityColor(string(f.Severity)).Sprint(f.Kind), color.HiBlackString("(line %s)", f.Location))
	fmt.Fprintf(w, "      %s\n", f.Message)
	if f.Suggestion != "" {
		fmt.Fprintf(w, "      Fix: %s\n", f.Suggestion)
	}
	if f.FixExample != "" {
		fmt.Fprintf(w, "      Example: %s\n", color.YellowString("%s", f.FixExample))
	}
	if f.LearningNote != "" {
		fmt.Fprintf(w, "      Why: %s\n", f.LearningNote)
	}
	fmt.Fprintln(w)
}

func writeRemote(w io.Writer, p *scoring.Predictions) {
	color.New(color.FgMagenta, color.Bold).Fprintln(w, "🛰️  REMOTE MODEL:")
	if d := p.Difficulty; d != nil {
		fmt.Fprintf(w, "   Difficulty: %s %s\n", d.Category, color.HiBlackString("%s", d.Recommendation))
	} else if p.DifficultyErr != nil {
		fmt.Fprintf(w, "   Difficulty: %s\n", color.RedString("%s", scoring.UserMessage(p.DifficultyErr)))
	}
	if t := p.Timeline; t != nil {
		fmt.Fprintf(w, "   Timeline: %.1f hours · %s\n", t.EstimatedHours, t.Pace)
	} else if p.TimelineErr != nil {
		fmt.Fprintf(w, "   Timeline: %s\n", color.RedString("%s", scoring.UserMessage(p.TimelineErr)))
	}
	if m := p.Mistake; m != nil {
		fmt.Fprintf(w, "   Likely mistake: %s (%s, %s risk)\n", m.Label, m.Confidence, m.RiskLevel)
		fmt.Fprintf(w, "      %s\n", m.Suggestion)
	} else if p.MistakeErr != nil {
		fmt.Fprintf(w, "   Likely mistake: %s\n", color.RedString("%s", scoring.UserMessage(p.MistakeErr)))
	}
	fmt.Fprintln(w)
}

func footer(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

func difficultyColor(category string) *color.Color {
	switch strings.ToLower(category) {
	case "hard":
		return color.New(color.FgRed, color.Bold)
	case "medium":
		return color.New(color.FgYellow, color.Bold)
	case "easy":
		return color.New(color.FgGreen, color.Bold)
	default:
		return color.New(color.FgWhite, color.Bold)
	}
}

func severityColor(severity string) *color.Color {
	switch strings.ToLower(severity) {
	case "critical":
		return color.New(color.FgRed, color.Bold)
	case "high":
		return color.New(color.FgRed)
	case "medium":
		return color.New(color.FgYellow)
	case "low":
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgWhite)
	}
}

func severityIcon(severity string) string {
	switch strings.ToLower(severity) {
	case "critical":
		return "🔴"
	case "high":
		return "🟠"
	case "medium":
		return "🟡"
	case "low":
		return "🟢"
	default:
		return "⚪"
	}
}

func impactIcon(impact string) string {
	switch strings.ToLower(impact) {
	case "high":
		return "🔺"
	case "medium":
		return "🔸"
	default:
		return "▫️"
	}
}

func priorityIcon(priority string) string {
	switch strings.ToLower(priority) {
	case "high":
		return "⚡"
	case "medium":
		return "🔹"
	case "low":
		return "▫️"
	default:
		return "•"
	}
}

func wrapText(text string, width int, indent string) string {
	var result strings.Builder
	for _, line := range strings.Split(text, "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}
		current := indent
		for _, word := range words {
			switch {
			case len(current)+len(word)+1 > width && current != indent:
				result.WriteString(current + "\n")
				current = indent + word
			case current == indent:
				current += word
			default:
				current += " " + word
			}
		}
		if current != indent {
			result.WriteString(current + "\n")
		}
	}
	return strings.TrimSuffix(result.String(), "\n")
}
