package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dsamentor/internal/analysis"
	"github.com/abhisek/dsamentor/internal/mistakes"
	"github.com/abhisek/dsamentor/internal/review"
	"github.com/abhisek/dsamentor/internal/scoring"
	"github.com/abhisek/dsamentor/internal/ui/theme"
)

// panelContent is everything the right-hand pane shows.
type panelContent struct {
	Snapshot *analysis.Snapshot
	Remote   *scoring.Predictions
	Review   *review.Review
	Output   string
	Running  bool
}

// renderPanel renders the panel body at the given inner width. The
// result is unclipped; the workspace scrolls it.
func renderPanel(c panelContent, width int) string {
	var b strings.Builder
	wrap := lipgloss.NewStyle().Width(max(width, 10))

	line := func(s string) { b.WriteString(wrap.Render(s) + "\n") }
	section := func(s string) { b.WriteString(theme.Section.Render(s) + "\n") }
	dim := func(s string) string { return theme.Hint.Render(s) }

	if c.Output != "" || c.Running {
		title := "▶ OUTPUT"
		if c.Running {
			title += " (running)"
		}
		section(title)
		line(strings.TrimRight(c.Output, "\n"))
		b.WriteString("\n")
	}

	snap := c.Snapshot
	if snap.Empty() {
		line(theme.Body.Render("📝 Start typing to see an analysis of your solution."))
		return strings.TrimRight(b.String(), "\n")
	}

	if d := snap.Difficulty; d != nil {
		section("📊 Difficulty")
		line(theme.Severity(string(d.Category)).Render(fmt.Sprintf("%s · %d%%", d.Category, d.Percentage)))
		line(dim(d.Description))
		b.WriteString("\n")
	}

	if a := snap.Attribution; a != nil && len(a.Factors) > 0 {
		section("⚖️  What makes it hard")
		for _, f := range a.Factors {
			line(fmt.Sprintf("• %s %s", f.Name, dim(fmt.Sprintf("%d%% %s", f.Contribution, f.Impact))))
		}
		b.WriteString("\n")
	}

	if m := snap.Mistakes; m != nil {
		if len(m.Findings) == 0 {
			section("✅ No issues found")
		} else {
			section(fmt.Sprintf("⚠️  Issues · %d · quality %d%%", m.TotalCount, m.CodeQualityScore))
			for _, f := range m.Findings {
				renderFinding(&b, wrap, f)
			}
		}
		b.WriteString("\n")
	}

	if t := snap.Topics; t != nil && t.Count > 0 {
		section("🏷️  Topics")
		names := make([]string, 0, len(t.Tags))
		for _, tag := range t.Tags {
			names = append(names, fmt.Sprintf("%s (%.0f%%)", tag.Name, tag.Confidence*100))
		}
		line(strings.Join(names, ", "))
		b.WriteString("\n")
	}

	if tl := snap.Timeline; tl != nil {
		section("⏱️  Timeline")
		line(fmt.Sprintf("%.1f hours (~%d days) · %s", tl.EstimatedHours, tl.EstimatedDays, tl.Pace))
		for _, rec := range tl.Recommendations {
			line(dim("• " + rec))
		}
		b.WriteString("\n")
	}

	if o := snap.Optimizations; o != nil && o.TotalHints > 0 {
		section("🚀 Optimization hints")
		for _, h := range o.Hints {
			line(fmt.Sprintf("• %s", h.Issue))
			line(dim("  " + h.Suggestion))
		}
		b.WriteString("\n")
	}

	if rec := snap.Recommendations; rec != nil && len(rec.Groups) > 0 {
		section("📚 Practice next")
		for _, g := range rec.Groups {
			names := make([]string, 0, len(g.Problems))
			for _, p := range g.Problems {
				names = append(names, p.Name)
			}
			line(fmt.Sprintf("%s: %s", g.Category, strings.Join(names, ", ")))
		}
		b.WriteString("\n")
	}

	if p := c.Remote; p != nil {
		section("🛰️  Remote model")
		switch {
		case p.Difficulty != nil:
			line("Difficulty: " + p.Difficulty.Category)
		case p.DifficultyErr != nil:
			line(theme.Severity("high").Render(scoring.UserMessage(p.DifficultyErr)))
		}
		if p.Mistake != nil {
			line(fmt.Sprintf("Likely mistake: %s (%s)", p.Mistake.Label, p.Mistake.Confidence))
		}
		b.WriteString("\n")
	}

	if rv := c.Review; rv != nil {
		section("🧑‍🏫 Mentor review")
		line(rv.Summary)
		for _, e := range rv.Explanations {
			line(fmt.Sprintf("• %s (line %d): %s", e.Rule, e.Line, e.Explanation))
		}
		if rv.NextStep != "" {
			line(theme.Selected.Render("Next: ") + rv.NextStep)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderFinding(b *strings.Builder, wrap lipgloss.Style, f mistakes.Finding) {
	sev := string(f.Severity)
	head := fmt.Sprintf("%s %s %s", theme.SeverityIcon(sev),
		theme.Severity(sev).Render(string(f.Kind)),
		theme.Hint.Render("line "+f.Location.String()))
	b.WriteString(wrap.Render(head) + "\n")
	b.WriteString(wrap.Render("  "+f.Message) + "\n")
	if f.Suggestion != "" {
		b.WriteString(wrap.Render(theme.Hint.Render("  Fix: "+f.Suggestion)) + "\n")
	}
}
