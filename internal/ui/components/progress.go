package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dsamentor/internal/ui/theme"
)

// Meter is a labelled horizontal bar for a value in [0, 1]: profile
// sliders, difficulty and code quality.
type Meter struct {
	Label    string
	Value    float64
	Width    int
	Selected bool

	// Fill overrides the bar colour.
	Fill lipgloss.Style
}

// NewMeter creates a meter with the default fill.
func NewMeter(label string, value float64, width int) Meter {
	return Meter{
		Label: label,
		Value: value,
		Width: width,
		Fill:  lipgloss.NewStyle().Background(theme.Secondary),
	}
}

// View renders the meter as "label  ████░░░░  60%".
func (m Meter) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.Text)
	marker := "  "
	if m.Selected {
		labelStyle = theme.Selected
		marker = "▸ "
	}
	label := marker + labelStyle.Render(m.Label) + "  "

	const percentWidth = 6
	barWidth := max(m.Width-lipgloss.Width(label)-percentWidth, 4)
	filled := min(max(int(float64(barWidth)*m.Value), 0), barWidth)

	bar := m.Fill.Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	pct := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf(" %3d%%", int(m.Value*100+0.5)))
	return label + bar + pct
}
