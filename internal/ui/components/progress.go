package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepengine/internal/ui/theme"
)

// ProgressBar displays a horizontal bar for a 0..1 fraction.
type ProgressBar struct {
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// MasteryBar renders a 0..100 mastery level as a bar with its value.
func MasteryBar(level float64, width int) string {
	return NewProgressBar(level/100, true, width).View()
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 5 // " 100"
	}

	barWidth := p.Width - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth)*p.Percent + 0.5)
	filled = max(0, min(barWidth, filled))
	empty := barWidth - filled

	result := theme.ProgressFilled.Render(strings.Repeat("█", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat("░", empty))

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf(" %3.0f", p.Percent*100))
	}

	return result
}
