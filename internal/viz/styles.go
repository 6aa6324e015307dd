package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	White  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	Dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	Dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	Green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	Yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	Red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))
)

// ProgressBar renders a thin bar filled to percent.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	filled = max(0, min(filled, width))
	return Cyan.Render(strings.Repeat("━", filled)) + Dimmer.Render(strings.Repeat("─", width-filled))
}

// Separator is a centred diamond rule.
func Separator(width int) string {
	if width < 8 {
		return Dim.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return Dim.Render(left + " ◆ " + right)
}
