package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colours of a slide.
type Theme struct {
	Name       string
	Background lipgloss.Color
	Text       lipgloss.Color // plain text
	Math       lipgloss.Color // typeset expressions
	Shape      lipgloss.Color // default shape ink
	Muted      lipgloss.Color // fading drawables, hints
	Accent     lipgloss.Color
}

var (
	ThemeChalk = Theme{
		Name:       "chalk",
		Background: lipgloss.Color("#1e2b24"), // board green
		Text:       lipgloss.Color("#f4f1e8"),
		Math:       lipgloss.Color("#ffffff"),
		Shape:      lipgloss.Color("#f4f1e8"),
		Muted:      lipgloss.Color("#5d6e63"),
		Accent:     lipgloss.Color("#ffd166"),
	}

	ThemePaper = Theme{
		Name:       "paper",
		Background: lipgloss.Color("#ffffff"),
		Text:       lipgloss.Color("#111111"),
		Math:       lipgloss.Color("#000000"),
		Shape:      lipgloss.Color("#333333"),
		Muted:      lipgloss.Color("#bbbbbb"),
		Accent:     lipgloss.Color("#0066cc"),
	}

	ThemeRetro = Theme{
		Name:       "retro",
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"), // green phosphor
		Math:       lipgloss.Color("#88ff88"),
		Shape:      lipgloss.Color("#00cc00"),
		Muted:      lipgloss.Color("#005500"),
		Accent:     lipgloss.Color("#ffff00"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Background: lipgloss.Color("#001a33"),
		Text:       lipgloss.Color("#e0f0ff"),
		Math:       lipgloss.Color("#ffffff"),
		Shape:      lipgloss.Color("#00a8cc"),
		Muted:      lipgloss.Color("#4488aa"),
		Accent:     lipgloss.Color("#ffd700"),
	}

	Themes = []Theme{
		ThemeChalk,
		ThemePaper,
		ThemeRetro,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to chalk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeChalk
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
