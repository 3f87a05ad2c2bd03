package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour scheme for terminal output.
type Theme struct {
	Name     string
	Primary  lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Success  lipgloss.Color
	Warning  lipgloss.Color
	Error    lipgloss.Color
	Positive [3]int
	Negative [3]int
	Zero     [3]int
}

var (
	ThemeThermal = Theme{
		Name:     "thermal",
		Primary:  lipgloss.Color("#ff8844"),
		Accent:   lipgloss.Color("#ffdd55"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666666"),
		Success:  lipgloss.Color("#00ff88"),
		Warning:  lipgloss.Color("#ffaa00"),
		Error:    lipgloss.Color("#ff4444"),
		Positive: [3]int{255, 60, 30},
		Negative: [3]int{40, 110, 255},
		Zero:     [3]int{12, 12, 16},
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Primary:  lipgloss.Color("#0077be"),
		Accent:   lipgloss.Color("#ffd700"),
		Text:     lipgloss.Color("#e0f0ff"),
		Muted:    lipgloss.Color("#4488aa"),
		Success:  lipgloss.Color("#00ff88"),
		Warning:  lipgloss.Color("#ffcc00"),
		Error:    lipgloss.Color("#ff4444"),
		Positive: [3]int{0, 220, 200},
		Negative: [3]int{140, 60, 255},
		Zero:     [3]int{0, 26, 51},
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Primary:  lipgloss.Color("#ffffff"),
		Accent:   lipgloss.Color("#0088ff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#888888"),
		Success:  lipgloss.Color("#00ff00"),
		Warning:  lipgloss.Color("#ffaa00"),
		Error:    lipgloss.Color("#ff0000"),
		Positive: [3]int{255, 255, 255},
		Negative: [3]int{120, 120, 120},
		Zero:     [3]int{0, 0, 0},
	}

	CurrentTheme = ThemeThermal

	Themes = []Theme{
		ThemeThermal,
		ThemeOcean,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to thermal.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeThermal
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme cycles through Themes.
func NextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
