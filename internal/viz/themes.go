package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the viewer palette. Teacher and Student colour the two embedding
// series; Field colours the vector-field arrows.
type Theme struct {
	Name    string
	Title   lipgloss.Color
	Field   lipgloss.Color
	Curve   lipgloss.Color
	Teacher lipgloss.Color
	Student lipgloss.Color
	Overlap lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Error   lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Title:   lipgloss.Color("#00ffff"),
		Field:   lipgloss.Color("#ff00ff"),
		Curve:   lipgloss.Color("#00ff88"),
		Teacher: lipgloss.Color("#00ccff"),
		Student: lipgloss.Color("#ff66cc"),
		Overlap: lipgloss.Color("#ffff00"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666688"),
		Error:   lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Title:   lipgloss.Color("#88ff88"),
		Field:   lipgloss.Color("#00ff00"),
		Curve:   lipgloss.Color("#00cc00"),
		Teacher: lipgloss.Color("#00ff00"),
		Student: lipgloss.Color("#ccff66"),
		Overlap: lipgloss.Color("#ffff00"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Error:   lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Title:   lipgloss.Color("#ffffff"),
		Field:   lipgloss.Color("#cccccc"),
		Curve:   lipgloss.Color("#0088ff"),
		Teacher: lipgloss.Color("#0088ff"),
		Student: lipgloss.Color("#ffaa00"),
		Overlap: lipgloss.Color("#ffffff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Error:   lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Title:   lipgloss.Color("#00a8cc"),
		Field:   lipgloss.Color("#0077be"),
		Curve:   lipgloss.Color("#00ff88"),
		Teacher: lipgloss.Color("#00a8cc"),
		Student: lipgloss.Color("#ffd700"),
		Overlap: lipgloss.Color("#ffffff"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Error:   lipgloss.Color("#ff4444"),
	}

	CurrentTheme = ThemeCyberpunk

	Themes = []Theme{ThemeCyberpunk, ThemeRetroGreen, ThemeMinimal, ThemeOcean}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
