package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sortviz/internal/anim"
	"github.com/san-kum/sortviz/internal/config"
)

// Palette maps each bar marker to a colour.
type Palette struct {
	Default   lipgloss.Color
	Comparing lipgloss.Color
	Settled   lipgloss.Color
}

func (p Palette) For(m anim.Marker) lipgloss.Color {
	switch m {
	case anim.MarkerComparing:
		return p.Comparing
	case anim.MarkerSettled:
		return p.Settled
	default:
		return p.Default
	}
}

// With returns p with every non-empty override applied.
func (p Palette) With(c config.ColorConfig) Palette {
	if c.Default != "" {
		p.Default = lipgloss.Color(c.Default)
	}
	if c.Comparing != "" {
		p.Comparing = lipgloss.Color(c.Comparing)
	}
	if c.Settled != "" {
		p.Settled = lipgloss.Color(c.Settled)
	}
	return p
}

// Theme defines color scheme for the TUI
type Theme struct {
	Name    string
	Palette Palette
	Title   lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

// Available themes
var (
	ThemeClassic = Theme{
		Name: "classic",
		Palette: Palette{
			Default:   lipgloss.Color("#3b82f6"), // Blue
			Comparing: lipgloss.Color("#ef4444"), // Red
			Settled:   lipgloss.Color("#a855f7"), // Purple
		},
		Title:   lipgloss.Color("#60a5fa"),
		Accent:  lipgloss.Color("#c084fc"),
		Text:    lipgloss.Color("#e5e7eb"),
		Muted:   lipgloss.Color("#6b7280"),
		Success: lipgloss.Color("#22c55e"),
		Warning: lipgloss.Color("#f59e0b"),
		Error:   lipgloss.Color("#ef4444"),
	}

	ThemeRetroGreen = Theme{
		Name: "retro",
		Palette: Palette{
			Default:   lipgloss.Color("#00aa00"), // Green phosphor
			Comparing: lipgloss.Color("#ffff00"),
			Settled:   lipgloss.Color("#88ff88"),
		},
		Title:   lipgloss.Color("#00ff00"),
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Success: lipgloss.Color("#88ff88"),
		Warning: lipgloss.Color("#ffff00"),
		Error:   lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name: "ocean",
		Palette: Palette{
			Default:   lipgloss.Color("#0077be"), // Ocean blue
			Comparing: lipgloss.Color("#ffd700"),
			Settled:   lipgloss.Color("#00ff88"),
		},
		Title:   lipgloss.Color("#00a8cc"),
		Accent:  lipgloss.Color("#ffd700"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Success: lipgloss.Color("#00ff88"),
		Warning: lipgloss.Color("#ffcc00"),
		Error:   lipgloss.Color("#ff4444"),
	}

	ThemeSunset = Theme{
		Name: "sunset",
		Palette: Palette{
			Default:   lipgloss.Color("#feca57"),
			Comparing: lipgloss.Color("#ff4757"),
			Settled:   lipgloss.Color("#ff9ff3"),
		},
		Title:   lipgloss.Color("#ff6b6b"), // Coral
		Accent:  lipgloss.Color("#ff9ff3"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Success: lipgloss.Color("#5fd068"),
		Warning: lipgloss.Color("#ffc048"),
		Error:   lipgloss.Color("#ff4757"),
	}

	ThemeMinimal = Theme{
		Name: "minimal",
		Palette: Palette{
			Default:   lipgloss.Color("#888888"),
			Comparing: lipgloss.Color("#ffffff"),
			Settled:   lipgloss.Color("#0088ff"),
		},
		Title:   lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Success: lipgloss.Color("#00ff00"),
		Warning: lipgloss.Color("#ffaa00"),
		Error:   lipgloss.Color("#ff0000"),
	}

	// All available themes
	Themes = []Theme{
		ThemeClassic,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// PaletteFor resolves the configured theme and applies colour overrides.
func PaletteFor(cfg *config.Config) Palette {
	return GetTheme(cfg.Theme).Palette.With(cfg.Colors)
}
