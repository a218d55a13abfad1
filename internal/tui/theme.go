package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sibikrish3000/scriptrun/internal/config"
)

// Theme holds every style the UI renders with.
type Theme struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Running lipgloss.Style
	Idle    lipgloss.Style

	Console      lipgloss.Style
	Field        lipgloss.Style
	FocusedField lipgloss.Style

	Help lipgloss.Style

	// Console keyword highlights, indexed by keyword class.
	Keywords [keywordClasses]lipgloss.Style
}

// ThemeFor returns the theme named by the configuration.
func ThemeFor(name string) Theme {
	if name == config.ThemeLight {
		return LightTheme()
	}
	return DarkTheme()
}

func DarkTheme() Theme {
	return Theme{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // Blue
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),

		Value: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),

		Running: lipgloss.NewStyle().
			Foreground(lipgloss.Color("76")). // Green
			Bold(true),

		Idle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")),

		Console: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Foreground(lipgloss.Color("252")),

		Field: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1),

		FocusedField: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true),

		Keywords: [keywordClasses]lipgloss.Style{
			keywordError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b6b")),
			keywordWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#ffb86c")),
			keywordSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("#69db7c")),
			keywordInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#74c0fc")),
			keywordFailure: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff8787")),
		},
	}
}

func LightTheme() Theme {
	return Theme{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("25")).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),

		Value: lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")),

		Running: lipgloss.NewStyle().
			Foreground(lipgloss.Color("28")).
			Bold(true),

		Idle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),

		Console: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("250")).
			Foreground(lipgloss.Color("235")),

		Field: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("250")).
			Padding(0, 1),

		FocusedField: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true),

		Keywords: [keywordClasses]lipgloss.Style{
			keywordError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#c92a2a")),
			keywordWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#d9480f")),
			keywordSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("#2b8a3e")),
			keywordInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#1864ab")),
			keywordFailure: lipgloss.NewStyle().Foreground(lipgloss.Color("#e03131")),
		},
	}
}
