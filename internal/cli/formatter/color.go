package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/evaluador/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// TierColor returns the style for a tier: Naciente yellow, Creciente blue,
// Inspiradora green.
func TierColor(t domain.Tier) lipgloss.Style {
	switch t {
	case domain.TierInspiradora:
		return StyleGreen
	case domain.TierCreciente:
		return StyleBlue
	case domain.TierNaciente:
		return StyleYellow
	default:
		return StyleDim
	}
}

// TierIndicator renders a tier as "● Creciente".
func TierIndicator(t domain.Tier) string {
	if t == "" {
		return StyleDim.Render("○ sin resultado")
	}
	return TierColor(t).Render("● " + string(t))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// Success renders a green check followed by text.
func Success(text string) string {
	return StyleGreen.Render("✔") + " " + text
}

// Failure renders a red cross followed by text.
func Failure(text string) string {
	return StyleRed.Render("✖") + " " + text
}
