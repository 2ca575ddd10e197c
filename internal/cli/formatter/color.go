package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timelog/internal/domain"
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

// StatusColor returns the color used for a day classification.
func StatusColor(status domain.DayStatus) lipgloss.Color {
	switch status {
	case domain.DayInsufficient:
		return ColorYellow
	case domain.DaySufficient:
		return ColorGreen
	case domain.DayExcessive:
		return ColorPurple
	default:
		return ColorDim
	}
}

// StatusStyle is StatusColor as a foreground style.
func StatusStyle(status domain.DayStatus) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(StatusColor(status))
}

// StatusIndicator returns a colored label such as "● SUFFICIENT".
func StatusIndicator(status domain.DayStatus) string {
	switch status {
	case domain.DayInsufficient:
		return StatusStyle(status).Render("○ INSUFFICIENT")
	case domain.DaySufficient:
		return StatusStyle(status).Render("● SUFFICIENT")
	case domain.DayExcessive:
		return StatusStyle(status).Render("▲ EXCESSIVE")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// ActivePill renders the active flag of a project or task.
func ActivePill(active bool) string {
	if active {
		return StyleGreen.Render("● Active")
	}
	return StyleDim.Render("○ Inactive")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
