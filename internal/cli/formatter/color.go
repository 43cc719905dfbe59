package formatter

import (
	"fmt"
	"strings"

	"github.com/avelinecarr/dealsense/internal/domain"
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

// Predefined lipgloss styles.
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

// RiskColor returns the lipgloss style corresponding to the given risk level.
func RiskColor(level domain.RiskLevel) lipgloss.Style {
	switch level {
	case domain.RiskHigh:
		return StyleRed
	case domain.RiskMedium:
		return StyleYellow
	case domain.RiskLow:
		return StyleGreen
	default:
		return StyleDim
	}
}

// RiskBadge returns a colored risk indicator string such as "● HIGH".
func RiskBadge(level domain.RiskLevel) string {
	switch level {
	case domain.RiskHigh:
		return StyleRed.Render("● HIGH")
	case domain.RiskMedium:
		return StyleYellow.Render("● MEDIUM")
	case domain.RiskLow:
		return StyleGreen.Render("● LOW")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// StatusPill returns a colored status indicator for deal status.
func StatusPill(status domain.DealStatus) string {
	switch status {
	case domain.DealActive:
		return StyleGreen.Render("● Active")
	case domain.DealAtRisk:
		return StyleYellow.Render("▲ At Risk")
	case domain.DealClosed:
		return StyleDim.Render("✔ Closed")
	default:
		return StyleDim.Render(string(status))
	}
}

// StageBadge returns a styled pipeline stage label. Terminal stages carry
// a won/lost marker.
func StageBadge(stage domain.Stage) string {
	switch stage {
	case domain.StageClosedWon:
		return StyleGreen.Render("✔ Won")
	case domain.StageClosedLost:
		return StyleRed.Render("✖ Lost")
	default:
		label := string(stage)
		if label == "" {
			return StyleDim.Render("--")
		}
		label = strings.ToUpper(label[:1]) + label[1:]
		return StylePurple.Render(label)
	}
}

// UrgencyBadge returns a styled urgency label for a recommended action.
func UrgencyBadge(u domain.Urgency) string {
	switch u {
	case domain.UrgencyHigh:
		return StyleRed.Render("HIGH")
	case domain.UrgencyMedium:
		return StyleYellow.Render("MEDIUM")
	default:
		return StyleDim.Render("LOW")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
